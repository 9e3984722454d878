package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func ref(name string) Content {
	return &Reference{Name: name}
}

func TestSeq(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, &Empty{}, Seq())
	})
	t.Run("single element unwrapped", func(t *testing.T) {
		assert.Equal(t, ref("a"), Seq(ref("a")))
	})
	t.Run("nested sequences flattened", func(t *testing.T) {
		got := Seq(ref("a"), Seq(ref("b"), ref("c")), ref("d"))
		want := &Sequence{Children: []Content{ref("a"), ref("b"), ref("c"), ref("d")}}
		assert.Empty(t, cmp.Diff(want, got))
	})
	t.Run("empty elements kept", func(t *testing.T) {
		got := Seq(&Empty{}, ref("a"), &Empty{})
		want := &Sequence{Children: []Content{&Empty{}, ref("a"), &Empty{}}}
		assert.Empty(t, cmp.Diff(want, got))
	})
	t.Run("single empty collapses", func(t *testing.T) {
		assert.Equal(t, &Empty{}, Seq(&Empty{}))
	})
}

func TestAlt(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, &Empty{}, Alt())
	})
	t.Run("single element unwrapped", func(t *testing.T) {
		assert.Equal(t, ref("a"), Alt(ref("a")))
	})
	t.Run("nested alternatives flattened", func(t *testing.T) {
		got := Alt(ref("a"), Alt(ref("b"), ref("c")))
		want := &Alternative{Children: []Content{ref("a"), ref("b"), ref("c")}}
		assert.Empty(t, cmp.Diff(want, got))
	})
	t.Run("empty alternative becomes maybe", func(t *testing.T) {
		got := Alt(ref("a"), &Empty{})
		want := &Maybe{Child: ref("a")}
		assert.Empty(t, cmp.Diff(want, got))
	})
	t.Run("empty alternative wraps the whole choice", func(t *testing.T) {
		got := Alt(ref("a"), ref("b"), &Empty{})
		want := &Maybe{Child: &Alternative{Children: []Content{ref("a"), ref("b")}}}
		assert.Empty(t, cmp.Diff(want, got))
	})
	t.Run("maybe child unwrapped and recorded", func(t *testing.T) {
		got := Alt(&Maybe{Child: ref("a")}, ref("b"))
		want := &Maybe{Child: &Alternative{Children: []Content{ref("a"), ref("b")}}}
		assert.Empty(t, cmp.Diff(want, got))
	})
	t.Run("only empties collapse", func(t *testing.T) {
		assert.Equal(t, &Empty{}, Alt(&Empty{}, &Empty{}))
	})
}

func TestQuantifiers(t *testing.T) {
	t.Parallel()

	t.Run("opt is idempotent", func(t *testing.T) {
		once := Opt(ref("a"))
		assert.Equal(t, once, Opt(once))
	})
	t.Run("no quantifier wraps empty", func(t *testing.T) {
		assert.Equal(t, &Empty{}, Opt(&Empty{}))
		assert.Equal(t, &Empty{}, Plus(&Empty{}))
		assert.Equal(t, &Empty{}, Star(&Empty{}))
	})
	t.Run("plus and star wrap", func(t *testing.T) {
		assert.Equal(t, &OnePlus{Child: ref("a")}, Plus(ref("a")))
		assert.Equal(t, &ZeroPlus{Child: ref("a")}, Star(ref("a")))
	})
}

func TestContentString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		content Content
		want    string
	}{
		{&Empty{}, "ε"},
		{&Wildcard{}, "."},
		{&Literal{Text: "'x'"}, "'x'"},
		{&CharSet{Text: "[a-z]"}, "[a-z]"},
		{&Range{Start: "'a'", End: "'z'"}, "'a'..'z'"},
		{Not(&CharSet{Text: "[a-z]"}), "~[a-z]"},
		{Seq(ref("a"), ref("b")), "(a b)"},
		{Alt(ref("a"), ref("b")), "(a | b)"},
		{Opt(ref("a")), "a?"},
		{Plus(ref("a")), "a+"},
		{Star(ref("a")), "a*"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.content.String())
	}
}
