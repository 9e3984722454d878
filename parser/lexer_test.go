package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmatanHead/sphinx-a4doc/reporter"
)

func tokenize(t *testing.T, src string) ([]token, *reporter.Handler) {
	t.Helper()
	handler := reporter.NewHandler(nil)
	lex := newLexer("test.g4", []byte(src), 0, handler)
	var toks []token
	for {
		tok := lex.Next()
		toks = append(toks, tok)
		if tok.kind == tkEOF {
			return toks, handler
		}
	}
}

func TestLexerBasicTokens(t *testing.T) {
	t.Parallel()

	toks, handler := tokenize(t, "A : 'x'..'z' [a-z]+? {act()} -> skip ;")
	require.NoError(t, handler.Error())

	wantKinds := []tokenKind{
		tkIdent, tkSym, tkLiteral, tkSym, tkLiteral,
		tkCharSet, tkSym, tkAction, tkSym, tkIdent, tkSym, tkEOF,
	}
	wantTexts := []string{
		"A", ":", "'x'", "..", "'z'",
		"[a-z]", "+?", "{act()}", "->", "skip", ";", "",
	}
	require.Len(t, toks, len(wantKinds))
	for i, tok := range toks {
		assert.Equal(t, wantKinds[i], tok.kind, "token %d", i)
		assert.Equal(t, wantTexts[i], tok.text, "token %d", i)
	}
}

func TestLexerMultiCharSymbols(t *testing.T) {
	t.Parallel()

	toks, handler := tokenize(t, "?? *? +? += :: .. -> ? * + : .")
	require.NoError(t, handler.Error())

	want := []string{"??", "*?", "+?", "+=", "::", "..", "->", "?", "*", "+", ":", "."}
	require.Len(t, toks, len(want)+1)
	for i, text := range want {
		assert.True(t, toks[i].isSym(text), "token %d: got %q", i, toks[i].text)
	}
}

func TestLexerPositions(t *testing.T) {
	t.Parallel()

	toks, handler := tokenize(t, "grammar G;\n  A : 'x' ;\n")
	require.NoError(t, handler.Error())

	a := toks[3]
	require.True(t, a.isIdent("A"))
	assert.Equal(t, 2, a.pos.Line)
	assert.Equal(t, 3, a.pos.Col)
}

func TestLexerLineOffset(t *testing.T) {
	t.Parallel()

	handler := reporter.NewHandler(nil)
	lex := newLexer("test.g4", []byte("grammar G;"), 10, handler)
	tok := lex.Next()
	assert.Equal(t, 11, tok.pos.Line)
}

func TestLexerLeadingComments(t *testing.T) {
	t.Parallel()

	toks, handler := tokenize(t, `grammar G;
// doc one
// doc two
A : 'x' ; // trailing
B : 'y' ;
/* block */
C : 'z' ;
`)
	require.NoError(t, handler.Error())

	var a, b, c token
	for _, tok := range toks {
		switch {
		case tok.isIdent("A"):
			a = tok
		case tok.isIdent("B"):
			b = tok
		case tok.isIdent("C"):
			c = tok
		}
	}

	require.Len(t, a.leading, 2)
	assert.Equal(t, "// doc one", a.leading[0].Text)
	assert.Equal(t, "// doc two", a.leading[1].Text)
	assert.Equal(t, 2, a.leading[0].Pos.Line)

	assert.Empty(t, b.leading, "trailing comment must not attach to the next rule")

	require.Len(t, c.leading, 1)
	assert.Equal(t, "/* block */", c.leading[0].Text)
}

func TestLexerErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		src  string
	}{
		{"unterminated literal", "A : 'x"},
		{"literal across lines", "A : 'x\n' ;"},
		{"unterminated charset", "A : [a-z"},
		{"unterminated action", "a : {foo( ;"},
		{"unterminated block comment", "/* nope"},
		{"invalid character", "a : % ;"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, handler := tokenize(t, tc.src)
			assert.Error(t, handler.Error())
		})
	}
}

func TestLexerActionNesting(t *testing.T) {
	t.Parallel()

	toks, handler := tokenize(t, `a : {if (x) { y("}"); }} ;`)
	require.NoError(t, handler.Error())

	var action token
	for _, tok := range toks {
		if tok.kind == tkAction {
			action = tok
		}
	}
	assert.Equal(t, `{if (x) { y("}"); }}`, action.text)
}
