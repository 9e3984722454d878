package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmatanHead/sphinx-a4doc/ast"
	"github.com/AmatanHead/sphinx-a4doc/reporter"
)

func parseFile(t *testing.T, src string) *ast.GrammarFile {
	t.Helper()
	handler := reporter.NewHandler(nil)
	file, err := Parse("test.g4", []byte(src), handler)
	require.NoError(t, err)
	require.NotNil(t, file)
	return file
}

func TestParseHeader(t *testing.T) {
	t.Parallel()

	cases := []struct {
		src  string
		kind ast.GrammarKind
		name string
	}{
		{"grammar Foo;", ast.GrammarCombined, "Foo"},
		{"lexer grammar FooLex;", ast.GrammarLexer, "FooLex"},
		{"parser grammar FooParse;", ast.GrammarParser, "FooParse"},
	}
	for _, tc := range cases {
		file := parseFile(t, tc.src)
		assert.Equal(t, tc.kind, file.Kind)
		assert.Equal(t, tc.name, file.Name)
	}
}

func TestParsePrequel(t *testing.T) {
	t.Parallel()

	file := parseFile(t, `
grammar G;
options { tokenVocab = GLex; superClass = Base; }
import A, B;
tokens { FOO, BAR }
channels { HIDDEN_STUFF }
@header { package example; }
@parser::members { int x; }
`)

	require.Len(t, file.Options, 2)
	assert.Equal(t, "tokenVocab", file.Options[0].Name)
	assert.Equal(t, "GLex", file.Options[0].Value)
	assert.Equal(t, "superClass", file.Options[1].Name)

	require.Len(t, file.Delegates, 2)
	assert.Equal(t, "A", file.Delegates[0].Name)
	assert.Equal(t, "B", file.Delegates[1].Name)

	require.Len(t, file.Tokens, 2)
	assert.Equal(t, "FOO", file.Tokens[0].Name)
	assert.Equal(t, "BAR", file.Tokens[1].Name)
}

func TestParseRules(t *testing.T) {
	t.Parallel()

	file := parseFile(t, `
grammar G;

// Token A.
A : 'a' ;
fragment DIGIT : [0-9] ;

expr : expr '*' expr # Mult
     | A             # Single
     ;
`)

	require.Len(t, file.Rules, 3)

	a, ok := file.Rules[0].(*ast.LexerRuleDecl)
	require.True(t, ok)
	assert.Equal(t, "A", a.Name)
	assert.False(t, a.Fragment)
	require.Len(t, a.Docs, 1)
	assert.Equal(t, "// Token A.", a.Docs[0].Text)

	digit, ok := file.Rules[1].(*ast.LexerRuleDecl)
	require.True(t, ok)
	assert.True(t, digit.Fragment)

	expr, ok := file.Rules[2].(*ast.ParserRuleDecl)
	require.True(t, ok)
	assert.Equal(t, "expr", expr.Name)
	choice, ok := expr.Body.(*ast.ChoiceExpr)
	require.True(t, ok)
	assert.Len(t, choice.Alts, 2)
}

func TestParseElements(t *testing.T) {
	t.Parallel()

	file := parseFile(t, `grammar G; a : x=A y+=B? ('c' | .)+ ~A {act();} {pred}? | ;`)

	rule := file.Rules[0].(*ast.ParserRuleDecl)
	choice := rule.Body.(*ast.ChoiceExpr)
	require.Len(t, choice.Alts, 2)

	first := choice.Alts[0].(*ast.SeqExpr)
	require.Len(t, first.Items, 6)

	assert.IsType(t, &ast.RefExpr{}, first.Items[0])
	quant := first.Items[1].(*ast.QuantExpr)
	assert.Equal(t, byte('?'), quant.Op)
	assert.IsType(t, &ast.RefExpr{}, quant.Child)

	group := first.Items[2].(*ast.QuantExpr)
	assert.Equal(t, byte('+'), group.Op)
	groupChoice := group.Child.(*ast.ChoiceExpr)
	require.Len(t, groupChoice.Alts, 2)

	not := first.Items[3].(*ast.NotExpr)
	assert.IsType(t, &ast.RefExpr{}, not.Child)

	action := first.Items[4].(*ast.ActionExpr)
	assert.False(t, action.Predicate)
	predicate := first.Items[5].(*ast.ActionExpr)
	assert.True(t, predicate.Predicate)

	second := choice.Alts[1].(*ast.SeqExpr)
	assert.Empty(t, second.Items)
}

func TestParseLexerRuleExtras(t *testing.T) {
	t.Parallel()

	file := parseFile(t, `
lexer grammar L;
STR : '"' .*? '"' -> type(STRING), channel(1) ;
RANGE : 'a'..'z' ;

mode Island;
INNER : [xyz] -> popMode ;
`)

	require.Len(t, file.Rules, 2)

	str := file.Rules[0].(*ast.LexerRuleDecl)
	seq := str.Body.(*ast.ChoiceExpr).Alts[0].(*ast.SeqExpr)
	require.Len(t, seq.Items, 3)
	wild := seq.Items[1].(*ast.QuantExpr)
	assert.Equal(t, byte('*'), wild.Op)
	assert.True(t, wild.NonGreedy)
	assert.IsType(t, &ast.DotExpr{}, wild.Child)

	rng := file.Rules[1].(*ast.LexerRuleDecl)
	rangeExpr := rng.Body.(*ast.ChoiceExpr).Alts[0].(*ast.SeqExpr).Items[0].(*ast.RangeExpr)
	assert.Equal(t, "'a'", rangeExpr.Low)
	assert.Equal(t, "'z'", rangeExpr.High)

	require.Len(t, file.Modes, 1)
	assert.Equal(t, "Island", file.Modes[0].Name)
	require.Len(t, file.Modes[0].Rules, 1)
	assert.Equal(t, "INNER", file.Modes[0].Rules[0].Name)
}

func TestParseParserRuleClauses(t *testing.T) {
	t.Parallel()

	file := parseFile(t, `
grammar G;
r[int x] returns [int y] locals [int z] throws E1, E2 options {k=v;} @init {y = 0;}
  : A
  ;
  catch [Exception e] { recover(); }
  finally { done(); }
`)

	rule := file.Rules[0].(*ast.ParserRuleDecl)
	assert.Equal(t, "r", rule.Name)
	seq := rule.Body.(*ast.ChoiceExpr).Alts[0].(*ast.SeqExpr)
	require.Len(t, seq.Items, 1)
	assert.Equal(t, "A", seq.Items[0].(*ast.RefExpr).Name)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		src  string
	}{
		{"no header", "A : 'a' ;"},
		{"missing semicolon", "grammar G; a : A"},
		{"missing rule name", "grammar G; : A ;"},
		{"unbalanced group", "grammar G; a : (A ;"},
		{"bad range bound", "lexer grammar L; A : 'a'..[z] ;"},
		{"parser rule in mode", "lexer grammar L; mode M; a : A ;"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			handler := reporter.NewHandler(nil)
			file, err := Parse("test.g4", []byte(tc.src), handler)
			assert.Error(t, err)
			assert.Nil(t, file)
		})
	}
}

func TestParseReportsPosition(t *testing.T) {
	t.Parallel()

	var got ast.SourcePos
	rep := reporter.NewReporter(func(err reporter.ErrorWithPos) error {
		got = err.GetPosition()
		return nil
	}, nil)
	handler := reporter.NewHandler(rep)

	_, err := Parse("test.g4", []byte("grammar G;\na : A"), handler)
	require.Error(t, err)
	assert.Equal(t, "test.g4", got.Filename)
	assert.Equal(t, 2, got.Line)
}
