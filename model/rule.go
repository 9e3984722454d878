package model

import "fmt"

// Position is a (file path, line number) location used for diagnostics.
// It never participates in identity of other entities.
type Position struct {
	Path string
	Line int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d", p.Path, p.Line)
}

// Rule is implemented by *LexerRule and *ParserRule.
type Rule interface {
	Base() *RuleBase
}

// RuleBase carries the fields shared by lexer and parser rules. Identity
// is (Model, Name); DisplayName, when set via a `//@ name` directive,
// only affects presentation.
type RuleBase struct {
	Name        string
	DisplayName string
	Position    Position
	Model       *Model
	Content     Content

	Documentation string
	CSSClass      string
	Importance    int
	DoxygenNoDoc  bool
	DoxygenInline bool
}

func (b *RuleBase) Base() *RuleBase { return b }

// LexerRule is a named token or fragment rule. A rule whose whole body is
// a single string literal is marked IsLiteral and is additionally indexed
// in its model under the raw literal text.
type LexerRule struct {
	RuleBase
	IsFragment bool
	IsLiteral  bool
}

// ParserRule is a named parser (non-terminal) rule.
type ParserRule struct {
	RuleBase
}
