package ast

import "fmt"

// SourcePos identifies a location in a grammar source file.
type SourcePos struct {
	Filename  string
	Line, Col int
}

func (pos SourcePos) String() string {
	if pos.Line <= 0 {
		return pos.Filename
	}
	if pos.Col <= 0 {
		return fmt.Sprintf("%s:%d", pos.Filename, pos.Line)
	}
	return fmt.Sprintf("%s:%d:%d", pos.Filename, pos.Line, pos.Col)
}

// Comment is a single comment token, raw fences included.
type Comment struct {
	Text string
	Pos  SourcePos
}

// Node is implemented by all nodes in the tree.
type Node interface {
	Start() SourcePos
}

// GrammarKind distinguishes the three grammar header forms.
type GrammarKind int

const (
	GrammarCombined GrammarKind = iota
	GrammarLexer
	GrammarParser
)

// GrammarFile is the root of the tree for one grammar file.
//
// Prequel declarations (options, delegate imports, token declarations) are
// kept apart from rule declarations so that a pre-pass can traverse them
// without descending into rule bodies.
type GrammarFile struct {
	Pos  SourcePos
	Kind GrammarKind
	Name string

	Options   []*OptionDecl
	Delegates []*DelegateDecl
	Tokens    []*TokenName

	Rules []RuleDecl
	Modes []*ModeDecl
}

func (f *GrammarFile) Start() SourcePos { return f.Pos }

// OptionDecl is a single `name = value` entry of an options block.
type OptionDecl struct {
	Pos   SourcePos
	Name  string
	Value string
}

func (o *OptionDecl) Start() SourcePos { return o.Pos }

// DelegateDecl is one grammar named by an import statement.
type DelegateDecl struct {
	Pos  SourcePos
	Name string
}

func (d *DelegateDecl) Start() SourcePos { return d.Pos }

// TokenName is one bare identifier of a `tokens { ... }` block.
type TokenName struct {
	Pos  SourcePos
	Name string
}

func (t *TokenName) Start() SourcePos { return t.Pos }

// ModeDecl is a `mode Name;` block together with the lexer rules that
// follow it.
type ModeDecl struct {
	Pos   SourcePos
	Name  string
	Rules []*LexerRuleDecl
}

func (m *ModeDecl) Start() SourcePos { return m.Pos }

// RuleDecl is either a *LexerRuleDecl or a *ParserRuleDecl.
type RuleDecl interface {
	Node
	ruleDecl()
}

// LexerRuleDecl is a token or fragment rule declaration.
type LexerRuleDecl struct {
	Pos      SourcePos
	Docs     []Comment
	Fragment bool
	Name     string
	Body     Expr
}

func (r *LexerRuleDecl) Start() SourcePos { return r.Pos }
func (r *LexerRuleDecl) ruleDecl()        {}

// ParserRuleDecl is a parser rule declaration.
type ParserRuleDecl struct {
	Pos  SourcePos
	Docs []Comment
	Name string
	Body Expr
}

func (r *ParserRuleDecl) Start() SourcePos { return r.Pos }
func (r *ParserRuleDecl) ruleDecl()        {}

// Expr is a rule body expression.
type Expr interface {
	Node
	expr()
}

// ChoiceExpr is a list of alternatives separated by '|'. Block sets of the
// form ~('a'|'b') also produce a ChoiceExpr (under a NotExpr).
type ChoiceExpr struct {
	Pos  SourcePos
	Alts []Expr
}

// SeqExpr is the ordered element list of one alternative. An explicitly
// empty alternative is a SeqExpr with no items.
type SeqExpr struct {
	Pos   SourcePos
	Items []Expr
}

// QuantExpr applies a quantifier suffix to its child. Op is one of
// '?', '+', '*'.
type QuantExpr struct {
	Pos       SourcePos
	Op        byte
	NonGreedy bool
	Child     Expr
}

// LiteralExpr is a quoted string literal, raw text preserved.
type LiteralExpr struct {
	Pos  SourcePos
	Text string
}

// CharSetExpr is a bracketed character class, raw text preserved.
type CharSetExpr struct {
	Pos  SourcePos
	Text string
}

// RangeExpr is a character range 'a'..'z', raw quoted endpoints preserved.
type RangeExpr struct {
	Pos       SourcePos
	Low, High string
}

// RefExpr is a reference to a named rule or token.
type RefExpr struct {
	Pos  SourcePos
	Name string
}

// DotExpr is the '.' wildcard.
type DotExpr struct {
	Pos SourcePos
}

// NotExpr is the '~' complement of its child.
type NotExpr struct {
	Pos   SourcePos
	Child Expr
}

// ActionExpr is an action block or, when Predicate is set, a semantic
// predicate `{...}?`. Actions contribute nothing to a rule's structure.
type ActionExpr struct {
	Pos       SourcePos
	Predicate bool
}

func (e *ChoiceExpr) Start() SourcePos  { return e.Pos }
func (e *SeqExpr) Start() SourcePos     { return e.Pos }
func (e *QuantExpr) Start() SourcePos   { return e.Pos }
func (e *LiteralExpr) Start() SourcePos { return e.Pos }
func (e *CharSetExpr) Start() SourcePos { return e.Pos }
func (e *RangeExpr) Start() SourcePos   { return e.Pos }
func (e *RefExpr) Start() SourcePos     { return e.Pos }
func (e *DotExpr) Start() SourcePos     { return e.Pos }
func (e *NotExpr) Start() SourcePos     { return e.Pos }
func (e *ActionExpr) Start() SourcePos  { return e.Pos }

func (e *ChoiceExpr) expr()  {}
func (e *SeqExpr) expr()     {}
func (e *QuantExpr) expr()   {}
func (e *LiteralExpr) expr() {}
func (e *CharSetExpr) expr() {}
func (e *RangeExpr) expr()   {}
func (e *RefExpr) expr()     {}
func (e *DotExpr) expr()     {}
func (e *NotExpr) expr()     {}
func (e *ActionExpr) expr()  {}
