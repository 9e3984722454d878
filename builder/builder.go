package builder

import (
	"github.com/AmatanHead/sphinx-a4doc/ast"
	"github.com/AmatanHead/sphinx-a4doc/model"
	"github.com/AmatanHead/sphinx-a4doc/reporter"
)

// BuildLexerRules converts every lexer rule declaration of the file,
// including rules declared inside modes, and registers them in m. A rule
// whose whole body is one string literal is additionally indexed under the
// raw literal text so that parser rules using the literal inline resolve
// to it.
func BuildLexerRules(file *ast.GrammarFile, m *model.Model, handler *reporter.Handler) {
	b := &contentBuilder{model: m, lexical: true}
	for _, decl := range file.Rules {
		if lexDecl, ok := decl.(*ast.LexerRuleDecl); ok {
			addLexerRule(lexDecl, m, b, handler)
		}
	}
	for _, mode := range file.Modes {
		for _, lexDecl := range mode.Rules {
			addLexerRule(lexDecl, m, b, handler)
		}
	}
}

func addLexerRule(decl *ast.LexerRuleDecl, m *model.Model, b *contentBuilder, handler *reporter.Handler) {
	content := b.build(decl.Body)
	rule := &model.LexerRule{
		RuleBase:   newRuleBase(decl.Name, decl.Pos, decl.Docs, content, m, handler),
		IsFragment: decl.Fragment,
	}
	if lit, ok := content.(*model.Literal); ok {
		rule.IsLiteral = true
		m.SetLexerRule(lit.Text, rule)
	}
	m.SetLexerRule(decl.Name, rule)
}

// BuildParserRules converts every parser rule declaration of the file and
// registers them in m. Lexer-only atoms that appear in parser rule bodies
// (character sets and ranges) contribute nothing; inline literals become
// references resolved through the literal index.
func BuildParserRules(file *ast.GrammarFile, m *model.Model, handler *reporter.Handler) {
	b := &contentBuilder{model: m}
	for _, decl := range file.Rules {
		parseDecl, ok := decl.(*ast.ParserRuleDecl)
		if !ok {
			continue
		}
		rule := &model.ParserRule{
			RuleBase: newRuleBase(parseDecl.Name, parseDecl.Pos, parseDecl.Docs, b.build(parseDecl.Body), m, handler),
		}
		m.SetParserRule(parseDecl.Name, rule)
	}
}

func newRuleBase(name string, pos ast.SourcePos, docs []ast.Comment, content model.Content, m *model.Model, handler *reporter.Handler) model.RuleBase {
	info := ExtractDocs(docs, handler)
	importance := 1
	if info.ImportanceSet {
		importance = info.Importance
	}
	return model.RuleBase{
		Name:          name,
		DisplayName:   info.DisplayName,
		Position:      model.Position{Path: m.Path(), Line: pos.Line},
		Model:         m,
		Content:       content,
		Documentation: info.Documentation,
		CSSClass:      info.CSSClass,
		Importance:    importance,
		DoxygenNoDoc:  info.NoDoc,
		DoxygenInline: info.Inline,
	}
}

// contentBuilder lowers rule body expressions into normalized content.
// The lexical flag selects the atom interpretation: lexer rules keep
// literals, ranges and character sets as matching atoms, parser rules
// treat literals as references to literal-bodied tokens and drop atoms
// that have no meaning outside a lexer.
type contentBuilder struct {
	model   *model.Model
	lexical bool
}

func (b *contentBuilder) build(e ast.Expr) model.Content {
	switch e := e.(type) {
	case *ast.ChoiceExpr:
		alts := make([]model.Content, 0, len(e.Alts))
		for _, alt := range e.Alts {
			alts = append(alts, b.build(alt))
		}
		return model.Alt(alts...)
	case *ast.SeqExpr:
		items := make([]model.Content, 0, len(e.Items))
		for _, item := range e.Items {
			items = append(items, b.build(item))
		}
		return model.Seq(items...)
	case *ast.QuantExpr:
		child := b.build(e.Child)
		switch e.Op {
		case '?':
			return model.Opt(child)
		case '+':
			return model.Plus(child)
		default:
			return model.Star(child)
		}
	case *ast.LiteralExpr:
		if b.lexical {
			if e.Text == "''" {
				return &model.Empty{}
			}
			return &model.Literal{Text: e.Text}
		}
		return &model.Reference{Model: b.model, Name: e.Text}
	case *ast.CharSetExpr:
		if b.lexical {
			if e.Text == "[]" {
				return &model.Empty{}
			}
			return &model.CharSet{Text: e.Text}
		}
		return &model.Empty{}
	case *ast.RangeExpr:
		if b.lexical {
			return &model.Range{Start: e.Low, End: e.High}
		}
		return &model.Empty{}
	case *ast.RefExpr:
		return &model.Reference{Model: b.model, Name: e.Name}
	case *ast.DotExpr:
		return &model.Wildcard{}
	case *ast.NotExpr:
		return model.Not(b.build(e.Child))
	case *ast.ActionExpr:
		return &model.Empty{}
	}
	return &model.Empty{}
}
