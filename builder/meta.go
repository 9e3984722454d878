package builder

import (
	"path/filepath"

	"github.com/AmatanHead/sphinx-a4doc/ast"
	"github.com/AmatanHead/sphinx-a4doc/model"
	"github.com/AmatanHead/sphinx-a4doc/reporter"
)

// LoadFunc resolves an import target path to its model. The cache supplies
// an implementation that memoizes and tolerates missing files.
type LoadFunc func(path string) *model.Model

// Meta applies the prequel declarations of a parsed file to its model.
// Delegate imports and a tokenVocab option name sibling grammars, which
// are loaded by appending the ".g4" extension and resolving against the
// directory of the importing file. Token declarations become implicit
// lexer rules with empty content that exist purely as reference targets.
func Meta(file *ast.GrammarFile, m *model.Model, load LoadFunc, handler *reporter.Handler) {
	base := filepath.Dir(m.Path())

	importGrammar := func(name string, pos ast.SourcePos) {
		if m.InMemory() {
			handler.HandleWarningf(pos, "in-memory grammar cannot import %q", name)
			return
		}
		m.AddImport(load(filepath.Join(base, name+".g4")))
	}

	for _, opt := range file.Options {
		if opt.Name == "tokenVocab" {
			importGrammar(opt.Value, opt.Pos)
		}
	}
	for _, delegate := range file.Delegates {
		importGrammar(delegate.Name, delegate.Pos)
	}

	for _, tok := range file.Tokens {
		rule := &model.LexerRule{
			RuleBase: model.RuleBase{
				Name:          tok.Name,
				Position:      model.Position{Path: m.Path(), Line: tok.Pos.Line},
				Model:         m,
				Content:       &model.Empty{},
				Importance:    1,
				DoxygenNoDoc:  true,
				DoxygenInline: true,
			},
		}
		m.SetLexerRule(tok.Name, rule)
	}
}
