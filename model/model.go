package model

import (
	"github.com/tidwall/btree"
)

// Model owns the rules of a single grammar file and its outgoing import
// edges. It is created empty by a loader, populated synchronously during
// the load, and read-only afterwards. Imported models are shared
// references owned by the cache that produced them.
type Model struct {
	path     string
	offset   int
	inMemory bool

	lexerRules  btree.Map[string, *LexerRule]
	parserRules btree.Map[string, *ParserRule]
	imports     []*Model
}

// New creates an empty model. offset is added to source line numbers when
// the grammar text is embedded in a host document; inMemory marks models
// without a stable file identity.
func New(path string, offset int, inMemory bool) *Model {
	return &Model{path: path, offset: offset, inMemory: inMemory}
}

func (m *Model) Path() string { return m.path }

// Offset is the line offset the model was loaded with.
func (m *Model) Offset() int { return m.offset }

// InMemory reports whether the model was loaded from text rather than a
// file. In-memory models cannot import other grammars.
func (m *Model) InMemory() bool { return m.inMemory }

// AddImport registers an import edge. Duplicate edges are collapsed.
func (m *Model) AddImport(imported *Model) {
	if imported == nil {
		return
	}
	for _, existing := range m.imports {
		if existing == imported {
			return
		}
	}
	m.imports = append(m.imports, imported)
}

// Imports returns the imported models in registration order.
func (m *Model) Imports() []*Model {
	out := make([]*Model, len(m.imports))
	copy(out, m.imports)
	return out
}

// SetLexerRule indexes a lexer rule under the given key. The key is
// usually the rule name; literal rules are registered a second time under
// their raw literal text.
func (m *Model) SetLexerRule(key string, rule *LexerRule) {
	m.lexerRules.Set(key, rule)
}

// SetParserRule indexes a parser rule under its name.
func (m *Model) SetParserRule(key string, rule *ParserRule) {
	m.parserRules.Set(key, rule)
}

// LexerRule looks up a lexer rule by name or literal text.
func (m *Model) LexerRule(key string) (*LexerRule, bool) {
	return m.lexerRules.Get(key)
}

// ParserRule looks up a parser rule by name.
func (m *Model) ParserRule(key string) (*ParserRule, bool) {
	return m.parserRules.Get(key)
}

// LookupLocal resolves a name against this model only. Lexer and parser
// rules live in disjoint namespaces; lexer rules win, matching the
// uppercase/lowercase split of the grammar language.
func (m *Model) LookupLocal(name string) (Rule, bool) {
	if r, ok := m.lexerRules.Get(name); ok {
		return r, true
	}
	if r, ok := m.parserRules.Get(name); ok {
		return r, true
	}
	return nil, false
}

// Lookup resolves a name against this model and, failing that, against
// its imports, depth-first in registration order. Import graphs may be
// cyclic; visited models are not re-entered.
func (m *Model) Lookup(name string) (Rule, bool) {
	return m.lookup(name, map[*Model]bool{})
}

func (m *Model) lookup(name string, seen map[*Model]bool) (Rule, bool) {
	if seen[m] {
		return nil, false
	}
	seen[m] = true
	if r, ok := m.LookupLocal(name); ok {
		return r, true
	}
	for _, imported := range m.imports {
		if r, ok := imported.lookup(name, seen); ok {
			return r, true
		}
	}
	return nil, false
}

// Terminals returns the model's lexer rules ordered by name. Rules indexed
// under both a name and a literal text appear once.
func (m *Model) Terminals() []*LexerRule {
	out := make([]*LexerRule, 0, m.lexerRules.Len())
	m.lexerRules.Scan(func(key string, rule *LexerRule) bool {
		if key == rule.Name {
			out = append(out, rule)
		}
		return true
	})
	return out
}

// NonTerminals returns the model's parser rules ordered by name.
func (m *Model) NonTerminals() []*ParserRule {
	out := make([]*ParserRule, 0, m.parserRules.Len())
	m.parserRules.Scan(func(_ string, rule *ParserRule) bool {
		out = append(out, rule)
		return true
	})
	return out
}
