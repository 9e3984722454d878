package a4doc

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/AmatanHead/sphinx-a4doc/ast"
	"github.com/AmatanHead/sphinx-a4doc/builder"
	"github.com/AmatanHead/sphinx-a4doc/model"
	"github.com/AmatanHead/sphinx-a4doc/parser"
	"github.com/AmatanHead/sphinx-a4doc/reporter"
)

// Cache loads grammar files and memoizes the resulting models. The zero
// value is usable. A Cache is not safe for concurrent use.
type Cache struct {
	// Reporter receives all diagnostics produced while loading. A nil
	// reporter swallows warnings and turns the first syntax error of a
	// file into an empty model silently.
	Reporter reporter.Reporter

	// Accessor is the hook used to read grammar files. It defaults to
	// os.ReadFile and exists so that tests and virtual file systems can
	// feed sources without touching disk.
	Accessor func(path string) ([]byte, error)

	loaded  map[string]*model.Model
	loading map[string]bool
	parses  int
}

// LoadFile loads the grammar at path. The result is memoized under the
// absolute form of the path: loading the same file twice, directly or via
// imports, returns the same model.
//
// A file that cannot be read or parsed still produces a model; it is
// empty, and the problem is reported through the reporter.
func (c *Cache) LoadFile(path string) *model.Model {
	return c.LoadFileAt(path, 0)
}

// LoadFileAt is LoadFile with a line offset added to all positions, for
// grammar files whose content is embedded in a host document. Memoization
// is keyed by path alone: a later load of the same file with a different
// offset returns the already loaded model.
func (c *Cache) LoadFileAt(path string, lineOffset int) *model.Model {
	c.ensureInit()
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if m, ok := c.loaded[path]; ok {
		if c.loading[path] {
			handler := reporter.NewHandler(c.Reporter)
			handler.HandleWarningf(ast.SourcePos{Filename: path}, "circular import of %q", path)
		}
		return m
	}

	m := model.New(path, lineOffset, false)
	c.loaded[path] = m
	c.loading[path] = true
	defer delete(c.loading, path)

	handler := reporter.NewHandler(c.Reporter)
	data, err := c.readFile(path)
	if err != nil {
		handler.HandleWarningf(ast.SourcePos{Filename: path}, "cannot load grammar file: %v", err)
		return m
	}
	c.populate(m, path, data, lineOffset, handler)
	return m
}

// LoadText loads a grammar from a string. path gives the model its
// identity for positions and diagnostics; the file at that path, if any,
// is never read. Text models cannot import other grammars.
func (c *Cache) LoadText(text, path string) *model.Model {
	return c.LoadTextAt(text, path, 0)
}

// LoadTextAt is LoadText with a line offset added to all positions. Text
// loads are never memoized: there is no stable identity to key them by.
func (c *Cache) LoadTextAt(text, path string, lineOffset int) *model.Model {
	c.ensureInit()
	m := model.New(path, lineOffset, true)
	handler := reporter.NewHandler(c.Reporter)
	c.populate(m, path, []byte(text), lineOffset, handler)
	return m
}

// LoadGlob loads every file matched by the pattern, which may use
// doublestar wildcards, and returns the models in match order.
func (c *Cache) LoadGlob(pattern string) ([]*model.Model, error) {
	paths, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, err
	}
	models := make([]*model.Model, 0, len(paths))
	for _, path := range paths {
		models = append(models, c.LoadFile(path))
	}
	return models, nil
}

func (c *Cache) populate(m *model.Model, path string, data []byte, lineOffset int, handler *reporter.Handler) {
	c.parses++
	file, _ := parser.ParseAt(path, data, lineOffset, handler)
	if handler.ErrorsReported() {
		return
	}
	builder.Meta(file, m, c.LoadFile, handler)
	builder.BuildLexerRules(file, m, handler)
	builder.BuildParserRules(file, m, handler)
}

func (c *Cache) ensureInit() {
	if c.loaded == nil {
		c.loaded = map[string]*model.Model{}
		c.loading = map[string]bool{}
	}
}

func (c *Cache) readFile(path string) ([]byte, error) {
	if c.Accessor != nil {
		return c.Accessor(path)
	}
	return os.ReadFile(path)
}
