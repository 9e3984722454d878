package parser

import (
	"strings"
	"unicode"

	"github.com/AmatanHead/sphinx-a4doc/ast"
	"github.com/AmatanHead/sphinx-a4doc/reporter"
)

// Parse parses grammar source into an ast.GrammarFile. All syntax problems
// are reported through handler; when any were reported the returned file is
// nil and the error is the handler's first error.
func Parse(filename string, data []byte, handler *reporter.Handler) (*ast.GrammarFile, error) {
	return ParseAt(filename, data, 0, handler)
}

// ParseAt is Parse with a line offset added to all reported and recorded
// line numbers, for grammar text embedded in a host document.
func ParseAt(filename string, data []byte, lineOffset int, handler *reporter.Handler) (*ast.GrammarFile, error) {
	p := &grammarParser{
		lex:     newLexer(filename, data, lineOffset, handler),
		handler: handler,
	}
	p.next()
	file := p.parseFile()
	if p.failed {
		return nil, handler.Error()
	}
	return file, nil
}

type grammarParser struct {
	lex     *grammarLex
	handler *reporter.Handler

	tok    token
	ahead  *token
	failed bool
}

func (p *grammarParser) next() {
	if p.ahead != nil {
		p.tok = *p.ahead
		p.ahead = nil
	} else {
		p.tok = p.lex.Next()
	}
	if p.lex.failed {
		p.failed = true
	}
}

func (p *grammarParser) peek() token {
	if p.ahead == nil {
		t := p.lex.Next()
		p.ahead = &t
		if p.lex.failed {
			p.failed = true
		}
	}
	return *p.ahead
}

// fail reports a syntax error at the current token and puts the parser into
// its terminal state. Lexical failures are already reported by the lexer, so
// only the first parser-level problem produces a message.
func (p *grammarParser) fail(format string, args ...interface{}) {
	if !p.failed {
		p.failed = true
		_ = p.handler.HandleErrorf(p.tok.pos, format, args...)
	}
	p.tok = token{kind: tkEOF, pos: p.tok.pos}
	p.ahead = nil
}

func (p *grammarParser) expectSym(s string, where string) {
	if p.failed {
		return
	}
	if !p.tok.isSym(s) {
		p.fail("expected %q %s, got %q", s, where, p.tok.text)
		return
	}
	p.next()
}

func (p *grammarParser) expectIdent(where string) token {
	if p.failed {
		return p.tok
	}
	if p.tok.kind != tkIdent {
		p.fail("expected identifier %s, got %q", where, p.tok.text)
		return p.tok
	}
	t := p.tok
	p.next()
	return t
}

func (p *grammarParser) parseFile() *ast.GrammarFile {
	file := &ast.GrammarFile{Pos: p.tok.pos}

	p.parseHeader(file)
	p.parsePrequel(file)

	for !p.failed && p.tok.kind != tkEOF {
		if p.tok.isIdent("mode") {
			p.parseMode(file)
			continue
		}
		if rule := p.parseRule(); rule != nil {
			file.Rules = append(file.Rules, rule)
		}
	}
	return file
}

func (p *grammarParser) parseHeader(file *ast.GrammarFile) {
	switch {
	case p.tok.isIdent("lexer"):
		file.Kind = ast.GrammarLexer
		p.next()
	case p.tok.isIdent("parser"):
		file.Kind = ast.GrammarParser
		p.next()
	}
	if !p.tok.isIdent("grammar") {
		p.fail("expected grammar declaration, got %q", p.tok.text)
		return
	}
	p.next()
	file.Name = p.expectIdent("as grammar name").text
	p.expectSym(";", "after grammar declaration")
}

func (p *grammarParser) parsePrequel(file *ast.GrammarFile) {
	for !p.failed {
		switch {
		case p.tok.isIdent("options"):
			p.next()
			p.parseOptionsBlock(file)
		case p.tok.isIdent("import"):
			p.next()
			for {
				t := p.expectIdent("as imported grammar name")
				if p.failed {
					return
				}
				file.Delegates = append(file.Delegates, &ast.DelegateDecl{Pos: t.pos, Name: t.text})
				if p.tok.isSym(",") {
					p.next()
					continue
				}
				break
			}
			p.expectSym(";", "after import statement")
		case p.tok.isIdent("tokens"):
			p.next()
			for _, name := range p.parseNameBlock("tokens block") {
				file.Tokens = append(file.Tokens, name)
			}
		case p.tok.isIdent("channels"):
			p.next()
			p.parseNameBlock("channels block")
		case p.tok.isSym("@"):
			p.parseNamedAction()
		default:
			return
		}
	}
}

// parseOptionsBlock splits an `options {...}` body into name=value entries.
// The whole block arrives as a single action token; splitting on ';' is
// enough for the values the loader cares about.
func (p *grammarParser) parseOptionsBlock(file *ast.GrammarFile) {
	if p.tok.kind != tkAction {
		p.fail("expected options block, got %q", p.tok.text)
		return
	}
	body := strings.Trim(p.tok.text, "{}")
	pos := p.tok.pos
	p.next()
	for _, entry := range strings.Split(body, ";") {
		name, value, found := strings.Cut(entry, "=")
		if !found {
			continue
		}
		file.Options = append(file.Options, &ast.OptionDecl{
			Pos:   pos,
			Name:  strings.TrimSpace(name),
			Value: strings.TrimSpace(value),
		})
	}
}

// parseNameBlock reads a `{ Name, Name }` block, which the lexer delivers
// as one action token, and returns the listed names.
func (p *grammarParser) parseNameBlock(where string) []*ast.TokenName {
	if p.tok.kind != tkAction {
		p.fail("expected %s, got %q", where, p.tok.text)
		return nil
	}
	body := strings.Trim(p.tok.text, "{}")
	pos := p.tok.pos
	p.next()
	var names []*ast.TokenName
	for _, entry := range strings.Split(body, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		names = append(names, &ast.TokenName{Pos: pos, Name: entry})
	}
	return names
}

// parseNamedAction consumes `@name {...}` or `@scope::name {...}`.
func (p *grammarParser) parseNamedAction() {
	p.expectSym("@", "before named action")
	p.expectIdent("as action name")
	if p.tok.isSym("::") {
		p.next()
		p.expectIdent("as action name")
	}
	if p.failed {
		return
	}
	if p.tok.kind != tkAction {
		p.fail("expected action body, got %q", p.tok.text)
		return
	}
	p.next()
}

func (p *grammarParser) parseMode(file *ast.GrammarFile) {
	mode := &ast.ModeDecl{Pos: p.tok.pos}
	p.next()
	mode.Name = p.expectIdent("as mode name").text
	p.expectSym(";", "after mode declaration")

	for !p.failed && p.tok.kind != tkEOF && !p.tok.isIdent("mode") {
		rule := p.parseRule()
		if rule == nil {
			break
		}
		lexRule, ok := rule.(*ast.LexerRuleDecl)
		if !ok {
			p.fail("parser rule %q not allowed inside a mode", rule.(*ast.ParserRuleDecl).Name)
			return
		}
		mode.Rules = append(mode.Rules, lexRule)
	}
	file.Modes = append(file.Modes, mode)
}

func (p *grammarParser) parseRule() ast.RuleDecl {
	if p.failed {
		return nil
	}
	docs := p.tok.leading
	pos := p.tok.pos

	fragment := false
	if p.tok.isIdent("fragment") {
		fragment = true
		p.next()
	}
	name := p.expectIdent("as rule name")
	if p.failed {
		return nil
	}

	isLexer := fragment || unicode.IsUpper([]rune(name.text)[0])
	if !isLexer {
		p.skipRuleClauses()
	}
	p.expectSym(":", "after rule name")
	body := p.parseAltList()
	p.expectSym(";", "after rule body")
	if !isLexer {
		p.skipExceptionHandlers()
	}
	if p.failed {
		return nil
	}

	if isLexer {
		return &ast.LexerRuleDecl{Pos: pos, Docs: docs, Fragment: fragment, Name: name.text, Body: body}
	}
	return &ast.ParserRuleDecl{Pos: pos, Docs: docs, Name: name.text, Body: body}
}

// skipRuleClauses consumes the clauses a parser rule may carry between its
// name and the colon: an argument list, returns, locals, throws, options,
// and named actions. None of them contribute to rule structure. Bracketed
// clauses arrive as character-set tokens and braced ones as action tokens.
func (p *grammarParser) skipRuleClauses() {
	for !p.failed {
		switch {
		case p.tok.kind == tkCharSet:
			p.next()
		case p.tok.isIdent("returns") || p.tok.isIdent("locals"):
			p.next()
			if p.tok.kind != tkCharSet {
				p.fail("expected bracketed clause, got %q", p.tok.text)
				return
			}
			p.next()
		case p.tok.isIdent("throws"):
			p.next()
			p.expectIdent("as exception name")
			for p.tok.isSym(",") {
				p.next()
				p.expectIdent("as exception name")
			}
		case p.tok.isIdent("options"):
			p.next()
			if p.tok.kind != tkAction {
				p.fail("expected options block, got %q", p.tok.text)
				return
			}
			p.next()
		case p.tok.isSym("@"):
			p.parseNamedAction()
		default:
			return
		}
	}
}

// skipExceptionHandlers consumes `catch [...] {...}` and `finally {...}`
// clauses after a parser rule.
func (p *grammarParser) skipExceptionHandlers() {
	for !p.failed && p.tok.isIdent("catch") {
		p.next()
		if p.tok.kind != tkCharSet {
			p.fail("expected exception parameter, got %q", p.tok.text)
			return
		}
		p.next()
		if p.tok.kind != tkAction {
			p.fail("expected exception handler body, got %q", p.tok.text)
			return
		}
		p.next()
	}
	if !p.failed && p.tok.isIdent("finally") {
		p.next()
		if p.tok.kind != tkAction {
			p.fail("expected finally body, got %q", p.tok.text)
			return
		}
		p.next()
	}
}

func (p *grammarParser) parseAltList() ast.Expr {
	pos := p.tok.pos
	var alts []ast.Expr
	for !p.failed {
		alts = append(alts, p.parseAlternative())
		if p.tok.isSym("|") {
			p.next()
			continue
		}
		break
	}
	return &ast.ChoiceExpr{Pos: pos, Alts: alts}
}

func (p *grammarParser) parseAlternative() ast.Expr {
	pos := p.tok.pos
	var items []ast.Expr
	for !p.failed {
		if p.tok.kind == tkEOF || p.tok.isSym("|") || p.tok.isSym(";") || p.tok.isSym(")") {
			break
		}
		if p.tok.isSym("#") {
			p.next()
			p.expectIdent("as alternative label")
			continue
		}
		if p.tok.isSym("->") {
			p.skipLexerCommands()
			continue
		}
		item := p.parseElement()
		if item == nil {
			break
		}
		items = append(items, item)
	}
	return &ast.SeqExpr{Pos: pos, Items: items}
}

// skipLexerCommands consumes `-> cmd, cmd(arg)` at the end of a lexer
// alternative.
func (p *grammarParser) skipLexerCommands() {
	p.expectSym("->", "before lexer command")
	for !p.failed {
		p.expectIdent("as lexer command")
		if p.tok.isSym("(") {
			p.next()
			if p.tok.kind != tkIdent && p.tok.kind != tkInt {
				p.fail("expected lexer command argument, got %q", p.tok.text)
				return
			}
			p.next()
			p.expectSym(")", "after lexer command argument")
		}
		if p.tok.isSym(",") {
			p.next()
			continue
		}
		return
	}
}

func (p *grammarParser) parseElement() ast.Expr {
	if p.failed {
		return nil
	}
	if p.tok.kind == tkAction {
		pos := p.tok.pos
		p.next()
		predicate := false
		if p.tok.isSym("?") {
			predicate = true
			p.next()
		}
		return &ast.ActionExpr{Pos: pos, Predicate: predicate}
	}
	if p.tok.kind == tkIdent {
		// A label: `x=atom` or `x+=atom`. Labels have no model meaning.
		if next := p.peek(); next.isSym("=") || next.isSym("+=") {
			p.next()
			p.next()
			return p.parseElement()
		}
	}
	atom := p.parseAtom()
	if atom == nil {
		return nil
	}
	return p.applySuffix(atom)
}

func (p *grammarParser) applySuffix(atom ast.Expr) ast.Expr {
	if p.failed || p.tok.kind != tkSym {
		return atom
	}
	var op byte
	var nonGreedy bool
	switch p.tok.text {
	case "?":
		op = '?'
	case "??":
		op, nonGreedy = '?', true
	case "+":
		op = '+'
	case "+?":
		op, nonGreedy = '+', true
	case "*":
		op = '*'
	case "*?":
		op, nonGreedy = '*', true
	default:
		return atom
	}
	pos := p.tok.pos
	p.next()
	return &ast.QuantExpr{Pos: pos, Op: op, NonGreedy: nonGreedy, Child: atom}
}

func (p *grammarParser) parseAtom() ast.Expr {
	switch p.tok.kind {
	case tkLiteral:
		start := p.tok
		p.next()
		if p.tok.isSym("..") {
			p.next()
			if p.tok.kind != tkLiteral {
				p.fail("expected upper bound of character range, got %q", p.tok.text)
				return nil
			}
			end := p.tok
			p.next()
			return &ast.RangeExpr{Pos: start.pos, Low: start.text, High: end.text}
		}
		return &ast.LiteralExpr{Pos: start.pos, Text: start.text}
	case tkCharSet:
		e := &ast.CharSetExpr{Pos: p.tok.pos, Text: p.tok.text}
		p.next()
		return e
	case tkIdent:
		e := &ast.RefExpr{Pos: p.tok.pos, Name: p.tok.text}
		p.next()
		return e
	}
	switch {
	case p.tok.isSym("."):
		e := &ast.DotExpr{Pos: p.tok.pos}
		p.next()
		return e
	case p.tok.isSym("~"):
		pos := p.tok.pos
		p.next()
		child := p.parseAtom()
		if child == nil {
			return nil
		}
		return &ast.NotExpr{Pos: pos, Child: child}
	case p.tok.isSym("("):
		pos := p.tok.pos
		p.next()
		body := p.parseAltList()
		p.expectSym(")", "after group")
		if p.failed {
			return nil
		}
		if choice, ok := body.(*ast.ChoiceExpr); ok {
			choice.Pos = pos
		}
		return body
	}
	p.fail("unexpected %q in rule body", p.tok.text)
	return nil
}
