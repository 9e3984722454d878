package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/AmatanHead/sphinx-a4doc/ast"
	"github.com/AmatanHead/sphinx-a4doc/reporter"
)

type runeReader struct {
	data []byte
	pos  int
	err  error
	mark int
}

func (rr *runeReader) readRune() (r rune, size int, err error) {
	if rr.err != nil {
		return 0, 0, rr.err
	}
	if rr.pos == len(rr.data) {
		rr.err = io.EOF
		return 0, 0, rr.err
	}
	r, sz := utf8.DecodeRune(rr.data[rr.pos:])
	if r == utf8.RuneError && sz == 1 {
		rr.err = fmt.Errorf("invalid UTF8 at offset %d: %x", rr.pos, rr.data[rr.pos])
		return 0, 0, rr.err
	}
	rr.pos += sz
	return r, sz, nil
}

func (rr *runeReader) offset() int {
	return rr.pos
}

func (rr *runeReader) unreadRune(sz int) {
	newPos := rr.pos - sz
	if newPos < rr.mark {
		panic("unread past mark")
	}
	rr.pos = newPos
}

func (rr *runeReader) setMark() {
	rr.mark = rr.pos
}

func (rr *runeReader) getMark() string {
	return string(rr.data[rr.mark:rr.pos])
}

type tokenKind int

const (
	tkEOF tokenKind = iota
	tkIdent
	tkInt
	tkLiteral // quoted string, raw text with quotes
	tkCharSet // bracketed class, raw text with brackets
	tkAction  // braced action block, raw text with braces
	tkSym
)

type token struct {
	kind    tokenKind
	text    string
	pos     ast.SourcePos
	leading []ast.Comment
}

func (t token) isSym(s string) bool {
	return t.kind == tkSym && t.text == s
}

func (t token) isIdent(s string) bool {
	return t.kind == tkIdent && t.text == s
}

var utf8Bom = []byte{0xEF, 0xBB, 0xBF}

type grammarLex struct {
	input      *runeReader
	filename   string
	lineOffset int
	handler    *reporter.Handler

	line      int // physical line of the read head, 1-based
	lineStart int // byte offset where the current line starts

	comments    []ast.Comment
	lastSymLine int // physical line where the last non-comment token ended
	failed      bool
}

func newLexer(filename string, data []byte, lineOffset int, handler *reporter.Handler) *grammarLex {
	data = bytes.TrimPrefix(data, utf8Bom)
	return &grammarLex{
		input:      &runeReader{data: data},
		filename:   filename,
		lineOffset: lineOffset,
		handler:    handler,
		line:       1,
	}
}

func (l *grammarLex) pos() ast.SourcePos {
	return ast.SourcePos{
		Filename: l.filename,
		Line:     l.line + l.lineOffset,
		Col:      l.input.offset() - l.lineStart + 1,
	}
}

func (l *grammarLex) maybeNewLine(c rune) {
	if c == '\n' {
		l.line++
		l.lineStart = l.input.offset()
	}
}

// emit finishes the token that started at pos, handing it the accumulated
// leading comments.
func (l *grammarLex) emit(kind tokenKind, text string, pos ast.SourcePos) token {
	l.lastSymLine = l.line
	comments := l.comments
	l.comments = nil
	return token{kind: kind, text: text, pos: pos, leading: comments}
}

func (l *grammarLex) fail(pos ast.SourcePos, format string, args ...interface{}) token {
	if !l.failed {
		l.failed = true
		_ = l.handler.HandleErrorf(pos, format, args...)
	}
	return token{kind: tkEOF, pos: pos}
}

func (l *grammarLex) Next() token {
	if l.failed {
		return token{kind: tkEOF, pos: l.pos()}
	}

	for {
		l.input.setMark()
		start := l.pos()
		startLine := l.line

		c, _, err := l.input.readRune()
		if err == io.EOF {
			return l.emit(tkEOF, "", start)
		}
		if err != nil {
			return l.fail(start, "%v", err)
		}

		if strings.ContainsRune("\n\r\t\f\v ", c) {
			l.maybeNewLine(c)
			continue
		}

		if c == '/' {
			cn, szn, err := l.input.readRune()
			if err != nil || (cn != '/' && cn != '*') {
				if err == nil {
					l.input.unreadRune(szn)
				}
				return l.fail(start, "invalid character %q", c)
			}
			var text string
			if cn == '/' {
				l.skipToEndOfLineComment()
				text = strings.TrimRight(l.input.getMark(), "\r\n")
			} else {
				if ok := l.skipToEndOfBlockComment(); !ok {
					return l.fail(start, "block comment never terminates, unexpected EOF")
				}
				text = l.input.getMark()
			}
			// A comment on the same line as the preceding token trails that
			// token; it is not doc trivia for what follows.
			if startLine == l.lastSymLine && len(l.comments) == 0 && l.lastSymLine != 0 {
				continue
			}
			l.comments = append(l.comments, ast.Comment{Text: text, Pos: start})
			continue
		}

		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			l.readIdentifier()
			return l.emit(tkIdent, l.input.getMark(), start)
		}

		if c >= '0' && c <= '9' {
			l.readDigits()
			return l.emit(tkInt, l.input.getMark(), start)
		}

		switch c {
		case '\'':
			return l.readStringLiteral(start)
		case '[':
			return l.readCharSet(start)
		case '{':
			return l.readAction(start)
		case ';', ':', '|', '(', ')', '~', ',', '#', '=', '@':
			if c == ':' && l.peekRune(':') {
				return l.emit(tkSym, "::", start)
			}
			return l.emit(tkSym, string(c), start)
		case '?':
			if l.peekRune('?') {
				return l.emit(tkSym, "??", start)
			}
			return l.emit(tkSym, "?", start)
		case '+':
			if l.peekRune('=') {
				return l.emit(tkSym, "+=", start)
			}
			if l.peekRune('?') {
				return l.emit(tkSym, "+?", start)
			}
			return l.emit(tkSym, "+", start)
		case '*':
			if l.peekRune('?') {
				return l.emit(tkSym, "*?", start)
			}
			return l.emit(tkSym, "*", start)
		case '.':
			if l.peekRune('.') {
				return l.emit(tkSym, "..", start)
			}
			return l.emit(tkSym, ".", start)
		case '-':
			if l.peekRune('>') {
				return l.emit(tkSym, "->", start)
			}
			return l.fail(start, "invalid character %q", c)
		}

		return l.fail(start, "invalid character %q", c)
	}
}

// peekRune consumes the next rune if it equals want.
func (l *grammarLex) peekRune(want rune) bool {
	c, sz, err := l.input.readRune()
	if err != nil {
		return false
	}
	if c != want {
		l.input.unreadRune(sz)
		return false
	}
	return true
}

func (l *grammarLex) readIdentifier() {
	for {
		c, sz, err := l.input.readRune()
		if err != nil {
			return
		}
		if c != '_' && (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			l.input.unreadRune(sz)
			return
		}
	}
}

func (l *grammarLex) readDigits() {
	for {
		c, sz, err := l.input.readRune()
		if err != nil {
			return
		}
		if c < '0' || c > '9' {
			l.input.unreadRune(sz)
			return
		}
	}
}

func (l *grammarLex) readStringLiteral(start ast.SourcePos) token {
	for {
		c, _, err := l.input.readRune()
		if err != nil {
			return l.fail(start, "unexpected EOF in string literal")
		}
		if c == '\n' {
			return l.fail(start, "encountered end-of-line before end of string literal")
		}
		if c == '\\' {
			if _, _, err := l.input.readRune(); err != nil {
				return l.fail(start, "unexpected EOF in string literal")
			}
			continue
		}
		if c == '\'' {
			return l.emit(tkLiteral, l.input.getMark(), start)
		}
	}
}

func (l *grammarLex) readCharSet(start ast.SourcePos) token {
	for {
		c, _, err := l.input.readRune()
		if err != nil {
			return l.fail(start, "unexpected EOF in character set")
		}
		if c == '\n' {
			return l.fail(start, "encountered end-of-line before end of character set")
		}
		if c == '\\' {
			if _, _, err := l.input.readRune(); err != nil {
				return l.fail(start, "unexpected EOF in character set")
			}
			continue
		}
		if c == ']' {
			return l.emit(tkCharSet, l.input.getMark(), start)
		}
	}
}

// readAction consumes a braced action block, tracking nested braces and
// skipping over string literals so braces inside them do not count.
func (l *grammarLex) readAction(start ast.SourcePos) token {
	depth := 1
	for {
		c, _, err := l.input.readRune()
		if err != nil {
			return l.fail(start, "unexpected EOF in action")
		}
		l.maybeNewLine(c)
		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return l.emit(tkAction, l.input.getMark(), start)
			}
		case '\'', '"':
			if ok := l.skipActionString(c); !ok {
				return l.fail(start, "unexpected EOF in action")
			}
		}
	}
}

func (l *grammarLex) skipActionString(quote rune) bool {
	for {
		c, _, err := l.input.readRune()
		if err != nil {
			return false
		}
		l.maybeNewLine(c)
		if c == '\\' {
			if _, _, err := l.input.readRune(); err != nil {
				return false
			}
			continue
		}
		if c == quote {
			return true
		}
	}
}

func (l *grammarLex) skipToEndOfLineComment() {
	for {
		c, _, err := l.input.readRune()
		if err != nil {
			return
		}
		if c == '\n' {
			l.maybeNewLine(c)
			return
		}
	}
}

func (l *grammarLex) skipToEndOfBlockComment() bool {
	for {
		c, _, err := l.input.readRune()
		if err != nil {
			return false
		}
		l.maybeNewLine(c)
		if c == '*' {
			c, sz, err := l.input.readRune()
			if err != nil {
				return false
			}
			if c == '/' {
				return true
			}
			l.input.unreadRune(sz)
		}
	}
}
