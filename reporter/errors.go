package reporter

import (
	"errors"
	"fmt"

	"github.com/AmatanHead/sphinx-a4doc/ast"
)

// ErrInvalidSource is a sentinel error returned by Handler.Error in the
// event that syntax errors were encountered but the configured
// ErrorReporter always returned nil.
var ErrInvalidSource = errors.New("parse failed: invalid grammar source")

// ErrorWithPos is an error about a grammar source file that includes
// information about the location in the file that caused the error.
//
// The value of Error() contains both the position and the underlying
// error. The value of Unwrap() is only the underlying error.
type ErrorWithPos interface {
	error
	GetPosition() ast.SourcePos
	Unwrap() error
}

func Error(pos ast.SourcePos, err error) ErrorWithPos {
	return errorWithSourcePos{pos: pos, underlying: err}
}

func Errorf(pos ast.SourcePos, format string, args ...interface{}) ErrorWithPos {
	return errorWithSourcePos{pos: pos, underlying: fmt.Errorf(format, args...)}
}

type errorWithSourcePos struct {
	underlying error
	pos        ast.SourcePos
}

func (e errorWithSourcePos) Error() string {
	return fmt.Sprintf("%s: %v", e.pos, e.underlying)
}

func (e errorWithSourcePos) GetPosition() ast.SourcePos {
	return e.pos
}

func (e errorWithSourcePos) Unwrap() error {
	return e.underlying
}

var _ ErrorWithPos = errorWithSourcePos{}
