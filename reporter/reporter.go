// Package reporter contains the diagnostic sink of the module. Every
// non-fatal anomaly of a grammar load (syntax errors, missing imports,
// malformed directives) is routed through a Handler to a caller-supplied
// Reporter; nothing in the load pipeline fails because of them.
package reporter

import (
	"github.com/AmatanHead/sphinx-a4doc/ast"
)

// ErrorReporter is responsible for reporting the given syntax error. If the
// reporter returns a non-nil error, parsing of the current file aborts with
// that error. If it returns nil, parsing continues, allowing the parser to
// report as many errors as it can find.
type ErrorReporter func(err ErrorWithPos) error

// WarningReporter is responsible for reporting the given warning. Warnings
// indicate recoverable anomalies: the load degrades to a documented default
// and proceeds. The details are supplied via an error type.
type WarningReporter func(ErrorWithPos)

type Reporter interface {
	Error(ErrorWithPos) error
	Warning(ErrorWithPos)
}

func NewReporter(errs ErrorReporter, warnings WarningReporter) Reporter {
	return reporterFuncs{errs: errs, warnings: warnings}
}

type reporterFuncs struct {
	errs     ErrorReporter
	warnings WarningReporter
}

func (r reporterFuncs) Error(err ErrorWithPos) error {
	if r.errs == nil {
		return err
	}
	return r.errs(err)
}

func (r reporterFuncs) Warning(err ErrorWithPos) {
	if r.warnings != nil {
		r.warnings(err)
	}
}

// Handler accumulates the diagnostic state of a single load. Loading is
// single-threaded and synchronous, so the handler carries no locking; a
// path is populated exactly once and read thereafter.
type Handler struct {
	reporter Reporter

	errsReported bool
	err          error
}

func NewHandler(rep Reporter) *Handler {
	if rep == nil {
		rep = NewReporter(nil, nil)
	}
	return &Handler{reporter: rep}
}

// HandleErrorf reports a syntax error at the given position. The returned
// error is non-nil if the reporter chose to abort, in which case the same
// error is returned for every subsequent call.
func (h *Handler) HandleErrorf(pos ast.SourcePos, format string, args ...interface{}) error {
	return h.HandleError(Errorf(pos, format, args...))
}

func (h *Handler) HandleError(err error) error {
	if h.err != nil {
		return h.err
	}
	if ewp, ok := err.(ErrorWithPos); ok {
		h.errsReported = true
		err = h.reporter.Error(ewp)
	}
	h.err = err
	return err
}

// HandleWarningf reports a recoverable anomaly at the given position.
func (h *Handler) HandleWarningf(pos ast.SourcePos, format string, args ...interface{}) {
	h.reporter.Warning(Errorf(pos, format, args...))
}

func (h *Handler) HandleWarning(pos ast.SourcePos, err error) {
	h.reporter.Warning(Error(pos, err))
}

// ErrorsReported reports whether any syntax error was handled, regardless
// of whether the reporter chose to abort.
func (h *Handler) ErrorsReported() bool {
	return h.errsReported
}

// Error returns the handler's resulting error: the reporter's abort error
// if there was one, ErrInvalidSource if errors were reported but swallowed,
// and nil otherwise.
func (h *Handler) Error() error {
	if h.errsReported && h.err == nil {
		return ErrInvalidSource
	}
	return h.err
}

// ReporterError returns the abort error returned by the reporter, if any.
func (h *Handler) ReporterError() error {
	return h.err
}
