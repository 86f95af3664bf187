// Package errs defines the closed set of error kinds produced by the
// compiler driver: parse, type, eval, layout, io and internal.
package errs

import "fmt"

// Location identifies a position the compiler driver can point a
// diagnostic at.
type Location struct {
	File   string
	Line   int
	Col    int
	Offset int
}

func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("offset %d", l.Offset)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}

// Annotation is an extra source location attached to an error, used for
// "see also" style notes (e.g. overload candidates).
type Annotation struct {
	Loc     Location
	Message string
}

// Kind is the closed set of error kinds from which an Error is drawn.
// Only Internal aborts the compile; every other kind becomes a diagnostic
// that the driver can recover from or report and continue.
type Kind int

const (
	Parse Kind = iota
	Type
	Eval
	Layout
	IO
	Internal
)

func (k Kind) String() string {
	switch k {
	case Parse:
		return "parse"
	case Type:
		return "type"
	case Eval:
		return "eval"
	case Layout:
		return "layout"
	case IO:
		return "io"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every fallible operation in the
// core. It always carries a kind and, except for some IO errors, a
// source location.
type Error struct {
	Kind Kind
	Loc  Location
	Msg  string
	Info []Annotation
}

func (e *Error) Error() string {
	s := fmt.Sprintf("%s: %s: %s", e.Kind, e.Loc, e.Msg)
	for _, a := range e.Info {
		s += fmt.Sprintf("\n  note: %s: %s", a.Loc, a.Message)
	}
	return s
}

// New builds an Error of the given kind at loc.
func New(kind Kind, loc Location, format string, args ...any) *Error {
	return &Error{Kind: kind, Loc: loc, Msg: fmt.Sprintf(format, args...)}
}

// WithInfo returns a copy of e with an additional annotation appended.
func (e *Error) WithInfo(loc Location, format string, args ...any) *Error {
	cp := *e
	cp.Info = append(append([]Annotation{}, e.Info...), Annotation{
		Loc:     loc,
		Message: fmt.Sprintf(format, args...),
	})
	return &cp
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}

// Abort panics with a Kind-Internal error. The driver recovers panics of
// this type at its top level and turns them into an exit code 2, per the
// rule that internal errors abort rather than propagate as values.
func Abort(format string, args ...any) {
	panic(&Error{Kind: Internal, Msg: fmt.Sprintf(format, args...)})
}
