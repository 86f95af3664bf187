// Package diag collects and renders diagnostics gathered while compiling
// one document, following the plain fmt/os.Stderr reporting style the
// teacher's cmd/pdf2img and cmd/pdftohtml-go tools use — this module has
// no third-party logging dependency to defer to, and neither does any
// repository in the reference pack.
package diag

import (
	"fmt"
	"io"

	"sap/errs"
)

// Severity distinguishes diagnostics that abort the current object
// (errors) from ones that are merely informative (warnings).
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Diagnostic is a single reportable event produced during compilation.
type Diagnostic struct {
	Severity Severity
	Kind     errs.Kind
	Loc      errs.Location
	Message  string
	Info     []errs.Annotation
}

// Bag accumulates diagnostics for one compile run.
type Bag struct {
	items []Diagnostic
}

// Report appends a diagnostic built from err at severity sev, as given
// by the caller; err's kind is recorded but does not change sev.
func (b *Bag) Report(err *errs.Error, sev Severity) {
	b.items = append(b.items, Diagnostic{
		Severity: sev,
		Kind:     err.Kind,
		Loc:      err.Loc,
		Message:  err.Msg,
		Info:     err.Info,
	})
}

// Warnf appends a plain warning with no underlying *errs.Error.
func (b *Bag) Warnf(loc errs.Location, format string, args ...any) {
	b.items = append(b.items, Diagnostic{
		Severity: Warning,
		Loc:      loc,
		Message:  fmt.Sprintf(format, args...),
	})
}

// HasErrors reports whether any diagnostic at Error severity was
// recorded.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// All returns every diagnostic recorded so far, in report order.
func (b *Bag) All() []Diagnostic {
	return b.items
}

// WriteTo renders every diagnostic to w as one
// "<severity>: <location>: <message>" line, followed by one indented
// note line per Info entry.
func (b *Bag) WriteTo(w io.Writer) {
	for _, d := range b.items {
		fmt.Fprintf(w, "%s: %s: %s\n", d.Severity, d.Loc, d.Message)
		for _, a := range d.Info {
			fmt.Fprintf(w, "  note: %s: %s\n", a.Loc, a.Message)
		}
	}
}
