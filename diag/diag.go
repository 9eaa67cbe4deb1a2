// Package diag holds the diagnostic model shared by the scanner and the
// parser. A Diagnostic is built from a Catalog entry and either returned as an
// ordinary error or thrown to abort a whole scan or parse.
package diag

import (
	"fmt"
	"strings"

	"github.com/zostay/flexar/token"
)

// Code is the stable identifier of a kind of diagnostic, e.g. "E001".
type Code string

// Severity tells whether a diagnostic may still be recovered from by trying
// another grammar path.
type Severity int

const (
	// Recoverable diagnostics are returned and compared by the parser.
	Recoverable Severity = iota

	// Fatal diagnostics abort the whole scan or parse.
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Recoverable:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Diagnostic is a structured error. Message has every template slot filled
// in, and Spans lists the primary span followed by each span the message
// referred to.
type Diagnostic struct {
	Code     Code
	Title    string
	Message  string
	Spans    []token.Span
	Severity Severity
}

// Primary returns the span the diagnostic is reported at.
func (d *Diagnostic) Primary() token.Span {
	if len(d.Spans) == 0 {
		return token.Span{}
	}
	return d.Spans[0]
}

// Error renders the diagnostic on a single line:
//
//	fatal[E002] string not closed: expected `"` to close string opened at a.fx:1:1 (a.fx:1:7)
func (d *Diagnostic) Error() string {
	out := &strings.Builder{}
	fmt.Fprintf(out, "%s[%s] %s", d.Severity, d.Code, d.Title)
	if d.Message != "" {
		fmt.Fprintf(out, ": %s", d.Message)
	}
	if len(d.Spans) > 0 {
		fmt.Fprintf(out, " (%s)", d.Spans[0].Start)
	}
	return out.String()
}

// thrown wraps a diagnostic in flight between Throw and Recover.
type thrown struct {
	d *Diagnostic
}

// Throw aborts the current scan or parse with d. The entry point that called
// Recover returns d as its error. Thrown diagnostics are always fatal.
func (d *Diagnostic) Throw() {
	d.Severity = Fatal
	panic(thrown{d})
}

// Recover must be deferred by every entry point that may reach Throw. It turns
// a thrown diagnostic into *err and leaves every other panic alone.
func Recover(err *error) {
	if r := recover(); r != nil {
		t, ok := r.(thrown)
		if !ok {
			panic(r)
		}
		*err = t.d
	}
}
