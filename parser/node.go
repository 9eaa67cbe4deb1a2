package parser

import (
	"github.com/zostay/flexar/diag"
	"github.com/zostay/flexar/token"
)

// Node is the result of a successful rule: the payload built by the rule and
// the span of every token consumed to build it.
type Node[P any] struct {
	Span    token.Span
	Payload P
}

// Failure is a recoverable parse error. Depth counts the requirements that
// matched before the failure; the parser prefers the failure with the greatest
// depth when reporting on a set of failed alternatives.
type Failure struct {
	Depth int
	Diag  *diag.Diagnostic
}

func (f *Failure) Error() string {
	return f.Diag.Error()
}

func (f *Failure) Unwrap() error {
	return f.Diag
}

// furthest returns whichever failure got further. Ties keep a, the one
// recorded first.
func furthest(a, b *Failure) *Failure {
	if a == nil || (b != nil && b.Depth > a.Depth) {
		return b
	}
	return a
}
