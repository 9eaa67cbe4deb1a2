package parser

import (
	"github.com/zostay/flexar/cursor"
	"github.com/zostay/flexar/diag"
)

// Fallback resolves a rule, or a sub-body, none of whose alternatives got past
// its first requirement.
type Fallback[P any] interface {
	resolve(f *frame[P]) (Node[P], *Failure)
}

// fallback resolves f with fb. A nil fallback reports that no alternative
// matched.
func (f *frame[P]) fallback(fb Fallback[P]) (Node[P], *Failure) {
	if fb == nil {
		return Node[P]{}, &Failure{
			Depth: f.depth,
			Diag:  diag.Builtin.New(diag.CodeNoAlternative, f.c.Position(), f.rule, found(f.c)),
		}
	}
	return fb.resolve(f)
}

// Arg computes a diagnostic argument from the captures made so far and the
// cursor where the fallback was reached.
type Arg func(b *Bindings, c *cursor.Tokens) any

// Lit returns an Arg that is always v.
func Lit(v any) Arg {
	return func(*Bindings, *cursor.Tokens) any { return v }
}

// Found is an Arg describing the current token, or "end of input".
func Found(_ *Bindings, c *cursor.Tokens) any {
	return found(c)
}

// SpanOf returns an Arg giving the span of capture i. The span becomes a
// secondary span of the diagnostic.
func SpanOf(i int) Arg {
	return func(b *Bindings, c *cursor.Tokens) any {
		if i < 0 || i >= len(b.Spans) {
			return c.Position()
		}
		return b.Spans[i]
	}
}

type raise[P any] struct {
	cat  *diag.Catalog
	code diag.Code
	args []Arg
}

// Raise returns a fallback failing with the diagnostic code from cat,
// reported at the current token, with args filling its template.
func Raise[P any](cat *diag.Catalog, code diag.Code, args ...Arg) Fallback[P] {
	return raise[P]{cat, code, args}
}

func (r raise[P]) resolve(f *frame[P]) (Node[P], *Failure) {
	vals := make([]any, len(r.args))
	for i, arg := range r.args {
		vals[i] = arg(f.b, f.c)
	}

	return Node[P]{}, &Failure{
		Depth: f.depth,
		Diag:  r.cat.New(r.code, f.c.Position(), vals...),
	}
}

type dflt[P any] struct {
	fn func(b *Bindings) P
}

// Default returns a fallback that always succeeds, with the payload built by
// fn from the captures made so far. For a rule that is an empty node at the
// rule's start. For a sub-body the node covers the requirements that led to
// it.
func Default[P any](fn func(b *Bindings) P) Fallback[P] {
	return dflt[P]{fn}
}

func (d dflt[P]) resolve(f *frame[P]) (Node[P], *Failure) {
	var p P
	if d.fn != nil {
		p = d.fn(f.b)
	}
	return Node[P]{Span: f.span(f.c), Payload: p}, nil
}

type raw[P any] struct {
	fn func(c *cursor.Tokens) (Node[P], *Failure)
}

// Raw returns a fallback handing the cursor to fn and returning what it
// returns. fn works on a spawned cursor that is committed only on success.
func Raw[P any](fn func(c *cursor.Tokens) (Node[P], *Failure)) Fallback[P] {
	return raw[P]{fn}
}

func (r raw[P]) resolve(f *frame[P]) (Node[P], *Failure) {
	child := f.c.Spawn()
	n, fail := r.fn(child)
	if fail != nil {
		child.Discard()
		return Node[P]{}, &Failure{Depth: f.depth + fail.Depth, Diag: fail.Diag}
	}

	child.Keep()
	return n, nil
}

type other[P, Q any] struct {
	rule *Rule[Q]
	wrap func(n Node[Q]) P
}

// Other returns a fallback delegating to rule, wrapping its node as a P.
func Other[P, Q any](rule *Rule[Q], wrap func(n Node[Q]) P) Fallback[P] {
	return other[P, Q]{rule, wrap}
}

func (o other[P, Q]) resolve(f *frame[P]) (Node[P], *Failure) {
	n, fail := o.rule.Parse(f.c)
	if fail != nil {
		return Node[P]{}, &Failure{Depth: f.depth + fail.Depth, Diag: fail.Diag}
	}
	return Node[P]{Span: f.span(f.c), Payload: o.wrap(n)}, nil
}
