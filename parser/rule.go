package parser

import (
	"strings"

	"github.com/zostay/go-std/slices"

	"github.com/zostay/flexar/cursor"
	"github.com/zostay/flexar/token"
)

// Rule is a named grammar rule producing nodes with payload P. A rule is an
// ordered list of alternatives plus a fallback used when none of them got past
// its first requirement.
//
// Rules are created with NewRule and given their alternatives with Define, so
// that rules may refer to each other, and to themselves, before they are
// defined.
type Rule[P any] struct {
	name     string
	alts     []*Alt[P]
	fallback Fallback[P]
}

// NewRule returns an empty rule. Until Define is called, every parse of the
// rule fails with a no-alternative diagnostic.
func NewRule[P any](name string) *Rule[P] {
	return &Rule[P]{name: name}
}

// Define sets the rule's fallback and alternatives, replacing any earlier
// definition. A nil fallback reports diag.CodeNoAlternative.
func (r *Rule[P]) Define(fallback Fallback[P], alts ...*Alt[P]) *Rule[P] {
	r.fallback = fallback
	r.alts = alts
	return r
}

// Name returns the name of the rule.
func (r *Rule[P]) Name() string {
	return r.name
}

func (r *Rule[P]) String() string {
	return r.name
}

// Parse matches the rule at the cursor. Alternatives are tried in order on a
// spawned cursor and the first one to match is committed, moving c past the
// tokens it consumed. On failure c is not moved.
//
// When every alternative fails, the failure that got furthest is returned, the
// earliest alternative winning a tie. If none got past its first requirement,
// the rule's fallback decides the outcome instead.
func (r *Rule[P]) Parse(c *cursor.Tokens) (Node[P], *Failure) {
	f := &frame[P]{
		rule:  r.name,
		c:     c,
		b:     &Bindings{},
		start: c.Position(),
		from:  c.Index(),
	}

	c.Trace(cursor.StageTry, r.name)

	n, fail, ok := f.alternatives(r.alts)
	if ok {
		c.Trace(cursor.StageGot, r.name, n.Span)
		return n, nil
	}

	if fail == nil || fail.Depth == 0 {
		n, fail = f.fallback(r.fallback)
		if fail == nil {
			c.Trace(cursor.StageGot, r.name, n.Span)
			return n, nil
		}
	}

	c.Trace(cursor.StageFail, r.name, fail)
	return Node[P]{}, fail
}

// Alt is one alternative of a rule: a sequence of requirements, then either a
// Yield building the payload from the captures, or a sub-body of further
// alternatives tried once the sequence has matched.
type Alt[P any] struct {
	reqs     []Requirement
	yield    func(b *Bindings) P
	sub      bool
	fallback Fallback[P]
	alts     []*Alt[P]
}

// Seq returns an alternative requiring reqs in order.
func Seq[P any](reqs ...Requirement) *Alt[P] {
	return &Alt[P]{reqs: reqs}
}

// Yield sets the function building the payload once every requirement has
// matched. Without it the payload is the zero P.
func (a *Alt[P]) Yield(fn func(b *Bindings) P) *Alt[P] {
	a.yield = fn
	return a
}

// Then gives the alternative a sub-body. After the requirements of a match,
// alts are tried in order from there, each seeing the captures made so far.
// If none of them gets further than the requirements of a did, fallback
// resolves the sub-body; a nil fallback leaves the alternative failed.
//
// An alternative with a sub-body takes its payload from the sub-body, so any
// Yield on it is not used.
func (a *Alt[P]) Then(fallback Fallback[P], alts ...*Alt[P]) *Alt[P] {
	a.sub = true
	a.fallback = fallback
	a.alts = alts
	return a
}

func (a *Alt[P]) String() string {
	return strings.Join(slices.Map(a.reqs, Requirement.String), " ")
}

// frame is one attempt at a rule or sub-body. c is the cursor the attempt
// commits to, depth the number of requirements matched before it began.
type frame[P any] struct {
	rule  string
	c     *cursor.Tokens
	b     *Bindings
	depth int
	start token.Span
	from  int
}

// span returns the span from the start of the rule to the last token c
// consumed, or an empty span at the start when nothing was consumed.
func (f *frame[P]) span(c *cursor.Tokens) token.Span {
	return spanSince(c, f.from, f.start)
}

// alternatives tries each of alts, returning the first node to match or else
// the furthest failure.
func (f *frame[P]) alternatives(alts []*Alt[P]) (Node[P], *Failure, bool) {
	var last *Failure
	for _, alt := range alts {
		n, fail := f.try(alt)
		if fail == nil {
			return n, nil, true
		}
		last = furthest(last, fail)
	}
	return Node[P]{}, last, false
}

// try matches a single alternative on a spawned cursor, committing to f.c
// only if the alternative, and its sub-body if any, succeeds.
func (f *frame[P]) try(a *Alt[P]) (Node[P], *Failure) {
	child := f.c.Spawn()
	b := f.b.fork()
	depth := f.depth

	child.Trace(cursor.StageTry, f.rule, a)
	for _, req := range a.reqs {
		at, idx := child.Position(), child.Index()
		v, fail := req.require(child)
		if fail != nil {
			child.Discard()
			return Node[P]{}, &Failure{Depth: depth + fail.Depth, Diag: fail.Diag}
		}

		b.add(nameOf(req), v, spanSince(child, idx, at))
		depth++
	}

	if !a.sub {
		var p P
		if a.yield != nil {
			p = a.yield(b)
		}

		n := Node[P]{Span: f.span(child), Payload: p}
		child.Keep()
		return n, nil
	}

	inner := &frame[P]{
		rule:  f.rule,
		c:     child,
		b:     b,
		depth: depth,
		start: f.start,
		from:  f.from,
	}

	n, fail, ok := inner.alternatives(a.alts)
	if !ok && (fail == nil || fail.Depth <= depth) && (fail == nil || a.fallback != nil) {
		n, fail = inner.fallback(a.fallback)
		ok = fail == nil
	}

	if !ok {
		child.Discard()
		return Node[P]{}, fail
	}

	child.Keep()
	return n, nil
}

// spanSince returns the span of the tokens c consumed since index from, whose
// token was at. Nothing consumed gives an empty span at the start of at.
func spanSince(c *cursor.Tokens, from int, at token.Span) token.Span {
	if c.Index() <= from {
		return at.Start.Point()
	}

	prev, _ := c.Previous()
	return at.Combine(prev.Span)
}
