package lexer

import (
	"fmt"

	"github.com/zostay/flexar/cursor"
	"github.com/zostay/flexar/diag"
	"github.com/zostay/flexar/match"
	"github.com/zostay/flexar/token"
)

// Scope is the state of one invocation of a structured rule: the spawned
// cursor it reads with and the named values it accumulates. A fresh Scope is
// made every time the rule is tried.
type Scope struct {
	c     *cursor.Chars
	start token.Position
	vars  map[string]any
	tag   token.Tag
	value any
}

// Cursor returns the rule's spawned cursor.
func (s *Scope) Cursor() *cursor.Chars {
	return s.c
}

// Current returns the rune under the rule's cursor.
func (s *Scope) Current() (rune, bool) {
	return s.c.Current()
}

// Pos returns the position of the rule's cursor.
func (s *Scope) Pos() token.Position {
	return s.c.Pos()
}

// Start returns where the rule began matching.
func (s *Scope) Start() token.Position {
	return s.start
}

// Text returns the text consumed so far by this rule.
func (s *Scope) Text() string {
	return s.c.Source().Slice(s.start.Combine(s.c.Pos()))
}

// Get returns the named value, or nil if it was never set.
func (s *Scope) Get(name string) any {
	return s.vars[name]
}

// Set stores a named value.
func (s *Scope) Set(name string, v any) {
	s.vars[name] = v
}

// String returns the named value as a string.
func (s *Scope) String(name string) string {
	v, _ := s.vars[name].(string)
	return v
}

// Bool returns the named value as a bool.
func (s *Scope) Bool(name string) bool {
	v, _ := s.vars[name].(bool)
	return v
}

// Int returns the named value as an int.
func (s *Scope) Int(name string) int {
	v, _ := s.vars[name].(int)
	return v
}

type flowKind int

const (
	flowNext flowKind = iota
	flowBreak
	flowDone
)

// flow tells the enclosing steps how to continue after a step ran.
type flow struct {
	kind  flowKind
	label string
}

var next = flow{kind: flowNext}

// Step is one instruction of a structured rule body.
type Step interface {
	run(s *Scope) flow
}

type stepFunc func(s *Scope) flow

func (f stepFunc) run(s *Scope) flow {
	return f(s)
}

func runSteps(s *Scope, steps []Step) flow {
	for _, step := range steps {
		if f := step.run(s); f.kind != flowNext {
			return f
		}
	}
	return next
}

// Body returns a structured Rule. When the current rune matches start, the
// steps run in order on a spawned cursor. The first Finalize step commits the
// spawned cursor and emits its token. If the steps run out without reaching a
// Finalize, the rule does not match and nothing is consumed.
//
// The start rune is not consumed automatically; begin the steps with Advance
// when it should be.
func Body(start match.RunePredicate, steps ...Step) Rule {
	return RuleFunc(func(c *cursor.Chars) (token.Token, Result) {
		if r, ok := c.Current(); !ok || !start(r) {
			return token.Token{}, NoMatch
		}

		s := &Scope{
			c:     c.Spawn(),
			start: c.Pos(),
			vars:  map[string]any{},
		}

		c.Trace(cursor.StageTry, "Body")
		if f := runSteps(s, steps); f.kind != flowDone {
			s.c.Discard()
			return token.Token{}, NoMatch
		}

		c = s.c.Keep()
		tok := emit(c, s.tag, s.value)
		c.Trace(cursor.StageGot, "Body", tok)
		return tok, Emit
	})
}

// Arg computes a value from the scope, for use by FinalizeWith and Raise.
type Arg func(s *Scope) any

// Lit returns an Arg that is always v.
func Lit(v any) Arg {
	return func(*Scope) any { return v }
}

// Var returns an Arg reading the named value.
func Var(name string) Arg {
	return func(s *Scope) any { return s.Get(name) }
}

// Found is an Arg describing the current rune, or "end of input".
func Found(s *Scope) any {
	if r, ok := s.Current(); ok {
		return string(r)
	}
	return "end of input"
}

// Opened is an Arg returning the position the rule began at. Passed to Raise,
// it adds that position as a second span of the diagnostic.
func Opened(s *Scope) any {
	return s.start
}

// Here reports the empty span at the rule's cursor.
func Here(s *Scope) token.Span {
	return s.c.Position()
}

// Cond is a test against the scope, for use by When.
type Cond func(s *Scope) bool

// Flag returns a Cond that is true when the named value is the bool true.
func Flag(name string) Cond {
	return func(s *Scope) bool { return s.Bool(name) }
}

// Not negates a Cond.
func Not(c Cond) Cond {
	return func(s *Scope) bool { return !c(s) }
}

// Advance consumes the current rune.
func Advance() Step {
	return stepFunc(func(s *Scope) flow {
		s.c.Advance()
		return next
	})
}

// Set declares or overwrites a named value.
func Set(name string, v any) Step {
	return stepFunc(func(s *Scope) flow {
		s.Set(name, v)
		return next
	})
}

// Push appends the current rune to the named string value.
func Push(name string) Step {
	return stepFunc(func(s *Scope) flow {
		if r, ok := s.Current(); ok {
			s.Set(name, s.String(name)+string(r))
		}
		return next
	})
}

// Do runs fn, which may read and update the scope freely.
func Do(fn func(s *Scope)) Step {
	return stepFunc(func(s *Scope) flow {
		fn(s)
		return next
	})
}

// If runs steps only when there is a current rune and it matches pred.
func If(pred match.RunePredicate, steps ...Step) Step {
	return stepFunc(func(s *Scope) flow {
		if r, ok := s.Current(); ok && pred(r) {
			return runSteps(s, steps)
		}
		return next
	})
}

// When runs steps only when cond holds.
func When(cond Cond, steps ...Step) Step {
	return stepFunc(func(s *Scope) flow {
		if cond(s) {
			return runSteps(s, steps)
		}
		return next
	})
}

// While runs steps repeatedly for as long as input remains, advancing one rune
// after each pass. A Break with the same label, or with an empty label, ends
// the loop. Breaks naming an outer loop pass through.
func While(label string, steps ...Step) Step {
	return stepFunc(func(s *Scope) flow {
		for {
			if _, ok := s.Current(); !ok {
				return next
			}

			f := runSteps(s, steps)
			switch f.kind {
			case flowBreak:
				if f.label == "" || f.label == label {
					return next
				}
				return f
			case flowDone:
				return f
			}

			s.c.Advance()
		}
	})
}

// Once runs steps a single time if input remains, then advances one rune.
func Once(steps ...Step) Step {
	return stepFunc(func(s *Scope) flow {
		if _, ok := s.Current(); !ok {
			return next
		}

		if f := runSteps(s, steps); f.kind != flowNext {
			return f
		}

		s.c.Advance()
		return next
	})
}

// Break ends the loop with the given label, or the innermost loop when label
// is empty. A Break that no loop catches ends the whole body without a match.
func Break(label string) Step {
	return stepFunc(func(*Scope) flow {
		return flow{kind: flowBreak, label: label}
	})
}

// Finalize commits the rule's cursor and emits a token tagged t with no value.
func Finalize(t token.Tag) Step {
	return FinalizeWith(t, nil)
}

// FinalizeWith commits the rule's cursor and emits a token tagged t whose
// value is computed by value.
func FinalizeWith(t token.Tag, value Arg) Step {
	return stepFunc(func(s *Scope) flow {
		s.tag = t
		if value != nil {
			s.value = value(s)
		}
		return flow{kind: flowDone}
	})
}

// Raise throws the diagnostic code from cat, reported at the span returned by
// at, with args filling the template slots. The scan is aborted.
func Raise(cat *diag.Catalog, code diag.Code, at func(s *Scope) token.Span, args ...Arg) Step {
	return stepFunc(func(s *Scope) flow {
		vals := make([]any, len(args))
		for i, arg := range args {
			vals[i] = arg(s)
		}

		d := cat.New(code, at(s), vals...)
		s.c.Trace(cursor.StageFail, "Raise", fmt.Sprint(code), d)
		d.Throw()
		return next
	})
}
