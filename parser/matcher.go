package parser

import (
	"github.com/zostay/flexar/cursor"
	"github.com/zostay/flexar/diag"
	"github.com/zostay/flexar/token"
)

// Requirement is one step of an alternative. When it is satisfied it consumes
// zero or more tokens from the cursor and returns the value to capture. When it
// is not, it returns a failure whose depth is relative to the requirement.
type Requirement interface {
	require(c *cursor.Tokens) (any, *Failure)

	// String describes the requirement in traces and diagnostics.
	String() string
}

type tokReq struct {
	tag  token.Tag
	pred func(token.Token) bool
}

// Tok requires the current token to be tagged t. The token is captured.
func Tok(t token.Tag) Requirement {
	return tokReq{tag: t}
}

// TokIf requires the current token to be tagged t and to satisfy pred, which
// usually inspects the token's value.
func TokIf(t token.Tag, pred func(token.Token) bool) Requirement {
	return tokReq{tag: t, pred: pred}
}

func (r tokReq) require(c *cursor.Tokens) (any, *Failure) {
	tok, ok := c.Current()
	if !ok || tok.Tag != r.tag || (r.pred != nil && !r.pred(tok)) {
		return nil, &Failure{
			Diag: diag.Builtin.New(diag.CodeExpectedToken, c.Position(), r, found(c)),
		}
	}

	c.Advance()
	return tok, nil
}

func (r tokReq) String() string {
	if r.pred != nil {
		return r.tag.String() + "?"
	}
	return r.tag.String()
}

type subReq[P any] struct {
	rule *Rule[P]
}

// Sub requires rule to match at the cursor. The rule's Node is captured.
func Sub[P any](rule *Rule[P]) Requirement {
	return subReq[P]{rule}
}

func (r subReq[P]) require(c *cursor.Tokens) (any, *Failure) {
	n, f := r.rule.Parse(c)
	if f != nil {
		return nil, f
	}
	return n, nil
}

func (r subReq[P]) String() string {
	return "<" + r.rule.Name() + ">"
}

type callReq struct {
	fn func(c *cursor.Tokens) (any, *Failure)
}

// Call requires fn to succeed. fn receives a spawned cursor which is only
// committed when fn returns no failure.
func Call(fn func(c *cursor.Tokens) (any, *Failure)) Requirement {
	return callReq{fn}
}

func (r callReq) require(c *cursor.Tokens) (any, *Failure) {
	child := c.Spawn()
	v, f := r.fn(child)
	if f != nil {
		child.Discard()
		return nil, f
	}
	child.Keep()
	return v, nil
}

func (r callReq) String() string {
	return "<call>"
}

type bound struct {
	Requirement
	name string
}

// Bind captures the value of req under name as well as positionally.
func Bind(name string, req Requirement) Requirement {
	return bound{req, name}
}

func (r bound) String() string {
	return r.name + "=" + r.Requirement.String()
}

// nameOf returns the binding name of req, if any.
func nameOf(req Requirement) string {
	if b, ok := req.(bound); ok {
		return b.name
	}
	return ""
}

// found describes the token at the cursor for use in messages.
func found(c *cursor.Tokens) string {
	if tok, ok := c.Current(); ok {
		return "`" + tok.String() + "`"
	}
	return "end of input"
}
