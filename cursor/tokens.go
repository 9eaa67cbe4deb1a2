package cursor

import (
	"errors"
	"strings"

	"github.com/zostay/flexar/token"
)

// ErrNoTokens is the panic value of Tokens.Position on an empty token
// sequence. Callers are expected to reject empty input before parsing.
var ErrNoTokens = errors.New("cursor: position of an empty token sequence")

// Tokens is a cursor over a token slice.
type Tokens struct {
	TraceFunc Tracer

	parent *Tokens
	toks   []token.Token
	idx    int
}

// NewTokens returns a cursor at the first of toks. The slice is shared with
// every spawned cursor and must not be modified while parsing.
func NewTokens(toks []token.Token) *Tokens {
	return &Tokens{toks: toks}
}

// Len returns the number of tokens in the sequence.
func (t *Tokens) Len() int {
	return len(t.toks)
}

// Index returns the index of the current token.
func (t *Tokens) Index() int {
	return t.idx
}

// Done is true once every token has been consumed.
func (t *Tokens) Done() bool {
	return t.idx >= len(t.toks)
}

// Current returns the token at the cursor.
func (t *Tokens) Current() (token.Token, bool) {
	if t.Done() {
		return token.Token{}, false
	}
	return t.toks[t.idx], true
}

// Previous returns the last consumed token.
func (t *Tokens) Previous() (token.Token, bool) {
	if t.idx == 0 || t.idx > len(t.toks) {
		return token.Token{}, false
	}
	return t.toks[t.idx-1], true
}

// Advance consumes one token.
func (t *Tokens) Advance() {
	if !t.Done() {
		t.idx++
	}
}

// Revance steps back one token.
func (t *Tokens) Revance() {
	if t.idx > 0 {
		t.idx--
	}
}

// Position returns the span of the current token. Past the last token it
// returns an empty span one line below the end of the last token.
func (t *Tokens) Position() token.Span {
	if tok, ok := t.Current(); ok {
		return tok.Span
	}
	return t.endOfInput()
}

func (t *Tokens) endOfInput() token.Span {
	if len(t.toks) == 0 {
		panic(ErrNoTokens)
	}

	end := t.toks[len(t.toks)-1].Span.End
	end.Line++
	return end.Point()
}

// Spawn returns a child cursor at the same token. See Chars.Spawn.
func (t *Tokens) Spawn() *Tokens {
	return &Tokens{
		TraceFunc: t.TraceFunc,
		parent:    t,
		toks:      t.toks,
		idx:       t.idx,
	}
}

// Keep moves the parent to the child's token and returns the parent.
func (t *Tokens) Keep() *Tokens {
	if t.parent == nil {
		return t
	}
	t.parent.idx = t.idx
	return t.parent
}

// Discard returns the parent without moving it.
func (t *Tokens) Discard() *Tokens {
	if t.parent != nil {
		return t.parent
	}
	return t
}

// Trace reports progress through a parse. It does nothing unless TraceFunc is
// set.
func (t *Tokens) Trace(stage Stage, name string, args ...any) {
	if t.TraceFunc == nil {
		return
	}

	ahead := make([]string, 0, 3)
	for i := t.idx; i < len(t.toks) && len(ahead) < cap(ahead); i++ {
		ahead = append(ahead, t.toks[i].String())
	}
	trace(t.TraceFunc, stage, name, strings.Join(ahead, " "), args...)
}
