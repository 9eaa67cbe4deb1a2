package cursor

import (
	"unicode/utf8"

	"github.com/zostay/flexar/token"
)

// Chars is a cursor over the runes of a Source. Besides the current position
// (end) it tracks the start of the token being built, so that Span always
// covers the text consumed since the last Mark.
type Chars struct {
	TraceFunc Tracer

	parent *Chars
	src    *Source
	start  token.Position
	end    token.Position
}

// NewChars returns a cursor at the first rune of src.
func NewChars(src *Source) *Chars {
	p := token.Start(src.Name())
	return &Chars{
		src:   src,
		start: p,
		end:   p,
	}
}

// Source returns the text the cursor walks.
func (c *Chars) Source() *Source {
	return c.src
}

// Current returns the rune at the cursor.
func (c *Chars) Current() (rune, bool) {
	if c.end.Offset >= c.src.Len() {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(c.src.text[c.end.Offset:])
	return r, true
}

// Advance consumes one rune, keeping line and column up to date.
func (c *Chars) Advance() {
	if c.end.Offset >= c.src.Len() {
		return
	}
	r, size := utf8.DecodeRuneInString(c.src.text[c.end.Offset:])
	c.end = c.end.Advance(r, size)
}

// Revance steps back one rune. When that would put the cursor before the
// start of the current span, the start moves back with it.
func (c *Chars) Revance() {
	if c.end.Offset == 0 {
		return
	}
	_, size := utf8.DecodeLastRuneInString(c.src.text[:c.end.Offset])
	c.end = c.src.PositionAt(c.end.Offset - size)
	if c.end.Before(c.start) {
		c.start = c.end
	}
}

// Pos returns the position of the rune at the cursor.
func (c *Chars) Pos() token.Position {
	return c.end
}

// Position returns the empty span at the cursor.
func (c *Chars) Position() token.Span {
	return c.end.Point()
}

// Span returns the text consumed since the last Mark.
func (c *Chars) Span() token.Span {
	return c.start.Combine(c.end)
}

// Text returns the source text covered by Span.
func (c *Chars) Text() string {
	return c.src.Slice(c.Span())
}

// Mark starts a new span at the cursor.
func (c *Chars) Mark() {
	c.start = c.end
}

// Spawn returns a new Chars that can be used to read input starting at the
// position of this one. Reads on the returned cursor do not move the parent.
// When finished, call Keep on the child if the reads should stick, or Discard
// if they should not.
func (c *Chars) Spawn() *Chars {
	return &Chars{
		TraceFunc: c.TraceFunc,
		parent:    c,
		src:       c.src,
		start:     c.start,
		end:       c.end,
	}
}

// Keep returns the parent cursor after updating it to have the same position
// as the child. Calling Keep on a cursor without a parent returns it as is.
func (c *Chars) Keep() *Chars {
	if c.parent == nil {
		return c
	}
	c.parent.start = c.start
	c.parent.end = c.end
	return c.parent
}

// Discard returns the parent cursor without updating its position.
func (c *Chars) Discard() *Chars {
	if c.parent != nil {
		return c.parent
	}
	return c
}

// Trace may be called to help track the progress through a scan for help in
// debugging. It does nothing unless TraceFunc is set.
func (c *Chars) Trace(stage Stage, name string, args ...any) {
	if c.TraceFunc == nil {
		return
	}

	preview := c.src.text[c.end.Offset:]
	if n := 10; utf8.RuneCountInString(preview) > n {
		preview = string([]rune(preview)[:n])
	}
	trace(c.TraceFunc, stage, name, preview, args...)
}
