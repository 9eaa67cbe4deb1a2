package parser

import "github.com/zostay/flexar/token"

// Bindings holds the values captured by the requirements of an alternative.
// Every capture is recorded positionally, in requirement order, along with the
// span of the tokens it consumed. Captures made through Bind are also recorded
// under their name.
//
// Alternatives in a sub-body see the captures of the prefix that led to them
// first, followed by their own.
type Bindings struct {
	All   []any
	Spans []token.Span
	Named map[string]any
}

func (b *Bindings) add(name string, v any, at token.Span) {
	b.All = append(b.All, v)
	b.Spans = append(b.Spans, at)
	if name != "" {
		if b.Named == nil {
			b.Named = make(map[string]any)
		}
		b.Named[name] = v
	}
}

// fork copies b so that a sub-body alternative may add to it without
// disturbing its siblings.
func (b *Bindings) fork() *Bindings {
	c := &Bindings{
		All:   make([]any, len(b.All), len(b.All)+4),
		Spans: make([]token.Span, len(b.Spans), len(b.Spans)+4),
	}
	copy(c.All, b.All)
	copy(c.Spans, b.Spans)
	if b.Named != nil {
		c.Named = make(map[string]any, len(b.Named))
		for k, v := range b.Named {
			c.Named[k] = v
		}
	}
	return c
}

// Len returns the number of positional captures.
func (b *Bindings) Len() int {
	return len(b.All)
}

// Get returns capture i as a T. A capture that is a Node[T] yields its
// payload, and a token whose Value is a T yields that value. Anything else,
// including an index out of range, yields the zero T.
func Get[T any](b *Bindings, i int) T {
	if i < 0 || i >= len(b.All) {
		var zero T
		return zero
	}
	return unwrap[T](b.All[i])
}

// Named returns the capture bound to name, converted as Get does.
func Named[T any](b *Bindings, name string) T {
	return unwrap[T](b.Named[name])
}

func unwrap[T any](v any) T {
	switch x := v.(type) {
	case T:
		return x
	case Node[T]:
		return x.Payload
	case token.Token:
		if t, ok := x.Value.(T); ok {
			return t
		}
	}

	var zero T
	return zero
}
