package token

import "fmt"

// Position is a single point in a source file. Line and Column are 1-based,
// Offset is the 0-based byte offset. Positions are plain values, so copying
// one never shares state with another.
type Position struct {
	File   string
	Line   int
	Column int
	Offset int
}

// Start returns the position of the first byte of the named file.
func Start(file string) Position {
	return Position{File: file, Line: 1, Column: 1}
}

// Advance returns the position that follows consuming the rune r, which is
// size bytes long. A newline moves to column 1 of the next line.
func (p Position) Advance(r rune, size int) Position {
	p.Offset += size
	if r == '\n' {
		p.Line++
		p.Column = 1
	} else {
		p.Column++
	}
	return p
}

// Before reports whether p comes strictly before o. Positions are ordered by
// offset alone.
func (p Position) Before(o Position) bool {
	return p.Offset < o.Offset
}

// Combine returns the smallest span containing both positions.
func (p Position) Combine(o Position) Span {
	if o.Before(p) {
		return Span{Start: o, End: p}
	}
	return Span{Start: p, End: o}
}

// Point returns the empty span sitting at p.
func (p Position) Point() Span {
	return Span{Start: p, End: p}
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span is the half-open range [Start, End) of a source file.
type Span struct {
	Start Position
	End   Position
}

// Combine returns the smallest span covering both s and o.
func (s Span) Combine(o Span) Span {
	out := s
	if o.Start.Before(out.Start) {
		out.Start = o.Start
	}
	if out.End.Before(o.End) {
		out.End = o.End
	}
	return out
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// IsEmpty is true when the span covers no input.
func (s Span) IsEmpty() bool {
	return s.Len() == 0
}

func (s Span) String() string {
	if s.IsEmpty() {
		return s.Start.String()
	}
	return fmt.Sprintf("%s-%d:%d", s.Start, s.End.Line, s.End.Column)
}
