package cursor

import (
	"strings"
	"unicode/utf8"

	"github.com/zostay/flexar/token"
)

// Source is the read-only text a Chars cursor walks. Any number of cursors may
// share one Source.
type Source struct {
	name       string
	text       string
	lineStarts []int
}

// NewSource records text under the given file name.
func NewSource(name, text string) *Source {
	s := &Source{
		name:       name,
		text:       text,
		lineStarts: make([]int, 1, strings.Count(text, "\n")+1),
	}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}
	return s
}

// Name returns the file name of the source.
func (s *Source) Name() string {
	return s.name
}

// Text returns the whole source text.
func (s *Source) Text() string {
	return s.text
}

// Len returns the length of the source in bytes.
func (s *Source) Len() int {
	return len(s.text)
}

// PositionAt returns the position of the byte at offset. Offsets outside the
// text are clamped.
func (s *Source) PositionAt(offset int) token.Position {
	if offset < 0 {
		offset = 0
	} else if offset > len(s.text) {
		offset = len(s.text)
	}

	left, right := 0, len(s.lineStarts)-1
	for left < right {
		mid := (left + right + 1) >> 1
		if s.lineStarts[mid] <= offset {
			left = mid
		} else {
			right = mid - 1
		}
	}

	lineStart := s.lineStarts[left]
	return token.Position{
		File:   s.name,
		Line:   left + 1,
		Column: utf8.RuneCountInString(s.text[lineStart:offset]) + 1,
		Offset: offset,
	}
}

// Slice returns the text covered by span.
func (s *Source) Slice(span token.Span) string {
	return s.text[span.Start.Offset:span.End.Offset]
}
