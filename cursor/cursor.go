// Package cursor provides the backtracking cursors the scanner and parser
// walk their input with. Chars steps through source text one rune at a time,
// Tokens steps through a token slice one token at a time. Both follow the same
// discipline: Spawn a child before trying something that may fail, then either
// Keep the child to commit what it consumed or Discard it to roll back.
package cursor

import "github.com/zostay/flexar/token"

// Cursor is the contract shared by Chars (U = rune) and Tokens
// (U = token.Token). C is the concrete cursor type itself.
type Cursor[U any, C any] interface {
	// Advance consumes one unit. It does nothing at end of input.
	Advance()

	// Revance undoes one Advance. It does nothing at the start of input.
	Revance()

	// Current returns the unit under the cursor without consuming it. The
	// second value is false at end of input.
	Current() (U, bool)

	// Position returns where the cursor is in the source.
	Position() token.Span

	// Spawn returns an independent child cursor at the same position.
	Spawn() C

	// Keep commits the child's position into its parent and returns the
	// parent.
	Keep() C

	// Discard returns the parent, leaving it as it was before Spawn.
	Discard() C
}

var (
	_ Cursor[rune, *Chars]          = (*Chars)(nil)
	_ Cursor[token.Token, *Tokens] = (*Tokens)(nil)
)
