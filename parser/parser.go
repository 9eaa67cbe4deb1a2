// Package parser is a backtracking recursive-descent parsing engine working on
// the tokens produced by the lexer.
//
// A grammar is a set of Rules. Each rule is an ordered list of alternatives,
// each alternative a sequence of Requirements: a token of some tag, a sub-rule,
// or a custom function. Alternatives are tried on spawned cursors and only the
// first to succeed is committed, so a failed alternative never consumes input.
//
// When every alternative fails the parser reports the failure that matched
// the most requirements before failing, as that is the one most likely to
// describe what the author meant to write.
package parser

import (
	"github.com/zostay/flexar/cursor"
	"github.com/zostay/flexar/diag"
	"github.com/zostay/flexar/token"
)

// Parse matches root at c. Tokens after the match are left unconsumed.
//
// The error is a *diag.Diagnostic: the furthest failure of root, a diagnostic
// thrown by a rule, or diag.CodeEmptyInput when there are no tokens at all.
func Parse[P any](root *Rule[P], c *cursor.Tokens) (Node[P], error) {
	return parse(root, c, false)
}

// ParseAll is Parse that also requires root to consume every token.
func ParseAll[P any](root *Rule[P], c *cursor.Tokens) (Node[P], error) {
	return parse(root, c, true)
}

func parse[P any](root *Rule[P], c *cursor.Tokens, all bool) (n Node[P], err error) {
	defer diag.Recover(&err)

	if c.Len() == 0 {
		d := diag.Builtin.New(diag.CodeEmptyInput, token.Span{})
		d.Severity = diag.Fatal
		return n, d
	}

	n, fail := root.Parse(c)
	if fail != nil {
		return Node[P]{}, fail.Diag
	}

	if all && !c.Done() {
		return Node[P]{}, diag.Builtin.New(diag.CodeExpectedToken, c.Position(), "end of input", found(c))
	}

	return n, nil
}
