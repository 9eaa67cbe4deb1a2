package lexer

import (
	"github.com/zostay/flexar/cursor"
	"github.com/zostay/flexar/diag"
	"github.com/zostay/flexar/match"
	"github.com/zostay/flexar/token"
)

// Result tells the scan loop what a Rule did.
type Result int

const (
	// NoMatch means the rule did not apply and consumed nothing.
	NoMatch Result = iota

	// Emit means the rule consumed input and produced a token.
	Emit

	// Skipped means the rule consumed input without producing a token.
	Skipped
)

// Rule is one entry of a Lexer's ordered rule list. Match is called with the
// live cursor. A rule that returns NoMatch must leave the cursor where it
// found it; a rule that returns Emit or Skipped leaves the cursor after what it
// consumed.
type Rule interface {
	Match(c *cursor.Chars) (token.Token, Result)
}

// RuleFunc adapts a plain function to Rule.
type RuleFunc func(c *cursor.Chars) (token.Token, Result)

// Match calls f.
func (f RuleFunc) Match(c *cursor.Chars) (token.Token, Result) {
	return f(c)
}

// emit builds the token for everything consumed since the last Mark.
func emit(c *cursor.Chars, t token.Tag, value any) token.Token {
	return token.Token{Tag: t, Value: value, Span: c.Span()}
}

// Literal returns a Rule that emits a token tagged t when the current rune is
// ch.
func Literal(ch rune, t token.Tag) Rule {
	return RuleFunc(func(c *cursor.Chars) (token.Token, Result) {
		if r, ok := c.Current(); !ok || r != ch {
			return token.Token{}, NoMatch
		}

		c.Advance()
		return emit(c, t, nil), Emit
	})
}

// Sequence returns a Rule that emits a token tagged t when the input
// continues with text. The runes are matched on a spawned cursor, so a partial
// match consumes nothing.
func Sequence(text string, t token.Tag) Rule {
	if text == "" {
		panic("lexer: Sequence needs at least one rune")
	}

	return RuleFunc(func(c *cursor.Chars) (token.Token, Result) {
		child := c.Spawn()
		for _, want := range text {
			if r, ok := child.Current(); !ok || r != want {
				child.Discard()
				return token.Token{}, NoMatch
			}
			child.Advance()
		}

		c = child.Keep()
		c.Trace(cursor.StageGot, "Sequence", text)
		return emit(c, t, nil), Emit
	})
}

// Char returns a Rule that emits a one-rune token tagged t when the current
// rune matches any of preds. The rune itself is the token value.
func Char(t token.Tag, preds ...match.RunePredicate) Rule {
	pred := match.AnyRunes(preds...)
	return RuleFunc(func(c *cursor.Chars) (token.Token, Result) {
		r, ok := c.Current()
		if !ok || !pred(r) {
			return token.Token{}, NoMatch
		}

		c.Advance()
		return emit(c, t, r), Emit
	})
}

// Skip returns a Rule that consumes one rune matching any of preds without
// emitting a token, e.g. whitespace.
func Skip(preds ...match.RunePredicate) Rule {
	pred := match.AnyRunes(preds...)
	return Action(pred, func(c *cursor.Chars) {
		c.Advance()
	})
}

// Action returns a Rule that runs fn when the current rune matches pred. The
// scan loop then starts over without emitting a token. fn must consume at
// least one rune.
func Action(pred match.RunePredicate, fn func(c *cursor.Chars)) Rule {
	return RuleFunc(func(c *cursor.Chars) (token.Token, Result) {
		if r, ok := c.Current(); !ok || !pred(r) {
			return token.Token{}, NoMatch
		}

		fn(c)
		return token.Token{}, Skipped
	})
}

// InvalidChar returns a default rule that throws the diagnostic code from cat
// at the current rune. The rune is the first template argument.
func InvalidChar(cat *diag.Catalog, code diag.Code) Rule {
	return RuleFunc(func(c *cursor.Chars) (token.Token, Result) {
		r, _ := c.Current()
		cat.New(code, c.Position(), string(r)).Throw()
		return token.Token{}, NoMatch
	})
}
