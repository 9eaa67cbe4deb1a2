package lexer

import (
	"github.com/zostay/flexar/cursor"
	"github.com/zostay/flexar/token"
)

// First returns a Rule that tries each rule in turn and immediately returns
// the first one that matches. It lets a group of rules sit in a single slot of
// a Lexer's rule list.
func First(rules ...Rule) Rule {
	return RuleFunc(func(c *cursor.Chars) (token.Token, Result) {
		for _, rule := range rules {
			if tok, res := rule.Match(c); res != NoMatch {
				return tok, res
			}
		}
		return token.Token{}, NoMatch
	})
}

// Longest returns a Rule that tries all the given rules against the current
// input, each on its own spawned cursor. It keeps the one that consumed the
// most input and discards the rest. Ties go to the rule listed first.
func Longest(rules ...Rule) Rule {
	return RuleFunc(func(c *cursor.Chars) (token.Token, Result) {
		var (
			best    *cursor.Chars
			bestTok token.Token
			bestRes = NoMatch
		)

		for _, rule := range rules {
			child := c.Spawn()
			tok, res := rule.Match(child)
			if res == NoMatch {
				child.Discard()
				continue
			}

			if best == nil || best.Pos().Before(child.Pos()) {
				best, bestTok, bestRes = child, tok, res
			}
		}

		if best == nil {
			return token.Token{}, NoMatch
		}

		c.Trace(cursor.StageGot, "Longest", bestTok)
		best.Keep()
		return bestTok, bestRes
	})
}
