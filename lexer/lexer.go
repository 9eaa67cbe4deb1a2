// Package lexer is the scanning engine. A Lexer holds an ordered list of
// rules and turns source text into tokens: at each position the first rule
// that matches wins, and a mandatory default rule handles everything else.
package lexer

import (
	"github.com/zostay/flexar/cursor"
	"github.com/zostay/flexar/diag"
	"github.com/zostay/flexar/token"
)

// Lexer scans text with a fixed list of rules. A Lexer is never modified by
// scanning, so one may be shared by any number of Scan calls.
type Lexer struct {
	TraceFunc cursor.Tracer

	rules     []Rule
	otherwise Rule
}

// New returns a Lexer trying rules in order. otherwise runs when none of them
// match; it usually throws, see InvalidChar. It is required.
func New(otherwise Rule, rules ...Rule) *Lexer {
	if otherwise == nil {
		panic("lexer: a default rule is required")
	}

	return &Lexer{
		rules:     rules,
		otherwise: otherwise,
	}
}

// Scan turns text into tokens. file names the source in every position. If a
// rule throws a diagnostic, Scan returns it as the error and no tokens.
func (l *Lexer) Scan(file, text string) (toks []token.Token, err error) {
	defer diag.Recover(&err)

	c := cursor.NewChars(cursor.NewSource(file, text))
	c.TraceFunc = l.TraceFunc

	out := make([]token.Token, 0, len(text)/4)
	for {
		if _, ok := c.Current(); !ok {
			break
		}

		tok, res := l.next(c)
		if res == Emit {
			out = append(out, tok)
			c.Mark()
		}
	}

	return out, nil
}

// next runs the rules at the cursor. It throws when the matching rule consumed
// nothing, since the scan would otherwise never end.
func (l *Lexer) next(c *cursor.Chars) (token.Token, Result) {
	before := c.Pos()
	r, _ := c.Current()

	tok, res := l.match(c)
	if res == NoMatch || !before.Before(c.Pos()) {
		c.Trace(cursor.StageFail, "Scan", string(r))
		diag.Builtin.New(diag.CodeNoProgress, c.Position(), string(r)).Throw()
	}

	return tok, res
}

func (l *Lexer) match(c *cursor.Chars) (token.Token, Result) {
	for _, rule := range l.rules {
		if tok, res := rule.Match(c); res != NoMatch {
			return tok, res
		}
	}
	return l.otherwise.Match(c)
}
