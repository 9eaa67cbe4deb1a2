package demo

import (
	"strconv"

	"github.com/zostay/flexar/cursor"
	"github.com/zostay/flexar/lexer"
	"github.com/zostay/flexar/match"
)

var (
	quote     = match.RunesIn(`"`)
	identHead = match.NewClass("identifier", match.Letters, match.RunesIn("_"))
	identTail = identHead.AndAlso(match.NewClass("digit", match.Digits))
)

// Lexer returns the scanner of the language.
func Lexer() *lexer.Lexer {
	return lexer.New(lexer.InvalidChar(Catalog, CodeInvalidChar),
		lexer.Skip(match.Whitespace),
		lexer.Action(match.RunesIn("#"), comment),
		lexer.Literal('/', TSlash),
		lexer.Literal('+', TPlus),
		lexer.Literal('(', TLParen),
		lexer.Literal(')', TRParen),
		lexer.Literal('.', TDot),
		lexer.Literal(':', TColon),
		lexer.Longest(
			lexer.Sequence("=", TEq),
			lexer.Sequence("==", TEqEq),
			lexer.Sequence("===", TEqEqEq),
		),
		stringRule(),
		numberRule(),
		identRule(),
	)
}

// comment skips to the end of the line.
func comment(c *cursor.Chars) {
	for r, ok := c.Current(); ok && r != '\n'; r, ok = c.Current() {
		c.Advance()
	}
}

func stringRule() lexer.Rule {
	return lexer.Body(quote,
		lexer.Advance(),
		lexer.Set("string", ""),
		lexer.While("",
			lexer.If(quote,
				lexer.Advance(),
				lexer.FinalizeWith(TStr, lexer.Var("string")),
			),
			lexer.Push("string"),
		),
		lexer.Raise(Catalog, CodeOpenString, lexer.Here, lexer.Opened),
	)
}

// numberRule scans digits with at most one decimal point. A second point ends
// the number, so "12.3.4" is the float 12.3 followed by "." and 4.
func numberRule() lexer.Rule {
	float := lexer.Do(func(s *lexer.Scope) {
		f, _ := strconv.ParseFloat(s.String("number"), 64)
		s.Set("value", f)
	})

	integer := lexer.Do(func(s *lexer.Scope) {
		n, err := strconv.ParseInt(s.String("number"), 10, 64)
		if err != nil {
			Catalog.New(CodeIntRange, s.Start().Combine(s.Pos()), s.String("number")).Throw()
		}
		s.Set("value", n)
	})

	return lexer.Body(match.Digits,
		lexer.Set("number", ""),
		lexer.Set("dot", false),
		lexer.While("number",
			lexer.Set("matched", false),
			lexer.If(match.Digits,
				lexer.Set("matched", true),
				lexer.Push("number"),
			),
			lexer.If(match.RunesIn("."),
				lexer.When(lexer.Flag("dot"), float, lexer.FinalizeWith(TFloat, lexer.Var("value"))),
				lexer.Set("matched", true),
				lexer.Set("dot", true),
				lexer.Push("number"),
			),
			lexer.When(lexer.Not(lexer.Flag("matched")), lexer.Break("number")),
		),
		lexer.When(lexer.Flag("dot"), float, lexer.FinalizeWith(TFloat, lexer.Var("value"))),
		integer,
		lexer.FinalizeWith(TInt, lexer.Var("value")),
	)
}

func identRule() lexer.Rule {
	return lexer.Body(identHead.Predicate(),
		lexer.While("",
			lexer.If(match.NotRunes(identTail.Predicate()), lexer.Break("")),
		),
		lexer.FinalizeWith(TIdent, func(s *lexer.Scope) any { return s.Text() }),
	)
}
