package demo

import (
	"github.com/zostay/flexar/parser"
)

// Expr is the payload of every node of the language.
type Expr interface {
	expr()
}

type (
	Int struct {
		Value int64
	}

	Float struct {
		Value float64
	}

	Str struct {
		Value string
	}

	// Labeled is an atom with a name attached, as in `width: 12`.
	Labeled struct {
		Label string
		Expr  parser.Node[Expr]
	}

	Group struct {
		Expr parser.Node[Expr]
	}

	// Binary is one of the operators /, +, == or ===.
	Binary struct {
		Op          string
		Left, Right parser.Node[Expr]
	}
)

func (Int) expr()     {}
func (Float) expr()   {}
func (Str) expr()     {}
func (Labeled) expr() {}
func (Group) expr()   {}
func (Binary) expr()  {}

// Grammar returns the root rule of the language, stmt.
func Grammar() *parser.Rule[Expr] {
	var (
		stmt = parser.NewRule[Expr]("stmt")
		expr = parser.NewRule[Expr]("expr")
		term = parser.NewRule[Expr]("term")
		atom = parser.NewRule[Expr]("atom")
	)

	expected := parser.Raise[Expr](Catalog, CodeExpectedExpr, parser.Found)

	stmt.Define(expected,
		parser.Seq[Expr](parser.Sub(expr)).Then(parser.Default(first),
			parser.Seq[Expr](parser.Tok(TEqEqEq), parser.Sub(expr)).Yield(binary("===")),
			parser.Seq[Expr](parser.Tok(TEqEq), parser.Sub(expr)).Yield(binary("==")),
		),
	)

	expr.Define(expected,
		parser.Seq[Expr](parser.Sub(term)).Then(parser.Default(first),
			parser.Seq[Expr](parser.Tok(TPlus), parser.Sub(expr)).Yield(binary("+")),
		),
	)

	term.Define(expected,
		parser.Seq[Expr](parser.Sub(atom)).Then(parser.Default(first),
			parser.Seq[Expr](parser.Tok(TSlash), parser.Sub(term)).Yield(binary("/")),
		),
	)

	atom.Define(expected,
		parser.Seq[Expr](parser.Tok(TInt)).Yield(func(b *parser.Bindings) Expr {
			return Int{parser.Get[int64](b, 0)}
		}),
		parser.Seq[Expr](parser.Tok(TFloat)).Yield(func(b *parser.Bindings) Expr {
			return Float{parser.Get[float64](b, 0)}
		}),
		parser.Seq[Expr](parser.Tok(TStr)).Yield(func(b *parser.Bindings) Expr {
			return Str{parser.Get[string](b, 0)}
		}),
		parser.Seq[Expr](parser.Bind("label", parser.Tok(TIdent)), parser.Tok(TColon), parser.Sub(atom)).
			Yield(func(b *parser.Bindings) Expr {
				return Labeled{Label: parser.Named[string](b, "label"), Expr: nodeAt(b, 2)}
			}),
		parser.Seq[Expr](parser.Tok(TLParen), parser.Sub(expr)).Then(
			parser.Raise[Expr](Catalog, CodeOpenParen, parser.SpanOf(0)),
			parser.Seq[Expr](parser.Tok(TRParen)).Yield(func(b *parser.Bindings) Expr {
				return Group{nodeAt(b, 1)}
			}),
		),
	)

	return stmt
}

// first passes the payload of the first capture through, for sub-bodies whose
// optional tail was absent.
func first(b *parser.Bindings) Expr {
	return parser.Get[Expr](b, 0)
}

// binary builds the operator op from captures left, op, right.
func binary(op string) func(b *parser.Bindings) Expr {
	return func(b *parser.Bindings) Expr {
		return Binary{Op: op, Left: nodeAt(b, 0), Right: nodeAt(b, 2)}
	}
}

func nodeAt(b *parser.Bindings, i int) parser.Node[Expr] {
	n, _ := b.All[i].(parser.Node[Expr])
	return n
}
