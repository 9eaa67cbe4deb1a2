// Package demo is a small expression language built on flexar. It is used by
// the command line tool and the language server, and exercises every kind of
// scanner rule and parser fallback.
//
//	stmt := expr ('===' expr | '==' expr)?
//	expr := term ('+' expr)?
//	term := atom ('/' term)?
//	atom := int | float | string | label ':' atom | '(' expr ')'
//
// A '#' starts a comment running to the end of the line.
package demo

import (
	"github.com/zostay/flexar"
	"github.com/zostay/flexar/diag"
	"github.com/zostay/flexar/token"
)

var (
	TSlash  = token.NewTag("/")
	TPlus   = token.NewTag("+")
	TLParen = token.NewTag("(")
	TRParen = token.NewTag(")")
	TDot    = token.NewTag(".")
	TColon  = token.NewTag(":")
	TEq     = token.NewTag("=")
	TEqEq   = token.NewTag("==")
	TEqEqEq = token.NewTag("===")
	TStr    = token.NewTag("string")
	TInt    = token.NewTag("int")
	TFloat  = token.NewTag("float")
	TIdent  = token.NewTag("ident")
)

// Diagnostic codes of the language.
const (
	CodeInvalidChar  diag.Code = "E001"
	CodeOpenString   diag.Code = "E002"
	CodeIntRange     diag.Code = "E003"
	CodeExpectedExpr diag.Code = "E101"
	CodeOpenParen    diag.Code = "E102"
)

var Catalog = diag.NewCatalog().
	Define(CodeInvalidChar, "invalid character", "`{0}` is an invalid character").
	Define(CodeOpenString, "unterminated string", "expected `\"` to close string opened at {0}").
	Define(CodeIntRange, "integer out of range", "`{0}` does not fit in 64 bits").
	Define(CodeExpectedExpr, "expected expression", "expected an expression, found {0}").
	Define(CodeOpenParen, "unclosed parenthesis", "expected `)` to close `(` opened at {0}")

// Language returns the scanner and grammar of the language.
func Language() *flexar.Language[Expr] {
	return flexar.New(Lexer(), Grammar())
}
