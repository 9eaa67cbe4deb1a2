// Package flexar builds language front ends out of a backtracking scanner and
// a backtracking recursive-descent parser that share one cursor discipline:
// every rule works on a spawned cursor that is kept on success and discarded
// on failure.
//
// The lexer package turns source text into tokens, the parser package turns
// tokens into a tree of spanned nodes, and the diag package holds the
// diagnostics either of them may report. Language ties a lexer to the root
// rule of a grammar.
package flexar

import (
	"github.com/zostay/flexar/cursor"
	"github.com/zostay/flexar/lexer"
	"github.com/zostay/flexar/parser"
	"github.com/zostay/flexar/token"
)

// Tracer is a function that is use to log or report parser traces. This
// function signature was chosen because it is commonly available, such as
// fmt.Print or log.Println, etc.
type Tracer = cursor.Tracer

// Language is a scanner paired with the root rule of a grammar over its
// tokens.
type Language[P any] struct {
	Lexer *lexer.Lexer
	Root  *parser.Rule[P]

	// Trace, when set, receives a line for every rule tried by both engines.
	Trace Tracer
}

// New returns the language scanned by lx and parsed from root.
func New[P any](lx *lexer.Lexer, root *parser.Rule[P]) *Language[P] {
	return &Language[P]{Lexer: lx, Root: root}
}

// WithTrace returns a copy of the language that traces to t.
func (l *Language[P]) WithTrace(t Tracer) *Language[P] {
	c := *l
	c.Trace = t
	return &c
}

// Scan turns text into tokens.
func (l *Language[P]) Scan(file, text string) ([]token.Token, error) {
	lx := *l.Lexer
	lx.TraceFunc = l.Trace
	return lx.Scan(file, text)
}

// Parse scans text and parses every token from the root rule. The error is
// the first *diag.Diagnostic either engine reported.
func (l *Language[P]) Parse(file, text string) (parser.Node[P], error) {
	toks, err := l.Scan(file, text)
	if err != nil {
		return parser.Node[P]{}, err
	}

	c := cursor.NewTokens(toks)
	c.TraceFunc = l.Trace
	return parser.ParseAll(l.Root, c)
}

// Compile scans and parses text with lx and root in one go.
func Compile[P any](lx *lexer.Lexer, root *parser.Rule[P], file, text string) (parser.Node[P], error) {
	return New(lx, root).Parse(file, text)
}
