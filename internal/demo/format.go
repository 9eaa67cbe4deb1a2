package demo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zostay/flexar/parser"
)

// Format renders a tree as an s-expression, e.g. `(+ 1 (/ 2 3))`.
func Format(n parser.Node[Expr]) string {
	out := &strings.Builder{}
	format(out, n.Payload)
	return out.String()
}

func format(out *strings.Builder, e Expr) {
	switch e := e.(type) {
	case Int:
		out.WriteString(strconv.FormatInt(e.Value, 10))
	case Float:
		f := strconv.FormatFloat(e.Value, 'f', -1, 64)
		if !strings.Contains(f, ".") {
			f += ".0"
		}
		out.WriteString(f)
	case Str:
		out.WriteString(strconv.Quote(e.Value))
	case Labeled:
		fmt.Fprintf(out, "(%s: ", e.Label)
		format(out, e.Expr.Payload)
		out.WriteString(")")
	case Group:
		format(out, e.Expr.Payload)
	case Binary:
		fmt.Fprintf(out, "(%s ", e.Op)
		format(out, e.Left.Payload)
		out.WriteString(" ")
		format(out, e.Right.Payload)
		out.WriteString(")")
	default:
		fmt.Fprintf(out, "<%T>", e)
	}
}

// Tree converts a node into maps for encoding as JSON. Every node carries its
// kind and span.
func Tree(n parser.Node[Expr]) map[string]any {
	m := map[string]any{"span": n.Span.String()}
	switch e := n.Payload.(type) {
	case Int:
		m["kind"], m["value"] = "int", e.Value
	case Float:
		m["kind"], m["value"] = "float", e.Value
	case Str:
		m["kind"], m["value"] = "string", e.Value
	case Labeled:
		m["kind"], m["label"], m["expr"] = "labeled", e.Label, Tree(e.Expr)
	case Group:
		m["kind"], m["expr"] = "group", Tree(e.Expr)
	case Binary:
		m["kind"], m["op"] = "binary", e.Op
		m["left"], m["right"] = Tree(e.Left), Tree(e.Right)
	}
	return m
}
