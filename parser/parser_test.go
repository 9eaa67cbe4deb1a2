package parser

import (
	"errors"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zostay/flexar/cursor"
	"github.com/zostay/flexar/diag"
	"github.com/zostay/flexar/token"
)

var (
	TX   = token.NewTag("X")
	TY   = token.NewTag("Y")
	TZ   = token.NewTag("Z")
	TW   = token.NewTag("W")
	TQ   = token.NewTag("Q")
	TInt = token.NewTag("int")
)

var testCatalog = diag.NewCatalog().
	Define("E101", "expected expression", "expected an expression, found {0}").
	Define("E102", "unclosed", "expected Z to close X at {0}")

// toks lays the tags out one byte apart on a single line.
func toks(tags ...token.Tag) []token.Token {
	out := make([]token.Token, len(tags))
	pos := token.Start("t")
	for i, tag := range tags {
		end := pos.Advance('x', 1)
		out[i] = token.Token{Tag: tag, Span: token.Span{Start: pos, End: end}}
		pos = end
	}
	return out
}

func lit[P any](v P) func(*Bindings) P {
	return func(*Bindings) P { return v }
}

func TestFurthestFailure(t *testing.T) {
	a := Seq[string](Tok(TX), Tok(TY), Tok(TZ)).Yield(lit("A"))
	b := Seq[string](Tok(TX), Tok(TW)).Yield(lit("B"))

	for _, alts := range [][]*Alt[string]{{a, b}, {b, a}} {
		r := NewRule[string]("r").Define(nil, alts...)
		c := cursor.NewTokens(toks(TX, TY, TQ))

		_, f := r.Parse(c)
		if f == nil {
			t.Fatal("expected failure")
		}

		if f.Depth != 2 {
			t.Errorf("expected depth 2, got %d", f.Depth)
		}
		if f.Diag.Code != diag.CodeExpectedToken || f.Diag.Message != "expected Z, found `Q`" {
			t.Errorf("expected failure of A, got %v", f)
		}
		if c.Index() != 0 {
			t.Errorf("cursor moved to %d", c.Index())
		}
	}
}

func TestFirstAlternativeWins(t *testing.T) {
	r := NewRule[string]("r").Define(nil,
		Seq[string](Tok(TX)).Yield(lit("short")),
		Seq[string](Tok(TX), Tok(TY)).Yield(lit("long")),
	)

	c := cursor.NewTokens(toks(TX, TY))
	n, f := r.Parse(c)
	if f != nil {
		t.Fatalf("Parse: %v", f)
	}

	if n.Payload != "short" || c.Index() != 1 {
		t.Errorf("expected short alternative at 1, got %q at %d", n.Payload, c.Index())
	}
}

func TestFallbackDepthFloor(t *testing.T) {
	alts := []*Alt[string]{
		Seq[string](Tok(TX), Tok(TY)).Yield(lit("xy")),
		Seq[string](Tok(TW)).Yield(lit("w")),
	}

	t.Run("raise", func(t *testing.T) {
		r := NewRule[string]("r").Define(Raise[string](testCatalog, "E101", Found), alts...)

		_, f := r.Parse(cursor.NewTokens(toks(TQ, TX)))
		if f == nil {
			t.Fatal("expected failure")
		}

		want := &Failure{
			Depth: 0,
			Diag: &diag.Diagnostic{
				Code:    "E101",
				Title:   "expected expression",
				Message: "expected an expression, found `Q`",
				Spans:   []token.Span{toks(TQ)[0].Span},
			},
		}
		if diff := cmp.Diff(want, f); diff != "" {
			t.Errorf("(-want, +got)\n%s", diff)
		}
	})

	t.Run("default", func(t *testing.T) {
		r := NewRule[string]("r").Define(Default(lit("none")), alts...)

		c := cursor.NewTokens(toks(TQ, TX))
		n, f := r.Parse(c)
		if f != nil {
			t.Fatalf("Parse: %v", f)
		}

		want := Node[string]{Span: token.Start("t").Point(), Payload: "none"}
		if diff := cmp.Diff(want, n); diff != "" {
			t.Errorf("(-want, +got)\n%s", diff)
		}
		if c.Index() != 0 {
			t.Errorf("cursor moved to %d", c.Index())
		}
	})

	t.Run("deeper failure wins over fallback", func(t *testing.T) {
		r := NewRule[string]("r").Define(Default(lit("none")), alts...)

		_, f := r.Parse(cursor.NewTokens(toks(TX, TQ)))
		if f == nil || f.Depth != 1 || f.Diag.Code != diag.CodeExpectedToken {
			t.Errorf("expected P001 at depth 1, got %v", f)
		}
	})

	t.Run("no fallback", func(t *testing.T) {
		r := NewRule[string]("r").Define(nil, alts...)

		_, f := r.Parse(cursor.NewTokens(toks(TQ)))
		if f == nil || f.Diag.Code != diag.CodeNoAlternative {
			t.Fatalf("expected P002, got %v", f)
		}
		if f.Diag.Message != "no alternative of r matches `Q`" {
			t.Errorf("unexpected message %q", f.Diag.Message)
		}
	})
}

func TestSubBody(t *testing.T) {
	// r := X ('Y' X)?
	r := NewRule[string]("r").Define(nil,
		Seq[string](Tok(TX)).Then(Default(lit("x")),
			Seq[string](Tok(TY), Tok(TX)).Yield(func(b *Bindings) string {
				return strconv.Itoa(b.Len())
			}),
		),
	)

	tests := []struct {
		name    string
		in      []token.Token
		payload string
		index   int
		depth   int
	}{
		{"prefix only", toks(TX, TQ), "x", 1, -1},
		{"whole", toks(TX, TY, TX), "3", 3, -1},
		{"fails inside sub-body", toks(TX, TY, TQ), "", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cursor.NewTokens(tt.in)
			n, f := r.Parse(c)

			if tt.depth >= 0 {
				if f == nil || f.Depth != tt.depth {
					t.Fatalf("expected failure at depth %d, got %v", tt.depth, f)
				}
			} else if f != nil {
				t.Fatalf("Parse: %v", f)
			}

			if n.Payload != tt.payload || c.Index() != tt.index {
				t.Errorf("expected %q at %d, got %q at %d", tt.payload, tt.index, n.Payload, c.Index())
			}
		})
	}
}

func TestSubBodyRaise(t *testing.T) {
	r := NewRule[string]("r").Define(nil,
		Seq[string](Tok(TX)).Then(Raise[string](testCatalog, "E102", SpanOf(0)),
			Seq[string](Tok(TZ)).Yield(lit("xz")),
		),
	)

	in := toks(TX, TQ)
	_, f := r.Parse(cursor.NewTokens(in))
	if f == nil {
		t.Fatal("expected failure")
	}

	if f.Depth != 1 || f.Diag.Code != "E102" {
		t.Errorf("expected E102 at depth 1, got %v", f)
	}
	if diff := cmp.Diff([]token.Span{in[1].Span, in[0].Span}, f.Diag.Spans); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}
	if f.Diag.Message != "expected Z to close X at t:1:1" {
		t.Errorf("unexpected message %q", f.Diag.Message)
	}
}

func TestOther(t *testing.T) {
	inner := NewRule[int]("inner").Define(nil,
		Seq[int](Tok(TX)).Yield(lit(7)),
	)
	outer := NewRule[string]("outer").Define(
		Other(inner, func(n Node[int]) string { return strconv.Itoa(n.Payload) }),
		Seq[string](Tok(TY)).Yield(lit("y")),
	)

	in := toks(TX, TQ)
	c := cursor.NewTokens(in)
	n, f := outer.Parse(c)
	if f != nil {
		t.Fatalf("Parse: %v", f)
	}

	want := Node[string]{Span: in[0].Span, Payload: "7"}
	if diff := cmp.Diff(want, n); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}

	_, f = outer.Parse(cursor.NewTokens(toks(TQ)))
	if f == nil || f.Depth != 0 || f.Diag.Message != "no alternative of inner matches `Q`" {
		t.Errorf("expected inner's failure, got %v", f)
	}
}

func TestRaw(t *testing.T) {
	r := NewRule[string]("r").Define(
		Raw(func(c *cursor.Tokens) (Node[string], *Failure) {
			c.Advance()
			if tok, _ := c.Current(); tok.Tag != TY {
				return Node[string]{}, &Failure{
					Depth: 5,
					Diag:  testCatalog.New("E101", c.Position(), "raw"),
				}
			}
			c.Advance()
			return Node[string]{Payload: "raw"}, nil
		}),
		Seq[string](Tok(TW)),
	)

	c := cursor.NewTokens(toks(TX, TY))
	n, f := r.Parse(c)
	if f != nil {
		t.Fatalf("Parse: %v", f)
	}
	if n.Payload != "raw" || c.Index() != 2 {
		t.Errorf("expected raw at 2, got %q at %d", n.Payload, c.Index())
	}

	c = cursor.NewTokens(toks(TX, TQ))
	_, f = r.Parse(c)
	if f == nil || f.Depth != 5 {
		t.Fatalf("expected failure at depth 5, got %v", f)
	}
	if c.Index() != 0 {
		t.Errorf("cursor moved to %d", c.Index())
	}
}

func TestSpanRoundTrip(t *testing.T) {
	// list := X list?
	list := NewRule[int]("list")
	list.Define(nil,
		Seq[int](Tok(TX)).Then(Default(lit(1)),
			Seq[int](Sub(list)).Yield(func(b *Bindings) int {
				return 1 + Get[int](b, 1)
			}),
		),
	)

	in := toks(TX, TX, TX, TQ)
	c := cursor.NewTokens(in)
	n, f := list.Parse(c)
	if f != nil {
		t.Fatalf("Parse: %v", f)
	}

	covered := in[0].Span
	for _, tok := range in[1:c.Index()] {
		covered = covered.Combine(tok.Span)
	}

	if n.Payload != 3 {
		t.Errorf("expected 3 items, got %d", n.Payload)
	}
	if diff := cmp.Diff(covered, n.Span); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}
}

func TestBindings(t *testing.T) {
	var spans []token.Span
	r := NewRule[int]("r").Define(nil,
		Seq[int](Tok(TX), Bind("n", Tok(TInt))).Yield(func(b *Bindings) int {
			spans = b.Spans
			return Named[int](b, "n") + Get[int](b, 1) + Get[int](b, 7)
		}),
	)

	in := toks(TX, TInt)
	in[1].Value = 21

	n, f := r.Parse(cursor.NewTokens(in))
	if f != nil {
		t.Fatalf("Parse: %v", f)
	}

	if n.Payload != 42 {
		t.Errorf("expected 42, got %d", n.Payload)
	}
	if diff := cmp.Diff([]token.Span{in[0].Span, in[1].Span}, spans); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}
}

func TestParseAll(t *testing.T) {
	r := NewRule[string]("r").Define(nil, Seq[string](Tok(TX)).Yield(lit("x")))

	in := toks(TX, TY)
	if _, err := Parse(r, cursor.NewTokens(in)); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	_, err := ParseAll(r, cursor.NewTokens(in))

	var d *diag.Diagnostic
	if !errors.As(err, &d) {
		t.Fatalf("expected a diagnostic, got %v", err)
	}
	if d.Code != diag.CodeExpectedToken || d.Message != "expected end of input, found `Y`" {
		t.Errorf("unexpected diagnostic %v", d)
	}
	if d.Primary() != in[1].Span {
		t.Errorf("expected diagnostic at %v, got %v", in[1].Span, d.Primary())
	}
}

func TestParseEmpty(t *testing.T) {
	r := NewRule[string]("r").Define(Default(lit("x")))

	_, err := Parse(r, cursor.NewTokens(nil))

	var d *diag.Diagnostic
	if !errors.As(err, &d) || d.Code != diag.CodeEmptyInput || d.Severity != diag.Fatal {
		t.Errorf("expected fatal P003, got %v", err)
	}
}

func TestParseThrown(t *testing.T) {
	r := NewRule[string]("r").Define(nil,
		Seq[string](Tok(TX), Call(func(c *cursor.Tokens) (any, *Failure) {
			testCatalog.New("E101", c.Position(), "nothing").Throw()
			return nil, nil
		})),
	)

	_, err := Parse(r, cursor.NewTokens(toks(TX, TY)))

	var d *diag.Diagnostic
	if !errors.As(err, &d) || d.Code != "E101" || d.Severity != diag.Fatal {
		t.Errorf("expected fatal E101, got %v", err)
	}
}

func TestTrace(t *testing.T) {
	var lines []string

	r := NewRule[string]("r").Define(nil,
		Seq[string](Tok(TX), Tok(TZ)),
		Seq[string](Tok(TX), Tok(TY)),
	)

	c := cursor.NewTokens(toks(TX, TY))
	c.TraceFunc = func(v ...any) {
		for _, x := range v {
			lines = append(lines, x.(string))
		}
	}

	if _, f := r.Parse(c); f != nil {
		t.Fatalf("Parse: %v", f)
	}

	want := []string{
		"TRY r(X Y…)",
		"TRY r(X Y…, X Z)",
		"TRY r(X Y…, X Y)",
		"GOT r(…, t:1:1-1:3)",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}
}

func TestAltString(t *testing.T) {
	list := NewRule[int]("list")
	a := Seq[int](Bind("head", Tok(TX)), TokIf(TInt, func(token.Token) bool { return true }), Sub(list))

	if got := a.String(); got != "head=X int? <list>" {
		t.Errorf("unexpected description %q", got)
	}
}
