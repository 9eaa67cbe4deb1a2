package lexer

import (
	"errors"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zostay/flexar/cursor"
	"github.com/zostay/flexar/diag"
	"github.com/zostay/flexar/match"
	"github.com/zostay/flexar/token"
)

var (
	TPlus  = token.NewTag("+")
	TDot   = token.NewTag(".")
	TEQ    = token.NewTag("=")
	TEE    = token.NewTag("==")
	TEEE   = token.NewTag("===")
	TInt   = token.NewTag("int")
	TFloat = token.NewTag("float")
	TStr   = token.NewTag("string")
	TWord  = token.NewTag("word")
)

var testCatalog = diag.NewCatalog().
	Define("E001", "invalid character", "`{0}` is an invalid character").
	Define("E002", "string not closed", "expected `\"` to close string opened at {0}")

func number() Rule {
	float := func(s *Scope) any {
		f, _ := strconv.ParseFloat(s.String("number"), 64)
		return f
	}
	integer := func(s *Scope) any {
		n, _ := strconv.Atoi(s.String("number"))
		return n
	}

	return Body(match.Digits,
		Set("number", ""),
		Set("dot", false),
		While("number",
			Set("matched", false),
			If(match.Digits,
				Set("matched", true),
				Push("number"),
			),
			If(match.RunesIn("."),
				When(Flag("dot"), FinalizeWith(TFloat, float)),
				Set("matched", true),
				Set("dot", true),
				Push("number"),
			),
			When(Not(Flag("matched")), Break("number")),
		),
		When(Flag("dot"), FinalizeWith(TFloat, float)),
		FinalizeWith(TInt, integer),
	)
}

func str() Rule {
	return Body(match.RunesIn(`"`),
		Advance(),
		Set("string", ""),
		While("",
			If(match.RunesIn(`"`),
				Advance(),
				FinalizeWith(TStr, Var("string")),
			),
			Push("string"),
		),
		Raise(testCatalog, "E002", Here, Opened),
	)
}

func testLexer() *Lexer {
	return New(InvalidChar(testCatalog, "E001"),
		Literal('+', TPlus),
		Literal('.', TDot),
		Skip(match.Whitespace),
		Sequence("===", TEEE),
		Sequence("==", TEE),
		Sequence("=", TEQ),
		str(),
		number(),
	)
}

// kinds strips spans so tests can compare tags and values only.
func kinds(toks []token.Token) []token.Token {
	out := make([]token.Token, len(toks))
	for i, tok := range toks {
		out[i] = token.Token{Tag: tok.Tag, Value: tok.Value}
	}
	return out
}

func TestScan(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Token
	}{
		{"empty", "", []token.Token{}},
		{"only whitespace", " \n\t", []token.Token{}},
		{"triple", "===", []token.Token{{Tag: TEEE}}},
		{"double", "==", []token.Token{{Tag: TEE}}},
		{"single", "=", []token.Token{{Tag: TEQ}}},
		{"four", "====", []token.Token{{Tag: TEEE}, {Tag: TEQ}}},
		{"int", "42", []token.Token{{Tag: TInt, Value: 42}}},
		{"float", "4.25", []token.Token{{Tag: TFloat, Value: 4.25}}},
		{"trailing dot", "7.", []token.Token{{Tag: TFloat, Value: 7.0}}},
		{
			"second dot restarts",
			"12.3.4",
			[]token.Token{{Tag: TFloat, Value: 12.3}, {Tag: TDot}, {Tag: TInt, Value: 4}},
		},
		{
			"mixed",
			`1 + "a b"==2`,
			[]token.Token{
				{Tag: TInt, Value: 1},
				{Tag: TPlus},
				{Tag: TStr, Value: "a b"},
				{Tag: TEE},
				{Tag: TInt, Value: 2},
			},
		},
	}

	l := testLexer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := l.Scan("test", tt.input)
			if err != nil {
				t.Fatalf("Scan: %v", err)
			}
			if diff := cmp.Diff(tt.want, kinds(got)); diff != "" {
				t.Errorf("(-want, +got)\n%s", diff)
			}
		})
	}
}

func TestSpansAreContiguous(t *testing.T) {
	toks, err := testLexer().Scan("test", "1 +\n  \"x\" ==3.5.")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(toks) != 6 {
		t.Fatalf("expected 6 tokens, got %v", toks)
	}
	if toks[0].Span.Start.Offset != 0 {
		t.Errorf("first token starts at %v", toks[0].Span.Start)
	}
	for i := 1; i < len(toks); i++ {
		if toks[i].Span.Start != toks[i-1].Span.End {
			t.Errorf("token %d starts at %v, previous ends at %v", i, toks[i].Span.Start, toks[i-1].Span.End)
		}
	}

	want := token.Position{File: "test", Line: 2, Column: 6, Offset: 9}
	if diff := cmp.Diff(want, toks[2].Span.End); diff != "" {
		t.Errorf("string end (-want, +got)\n%s", diff)
	}
}

func TestSequenceAtomicity(t *testing.T) {
	c := cursor.NewChars(cursor.NewSource("test", "==x"))
	before := c.Pos()

	if _, res := Sequence("===", TEEE).Match(c); res != NoMatch {
		t.Fatalf("expected no match, got %v", res)
	}
	if c.Pos() != before {
		t.Fatalf("failed sequence moved the cursor to %v", c.Pos())
	}

	tok, res := Sequence("==", TEE).Match(c)
	if res != Emit || tok.Tag != TEE || tok.Span.Len() != 2 {
		t.Errorf("got %v %v", tok, res)
	}
}

func TestUnterminatedString(t *testing.T) {
	toks, err := testLexer().Scan("test", `1 "abc`)
	if toks != nil {
		t.Errorf("expected no tokens, got %v", toks)
	}

	var d *diag.Diagnostic
	if !errors.As(err, &d) {
		t.Fatalf("expected a diagnostic, got %v", err)
	}

	want := &diag.Diagnostic{
		Code:    "E002",
		Title:   "string not closed",
		Message: "expected `\"` to close string opened at test:1:3",
		Spans: []token.Span{
			token.Position{File: "test", Line: 1, Column: 7, Offset: 6}.Point(),
			token.Position{File: "test", Line: 1, Column: 3, Offset: 2}.Point(),
		},
		Severity: diag.Fatal,
	}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}
}

func TestInvalidChar(t *testing.T) {
	toks, err := testLexer().Scan("test", "1 + #")
	if toks != nil {
		t.Errorf("expected no tokens, got %v", toks)
	}

	var d *diag.Diagnostic
	if !errors.As(err, &d) || d.Code != "E001" {
		t.Fatalf("expected E001, got %v", err)
	}
	if d.Message != "`#` is an invalid character" || d.Primary().Start.Column != 5 {
		t.Errorf("unexpected diagnostic %v", d)
	}
}

func TestStalledRule(t *testing.T) {
	lazy := Action(match.RunesIn("x"), func(*cursor.Chars) {})
	l := New(InvalidChar(testCatalog, "E001"), lazy)

	_, err := l.Scan("test", "x")

	var d *diag.Diagnostic
	if !errors.As(err, &d) || d.Code != diag.CodeNoProgress {
		t.Fatalf("expected %s, got %v", diag.CodeNoProgress, err)
	}
}

func TestNewRequiresDefault(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic")
		}
	}()
	New(nil)
}

func TestLongest(t *testing.T) {
	l := New(InvalidChar(testCatalog, "E001"),
		Longest(
			Sequence("=", TEQ),
			Sequence("==", TEE),
			Sequence("===", TEEE),
		),
	)

	got, err := l.Scan("test", "=====")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	want := []token.Token{{Tag: TEEE}, {Tag: TEE}}
	if diff := cmp.Diff(want, kinds(got)); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}
}

func TestFirstAndChar(t *testing.T) {
	l := New(InvalidChar(testCatalog, "E001"),
		First(Skip(match.Whitespace), Char(TWord, match.Letters)),
	)

	got, err := l.Scan("test", "a b")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	want := []token.Token{{Tag: TWord, Value: 'a'}, {Tag: TWord, Value: 'b'}}
	if diff := cmp.Diff(want, kinds(got)); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}
}

func TestBodyNestedLoops(t *testing.T) {
	// word: letters, where a digit ends both loops at once.
	word := Body(match.Letters,
		While("outer",
			While("inner",
				If(match.Digits, Break("outer")),
				If(match.Whitespace, Break("inner")),
			),
			Break(""),
		),
		FinalizeWith(TWord, func(s *Scope) any { return s.Text() }),
	)

	l := New(InvalidChar(testCatalog, "E001"), word, Skip(match.Whitespace), number())

	got, err := l.Scan("test", "ab1 cd e")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	want := []token.Token{
		{Tag: TWord, Value: "ab"},
		{Tag: TInt, Value: 1},
		{Tag: TWord, Value: "cd"},
		{Tag: TWord, Value: "e"},
	}
	if diff := cmp.Diff(want, kinds(got)); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}
}

func TestBodyOnce(t *testing.T) {
	quote := match.RunesIn("'")
	char := Body(quote,
		Advance(),
		Once(Push("c")),
		If(quote,
			Advance(),
			FinalizeWith(TWord, Var("c")),
		),
		Raise(testCatalog, "E001", Here, Found),
	)

	l := New(InvalidChar(testCatalog, "E001"), char)

	got, err := l.Scan("test", `'x''''`)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	want := []token.Token{{Tag: TWord, Value: "x"}, {Tag: TWord, Value: "'"}}
	if diff := cmp.Diff(want, kinds(got)); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}

	_, err = l.Scan("test", `'xy'`)

	var d *diag.Diagnostic
	if !errors.As(err, &d) || d.Message != "`y` is an invalid character" {
		t.Fatalf("expected E001 at y, got %v", err)
	}
}

func TestBodyWithoutFinalizeDoesNotMatch(t *testing.T) {
	rules := []Rule{
		Body(match.Letters, Advance(), Advance()),
		Body(match.Letters, Advance(), Break("nowhere"), Finalize(TWord)),
	}

	for i, rule := range rules {
		c := cursor.NewChars(cursor.NewSource("test", "abc"))
		if _, res := rule.Match(c); res != NoMatch {
			t.Fatalf("rule %d: expected no match, got %v", i, res)
		}
		if c.Pos().Offset != 0 {
			t.Errorf("rule %d: cursor moved to %v", i, c.Pos())
		}
	}
}
