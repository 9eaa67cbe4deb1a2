package diag

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zostay/flexar/token"
)

// Definition describes one kind of diagnostic. Template may contain ordered
// slots {0}, {1}, ... that are filled from the arguments given to
// Catalog.New. A literal brace is written {{.
type Definition struct {
	Code     Code
	Title    string
	Template string
}

// Catalog maps codes to their definitions. Catalogs are built once, before
// any scan or parse, and are read-only afterwards.
type Catalog struct {
	defs map[Code]Definition
}

// NewCatalog returns a catalog holding the given definitions.
func NewCatalog(defs ...Definition) *Catalog {
	c := &Catalog{defs: make(map[Code]Definition, len(defs))}
	for _, d := range defs {
		c.defs[d.Code] = d
	}
	return c
}

// Define adds or replaces a definition and returns the catalog for chaining.
func (c *Catalog) Define(code Code, title, template string) *Catalog {
	c.defs[code] = Definition{Code: code, Title: title, Template: template}
	return c
}

// Lookup returns the definition for code.
func (c *Catalog) Lookup(code Code) (Definition, bool) {
	d, ok := c.defs[code]
	return d, ok
}

// New builds a recoverable diagnostic for code reported at the span at. Each
// argument fills the matching template slot. Spans and positions are printed
// as locations and also recorded as secondary spans of the diagnostic.
//
// Asking for a code the catalog does not define yields a CodeUnknown
// diagnostic instead.
func (c *Catalog) New(code Code, at token.Span, args ...any) *Diagnostic {
	def, ok := c.Lookup(code)
	if !ok {
		return Builtin.New(CodeUnknown, at, code)
	}

	d := &Diagnostic{
		Code:  def.Code,
		Title: def.Title,
		Spans: []token.Span{at},
	}

	rendered := make([]string, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case token.Span:
			d.Spans = append(d.Spans, v)
			rendered[i] = v.Start.String()
		case token.Position:
			d.Spans = append(d.Spans, v.Point())
			rendered[i] = v.String()
		default:
			rendered[i] = fmt.Sprint(v)
		}
	}

	d.Message = fill(def.Template, rendered)
	return d
}

// fill substitutes {n} slots. Slots that name a missing argument are left as
// written.
func fill(tmpl string, args []string) string {
	out := &strings.Builder{}
	for len(tmpl) > 0 {
		open := strings.IndexByte(tmpl, '{')
		if open < 0 {
			out.WriteString(tmpl)
			break
		}

		out.WriteString(tmpl[:open])
		tmpl = tmpl[open:]

		if strings.HasPrefix(tmpl, "{{") {
			out.WriteByte('{')
			tmpl = tmpl[2:]
			continue
		}

		end := strings.IndexByte(tmpl, '}')
		if end < 0 {
			out.WriteString(tmpl)
			break
		}

		n, err := strconv.Atoi(tmpl[1:end])
		if err != nil || n < 0 || n >= len(args) {
			out.WriteString(tmpl[:end+1])
		} else {
			out.WriteString(args[n])
		}
		tmpl = tmpl[end+1:]
	}
	return out.String()
}
