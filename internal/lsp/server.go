// Package lsp is a language server for the demo language. It has no features
// beyond diagnostics: every time a document is opened, changed or saved it is
// compiled again and the outcome is published to the client.
package lsp

import (
	"errors"
	"sync"
	"unicode/utf16"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/zostay/flexar"
	"github.com/zostay/flexar/diag"
	"github.com/zostay/flexar/internal/demo"
)

const lsName = "flexar"

var log = commonlog.GetLogger("flexar.lsp")

type Server struct {
	lang    *flexar.Language[demo.Expr]
	handler protocol.Handler
	server  *server.Server
	version string

	mu   sync.Mutex
	docs map[protocol.DocumentUri]string
}

func NewServer(version string) *Server {
	ls := &Server{
		lang:    demo.Language(),
		version: version,
		docs:    map[protocol.DocumentUri]string{},
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    intPtr(int(protocol.TextDocumentSyncKindFull)),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.update(ctx, params.TextDocument.URI, textChange.Text)
		}
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.mu.Lock()
	delete(ls.docs, params.TextDocument.URI)
	ls.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.update(ctx, params.TextDocument.URI, *params.Text)
		return nil
	}

	ls.mu.Lock()
	text, ok := ls.docs[params.TextDocument.URI]
	ls.mu.Unlock()

	if ok {
		ls.update(ctx, params.TextDocument.URI, text)
	}
	return nil
}

// update stores the text of a document and publishes its diagnostics.
func (ls *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	ls.mu.Lock()
	ls.docs[uri] = text
	ls.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: ls.Check(uri, text),
	})
}

// Check compiles text and returns the diagnostics to show for it. A document
// that compiles has none.
func (ls *Server) Check(uri protocol.DocumentUri, text string) []protocol.Diagnostic {
	_, err := ls.lang.Parse(string(uri), text)
	if err == nil {
		log.Debugf("%s: ok", uri)
		return []protocol.Diagnostic{}
	}

	var d *diag.Diagnostic
	if !errors.As(err, &d) {
		log.Errorf("%s: %s", uri, err)
		return []protocol.Diagnostic{}
	}

	log.Infof("%s: %s", uri, d)
	return []protocol.Diagnostic{convert(uri, text, d)}
}

func convert(uri protocol.DocumentUri, text string, d *diag.Diagnostic) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := lsName

	out := protocol.Diagnostic{
		Range:    rangeOf(text, d.Primary().Start.Offset, d.Primary().End.Offset),
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: string(d.Code)},
		Source:   &source,
		Message:  d.Title + ": " + d.Message,
	}

	for i, span := range d.Spans {
		if i == 0 {
			continue
		}

		out.RelatedInformation = append(out.RelatedInformation, protocol.DiagnosticRelatedInformation{
			Location: protocol.Location{
				URI:   uri,
				Range: rangeOf(text, span.Start.Offset, span.End.Offset),
			},
			Message: d.Title,
		})
	}

	return out
}

func rangeOf(text string, start, end int) protocol.Range {
	return protocol.Range{
		Start: positionAt(text, start),
		End:   positionAt(text, end),
	}
}

// positionAt converts a byte offset to an LSP position, whose character is
// counted in UTF-16 code units. Offsets past the end of text are clamped.
func positionAt(text string, offset int) protocol.Position {
	if offset > len(text) {
		offset = len(text)
	}

	var line, char protocol.UInteger
	for _, r := range text[:offset] {
		if r == '\n' {
			line++
			char = 0
			continue
		}

		char += protocol.UInteger(utf16.RuneLen(r))
	}

	return protocol.Position{Line: line, Character: char}
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *protocol.TextDocumentSyncKind {
	v := protocol.TextDocumentSyncKind(i)
	return &v
}
