package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"monkey/internal/parser"
	"monkey/token"
)

var log = commonlog.GetLogger("monkey.lsp")

// Define the set of supported semantic token types, in legend order
var SemanticTokenTypes = []string{
	"function",
	"variable",
	"parameter",
	"keyword",
	"number",
	"string",
	"operator",
}

// Define the set of supported semantic token modifiers
var SemanticTokenModifiers = []string{
	"declaration",
	"defaultLibrary",
}

// document is one open file and everything derived from its text.
type document struct {
	text   string
	index  *token.LineIndex
	result *parser.ParseResult
}

func newDocument(text string) *document {
	return &document{
		text:   text,
		index:  token.NewLineIndex(text),
		result: parser.ParseSource(text),
	}
}

// Handler implements the LSP server handlers for Monkey
type Handler struct {
	Version string

	mu   sync.RWMutex
	docs map[protocol.DocumentUri]*document
}

func NewHandler(version string) *Handler {
	return &Handler{
		Version: version,
		docs:    make(map[protocol.DocumentUri]*document),
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			HoverProvider:          true,
			DocumentSymbolProvider: true,
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    "monkey",
			Version: &h.Version,
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Debugf("opened %s", params.TextDocument.URI)

	doc := h.update(params.TextDocument.URI, params.TextDocument.Text)
	sendDiagnosticNotification(ctx, params.TextDocument.URI, doc.diagnostics())
	return nil
}

// TextDocumentDidChange handles file change notifications from the editor.
// Only full document sync is advertised, so the last change wins.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Debugf("changed %s", params.TextDocument.URI)

	var text string
	var found bool
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text, found = c.Text, true
		case protocol.TextDocumentContentChangeEvent:
			text, found = c.Text, true
		}
	}
	if !found {
		return nil
	}

	doc := h.update(params.TextDocument.URI, text)
	sendDiagnosticNotification(ctx, params.TextDocument.URI, doc.diagnostics())
	return nil
}

// TextDocumentDidClose forgets the file and clears its diagnostics
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Debugf("closed %s", params.TextDocument.URI)

	h.mu.Lock()
	delete(h.docs, params.TextDocument.URI)
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, params.TextDocument.URI, []protocol.Diagnostic{})
	return nil
}

func (h *Handler) update(uri protocol.DocumentUri, text string) *document {
	doc := newDocument(text)

	h.mu.Lock()
	h.docs[uri] = doc
	h.mu.Unlock()

	return doc
}

// document returns the open document, falling back to the file on disk
// for clients that ask about files they never opened. Files read from disk
// are not kept, so the next request sees the current contents.
func (h *Handler) document(uri protocol.DocumentUri) (*document, error) {
	h.mu.RLock()
	doc, ok := h.docs[uri]
	h.mu.RUnlock()
	if ok {
		return doc, nil
	}

	path, err := uriToPath(uri)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return newDocument(string(content)), nil
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}
	if u.Scheme != "" && u.Scheme != "file" {
		return "", fmt.Errorf("unsupported URI scheme %q", u.Scheme)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) → C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	log.Debugf("sending %d diagnostic(s) for %s", len(diagnostics), uri)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// toPosition converts a byte offset to a 0-based LSP position.
func (d *document) toPosition(offset int) protocol.Position {
	p := d.index.Position(offset)
	return protocol.Position{Line: uint32(p.Line - 1), Character: uint32(p.Column - 1)}
}

func (d *document) toRange(span token.Span) protocol.Range {
	return protocol.Range{Start: d.toPosition(span.Start), End: d.toPosition(span.End)}
}

func (d *document) offset(pos protocol.Position) int {
	return d.index.Offset(int(pos.Line)+1, int(pos.Character)+1)
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrString(s string) *string {
	return &s
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
