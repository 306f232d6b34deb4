package lsp_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"monkey/internal/lsp"
)

const testURI = "file:///tmp/test.mk"

type notifications struct {
	published []*protocol.PublishDiagnosticsParams
}

func newContext(n *notifications) *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			if method == protocol.ServerTextDocumentPublishDiagnostics {
				n.published = append(n.published, params.(*protocol.PublishDiagnosticsParams))
			}
		},
	}
}

func open(t *testing.T, h *lsp.Handler, ctx *glsp.Context, text string) {
	t.Helper()
	err := h.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: testURI, LanguageID: "monkey", Version: 1, Text: text},
	})
	require.NoError(t, err)
}

func TestInitialize(t *testing.T) {
	h := lsp.NewHandler("1.2.3")

	result, err := h.Initialize(&glsp.Context{}, &protocol.InitializeParams{})
	require.NoError(t, err)

	res, ok := result.(*protocol.InitializeResult)
	require.True(t, ok)
	assert.Equal(t, "monkey", res.ServerInfo.Name)
	assert.Equal(t, "1.2.3", *res.ServerInfo.Version)
	assert.NotNil(t, res.Capabilities.CompletionProvider)
	assert.Equal(t, true, res.Capabilities.HoverProvider)
}

func TestDiagnosticsOnOpenAndChange(t *testing.T) {
	var n notifications
	ctx := newContext(&n)
	h := lsp.NewHandler("test")

	open(t, h, ctx, "let x = 1;\nlet = 2;\nlet y = @;")

	require.Len(t, n.published, 1)
	diags := n.published[0].Diagnostics
	require.Len(t, diags, 2)

	assert.Equal(t, "invalid identifier =", diags[0].Message)
	assert.Equal(t, uint32(1), diags[0].Range.Start.Line)
	assert.Equal(t, uint32(4), diags[0].Range.Start.Character)
	assert.Equal(t, "E0102", diags[0].Code.Value)
	assert.Equal(t, "monkey-parser", *diags[0].Source)

	assert.Equal(t, "unexpected character: '@'", diags[1].Message)
	assert.Equal(t, uint32(2), diags[1].Range.Start.Line)
	assert.Equal(t, uint32(8), diags[1].Range.Start.Character)
	assert.Equal(t, uint32(9), diags[1].Range.End.Character)
	assert.Equal(t, "monkey-scanner", *diags[1].Source)

	err := h.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "let x = 1;"}},
	})
	require.NoError(t, err)
	require.Len(t, n.published, 2)
	assert.Empty(t, n.published[1].Diagnostics)
}

func TestDiagnosticAtEndOfInput(t *testing.T) {
	var n notifications
	h := lsp.NewHandler("test")
	open(t, h, newContext(&n), "fn(x) {")

	require.Len(t, n.published, 1)
	diags := n.published[0].Diagnostics
	require.Len(t, diags, 1)
	assert.Equal(t, "expected token: } got: end of file", diags[0].Message)
	assert.Equal(t, uint32(6), diags[0].Range.Start.Character)
	assert.Equal(t, uint32(7), diags[0].Range.End.Character)
}

func TestLintWarnings(t *testing.T) {
	var n notifications
	h := lsp.NewHandler("test")
	open(t, h, newContext(&n), "let f = fn() {\n  let tmp = 1;\n  totl\n};")

	require.Len(t, n.published, 1)
	diags := n.published[0].Diagnostics
	require.Len(t, diags, 2)

	assert.Equal(t, "unused variable 'tmp'", diags[0].Message)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *diags[0].Severity)
	assert.Equal(t, "monkey-lint", *diags[0].Source)
	assert.Equal(t, uint32(1), diags[0].Range.Start.Line)
	assert.Equal(t, uint32(6), diags[0].Range.Start.Character)

	assert.Equal(t, "identifier not found: totl", diags[1].Message)
	assert.Equal(t, "W0401", diags[1].Code.Value)
	assert.Equal(t, uint32(2), diags[1].Range.Start.Line)
}

func TestDidCloseClearsDiagnostics(t *testing.T) {
	var n notifications
	ctx := newContext(&n)
	h := lsp.NewHandler("test")
	open(t, h, ctx, "let = 1;")

	err := h.TextDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)
	require.Len(t, n.published, 2)
	assert.Empty(t, n.published[1].Diagnostics)
}

func TestCompletion(t *testing.T) {
	h := lsp.NewHandler("test")
	open(t, h, &glsp.Context{}, "let add = fn(a, b) { a + b };\nlet total = add(1, 2);\nlet total = 3;\nlet = broken")

	result, err := h.TextDocumentCompletion(&glsp.Context{}, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		},
	})
	require.NoError(t, err)

	list := result.(*protocol.CompletionList)
	labels := make(map[string]protocol.CompletionItemKind)
	for _, item := range list.Items {
		_, dup := labels[item.Label]
		assert.False(t, dup, "duplicate completion %s", item.Label)
		labels[item.Label] = *item.Kind
	}

	assert.Equal(t, protocol.CompletionItemKindKeyword, labels["let"])
	assert.Equal(t, protocol.CompletionItemKindFunction, labels["len"])
	assert.Equal(t, protocol.CompletionItemKindFunction, labels["add"])
	assert.Equal(t, protocol.CompletionItemKindVariable, labels["total"])
	assert.Len(t, list.Items, 7+6+2)
}

func TestHover(t *testing.T) {
	h := lsp.NewHandler("test")
	open(t, h, &glsp.Context{}, "let x = 1 + 2 * 3;\nlen(x)")

	hover, err := h.TextDocumentHover(&glsp.Context{}, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
			Position:     protocol.Position{Line: 0, Character: 14},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, hover)

	content := hover.Contents.(protocol.MarkupContent)
	assert.Contains(t, content.Value, "(2 * 3)")
	assert.Equal(t, uint32(12), hover.Range.Start.Character)
	assert.Equal(t, uint32(17), hover.Range.End.Character)

	hover, err = h.TextDocumentHover(&glsp.Context{}, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
			Position:     protocol.Position{Line: 1, Character: 1},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, hover)
	content = hover.Contents.(protocol.MarkupContent)
	assert.Contains(t, content.Value, "number of characters")
}

func TestDocumentSymbols(t *testing.T) {
	h := lsp.NewHandler("test")
	open(t, h, &glsp.Context{}, "let add = fn(a, b) { a + b };\nlet n = 5;\nlet broken = ;")

	result, err := h.TextDocumentDocumentSymbol(&glsp.Context{}, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)

	symbols := result.([]protocol.DocumentSymbol)
	require.Len(t, symbols, 3)
	assert.Equal(t, "add", symbols[0].Name)
	assert.Equal(t, protocol.SymbolKindFunction, symbols[0].Kind)
	assert.Equal(t, "n", symbols[1].Name)
	assert.Equal(t, protocol.SymbolKindVariable, symbols[1].Kind)
	assert.Equal(t, uint32(1), symbols[1].SelectionRange.Start.Line)
	assert.Equal(t, uint32(4), symbols[1].SelectionRange.Start.Character)
	assert.Equal(t, uint32(5), symbols[1].SelectionRange.End.Character)
	assert.Equal(t, "broken", symbols[2].Name)
}

func TestTextDocumentSemanticTokensFull(t *testing.T) {
	h := lsp.NewHandler("test")
	open(t, h, &glsp.Context{}, "let add = fn(a) {\n  len(a) + 10\n};\nadd(\"x\")")

	tokens, err := h.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)
	require.NotNil(t, tokens)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.Len(t, decoded, 11)

	assertToken(t, &decoded[0], 1, 1, 3, "keyword", nil)
	assertToken(t, &decoded[1], 1, 5, 3, "function", []string{"declaration"})
	assertToken(t, &decoded[2], 1, 9, 1, "operator", nil)
	assertToken(t, &decoded[3], 1, 11, 2, "keyword", nil)
	assertToken(t, &decoded[4], 1, 14, 1, "parameter", []string{"declaration"})
	assertToken(t, &decoded[5], 2, 3, 3, "function", []string{"defaultLibrary"})
	assertToken(t, &decoded[6], 2, 7, 1, "variable", nil)
	assertToken(t, &decoded[7], 2, 10, 1, "operator", nil)
	assertToken(t, &decoded[8], 2, 12, 2, "number", nil)
	assertToken(t, &decoded[9], 4, 1, 3, "variable", nil)
	assertToken(t, &decoded[10], 4, 5, 3, "string", nil)
}

func TestSemanticTokensFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.mk")
	require.NoError(t, os.WriteFile(path, []byte("let x = 1;"), 0o644))

	h := lsp.NewHandler("test")
	tokens, err := h.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file://" + filepath.ToSlash(path)},
	})
	require.NoError(t, err)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.Len(t, decoded, 4)
	assertToken(t, &decoded[1], 1, 5, 1, "variable", []string{"declaration"})

	require.NoError(t, os.WriteFile(path, []byte("let x = 1; let y = 2;"), 0o644))
	tokens, err = h.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file://" + filepath.ToSlash(path)},
	})
	require.NoError(t, err)
	decoded, err = decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	assert.Len(t, decoded, 8, "unopened files are read again on every request")

	_, err = h.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///does/not/exist.mk"},
	})
	assert.Error(t, err)
}

type DecodedToken struct {
	Index     int
	Line      uint32
	Char      uint32
	Length    uint32
	Type      string
	Modifiers []string
}

func decodeSemanticTokens(raw []uint32) ([]DecodedToken, error) {
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("raw token data length %d is not a multiple of 5", len(raw))
	}

	var (
		decoded []DecodedToken
		line    uint32
		char    uint32
	)

	for i := 0; i < len(raw); i += 5 {
		deltaLine := raw[i]
		deltaStart := raw[i+1]
		length := raw[i+2]
		tokenTypeIdx := raw[i+3]
		tokenModMask := raw[i+4]

		if deltaLine == 0 {
			char += deltaStart
		} else {
			line += deltaLine
			char = deltaStart
		}

		var modifiers []string
		for j, name := range lsp.SemanticTokenModifiers {
			if tokenModMask&(1<<j) != 0 {
				modifiers = append(modifiers, name)
			}
		}

		decoded = append(decoded, DecodedToken{
			Index:     i / 5,
			Line:      line + 1, // LSP uses 0-based indexing
			Char:      char + 1, // LSP uses 0-based indexing
			Length:    length,
			Type:      lsp.SemanticTokenTypes[tokenTypeIdx],
			Modifiers: modifiers,
		})
	}

	return decoded, nil
}

func assertToken(t *testing.T, token *DecodedToken, expectedLine, expectedChar, expectedLength uint32, expectedType string, expectedModifiers []string) {
	require.Equal(t, expectedLine, token.Line, "line mismatch (expected line %d)", expectedLine)
	require.Equal(t, expectedChar, token.Char, "char mismatch (expected char %d)", expectedChar)
	require.Equal(t, expectedLength, token.Length, "length mismatch")
	require.Equal(t, expectedType, token.Type, "type mismatch")
	require.ElementsMatch(t, expectedModifiers, token.Modifiers, "modifiers mismatch")
}
