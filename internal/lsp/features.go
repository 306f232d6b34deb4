package lsp

import (
	"fmt"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"monkey/grammar"
	"monkey/internal/ast"
	"monkey/internal/evaluator"
	"monkey/token"
)

var builtinDocs = map[string]string{
	"len":   "len(x): number of characters in a string or elements in an array",
	"first": "first(array): the first element, or null when empty",
	"last":  "last(array): the last element, or null when empty",
	"rest":  "rest(array): a new array without the first element",
	"push":  "push(array, x): a new array with x appended",
	"puts":  "puts(args...): prints each argument and returns null",
}

// TextDocumentCompletion offers keywords, builtins and every name bound
// with let in the document.
func (h *Handler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	doc, err := h.document(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	var items []protocol.CompletionItem
	for _, kw := range token.Keywords() {
		items = append(items, completionItem(kw, protocol.CompletionItemKindKeyword, "keyword"))
	}
	for _, name := range evaluator.BuiltinNames() {
		items = append(items, completionItem(name, protocol.CompletionItemKindFunction, builtinDocs[name]))
	}

	seen := make(map[string]bool)
	for _, b := range doc.bindings() {
		if seen[b.Name.Value] {
			continue
		}
		seen[b.Name.Value] = true

		kind := protocol.CompletionItemKindVariable
		if b.Kind() == "function" {
			kind = protocol.CompletionItemKindFunction
		}
		items = append(items, completionItem(b.Name.Value, kind, b.Kind()))
	}

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

func completionItem(label string, kind protocol.CompletionItemKind, detail string) protocol.CompletionItem {
	return protocol.CompletionItem{
		Label:  label,
		Kind:   &kind,
		Detail: ptrString(detail),
	}
}

// TextDocumentHover shows the canonical form of the innermost expression
// under the cursor.
func (h *Handler) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, err := h.document(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	node := ast.Enclosing(doc.result.Program, doc.offset(params.Position))
	if node == nil {
		return nil, nil
	}
	if _, ok := node.(*ast.Program); ok {
		return nil, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n\n```monkey\n%s\n```", strings.ToLower(node.NodeType().String()), node.String())
	if ident, ok := node.(*ast.Ident); ok {
		if docText, ok := builtinDocs[ident.Value]; ok {
			fmt.Fprintf(&b, "\n\n%s", docText)
		}
	}

	r := doc.toRange(node.NodeSpan())
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: b.String(),
		},
		Range: &r,
	}, nil
}

// TextDocumentDocumentSymbol lists the let bindings. It works on files
// that do not parse.
func (h *Handler) TextDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc, err := h.document(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	symbols := []protocol.DocumentSymbol{}
	for _, b := range doc.bindings() {
		kind := protocol.SymbolKindVariable
		if b.Kind() == "function" {
			kind = protocol.SymbolKindFunction
		}

		nameRange := doc.toRange(token.Span{Start: b.Name.Pos.Offset, End: b.Name.Pos.Offset + len(b.Name.Value)})
		symbols = append(symbols, protocol.DocumentSymbol{
			Name:           b.Name.Value,
			Detail:         ptrString(b.Kind()),
			Kind:           kind,
			Range:          doc.toRange(token.Span{Start: b.Pos.Offset, End: b.EndPos.Offset}),
			SelectionRange: nameRange,
		})
	}
	return symbols, nil
}

func (d *document) bindings() []*grammar.Binding {
	outline, err := grammar.ParseOutline("", d.text)
	if err != nil {
		log.Warningf("outline failed: %s", err)
		return nil
	}
	return outline.Bindings()
}
