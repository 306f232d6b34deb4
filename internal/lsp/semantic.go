package lsp

import (
	"unicode/utf8"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"monkey/grammar"
	"monkey/internal/ast"
)

// SemanticToken represents a single semantic token for LSP
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	log.Debugf("semantic tokens for %s", params.TextDocument.URI)

	doc, err := h.document(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	tokens, err := doc.semanticTokens()
	if err != nil {
		return nil, err
	}

	var data []uint32
	var prevLine, prevStart uint32

	// Encode tokens into LSP wire format (using delta-line, delta-start compression)
	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		} else {
			deltaStart = token.StartChar
		}

		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}

	return &protocol.SemanticTokens{Data: data}, nil
}

// semanticTokens classifies the text lexically, then refines identifiers
// with whatever the parser managed to build: declared names and
// parameters.
func (d *document) semanticTokens() ([]SemanticToken, error) {
	highlights, err := grammar.Classify(d.text)
	if err != nil {
		return nil, err
	}

	roles := d.identifierRoles()

	var tokens []SemanticToken
	for _, hl := range highlights {
		var tokenType string
		modifiers := 0

		switch hl.Class {
		case grammar.ClassKeyword:
			tokenType = "keyword"
		case grammar.ClassBuiltin:
			tokenType = "function"
			modifiers = modifierMask("defaultLibrary")
		case grammar.ClassIdentifier:
			role, ok := roles[hl.Pos.Offset]
			if !ok {
				role = identifierRole{tokenType: "variable"}
			}
			tokenType = role.tokenType
			if role.declaration {
				modifiers = modifierMask("declaration")
			}
		case grammar.ClassNumber:
			tokenType = "number"
		case grammar.ClassString:
			tokenType = "string"
		case grammar.ClassOperator:
			tokenType = "operator"
		default:
			continue
		}

		start := d.toPosition(hl.Pos.Offset)
		end := d.toPosition(hl.Span().End)
		// Tokens may not span lines
		if start.Line != end.Line {
			continue
		}

		tokens = append(tokens, SemanticToken{
			Line:           start.Line,
			StartChar:      start.Character,
			Length:         uint32(utf8.RuneCountInString(hl.Text)),
			TokenType:      indexOf(tokenType, SemanticTokenTypes),
			TokenModifiers: modifiers,
		})
	}

	return tokens, nil
}

type identifierRole struct {
	tokenType   string
	declaration bool
}

// identifierRoles maps the offset of every declaring identifier to its
// role. Names bound to function literals are functions.
func (d *document) identifierRoles() map[int]identifierRole {
	roles := make(map[int]identifierRole)

	ast.Walk(d.result.Program, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.LetStmt:
			role := identifierRole{tokenType: "variable", declaration: true}
			if _, ok := n.Value.(*ast.FunctionLit); ok {
				role.tokenType = "function"
			}
			roles[n.Name.Span.Start] = role
		case *ast.FunctionLit:
			for _, p := range n.Parameters {
				roles[p.Span.Start] = identifierRole{tokenType: "parameter", declaration: true}
			}
		}
		return true
	})

	return roles
}

func modifierMask(name string) int {
	return 1 << indexOf(name, SemanticTokenModifiers)
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
