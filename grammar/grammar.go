package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"

	"monkey/token"
)

// Outline is a flat, error tolerant view of a source file: every `let`
// binding that is followed by a name, and every other token skipped.
// It exists so editors can list bindings in files that do not parse.
type Outline struct {
	Items []*Item `parser:"@@*"`
}

type Item struct {
	Binding *Binding `parser:"  @@"`
	Other   string   `parser:"| @(Ident | Integer | String | Operator | Punctuation | Invalid)"`
}

type Binding struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   PosIdent `parser:"\"let\" @@"`
	Value  *Literal `parser:"(\"=\" @@)?"`
}

type PosIdent struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  string `parser:"@Ident"`
}

// Literal records what kind of value a binding starts with, when that is
// obvious from its first token.
type Literal struct {
	Function bool    `parser:"  @\"fn\""`
	Integer  *string `parser:"| @Integer"`
	String   *string `parser:"| @String"`
	Array    bool    `parser:"| @\"[\""`
	Hash     bool    `parser:"| @\"{\""`
}

// Bindings returns the bindings in source order. Keywords are not names,
// so `let let` yields nothing.
func (o *Outline) Bindings() []*Binding {
	var out []*Binding
	for _, item := range o.Items {
		if item.Binding != nil && token.LookupIdent(item.Binding.Name.Value) == token.IDENT {
			out = append(out, item.Binding)
		}
	}
	return out
}

// Kind describes the bound value for display.
func (b *Binding) Kind() string {
	switch {
	case b.Value == nil:
		return "value"
	case b.Value.Function:
		return "function"
	case b.Value.Integer != nil:
		return "integer"
	case b.Value.String != nil:
		return "string"
	case b.Value.Array:
		return "array"
	case b.Value.Hash:
		return "hash"
	}
	return "value"
}
