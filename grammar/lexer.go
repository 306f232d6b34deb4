package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// MonkeyLexer is a forgiving lexer for editors and highlighting. Unlike
// the interpreter's lexer it accepts unterminated strings and keeps
// whitespace, so every byte of the input belongs to exactly one token.
var MonkeyLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Strings; the closing quote is optional
		{Name: "String", Pattern: `"(\\.|[^"\\])*"?`, Action: nil},

		// Keywords and identifiers (order matters)
		{Name: "Ident", Pattern: `[\p{L}_][\p{L}_]*`, Action: nil},

		{Name: "Integer", Pattern: `[0-9]+`, Action: nil},

		// Operators
		{Name: "Operator", Pattern: `(&&|\|\||==|!=|<=|>=|[-+*/<>=!])`, Action: nil},

		// Punctuation (must come after operators)
		{Name: "Punctuation", Pattern: `[{}[\]():,;]`, Action: nil},

		{Name: "Whitespace", Pattern: `\s+`, Action: nil},

		// Anything else, one character at a time
		{Name: "Invalid", Pattern: `.`, Action: nil},
	},
})
