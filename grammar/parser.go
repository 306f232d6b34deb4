package grammar

import (
	"fmt"
	"sync"

	"github.com/alecthomas/participle/v2"
)

var (
	outlineOnce   sync.Once
	outlineParser *participle.Parser[Outline]
	outlineErr    error
)

func parser() (*participle.Parser[Outline], error) {
	outlineOnce.Do(func() {
		outlineParser, outlineErr = participle.Build[Outline](
			participle.Lexer(MonkeyLexer),
			participle.Elide("Whitespace"),
			participle.UseLookahead(3),
		)
	})
	return outlineParser, outlineErr
}

// ParseOutline never fails on malformed programs; an error means the
// grammar itself could not be built.
func ParseOutline(filename, source string) (*Outline, error) {
	p, err := parser()
	if err != nil {
		return nil, fmt.Errorf("failed to build outline parser: %w", err)
	}

	outline, err := p.ParseString(filename, source)
	if err != nil {
		return nil, fmt.Errorf("failed to outline %s: %w", filename, err)
	}
	return outline, nil
}
