package repl

import (
	"sort"
	"strings"
	"unicode"

	"monkey/internal/evaluator"
	"monkey/token"
)

var commands = []string{":tokens", ":ast", ":env", ":reset", ":help", ":quit"}

// Complete proposes whole lines that finish the word under the cursor
// with a keyword, builtin, bound name or command.
func (s *Session) Complete(line string) []string {
	start := strings.LastIndexFunc(line, func(r rune) bool {
		return !(r == '_' || r == ':' || unicode.IsLetter(r))
	}) + 1
	head, word := line[:start], line[start:]
	if word == "" {
		return nil
	}

	var candidates []string
	if strings.HasPrefix(word, ":") {
		candidates = commands
	} else {
		candidates = append(candidates, token.Keywords()...)
		candidates = append(candidates, evaluator.BuiltinNames()...)
		candidates = append(candidates, s.env.Names()...)
	}

	seen := make(map[string]bool)
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(c, word) && c != word && !seen[c] {
			seen[c] = true
			out = append(out, head+c)
		}
	}
	sort.Strings(out)
	return out
}
