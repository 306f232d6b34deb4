package errors

import (
	"fmt"
	"strings"

	"monkey/token"
)

// DiagnosticBuilder provides a fluent interface for creating diagnostics
type DiagnosticBuilder struct {
	d Diagnostic
}

func NewDiagnostic(code, message string, span token.Span) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		d: Diagnostic{
			Level:   Error,
			Code:    code,
			Message: message,
			Span:    span,
		},
	}
}

func NewWarning(code, message string, span token.Span) *DiagnosticBuilder {
	b := NewDiagnostic(code, message, span)
	b.d.Level = Warning
	return b
}

func (b *DiagnosticBuilder) WithSuggestion(message string) *DiagnosticBuilder {
	b.d.Suggestions = append(b.d.Suggestions, message)
	return b
}

func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.d.Notes = append(b.d.Notes, note)
	return b
}

func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.d.HelpText = help
	return b
}

func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.d
}

// DidYouMean formats suggestions for a misspelled name, or returns nil.
func DidYouMean(similar []string) []string {
	switch len(similar) {
	case 0:
		return nil
	case 1:
		return []string{fmt.Sprintf("did you mean '%s'?", similar[0])}
	default:
		return []string{fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similar, "', '"))}
	}
}

// FindSimilar returns candidates within edit distance two of target,
// closest first.
func FindSimilar(target string, candidates []string) []string {
	type scored struct {
		name string
		dist int
	}
	var hits []scored
	for _, c := range candidates {
		if c == target || len(c) < 2 {
			continue
		}
		if d := levenshteinDistance(target, c); d <= 2 {
			hits = append(hits, scored{c, d})
		}
	}

	// insertion sort keeps equal distances in candidate order
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].dist < hits[j-1].dist; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}

	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}
	return out
}

func levenshteinDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min3(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}

	return prev[len(rb)]
}

func min3(a, b, c int) int {
	return min(a, min(b, c))
}
