package errors

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"monkey/token"
)

func init() {
	color.NoColor = true
}

func TestReporterFormat(t *testing.T) {
	source := "let total = 1;\nlet x = totl + 1;\nx"

	reporter := NewReporter("test.mk", source)

	d := NewDiagnostic(ErrorIdentifierNotFound, "identifier not found: totl", token.Span{Start: 23, End: 27}).
		WithSuggestion("did you mean 'total'?").
		WithNote("names are resolved from the innermost scope outward").
		Build()
	formatted := reporter.Format(d)

	assert.Contains(t, formatted, "error[E0300]: identifier not found: totl")
	assert.Contains(t, formatted, "test.mk:2:9")
	assert.Contains(t, formatted, "  1 │ let total = 1;")
	assert.Contains(t, formatted, "  2 │ let x = totl + 1;")
	assert.Contains(t, formatted, "  3 │ x")
	assert.Contains(t, formatted, "        ^^^^\n")
	assert.Contains(t, formatted, "help: did you mean 'total'?")
	assert.Contains(t, formatted, "note: names are resolved")
}

func TestReporterMarkerStopsAtLineEnd(t *testing.T) {
	source := "fn() {\n  1"
	reporter := NewReporter("test.mk", source)

	d := NewDiagnostic(ErrorExpectedToken, "expected token: } got: end of file", token.Span{Start: 3, End: 10}).Build()
	formatted := reporter.Format(d)

	assert.Contains(t, formatted, "test.mk:1:4")
	assert.Contains(t, formatted, "   ^^^\n")
	assert.NotContains(t, formatted, "^^^^")
}

func TestFormatAllSummary(t *testing.T) {
	reporter := NewReporter("a.mk", "1 +\n")
	diags := []Diagnostic{
		NewDiagnostic(ErrorNoPrefixParse, "first", token.Span{Start: 0, End: 1}).Build(),
		NewWarning("", "second", token.Span{Start: 2, End: 3}).Build(),
	}

	out := reporter.FormatAll(diags)
	assert.Contains(t, out, "error[E0101]: first")
	assert.Contains(t, out, "warning: second")
	assert.True(t, strings.HasSuffix(out, "1 error and 1 warning in a.mk\n"))

	out = reporter.FormatAll(diags[1:])
	assert.True(t, strings.HasSuffix(out, "1 warning in a.mk\n"))

	assert.Empty(t, reporter.FormatAll(nil))
}

func TestDidYouMean(t *testing.T) {
	assert.Nil(t, DidYouMean(nil))
	assert.Equal(t, []string{"did you mean 'len'?"}, DidYouMean([]string{"len"}))
	assert.Equal(t, []string{"did you mean one of: 'foo', 'fob'?"}, DidYouMean([]string{"foo", "fob"}))
}

func TestFindSimilar(t *testing.T) {
	candidates := []string{"first", "last", "rest", "push", "puts", "counter", "x"}

	assert.Equal(t, []string{"first"}, FindSimilar("firts", candidates))
	assert.Equal(t, []string{"puts", "push"}, FindSimilar("put", candidates))
	assert.Equal(t, []string{"counter"}, FindSimilar("countr", candidates))
	assert.Empty(t, FindSimilar("completelydifferent", candidates))
	assert.Empty(t, FindSimilar("y", candidates))
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"größe", "grosse", 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, levenshteinDistance(tt.a, tt.b), "%s/%s", tt.a, tt.b)
	}
}

func TestDescribe(t *testing.T) {
	assert.NotEmpty(t, Describe(ErrorDivisionByZero))
	assert.Empty(t, Describe("E9999"))
}
