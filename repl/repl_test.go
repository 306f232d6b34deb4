package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monkey/internal/config"
	"monkey/internal/evaluator"
	"monkey/internal/parser"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Color = false
	cfg.HistoryFile = ""
	return cfg
}

func TestSessionEval(t *testing.T) {
	s := NewSession(&bytes.Buffer{}, testConfig())

	out, err := s.Eval("let add = fn(x, y) { x + y; };")
	require.NoError(t, err)
	assert.Equal(t, "fn(x, y) {\n(x + y)\n}", out)

	out, err = s.Eval("add(5 + 5, add(5, 5));")
	require.NoError(t, err)
	assert.Equal(t, "20", out)

	out, err = s.Eval(`{"a": [1, "two"]}`)
	require.NoError(t, err)
	assert.Equal(t, "{a: [1, two]}", out)
}

func TestSessionEvalErrors(t *testing.T) {
	s := NewSession(&bytes.Buffer{}, testConfig())

	_, err := s.Eval("let = 5;")
	var parseErrs parser.ErrorList
	require.ErrorAs(t, err, &parseErrs)

	_, err = s.Eval("missing")
	var rtErr *evaluator.Error
	require.ErrorAs(t, err, &rtErr)
	assert.Equal(t, "identifier not found: missing", rtErr.Message)
}

func TestStart(t *testing.T) {
	input := strings.Join([]string{
		"let x = 5;",
		"x * 2",
		"5 + true",
		"let = 1;",
		`puts("hi")`,
		"",
		"never evaluated",
	}, "\n")

	var out bytes.Buffer
	Start(strings.NewReader(input), &out, testConfig())

	expected := ">> 5\n" +
		">> 10\n" +
		">> parse errors:\ntype mismatch: INTEGER + BOOLEAN\n" +
		">> parse errors:\ninvalid identifier =\n" +
		">> hi\nnull\n" +
		">> bye\n"
	assert.Equal(t, expected, out.String())
}

func TestStartStopsAtEOF(t *testing.T) {
	var out bytes.Buffer
	Start(strings.NewReader("1 + 1"), &out, testConfig())
	assert.Equal(t, ">> 2\n>> ", out.String())
}

func TestStartReportsEveryParseError(t *testing.T) {
	var out bytes.Buffer
	Start(strings.NewReader("let = 1; let 5;\n"), &out, testConfig())

	assert.Equal(t, 2, strings.Count(out.String(), "parse errors:\n"))
}

func TestCommands(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out, testConfig())

	assert.True(t, s.Handle("let a = 1;"))
	assert.True(t, s.Handle("let b = [a];"))
	out.Reset()

	assert.True(t, s.Handle(":env"))
	assert.Equal(t, "a = 1\nb = [1]\n", out.String())

	out.Reset()
	assert.True(t, s.Handle(":ast -a * b"))
	assert.True(t, strings.HasPrefix(out.String(), "((-a) * b)\n"))

	out.Reset()
	assert.True(t, s.Handle(":tokens let"))
	assert.Contains(t, out.String(), "LET")
	assert.Contains(t, out.String(), "EOF")

	out.Reset()
	assert.True(t, s.Handle(":reset"))
	assert.True(t, s.Handle(":env"))
	assert.Empty(t, out.String())

	assert.True(t, s.Handle(":help"))
	assert.Contains(t, out.String(), ":quit")

	out.Reset()
	assert.True(t, s.Handle(":bogus"))
	assert.Contains(t, out.String(), "unknown command :bogus")

	assert.False(t, s.Handle(":quit"))
}

func TestSuggestionsArePrinted(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out, testConfig())
	s.Suggestions = true

	s.Handle("let counter = 1;")
	out.Reset()
	s.Handle("countr")
	assert.Equal(t, "parse errors:\nidentifier not found: countr\ndid you mean 'counter'?\n", out.String())
}

func TestStartPrintsOnlyTheErrorMessage(t *testing.T) {
	var out bytes.Buffer
	Start(strings.NewReader("let counter = 1;\ncountr\n"), &out, testConfig())

	assert.Equal(t, ">> 1\n>> parse errors:\nidentifier not found: countr\n>> ", out.String())
}

func TestMaxDepthFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.MaxDepth = 10
	s := NewSession(&bytes.Buffer{}, cfg)

	_, err := s.Eval("let f = fn() { f() }; f()")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum call depth exceeded")
}

func TestNeedsMore(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"let f = fn(x) {", true},
		{"if (x > 1) {\n  1\n} else {", true},
		{"[1, 2,", true},
		{"let x =", true},
		{"1 + 1", false},
		{"let x = 1;", false},
		{"let = 1;", false},
		{`"open`, false},
		{"}", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NeedsMore(tt.input), "input: %q", tt.input)
	}
}

func TestComplete(t *testing.T) {
	s := NewSession(&bytes.Buffer{}, testConfig())
	s.Handle("let lengthy = 1;")

	assert.Equal(t, []string{"x + len", "x + lengthy", "x + let"}, s.Complete("x + le"))
	assert.Equal(t, []string{"first"}, s.Complete("fir"))
	assert.Equal(t, []string{":reset"}, s.Complete(":re"))
	assert.Nil(t, s.Complete("x + "))
	assert.Empty(t, s.Complete("zzz"))
}
