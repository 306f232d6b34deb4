package grammar_test

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monkey/grammar"
)

func TestClassify(t *testing.T) {
	highlights, err := grammar.Classify(`let add = fn(x, y) { len("a") + 10 };`)
	require.NoError(t, err)

	expected := []struct {
		class grammar.Class
		text  string
	}{
		{grammar.ClassKeyword, "let"},
		{grammar.ClassIdentifier, "add"},
		{grammar.ClassOperator, "="},
		{grammar.ClassKeyword, "fn"},
		{grammar.ClassPunctuation, "("},
		{grammar.ClassIdentifier, "x"},
		{grammar.ClassPunctuation, ","},
		{grammar.ClassIdentifier, "y"},
		{grammar.ClassPunctuation, ")"},
		{grammar.ClassPunctuation, "{"},
		{grammar.ClassBuiltin, "len"},
		{grammar.ClassPunctuation, "("},
		{grammar.ClassString, `"a"`},
		{grammar.ClassPunctuation, ")"},
		{grammar.ClassOperator, "+"},
		{grammar.ClassNumber, "10"},
		{grammar.ClassPunctuation, "}"},
		{grammar.ClassPunctuation, ";"},
	}

	require.Len(t, highlights, len(expected))
	for i, want := range expected {
		assert.Equal(t, want.class, highlights[i].Class, "token %d (%s)", i, highlights[i].Text)
		assert.Equal(t, want.text, highlights[i].Text, "token %d", i)
	}
}

func TestClassifyPositions(t *testing.T) {
	highlights, err := grammar.Classify("let x = 1;\n  x <= 2")
	require.NoError(t, err)

	last := highlights[len(highlights)-2]
	assert.Equal(t, "<=", last.Text)
	assert.Equal(t, 2, last.Pos.Line)
	assert.Equal(t, 5, last.Pos.Column)
	assert.Equal(t, 15, last.Span().Start)
	assert.Equal(t, 17, last.Span().End)
}

func TestClassifyForgiving(t *testing.T) {
	highlights, err := grammar.Classify(`@ "open`)
	require.NoError(t, err)
	require.Len(t, highlights, 2)
	assert.Equal(t, grammar.ClassInvalid, highlights[0].Class)
	assert.Equal(t, grammar.ClassString, highlights[1].Class)
	assert.Equal(t, `"open`, highlights[1].Text)
}

func TestColorize(t *testing.T) {
	color.NoColor = true
	source := "let  x = \"s\" ;\n"
	assert.Equal(t, source, grammar.Colorize(source))
}

func TestParseOutline(t *testing.T) {
	source := `let one = 1;
let name = "monkey";
let add = fn(a, b) { let sum = a + b; sum };
let = broken;
let xs = [1, 2];
let h = {};
let y = one + 1;
`
	outline, err := grammar.ParseOutline("test.mk", source)
	require.NoError(t, err)

	bindings := outline.Bindings()
	require.Len(t, bindings, 7)

	expected := []struct {
		name string
		kind string
	}{
		{"one", "integer"},
		{"name", "string"},
		{"add", "function"},
		{"sum", "value"},
		{"xs", "array"},
		{"h", "hash"},
		{"y", "value"},
	}
	for i, want := range expected {
		assert.Equal(t, want.name, bindings[i].Name.Value)
		assert.Equal(t, want.kind, bindings[i].Kind(), "binding %s", want.name)
	}

	assert.Equal(t, 3, bindings[2].Name.Pos.Line)
	assert.Equal(t, 5, bindings[2].Name.Pos.Column)
}

func TestParseOutlineAcceptsAnything(t *testing.T) {
	outline, err := grammar.ParseOutline("junk.mk", `}}} let let 5 @@ "unterminated`)
	require.NoError(t, err)
	assert.Empty(t, outline.Bindings())
}
