package errors

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"monkey/token"
)

// ErrorLevel represents the severity of a diagnostic
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// Diagnostic is a located error with optional suggestions and context
type Diagnostic struct {
	Level       ErrorLevel
	Code        string     // Error code like E0300
	Message     string     // Primary error message
	Span        token.Span // Byte range in source
	Suggestions []string
	Notes       []string
	HelpText    string
}

func (d Diagnostic) Error() string { return d.Message }

// Diagnoser is implemented by every error the front end and evaluator
// produce.
type Diagnoser interface {
	error
	Diagnostic() Diagnostic
}

// Reporter renders diagnostics against one source text
type Reporter struct {
	filename string
	index    *token.LineIndex
}

func NewReporter(filename, source string) *Reporter {
	return &Reporter{
		filename: filename,
		index:    token.NewLineIndex(source),
	}
}

// Position resolves the start of a diagnostic to a line and column.
func (r *Reporter) Position(d Diagnostic) token.Position {
	return r.index.Position(d.Span.Start)
}

// Format renders a diagnostic with Rust-like styling
func (r *Reporter) Format(d Diagnostic) string {
	var result strings.Builder

	levelColor := getLevelColor(d.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	// Header: error[E0300]: message
	if d.Code != "" {
		result.WriteString(fmt.Sprintf("%s[%s]: %s\n", levelColor(string(d.Level)), d.Code, d.Message))
	} else {
		result.WriteString(fmt.Sprintf("%s: %s\n", levelColor(string(d.Level)), d.Message))
	}

	pos := r.Position(d)
	width := lineNumberWidth(pos.Line)
	indent := strings.Repeat(" ", width)

	result.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n", indent, dim("-->"), r.filename, pos.Line, pos.Column))
	result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	if pos.Line > 1 {
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			dim(fmt.Sprintf("%*d", width, pos.Line-1)), dim("│"), r.index.Line(pos.Line-1)))
	}

	line := r.index.Line(pos.Line)
	result.WriteString(fmt.Sprintf("%s %s %s\n",
		bold(fmt.Sprintf("%*d", width, pos.Line)), dim("│"), line))
	result.WriteString(fmt.Sprintf("%s %s %s\n",
		indent, dim("│"), createMarker(pos.Column, markerLength(line, pos.Column, d.Span), d.Level)))

	if pos.Line < r.index.LineCount() {
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			dim(fmt.Sprintf("%*d", width, pos.Line+1)), dim("│"), r.index.Line(pos.Line+1)))
	}

	if len(d.Suggestions) > 0 {
		suggestionColor := color.New(color.FgCyan).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))
		for i, s := range d.Suggestions {
			if i == 0 {
				result.WriteString(fmt.Sprintf("%s %s: %s\n", indent, suggestionColor("help"), s))
			} else {
				result.WriteString(fmt.Sprintf("%s       %s\n", indent, s))
			}
		}
	}

	noteColor := color.New(color.FgBlue).SprintFunc()
	for _, note := range d.Notes {
		result.WriteString(fmt.Sprintf("%s %s %s %s\n", indent, dim("│"), noteColor("note:"), note))
	}

	if d.HelpText != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s %s %s\n", indent, dim("│"), helpColor("help:"), d.HelpText))
	}

	result.WriteString("\n")
	return result.String()
}

// FormatAll renders diagnostics in order followed by a summary line that
// counts errors and warnings.
func (r *Reporter) FormatAll(diags []Diagnostic) string {
	var b strings.Builder
	var errs, warnings int
	for _, d := range diags {
		b.WriteString(r.Format(d))
		if d.Level == Warning {
			warnings++
		} else {
			errs++
		}
	}
	if len(diags) == 0 {
		return ""
	}

	var parts []string
	if errs > 0 {
		parts = append(parts, plural(errs, "error"))
	}
	if warnings > 0 {
		parts = append(parts, plural(warnings, "warning"))
	}
	summary := color.New(color.FgYellow, color.Bold)
	if errs > 0 {
		summary = color.New(color.FgRed, color.Bold)
	}
	b.WriteString(summary.Sprintf("%s in %s", strings.Join(parts, " and "), r.filename))
	b.WriteString("\n")
	return b.String()
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func getLevelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

// markerLength is the span's width in columns, cut at the end of line.
func markerLength(line string, column int, span token.Span) int {
	rest := line
	for i := 1; i < column && rest != ""; i++ {
		_, size := utf8.DecodeRuneInString(rest)
		rest = rest[size:]
	}
	n := span.Len()
	if n > len(rest) {
		n = len(rest)
	}
	return utf8.RuneCountInString(rest[:n])
}

func createMarker(column, length int, level ErrorLevel) string {
	if length <= 0 {
		length = 1
	}

	markerColor := color.New(color.FgRed, color.Bold).SprintFunc()
	if level == Warning {
		markerColor = color.New(color.FgYellow, color.Bold).SprintFunc()
	}

	return strings.Repeat(" ", max(0, column-1)) + markerColor(strings.Repeat("^", length))
}

// lineNumberWidth is at least three for visual alignment
func lineNumberWidth(line int) int {
	return max(3, len(fmt.Sprintf("%d", line)))
}
