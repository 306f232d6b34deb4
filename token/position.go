package token

import (
	"sort"
	"unicode/utf8"
)

// Position is a 1-based line/column pair. Columns count runes.
type Position struct {
	Line   int
	Column int
	Offset int
}

// LineIndex maps byte offsets of one source text to positions.
type LineIndex struct {
	source string
	starts []int
}

func NewLineIndex(source string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{source: source, starts: starts}
}

func (li *LineIndex) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(li.source) {
		offset = len(li.source)
	}
	line := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset }) - 1
	col := utf8.RuneCountInString(li.source[li.starts[line]:offset]) + 1
	return Position{Line: line + 1, Column: col, Offset: offset}
}

// Offset converts a 1-based line/column back to a byte offset, clamping
// to the end of the line.
func (li *LineIndex) Offset(line, column int) int {
	if line < 1 {
		return 0
	}
	if line > len(li.starts) {
		return len(li.source)
	}
	off := li.starts[line-1]
	for col := 1; col < column && off < len(li.source) && li.source[off] != '\n'; col++ {
		_, size := utf8.DecodeRuneInString(li.source[off:])
		off += size
	}
	return off
}

// Line returns the text of a 1-based line without its terminator.
func (li *LineIndex) Line(line int) string {
	if line < 1 || line > len(li.starts) {
		return ""
	}
	start := li.starts[line-1]
	end := len(li.source)
	if line < len(li.starts) {
		end = li.starts[line] - 1
	}
	if end > start && li.source[end-1] == '\r' {
		end--
	}
	return li.source[start:end]
}

func (li *LineIndex) LineCount() int { return len(li.starts) }
