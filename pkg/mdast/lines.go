package mdast

import (
	"sort"
	"strings"
)

// BuildLineStarts returns the byte offset of the start of every line in
// text. Lines are delimited strictly by '\n'; the result always has at
// least one entry (offset 0), and a trailing newline opens a final empty
// line.
func BuildLineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// PositionAt converts a byte offset into text to a full Position.
// Offsets past the end of text clamp to the final line.
func PositionAt(text string, offset int) Position {
	starts := BuildLineStarts(text)
	return positionAt(starts, offset)
}

func positionAt(starts []int, offset int) Position {
	if offset < 0 {
		offset = 0
	}
	// Binary search for the line whose start is at or before offset.
	idx := sort.Search(len(starts), func(i int) bool {
		return starts[i] > offset
	}) - 1
	if idx < 0 {
		idx = 0
	}
	return Position{
		Line:   idx + 1,
		Column: offset - starts[idx] + 1,
		Offset: offset,
	}
}

// LineCount returns the number of lines in text under the same convention
// as BuildLineStarts.
func LineCount(text string) int {
	return strings.Count(text, "\n") + 1
}
