package mdast

import "strings"

// ContainerAttrs records how a container block's content was derived from
// its parent coordinate space. The container's children were parsed against
// Subtext, so their spans are Subtext-relative; Map carries the transform
// back to the space the container itself lives in.
type ContainerAttrs struct {
	// Subtext is the stripped text the container's children were parsed
	// against.
	Subtext string `json:"subtext"`

	// Map is the per-line stripping transform. It has exactly one entry
	// per Subtext line.
	Map *LineMap `json:"map"`
}

// LineMap is the stripping transform applied when a container block's
// content was cut out of its parent space. Index i describes sub-text
// line i (0-based).
type LineMap struct {
	// ParentLines holds the parent-space line number of each sub-text line.
	ParentLines []int `json:"parent_lines"`

	// ParentStarts holds the parent-space byte offset of each sub-text
	// line's start, before prefix removal.
	ParentStarts []int `json:"parent_starts"`

	// Prefixes holds the text removed from the front of each sub-text line
	// (marker, indentation, '>' prefix). A lazy-continuation line has an
	// empty prefix.
	Prefixes []string `json:"prefixes"`
}

// Len returns the number of mapped lines.
func (m *LineMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Prefixes)
}

// ToParent maps a sub-text-space position one level up, into the space the
// container itself was parsed in. Mapping positions for deeper descendants
// requires composing ToParent calls along the container chain.
// The zero Position is returned for lines outside the map.
func (m *LineMap) ToParent(pos Position) (Position, bool) {
	if m == nil || pos.Line < 1 || pos.Line > len(m.Prefixes) {
		return Position{}, false
	}
	i := pos.Line - 1
	prefix := len(m.Prefixes[i])
	return Position{
		Line:   m.ParentLines[i],
		Column: prefix + pos.Column,
		Offset: m.ParentStarts[i] + prefix + pos.Column - 1,
	}, true
}

// OriginalText reconstructs the parent-space text of the container by
// interleaving the removed prefixes with the sub-text lines.
func (c *ContainerAttrs) OriginalText() string {
	if c == nil || c.Map == nil {
		return ""
	}
	lines := strings.Split(c.Subtext, "\n")
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i < len(c.Map.Prefixes) {
			b.WriteString(c.Map.Prefixes[i])
		}
		b.WriteString(line)
	}
	return b.String()
}
