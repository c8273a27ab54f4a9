package mdast

// Position is a point in some source text. Line and Column are 1-based;
// Column counts bytes, not runes. Offset is the 0-based byte index into the
// coordinate space the owning node was parsed in (see Node).
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0 && p.Offset >= 0
}

// Before reports whether p comes before other in the same coordinate space.
func (p Position) Before(other Position) bool {
	return p.Offset < other.Offset
}

// Span is a half-open source range [Start.Offset, End.Offset).
// Start.Offset <= End.Offset always.
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// IsEmpty returns true if the span has zero length.
func (s Span) IsEmpty() bool {
	return s.Start.Offset == s.End.Offset
}

// Contains returns true if the given offset is within this span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// Slice extracts the spanned text from the source the span is relative to.
// Returns "" if the span is out of range.
func (s Span) Slice(source string) string {
	if s.Start.Offset < 0 || s.End.Offset > len(source) || s.Start.Offset > s.End.Offset {
		return ""
	}
	return source[s.Start.Offset:s.End.Offset]
}
