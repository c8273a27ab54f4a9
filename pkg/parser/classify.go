package parser

import "strings"

// Block classifiers. Each takes one line of text and returns either nil or
// a match record describing consumed prefix lengths; no side effects, no
// position tracking. Dispatch precedence lives in blocks.go.

// isBlank reports whether the line contains only spaces and tabs.
func isBlank(line string) bool {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return false
		}
	}
	return true
}

// leadingSpaces counts leading space characters.
func leadingSpaces(line string) int {
	i := 0
	for i < len(line) && line[i] == ' ' {
		i++
	}
	return i
}

// headingMatch describes an ATX heading line.
type headingMatch struct {
	level        int
	content      string // inline content, a slice of the line
	contentStart int    // byte index of content within the line
}

// matchATXHeading matches `^ {0,3}#{1,6}(space|EOL)`. An optional closing
// hash run is stripped only if preceded by a space; seven or more hashes
// are not a heading at all.
func matchATXHeading(line string) *headingMatch {
	indent := leadingSpaces(line)
	if indent > 3 {
		return nil
	}
	i := indent
	for i < len(line) && line[i] == '#' {
		i++
	}
	level := i - indent
	if level < 1 || level > 6 {
		return nil
	}
	if i == len(line) {
		// Bare marker, empty heading.
		return &headingMatch{level: level, contentStart: i}
	}
	if line[i] != ' ' && line[i] != '\t' {
		return nil
	}
	start := i
	for start < len(line) && (line[start] == ' ' || line[start] == '\t') {
		start++
	}
	end := len(line)
	for end > start && (line[end-1] == ' ' || line[end-1] == '\t') {
		end--
	}
	// Closing hash run counts only when preceded by whitespace (or when the
	// heading is otherwise empty).
	hashes := end
	for hashes > start && line[hashes-1] == '#' {
		hashes--
	}
	if hashes < end {
		if hashes == start {
			end = start
		} else if line[hashes-1] == ' ' || line[hashes-1] == '\t' {
			end = hashes
			for end > start && (line[end-1] == ' ' || line[end-1] == '\t') {
				end--
			}
		}
	}
	return &headingMatch{
		level:        level,
		content:      line[start:end],
		contentStart: start,
	}
}

// matchThematicBreak matches 3 or more of one repeated '-', '*' or '_',
// with interior whitespace allowed and up to 3 leading spaces.
func matchThematicBreak(line string) bool {
	indent := leadingSpaces(line)
	if indent > 3 {
		return false
	}
	var marker byte
	count := 0
	for i := indent; i < len(line); i++ {
		c := line[i]
		switch {
		case c == ' ' || c == '\t':
		case c == '-' || c == '*' || c == '_':
			if marker == 0 {
				marker = c
			} else if c != marker {
				return false
			}
			count++
		default:
			return false
		}
	}
	return count >= 3
}

// fenceMatch describes an opening code fence line.
type fenceMatch struct {
	char   byte
	length int
	indent int
	info   string
}

// matchFenceOpen matches `^ {0,3}(`+"```"+`{3,}|~{3,})info`. Backtick
// fences forbid backticks in the info string; tilde fences do not.
func matchFenceOpen(line string) *fenceMatch {
	indent := leadingSpaces(line)
	if indent > 3 {
		return nil
	}
	if indent >= len(line) {
		return nil
	}
	char := line[indent]
	if char != '`' && char != '~' {
		return nil
	}
	i := indent
	for i < len(line) && line[i] == char {
		i++
	}
	length := i - indent
	if length < 3 {
		return nil
	}
	info := strings.TrimSpace(line[i:])
	if char == '`' && strings.ContainsRune(info, '`') {
		return nil
	}
	return &fenceMatch{char: char, length: length, indent: indent, info: info}
}

// matchFenceClose reports whether line closes the given opening fence: a
// run of the same character at least as long, trailing whitespace only.
func matchFenceClose(line string, open *fenceMatch) bool {
	indent := leadingSpaces(line)
	if indent > 3 {
		return false
	}
	i := indent
	for i < len(line) && line[i] == open.char {
		i++
	}
	if i-indent < open.length {
		return false
	}
	return isBlank(line[i:])
}

// quoteMatch describes a block quote marker line.
type quoteMatch struct {
	prefixLen int // bytes of stripped prefix: indent + '>' + one optional space
}

// matchBlockQuote matches `^ {0,3}>` with one optional following space
// consumed into the prefix.
func matchBlockQuote(line string) *quoteMatch {
	indent := leadingSpaces(line)
	if indent > 3 || indent >= len(line) || line[indent] != '>' {
		return nil
	}
	prefix := indent + 1
	if prefix < len(line) && line[prefix] == ' ' {
		prefix++
	}
	return &quoteMatch{prefixLen: prefix}
}

// listMatch describes a list item marker line.
type listMatch struct {
	ordered bool
	start   int    // ordered start number
	bullet  byte   // '-', '+' or '*' for bullet items
	delim   byte   // '.' or ')' for ordered items
	indent  int    // leading spaces before the marker
	marker  string // marker text without indentation, e.g. "-" or "12."
	padding int    // spaces after the marker counted toward the content column
	content string // first content line ("" for an empty item)
}

// matchListItem matches a bullet `[-+*]` or ordered `\d{1,9}[.)]` marker
// followed by 1-4 spaces, or the bare marker at end of line for an empty
// item. More than 4 spaces count as 1 space of padding plus indented
// content.
func matchListItem(line string) *listMatch {
	indent := leadingSpaces(line)
	if indent > 3 || indent >= len(line) {
		return nil
	}
	m := &listMatch{indent: indent}
	i := indent
	switch c := line[i]; c {
	case '-', '+', '*':
		m.bullet = c
		i++
	default:
		if c < '0' || c > '9' {
			return nil
		}
		j := i
		for j < len(line) && line[j] >= '0' && line[j] <= '9' {
			j++
		}
		if j-i > 9 || j >= len(line) || (line[j] != '.' && line[j] != ')') {
			return nil
		}
		m.ordered = true
		m.delim = line[j]
		m.start = parseInt(line[i:j])
		i = j + 1
	}
	m.marker = line[indent:i]
	if i == len(line) {
		// Empty item: marker alone at end of line.
		m.padding = 1
		return m
	}
	spaces := 0
	for i+spaces < len(line) && line[i+spaces] == ' ' {
		spaces++
	}
	switch {
	case spaces == 0:
		return nil
	case spaces <= 4:
		m.padding = spaces
	default:
		m.padding = 1
	}
	m.content = line[i+m.padding:]
	return m
}

// contentColumn returns the 0-based column where the item's content begins.
func (m *listMatch) contentColumn() int {
	return m.indent + len(m.marker) + m.padding
}

// sameFamily reports whether two markers belong to the same list: all
// bullets share the bullet character, all ordered items share the
// delimiter.
func (m *listMatch) sameFamily(o *listMatch) bool {
	if m.ordered != o.ordered {
		return false
	}
	if m.ordered {
		return m.delim == o.delim
	}
	return m.bullet == o.bullet
}

// startsBlockConstruct reports whether the line would open a non-paragraph
// block, which terminates lazy continuation.
func startsBlockConstruct(line string) bool {
	return matchATXHeading(line) != nil ||
		matchThematicBreak(line) ||
		matchFenceOpen(line) != nil ||
		matchBlockQuote(line) != nil ||
		matchListItem(line) != nil
}

func parseInt(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
