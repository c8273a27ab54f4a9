package parser

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Reference is a link reference definition harvested during block parsing.
type Reference struct {
	// Label is the definition label in its original case.
	Label string

	// Destination is the link target.
	Destination string

	// Title is the optional title; empty means absent.
	Title string
}

// ReferenceMap collects link reference definitions keyed by normalized
// label. It is internal to a single parse; forward references work because
// the whole block pass finishes before any inline parsing starts.
type ReferenceMap struct {
	refs map[string]*Reference
}

// NewReferenceMap creates an empty reference map.
func NewReferenceMap() *ReferenceMap {
	return &ReferenceMap{refs: make(map[string]*Reference)}
}

// Add records a definition. The first definition for a normalized label
// wins; Add reports whether the definition was stored.
func (m *ReferenceMap) Add(label, destination, title string) bool {
	key := NormalizeLabel(label)
	if key == "" {
		return false
	}
	if _, exists := m.refs[key]; exists {
		return false
	}
	m.refs[key] = &Reference{Label: label, Destination: destination, Title: title}
	return true
}

// Lookup resolves a label through normalization.
func (m *ReferenceMap) Lookup(label string) (*Reference, bool) {
	ref, ok := m.refs[NormalizeLabel(label)]
	return ref, ok
}

// Len returns the number of stored definitions.
func (m *ReferenceMap) Len() int {
	return len(m.refs)
}

// All returns the stored definitions sorted by normalized label.
func (m *ReferenceMap) All() []Reference {
	keys := make([]string, 0, len(m.refs))
	for key := range m.refs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]Reference, 0, len(keys))
	for _, key := range keys {
		out = append(out, *m.refs[key])
	}
	return out
}

// NormalizeLabel trims the label, collapses internal whitespace runs to a
// single space, and case-folds. It is the stable key function for the
// reference map.
func NormalizeLabel(label string) string {
	label = strings.Trim(label, " \t\n")
	var b strings.Builder
	space := false
	hi := false
	for i := 0; i < len(label); i++ {
		c := label[i]
		switch c {
		case ' ', '\t', '\n':
			space = true
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c >= 0x80 {
			hi = true
		}
		b.WriteByte(c)
	}
	out := b.String()
	if hi {
		out = cases.Fold().String(out)
	}
	return out
}

// refDefMatch describes a link reference definition.
type refDefMatch struct {
	label string
	dest  string
	title string
	lines int // 1, or 2 when the title continues on the next line
}

// matchRefDef matches `^ {0,3}[label]: dest` with an optional quoted title
// on the same line or alone on the next. It is tried before every other
// classifier so `[x]: y` is never misread as a paragraph.
func matchRefDef(line, next string) *refDefMatch {
	indent := leadingSpaces(line)
	if indent > 3 || indent >= len(line) || line[indent] != '[' {
		return nil
	}
	label, rest, ok := scanRefLabel(line[indent:])
	if !ok {
		return nil
	}
	// At least one whitespace character before the destination.
	trimmed := strings.TrimLeft(rest, " \t")
	if trimmed == rest || trimmed == "" {
		return nil
	}
	destEnd := strings.IndexAny(trimmed, " \t")
	if destEnd < 0 {
		// Nothing after the destination; the title may still continue
		// alone on the next line.
		if title, ok := scanRefTitleLine(next); ok {
			return &refDefMatch{label: label, dest: trimmed, title: title, lines: 2}
		}
		return &refDefMatch{label: label, dest: trimmed, lines: 1}
	}
	dest := trimmed[:destEnd]
	after := strings.TrimSpace(trimmed[destEnd:])
	if after == "" {
		// Title, if any, may continue alone on the next line.
		if title, ok := scanRefTitleLine(next); ok {
			return &refDefMatch{label: label, dest: dest, title: title, lines: 2}
		}
		return &refDefMatch{label: label, dest: dest, lines: 1}
	}
	title, ok := scanRefTitle(after)
	if !ok {
		return nil
	}
	return &refDefMatch{label: label, dest: dest, title: title, lines: 1}
}

// scanRefLabel scans `[label]:` from the start of s, returning the label
// and the remainder after the colon. Backslash escapes consume the next
// character; unescaped brackets are not allowed inside the label.
func scanRefLabel(s string) (label, rest string, ok bool) {
	if len(s) == 0 || s[0] != '[' {
		return "", "", false
	}
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '[':
			return "", "", false
		case ']':
			inner := s[1:i]
			if strings.Trim(inner, " \t") == "" || i+1 >= len(s) || s[i+1] != ':' {
				return "", "", false
			}
			return inner, s[i+2:], true
		}
	}
	return "", "", false
}

// scanRefTitle matches a complete double-quoted title with nothing after it.
func scanRefTitle(s string) (string, bool) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", false
	}
	return s[1 : len(s)-1], true
}

// scanRefTitleLine matches a line holding only a quoted title.
func scanRefTitleLine(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", false
	}
	return scanRefTitle(trimmed)
}
