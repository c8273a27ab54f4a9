package parser

// scannedLine is one logical line of input. The text excludes the trailing
// newline; offset is the byte offset of the line start in the text being
// parsed (document space at the top level, stripped sub-text space inside
// container recursion).
type scannedLine struct {
	text    string
	num     int // 1-based
	offset  int
	newline bool // true when the line was terminated by '\n'
}

// scanLines splits text strictly on '\n'. A trailing unterminated final
// line is kept as its own entry; an empty input yields no lines. No
// classification happens here.
func scanLines(text string) []scannedLine {
	if text == "" {
		return nil
	}
	var lines []scannedLine
	start := 0
	num := 1
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, scannedLine{
				text:    text[start:i],
				num:     num,
				offset:  start,
				newline: true,
			})
			start = i + 1
			num++
		}
	}
	if start < len(text) {
		lines = append(lines, scannedLine{
			text:   text[start:],
			num:    num,
			offset: start,
		})
	}
	return lines
}

// end returns the offset just past the line's text, excluding the newline.
func (l scannedLine) end() int {
	return l.offset + len(l.text)
}
