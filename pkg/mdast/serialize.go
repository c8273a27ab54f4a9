package mdast

import "strings"

// Serialize renders a parsed tree back to canonical markdown. The output is
// not byte-identical to the original source; the contract is that parsing
// the output yields a structurally identical tree (spans aside). Inline
// metacharacters in text runs are re-escaped, reference links are rendered
// in inline form, and fences are widened past any run in their content.
func Serialize(root *Node) string {
	if root == nil {
		return ""
	}
	var lines []string
	switch {
	case root.Kind == NodeDocument:
		for _, child := range root.Children {
			lines = append(lines, serializeBlock(child)...)
		}
	case root.IsBlock():
		lines = serializeBlock(root)
	default:
		return serializeInlines([]*Node{root})
	}
	return strings.Join(lines, "\n")
}

func serializeBlock(n *Node) []string {
	switch n.Kind {
	case NodeBlankLine:
		return []string{""}
	case NodeThematicBreak:
		return []string{"---"}
	case NodeHeading:
		marker := strings.Repeat("#", n.HeadingLevel())
		content := serializeInlines(n.Children)
		if content == "" {
			return []string{marker}
		}
		return []string{marker + " " + content}
	case NodeParagraph:
		lines := strings.Split(serializeInlines(n.Children), "\n")
		for i, line := range lines {
			lines[i] = guardBlockLookalike(line)
		}
		return lines
	case NodeCodeBlock:
		return serializeCodeBlock(n)
	case NodeBlockquote:
		var out []string
		for _, child := range n.Children {
			for _, line := range serializeBlock(child) {
				if line == "" {
					out = append(out, ">")
				} else {
					out = append(out, "> "+line)
				}
			}
		}
		return out
	case NodeList:
		loose := n.Block != nil && n.Block.List != nil && !n.Block.List.Tight
		var out []string
		for i, item := range n.Children {
			if loose && i > 0 {
				out = append(out, "")
			}
			out = append(out, serializeListItem(item)...)
		}
		return out
	case NodeListItem:
		return serializeListItem(n)
	default:
		return nil
	}
}

func serializeListItem(item *Node) []string {
	marker := "-"
	if item.Block != nil && item.Block.Item != nil {
		marker = item.Block.Item.Marker
	}
	indent := strings.Repeat(" ", len(marker)+1)

	var content []string
	for _, child := range item.Children {
		content = append(content, serializeBlock(child)...)
	}
	if len(content) == 0 {
		return []string{marker}
	}
	out := []string{marker + " " + content[0]}
	for _, line := range content[1:] {
		if line == "" {
			out = append(out, "")
		} else {
			out = append(out, indent+line)
		}
	}
	return out
}

func serializeCodeBlock(n *Node) []string {
	attrs := n.Block.CodeBlock
	fence := byte('`')
	if attrs.Fence != 0 {
		fence = attrs.Fence
	}
	// Backtick fences cannot carry backticks in the info string.
	if fence == '`' && strings.ContainsRune(attrs.Info, '`') {
		fence = '~'
	}
	length := attrs.FenceLength
	if length < 3 {
		length = 3
	}
	if fence == '`' {
		if run := longestRun(attrs.Value, fence); run >= length {
			length = run + 1
		}
	}
	open := strings.Repeat(string(fence), length)
	out := []string{open + attrs.Info}
	if attrs.Value != "" {
		value := strings.TrimSuffix(attrs.Value, "\n")
		out = append(out, strings.Split(value, "\n")...)
	}
	return append(out, strings.Repeat(string(fence), length))
}

func serializeInlines(nodes []*Node) string {
	var b strings.Builder
	for _, n := range nodes {
		switch n.Kind {
		case NodeText:
			b.WriteString(escapeText(n.TextValue()))
		case NodeSoftBreak:
			b.WriteByte('\n')
		case NodeHardBreak:
			b.WriteString("\\\n")
		case NodeCodeSpan:
			b.WriteString(serializeCodeSpan(n.TextValue()))
		case NodeEmphasis, NodeStrong:
			b.WriteString(serializeEmphasis(n, false))
		case NodeLink:
			b.WriteByte('[')
			b.WriteString(serializeInlines(n.Children))
			b.WriteByte(']')
			b.WriteString(serializeLinkTarget(n))
		case NodeImage:
			b.WriteString("![")
			b.WriteString(serializeInlines(n.Children))
			b.WriteByte(']')
			b.WriteString(serializeLinkTarget(n))
		}
	}
	return b.String()
}

// serializeEmphasis renders emphasis and strong nodes. Directly nested
// single-child emphasis alternates between '*' and '_' so the delimiter
// runs do not merge into one run and re-pair differently on re-parse
// ("**_x_**" stays Strong(Emphasis), unlike "***x***").
func serializeEmphasis(n *Node, underscore bool) string {
	delim := "*"
	if underscore {
		delim = "_"
	}
	if n.Kind == NodeStrong {
		delim += delim
	}
	var inner string
	if len(n.Children) == 1 &&
		(n.Children[0].Kind == NodeEmphasis || n.Children[0].Kind == NodeStrong) {
		inner = serializeEmphasis(n.Children[0], !underscore)
	} else {
		inner = serializeInlines(n.Children)
	}
	return delim + inner + delim
}

func serializeLinkTarget(n *Node) string {
	var link *LinkAttrs
	if n.Inline != nil {
		link = n.Inline.Link
	}
	if link == nil {
		return "()"
	}
	dest := link.Destination
	if dest == "" || strings.ContainsAny(dest, " \t()") {
		dest = "<" + dest + ">"
	}
	if link.Title != "" {
		return "(" + dest + ` "` + strings.ReplaceAll(link.Title, `"`, `\"`) + `")`
	}
	return "(" + dest + ")"
}

func serializeCodeSpan(value string) string {
	delim := strings.Repeat("`", longestRun(value, '`')+1)
	pad := ""
	if value == "" ||
		value[0] == '`' || value[len(value)-1] == '`' ||
		(value[0] == ' ' && value[len(value)-1] == ' ' && strings.Trim(value, " ") != "") {
		pad = " "
	}
	return delim + pad + value + pad + delim
}

// escapeText re-escapes inline metacharacters so the value survives a
// re-parse as literal text.
func escapeText(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\', '`', '*', '_', '[', ']':
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// guardBlockLookalike backslash-escapes a paragraph line that would
// otherwise re-parse as a block introducer (heading, thematic break, quote,
// list item, fence).
func guardBlockLookalike(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if trimmed == "" {
		return line
	}
	lead := len(line) - len(trimmed)
	switch trimmed[0] {
	case '#', '>', '-', '+', '~':
		return line[:lead] + "\\" + trimmed
	}
	if c := trimmed[0]; c >= '0' && c <= '9' {
		// Escape the delimiter of a would-be ordered list marker.
		j := 0
		for j < len(trimmed) && trimmed[j] >= '0' && trimmed[j] <= '9' {
			j++
		}
		if j <= 9 && j < len(trimmed) && (trimmed[j] == '.' || trimmed[j] == ')') {
			return line[:lead] + trimmed[:j] + "\\" + trimmed[j:]
		}
	}
	return line
}

func longestRun(s string, c byte) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}
