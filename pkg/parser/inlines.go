package parser

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

// inlineParser tokenizes one block's raw inline text into a flat arena of
// nodes, then structures it: brackets close into links and images as they
// are seen, emphasis delimiters are resolved at the end over whatever the
// bracket handling left alive. Arena entries are nilled out when a node is
// absorbed as a child, so slot indices held by delimiters and brackets stay
// stable for the whole parse.
type inlineParser struct {
	src        string
	base       mdast.Position
	lineStarts []int
	refs       *ReferenceMap

	nodes    []*mdast.Node
	delims   []*delimiter
	brackets []*bracket
	emitted  int
}

// bracket is a pending '[' or '![' on the bracket stack.
type bracket struct {
	slot     int
	start    int // byte index of '[' or '!'
	textEnd  int // byte index just after the opening bracket
	image    bool
	active   bool
	delimIdx int // delimiter stack depth at push time
}

// parseInlines parses src as inline content. base is the position of
// src[0] in the coordinate space the owning block was parsed in; all node
// spans come out in that same space.
func parseInlines(src string, base mdast.Position, refs *ReferenceMap) ([]*mdast.Node, error) {
	if src == "" {
		return nil, nil
	}
	p := &inlineParser{src: src, base: base, refs: refs}
	p.lineStarts = append(p.lineStarts, 0)
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			p.lineStarts = append(p.lineStarts, i+1)
		}
	}
	if err := p.tokenize(); err != nil {
		return nil, err
	}
	if err := p.resolveDelimiters(0); err != nil {
		return nil, err
	}
	return p.finish(), nil
}

func (p *inlineParser) tokenize() error {
	i := 0
	for i < len(p.src) {
		switch p.src[i] {
		case '\\':
			i = p.parseBackslash(i)
		case '\n':
			i = p.parseLineBreak(i)
		case '`':
			i = p.parseCodeSpan(i)
		case '*', '_':
			i = p.parseDelimiterRun(i)
		case '[':
			i = p.parseOpenBracket(i, false)
		case '!':
			if i+1 < len(p.src) && p.src[i+1] == '[' {
				i = p.parseOpenBracket(i, true)
			} else {
				i++
			}
		case ']':
			var err error
			i, err = p.parseCloseBracket(i)
			if err != nil {
				return err
			}
		default:
			i++
		}
	}
	p.flush(len(p.src))
	return nil
}

// flush materializes any unemitted literal text up to i as a Text node.
func (p *inlineParser) flush(i int) {
	if i > p.emitted {
		p.append(p.textNode(p.src[p.emitted:i], p.emitted, i))
	}
	p.emitted = i
}

func (p *inlineParser) append(n *mdast.Node) int {
	p.nodes = append(p.nodes, n)
	return len(p.nodes) - 1
}

func (p *inlineParser) textNode(value string, a, b int) *mdast.Node {
	return &mdast.Node{
		Kind:   mdast.NodeText,
		Span:   p.span(a, b),
		Inline: &mdast.InlineAttrs{Value: value},
	}
}

// posAt converts a byte index in src to a position in the owning block's
// coordinate space. The first line is offset by base's column; later lines
// start at column 1 of their own line.
func (p *inlineParser) posAt(idx int) mdast.Position {
	li := sort.Search(len(p.lineStarts), func(i int) bool {
		return p.lineStarts[i] > idx
	}) - 1
	pos := mdast.Position{Offset: p.base.Offset + idx}
	if li == 0 {
		pos.Line = p.base.Line
		pos.Column = p.base.Column + idx
	} else {
		pos.Line = p.base.Line + li
		pos.Column = idx - p.lineStarts[li] + 1
	}
	return pos
}

func (p *inlineParser) span(a, b int) mdast.Span {
	return mdast.Span{Start: p.posAt(a), End: p.posAt(b)}
}

// parseBackslash handles backslash escapes. A backslash before ASCII
// punctuation yields that character as literal text; before a newline it is
// a hard break; before anything else the backslash itself is literal.
func (p *inlineParser) parseBackslash(i int) int {
	if i+1 >= len(p.src) {
		return i + 1
	}
	next := p.src[i+1]
	if next == '\n' {
		p.flush(i)
		j := i + 2
		for j < len(p.src) && (p.src[j] == ' ' || p.src[j] == '\t') {
			j++
		}
		p.append(&mdast.Node{Kind: mdast.NodeHardBreak, Span: p.span(i, j)})
		p.emitted = j
		return j
	}
	if isASCIIPunct(next) {
		p.flush(i)
		p.append(p.textNode(string(next), i, i+2))
		p.emitted = i + 2
		return i + 2
	}
	return i + 1
}

// parseLineBreak emits a soft break, or a hard break when the line ends
// with two or more spaces. The break span swallows the surrounding
// whitespace so the trailing spaces never show up as text.
func (p *inlineParser) parseLineBreak(i int) int {
	rs := i
	for rs > p.emitted && p.src[rs-1] == ' ' {
		rs--
	}
	p.flush(rs)
	kind := mdast.NodeSoftBreak
	if i-rs >= 2 {
		kind = mdast.NodeHardBreak
	}
	j := i + 1
	for j < len(p.src) && (p.src[j] == ' ' || p.src[j] == '\t') {
		j++
	}
	p.append(&mdast.Node{Kind: kind, Span: p.span(rs, j)})
	p.emitted = j
	return j
}

// parseCodeSpan scans for a closing backtick run of exactly the opening
// length. Code spans bind tighter than every other inline construct, which
// falls out of the tokenizer consuming the whole span here before emphasis
// or brackets ever see its interior.
func (p *inlineParser) parseCodeSpan(i int) int {
	n := runLen(p.src, i, '`')
	j := i + n
	for j < len(p.src) {
		if p.src[j] != '`' {
			j++
			continue
		}
		m := runLen(p.src, j, '`')
		if m != n {
			j += m
			continue
		}
		p.flush(i)
		value := strings.ReplaceAll(p.src[i+n:j], "\n", " ")
		if len(value) >= 2 && value[0] == ' ' && value[len(value)-1] == ' ' &&
			strings.Trim(value, " ") != "" {
			value = value[1 : len(value)-1]
		}
		p.append(&mdast.Node{
			Kind:   mdast.NodeCodeSpan,
			Span:   p.span(i, j+m),
			Inline: &mdast.InlineAttrs{Value: value},
		})
		p.emitted = j + m
		return j + m
	}
	// No closer of matching length; the run is literal text.
	return i + n
}

// parseDelimiterRun records a '*' or '_' run as a text node plus a
// delimiter stack entry carrying its flanking classification.
func (p *inlineParser) parseDelimiterRun(i int) int {
	c := p.src[i]
	n := runLen(p.src, i, c)
	end := i + n

	before, after := ' ', ' '
	if i > 0 {
		before, _ = utf8.DecodeLastRuneInString(p.src[:i])
	}
	if end < len(p.src) {
		after, _ = utf8.DecodeRuneInString(p.src[end:])
	}
	left := !isFlankSpace(after) &&
		(!isFlankPunct(after) || isFlankSpace(before) || isFlankPunct(before))
	right := !isFlankSpace(before) &&
		(!isFlankPunct(before) || isFlankSpace(after) || isFlankPunct(after))

	var canOpen, canClose bool
	if c == '*' {
		canOpen, canClose = left, right
	} else {
		// '_' must not open or close inside a word.
		canOpen = left && (!right || isFlankPunct(before))
		canClose = right && (!left || isFlankPunct(after))
	}

	p.flush(i)
	slot := p.append(p.textNode(p.src[i:end], i, end))
	p.delims = append(p.delims, &delimiter{
		slot:      slot,
		char:      c,
		lo:        i,
		hi:        end,
		origCount: n,
		canOpen:   canOpen,
		canClose:  canClose,
		active:    true,
	})
	p.emitted = end
	return end
}

func (p *inlineParser) parseOpenBracket(i int, image bool) int {
	end := i + 1
	if image {
		end = i + 2
	}
	p.flush(i)
	slot := p.append(p.textNode(p.src[i:end], i, end))
	p.brackets = append(p.brackets, &bracket{
		slot:     slot,
		start:    i,
		textEnd:  end,
		image:    image,
		active:   true,
		delimIdx: len(p.delims),
	})
	p.emitted = end
	return end
}

// parseCloseBracket tries the link forms in order: inline, full reference,
// collapsed reference, shortcut reference. The matching bracket is popped
// either way; on failure the ']' simply stays literal text.
func (p *inlineParser) parseCloseBracket(i int) (int, error) {
	if len(p.brackets) == 0 {
		return i + 1, nil
	}
	br := p.brackets[len(p.brackets)-1]
	p.brackets = p.brackets[:len(p.brackets)-1]
	if !br.active {
		return i + 1, nil
	}

	var dest, title, label string
	end := -1
	followedByLabel := false
	if d, t, after, ok := p.scanInlineLink(i + 1); ok {
		dest, title, end = d, t, after
	} else if lbl, after, ok := scanLinkLabel(p.src, i+1); ok && strings.TrimSpace(lbl) != "" {
		followedByLabel = true
		if ref, found := p.refs.Lookup(lbl); found {
			dest, title, label = ref.Destination, ref.Title, lbl
			end = after
		}
	}
	if end < 0 && !followedByLabel {
		// Collapsed "[foo][]" and shortcut "[foo]" both resolve through the
		// bracketed text itself.
		lbl := p.src[br.textEnd:i]
		if ref, found := p.refs.Lookup(lbl); found {
			dest, title, label = ref.Destination, ref.Title, lbl
			end = i + 1
			if strings.HasPrefix(p.src[end:], "[]") {
				end += 2
			}
		}
	}
	if end < 0 {
		return i + 1, nil
	}

	p.flush(i)
	if err := p.resolveDelimiters(br.delimIdx); err != nil {
		return 0, err
	}
	p.delims = p.delims[:br.delimIdx]

	var children []*mdast.Node
	for s := br.slot + 1; s < len(p.nodes); s++ {
		if p.nodes[s] != nil {
			children = append(children, p.nodes[s])
			p.nodes[s] = nil
		}
	}
	kind := mdast.NodeLink
	if br.image {
		kind = mdast.NodeImage
	}
	p.nodes[br.slot] = &mdast.Node{
		Kind:     kind,
		Span:     p.span(br.start, end),
		Children: children,
		Inline: &mdast.InlineAttrs{
			Link: &mdast.LinkAttrs{Destination: dest, Title: title, Label: label},
		},
	}
	if !br.image {
		// Links do not nest; deactivate any link bracket still open.
		for _, b := range p.brackets {
			if !b.image {
				b.active = false
			}
		}
	}
	p.emitted = end
	return end, nil
}

// scanInlineLink matches `(dest "title")` starting at the '('.
func (p *inlineParser) scanInlineLink(j int) (dest, title string, end int, ok bool) {
	s := p.src
	if j >= len(s) || s[j] != '(' {
		return "", "", 0, false
	}
	j = skipLinkSpace(s, j+1)
	dest, j, ok = scanLinkDest(s, j)
	if !ok {
		return "", "", 0, false
	}
	k := skipLinkSpace(s, j)
	if k > j {
		if t, after, tok := scanLinkTitle(s, k); tok {
			title = t
			k = skipLinkSpace(s, after)
		}
	}
	if k < len(s) && s[k] == ')' {
		return dest, title, k + 1, true
	}
	return "", "", 0, false
}

// scanLinkDest matches either an angle-bracketed destination or a bare run
// with balanced parentheses. An empty bare destination is allowed.
func scanLinkDest(s string, j int) (string, int, bool) {
	if j < len(s) && s[j] == '<' {
		for k := j + 1; k < len(s); k++ {
			switch s[k] {
			case '\\':
				k++
			case '\n', '<':
				return "", 0, false
			case '>':
				return unescapeLink(s[j+1 : k]), k + 1, true
			}
		}
		return "", 0, false
	}
	depth := 0
	k := j
loop:
	for k < len(s) {
		switch c := s[k]; {
		case c == '\\' && k+1 < len(s):
			k += 2
		case c == '(':
			depth++
			k++
		case c == ')':
			if depth == 0 {
				break loop
			}
			depth--
			k++
		case c == ' ' || c == '\t' || c == '\n' || c < 0x20:
			break loop
		default:
			k++
		}
	}
	if depth != 0 {
		return "", 0, false
	}
	return unescapeLink(s[j:k]), k, true
}

// scanLinkTitle matches a title quoted with double quotes, single quotes,
// or parentheses.
func scanLinkTitle(s string, j int) (string, int, bool) {
	if j >= len(s) {
		return "", 0, false
	}
	open := s[j]
	var close byte
	switch open {
	case '"':
		close = '"'
	case '\'':
		close = '\''
	case '(':
		close = ')'
	default:
		return "", 0, false
	}
	for k := j + 1; k < len(s); k++ {
		switch s[k] {
		case '\\':
			k++
		case close:
			return unescapeLink(s[j+1 : k]), k + 1, true
		case '(':
			if open == '(' {
				return "", 0, false
			}
		}
	}
	return "", 0, false
}

// scanLinkLabel matches `[label]` for full reference links.
func scanLinkLabel(s string, j int) (string, int, bool) {
	if j >= len(s) || s[j] != '[' {
		return "", 0, false
	}
	for k := j + 1; k < len(s); k++ {
		switch s[k] {
		case '\\':
			k++
		case '[':
			return "", 0, false
		case ']':
			if k-j-1 > 999 {
				return "", 0, false
			}
			return s[j+1 : k], k + 1, true
		}
	}
	return "", 0, false
}

func skipLinkSpace(s string, j int) int {
	for j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n') {
		j++
	}
	return j
}

// unescapeLink removes backslash escapes from destinations and titles.
func unescapeLink(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && isASCIIPunct(s[i+1]) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// finish compacts the arena and merges adjacent text nodes that touch in
// the source, which absorbs leftover delimiter runs and escape fragments
// back into their neighboring text.
func (p *inlineParser) finish() []*mdast.Node {
	var out []*mdast.Node
	for _, n := range p.nodes {
		if n == nil {
			continue
		}
		if n.Kind == mdast.NodeText && len(out) > 0 {
			last := out[len(out)-1]
			if last.Kind == mdast.NodeText && last.Span.End.Offset == n.Span.Start.Offset {
				last.Inline.Value += n.Inline.Value
				last.Span.End = n.Span.End
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

func runLen(s string, i int, c byte) int {
	j := i
	for j < len(s) && s[j] == c {
		j++
	}
	return j - i
}

func isASCIIPunct(c byte) bool {
	return c >= '!' && c <= '/' ||
		c >= ':' && c <= '@' ||
		c >= '[' && c <= '`' ||
		c >= '{' && c <= '~'
}

func isFlankSpace(r rune) bool {
	return unicode.IsSpace(r)
}

func isFlankPunct(r rune) bool {
	if r < 0x80 {
		return isASCIIPunct(byte(r))
	}
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
