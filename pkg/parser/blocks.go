package parser

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

// parseState is shared across every recursion level of one parse: the
// reference map fills during the block pass, and pending holds every block
// whose inline content waits for the second pass.
type parseState struct {
	refs    *ReferenceMap
	pending []pendingInline
	opts    Options
}

// pendingInline defers a block's inline content to the second pass. base is
// the position of raw[0] in the coordinate space the block was parsed in.
type pendingInline struct {
	node *mdast.Node
	raw  string
	base mdast.Position
}

func (s *parseState) queueInline(node *mdast.Node, raw string, base mdast.Position) {
	s.pending = append(s.pending, pendingInline{node: node, raw: raw, base: base})
}

// blockParser parses one coordinate space: the document source at depth 0,
// a container's stripped sub-text below that. All positions it produces are
// relative to src.
type blockParser struct {
	state *parseState
	src   string
	lines []scannedLine
	depth int
}

func parseBlocks(state *parseState, src string, depth int) ([]*mdast.Node, error) {
	if depth > state.opts.MaxNestingDepth {
		return nil, fmt.Errorf("container depth %d: %w", depth, ErrTooDeeplyNested)
	}
	p := &blockParser{state: state, src: src, lines: scanLines(src), depth: depth}
	return p.run()
}

func (p *blockParser) run() ([]*mdast.Node, error) {
	var blocks []*mdast.Node
	i := 0
	for i < len(p.lines) {
		ln := p.lines[i]

		// Reference definitions never become nodes; they sink into the
		// shared map before anything else gets to classify the line.
		if m := matchRefDef(ln.text, p.lineTextAt(i+1)); m != nil {
			p.state.refs.Add(m.label, m.dest, m.title)
			i += m.lines
			continue
		}
		if isBlank(ln.text) {
			blocks = append(blocks, &mdast.Node{Kind: mdast.NodeBlankLine, Span: p.lineSpan(ln)})
			i++
			continue
		}
		if m := matchATXHeading(ln.text); m != nil {
			node := &mdast.Node{
				Kind:  mdast.NodeHeading,
				Span:  p.lineSpan(ln),
				Block: &mdast.BlockAttrs{HeadingLevel: m.level},
			}
			if m.content != "" {
				p.state.queueInline(node, m.content, p.pos(ln, m.contentStart))
			}
			blocks = append(blocks, node)
			i++
			continue
		}
		if matchThematicBreak(ln.text) {
			blocks = append(blocks, &mdast.Node{Kind: mdast.NodeThematicBreak, Span: p.lineSpan(ln)})
			i++
			continue
		}
		if m := matchFenceOpen(ln.text); m != nil {
			node, consumed := p.parseFence(i, m)
			blocks = append(blocks, node)
			i += consumed
			continue
		}
		if matchBlockQuote(ln.text) != nil {
			node, consumed, err := p.parseBlockquote(i)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, node)
			i += consumed
			continue
		}
		if m := matchListItem(ln.text); m != nil {
			node, consumed, err := p.parseList(i, m)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, node)
			i += consumed
			continue
		}
		node, consumed := p.parseParagraph(i)
		blocks = append(blocks, node)
		i += consumed
	}
	return blocks, nil
}

func (p *blockParser) lineTextAt(i int) string {
	if i < 0 || i >= len(p.lines) {
		return ""
	}
	return p.lines[i].text
}

func (p *blockParser) pos(ln scannedLine, col int) mdast.Position {
	return mdast.Position{Line: ln.num, Column: col + 1, Offset: ln.offset + col}
}

func (p *blockParser) lineSpan(ln scannedLine) mdast.Span {
	return mdast.Span{Start: p.pos(ln, 0), End: p.pos(ln, len(ln.text))}
}

// parseFence consumes a fenced code block from the opening fence at line i
// through the closing fence or EOF. Content lines are stripped of up to the
// opening fence's indentation.
func (p *blockParser) parseFence(i int, open *fenceMatch) (*mdast.Node, int) {
	first := p.lines[i]
	last := first
	var value strings.Builder
	consumed := 1
	closed := false
	for j := i + 1; j < len(p.lines); j++ {
		ln := p.lines[j]
		consumed++
		last = ln
		if matchFenceClose(ln.text, open) {
			closed = true
			break
		}
		strip := open.indent
		if ls := leadingSpaces(ln.text); ls < strip {
			strip = ls
		}
		value.WriteString(ln.text[strip:])
		value.WriteByte('\n')
	}
	return &mdast.Node{
		Kind: mdast.NodeCodeBlock,
		Span: mdast.Span{Start: p.pos(first, 0), End: p.pos(last, len(last.text))},
		Block: &mdast.BlockAttrs{CodeBlock: &mdast.CodeBlockAttrs{
			Info:        open.info,
			Value:       value.String(),
			Fence:       open.char,
			FenceLength: open.length,
			Indent:      open.indent,
			Closed:      closed,
		}},
	}, consumed
}

// parseParagraph consumes lines until a blank line or any other block
// construct interrupts. Inline content is the contiguous source slice with
// the first line's indentation and trailing whitespace trimmed off.
func (p *blockParser) parseParagraph(i int) (*mdast.Node, int) {
	first := p.lines[i]
	j := i + 1
	for j < len(p.lines) {
		t := p.lines[j].text
		if isBlank(t) || startsBlockConstruct(t) || matchRefDef(t, p.lineTextAt(j+1)) != nil {
			break
		}
		j++
	}
	last := p.lines[j-1]
	lead := leadingSpaces(first.text)
	raw := strings.TrimRight(p.src[first.offset+lead:last.end()], " \t")
	node := &mdast.Node{
		Kind: mdast.NodeParagraph,
		Span: mdast.Span{Start: p.pos(first, 0), End: p.pos(last, len(last.text))},
	}
	p.state.queueInline(node, raw, p.pos(first, lead))
	return node, j - i
}

// parseBlockquote collects marker lines plus lazy paragraph continuations,
// strips the quote prefix from each, and recurses on the joined sub-text.
// The stripping transform is recorded on the node so sub-text spans can be
// mapped back out.
func (p *blockParser) parseBlockquote(i int) (*mdast.Node, int, error) {
	lm := &mdast.LineMap{}
	var sub strings.Builder
	lastContentBlank := false
	j := i
	for j < len(p.lines) {
		ln := p.lines[j]
		var prefixLen int
		if m := matchBlockQuote(ln.text); m != nil {
			prefixLen = m.prefixLen
		} else if j > i && !lastContentBlank && !isBlank(ln.text) &&
			!startsBlockConstruct(ln.text) && matchRefDef(ln.text, p.lineTextAt(j+1)) == nil {
			// Lazy continuation: the line keeps its paragraph going without
			// the marker, so nothing is stripped.
			prefixLen = 0
		} else {
			break
		}
		content := ln.text[prefixLen:]
		if lm.Len() > 0 {
			sub.WriteByte('\n')
		}
		sub.WriteString(content)
		lm.ParentLines = append(lm.ParentLines, ln.num)
		lm.ParentStarts = append(lm.ParentStarts, ln.offset)
		lm.Prefixes = append(lm.Prefixes, ln.text[:prefixLen])
		lastContentBlank = isBlank(content)
		j++
	}

	subtext := sub.String()
	children, err := parseBlocks(p.state, subtext, p.depth+1)
	if err != nil {
		return nil, 0, err
	}
	firstLn, lastLn := p.lines[i], p.lines[j-1]
	node := &mdast.Node{
		Kind:     mdast.NodeBlockquote,
		Span:     mdast.Span{Start: p.pos(firstLn, 0), End: p.pos(lastLn, len(lastLn.text))},
		Children: children,
		Block: &mdast.BlockAttrs{
			Container: &mdast.ContainerAttrs{Subtext: subtext, Map: lm},
		},
	}
	return node, j - i, nil
}

// parseList collects consecutive items of one marker family. Blank lines
// between sibling items are not materialized; they make the list loose and
// the list's span covers them only when an item resumes after them.
func (p *blockParser) parseList(i int, first *listMatch) (*mdast.Node, int, error) {
	attrs := &mdast.ListAttrs{Ordered: first.ordered, Tight: true}
	if first.ordered {
		attrs.Start = first.start
		attrs.Delimiter = first.delim
	} else {
		attrs.Bullet = first.bullet
	}

	var items []*mdast.Node
	j := i
	m := first
	for {
		item, consumed, err := p.parseListItem(j, m)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
		j += consumed

		b := j
		for b < len(p.lines) && isBlank(p.lines[b].text) {
			b++
		}
		if b >= len(p.lines) {
			break
		}
		nm := matchListItem(p.lines[b].text)
		if nm == nil || !nm.sameFamily(first) {
			break
		}
		if b > j {
			attrs.Tight = false
		}
		j = b
		m = nm
	}
	if attrs.Tight {
		for _, it := range items {
			for _, c := range it.Children {
				if c.Kind == mdast.NodeBlankLine {
					attrs.Tight = false
					break
				}
			}
		}
	}

	node := &mdast.Node{
		Kind:     mdast.NodeList,
		Span:     mdast.Span{Start: items[0].Span.Start, End: items[len(items)-1].Span.End},
		Children: items,
		Block:    &mdast.BlockAttrs{List: attrs},
	}
	return node, j - i, nil
}

// parseListItem collects one item's lines. A line belongs to the item when
// it is indented to the content column; blank runs stay in the item only
// when such a line follows them. Lazy paragraph continuation applies the
// same way it does for blockquotes.
func (p *blockParser) parseListItem(i int, m *listMatch) (*mdast.Node, int, error) {
	first := p.lines[i]
	col := m.contentColumn()
	lm := &mdast.LineMap{}
	var contents []string
	add := func(ln scannedLine, prefixLen int) {
		contents = append(contents, ln.text[prefixLen:])
		lm.ParentLines = append(lm.ParentLines, ln.num)
		lm.ParentStarts = append(lm.ParentStarts, ln.offset)
		lm.Prefixes = append(lm.Prefixes, ln.text[:prefixLen])
	}

	if isBlank(m.content) {
		// Marker with nothing after it: an empty first sub-line.
		add(first, len(first.text))
	} else {
		add(first, col)
	}

	j := i + 1
	for j < len(p.lines) {
		ln := p.lines[j]
		if isBlank(ln.text) {
			b := j
			for b < len(p.lines) && isBlank(p.lines[b].text) {
				b++
			}
			if b >= len(p.lines) || leadingSpaces(p.lines[b].text) < col {
				break
			}
			for ; j < b; j++ {
				bl := p.lines[j]
				strip := col
				if strip > len(bl.text) {
					strip = len(bl.text)
				}
				add(bl, strip)
			}
			continue
		}
		if leadingSpaces(ln.text) >= col {
			add(ln, col)
			j++
			continue
		}
		if matchListItem(ln.text) != nil {
			break
		}
		if !isBlank(contents[len(contents)-1]) && !startsBlockConstruct(ln.text) &&
			matchRefDef(ln.text, p.lineTextAt(j+1)) == nil {
			add(ln, 0)
			j++
			continue
		}
		break
	}

	subtext := strings.Join(contents, "\n")
	children, err := parseBlocks(p.state, subtext, p.depth+1)
	if err != nil {
		return nil, 0, err
	}
	lastLn := p.lines[j-1]
	item := &mdast.Node{
		Kind:     mdast.NodeListItem,
		Span:     mdast.Span{Start: p.pos(first, m.indent), End: p.pos(lastLn, len(lastLn.text))},
		Children: children,
		Block: &mdast.BlockAttrs{
			Item:      &mdast.ListItemAttrs{Marker: m.marker},
			Container: &mdast.ContainerAttrs{Subtext: subtext, Map: lm},
		},
	}
	return item, j - i, nil
}
