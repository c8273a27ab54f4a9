package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

// Tree drawing constants.
const (
	branchMid   = "|-- "
	branchLast  = "`-- "
	branchPipe  = "|   "
	branchBlank = "    "

	maxValueWidth    = 40
	defaultTermWidth = 100
)

// TreeRenderer renders a node tree as styled indented text.
type TreeRenderer struct {
	styles    *Styles
	termWidth int
	showSpans bool
}

// NewTreeRenderer creates a tree renderer.
func NewTreeRenderer(styles *Styles, termWidth int, showSpans bool) *TreeRenderer {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TreeRenderer{
		styles:    styles,
		termWidth: termWidth,
		showSpans: showSpans,
	}
}

// Render renders the tree rooted at node, one node per line.
func (r *TreeRenderer) Render(node *mdast.Node) string {
	if node == nil {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(r.nodeLine(node))
	builder.WriteString("\n")
	r.renderChildren(&builder, node, "")

	return builder.String()
}

func (r *TreeRenderer) renderChildren(builder *strings.Builder, node *mdast.Node, prefix string) {
	for i, child := range node.Children {
		last := i == len(node.Children)-1

		branch := branchMid
		childPrefix := prefix + branchPipe
		if last {
			branch = branchLast
			childPrefix = prefix + branchBlank
		}

		builder.WriteString(r.styles.Branch.Render(prefix + branch))
		builder.WriteString(r.nodeLine(child))
		builder.WriteString("\n")

		r.renderChildren(builder, child, childPrefix)
	}
}

// nodeLine formats a single node: kind, attributes, value, span.
func (r *TreeRenderer) nodeLine(node *mdast.Node) string {
	parts := []string{r.kindStyle(node).Render(node.Kind.String())}

	if attrs := nodeAttrs(node); attrs != "" {
		parts = append(parts, r.styles.Attr.Render(attrs))
	}

	if value := nodeValue(node); value != "" {
		parts = append(parts, r.styles.Value.Render(value))
	}

	if r.showSpans {
		span := fmt.Sprintf("[%d:%d-%d:%d]",
			node.Span.Start.Line, node.Span.Start.Column,
			node.Span.End.Line, node.Span.End.Column)
		parts = append(parts, r.styles.Span.Render(span))
	}

	return strings.Join(parts, " ")
}

func (r *TreeRenderer) kindStyle(node *mdast.Node) lipgloss.Style {
	switch {
	case node.IsContainer() || node.Kind == mdast.NodeDocument:
		return r.styles.Container
	case node.IsInline():
		return r.styles.Inline
	default:
		return r.styles.Leaf
	}
}

// nodeAttrs formats the structural attributes of a node.
func nodeAttrs(node *mdast.Node) string {
	var parts []string

	if node.Block != nil {
		if node.Block.HeadingLevel > 0 {
			parts = append(parts, fmt.Sprintf("level=%d", node.Block.HeadingLevel))
		}
		if list := node.Block.List; list != nil {
			if list.Ordered {
				parts = append(parts, fmt.Sprintf("ordered start=%d", list.Start))
			} else {
				parts = append(parts, fmt.Sprintf("bullet=%q", string(list.Bullet)))
			}
			if !list.Tight {
				parts = append(parts, "loose")
			}
		}
		if item := node.Block.Item; item != nil && item.Marker != "" {
			parts = append(parts, fmt.Sprintf("marker=%q", item.Marker))
		}
		if code := node.Block.CodeBlock; code != nil {
			if code.Info != "" {
				parts = append(parts, fmt.Sprintf("info=%q", code.Info))
			}
			if !code.Closed {
				parts = append(parts, "unclosed")
			}
		}
	}

	if node.Inline != nil && node.Inline.Link != nil {
		link := node.Inline.Link
		parts = append(parts, fmt.Sprintf("dest=%q", link.Destination))
		if link.Title != "" {
			parts = append(parts, fmt.Sprintf("title=%q", link.Title))
		}
		if link.Label != "" {
			parts = append(parts, fmt.Sprintf("ref=%q", link.Label))
		}
	}

	return strings.Join(parts, " ")
}

// nodeValue formats the text payload of a node, if any.
func nodeValue(node *mdast.Node) string {
	var value string
	switch {
	case node.Inline != nil && node.Inline.Value != "":
		value = node.Inline.Value
	case node.Block != nil && node.Block.CodeBlock != nil:
		value = node.Block.CodeBlock.Value
	default:
		return ""
	}

	value = strings.ReplaceAll(value, "\n", "\\n")
	return fmt.Sprintf("%q", truncateString(value, maxValueWidth))
}
