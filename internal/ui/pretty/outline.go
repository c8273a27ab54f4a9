package pretty

import (
	"strings"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

// OutlineRenderer renders the heading structure of a document.
type OutlineRenderer struct {
	styles *Styles
}

// NewOutlineRenderer creates an outline renderer.
func NewOutlineRenderer(styles *Styles) *OutlineRenderer {
	return &OutlineRenderer{styles: styles}
}

// Render renders one line per heading, indented by level.
func (r *OutlineRenderer) Render(root *mdast.Node) string {
	var builder strings.Builder

	for _, heading := range mdast.FindByKind(root, mdast.NodeHeading) {
		level := heading.HeadingLevel()
		if level < 1 {
			continue
		}

		indent := strings.Repeat("  ", level-1)
		builder.WriteString(indent)
		builder.WriteString(r.styles.OutlineBullet.Render("- "))
		builder.WriteString(r.styles.OutlineTitle.Render(headingTitle(heading)))
		builder.WriteString("\n")
	}

	return builder.String()
}

// headingTitle flattens the heading's inline text, including code spans.
func headingTitle(heading *mdast.Node) string {
	var parts []string
	valued := mdast.FindAll(heading, func(n *mdast.Node) bool {
		return n.Inline != nil && n.Inline.Value != ""
	})
	for _, n := range valued {
		parts = append(parts, n.Inline.Value)
	}
	return strings.Join(parts, "")
}
