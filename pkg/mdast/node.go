package mdast

// NodeKind classifies the type of an AST node.
type NodeKind uint16

// Node kinds for block-level and inline-level Markdown elements.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeParagraph
	NodeHeading
	NodeBlankLine
	NodeList
	NodeListItem
	NodeBlockquote
	NodeCodeBlock
	NodeThematicBreak

	// Inline-level nodes.
	NodeText
	NodeEmphasis
	NodeStrong
	NodeCodeSpan
	NodeLink
	NodeImage
	NodeSoftBreak
	NodeHardBreak
)

// String returns a stable lowercase name for the node kind.
func (k NodeKind) String() string {
	switch k {
	case NodeDocument:
		return "document"
	case NodeParagraph:
		return "paragraph"
	case NodeHeading:
		return "heading"
	case NodeBlankLine:
		return "blank_line"
	case NodeList:
		return "list"
	case NodeListItem:
		return "list_item"
	case NodeBlockquote:
		return "blockquote"
	case NodeCodeBlock:
		return "code_block"
	case NodeThematicBreak:
		return "thematic_break"
	case NodeText:
		return "text"
	case NodeEmphasis:
		return "emphasis"
	case NodeStrong:
		return "strong"
	case NodeCodeSpan:
		return "code_span"
	case NodeLink:
		return "link"
	case NodeImage:
		return "image"
	case NodeSoftBreak:
		return "soft_break"
	case NodeHardBreak:
		return "hard_break"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind as its string name, so JSON dumps of the
// tree stay readable.
func (k NodeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Node represents a single node in the Markdown AST.
//
// Position semantics: Span is expressed in the coordinate space the node was
// parsed in. For document-level nodes that is the original source; for nodes
// produced while recursing into a stripped container sub-text (list item or
// blockquote content) it is the sub-text. The container's ContainerAttrs.Map
// carries the transform back to the parent space.
type Node struct {
	Kind     NodeKind `json:"kind"`
	Span     Span     `json:"span"`
	Children []*Node  `json:"children,omitempty"`

	// Block holds attributes for block-level nodes.
	Block *BlockAttrs `json:"block,omitempty"`

	// Inline holds attributes for inline-level nodes.
	Inline *InlineAttrs `json:"inline,omitempty"`
}

// NewNode creates a new node of the specified kind.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// NewDocument creates a new document root node.
func NewDocument() *Node {
	return NewNode(NodeDocument)
}

// AppendChild appends a child to n, preserving order.
func (n *Node) AppendChild(child *Node) {
	if child == nil {
		return
	}
	n.Children = append(n.Children, child)
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	switch n.Kind {
	case NodeDocument, NodeParagraph, NodeHeading, NodeBlankLine, NodeList,
		NodeListItem, NodeBlockquote, NodeCodeBlock, NodeThematicBreak:
		return true
	default:
		return false
	}
}

// IsInline returns true if this is an inline-level node.
func (n *Node) IsInline() bool {
	switch n.Kind {
	case NodeText, NodeEmphasis, NodeStrong, NodeCodeSpan, NodeLink,
		NodeImage, NodeSoftBreak, NodeHardBreak:
		return true
	default:
		return false
	}
}

// IsContainer reports whether the node's children live in a stripped
// coordinate space of their own.
func (n *Node) IsContainer() bool {
	return n.Kind == NodeListItem || n.Kind == NodeBlockquote
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return len(n.Children) > 0
}

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// LastChild returns the last child, or nil.
func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// HeadingLevel returns the heading level (1-6) or 0 for non-headings.
func (n *Node) HeadingLevel() int {
	if n.Kind != NodeHeading || n.Block == nil {
		return 0
	}
	return n.Block.HeadingLevel
}

// TextValue returns the literal value for text-bearing inline nodes.
func (n *Node) TextValue() string {
	if n.Inline == nil {
		return ""
	}
	return n.Inline.Value
}
