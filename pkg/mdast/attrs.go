package mdast

// BlockAttrs holds attributes for block-level nodes.
type BlockAttrs struct {
	// HeadingLevel is the heading level (1-6) for NodeHeading.
	HeadingLevel int `json:"heading_level,omitempty"`

	// List holds list-specific attributes for NodeList.
	List *ListAttrs `json:"list,omitempty"`

	// Item holds attributes for NodeListItem.
	Item *ListItemAttrs `json:"item,omitempty"`

	// CodeBlock holds attributes for NodeCodeBlock.
	CodeBlock *CodeBlockAttrs `json:"code_block,omitempty"`

	// Container holds the stripped sub-text and coordinate transform for
	// NodeListItem and NodeBlockquote.
	Container *ContainerAttrs `json:"container,omitempty"`
}

// ListAttrs holds attributes for list nodes.
type ListAttrs struct {
	// Ordered is true for ordered lists (1., 2., etc.).
	Ordered bool `json:"ordered"`

	// Start is the starting number for ordered lists.
	Start int `json:"start,omitempty"`

	// Bullet is the bullet character ('-', '+', '*') for bullet lists.
	Bullet byte `json:"bullet,omitempty"`

	// Delimiter is the marker delimiter ('.' or ')') for ordered lists.
	Delimiter byte `json:"delimiter,omitempty"`

	// Tight is false iff a blank line separates two items or appears
	// inside an item.
	Tight bool `json:"tight"`
}

// ListItemAttrs holds attributes for list item nodes.
type ListItemAttrs struct {
	// Marker is the item's marker text without indentation, e.g. "-" or "3.".
	Marker string `json:"marker"`
}

// CodeBlockAttrs holds attributes for fenced code block nodes.
type CodeBlockAttrs struct {
	// Info is the fence info string (language identifier, etc.).
	Info string `json:"info,omitempty"`

	// Value is the literal code content, one trailing newline per line.
	Value string `json:"value"`

	// Fence is the fence character ('`' or '~').
	Fence byte `json:"fence,omitempty"`

	// FenceLength is the number of fence characters in the opening fence.
	FenceLength int `json:"fence_length,omitempty"`

	// Indent is the indentation of the opening fence (0-3).
	Indent int `json:"indent,omitempty"`

	// Closed is false when the block ran to EOF without a closing fence.
	Closed bool `json:"closed"`
}

// InlineAttrs holds attributes for inline-level nodes.
type InlineAttrs struct {
	// Value holds the literal content for NodeText and NodeCodeSpan.
	Value string `json:"value,omitempty"`

	// Link holds link attributes for NodeLink and NodeImage.
	Link *LinkAttrs `json:"link,omitempty"`
}

// LinkAttrs holds attributes for link and image nodes.
type LinkAttrs struct {
	// Destination is the link URL.
	Destination string `json:"destination"`

	// Title is the optional link title; empty means absent.
	Title string `json:"title,omitempty"`

	// Label is the reference label for reference-style links, in its
	// original case. Empty for inline links.
	Label string `json:"label,omitempty"`
}
