package mdast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

func textNode(v string) *mdast.Node {
	return &mdast.Node{Kind: mdast.NodeText, Inline: &mdast.InlineAttrs{Value: v}}
}

func blockNode(kind mdast.NodeKind, attrs *mdast.BlockAttrs, children ...*mdast.Node) *mdast.Node {
	return &mdast.Node{Kind: kind, Block: attrs, Children: children}
}

func docNode(children ...*mdast.Node) *mdast.Node {
	return &mdast.Node{Kind: mdast.NodeDocument, Children: children}
}

func TestSerialize_Blocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		root     *mdast.Node
		expected string
	}{
		{
			name: "heading",
			root: docNode(blockNode(mdast.NodeHeading,
				&mdast.BlockAttrs{HeadingLevel: 2}, textNode("hi"))),
			expected: "## hi",
		},
		{
			name:     "empty heading",
			root:     docNode(blockNode(mdast.NodeHeading, &mdast.BlockAttrs{HeadingLevel: 3})),
			expected: "###",
		},
		{
			name:     "thematic break",
			root:     docNode(blockNode(mdast.NodeThematicBreak, nil)),
			expected: "---",
		},
		{
			name: "blockquote prefixes every line",
			root: docNode(blockNode(mdast.NodeBlockquote, nil,
				blockNode(mdast.NodeParagraph, nil, textNode("a")),
				blockNode(mdast.NodeBlankLine, nil),
				blockNode(mdast.NodeParagraph, nil, textNode("b")))),
			expected: "> a\n>\n> b",
		},
		{
			name: "tight list",
			root: docNode(blockNode(mdast.NodeList,
				&mdast.BlockAttrs{List: &mdast.ListAttrs{Tight: true, Bullet: '-'}},
				blockNode(mdast.NodeListItem,
					&mdast.BlockAttrs{Item: &mdast.ListItemAttrs{Marker: "-"}},
					blockNode(mdast.NodeParagraph, nil, textNode("a"))),
				blockNode(mdast.NodeListItem,
					&mdast.BlockAttrs{Item: &mdast.ListItemAttrs{Marker: "-"}},
					blockNode(mdast.NodeParagraph, nil, textNode("b"))))),
			expected: "- a\n- b",
		},
		{
			name: "loose list gets separating blanks",
			root: docNode(blockNode(mdast.NodeList,
				&mdast.BlockAttrs{List: &mdast.ListAttrs{Tight: false, Bullet: '-'}},
				blockNode(mdast.NodeListItem,
					&mdast.BlockAttrs{Item: &mdast.ListItemAttrs{Marker: "-"}},
					blockNode(mdast.NodeParagraph, nil, textNode("a"))),
				blockNode(mdast.NodeListItem,
					&mdast.BlockAttrs{Item: &mdast.ListItemAttrs{Marker: "-"}},
					blockNode(mdast.NodeParagraph, nil, textNode("b"))))),
			expected: "- a\n\n- b",
		},
		{
			name: "ordered item continuation indent",
			root: docNode(blockNode(mdast.NodeList,
				&mdast.BlockAttrs{List: &mdast.ListAttrs{Ordered: true, Start: 12, Tight: true}},
				blockNode(mdast.NodeListItem,
					&mdast.BlockAttrs{Item: &mdast.ListItemAttrs{Marker: "12."}},
					blockNode(mdast.NodeParagraph, nil, textNode("first")),
					blockNode(mdast.NodeList,
						&mdast.BlockAttrs{List: &mdast.ListAttrs{Tight: true, Bullet: '-'}},
						blockNode(mdast.NodeListItem,
							&mdast.BlockAttrs{Item: &mdast.ListItemAttrs{Marker: "-"}},
							blockNode(mdast.NodeParagraph, nil, textNode("sub"))))))),
			expected: "12. first\n    - sub",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, mdast.Serialize(testCase.root))
		})
	}
}

func TestSerialize_CodeBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		attrs    *mdast.CodeBlockAttrs
		expected string
	}{
		{
			name:     "plain fence",
			attrs:    &mdast.CodeBlockAttrs{Info: "go", Value: "x := 1\n", Fence: '`', FenceLength: 3},
			expected: "```go\nx := 1\n```",
		},
		{
			name:     "fence widened past content run",
			attrs:    &mdast.CodeBlockAttrs{Value: "```\n", Fence: '`', FenceLength: 3},
			expected: "````\n```\n````",
		},
		{
			name:     "backtick info switches to tilde",
			attrs:    &mdast.CodeBlockAttrs{Info: "a`b", Value: "x\n", Fence: '`', FenceLength: 3},
			expected: "~~~a`b\nx\n~~~",
		},
		{
			name:     "zero attrs default to backtick triple",
			attrs:    &mdast.CodeBlockAttrs{Value: "x\n"},
			expected: "```\nx\n```",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			root := docNode(blockNode(mdast.NodeCodeBlock, &mdast.BlockAttrs{CodeBlock: testCase.attrs}))
			assert.Equal(t, testCase.expected, mdast.Serialize(root))
		})
	}
}

func TestSerialize_Inlines(t *testing.T) {
	t.Parallel()

	para := func(children ...*mdast.Node) *mdast.Node {
		return docNode(blockNode(mdast.NodeParagraph, nil, children...))
	}
	link := func(dest, title string, children ...*mdast.Node) *mdast.Node {
		return &mdast.Node{
			Kind:     mdast.NodeLink,
			Children: children,
			Inline:   &mdast.InlineAttrs{Link: &mdast.LinkAttrs{Destination: dest, Title: title}},
		}
	}

	tests := []struct {
		name     string
		root     *mdast.Node
		expected string
	}{
		{
			name:     "metacharacters escaped",
			root:     para(textNode("a*b_[c]")),
			expected: `a\*b\_\[c\]`,
		},
		{
			name:     "ordered marker lookalike guarded",
			root:     para(textNode("2025. review")),
			expected: `2025\. review`,
		},
		{
			name:     "dash lookalike guarded",
			root:     para(textNode("- not a list")),
			expected: `\- not a list`,
		},
		{
			name: "nested emphasis alternates delimiters",
			root: para(&mdast.Node{Kind: mdast.NodeStrong, Children: []*mdast.Node{
				{Kind: mdast.NodeEmphasis, Children: []*mdast.Node{textNode("x")}},
			}}),
			expected: "**_x_**",
		},
		{
			name: "code span widened",
			root: para(&mdast.Node{Kind: mdast.NodeCodeSpan,
				Inline: &mdast.InlineAttrs{Value: "a`b"}}),
			expected: "``a`b``",
		},
		{
			name: "code span edge backtick padded",
			root: para(&mdast.Node{Kind: mdast.NodeCodeSpan,
				Inline: &mdast.InlineAttrs{Value: "`x"}}),
			expected: "`` `x ``",
		},
		{
			name:     "link with spaced destination wrapped",
			root:     para(link("a b", "", textNode("t"))),
			expected: "[t](<a b>)",
		},
		{
			name:     "link title quoted",
			root:     para(link("/u", `say "hi"`, textNode("t"))),
			expected: `[t](/u "say \"hi\"")`,
		},
		{
			name: "image",
			root: para(&mdast.Node{
				Kind:     mdast.NodeImage,
				Children: []*mdast.Node{textNode("alt")},
				Inline:   &mdast.InlineAttrs{Link: &mdast.LinkAttrs{Destination: "i.png"}},
			}),
			expected: "![alt](i.png)",
		},
		{
			name: "breaks",
			root: para(textNode("a"),
				&mdast.Node{Kind: mdast.NodeSoftBreak},
				textNode("b"),
				&mdast.Node{Kind: mdast.NodeHardBreak},
				textNode("c")),
			expected: "a\nb\\\nc",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, mdast.Serialize(testCase.root))
		})
	}
}

func TestSerialize_Nil(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", mdast.Serialize(nil))
}
