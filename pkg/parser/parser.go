// Package parser implements a structural Markdown parser. It produces a
// positioned AST of the CommonMark block constructs (headings, thematic
// breaks, fenced code, blockquotes, lists) and inline constructs (emphasis,
// code spans, links, images, breaks) without rendering anything.
//
// Parsing runs in two phases over one shared state: the block phase builds
// the tree and harvests every link reference definition, then the inline
// phase fills in block contents. Forward references resolve because no
// inline text is touched until the whole block phase is done.
package parser

import (
	"errors"
	"strings"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

// DefaultMaxNestingDepth bounds container recursion when Options does not.
const DefaultMaxNestingDepth = 64

var (
	// ErrTooDeeplyNested is returned when container nesting exceeds the
	// configured ceiling.
	ErrTooDeeplyNested = errors.New("parser: block nesting exceeds the depth limit")

	// ErrMalformedDelimiterState is returned when emphasis resolution stops
	// making progress. It indicates a parser bug, not bad input; no input
	// should be able to trigger it.
	ErrMalformedDelimiterState = errors.New("parser: emphasis delimiter resolution did not converge")
)

// Options controls a parse.
type Options struct {
	// MaxNestingDepth is the container recursion ceiling. Zero or negative
	// selects DefaultMaxNestingDepth.
	MaxNestingDepth int
}

// Document is the result of a parse: the source text and the tree built
// from it. Top-level node spans index directly into Source.
type Document struct {
	Source string
	Root   *mdast.Node

	// Refs holds the link reference definitions collected from the source.
	Refs *ReferenceMap
}

// Parse parses source with default options.
func Parse(source string) (*Document, error) {
	return ParseWithOptions(source, Options{})
}

// ParseWithOptions parses source. The returned error is non-nil only for
// ErrTooDeeplyNested and ErrMalformedDelimiterState; every text is
// otherwise parseable.
func ParseWithOptions(source string, opts Options) (*Document, error) {
	if opts.MaxNestingDepth <= 0 {
		opts.MaxNestingDepth = DefaultMaxNestingDepth
	}
	state := &parseState{refs: NewReferenceMap(), opts: opts}

	children, err := parseBlocks(state, source, 0)
	if err != nil {
		return nil, err
	}
	root := mdast.NewDocument()
	root.Children = children
	root.Span = mdast.Span{
		Start: mdast.Position{Line: 1, Column: 1, Offset: 0},
		End:   mdast.PositionAt(source, len(source)),
	}

	for _, pi := range state.pending {
		nodes, err := parseInlines(pi.raw, pi.base, state.refs)
		if err != nil {
			return nil, err
		}
		pi.node.Children = nodes
	}
	return &Document{Source: source, Root: root, Refs: state.refs}, nil
}

// Text reconstructs the source from the tree's top-level spans, filling the
// gaps between blocks from the original. It returns the source byte for
// byte; a mismatch would mean broken span bookkeeping.
func (d *Document) Text() string {
	var b strings.Builder
	b.Grow(len(d.Source))
	cursor := 0
	for _, child := range d.Root.Children {
		end := child.Span.End.Offset
		if end > cursor && end <= len(d.Source) {
			b.WriteString(d.Source[cursor:end])
			cursor = end
		}
	}
	b.WriteString(d.Source[cursor:])
	return b.String()
}
