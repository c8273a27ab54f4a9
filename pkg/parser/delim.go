package parser

import (
	"github.com/yaklabco/mdtree/pkg/mdast"
)

// delimiter is one emphasis delimiter run ('*' or '_') awaiting resolution.
// The backing text node lives at nodes[slot]; [lo, hi) is the remaining run
// in the inline source. Closing use consumes from lo, opening use from hi,
// so the leftover run is always contiguous.
type delimiter struct {
	slot      int
	char      byte
	lo, hi    int
	origCount int
	canOpen   bool
	canClose  bool
	active    bool
}

func (d *delimiter) count() int {
	return d.hi - d.lo
}

// resolveDelimiters pairs emphasis delimiters above the given stack bottom,
// wrapping the enclosed inline nodes in Emphasis and Strong nodes. It
// implements the delimiter stack pairing order: the earliest potential
// closer is matched against the nearest preceding compatible opener.
//
// The iteration budget is a hard ceiling derived from the total delimiter
// count; exceeding it means the pairing state stopped making progress and
// the parse is aborted with ErrMalformedDelimiterState rather than looping.
func (p *inlineParser) resolveDelimiters(bottom int) error {
	budget := len(p.delims) - bottom + 4
	for _, d := range p.delims[bottom:] {
		budget += d.origCount * 2
	}

	closerIdx := bottom
	for {
		if budget--; budget < 0 {
			return ErrMalformedDelimiterState
		}
		for closerIdx < len(p.delims) {
			d := p.delims[closerIdx]
			if d.active && d.canClose && d.count() > 0 {
				break
			}
			closerIdx++
		}
		if closerIdx >= len(p.delims) {
			return nil
		}
		closer := p.delims[closerIdx]

		openerIdx := -1
		for j := closerIdx - 1; j >= bottom; j-- {
			o := p.delims[j]
			if !o.active || !o.canOpen || o.count() == 0 || o.char != closer.char {
				continue
			}
			if mulOfThreeForbidden(o, closer) {
				continue
			}
			openerIdx = j
			break
		}
		if openerIdx < 0 {
			// No opener will ever appear for it; stop considering it as a
			// closer but keep it available as an opener for later runs.
			if !closer.canOpen {
				closer.active = false
			}
			closerIdx++
			continue
		}

		if err := p.pairDelimiters(openerIdx, closerIdx); err != nil {
			return err
		}
	}
}

func (p *inlineParser) pairDelimiters(openerIdx, closerIdx int) error {
	opener := p.delims[openerIdx]
	closer := p.delims[closerIdx]

	use := 1
	kind := mdast.NodeEmphasis
	if opener.count() >= 2 && closer.count() >= 2 {
		use = 2
		kind = mdast.NodeStrong
	}
	wrapStart := opener.hi - use
	wrapEnd := closer.lo + use

	first := -1
	var children []*mdast.Node
	for s := opener.slot + 1; s < closer.slot; s++ {
		if p.nodes[s] == nil {
			continue
		}
		if first < 0 {
			first = s
		}
		children = append(children, p.nodes[s])
		p.nodes[s] = nil
	}
	if first < 0 {
		return ErrMalformedDelimiterState
	}
	p.nodes[first] = &mdast.Node{
		Kind:     kind,
		Span:     p.span(wrapStart, wrapEnd),
		Children: children,
	}

	// Delimiters between the pair can no longer match across it.
	for j := openerIdx + 1; j < closerIdx; j++ {
		p.delims[j].active = false
	}

	opener.hi -= use
	closer.lo += use
	p.refreshDelimNode(opener)
	p.refreshDelimNode(closer)
	return nil
}

// refreshDelimNode syncs a delimiter's backing text node with its remaining
// run, removing the node once the run is fully consumed.
func (p *inlineParser) refreshDelimNode(d *delimiter) {
	if d.count() == 0 {
		p.nodes[d.slot] = nil
		return
	}
	n := p.nodes[d.slot]
	n.Inline.Value = p.src[d.lo:d.hi]
	n.Span = p.span(d.lo, d.hi)
}

// mulOfThreeForbidden applies the rule that keeps "***foo***" a single
// Strong-around-Emphasis: when either run can both open and close, the pair
// is rejected if the combined length is a multiple of three, unless both
// lengths are themselves multiples of three.
func mulOfThreeForbidden(o, c *delimiter) bool {
	if !(o.canOpen && o.canClose || c.canOpen && c.canClose) {
		return false
	}
	if (o.origCount+c.origCount)%3 != 0 {
		return false
	}
	return o.origCount%3 != 0 || c.origCount%3 != 0
}
