package grammar

import "strings"

// Production is one alternative of a non-terminal's right-hand side
//: an ordered list of items, a real count (items that become
// AST children; trailing lookahead-only items are excluded), and an optional
// guard over the inherited instance set.
type Production struct {
	Owner     *NonTerminal
	Items     []Item
	RealCount int
	Guard     *Guard

	// ReductionIndex is assigned by NonTerminal.assignReductions: productions
	// that contribute the same tuple of real items to the AST share an
	// index.
	ReductionIndex int
}

// reductionKey returns the string that two productions must share to be
// considered the same reduction: the sequence of their real (non-lookahead)
// items' String() forms.
func (p *Production) reductionKey() string {
	var sb strings.Builder
	for i := 0; i < p.RealCount; i++ {
		if i > 0 {
			sb.WriteByte('\x1f')
		}
		sb.WriteString(p.Items[i].String())
	}
	return sb.String()
}

// String renders "NONTERM -> ITEM ITEM ...".
func (p *Production) String() string {
	var sb strings.Builder
	sb.WriteString(p.Owner.Name)
	sb.WriteString(" -> ")
	for i, it := range p.Items {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(it.String())
	}
	return sb.String()
}
