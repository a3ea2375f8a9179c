// Package lr implements a table-driven LR runtime: a generic AST Node, the
// State/NodeJump/TokenJump/Reduction table shapes emitted by the grammar
// package's table builder, and the shift/reduce driver that executes them
// against a token stream.
package lr

import (
	"fmt"
	"strings"

	"github.com/dekarrin/vnlex/lex"
)

// Node is a generic parse-tree node:
// rather than emitting one Go struct per non-terminal production, a single
// tagged Node parameterized by the tokenizer's custom payload type T serves
// every grammar. A Node is either a terminal leaf (Token set, Children nil)
// or a non-terminal node produced by a reduction (NonTerminalID and
// ProductionIndex set, Children holding exactly the production's real
// items in grammar order).
type Node[T any] struct {
	// IsLeaf is true for a terminal leaf carrying Token; false for a
	// non-terminal node carrying NonTerminalID/ProductionIndex/Children.
	IsLeaf bool
	Token  lex.Token[T]

	NonTerminalID   uint32
	NonTerminalName string
	ProductionIndex int // the production's ReductionIndex within its non-terminal
	Children        []*Node[T]
}

// Leaf builds a terminal Node wrapping a single token.
func Leaf[T any](tok lex.Token[T]) *Node[T] {
	return &Node[T]{IsLeaf: true, Token: tok}
}

// IntoOne unwraps a single-child non-terminal node, returning its one child.
// It is a no-op (returns n) on a leaf or a node with any other child count.
func (n *Node[T]) IntoOne() *Node[T] {
	if n.IsLeaf || len(n.Children) != 1 {
		return n
	}
	return n.Children[0]
}

// Visit calls fn once for each child, in grammar order.
func (n *Node[T]) Visit(fn func(i int, child *Node[T])) {
	for i, c := range n.Children {
		fn(i, c)
	}
}

func (n *Node[T]) String() string {
	if n.IsLeaf {
		return n.Token.String()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s(", n.NonTerminalName)
	for i, c := range n.Children {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.String())
	}
	sb.WriteString(")")
	return sb.String()
}
