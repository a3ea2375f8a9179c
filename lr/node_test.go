package lr

import (
	"testing"

	"github.com/dekarrin/vnlex/lex"
	"github.com/stretchr/testify/assert"
)

func Test_Node_IntoOne_SingleChild(t *testing.T) {
	leaf := Leaf(lex.Token[any]{Kind: lex.KindIdent, Content: "x"})
	parent := &Node[any]{NonTerminalName: "wrapper", Children: []*Node[any]{leaf}}
	assert.Same(t, leaf, parent.IntoOne())
}

func Test_Node_IntoOne_MultiChildNoOp(t *testing.T) {
	leaf1 := Leaf(lex.Token[any]{Content: "a"})
	leaf2 := Leaf(lex.Token[any]{Content: "b"})
	parent := &Node[any]{NonTerminalName: "pair", Children: []*Node[any]{leaf1, leaf2}}
	assert.Same(t, parent, parent.IntoOne())
}

func Test_Node_Visit_GrammarOrder(t *testing.T) {
	leaf1 := Leaf(lex.Token[any]{Content: "a"})
	leaf2 := Leaf(lex.Token[any]{Content: "b"})
	parent := &Node[any]{Children: []*Node[any]{leaf1, leaf2}}
	var seen []string
	parent.Visit(func(i int, child *Node[any]) {
		seen = append(seen, child.Token.Content)
	})
	assert.Equal(t, []string{"a", "b"}, seen)
}

func Test_Node_String_Leaf(t *testing.T) {
	leaf := Leaf(lex.Token[any]{Kind: lex.KindIdent, Content: "x"})
	assert.Contains(t, leaf.String(), "x")
}
