package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Interner_IdenticalContentsSamePointer(t *testing.T) {
	in := NewInterner()
	a := in.Intern([]string{"foo", "bar"})
	b := in.Intern([]string{"bar", "foo"})
	assert.Same(t, a, b)
}

func Test_Interner_DifferentContentsDifferentPointer(t *testing.T) {
	in := NewInterner()
	a := in.Intern([]string{"foo"})
	b := in.Intern([]string{"bar"})
	assert.NotSame(t, a, b)
}

func Test_Interner_EmptyIsNil(t *testing.T) {
	in := NewInterner()
	assert.Nil(t, in.Intern(nil))
	assert.Nil(t, in.Intern([]string{}))
}

func Test_InstanceSet_Contains(t *testing.T) {
	in := NewInterner()
	s := in.Intern([]string{"a", "b"})
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("z"))
	var nilSet *InstanceSet
	assert.False(t, nilSet.Contains("a"))
}

func Test_SetBuilder_Modifier(t *testing.T) {
	in := NewInterner()
	base := in.Intern([]string{"a", "b"})
	b := &SetBuilder{Kind: BuildModifier, Add: []string{"c"}, Remove: []string{"a"}}
	out := b.Build(in, base)
	assert.False(t, out.Contains("a"))
	assert.True(t, out.Contains("b"))
	assert.True(t, out.Contains("c"))
}

func Test_SetBuilder_Literal(t *testing.T) {
	in := NewInterner()
	base := in.Intern([]string{"a"})
	b := &SetBuilder{Kind: BuildLiteral, Flags: []string{"x", "y"}}
	out := b.Build(in, base)
	assert.False(t, out.Contains("a"))
	assert.True(t, out.Contains("x"))
}

func Test_SetBuilder_Empty(t *testing.T) {
	in := NewInterner()
	base := in.Intern([]string{"a"})
	b := &SetBuilder{Kind: BuildEmpty}
	out := b.Build(in, base)
	assert.Nil(t, out)
}

func Test_Guard_Evaluate(t *testing.T) {
	in := NewInterner()
	s := in.Intern([]string{"a"})
	assert.True(t, (&Guard{Flag: "a"}).Evaluate(s))
	assert.False(t, (&Guard{Flag: "b"}).Evaluate(s))
	assert.True(t, (&Guard{Negate: true, Flag: "b"}).Evaluate(s))
	assert.False(t, (&Guard{Negate: true, Flag: "a"}).Evaluate(s))
	var nilGuard *Guard
	assert.True(t, nilGuard.Evaluate(s))
}
