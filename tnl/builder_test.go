package tnl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Builder_PushScalarsDirectlyToRoot(t *testing.T) {
	b := NewBuilder()
	assert.True(t, b.PushInt(false, 1))
	assert.True(t, b.PushBool(true))

	root := b.Build()
	require.Len(t, root.Elements, 2)
	n, _ := root.Elements[0].ToU8()
	assert.Equal(t, uint8(1), n)
	assert.True(t, root.Elements[1].Bool)
}

func Test_Builder_Attribute(t *testing.T) {
	b := NewBuilder()
	b.BeginAttribute("name")
	b.PushString("value")
	require.True(t, b.End())

	root := b.Build()
	v, found := root.Attributes.Get("name")
	require.True(t, found)
	assert.Equal(t, "value", v.Text)
}

func Test_Builder_AttributeWithNoValueFailsToEnd(t *testing.T) {
	b := NewBuilder()
	b.BeginAttribute("name")
	assert.False(t, b.End())
}

func Test_Builder_NestedArray(t *testing.T) {
	b := NewBuilder()
	b.BeginArray()
	b.PushInt(false, 1)
	b.PushInt(false, 2)
	require.True(t, b.End())

	root := b.Build()
	require.Len(t, root.Elements, 1)
	arr := root.Elements[0]
	assert.Equal(t, KindArray, arr.Kind)
	require.Len(t, arr.Elements, 2)
}

func Test_Builder_NestedNamedObject(t *testing.T) {
	b := NewBuilder()
	b.BeginObject(true, "ns", "thing")
	b.BeginAttribute("k")
	b.PushBool(false)
	b.End()
	require.True(t, b.End())

	root := b.Build()
	require.Len(t, root.Elements, 1)
	obj := root.Elements[0]
	assert.True(t, obj.HasNamespace)
	assert.Equal(t, "ns", obj.Namespace)
	assert.Equal(t, "thing", obj.Name)

	v, found := obj.Attributes.Get("k")
	require.True(t, found)
	assert.False(t, v.Bool)
}

func Test_Builder_Build_ClosesOpenContexts(t *testing.T) {
	b := NewBuilder()
	b.BeginArray()
	b.PushNull()
	// no explicit End before Build

	root := b.Build()
	require.Len(t, root.Elements, 1)
	assert.Equal(t, KindArray, root.Elements[0].Kind)
}
