package tnl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test_ParseText_TwoPositionalElements checks that `test r"file.ext"`
// parses to an Object with two positional elements, an Ident and a String.
func Test_ParseText_TwoPositionalElements(t *testing.T) {
	obj, err := ParseText(`test r"file.ext"`, 0, 0, "")
	require.NoError(t, err)
	require.Equal(t, KindObject, obj.Kind)
	require.Len(t, obj.Elements, 2)

	assert.Equal(t, KindIdent, obj.Elements[0].Kind)
	assert.Equal(t, "test", obj.Elements[0].Text)

	assert.Equal(t, KindString, obj.Elements[1].Kind)
	assert.Equal(t, "file.ext", obj.Elements[1].Text)
}

// Test_ParseText_AttributeAsU32 checks that `a: 1_0010` parses with the
// digit-separator stripped, and that querying attribute `a` as u32 yields
// 10010.
func Test_ParseText_AttributeAsU32(t *testing.T) {
	obj, err := ParseText("a: 1_0010", 0, 0, "")
	require.NoError(t, err)

	v, found := obj.Attributes.Get("a")
	require.True(t, found)
	n, ok := v.ToU32()
	require.True(t, ok)
	assert.Equal(t, uint32(10010), n)
}

func Test_ParseText_EmptyDocument(t *testing.T) {
	obj, err := ParseText("", 0, 0, "")
	require.NoError(t, err)
	assert.Equal(t, KindObject, obj.Kind)
	assert.Empty(t, obj.Elements)
	assert.True(t, obj.Attributes.IsEmpty())
}

func Test_ParseText_NestedNamedAndNamespacedObjects(t *testing.T) {
	obj, err := ParseText(`room { ns:door { locked: true } }`, 0, 0, "")
	require.NoError(t, err)
	require.Len(t, obj.Elements, 1)

	room := obj.Elements[0]
	require.Equal(t, KindObject, room.Kind)
	assert.Equal(t, "room", room.Name)
	assert.False(t, room.HasNamespace)
	require.Len(t, room.Elements, 1)

	door := room.Elements[0]
	assert.True(t, door.HasNamespace)
	assert.Equal(t, "ns", door.Namespace)
	assert.Equal(t, "door", door.Name)

	locked, found := door.Attributes.Get("locked")
	require.True(t, found)
	assert.Equal(t, KindBool, locked.Kind)
	assert.True(t, locked.Bool)
}

func Test_ParseText_Array(t *testing.T) {
	obj, err := ParseText("[1, 2, 3]", 0, 0, "")
	require.NoError(t, err)
	require.Len(t, obj.Elements, 1)

	arr := obj.Elements[0]
	require.Equal(t, KindArray, arr.Kind)
	require.Len(t, arr.Elements, 3)
	n, _ := arr.Elements[2].ToU8()
	assert.Equal(t, uint8(3), n)
}

func Test_ParseText_NegativeNumberAndEscapedString(t *testing.T) {
	obj, err := ParseText(`x: -5, y: "a\nb"`, 0, 0, "")
	require.NoError(t, err)

	x, _ := obj.Attributes.Get("x")
	assert.True(t, x.IntMinus)
	n, _ := x.ToI32()
	assert.Equal(t, int32(-5), n)

	y, _ := obj.Attributes.Get("y")
	assert.Equal(t, "a\nb", y.Text)
}

func Test_ParseText_DuplicateAttributeIsError(t *testing.T) {
	_, err := ParseText("a: 1, a: 2", 0, 0, "")
	assert.Error(t, err)
}

func Test_ParseValue_Scalar(t *testing.T) {
	v, err := ParseValue("null", 0, 0, "")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.True(t, v.IsNull())
}

func Test_ParseValue_EmptyInputYieldsNilNil(t *testing.T) {
	v, err := ParseValue("  // just a comment\n", 0, 0, "")
	require.NoError(t, err)
	assert.Nil(t, v)
}
