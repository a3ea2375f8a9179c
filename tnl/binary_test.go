package tnl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test_SaveBinary_Header_And_RoundTrip checks that an object with one
// attribute `k: "v"` saves with header bytes 0x54 0x4E 0x4C 0x00, and that
// LoadBinary recovers an equal tree.
func Test_SaveBinary_Header_And_RoundTrip(t *testing.T) {
	obj, err := ParseText(`k: "v"`, 0, 0, "")
	require.NoError(t, err)

	data := SaveBinary(obj)
	require.True(t, len(data) >= 4)
	assert.Equal(t, []byte{0x54, 0x4E, 0x4C, 0x00}, data[:4])

	loaded, err := LoadBinary(data[4:])
	require.NoError(t, err)

	v, found := loaded.Attributes.Get("k")
	require.True(t, found)
	assert.Equal(t, KindString, v.Kind)
	assert.Equal(t, "v", v.Text)
}

func Test_Binary_RoundTrip_AllKinds(t *testing.T) {
	src := `
		n: null,
		b: true,
		pos: 42,
		neg: -7,
		f: 3.5,
		s: "hi",
		id: foo,
		arr: [1, 2, 3],
		obj: inner { x: 1 },
		ns:named { }
	`
	obj, err := ParseText(src, 0, 0, "")
	require.NoError(t, err)

	data := SaveBinary(obj)
	loaded, err := LoadBinary(data[4:])
	require.NoError(t, err)

	assertValueTreesEqual(t, obj, loaded)
}

// Test_Load_AutoDetectsTextVsBinary checks the header-sniffing behavior of
// Load: a buffer without the TNL\0 signature is parsed as text.
func Test_Load_AutoDetectsTextVsBinary(t *testing.T) {
	v, err := Load([]byte(`a: 1`))
	require.NoError(t, err)
	n, _ := v.Attributes.Get("a")
	got, _ := n.ToU8()
	assert.Equal(t, uint8(1), got)

	obj, err := ParseText(`a: 1`, 0, 0, "")
	require.NoError(t, err)
	data := SaveBinary(obj)
	v2, err := Load(data)
	require.NoError(t, err)
	n2, _ := v2.Attributes.Get("a")
	got2, _ := n2.ToU8()
	assert.Equal(t, uint8(1), got2)
}

func Test_LoadBinary_TruncatedIsError(t *testing.T) {
	_, err := LoadBinary([]byte{0xFF})
	require.Error(t, err)
	var be *BinaryError
	require.ErrorAs(t, err, &be)
}

func Test_LoadBinary_UnknownTagIsError(t *testing.T) {
	// string pool: 0 entries, attr count 0, element count 1, bogus tag 200.
	buf := []byte{0x00, 0x00, 0x01, 200}
	_, err := LoadBinary(buf)
	require.Error(t, err)
}

// assertValueTreesEqual compares two value trees for structural/value
// equality while ignoring Location.
func assertValueTreesEqual(t *testing.T, a, b *Value) {
	t.Helper()
	require.Equal(t, a.Kind, b.Kind)
	switch a.Kind {
	case KindBool:
		assert.Equal(t, a.Bool, b.Bool)
	case KindInt:
		assert.Equal(t, a.IntMinus, b.IntMinus)
		assert.Equal(t, a.IntMagnitude, b.IntMagnitude)
	case KindFloat:
		assert.Equal(t, a.Float, b.Float)
	case KindIdent, KindString:
		assert.Equal(t, a.Text, b.Text)
	case KindArray:
		require.Len(t, b.Elements, len(a.Elements))
		for i := range a.Elements {
			assertValueTreesEqual(t, a.Elements[i], b.Elements[i])
		}
	case KindObject:
		assert.Equal(t, a.HasNamespace, b.HasNamespace)
		assert.Equal(t, a.Namespace, b.Namespace)
		assert.Equal(t, a.Name, b.Name)
		assert.Equal(t, a.Attributes.Names(), b.Attributes.Names())
		a.Attributes.Each(func(name Ident, av *Value) {
			bv, found := b.Attributes.Get(name.Name)
			require.True(t, found)
			assertValueTreesEqual(t, av, bv)
		})
		require.Len(t, b.Elements, len(a.Elements))
		for i := range a.Elements {
			assertValueTreesEqual(t, a.Elements[i], b.Elements[i])
		}
	}
}
