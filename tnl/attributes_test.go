package tnl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Attributes_InsertAndGet(t *testing.T) {
	a := NewAttributes()
	ok := a.Insert(Ident{Name: "x"}, NewInt(locZero(), false, 1))
	require.True(t, ok)

	v, found := a.Get("x")
	require.True(t, found)
	n, _ := v.ToU8()
	assert.Equal(t, uint8(1), n)
}

func Test_Attributes_RejectsDuplicate(t *testing.T) {
	a := NewAttributes()
	require.True(t, a.Insert(Ident{Name: "x"}, NewBool(locZero(), true)))
	assert.False(t, a.Insert(Ident{Name: "x"}, NewBool(locZero(), false)))
	assert.Equal(t, 1, a.Len())
}

func Test_Attributes_PreservesInsertionOrder(t *testing.T) {
	a := NewAttributes()
	a.Insert(Ident{Name: "c"}, NewNull(locZero()))
	a.Insert(Ident{Name: "a"}, NewNull(locZero()))
	a.Insert(Ident{Name: "b"}, NewNull(locZero()))

	assert.Equal(t, []string{"c", "a", "b"}, a.Names())
}

func Test_Attributes_GetMissing(t *testing.T) {
	a := NewAttributes()
	_, found := a.Get("nope")
	assert.False(t, found)
	assert.True(t, a.IsEmpty())
}
