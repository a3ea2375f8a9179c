package tnl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Value_IsNull(t *testing.T) {
	assert.True(t, (*Value)(nil).IsNull())
	assert.True(t, NewNull(locZero()).IsNull())
	assert.False(t, NewBool(locZero(), true).IsNull())
}

// Test_Integer_Coercion_FullRange checks that, for every width w,
// coercing to w succeeds iff the value is within that width's range.
func Test_Integer_Coercion_FullRange(t *testing.T) {
	// i8 range is -128..=127
	minI8 := NewInt(locZero(), true, 128)
	n, ok := minI8.ToI8()
	assert.True(t, ok)
	assert.Equal(t, int8(-128), n)

	maxI8 := NewInt(locZero(), false, 127)
	n, ok = maxI8.ToI8()
	assert.True(t, ok)
	assert.Equal(t, int8(127), n)

	tooBig := NewInt(locZero(), false, 128)
	_, ok = tooBig.ToI8()
	assert.False(t, ok)

	tooNeg := NewInt(locZero(), true, 129)
	_, ok = tooNeg.ToI8()
	assert.False(t, ok)
}

func Test_Integer_Coercion_NegativeZero(t *testing.T) {
	negZero := NewInt(locZero(), true, 0)

	n, ok := negZero.ToI8()
	assert.True(t, ok)
	assert.Equal(t, int8(0), n)

	u, ok := negZero.ToU8()
	assert.True(t, ok)
	assert.Equal(t, uint8(0), u)
}

func Test_Integer_Coercion_UnsignedRejectsNegative(t *testing.T) {
	neg := NewInt(locZero(), true, 5)
	_, ok := neg.ToU8()
	assert.False(t, ok)
}

func Test_Integer_Coercion_U64Full(t *testing.T) {
	v := NewInt(locZero(), false, ^uint64(0))
	n, ok := v.ToU64()
	assert.True(t, ok)
	assert.Equal(t, ^uint64(0), n)
}

func Test_Value_DeepCopy_Independent(t *testing.T) {
	inner := NewArray(locZero(), []*Value{NewInt(locZero(), false, 1)})
	obj := NewObject(locZero(), false, "", "outer", nil, []*Value{inner})
	obj.Attributes.Insert(Ident{Name: "a"}, NewBool(locZero(), true))

	cp := obj.DeepCopy()
	cp.Elements[0].Elements[0].IntMagnitude = 99
	assert.Equal(t, uint64(1), obj.Elements[0].Elements[0].IntMagnitude)

	av, _ := cp.Attributes.Get("a")
	av.Bool = false
	orig, _ := obj.Attributes.Get("a")
	assert.True(t, orig.Bool)
}
