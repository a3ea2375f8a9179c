package vncint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Uint64_RoundTrip(t *testing.T) {
	testCases := []uint64{
		0, 1, 0x7F, 0x80, 0x3FFF, 0x4000,
		0x1FFFFF, 0x200000,
		0xFFFFFFF, 0x10000000,
		0x7FFFFFFFF, 0x800000000,
		0x3FFFFFFFFFF, 0x40000000000,
		0x1FFFFFFFFFFFF, 0x2000000000000,
		0xFFFFFFFFFFFFFF, 0x100000000000000,
		0xFFFFFFFFFFFFFFFF,
	}

	for _, v := range testCases {
		enc := EncodeUint64(v)
		assert.Equal(t, EncodedLen(v), len(enc), "v=%d", v)
		assert.Equal(t, len(enc), LenFromLead(enc[0]), "v=%d lead-byte length prediction", v)

		got, n, err := DecodeUint64(enc)
		assert.NoError(t, err)
		assert.Equal(t, len(enc), n)
		assert.Equal(t, v, got, "v=%d", v)
	}
}

func Test_Int64_RoundTrip(t *testing.T) {
	testCases := []int64{
		0, 1, -1, 0x3F, -0x40, 0x40, -0x41,
		0x1FFF, -0x2000, 0x2000, -0x2001,
		0xFFFFF, -0x100000,
		0x7FFFFFF, -0x8000000,
		0x3FFFFFFFF, -0x400000000,
		0x1FFFFFFFFFF, -0x20000000000,
		0xFFFFFFFFFFF, -0x1000000000000,
		0x7FFFFFFFFFFFFF, -0x80000000000000,
		9223372036854775807,  // math.MaxInt64
		-9223372036854775808, // math.MinInt64
	}

	for _, v := range testCases {
		enc := EncodeInt64(v)
		assert.Equal(t, len(enc), LenFromLead(enc[0]), "v=%d lead-byte length prediction", v)

		got, n, err := DecodeInt64(enc)
		assert.NoError(t, err)
		assert.Equal(t, len(enc), n)
		assert.Equal(t, v, got, "v=%d", v)
	}
}

func Test_DecodeUint64_Truncated(t *testing.T) {
	enc := EncodeUint64(0x4000)
	_, _, err := DecodeUint64(enc[:1])
	assert.ErrorIs(t, err, ErrTruncated)
}

func Test_DecodeInt64_Truncated(t *testing.T) {
	enc := EncodeInt64(-0x2001)
	_, _, err := DecodeInt64(enc[:1])
	assert.ErrorIs(t, err, ErrTruncated)
}

func Test_LenFromLead_AllLengths(t *testing.T) {
	assert.Equal(t, 1, LenFromLead(0x00))
	assert.Equal(t, 1, LenFromLead(0x7F))
	assert.Equal(t, 2, LenFromLead(0x80))
	assert.Equal(t, 2, LenFromLead(0xBF))
	assert.Equal(t, 3, LenFromLead(0xC0))
	assert.Equal(t, 4, LenFromLead(0xE0))
	assert.Equal(t, 5, LenFromLead(0xF0))
	assert.Equal(t, 6, LenFromLead(0xF8))
	assert.Equal(t, 7, LenFromLead(0xFC))
	assert.Equal(t, 8, LenFromLead(0xFE))
	assert.Equal(t, 9, LenFromLead(0xFF))
}
