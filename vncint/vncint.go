// Package vncint implements the compact, byte-aligned, self-describing
// variable-length integer encoding used throughout the tnl binary format
// (see tnl/binary.go). It is a small, reusable primitive: unsigned and
// signed 64-bit integers are packed into 1-9 bytes using a unary length
// prefix carried in the high bits of the lead byte.
//
// Unsigned layout, by lead byte pattern:
//
//	0xxxxxxx                                    1 byte,  7 data bits
//	10xxxxxx xxxxxxxx                           2 bytes, 14 data bits
//	110xxxxx xxxxxxxx xxxxxxxx                  3 bytes, 21 data bits
//	1110xxxx ...                                4 bytes, 28 data bits
//	11110xxx ...                                5 bytes, 35 data bits
//	111110xx ...                                6 bytes, 42 data bits
//	1111110x ...                                7 bytes, 49 data bits
//	11111110 + 7 bytes                          8 bytes, 56 data bits
//	11111111 + 8 bytes                          9 bytes, full uint64
//
// Signed values use the same length prefix; the remaining data bits (in the
// lead byte and all follow-on bytes) are the low bits of the two's-complement
// representation, so the natural sign-extension of that representation
// reconstructs negative values once the tag bits are stripped.
package vncint

import (
	"encoding/binary"
	"errors"
)

// ErrTruncated is returned when a buffer ends before a complete compressed
// integer has been read.
var ErrTruncated = errors.New("vncint: truncated compressed integer")

var unsignedTags = [7]byte{0x00, 0x80, 0xC0, 0xE0, 0xF0, 0xF8, 0xFC}

// LenFromLead returns the total number of bytes (including the lead byte
// itself) that a compressed integer occupies, given only its first byte.
// This is the codec's defining property: the length of an encoded value is
// always determined by inspecting its lead byte alone.
func LenFromLead(lead byte) int {
	switch {
	case lead&0x80 == 0:
		return 1
	case lead&0xC0 == 0x80:
		return 2
	case lead&0xE0 == 0xC0:
		return 3
	case lead&0xF0 == 0xE0:
		return 4
	case lead&0xF8 == 0xF0:
		return 5
	case lead&0xFC == 0xF8:
		return 6
	case lead&0xFE == 0xFC:
		return 7
	case lead == 0xFE:
		return 8
	default: // 0xFF
		return 9
	}
}

// EncodeUint64 returns the compressed encoding of v.
func EncodeUint64(v uint64) []byte {
	switch {
	case v <= 0x7F:
		return []byte{byte(v)}
	case v <= 0x3FFF:
		return packUnsigned(v, 2)
	case v <= 0x1FFFFF:
		return packUnsigned(v, 3)
	case v <= 0xFFFFFFF:
		return packUnsigned(v, 4)
	case v <= 0x7FFFFFFFF:
		return packUnsigned(v, 5)
	case v <= 0x3FFFFFFFFFF:
		return packUnsigned(v, 6)
	case v <= 0x1FFFFFFFFFFFF:
		return packUnsigned(v, 7)
	case v <= 0xFFFFFFFFFFFFFF:
		var full [8]byte
		binary.BigEndian.PutUint64(full[:], v)
		buf := make([]byte, 8)
		buf[0] = 0xFE
		copy(buf[1:], full[1:])
		return buf
	default:
		buf := make([]byte, 9)
		buf[0] = 0xFF
		binary.BigEndian.PutUint64(buf[1:], v)
		return buf
	}
}

func packUnsigned(v uint64, n int) []byte {
	var full [8]byte
	binary.BigEndian.PutUint64(full[:], v)
	buf := make([]byte, n)
	copy(buf, full[8-n:])
	buf[0] |= unsignedTags[n-1]
	return buf
}

// DecodeUint64 decodes a compressed unsigned integer from the start of buf,
// returning the value and the number of bytes consumed. buf must contain at
// least LenFromLead(buf[0]) bytes.
func DecodeUint64(buf []byte) (uint64, int, error) {
	if len(buf) == 0 {
		return 0, 0, ErrTruncated
	}
	n := LenFromLead(buf[0])
	if len(buf) < n {
		return 0, 0, ErrTruncated
	}

	var full [8]byte
	switch {
	case n <= 7:
		copy(full[8-n:], buf[:n])
		full[8-n] &= byte((1 << uint(8-n)) - 1)
	case n == 8:
		copy(full[1:], buf[1:8])
	default: // 9
		copy(full[:], buf[1:9])
	}
	return binary.BigEndian.Uint64(full[:]), n, nil
}

var signedTags = unsignedTags

// EncodeInt64 returns the compressed encoding of v.
func EncodeInt64(v int64) []byte {
	switch {
	case v <= 0x3F && v >= -0x40:
		return packSigned(v, 1)
	case v <= 0x1FFF && v >= -0x2000:
		return packSigned(v, 2)
	case v <= 0xFFFFF && v >= -0x100000:
		return packSigned(v, 3)
	case v <= 0x7FFFFFF && v >= -0x8000000:
		return packSigned(v, 4)
	case v <= 0x3FFFFFFFF && v >= -0x400000000:
		return packSigned(v, 5)
	case v <= 0x1FFFFFFFFFF && v >= -0x20000000000:
		return packSigned(v, 6)
	case v <= 0xFFFFFFFFFFF && v >= -0x1000000000000:
		return packSigned(v, 7)
	case v <= 0x7FFFFFFFFFFFFF && v >= -0x80000000000000:
		buf := make([]byte, 8)
		var full [8]byte
		binary.BigEndian.PutUint64(full[:], uint64(v))
		buf[0] = 0xFE
		copy(buf[1:], full[1:])
		return buf
	default:
		buf := make([]byte, 9)
		buf[0] = 0xFF
		binary.BigEndian.PutUint64(buf[1:], uint64(v))
		return buf
	}
}

func packSigned(v int64, n int) []byte {
	var full [8]byte
	binary.BigEndian.PutUint64(full[:], uint64(v))
	buf := make([]byte, n)
	copy(buf, full[8-n:])
	dataMask := byte((1 << uint(8-n)) - 1)
	buf[0] = (buf[0] & dataMask) | signedTags[n-1]
	return buf
}

// DecodeInt64 decodes a compressed signed integer from the start of buf,
// returning the value and the number of bytes consumed. buf must contain at
// least LenFromLead(buf[0]) bytes.
func DecodeInt64(buf []byte) (int64, int, error) {
	if len(buf) == 0 {
		return 0, 0, ErrTruncated
	}
	n := LenFromLead(buf[0])
	if len(buf) < n {
		return 0, 0, ErrTruncated
	}

	var full [8]byte
	switch {
	case n <= 7:
		dataBitsInLead := uint(8 - n)
		copy(full[8-n:], buf[:n])
		negative := buf[0]&(1<<(dataBitsInLead-1)) != 0
		full[8-n] &= byte((1 << dataBitsInLead) - 1)
		val := int64(binary.BigEndian.Uint64(full[:]))
		if negative {
			val |= -1 << uint(7*n)
		}
		return val, n, nil
	case n == 8:
		copy(full[1:], buf[1:8])
		val := int64(binary.BigEndian.Uint64(full[:]))
		if buf[1]&0x80 != 0 {
			val |= -1 << 56
		}
		return val, 8, nil
	default: // 9
		copy(full[:], buf[1:9])
		return int64(binary.BigEndian.Uint64(full[:])), 9, nil
	}
}

// EncodedLen returns the number of bytes EncodeUint64 would produce for v,
// without allocating.
func EncodedLen(v uint64) int {
	switch {
	case v <= 0x7F:
		return 1
	case v <= 0x3FFF:
		return 2
	case v <= 0x1FFFFF:
		return 3
	case v <= 0xFFFFFFF:
		return 4
	case v <= 0x7FFFFFFFF:
		return 5
	case v <= 0x3FFFFFFFFFF:
		return 6
	case v <= 0x1FFFFFFFFFFFF:
		return 7
	case v <= 0xFFFFFFFFFFFFFF:
		return 8
	default:
		return 9
	}
}
