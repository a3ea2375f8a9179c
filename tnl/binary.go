package tnl

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/dekarrin/vnlex/source"
	"github.com/dekarrin/vnlex/vncint"
)

// binaryHeader is the 4-byte signature that marks a buffer as the binary
// encoding rather than TNL source text.
const binaryHeader = "TNL\x00"

// BinaryError reports a failure decoding the binary format: a truncated
// buffer, an out-of-range length-prefixed field, a string-pool index out of
// bounds, or an unrecognized value tag.
type BinaryError struct {
	Pos int
	Msg string
}

func (e *BinaryError) Error() string {
	return fmt.Sprintf("tnl: invalid binary data at byte %d: %s", e.Pos, e.Msg)
}

// Load reads either TNL source text or the binary encoding, auto-detecting
// by the presence of the binary header.
func Load(data []byte) (*Value, error) {
	if len(data) >= 4 && string(data[:4]) == binaryHeader {
		return LoadBinary(data[4:])
	}
	return ParseText(string(data), 0, 0, "")
}

// LoadBinary decodes body (the bytes following the TNL\0 header) into a
// value tree: the string pool, then the root object's body with
// name/namespace omitted, mirroring what SaveBinary writes.
func LoadBinary(body []byte) (*Value, error) {
	r := &byteReader{data: body}

	count, err := r.readCompressedUint()
	if err != nil {
		return nil, err
	}
	if err := r.checkCount(count, 1); err != nil {
		return nil, err
	}

	strs := make([]string, count+1)
	strs[0] = ""
	for i := uint64(1); i <= count; i++ {
		ln, err := r.readCompressedUint()
		if err != nil {
			return nil, err
		}
		if err := r.checkCount(ln, 1); err != nil {
			return nil, err
		}
		s, err := r.readRaw(int(ln))
		if err != nil {
			return nil, err
		}
		strs[i] = s
	}

	return r.readObjectBody(strs, false)
}

// SaveBinary encodes root (expected to be a root Object, as returned by
// ParseText) into the binary format: header, string pool, then the root
// object's body.
func SaveBinary(root *Value) []byte {
	lib := NewStringLibrary()
	body := appendObjectBody(nil, lib, root, false)

	out := make([]byte, 0, len(binaryHeader)+len(body)+32)
	out = append(out, binaryHeader...)
	out = appendCompressedUint(out, uint64(lib.Len()))
	for _, s := range lib.Strings() {
		out = appendCompressedUint(out, uint64(len(s)))
		out = append(out, s...)
	}
	out = append(out, body...)
	return out
}

func appendCompressedUint(buf []byte, v uint64) []byte {
	return append(buf, vncint.EncodeUint64(v)...)
}

// appendObjectBody encodes obj's attributes, elements, and (if
// includeNameNS) its name and namespace. The root object's body omits
// name/namespace; a nested object, written as an attribute
// or array element's value, includes them.
func appendObjectBody(buf []byte, lib *StringLibrary, obj *Value, includeNameNS bool) []byte {
	if includeNameNS {
		buf = appendCompressedUint(buf, uint64(lib.GetIndex(obj.Name)))
		if obj.HasNamespace {
			buf = append(buf, 1)
			buf = appendCompressedUint(buf, uint64(lib.GetIndex(obj.Namespace)))
		} else {
			buf = append(buf, 0)
		}
	}

	buf = appendCompressedUint(buf, uint64(obj.Attributes.Len()))
	obj.Attributes.Each(func(name Ident, v *Value) {
		buf = appendCompressedUint(buf, uint64(lib.GetIndex(name.Name)))
		buf = append(buf, byte(v.Kind))
		buf = appendValueBody(buf, lib, v)
	})

	buf = appendCompressedUint(buf, uint64(len(obj.Elements)))
	for _, e := range obj.Elements {
		buf = append(buf, byte(e.Kind))
		buf = appendValueBody(buf, lib, e)
	}
	return buf
}

func appendValueBody(buf []byte, lib *StringLibrary, v *Value) []byte {
	switch v.Kind {
	case KindNull:
		return buf
	case KindBool:
		if v.Bool {
			return append(buf, 1)
		}
		return append(buf, 0)
	case KindInt:
		if v.IntMinus {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
		return appendCompressedUint(buf, v.IntMagnitude)
	case KindFloat:
		var fbuf [8]byte
		binary.LittleEndian.PutUint64(fbuf[:], math.Float64bits(v.Float))
		return append(buf, fbuf[:]...)
	case KindIdent, KindString:
		return appendCompressedUint(buf, uint64(lib.GetIndex(v.Text)))
	case KindArray:
		buf = appendCompressedUint(buf, uint64(len(v.Elements)))
		for _, e := range v.Elements {
			buf = append(buf, byte(e.Kind))
			buf = appendValueBody(buf, lib, e)
		}
		return buf
	case KindObject:
		return appendObjectBody(buf, lib, v, true)
	default:
		panic(fmt.Sprintf("tnl: unencodable value kind %v", v.Kind))
	}
}

// byteReader walks a binary-encoded buffer, tracking position for
// BinaryError reporting.
type byteReader struct {
	data []byte
	pos  int
}

func (r *byteReader) errorf(format string, args ...interface{}) error {
	return &BinaryError{Pos: r.pos, Msg: fmt.Sprintf(format, args...)}
}

func (r *byteReader) readByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, r.errorf("truncated")
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *byteReader) readRaw(n int) (string, error) {
	if n < 0 || r.pos+n > len(r.data) {
		return "", r.errorf("truncated")
	}
	s := string(r.data[r.pos : r.pos+n])
	r.pos += n
	return s, nil
}

func (r *byteReader) readCompressedUint() (uint64, error) {
	if r.pos >= len(r.data) {
		return 0, r.errorf("truncated")
	}
	v, n, err := vncint.DecodeUint64(r.data[r.pos:])
	if err != nil {
		return 0, r.errorf("truncated compressed integer")
	}
	r.pos += n
	return v, nil
}

func (r *byteReader) readFloat64() (float64, error) {
	if r.pos+8 > len(r.data) {
		return 0, r.errorf("truncated")
	}
	bits := binary.LittleEndian.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8
	return math.Float64frombits(bits), nil
}

// checkCount rejects a length-prefixed count that could not possibly be
// backed by the data remaining in the buffer, given that each element takes
// at least minPerElem bytes. This catches a corrupt or hostile oversized
// count before it is used to size an allocation.
func (r *byteReader) checkCount(count uint64, minPerElem int) error {
	remaining := uint64(len(r.data) - r.pos)
	if count > remaining/uint64(minPerElem) {
		return r.errorf("count %d exceeds remaining data", count)
	}
	return nil
}

func (r *byteReader) lookupString(strs []string, idx uint64) (string, error) {
	if idx >= uint64(len(strs)) {
		return "", r.errorf("string pool index %d out of range", idx)
	}
	return strs[idx], nil
}

func (r *byteReader) readObjectBody(strs []string, includeNameNS bool) (*Value, error) {
	loc := source.Location{}
	name, ns := "", ""
	hasNS := false

	if includeNameNS {
		nameIdx, err := r.readCompressedUint()
		if err != nil {
			return nil, err
		}
		name, err = r.lookupString(strs, nameIdx)
		if err != nil {
			return nil, err
		}
		nsFlag, err := r.readByte()
		if err != nil {
			return nil, err
		}
		if nsFlag != 0 {
			hasNS = true
			nsIdx, err := r.readCompressedUint()
			if err != nil {
				return nil, err
			}
			ns, err = r.lookupString(strs, nsIdx)
			if err != nil {
				return nil, err
			}
		}
	}

	attrCount, err := r.readCompressedUint()
	if err != nil {
		return nil, err
	}
	if err := r.checkCount(attrCount, 2); err != nil {
		return nil, err
	}
	attrs := NewAttributes()
	for i := uint64(0); i < attrCount; i++ {
		nameIdx, err := r.readCompressedUint()
		if err != nil {
			return nil, err
		}
		attrName, err := r.lookupString(strs, nameIdx)
		if err != nil {
			return nil, err
		}
		tag, err := r.readByte()
		if err != nil {
			return nil, err
		}
		val, err := r.readValueBody(strs, ValueKind(tag))
		if err != nil {
			return nil, err
		}
		if !attrs.Insert(Ident{Name: attrName}, val) {
			return nil, r.errorf("duplicate attribute %q", attrName)
		}
	}

	elemCount, err := r.readCompressedUint()
	if err != nil {
		return nil, err
	}
	if err := r.checkCount(elemCount, 1); err != nil {
		return nil, err
	}
	elements := make([]*Value, elemCount)
	for i := range elements {
		tag, err := r.readByte()
		if err != nil {
			return nil, err
		}
		v, err := r.readValueBody(strs, ValueKind(tag))
		if err != nil {
			return nil, err
		}
		elements[i] = v
	}

	return NewObject(loc, hasNS, ns, name, attrs, elements), nil
}

func (r *byteReader) readValueBody(strs []string, kind ValueKind) (*Value, error) {
	loc := source.Location{}
	switch kind {
	case KindNull:
		return NewNull(loc), nil
	case KindBool:
		b, err := r.readByte()
		if err != nil {
			return nil, err
		}
		return NewBool(loc, b != 0), nil
	case KindInt:
		sign, err := r.readByte()
		if err != nil {
			return nil, err
		}
		mag, err := r.readCompressedUint()
		if err != nil {
			return nil, err
		}
		return NewInt(loc, sign != 0, mag), nil
	case KindFloat:
		f, err := r.readFloat64()
		if err != nil {
			return nil, err
		}
		return NewFloat(loc, f), nil
	case KindIdent:
		idx, err := r.readCompressedUint()
		if err != nil {
			return nil, err
		}
		s, err := r.lookupString(strs, idx)
		if err != nil {
			return nil, err
		}
		return NewIdent(loc, s), nil
	case KindString:
		idx, err := r.readCompressedUint()
		if err != nil {
			return nil, err
		}
		s, err := r.lookupString(strs, idx)
		if err != nil {
			return nil, err
		}
		return NewString(loc, s), nil
	case KindArray:
		n, err := r.readCompressedUint()
		if err != nil {
			return nil, err
		}
		if err := r.checkCount(n, 1); err != nil {
			return nil, err
		}
		elements := make([]*Value, n)
		for i := range elements {
			tag, err := r.readByte()
			if err != nil {
				return nil, err
			}
			v, err := r.readValueBody(strs, ValueKind(tag))
			if err != nil {
				return nil, err
			}
			elements[i] = v
		}
		return NewArray(loc, elements), nil
	case KindObject:
		return r.readObjectBody(strs, true)
	default:
		return nil, r.errorf("unknown value tag %d", int(kind))
	}
}
