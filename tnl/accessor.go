package tnl

import (
	"fmt"
	"reflect"

	"github.com/dekarrin/vnlex/source"
)

// AccessErrorKind classifies an AccessError.
type AccessErrorKind int

const (
	WrongType AccessErrorKind = iota
	WrongType2
	OutOfRangeFor
	IndexOutOfRange
	AttributeNotFound
)

// AccessError reports a typed-access failure against a value tree: a type
// mismatch, an out-of-range numeric coercion, an out-of-bounds array index,
// or a missing attribute name.
type AccessError struct {
	Location source.Location
	Kind     AccessErrorKind

	Expect  ValueKind
	Expect2 ValueKind
	Found   ValueKind

	RangeType string

	Index, Len int

	Name string
}

func (e *AccessError) Error() string {
	loc := e.Location.Path
	var where string
	if loc != "" {
		where = fmt.Sprintf("%s:", loc)
	}
	if e.Location.StartRow == e.Location.EndRow && e.Location.StartCol == e.Location.EndCol {
		where += fmt.Sprintf("%d:%d", e.Location.StartRow+1, e.Location.StartCol+1)
	} else {
		where += fmt.Sprintf("%d:%d-%d:%d", e.Location.StartRow+1, e.Location.StartCol+1, e.Location.EndRow+1, e.Location.EndCol+1)
	}

	switch e.Kind {
	case WrongType:
		return fmt.Sprintf("%s: expect %s, found %s", where, e.Expect, e.Found)
	case WrongType2:
		return fmt.Sprintf("%s: expect %s or %s, found %s", where, e.Expect, e.Expect2, e.Found)
	case OutOfRangeFor:
		return fmt.Sprintf("%s: out of range for %s", where, e.RangeType)
	case IndexOutOfRange:
		return fmt.Sprintf("%s: index(%d) out of range(0..%d)", where, e.Index, e.Len)
	case AttributeNotFound:
		return fmt.Sprintf("%s: attribute %q not found", where, e.Name)
	default:
		return fmt.Sprintf("%s: access error", where)
	}
}

// Accessor is a thin, by-value wrapper providing the typed-extraction
// surface over a *Value.
type Accessor struct {
	v *Value
}

// Access wraps v for typed access.
func Access(v *Value) Accessor { return Accessor{v: v} }

func (a Accessor) wrongType(expect ValueKind) error {
	return &AccessError{Location: a.v.Location, Kind: WrongType, Expect: expect, Found: a.v.Kind}
}

func (a Accessor) wrongType2(expect, expect2 ValueKind) error {
	return &AccessError{Location: a.v.Location, Kind: WrongType2, Expect: expect, Expect2: expect2, Found: a.v.Kind}
}

func (a Accessor) outOfRange(rangeType string) error {
	return &AccessError{Location: a.v.Location, Kind: OutOfRangeFor, RangeType: rangeType}
}

// IsNull reports whether the accessed value is null.
func (a Accessor) IsNull() bool { return a.v.IsNull() }

func (a Accessor) AsBool() (bool, error) {
	if a.v.Kind != KindBool {
		return false, a.wrongType(KindBool)
	}
	return a.v.Bool, nil
}

func (a Accessor) AsI8() (int8, error) {
	n, ok := a.v.ToI8()
	return n, a.intResult(ok, "i8")
}

func (a Accessor) AsU8() (uint8, error) {
	n, ok := a.v.ToU8()
	return n, a.intResult(ok, "u8")
}

func (a Accessor) AsI16() (int16, error) {
	n, ok := a.v.ToI16()
	return n, a.intResult(ok, "i16")
}

func (a Accessor) AsU16() (uint16, error) {
	n, ok := a.v.ToU16()
	return n, a.intResult(ok, "u16")
}

func (a Accessor) AsI32() (int32, error) {
	n, ok := a.v.ToI32()
	return n, a.intResult(ok, "i32")
}

func (a Accessor) AsU32() (uint32, error) {
	n, ok := a.v.ToU32()
	return n, a.intResult(ok, "u32")
}

func (a Accessor) AsI64() (int64, error) {
	n, ok := a.v.ToI64()
	return n, a.intResult(ok, "i64")
}

func (a Accessor) AsU64() (uint64, error) {
	n, ok := a.v.ToU64()
	return n, a.intResult(ok, "u64")
}

// intResult reports the wrong-type vs. out-of-range distinction shared by
// every AsIN/AsUN method: a non-Int value is a type error, an Int value
// whose magnitude does not fit the width is a range error.
func (a Accessor) intResult(ok bool, rangeType string) error {
	if ok {
		return nil
	}
	if a.v.Kind != KindInt {
		return a.wrongType(KindInt)
	}
	return a.outOfRange(rangeType)
}

func (a Accessor) AsF32() (float32, error) {
	switch a.v.Kind {
	case KindFloat:
		return float32(a.v.Float), nil
	case KindInt:
		if a.v.IntMinus {
			return -float32(a.v.IntMagnitude), nil
		}
		return float32(a.v.IntMagnitude), nil
	default:
		return 0, a.wrongType2(KindInt, KindFloat)
	}
}

func (a Accessor) AsF64() (float64, error) {
	switch a.v.Kind {
	case KindFloat:
		return a.v.Float, nil
	case KindInt:
		if a.v.IntMinus {
			return -float64(a.v.IntMagnitude), nil
		}
		return float64(a.v.IntMagnitude), nil
	default:
		return 0, a.wrongType2(KindInt, KindFloat)
	}
}

func (a Accessor) AsIdent() (string, error) {
	if a.v.Kind != KindIdent {
		return "", a.wrongType(KindIdent)
	}
	return a.v.Text, nil
}

// AsStr accepts either an Ident or a String value: the
// distinction matters at the grammar layer, not to most consumers.
func (a Accessor) AsStr() (string, error) {
	switch a.v.Kind {
	case KindString, KindIdent:
		return a.v.Text, nil
	default:
		return "", a.wrongType2(KindString, KindIdent)
	}
}

// AsArray accepts an Array value, or an Object's own positional base array.
func (a Accessor) AsArray() (ArrayAccessor, error) {
	switch a.v.Kind {
	case KindArray, KindObject:
		return ArrayAccessor{v: a.v}, nil
	default:
		return ArrayAccessor{}, a.wrongType2(KindArray, KindObject)
	}
}

func (a Accessor) AsObject() (ObjectAccessor, error) {
	if a.v.Kind != KindObject {
		return ObjectAccessor{}, a.wrongType(KindObject)
	}
	return ObjectAccessor{v: a.v}, nil
}

// ArrayAccessor indexes an Array (or an Object's base array) by position.
type ArrayAccessor struct {
	v *Value
}

func (a ArrayAccessor) Len() int { return len(a.v.Elements) }

func (a ArrayAccessor) Index(index int) (Accessor, error) {
	if index < 0 || index >= len(a.v.Elements) {
		return Accessor{}, &AccessError{Location: a.v.Location, Kind: IndexOutOfRange, Index: index, Len: len(a.v.Elements)}
	}
	return Accessor{v: a.v.Elements[index]}, nil
}

// ObjectAccessor indexes an Object's base array by position and its
// attributes by name.
type ObjectAccessor struct {
	v *Value
}

func (o ObjectAccessor) Len() int { return len(o.v.Elements) }

func (o ObjectAccessor) Index(index int) (Accessor, error) {
	if index < 0 || index >= len(o.v.Elements) {
		return Accessor{}, &AccessError{Location: o.v.Location, Kind: IndexOutOfRange, Index: index, Len: len(o.v.Elements)}
	}
	return Accessor{v: o.v.Elements[index]}, nil
}

func (o ObjectAccessor) Attribute(name string) (Accessor, error) {
	val, ok := o.v.Attributes.Get(name)
	if !ok {
		return Accessor{}, &AccessError{Location: o.v.Location, Kind: AttributeNotFound, Name: name}
	}
	return Accessor{v: val}, nil
}

func (o ObjectAccessor) OptionalAttribute(name string) (Accessor, bool) {
	val, ok := o.v.Attributes.Get(name)
	if !ok {
		return Accessor{}, false
	}
	return Accessor{v: val}, true
}

// scalar bounds the Go types Into can extract directly from a Value.
type scalar interface {
	bool | int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64 | string
}

// Into extracts a scalar Go value of type T from v, following the same
// coercion rules as the named AsX accessor methods.
func Into[T scalar](v *Value) (T, error) {
	var zero T
	a := Access(v)
	kind := reflect.TypeOf(zero).Kind()

	switch kind {
	case reflect.Bool:
		b, err := a.AsBool()
		return any(b).(T), err
	case reflect.Int8:
		n, err := a.AsI8()
		return any(n).(T), err
	case reflect.Int16:
		n, err := a.AsI16()
		return any(n).(T), err
	case reflect.Int32:
		n, err := a.AsI32()
		return any(n).(T), err
	case reflect.Int64:
		n, err := a.AsI64()
		return any(n).(T), err
	case reflect.Uint8:
		n, err := a.AsU8()
		return any(n).(T), err
	case reflect.Uint16:
		n, err := a.AsU16()
		return any(n).(T), err
	case reflect.Uint32:
		n, err := a.AsU32()
		return any(n).(T), err
	case reflect.Uint64:
		n, err := a.AsU64()
		return any(n).(T), err
	case reflect.Float32:
		f, err := a.AsF32()
		return any(f).(T), err
	case reflect.Float64:
		f, err := a.AsF64()
		return any(f).(T), err
	case reflect.String:
		s, err := a.AsStr()
		return any(s).(T), err
	default:
		return zero, fmt.Errorf("tnl: unsupported Into target kind %s", kind)
	}
}
