// Package tnl implements the typed configuration value language ("TNL"):
// an 8-variant value tree, a text grammar bound to the grammar/lr toolkit, a
// compact binary codec, and accessor/builder helpers.
package tnl

import (
	"fmt"

	"github.com/dekarrin/vnlex/source"
)

// ValueKind is the 8-value tag stable in the binary format.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindIdent
	KindString
	KindArray
	KindObject
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindIdent:
		return "ident"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("valuekind(%d)", int(k))
	}
}

// Value is a single node of the value tree. Rather than the one-interface-
// per-variant shape of a polymorphic visitor, it is a tagged union keyed by
// Kind, in the same spirit as lr.Node's leaf/nonterminal tag (design note
// §9: "prefer a sum type... over open polymorphism").
//
// Only the fields relevant to Kind are meaningful; the rest are zero.
type Value struct {
	Kind     ValueKind
	Location source.Location

	Bool bool

	// Integer is stored sign-magnitude: IntMinus true with
	// IntMagnitude 0 is "-0", numerically equal to "+0".
	IntMinus     bool
	IntMagnitude uint64

	Float float64

	// Text carries an Ident's or String's content.
	Text string

	// Elements is an Array's ordered children, or (when Kind is KindObject)
	// the object's positional base array.
	Elements []*Value

	// Object-only fields.
	HasNamespace bool
	Namespace    string
	Name         string
	Attributes   *Attributes
}

func NewNull(loc source.Location) *Value {
	return &Value{Kind: KindNull, Location: loc}
}

func NewBool(loc source.Location, b bool) *Value {
	return &Value{Kind: KindBool, Location: loc, Bool: b}
}

func NewInt(loc source.Location, minus bool, magnitude uint64) *Value {
	return &Value{Kind: KindInt, Location: loc, IntMinus: minus, IntMagnitude: magnitude}
}

func NewFloat(loc source.Location, f float64) *Value {
	return &Value{Kind: KindFloat, Location: loc, Float: f}
}

func NewIdent(loc source.Location, s string) *Value {
	return &Value{Kind: KindIdent, Location: loc, Text: s}
}

func NewString(loc source.Location, s string) *Value {
	return &Value{Kind: KindString, Location: loc, Text: s}
}

func NewArray(loc source.Location, elements []*Value) *Value {
	return &Value{Kind: KindArray, Location: loc, Elements: elements}
}

// NewObject builds an Object value. name is "" for an unnamed (anonymous)
// object; hasNamespace distinguishes a declared-but-empty namespace from no
// namespace at all, though TNL's grammar never actually produces the former.
func NewObject(loc source.Location, hasNamespace bool, namespace, name string, attrs *Attributes, elements []*Value) *Value {
	if attrs == nil {
		attrs = NewAttributes()
	}
	return &Value{
		Kind:         KindObject,
		Location:     loc,
		HasNamespace: hasNamespace,
		Namespace:    namespace,
		Name:         name,
		Attributes:   attrs,
		Elements:     elements,
	}
}

// IsNull reports whether v is the null value (or v itself is nil).
func (v *Value) IsNull() bool {
	return v == nil || v.Kind == KindNull
}

// signedValue returns the mathematical integer represented by v's sign and
// magnitude. Only meaningful when v.Kind == KindInt.
func (v *Value) signedValue() (neg bool, magnitude uint64) {
	return v.IntMinus, v.IntMagnitude
}

func coerceSigned(minus bool, magnitude uint64, bits uint) (int64, bool) {
	limit := uint64(1) << (bits - 1)
	if minus {
		if magnitude > limit {
			return 0, false
		}
		return -int64(magnitude), true
	}
	if magnitude > limit-1 {
		return 0, false
	}
	return int64(magnitude), true
}

func coerceUnsigned(minus bool, magnitude uint64, bits uint) (uint64, bool) {
	if minus {
		return 0, magnitude == 0
	}
	if bits < 64 && magnitude > (uint64(1)<<bits)-1 {
		return 0, false
	}
	return magnitude, true
}

// ToI8, ToU8, ... ToI64, ToU64 convert an Integer value to a fixed-width Go
// integer, succeeding iff the mathematical value is in that width's range
//.
func (v *Value) ToI8() (int8, bool) {
	if v.Kind != KindInt {
		return 0, false
	}
	n, ok := coerceSigned(v.IntMinus, v.IntMagnitude, 8)
	return int8(n), ok
}

func (v *Value) ToU8() (uint8, bool) {
	if v.Kind != KindInt {
		return 0, false
	}
	n, ok := coerceUnsigned(v.IntMinus, v.IntMagnitude, 8)
	return uint8(n), ok
}

func (v *Value) ToI16() (int16, bool) {
	if v.Kind != KindInt {
		return 0, false
	}
	n, ok := coerceSigned(v.IntMinus, v.IntMagnitude, 16)
	return int16(n), ok
}

func (v *Value) ToU16() (uint16, bool) {
	if v.Kind != KindInt {
		return 0, false
	}
	n, ok := coerceUnsigned(v.IntMinus, v.IntMagnitude, 16)
	return uint16(n), ok
}

func (v *Value) ToI32() (int32, bool) {
	if v.Kind != KindInt {
		return 0, false
	}
	n, ok := coerceSigned(v.IntMinus, v.IntMagnitude, 32)
	return int32(n), ok
}

func (v *Value) ToU32() (uint32, bool) {
	if v.Kind != KindInt {
		return 0, false
	}
	n, ok := coerceUnsigned(v.IntMinus, v.IntMagnitude, 32)
	return uint32(n), ok
}

func (v *Value) ToI64() (int64, bool) {
	if v.Kind != KindInt {
		return 0, false
	}
	return coerceSigned(v.IntMinus, v.IntMagnitude, 64)
}

func (v *Value) ToU64() (uint64, bool) {
	if v.Kind != KindInt {
		return 0, false
	}
	return coerceUnsigned(v.IntMinus, v.IntMagnitude, 64)
}

// DeepCopy returns a value tree with no shared pointers to v's tree, for
// callers that need to outlive the buffer v borrows from.
func (v *Value) DeepCopy() *Value {
	if v == nil {
		return nil
	}
	cp := *v
	if v.Elements != nil {
		cp.Elements = make([]*Value, len(v.Elements))
		for i, e := range v.Elements {
			cp.Elements[i] = e.DeepCopy()
		}
	}
	if v.Attributes != nil {
		cp.Attributes = v.Attributes.deepCopy()
	}
	return &cp
}
