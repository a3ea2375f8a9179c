package tnl

import "github.com/dekarrin/vnlex/source"

// frame is a value under construction on the Builder's stack: either a
// container (array/object) accepting pushed children, or a pending
// attribute waiting for its single value.
type frame interface {
	push(val *Value) bool
	pushAttribute(name Ident, val *Value) bool
	end(parent frame) bool
}

// valueFrame wraps an in-progress Array or Object value.
type valueFrame struct {
	v *Value
}

func (f valueFrame) push(val *Value) bool {
	switch f.v.Kind {
	case KindArray, KindObject:
		f.v.Elements = append(f.v.Elements, val)
		return true
	default:
		return false
	}
}

func (f valueFrame) pushAttribute(name Ident, val *Value) bool {
	if f.v.Kind != KindObject {
		return false
	}
	return f.v.Attributes.Insert(name, val)
}

func (f valueFrame) end(parent frame) bool {
	return parent.push(f.v)
}

// attrFrame collects the single value to be installed under a pending
// attribute name once ended.
type attrFrame struct {
	name     Ident
	value    *Value
	hasValue bool
}

func (f *attrFrame) push(val *Value) bool {
	if f.hasValue {
		return false
	}
	f.value, f.hasValue = val, true
	return true
}

func (f *attrFrame) pushAttribute(Ident, *Value) bool { return false }

func (f *attrFrame) end(parent frame) bool {
	if !f.hasValue {
		return false
	}
	return parent.pushAttribute(f.name, f.value)
}

// Builder assembles a value tree imperatively: push scalars directly, or
// open an array/object/attribute context with a Begin call and close it
// with End. The finished tree is always rooted at an
// unnamed, un-namespaced Object, matching ParseText's document root.
type Builder struct {
	root  *Value
	stack []frame
}

// NewBuilder returns a Builder with an empty root object.
func NewBuilder() *Builder {
	return &Builder{root: NewObject(source.Location{}, false, "", "", nil, nil)}
}

func (b *Builder) top() frame {
	if len(b.stack) > 0 {
		return b.stack[len(b.stack)-1]
	}
	return valueFrame{v: b.root}
}

func (b *Builder) PushNull() bool { return b.top().push(NewNull(source.Location{})) }

func (b *Builder) PushBool(value bool) bool { return b.top().push(NewBool(source.Location{}, value)) }

func (b *Builder) PushInt(minus bool, magnitude uint64) bool {
	return b.top().push(NewInt(source.Location{}, minus, magnitude))
}

func (b *Builder) PushFloat(value float64) bool {
	return b.top().push(NewFloat(source.Location{}, value))
}

func (b *Builder) PushString(value string) bool {
	return b.top().push(NewString(source.Location{}, value))
}

func (b *Builder) PushIdent(value string) bool {
	return b.top().push(NewIdent(source.Location{}, value))
}

// BeginArray opens a new array context; values pushed until the matching
// End become its elements.
func (b *Builder) BeginArray() {
	b.stack = append(b.stack, valueFrame{v: NewArray(source.Location{}, nil)})
}

// BeginObject opens a new object context.
func (b *Builder) BeginObject(hasNamespace bool, namespace, name string) {
	b.stack = append(b.stack, valueFrame{v: NewObject(source.Location{}, hasNamespace, namespace, name, nil, nil)})
}

// BeginAttribute opens a pending attribute; exactly one value must be
// pushed before the matching End, or End fails.
func (b *Builder) BeginAttribute(name string) {
	b.stack = append(b.stack, &attrFrame{name: Ident{Name: name}})
}

// End closes the innermost open context, installing it into its parent
// (the next frame down, or the root). Reports false if the stack is empty
// or an attribute frame had no value pushed into it.
func (b *Builder) End() bool {
	if len(b.stack) == 0 {
		return false
	}
	n := len(b.stack) - 1
	f := b.stack[n]
	b.stack = b.stack[:n]
	return f.end(b.top())
}

// Build closes any still-open contexts and returns the finished root
// object. The Builder must not be reused afterward.
func (b *Builder) Build() *Value {
	for len(b.stack) > 0 {
		b.End()
	}
	root := b.root
	b.root = nil
	return root
}
