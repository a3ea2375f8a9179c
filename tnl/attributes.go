package tnl

import "github.com/dekarrin/vnlex/source"

// Ident is an attribute's name: an identifier together with the source
// location it was written at.
type Ident struct {
	Location source.Location
	Name     string
}

type attrEntry struct {
	Name  Ident
	Value *Value
}

// Attributes is an ordered map from identifier to Value:
// insertion order is preserved on iteration, lookup by name is O(1), and
// re-inserting an already-present name is rejected rather than overwriting
//.
type Attributes struct {
	entries []attrEntry
	index   map[string]int
}

// NewAttributes returns an empty Attributes map.
func NewAttributes() *Attributes {
	return &Attributes{index: make(map[string]int)}
}

// Len reports the number of attributes.
func (a *Attributes) Len() int { return len(a.entries) }

// IsEmpty reports whether a has no attributes.
func (a *Attributes) IsEmpty() bool { return len(a.entries) == 0 }

// Get returns the value stored under name, if any.
func (a *Attributes) Get(name string) (*Value, bool) {
	i, ok := a.index[name]
	if !ok {
		return nil, false
	}
	return a.entries[i].Value, true
}

// GetIdent returns the located Ident that name was inserted under, if any
// (useful for pointing a diagnostic at the attribute's own declaration).
func (a *Attributes) GetIdent(name string) (Ident, bool) {
	i, ok := a.index[name]
	if !ok {
		return Ident{}, false
	}
	return a.entries[i].Name, true
}

// Insert adds name:value, returning false without modifying a if name is
// already present.
func (a *Attributes) Insert(name Ident, value *Value) bool {
	if _, exists := a.index[name.Name]; exists {
		return false
	}
	a.index[name.Name] = len(a.entries)
	a.entries = append(a.entries, attrEntry{Name: name, Value: value})
	return true
}

// Each calls fn once per attribute, in insertion order.
func (a *Attributes) Each(fn func(name Ident, value *Value)) {
	for _, e := range a.entries {
		fn(e.Name, e.Value)
	}
}

// Names returns the attribute names in insertion order.
func (a *Attributes) Names() []string {
	out := make([]string, len(a.entries))
	for i, e := range a.entries {
		out[i] = e.Name.Name
	}
	return out
}

func (a *Attributes) deepCopy() *Attributes {
	cp := &Attributes{
		entries: make([]attrEntry, len(a.entries)),
		index:   make(map[string]int, len(a.index)),
	}
	for i, e := range a.entries {
		cp.entries[i] = attrEntry{Name: e.Name, Value: e.Value.DeepCopy()}
	}
	for k, v := range a.index {
		cp.index[k] = v
	}
	return cp
}
