package grammar

import (
	"sort"
	"strings"
)

// InstanceSet is an interned unordered set of string flags attached to a
// non-terminal reference. Two InstanceSets with identical
// contents are always the same pointer, so callers may compare sets with
// ==.
type InstanceSet struct {
	key   string
	flags map[string]bool
}

// Contains reports whether name is a member of the set. A nil set contains
// nothing (the empty instance set).
func (s *InstanceSet) Contains(name string) bool {
	if s == nil {
		return false
	}
	return s.flags[name]
}

// Key returns the set's canonical interning key (sorted, comma-joined
// contents), useful for debug output.
func (s *InstanceSet) Key() string {
	if s == nil {
		return ""
	}
	return s.key
}

func canonicalKey(names []string) string {
	uniq := make(map[string]bool, len(names))
	for _, n := range names {
		uniq[n] = true
	}
	sorted := make([]string, 0, len(uniq))
	for n := range uniq {
		sorted = append(sorted, n)
	}
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

// Interner hash-conses InstanceSets by their canonical contents (design note
// §9's "instance-set interning"): every identical set resolves to the same
// handle.
type Interner struct {
	pool map[string]*InstanceSet
}

// NewInterner returns an Interner whose empty set is the nil *InstanceSet.
func NewInterner() *Interner {
	return &Interner{pool: make(map[string]*InstanceSet)}
}

// Intern returns the canonical *InstanceSet for the given flags, creating it
// if this is the first time this exact content has been seen. An empty
// names slice interns to nil.
func (in *Interner) Intern(names []string) *InstanceSet {
	if len(names) == 0 {
		return nil
	}
	key := canonicalKey(names)
	if key == "" {
		return nil
	}
	if existing, ok := in.pool[key]; ok {
		return existing
	}
	flags := make(map[string]bool)
	for _, n := range names {
		flags[n] = true
	}
	s := &InstanceSet{key: key, flags: flags}
	in.pool[key] = s
	return s
}

// SetBuilderKind identifies which shape of instance-set builder an Item
// reference carries.
type SetBuilderKind int

const (
	// BuildEmpty always yields the empty set, ignoring the inherited set.
	BuildEmpty SetBuilderKind = iota
	// BuildLiteral always yields the interning of its fixed list, ignoring
	// the inherited set.
	BuildLiteral
	// BuildModifier adds Add and removes Remove from the inherited set.
	BuildModifier
)

// SetBuilder constructs an InstanceSet for a non-terminal reference, either
// from scratch or by modifying the set inherited from the production being
// closed over.
type SetBuilder struct {
	Kind   SetBuilderKind
	Flags  []string // for BuildLiteral
	Add    []string // for BuildModifier
	Remove []string // for BuildModifier
}

// Build applies the builder to an inherited set, returning the resulting
// interned set.
func (b *SetBuilder) Build(in *Interner, inherited *InstanceSet) *InstanceSet {
	if b == nil {
		return inherited
	}
	switch b.Kind {
	case BuildEmpty:
		return nil
	case BuildLiteral:
		return in.Intern(b.Flags)
	case BuildModifier:
		names := make(map[string]bool)
		if inherited != nil {
			for n := range inherited.flags {
				names[n] = true
			}
		}
		for _, n := range b.Add {
			names[n] = true
		}
		for _, n := range b.Remove {
			delete(names, n)
		}
		out := make([]string, 0, len(names))
		for n := range names {
			out = append(out, n)
		}
		return in.Intern(out)
	default:
		return inherited
	}
}

// Guard tests membership of a single flag in an inherited instance set
//.
type Guard struct {
	Negate bool
	Flag   string
}

// Evaluate reports whether set satisfies the guard.
func (g *Guard) Evaluate(set *InstanceSet) bool {
	if g == nil {
		return true
	}
	has := set.Contains(g.Flag)
	if g.Negate {
		return !has
	}
	return has
}
