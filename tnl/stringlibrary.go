package tnl

// StringLibrary is an insertion-ordered string interner used by the binary
// codec: index 0 is reserved for the empty string and
// is never written to the pool; GetIndex is idempotent per distinct string.
type StringLibrary struct {
	strings []string
	index   map[string]int
}

// NewStringLibrary returns a library with only the implicit empty string at
// index 0.
func NewStringLibrary() *StringLibrary {
	return &StringLibrary{strings: []string{""}, index: map[string]int{"": 0}}
}

// GetIndex returns s's pool index, inserting it if this is the first time s
// has been seen.
func (l *StringLibrary) GetIndex(s string) int {
	if i, ok := l.index[s]; ok {
		return i
	}
	i := len(l.strings)
	l.strings = append(l.strings, s)
	l.index[s] = i
	return i
}

// String returns the string at index i, or false if i is out of range.
func (l *StringLibrary) String(i int) (string, bool) {
	if i < 0 || i >= len(l.strings) {
		return "", false
	}
	return l.strings[i], true
}

// Strings returns the pool's entries after the implicit empty string, in
// insertion order: this is exactly what gets length-prefixed into the
// binary format's string-pool section.
func (l *StringLibrary) Strings() []string {
	return l.strings[1:]
}

// Len returns the number of distinct non-empty-string entries recorded
//.
func (l *StringLibrary) Len() int {
	return len(l.strings) - 1
}
