package grammar

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/dekarrin/vnlex/lex"
)

// Description is a complete syntax description parsed from one or more
// `.lex` files: the set of non-terminals, the terminals they
// reference, and the declared entry roots.
type Description struct {
	NonTerminals map[string]*NonTerminal
	order        []string // insertion order, for deterministic iteration

	terminals map[string]*Terminal // keyed by TerminalRef.key()
	Terminals []*Terminal          // populated (sorted by id) by Finalize

	EntryNames []string

	Interner *Interner

	imported map[string]bool // absolute paths already merged, for import idempotence
}

// NewDescription returns an empty Description ready to accept declarations.
func NewDescription() *Description {
	return &Description{
		NonTerminals: make(map[string]*NonTerminal),
		terminals:    make(map[string]*Terminal),
		Interner:     NewInterner(),
		imported:     make(map[string]bool),
	}
}

// NonTerminal returns (creating if necessary) the named non-terminal.
func (d *Description) NonTerminal(name string) *NonTerminal {
	nt, ok := d.NonTerminals[name]
	if !ok {
		nt = &NonTerminal{Name: name}
		d.NonTerminals[name] = nt
		d.order = append(d.order, name)
	}
	return nt
}

// DeclareInput registers an explicitly declared input terminal (`@name =
// kind ;`). Re-declaring the same name with the same kind is allowed; a
// conflicting re-declaration is an error.
func (d *Description) DeclareInput(name string, kind lex.Kind) error {
	ref := TerminalRef{Kind: RefInput, Text: name}
	if existing, ok := d.terminals[ref.key()]; ok {
		if existing.DataKind != kind {
			return fmt.Errorf("input terminal %q already declared with a different kind", name)
		}
		return nil
	}
	d.terminals[ref.key()] = &Terminal{Ref: ref, DataKind: kind}
	return nil
}

// resolveInputKind looks up a used-but-not-declared input terminal's kind
// among the predefined names.
func (d *Description) resolveInputKind(name string) (lex.Kind, bool) {
	if t, ok := d.terminals[(TerminalRef{Kind: RefInput, Text: name}).key()]; ok {
		return t.DataKind, true
	}
	k, ok := predefinedInputKinds[name]
	return k, ok
}

// useTerminal registers (if not already present) the terminal named by ref,
// returning it. Input terminals must already be resolvable (declared or
// predefined); callers should have validated that before calling.
func (d *Description) useTerminal(ref TerminalRef) *Terminal {
	key := ref.key()
	if t, ok := d.terminals[key]; ok {
		return t
	}
	t := &Terminal{Ref: ref}
	d.terminals[key] = t
	return t
}

// Finalize assigns terminal ids in sorted textual order,
// defaults the entry root to a non-terminal named "script" when none was
// declared, groups each non-terminal's productions into reductions, and
// validates the invariants of §3.2: every referenced non-terminal has at
// least one production, and every referenced input name has been declared or
// is one of the predefined kinds.
func (d *Description) Finalize() error {
	if len(d.EntryNames) == 0 {
		if _, ok := d.NonTerminals["script"]; ok {
			d.EntryNames = []string{"script"}
		}
	}
	for _, name := range d.EntryNames {
		nt, ok := d.NonTerminals[name]
		if !ok {
			return fmt.Errorf("entry non-terminal %q has no productions", name)
		}
		nt.Entry = true
	}
	if len(d.EntryNames) == 0 {
		return fmt.Errorf("grammar has no entry non-terminal")
	}

	var missing []string
	for _, name := range d.order {
		nt := d.NonTerminals[name]
		if len(nt.Productions) == 0 {
			missing = append(missing, name)
		}
	}
	for _, p := range d.allProductions() {
		for i := range p.Items {
			it := &p.Items[i]
			if it.Kind == ItemNonTerminal {
				if _, ok := d.NonTerminals[it.NonTerminal]; ok {
					continue
				}
				// a bare name that is not a non-terminal but names a declared
				// or predefined input refers to that input terminal.
				if _, isInput := d.resolveInputKind(it.NonTerminal); !isInput || it.SetBuilder != nil {
					missing = append(missing, it.NonTerminal)
					continue
				}
				*it = Item{Kind: ItemTerminal, Terminal: TerminalRef{Kind: RefInput, Text: it.NonTerminal}, RequireFollows: it.RequireFollows, Lookahead: it.Lookahead}
			} else if it.Terminal.Kind == RefInput {
				if _, ok := d.resolveInputKind(it.Terminal.Text); !ok {
					missing = append(missing, "@"+it.Terminal.Text)
					continue
				}
			}
			d.useTerminal(it.Terminal)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("grammar build failed: missing symbols: %v", dedupe(missing))
	}

	// assign sorted terminal ids, non-zero, starting at 1.
	keys := make([]string, 0, len(d.terminals))
	for k := range d.terminals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	d.Terminals = make([]*Terminal, 0, len(keys))
	for i, k := range keys {
		t := d.terminals[k]
		t.ID = uint32(i + 1)
		if t.Ref.Kind == RefInput && t.DataKind == 0 {
			if kind, ok := d.resolveInputKind(t.Ref.Text); ok {
				t.DataKind = kind
			}
		}
		d.Terminals = append(d.Terminals, t)
	}

	for _, name := range d.order {
		d.NonTerminals[name].assignReductions()
	}
	// non-terminal ids are assigned in declaration order; stable but not
	// otherwise semantically meaningful.
	for i, name := range d.order {
		d.NonTerminals[name].ID = uint32(i + 1)
	}

	return nil
}

func (d *Description) allProductions() []*Production {
	var out []*Production
	for _, name := range d.order {
		out = append(out, d.NonTerminals[name].Productions...)
	}
	return out
}

func dedupe(in []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// ResolveImportPath resolves a `mod x;` import relative to baseDir: either
// "x.lex" or "x/mod.lex". It returns the absolute path
// of whichever candidate exists.
func ResolveImportPath(baseDir, name string) (string, error) {
	direct := filepath.Join(baseDir, name+".lex")
	if abs, err := filepath.Abs(direct); err == nil {
		if fileExists(abs) {
			return abs, nil
		}
	}
	nested := filepath.Join(baseDir, name, "mod.lex")
	if abs, err := filepath.Abs(nested); err == nil {
		if fileExists(abs) {
			return abs, nil
		}
	}
	return "", fmt.Errorf("cannot resolve import %q relative to %q", name, baseDir)
}

// TerminalFor looks up the fully resolved Terminal (with its assigned id
// and, for Input terminals, its DataKind) for ref. It is only meaningful
// after Finalize has run.
func (d *Description) TerminalFor(ref TerminalRef) (*Terminal, bool) {
	t, ok := d.terminals[ref.key()]
	return t, ok
}

// MarkImported records path as loaded and reports whether it was already
// loaded: each import path is loaded at most once, deduplicated by
// absolute path.
func (d *Description) MarkImported(path string) (alreadyLoaded bool) {
	if d.imported[path] {
		return true
	}
	d.imported[path] = true
	return false
}
