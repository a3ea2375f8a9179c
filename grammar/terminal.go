// Package grammar implements the build-time grammar description: terminals,
// non-terminals, productions, instance sets and their interning, and the
// `.lex` front-end that parses grammar text into a Description.
package grammar

import "github.com/dekarrin/vnlex/lex"

// RefKind identifies which of the three terminal-symbol shapes a TerminalRef
// names.
type RefKind int

const (
	RefKeyword RefKind = iota
	RefSymbol
	RefInput
)

// TerminalRef names a terminal symbol before ids have been assigned:
// a keyword's literal text, a symbol's single character, or a declared input
// terminal's name.
type TerminalRef struct {
	Kind RefKind
	Text string // keyword literal text, or input terminal name
	Char rune   // symbol character, valid only when Kind == RefSymbol
}

// key returns the canonical textual form used both for the terminal id map
// and for sorted-assignment ordering: ids are assigned in sorted order of
// this textual form.
func (r TerminalRef) key() string {
	switch r.Kind {
	case RefSymbol:
		return string(r.Char)
	case RefInput:
		return "@" + r.Text
	default:
		return r.Text
	}
}

// Terminal is a fully resolved terminal symbol: a TerminalRef plus the
// non-zero id assigned to it during Description.Finalize, and (for Input
// terminals) the lexical Kind it is bound to.
type Terminal struct {
	Ref      TerminalRef
	ID       uint32
	DataKind lex.Kind
}

func (t *Terminal) String() string {
	switch t.Ref.Kind {
	case RefKeyword:
		return "\"" + t.Ref.Text + "\""
	case RefSymbol:
		return "'" + string(t.Ref.Char) + "'"
	default:
		return "@" + t.Ref.Text
	}
}

// predefinedInputKinds maps the built-in input terminal names to their
// lexical Kind, available without an explicit `@name = kind ;` declaration.
var predefinedInputKinds = map[string]lex.Kind{
	"ident":      lex.KindIdent,
	"string":     lex.KindString,
	"integer":    lex.KindInteger,
	"float":      lex.KindFloat,
	"code_block": lex.KindCodeBlock,
}
