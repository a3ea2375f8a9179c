package grammar

// ItemKind distinguishes a production item that matches a terminal from one
// that matches (a production of) a non-terminal.
type ItemKind int

const (
	ItemTerminal ItemKind = iota
	ItemNonTerminal
)

// Item is one element of a Production's right-hand side: a
// Terminal reference carrying a followed-flag requirement, or a reference to
// a non-terminal optionally annotated with an instance-set builder.
type Item struct {
	Kind ItemKind

	// Terminal fields.
	Terminal       TerminalRef
	RequireFollows bool // the `_X` prefix: X must be adjacent to the previous token

	// NonTerminal fields.
	NonTerminal string
	SetBuilder  *SetBuilder

	// Lookahead marks an item appended after `!` in a statement: it must be
	// matched to shift past it, but it is not counted among the production's
	// real (AST-producing) children.
	Lookahead bool
}

// String renders the item roughly as it appears in `.lex` source, for
// diagnostics such as item-set dumps.
func (it Item) String() string {
	prefix := ""
	if it.RequireFollows {
		prefix = "_"
	}
	if it.Kind == ItemTerminal {
		switch it.Terminal.Kind {
		case RefKeyword:
			return prefix + "\"" + it.Terminal.Text + "\""
		case RefSymbol:
			return prefix + "'" + string(it.Terminal.Char) + "'"
		default:
			return prefix + "@" + it.Terminal.Text
		}
	}
	name := it.NonTerminal
	if it.SetBuilder != nil {
		name += "<...>"
	}
	return prefix + name
}
