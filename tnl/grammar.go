package tnl

import (
	"sync"

	"github.com/dekarrin/vnlex/grammar"
	"github.com/dekarrin/vnlex/lex"
	"github.com/dekarrin/vnlex/lr"
)

// payload is the tokenizer payload type threaded through the grammar/lr
// stack for TNL's own grammar: TNL needs nothing beyond the built-in token
// kinds, so it instantiates with an empty struct.
type payload = struct{}

// tnlGrammar is the `.lex` source defining TNL's own text syntax, built at runtime with this repository's own grammar front end and
// LR table builder exactly as any other grammar would be.
const tnlGrammar = `
#script: object_item_list;
#valueroot: value;

object_item_list: object_item
                 | object_item_list object_item;

object_item: @ident ':' value
           | @ident ':' value ','
           | value
           | value ',';

value: "null"
     | "true"
     | "false"
     | @integer
     | '-' @integer
     | @float
     | '-' @float
     | @string
     | @code_block
     | object
     | array
     | @ident;

object: '{' '}'
      | '{' object_item_list '}'
      | @ident '{' '}'
      | @ident '{' object_item_list '}'
      | @ident ':' @ident '{' '}'
      | @ident ':' @ident '{' object_item_list '}';

array: '[' ']'
     | '[' value_items ']'
     | '[' value_items ',' ']';

value_items: value
           | value_items ',' value;
`

var (
	buildOnce sync.Once
	tnlDesc   *grammar.Description
	tnlTable  *lr.Table[payload]
	buildErr  error
)

// ensureGrammarBuilt lazily parses and builds tnlGrammar exactly once: the
// table is built on first use and reused across every subsequent parse.
func ensureGrammarBuilt() error {
	buildOnce.Do(func() {
		desc, err := grammar.Parse(tnlGrammar)
		if err != nil {
			buildErr = err
			return
		}
		table, err := grammar.Build[payload](desc)
		if err != nil {
			buildErr = err
			return
		}
		tnlDesc = desc
		tnlTable = table
	})
	return buildErr
}

func terminalID(kind grammar.RefKind, text string, char rune) uint32 {
	t, ok := tnlDesc.TerminalFor(grammar.TerminalRef{Kind: kind, Text: text, Char: char})
	if !ok {
		panic("tnl: grammar build did not register expected terminal " + text)
	}
	return t.ID
}

// newLexer builds the token chain that tokenizes TNL source text: whitespace and comments first, then literal forms, then the
// identifier/keyword and symbol tables whose ids come from the already-built
// grammar description.
func newLexer() *lex.Lexer[payload] {
	keywords := lex.KeywordMap{
		"null":  terminalID(grammar.RefKeyword, "null", 0),
		"true":  terminalID(grammar.RefKeyword, "true", 0),
		"false": terminalID(grammar.RefKeyword, "false", 0),
	}
	symbols := lex.SymbolMap{
		'{': terminalID(grammar.RefSymbol, "", '{'),
		'}': terminalID(grammar.RefSymbol, "", '}'),
		'[': terminalID(grammar.RefSymbol, "", '['),
		']': terminalID(grammar.RefSymbol, "", ']'),
		':': terminalID(grammar.RefSymbol, "", ':'),
		',': terminalID(grammar.RefSymbol, "", ','),
		'-': terminalID(grammar.RefSymbol, "", '-'),
	}
	return lex.NewLexer[payload]().
		Use(lex.Whitespace[payload]{}).
		Use(lex.Comment[payload]{}).
		Use(lex.QuotedString[payload]{Quote: '"'}).
		Use(lex.RawString[payload]{}).
		Use(lex.IdentifierKeyword[payload]{Keywords: keywords}).
		Use(lex.Number[payload]{}).
		Use(lex.Symbol[payload]{Symbols: symbols}).
		Use(lex.CodeBlock[payload]{})
}
