package grammar

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dekarrin/vnlex/lex"
	"github.com/dekarrin/vnlex/source"
)

// kindKwLiteral and kindSymLiteral are the bootstrap lexer's own custom
// kinds: the front-end that
// parses `.lex` grammar text is itself built on the same lexer toolkit it
// compiles grammars for, and uses custom kinds to tell a double-quoted
// KW-LITERAL apart from a single-quoted SYM-LITERAL, since both would
// otherwise come back as the same Kind String from lex.QuotedString.
const (
	kindKwLiteral  = lex.KindCustomBase + 1
	kindSymLiteral = lex.KindCustomBase + 2
)

func bootstrapLexer() *lex.Lexer[any] {
	quoted := func(quote rune, kind lex.Kind) lex.Tokenizer[any] {
		inner := lex.QuotedString[any]{Quote: quote}
		return lex.TokenizerFunc[any](func(c *source.Cursor) (lex.Token[any], bool, error) {
			tok, ok, err := inner.Tokenize(c)
			if ok {
				tok.Kind = kind
			}
			return tok, ok, err
		})
	}
	return lex.NewLexer[any]().
		Use(lex.Whitespace[any]{}).
		Use(lex.Comment[any]{}).
		Use(lex.IdentifierKeyword[any]{Keywords: lex.KeywordMap{"mod": 1}}).
		Use(lex.Number[any]{}).
		Use(quoted('"', kindKwLiteral)).
		Use(quoted('\'', kindSymLiteral)).
		Use(lex.Symbol[any]{Symbols: lex.SymbolMap{
			'@': 1, ';': 2, ':': 3, '|': 4, '!': 5, '^': 6, '<': 7, '>': 8, ',': 9, '#': 10, '=': 11,
		}})
}

// ParseFile parses the `.lex` file at path, resolving any `mod x;` imports
// relative to its directory, and returns the finalized Description.
func ParseFile(path string) (*Description, error) {
	desc := NewDescription()
	if err := parseFileInto(desc, path); err != nil {
		return nil, err
	}
	if err := desc.Finalize(); err != nil {
		return nil, err
	}
	return desc, nil
}

func parseFileInto(desc *Description, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if desc.MarkImported(abs) {
		return nil
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	p := &parser{desc: desc, baseDir: filepath.Dir(abs), path: path}
	if err := p.tokenize(string(data)); err != nil {
		return err
	}
	return p.parseFile()
}

// Parse parses `.lex` source text directly; any `mod x;` imports in src are
// resolved relative to the current working directory. Useful for parsing
// grammar text that did not come from a file, such as embedded specs.
func Parse(src string) (*Description, error) {
	desc := NewDescription()
	p := &parser{desc: desc, baseDir: ".", path: "<input>"}
	if err := p.tokenize(src); err != nil {
		return nil, err
	}
	if err := p.parseFile(); err != nil {
		return nil, err
	}
	if err := desc.Finalize(); err != nil {
		return nil, err
	}
	return desc, nil
}

type parser struct {
	desc    *Description
	baseDir string
	path    string
	toks    []lex.Token[any]
	pos     int
}

func (p *parser) tokenize(src string) error {
	c := source.New(src, 0, 0, p.path)
	lx := bootstrapLexer()
	toks, err := lx.Stream(c)
	if err != nil {
		return err
	}
	for _, t := range toks {
		if t.Kind == lex.KindWhitespace {
			continue
		}
		p.toks = append(p.toks, t)
	}
	return nil
}

func (p *parser) peek() (lex.Token[any], bool) {
	if p.pos >= len(p.toks) {
		return lex.Token[any]{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) next() (lex.Token[any], bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

func (p *parser) errf(format string, args ...any) error {
	loc := source.Location{Path: p.path}
	if tok, ok := p.peek(); ok {
		loc = tok.Location
	}
	return &lex.Error{Location: loc, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expectSymbol(ch rune) error {
	tok, ok := p.next()
	if !ok || tok.Kind != lex.KindSymbol || tok.Content != string(ch) {
		return p.errf("expected %q", ch)
	}
	return nil
}

func (p *parser) expectIdent() (string, error) {
	tok, ok := p.next()
	if !ok || tok.Kind != lex.KindIdent {
		return "", p.errf("expected identifier")
	}
	return tok.Content, nil
}

func (p *parser) atSymbol(ch rune) bool {
	tok, ok := p.peek()
	return ok && tok.Kind == lex.KindSymbol && tok.Content == string(ch)
}

func (p *parser) atUnderscore() bool {
	tok, ok := p.peek()
	return ok && tok.Kind == lex.KindIdent && tok.Content == "_"
}

func (p *parser) parseFile() error {
	for {
		tok, ok := p.peek()
		if !ok {
			return nil
		}
		switch {
		case tok.Kind == lex.KindKeyword && tok.Content == "mod":
			if err := p.parseImport(); err != nil {
				return err
			}
		case tok.Kind == lex.KindSymbol && tok.Content == "@":
			if err := p.parseTokenDecl(); err != nil {
				return err
			}
		default:
			if err := p.parseProduction(); err != nil {
				return err
			}
		}
	}
}

func (p *parser) parseImport() error {
	p.next() // "mod"
	name, err := p.expectIdent()
	if err != nil {
		return err
	}
	if err := p.expectSymbol(';'); err != nil {
		return err
	}
	resolved, err := ResolveImportPath(p.baseDir, name)
	if err != nil {
		return err
	}
	return parseFileInto(p.desc, resolved)
}

func (p *parser) parseTokenDecl() error {
	p.next() // '@'
	name, err := p.expectIdent()
	if err != nil {
		return err
	}
	if err := p.expectSymbol('='); err != nil {
		return err
	}
	tok, ok := p.next()
	if !ok || tok.Kind != lex.KindInteger {
		return p.errf("expected integer token kind")
	}
	if err := p.expectSymbol(';'); err != nil {
		return err
	}
	return p.desc.DeclareInput(name, lex.Kind(tok.Data.Integer))
}

func (p *parser) parseProduction() error {
	entry := false
	if p.atSymbol('#') {
		p.next()
		entry = true
	}
	name, err := p.expectIdent()
	if err != nil {
		return err
	}
	if err := p.expectSymbol(':'); err != nil {
		return err
	}

	nt := p.desc.NonTerminal(name)
	if entry {
		addEntryName(p.desc, name)
	}

	for {
		prod, err := p.parseStatement()
		if err != nil {
			return err
		}
		nt.AddProduction(prod)
		if p.atSymbol('|') {
			p.next()
			continue
		}
		break
	}
	return p.expectSymbol(';')
}

func addEntryName(d *Description, name string) {
	for _, n := range d.EntryNames {
		if n == name {
			return
		}
	}
	d.EntryNames = append(d.EntryNames, name)
}

func (p *parser) atStatementEnd() bool {
	return p.atSymbol(';') || p.atSymbol('|')
}

func (p *parser) parseStatement() (*Production, error) {
	var items []Item

	// A leading `_` is accepted on a statement's first item too (and is a
	// no-op there, since there is no preceding item within the production
	// to require adjacency to): the worked grammar examples use it for
	// visual symmetry with the items that follow.
	first, err := p.parseItemExpand(true)
	if err != nil {
		return nil, err
	}
	first[0].RequireFollows = false
	items = append(items, first...)

	for !p.atStatementEnd() && !p.atSymbol('!') && !p.atSymbol('^') {
		more, err := p.parseItemExpand(true)
		if err != nil {
			return nil, err
		}
		items = append(items, more...)
	}

	realCount := len(items)

	if p.atSymbol('!') {
		p.next()
		for !p.atStatementEnd() && !p.atSymbol('^') {
			more, err := p.parseNotFollowedItemExpand()
			if err != nil {
				return nil, err
			}
			for i := range more {
				more[i].Lookahead = true
			}
			items = append(items, more...)
		}
	}

	var guard *Guard
	if p.atSymbol('^') {
		p.next()
		negate := false
		if p.atSymbol('!') {
			p.next()
			negate = true
		}
		flag, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		guard = &Guard{Negate: negate, Flag: flag}
	}

	return &Production{Items: items, RealCount: realCount, Guard: guard}, nil
}

// parseItemExpand parses one item, optionally allowing a leading `_`
// (followed-item's grammar), expanding a multi-character SYM-LITERAL into
// one Item per character.
func (p *parser) parseItemExpand(allowUnderscore bool) ([]Item, error) {
	requireFollows := false
	if allowUnderscore && p.atUnderscore() {
		p.next()
		requireFollows = true
	}
	return p.parseBareItem(requireFollows)
}

// parseNotFollowedItemExpand parses one `not-followed-item`: a terminal
// (optionally `_`-prefixed), never a non-terminal reference.
func (p *parser) parseNotFollowedItemExpand() ([]Item, error) {
	requireFollows := false
	if p.atUnderscore() {
		p.next()
		requireFollows = true
	}
	tok, ok := p.peek()
	if !ok {
		return nil, p.errf("expected terminal")
	}
	switch {
	case tok.Kind == kindKwLiteral, tok.Kind == kindSymLiteral, tok.Kind == lex.KindSymbol && tok.Content == "@":
		return p.parseBareItem(requireFollows)
	default:
		return nil, p.errf("expected a terminal in lookahead position")
	}
}

func (p *parser) parseBareItem(requireFollows bool) ([]Item, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.errf("expected item")
	}

	switch {
	case tok.Kind == lex.KindIdent:
		p.next()
		builder, err := p.maybeInstanceSetAnnotation()
		if err != nil {
			return nil, err
		}
		return []Item{{
			Kind:           ItemNonTerminal,
			NonTerminal:    tok.Content,
			SetBuilder:     builder,
			RequireFollows: requireFollows,
		}}, nil

	case tok.Kind == lex.KindSymbol && tok.Content == "@":
		p.next()
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		return []Item{{
			Kind:           ItemTerminal,
			Terminal:       TerminalRef{Kind: RefInput, Text: name},
			RequireFollows: requireFollows,
		}}, nil

	case tok.Kind == kindKwLiteral:
		p.next()
		return []Item{{
			Kind:           ItemTerminal,
			Terminal:       TerminalRef{Kind: RefKeyword, Text: tok.Content},
			RequireFollows: requireFollows,
		}}, nil

	case tok.Kind == kindSymLiteral:
		p.next()
		runes := []rune(tok.Content)
		if len(runes) == 0 {
			return nil, p.errf("symbol literal must not be empty")
		}
		out := make([]Item, 0, len(runes))
		for i, r := range runes {
			rf := true
			if i == 0 {
				rf = requireFollows
			}
			out = append(out, Item{
				Kind:           ItemTerminal,
				Terminal:       TerminalRef{Kind: RefSymbol, Char: r},
				RequireFollows: rf,
			})
		}
		return out, nil

	default:
		return nil, p.errf("unexpected token %q in item position", tok.Content)
	}
}

// maybeInstanceSetAnnotation parses an optional `< ... >` suffix after a
// non-terminal reference.
func (p *parser) maybeInstanceSetAnnotation() (*SetBuilder, error) {
	if !p.atSymbol('<') {
		return nil, nil
	}
	p.next()

	if p.atSymbol('@') {
		p.next()
		var add, remove []string
		for {
			negate := false
			if p.atSymbol('!') {
				p.next()
				negate = true
			}
			name, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			if negate {
				remove = append(remove, name)
			} else {
				add = append(add, name)
			}
			if p.atSymbol(',') {
				p.next()
				if p.atSymbol('>') {
					break
				}
				continue
			}
			break
		}
		if err := p.expectSymbol('>'); err != nil {
			return nil, err
		}
		return &SetBuilder{Kind: BuildModifier, Add: add, Remove: remove}, nil
	}

	var flags []string
	for !p.atSymbol('>') {
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		flags = append(flags, name)
		if p.atSymbol(',') {
			p.next()
			continue
		}
		break
	}
	if err := p.expectSymbol('>'); err != nil {
		return nil, err
	}
	if len(flags) == 0 {
		return &SetBuilder{Kind: BuildEmpty}, nil
	}
	return &SetBuilder{Kind: BuildLiteral, Flags: flags}, nil
}
