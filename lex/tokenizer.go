package lex

import (
	"fmt"

	"github.com/dekarrin/vnlex/source"
)

// Error is a located lexical error.
type Error struct {
	Location source.Location
	Msg      string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", formatLocation(e.Location), e.Msg)
}

func formatLocation(loc source.Location) string {
	path := loc.Path
	if path == "" {
		path = "<input>"
	}
	if loc.StartRow == loc.EndRow && loc.StartCol == loc.EndCol {
		return fmt.Sprintf("%s:%d:%d", path, loc.StartRow+1, loc.StartCol+1)
	}
	return fmt.Sprintf("%s:%d:%d-%d:%d", path, loc.StartRow+1, loc.StartCol+1, loc.EndRow+1, loc.EndCol+1)
}

// Tokenizer attempts to claim the current cursor position. It returns
// (token, true, nil) on acceptance, (zero, false, nil) when it declines (some
// other tokenizer, or none, should be tried), and (zero, true, err) when it
// recognized the start of a token but failed to lex it completely.
type Tokenizer[T any] interface {
	Tokenize(c *source.Cursor) (Token[T], bool, error)
}

// TokenizerFunc adapts a plain function to the Tokenizer interface.
type TokenizerFunc[T any] func(c *source.Cursor) (Token[T], bool, error)

func (f TokenizerFunc[T]) Tokenize(c *source.Cursor) (Token[T], bool, error) {
	return f(c)
}

// Lexer is an ordered chain of Tokenizers. The first to accept the current
// cursor position wins; ties are resolved by chain order, so
// callers conventionally register Whitespace first.
type Lexer[T any] struct {
	chain []Tokenizer[T]
}

// NewLexer returns a Lexer with no tokenizers registered.
func NewLexer[T any]() *Lexer[T] {
	return &Lexer[T]{}
}

// Use appends a tokenizer to the end of the chain.
func (lx *Lexer[T]) Use(t Tokenizer[T]) *Lexer[T] {
	lx.chain = append(lx.chain, t)
	return lx
}

// Next asks each tokenizer in chain order whether it claims the current
// cursor position and returns the first to accept. It returns ok=false only
// at end of input with no tokenizer claiming an empty token.
func (lx *Lexer[T]) Next(c *source.Cursor) (Token[T], bool, error) {
	if c.IsEOF() {
		return Token[T]{}, false, nil
	}
	for _, t := range lx.chain {
		tok, ok, err := t.Tokenize(c)
		if err != nil {
			return Token[T]{}, false, err
		}
		if ok {
			return tok, true, nil
		}
	}
	loc := c.LocationFrom(c.Row(), c.Col())
	r := c.First()
	return Token[T]{}, false, &Error{Location: loc, Msg: fmt.Sprintf("unexpected character %q", r)}
}

// Stream lexes the full contents of a cursor into a token stream, computing
// the Followed flag as it goes: the token immediately after
// any whitespace/comment token has Followed=false; any other token is
// Followed=true. The first real token in the stream is Followed=false.
//
// Whitespace and comment tokens (both Kind Whitespace) are retained in the
// returned stream for totality but are skipped by the lr package's driver.
func (lx *Lexer[T]) Stream(c *source.Cursor) ([]Token[T], error) {
	var out []Token[T]
	followed := false
	for {
		tok, ok, err := lx.Next(c)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if isTrivia(tok.Kind) {
			out = append(out, tok)
			followed = false
			continue
		}
		tok.Followed = followed
		out = append(out, tok)
		followed = true
	}
	return out, nil
}

func isTrivia(k Kind) bool {
	return k == KindWhitespace
}
