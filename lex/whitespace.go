package lex

import (
	"github.com/dekarrin/vnlex/source"
)

// IsWhitespace reports whether r is in the Unicode whitespace class this
// lexer recognizes: ASCII controls, NEL, the bidi marks, LS and PS, plus
// everything unicode.IsSpace already considers whitespace.
func IsWhitespace(r rune) bool {
	switch r {
	case '', // NEL
		'‎', '‏', // bidi marks
		' ', // LS
		' ': // PS
		return true
	}
	if r < 0x20 || r == 0x7F {
		return true
	}
	return isUnicodeSpace(r)
}

// Whitespace is a Tokenizer that consumes a maximal run of whitespace runes
// and emits a Kind Whitespace token.
type Whitespace[T any] struct{}

func (Whitespace[T]) Tokenize(c *source.Cursor) (Token[T], bool, error) {
	if !IsWhitespace(c.First()) {
		return Token[T]{}, false, nil
	}
	startOffset := c.Offset()
	row, col := c.Row(), c.Col()
	c.EatWhile(IsWhitespace)
	content := c.SubContent(startOffset, c.Offset()-startOffset)
	return Token[T]{
		Kind:     KindWhitespace,
		Content:  content,
		Location: c.LocationFrom(row, col),
	}, true, nil
}
