package lex

import (
	"github.com/dekarrin/vnlex/source"
)

// SymbolMap maps a single-character symbol to the id assigned to it by the
// grammar builder.
type SymbolMap map[rune]uint32

// Symbol is a Tokenizer that looks up the current rune in a SymbolMap and, if
// found, consumes it and emits a Kind Symbol token carrying the looked-up id
//.
type Symbol[T any] struct {
	Symbols SymbolMap
}

func (s Symbol[T]) Tokenize(c *source.Cursor) (Token[T], bool, error) {
	id, ok := s.Symbols[c.First()]
	if !ok {
		return Token[T]{}, false, nil
	}
	startOffset := c.Offset()
	row, col := c.Row(), c.Col()
	c.Bump()
	content := c.SubContent(startOffset, c.Offset()-startOffset)
	return Token[T]{
		Kind:     KindSymbol,
		Content:  content,
		Data:     Data[T]{Tag: DataID, ID: id},
		Location: c.LocationFrom(row, col),
	}, true, nil
}
