package lex

import (
	"github.com/dekarrin/vnlex/source"
)

// Identifier is a Tokenizer for bare identifiers (XID_Start/'_' followed by
// XID_Continue*) and the raw form `r#NAME`, whose content is the suffix after
// `r#`.
type Identifier[T any] struct{}

func (Identifier[T]) Tokenize(c *source.Cursor) (Token[T], bool, error) {
	// `r#` not followed by an identifier start is not a raw identifier; it
	// falls through and lexes as a bare identifier starting with 'r'.
	if c.First() == 'r' && c.Second() == '#' && isIDStart(c.Nth(2)) {
		row, col := c.Row(), c.Col()
		c.Bump() // 'r'
		c.Bump() // '#'
		nameOffset := c.Offset()
		c.Bump()
		c.EatWhile(isIDContinue)
		content := c.SubContent(nameOffset, c.Offset()-nameOffset)
		return Token[T]{Kind: KindIdent, Content: content, Location: c.LocationFrom(row, col)}, true, nil
	}

	if !isIDStart(c.First()) {
		return Token[T]{}, false, nil
	}
	startOffset := c.Offset()
	row, col := c.Row(), c.Col()
	return bareIdentifier[T](c, startOffset, row, col)
}

func bareIdentifier[T any](c *source.Cursor, startOffset, row, col int) (Token[T], bool, error) {
	c.Bump()
	c.EatWhile(isIDContinue)
	content := c.SubContent(startOffset, c.Offset()-startOffset)
	return Token[T]{Kind: KindIdent, Content: content, Location: c.LocationFrom(row, col)}, true, nil
}

// KeywordMap maps keyword text to an id, assigned by the grammar builder's
// sorted-terminal-id discipline.
type KeywordMap map[string]uint32

// IdentifierKeyword wraps Identifier and promotes any identifier whose text
// is a declared keyword to Kind Keyword, carrying the keyword's id in
// Data.ID.
type IdentifierKeyword[T any] struct {
	Keywords KeywordMap
}

func (ik IdentifierKeyword[T]) Tokenize(c *source.Cursor) (Token[T], bool, error) {
	tok, ok, err := (Identifier[T]{}).Tokenize(c)
	if !ok || err != nil {
		return tok, ok, err
	}
	if id, isKeyword := ik.Keywords[tok.Content]; isKeyword {
		tok.Kind = KindKeyword
		tok.Data = Data[T]{Tag: DataID, ID: id}
	}
	return tok, true, nil
}
