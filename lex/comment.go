package lex

import (
	"github.com/dekarrin/vnlex/source"
)

// Comment is a Tokenizer that consumes `// ... LF` line comments and
// nestable `/* ... */` block comments, emitting a Kind Whitespace token so the lexer driver treats it
// identically for Followed-flag purposes. An unterminated block comment
// fails with the location of its opening `/*`.
type Comment[T any] struct{}

func (Comment[T]) Tokenize(c *source.Cursor) (Token[T], bool, error) {
	if c.First() != '/' {
		return Token[T]{}, false, nil
	}
	switch c.Second() {
	case '/':
		return scanLineComment[T](c), true, nil
	case '*':
		return scanBlockComment[T](c)
	default:
		return Token[T]{}, false, nil
	}
}

func scanLineComment[T any](c *source.Cursor) Token[T] {
	startOffset := c.Offset()
	row, col := c.Row(), c.Col()
	c.Bump() // '/'
	c.Bump() // '/'
	c.EatWhile(func(r rune) bool { return r != '\n' })
	content := c.SubContent(startOffset, c.Offset()-startOffset)
	return Token[T]{Kind: KindWhitespace, Content: content, Location: c.LocationFrom(row, col)}
}

func scanBlockComment[T any](c *source.Cursor) (Token[T], bool, error) {
	startOffset := c.Offset()
	row, col := c.Row(), c.Col()
	c.Bump() // '/'
	c.Bump() // '*'

	depth := 1
	for depth > 0 {
		if c.IsEOF() {
			return Token[T]{}, true, &Error{
				Location: c.LocationFrom(row, col),
				Msg:      "unterminated block comment",
			}
		}
		switch {
		case c.First() == '/' && c.Second() == '*':
			c.Bump()
			c.Bump()
			depth++
		case c.First() == '*' && c.Second() == '/':
			c.Bump()
			c.Bump()
			depth--
		default:
			c.Bump()
		}
	}

	content := c.SubContent(startOffset, c.Offset()-startOffset)
	return Token[T]{Kind: KindWhitespace, Content: content, Location: c.LocationFrom(row, col)}, true, nil
}
