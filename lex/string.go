package lex

import (
	"strings"

	"github.com/dekarrin/vnlex/source"
)

// QuotedString is a Tokenizer for strings delimited by Quote, with escape
// sequences `\r \n \t \\ \0 \" \'`, `\xHH` (two hex digits, value <= 0x7F),
// and `\u{...}` (1-6 hex digits, value <= 0x10FFFF).
type QuotedString[T any] struct {
	Quote rune
}

func (q QuotedString[T]) Tokenize(c *source.Cursor) (Token[T], bool, error) {
	if c.First() != q.Quote {
		return Token[T]{}, false, nil
	}
	row, col := c.Row(), c.Col()
	c.Bump() // opening quote

	var sb strings.Builder
	for {
		if c.IsEOF() {
			return Token[T]{}, true, &Error{Location: c.LocationFrom(row, col), Msg: "unterminated string"}
		}
		escRow, escCol := c.Row(), c.Col()
		r, _ := c.Bump()
		switch {
		case r == q.Quote:
			return Token[T]{
				Kind:     KindString,
				Content:  sb.String(),
				Data:     Data[T]{Tag: DataString, String: sb.String()},
				Location: c.LocationFrom(row, col),
			}, true, nil
		case r == '\\':
			if c.IsEOF() {
				return Token[T]{}, true, &Error{Location: c.LocationFrom(row, col), Msg: "unterminated string"}
			}
			escaped, err := q.readEscape(c, escRow, escCol)
			if err != nil {
				return Token[T]{}, true, err
			}
			sb.WriteRune(escaped)
		default:
			sb.WriteRune(r)
		}
	}
}

func (q QuotedString[T]) readEscape(c *source.Cursor, openRow, openCol int) (rune, error) {
	r, _ := c.Bump()
	switch r {
	case 'r':
		return '\r', nil
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case '\\':
		return '\\', nil
	case '0':
		return 0, nil
	case '"':
		return '"', nil
	case '\'':
		return '\'', nil
	case 'x':
		return q.readHexByteEscape(c, openRow, openCol)
	case 'u':
		return q.readUnicodeEscape(c, openRow, openCol)
	default:
		return 0, &Error{Location: c.LocationFrom(openRow, openCol), Msg: "unknown escape sequence"}
	}
}

func (q QuotedString[T]) readHexByteEscape(c *source.Cursor, openRow, openCol int) (rune, error) {
	var code int
	for i := 0; i < 2; i++ {
		if c.IsEOF() {
			return 0, &Error{Location: c.LocationFrom(openRow, openCol), Msg: "unterminated string"}
		}
		r, _ := c.Bump()
		d, ok := hexDigit(r)
		if !ok {
			return 0, &Error{Location: c.LocationFrom(openRow, openCol), Msg: "invalid character in numeric character escape"}
		}
		code = code*16 + d
	}
	if code > 0x7F {
		return 0, &Error{Location: c.LocationFrom(openRow, openCol), Msg: "numeric character escape out of range"}
	}
	return rune(code), nil
}

func (q QuotedString[T]) readUnicodeEscape(c *source.Cursor, openRow, openCol int) (rune, error) {
	if c.IsEOF() || c.First() != '{' {
		return 0, &Error{Location: c.LocationFrom(openRow, openCol), Msg: "incorrect unicode escape sequence"}
	}
	c.Bump() // '{'

	code := 0
	digits := 0
	for {
		if c.IsEOF() {
			return 0, &Error{Location: c.LocationFrom(openRow, openCol), Msg: "unterminated string"}
		}
		r := c.First()
		if r == '}' {
			c.Bump()
			break
		}
		d, ok := hexDigit(r)
		if !ok {
			return 0, &Error{Location: c.LocationFrom(openRow, openCol), Msg: "invalid character in unicode escape"}
		}
		c.Bump()
		digits++
		if digits > 6 {
			return 0, &Error{Location: c.LocationFrom(openRow, openCol), Msg: "overlong unicode escape"}
		}
		code = code*16 + d
	}
	if digits == 0 || code > 0x10FFFF {
		return 0, &Error{Location: c.LocationFrom(openRow, openCol), Msg: "invalid unicode character escape"}
	}
	return rune(code), nil
}

func hexDigit(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	default:
		return 0, false
	}
}

// RawString is a Tokenizer for `r"..."` and `r#..."..."#...#` raw strings
//: the number of leading `#` characters between `r` and the
// opening quote must be matched by an equal run of `#` immediately after the
// matching closing quote, and no escape processing happens inside.
type RawString[T any] struct{}

func (RawString[T]) Tokenize(c *source.Cursor) (Token[T], bool, error) {
	if c.First() != 'r' {
		return Token[T]{}, false, nil
	}
	row, col := c.Row(), c.Col()

	hashes := 0
	for {
		next := c.Nth(1 + hashes)
		if next == '#' {
			hashes++
			continue
		}
		if next == '"' {
			break
		}
		return Token[T]{}, false, nil
	}

	c.Bump() // 'r'
	for i := 0; i < hashes; i++ {
		c.Bump() // '#'
	}
	c.Bump() // opening '"'

	startOffset := c.Offset()
	for {
		if c.IsEOF() {
			return Token[T]{}, true, &Error{Location: c.LocationFrom(row, col), Msg: "unterminated raw string"}
		}
		if c.First() == '"' {
			endOffset := c.Offset()
			// tentatively accept; verify the trailing hash run matches.
			save := c.Offset()
			c.Bump() // closing '"'
			matched := 0
			for matched < hashes && c.First() == '#' {
				c.Bump()
				matched++
			}
			if matched == hashes {
				content := c.SubContent(startOffset, endOffset-startOffset)
				return Token[T]{Kind: KindString, Content: content, Data: Data[T]{Tag: DataString, String: content}, Location: c.LocationFrom(row, col)}, true, nil
			}
			// not a real terminator (not enough hashes followed); this byte
			// offset bookkeeping relies on the cursor only moving forward,
			// so simply continue scanning from where we ended up: any '"'
			// and '#' runes just consumed are, at worst, re-examined as
			// ordinary content on the next iteration boundary.
			_ = save
			continue
		}
		c.Bump()
	}
}
