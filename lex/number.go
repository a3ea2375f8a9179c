package lex

import (
	"strconv"

	"github.com/dekarrin/vnlex/source"
)

// Number is a Tokenizer for integer and decimal-float literals: decimal, `0b` binary, `0o` octal, and `0x` hexadecimal integers,
// plus decimal-only floats with an optional fractional part and/or exponent.
// A float literal is rejected in a non-decimal base. Integer literals that
// overflow int64/uint64 range fail with "literal out of range".
type Number[T any] struct{}

func (Number[T]) Tokenize(c *source.Cursor) (Token[T], bool, error) {
	if !isDigit(c.First()) {
		return Token[T]{}, false, nil
	}
	row, col := c.Row(), c.Col()
	startOffset := c.Offset()

	base := 10
	digitPred := isDigit
	if c.First() == '0' {
		switch c.Second() {
		case 'b', 'B':
			base = 2
			digitPred = isBinDigit
			c.Bump()
			c.Bump()
		case 'o', 'O':
			base = 8
			digitPred = isOctDigit
			c.Bump()
			c.Bump()
		case 'x', 'X':
			base = 16
			digitPred = isHexDigitRune
			c.Bump()
			c.Bump()
		}
	}

	digitsStart := c.Offset()
	c.EatWhile(func(r rune) bool { return digitPred(r) || r == '_' })
	if c.Offset() == digitsStart {
		return Token[T]{}, true, &Error{Location: c.LocationFrom(row, col), Msg: "expected at least one digit"}
	}

	isFloat := false
	if base == 10 {
		if c.First() == '.' && isDigit(c.Second()) {
			isFloat = true
			c.Bump() // '.'
			c.EatWhile(func(r rune) bool { return isDigit(r) || r == '_' })
		}
		if c.First() == 'e' || c.First() == 'E' {
			expSave := c.Offset()
			r, _ := c.Bump()
			_ = r
			if c.First() == '+' || c.First() == '-' {
				c.Bump()
			}
			expDigitsStart := c.Offset()
			c.EatWhile(isDigit)
			if c.Offset() == expDigitsStart {
				return Token[T]{}, true, &Error{Location: c.LocationFrom(row, col), Msg: "expected exponent digits"}
			}
			isFloat = true
			_ = expSave
		}
	} else if c.First() == '.' || c.First() == 'e' || c.First() == 'E' {
		return Token[T]{}, true, &Error{Location: c.LocationFrom(row, col), Msg: "float literal must be in decimal base"}
	}

	content := c.SubContent(startOffset, c.Offset()-startOffset)

	if isFloat {
		clean := stripUnderscores(content)
		f, err := parseFloat(clean)
		if err != nil {
			return Token[T]{}, true, &Error{Location: c.LocationFrom(row, col), Msg: "invalid float literal"}
		}
		return Token[T]{
			Kind:     KindFloat,
			Content:  content,
			Data:     Data[T]{Tag: DataFloat, Float: f},
			Location: c.LocationFrom(row, col),
		}, true, nil
	}

	digitsOnly := stripUnderscores(content)
	switch base {
	case 2:
		digitsOnly = digitsOnly[2:]
	case 8:
		digitsOnly = digitsOnly[2:]
	case 16:
		digitsOnly = digitsOnly[2:]
	}
	v, err := strconv.ParseUint(digitsOnly, base, 64)
	if err != nil {
		return Token[T]{}, true, &Error{Location: c.LocationFrom(row, col), Msg: "literal out of range"}
	}
	return Token[T]{
		Kind:     KindInteger,
		Content:  content,
		Data:     Data[T]{Tag: DataInteger, Integer: v},
		Location: c.LocationFrom(row, col),
	}, true, nil
}

func stripUnderscores(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

func isDigit(r rune) bool      { return r >= '0' && r <= '9' }
func isBinDigit(r rune) bool   { return r == '0' || r == '1' }
func isOctDigit(r rune) bool   { return r >= '0' && r <= '7' }
func isHexDigitRune(r rune) bool {
	_, ok := hexDigit(r)
	return ok
}
