package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Cursor_FirstSecondNth(t *testing.T) {
	c := New("ab€c", 0, 0, "")

	assert.Equal(t, 'a', c.First())
	assert.Equal(t, 'b', c.Second())
	assert.Equal(t, '€', c.Nth(2))
	assert.Equal(t, 'c', c.Nth(3))
	assert.Equal(t, EOFRune, c.Nth(4))

	// peeking must not consume
	assert.Equal(t, 'a', c.First())
}

func Test_Cursor_Bump_TracksRowCol(t *testing.T) {
	c := New("ab\ncd", 0, 0, "")

	r, ok := c.Bump()
	assert.True(t, ok)
	assert.Equal(t, 'a', r)
	assert.Equal(t, 0, c.Row())
	assert.Equal(t, 1, c.Col())

	c.Bump() // b
	r, ok = c.Bump()
	assert.True(t, ok)
	assert.Equal(t, '\n', r)
	assert.Equal(t, 1, c.Row())
	assert.Equal(t, 0, c.Col())

	r, ok = c.Bump()
	assert.True(t, ok)
	assert.Equal(t, 'c', r)
	assert.Equal(t, 1, c.Col())
}

func Test_Cursor_EatWhile(t *testing.T) {
	c := New("   hello", 0, 0, "")
	c.EatWhile(func(r rune) bool { return r == ' ' })
	assert.Equal(t, 'h', c.First())
	assert.Equal(t, 3, c.Offset())
}

func Test_Cursor_SubContent(t *testing.T) {
	c := New("hello world", 0, 0, "")
	start := c.Offset()
	for i := 0; i < 5; i++ {
		c.Bump()
	}
	end := c.Offset()
	assert.Equal(t, "hello", c.SubContent(start, end-start))
}

func Test_Cursor_IsEOF(t *testing.T) {
	c := New("a", 0, 0, "")
	assert.False(t, c.IsEOF())
	c.Bump()
	assert.True(t, c.IsEOF())
}

func Test_Cursor_LocationFrom(t *testing.T) {
	c := New("abc\ndef", 0, 0, "grammar.lex")
	startRow, startCol := c.Row(), c.Col()
	for i := 0; i < 5; i++ {
		c.Bump()
	}
	loc := c.LocationFrom(startRow, startCol)
	assert.Equal(t, "grammar.lex", loc.Path)
	assert.Equal(t, 0, loc.StartRow)
	assert.Equal(t, 0, loc.StartCol)
	assert.Equal(t, 1, loc.EndRow)
	assert.Equal(t, 1, loc.EndCol)
}
