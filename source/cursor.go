// Package source provides a UTF-8 text cursor with bounded rune lookahead and
// line/column tracking, used by the lexical front end of vnlex.
package source

import "unicode/utf8"

// EOFRune is returned by peek operations (First, Second, Nth) when the cursor
// has no more input to offer. It is the NUL rune, so a NUL in the input
// reads the same through those methods; IsEOF tells the two apart.
const EOFRune rune = 0

// Location identifies a half-open span of source text by row/column, plus an
// optional path for the file it came from. Rows and columns are zero-based
// internally; callers that display a Location to a user convert to 1-based
// per spec (see the lex and grammar packages' error formatting).
type Location struct {
	Path               string
	StartRow, StartCol int
	EndRow, EndCol     int
}

// HasPath reports whether the Location carries a source path.
func (l Location) HasPath() bool {
	return l.Path != ""
}

type bufRune struct {
	offset int
	r      rune
}

// Cursor is an immutable view over a UTF-8 string with a small lookahead
// buffer of already-decoded runes. It never errors on decode: callers are
// expected to hand it pre-validated UTF-8 text (a Go string always is).
type Cursor struct {
	content string
	pos     int // byte offset of the next undecoded rune
	buf     []bufRune
	path    string
	row     int
	col     int
}

// New returns a Cursor over content, starting at the given zero-based row and
// column (useful when content is a sub-slice embedded in a larger file), with
// an optional path used for Location reporting.
func New(content string, row, col int, path string) *Cursor {
	return &Cursor{
		content: content,
		path:    path,
		row:     row,
		col:     col,
	}
}

// First returns the next rune to be consumed without consuming it. Returns
// EOFRune at end of input.
func (c *Cursor) First() rune {
	return c.Nth(0)
}

// Second returns the rune after First without consuming anything. Returns
// EOFRune at end of input.
func (c *Cursor) Second() rune {
	return c.Nth(1)
}

// Nth returns the nth upcoming rune (0-indexed) without consuming it. Returns
// EOFRune if the input ends before reaching that rune.
func (c *Cursor) Nth(n int) rune {
	for len(c.buf) <= n {
		if c.pos >= len(c.content) {
			return EOFRune
		}
		r, size := decodeRune(c.content[c.pos:])
		c.buf = append(c.buf, bufRune{offset: c.pos, r: r})
		c.pos += size
	}
	return c.buf[n].r
}

// IsEOF reports whether the cursor has no more input to offer, including
// anything already buffered by a lookahead.
func (c *Cursor) IsEOF() bool {
	return len(c.buf) == 0 && c.pos >= len(c.content)
}

// Bump consumes and returns the next rune, advancing row/column tracking. A
// line feed resets the column to zero and advances the row; every other rune
// advances the column by one. Returns (EOFRune, false) at end of input.
func (c *Cursor) Bump() (rune, bool) {
	var r rune
	if len(c.buf) > 0 {
		r = c.buf[0].r
		c.buf = c.buf[1:]
	} else {
		if c.pos >= len(c.content) {
			return EOFRune, false
		}
		var size int
		r, size = decodeRune(c.content[c.pos:])
		c.pos += size
	}
	c.updateRowCol(r)
	return r, true
}

// EatWhile consumes runes for as long as pred returns true, stopping at EOF or
// the first rune for which pred is false.
func (c *Cursor) EatWhile(pred func(rune) bool) {
	for !c.IsEOF() && pred(c.First()) {
		c.Bump()
	}
}

// Offset returns the byte offset, within the original content, of the next
// rune to be consumed (i.e. accounting for anything already buffered via
// lookahead).
func (c *Cursor) Offset() int {
	if len(c.buf) > 0 {
		return c.buf[0].offset
	}
	return c.pos
}

// Row returns the current zero-based row.
func (c *Cursor) Row() int { return c.row }

// Col returns the current zero-based column.
func (c *Cursor) Col() int { return c.col }

// Path returns the source path associated with this cursor, or "" if none.
func (c *Cursor) Path() string { return c.path }

// Content returns the entire backing text the cursor was constructed over.
func (c *Cursor) Content() string { return c.content }

// SubContent returns the substring of the backing content starting at the
// given byte offset and running for length bytes. Callers use this together
// with Offset (captured before and after a token is scanned) to build exact
// token spans without any additional copying beyond Go's native string
// slicing.
func (c *Cursor) SubContent(offset, length int) string {
	return c.content[offset : offset+length]
}

// LocationFrom builds a Location spanning from (startRow, startCol) to the
// cursor's current position, using the cursor's path.
func (c *Cursor) LocationFrom(startRow, startCol int) Location {
	return Location{
		Path:     c.path,
		StartRow: startRow,
		StartCol: startCol,
		EndRow:   c.row,
		EndCol:   c.col,
	}
}

func (c *Cursor) updateRowCol(r rune) {
	if r == '\n' {
		c.col = 0
		c.row++
	} else {
		c.col++
	}
}

// decodeRune decodes the first rune of s, which must be non-empty. Malformed
// bytes decode as utf8.RuneError with a width of 1, matching standard library
// behavior for invalid UTF-8; callers are expected to hand this package text
// that is already valid UTF-8 (true of any Go string derived from a file read
// with the os/io packages' usual helpers).
func decodeRune(s string) (rune, int) {
	r, size := utf8.DecodeRuneInString(s)
	return r, size
}
