package lex

import (
	"github.com/dekarrin/vnlex/source"
)

// CodeBlock is a Tokenizer for fenced code blocks delimited by a run of three
// or more backticks, closed by a run of backticks at least as long as the
// opening fence. The token's Data carries the fence length and
// the unprocessed inner text.
type CodeBlock[T any] struct{}

func (CodeBlock[T]) Tokenize(c *source.Cursor) (Token[T], bool, error) {
	if c.First() != '`' {
		return Token[T]{}, false, nil
	}
	row, col := c.Row(), c.Col()
	startOffset := c.Offset()

	fenceLen := 0
	for c.First() == '`' {
		c.Bump()
		fenceLen++
	}
	if fenceLen < 3 {
		return Token[T]{}, true, &Error{Location: c.LocationFrom(row, col), Msg: "code block fence must be at least 3 backticks"}
	}

	innerStart := c.Offset()
	for {
		if c.IsEOF() {
			return Token[T]{}, true, &Error{Location: c.LocationFrom(row, col), Msg: "unterminated code block"}
		}
		if c.First() == '`' {
			innerEnd := c.Offset()
			runLen := 0
			for c.Nth(runLen) == '`' {
				runLen++
			}
			if runLen >= fenceLen {
				for i := 0; i < runLen; i++ {
					c.Bump()
				}
				inner := c.SubContent(innerStart, innerEnd-innerStart)
				content := c.SubContent(startOffset, c.Offset()-startOffset)
				return Token[T]{
					Kind:    KindCodeBlock,
					Content: content,
					Data: Data[T]{
						Tag:       DataCodeBlock,
						CodeBlock: CodeBlockData{FenceLen: fenceLen, Inner: inner},
					},
					Location: c.LocationFrom(row, col),
				}, true, nil
			}
		}
		c.Bump()
	}
}
