package lex

import (
	"testing"

	"github.com/dekarrin/vnlex/source"
	"github.com/stretchr/testify/assert"
)

func Test_Whitespace_Consumes(t *testing.T) {
	c := source.New("   \t\nabc", 0, 0, "")
	tok, ok, err := (Whitespace[any]{}).Tokenize(c)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, KindWhitespace, tok.Kind)
	assert.Equal(t, "   \t\n", tok.Content)
	assert.Equal(t, 5, c.Offset())
}

func Test_Whitespace_NoMatch(t *testing.T) {
	c := source.New("abc", 0, 0, "")
	_, ok, err := (Whitespace[any]{}).Tokenize(c)
	assert.NoError(t, err)
	assert.False(t, ok)
}
