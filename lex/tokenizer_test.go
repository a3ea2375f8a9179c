package lex

import (
	"testing"

	"github.com/dekarrin/vnlex/source"
	"github.com/stretchr/testify/assert"
)

func buildTestLexer() *Lexer[any] {
	return NewLexer[any]().
		Use(Whitespace[any]{}).
		Use(Comment[any]{}).
		Use(IdentifierKeyword[any]{Keywords: KeywordMap{"if": 1}}).
		Use(Number[any]{}).
		Use(QuotedString[any]{Quote: '"'}).
		Use(Symbol[any]{Symbols: SymbolMap{'+': 10, '(': 11, ')': 12}})
}

func Test_Lexer_Stream_FollowedFlags(t *testing.T) {
	lx := buildTestLexer()
	c := source.New(`foo+1 "bar"`, 0, 0, "")
	toks, err := lx.Stream(c)
	assert.NoError(t, err)

	var real []Token[any]
	for _, tk := range toks {
		if tk.Kind != KindWhitespace {
			real = append(real, tk)
		}
	}
	assert.Len(t, real, 4) // foo, +, 1, "bar"
	assert.False(t, real[0].Followed)
	assert.True(t, real[1].Followed)
	assert.True(t, real[2].Followed)
	assert.False(t, real[3].Followed) // separated by a space
}

func Test_Lexer_Next_UnexpectedCharacter(t *testing.T) {
	lx := buildTestLexer()
	c := source.New("$", 0, 0, "")
	_, ok, err := lx.Next(c)
	assert.False(t, ok)
	assert.Error(t, err)
}

func Test_Lexer_Next_EOF(t *testing.T) {
	lx := buildTestLexer()
	c := source.New("", 0, 0, "")
	_, ok, err := lx.Next(c)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func Test_Lexer_Stream_KeywordPromotion(t *testing.T) {
	lx := buildTestLexer()
	c := source.New("if", 0, 0, "")
	toks, err := lx.Stream(c)
	assert.NoError(t, err)
	assert.Len(t, toks, 1)
	assert.Equal(t, KindKeyword, toks[0].Kind)
}
