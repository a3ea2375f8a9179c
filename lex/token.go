// Package lex implements the tagged token model and the pluggable chain of
// tokenizers described by the grammar/LR toolkit's lexical layer: a cursor
// walks the source text, each tokenizer in turn is offered a chance to claim
// the current position, and the first to accept wins.
package lex

import (
	"fmt"

	"github.com/dekarrin/vnlex/source"
)

// Kind identifies the lexical category of a Token. The first eight values are
// reserved for the built-in token shapes; custom kinds contributed by a
// grammar's own terminal declarations start at 100.
type Kind uint32

const (
	KindWhitespace Kind = iota
	KindIdent
	KindKeyword
	KindSymbol
	KindString
	KindInteger
	KindFloat
	KindCodeBlock
)

// KindCustomBase is the first Kind value available for grammar-declared
// terminal kinds.
const KindCustomBase Kind = 100

func (k Kind) String() string {
	switch k {
	case KindWhitespace:
		return "whitespace"
	case KindIdent:
		return "ident"
	case KindKeyword:
		return "keyword"
	case KindSymbol:
		return "symbol"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindCodeBlock:
		return "code_block"
	default:
		return fmt.Sprintf("custom(%d)", uint32(k))
	}
}

// DataTag identifies which field of Data is meaningful.
type DataTag int

const (
	DataNone DataTag = iota
	DataID
	DataInteger
	DataFloat
	DataString
	DataCodeBlock
	DataCustom
)

// CodeBlockData carries the parsed shape of a fenced code block: how many
// fence characters delimited it, and the text found between the fences.
type CodeBlockData struct {
	FenceLen int
	Inner    string
}

// Data is the tagged payload carried by a Token: one of {None, Id, Integer,
// Float, String, CodeBlock, Custom(T)}. T is the custom tokenizer payload
// type threaded through the whole lexer/grammar/LR stack; it is opaque to
// everything in this module.
type Data[T any] struct {
	Tag       DataTag
	ID        uint32
	Integer   uint64
	Float     float64
	String    string
	CodeBlock CodeBlockData
	Custom    T
}

// Token is a single lexeme read from source text.
type Token[T any] struct {
	Kind     Kind
	Content  string
	Data     Data[T]
	Location source.Location

	// Followed reports whether this token is immediately adjacent to its
	// predecessor in the real (non-whitespace, non-comment) token stream. It
	// is computed by the Lexer driver, not by individual tokenizers.
	Followed bool
}

// ID returns the Data.ID field; valid when Data.Tag is DataID (keywords and
// symbols).
func (t Token[T]) ID() uint32 { return t.Data.ID }

func (t Token[T]) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Content, t.Location.StartRow+1, t.Location.StartCol+1)
}
