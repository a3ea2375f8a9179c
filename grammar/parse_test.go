package grammar

import (
	"testing"

	"github.com/dekarrin/vnlex/lex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Parse_SimpleEntry(t *testing.T) {
	desc, err := Parse("@ident = 1; script: ident;")
	require.NoError(t, err)
	require.Contains(t, desc.NonTerminals, "script")
	script := desc.NonTerminals["script"]
	assert.True(t, script.Entry)
	require.Len(t, script.Productions, 1)
	prod := script.Productions[0]
	require.Len(t, prod.Items, 1)
	assert.Equal(t, ItemTerminal, prod.Items[0].Kind)
	assert.Equal(t, RefInput, prod.Items[0].Terminal.Kind)
	assert.Equal(t, "ident", prod.Items[0].Terminal.Text)
}

func Test_Parse_SymbolLiteralExpansion(t *testing.T) {
	desc, err := Parse("script: _ 'a' _ 'b';")
	require.NoError(t, err)
	script := desc.NonTerminals["script"]
	require.Len(t, script.Productions, 1)
	items := script.Productions[0].Items
	require.Len(t, items, 2)
	assert.Equal(t, 'a', items[0].Terminal.Char)
	assert.False(t, items[0].RequireFollows) // leading `_` on the first item is a no-op
	assert.Equal(t, 'b', items[1].Terminal.Char)
	assert.True(t, items[1].RequireFollows)
}

func Test_Parse_MultiCharSymbolLiteralExpandsPerCharacter(t *testing.T) {
	desc, err := Parse(`script: 'abc';`)
	require.NoError(t, err)
	items := desc.NonTerminals["script"].Productions[0].Items
	require.Len(t, items, 3)
	assert.False(t, items[0].RequireFollows)
	assert.True(t, items[1].RequireFollows)
	assert.True(t, items[2].RequireFollows)
	assert.Equal(t, []rune{'a', 'b', 'c'}, []rune{items[0].Terminal.Char, items[1].Terminal.Char, items[2].Terminal.Char})
}

func Test_Parse_KeywordLiteral(t *testing.T) {
	desc, err := Parse(`script: "if";`)
	require.NoError(t, err)
	items := desc.NonTerminals["script"].Productions[0].Items
	require.Len(t, items, 1)
	assert.Equal(t, RefKeyword, items[0].Terminal.Kind)
	assert.Equal(t, "if", items[0].Terminal.Text)
}

func Test_Parse_Alternatives(t *testing.T) {
	desc, err := Parse(`script: "a" | "b" | "c";`)
	require.NoError(t, err)
	require.Len(t, desc.NonTerminals["script"].Productions, 3)
}

func Test_Parse_LookaheadItems(t *testing.T) {
	desc, err := Parse(`@ident = 1; script: ident ! "end";`)
	require.NoError(t, err)
	prod := desc.NonTerminals["script"].Productions[0]
	assert.Equal(t, 1, prod.RealCount)
	require.Len(t, prod.Items, 2)
	assert.True(t, prod.Items[1].Lookahead)
}

func Test_Parse_Guard(t *testing.T) {
	desc, err := Parse(`@ident = 1; other: ident; script: other ^ flag;`)
	require.NoError(t, err)
	prod := desc.NonTerminals["script"].Productions[0]
	require.NotNil(t, prod.Guard)
	assert.False(t, prod.Guard.Negate)
	assert.Equal(t, "flag", prod.Guard.Flag)
}

func Test_Parse_NegatedGuard(t *testing.T) {
	desc, err := Parse(`@ident = 1; other: ident; script: other ^! flag;`)
	require.NoError(t, err)
	prod := desc.NonTerminals["script"].Productions[0]
	require.NotNil(t, prod.Guard)
	assert.True(t, prod.Guard.Negate)
}

func Test_Parse_InstanceSetLiteral(t *testing.T) {
	desc, err := Parse(`other: "x"; script: other<a,b>;`)
	require.NoError(t, err)
	prod := desc.NonTerminals["script"].Productions[0]
	require.NotNil(t, prod.Items[0].SetBuilder)
	assert.Equal(t, BuildLiteral, prod.Items[0].SetBuilder.Kind)
	assert.ElementsMatch(t, []string{"a", "b"}, prod.Items[0].SetBuilder.Flags)
}

func Test_Parse_InstanceSetEmpty(t *testing.T) {
	desc, err := Parse(`other: "x"; script: other<>;`)
	require.NoError(t, err)
	prod := desc.NonTerminals["script"].Productions[0]
	require.NotNil(t, prod.Items[0].SetBuilder)
	assert.Equal(t, BuildEmpty, prod.Items[0].SetBuilder.Kind)
}

func Test_Parse_InstanceSetModifier(t *testing.T) {
	desc, err := Parse(`other: "x"; script: other<@a,!b>;`)
	require.NoError(t, err)
	prod := desc.NonTerminals["script"].Productions[0]
	sb := prod.Items[0].SetBuilder
	require.NotNil(t, sb)
	assert.Equal(t, BuildModifier, sb.Kind)
	assert.Equal(t, []string{"a"}, sb.Add)
	assert.Equal(t, []string{"b"}, sb.Remove)
}

func Test_Parse_MissingNonTerminalFails(t *testing.T) {
	_, err := Parse(`script: undeclared;`)
	assert.Error(t, err)
}

func Test_Parse_MissingInputFails(t *testing.T) {
	_, err := Parse(`script: @undeclared;`)
	assert.Error(t, err)
}

func Test_Parse_EntryMarker(t *testing.T) {
	desc, err := Parse(`#root: "x"; script: root;`)
	require.NoError(t, err)
	assert.Contains(t, desc.EntryNames, "root")
	assert.True(t, desc.NonTerminals["root"].Entry)
}

func Test_Parse_PredefinedInputKinds(t *testing.T) {
	desc, err := Parse(`script: @string @integer @float @code_block;`)
	require.NoError(t, err)
	items := desc.NonTerminals["script"].Productions[0].Items
	require.Len(t, items, 4)
	assert.Equal(t, lex.KindString, itemTerminal(t, desc, items[0]).DataKind)
	assert.Equal(t, lex.KindInteger, itemTerminal(t, desc, items[1]).DataKind)
	assert.Equal(t, lex.KindFloat, itemTerminal(t, desc, items[2]).DataKind)
	assert.Equal(t, lex.KindCodeBlock, itemTerminal(t, desc, items[3]).DataKind)
}

func itemTerminal(t *testing.T, desc *Description, it Item) *Terminal {
	t.Helper()
	for _, term := range desc.Terminals {
		if term.Ref == it.Terminal {
			return term
		}
	}
	t.Fatalf("no terminal found for %v", it.Terminal)
	return nil
}

func Test_Parse_TerminalIdsSortedByTextualForm(t *testing.T) {
	desc, err := Parse(`script: "zeta" 'c' "alpha";`)
	require.NoError(t, err)
	require.True(t, len(desc.Terminals) >= 3)
	for i := 1; i < len(desc.Terminals); i++ {
		assert.Less(t, desc.Terminals[i-1].ID, desc.Terminals[i].ID)
	}
}

func Test_Parse_ReductionsDistinctIndexForDifferentItemTuples(t *testing.T) {
	desc, err := Parse(`@ident = 1; #other: "a" ident | "b" ident;`)
	require.NoError(t, err)
	nt := desc.NonTerminals["other"]
	require.Len(t, nt.Productions, 2)
	// different first terminal, so these are NOT the same reduction.
	assert.NotEqual(t, nt.Productions[0].ReductionIndex, nt.Productions[1].ReductionIndex)
}
