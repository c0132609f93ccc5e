package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simulationTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable("$", '\n', ' ', []Rule{
		{Name: "WS", Pattern: `[ \t\n]+`, Skip: true},
		{Name: "KW_AGENT", Pattern: "agent"},
		{Name: "IDENT", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "NUMBER", Pattern: `[0-9]+`},
		{Name: "PLUS", Pattern: `\+`},
		{Name: "ASSIGN", Pattern: `=`},
	})
	require.NoError(t, err)
	return table
}

func Test_Tokenize(t *testing.T) {
	// setup
	assert := assert.New(t)
	require := require.New(t)
	table := simulationTable(t)

	// execute
	tokens, err := table.Tokenize("agent coin1 = 42 + x")
	require.NoError(err)

	// assert
	var names []string
	for _, tok := range tokens {
		names = append(names, tok.Name)
	}
	assert.Equal([]string{"KW_AGENT", "IDENT", "ASSIGN", "NUMBER", "PLUS", "IDENT", "$"}, names)
}

func Test_Tokenize_RuleOrderWinsOverLength(t *testing.T) {
	// a keyword rule placed before the identifier rule wins even though
	// both match the same lexeme; this is the documented first-match
	// behavior, not longest-match-across-rules.
	assert := assert.New(t)
	require := require.New(t)
	table := simulationTable(t)

	tokens, err := table.Tokenize("agent")
	require.NoError(err)
	require.Len(tokens, 2) // KW_AGENT, $
	assert.Equal("KW_AGENT", tokens[0].Name)
}

func Test_Tokenize_UnexpectedCharacter(t *testing.T) {
	assert := assert.New(t)
	table := simulationTable(t)

	_, err := table.Tokenize("x @ y")
	if assert.Error(err) {
		var uce *UnexpectedCharacterError
		assert.ErrorAs(err, &uce)
		assert.Equal('@', uce.Char)
	}
}
