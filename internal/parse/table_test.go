package parse

import (
	"fmt"
	"testing"

	"github.com/lassiter/cryptolang/internal/grammar"
	"github.com/lassiter/cryptolang/internal/lex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sumGrammar is the textbook "E -> E + T | T, T -> T * F | F, F -> ( E ) | id"
// grammar, the standard worked example for canonical LR(1) construction.
func sumGrammar() *grammar.Grammar {
	g := grammar.New("E")
	g.AddTerminal("PLUS", `\+`, false)
	g.AddTerminal("STAR", `\*`, false)
	g.AddTerminal("LPAREN", `\(`, false)
	g.AddTerminal("RPAREN", `\)`, false)
	g.AddTerminal("NUM", `[0-9]+`, false)

	g.AddProduction("E", []string{"E", "PLUS", "T"}, grammar.Construct("Add", 0, 2))
	g.AddProduction("E", []string{"T"}, grammar.Project(0))
	g.AddProduction("T", []string{"T", "STAR", "F"}, grammar.Construct("Mul", 0, 2))
	g.AddProduction("T", []string{"F"}, grammar.Project(0))
	g.AddProduction("F", []string{"LPAREN", "E", "RPAREN"}, grammar.Project(1))
	g.AddProduction("F", []string{"NUM"}, grammar.Construct("Num", 0))

	return g
}

func tok(name, lexeme string) lex.Token { return lex.Token{Name: name, Lexeme: lexeme} }

func Test_Generate_NoConflicts(t *testing.T) {
	g := sumGrammar()
	table, err := Generate(g)
	require.NoError(t, err)
	assert.NotEmpty(t, table.itemSets)
}

type numNode struct{ v string }
type binNode struct {
	op          string
	left, right any
}

func exprConstructor(ctor string, children []any) (any, error) {
	switch ctor {
	case "Num":
		return numNode{v: children[0].(lex.Token).Lexeme}, nil
	case "Add":
		return binNode{op: "+", left: children[0], right: children[1]}, nil
	case "Mul":
		return binNode{op: "*", left: children[0], right: children[1]}, nil
	default:
		return nil, fmt.Errorf("unknown ctor %q", ctor)
	}
}

func Test_Parse_SimpleSum(t *testing.T) {
	g := sumGrammar()
	table, err := Generate(g)
	require.NoError(t, err)

	tokens := []lex.Token{
		tok("NUM", "1"),
		tok("PLUS", "+"),
		tok("NUM", "2"),
		tok("STAR", "*"),
		tok("NUM", "3"),
		tok(grammar.EndOfInput, grammar.EndOfInput),
	}

	result, err := Parse(table, tokens, exprConstructor)
	require.NoError(t, err)

	add, ok := result.(binNode)
	require.True(t, ok)
	assert.Equal(t, "+", add.op)

	left, ok := add.left.(numNode)
	require.True(t, ok)
	assert.Equal(t, "1", left.v)

	right, ok := add.right.(binNode)
	require.True(t, ok)
	assert.Equal(t, "*", right.op)
}

func Test_Parse_Parenthesized(t *testing.T) {
	g := sumGrammar()
	table, err := Generate(g)
	require.NoError(t, err)

	tokens := []lex.Token{
		tok("LPAREN", "("),
		tok("NUM", "1"),
		tok("PLUS", "+"),
		tok("NUM", "2"),
		tok("RPAREN", ")"),
		tok("STAR", "*"),
		tok("NUM", "3"),
		tok(grammar.EndOfInput, grammar.EndOfInput),
	}

	result, err := Parse(table, tokens, exprConstructor)
	require.NoError(t, err)

	mul, ok := result.(binNode)
	require.True(t, ok)
	assert.Equal(t, "*", mul.op)
	_, ok = mul.left.(binNode)
	assert.True(t, ok)
}

func Test_Parse_SyntaxError(t *testing.T) {
	g := sumGrammar()
	table, err := Generate(g)
	require.NoError(t, err)

	tokens := []lex.Token{
		tok("NUM", "1"),
		tok("NUM", "2"),
		tok(grammar.EndOfInput, grammar.EndOfInput),
	}

	_, err = Parse(table, tokens, exprConstructor)
	require.Error(t, err)
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
}
