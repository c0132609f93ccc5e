package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// exprGrammar builds the textbook expression grammar (purple dragon book
// example 4.54's grammar with E/T/F) used throughout the CLR(1) examples.
func exprGrammar() *Grammar {
	g := New("E")
	g.AddTerminal("PLUS", `\+`, false)
	g.AddTerminal("STAR", `\*`, false)
	g.AddTerminal("LPAREN", `\(`, false)
	g.AddTerminal("RPAREN", `\)`, false)
	g.AddTerminal("ID", `[a-z]`, false)

	g.AddProduction("E", []string{"E", "PLUS", "T"}, Construct("Add", 0, 2))
	g.AddProduction("E", []string{"T"}, Project(0))
	g.AddProduction("T", []string{"T", "STAR", "F"}, Construct("Mul", 0, 2))
	g.AddProduction("T", []string{"F"}, Project(0))
	g.AddProduction("F", []string{"LPAREN", "E", "RPAREN"}, Project(1))
	g.AddProduction("F", []string{"ID"}, Project(0))

	return g
}

func Test_First_Terminal(t *testing.T) {
	g := exprGrammar()
	first := g.First([]string{"ID"})
	assert.True(t, first.Has("ID"))
	assert.Equal(t, 1, first.Len())
}

func Test_First_NonTerminal(t *testing.T) {
	g := exprGrammar()
	first := g.First([]string{"F"})
	assert.True(t, first.Has("LPAREN"))
	assert.True(t, first.Has("ID"))
	assert.Equal(t, 2, first.Len())
}

func Test_First_Nullable(t *testing.T) {
	g := New("S")
	g.AddTerminal("A", "a", false)
	g.AddProduction("S", []string{"B", "A"}, Project(1))
	g.AddProduction("B", []string{Epsilon}, NoAttribute())

	first := g.First([]string{"B"})
	assert.True(t, first.Has(Epsilon))

	firstOfSB := g.First([]string{"B", "A"})
	assert.True(t, firstOfSB.Has("A"))
	assert.False(t, firstOfSB.Has(Epsilon))
}

func Test_Augmented(t *testing.T) {
	g := exprGrammar()
	aug := g.Augmented()
	assert.NotEqual(t, g.StartSymbol(), aug.StartSymbol())
	prods := aug.Productions(aug.StartSymbol())
	if assert.Len(t, prods, 1) {
		assert.Equal(t, []string{"E"}, prods[0].Symbols)
	}
}

func Test_StartItems_ClosureIncludesAllLeadingProductions(t *testing.T) {
	g := exprGrammar()
	aug := g.Augmented()
	items := aug.StartItems()

	// closure of the augmented start item must pull in every production
	// that can appear leftmost: E, T, and F productions, each with dot at 0
	var sawE, sawT, sawF bool
	for _, it := range items {
		if it.NonTerminal == "E" && len(it.Left) == 0 {
			sawE = true
		}
		if it.NonTerminal == "T" && len(it.Left) == 0 {
			sawT = true
		}
		if it.NonTerminal == "F" && len(it.Left) == 0 {
			sawF = true
		}
	}
	assert.True(t, sawE)
	assert.True(t, sawT)
	assert.True(t, sawF)
}

func Test_Goto_AdvancesDot(t *testing.T) {
	g := exprGrammar()
	aug := g.Augmented()
	start := aug.StartItems()

	afterE := aug.Goto(start, "E")
	assert.NotEmpty(t, afterE)
	for _, it := range afterE {
		if it.NonTerminal == aug.StartSymbol() {
			assert.True(t, it.IsReduce())
		}
	}
}
