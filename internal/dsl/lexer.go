package dsl

import (
	"github.com/lassiter/cryptolang/internal/grammar"
	"github.com/lassiter/cryptolang/internal/lex"
)

// LexerTable derives a lex.Table from g's terminal definitions, preserving
// their declaration order (which is also their lexer-priority order; see
// Grammar's doc comment). The EOF symbol matches grammar.EndOfInput so
// lexer-emitted tokens line up with the LR table's end-of-input lookahead.
func LexerTable(g *grammar.Grammar) (*lex.Table, error) {
	var rules []lex.Rule
	for _, name := range g.Terminals() {
		def := g.Terminal(name)
		rules = append(rules, lex.Rule{Name: def.Name, Pattern: def.Pattern, Skip: def.Skip})
	}
	return lex.NewTable(grammar.EndOfInput, '\n', ' ', rules)
}
