// Package grammar implements the context-free grammar description of
// spec.md §6: terminals (each backed by a regex pattern and a skip flag),
// non-terminals, and productions written in the algebraic attribute
// notation ("A > B + C + D / (Ctor, (0,2))" in the spec's sketch syntax,
// expressed here as builder calls since Go has no operator overloading).
//
// It also implements the FIRST-set fixed point and the LR(0)/LR(1) item
// representations that internal/parse's canonical LR(1) table construction
// builds on top of.
package grammar

import "fmt"

// Epsilon is the distinguished empty-production symbol, usable in any
// production's right-hand side, and the input symbol automaton package
// treats as an epsilon move.
const Epsilon = ""

// EndOfInput is the lookahead/terminal symbol representing end of input in
// LR(1) items and parse tables.
const EndOfInput = "$"

// AttributeKind says how a production's AST node is built from its
// right-hand-side children once it's reduced.
type AttributeKind int

const (
	// AttrProject takes one RHS child verbatim as the production's node
	// (a bare RHS with no attribute in the spec's notation projects child
	// 0; this is that case generalized to any single index).
	AttrProject AttributeKind = iota
	// AttrConstruct builds a new AST node via a named constructor, fed a
	// subset of the RHS children by index.
	AttrConstruct
	// AttrNone means the production contributes no AST node of its own
	// (used for epsilon productions of list non-terminals, for instance).
	AttrNone
)

// Attribute is the SDD/attribute-grammar annotation on a Production: how to
// build its AST node (if any) from the symbols it reduces.
type Attribute struct {
	Kind         AttributeKind
	ProjectIndex int
	Ctor         string
	ChildIndices []int
}

// Project builds an Attribute that takes RHS child i verbatim.
func Project(i int) Attribute { return Attribute{Kind: AttrProject, ProjectIndex: i} }

// Construct builds an Attribute that constructs ctor from the RHS children
// at the given indices, in order.
func Construct(ctor string, indices ...int) Attribute {
	return Attribute{Kind: AttrConstruct, Ctor: ctor, ChildIndices: indices}
}

// NoAttribute marks a production as contributing no AST node.
func NoAttribute() Attribute { return Attribute{Kind: AttrNone} }

// Production is one alternative right-hand side of a non-terminal.
type Production struct {
	NonTerminal string
	Symbols     []string
	Attr        Attribute
}

// TerminalDef is a terminal's own definition: the regex pattern that
// recognizes it and whether the lexer discards tokens of this class.
type TerminalDef struct {
	Name    string
	Pattern string
	Skip    bool
}

// Grammar is a context-free grammar: a start symbol, an ordered set of
// terminal definitions, and an ordered set of non-terminals each with one
// or more productions.
type Grammar struct {
	start        string
	terminals    map[string]TerminalDef
	terminalSeq  []string
	productions  map[string][]Production
	nonTermSeq   []string
}

// New returns an empty grammar with the given start symbol.
func New(start string) *Grammar {
	return &Grammar{
		start:       start,
		terminals:   map[string]TerminalDef{},
		productions: map[string][]Production{},
	}
}

// AddTerminal registers a terminal symbol. Panics if name is already a
// terminal or non-terminal.
func (g *Grammar) AddTerminal(name, pattern string, skip bool) {
	if _, ok := g.terminals[name]; ok {
		panic(fmt.Sprintf("grammar: terminal %q already defined", name))
	}
	if _, ok := g.productions[name]; ok {
		panic(fmt.Sprintf("grammar: %q is already a non-terminal", name))
	}
	g.terminals[name] = TerminalDef{Name: name, Pattern: pattern, Skip: skip}
	g.terminalSeq = append(g.terminalSeq, name)
}

// AddProduction adds one alternative right-hand side for nt. Panics if nt is
// already defined as a terminal.
func (g *Grammar) AddProduction(nt string, symbols []string, attr Attribute) {
	if _, ok := g.terminals[nt]; ok {
		panic(fmt.Sprintf("grammar: %q is already a terminal", nt))
	}
	if _, ok := g.productions[nt]; !ok {
		g.nonTermSeq = append(g.nonTermSeq, nt)
	}
	g.productions[nt] = append(g.productions[nt], Production{NonTerminal: nt, Symbols: symbols, Attr: attr})
}

// StartSymbol returns the grammar's start non-terminal.
func (g *Grammar) StartSymbol() string { return g.start }

// IsTerminal reports whether sym is a defined terminal.
func (g *Grammar) IsTerminal(sym string) bool {
	_, ok := g.terminals[sym]
	return ok
}

// IsNonTerminal reports whether sym is a defined non-terminal.
func (g *Grammar) IsNonTerminal(sym string) bool {
	_, ok := g.productions[sym]
	return ok
}

// Terminal returns the definition of a terminal. Panics if sym isn't one.
func (g *Grammar) Terminal(sym string) TerminalDef {
	t, ok := g.terminals[sym]
	if !ok {
		panic(fmt.Sprintf("grammar: %q is not a terminal", sym))
	}
	return t
}

// Terminals returns all terminal names in definition order.
func (g *Grammar) Terminals() []string {
	out := make([]string, len(g.terminalSeq))
	copy(out, g.terminalSeq)
	return out
}

// NonTerminals returns all non-terminal names in definition order.
func (g *Grammar) NonTerminals() []string {
	out := make([]string, len(g.nonTermSeq))
	copy(out, g.nonTermSeq)
	return out
}

// Productions returns the productions of nt, in the order they were added.
// Panics if nt is not a defined non-terminal.
func (g *Grammar) Productions(nt string) []Production {
	p, ok := g.productions[nt]
	if !ok {
		panic(fmt.Sprintf("grammar: %q is not a non-terminal", nt))
	}
	return p
}

// AllProductions returns every production in the grammar, non-terminal by
// non-terminal in definition order, alternatives in the order they were
// added -- a stable, deterministic enumeration used when building item sets.
func (g *Grammar) AllProductions() []Production {
	var all []Production
	for _, nt := range g.nonTermSeq {
		all = append(all, g.productions[nt]...)
	}
	return all
}

// augmentedSuffix is appended to the start symbol to name the synthetic
// start symbol of an augmented grammar.
// Suffixing with a character no legal identifier in this DSL can contain
// guarantees it never collides with a user-declared non-terminal.
const augmentedSuffix = "'"

// Augmented returns a copy of g with a new start symbol S' and a single
// production S' -> S added, per the standard augmented-grammar
// construction used to seed the canonical LR(1) automaton.
func (g *Grammar) Augmented() *Grammar {
	newStart := g.start + augmentedSuffix
	for g.IsNonTerminal(newStart) || g.IsTerminal(newStart) {
		newStart += augmentedSuffix
	}

	augmented := &Grammar{
		start:       newStart,
		terminals:   map[string]TerminalDef{},
		productions: map[string][]Production{},
	}
	for _, name := range g.terminalSeq {
		augmented.terminals[name] = g.terminals[name]
	}
	augmented.terminalSeq = append(augmented.terminalSeq, g.terminalSeq...)

	augmented.AddProduction(newStart, []string{g.start}, Project(0))
	for _, nt := range g.nonTermSeq {
		for _, p := range g.productions[nt] {
			augmented.AddProduction(p.NonTerminal, p.Symbols, p.Attr)
		}
	}

	return augmented
}
