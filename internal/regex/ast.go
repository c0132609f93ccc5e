package regex

import (
	"github.com/lassiter/cryptolang/internal/automaton"
	"github.com/lassiter/cryptolang/internal/util"
)

// Tags is the content carried by an accepting state of a compiled pattern's
// NFA: the set of named-group names whose inner automaton finished exactly
// at that state. Concatenation clears a state's "accepting" flag but never
// touches its Tags, so a tag set survives even once the state it's attached
// to is folded into a larger pattern.
type Tags = util.StringSet

// Node is a parsed regular-expression AST node: every variant from spec.md's
// "Regex AST" (Alternation, Concatenation, KleeneStar, KleenePlus, Maybe,
// Group, NamedGroup, PositiveSet, NegativeSet, Char, EscapedOrShorthand)
// implements it. Eval produces an NFA per the standard Thompson construction
// rules, inductively over the tree.
type Node interface {
	Eval() automaton.NFA[Tags]
}

// classNode is implemented by AST nodes that can appear inside a bracket
// expression ([...]): Char, EscapedOrShorthand, Range, and MixedRange. They
// evaluate to a set of runes rather than an automaton.
type classNode interface {
	runes() map[rune]bool
}

// Alternation is `first | second`.
type Alternation struct {
	First, Second Node
}

func (n Alternation) Eval() automaton.NFA[Tags] {
	return automaton.Union(n.First.Eval(), n.Second.Eval())
}

// Concatenation is `first second`.
type Concatenation struct {
	First, Second Node
}

func (n Concatenation) Eval() automaton.NFA[Tags] {
	return automaton.Concat(n.First.Eval(), n.Second.Eval())
}

// KleeneStar is `inner*`: zero or more occurrences.
type KleeneStar struct {
	Inner Node
}

func (n KleeneStar) Eval() automaton.NFA[Tags] {
	return automaton.KleeneStar(n.Inner.Eval())
}

// KleenePlus is `inner+`: one or more occurrences.
type KleenePlus struct {
	Inner Node
}

func (n KleenePlus) Eval() automaton.NFA[Tags] {
	return automaton.Repeat(n.Inner.Eval())
}

// Maybe is `inner?`: zero or one occurrence.
type Maybe struct {
	Inner Node
}

func (n Maybe) Eval() automaton.NFA[Tags] {
	return automaton.Maybe(n.Inner.Eval())
}

// Group is a parenthesized `(inner)` with no capture semantics of its own;
// it exists only to override precedence.
type Group struct {
	Inner Node
}

func (n Group) Eval() automaton.NFA[Tags] {
	return n.Inner.Eval()
}

// NamedGroup is `(?P<name>inner)`. Every accepting state of inner's
// automaton is tagged with name.
type NamedGroup struct {
	Name  string
	Inner Node
}

func (n NamedGroup) Eval() automaton.NFA[Tags] {
	nfa := n.Inner.Eval()
	for _, state := range nfa.AcceptingStates().Elements() {
		tags := nfa.GetValue(state)
		tagged := util.NewStringSet()
		tagged.AddAll(tags)
		tagged.Add(n.Name)
		nfa.SetValue(state, tagged)
	}
	return nfa
}

// PositiveSet is `[item...]`: matches any single rune covered by its class
// item chain (see MixedRange).
type PositiveSet struct {
	Item classNode
}

func (n PositiveSet) Eval() automaton.NFA[Tags] {
	return charClassAutomaton(n.Item.runes())
}

// NegativeSet is `[^item...]`: matches any single printable, non-reserved
// rune NOT covered by its class item chain.
type NegativeSet struct {
	Item classNode
}

func (n NegativeSet) Eval() automaton.NFA[Tags] {
	excluded := n.Item.runes()
	remaining := map[rune]bool{}
	for r := range alphabet {
		if !excluded[r] {
			remaining[r] = true
		}
	}
	return charClassAutomaton(remaining)
}

// Char is a single literal character. It doubles as a classNode so it can
// also appear as a bracket-expression item or a Range endpoint.
type Char struct {
	Value rune
}

func (n Char) Eval() automaton.NFA[Tags] { return charClassAutomaton(map[rune]bool{n.Value: true}) }
func (n Char) runes() map[rune]bool      { return map[rune]bool{n.Value: true} }

// EscapedOrShorthand is a backslash escape (`\.`, `\(`, ...) or one of the
// shorthand classes `\d`/`\D`/`.`. It also doubles as a classNode.
type EscapedOrShorthand struct {
	Flag rune
}

func (n EscapedOrShorthand) Eval() automaton.NFA[Tags] {
	return charClassAutomaton(shorthandResolver(n.Flag))
}
func (n EscapedOrShorthand) runes() map[rune]bool { return shorthandResolver(n.Flag) }

// Range is `lo-hi` inside a bracket expression.
type Range struct {
	Lo, Hi classNode
}

func (n Range) runes() map[rune]bool {
	loSet, hiSet := n.Lo.runes(), n.Hi.runes()
	if len(loSet) != 1 || len(hiSet) != 1 {
		panic("regex: range endpoints must each denote exactly one rune")
	}
	var lo, hi rune
	for r := range loSet {
		lo = r
	}
	for r := range hiSet {
		hi = r
	}
	set, err := runeRange(lo, hi)
	if err != nil {
		panic(err)
	}
	return set
}

// MixedRange chains a class item onto the rest of a bracket expression's
// item list (`classItem+` in the grammar sketch): its runes are the union of
// First and Second.
type MixedRange struct {
	First, Second classNode
}

func (n MixedRange) runes() map[rune]bool {
	return unionRuneSets(n.First.runes(), n.Second.runes())
}

func unionRuneSets(sets ...map[rune]bool) map[rune]bool {
	out := map[rune]bool{}
	for _, s := range sets {
		for r := range s {
			out[r] = true
		}
	}
	return out
}

// charClassAutomaton builds the canonical two-state NFA for "match exactly
// one rune from set": a non-accepting start with one transition per rune to
// a shared accepting final.
func charClassAutomaton(set map[rune]bool) automaton.NFA[Tags] {
	if len(set) == 0 {
		panic("regex: empty character class")
	}

	nfa := automaton.NFA[Tags]{}
	nfa.AddState("start", false)
	nfa.AddState("final", true)
	nfa.SetValue("start", nil)
	nfa.SetValue("final", nil)
	nfa.Start = "start"

	for r := range set {
		nfa.AddTransition("start", string(r), "final")
	}

	return nfa
}
