// Package automaton provides generic finite-automaton machinery: NFA/DFA
// state graphs, epsilon-closure and powerset (subset) construction, and the
// regex combinators (concatenation, union, optionality, repetition) used to
// build an NFA out of a parsed regular expression.
//
// The types here are deliberately unaware of where their state values come
// from; internal/regex instantiates them with a tag-set value to track named
// capture groups. (internal/parse does not use this package: it builds its
// LR(1) item sets directly over internal/grammar's Closure/Goto.)
// Determinism matters throughout: anywhere
// this package iterates over a map for output or state numbering, it sorts
// keys first (see util.OrderedKeys) so that two runs over the same input
// produce byte-identical tables.
package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lassiter/cryptolang/internal/util"
)

// Epsilon is the reserved input symbol denoting an epsilon (empty) move. No
// real input symbol may be the empty string.
const Epsilon = ""

// FATransition is a single edge in a finite automaton: on seeing input, move
// to the state named next.
type FATransition struct {
	input string
	next  string
}

func (t FATransition) String() string {
	inp := t.input
	if inp == "" {
		inp = "ε"
	}
	return fmt.Sprintf("=(%s)=> %s", inp, t.next)
}

// DFAState is a single state of a DFA, carrying an arbitrary value E (for
// example, the set of NFA states it was built from during determinization).
type DFAState[E any] struct {
	name        string
	value       E
	transitions map[string]FATransition
	accepting   bool
}

func (ds DFAState[E]) Copy() DFAState[E] {
	copied := DFAState[E]{
		name:        ds.name,
		value:       ds.value,
		accepting:   ds.accepting,
		transitions: make(map[string]FATransition),
	}
	for k := range ds.transitions {
		copied.transitions[k] = ds.transitions[k]
	}
	return copied
}

func (ds DFAState[E]) String() string {
	var moves strings.Builder

	inputs := util.OrderedKeys(ds.transitions)
	for i, input := range inputs {
		moves.WriteString(ds.transitions[input].String())
		if i+1 < len(inputs) {
			moves.WriteString(", ")
		}
	}

	str := fmt.Sprintf("(%s [%s])", ds.name, moves.String())
	if ds.accepting {
		str = "(" + str + ")"
	}
	return str
}

// NFAState is a single state of an NFA. Unlike a DFA state, each input symbol
// may map to more than one destination, and the empty-string symbol ("") is
// used for epsilon moves.
type NFAState[E any] struct {
	name        string
	value       E
	transitions map[string][]FATransition
	accepting   bool
}

func (ns NFAState[E]) Copy() NFAState[E] {
	copied := NFAState[E]{
		name:        ns.name,
		value:       ns.value,
		accepting:   ns.accepting,
		transitions: make(map[string][]FATransition),
	}
	for k := range ns.transitions {
		copiedTrans := make([]FATransition, len(ns.transitions[k]))
		copy(copiedTrans, ns.transitions[k])
		copied.transitions[k] = copiedTrans
	}
	return copied
}

func (ns NFAState[E]) String() string {
	var moves strings.Builder

	inputs := util.OrderedKeys(ns.transitions)
	for i, input := range inputs {
		var tStrings []string
		for _, t := range ns.transitions[input] {
			tStrings = append(tStrings, t.String())
		}
		sort.Strings(tStrings)

		for tIdx, t := range tStrings {
			moves.WriteString(t)
			if tIdx+1 < len(tStrings) || i+1 < len(inputs) {
				moves.WriteString(", ")
			}
		}
	}

	str := fmt.Sprintf("(%s [%s])", ns.name, moves.String())
	if ns.accepting {
		str = "(" + str + ")"
	}
	return str
}
