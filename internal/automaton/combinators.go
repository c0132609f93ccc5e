package automaton

import "fmt"

// The combinators in this file build new NFAs out of existing ones by
// namespacing each operand's states (so names never collide) and wiring
// epsilon transitions between them. They're the Go form of the operator
// overloads on the original project's Automaton class: Concat is __add__,
// Union is __or__, Maybe is lazy, and Repeat is repeat. KleeneStar doesn't
// have a standalone counterpart there; it's just Maybe(Repeat(a)), which is
// how the regex AST node of the same name is evaluated.

func namespacedCopy[E any](src NFA[E], prefix string) NFA[E] {
	dst := NFA[E]{states: make(map[string]NFAState[E])}

	for _, name := range src.States().Elements() {
		st := src.states[name]
		newName := prefix + name
		dst.AddState(newName, st.accepting)
		dst.SetValue(newName, st.value)
	}
	for _, name := range src.States().Elements() {
		st := src.states[name]
		from := prefix + name
		for sym, trans := range st.transitions {
			for _, t := range trans {
				dst.AddTransition(from, sym, prefix+t.next)
			}
		}
	}
	dst.Start = prefix + src.Start

	return dst
}

// Concat builds an NFA accepting the concatenation of the languages accepted
// by a and b: every accepting state of a gains an epsilon transition to the
// start of b and stops being accepting; b's accepting states are unchanged.
func Concat[E any](a, b NFA[E]) NFA[E] {
	left := namespacedCopy(a, "1:")
	right := namespacedCopy(b, "2:")

	joined := NFA[E]{states: make(map[string]NFAState[E]), Start: left.Start}
	for name, st := range left.states {
		joined.states[name] = st
	}
	for name, st := range right.states {
		joined.states[name] = st
	}

	for _, name := range left.AcceptingStates().Elements() {
		joined.AddTransition(name, Epsilon, right.Start)
		st := joined.states[name]
		st.accepting = false
		joined.states[name] = st
	}

	return joined
}

// Union builds an NFA accepting the union of the languages accepted by a and
// b, via a new start state with epsilon transitions to both operands'
// starts.
func Union[E any](a, b NFA[E]) NFA[E] {
	left := namespacedCopy(a, "1:")
	right := namespacedCopy(b, "2:")

	joined := NFA[E]{states: make(map[string]NFAState[E])}
	for name, st := range left.states {
		joined.states[name] = st
	}
	for name, st := range right.states {
		joined.states[name] = st
	}

	var zero E
	const dummyStart = "start"
	if _, collision := joined.states[dummyStart]; collision {
		panic(fmt.Sprintf("internal error: namespaced state collided with dummy union start %q", dummyStart))
	}
	joined.AddState(dummyStart, false)
	joined.SetValue(dummyStart, zero)
	joined.Start = dummyStart

	joined.AddTransition(dummyStart, Epsilon, left.Start)
	joined.AddTransition(dummyStart, Epsilon, right.Start)

	return joined
}

// Maybe builds an NFA accepting zero or one occurrences of a's language: an
// epsilon transition straight from the start to every accepting state.
func Maybe[E any](a NFA[E]) NFA[E] {
	copied := a.Copy()
	for _, name := range copied.AcceptingStates().Elements() {
		copied.AddTransition(copied.Start, Epsilon, name)
	}
	return copied
}

// Repeat builds an NFA accepting one or more occurrences of a's language: an
// epsilon transition from every accepting state back to the start.
func Repeat[E any](a NFA[E]) NFA[E] {
	copied := a.Copy()
	for _, name := range copied.AcceptingStates().Elements() {
		copied.AddTransition(name, Epsilon, copied.Start)
	}
	return copied
}

// KleeneStar builds an NFA accepting zero or more occurrences of a's
// language.
func KleeneStar[E any](a NFA[E]) NFA[E] {
	return Maybe(Repeat(a))
}
