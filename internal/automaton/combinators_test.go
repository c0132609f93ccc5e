package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func oneCharNFA(c string) NFA[string] {
	nfa := NFA[string]{}
	nfa.AddState("a", false)
	nfa.AddState("b", true)
	nfa.SetValue("a", "")
	nfa.SetValue("b", "")
	nfa.Start = "a"
	nfa.AddTransition("a", c, "b")
	return nfa
}

func acceptsAll(t *testing.T, nfa NFA[string], accept []string, reject []string) {
	t.Helper()
	dfa := nfa.ToDFA()

	for _, s := range accept {
		state := dfa.Start
		ok := dfa.IsAccepting(state)
		for _, c := range s {
			state = dfa.Next(state, string(c))
			if state == "" {
				ok = false
				break
			}
			ok = dfa.IsAccepting(state)
		}
		assert.True(t, ok, "expected %q to be accepted", s)
	}
	for _, s := range reject {
		state := dfa.Start
		ok := dfa.IsAccepting(state)
		for _, c := range s {
			state = dfa.Next(state, string(c))
			if state == "" {
				ok = false
				break
			}
			ok = dfa.IsAccepting(state)
		}
		assert.False(t, ok, "expected %q to be rejected", s)
	}
}

func Test_Concat(t *testing.T) {
	// setup
	ab := Concat(oneCharNFA("a"), oneCharNFA("b"))

	// execute & assert
	acceptsAll(t, ab, []string{"ab"}, []string{"a", "b", "ba", "abc"})
}

func Test_Union(t *testing.T) {
	// setup
	aOrB := Union(oneCharNFA("a"), oneCharNFA("b"))

	// execute & assert
	acceptsAll(t, aOrB, []string{"a", "b"}, []string{"", "ab", "c"})
}

func Test_Maybe(t *testing.T) {
	// setup
	maybeA := Maybe(oneCharNFA("a"))

	// execute & assert
	acceptsAll(t, maybeA, []string{"", "a"}, []string{"aa"})
}

func Test_Repeat(t *testing.T) {
	// setup
	aPlus := Repeat(oneCharNFA("a"))

	// execute & assert
	acceptsAll(t, aPlus, []string{"a", "aa", "aaa"}, []string{"", "ab"})
}

func Test_KleeneStar(t *testing.T) {
	// setup
	aStar := KleeneStar(oneCharNFA("a"))

	// execute & assert
	acceptsAll(t, aStar, []string{"", "a", "aaaa"}, []string{"b", "ab"})
}
