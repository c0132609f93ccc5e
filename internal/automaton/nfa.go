package automaton

import (
	"fmt"
	"strings"

	"github.com/lassiter/cryptolang/internal/util"
)

// NFA is a non-deterministic finite automaton whose states each carry a
// value of type E.
type NFA[E any] struct {
	states map[string]NFAState[E]
	Start  string
}

// States returns the set of all state names in the NFA.
func (nfa NFA[E]) States() util.StringSet {
	states := util.NewStringSet()
	for k := range nfa.states {
		states.Add(k)
	}
	return states
}

// AcceptingStates returns the set of all accepting state names.
func (nfa NFA[E]) AcceptingStates() util.StringSet {
	accepting := util.NewStringSet()
	for name, st := range nfa.states {
		if st.accepting {
			accepting.Add(name)
		}
	}
	return accepting
}

// IsAccepting returns whether the given state is accepting. Returns false if
// the state does not exist.
func (nfa NFA[E]) IsAccepting(state string) bool {
	st, ok := nfa.states[state]
	return ok && st.accepting
}

// Copy returns a deep duplicate of this NFA.
func (nfa NFA[E]) Copy() NFA[E] {
	copied := NFA[E]{
		Start:  nfa.Start,
		states: make(map[string]NFAState[E]),
	}
	for k := range nfa.states {
		copied.states[k] = nfa.states[k].Copy()
	}
	return copied
}

// AddState adds a new state to the NFA. It is a no-op if the state already
// exists.
func (nfa *NFA[E]) AddState(state string, accepting bool) {
	if _, ok := nfa.states[state]; ok {
		return
	}

	if nfa.states == nil {
		nfa.states = map[string]NFAState[E]{}
	}

	nfa.states[state] = NFAState[E]{
		name:        state,
		transitions: make(map[string][]FATransition),
		accepting:   accepting,
	}
}

// SetValue sets the value associated with an existing state. Panics if the
// state does not exist.
func (nfa *NFA[E]) SetValue(state string, v E) {
	s, ok := nfa.states[state]
	if !ok {
		panic(fmt.Sprintf("setting value on non-existing state: %q", state))
	}
	s.value = v
	nfa.states[state] = s
}

// GetValue returns the value associated with an existing state. Panics if
// the state does not exist.
func (nfa NFA[E]) GetValue(state string) E {
	s, ok := nfa.states[state]
	if !ok {
		panic(fmt.Sprintf("getting value on non-existing state: %q", state))
	}
	return s.value
}

// AddTransition adds a transition from fromState to toState on input. Panics
// if either state does not exist. Multiple transitions on the same input are
// allowed (that's what makes it non-deterministic); use Epsilon as input for
// an epsilon move.
func (nfa *NFA[E]) AddTransition(fromState string, input string, toState string) {
	curFromState, ok := nfa.states[fromState]
	if !ok {
		panic(fmt.Sprintf("add transition from non-existent state %q", fromState))
	}
	if _, ok := nfa.states[toState]; !ok {
		panic(fmt.Sprintf("add transition to non-existent state %q", toState))
	}

	curFromState.transitions[input] = append(curFromState.transitions[input], FATransition{input: input, next: toState})
	nfa.states[fromState] = curFromState
}

// InputSymbols returns the set of all non-epsilon input symbols used by some
// transition in the NFA.
func (nfa NFA[E]) InputSymbols() util.StringSet {
	symbols := util.NewStringSet()
	for _, st := range nfa.states {
		for a := range st.transitions {
			if a != Epsilon {
				symbols.Add(a)
			}
		}
	}
	return symbols
}

// MOVE returns the set of states reachable with one transition from some
// state in X on input a. This is purple dragon book's MOVE(T, a), algorithm
// 3.20, p. 153.
func (nfa NFA[E]) MOVE(X util.ISet[string], a string) util.StringSet {
	moves := util.NewStringSet()
	for _, s := range X.Elements() {
		st, ok := nfa.states[s]
		if !ok {
			continue
		}
		for _, t := range st.transitions[a] {
			moves.Add(t.next)
		}
	}
	return moves
}

// EpsilonClosure gives the set of states reachable from s using zero or more
// epsilon moves (s is always included in its own closure).
func (nfa NFA[E]) EpsilonClosure(s string) util.StringSet {
	stateItem, ok := nfa.states[s]
	if !ok {
		return nil
	}

	closure := util.NewStringSet()
	pending := util.Stack[NFAState[E]]{}
	pending.Push(stateItem)

	for pending.Len() > 0 {
		checking := pending.Pop()
		if closure.Has(checking.name) {
			continue
		}
		closure.Add(checking.name)

		for _, move := range checking.transitions[Epsilon] {
			next, ok := nfa.states[move.next]
			if !ok {
				panic(fmt.Sprintf("points to invalid state: %q", move.next))
			}
			pending.Push(next)
		}
	}

	return closure
}

// EpsilonClosureOfSet is EpsilonClosure applied to every state in X and
// unioned together.
func (nfa NFA[E]) EpsilonClosureOfSet(X util.ISet[string]) util.StringSet {
	all := util.NewStringSet()
	for _, s := range X.Elements() {
		all.AddAll(nfa.EpsilonClosure(s))
	}
	return all
}

// ToDFA converts the NFA into a deterministic finite automaton accepting the
// same language, via the Rabin-Scott subset (powerset) construction. This is
// purple dragon book's algorithm 3.20.
func (nfa NFA[E]) ToDFA() DFA[util.SVSet[E]] {
	inputSymbols := nfa.InputSymbols()

	dStart := nfa.EpsilonClosure(nfa.Start)

	marked := util.NewStringSet()
	dStates := map[string]util.StringSet{dStart.StringOrdered(): dStart}

	dfa := DFA[util.SVSet[E]]{states: map[string]DFAState[util.SVSet[E]]{}}

	for {
		dStateNames := util.StringSetOf(util.OrderedKeys(dStates))
		unmarked := dStateNames.Difference(marked)
		if unmarked.Len() < 1 {
			break
		}

		for _, tName := range unmarked.Elements() {
			t := dStates[tName]
			marked.Add(tName)

			values := util.NewSVSet[E]()
			for nfaState := range t {
				values.Set(nfaState, nfa.GetValue(nfaState))
			}

			newState := DFAState[util.SVSet[E]]{name: tName, value: values, transitions: map[string]FATransition{}}
			if t.Any(func(v string) bool { return nfa.states[v].accepting }) {
				newState.accepting = true
			}

			for _, a := range inputSymbols.Elements() {
				u := nfa.EpsilonClosureOfSet(nfa.MOVE(t, a))
				if u.Empty() {
					continue
				}

				if !dStateNames.Has(u.StringOrdered()) {
					dStateNames.Add(u.StringOrdered())
					dStates[u.StringOrdered()] = u
				}

				newState.transitions[a] = FATransition{input: a, next: u.StringOrdered()}
			}

			dfa.states[tName] = newState
			if dfa.Start == "" {
				dfa.Start = tName
			}
		}
	}

	return dfa
}

// NumberStates renames all states so they are numbered starting from 0, with
// the start state guaranteed to be state "0" and all others in alphabetical
// order of their prior name. This keeps generated tables' state numbering
// stable across runs regardless of map iteration order.
func (nfa *NFA[E]) NumberStates() {
	if _, ok := nfa.states[nfa.Start]; !ok {
		panic("can't number states of NFA with no start state set")
	}

	origNames := util.OrderedKeys(nfa.states)
	startIdx := -1
	for i := range origNames {
		if origNames[i] == nfa.Start {
			startIdx = i
			break
		}
	}
	origNames = append(origNames[:startIdx], origNames[startIdx+1:]...)
	origNames = append([]string{nfa.Start}, origNames...)

	numMapping := map[string]string{}
	for i, name := range origNames {
		numMapping[name] = fmt.Sprintf("%d", i)
	}

	renamed := NFA[E]{states: make(map[string]NFAState[E]), Start: numMapping[nfa.Start]}
	for _, name := range origNames {
		st := nfa.states[name]
		newName := numMapping[name]
		renamed.AddState(newName, st.accepting)
		renamed.SetValue(newName, st.value)
	}
	for _, name := range origNames {
		st := nfa.states[name]
		from := numMapping[name]
		for sym, trans := range st.transitions {
			for _, t := range trans {
				renamed.AddTransition(from, sym, numMapping[t.next])
			}
		}
	}

	nfa.states = renamed.states
	nfa.Start = renamed.Start
}

func (nfa NFA[E]) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<START: %q, STATES:", nfa.Start))

	ordered := util.OrderedKeys(nfa.states)
	for i, name := range ordered {
		sb.WriteString("\n\t")
		sb.WriteString(nfa.states[name].String())
		if i+1 < len(ordered) {
			sb.WriteRune(',')
		} else {
			sb.WriteRune('\n')
		}
	}
	sb.WriteRune('>')
	return sb.String()
}
