package automaton

import (
	"fmt"
	"strings"

	"github.com/lassiter/cryptolang/internal/util"
)

// DFA is a deterministic finite automaton whose states each carry a value of
// type E.
type DFA[E any] struct {
	states map[string]DFAState[E]
	Start  string
}

// Copy returns a deep duplicate of this DFA.
func (dfa DFA[E]) Copy() DFA[E] {
	copied := DFA[E]{Start: dfa.Start, states: make(map[string]DFAState[E])}
	for k := range dfa.states {
		copied.states[k] = dfa.states[k].Copy()
	}
	return copied
}

// States returns the set of all state names in the DFA.
func (dfa DFA[E]) States() util.StringSet {
	states := util.NewStringSet()
	for k := range dfa.states {
		states.Add(k)
	}
	return states
}

// IsAccepting returns whether the given state is accepting. Returns false if
// the state does not exist.
func (dfa DFA[E]) IsAccepting(state string) bool {
	s, ok := dfa.states[state]
	return ok && s.accepting
}

// Next returns the next state reached from fromState on input, or "" if
// fromState doesn't exist or has no transition on input.
func (dfa DFA[E]) Next(fromState string, input string) string {
	state, ok := dfa.states[fromState]
	if !ok {
		return ""
	}
	trans, ok := state.transitions[input]
	if !ok {
		return ""
	}
	return trans.next
}

// AddState adds a new state to the DFA. No-op if it already exists.
func (dfa *DFA[E]) AddState(state string, accepting bool) {
	if _, ok := dfa.states[state]; ok {
		return
	}
	if dfa.states == nil {
		dfa.states = map[string]DFAState[E]{}
	}
	dfa.states[state] = DFAState[E]{name: state, transitions: make(map[string]FATransition), accepting: accepting}
}

// SetValue sets the value of an existing state. Panics if it doesn't exist.
func (dfa *DFA[E]) SetValue(state string, v E) {
	s, ok := dfa.states[state]
	if !ok {
		panic(fmt.Sprintf("setting value on non-existing state: %q", state))
	}
	s.value = v
	dfa.states[state] = s
}

// GetValue returns the value of an existing state. Panics if it doesn't
// exist.
func (dfa DFA[E]) GetValue(state string) E {
	s, ok := dfa.states[state]
	if !ok {
		panic(fmt.Sprintf("getting value on non-existing state: %q", state))
	}
	return s.value
}

// AddTransition adds a (deterministic) transition from fromState to toState
// on input, overwriting any existing transition on that input. Panics if
// either state doesn't exist.
func (dfa *DFA[E]) AddTransition(fromState string, input string, toState string) {
	curFromState, ok := dfa.states[fromState]
	if !ok {
		panic(fmt.Sprintf("add transition from non-existent state %q", fromState))
	}
	if _, ok := dfa.states[toState]; !ok {
		panic(fmt.Sprintf("add transition to non-existent state %q", toState))
	}
	curFromState.transitions[input] = FATransition{input: input, next: toState}
	dfa.states[fromState] = curFromState
}

// NumberStates renames all states so they are numbered starting from 0, with
// the start state guaranteed to be "0".
func (dfa *DFA[E]) NumberStates() {
	if _, ok := dfa.states[dfa.Start]; !ok {
		panic("can't number states of DFA with no start state set")
	}

	origNames := util.OrderedKeys(dfa.states)
	startIdx := -1
	for i := range origNames {
		if origNames[i] == dfa.Start {
			startIdx = i
			break
		}
	}
	origNames = append(origNames[:startIdx], origNames[startIdx+1:]...)
	origNames = append([]string{dfa.Start}, origNames...)

	numMapping := map[string]string{}
	for i, name := range origNames {
		numMapping[name] = fmt.Sprintf("%d", i)
	}

	renamed := &DFA[E]{states: make(map[string]DFAState[E]), Start: numMapping[dfa.Start]}
	for _, name := range origNames {
		st := dfa.states[name]
		newName := numMapping[name]
		renamed.AddState(newName, st.accepting)
		renamed.SetValue(newName, st.value)
	}
	for _, name := range origNames {
		st := dfa.states[name]
		from := numMapping[name]
		for sym, t := range st.transitions {
			renamed.AddTransition(from, sym, numMapping[t.next])
		}
	}

	dfa.states = renamed.states
	dfa.Start = renamed.Start
}

// Validate reports any structural problems with the DFA: states unreachable
// from the start state, transitions to non-existent states, or a start state
// that doesn't exist.
func (dfa DFA[E]) Validate() error {
	var errs []string

	for sName := range dfa.states {
		if sName == dfa.Start {
			continue
		}
		reachable := false
		for otherName, st := range dfa.states {
			if otherName == sName {
				continue
			}
			for _, t := range st.transitions {
				if t.next == sName {
					reachable = true
					break
				}
			}
			if reachable {
				break
			}
		}
		if !reachable {
			errs = append(errs, fmt.Sprintf("no transitions to non-start state %q", sName))
		}
	}

	for sName, st := range dfa.states {
		for symbol, t := range st.transitions {
			if _, ok := dfa.states[t.next]; !ok {
				errs = append(errs, fmt.Sprintf("state %q transitions on %q to non-existing state %q", sName, symbol, t.next))
			}
		}
	}

	if _, ok := dfa.states[dfa.Start]; !ok {
		errs = append(errs, fmt.Sprintf("start state does not exist: %q", dfa.Start))
	}

	if len(errs) > 0 {
		return fmt.Errorf(strings.Join(errs, "\n"))
	}
	return nil
}

func (dfa DFA[E]) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<START: %q, STATES:", dfa.Start))

	ordered := util.OrderedKeys(dfa.states)
	for i, name := range ordered {
		sb.WriteString("\n\t")
		sb.WriteString(dfa.states[name].String())
		if i+1 < len(ordered) {
			sb.WriteRune(',')
		} else {
			sb.WriteRune('\n')
		}
	}
	sb.WriteRune('>')
	return sb.String()
}
