// Package parse implements the canonical LR(1) parser generator and
// table-driven parse loop of spec.md §4.4: build the canonical collection
// of LR(1) item sets for a grammar, derive ACTION/GOTO tables from it
// (Algorithm 4.56 in the purple dragon book), and drive a token stream
// through those tables with an explicit state/value stack.
package parse

import (
	"fmt"

	"github.com/lassiter/cryptolang/internal/grammar"
)

// ActionType is the kind of entry an LR parse table cell holds.
type ActionType int

const (
	ActionError ActionType = iota
	ActionShift
	ActionReduce
	ActionAccept
)

func (t ActionType) String() string {
	switch t {
	case ActionShift:
		return "shift"
	case ActionReduce:
		return "reduce"
	case ActionAccept:
		return "accept"
	default:
		return "error"
	}
}

// Action is one ACTION table cell: shift to a state, reduce by a
// production, accept, or (the zero value) error.
type Action struct {
	Type       ActionType
	State      string
	Production grammar.Production
}

func (a Action) String() string {
	switch a.Type {
	case ActionShift:
		return fmt.Sprintf("shift %s", a.State)
	case ActionReduce:
		return fmt.Sprintf("reduce %s -> %v", a.Production.NonTerminal, a.Production.Symbols)
	case ActionAccept:
		return "accept"
	default:
		return "error"
	}
}

func (a Action) Equal(o Action) bool {
	if a.Type != o.Type {
		return false
	}
	switch a.Type {
	case ActionShift:
		return a.State == o.State
	case ActionReduce:
		if a.Production.NonTerminal != o.Production.NonTerminal {
			return false
		}
		if len(a.Production.Symbols) != len(o.Production.Symbols) {
			return false
		}
		for i := range a.Production.Symbols {
			if a.Production.Symbols[i] != o.Production.Symbols[i] {
				return false
			}
		}
		return true
	default:
		return true
	}
}
