package parse

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/lassiter/cryptolang/internal/grammar"
)

// Table is the canonical LR(1) ACTION/GOTO table for a grammar, plus enough
// bookkeeping to print it and to drive Parse.
type Table struct {
	origStart  string
	start      string
	terminals  []string
	nonTerms   []string
	itemSets   map[string][]grammar.LR1Item
	action     map[string]map[string]Action
	goTo       map[string]map[string]string
}

// itemSetKey gives a canonical, order-independent identity to an LR(1) item
// set: sort each item's own string form and join. Two BFS-discovered item
// sets with the same items (regardless of discovery order) collapse to the
// same table state, exactly as the powerset construction requires.
func itemSetKey(items []grammar.LR1Item) string {
	strs := make([]string, len(items))
	for i, it := range items {
		strs[i] = it.String()
	}
	sort.Strings(strs)
	return strings.Join(strs, "\n")
}

// Generate builds the canonical LR(1) parse table for g (Algorithm 4.56,
// "Construction of canonical-LR parsing tables", purple dragon book),
// grounded on internal/ictiobus/parse/clr1.go's construction loop and
// ACTION rules (a)/(b)/(c) -- reimplemented here over internal/grammar's
// item-set-as-[]LR1Item representation, with the canonical collection
// built by explicit BFS over Closure/Goto rather than borrowing the
// teacher's automaton.NewLR1ViablePrefixDFA (which depends on the missing
// grammar.Grammar type; see DESIGN.md). Returns an error, rather than
// panicking, the first time a state needs both of two conflicting actions
// for the same lookahead -- the grammar is not LR(1).
func Generate(g *grammar.Grammar) (*Table, error) {
	aug := g.Augmented()

	t := &Table{
		origStart: g.StartSymbol(),
		terminals: aug.Terminals(),
		nonTerms:  aug.NonTerminals(),
		itemSets:  map[string][]grammar.LR1Item{},
		action:    map[string]map[string]Action{},
		goTo:      map[string]map[string]string{},
	}

	startItems := aug.StartItems()
	startKey := itemSetKey(startItems)

	keyToName := map[string]string{startKey: "0"}
	t.itemSets["0"] = startItems
	t.start = "0"

	queue := []string{"0"}
	nextID := 1

	allSymbols := append(append([]string{}, aug.Terminals()...), aug.NonTerminals()...)

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		items := t.itemSets[name]

		for _, sym := range allSymbols {
			next := aug.Goto(items, sym)
			if len(next) == 0 {
				continue
			}
			k := itemSetKey(next)
			nextName, seen := keyToName[k]
			if !seen {
				nextName = fmt.Sprintf("%d", nextID)
				nextID++
				keyToName[k] = nextName
				t.itemSets[nextName] = next
				queue = append(queue, nextName)
			}

			if aug.IsTerminal(sym) {
				if err := t.setAction(name, sym, Action{Type: ActionShift, State: nextName}); err != nil {
					return nil, err
				}
			} else {
				if t.goTo[name] == nil {
					t.goTo[name] = map[string]string{}
				}
				t.goTo[name][sym] = nextName
			}
		}
	}

	for name, items := range t.itemSets {
		for _, item := range items {
			if !item.IsReduce() {
				continue
			}
			if item.NonTerminal == aug.StartSymbol() {
				if item.Lookahead == grammar.EndOfInput {
					if err := t.setAction(name, grammar.EndOfInput, Action{Type: ActionAccept}); err != nil {
						return nil, err
					}
				}
				continue
			}
			prod := grammar.Production{NonTerminal: item.NonTerminal, Symbols: item.Left, Attr: item.Attr}
			if err := t.setAction(name, item.Lookahead, Action{Type: ActionReduce, Production: prod}); err != nil {
				return nil, err
			}
		}
	}

	return t, nil
}

func (t *Table) setAction(state, symbol string, newAct Action) error {
	if t.action[state] == nil {
		t.action[state] = map[string]Action{}
	}
	if existing, ok := t.action[state][symbol]; ok && !existing.Equal(newAct) {
		return fmt.Errorf("grammar is not LR(1): state %s has both %s and %s actions on %q", state, existing, newAct, symbol)
	}
	t.action[state][symbol] = newAct
	return nil
}

// Action returns the ACTION table entry for (state, terminal), or the zero
// Action (ActionError) if none is defined.
func (t *Table) Action(state, terminal string) Action {
	return t.action[state][terminal]
}

// Goto returns the GOTO table entry for (state, nonTerminal), and false if
// none is defined.
func (t *Table) Goto(state, nonTerminal string) (string, bool) {
	next, ok := t.goTo[state][nonTerminal]
	return next, ok
}

// Start returns the initial parser state.
func (t *Table) Start() string { return t.start }

// String renders the ACTION/GOTO table as a formatted grid, grounded on
// internal/ictiobus/parse/clr1.go's canonicalLR1Table.String (same use of
// rosed.InsertTableOpts to lay out a wide table without manual column
// padding); used by cmd/cryptogen to print a generated table for inspection.
func (t *Table) String() string {
	stateNames := make([]string, 0, len(t.itemSets))
	for name := range t.itemSets {
		stateNames = append(stateNames, name)
	}
	sort.Slice(stateNames, func(i, j int) bool {
		if len(stateNames[i]) != len(stateNames[j]) {
			return len(stateNames[i]) < len(stateNames[j])
		}
		return stateNames[i] < stateNames[j]
	})

	headers := []string{"S", "|"}
	for _, term := range t.terminals {
		headers = append(headers, fmt.Sprintf("A:%s", term))
	}
	headers = append(headers, fmt.Sprintf("A:%s", grammar.EndOfInput), "|")
	for _, nt := range t.nonTerms {
		headers = append(headers, fmt.Sprintf("G:%s", nt))
	}

	data := [][]string{headers}

	allTerms := append(append([]string{}, t.terminals...), grammar.EndOfInput)

	for _, name := range stateNames {
		row := []string{name, "|"}
		for _, term := range allTerms {
			act := t.Action(name, term)
			cell := ""
			switch act.Type {
			case ActionAccept:
				cell = "acc"
			case ActionReduce:
				cell = fmt.Sprintf("r %s -> %s", act.Production.NonTerminal, strings.Join(act.Production.Symbols, " "))
			case ActionShift:
				cell = fmt.Sprintf("s%s", act.State)
			}
			row = append(row, cell)
		}
		row = append(row, "|")
		for _, nt := range t.nonTerms {
			cell := ""
			if gotoState, ok := t.Goto(name, nt); ok {
				cell = gotoState
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// ExpectedTerminals returns the terminals that have a defined (non-error)
// action in the given state, sorted, for building syntax error messages.
func (t *Table) ExpectedTerminals(state string) []string {
	var out []string
	for _, term := range t.terminals {
		if _, ok := t.action[state][term]; ok {
			out = append(out, term)
		}
	}
	if _, ok := t.action[state][grammar.EndOfInput]; ok {
		out = append(out, grammar.EndOfInput)
	}
	return out
}
