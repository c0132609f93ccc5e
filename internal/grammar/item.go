package grammar

import (
	"fmt"
	"strings"

	"github.com/lassiter/cryptolang/internal/util"
)

// LR0Item is a production with a dot position marking how much of its
// right-hand side has been matched so far, in the conventional
// "NonTerminal -> Left . Right" shape.
type LR0Item struct {
	NonTerminal string
	Left        []string
	Right       []string
	// Attr identifies which production this item tracks, for callers that
	// need to act on a completed item's attribute (AST construction) once
	// it is reduced.
	Attr Attribute
}

func (item LR0Item) String() string {
	left := strings.Join(item.Left, " ")
	right := strings.Join(item.Right, " ")
	if left != "" {
		left += " "
	}
	if right != "" {
		right = " " + right
	}
	return fmt.Sprintf("%s -> %s.%s", item.NonTerminal, left, right)
}

// IsReduce reports whether the dot has reached the end of the production.
func (item LR0Item) IsReduce() bool { return len(item.Right) == 0 }

// NextSymbol returns the symbol immediately after the dot, and false if the
// item is a reduce item.
func (item LR0Item) NextSymbol() (string, bool) {
	if item.IsReduce() {
		return "", false
	}
	return item.Right[0], true
}

// Advance returns the item with the dot moved one symbol to the right.
// Panics if called on a reduce item.
func (item LR0Item) Advance() LR0Item {
	if item.IsReduce() {
		panic("grammar: cannot advance a reduce item")
	}
	next := LR0Item{
		NonTerminal: item.NonTerminal,
		Left:        append(append([]string{}, item.Left...), item.Right[0]),
		Right:       append([]string{}, item.Right[1:]...),
		Attr:        item.Attr,
	}
	return next
}

func (item LR0Item) key() string { return item.String() }

// LR1Item is an LR0Item paired with a single lookahead terminal.
type LR1Item struct {
	LR0Item
	Lookahead string
}

func (item LR1Item) String() string {
	return fmt.Sprintf("%s, %s", item.LR0Item.String(), item.Lookahead)
}

// Advance returns the LR1Item with the dot moved one symbol right, keeping
// the same lookahead.
func (item LR1Item) Advance() LR1Item {
	return LR1Item{LR0Item: item.LR0Item.Advance(), Lookahead: item.Lookahead}
}

func (item LR1Item) key() string { return item.String() }

// LR0Items enumerates every (production, dot position) pair in the
// grammar -- one item per possible dot placement, including both ends of
// each production's right-hand side.
func (g *Grammar) LR0Items() []LR0Item {
	var items []LR0Item
	for _, p := range g.AllProductions() {
		symbols := p.Symbols
		if len(symbols) == 1 && symbols[0] == Epsilon {
			symbols = nil
		}
		for dot := 0; dot <= len(symbols); dot++ {
			items = append(items, LR0Item{
				NonTerminal: p.NonTerminal,
				Left:        append([]string{}, symbols[:dot]...),
				Right:       append([]string{}, symbols[dot:]...),
				Attr:        p.Attr,
			})
		}
	}
	return items
}

// initialItemsOf returns the initial (dot-at-0) LR1Items for every production of
// nt, each with the given lookahead.
func (g *Grammar) initialItemsOf(nt string, lookahead string) []LR1Item {
	var items []LR1Item
	for _, p := range g.Productions(nt) {
		symbols := p.Symbols
		if len(symbols) == 1 && symbols[0] == Epsilon {
			symbols = nil
		}
		items = append(items, LR1Item{
			LR0Item: LR0Item{
				NonTerminal: p.NonTerminal,
				Right:       append([]string{}, symbols...),
				Attr:        p.Attr,
			},
			Lookahead: lookahead,
		})
	}
	return items
}

// Closure computes the LR(1) closure of a set of items: repeatedly adding,
// for every item with the dot before a non-terminal B, the initial items of
// every production of B, with lookahead FIRST(beta a) for each lookahead a
// already on the originating item and beta the symbols following B.
//
// Grounded on the source generator's Grammar._get_lr1_closure, reimplemented
// against this package's own Production/Attribute/First machinery instead of
// Python's object-identity-keyed associated_productions list.
func (g *Grammar) Closure(items []LR1Item) []LR1Item {
	result := map[string]LR1Item{}
	var queue []LR1Item
	for _, it := range items {
		if _, ok := result[it.key()]; !ok {
			result[it.key()] = it
			queue = append(queue, it)
		}
	}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		next, ok := item.NextSymbol()
		if !ok || !g.IsNonTerminal(next) {
			continue
		}

		beta := item.Right[1:]
		lookaheadSeq := append(append([]string{}, beta...), item.Lookahead)
		lookaheads := g.First(lookaheadSeq)

		for _, lh := range lookaheads.Elements() {
			if lh == Epsilon {
				continue
			}
			for _, newItem := range g.initialItemsOf(next, lh) {
				k := newItem.key()
				if _, ok := result[k]; !ok {
					result[k] = newItem
					queue = append(queue, newItem)
				}
			}
		}
	}

	out := make([]LR1Item, 0, len(result))
	for _, k := range util.OrderedKeys(result) {
		out = append(out, result[k])
	}
	return out
}

// Goto computes GOTO(items, symbol): the closure of every item in items
// whose dot can advance over symbol.
func (g *Grammar) Goto(items []LR1Item, symbol string) []LR1Item {
	var advanced []LR1Item
	for _, it := range items {
		next, ok := it.NextSymbol()
		if ok && next == symbol {
			advanced = append(advanced, it.Advance())
		}
	}
	return g.Closure(advanced)
}

// StartItems returns the closure of the single kernel item for the
// grammar's (augmented) start production, with end-of-input lookahead --
// the seed state of the canonical LR(1) automaton.
func (g *Grammar) StartItems() []LR1Item {
	return g.Closure(g.initialItemsOf(g.start, EndOfInput))
}
