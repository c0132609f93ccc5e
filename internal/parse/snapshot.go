package parse

import "github.com/lassiter/cryptolang/internal/grammar"

// Snapshot is a plain-data mirror of Table's private fields, exported so a
// serializer outside this package can encode/decode it: github.com/dekarrin/
// rezi's reflective encoder only walks a struct's exported fields, and Table
// deliberately keeps its own fields private (see the type doc on Table).
//
// Snapshot and FromSnapshot exist so internal/serialize never has to
// recompute Generate's canonical-LR(1) construction just to round-trip a
// table to and from disk -- the whole point of spec.md §6's "Generated
// artifacts" being built ahead of time.
type Snapshot struct {
	OrigStart string
	Start     string
	Terminals []string
	NonTerms  []string
	ItemSets  map[string][]grammar.LR1Item
	Action    map[string]map[string]Action
	GoTo      map[string]map[string]string
}

// Snapshot captures t's full state as plain data.
func (t *Table) Snapshot() Snapshot {
	return Snapshot{
		OrigStart: t.origStart,
		Start:     t.start,
		Terminals: t.terminals,
		NonTerms:  t.nonTerms,
		ItemSets:  t.itemSets,
		Action:    t.action,
		GoTo:      t.goTo,
	}
}

// FromSnapshot rebuilds a Table from a previously-captured Snapshot, without
// re-running the canonical-LR(1) construction Generate performs.
func FromSnapshot(s Snapshot) *Table {
	return &Table{
		origStart: s.OrigStart,
		start:     s.Start,
		terminals: s.Terminals,
		nonTerms:  s.NonTerms,
		itemSets:  s.ItemSets,
		action:    s.Action,
		goTo:      s.GoTo,
	}
}
