// Package serialize implements spec.md §6's "Generated artifacts": an
// explicit on-disk schema for a compiled grammar's lexer/parser tables (the
// spec's §9 "Serialized tables" note, answered here with Go structs rather
// than Python's pickle), written and read with github.com/dekarrin/rezi --
// the same binary codec the teacher repo uses to persist *game.State
// (server/dao/sqlite/sqlite.go).
//
// rezi's encoder reflects over a struct's exported fields only, so every
// type that crosses this package's boundary (GrammarData, parse.Snapshot
// and the grammar/parse types it embeds) keeps its fields exported for that
// reason, even though internal/grammar.Grammar and internal/parse.Table
// themselves keep theirs private.
package serialize

import (
	"fmt"

	"github.com/dekarrin/rezi"
	"github.com/lassiter/cryptolang/internal/grammar"
	"github.com/lassiter/cryptolang/internal/lex"
	"github.com/lassiter/cryptolang/internal/parse"
)

// GrammarData is a plain-data mirror of a grammar.Grammar's terminal and
// production definitions -- everything needed to rebuild an equivalent
// Grammar (and from it, a lex.Table) without re-deriving anything.
//
// It does not carry the FIRST sets or LR(1) item sets; those are cheap to
// recompute if ever needed and are not part of what cmd/cryptogen persists
// -- only the already-computed parse.Snapshot is, since the canonical-LR(1)
// construction is the expensive part this package exists to avoid redoing
// at load time.
type GrammarData struct {
	Start        string
	Terminals    []grammar.TerminalDef
	NonTerminals []string
	Productions  map[string][]grammar.Production
}

// FromGrammar captures g's terminal and production definitions as plain
// data, in their original declaration order.
func FromGrammar(g *grammar.Grammar) GrammarData {
	data := GrammarData{
		Start:       g.StartSymbol(),
		Productions: map[string][]grammar.Production{},
	}
	for _, name := range g.Terminals() {
		data.Terminals = append(data.Terminals, g.Terminal(name))
	}
	data.NonTerminals = g.NonTerminals()
	for _, nt := range data.NonTerminals {
		data.Productions[nt] = g.Productions(nt)
	}
	return data
}

// Rebuild reconstructs a *grammar.Grammar equivalent to the one FromGrammar
// captured, replaying AddTerminal/AddProduction calls in their original
// order.
func (d GrammarData) Rebuild() *grammar.Grammar {
	g := grammar.New(d.Start)
	for _, t := range d.Terminals {
		g.AddTerminal(t.Name, t.Pattern, t.Skip)
	}
	for _, nt := range d.NonTerminals {
		for _, p := range d.Productions[nt] {
			g.AddProduction(nt, p.Symbols, p.Attr)
		}
	}
	return g
}

// Artifact is the self-contained form spec.md §6 describes: the grammar's
// terminal/production definitions (cheap to turn back into a lex.Table) and
// the already-computed canonical LR(1) ACTION/GOTO table (expensive, so
// stored rather than recomputed). cmd/cryptogen writes one of these per
// grammar to a .ctab file; internal/dsl can load it instead of calling
// parse.Generate itself, which is how the reader stays independent of the
// generator at run time.
type Artifact struct {
	Grammar GrammarData
	Table   parse.Snapshot
}

// BuildArtifact captures g's definitions and t's computed table into one
// Artifact, ready for Encode.
func BuildArtifact(g *grammar.Grammar, t *parse.Table) Artifact {
	return Artifact{Grammar: FromGrammar(g), Table: t.Snapshot()}
}

// Encode serializes a to rezi's compact binary form.
func Encode(a Artifact) []byte {
	return rezi.EncBinary(&a)
}

// Decode reverses Encode, rejecting input that isn't fully consumed (the
// same trailing-byte-count check the teacher applies to decoded game
// state in server/dao/sqlite/sqlite.go).
func Decode(data []byte) (Artifact, error) {
	var a Artifact
	n, err := rezi.DecBinary(data, &a)
	if err != nil {
		return Artifact{}, fmt.Errorf("serialize: decode artifact: %w", err)
	}
	if n != len(data) {
		return Artifact{}, fmt.Errorf("serialize: decode artifact: consumed %d/%d bytes", n, len(data))
	}
	return a, nil
}

// Load rebuilds a ready-to-use lex.Table and *parse.Table from previously
// Encoded bytes. The lexer table is recompiled from the decoded terminal
// definitions (regex compilation is cheap); the parse table is restored
// directly from its Snapshot, skipping Generate's canonical-LR(1)
// construction entirely.
func Load(data []byte) (*lex.Table, *parse.Table, error) {
	a, err := Decode(data)
	if err != nil {
		return nil, nil, err
	}

	g := a.Grammar.Rebuild()

	var rules []lex.Rule
	for _, name := range g.Terminals() {
		def := g.Terminal(name)
		rules = append(rules, lex.Rule{Name: def.Name, Pattern: def.Pattern, Skip: def.Skip})
	}
	lt, err := lex.NewTable(grammar.EndOfInput, '\n', ' ', rules)
	if err != nil {
		return nil, nil, fmt.Errorf("serialize: rebuild lexer table: %w", err)
	}

	return lt, parse.FromSnapshot(a.Table), nil
}
