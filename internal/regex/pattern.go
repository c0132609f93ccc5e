package regex

import (
	"fmt"

	"github.com/lassiter/cryptolang/internal/automaton"
	"github.com/lassiter/cryptolang/internal/util"
)

// Match is the result of successfully matching a Pattern against an input
// string starting at some position.
type Match struct {
	// Lexeme is the full matched substring.
	Lexeme string

	// Start and End are the rune offsets of the match within the input
	// string that was searched (End is exclusive).
	Start, End int

	// Groups maps each named group that completed somewhere along the
	// matched span to the substring consumed up to the point it completed.
	// Only groups that actually fired for this particular match appear.
	Groups map[string]string
}

// Pattern is a compiled regular expression: a DFA ready to be driven
// character by character, plus bookkeeping for which NFA states feed into
// each DFA state (needed to recover named-group boundaries).
type Pattern struct {
	src string
	dfa automaton.DFA[util.SVSet[Tags]]
}

// Compile parses and compiles a regex literal into a ready-to-use Pattern.
func Compile(src string) (*Pattern, error) {
	node, err := Parse(src)
	if err != nil {
		return nil, fmt.Errorf("regex: compiling %q: %w", src, err)
	}

	nfa := node.Eval()
	dfa := nfa.ToDFA()

	return &Pattern{src: src, dfa: dfa}, nil
}

// MustCompile is like Compile but panics on error; intended for patterns
// that are fixed at program-build time (e.g. a grammar's own terminal
// definitions).
func MustCompile(src string) *Pattern {
	p, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the original source text the Pattern was compiled from.
func (p *Pattern) String() string {
	return p.src
}

// Match attempts a greedy, leftmost match of the pattern anchored at pos in
// input (it does not search forward for a match starting later). It
// consumes runes for as long as the DFA has a transition, and reports the
// *longest* prefix along the way that ended on an accepting state -- this is
// the regex engine's own maximal munch, independent of how a lexer built on
// top of several patterns then chooses among them (see internal/lex).
func (p *Pattern) Match(input string, pos int) (Match, bool) {
	runes := []rune(input)
	if pos < 0 || pos > len(runes) {
		return Match{}, false
	}

	state := p.dfa.Start
	bestEnd := -1
	var bestGroups map[string]string

	// an empty-matching pattern is accepting at its own start; check before
	// consuming anything.
	if p.dfa.IsAccepting(state) {
		bestEnd = pos
		bestGroups = p.groupsAt(state, input, pos, pos)
	}

	for i := pos; i < len(runes); i++ {
		next := p.dfa.Next(state, string(runes[i]))
		if next == "" {
			break
		}
		state = next

		if p.dfa.IsAccepting(state) {
			bestEnd = i + 1
			bestGroups = p.groupsAt(state, input, pos, i+1)
		}
	}

	if bestEnd < 0 {
		return Match{}, false
	}

	return Match{
		Lexeme: string(runes[pos:bestEnd]),
		Start:  pos,
		End:    bestEnd,
		Groups: bestGroups,
	}, true
}

// groupsAt collects the names of every named group whose Tags appear among
// the NFA states folded into the given DFA state -- i.e. every named group
// that some thread of the match completed by reaching this position.
// Because the engine tracks only "did this named group's own final state
// get reached here", not a full submatch stack, a group's reported text is
// the whole span from the pattern's start to this position; nested or
// partially-overlapping named groups are not disambiguated further. This is
// the same flat boundary-tagging scheme the original engine's NamedGroup
// node implements (see internal/automaton's combinators and DESIGN.md).
func (p *Pattern) groupsAt(state string, input string, from, to int) map[string]string {
	nfaStates := p.dfa.GetValue(state)

	var names []string
	for _, nfaState := range nfaStates.Elements() {
		for _, name := range nfaStates.Get(nfaState).Elements() {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}

	runes := []rune(input)
	span := string(runes[from:to])

	groups := make(map[string]string, len(names))
	for _, name := range names {
		groups[name] = span
	}
	return groups
}
