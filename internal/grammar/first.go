package grammar

import "github.com/lassiter/cryptolang/internal/util"

// First computes FIRST(symbols): the set of terminals that can begin some
// string derived from symbols, plus Epsilon itself if the whole sequence
// can derive the empty string. It is a small fixed-point iteration over
// every production in the grammar, grounded on the source generator's
// Grammar._get_first (which memoizes FIRST per single symbol and combines
// them across a sentence, stopping as soon as a symbol's FIRST excludes
// epsilon).
//
// The fixed point is recomputed from scratch on every call rather than
// cached on the Grammar, since a Grammar is built once via AddProduction
// and then queried repeatedly -- recomputation cost is irrelevant next to
// table generation's own cost, and it keeps Grammar's public surface free
// of invalidation bookkeeping.
func (g *Grammar) First(symbols []string) util.StringSet {
	firstOf := g.firstSets()

	result := util.NewStringSet()
	for _, sym := range symbols {
		sf := firstOf[sym]
		for _, t := range sf.Elements() {
			if t != Epsilon {
				result.Add(t)
			}
		}
		if !sf.Has(Epsilon) {
			return result
		}
	}
	// every symbol in the sequence could derive epsilon (or symbols was empty)
	result.Add(Epsilon)
	return result
}

// firstSets computes FIRST(X) for every single grammar symbol X (terminal
// or non-terminal) as a fixed point over all productions.
func (g *Grammar) firstSets() map[string]util.StringSet {
	first := map[string]util.StringSet{}
	for _, t := range g.terminalSeq {
		first[t] = util.NewStringSet()
		first[t].Add(t)
	}
	for _, nt := range g.nonTermSeq {
		first[nt] = util.NewStringSet()
	}

	firstOfSeq := func(seq []string) util.StringSet {
		res := util.NewStringSet()
		nullable := true
		for _, sym := range seq {
			if sym == Epsilon {
				continue
			}
			sf := first[sym]
			for _, t := range sf.Elements() {
				if t != Epsilon {
					res.Add(t)
				}
			}
			if !sf.Has(Epsilon) {
				nullable = false
				break
			}
		}
		if nullable {
			res.Add(Epsilon)
		}
		return res
	}

	changed := true
	for changed {
		changed = false
		for _, nt := range g.nonTermSeq {
			for _, p := range g.productions[nt] {
				calculated := firstOfSeq(p.Symbols)
				before := first[nt].Len()
				first[nt].AddAll(calculated)
				if first[nt].Len() != before {
					changed = true
				}
			}
		}
	}

	return first
}
