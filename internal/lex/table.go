package lex

import (
	"fmt"

	"github.com/lassiter/cryptolang/internal/regex"
)

// Rule is one row of a lexer Table: a named pattern, and whether tokens it
// produces are discarded (whitespace, comments) rather than emitted.
type Rule struct {
	Name    string
	Pattern string
	Skip    bool
}

type compiledRule struct {
	name    string
	skip    bool
	pattern *regex.Pattern
}

// Table is an ordered list of lexer rules compiled once via internal/regex,
// plus the EOF symbol and line/spacer characters from spec.md §4.3.
//
// Tokenize tries rules in the order they were given -- the first rule whose
// pattern matches at the current position wins, even if a later rule would
// have matched a longer lexeme. This is carried over deliberately from the
// grounding source (interpreter/simulation_interpreter.py's RegxMatcher,
// which breaks on the first successful pattern): the regex engine has no
// mechanism to compare matches across independently-compiled patterns, so
// rule order is how ambiguity (e.g. a keyword vs. the identifier rule) gets
// resolved, same as the source it's grounded on.
type Table struct {
	rules     []compiledRule
	eof       string
	lineBreak rune
	spacer    rune
}

// NewTable compiles each rule's pattern and returns a ready-to-use Table.
func NewTable(eof string, lineBreak, spacer rune, rules []Rule) (*Table, error) {
	t := &Table{eof: eof, lineBreak: lineBreak, spacer: spacer}

	for _, r := range rules {
		pattern, err := regex.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("lex: rule %q: %w", r.Name, err)
		}
		t.rules = append(t.rules, compiledRule{name: r.Name, skip: r.Skip, pattern: pattern})
	}

	return t, nil
}

// UnexpectedCharacterError reports that no rule in the Table matched a
// non-empty lexeme at some position.
type UnexpectedCharacterError struct {
	Char   rune
	Line   int
	Column int
}

func (e *UnexpectedCharacterError) Error() string {
	return fmt.Sprintf("unexpected character %q at line %d, column %d", e.Char, e.Line, e.Column)
}

// Tokenize scans input to completion, returning the stream of non-skipped
// tokens followed by a single EOF-named sentinel token. It stops and
// returns an *UnexpectedCharacterError the first time no rule matches at
// the current position (the grammar/parser layer has no error-recovery
// mode either; see spec.md's Non-goals).
func (t *Table) Tokenize(input string) ([]Token, error) {
	runes := []rune(input)
	var tokens []Token

	line, col := 1, 1
	pos := 0

	for pos < len(runes) {
		name, matched, skip, groups, consumed := t.matchAt(input, pos)
		if !matched {
			return nil, &UnexpectedCharacterError{Char: runes[pos], Line: line, Column: col}
		}

		if !skip {
			tokens = append(tokens, Token{
				Name:   name,
				Lexeme: string(runes[pos : pos+consumed]),
				Line:   line,
				Column: col,
				Groups: groups,
			})
		}

		for i := 0; i < consumed; i++ {
			if runes[pos+i] == t.lineBreak {
				line++
				col = 1
			} else {
				col++
			}
		}
		pos += consumed
	}

	tokens = append(tokens, Token{Name: t.eof, Lexeme: t.eof, Line: line, Column: col})
	return tokens, nil
}

// matchAt tries every rule in order at pos and returns the first one that
// consumes at least one rune. Zero-length matches are skipped over (rather
// than accepted, which would spin forever at the same position) since the
// regex engine has no way to express "match but require progress".
func (t *Table) matchAt(input string, pos int) (name string, ok bool, skip bool, groups map[string]string, consumed int) {
	for _, r := range t.rules {
		m, matched := r.pattern.Match(input, pos)
		if !matched || m.End == m.Start {
			continue
		}
		return r.name, true, r.skip, m.Groups, m.End - m.Start
	}
	return "", false, false, nil, 0
}
