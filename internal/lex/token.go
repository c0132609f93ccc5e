// Package lex implements the table-driven lexer of spec.md §4.3: a Table of
// (name, pattern, skip) rows compiled once via internal/regex, and a
// Tokenize function that walks them in definition order.
package lex

import "fmt"

// Token is a single lexeme recognized by the lexer: the name of the rule
// that matched, the matched text, and its position in the source.
type Token struct {
	Name   string
	Lexeme string
	Line   int
	Column int

	// Groups carries any named capture groups the matching pattern
	// reported (see internal/regex.Match.Groups); nil if none fired.
	Groups map[string]string
}

// EOF is the reserved token name emitted once, after the last real token,
// to mark the end of input.
const EOF = "$"

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Name, t.Lexeme, t.Line, t.Column)
}

// Is reports whether the token has the given rule name. Tokens compare by
// name only, matching the source engine's Token.__eq__.
func (t Token) Is(name string) bool {
	return t.Name == name
}
