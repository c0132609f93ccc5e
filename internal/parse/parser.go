package parse

import (
	"fmt"
	"sort"

	"github.com/lassiter/cryptolang/internal/grammar"
	"github.com/lassiter/cryptolang/internal/lex"
	"github.com/lassiter/cryptolang/internal/util"
)

// Constructor builds one AST node from a reduced production's children.
// ctor names the constructor named in the production's grammar.Construct
// attribute; children are either *lex.Token (for a terminal symbol in the
// production) or whatever a prior Constructor call returned (for a
// non-terminal symbol), in left-to-right order restricted to the indices
// named by the attribute.
type Constructor func(ctor string, children []any) (any, error)

// SyntaxError is returned by Parse when the token stream doesn't fit the
// grammar: a shift/reduce action was undefined for the current state and
// lookahead token.
type SyntaxError struct {
	Token    lex.Token
	Expected []string
}

func (e *SyntaxError) Error() string {
	expected := make([]string, len(e.Expected))
	copy(expected, e.Expected)
	return fmt.Sprintf("syntax error at line %d, column %d: unexpected %s; expected %s",
		e.Token.Line, e.Token.Column, e.Token.Name, util.MakeTextList(expected))
}

// Parse drives tokens through t's ACTION/GOTO tables using the standard
// explicit-stack LR parsing algorithm (purple dragon book Algorithm 4.44),
// grounded on internal/ictiobus/parse/lr.go's lrParser.Parse -- reworked to
// operate on this package's Table/Action types and lex.Token stream, and to
// build an attribute-grammar AST via construct instead of a generic
// types.ParseTree.
func Parse(t *Table, tokens []lex.Token, construct Constructor) (any, error) {
	stateStack := []string{t.Start()}
	var valueStack []any

	pos := 0
	next := func() lex.Token {
		tok := tokens[pos]
		if pos < len(tokens)-1 {
			pos++
		}
		return tok
	}

	a := next()

	for {
		s := stateStack[len(stateStack)-1]
		act := t.Action(s, a.Name)

		switch act.Type {
		case ActionShift:
			valueStack = append(valueStack, a)
			stateStack = append(stateStack, act.State)
			a = next()

		case ActionReduce:
			prod := act.Production
			n := len(prod.Symbols)
			if n == 1 && prod.Symbols[0] == grammar.Epsilon {
				n = 0
			}

			children := make([]any, n)
			copy(children, valueStack[len(valueStack)-n:])
			valueStack = valueStack[:len(valueStack)-n]
			stateStack = stateStack[:len(stateStack)-n]

			node, err := applyAttribute(prod.Attr, children, construct)
			if err != nil {
				return nil, err
			}
			valueStack = append(valueStack, node)

			top := stateStack[len(stateStack)-1]
			gotoState, ok := t.Goto(top, prod.NonTerminal)
			if !ok {
				return nil, fmt.Errorf("parse: no GOTO[%s, %s] after reducing %s", top, prod.NonTerminal, prod.NonTerminal)
			}
			stateStack = append(stateStack, gotoState)

		case ActionAccept:
			return valueStack[len(valueStack)-1], nil

		default:
			expected := t.ExpectedTerminals(s)
			sort.Strings(expected)
			return nil, &SyntaxError{Token: a, Expected: expected}
		}
	}
}

func applyAttribute(attr grammar.Attribute, children []any, construct Constructor) (any, error) {
	switch attr.Kind {
	case grammar.AttrProject:
		if attr.ProjectIndex >= len(children) {
			return nil, fmt.Errorf("parse: project index %d out of range (%d children)", attr.ProjectIndex, len(children))
		}
		return children[attr.ProjectIndex], nil
	case grammar.AttrConstruct:
		picked := make([]any, len(attr.ChildIndices))
		for i, idx := range attr.ChildIndices {
			if idx >= len(children) {
				return nil, fmt.Errorf("parse: construct index %d out of range (%d children)", idx, len(children))
			}
			picked[i] = children[idx]
		}
		return construct(attr.Ctor, picked)
	default: // AttrNone
		return nil, nil
	}
}
