package dsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lassiter/cryptolang/internal/dslast"
	"github.com/lassiter/cryptolang/internal/lex"
)

// elements is the accumulator value every *List/*ListOpt production reduces
// to: a plain slice of `any`, since what's being accumulated varies by
// grammar position (dslast.Node, a parameter-name token, a dslast.Opt, a
// dslast.Behavior). Final consumers (FunDef, AgentDec*, ...) know which
// element type to expect and assert it.
type elements []any

// Construct is the internal/parse.Constructor for Grammar(): it turns one
// reduction's already-built children into the next AST value, by ctor name.
func Construct(ctor string, children []any) (any, error) {
	switch ctor {
	case ctorListStart:
		return elements{children[0]}, nil
	case ctorListAppend:
		return append(children[0].(elements), children[1]), nil
	case ctorEmptyList:
		return elements{}, nil

	case ctorSimulation:
		return buildSimulation(children[0].(elements))
	case ctorFunDef:
		return buildFunDef(children)

	case ctorAgentDecCoin:
		return buildAgentDec(dslast.AgentCoin, children)
	case ctorAgentDecTrader:
		return buildAgentDec(dslast.AgentTrader, children)
	case ctorOpt:
		return dslast.Opt{Name: identName(children[0]), Value: children[1].(dslast.Node)}, nil
	case ctorBehavior:
		return dslast.Behavior{Name: identName(children[0]), Body: nodesOf(children[1].(elements))}, nil

	case ctorRet:
		return &dslast.Ret{Value: children[0].(dslast.Node)}, nil
	case ctorRetBare:
		return &dslast.Ret{}, nil

	case ctorAssignIdent:
		return &dslast.Assign{Target: &dslast.Identifier{Name: identName(children[0])}, Value: children[1].(dslast.Node)}, nil
	case ctorAssignAttr:
		attr, ok := children[0].(*dslast.AttrRes)
		if !ok {
			return nil, fmt.Errorf("dsl: invalid assignment target %T", children[0])
		}
		if attr.Call != nil {
			return nil, fmt.Errorf("dsl: cannot assign to a method call")
		}
		return &dslast.Assign{Target: attr, Value: children[1].(dslast.Node)}, nil

	case ctorIfNoElse:
		return &dslast.If{Cond: children[0].(dslast.Node), Then: nodesOf(children[1].(elements))}, nil
	case ctorIfElse:
		return &dslast.If{
			Cond: children[0].(dslast.Node),
			Then: nodesOf(children[1].(elements)),
			Else: nodesOf(children[2].(elements)),
		}, nil
	case ctorWhile:
		return &dslast.While{Cond: children[0].(dslast.Node), Body: nodesOf(children[1].(elements))}, nil

	case ctorBinOp:
		return &dslast.BinaryOp{
			Left:  children[0].(dslast.Node),
			Op:    children[1].(lex.Token).Name,
			Right: children[2].(dslast.Node),
		}, nil
	case ctorUnaryOp:
		return &dslast.UnaryOp{Op: children[0].(lex.Token).Name, Operand: children[1].(dslast.Node)}, nil

	case ctorNumber:
		return buildNumber(children[0])
	case ctorString:
		return buildString(children[0]), nil
	case ctorIdentifier:
		return &dslast.Identifier{Name: identName(children[0])}, nil

	case ctorFunCall:
		return &dslast.FunCall{Name: identName(children[0]), Args: &dslast.ArgList{Args: nodesOf(children[1].(elements))}}, nil

	case ctorAttrMy:
		return &dslast.AttrRes{Target: dslast.AttrMy, Name: identName(children[0])}, nil
	case ctorAttrMyCall:
		return &dslast.AttrRes{Target: dslast.AttrMy, Name: identName(children[0]), Call: argListOf(children[1])}, nil
	case ctorAttrMarket:
		return &dslast.AttrRes{Target: dslast.AttrMarket, Name: identName(children[0])}, nil
	case ctorAttrMarketCall:
		return &dslast.AttrRes{Target: dslast.AttrMarket, Name: identName(children[0]), Call: argListOf(children[1])}, nil

	default:
		return nil, fmt.Errorf("dsl: unknown constructor %q", ctor)
	}
}

func identName(v any) string { return v.(lex.Token).Lexeme }

func nodesOf(es elements) []dslast.Node {
	out := make([]dslast.Node, len(es))
	for i, e := range es {
		out[i] = e.(dslast.Node)
	}
	return out
}

func argListOf(v any) *dslast.ArgList {
	return &dslast.ArgList{Args: nodesOf(v.(elements))}
}

func buildSimulation(items elements) (*dslast.Simulation, error) {
	sim := &dslast.Simulation{}
	for _, it := range items {
		switch n := it.(type) {
		case *dslast.FunDef:
			sim.Functions = append(sim.Functions, n)
		case *dslast.AgentDec:
			sim.Agents = append(sim.Agents, n)
		default:
			return nil, fmt.Errorf("dsl: unexpected top-level item %T", it)
		}
	}
	return sim, nil
}

func buildFunDef(children []any) (*dslast.FunDef, error) {
	name := identName(children[0])
	paramToks := children[1].(elements)
	params := make([]string, len(paramToks))
	for i, p := range paramToks {
		params[i] = identName(p)
	}
	return &dslast.FunDef{Name: name, Params: params, Body: nodesOf(children[2].(elements))}, nil
}

func buildAgentDec(kind dslast.AgentKind, children []any) (*dslast.AgentDec, error) {
	name := identName(children[0])
	subtype := identName(children[1])

	optElems := children[2].(elements)
	opts := make([]dslast.Opt, len(optElems))
	for i, o := range optElems {
		opts[i] = o.(dslast.Opt)
	}

	behElems := children[3].(elements)
	behaviors := make([]dslast.Behavior, len(behElems))
	for i, b := range behElems {
		behaviors[i] = b.(dslast.Behavior)
	}

	return &dslast.AgentDec{
		Kind:      kind,
		Name:      name,
		Subtype:   subtype,
		Options:   &dslast.OptList{Opts: opts},
		Behaviors: &dslast.BehaviorList{Behaviors: behaviors},
	}, nil
}

func buildNumber(tokAny any) (*dslast.Literal, error) {
	tok := tokAny.(lex.Token)
	n, err := strconv.ParseFloat(tok.Lexeme, 64)
	if err != nil {
		return nil, fmt.Errorf("dsl: invalid number literal %q: %w", tok.Lexeme, err)
	}
	return &dslast.Literal{Kind: dslast.LiteralNumber, Number: n}, nil
}

func buildString(tokAny any) *dslast.Literal {
	tok := tokAny.(lex.Token)
	return &dslast.Literal{Kind: dslast.LiteralString, Str: strings.Trim(tok.Lexeme, "'")}
}
