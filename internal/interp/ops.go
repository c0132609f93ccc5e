package interp

import (
	"fmt"
	"math"

	"github.com/lassiter/cryptolang/internal/dslast"
	"github.com/lassiter/cryptolang/internal/langerr"
)

// Binary and unary operator names, matching the token class names
// internal/dsl's lexer table assigns them (spec.md §6's operator list).
const (
	OpAdd      = "PLUS"
	OpSub      = "MINUS"
	OpMul      = "STAR"
	OpDiv      = "SLASH"
	OpFloorDiv = "FLOORDIV"
	OpMod      = "PERCENT"
	OpPow      = "CARET"
	OpEq       = "EQEQ"
	OpNeq      = "NEQ"
	OpLt       = "LT"
	OpLe       = "LE"
	OpGt       = "GT"
	OpGe       = "GE"
	OpAnd      = "AMP"
	OpOr       = "PIPE"

	OpNeg  = "MINUS"
	OpNot  = "BANG"
)

func boolValue(b bool) Value {
	if b {
		return Int(1)
	}
	return Int(0)
}

// evalBinaryOp evaluates both sides unconditionally (no short-circuit, per
// spec.md §9's documented fidelity to the source's `&`/`|` semantics) then
// dispatches on the operator.
func (ip *Interp) evalBinaryOp(n *dslast.BinaryOp, env *Environment) (Value, error) {
	left, err := ip.EvalExpr(n.Left, env)
	if err != nil {
		return Value{}, err
	}
	right, err := ip.EvalExpr(n.Right, env)
	if err != nil {
		return Value{}, err
	}

	switch n.Op {
	case OpEq:
		return boolValue(left.Equal(right)), nil
	case OpNeq:
		return boolValue(!left.Equal(right)), nil
	case OpAnd:
		return boolValue(left.Truthy() && right.Truthy()), nil
	case OpOr:
		return boolValue(left.Truthy() || right.Truthy()), nil
	}

	if !left.IsNumeric() || !right.IsNumeric() {
		return Value{}, langerr.New(langerr.PhaseRuntime, langerr.KindUnsupportedOp,
			fmt.Sprintf("operator %s requires numeric operands", n.Op))
	}

	switch n.Op {
	case OpLt:
		return boolValue(left.AsFloat() < right.AsFloat()), nil
	case OpLe:
		return boolValue(left.AsFloat() <= right.AsFloat()), nil
	case OpGt:
		return boolValue(left.AsFloat() > right.AsFloat()), nil
	case OpGe:
		return boolValue(left.AsFloat() >= right.AsFloat()), nil
	}

	// arithmetic promotes integer -> float when either side is float
	bothInt := left.Kind == KindInt && right.Kind == KindInt

	switch n.Op {
	case OpAdd:
		if bothInt {
			return Int(left.Int + right.Int), nil
		}
		return Float(left.AsFloat() + right.AsFloat()), nil
	case OpSub:
		if bothInt {
			return Int(left.Int - right.Int), nil
		}
		return Float(left.AsFloat() - right.AsFloat()), nil
	case OpMul:
		if bothInt {
			return Int(left.Int * right.Int), nil
		}
		return Float(left.AsFloat() * right.AsFloat()), nil
	case OpDiv:
		if right.AsFloat() == 0 {
			return Value{}, langerr.New(langerr.PhaseRuntime, langerr.KindDivisionByZero, "division by zero")
		}
		return Float(left.AsFloat() / right.AsFloat()), nil
	case OpFloorDiv:
		if right.AsFloat() == 0 {
			return Value{}, langerr.New(langerr.PhaseRuntime, langerr.KindDivisionByZero, "division by zero")
		}
		if bothInt {
			return Int(int64(math.Floor(float64(left.Int) / float64(right.Int)))), nil
		}
		return Float(math.Floor(left.AsFloat() / right.AsFloat())), nil
	case OpMod:
		if right.AsFloat() == 0 {
			return Value{}, langerr.New(langerr.PhaseRuntime, langerr.KindDivisionByZero, "division by zero")
		}
		if bothInt {
			return Int(left.Int % right.Int), nil
		}
		return Float(math.Mod(left.AsFloat(), right.AsFloat())), nil
	case OpPow:
		result := math.Pow(left.AsFloat(), right.AsFloat())
		if bothInt && right.Int >= 0 {
			return Int(int64(result)), nil
		}
		return Float(result), nil
	default:
		return Value{}, langerr.New(langerr.PhaseRuntime, langerr.KindUnsupportedOp, fmt.Sprintf("unknown operator %q", n.Op))
	}
}

func (ip *Interp) evalUnaryOp(n *dslast.UnaryOp, env *Environment) (Value, error) {
	v, err := ip.EvalExpr(n.Operand, env)
	if err != nil {
		return Value{}, err
	}

	switch n.Op {
	case OpNot:
		return boolValue(!v.Truthy()), nil
	case OpNeg:
		if !v.IsNumeric() {
			return Value{}, langerr.New(langerr.PhaseRuntime, langerr.KindUnsupportedOp, "unary - requires a numeric operand")
		}
		if v.Kind == KindInt {
			return Int(-v.Int), nil
		}
		return Float(-v.Float), nil
	default:
		return Value{}, langerr.New(langerr.PhaseRuntime, langerr.KindUnsupportedOp, fmt.Sprintf("unknown unary operator %q", n.Op))
	}
}
