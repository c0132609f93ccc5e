package interp

import (
	"testing"

	"github.com/lassiter/cryptolang/internal/dslast"
	"github.com/lassiter/cryptolang/internal/hostiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lit(n float64) *dslast.Literal { return &dslast.Literal{Kind: dslast.LiteralNumber, Number: n} }

// Test_Arithmetic_PrecedenceAndExponent exercises spec.md §8 scenario 4:
// (3 + 4) * 2 ^ 3 == 56.
func Test_Arithmetic_PrecedenceAndExponent(t *testing.T) {
	ip := New()
	env := ip.Global

	// (3 + 4) * 2 ^ 3
	expr := &dslast.BinaryOp{
		Op:   OpMul,
		Left: &dslast.BinaryOp{Op: OpAdd, Left: lit(3), Right: lit(4)},
		Right: &dslast.BinaryOp{
			Op:    OpPow,
			Left:  lit(2),
			Right: lit(3),
		},
	}

	v, err := ip.EvalExpr(expr, env)
	require.NoError(t, err)
	assert.Equal(t, int64(56), v.Int)
}

func Test_LogicalOperators_NoShortCircuit(t *testing.T) {
	ip := New()
	env := ip.Global

	andExpr := &dslast.BinaryOp{Op: OpAnd, Left: lit(1), Right: lit(0)}
	v, err := ip.EvalExpr(andExpr, env)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v.Int)

	orExpr := &dslast.BinaryOp{Op: OpOr, Left: lit(1), Right: lit(0)}
	v, err = ip.EvalExpr(orExpr, env)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.Int)

	notExpr := &dslast.UnaryOp{Op: OpNot, Operand: lit(0)}
	v, err = ip.EvalExpr(notExpr, env)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.Int)
}

// testNative implements hostiface.NativeCallable for test fixtures.
type testNative struct {
	desc hostiface.Descriptor
	fn   func(args []any, kwargs map[string]any) (any, error)
}

func (n testNative) Descriptor() hostiface.Descriptor { return n.desc }
func (n testNative) Call(args []any, kwargs map[string]any) (any, error) {
	return n.fn(args, kwargs)
}

// Test_Interop_NativeCallsWrappedScriptFunction exercises spec.md §8
// scenario 5: dummy(add) where dummy calls add(5, 6) + 1 == 12.
func Test_Interop_NativeCallsWrappedScriptFunction(t *testing.T) {
	ip := New()

	addDef := &dslast.FunDef{
		Name:   "add",
		Params: []string{"a", "b"},
		Body: []dslast.Node{
			&dslast.Ret{Value: &dslast.BinaryOp{
				Op:    OpAdd,
				Left:  &dslast.Identifier{Name: "a"},
				Right: &dslast.Identifier{Name: "b"},
			}},
		},
	}
	ip.DefineFunction(addDef)

	dummy := testNative{
		desc: hostiface.Descriptor{Positional: []string{"f"}},
		fn: func(args []any, kwargs map[string]any) (any, error) {
			callable := args[0].(Callable)
			result, err := callable.Call([]any{int64(5), int64(6)})
			if err != nil {
				return nil, err
			}
			return result.(int64) + 1, nil
		},
	}
	ip.DefineNative("dummy", dummy)

	call := &dslast.FunCall{
		Name: "dummy",
		Args: &dslast.ArgList{Args: []dslast.Node{&dslast.Identifier{Name: "add"}}},
	}

	v, err := ip.EvalExpr(call, ip.Global)
	require.NoError(t, err)
	assert.Equal(t, int64(12), v.Int)
}

func Test_While_BreakExitsCleanly(t *testing.T) {
	ip := New()
	env := ip.Global
	env.Define("i", Int(0))

	loop := &dslast.While{
		Cond: lit(1), // always truthy; loop relies on Break to exit
		Body: []dslast.Node{
			&dslast.Break{},
		},
	}

	cf, err := ip.ExecStmt(loop, env)
	require.NoError(t, err)
	assert.Equal(t, ControlOk, cf.Kind)
}

func Test_While_ZeroIterationsWhenConditionFalse(t *testing.T) {
	ip := New()
	env := ip.Global
	ran := false
	env.Define("mark", Native(testNative{
		fn: func(args []any, kwargs map[string]any) (any, error) {
			ran = true
			return nil, nil
		},
	}))

	loop := &dslast.While{
		Cond: lit(0),
		Body: []dslast.Node{
			&dslast.FunCall{Name: "mark"},
		},
	}

	_, err := ip.ExecStmt(loop, env)
	require.NoError(t, err)
	assert.False(t, ran)
}

// Test_Leave_ReturnCarrierStopsBehaviorBody exercises spec.md §8 scenario 6:
// a bare `ret` inside a behavior propagates past remaining statements.
func Test_Leave_ReturnCarrierStopsBehaviorBody(t *testing.T) {
	ip := New()
	env := ip.Global
	said := false
	env.Define("say", Native(testNative{
		desc: hostiface.Descriptor{Positional: []string{"msg"}},
		fn: func(args []any, kwargs map[string]any) (any, error) {
			said = true
			return nil, nil
		},
	}))

	body := []dslast.Node{
		&dslast.Ret{},
		&dslast.FunCall{Name: "say", Args: &dslast.ArgList{Args: []dslast.Node{&dslast.Literal{Kind: dslast.LiteralString, Str: "unreachable"}}}},
	}

	cf, err := ip.ExecBlock(body, env)
	require.NoError(t, err)
	assert.Equal(t, ControlReturn, cf.Kind)
	assert.False(t, said)
}
