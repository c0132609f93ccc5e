package dsl

import (
	"testing"

	"github.com/lassiter/cryptolang/internal/dslast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Parse_FunctionAndArithmetic(t *testing.T) {
	src := `
func add(a, b) {
	ret a + b * 2;
}
`
	sim, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, sim.Functions, 1)

	fn := sim.Functions[0]
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, []string{"a", "b"}, fn.Params)
	require.Len(t, fn.Body, 1)

	ret, ok := fn.Body[0].(*dslast.Ret)
	require.True(t, ok)
	require.NotNil(t, ret.Value)

	bin, ok := ret.Value.(*dslast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "PLUS", bin.Op)

	rhs, ok := bin.Right.(*dslast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "STAR", rhs.Op)
}

func Test_Parse_UnaryAndPowerPrecedence(t *testing.T) {
	// -2 ^ 2 should parse as -(2 ^ 2): Pow binds tighter than unary minus.
	src := `
func f() {
	ret -2 ^ 2;
}
`
	sim, err := Parse(src)
	require.NoError(t, err)
	ret := sim.Functions[0].Body[0].(*dslast.Ret)

	neg, ok := ret.Value.(*dslast.UnaryOp)
	require.True(t, ok)
	assert.Equal(t, "MINUS", neg.Op)

	pow, ok := neg.Operand.(*dslast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "CARET", pow.Op)
}

func Test_Parse_AgentDeclarationWithOptionsAndBehaviors(t *testing.T) {
	src := `
coin btc: vanilla [price = 100, volatility = 2] {
	tick {
		my.update(5);
	}
}
`
	sim, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, sim.Agents, 1)

	ag := sim.Agents[0]
	assert.Equal(t, dslast.AgentCoin, ag.Kind)
	assert.Equal(t, "btc", ag.Name)
	assert.Equal(t, "vanilla", ag.Subtype)
	require.Len(t, ag.Options.Opts, 2)
	assert.Equal(t, "price", ag.Options.Opts[0].Name)
	assert.Equal(t, "volatility", ag.Options.Opts[1].Name)

	require.Len(t, ag.Behaviors.Behaviors, 1)
	behavior := ag.Behaviors.Behaviors[0]
	assert.Equal(t, "tick", behavior.Name)
	require.Len(t, behavior.Body, 1)

	attrCall, ok := behavior.Body[0].(*dslast.AttrRes)
	require.True(t, ok)
	assert.Equal(t, dslast.AttrMy, attrCall.Target)
	assert.Equal(t, "update", attrCall.Name)
	require.NotNil(t, attrCall.Call)
	require.Len(t, attrCall.Call.Args, 1)
}

func Test_Parse_IfElseAndWhileWithBreak(t *testing.T) {
	src := `
func loop() {
	while 1 {
		if market.time >= market.end_time {
			break;
		} else {
			ret 0;
		}
	}
}
`
	sim, err := Parse(src)
	require.NoError(t, err)
	fn := sim.Functions[0]
	require.Len(t, fn.Body, 1)

	wh, ok := fn.Body[0].(*dslast.While)
	require.True(t, ok)
	require.Len(t, wh.Body, 1)

	ifNode, ok := wh.Body[0].(*dslast.If)
	require.True(t, ok)
	require.Len(t, ifNode.Then, 1)
	require.Len(t, ifNode.Else, 1)

	_, isBreak := ifNode.Then[0].(*dslast.Break)
	assert.True(t, isBreak)
}

func Test_Parse_SyntaxErrorOnBadInput(t *testing.T) {
	_, err := Parse(`func f( { ret 1; }`)
	assert.Error(t, err)
}

func Test_Parse_LexErrorOnUnknownCharacter(t *testing.T) {
	_, err := Parse("func f() { ret 1 @ 2; }")
	assert.Error(t, err)
}
