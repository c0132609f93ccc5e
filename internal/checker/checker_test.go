package checker

import (
	"errors"
	"testing"

	"github.com/lassiter/cryptolang/internal/dslast"
	"github.com/lassiter/cryptolang/internal/hostiface"
	"github.com/lassiter/cryptolang/internal/langerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTemplate struct {
	opts      []string
	behaviors []string
}

func (f fakeTemplate) Options() []string   { return f.opts }
func (f fakeTemplate) Behaviors() []string { return f.behaviors }
func (f fakeTemplate) New(name string, options map[string]any) (hostiface.HostObject, error) {
	return nil, nil
}

func templates() map[string]hostiface.AgentTemplate {
	return map[string]hostiface.AgentTemplate{
		"vanilla": fakeTemplate{opts: []string{"price"}, behaviors: []string{"tick"}},
	}
}

func num(n float64) *dslast.Literal { return &dslast.Literal{Kind: dslast.LiteralNumber, Number: n} }

func kindOf(t *testing.T, err error) langerr.Kind {
	t.Helper()
	var le *langerr.Error
	require.True(t, errors.As(err, &le))
	return le.Kind
}

func Test_Check_UndefinedReference(t *testing.T) {
	c := New([]string{"say"}, templates())
	fn := &dslast.FunDef{
		Name: "f",
		Body: []dslast.Node{
			&dslast.Ret{Value: &dslast.Identifier{Name: "ghost"}},
		},
	}
	sim := &dslast.Simulation{Functions: []*dslast.FunDef{fn}}

	err := c.Check(sim)
	require.Error(t, err)
	assert.Equal(t, langerr.KindUndefinedReference, kindOf(t, err))
}

func Test_Check_BuiltinShadowedByFunctionName(t *testing.T) {
	c := New([]string{"say"}, templates())
	sim := &dslast.Simulation{
		Functions: []*dslast.FunDef{{Name: "say", Body: nil}},
	}

	err := c.Check(sim)
	require.Error(t, err)
	assert.Equal(t, langerr.KindBuiltinShadowed, kindOf(t, err))
}

func Test_Check_BuiltinShadowedByParam(t *testing.T) {
	c := New([]string{"say"}, templates())
	sim := &dslast.Simulation{
		Functions: []*dslast.FunDef{{Name: "f", Params: []string{"say"}}},
	}

	err := c.Check(sim)
	require.Error(t, err)
	assert.Equal(t, langerr.KindBuiltinShadowed, kindOf(t, err))
}

func Test_Check_DuplicateParameter(t *testing.T) {
	c := New(nil, templates())
	sim := &dslast.Simulation{
		Functions: []*dslast.FunDef{{Name: "f", Params: []string{"x", "x"}}},
	}

	err := c.Check(sim)
	require.Error(t, err)
	assert.Equal(t, langerr.KindDuplicateParameter, kindOf(t, err))
}

func Test_Check_ValidFunctionPasses(t *testing.T) {
	c := New(nil, templates())
	sim := &dslast.Simulation{
		Functions: []*dslast.FunDef{
			{
				Name:   "add",
				Params: []string{"a", "b"},
				Body: []dslast.Node{
					&dslast.Ret{Value: &dslast.BinaryOp{
						Op:    "PLUS",
						Left:  &dslast.Identifier{Name: "a"},
						Right: &dslast.Identifier{Name: "b"},
					}},
				},
			},
		},
	}

	assert.NoError(t, c.Check(sim))
}

func Test_Check_UnknownAgentSubtype(t *testing.T) {
	c := New(nil, templates())
	sim := &dslast.Simulation{
		Agents: []*dslast.AgentDec{{Name: "a", Subtype: "nonexistent"}},
	}

	err := c.Check(sim)
	require.Error(t, err)
	assert.Equal(t, langerr.KindUnknownSubtype, kindOf(t, err))
}

func Test_Check_UnknownOption(t *testing.T) {
	c := New(nil, templates())
	sim := &dslast.Simulation{
		Agents: []*dslast.AgentDec{{
			Name:    "a",
			Subtype: "vanilla",
			Options: &dslast.OptList{Opts: []dslast.Opt{{Name: "nope", Value: num(1)}}},
		}},
	}

	err := c.Check(sim)
	require.Error(t, err)
	assert.Equal(t, langerr.KindUnknownOption, kindOf(t, err))
}

func Test_Check_UnknownBehavior(t *testing.T) {
	c := New(nil, templates())
	sim := &dslast.Simulation{
		Agents: []*dslast.AgentDec{{
			Name:      "a",
			Subtype:   "vanilla",
			Behaviors: &dslast.BehaviorList{Behaviors: []dslast.Behavior{{Name: "nope"}}},
		}},
	}

	err := c.Check(sim)
	require.Error(t, err)
	assert.Equal(t, langerr.KindUnknownBehavior, kindOf(t, err))
}

func Test_Check_DuplicateBehavior(t *testing.T) {
	c := New(nil, templates())
	sim := &dslast.Simulation{
		Agents: []*dslast.AgentDec{{
			Name:    "a",
			Subtype: "vanilla",
			Behaviors: &dslast.BehaviorList{Behaviors: []dslast.Behavior{
				{Name: "tick"}, {Name: "tick"},
			}},
		}},
	}

	err := c.Check(sim)
	require.Error(t, err)
	assert.Equal(t, langerr.KindDuplicateBehavior, kindOf(t, err))
}

func Test_Check_AttrAssignBypassesShadowCheck(t *testing.T) {
	c := New([]string{"say"}, templates())
	sim := &dslast.Simulation{
		Agents: []*dslast.AgentDec{{
			Name:    "a",
			Subtype: "vanilla",
			Behaviors: &dslast.BehaviorList{Behaviors: []dslast.Behavior{{
				Name: "tick",
				Body: []dslast.Node{
					&dslast.Assign{
						Target: &dslast.AttrRes{Target: dslast.AttrMy, Name: "say"},
						Value:  num(1),
					},
				},
			}}},
		}},
	}

	assert.NoError(t, c.Check(sim))
}

func Test_Check_ValidAgentPasses(t *testing.T) {
	c := New(nil, templates())
	sim := &dslast.Simulation{
		Agents: []*dslast.AgentDec{{
			Name:    "a",
			Subtype: "vanilla",
			Options: &dslast.OptList{Opts: []dslast.Opt{{Name: "price", Value: num(10)}}},
			Behaviors: &dslast.BehaviorList{Behaviors: []dslast.Behavior{{
				Name: "tick",
				Body: []dslast.Node{
					&dslast.Assign{Target: &dslast.Identifier{Name: "x"}, Value: num(1)},
					&dslast.If{
						Cond: &dslast.Identifier{Name: "x"},
						Then: []dslast.Node{&dslast.Break{}},
					},
				},
			}}},
		}},
	}

	assert.NoError(t, c.Check(sim))
}
