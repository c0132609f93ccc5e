// Package interp implements the tree-walking interpreter of spec.md §4.6:
// an environment chain, a tagged Value, non-local control flow via
// ControlFlow rather than exceptions, and the native-call protocol that
// bridges script functions and host-provided native callables.
package interp

import (
	"fmt"
	"math"

	"github.com/lassiter/cryptolang/internal/dslast"
	"github.com/lassiter/cryptolang/internal/hostiface"
	"github.com/lassiter/cryptolang/internal/langerr"
)

// Interp holds the global environment and runs the tree-walking evaluator
// over dslast.Node trees.
type Interp struct {
	Global *Environment
}

// New returns an Interp with an empty, populated-on-demand global
// environment.
func New() *Interp {
	return &Interp{Global: NewRootEnvironment()}
}

// DefineNative binds a native callable under name in the global scope.
func (ip *Interp) DefineNative(name string, nc hostiface.NativeCallable) {
	ip.Global.Define(name, Native(nc))
}

// DefineFunction binds a parsed top-level function definition under its own
// name in the global scope, closing over Global itself.
func (ip *Interp) DefineFunction(fn *dslast.FunDef) {
	ip.Global.Define(fn.Name, Script(&ScriptFunc{Def: fn, Env: ip.Global}))
}

// EvalExpr evaluates an expression node to a Value.
func (ip *Interp) EvalExpr(node dslast.Node, env *Environment) (Value, error) {
	switch n := node.(type) {
	case *dslast.Literal:
		if n.Kind == dslast.LiteralString {
			return String(n.Str), nil
		}
		if n.Number == math.Trunc(n.Number) {
			return Int(int64(n.Number)), nil
		}
		return Float(n.Number), nil

	case *dslast.Identifier:
		v, ok := env.Lookup(n.Name)
		if !ok {
			return Value{}, langerr.New(langerr.PhaseRuntime, langerr.KindUndefinedReference, "undefined reference").WithIdent(n.Name)
		}
		return v, nil

	case *dslast.BinaryOp:
		return ip.evalBinaryOp(n, env)

	case *dslast.UnaryOp:
		return ip.evalUnaryOp(n, env)

	case *dslast.FunCall:
		return ip.evalFunCall(n, env)

	case *dslast.AttrRes:
		return ip.evalAttrRes(n, env)

	default:
		return Value{}, fmt.Errorf("interp: %T is not an expression node", node)
	}
}

func (ip *Interp) evalArgs(list *dslast.ArgList, env *Environment) ([]Value, error) {
	if list == nil {
		return nil, nil
	}
	args := make([]Value, len(list.Args))
	for i, a := range list.Args {
		v, err := ip.EvalExpr(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

func (ip *Interp) evalFunCall(n *dslast.FunCall, env *Environment) (Value, error) {
	fn, ok := env.Lookup(n.Name)
	if !ok {
		return Value{}, langerr.New(langerr.PhaseRuntime, langerr.KindUndefinedReference, "undefined reference").WithIdent(n.Name)
	}
	args, err := ip.evalArgs(n.Args, env)
	if err != nil {
		return Value{}, err
	}
	return ip.callValue(fn, args, env)
}

// callValue implements the function-call protocol of spec.md §4.6 for
// both script functions and native callables.
func (ip *Interp) callValue(fn Value, args []Value, callerEnv *Environment) (Value, error) {
	switch fn.Kind {
	case KindScriptFunc:
		def := fn.Func.Def
		if len(args) != len(def.Params) {
			return Value{}, langerr.New(langerr.PhaseRuntime, langerr.KindArityMismatch,
				fmt.Sprintf("%s expects %d argument(s), got %d", def.Name, len(def.Params), len(args)))
		}
		frame := fn.Func.Env.NewChild()
		for i, p := range def.Params {
			frame.Define(p, args[i])
		}
		cf, err := ip.ExecBlock(def.Body, frame)
		if err != nil {
			return Value{}, err
		}
		if cf.Kind == ControlReturn {
			return cf.Value, nil
		}
		return Value{}, nil

	case KindNative:
		desc := fn.Native.Descriptor()
		kwargs := map[string]any{}
		if desc.WantsMy() {
			if my, ok := callerEnv.Lookup("my"); ok {
				kwargs["my"] = my.ToAny(ip, callerEnv)
			}
		}
		if desc.WantsMarket() {
			if mkt, ok := callerEnv.Lookup("market"); ok {
				kwargs["market"] = mkt.ToAny(ip, callerEnv)
			}
		}
		anyArgs := make([]any, len(args))
		for i, a := range args {
			anyArgs[i] = a.ToAny(ip, callerEnv)
		}
		result, err := fn.Native.Call(anyArgs, kwargs)
		if err != nil {
			return Value{}, err
		}
		if result == nil {
			return Value{}, nil
		}
		return FromAny(result), nil

	default:
		return Value{}, langerr.New(langerr.PhaseRuntime, langerr.KindUnsupportedOp, fmt.Sprintf("%s is not callable", fn.Kind))
	}
}

func (ip *Interp) evalAttrRes(n *dslast.AttrRes, env *Environment) (Value, error) {
	parent, ok := env.Lookup(n.Target.String())
	if !ok || parent.Kind != KindHostObject {
		return Value{}, langerr.New(langerr.PhaseRuntime, langerr.KindAttributeMissing,
			fmt.Sprintf("%s is not bound to a host object", n.Target))
	}

	if n.Call != nil {
		args, err := ip.evalArgs(n.Call, env)
		if err != nil {
			return Value{}, err
		}
		anyArgs := make([]any, len(args))
		for i, a := range args {
			anyArgs[i] = a.ToAny(ip, env)
		}
		result, err := parent.Host.CallMethod(n.Name, anyArgs)
		if err != nil {
			return Value{}, err
		}
		if result == nil {
			return Value{}, nil
		}
		return FromAny(result), nil
	}

	result, err := parent.Host.Get(n.Name)
	if err != nil {
		return Value{}, err
	}
	return FromAny(result), nil
}

// ExecBlock executes a sequence of statements in env, stopping and
// propagating the first non-Ok ControlFlow.
func (ip *Interp) ExecBlock(stmts []dslast.Node, env *Environment) (ControlFlow, error) {
	for _, stmt := range stmts {
		cf, err := ip.ExecStmt(stmt, env)
		if err != nil {
			return ControlFlow{}, err
		}
		if !cf.IsNormal() {
			return cf, nil
		}
	}
	return Ok(Value{}), nil
}

// ExecStmt executes one statement node.
func (ip *Interp) ExecStmt(node dslast.Node, env *Environment) (ControlFlow, error) {
	switch n := node.(type) {
	case *dslast.Assign:
		v, err := ip.EvalExpr(n.Value, env)
		if err != nil {
			return ControlFlow{}, err
		}
		switch target := n.Target.(type) {
		case *dslast.Identifier:
			env.Define(target.Name, v)
		case *dslast.AttrRes:
			parent, ok := env.Lookup(target.Target.String())
			if !ok || parent.Kind != KindHostObject {
				return ControlFlow{}, langerr.New(langerr.PhaseRuntime, langerr.KindAttributeMissing,
					fmt.Sprintf("%s is not bound to a host object", target.Target))
			}
			if err := parent.Host.Set(target.Name, v.ToAny(ip, env)); err != nil {
				return ControlFlow{}, err
			}
		default:
			return ControlFlow{}, fmt.Errorf("interp: invalid assignment target %T", n.Target)
		}
		return Ok(Value{}), nil

	case *dslast.If:
		cond, err := ip.EvalExpr(n.Cond, env)
		if err != nil {
			return ControlFlow{}, err
		}
		// both branches run in the caller's environment -- no child frame,
		// per spec.md §9's documented carry-over of the source's behavior.
		if cond.Truthy() {
			return ip.ExecBlock(n.Then, env)
		}
		if n.Else != nil {
			return ip.ExecBlock(n.Else, env)
		}
		return Ok(Value{}), nil

	case *dslast.While:
		for {
			cond, err := ip.EvalExpr(n.Cond, env)
			if err != nil {
				return ControlFlow{}, err
			}
			if !cond.Truthy() {
				return Ok(Value{}), nil
			}
			cf, err := ip.ExecBlock(n.Body, env.NewChild())
			if err != nil {
				return ControlFlow{}, err
			}
			switch cf.Kind {
			case ControlBreak:
				return Ok(Value{}), nil
			case ControlReturn:
				return cf, nil
			}
		}

	case *dslast.Ret:
		if n.Value == nil {
			return Return(Value{}), nil
		}
		v, err := ip.EvalExpr(n.Value, env)
		if err != nil {
			return ControlFlow{}, err
		}
		return Return(v), nil

	case *dslast.Break:
		return BreakFlow(), nil

	default:
		// bare expression statement (FunCall, AttrRes call, etc.)
		_, err := ip.EvalExpr(node, env)
		if err != nil {
			return ControlFlow{}, err
		}
		return Ok(Value{}), nil
	}
}
