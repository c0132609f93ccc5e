package interp

import (
	"fmt"

	"github.com/lassiter/cryptolang/internal/hostiface"
)

// Callable crosses the boundary between the interpreter's Value and
// hostiface's any-typed NativeCallable.Call signature: a native function
// written outside this package (internal/builtins) that receives a script
// function or another native as an argument gets back a Callable, not a
// Value, so internal/builtins never needs to import internal/interp's
// Value type to invoke it. Grounded on spec.md §4.6: "Any script-function
// value passed as an argument to a native callable is first wrapped into a
// host-callable closure that, when invoked, enters the interpreter again."
type Callable struct {
	ip  *Interp
	val Value
	env *Environment
}

// Call re-enters the interpreter to invoke the wrapped script function or
// native callable with the given already-evaluated arguments (as `any`,
// converted back to Value at the boundary).
func (c Callable) Call(args []any) (any, error) {
	vals := make([]Value, len(args))
	for i, a := range args {
		vals[i] = FromAny(a)
	}
	result, err := c.ip.callValue(c.val, vals, c.env)
	if err != nil {
		return nil, err
	}
	return result.ToAny(c.ip, c.env), nil
}

// ToAny converts v to the plain Go value native callables operate on:
// int64/float64/string for scalars, the hostiface.HostObject directly for
// host values, and a Callable for script/native function values.
func (v Value) ToAny(ip *Interp, env *Environment) any {
	switch v.Kind {
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	case KindString:
		return v.Str
	case KindHostObject:
		return v.Host
	case KindScriptFunc, KindNative:
		return Callable{ip: ip, val: v, env: env}
	default:
		return nil
	}
}

// FromAny converts a plain Go value returned by, or passed to, a native
// callable back into a Value.
func FromAny(a any) Value {
	switch x := a.(type) {
	case Value:
		return x
	case int64:
		return Int(x)
	case int:
		return Int(int64(x))
	case float64:
		return Float(x)
	case string:
		return String(x)
	case Callable:
		return x.val
	default:
		if hostObj, ok := a.(hostiface.HostObject); ok {
			return Value{Kind: KindHostObject, Host: hostObj}
		}
		panic(fmt.Sprintf("interp: cannot convert %T to Value", a))
	}
}
