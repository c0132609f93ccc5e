package interp

import (
	"fmt"

	"github.com/lassiter/cryptolang/internal/dslast"
	"github.com/lassiter/cryptolang/internal/hostiface"
)

// Kind tags which arm of Value is populated, per spec.md §9's "Dynamic
// typing → tagged values" design note.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
	KindHostObject
	KindScriptFunc
	KindNative
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindHostObject:
		return "host-object"
	case KindScriptFunc:
		return "script-function"
	case KindNative:
		return "native-callable"
	default:
		return "unknown"
	}
}

// ScriptFunc is a script-defined function value: the AST it was declared
// with, and the environment it closed over at definition time.
type ScriptFunc struct {
	Def *dslast.FunDef
	Env *Environment
}

// Value is the single tagged value type flowing through expression
// evaluation: integer, floating, string, host-object, script-function
// reference, or native-callable.
type Value struct {
	Kind   Kind
	Int    int64
	Float  float64
	Str    string
	Host   hostiface.HostObject
	Func   *ScriptFunc
	Native hostiface.NativeCallable
}

func Int(i int64) Value    { return Value{Kind: KindInt, Int: i} }
func Float(f float64) Value { return Value{Kind: KindFloat, Float: f} }
func String(s string) Value { return Value{Kind: KindString, Str: s} }
func Host(h hostiface.HostObject) Value { return Value{Kind: KindHostObject, Host: h} }
func Script(fn *ScriptFunc) Value { return Value{Kind: KindScriptFunc, Func: fn} }
func Native(n hostiface.NativeCallable) Value { return Value{Kind: KindNative, Native: n} }

// IsNumeric reports whether v is an int or float.
func (v Value) IsNumeric() bool { return v.Kind == KindInt || v.Kind == KindFloat }

// AsFloat returns v's numeric value widened to float64. Panics if v isn't
// numeric; callers must check IsNumeric first.
func (v Value) AsFloat() float64 {
	if v.Kind == KindInt {
		return float64(v.Int)
	}
	return v.Float
}

// Truthy implements the language's truthiness rule: zero (of either numeric
// kind) and the empty string are falsy; everything else, including any
// host-object/function value, is truthy.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindInt:
		return v.Int != 0
	case KindFloat:
		return v.Float != 0
	case KindString:
		return v.Str != ""
	default:
		return true
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindFloat:
		return fmt.Sprintf("%g", v.Float)
	case KindString:
		return v.Str
	case KindHostObject:
		return "<host-object>"
	case KindScriptFunc:
		return fmt.Sprintf("<func %s>", v.Func.Def.Name)
	case KindNative:
		return "<native>"
	default:
		return "<unknown>"
	}
}

// Equal implements the language's `==`/`!=` value equality: numeric values
// compare by widened float value, strings by content, everything else by
// identity of the underlying host/func/native reference.
func (v Value) Equal(o Value) bool {
	if v.IsNumeric() && o.IsNumeric() {
		return v.AsFloat() == o.AsFloat()
	}
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindString:
		return v.Str == o.Str
	case KindHostObject:
		return v.Host == o.Host
	case KindScriptFunc:
		return v.Func == o.Func
	case KindNative:
		return v.Native == o.Native
	default:
		return false
	}
}
