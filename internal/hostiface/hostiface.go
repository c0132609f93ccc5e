// Package hostiface defines the capability interfaces spec.md §4.6/§9 uses
// to keep the interpreter from ever reaching into a host object's fields
// directly: HostObject, AgentTemplate, and NativeCallable.
package hostiface

// HostObject is any value owned by the host (a coin, a trader, the market)
// that script code can read attributes from, write attributes to, and call
// methods on via AttrRes. Grounded on spec.md §9's "Host-object attributes"
// design note: "the interpreter must never reach into a host object's
// fields directly; it must go through a capability HostObject{ get, set,
// call_method }".
type HostObject interface {
	// Get returns the named attribute's current value. Returns an error if
	// name isn't a recognized attribute.
	Get(name string) (any, error)
	// Set assigns the named attribute. Returns an error if name isn't a
	// recognized, writable attribute.
	Set(name string, value any) error
	// CallMethod invokes the named method with already-evaluated arguments
	// and returns its result. Returns an error if name isn't a recognized
	// method.
	CallMethod(name string, args []any) (any, error)

	// InstallBehavior installs a script-backed closure under the given
	// behavior name, so that a later CallMethod(name, nil) from the driver
	// invokes it. Grounded on spec.md §4.6's agent-wrapping step 3: "Install
	// that closure on the agent under the behavior name." fn takes no
	// arguments, matching the language's "behaviors take no parameters"
	// semantic rule (spec.md §4.5).
	InstallBehavior(name string, fn func() (any, error)) error
}

// AgentTemplate is a host-supplied factory for one agent subtype: its
// declared option names, its declared behavior names, and a constructor
// that builds a fresh HostObject from a reduced option map. Grounded on
// spec.md §6's "Agent-template registry: { subtype_name → (option_set,
// behavior_set, constructor) }".
type AgentTemplate interface {
	// Options returns the set of option names this template accepts.
	Options() []string
	// Behaviors returns the set of behavior names this template declares.
	Behaviors() []string
	// New constructs a fresh agent instance of this subtype from the given
	// option values (already reduced per spec.md §4.6's OptList reduction).
	New(name string, options map[string]any) (HostObject, error)
}

// NativeCallable is a host-provided function invokable from script, paired
// with an introspected descriptor so the interpreter's native-call logic
// (spec.md §4.6) can decide whether to inject the reserved `my`/`market`
// keyword arguments without the native function itself needing to express
// that through its Go signature.
type NativeCallable interface {
	// Descriptor returns the callable's parameter shape.
	Descriptor() Descriptor
	// Call invokes the native function. kwargs carries only the reserved
	// keyword arguments the interpreter decided to inject (`my`, `market`),
	// filtered to the subset Descriptor().KeywordOnly declares.
	Call(args []any, kwargs map[string]any) (any, error)
}

// Descriptor is a native callable's introspected parameter shape: its
// ordered positional parameter names, and the set of reserved keyword-only
// parameter names (a subset of {"my", "market"}) it wants injected.
type Descriptor struct {
	Positional  []string
	KeywordOnly map[string]bool
}

// WantsMy reports whether the callable's descriptor declares the `my`
// keyword-only parameter.
func (d Descriptor) WantsMy() bool { return d.KeywordOnly["my"] }

// WantsMarket reports whether the callable's descriptor declares the
// `market` keyword-only parameter.
func (d Descriptor) WantsMarket() bool { return d.KeywordOnly["market"] }
