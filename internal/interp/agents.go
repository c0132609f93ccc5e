package interp

import (
	"fmt"

	"github.com/lassiter/cryptolang/internal/dslast"
	"github.com/lassiter/cryptolang/internal/hostiface"
)

// ReduceOptions evaluates each option's right-hand side in a throwaway
// child frame and collects the resulting name -> value map, per spec.md
// §4.6's "OptList reduction". A value that resolved to a script function
// is wrapped as a Callable (a host-callable closure) before insertion, so
// the host template constructor receiving the map never needs to know
// about interp.Value.
func (ip *Interp) ReduceOptions(opts *dslast.OptList, env *Environment) (map[string]any, error) {
	result := map[string]any{}
	if opts == nil {
		return result, nil
	}
	for _, opt := range opts.Opts {
		frame := env.NewChild()
		v, err := ip.EvalExpr(opt.Value, frame)
		if err != nil {
			return nil, err
		}
		result[opt.Name] = v.ToAny(ip, env)
	}
	return result, nil
}

// InstallAgent implements spec.md §4.6's "Wrapping agents": instantiate the
// declared subtype from templates with the reduced option map, then build
// and install a host-callable closure for each declared behavior that, when
// invoked, evaluates the behavior body in a child of the global environment
// augmented with MY -> the new agent instance.
func (ip *Interp) InstallAgent(dec *dslast.AgentDec, templates map[string]hostiface.AgentTemplate) (hostiface.HostObject, error) {
	tmpl, ok := templates[dec.Subtype]
	if !ok {
		return nil, fmt.Errorf("interp: unknown agent subtype %q", dec.Subtype)
	}

	options, err := ip.ReduceOptions(dec.Options, ip.Global)
	if err != nil {
		return nil, err
	}

	agent, err := tmpl.New(dec.Name, options)
	if err != nil {
		return nil, err
	}

	if dec.Behaviors != nil {
		for _, b := range dec.Behaviors.Behaviors {
			body := b.Body
			closure := func() (any, error) {
				frame := ip.Global.NewChild()
				frame.Define("my", Host(agent))
				cf, err := ip.ExecBlock(body, frame)
				if err != nil {
					return nil, err
				}
				if cf.Kind == ControlReturn {
					return cf.Value.ToAny(ip, frame), nil
				}
				return nil, nil
			}
			if err := agent.InstallBehavior(b.Name, closure); err != nil {
				return nil, err
			}
		}
	}

	return agent, nil
}
