// Package checker implements the static semantic checker of spec.md §4.5:
// a single recursive walk over a parsed Simulation that enforces identifier
// scoping, built-in shadow protection, parameter distinctness, and agent
// declaration validity against a host-supplied template registry.
package checker

import (
	"fmt"

	"github.com/lassiter/cryptolang/internal/dslast"
	"github.com/lassiter/cryptolang/internal/hostiface"
	"github.com/lassiter/cryptolang/internal/langerr"
	"github.com/lassiter/cryptolang/internal/util"
)

// scope is a single frame of declared names, used only to decide whether a
// name is in scope for lookup -- no values are tracked, unlike
// internal/interp's Environment.
type scope struct {
	parent *scope
	names  map[string]bool
}

func newScope(parent *scope) *scope { return &scope{parent: parent, names: map[string]bool{}} }

func (s *scope) declare(name string) { s.names[name] = true }

func (s *scope) has(name string) bool {
	for sc := s; sc != nil; sc = sc.parent {
		if sc.names[name] {
			return true
		}
	}
	return false
}

// Checker holds the fixed context a check run needs: the built-in name set
// (which no user declaration may shadow) and the host's agent-template
// registry (which agent declarations are validated against).
type Checker struct {
	builtins  util.StringSet
	templates map[string]hostiface.AgentTemplate
}

// New returns a Checker configured with the given built-in names and agent
// template registry.
func New(builtins []string, templates map[string]hostiface.AgentTemplate) *Checker {
	c := &Checker{builtins: util.NewStringSet(), templates: templates}
	for _, b := range builtins {
		c.builtins.Add(b)
	}
	return c
}

func (c *Checker) shadowErr(name string) *langerr.Error {
	return langerr.New(langerr.PhaseSemantic, langerr.KindBuiltinShadowed, "built-in shadowed").WithIdent(name)
}

// Check validates sim against spec.md §4.5's rules, returning the first
// violation found (checking is fail-fast, per spec.md §7: "All errors are
// fatal: there is no local recovery").
func (c *Checker) Check(sim *dslast.Simulation) error {
	global := newScope(nil)
	for _, b := range c.builtins.Elements() {
		global.declare(b)
	}
	for _, fn := range sim.Functions {
		if c.builtins.Has(fn.Name) {
			return c.shadowErr(fn.Name)
		}
		global.declare(fn.Name)
	}
	for _, ag := range sim.Agents {
		if c.builtins.Has(ag.Name) {
			return c.shadowErr(ag.Name)
		}
		global.declare(ag.Name)
	}

	for _, fn := range sim.Functions {
		if err := c.checkFunDef(fn, global); err != nil {
			return err
		}
	}
	for _, ag := range sim.Agents {
		if err := c.checkAgentDec(ag, global); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkFunDef(fn *dslast.FunDef, global *scope) error {
	seen := map[string]bool{}
	local := newScope(global)
	for _, p := range fn.Params {
		if seen[p] {
			return langerr.New(langerr.PhaseSemantic, langerr.KindDuplicateParameter, "duplicate parameter").WithIdent(p)
		}
		seen[p] = true
		if c.builtins.Has(p) {
			return c.shadowErr(p)
		}
		local.declare(p)
	}
	return c.checkBlock(fn.Body, local)
}

func (c *Checker) checkAgentDec(ag *dslast.AgentDec, global *scope) error {
	tmpl, ok := c.templates[ag.Subtype]
	if !ok {
		return langerr.New(langerr.PhaseSemantic, langerr.KindUnknownSubtype, "unknown agent subtype").WithIdent(ag.Subtype)
	}

	validOpts := util.NewStringSet()
	for _, o := range tmpl.Options() {
		validOpts.Add(o)
	}
	validBehaviors := util.NewStringSet()
	for _, b := range tmpl.Behaviors() {
		validBehaviors.Add(b)
	}

	if ag.Options != nil {
		for _, opt := range ag.Options.Opts {
			if !validOpts.Has(opt.Name) {
				return langerr.New(langerr.PhaseSemantic, langerr.KindUnknownOption, "unknown option").WithIdent(opt.Name)
			}
			if err := c.checkExpr(opt.Value, global); err != nil {
				return err
			}
		}
	}

	if ag.Behaviors != nil {
		seenBehaviors := map[string]bool{}
		for _, b := range ag.Behaviors.Behaviors {
			if !validBehaviors.Has(b.Name) {
				return langerr.New(langerr.PhaseSemantic, langerr.KindUnknownBehavior, "unknown behavior").WithIdent(b.Name)
			}
			if seenBehaviors[b.Name] {
				return langerr.New(langerr.PhaseSemantic, langerr.KindDuplicateBehavior, "duplicate behavior").WithIdent(b.Name)
			}
			seenBehaviors[b.Name] = true

			// behaviors take no parameters: guaranteed structurally by
			// dslast.Behavior having no Params field, since the grammar
			// never produces one (spec.md §6's Behavior production is
			// `ID '{' Stmt+ '}'`), so no runtime check is needed here.
			if err := c.checkBlock(b.Body, newScope(global)); err != nil {
				return err
			}
		}
	}

	return nil
}

func (c *Checker) checkBlock(stmts []dslast.Node, s *scope) error {
	for _, stmt := range stmts {
		if err := c.checkStmt(stmt, s); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkStmt(node dslast.Node, s *scope) error {
	switch n := node.(type) {
	case *dslast.Assign:
		if err := c.checkExpr(n.Value, s); err != nil {
			return err
		}
		switch target := n.Target.(type) {
		case *dslast.Identifier:
			// an assignment target may not name a built-in. Built-ins are
			// declared in the global scope, so "already bound" cannot tell
			// them apart from user bindings; check the built-in set itself.
			if c.builtins.Has(target.Name) {
				return c.shadowErr(target.Name)
			}
			s.declare(target.Name)
		case *dslast.AttrRes:
			// assigning to an attribute (x.f = e) bypasses the built-in
			// shadow check entirely: the target is a host object, not a
			// binding (spec.md §4.5).
		default:
			return fmt.Errorf("checker: invalid assignment target %T", n.Target)
		}
		return nil

	case *dslast.If:
		if err := c.checkExpr(n.Cond, s); err != nil {
			return err
		}
		if err := c.checkBlock(n.Then, s); err != nil {
			return err
		}
		return c.checkBlock(n.Else, s)

	case *dslast.While:
		if err := c.checkExpr(n.Cond, s); err != nil {
			return err
		}
		return c.checkBlock(n.Body, newScope(s))

	case *dslast.Ret:
		if n.Value == nil {
			return nil
		}
		return c.checkExpr(n.Value, s)

	case *dslast.Break:
		return nil

	default:
		return c.checkExpr(node, s)
	}
}

func (c *Checker) checkExpr(node dslast.Node, s *scope) error {
	if node == nil {
		return nil
	}
	switch n := node.(type) {
	case *dslast.Literal:
		return nil

	case *dslast.Identifier:
		if !s.has(n.Name) {
			return langerr.New(langerr.PhaseSemantic, langerr.KindUndefinedReference, "undefined reference").WithIdent(n.Name)
		}
		return nil

	case *dslast.BinaryOp:
		if err := c.checkExpr(n.Left, s); err != nil {
			return err
		}
		return c.checkExpr(n.Right, s)

	case *dslast.UnaryOp:
		return c.checkExpr(n.Operand, s)

	case *dslast.FunCall:
		if !s.has(n.Name) {
			return langerr.New(langerr.PhaseSemantic, langerr.KindUndefinedReference, "undefined reference").WithIdent(n.Name)
		}
		if n.Args != nil {
			for _, a := range n.Args.Args {
				if err := c.checkExpr(a, s); err != nil {
					return err
				}
			}
		}
		return nil

	case *dslast.AttrRes:
		// `my`/`market` are reserved prefixes resolved at runtime against
		// whatever host object is bound there, not ordinary identifiers,
		// so they are not subject to scope lookup here.
		if n.Call != nil {
			for _, a := range n.Call.Args {
				if err := c.checkExpr(a, s); err != nil {
					return err
				}
			}
		}
		return nil

	default:
		return fmt.Errorf("checker: %T is not an expression node", node)
	}
}
