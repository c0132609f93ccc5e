// Package driver implements the reference simulation loop spec.md §6
// describes as an out-of-scope external collaborator: construct an
// interpreter, pass it the source text, the agent-template registry, the
// built-in registry, and a market object; wrap each returned agent's
// declared behaviors as installed methods; then loop until
// market.time >= market.end_time, invoking each trader's trade and each
// coin's update_parameters once per tick.
//
// This is a thin, swappable reference loop, not part of the interpreter
// core -- a host embedding internal/interp/internal/checker is free to
// write its own driver against the same hostiface contract.
package driver

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/lassiter/cryptolang/internal/builtins"
	"github.com/lassiter/cryptolang/internal/checker"
	"github.com/lassiter/cryptolang/internal/dsl"
	"github.com/lassiter/cryptolang/internal/dslast"
	"github.com/lassiter/cryptolang/internal/hostiface"
	"github.com/lassiter/cryptolang/internal/interp"
	"github.com/lassiter/cryptolang/internal/market"
)

// Driver owns one parsed simulation's live agents and the market clock
// they share, and runs the discrete-time tick loop over them.
type Driver struct {
	Market  *market.Market
	Coins   []*market.GenericCoin
	Traders []*market.GenericTrader

	ip *interp.Interp
}

// New parses source, checks it, instantiates every declared agent against
// internal/market's built-in templates, and installs their behaviors --
// spec.md §6's "interpreter returns (coin_list, trader_list, option_map)"
// step, with option_map folded into each agent's own fields rather than
// returned separately, since internal/market's templates already consume
// their options at construction time.
//
// rng seeds both internal/market's random-walk coin updates and
// internal/builtins' random trade-amount draws; endTime sets market.end_time
// before the first tick.
func New(source string, rng *rand.Rand, endTime float64) (*Driver, error) {
	sim, err := dsl.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("driver: parsing simulation: %w", err)
	}

	templates := market.Templates(rng)
	registry := builtins.Registry(rng)

	builtinNames := make([]string, 0, len(registry))
	for name := range registry {
		builtinNames = append(builtinNames, name)
	}

	chk := checker.New(builtinNames, templates)
	if err := chk.Check(sim); err != nil {
		return nil, fmt.Errorf("driver: checking simulation: %w", err)
	}

	ip := interp.New()
	for name, nc := range registry {
		ip.DefineNative(name, nc)
	}
	for _, fn := range sim.Functions {
		ip.DefineFunction(fn)
	}

	mkt := market.New(endTime)
	ip.Global.Define("market", interp.Host(mkt))

	d := &Driver{Market: mkt, ip: ip}
	for _, ag := range sim.Agents {
		agent, err := ip.InstallAgent(ag, templates)
		if err != nil {
			return nil, fmt.Errorf("driver: installing agent %q: %w", ag.Name, err)
		}
		// InstallAgent only constructs and wires behaviors; binding the
		// agent under its declared name is the driver's job, mirroring
		// DefineFunction's and the native registry's own Global.Define
		// calls, so a script can reference a sibling agent by name (e.g.
		// a trader's `buy(btc)` resolving the coin declared as `btc`).
		ip.Global.Define(ag.Name, interp.Host(agent))
		if err := d.classify(ag, agent); err != nil {
			return nil, err
		}
	}

	mkt.Coins = d.Coins
	mkt.Traders = d.Traders
	return d, nil
}

// classify sorts a freshly-installed agent into Coins or Traders by its
// declared kind, so Run never needs to re-inspect the AST.
func (d *Driver) classify(ag *dslast.AgentDec, agent hostiface.HostObject) error {
	switch ag.Kind {
	case dslast.AgentCoin:
		coin, ok := agent.(*market.GenericCoin)
		if !ok {
			return fmt.Errorf("driver: agent %q declared as coin but template produced %T", ag.Name, agent)
		}
		d.Coins = append(d.Coins, coin)
	case dslast.AgentTrader:
		trader, ok := agent.(*market.GenericTrader)
		if !ok {
			return fmt.Errorf("driver: agent %q declared as trader but template produced %T", ag.Name, agent)
		}
		d.Traders = append(d.Traders, trader)
	default:
		return fmt.Errorf("driver: agent %q has unrecognized kind %v", ag.Name, ag.Kind)
	}
	return nil
}

// TickFunc is called once after every completed tick, with the tick number
// just finished; the CLI hangs internal/persist's run logger and its
// per-tick sleep off this hook rather than Run itself knowing about
// logging or pacing.
type TickFunc func(tick int, mkt *market.Market)

// Run advances the market ticks times, invoking every coin's
// update_parameters and every trader's trade once per tick (skipping a
// trader who has already left, per market.Leaved), then calling onTick if
// non-nil. It stops early if market.time reaches market.end_time before
// ticks is exhausted, honoring spec.md §6's "loops until market.time >=
// market.end_time" termination condition alongside the driver's own
// explicit tick budget.
func (d *Driver) Run(ticks int, onTick TickFunc) error {
	for t := 0; t < ticks; t++ {
		if d.Market.EndTime > 0 && d.Market.Time >= d.Market.EndTime {
			break
		}

		for _, coin := range d.Coins {
			if _, err := coin.CallMethod("update_parameters", nil); err != nil {
				return fmt.Errorf("driver: tick %d: coin %q update_parameters: %w", t, coin.Name, err)
			}
		}
		for _, trader := range d.Traders {
			if d.Market.Leaved[trader] {
				continue
			}
			if _, err := trader.CallMethod("trade", nil); err != nil {
				return fmt.Errorf("driver: tick %d: trader %q trade: %w", t, trader.Name, err)
			}
		}

		d.Market.Time++
		if d.Market.Verbose {
			log.Printf("tick %d complete, %d trader(s) left", t, len(d.Market.Leaved))
		}
		if onTick != nil {
			onTick(t, d.Market)
		}
	}
	return nil
}
