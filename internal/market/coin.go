package market

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/lassiter/cryptolang/internal/hostiface"
)

// GenericCoin is a concrete hostiface.HostObject grounded on
// original_source/CryptoSimulator/agents/coin.py's CoinGenericTemplate:
// a named asset with a miner count, a price ("value" in the source), and a
// block size, tracked per instance by a uuid.UUID distinct from its
// script-level declared name (SPEC_FULL.md's identity requirement, so two
// simulations can each declare a coin named "btc" without colliding in
// internal/persist's run log or internal/api's monitoring surface).
type GenericCoin struct {
	ID   uuid.UUID
	Name string

	Miners    int
	Value     float64
	BlockSize int
	Volatility float64

	rng       *rand.Rand
	behaviors map[string]func() (any, error)
}

// NewGenericCoin constructs a coin from its reduced option map, grounded on
// CoinGenericTemplate.__init__'s initial_miners/initial_value keyword
// options.
func NewGenericCoin(rng *rand.Rand, name string, options map[string]any) (*GenericCoin, error) {
	c := &GenericCoin{
		ID:        uuid.New(),
		Name:      name,
		Miners:    1,
		BlockSize: 1,
		rng:       rng,
		behaviors: map[string]func() (any, error){},
	}

	if v, ok := options["initial_miners"]; ok {
		n, err := asInt(v)
		if err != nil {
			return nil, fmt.Errorf("market: coin %q: initial_miners: %w", name, err)
		}
		c.Miners = n
	}
	if v, ok := options["initial_value"]; ok {
		f, err := asFloat(v)
		if err != nil {
			return nil, fmt.Errorf("market: coin %q: initial_value: %w", name, err)
		}
		c.Value = f
	}
	if v, ok := options["volatility"]; ok {
		f, err := asFloat(v)
		if err != nil {
			return nil, fmt.Errorf("market: coin %q: volatility: %w", name, err)
		}
		c.Volatility = f
	}

	return c, nil
}

func (c *GenericCoin) Get(name string) (any, error) {
	switch name {
	case "name":
		return c.Name, nil
	case "miners":
		return float64(c.Miners), nil
	case "value":
		return c.Value, nil
	case "block_size":
		return float64(c.BlockSize), nil
	case "volatility":
		return c.Volatility, nil
	default:
		return nil, fmt.Errorf("market: coin has no attribute %q", name)
	}
}

func (c *GenericCoin) Set(name string, value any) error {
	switch name {
	case "miners":
		n, err := asInt(value)
		if err != nil {
			return fmt.Errorf("market: coin.miners: %w", err)
		}
		c.Miners = n
		return nil
	case "value":
		f, err := asFloat(value)
		if err != nil {
			return fmt.Errorf("market: coin.value: %w", err)
		}
		c.Value = f
		return nil
	case "block_size":
		n, err := asInt(value)
		if err != nil {
			return fmt.Errorf("market: coin.block_size: %w", err)
		}
		c.BlockSize = n
		return nil
	case "volatility":
		f, err := asFloat(value)
		if err != nil {
			return fmt.Errorf("market: coin.volatility: %w", err)
		}
		c.Volatility = f
		return nil
	default:
		return fmt.Errorf("market: coin has no writable attribute %q", name)
	}
}

// CallMethod dispatches to a script-installed behavior closure if one was
// installed under name, otherwise to this coin's built-in default for that
// name. "validate" and "update_parameters" are the two behavior names
// CoinGenericTemplate declares (both no-ops in the source, left for
// subclasses or scripts to fill in); this gives update_parameters a
// concrete default (a volatility-scaled random walk of Value) rather than
// leaving it a no-op, so a coin with no script-supplied behavior still does
// something observable over a run.
func (c *GenericCoin) CallMethod(name string, args []any) (any, error) {
	if fn, ok := c.behaviors[name]; ok {
		return fn()
	}
	switch name {
	case "validate":
		return nil, nil
	case "update_parameters":
		c.Value += Normal(c.rng, 0, c.Volatility)
		if c.Value < 0 {
			c.Value = 0
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("market: coin has no method %q", name)
	}
}

func (c *GenericCoin) InstallBehavior(name string, fn func() (any, error)) error {
	c.behaviors[name] = fn
	return nil
}

// CoinTemplate is the hostiface.AgentTemplate for GenericCoin, registered
// under subtype name "generic_coin".
type CoinTemplate struct {
	RNG *rand.Rand
}

func (CoinTemplate) Options() []string {
	return []string{"initial_miners", "initial_value", "volatility"}
}

func (CoinTemplate) Behaviors() []string {
	return []string{"validate", "update_parameters"}
}

func (t CoinTemplate) New(name string, options map[string]any) (hostiface.HostObject, error) {
	return NewGenericCoin(t.RNG, name, options)
}
