package market

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lassiter/cryptolang/internal/hostiface"
)

// Holding is one coin position in a trader's wallet: how much of the coin
// is held, the price it was purchased at (averaged on repeat buys, per
// sim_ops.py's buy), and the tick it was last touched.
type Holding struct {
	Amount         float64
	PurchasedPrice float64
	Time           float64
}

// GenericTrader is a concrete hostiface.HostObject grounded on
// original_source/CryptoSimulator/agents/trader.py's TraderGenericTemplate:
// a named participant with a cash balance and a wallet of coin holdings.
// internal/builtins' buy/sell/leave native callables mutate Wallet/Money
// directly (they import this package rather than going through the
// HostObject interface, since they are domain-specific operations, not
// part of the interpreter core spec.md §9 asks to stay host-object-opaque).
type GenericTrader struct {
	ID   uuid.UUID
	Name string

	Money        float64
	InitialMoney float64
	Wallet       map[*GenericCoin]Holding

	behaviors map[string]func() (any, error)
}

// NewGenericTrader constructs a trader from its reduced option map,
// grounded on TraderGenericTemplate.__init__'s initial_money keyword
// option.
func NewGenericTrader(name string, options map[string]any) (*GenericTrader, error) {
	t := &GenericTrader{
		ID:        uuid.New(),
		Name:      name,
		Wallet:    map[*GenericCoin]Holding{},
		behaviors: map[string]func() (any, error){},
	}

	if v, ok := options["initial_money"]; ok {
		f, err := asFloat(v)
		if err != nil {
			return nil, fmt.Errorf("market: trader %q: initial_money: %w", name, err)
		}
		t.Money = f
		t.InitialMoney = f
	}

	return t, nil
}

func (t *GenericTrader) Get(name string) (any, error) {
	switch name {
	case "name":
		return t.Name, nil
	case "money":
		return t.Money, nil
	case "initial_money":
		return t.InitialMoney, nil
	default:
		return nil, fmt.Errorf("market: trader has no attribute %q", name)
	}
}

func (t *GenericTrader) Set(name string, value any) error {
	switch name {
	case "money":
		f, err := asFloat(value)
		if err != nil {
			return fmt.Errorf("market: trader.money: %w", err)
		}
		t.Money = f
		return nil
	default:
		return fmt.Errorf("market: trader has no writable attribute %q", name)
	}
}

// CallMethod dispatches to a script-installed behavior closure if one was
// installed under name, otherwise to this trader's built-in default.
// "trade" and "initialize" are the two behavior names
// TraderGenericTemplate declares (both no-ops in the source); a trader with
// no script-supplied "trade" behavior just does nothing on its turn, which
// is a legitimate (if uninteresting) strategy.
func (t *GenericTrader) CallMethod(name string, args []any) (any, error) {
	if fn, ok := t.behaviors[name]; ok {
		return fn()
	}
	switch name {
	case "trade", "initialize":
		return nil, nil
	default:
		return nil, fmt.Errorf("market: trader has no method %q", name)
	}
}

func (t *GenericTrader) InstallBehavior(name string, fn func() (any, error)) error {
	t.behaviors[name] = fn
	return nil
}

// TraderTemplate is the hostiface.AgentTemplate for GenericTrader,
// registered under subtype name "generic_trader".
type TraderTemplate struct{}

func (TraderTemplate) Options() []string { return []string{"initial_money"} }

func (TraderTemplate) Behaviors() []string { return []string{"trade", "initialize"} }

func (TraderTemplate) New(name string, options map[string]any) (hostiface.HostObject, error) {
	return NewGenericTrader(name, options)
}
