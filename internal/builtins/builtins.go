// Package builtins implements the native callables of spec.md §4.6 that
// give scripts a way to act on the market: buy, sell, leave, say. Grounded
// on original_source/CryptoSimulator/library_built_in/sim_ops.py, which
// implements the same four operations as free functions taking keyword-only
// my/market parameters -- the same shape hostiface.Descriptor's
// WantsMy/WantsMarket exists to express in Go.
//
// buy/sell/leave reach into internal/market's concrete *GenericTrader and
// *GenericCoin types rather than going through hostiface.HostObject's
// Get/Set/CallMethod: the opaque-handle boundary in spec.md §9 protects the
// interpreter core from the host's internals, but these natives are
// themselves host code, free to cooperate with a sibling host package.
package builtins

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/lassiter/cryptolang/internal/hostiface"
	"github.com/lassiter/cryptolang/internal/market"
)

// Registry returns the built-in native callables keyed by script-visible
// name, ready to be installed in the interpreter's global environment
// (one interp.DefineNative call per entry) and to seed internal/checker's
// built-in name list.
func Registry(rng *rand.Rand) map[string]hostiface.NativeCallable {
	return map[string]hostiface.NativeCallable{
		"say":   Say{},
		"buy":   Buy{RNG: rng},
		"sell":  Sell{RNG: rng},
		"leave": Leave{},
	}
}

// Say logs a message, an alias for the source's say() -> logging.info.
type Say struct{}

func (Say) Descriptor() hostiface.Descriptor {
	return hostiface.Descriptor{Positional: []string{"str"}}
}

func (Say) Call(args []any, kwargs map[string]any) (any, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("builtins: say expects 1 argument, got %d", len(args))
	}
	log.Printf("%v", args[0])
	return nil, nil
}

// Buy purchases amount of coin for the calling trader, at the coin's
// current price. A nil or omitted amount buys a random amount of the
// trader's available cash; the string "all" spends all of it. Grounded on
// sim_ops.py's buy(), including its purchased-price averaging on a repeat
// buy and its 1e-4 numerical-error floor on the resulting cash balance.
type Buy struct {
	RNG *rand.Rand
}

func (Buy) Descriptor() hostiface.Descriptor {
	return hostiface.Descriptor{
		Positional:  []string{"coin", "amount"},
		KeywordOnly: map[string]bool{"my": true, "market": true},
	}
}

func (b Buy) Call(args []any, kwargs map[string]any) (any, error) {
	coin, trader, mkt, err := tradeArgs(args, kwargs)
	if err != nil {
		return nil, fmt.Errorf("builtins: buy: %w", err)
	}

	amount, err := resolveAmount(args, trader.Money, b.RNG)
	if err != nil {
		return nil, fmt.Errorf("builtins: buy: %w", err)
	}
	if amount == 0 {
		return nil, nil
	}

	purchased := amount / coin.Value
	if existing, ok := trader.Wallet[coin]; ok {
		trader.Wallet[coin] = market.Holding{
			Amount:         existing.Amount + purchased,
			PurchasedPrice: (existing.PurchasedPrice + coin.Value) / 2,
			Time:           mkt.Time,
		}
	} else {
		trader.Wallet[coin] = market.Holding{Amount: purchased, PurchasedPrice: coin.Value, Time: mkt.Time}
	}

	trader.Money -= amount
	if trader.Money < 0.0001 {
		trader.Money = 0
	}

	if mkt.Verbose {
		log.Printf("%v trader %s bought %v of %s -> money %v, wallet %v",
			mkt.Time, trader.Name, purchased, coin.Name, trader.Money, trader.Wallet)
	}
	return nil, nil
}

// Sell disposes of amount of coin from the calling trader's wallet,
// crediting cash at the coin's current price. A nil or omitted amount
// sells a random amount of the held position; "all" sells the whole
// position. Grounded on sim_ops.py's sell().
type Sell struct {
	RNG *rand.Rand
}

func (Sell) Descriptor() hostiface.Descriptor {
	return hostiface.Descriptor{
		Positional:  []string{"coin", "amount"},
		KeywordOnly: map[string]bool{"my": true, "market": true},
	}
}

func (s Sell) Call(args []any, kwargs map[string]any) (any, error) {
	coin, trader, mkt, err := tradeArgs(args, kwargs)
	if err != nil {
		return nil, fmt.Errorf("builtins: sell: %w", err)
	}
	holding, held := trader.Wallet[coin]
	if !held {
		return nil, fmt.Errorf("builtins: sell: trader %q does not hold %q", trader.Name, coin.Name)
	}

	amount, err := resolveSellAmount(args, holding.Amount, s.RNG)
	if err != nil {
		return nil, fmt.Errorf("builtins: sell: %w", err)
	}
	if amount == 0 {
		return nil, nil
	}

	remaining := holding.Amount - amount
	if remaining <= 0 {
		trader.Money += coin.Value * holding.Amount
		delete(trader.Wallet, coin)
	} else {
		trader.Money += coin.Value * amount
		trader.Wallet[coin] = market.Holding{Amount: remaining, PurchasedPrice: holding.PurchasedPrice, Time: holding.Time}
	}

	if mkt.Verbose {
		log.Printf("%v trader %s sold %v of %s -> money %v, wallet %v",
			mkt.Time, trader.Name, amount, coin.Name, trader.Money, trader.Wallet)
	}
	return nil, nil
}

// Leave sells every held coin and marks the calling trader as having left
// the simulation, per sim_ops.py's leave(). Unlike the source (which
// raises a control-flow exception to unwind the calling behavior), the
// behavior closure built in internal/interp.InstallAgent runs to its
// natural end; Leave only records the departure; the driver decides what,
// if anything, to skip for a left trader on later ticks.
type Leave struct{}

func (Leave) Descriptor() hostiface.Descriptor {
	return hostiface.Descriptor{KeywordOnly: map[string]bool{"my": true, "market": true}}
}

func (Leave) Call(args []any, kwargs map[string]any) (any, error) {
	trader, mkt, err := myMarket(kwargs)
	if err != nil {
		return nil, fmt.Errorf("builtins: leave: %w", err)
	}

	sell := Sell{}
	for coin := range trader.Wallet {
		if _, err := sell.Call([]any{coin, "all"}, kwargs); err != nil {
			return nil, fmt.Errorf("builtins: leave: selling %s: %w", coin.Name, err)
		}
	}

	mkt.Leaved[trader] = true
	if mkt.Verbose {
		log.Printf("trader %s left, arrived with %v", trader.Name, trader.InitialMoney)
	}
	return nil, nil
}

func myMarket(kwargs map[string]any) (*market.GenericTrader, *market.Market, error) {
	myVal, ok := kwargs["my"]
	if !ok {
		return nil, nil, fmt.Errorf("no calling trader bound (my)")
	}
	trader, ok := myVal.(*market.GenericTrader)
	if !ok {
		return nil, nil, fmt.Errorf("my is not a trader")
	}
	mktVal, ok := kwargs["market"]
	if !ok {
		return nil, nil, fmt.Errorf("no market bound")
	}
	mkt, ok := mktVal.(*market.Market)
	if !ok {
		return nil, nil, fmt.Errorf("market is not bound to the market object")
	}
	return trader, mkt, nil
}

func tradeArgs(args []any, kwargs map[string]any) (*market.GenericCoin, *market.GenericTrader, *market.Market, error) {
	if len(args) < 1 {
		return nil, nil, nil, fmt.Errorf("expects a coin argument")
	}
	coin, ok := args[0].(*market.GenericCoin)
	if !ok {
		return nil, nil, nil, fmt.Errorf("first argument must be a coin, got %T", args[0])
	}
	trader, mkt, err := myMarket(kwargs)
	if err != nil {
		return nil, nil, nil, err
	}
	return coin, trader, mkt, nil
}

// resolveAmount implements buy()'s amount defaulting: an explicit number
// is used as-is, "all" spends the full cash balance, and an absent/nil
// amount spends a random amount up to the larger of the balance or 1.
func resolveAmount(args []any, available float64, rng *rand.Rand) (float64, error) {
	if len(args) < 2 || args[1] == nil {
		upper := available
		if upper < 1 {
			upper = 1
		}
		return market.Uniform(rng, 1, upper), nil
	}
	if s, ok := args[1].(string); ok {
		if s != "all" {
			return 0, fmt.Errorf("amount string must be \"all\", got %q", s)
		}
		return available, nil
	}
	return numeric(args[1])
}

// resolveSellAmount mirrors resolveAmount for sell()'s lower random bound
// of 0.0001 rather than 1.
func resolveSellAmount(args []any, held float64, rng *rand.Rand) (float64, error) {
	if len(args) < 2 || args[1] == nil {
		upper := held
		if upper < 0.0001 {
			upper = 0.0001
		}
		return market.Uniform(rng, 0.0001, upper), nil
	}
	if s, ok := args[1].(string); ok {
		if s != "all" {
			return 0, fmt.Errorf("amount string must be \"all\", got %q", s)
		}
		return held, nil
	}
	return numeric(args[1])
}

func numeric(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("amount must be a number or \"all\", got %T", v)
	}
}
