package builtins

import (
	"math/rand"
	"testing"

	"github.com/lassiter/cryptolang/internal/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*market.GenericCoin, *market.GenericTrader, *market.Market) {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	coin, err := market.NewGenericCoin(rng, "btc", map[string]any{"initial_value": float64(10)})
	require.NoError(t, err)
	trader, err := market.NewGenericTrader("alice", map[string]any{"initial_money": float64(100)})
	require.NoError(t, err)
	mkt := market.New(1000)
	return coin, trader, mkt
}

func kw(trader *market.GenericTrader, mkt *market.Market) map[string]any {
	return map[string]any{"my": trader, "market": mkt}
}

func TestBuy_ExplicitAmount(t *testing.T) {
	coin, trader, mkt := setup(t)
	rng := rand.New(rand.NewSource(1))

	_, err := Buy{RNG: rng}.Call([]any{coin, float64(20)}, kw(trader, mkt))
	require.NoError(t, err)

	assert.Equal(t, 80.0, trader.Money)
	holding, ok := trader.Wallet[coin]
	require.True(t, ok)
	assert.Equal(t, 2.0, holding.Amount)
}

func TestBuy_AllSpendsFullBalance(t *testing.T) {
	coin, trader, mkt := setup(t)
	rng := rand.New(rand.NewSource(1))

	_, err := Buy{RNG: rng}.Call([]any{coin, "all"}, kw(trader, mkt))
	require.NoError(t, err)
	assert.Equal(t, 0.0, trader.Money)
}

func TestBuy_RepeatBuyAveragesPurchasePrice(t *testing.T) {
	coin, trader, mkt := setup(t)
	rng := rand.New(rand.NewSource(1))
	b := Buy{RNG: rng}

	_, err := b.Call([]any{coin, float64(10)}, kw(trader, mkt))
	require.NoError(t, err)

	coin.Value = 20
	_, err = b.Call([]any{coin, float64(10)}, kw(trader, mkt))
	require.NoError(t, err)

	holding := trader.Wallet[coin]
	assert.Equal(t, 15.0, holding.PurchasedPrice)
}

func TestSell_PartialSaleKeepsRemainder(t *testing.T) {
	coin, trader, mkt := setup(t)
	trader.Wallet[coin] = market.Holding{Amount: 5, PurchasedPrice: 10}

	_, err := Sell{}.Call([]any{coin, float64(2)}, kw(trader, mkt))
	require.NoError(t, err)

	assert.Equal(t, 120.0, trader.Money)
	holding, ok := trader.Wallet[coin]
	require.True(t, ok)
	assert.Equal(t, 3.0, holding.Amount)
}

func TestSell_FullSaleRemovesHolding(t *testing.T) {
	coin, trader, mkt := setup(t)
	trader.Wallet[coin] = market.Holding{Amount: 5, PurchasedPrice: 10}

	_, err := Sell{}.Call([]any{coin, "all"}, kw(trader, mkt))
	require.NoError(t, err)

	assert.Equal(t, 150.0, trader.Money)
	_, ok := trader.Wallet[coin]
	assert.False(t, ok)
}

func TestSell_NotHeldIsError(t *testing.T) {
	coin, trader, mkt := setup(t)
	_, err := Sell{}.Call([]any{coin, float64(1)}, kw(trader, mkt))
	assert.Error(t, err)
}

func TestLeave_SellsEverythingAndMarksLeaved(t *testing.T) {
	coin, trader, mkt := setup(t)
	trader.Wallet[coin] = market.Holding{Amount: 5, PurchasedPrice: 10}

	_, err := Leave{}.Call(nil, kw(trader, mkt))
	require.NoError(t, err)

	assert.Empty(t, trader.Wallet)
	assert.True(t, mkt.Leaved[trader])
	assert.Equal(t, 150.0, trader.Money)
}

func TestSay_LogsWithoutError(t *testing.T) {
	_, err := Say{}.Call([]any{"hello"}, nil)
	assert.NoError(t, err)
}

func TestRegistry_HasAllFour(t *testing.T) {
	reg := Registry(rand.New(rand.NewSource(1)))
	for _, name := range []string{"say", "buy", "sell", "leave"} {
		assert.Contains(t, reg, name)
	}
}
