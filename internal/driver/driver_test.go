package driver

import (
	"math/rand"
	"testing"

	"github.com/lassiter/cryptolang/internal/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSim = `
coin btc: generic_coin [initial_value = 100, volatility = 1] {
}

trader alice: generic_trader [initial_money = 1000] {
	trade {
		buy(btc);
	}
}
`

func TestNew_InstallsCoinsAndTraders(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	d, err := New(sampleSim, rng, 10)
	require.NoError(t, err)

	require.Len(t, d.Coins, 1)
	require.Len(t, d.Traders, 1)
	assert.Equal(t, "btc", d.Coins[0].Name)
	assert.Equal(t, "alice", d.Traders[0].Name)
	assert.Equal(t, 10.0, d.Market.EndTime)
}

func TestRun_AdvancesClockAndCallsOnTick(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	d, err := New(sampleSim, rng, 5)
	require.NoError(t, err)

	var seen []int
	err = d.Run(3, func(tick int, mkt *market.Market) {
		seen = append(seen, tick)
	})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2}, seen)
	assert.Equal(t, 3.0, d.Market.Time)
}

func TestRun_StopsTradingWithLeftTrader(t *testing.T) {
	const leaveSim = `
coin btc: generic_coin [initial_value = 100, volatility = 0] {
}

trader alice: generic_trader [initial_money = 1000] {
	trade {
		leave();
	}
}
`
	rng := rand.New(rand.NewSource(1))
	d, err := New(leaveSim, rng, 5)
	require.NoError(t, err)

	require.NoError(t, d.Run(3, nil))

	assert.True(t, d.Market.Leaved[d.Traders[0]])
	assert.Equal(t, 3.0, d.Market.Time)
}

func TestRun_StopsAtEndTime(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	d, err := New(sampleSim, rng, 2)
	require.NoError(t, err)

	require.NoError(t, d.Run(10, nil))
	assert.Equal(t, 2.0, d.Market.Time)
}
