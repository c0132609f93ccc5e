package market

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenericCoin_AppliesOptions(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	c, err := NewGenericCoin(rng, "btc", map[string]any{
		"initial_miners": int64(5),
		"initial_value":  float64(100),
		"volatility":     float64(2),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, c.Miners)
	assert.Equal(t, 100.0, c.Value)
	assert.Equal(t, 2.0, c.Volatility)
}

func TestGenericCoin_GetSetRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	c, err := NewGenericCoin(rng, "btc", nil)
	require.NoError(t, err)

	require.NoError(t, c.Set("value", float64(250)))
	v, err := c.Get("value")
	require.NoError(t, err)
	assert.Equal(t, 250.0, v)

	_, err = c.Get("nonexistent")
	assert.Error(t, err)
}

func TestGenericCoin_CallMethod_DefaultUpdateParametersMovesValue(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	c, err := NewGenericCoin(rng, "btc", map[string]any{"initial_value": float64(100), "volatility": float64(5)})
	require.NoError(t, err)

	_, err = c.CallMethod("update_parameters", nil)
	require.NoError(t, err)
	assert.NotEqual(t, 100.0, c.Value)
	assert.GreaterOrEqual(t, c.Value, 0.0)
}

func TestGenericCoin_CallMethod_InstalledBehaviorOverridesDefault(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	c, err := NewGenericCoin(rng, "btc", nil)
	require.NoError(t, err)

	called := false
	require.NoError(t, c.InstallBehavior("update_parameters", func() (any, error) {
		called = true
		return nil, nil
	}))

	_, err = c.CallMethod("update_parameters", nil)
	require.NoError(t, err)
	assert.True(t, called)
}

func TestNewGenericTrader_AppliesInitialMoney(t *testing.T) {
	tr, err := NewGenericTrader("alice", map[string]any{"initial_money": float64(1000)})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, tr.Money)
	assert.Equal(t, 1000.0, tr.InitialMoney)
}

func TestGenericTrader_CallMethod_UnknownBehaviorIsError(t *testing.T) {
	tr, err := NewGenericTrader("alice", nil)
	require.NoError(t, err)
	_, err = tr.CallMethod("not_a_real_behavior", nil)
	assert.Error(t, err)
}

func TestMarket_ResetClearsClockAndLeaved(t *testing.T) {
	m := New(100)
	m.Time = 50

	tr, err := NewGenericTrader("alice", nil)
	require.NoError(t, err)
	m.Leaved[tr] = true

	_, err = m.CallMethod("reset", nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.Time)
	assert.Empty(t, m.Leaved)
}

func TestMarket_GetSetAttributes(t *testing.T) {
	m := New(100)
	require.NoError(t, m.Set("verbose", true))
	v, err := m.Get("verbose")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	require.NoError(t, m.Set("time", float64(10)))
	tv, err := m.Get("time")
	require.NoError(t, err)
	assert.Equal(t, 10.0, tv)
}

func TestTemplates_RegistersBothSubtypes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tmpls := Templates(rng)
	require.Contains(t, tmpls, "generic_coin")
	require.Contains(t, tmpls, "generic_trader")

	coin, err := tmpls["generic_coin"].New("btc", map[string]any{"initial_value": float64(1)})
	require.NoError(t, err)
	assert.NotNil(t, coin)
}
