package persist

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestLog(t *testing.T) *RunLog {
	t.Helper()
	dir := t.TempDir()
	log, err := Open(filepath.Join(dir, "run.db"))
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })
	return log
}

func TestLogTick_RoundTripsCoinAndTraderHistory(t *testing.T) {
	log := openTestLog(t)
	ctx := context.Background()

	coinID := uuid.New()
	traderID := uuid.New()

	require.NoError(t, log.LogTick(ctx, 0,
		[]CoinSnapshot{{ID: coinID, Name: "btc", Value: 100, Miners: 1}},
		[]TraderSnapshot{{ID: traderID, Name: "alice", Money: 1000, Leaved: false}},
	))
	require.NoError(t, log.LogTick(ctx, 1,
		[]CoinSnapshot{{ID: coinID, Name: "btc", Value: 105, Miners: 1}},
		[]TraderSnapshot{{ID: traderID, Name: "alice", Money: 950, Leaved: false}},
	))

	coinHist, err := log.CoinHistory(ctx, "btc")
	require.NoError(t, err)
	require.Len(t, coinHist, 2)
	assert.Equal(t, 100.0, coinHist[0].Value)
	assert.Equal(t, 105.0, coinHist[1].Value)
	assert.Equal(t, 1, coinHist[1].Tick)

	traderHist, err := log.TraderHistory(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, traderHist, 2)
	assert.Equal(t, 950.0, traderHist[1].Money)
	assert.False(t, traderHist[1].Leaved)
}

func TestCoinHistory_UnknownNameIsNotFound(t *testing.T) {
	log := openTestLog(t)
	_, err := log.CoinHistory(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCoinHistoryByID_FindsSnapshotsAcrossDuplicateNames(t *testing.T) {
	log := openTestLog(t)
	ctx := context.Background()

	id1, id2 := uuid.New(), uuid.New()
	require.NoError(t, log.LogTick(ctx, 0,
		[]CoinSnapshot{{ID: id1, Name: "btc", Value: 100}, {ID: id2, Name: "btc", Value: 50}},
		nil,
	))

	hist, err := log.CoinHistoryByID(ctx, id2)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, 50.0, hist[0].Value)
}

func TestTraderHistoryByID_UnknownIDIsNotFound(t *testing.T) {
	log := openTestLog(t)
	_, err := log.TraderHistoryByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTraderHistory_LeavedFlagRoundTrips(t *testing.T) {
	log := openTestLog(t)
	ctx := context.Background()

	require.NoError(t, log.LogTick(ctx, 0, nil,
		[]TraderSnapshot{{ID: uuid.New(), Name: "bob", Money: 0, Leaved: true}},
	))

	hist, err := log.TraderHistory(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.True(t, hist[0].Leaved)
}
