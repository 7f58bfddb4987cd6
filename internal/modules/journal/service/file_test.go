package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momentum_bot/internal/models"
)

func rec(id string, action models.TradeAction, price float64) models.TradeRecord {
	return models.TradeRecord{
		ID:      id,
		Time:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Symbol:  "BTCUSDT",
		Action:  action,
		Price:   price,
		Qty:     0.5,
		Reason:  "TAKE_PROFIT",
		Capital: 1010,
	}
}

func TestFileAppendAndAll(t *testing.T) {
	ctx := context.Background()
	f := NewFile(filepath.Join(t.TempDir(), "trades.json"))

	require.NoError(t, f.Append(ctx, rec("a", models.TradeEntry, 100)))
	require.NoError(t, f.Append(ctx, rec("b", models.TradeExit, 105)))

	recs, err := f.All(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "a", recs[0].ID)
	assert.Equal(t, models.TradeEntry, recs[0].Action)
	assert.Equal(t, 100.0, recs[0].Price)
	assert.Equal(t, "b", recs[1].ID)
	assert.Equal(t, 105.0, recs[1].Price)
	assert.Equal(t, 0.5, recs[1].Qty)
	assert.Equal(t, "TAKE_PROFIT", recs[1].Reason)
}

func TestFileRecentTail(t *testing.T) {
	ctx := context.Background()
	f := NewFile(filepath.Join(t.TempDir(), "trades.json"))

	for i, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, f.Append(ctx, rec(id, models.TradeEntry, float64(100+i))))
	}

	recs, err := f.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "c", recs[0].ID, "хвост в хронологическом порядке")
	assert.Equal(t, "d", recs[1].ID)

	recs, err = f.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recs, 4, "n больше размера — отдаём всё")
}

func TestFileEmptyWhenMissing(t *testing.T) {
	ctx := context.Background()
	f := NewFile(filepath.Join(t.TempDir(), "nope.json"))

	recs, err := f.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestFileSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "trades.json")

	require.NoError(t, NewFile(path).Append(ctx, rec("a", models.TradeExit, 99)))

	recs, err := NewFile(path).All(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "a", recs[0].ID)
	assert.WithinDuration(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), recs[0].Time, time.Second)
}

func TestFileCreatesParentDir(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "deep", "trades.json")

	require.NoError(t, NewFile(path).Append(ctx, rec("a", models.TradeEntry, 100)))

	recs, err := NewFile(path).All(ctx)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}
