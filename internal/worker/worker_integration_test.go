//go:build integration

package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"tavola/internal/model"
	"tavola/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLowStock struct{ items []model.Ingredient }

func (s *stubLowStock) ListLowStock(context.Context) ([]model.Ingredient, error) { return s.items, nil }

func TestProcessJob_RetriesThenDeadLetters(t *testing.T) {
	ctx := context.Background()
	rdb := testutil.NewRedis(t)
	d := NewDispatcher(rdb)

	calls := 0
	d.Handle(JobEmail, func(context.Context, json.RawMessage) error {
		calls++
		return errors.New("smtp down")
	})

	require.NoError(t, d.EnqueueEmail(ctx, EmailJobPayload{ToEmail: "a@b.io", Subject: "s", Body: "b"}))

	for i := 0; i < maxEmailAttempts; i++ {
		raw, err := rdb.RPop(ctx, QueueEmail).Result()
		require.NoError(t, err, "attempt %d", i+1)
		d.processJob(ctx, QueueEmail, raw)
	}

	assert.Equal(t, maxEmailAttempts, calls)
	n, err := rdb.LLen(ctx, QueueEmail).Result()
	require.NoError(t, err)
	assert.Zero(t, n)

	dead, err := DLQLength(ctx, rdb, QueueEmail)
	require.NoError(t, err)
	assert.Equal(t, int64(1), dead)

	raw, err := rdb.LIndex(ctx, DLQPrefix+QueueEmail, 0).Result()
	require.NoError(t, err)
	var entry DLQEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &entry))
	assert.Equal(t, "smtp down", entry.Reason)
	assert.Equal(t, maxEmailAttempts, entry.Attempts)
}

func TestProcessJob_UnknownTypeIsDeadLettered(t *testing.T) {
	ctx := context.Background()
	rdb := testutil.NewRedis(t)
	d := NewDispatcher(rdb)

	require.NoError(t, d.EnqueueReceipt(ctx, 1, 1, ""))
	raw, err := rdb.RPop(ctx, QueueReceipt).Result()
	require.NoError(t, err)
	d.processJob(ctx, QueueReceipt, raw)

	dead, err := DLQLength(ctx, rdb, QueueReceipt)
	require.NoError(t, err)
	assert.Equal(t, int64(1), dead)
}

func TestCheckLowStock_AlertsOncePerIngredient(t *testing.T) {
	ctx := context.Background()
	rdb := testutil.NewRedis(t)
	d := NewDispatcher(rdb)

	source := &stubLowStock{items: []model.Ingredient{
		{ID: 1, Name: "Flour", Unit: "kg", CurrentStock: decimal.NewFromInt(2), ReorderLevel: decimal.NewFromInt(5)},
	}}
	cfg := StockAlertConfig{Ingredients: source, RDB: rdb, Dispatcher: d, AlertEmail: "chef@tavola.test"}

	n, err := CheckLowStock(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Same ingredient within the TTL is not reported again
	n, err = CheckLowStock(ctx, cfg)
	require.NoError(t, err)
	assert.Zero(t, n)

	source.items = append(source.items, model.Ingredient{
		ID: 2, Name: "Milk", Unit: "l", CurrentStock: decimal.Zero, ReorderLevel: decimal.NewFromInt(3),
	})
	n, err = CheckLowStock(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	queued, err := rdb.LLen(ctx, QueueEmail).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(2), queued)
}
