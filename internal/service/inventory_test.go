package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flicky/swiftora-api/internal/model"
)

func TestInventoryService_Upsert_Classifies(t *testing.T) {
	tests := []struct {
		qty  int
		want model.StockLevel
	}{
		{0, model.StockLow},
		{50, model.StockLow},
		{51, model.StockMedium},
		{100, model.StockMedium},
		{101, model.StockHigh},
	}
	env := newTestEnv()
	acct := uuid.New()
	for _, tt := range tests {
		rec, err := env.inventory.Upsert(context.Background(), acct, "p1", tt.qty)
		require.NoError(t, err)
		assert.Equal(t, tt.want, rec.StockLevel, "quantity %d", tt.qty)
	}
}

func TestInventoryService_Upsert_OneRowPerProduct(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	acct := uuid.New()
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	env.inventory.now = func() time.Time { return fixed }

	first, err := env.inventory.Upsert(ctx, acct, "p1", 10)
	require.NoError(t, err)
	second, err := env.inventory.Upsert(ctx, acct, "p1", 200)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, model.StockHigh, second.StockLevel)
	assert.True(t, fixed.Equal(second.LastUpdated))

	list, err := env.inventory.List(ctx, acct)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 200, list[0].QuantityOnHand)
	assert.Equal(t, 2.0, env.counterValue("inventory_upserts_total"))
}

func TestInventoryService_Upsert_Validation(t *testing.T) {
	env := newTestEnv()
	_, err := env.inventory.Upsert(context.Background(), uuid.New(), "p1", -1)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.inventory.Upsert(context.Background(), uuid.New(), "", 5)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, env.store.inventory)
}

func TestInventoryService_Modify(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	acct := uuid.New()

	_, err := env.inventory.Modify(ctx, acct, "p1", 5)
	assert.ErrorIs(t, err, ErrInventoryNotFound)

	_, err = env.inventory.Upsert(ctx, acct, "p1", 5)
	require.NoError(t, err)
	rec, err := env.inventory.Modify(ctx, acct, "p1", 75)
	require.NoError(t, err)
	assert.Equal(t, model.StockMedium, rec.StockLevel)
}

func TestInventoryService_Remove(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	acct := uuid.New()

	assert.ErrorIs(t, env.inventory.Remove(ctx, acct, "p1"), ErrInventoryNotFound)

	_, err := env.inventory.Upsert(ctx, acct, "p1", 5)
	require.NoError(t, err)
	require.NoError(t, env.inventory.Remove(ctx, acct, "p1"))

	list, err := env.inventory.List(ctx, acct)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestInventoryService_StockSummary(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	acct := uuid.New()
	for id, qty := range map[string]int{"a": 1, "b": 2, "c": 60, "d": 500} {
		_, err := env.inventory.Upsert(ctx, acct, id, qty)
		require.NoError(t, err)
	}
	_, err := env.inventory.Upsert(ctx, uuid.New(), "other", 500)
	require.NoError(t, err)

	summary, err := env.inventory.StockSummary(ctx, acct)
	require.NoError(t, err)
	assert.Equal(t, model.StockSummary{Low: 2, Medium: 1, High: 1}, summary)
}
