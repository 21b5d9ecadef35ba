package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flicky/swiftora-api/internal/model"
)

func TestDashboardService_Supermarket(t *testing.T) {
	f := newOrderFixture(t, true)
	ctx := context.Background()
	pending := f.env.store.addSupplier("dairyco")
	_, _, err := f.env.tieUps.Request(ctx, f.market.AccountID, pending.ID)
	require.NoError(t, err)

	for i := 0; i < 7; i++ {
		_, err := f.env.orders.Place(ctx, f.buyer, f.request())
		require.NoError(t, err)
	}

	d, err := f.env.dashboard.Supermarket(ctx, f.market.AccountID)
	require.NoError(t, err)
	assert.Equal(t, f.market.ID, d.SupermarketID)
	assert.Equal(t, 1, d.AcceptedTieUps)
	assert.Equal(t, 1, d.PendingTieUps)
	assert.Equal(t, 7, TotalOrders(d.OrdersByStatus))
	assert.Equal(t, 7, d.OrdersByStatus[model.OrderStatusPending])
	assert.Len(t, d.RecentOrders, 5)
}

func TestDashboardService_Supplier(t *testing.T) {
	f := newOrderFixture(t, true)
	ctx := context.Background()
	order, err := f.env.orders.Place(ctx, f.buyer, f.request())
	require.NoError(t, err)
	_, err = f.env.orders.UpdateStatus(ctx, f.seller, order.ID, model.OrderStatusDelivered)
	require.NoError(t, err)
	_, err = f.env.inventory.Upsert(ctx, f.supplier.AccountID, f.product.ID, 120)
	require.NoError(t, err)

	d, err := f.env.dashboard.Supplier(ctx, f.supplier.AccountID)
	require.NoError(t, err)
	assert.Equal(t, f.supplier.ID, d.SupplierID)
	assert.Equal(t, 1, d.ProductCount)
	assert.Equal(t, 1, d.TiedSupermarkets)
	assert.Equal(t, 0, d.PendingRequests)
	assert.Equal(t, map[string]int{model.OrderStatusDelivered: 1}, d.OrdersByStatus)
	assert.Equal(t, model.StockSummary{High: 1}, d.Stock)
	require.Len(t, d.RecentOrders, 1)
}

func TestDashboardService_NoProfile(t *testing.T) {
	env := newTestEnv()
	_, err := env.dashboard.Supermarket(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSupermarketNotFound)
	_, err = env.dashboard.Supplier(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSupplierNotFound)
}

func TestTotalOrders(t *testing.T) {
	assert.Equal(t, 0, TotalOrders(nil))
	assert.Equal(t, 5, TotalOrders(map[string]int{"pending": 2, "delivered": 3}))
}
