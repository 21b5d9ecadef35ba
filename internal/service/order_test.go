package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flicky/swiftora-api/internal/dto"
	"github.com/flicky/swiftora-api/internal/model"
)

type orderFixture struct {
	env      *testEnv
	supplier *model.SupplierProfile
	market   *model.SupermarketProfile
	product  *model.Product
	buyer    model.Party
	seller   model.Party
}

// newOrderFixture ties one supermarket to one supplier and lists a product.
func newOrderFixture(t *testing.T, accept bool) orderFixture {
	t.Helper()
	env := newTestEnv()
	ctx := context.Background()
	supplier := env.store.addSupplier("farmco")
	market := env.store.addSupermarket("freshmart")
	product := env.store.addProduct(supplier.AccountID, "8901", "Milk")

	_, _, err := env.tieUps.Request(ctx, market.AccountID, supplier.ID)
	require.NoError(t, err)
	if accept {
		_, err = env.tieUps.Accept(ctx, supplier.AccountID, market.ID, supplier.ID)
		require.NoError(t, err)
	}

	return orderFixture{
		env: env, supplier: supplier, market: market, product: product,
		buyer:  model.Party{AccountID: market.AccountID, ProfileID: market.ID, Role: model.RoleSupermarket},
		seller: model.Party{AccountID: supplier.AccountID, ProfileID: supplier.ID, Role: model.RoleSupplier},
	}
}

func (f orderFixture) request() dto.PlaceOrderRequest {
	return dto.PlaceOrderRequest{
		ProductID: f.product.ID, SupermarketID: f.market.AccountID,
		SupplierID: f.supplier.AccountID, Quantity: 4,
	}
}

func TestOrderService_Place(t *testing.T) {
	f := newOrderFixture(t, true)

	order, err := f.env.orders.Place(context.Background(), f.buyer, f.request())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, order.ID)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, "SKU-8901", order.SKU)
	assert.Nil(t, order.DeliveryDate)
	y, m, d := time.Now().Date()
	oy, om, od := order.OrderDate.Date()
	assert.Equal(t, []int{y, int(m), d}, []int{oy, int(om), od})
}

func TestOrderService_Place_KeepsRequestedDeliveryDate(t *testing.T) {
	f := newOrderFixture(t, true)
	req := f.request()
	when := time.Now().Add(72 * time.Hour)
	req.DeliveryDate = &when

	order, err := f.env.orders.Place(context.Background(), f.buyer, req)
	require.NoError(t, err)
	require.NotNil(t, order.DeliveryDate)
	assert.True(t, when.Equal(*order.DeliveryDate))
}

func TestOrderService_Place_MissingSupermarket(t *testing.T) {
	f := newOrderFixture(t, true)
	req := f.request()
	req.SupermarketID = uuid.Nil

	_, err := f.env.orders.Place(context.Background(), f.buyer, req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOrderService_Place_OnBehalfOfAnotherSupermarket(t *testing.T) {
	f := newOrderFixture(t, true)
	other := f.env.store.addSupermarket("quickmart")
	caller := model.Party{AccountID: other.AccountID, ProfileID: other.ID, Role: model.RoleSupermarket}

	_, err := f.env.orders.Place(context.Background(), caller, f.request())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestOrderService_Place_RequiresAcceptedTieUp(t *testing.T) {
	f := newOrderFixture(t, false)

	_, err := f.env.orders.Place(context.Background(), f.buyer, f.request())
	assert.ErrorIs(t, err, ErrTieUpNotAccepted)
	assert.Empty(t, f.env.store.orders)
}

func TestOrderService_Place_UnknownProduct(t *testing.T) {
	f := newOrderFixture(t, true)
	req := f.request()
	req.ProductID = "missing"

	_, err := f.env.orders.Place(context.Background(), f.buyer, req)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Empty(t, f.env.store.orders)
}

func TestOrderService_UpdateStatus_DeliveredStampsDate(t *testing.T) {
	f := newOrderFixture(t, true)
	ctx := context.Background()
	order, err := f.env.orders.Place(ctx, f.buyer, f.request())
	require.NoError(t, err)

	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f.env.orders.now = func() time.Time { return fixed }

	updated, err := f.env.orders.UpdateStatus(ctx, f.seller, order.ID, model.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusDelivered, updated.Status)
	require.NotNil(t, updated.DeliveryDate)
	assert.True(t, fixed.Equal(*updated.DeliveryDate))
}

func TestOrderService_UpdateStatus_OtherValuesLeaveDeliveryDate(t *testing.T) {
	f := newOrderFixture(t, true)
	ctx := context.Background()
	order, err := f.env.orders.Place(ctx, f.buyer, f.request())
	require.NoError(t, err)

	updated, err := f.env.orders.UpdateStatus(ctx, f.seller, order.ID, "pending")
	require.NoError(t, err)
	assert.Nil(t, updated.DeliveryDate)

	delivered, err := f.env.orders.UpdateStatus(ctx, f.seller, order.ID, model.OrderStatusDelivered)
	require.NoError(t, err)
	stamped := *delivered.DeliveryDate

	updated, err = f.env.orders.UpdateStatus(ctx, f.buyer, order.ID, "in-transit")
	require.NoError(t, err)
	assert.Equal(t, "in-transit", updated.Status)
	require.NotNil(t, updated.DeliveryDate)
	assert.True(t, stamped.Equal(*updated.DeliveryDate))
}

func TestOrderService_UpdateStatus_Validation(t *testing.T) {
	f := newOrderFixture(t, true)
	_, err := f.env.orders.UpdateStatus(context.Background(), f.seller, uuid.New(), "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOrderService_UpdateStatus_NotFound(t *testing.T) {
	f := newOrderFixture(t, true)
	_, err := f.env.orders.UpdateStatus(context.Background(), f.seller, uuid.New(), "delivered")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_UpdateStatus_StrangerForbidden(t *testing.T) {
	f := newOrderFixture(t, true)
	ctx := context.Background()
	order, err := f.env.orders.Place(ctx, f.buyer, f.request())
	require.NoError(t, err)

	stranger := f.env.store.addSupplier("sneaky")
	caller := model.Party{AccountID: stranger.AccountID, ProfileID: stranger.ID, Role: model.RoleSupplier}
	_, err = f.env.orders.UpdateStatus(ctx, caller, order.ID, model.OrderStatusDelivered)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, model.OrderStatusPending, f.env.store.orders[order.ID].Status)
}

func TestOrderService_List_ByRole(t *testing.T) {
	f := newOrderFixture(t, true)
	ctx := context.Background()

	other := f.env.store.addSupplier("dairyco")
	f.env.store.addProduct(other.AccountID, "7001", "Cheese")
	_, _, err := f.env.tieUps.Request(ctx, f.market.AccountID, other.ID)
	require.NoError(t, err)
	_, err = f.env.tieUps.Accept(ctx, other.AccountID, f.market.ID, other.ID)
	require.NoError(t, err)

	_, err = f.env.orders.Place(ctx, f.buyer, f.request())
	require.NoError(t, err)
	_, err = f.env.orders.Place(ctx, f.buyer, dto.PlaceOrderRequest{
		ProductID: "7001", SupermarketID: f.market.AccountID, SupplierID: other.AccountID, Quantity: 1,
	})
	require.NoError(t, err)

	supplierOrders, err := f.env.orders.List(ctx, f.supplier.AccountID, model.RoleSupplier)
	require.NoError(t, err)
	require.Len(t, supplierOrders, 1)
	assert.Equal(t, f.supplier.AccountID, supplierOrders[0].SupplierAccountID)

	marketOrders, err := f.env.orders.List(ctx, f.market.AccountID, model.RoleSupermarket)
	require.NoError(t, err)
	assert.Len(t, marketOrders, 2)

	none, err := f.env.orders.List(ctx, f.market.AccountID, model.Role("admin"))
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, none)
}

func TestOrderService_List_EmptyIsNotNil(t *testing.T) {
	env := newTestEnv()
	orders, err := env.orders.List(context.Background(), uuid.New(), model.RoleSupplier)
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}
