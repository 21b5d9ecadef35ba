package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flicky/swiftora-api/internal/dto"
	"github.com/flicky/swiftora-api/internal/model"
)

func TestCatalogService_EligibleProducts_NoAcceptedTieUp(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	supplier := env.store.addSupplier("farmco")
	market := env.store.addSupermarket("freshmart")
	env.store.addProduct(supplier.AccountID, "8901", "Milk")

	_, err := env.catalog.EligibleProducts(ctx, market.AccountID)
	assert.ErrorIs(t, err, ErrNoEligibility)

	_, _, err = env.tieUps.Request(ctx, market.AccountID, supplier.ID)
	require.NoError(t, err)
	_, err = env.catalog.EligibleProducts(ctx, market.AccountID)
	assert.ErrorIs(t, err, ErrNoEligibility, "pending tie-ups grant nothing")
}

func TestCatalogService_EligibleProducts_AcceptedButEmptyCatalog(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	supplier := env.store.addSupplier("farmco")
	market := env.store.addSupermarket("freshmart")
	_, _, err := env.tieUps.Request(ctx, market.AccountID, supplier.ID)
	require.NoError(t, err)
	_, err = env.tieUps.Accept(ctx, supplier.AccountID, market.ID, supplier.ID)
	require.NoError(t, err)

	out, err := env.catalog.EligibleProducts(ctx, market.AccountID)
	require.NoError(t, err)
	assert.NotNil(t, out.Products)
	assert.Empty(t, out.Products)
	assert.Len(t, out.Suppliers, 1)
}

func TestCatalogService_EligibleProducts_OnlyAcceptedSuppliers(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	accepted := env.store.addSupplier("farmco")
	pending := env.store.addSupplier("dairyco")
	market := env.store.addSupermarket("freshmart")
	env.store.addProduct(accepted.AccountID, "8901", "Milk")
	env.store.addProduct(accepted.AccountID, "8902", "Eggs")
	env.store.addProduct(pending.AccountID, "7001", "Cheese")

	for _, sp := range []*model.SupplierProfile{accepted, pending} {
		_, _, err := env.tieUps.Request(ctx, market.AccountID, sp.ID)
		require.NoError(t, err)
	}
	_, err := env.tieUps.Accept(ctx, accepted.AccountID, market.ID, accepted.ID)
	require.NoError(t, err)

	out, err := env.catalog.EligibleProducts(ctx, market.AccountID)
	require.NoError(t, err)
	require.Len(t, out.Products, 2)
	for _, p := range out.Products {
		assert.Equal(t, accepted.AccountID, p.SupplierAccountID)
	}
	require.Len(t, out.Suppliers, 1)
	assert.Equal(t, "farmco", out.SupplierMap[accepted.AccountID].Name)
	assert.NotContains(t, out.SupplierMap, pending.AccountID)
}

func TestCatalogService_OrdersWithDetails(t *testing.T) {
	f := newOrderFixture(t, true)
	ctx := context.Background()

	_, err := f.env.catalog.OrdersWithDetails(ctx, f.market.AccountID)
	assert.ErrorIs(t, err, ErrNoOrders)

	_, err = f.env.orders.Place(ctx, f.buyer, f.request())
	require.NoError(t, err)

	details, err := f.env.catalog.OrdersWithDetails(ctx, f.market.AccountID)
	require.NoError(t, err)
	require.Len(t, details, 1)
	d := details[0]
	require.NotNil(t, d.ProductName)
	assert.Equal(t, "Milk", *d.ProductName)
	require.NotNil(t, d.SupplierName)
	assert.Equal(t, "farmco", *d.SupplierName)
	require.NotNil(t, d.SupplierEmail)
	assert.Equal(t, "farmco@example.com", *d.SupplierEmail)
}

func TestCatalogService_OrdersWithDetails_ProductGone(t *testing.T) {
	f := newOrderFixture(t, true)
	ctx := context.Background()
	_, err := f.env.orders.Place(ctx, f.buyer, f.request())
	require.NoError(t, err)
	require.NoError(t, f.env.products.DeleteBySKU(ctx, f.supplier.AccountID, f.product.SKU))

	details, err := f.env.catalog.OrdersWithDetails(ctx, f.market.AccountID)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Nil(t, details[0].ProductName)
	assert.NotNil(t, details[0].SupplierName)
}

func TestCatalogService_SupplierDirectory(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	a := env.store.addSupplier("alpha")
	env.store.addSupplier("beta")
	_, err := env.products.Add(ctx, a.AccountID, dto.CreateProductRequest{Barcode: "111", Name: "Bread"})
	require.NoError(t, err)

	dir, err := env.catalog.SupplierDirectory(ctx)
	require.NoError(t, err)
	require.Len(t, dir, 2)
	assert.Equal(t, "alpha", dir[0].Supplier.Name)
	require.Len(t, dir[0].Products, 1)
	assert.Equal(t, "111", dir[0].Products[0].ID)
	assert.Equal(t, "Bread", dir[0].Products[0].Name)
	assert.NotNil(t, dir[1].Products)
	assert.Empty(t, dir[1].Products)
}
