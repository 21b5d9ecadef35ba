package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/flicky/swiftora-api/internal/metrics"
)

type testEnv struct {
	store     *memStore
	registry  *prometheus.Registry
	metrics   *metrics.Metrics
	ids       *Identities
	auth      *AuthService
	profiles  *ProfileService
	products  *ProductService
	tieUps    *TieUpService
	catalog   *CatalogService
	orders    *OrderService
	inventory *InventoryService
	dashboard *DashboardService
}

func newTestEnv() *testEnv {
	s := newMemStore()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	log := zap.NewNop()

	accounts := fakeAccountRepo{s}
	suppliers := fakeSupplierRepo{s}
	supermarkets := fakeSupermarketRepo{s}
	products := fakeProductRepo{s}
	inventory := fakeInventoryRepo{s}
	tieUps := fakeTieUpRepo{s}
	orders := fakeOrderRepo{s}

	ids := NewIdentities(suppliers, supermarkets)
	return &testEnv{
		store:     s,
		registry:  reg,
		metrics:   m,
		ids:       ids,
		auth:      NewAuthService(accounts, suppliers, supermarkets, "test-secret", time.Hour, log),
		profiles:  NewProfileService(suppliers, supermarkets),
		products:  NewProductService(products),
		tieUps:    NewTieUpService(tieUps, ids, log, m),
		catalog:   NewCatalogService(tieUps, products, suppliers, orders),
		orders:    NewOrderService(orders, log, m),
		inventory: NewInventoryService(inventory, m),
		dashboard: NewDashboardService(ids, tieUps, orders, products, inventory),
	}
}

// counterValue sums every series of the named counter family.
func (e *testEnv) counterValue(name string) float64 {
	families, err := e.registry.Gather()
	if err != nil {
		return -1
	}
	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}
