package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/flicky/swiftora-api/internal/model"
	"github.com/flicky/swiftora-api/internal/repository"
)

const recentOrderLimit = 5

type SupermarketDashboard struct {
	SupermarketID  uuid.UUID
	AcceptedTieUps int
	PendingTieUps  int
	OrdersByStatus map[string]int
	RecentOrders   []model.Order
}

type SupplierDashboard struct {
	SupplierID       uuid.UUID
	ProductCount     int
	OrdersByStatus   map[string]int
	TiedSupermarkets int
	PendingRequests  int
	Stock            model.StockSummary
	RecentOrders     []model.Order
}

// TotalOrders sums the per-status counts.
func TotalOrders(byStatus map[string]int) int {
	total := 0
	for _, n := range byStatus {
		total += n
	}
	return total
}

type DashboardService struct {
	ids       *Identities
	tieUps    repository.TieUpRepository
	orders    repository.OrderRepository
	products  repository.ProductRepository
	inventory repository.InventoryRepository
}

func NewDashboardService(
	ids *Identities,
	tieUps repository.TieUpRepository,
	orders repository.OrderRepository,
	products repository.ProductRepository,
	inventory repository.InventoryRepository,
) *DashboardService {
	return &DashboardService{ids: ids, tieUps: tieUps, orders: orders, products: products, inventory: inventory}
}

func (s *DashboardService) Supermarket(ctx context.Context, accountID uuid.UUID) (*SupermarketDashboard, error) {
	party, _, err := s.ids.SupermarketByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	d := &SupermarketDashboard{SupermarketID: party.ProfileID}
	if d.AcceptedTieUps, d.PendingTieUps, err = s.tieUps.CountForSupermarket(ctx, accountID); err != nil {
		return nil, fmt.Errorf("count tie-ups: %w", err)
	}
	if d.OrdersByStatus, err = s.orders.StatusCounts(ctx, model.RoleSupermarket, accountID); err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	if d.RecentOrders, err = s.orders.ListBySupermarket(ctx, accountID, recentOrderLimit); err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}
	return d, nil
}

func (s *DashboardService) Supplier(ctx context.Context, accountID uuid.UUID) (*SupplierDashboard, error) {
	party, _, err := s.ids.SupplierByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	d := &SupplierDashboard{SupplierID: party.ProfileID}
	if d.ProductCount, err = s.products.CountBySupplier(ctx, accountID); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	if d.OrdersByStatus, err = s.orders.StatusCounts(ctx, model.RoleSupplier, accountID); err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	if d.TiedSupermarkets, d.PendingRequests, err = s.tieUps.CountForSupplier(ctx, accountID); err != nil {
		return nil, fmt.Errorf("count tie-ups: %w", err)
	}
	if d.Stock, err = s.inventory.Summary(ctx, accountID); err != nil {
		return nil, fmt.Errorf("stock summary: %w", err)
	}
	if d.RecentOrders, err = s.orders.ListBySupplier(ctx, accountID, recentOrderLimit); err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}
	return d, nil
}
