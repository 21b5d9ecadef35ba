package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/flicky/swiftora-api/internal/dto"
	"github.com/flicky/swiftora-api/internal/metrics"
	"github.com/flicky/swiftora-api/internal/model"
	"github.com/flicky/swiftora-api/internal/repository"
)

type OrderService struct {
	orders  repository.OrderRepository
	log     *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewOrderService(orders repository.OrderRepository, log *zap.Logger, m *metrics.Metrics) *OrderService {
	return &OrderService{orders: orders, log: log, metrics: m, now: time.Now}
}

// Place creates a pending order dated today. The repository checks the
// accepted tie-up and the product inside the insert's transaction.
func (s *OrderService) Place(ctx context.Context, caller model.Party, req dto.PlaceOrderRequest) (*model.Order, error) {
	if req.SupermarketID == uuid.Nil {
		return nil, invalid("supermarket_id is required")
	}
	if caller.Role != model.RoleSupermarket || caller.AccountID != req.SupermarketID {
		return nil, ErrForbidden
	}
	if req.Quantity <= 0 {
		return nil, invalid("quantity must be positive")
	}

	order := &model.Order{
		ProductID:            req.ProductID,
		SupermarketAccountID: req.SupermarketID,
		SupplierAccountID:    req.SupplierID,
		SKU:                  req.SKU,
		Quantity:             req.Quantity,
		DeliveryDate:         req.DeliveryDate,
	}
	err := s.orders.Place(ctx, order)
	switch {
	case errors.Is(err, repository.ErrTieUpNotAccepted):
		return nil, ErrTieUpNotAccepted
	case errors.Is(err, repository.ErrProductMissing):
		return nil, ErrProductNotFound
	case err != nil:
		return nil, fmt.Errorf("place order: %w", err)
	}

	s.metrics.OrderPlaced()
	s.log.Info("order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("supermarket_account_id", order.SupermarketAccountID.String()),
		zap.String("supplier_account_id", order.SupplierAccountID.String()),
		zap.String("product_id", order.ProductID),
		zap.Int("quantity", order.Quantity))
	return order, nil
}

// UpdateStatus stores status verbatim. Only "delivered" stamps the delivery
// date; other values leave it as it was.
func (s *OrderService) UpdateStatus(ctx context.Context, caller model.Party, orderID uuid.UUID, status string) (*model.Order, error) {
	if status == "" {
		return nil, invalid("order_status is required")
	}

	existing, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if existing == nil {
		return nil, ErrOrderNotFound
	}
	if !isOrderParty(caller, existing) {
		return nil, ErrForbidden
	}

	var deliveredAt *time.Time
	if status == model.OrderStatusDelivered {
		now := s.now()
		deliveredAt = &now
	}

	order, err := s.orders.UpdateStatus(ctx, orderID, status, deliveredAt)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	s.metrics.OrderStatusChanged(status)
	s.log.Info("order status changed",
		zap.String("order_id", orderID.String()),
		zap.String("from", existing.Status),
		zap.String("to", status))
	return order, nil
}

func isOrderParty(caller model.Party, o *model.Order) bool {
	switch caller.Role {
	case model.RoleSupplier:
		return o.SupplierAccountID == caller.AccountID
	case model.RoleSupermarket:
		return o.SupermarketAccountID == caller.AccountID
	default:
		return false
	}
}

// List returns the orders on the subject's side of the market.
func (s *OrderService) List(ctx context.Context, subjectID uuid.UUID, role model.Role) ([]model.Order, error) {
	var (
		orders []model.Order
		err    error
	)
	switch role {
	case model.RoleSupplier:
		orders, err = s.orders.ListBySupplier(ctx, subjectID, 0)
	case model.RoleSupermarket:
		orders, err = s.orders.ListBySupermarket(ctx, subjectID, 0)
	default:
		return nil, ErrForbidden
	}
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}
