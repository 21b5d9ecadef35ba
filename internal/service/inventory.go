package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/flicky/swiftora-api/internal/metrics"
	"github.com/flicky/swiftora-api/internal/model"
	"github.com/flicky/swiftora-api/internal/repository"
)

type InventoryService struct {
	inventory repository.InventoryRepository
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewInventoryService(inventory repository.InventoryRepository, m *metrics.Metrics) *InventoryService {
	return &InventoryService{inventory: inventory, metrics: m, now: time.Now}
}

func (s *InventoryService) record(supplierAccountID uuid.UUID, productID string, quantity int) (*model.InventoryRecord, error) {
	if productID == "" {
		return nil, invalid("product_id is required")
	}
	if quantity < 0 {
		return nil, invalid("quantity must not be negative")
	}
	return &model.InventoryRecord{
		ProductID:         productID,
		SupplierAccountID: supplierAccountID,
		QuantityOnHand:    quantity,
		StockLevel:        model.ClassifyStock(quantity),
		LastUpdated:       s.now(),
	}, nil
}

// Upsert creates or overwrites the record for (product, supplier).
func (s *InventoryService) Upsert(ctx context.Context, supplierAccountID uuid.UUID, productID string, quantity int) (*model.InventoryRecord, error) {
	rec, err := s.record(supplierAccountID, productID, quantity)
	if err != nil {
		return nil, err
	}
	if err := s.inventory.Upsert(ctx, rec); err != nil {
		return nil, fmt.Errorf("upsert inventory: %w", err)
	}
	s.metrics.InventoryUpserted(string(rec.StockLevel))
	return rec, nil
}

// Modify updates an existing record only.
func (s *InventoryService) Modify(ctx context.Context, supplierAccountID uuid.UUID, productID string, quantity int) (*model.InventoryRecord, error) {
	rec, err := s.record(supplierAccountID, productID, quantity)
	if err != nil {
		return nil, err
	}
	err = s.inventory.Update(ctx, rec)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInventoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update inventory: %w", err)
	}
	return rec, nil
}

func (s *InventoryService) Remove(ctx context.Context, supplierAccountID uuid.UUID, productID string) error {
	err := s.inventory.Delete(ctx, supplierAccountID, productID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrInventoryNotFound
	}
	if err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	return nil
}

func (s *InventoryService) List(ctx context.Context, supplierAccountID uuid.UUID) ([]model.InventoryRecord, error) {
	list, err := s.inventory.ListBySupplier(ctx, supplierAccountID)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	if list == nil {
		list = []model.InventoryRecord{}
	}
	return list, nil
}

func (s *InventoryService) StockSummary(ctx context.Context, supplierAccountID uuid.UUID) (model.StockSummary, error) {
	summary, err := s.inventory.Summary(ctx, supplierAccountID)
	if err != nil {
		return model.StockSummary{}, fmt.Errorf("stock summary: %w", err)
	}
	return summary, nil
}
