package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/flicky/swiftora-api/internal/metrics"
	"github.com/flicky/swiftora-api/internal/model"
	"github.com/flicky/swiftora-api/internal/repository"
)

// TieUpService owns the tie-up life cycle: pending on request, accepted on
// the supplier's say-so, and nothing else.
type TieUpService struct {
	tieUps  repository.TieUpRepository
	ids     *Identities
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewTieUpService(tieUps repository.TieUpRepository, ids *Identities, log *zap.Logger, m *metrics.Metrics) *TieUpService {
	return &TieUpService{tieUps: tieUps, ids: ids, log: log, metrics: m}
}

// Request links the calling supermarket to a supplier. Repeating a request
// returns the existing row untouched, whatever its status.
func (s *TieUpService) Request(ctx context.Context, supermarketAccountID, supplierID uuid.UUID) (*model.TieUp, bool, error) {
	supermarket, _, err := s.ids.SupermarketByAccount(ctx, supermarketAccountID)
	if err != nil {
		return nil, false, err
	}
	supplier, _, err := s.ids.SupplierByID(ctx, supplierID)
	if err != nil {
		return nil, false, err
	}

	tieUp := &model.TieUp{
		SupplierID:           supplier.ProfileID,
		SupplierAccountID:    supplier.AccountID,
		SupermarketID:        supermarket.ProfileID,
		SupermarketAccountID: supermarket.AccountID,
		Status:               model.TieUpPending,
	}
	created, err := s.tieUps.CreateIfAbsent(ctx, tieUp)
	if err != nil {
		return nil, false, fmt.Errorf("request tie-up: %w", err)
	}
	if created {
		s.metrics.TieUpRequested()
		s.log.Info("tie-up requested",
			zap.String("tie_up_id", tieUp.ID.String()),
			zap.String("supermarket_id", tieUp.SupermarketID.String()),
			zap.String("supplier_id", tieUp.SupplierID.String()))
	}
	return tieUp, created, nil
}

// Accept moves the pair's tie-up to accepted. Only the supplier named in
// the tie-up may accept it.
func (s *TieUpService) Accept(ctx context.Context, supplierAccountID, supermarketID, supplierID uuid.UUID) (*model.TieUp, error) {
	supplier, _, err := s.ids.SupplierByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if supplier.AccountID != supplierAccountID {
		return nil, ErrForbidden
	}

	existing, err := s.tieUps.GetByPair(ctx, supermarketID, supplierID)
	if err != nil {
		return nil, fmt.Errorf("get tie-up: %w", err)
	}
	if existing == nil {
		return nil, ErrTieUpNotFound
	}

	tieUp, err := s.tieUps.Accept(ctx, supermarketID, supplierID)
	if err != nil {
		return nil, fmt.Errorf("accept tie-up: %w", err)
	}
	if tieUp == nil {
		return nil, ErrTieUpNotFound
	}
	if existing.Status != model.TieUpAccepted {
		s.metrics.TieUpAccepted()
		s.log.Info("tie-up accepted",
			zap.String("tie_up_id", tieUp.ID.String()),
			zap.String("supermarket_id", supermarketID.String()),
			zap.String("supplier_id", supplierID.String()))
	}
	return tieUp, nil
}

func (s *TieUpService) Status(ctx context.Context, supermarketAccountID, supplierID uuid.UUID) (model.TieUpStatus, error) {
	tieUp, err := s.tieUps.GetForSupermarketAccount(ctx, supermarketAccountID, supplierID)
	if err != nil {
		return "", fmt.Errorf("get tie-up status: %w", err)
	}
	if tieUp == nil {
		return "", ErrTieUpNotFound
	}
	return tieUp.Status, nil
}

func (s *TieUpService) ListAccepted(ctx context.Context, supermarketAccountID uuid.UUID) ([]model.AcceptedTieUp, error) {
	list, err := s.tieUps.ListAcceptedForSupermarket(ctx, supermarketAccountID)
	if err != nil {
		return nil, fmt.Errorf("list accepted tie-ups: %w", err)
	}
	return list, nil
}

// ListForSupplier returns the supplier's tie-ups, optionally narrowed to
// one status. An empty status means all.
func (s *TieUpService) ListForSupplier(ctx context.Context, supplierAccountID uuid.UUID, status string) ([]model.SupplierTieUp, error) {
	var filter *model.TieUpStatus
	if status != "" {
		st := model.TieUpStatus(status)
		if st != model.TieUpPending && st != model.TieUpAccepted {
			return nil, invalid("status must be pending or accepted")
		}
		filter = &st
	}
	list, err := s.tieUps.ListForSupplier(ctx, supplierAccountID, filter)
	if err != nil {
		return nil, fmt.Errorf("list supplier tie-ups: %w", err)
	}
	return list, nil
}
