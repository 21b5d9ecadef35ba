package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/flicky/swiftora-api/internal/model"
	"github.com/flicky/swiftora-api/internal/repository"
)

// Identities resolves either id of a profile into a model.Party so the
// rest of the service layer never has to guess which id it was handed.
type Identities struct {
	suppliers    repository.SupplierRepository
	supermarkets repository.SupermarketRepository
}

func NewIdentities(suppliers repository.SupplierRepository, supermarkets repository.SupermarketRepository) *Identities {
	return &Identities{suppliers: suppliers, supermarkets: supermarkets}
}

func (r *Identities) SupplierByAccount(ctx context.Context, accountID uuid.UUID) (*model.Party, *model.SupplierProfile, error) {
	p, err := r.suppliers.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve supplier: %w", err)
	}
	if p == nil {
		return nil, nil, ErrSupplierNotFound
	}
	return supplierParty(p), p, nil
}

func (r *Identities) SupplierByID(ctx context.Context, id uuid.UUID) (*model.Party, *model.SupplierProfile, error) {
	p, err := r.suppliers.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve supplier: %w", err)
	}
	if p == nil {
		return nil, nil, ErrSupplierNotFound
	}
	return supplierParty(p), p, nil
}

func (r *Identities) SupermarketByAccount(ctx context.Context, accountID uuid.UUID) (*model.Party, *model.SupermarketProfile, error) {
	p, err := r.supermarkets.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve supermarket: %w", err)
	}
	if p == nil {
		return nil, nil, ErrSupermarketNotFound
	}
	return supermarketParty(p), p, nil
}

func (r *Identities) SupermarketByID(ctx context.Context, id uuid.UUID) (*model.Party, *model.SupermarketProfile, error) {
	p, err := r.supermarkets.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve supermarket: %w", err)
	}
	if p == nil {
		return nil, nil, ErrSupermarketNotFound
	}
	return supermarketParty(p), p, nil
}

// Caller resolves the authenticated account into its party. Roles outside
// the marketplace are rejected.
func (r *Identities) Caller(ctx context.Context, accountID uuid.UUID, role model.Role) (*model.Party, error) {
	switch role {
	case model.RoleSupplier:
		party, _, err := r.SupplierByAccount(ctx, accountID)
		return party, err
	case model.RoleSupermarket:
		party, _, err := r.SupermarketByAccount(ctx, accountID)
		return party, err
	default:
		return nil, ErrForbidden
	}
}

func supplierParty(p *model.SupplierProfile) *model.Party {
	return &model.Party{AccountID: p.AccountID, ProfileID: p.ID, Role: model.RoleSupplier}
}

func supermarketParty(p *model.SupermarketProfile) *model.Party {
	return &model.Party{AccountID: p.AccountID, ProfileID: p.ID, Role: model.RoleSupermarket}
}
