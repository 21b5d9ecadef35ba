package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/flicky/swiftora-api/internal/dto"
	"github.com/flicky/swiftora-api/internal/model"
	"github.com/flicky/swiftora-api/internal/repository"
)

// ProfileService manages the role-specific profile behind each account.
// Every mutation is restricted to the owning account.
type ProfileService struct {
	suppliers    repository.SupplierRepository
	supermarkets repository.SupermarketRepository
}

func NewProfileService(suppliers repository.SupplierRepository, supermarkets repository.SupermarketRepository) *ProfileService {
	return &ProfileService{suppliers: suppliers, supermarkets: supermarkets}
}

func (s *ProfileService) CreateSupplier(ctx context.Context, accountID uuid.UUID, role model.Role, req dto.SupplierRequest) (*model.SupplierProfile, error) {
	if role != model.RoleSupplier {
		return nil, ErrForbidden
	}
	existing, err := s.suppliers.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	if existing != nil {
		return nil, ErrProfileExists
	}

	p := &model.SupplierProfile{
		AccountID: accountID,
		Name:      strings.TrimSpace(req.Name),
		Contact:   strings.TrimSpace(req.Contact),
		Location:  req.Location,
	}
	err = s.suppliers.Create(ctx, p)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrProfileExists
	}
	if err != nil {
		return nil, fmt.Errorf("create supplier: %w", err)
	}
	return p, nil
}

func (s *ProfileService) MySupplier(ctx context.Context, accountID uuid.UUID) (*model.SupplierProfile, error) {
	p, err := s.suppliers.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	if p == nil {
		return nil, ErrSupplierNotFound
	}
	return p, nil
}

// UpdateSupplier replaces the name. Contact and location change only when
// the request carries them.
func (s *ProfileService) UpdateSupplier(ctx context.Context, accountID, supplierID uuid.UUID, req dto.SupplierRequest) (*model.SupplierProfile, error) {
	p, err := s.suppliers.GetByID(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	if p == nil {
		return nil, ErrSupplierNotFound
	}
	if p.AccountID != accountID {
		return nil, ErrForbidden
	}

	p.Name = strings.TrimSpace(req.Name)
	if c := strings.TrimSpace(req.Contact); c != "" {
		p.Contact = c
	}
	if req.Location != nil {
		p.Location = req.Location
	}
	err = s.suppliers.Update(ctx, p)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrSupplierNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update supplier: %w", err)
	}
	return p, nil
}

func (s *ProfileService) CreateSupermarket(ctx context.Context, accountID uuid.UUID, role model.Role, req dto.SupermarketRequest) (*model.SupermarketProfile, error) {
	if role != model.RoleSupermarket {
		return nil, ErrForbidden
	}
	existing, err := s.supermarkets.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("get supermarket: %w", err)
	}
	if existing != nil {
		return nil, ErrProfileExists
	}

	p := &model.SupermarketProfile{
		AccountID: accountID,
		Name:      trimmedName(req.Name),
		Phone:     strings.TrimSpace(req.Phone),
		Location:  req.Location,
	}
	err = s.supermarkets.Create(ctx, p)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrProfileExists
	}
	if err != nil {
		return nil, fmt.Errorf("create supermarket: %w", err)
	}
	return p, nil
}

func (s *ProfileService) MySupermarket(ctx context.Context, accountID uuid.UUID) (*model.SupermarketProfile, error) {
	p, err := s.supermarkets.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("get supermarket: %w", err)
	}
	if p == nil {
		return nil, ErrSupermarketNotFound
	}
	return p, nil
}

// UpdateSupermarket changes only the fields the request carries.
func (s *ProfileService) UpdateSupermarket(ctx context.Context, accountID, supermarketID uuid.UUID, req dto.SupermarketRequest) (*model.SupermarketProfile, error) {
	p, err := s.ownedSupermarket(ctx, accountID, supermarketID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = trimmedName(req.Name)
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		p.Phone = phone
	}
	if req.Location != nil {
		p.Location = req.Location
	}
	err = s.supermarkets.Update(ctx, p)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrSupermarketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update supermarket: %w", err)
	}
	return p, nil
}

// DeleteSupermarket removes the profile; its tie-ups go with it.
func (s *ProfileService) DeleteSupermarket(ctx context.Context, accountID, supermarketID uuid.UUID) error {
	if _, err := s.ownedSupermarket(ctx, accountID, supermarketID); err != nil {
		return err
	}
	err := s.supermarkets.Delete(ctx, supermarketID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSupermarketNotFound
	}
	if err != nil {
		return fmt.Errorf("delete supermarket: %w", err)
	}
	return nil
}

func (s *ProfileService) ownedSupermarket(ctx context.Context, accountID, supermarketID uuid.UUID) (*model.SupermarketProfile, error) {
	p, err := s.supermarkets.GetByID(ctx, supermarketID)
	if err != nil {
		return nil, fmt.Errorf("get supermarket: %w", err)
	}
	if p == nil {
		return nil, ErrSupermarketNotFound
	}
	if p.AccountID != accountID {
		return nil, ErrForbidden
	}
	return p, nil
}

func trimmedName(name *string) *string {
	if name == nil {
		return nil
	}
	return optionalName(*name)
}
