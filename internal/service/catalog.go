package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/flicky/swiftora-api/internal/model"
	"github.com/flicky/swiftora-api/internal/repository"
)

// EligibleProducts is the catalog a supermarket may order from. SupplierMap
// is keyed by supplier account id, the key products carry.
type EligibleProducts struct {
	Products    []model.Product
	Suppliers   []model.SupplierProfile
	SupplierMap map[uuid.UUID]model.SupplierProfile
}

type CatalogService struct {
	tieUps    repository.TieUpRepository
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
	orders    repository.OrderRepository
}

func NewCatalogService(tieUps repository.TieUpRepository, products repository.ProductRepository, suppliers repository.SupplierRepository, orders repository.OrderRepository) *CatalogService {
	return &CatalogService{tieUps: tieUps, products: products, suppliers: suppliers, orders: orders}
}

// EligibleProducts fails with ErrNoEligibility when the supermarket has no
// accepted tie-up. Accepted suppliers with empty catalogs give an empty,
// successful result.
func (s *CatalogService) EligibleProducts(ctx context.Context, supermarketAccountID uuid.UUID) (*EligibleProducts, error) {
	supplierAccounts, err := s.tieUps.AcceptedSupplierAccounts(ctx, supermarketAccountID)
	if err != nil {
		return nil, fmt.Errorf("accepted suppliers: %w", err)
	}
	if len(supplierAccounts) == 0 {
		return nil, ErrNoEligibility
	}

	products, err := s.products.ListBySuppliers(ctx, supplierAccounts)
	if err != nil {
		return nil, fmt.Errorf("eligible products: %w", err)
	}
	suppliers, err := s.suppliers.ListByAccountIDs(ctx, supplierAccounts)
	if err != nil {
		return nil, fmt.Errorf("eligible suppliers: %w", err)
	}

	out := &EligibleProducts{
		Products:    products,
		Suppliers:   suppliers,
		SupplierMap: make(map[uuid.UUID]model.SupplierProfile, len(suppliers)),
	}
	if out.Products == nil {
		out.Products = []model.Product{}
	}
	for _, sp := range suppliers {
		out.SupplierMap[sp.AccountID] = sp
	}
	return out, nil
}

// OrdersWithDetails lists the supermarket's orders newest first, each with
// a snapshot of its product and supplier.
func (s *CatalogService) OrdersWithDetails(ctx context.Context, supermarketAccountID uuid.UUID) ([]model.OrderDetail, error) {
	details, err := s.orders.ListDetailsBySupermarket(ctx, supermarketAccountID)
	if err != nil {
		return nil, fmt.Errorf("order details: %w", err)
	}
	if len(details) == 0 {
		return nil, ErrNoOrders
	}
	return details, nil
}

// SupplierDirectory lists every supplier with the id and name of each of
// its products, for supermarkets looking for someone to tie up with.
func (s *CatalogService) SupplierDirectory(ctx context.Context) ([]model.SupplierSummary, error) {
	suppliers, err := s.suppliers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	bySupplier := make(map[uuid.UUID][]model.ProductRef)
	for _, p := range products {
		bySupplier[p.SupplierAccountID] = append(bySupplier[p.SupplierAccountID], model.ProductRef{ID: p.ID, Name: p.Name})
	}

	out := make([]model.SupplierSummary, 0, len(suppliers))
	for _, sp := range suppliers {
		refs := bySupplier[sp.AccountID]
		if refs == nil {
			refs = []model.ProductRef{}
		}
		out = append(out, model.SupplierSummary{Supplier: sp, Products: refs})
	}
	return out, nil
}
