package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/flicky/swiftora-api/internal/dto"
	"github.com/flicky/swiftora-api/internal/model"
	"github.com/flicky/swiftora-api/internal/service"
)

// The interfaces below are the slices of the service layer each handler
// needs. The concrete *service types satisfy them.

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*service.AuthResult, error)
	Login(ctx context.Context, req dto.LoginRequest) (*service.AuthResult, error)
	Me(ctx context.Context, accountID uuid.UUID) (*model.Account, error)
}

type ProfileService interface {
	CreateSupplier(ctx context.Context, accountID uuid.UUID, role model.Role, req dto.SupplierRequest) (*model.SupplierProfile, error)
	MySupplier(ctx context.Context, accountID uuid.UUID) (*model.SupplierProfile, error)
	UpdateSupplier(ctx context.Context, accountID, supplierID uuid.UUID, req dto.SupplierRequest) (*model.SupplierProfile, error)
	CreateSupermarket(ctx context.Context, accountID uuid.UUID, role model.Role, req dto.SupermarketRequest) (*model.SupermarketProfile, error)
	MySupermarket(ctx context.Context, accountID uuid.UUID) (*model.SupermarketProfile, error)
	UpdateSupermarket(ctx context.Context, accountID, supermarketID uuid.UUID, req dto.SupermarketRequest) (*model.SupermarketProfile, error)
	DeleteSupermarket(ctx context.Context, accountID, supermarketID uuid.UUID) error
}

type ProductService interface {
	Add(ctx context.Context, supplierAccountID uuid.UUID, req dto.CreateProductRequest) (*model.Product, error)
	List(ctx context.Context, supplierAccountID uuid.UUID) ([]model.Product, error)
	GetBySKU(ctx context.Context, supplierAccountID uuid.UUID, sku string) (*model.Product, error)
	GetByBarcode(ctx context.Context, supplierAccountID uuid.UUID, barcode string) (*model.Product, error)
	UpdateBySKU(ctx context.Context, supplierAccountID uuid.UUID, sku string, req dto.UpdateProductRequest) (*model.Product, error)
	DeleteBySKU(ctx context.Context, supplierAccountID uuid.UUID, sku string) error
}

type InventoryService interface {
	Upsert(ctx context.Context, supplierAccountID uuid.UUID, productID string, quantity int) (*model.InventoryRecord, error)
	Modify(ctx context.Context, supplierAccountID uuid.UUID, productID string, quantity int) (*model.InventoryRecord, error)
	Remove(ctx context.Context, supplierAccountID uuid.UUID, productID string) error
	List(ctx context.Context, supplierAccountID uuid.UUID) ([]model.InventoryRecord, error)
}

type TieUpService interface {
	Request(ctx context.Context, supermarketAccountID, supplierID uuid.UUID) (*model.TieUp, bool, error)
	Accept(ctx context.Context, supplierAccountID, supermarketID, supplierID uuid.UUID) (*model.TieUp, error)
	Status(ctx context.Context, supermarketAccountID, supplierID uuid.UUID) (model.TieUpStatus, error)
	ListAccepted(ctx context.Context, supermarketAccountID uuid.UUID) ([]model.AcceptedTieUp, error)
	ListForSupplier(ctx context.Context, supplierAccountID uuid.UUID, status string) ([]model.SupplierTieUp, error)
}

type CatalogService interface {
	EligibleProducts(ctx context.Context, supermarketAccountID uuid.UUID) (*service.EligibleProducts, error)
	OrdersWithDetails(ctx context.Context, supermarketAccountID uuid.UUID) ([]model.OrderDetail, error)
	SupplierDirectory(ctx context.Context) ([]model.SupplierSummary, error)
}

type OrderService interface {
	Place(ctx context.Context, caller model.Party, req dto.PlaceOrderRequest) (*model.Order, error)
	UpdateStatus(ctx context.Context, caller model.Party, orderID uuid.UUID, status string) (*model.Order, error)
	List(ctx context.Context, subjectID uuid.UUID, role model.Role) ([]model.Order, error)
}

type DashboardService interface {
	Supermarket(ctx context.Context, accountID uuid.UUID) (*service.SupermarketDashboard, error)
	Supplier(ctx context.Context, accountID uuid.UUID) (*service.SupplierDashboard, error)
}

// CallerResolver turns the token's account id and role into a Party.
type CallerResolver interface {
	Caller(ctx context.Context, accountID uuid.UUID, role model.Role) (*model.Party, error)
}

var (
	_ AuthService      = (*service.AuthService)(nil)
	_ ProfileService   = (*service.ProfileService)(nil)
	_ ProductService   = (*service.ProductService)(nil)
	_ InventoryService = (*service.InventoryService)(nil)
	_ TieUpService     = (*service.TieUpService)(nil)
	_ CatalogService   = (*service.CatalogService)(nil)
	_ OrderService     = (*service.OrderService)(nil)
	_ DashboardService = (*service.DashboardService)(nil)
	_ CallerResolver   = (*service.Identities)(nil)
)
