package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/flicky/swiftora-api/internal/dto"
	"github.com/flicky/swiftora-api/internal/model"
	"github.com/flicky/swiftora-api/internal/repository"
)

const (
	defaultProductName     = "New Product"
	defaultProductCategory = "Uncategorized"
	expiryDateLayout       = "2006-01-02"
)

// ProductService manages a supplier's own catalog. Every call is scoped to
// the supplier's account id.
type ProductService struct {
	products repository.ProductRepository
}

func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// Add stores a product keyed by its barcode. Missing SKU, name and
// category fall back to SKU-<barcode>, "New Product" and "Uncategorized".
func (s *ProductService) Add(ctx context.Context, supplierAccountID uuid.UUID, req dto.CreateProductRequest) (*model.Product, error) {
	barcode := strings.TrimSpace(req.Barcode)
	if barcode == "" {
		return nil, invalid("barcode is required")
	}
	expiry, err := parseExpiry(req.ExpiryDate)
	if err != nil {
		return nil, err
	}

	p := &model.Product{
		ID:                barcode,
		SupplierAccountID: supplierAccountID,
		SKU:               orDefault(req.SKU, "SKU-"+barcode),
		Barcode:           barcode,
		Name:              orDefault(req.Name, defaultProductName),
		Category:          orDefault(req.Category, defaultProductCategory),
		CostPrice:         req.CostPrice,
		PurchasePrice:     req.PurchasePrice,
		SalesPrice:        req.SalesPrice,
		MRPPrice:          req.MRPPrice,
		Discount:          req.Discount,
		ExpiryDate:        expiry,
		HSNCode:           strings.TrimSpace(req.HSNCode),
		Stock:             req.Stock,
		Unit:              strings.TrimSpace(req.Unit),
		Company:           strings.TrimSpace(req.Company),
	}
	err = s.products.Create(ctx, p)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrProductExists
	}
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (s *ProductService) List(ctx context.Context, supplierAccountID uuid.UUID) ([]model.Product, error) {
	products, err := s.products.ListBySupplier(ctx, supplierAccountID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

func (s *ProductService) GetBySKU(ctx context.Context, supplierAccountID uuid.UUID, sku string) (*model.Product, error) {
	p, err := s.products.GetBySKU(ctx, supplierAccountID, sku)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *ProductService) GetByBarcode(ctx context.Context, supplierAccountID uuid.UUID, barcode string) (*model.Product, error) {
	p, err := s.products.GetByBarcode(ctx, supplierAccountID, barcode)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// UpdateBySKU applies the fields present in req to the product.
func (s *ProductService) UpdateBySKU(ctx context.Context, supplierAccountID uuid.UUID, sku string, req dto.UpdateProductRequest) (*model.Product, error) {
	p, err := s.GetBySKU(ctx, supplierAccountID, sku)
	if err != nil {
		return nil, err
	}

	if req.SKU != nil {
		p.SKU = strings.TrimSpace(*req.SKU)
	}
	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		p.Category = strings.TrimSpace(*req.Category)
	}
	if req.CostPrice != nil {
		p.CostPrice = *req.CostPrice
	}
	if req.PurchasePrice != nil {
		p.PurchasePrice = *req.PurchasePrice
	}
	if req.SalesPrice != nil {
		p.SalesPrice = *req.SalesPrice
	}
	if req.MRPPrice != nil {
		p.MRPPrice = *req.MRPPrice
	}
	if req.Discount != nil {
		p.Discount = *req.Discount
	}
	if req.ExpiryDate != nil {
		if p.ExpiryDate, err = parseExpiry(req.ExpiryDate); err != nil {
			return nil, err
		}
	}
	if req.HSNCode != nil {
		p.HSNCode = strings.TrimSpace(*req.HSNCode)
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.Unit != nil {
		p.Unit = strings.TrimSpace(*req.Unit)
	}
	if req.Company != nil {
		p.Company = strings.TrimSpace(*req.Company)
	}
	if p.SKU == "" {
		return nil, invalid("sku must not be empty")
	}

	err = s.products.Update(ctx, p)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrProductNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return nil, ErrProductExists
	case err != nil:
		return nil, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

func (s *ProductService) DeleteBySKU(ctx context.Context, supplierAccountID uuid.UUID, sku string) error {
	err := s.products.DeleteBySKU(ctx, supplierAccountID, sku)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProductNotFound
	}
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func parseExpiry(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := time.Parse(expiryDateLayout, strings.TrimSpace(*raw))
	if err != nil {
		return nil, invalid("expiry_date must be YYYY-MM-DD")
	}
	return &t, nil
}

func orDefault(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return fallback
}
