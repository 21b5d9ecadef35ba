package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flicky/swiftora-api/internal/model"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, supplierAccountID uuid.UUID, productID string) (*model.Product, error)
	GetBySKU(ctx context.Context, supplierAccountID uuid.UUID, sku string) (*model.Product, error)
	GetByBarcode(ctx context.Context, supplierAccountID uuid.UUID, barcode string) (*model.Product, error)
	ListBySupplier(ctx context.Context, supplierAccountID uuid.UUID) ([]model.Product, error)
	ListBySuppliers(ctx context.Context, supplierAccountIDs []uuid.UUID) ([]model.Product, error)
	ListAll(ctx context.Context) ([]model.Product, error)
	CountBySupplier(ctx context.Context, supplierAccountID uuid.UUID) (int, error)
	Update(ctx context.Context, product *model.Product) error
	DeleteBySKU(ctx context.Context, supplierAccountID uuid.UUID, sku string) error
}

type pgProductRepo struct{ pool *pgxpool.Pool }

func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &pgProductRepo{pool: pool}
}

const productColumns = `product_id, supplier_account_id, sku, barcode, name, category,
	cost_price, purchase_price, sales_price, mrp_price, discount, expiry_date,
	hsn_code, stock, unit, company, created_at, updated_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	p := &model.Product{}
	err := row.Scan(
		&p.ID, &p.SupplierAccountID, &p.SKU, &p.Barcode, &p.Name, &p.Category,
		&p.CostPrice, &p.PurchasePrice, &p.SalesPrice, &p.MRPPrice, &p.Discount, &p.ExpiryDate,
		&p.HSNCode, &p.Stock, &p.Unit, &p.Company, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *pgProductRepo) Create(ctx context.Context, p *model.Product) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO products (`+productColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
		 RETURNING created_at, updated_at`,
		p.ID, p.SupplierAccountID, p.SKU, p.Barcode, p.Name, p.Category,
		p.CostPrice, p.PurchasePrice, p.SalesPrice, p.MRPPrice, p.Discount, p.ExpiryDate,
		p.HSNCode, p.Stock, p.Unit, p.Company,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *pgProductRepo) GetByID(ctx context.Context, supplierAccountID uuid.UUID, productID string) (*model.Product, error) {
	return r.getOne(ctx,
		`SELECT `+productColumns+` FROM products WHERE supplier_account_id = $1 AND product_id = $2`,
		supplierAccountID, productID)
}

func (r *pgProductRepo) GetBySKU(ctx context.Context, supplierAccountID uuid.UUID, sku string) (*model.Product, error) {
	return r.getOne(ctx,
		`SELECT `+productColumns+` FROM products WHERE supplier_account_id = $1 AND sku = $2`,
		supplierAccountID, sku)
}

func (r *pgProductRepo) GetByBarcode(ctx context.Context, supplierAccountID uuid.UUID, barcode string) (*model.Product, error) {
	return r.getOne(ctx,
		`SELECT `+productColumns+` FROM products WHERE supplier_account_id = $1 AND barcode = $2 LIMIT 1`,
		supplierAccountID, barcode)
}

func (r *pgProductRepo) getOne(ctx context.Context, query string, args ...any) (*model.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *pgProductRepo) ListBySupplier(ctx context.Context, supplierAccountID uuid.UUID) ([]model.Product, error) {
	return r.list(ctx,
		`SELECT `+productColumns+` FROM products WHERE supplier_account_id = $1 ORDER BY created_at DESC`,
		supplierAccountID)
}

func (r *pgProductRepo) ListBySuppliers(ctx context.Context, supplierAccountIDs []uuid.UUID) ([]model.Product, error) {
	if len(supplierAccountIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx,
		`SELECT `+productColumns+` FROM products WHERE supplier_account_id = ANY($1::uuid[]) ORDER BY name`,
		uuidStrings(supplierAccountIDs))
}

func (r *pgProductRepo) ListAll(ctx context.Context) ([]model.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products ORDER BY name`)
}

func (r *pgProductRepo) list(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *pgProductRepo) CountBySupplier(ctx context.Context, supplierAccountID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE supplier_account_id = $1`, supplierAccountID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// Update rewrites every mutable column of the product matched by
// (supplier, product id). The SKU may change; a clash yields ErrDuplicate.
func (r *pgProductRepo) Update(ctx context.Context, p *model.Product) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE products SET sku = $3, barcode = $4, name = $5, category = $6,
			cost_price = $7, purchase_price = $8, sales_price = $9, mrp_price = $10, discount = $11,
			expiry_date = $12, hsn_code = $13, stock = $14, unit = $15, company = $16, updated_at = NOW()
		 WHERE supplier_account_id = $1 AND product_id = $2 RETURNING updated_at`,
		p.SupplierAccountID, p.ID, p.SKU, p.Barcode, p.Name, p.Category,
		p.CostPrice, p.PurchasePrice, p.SalesPrice, p.MRPPrice, p.Discount,
		p.ExpiryDate, p.HSNCode, p.Stock, p.Unit, p.Company,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return ErrNotFound
		}
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (r *pgProductRepo) DeleteBySKU(ctx context.Context, supplierAccountID uuid.UUID, sku string) error {
	ct, err := r.pool.Exec(ctx,
		`DELETE FROM products WHERE supplier_account_id = $1 AND sku = $2`, supplierAccountID, sku)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
