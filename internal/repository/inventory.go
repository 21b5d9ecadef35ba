package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flicky/swiftora-api/internal/model"
)

type InventoryRepository interface {
	Upsert(ctx context.Context, rec *model.InventoryRecord) error
	Update(ctx context.Context, rec *model.InventoryRecord) error
	Delete(ctx context.Context, supplierAccountID uuid.UUID, productID string) error
	ListBySupplier(ctx context.Context, supplierAccountID uuid.UUID) ([]model.InventoryRecord, error)
	Summary(ctx context.Context, supplierAccountID uuid.UUID) (model.StockSummary, error)
}

type pgInventoryRepo struct{ pool *pgxpool.Pool }

func NewInventoryRepository(pool *pgxpool.Pool) InventoryRepository {
	return &pgInventoryRepo{pool: pool}
}

const inventoryColumns = `id, product_id, supplier_account_id, quantity_on_hand, stock_level, last_updated`

func scanInventory(row pgx.Row) (*model.InventoryRecord, error) {
	rec := &model.InventoryRecord{}
	err := row.Scan(&rec.ID, &rec.ProductID, &rec.SupplierAccountID, &rec.QuantityOnHand, &rec.StockLevel, &rec.LastUpdated)
	return rec, err
}

// Upsert writes the record keyed by (product, supplier) in one statement.
// On conflict the existing row keeps its id; rec is refreshed from the result.
func (r *pgInventoryRepo) Upsert(ctx context.Context, rec *model.InventoryRecord) error {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO inventory (`+inventoryColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (product_id, supplier_account_id) DO UPDATE
		 SET quantity_on_hand = EXCLUDED.quantity_on_hand,
		     stock_level = EXCLUDED.stock_level,
		     last_updated = EXCLUDED.last_updated
		 RETURNING `+inventoryColumns,
		uuid.New(), rec.ProductID, rec.SupplierAccountID, rec.QuantityOnHand, rec.StockLevel, rec.LastUpdated,
	)
	out, err := scanInventory(row)
	if err != nil {
		return fmt.Errorf("upsert inventory: %w", err)
	}
	*rec = *out
	return nil
}

func (r *pgInventoryRepo) Update(ctx context.Context, rec *model.InventoryRecord) error {
	row := r.pool.QueryRow(ctx,
		`UPDATE inventory SET quantity_on_hand = $3, stock_level = $4, last_updated = $5
		 WHERE product_id = $1 AND supplier_account_id = $2
		 RETURNING `+inventoryColumns,
		rec.ProductID, rec.SupplierAccountID, rec.QuantityOnHand, rec.StockLevel, rec.LastUpdated,
	)
	out, err := scanInventory(row)
	if err != nil {
		if isNoRows(err) {
			return ErrNotFound
		}
		return fmt.Errorf("update inventory: %w", err)
	}
	*rec = *out
	return nil
}

func (r *pgInventoryRepo) Delete(ctx context.Context, supplierAccountID uuid.UUID, productID string) error {
	ct, err := r.pool.Exec(ctx,
		`DELETE FROM inventory WHERE product_id = $1 AND supplier_account_id = $2`, productID, supplierAccountID)
	if err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgInventoryRepo) ListBySupplier(ctx context.Context, supplierAccountID uuid.UUID) ([]model.InventoryRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+inventoryColumns+` FROM inventory WHERE supplier_account_id = $1 ORDER BY last_updated DESC`,
		supplierAccountID)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var out []model.InventoryRecord
	for rows.Next() {
		rec, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *pgInventoryRepo) Summary(ctx context.Context, supplierAccountID uuid.UUID) (model.StockSummary, error) {
	var s model.StockSummary
	err := r.pool.QueryRow(ctx,
		`SELECT
			COUNT(*) FILTER (WHERE stock_level = 'low'),
			COUNT(*) FILTER (WHERE stock_level = 'medium'),
			COUNT(*) FILTER (WHERE stock_level = 'high')
		 FROM inventory WHERE supplier_account_id = $1`,
		supplierAccountID,
	).Scan(&s.Low, &s.Medium, &s.High)
	if err != nil {
		return s, fmt.Errorf("inventory summary: %w", err)
	}
	return s, nil
}
