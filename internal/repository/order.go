package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flicky/swiftora-api/internal/model"
)

type OrderRepository interface {
	// Place inserts the order after checking, in the same transaction, that
	// the supermarket holds an accepted tie-up with the supplier and that the
	// product is in the supplier's catalog.
	Place(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	// UpdateStatus sets the status and, when deliveredAt is non-nil, the
	// delivery date. It returns ErrNotFound when no row matches.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, deliveredAt *time.Time) (*model.Order, error)
	// ListBySupplier and ListBySupermarket return newest first; limit <= 0
	// means no limit.
	ListBySupplier(ctx context.Context, supplierAccountID uuid.UUID, limit int) ([]model.Order, error)
	ListBySupermarket(ctx context.Context, supermarketAccountID uuid.UUID, limit int) ([]model.Order, error)
	ListDetailsBySupermarket(ctx context.Context, supermarketAccountID uuid.UUID) ([]model.OrderDetail, error)
	StatusCounts(ctx context.Context, role model.Role, accountID uuid.UUID) (map[string]int, error)
}

type pgOrderRepo struct{ pool *pgxpool.Pool }

func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &pgOrderRepo{pool: pool}
}

const orderColumns = `id, product_id, supermarket_account_id, supplier_account_id, sku, quantity,
	order_date, order_status, delivery_date, created_at, updated_at`

func orderDest(o *model.Order) []any {
	return []any{
		&o.ID, &o.ProductID, &o.SupermarketAccountID, &o.SupplierAccountID, &o.SKU, &o.Quantity,
		&o.OrderDate, &o.Status, &o.DeliveryDate, &o.CreatedAt, &o.UpdatedAt,
	}
}

func (r *pgOrderRepo) Place(ctx context.Context, o *model.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// FOR SHARE keeps the tie-up row stable until the order commits.
	var tieUpID uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT id FROM tie_ups
		 WHERE supermarket_account_id = $1 AND supplier_account_id = $2 AND status = $3
		 LIMIT 1 FOR SHARE`,
		o.SupermarketAccountID, o.SupplierAccountID, model.TieUpAccepted,
	).Scan(&tieUpID)
	if err != nil {
		if isNoRows(err) {
			return ErrTieUpNotAccepted
		}
		return fmt.Errorf("check tie-up: %w", err)
	}

	var sku string
	err = tx.QueryRow(ctx,
		`SELECT sku FROM products WHERE supplier_account_id = $1 AND product_id = $2 FOR SHARE`,
		o.SupplierAccountID, o.ProductID,
	).Scan(&sku)
	if err != nil {
		if isNoRows(err) {
			return ErrProductMissing
		}
		return fmt.Errorf("check product: %w", err)
	}
	if o.SKU == "" {
		o.SKU = sku
	}

	o.ID = uuid.New()
	err = tx.QueryRow(ctx,
		`INSERT INTO orders (id, product_id, supermarket_account_id, supplier_account_id, sku, quantity,
			order_date, order_status, delivery_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, CURRENT_DATE, $7, $8, NOW(), NOW())
		 RETURNING `+orderColumns,
		o.ID, o.ProductID, o.SupermarketAccountID, o.SupplierAccountID, o.SKU, o.Quantity,
		model.OrderStatusPending, o.DeliveryDate,
	).Scan(orderDest(o)...)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return tx.Commit(ctx)
}

func (r *pgOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	o := &model.Order{}
	err := r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id).Scan(orderDest(o)...)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *pgOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string, deliveredAt *time.Time) (*model.Order, error) {
	o := &model.Order{}
	err := r.pool.QueryRow(ctx,
		`UPDATE orders SET order_status = $2, delivery_date = COALESCE($3, delivery_date), updated_at = NOW()
		 WHERE id = $1 RETURNING `+orderColumns,
		id, status, deliveredAt,
	).Scan(orderDest(o)...)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return o, nil
}

func (r *pgOrderRepo) ListBySupplier(ctx context.Context, supplierAccountID uuid.UUID, limit int) ([]model.Order, error) {
	return r.list(ctx, `supplier_account_id`, supplierAccountID, limit)
}

func (r *pgOrderRepo) ListBySupermarket(ctx context.Context, supermarketAccountID uuid.UUID, limit int) ([]model.Order, error) {
	return r.list(ctx, `supermarket_account_id`, supermarketAccountID, limit)
}

// column is one of two fixed identifiers, never caller input.
func (r *pgOrderRepo) list(ctx context.Context, column string, accountID uuid.UUID, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE ` + column + ` = $1
		ORDER BY order_date DESC, created_at DESC`
	args := []any{accountID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(orderDest(&o)...); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *pgOrderRepo) ListDetailsBySupermarket(ctx context.Context, supermarketAccountID uuid.UUID) ([]model.OrderDetail, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT o.id, o.product_id, o.supermarket_account_id, o.supplier_account_id, o.sku, o.quantity,
			o.order_date, o.order_status, o.delivery_date, o.created_at, o.updated_at,
			p.name, p.stock, p.sku, s.name, a.email, s.contact
		 FROM orders o
		 LEFT JOIN products p ON p.supplier_account_id = o.supplier_account_id AND p.product_id = o.product_id
		 LEFT JOIN supplier_profiles s ON s.account_id = o.supplier_account_id
		 LEFT JOIN accounts a ON a.id = o.supplier_account_id
		 WHERE o.supermarket_account_id = $1
		 ORDER BY o.order_date DESC, o.created_at DESC`,
		supermarketAccountID)
	if err != nil {
		return nil, fmt.Errorf("list order details: %w", err)
	}
	defer rows.Close()

	var out []model.OrderDetail
	for rows.Next() {
		var d model.OrderDetail
		dest := append(orderDest(&d.Order),
			&d.ProductName, &d.ProductStock, &d.ProductSKU, &d.SupplierName, &d.SupplierEmail, &d.SupplierContact)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan order detail: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *pgOrderRepo) StatusCounts(ctx context.Context, role model.Role, accountID uuid.UUID) (map[string]int, error) {
	column := `supermarket_account_id`
	if role == model.RoleSupplier {
		column = `supplier_account_id`
	}
	rows, err := r.pool.Query(ctx,
		`SELECT order_status, COUNT(*) FROM orders WHERE `+column+` = $1 GROUP BY order_status`,
		accountID)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan order count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
