package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flicky/swiftora-api/internal/model"
)

type TieUpRepository interface {
	// CreateIfAbsent inserts t unless the (supplier, supermarket) pair already
	// has a row, in which case t is overwritten with the stored row and
	// created is false.
	CreateIfAbsent(ctx context.Context, t *model.TieUp) (created bool, err error)
	GetByPair(ctx context.Context, supermarketID, supplierID uuid.UUID) (*model.TieUp, error)
	GetForSupermarketAccount(ctx context.Context, supermarketAccountID, supplierID uuid.UUID) (*model.TieUp, error)
	// Accept returns nil when no row matches the pair.
	Accept(ctx context.Context, supermarketID, supplierID uuid.UUID) (*model.TieUp, error)
	ListAcceptedForSupermarket(ctx context.Context, supermarketAccountID uuid.UUID) ([]model.AcceptedTieUp, error)
	ListForSupplier(ctx context.Context, supplierAccountID uuid.UUID, status *model.TieUpStatus) ([]model.SupplierTieUp, error)
	AcceptedSupplierAccounts(ctx context.Context, supermarketAccountID uuid.UUID) ([]uuid.UUID, error)
	CountForSupermarket(ctx context.Context, supermarketAccountID uuid.UUID) (accepted, pending int, err error)
	CountForSupplier(ctx context.Context, supplierAccountID uuid.UUID) (accepted, pending int, err error)
}

type pgTieUpRepo struct{ pool *pgxpool.Pool }

func NewTieUpRepository(pool *pgxpool.Pool) TieUpRepository {
	return &pgTieUpRepo{pool: pool}
}

const tieUpColumns = `id, supplier_id, supplier_account_id, supermarket_id, supermarket_account_id, status, requested_at, updated_at`

func tieUpDest(t *model.TieUp) []any {
	return []any{
		&t.ID, &t.SupplierID, &t.SupplierAccountID, &t.SupermarketID, &t.SupermarketAccountID,
		&t.Status, &t.RequestedAt, &t.UpdatedAt,
	}
}

func (r *pgTieUpRepo) CreateIfAbsent(ctx context.Context, t *model.TieUp) (bool, error) {
	t.ID = uuid.New()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO tie_ups (id, supplier_id, supplier_account_id, supermarket_id, supermarket_account_id, status, requested_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		 ON CONFLICT (supplier_id, supermarket_id) DO NOTHING
		 RETURNING requested_at, updated_at`,
		t.ID, t.SupplierID, t.SupplierAccountID, t.SupermarketID, t.SupermarketAccountID, t.Status,
	).Scan(&t.RequestedAt, &t.UpdatedAt)
	if err == nil {
		return true, nil
	}
	if !isNoRows(err) {
		return false, fmt.Errorf("insert tie-up: %w", err)
	}

	existing, err := r.GetByPair(ctx, t.SupermarketID, t.SupplierID)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, fmt.Errorf("insert tie-up: conflicting row vanished")
	}
	*t = *existing
	return false, nil
}

func (r *pgTieUpRepo) GetByPair(ctx context.Context, supermarketID, supplierID uuid.UUID) (*model.TieUp, error) {
	return r.getOne(ctx,
		`SELECT `+tieUpColumns+` FROM tie_ups WHERE supermarket_id = $1 AND supplier_id = $2`,
		supermarketID, supplierID)
}

func (r *pgTieUpRepo) GetForSupermarketAccount(ctx context.Context, supermarketAccountID, supplierID uuid.UUID) (*model.TieUp, error) {
	return r.getOne(ctx,
		`SELECT `+tieUpColumns+` FROM tie_ups WHERE supermarket_account_id = $1 AND supplier_id = $2`,
		supermarketAccountID, supplierID)
}

func (r *pgTieUpRepo) getOne(ctx context.Context, query string, args ...any) (*model.TieUp, error) {
	t := &model.TieUp{}
	if err := r.pool.QueryRow(ctx, query, args...).Scan(tieUpDest(t)...); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tie-up: %w", err)
	}
	return t, nil
}

func (r *pgTieUpRepo) Accept(ctx context.Context, supermarketID, supplierID uuid.UUID) (*model.TieUp, error) {
	t := &model.TieUp{}
	err := r.pool.QueryRow(ctx,
		`UPDATE tie_ups SET status = $3, updated_at = NOW()
		 WHERE supermarket_id = $1 AND supplier_id = $2
		 RETURNING `+tieUpColumns,
		supermarketID, supplierID, model.TieUpAccepted,
	).Scan(tieUpDest(t)...)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("accept tie-up: %w", err)
	}
	return t, nil
}

func (r *pgTieUpRepo) ListAcceptedForSupermarket(ctx context.Context, supermarketAccountID uuid.UUID) ([]model.AcceptedTieUp, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT t.id, t.supplier_id, t.supplier_account_id, t.supermarket_id, t.supermarket_account_id,
			t.status, t.requested_at, t.updated_at,
			s.id, s.account_id, s.name, s.contact, s.location, s.created_at, s.updated_at
		 FROM tie_ups t
		 JOIN supplier_profiles s ON s.id = t.supplier_id
		 WHERE t.supermarket_account_id = $1 AND t.status = $2
		 ORDER BY t.updated_at DESC`,
		supermarketAccountID, model.TieUpAccepted)
	if err != nil {
		return nil, fmt.Errorf("list accepted tie-ups: %w", err)
	}
	defer rows.Close()

	var out []model.AcceptedTieUp
	for rows.Next() {
		var a model.AcceptedTieUp
		var loc []byte
		dest := append(tieUpDest(&a.TieUp),
			&a.Supplier.ID, &a.Supplier.AccountID, &a.Supplier.Name, &a.Supplier.Contact, &loc,
			&a.Supplier.CreatedAt, &a.Supplier.UpdatedAt)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan accepted tie-up: %w", err)
		}
		if a.Supplier.Location, err = model.ParseLocation(loc); err != nil {
			return nil, fmt.Errorf("decode supplier location: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *pgTieUpRepo) ListForSupplier(ctx context.Context, supplierAccountID uuid.UUID, status *model.TieUpStatus) ([]model.SupplierTieUp, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT t.id, t.supplier_id, t.supplier_account_id, t.supermarket_id, t.supermarket_account_id,
			t.status, t.requested_at, t.updated_at,
			m.id, m.account_id, m.name, m.phone, m.location, m.created_at, m.updated_at
		 FROM tie_ups t
		 JOIN supermarket_profiles m ON m.id = t.supermarket_id
		 WHERE t.supplier_account_id = $1 AND ($2::text IS NULL OR t.status = $2)
		 ORDER BY t.requested_at DESC`,
		supplierAccountID, status)
	if err != nil {
		return nil, fmt.Errorf("list supplier tie-ups: %w", err)
	}
	defer rows.Close()

	var out []model.SupplierTieUp
	for rows.Next() {
		var s model.SupplierTieUp
		var loc []byte
		dest := append(tieUpDest(&s.TieUp),
			&s.Supermarket.ID, &s.Supermarket.AccountID, &s.Supermarket.Name, &s.Supermarket.Phone, &loc,
			&s.Supermarket.CreatedAt, &s.Supermarket.UpdatedAt)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan supplier tie-up: %w", err)
		}
		if s.Supermarket.Location, err = model.ParseLocation(loc); err != nil {
			return nil, fmt.Errorf("decode supermarket location: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *pgTieUpRepo) AcceptedSupplierAccounts(ctx context.Context, supermarketAccountID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT supplier_account_id FROM tie_ups WHERE supermarket_account_id = $1 AND status = $2`,
		supermarketAccountID, model.TieUpAccepted)
	if err != nil {
		return nil, fmt.Errorf("list accepted suppliers: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("scan accepted suppliers: %w", err)
	}
	return ids, nil
}

func (r *pgTieUpRepo) CountForSupermarket(ctx context.Context, supermarketAccountID uuid.UUID) (int, int, error) {
	return r.count(ctx, `supermarket_account_id`, supermarketAccountID)
}

func (r *pgTieUpRepo) CountForSupplier(ctx context.Context, supplierAccountID uuid.UUID) (int, int, error) {
	return r.count(ctx, `supplier_account_id`, supplierAccountID)
}

// column is one of two fixed identifiers, never caller input.
func (r *pgTieUpRepo) count(ctx context.Context, column string, accountID uuid.UUID) (int, int, error) {
	var accepted, pending int
	err := r.pool.QueryRow(ctx,
		`SELECT
			COUNT(*) FILTER (WHERE status = 'accepted'),
			COUNT(*) FILTER (WHERE status = 'pending')
		 FROM tie_ups WHERE `+column+` = $1`,
		accountID,
	).Scan(&accepted, &pending)
	if err != nil {
		return 0, 0, fmt.Errorf("count tie-ups: %w", err)
	}
	return accepted, pending, nil
}
