package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flicky/swiftora-api/internal/model"
)

type SupplierRepository interface {
	Create(ctx context.Context, p *model.SupplierProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.SupplierProfile, error)
	GetByAccountID(ctx context.Context, accountID uuid.UUID) (*model.SupplierProfile, error)
	ListByAccountIDs(ctx context.Context, accountIDs []uuid.UUID) ([]model.SupplierProfile, error)
	List(ctx context.Context) ([]model.SupplierProfile, error)
	Update(ctx context.Context, p *model.SupplierProfile) error
}

type pgSupplierRepo struct{ pool *pgxpool.Pool }

func NewSupplierRepository(pool *pgxpool.Pool) SupplierRepository {
	return &pgSupplierRepo{pool: pool}
}

const supplierColumns = `id, account_id, name, contact, location, created_at, updated_at`

func insertSupplier(ctx context.Context, db dbtx, p *model.SupplierProfile) error {
	loc, err := p.Location.Bytes()
	if err != nil {
		return fmt.Errorf("encode location: %w", err)
	}
	p.ID = uuid.New()
	err = db.QueryRow(ctx,
		`INSERT INTO supplier_profiles (id, account_id, name, contact, location, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, NOW(), NOW()) RETURNING created_at, updated_at`,
		p.ID, p.AccountID, p.Name, p.Contact, loc,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func scanSupplier(row pgx.Row) (*model.SupplierProfile, error) {
	p := &model.SupplierProfile{}
	var loc []byte
	if err := row.Scan(&p.ID, &p.AccountID, &p.Name, &p.Contact, &loc, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	var err error
	if p.Location, err = model.ParseLocation(loc); err != nil {
		return nil, fmt.Errorf("decode supplier location: %w", err)
	}
	return p, nil
}

func (r *pgSupplierRepo) Create(ctx context.Context, p *model.SupplierProfile) error {
	return insertSupplier(ctx, r.pool, p)
}

func (r *pgSupplierRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.SupplierProfile, error) {
	return r.getOne(ctx, `SELECT `+supplierColumns+` FROM supplier_profiles WHERE id = $1`, id)
}

func (r *pgSupplierRepo) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*model.SupplierProfile, error) {
	return r.getOne(ctx, `SELECT `+supplierColumns+` FROM supplier_profiles WHERE account_id = $1`, accountID)
}

func (r *pgSupplierRepo) getOne(ctx context.Context, query string, arg any) (*model.SupplierProfile, error) {
	p, err := scanSupplier(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return p, nil
}

func (r *pgSupplierRepo) ListByAccountIDs(ctx context.Context, accountIDs []uuid.UUID) ([]model.SupplierProfile, error) {
	return r.list(ctx,
		`SELECT `+supplierColumns+` FROM supplier_profiles WHERE account_id = ANY($1::uuid[]) ORDER BY name`,
		uuidStrings(accountIDs),
	)
}

func (r *pgSupplierRepo) List(ctx context.Context) ([]model.SupplierProfile, error) {
	return r.list(ctx, `SELECT `+supplierColumns+` FROM supplier_profiles ORDER BY name`)
}

func (r *pgSupplierRepo) list(ctx context.Context, query string, args ...any) ([]model.SupplierProfile, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var out []model.SupplierProfile
	for rows.Next() {
		p, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *pgSupplierRepo) Update(ctx context.Context, p *model.SupplierProfile) error {
	loc, err := p.Location.Bytes()
	if err != nil {
		return fmt.Errorf("encode location: %w", err)
	}
	err = r.pool.QueryRow(ctx,
		`UPDATE supplier_profiles SET name = $2, contact = $3, location = $4, updated_at = NOW()
		 WHERE id = $1 RETURNING updated_at`,
		p.ID, p.Name, p.Contact, loc,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return ErrNotFound
		}
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}
