package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flicky/swiftora-api/internal/model"
)

type SupermarketRepository interface {
	Create(ctx context.Context, p *model.SupermarketProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.SupermarketProfile, error)
	GetByAccountID(ctx context.Context, accountID uuid.UUID) (*model.SupermarketProfile, error)
	Update(ctx context.Context, p *model.SupermarketProfile) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgSupermarketRepo struct{ pool *pgxpool.Pool }

func NewSupermarketRepository(pool *pgxpool.Pool) SupermarketRepository {
	return &pgSupermarketRepo{pool: pool}
}

const supermarketColumns = `id, account_id, name, phone, location, created_at, updated_at`

func insertSupermarket(ctx context.Context, db dbtx, p *model.SupermarketProfile) error {
	loc, err := p.Location.Bytes()
	if err != nil {
		return fmt.Errorf("encode location: %w", err)
	}
	p.ID = uuid.New()
	err = db.QueryRow(ctx,
		`INSERT INTO supermarket_profiles (id, account_id, name, phone, location, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, NOW(), NOW()) RETURNING created_at, updated_at`,
		p.ID, p.AccountID, p.Name, p.Phone, loc,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert supermarket: %w", err)
	}
	return nil
}

func scanSupermarket(row pgx.Row) (*model.SupermarketProfile, error) {
	p := &model.SupermarketProfile{}
	var loc []byte
	if err := row.Scan(&p.ID, &p.AccountID, &p.Name, &p.Phone, &loc, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	var err error
	if p.Location, err = model.ParseLocation(loc); err != nil {
		return nil, fmt.Errorf("decode supermarket location: %w", err)
	}
	return p, nil
}

func (r *pgSupermarketRepo) Create(ctx context.Context, p *model.SupermarketProfile) error {
	return insertSupermarket(ctx, r.pool, p)
}

func (r *pgSupermarketRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.SupermarketProfile, error) {
	return r.getOne(ctx, `SELECT `+supermarketColumns+` FROM supermarket_profiles WHERE id = $1`, id)
}

func (r *pgSupermarketRepo) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*model.SupermarketProfile, error) {
	return r.getOne(ctx, `SELECT `+supermarketColumns+` FROM supermarket_profiles WHERE account_id = $1`, accountID)
}

func (r *pgSupermarketRepo) getOne(ctx context.Context, query string, arg any) (*model.SupermarketProfile, error) {
	p, err := scanSupermarket(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supermarket: %w", err)
	}
	return p, nil
}

func (r *pgSupermarketRepo) Update(ctx context.Context, p *model.SupermarketProfile) error {
	loc, err := p.Location.Bytes()
	if err != nil {
		return fmt.Errorf("encode location: %w", err)
	}
	err = r.pool.QueryRow(ctx,
		`UPDATE supermarket_profiles SET name = $2, phone = $3, location = $4, updated_at = NOW()
		 WHERE id = $1 RETURNING updated_at`,
		p.ID, p.Name, p.Phone, loc,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return ErrNotFound
		}
		return fmt.Errorf("update supermarket: %w", err)
	}
	return nil
}

func (r *pgSupermarketRepo) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM supermarket_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supermarket: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
