package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flicky/swiftora-api/internal/model"
)

type AccountRepository interface {
	// Register stores the account and the profile matching its role in one
	// transaction. Exactly one of supplier and supermarket is non-nil.
	Register(ctx context.Context, account *model.Account, supplier *model.SupplierProfile, supermarket *model.SupermarketProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	GetByUsername(ctx context.Context, username string) (*model.Account, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

type pgAccountRepo struct{ pool *pgxpool.Pool }

func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &pgAccountRepo{pool: pool}
}

const accountColumns = `id, username, email, password_hash, role, created_at, updated_at`

func (r *pgAccountRepo) Register(ctx context.Context, account *model.Account, supplier *model.SupplierProfile, supermarket *model.SupermarketProfile) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	account.ID = uuid.New()
	err = tx.QueryRow(ctx,
		`INSERT INTO accounts (id, username, email, password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, NOW(), NOW()) RETURNING created_at, updated_at`,
		account.ID, account.Username, account.Email, account.PasswordHash, account.Role,
	).Scan(&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert account: %w", err)
	}

	switch {
	case supplier != nil:
		supplier.AccountID = account.ID
		if err := insertSupplier(ctx, tx, supplier); err != nil {
			return err
		}
	case supermarket != nil:
		supermarket.AccountID = account.ID
		if err := insertSupermarket(ctx, tx, supermarket); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *pgAccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	return r.getOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

func (r *pgAccountRepo) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	return r.getOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE username = $1`, username)
}

func (r *pgAccountRepo) getOne(ctx context.Context, query string, arg any) (*model.Account, error) {
	a := &model.Account{}
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

func (r *pgAccountRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE username = $1 OR email = $2)`, username, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check account: %w", err)
	}
	return exists, nil
}

// dbtx is the subset of pgxpool.Pool and pgx.Tx the insert helpers need.
type dbtx interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
