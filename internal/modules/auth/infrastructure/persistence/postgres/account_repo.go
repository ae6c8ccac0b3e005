package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/saransh1220/linkhub/internal/modules/auth/domain"
)

const accountColumns = `id, email, password_hash, google_id, created_at, updated_at`

type PgAccountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) *PgAccountRepository {
	return &PgAccountRepository{db: db}
}

// Create implements domain.AccountRepository
func (r *PgAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	now := time.Now().UTC()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	if account.UpdatedAt.IsZero() {
		account.UpdatedAt = now
	}

	query := `INSERT INTO accounts (` + accountColumns + `)
		VALUES (:id, :email, :password_hash, :google_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, account); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrAccountExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByEmail implements domain.AccountRepository. Emails compare case-insensitively.
func (r *PgAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.getOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE LOWER(email) = LOWER($1)`, email)
}

// GetByID implements domain.AccountRepository
func (r *PgAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return r.getOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

// LinkGoogle implements domain.AccountRepository
func (r *PgAccountRepository) LinkGoogle(ctx context.Context, id uuid.UUID, googleID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET google_id = $1, updated_at = $2 WHERE id = $3`,
		googleID, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("link google account: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *PgAccountRepository) getOne(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var account domain.Account
	err := r.db.GetContext(ctx, &account, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &account, nil
}
