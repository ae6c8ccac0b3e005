package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Account is a login identity. Its id doubles as the owner's profile id.
type Account struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash *string   `db:"password_hash"` // nil for Google-only accounts
	GoogleID     *string   `db:"google_id"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// AccountView is the public shape of an account.
type AccountView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (a *Account) View() AccountView {
	return AccountView{ID: a.ID.String(), Email: a.Email}
}

type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
	LinkGoogle(ctx context.Context, id uuid.UUID, googleID string) error
}
