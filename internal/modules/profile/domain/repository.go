package domain

import "context"

// ProfileRepository persists one Profile document per identity.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*Profile, error)
	// GetByUsername is an exact, case-sensitive match.
	GetByUsername(ctx context.Context, username string) (*Profile, error)
	// Insert fails with ErrConflict when the id or username is taken.
	Insert(ctx context.Context, profile *Profile) error
	// Replace merges fields into the stored document and returns the result.
	Replace(ctx context.Context, id string, fields ProfileFields) (*Profile, error)
}
