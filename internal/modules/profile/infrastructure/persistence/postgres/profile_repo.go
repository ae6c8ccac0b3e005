package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/saransh1220/linkhub/internal/modules/profile/domain"
)

const profileColumns = `id, username, bio, profile_picture_url, links, theme, socials, created_at, updated_at`

// PgProfileRepository stores one row per profile; links, theme and socials
// live in JSONB columns and travel with the row.
type PgProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *PgProfileRepository {
	return &PgProfileRepository{db: db}
}

// GetByID implements domain.ProfileRepository
func (r *PgProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	return r.getOne(ctx, "get profile by id", `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
}

// GetByUsername implements domain.ProfileRepository. The comparison is case-sensitive.
func (r *PgProfileRepository) GetByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	return r.getOne(ctx, "get profile by username", `SELECT `+profileColumns+` FROM profiles WHERE username = $1`, username)
}

func (r *PgProfileRepository) getOne(ctx context.Context, op, query string, arg any) (*domain.Profile, error) {
	profile := &domain.Profile{}
	err := r.db.GetContext(ctx, profile, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, &domain.StorageError{Op: op, Err: err}
	}
	return profile, nil
}

// Insert implements domain.ProfileRepository
func (r *PgProfileRepository) Insert(ctx context.Context, profile *domain.Profile) error {
	query := `INSERT INTO profiles (` + profileColumns + `)
		VALUES (:id, :username, :bio, :profile_picture_url, :links, :theme, :socials, :created_at, :updated_at)`

	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = now
	}
	if profile.Links == nil {
		profile.Links = domain.Links{}
	}
	if profile.Socials == nil {
		profile.Socials = domain.Socials{}
	}

	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		return mapWriteError("insert profile", err)
	}
	return nil
}

// Replace implements domain.ProfileRepository. Only non-nil fields are written.
func (r *PgProfileRepository) Replace(ctx context.Context, id string, fields domain.ProfileFields) (*domain.Profile, error) {
	setClauses := []string{}
	args := []any{}

	set := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if fields.Username != nil {
		set("username", *fields.Username)
	}
	if fields.Bio != nil {
		set("bio", *fields.Bio)
	}
	if fields.ProfilePictureURL != nil {
		set("profile_picture_url", *fields.ProfilePictureURL)
	}
	if fields.Links != nil {
		set("links", *fields.Links)
	}
	if fields.Theme != nil {
		set("theme", *fields.Theme)
	}
	if fields.Socials != nil {
		set("socials", *fields.Socials)
	}
	if fields.UpdatedAt != nil {
		set("updated_at", *fields.UpdatedAt)
	}

	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE profiles SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), len(args), profileColumns)

	profile := &domain.Profile{}
	err := r.db.GetContext(ctx, profile, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, mapWriteError("replace profile", err)
	}
	return profile, nil
}

func mapWriteError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
		return domain.ErrConflict
	}
	return &domain.StorageError{Op: op, Err: err}
}
