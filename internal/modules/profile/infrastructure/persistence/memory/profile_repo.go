// Package memory is an in-process ProfileRepository used when PROFILE_STORE=memory
// and by service tests that need real store semantics.
package memory

import (
	"context"
	"sync"

	"github.com/saransh1220/linkhub/internal/modules/profile/domain"
)

type ProfileRepository struct {
	mu         sync.RWMutex
	byID       map[string]*domain.Profile
	byUsername map[string]string
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		byID:       make(map[string]*domain.Profile),
		byUsername: make(map[string]string),
	}
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p.Clone(), nil
}

func (r *ProfileRepository) GetByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return r.byID[id].Clone(), nil
}

func (r *ProfileRepository) Insert(ctx context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byID[profile.ID]; taken {
		return domain.ErrConflict
	}
	if _, taken := r.byUsername[profile.Username]; taken {
		return domain.ErrConflict
	}

	r.byID[profile.ID] = profile.Clone()
	r.byUsername[profile.Username] = profile.ID
	return nil
}

func (r *ProfileRepository) Replace(ctx context.Context, id string, fields domain.ProfileFields) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}

	if fields.Username != nil && *fields.Username != current.Username {
		if _, taken := r.byUsername[*fields.Username]; taken {
			return nil, domain.ErrConflict
		}
	}

	updated := current.Clone()
	updated.Apply(fields)

	if updated.Username != current.Username {
		delete(r.byUsername, current.Username)
		r.byUsername[updated.Username] = id
	}
	r.byID[id] = updated
	return updated.Clone(), nil
}

// Len reports how many profiles are stored.
func (r *ProfileRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
