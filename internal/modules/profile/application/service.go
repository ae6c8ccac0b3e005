package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saransh1220/linkhub/internal/modules/profile/domain"
)

const (
	DefaultBio = "Welcome to my profile!"

	// Attempts at inserting a new profile when the generated username collides.
	maxCreateAttempts = 3
)

// ProfileCache holds public profiles keyed by username.
type ProfileCache interface {
	Get(ctx context.Context, username string) (*domain.Profile, bool)
	Set(ctx context.Context, profile *domain.Profile)
	Invalidate(ctx context.Context, usernames ...string)
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (*domain.Profile, bool) { return nil, false }
func (noopCache) Set(context.Context, *domain.Profile)                {}
func (noopCache) Invalidate(context.Context, ...string)               {}

type Option func(*ProfileService)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *ProfileService) { s.now = now }
}

// WithUsernameSuffix overrides the random suffix appended to generated usernames.
func WithUsernameSuffix(suffix func() int) Option {
	return func(s *ProfileService) { s.suffix = suffix }
}

// ProfileService is the only component that talks to the profile store on
// behalf of owners.
type ProfileService struct {
	repo          domain.ProfileRepository
	cache         ProfileCache
	logger        *slog.Logger
	publicBaseURL string
	now           func() time.Time
	suffix        func() int
}

func NewProfileService(repo domain.ProfileRepository, cache ProfileCache, logger *slog.Logger, publicBaseURL string, opts ...Option) *ProfileService {
	if logger == nil {
		logger = slog.Default()
	}
	if cache == nil {
		cache = noopCache{}
	}
	s := &ProfileService{
		repo:          repo,
		cache:         cache,
		logger:        logger,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		now:           func() time.Time { return time.Now().UTC() },
		suffix:        func() int { return 1000 + rand.IntN(9000) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOrCreateProfile returns the identity's profile, creating a default one
// on first login. Concurrent first logins converge on a single stored profile.
func (s *ProfileService) GetOrCreateProfile(ctx context.Context, identity domain.Identity) (*domain.Profile, error) {
	if identity.ID == "" {
		return nil, &domain.ValidationError{Field: "id", Reason: "is required"}
	}

	profile, err := s.repo.GetByID(ctx, identity.ID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}

	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		profile = s.newDefaultProfile(identity)
		err = s.repo.Insert(ctx, profile)
		if err == nil {
			s.logger.Info("profile created", "profile_id", profile.ID, "username", profile.Username)
			return profile, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}

		// Either another request created this identity's profile first, or the
		// generated username belongs to someone else.
		existing, getErr := s.repo.GetByID(ctx, identity.ID)
		if getErr == nil {
			return existing, nil
		}
		if !errors.Is(getErr, domain.ErrProfileNotFound) {
			return nil, getErr
		}
		s.logger.Debug("generated username taken, retrying", "username", profile.Username)
	}

	return nil, fmt.Errorf("create profile for %s: %w", identity.ID, domain.ErrConflict)
}

func (s *ProfileService) newDefaultProfile(identity domain.Identity) *domain.Profile {
	now := s.now()
	return &domain.Profile{
		ID:        identity.ID,
		Username:  domain.UsernameFromEmail(identity.Email, s.suffix()),
		Bio:       DefaultBio,
		Links:     domain.Links{},
		Theme:     domain.DefaultTheme(),
		Socials:   domain.Socials{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *ProfileService) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile validates next and fully replaces the owner-editable fields
// of profile id with it.
func (s *ProfileService) UpdateProfile(ctx context.Context, id string, next domain.Profile) (*domain.Profile, error) {
	next.Normalize()
	for i := range next.Links {
		if next.Links[i].ID == "" {
			next.Links[i].ID = uuid.NewString()
		}
	}
	if err := next.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Replace(ctx, id, next.Fields(s.now()))
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, current.Username, updated.Username)
	return updated, nil
}

// IsUsernameAvailable reports whether candidate is free, treating the
// profile excludingID as not holding it. Malformed candidates are never available.
func (s *ProfileService) IsUsernameAvailable(ctx context.Context, candidate, excludingID string) (bool, error) {
	if err := domain.ValidateUsername(candidate); err != nil {
		return false, err
	}

	holder, err := s.repo.GetByUsername(ctx, candidate)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return excludingID != "" && holder.ID == excludingID, nil
}

// GetPublicProfile looks a profile up by exact username, serving from cache
// when possible. The second result reports a cache hit.
func (s *ProfileService) GetPublicProfile(ctx context.Context, username string) (*domain.Profile, bool, error) {
	if profile, ok := s.cache.Get(ctx, username); ok {
		return profile, true, nil
	}

	profile, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, false, err
	}
	s.cache.Set(ctx, profile)
	return profile, false, nil
}

// SetProfilePicture records a new avatar URL and returns the updated profile.
func (s *ProfileService) SetProfilePicture(ctx context.Context, id, pictureURL string) (*domain.Profile, error) {
	now := s.now()
	updated, err := s.repo.Replace(ctx, id, domain.ProfileFields{ProfilePictureURL: &pictureURL, UpdatedAt: &now})
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, updated.Username)
	return updated, nil
}

// AddBlock puts a new block at the top of the owner's list.
func (s *ProfileService) AddBlock(ctx context.Context, id string, block domain.ContentBlock) (*domain.Profile, error) {
	return s.editLinks(ctx, id, func(links domain.Links) domain.Links {
		if block.ID == "" {
			block.ID = uuid.NewString()
		}
		return domain.PrependBlock(links, block)
	})
}

func (s *ProfileService) RemoveBlock(ctx context.Context, id, blockID string) (*domain.Profile, error) {
	return s.editLinks(ctx, id, func(links domain.Links) domain.Links {
		return domain.RemoveBlock(links, blockID)
	})
}

func (s *ProfileService) ReorderBlocks(ctx context.Context, id string, from, to int) (*domain.Profile, error) {
	return s.editLinks(ctx, id, func(links domain.Links) domain.Links {
		return domain.Reorder(links, from, to)
	})
}

func (s *ProfileService) editLinks(ctx context.Context, id string, edit func(domain.Links) domain.Links) (*domain.Profile, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next := *current
	next.Links = edit(current.Links)
	return s.UpdateProfile(ctx, id, next)
}

// ApplyThemePreset swaps the owner's theme for a named preset.
func (s *ProfileService) ApplyThemePreset(ctx context.Context, id, presetName string) (*domain.Profile, error) {
	preset, ok := domain.FindThemePreset(presetName)
	if !ok {
		return nil, &domain.ValidationError{Field: "preset", Reason: "is not a known theme preset"}
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next := *current
	next.Theme = preset.Theme
	return s.UpdateProfile(ctx, id, next)
}

// ShareLink returns the public URL of the owner's profile page.
func (s *ProfileService) ShareLink(ctx context.Context, id string) (string, error) {
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if profile.Username == "" {
		return "", &domain.ValidationError{Field: "username", Reason: "is required to share a profile"}
	}
	return s.publicBaseURL + "/profile/" + profile.Username, nil
}
