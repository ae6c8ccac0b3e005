package application

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/saransh1220/linkhub/internal/modules/analytics/domain"
	profile "github.com/saransh1220/linkhub/internal/modules/profile/domain"
)

// ErrLinkNotFound is returned when a reset names a block the profile lacks.
var ErrLinkNotFound = errors.New("link not found")

// AnalyticsService serves the owner's dashboard.
type AnalyticsService struct {
	repo   profile.ProfileRepository
	cache  CacheInvalidator
	logger *slog.Logger
	now    func() time.Time
}

func NewAnalyticsService(repo profile.ProfileRepository, cache CacheInvalidator, logger *slog.Logger) *AnalyticsService {
	if cache == nil {
		cache = nopInvalidator{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyticsService{
		repo:   repo,
		cache:  cache,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *AnalyticsService) Summary(ctx context.Context, ownerID string) (*domain.Summary, error) {
	p, err := s.repo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	summary := domain.Summarize(p)
	return &summary, nil
}

func (s *AnalyticsService) TopLinks(ctx context.Context, ownerID string, limit int) ([]domain.LinkStat, error) {
	p, err := s.repo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return domain.TopLinks(p.Links, limit), nil
}

// Reset zeroes the click count of linkID, or of every block when linkID
// is empty, and returns the fresh summary.
func (s *AnalyticsService) Reset(ctx context.Context, ownerID, linkID string) (*domain.Summary, error) {
	p, err := s.repo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if linkID != "" {
		if _, ok := p.Links.Find(linkID); !ok {
			return nil, ErrLinkNotFound
		}
	}

	links := profile.ResetClicks(p.Links, linkID)
	now := s.now()
	updated, err := s.repo.Replace(ctx, ownerID, profile.ProfileFields{Links: &links, UpdatedAt: &now})
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, updated.Username)
	s.logger.Info("click counts reset", "profile_id", ownerID, "link_id", linkID)

	summary := domain.Summarize(updated)
	return &summary, nil
}
