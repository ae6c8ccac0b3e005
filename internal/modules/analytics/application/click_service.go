package application

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/saransh1220/linkhub/internal/modules/analytics/domain"
	profile "github.com/saransh1220/linkhub/internal/modules/profile/domain"
)

// CacheInvalidator drops cached public profiles.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, usernames ...string)
}

// Notifier delivers a payload to a profile owner's live connections.
type Notifier interface {
	SendToUser(userID string, message []byte) bool
}

// OutcomeRecorder counts click requests by outcome.
type OutcomeRecorder interface {
	Observe(outcome domain.Outcome)
}

type nopInvalidator struct{}

func (nopInvalidator) Invalidate(context.Context, ...string) {}

type nopNotifier struct{}

func (nopNotifier) SendToUser(string, []byte) bool { return false }

type nopRecorder struct{}

func (nopRecorder) Observe(domain.Outcome) {}

// ClickService records anonymous link clicks. The increment is a
// read-modify-write of the whole links document, so concurrent clicks on
// the same profile may lose updates.
type ClickService struct {
	repo     profile.ProfileRepository
	cache    CacheInvalidator
	notifier Notifier
	metrics  OutcomeRecorder
	logger   *slog.Logger
}

func NewClickService(repo profile.ProfileRepository, cache CacheInvalidator, notifier Notifier, metrics OutcomeRecorder, logger *slog.Logger) *ClickService {
	if cache == nil {
		cache = nopInvalidator{}
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if metrics == nil {
		metrics = nopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ClickService{repo: repo, cache: cache, notifier: notifier, metrics: metrics, logger: logger}
}

// TrackClick increments the click counter of req.LinkID on req.ProfileID.
// An unknown link id is accepted and changes nothing.
func (s *ClickService) TrackClick(ctx context.Context, req domain.ClickRequest) (outcome domain.Outcome, err error) {
	defer func() { s.metrics.Observe(outcome) }()

	profileID := strings.TrimSpace(req.ProfileID)
	linkID := strings.TrimSpace(req.LinkID)
	if profileID == "" || linkID == "" {
		return domain.OutcomeBadRequest, domain.ErrMissingIDs
	}

	p, err := s.repo.GetByID(ctx, profileID)
	if err != nil {
		return classify(err), err
	}

	if _, ok := p.Links.Find(linkID); !ok {
		return domain.OutcomeUnknownLink, nil
	}

	links := profile.IncrementClick(p.Links, linkID)
	updated, err := s.repo.Replace(ctx, profileID, profile.ProfileFields{Links: &links})
	if err != nil {
		return classify(err), err
	}

	s.cache.Invalidate(ctx, p.Username)
	if updated.Username != p.Username {
		s.cache.Invalidate(ctx, updated.Username)
	}

	if block, ok := updated.Links.Find(linkID); ok {
		s.publish(domain.ClickEvent{Type: "click", ProfileID: profileID, LinkID: linkID, ClickCount: block.ClickCount})
	}
	return domain.OutcomeOK, nil
}

func (s *ClickService) publish(event domain.ClickEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("encode click event", "error", err)
		return
	}
	s.notifier.SendToUser(event.ProfileID, payload)
}

func classify(err error) domain.Outcome {
	if errors.Is(err, profile.ErrProfileNotFound) {
		return domain.OutcomeNotFound
	}
	return domain.OutcomeError
}
