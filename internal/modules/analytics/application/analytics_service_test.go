package application_test

import (
	"context"
	"testing"

	"github.com/saransh1220/linkhub/internal/modules/analytics/application"
	profile "github.com/saransh1220/linkhub/internal/modules/profile/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsService_SummaryAndTop(t *testing.T) {
	svc := application.NewAnalyticsService(seeded(t), nil, nil)

	s, err := svc.Summary(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 4, s.TotalClicks)
	require.NotNil(t, s.MostClickedLink)
	assert.Equal(t, "l1", s.MostClickedLink.ID)
	assert.Equal(t, map[string]int{"link": 1, "header": 1}, s.TypeDistribution)

	top, err := svc.TopLinks(context.Background(), "p1", 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "l1", top[0].ID)

	_, err = svc.Summary(context.Background(), "nobody")
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)
	_, err = svc.TopLinks(context.Background(), "nobody", 5)
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)
}

func TestAnalyticsService_Reset(t *testing.T) {
	repo := seeded(t)
	rec := newRecorder()
	svc := application.NewAnalyticsService(repo, rec, nil)

	_, err := svc.Reset(context.Background(), "p1", "missing")
	assert.ErrorIs(t, err, application.ErrLinkNotFound)

	s, err := svc.Reset(context.Background(), "p1", "l1")
	require.NoError(t, err)
	assert.Zero(t, s.TotalClicks)

	p, _ := repo.GetByID(context.Background(), "p1")
	assert.Zero(t, p.Links[0].ClickCount)
	assert.False(t, p.UpdatedAt.IsZero())
	assert.Equal(t, []string{"jane"}, rec.invalidated)

	s, err = svc.Reset(context.Background(), "p1", "")
	require.NoError(t, err)
	assert.Zero(t, s.TotalClicks)
}
