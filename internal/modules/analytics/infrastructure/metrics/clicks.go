package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/saransh1220/linkhub/internal/modules/analytics/domain"
)

// ClickMetrics counts click counter requests by outcome.
type ClickMetrics struct {
	clicks *prometheus.CounterVec
}

// NewClickMetrics registers the counter with reg. Pass
// prometheus.DefaultRegisterer to expose it on /metrics.
func NewClickMetrics(reg prometheus.Registerer) *ClickMetrics {
	m := &ClickMetrics{
		clicks: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "linkhub_link_clicks_total",
			Help: "Link click requests by outcome.",
		}, []string{"outcome"}),
	}
	for _, o := range []domain.Outcome{
		domain.OutcomeOK, domain.OutcomeBadRequest, domain.OutcomeNotFound,
		domain.OutcomeError, domain.OutcomeUnknownLink,
	} {
		m.clicks.WithLabelValues(string(o))
	}
	return m
}

func (m *ClickMetrics) Observe(outcome domain.Outcome) {
	m.clicks.WithLabelValues(string(outcome)).Inc()
}
