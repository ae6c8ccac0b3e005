package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/saransh1220/linkhub/internal/modules/analytics/domain"
	"github.com/stretchr/testify/assert"
)

func TestClickMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewClickMetrics(reg)

	m.Observe(domain.OutcomeOK)
	m.Observe(domain.OutcomeOK)
	m.Observe(domain.OutcomeNotFound)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.clicks.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.clicks.WithLabelValues("not_found")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.clicks.WithLabelValues("error")))

	// every outcome is exported from the start
	assert.Equal(t, 5, testutil.CollectAndCount(reg, "linkhub_link_clicks_total"))
}
