package analytics

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/saransh1220/linkhub/internal/modules/analytics/application"
	"github.com/saransh1220/linkhub/internal/modules/analytics/infrastructure/metrics"
	"github.com/saransh1220/linkhub/internal/modules/analytics/infrastructure/websocket"
	"github.com/saransh1220/linkhub/internal/modules/analytics/interfaces/http"
	profileDomain "github.com/saransh1220/linkhub/internal/modules/profile/domain"
	"github.com/saransh1220/linkhub/internal/shared/infrastructure/logging"
)

type Module struct {
	ClickService     *application.ClickService
	AnalyticsService *application.AnalyticsService
	AnalyticsHandler *http.AnalyticsHandler
	hub              *websocket.Hub
}

// NewModule wires analytics on top of the profile store. Clicks invalidate
// cache entries through cache, which may be nil.
func NewModule(profileRepo profileDomain.ProfileRepository, cache application.CacheInvalidator, reg prometheus.Registerer, logger *slog.Logger) *Module {
	logger = logging.WithComponent(logger, "analytics")
	hub := websocket.NewHub(logger)

	clicks := application.NewClickService(profileRepo, cache, hub, metrics.NewClickMetrics(reg), logger)
	owner := application.NewAnalyticsService(profileRepo, cache, logger)

	return &Module{
		ClickService:     clicks,
		AnalyticsService: owner,
		AnalyticsHandler: http.NewAnalyticsHandler(clicks, owner, hub, logger),
		hub:              hub,
	}
}

// Start runs the live feed hub until Stop.
func (m *Module) Start() {
	go m.hub.Run()
}

func (m *Module) Stop() {
	m.hub.Stop()
}
