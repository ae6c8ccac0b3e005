package gateway

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/saransh1220/linkhub/internal/gateway/middleware"
	analytics_http "github.com/saransh1220/linkhub/internal/modules/analytics/interfaces/http"
	auth_http "github.com/saransh1220/linkhub/internal/modules/auth/interfaces/http"
	profile_http "github.com/saransh1220/linkhub/internal/modules/profile/interfaces/http"
	"github.com/saransh1220/linkhub/internal/shared/utils"
)

// RouterConfig holds all the handlers and middleware needed for routing
type RouterConfig struct {
	AuthHandler      *auth_http.AuthHandler
	AuthMiddleware   *middleware.AuthMiddleWare
	ProfileHandler   *profile_http.ProfileHandler
	AnalyticsHandler *analytics_http.AnalyticsHandler

	// ClickLimiter throttles the public click counter. Nil disables it.
	ClickLimiter *middleware.RateLimiter
	// UploadsDir is served under /uploads/ when avatars are stored locally.
	UploadsDir string
	// MetricsHandler defaults to promhttp.Handler().
	MetricsHandler http.Handler
}

// SetupRoutes creates and configures all application routes
func SetupRoutes(config RouterConfig) *http.ServeMux {
	r := NewRouter(config.AuthMiddleware)

	r.Public("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	metrics := config.MetricsHandler
	if metrics == nil {
		metrics = promhttp.Handler()
	}
	r.Handle("GET /metrics", metrics)

	// Auth
	r.Public("POST /auth/register", config.AuthHandler.Register)
	r.Public("POST /auth/login", config.AuthHandler.Login)
	r.Public("POST /auth/google", config.AuthHandler.GoogleLogin)
	r.Protected("GET /auth/me", config.AuthHandler.Me)

	// Profile
	r.Protected("GET /me/profile", config.ProfileHandler.GetMyProfile)
	r.Protected("PUT /me/profile", config.ProfileHandler.UpdateMyProfile)
	r.Protected("POST /me/profile/avatar", config.ProfileHandler.UploadAvatar)
	r.Protected("GET /me/profile/share-link", config.ProfileHandler.ShareLink)
	r.Protected("POST /me/profile/blocks", config.ProfileHandler.AddBlock)
	r.Protected("POST /me/profile/blocks/reorder", config.ProfileHandler.ReorderBlocks)
	r.Protected("DELETE /me/profile/blocks/{blockId}", config.ProfileHandler.RemoveBlock)
	r.Protected("PUT /me/profile/theme/preset", config.ProfileHandler.ApplyThemePreset)
	r.Optional("GET /profiles/{username}", config.ProfileHandler.GetPublicProfile)
	r.Optional("GET /usernames/{username}/availability", config.ProfileHandler.CheckUsername)
	r.Public("GET /themes/presets", config.ProfileHandler.ListThemePresets)
	r.Public("GET /themes/default", config.ProfileHandler.GetDefaultTheme)

	// Analytics
	var click http.Handler = http.HandlerFunc(config.AnalyticsHandler.TrackClick)
	if config.ClickLimiter != nil {
		click = config.ClickLimiter.Middleware(click)
	}
	r.Handle("POST /click-counter", click)
	r.Protected("GET /me/analytics", config.AnalyticsHandler.GetSummary)
	r.Protected("GET /me/analytics/top", config.AnalyticsHandler.GetTopLinks)
	r.Protected("POST /me/analytics/reset", config.AnalyticsHandler.ResetClicks)
	r.Protected("GET /ws/clicks", config.AnalyticsHandler.Subscribe)

	if config.UploadsDir != "" {
		r.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(config.UploadsDir))))
	}

	return r.Mux()
}
