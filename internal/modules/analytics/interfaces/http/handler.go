package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/saransh1220/linkhub/internal/gateway/middleware"
	"github.com/saransh1220/linkhub/internal/modules/analytics/application"
	"github.com/saransh1220/linkhub/internal/modules/analytics/domain"
	"github.com/saransh1220/linkhub/internal/modules/analytics/infrastructure/websocket"
	profile "github.com/saransh1220/linkhub/internal/modules/profile/domain"
	"github.com/saransh1220/linkhub/internal/shared/utils"
)

type ClickTracker interface {
	TrackClick(ctx context.Context, req domain.ClickRequest) (domain.Outcome, error)
}

type OwnerAnalytics interface {
	Summary(ctx context.Context, ownerID string) (*domain.Summary, error)
	TopLinks(ctx context.Context, ownerID string, limit int) ([]domain.LinkStat, error)
	Reset(ctx context.Context, ownerID, linkID string) (*domain.Summary, error)
}

type AnalyticsHandler struct {
	clicks    ClickTracker
	analytics OwnerAnalytics
	hub       *websocket.Hub
	logger    *slog.Logger
}

func NewAnalyticsHandler(clicks ClickTracker, analytics OwnerAnalytics, hub *websocket.Hub, logger *slog.Logger) *AnalyticsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyticsHandler{clicks: clicks, analytics: analytics, hub: hub, logger: logger}
}

// TrackClick is the public click counter. Every failure mode has its own
// status and an {"error": ...} body.
func (h *AnalyticsHandler) TrackClick(w http.ResponseWriter, r *http.Request) {
	var req domain.ClickRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, domain.ErrMissingIDs.Error(), nil)
		return
	}

	outcome, err := h.clicks.TrackClick(r.Context(), req)
	switch outcome {
	case domain.OutcomeOK, domain.OutcomeUnknownLink:
		utils.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
	case domain.OutcomeBadRequest:
		utils.WriteError(w, http.StatusBadRequest, domain.ErrMissingIDs.Error(), nil)
	case domain.OutcomeNotFound:
		utils.WriteError(w, http.StatusNotFound, "Profile not found", nil)
	default:
		h.logger.Error("click counter failed", "profile_id", req.ProfileID, "link_id", req.LinkID, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update click count", nil)
	}
}

func (h *AnalyticsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	summary, err := h.analytics.Summary(r.Context(), ownerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}

func (h *AnalyticsHandler) GetTopLinks(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	limit := domain.DefaultTopLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		v, err := strconv.Atoi(l)
		if err != nil || v <= 0 || v > domain.MaxTopLimit {
			utils.WriteError(w, http.StatusBadRequest, "limit must be between 1 and 50", nil)
			return
		}
		limit = v
	}

	top, err := h.analytics.TopLinks(r.Context(), ownerID, limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, top)
}

type resetRequest struct {
	LinkID string `json:"linkId"`
}

func (h *AnalyticsHandler) ResetClicks(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	// An empty body resets every block.
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	summary, err := h.analytics.Reset(r.Context(), ownerID, req.LinkID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}

// Subscribe attaches the caller to their live click feed.
func (h *AnalyticsHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	websocket.ServeWs(h.hub, w, r, ownerID)
}

func (h *AnalyticsHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, profile.ErrProfileNotFound):
		utils.WriteError(w, http.StatusNotFound, "Profile not found", nil)
	case errors.Is(err, application.ErrLinkNotFound):
		utils.WriteError(w, http.StatusNotFound, "Link not found", nil)
	default:
		h.logger.Error("analytics request failed", "path", r.URL.Path, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "internal server error", nil)
	}
}
