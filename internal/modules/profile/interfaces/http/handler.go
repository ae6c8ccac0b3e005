package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/saransh1220/linkhub/internal/gateway/middleware"
	fileApp "github.com/saransh1220/linkhub/internal/modules/filestorage/application"
	"github.com/saransh1220/linkhub/internal/modules/profile/domain"
	"github.com/saransh1220/linkhub/internal/shared/utils"
)

const (
	avatarField  = "avatar"
	avatarFolder = "avatars"
)

type ProfileService interface {
	GetOrCreateProfile(ctx context.Context, identity domain.Identity) (*domain.Profile, error)
	GetProfile(ctx context.Context, id string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, id string, next domain.Profile) (*domain.Profile, error)
	IsUsernameAvailable(ctx context.Context, candidate, excludingID string) (bool, error)
	GetPublicProfile(ctx context.Context, username string) (*domain.Profile, bool, error)
	SetProfilePicture(ctx context.Context, id, pictureURL string) (*domain.Profile, error)
	AddBlock(ctx context.Context, id string, block domain.ContentBlock) (*domain.Profile, error)
	RemoveBlock(ctx context.Context, id, blockID string) (*domain.Profile, error)
	ReorderBlocks(ctx context.Context, id string, from, to int) (*domain.Profile, error)
	ApplyThemePreset(ctx context.Context, id, presetName string) (*domain.Profile, error)
	ShareLink(ctx context.Context, id string) (string, error)
}

// AvatarStore persists processed avatar images.
type AvatarStore interface {
	UploadAvatar(ctx context.Context, src io.Reader, folder string) (string, string, error)
	Delete(ctx context.Context, key string) error
	DeleteByURL(ctx context.Context, fileURL string) error
}

type ProfileHandler struct {
	service ProfileService
	avatars AvatarStore
	logger  *slog.Logger
}

func NewProfileHandler(service ProfileService, avatars AvatarStore, logger *slog.Logger) *ProfileHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileHandler{service: service, avatars: avatars, logger: logger}
}

// blockView adds the derived player URL to embeddable blocks.
type blockView struct {
	domain.ContentBlock
	EmbedURL string `json:"embedUrl,omitempty"`
}

type profileView struct {
	*domain.Profile
	Links []blockView `json:"links"`
}

// present renders p for a viewer. Click counts are only shown to the owner.
func present(p *domain.Profile, ownerView bool) profileView {
	links := make([]blockView, 0, len(p.Links))
	for _, b := range p.Links {
		if !ownerView {
			b.ClickCount = 0
		}
		links = append(links, blockView{ContentBlock: b, EmbedURL: b.EmbedURL()})
	}
	return profileView{Profile: p, Links: links}
}

// GetMyProfile returns the caller's profile, creating it on first visit.
func (h *ProfileHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	identity := domain.Identity{ID: userID, Email: middleware.EmailFromContext(r.Context())}
	p, err := h.service.GetOrCreateProfile(r.Context(), identity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, present(p, true))
}

type updateProfileRequest struct {
	Username          string         `json:"username"`
	Bio               string         `json:"bio"`
	ProfilePictureURL string         `json:"profile_picture_url"`
	Links             domain.Links   `json:"links"`
	Theme             domain.Theme   `json:"theme"`
	Socials           domain.Socials `json:"socials"`
}

// UpdateMyProfile replaces every editable field of the caller's profile.
func (h *ProfileHandler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	p, err := h.service.UpdateProfile(r.Context(), userID, domain.Profile{
		Username:          req.Username,
		Bio:               req.Bio,
		ProfilePictureURL: req.ProfilePictureURL,
		Links:             req.Links,
		Theme:             req.Theme,
		Socials:           req.Socials,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, present(p, true))
}

// GetPublicProfile serves GET /profiles/{username}. Guests and other users
// see the page without click counts.
func (h *ProfileHandler) GetPublicProfile(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	p, hit, err := h.service.GetPublicProfile(r.Context(), username)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	viewerID, _ := middleware.UserIDFromContext(r.Context())
	utils.WriteJSON(w, http.StatusOK, present(p, viewerID == p.ID))
}

type availabilityResponse struct {
	Username  string `json:"username"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// CheckUsername reports whether a username can be claimed. An authenticated
// caller's own username counts as available.
func (h *ProfileHandler) CheckUsername(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	viewerID, _ := middleware.UserIDFromContext(r.Context())

	available, err := h.service.IsUsernameAvailable(r.Context(), username, viewerID)
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.WriteJSON(w, http.StatusOK, availabilityResponse{Username: username, Reason: verr.Error()})
		return
	case err != nil:
		h.writeError(w, r, err)
		return
	}

	resp := availabilityResponse{Username: username, Available: available}
	if !available {
		resp.Reason = "username is taken"
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// UploadAvatar accepts a multipart image under the "avatar" field, stores a
// square JPEG and points the profile at it.
func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, fileApp.MaxAvatarBytes+(1<<20))
	if err := r.ParseMultipartForm(fileApp.MaxAvatarBytes); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "avatar must be a multipart upload of at most 5MB", nil)
		return
	}
	file, _, err := r.FormFile(avatarField)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "missing avatar file", nil)
		return
	}
	defer file.Close()

	current, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	url, key, err := h.avatars.UploadAvatar(r.Context(), file, avatarFolder)
	switch {
	case errors.Is(err, fileApp.ErrImageTooLarge), errors.Is(err, fileApp.ErrInvalidImage):
		utils.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	case err != nil:
		h.logger.Error("avatar upload failed", "profile_id", userID, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to store avatar", nil)
		return
	}

	p, err := h.service.SetProfilePicture(r.Context(), userID, url)
	if err != nil {
		if delErr := h.avatars.Delete(r.Context(), key); delErr != nil {
			h.logger.Warn("orphaned avatar", "key", key, "error", delErr)
		}
		h.writeError(w, r, err)
		return
	}

	if old := current.ProfilePictureURL; old != "" && old != url {
		if err := h.avatars.DeleteByURL(r.Context(), old); err != nil {
			h.logger.Warn("old avatar not removed", "url", old, "error", err)
		}
	}
	utils.WriteJSON(w, http.StatusOK, present(p, true))
}

func (h *ProfileHandler) ShareLink(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	link, err := h.service.ShareLink(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"shareLink": link})
}

// AddBlock inserts the posted block at the top of the caller's list.
func (h *ProfileHandler) AddBlock(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var block domain.ContentBlock
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&block); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	block.ID = ""
	block.ClickCount = 0

	p, err := h.service.AddBlock(r.Context(), userID, block)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, present(p, true))
}

func (h *ProfileHandler) RemoveBlock(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	p, err := h.service.RemoveBlock(r.Context(), userID, r.PathValue("blockId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, present(p, true))
}

type reorderRequest struct {
	From *int `json:"from"`
	To   *int `json:"to"`
}

// ReorderBlocks moves one block. Out of range indices leave the list as is.
func (h *ProfileHandler) ReorderBlocks(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.From == nil || req.To == nil {
		utils.WriteError(w, http.StatusBadRequest, "from and to are required", nil)
		return
	}

	p, err := h.service.ReorderBlocks(r.Context(), userID, *req.From, *req.To)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, present(p, true))
}

type presetRequest struct {
	Name string `json:"name"`
}

func (h *ProfileHandler) ApplyThemePreset(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req presetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		utils.WriteError(w, http.StatusBadRequest, "preset name is required", nil)
		return
	}

	p, err := h.service.ApplyThemePreset(r.Context(), userID, req.Name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, present(p, true))
}

func (h *ProfileHandler) ListThemePresets(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, domain.ThemePresets())
}

func (h *ProfileHandler) GetDefaultTheme(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, domain.DefaultTheme())
}

func (h *ProfileHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		utils.WriteError(w, http.StatusBadRequest, "validation failed", err)
	case errors.Is(err, domain.ErrProfileNotFound):
		utils.WriteError(w, http.StatusNotFound, "Profile not found", nil)
	case errors.Is(err, domain.ErrConflict):
		utils.WriteError(w, http.StatusConflict, "username is already taken", nil)
	default:
		h.logger.Error("profile request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "internal server error", nil)
	}
}
