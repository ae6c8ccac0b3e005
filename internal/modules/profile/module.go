package profile

import (
	"log/slog"

	"github.com/saransh1220/linkhub/internal/modules/profile/application"
	"github.com/saransh1220/linkhub/internal/modules/profile/domain"
	"github.com/saransh1220/linkhub/internal/modules/profile/infrastructure/cache"
	profile_http "github.com/saransh1220/linkhub/internal/modules/profile/interfaces/http"
	"github.com/saransh1220/linkhub/internal/shared/infrastructure/logging"
)

// Module represents the Profile module
type Module struct {
	repo    domain.ProfileRepository
	cache   application.ProfileCache
	service *application.ProfileService
	handler *profile_http.ProfileHandler
}

// NewModule wires the profile service over repo. A nil profileCache disables caching.
func NewModule(repo domain.ProfileRepository, profileCache application.ProfileCache, avatars profile_http.AvatarStore, publicBaseURL string, logger *slog.Logger) *Module {
	logger = logging.WithComponent(logger, "profile")
	if profileCache == nil {
		profileCache = cache.Noop{}
	}
	service := application.NewProfileService(repo, profileCache, logger, publicBaseURL)

	return &Module{
		repo:    repo,
		cache:   profileCache,
		service: service,
		handler: profile_http.NewProfileHandler(service, avatars, logger),
	}
}

// Repository is shared with modules that read or patch profile documents.
func (m *Module) Repository() domain.ProfileRepository {
	return m.repo
}

func (m *Module) Cache() application.ProfileCache {
	return m.cache
}

func (m *Module) Service() *application.ProfileService {
	return m.service
}

func (m *Module) HTTPHandler() *profile_http.ProfileHandler {
	return m.handler
}
