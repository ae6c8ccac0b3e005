package auth

import (
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/saransh1220/linkhub/internal/modules/auth/application"
	"github.com/saransh1220/linkhub/internal/modules/auth/infrastructure/persistence/postgres"
	auth_http "github.com/saransh1220/linkhub/internal/modules/auth/interfaces/http"
	"github.com/saransh1220/linkhub/internal/shared/infrastructure/logging"
)

// Module represents the Auth module
type Module struct {
	service *application.AuthService
	handler *auth_http.AuthHandler
}

func NewModule(db *sqlx.DB, jwtSecret string, jwtExpiry time.Duration, googleClientID string, logger *slog.Logger) *Module {
	logger = logging.WithComponent(logger, "auth")
	repository := postgres.NewAccountRepository(db)
	service := application.NewAuthService(repository, jwtSecret, jwtExpiry, googleClientID, logger)

	return &Module{
		service: service,
		handler: auth_http.NewAuthHandler(service, logger),
	}
}

func (m *Module) Service() *application.AuthService {
	return m.service
}

func (m *Module) HTTPHandler() *auth_http.AuthHandler {
	return m.handler
}
