package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/saransh1220/linkhub/internal/gateway"
	"github.com/saransh1220/linkhub/internal/gateway/middleware"
	"github.com/saransh1220/linkhub/internal/modules/analytics"
	"github.com/saransh1220/linkhub/internal/modules/auth"
	"github.com/saransh1220/linkhub/internal/modules/filestorage"
	"github.com/saransh1220/linkhub/internal/modules/profile"
	"github.com/saransh1220/linkhub/internal/modules/profile/application"
	profileDomain "github.com/saransh1220/linkhub/internal/modules/profile/domain"
	"github.com/saransh1220/linkhub/internal/modules/profile/infrastructure/cache"
	"github.com/saransh1220/linkhub/internal/modules/profile/infrastructure/persistence/memory"
	"github.com/saransh1220/linkhub/internal/modules/profile/infrastructure/persistence/postgres"
	"github.com/saransh1220/linkhub/internal/shared/infrastructure/config"
	"github.com/saransh1220/linkhub/internal/shared/infrastructure/database"
	"github.com/saransh1220/linkhub/internal/shared/infrastructure/logging"
	"github.com/saransh1220/linkhub/pkg/migration"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Log.Level)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("connecting to database", "host", cfg.Database.Host, "db", cfg.Database.DBName)
	db, err := database.NewPostgresDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	runner := migration.NewRunner(migration.Config{
		MigrationsPath: cfg.Store.MigrationsPath,
		DatabaseURL:    cfg.Database.URL(),
		Logger:         logger,
	})
	if err := runner.AutoMigrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	profileRepo, err := newProfileRepository(cfg.Store.Driver, db)
	if err != nil {
		return err
	}
	profileCache, closeCache := newProfileCache(ctx, cfg.Redis, logger)
	defer closeCache()

	files, err := filestorage.NewModule(ctx, cfg.FileStorage)
	if err != nil {
		return err
	}

	authModule := auth.NewModule(db, cfg.JWT.Secret, cfg.JWT.Expiry, cfg.Google.ClientID, logger)
	profileModule := profile.NewModule(profileRepo, profileCache, files.Service(), cfg.Server.PublicBaseURL, logger)
	analyticsModule := analytics.NewModule(profileModule.Repository(), profileModule.Cache(), prometheus.DefaultRegisterer, logger)
	analyticsModule.Start()
	defer analyticsModule.Stop()

	limiter := middleware.NewRateLimiter(cfg.ClickCounter.RatePerSecond, cfg.ClickCounter.Burst, 10*time.Minute)
	if err := limiter.TrustProxies(cfg.ClickCounter.TrustedProxies...); err != nil {
		return fmt.Errorf("click limiter: %w", err)
	}
	go limiter.RunJanitor(time.Minute)
	defer limiter.Stop()

	handler := newHandler(cfg, gateway.RouterConfig{
		AuthHandler:      authModule.HTTPHandler(),
		AuthMiddleware:   middleware.NewAuthMiddleware(cfg.JWT.Secret),
		ProfileHandler:   profileModule.HTTPHandler(),
		AnalyticsHandler: analyticsModule.AnalyticsHandler,
		ClickLimiter:     limiter,
		UploadsDir:       files.LocalRoot(),
	})

	return gateway.NewServer(cfg.Server.Port, handler, cfg.Server.ShutdownTimeout, logger).Start(ctx)
}

func newProfileRepository(driver string, db *sqlx.DB) (profileDomain.ProfileRepository, error) {
	switch driver {
	case "postgres":
		return postgres.NewProfileRepository(db), nil
	case "memory":
		return memory.NewProfileRepository(), nil
	default:
		return nil, fmt.Errorf("unknown PROFILE_STORE %q (want postgres or memory)", driver)
	}
}

// newProfileCache connects to redis when enabled. An unreachable redis only
// disables caching.
func newProfileCache(ctx context.Context, cfg database.RedisConfig, logger *slog.Logger) (application.ProfileCache, func()) {
	if !cfg.Enabled {
		return cache.Noop{}, func() {}
	}
	client, err := database.NewRedis(ctx, cfg)
	if err != nil {
		logger.Warn("redis unavailable, profile cache disabled", "addr", cfg.Addr(), "error", err)
		return cache.Noop{}, func() {}
	}
	logger.Info("redis connected", "addr", cfg.Addr())
	return cache.NewRedisProfileCache(client, cfg.TTL, logger), func() { client.Close() }
}

func newHandler(cfg config.Config, routes gateway.RouterConfig) http.Handler {
	mux := gateway.SetupRoutes(routes)
	return middleware.CORSMiddleware(middleware.PrometheusMiddleware(mux), cfg.Server.AllowedOrigins)
}
