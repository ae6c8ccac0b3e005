package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/saransh1220/linkhub/internal/shared/infrastructure/database"
)

const defaultJWTSecret = "default-dev-secret"

// Config holds all configuration for the application
type Config struct {
	Env          string
	Server       ServerConfig
	Database     database.PostgresConfig
	Store        StoreConfig
	Redis        database.RedisConfig
	JWT          JWTConfig
	Google       GoogleConfig
	FileStorage  FileStorageConfig
	ClickCounter ClickCounterConfig
	Log          LogConfig
}

// GoogleConfig holds Google OAuth configuration
type GoogleConfig struct {
	ClientID string
}

type ServerConfig struct {
	Port            string
	AllowedOrigins  string
	PublicBaseURL   string // frontend origin used for share links
	ShutdownTimeout time.Duration
}

// StoreConfig selects the profile store backend.
type StoreConfig struct {
	Driver         string // postgres | memory
	MigrationsPath string
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// FileStorageConfig holds avatar storage configuration
type FileStorageConfig struct {
	UseS3            bool
	S3Region         string
	S3Endpoint       string
	S3PublicEndpoint string
	S3AccessKey      string
	S3SecretKey      string
	S3BucketName     string
	S3UseSSL         bool
	LocalPath        string
	LocalBaseURL     string
}

// ClickCounterConfig bounds anonymous click traffic per client.
type ClickCounterConfig struct {
	RatePerSecond  float64
	Burst          int
	TrustedProxies []string
}

type LogConfig struct {
	Level string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	port := getEnv("PORT", "8080")
	cfg := Config{
		Env: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port:            port,
			AllowedOrigins:  getEnv("ALLOWED_ORIGINS", "http://localhost:4200"),
			PublicBaseURL:   strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:4200"), "/"),
			ShutdownTimeout: parseDuration(getEnv("SHUTDOWN_TIMEOUT", "20s"), 20*time.Second),
		},
		Database: database.PostgresConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "linkhub"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Store: StoreConfig{
			Driver:         getEnv("PROFILE_STORE", "postgres"),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "db/migrations"),
		},
		Redis: database.RedisConfig{
			Enabled:  getEnv("REDIS_ENABLED", "true") == "true",
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
			TTL:      parseDuration(getEnv("PROFILE_CACHE_TTL", "10m"), 10*time.Minute),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", defaultJWTSecret),
			Expiry: parseDuration(getEnv("JWT_EXPIRATION", "24h"), 24*time.Hour),
		},
		Google: GoogleConfig{
			ClientID: getEnv("GOOGLE_CLIENT_ID", ""),
		},
		FileStorage: FileStorageConfig{
			UseS3:            getEnv("STORAGE_DRIVER", "local") == "s3",
			S3Region:         getEnv("S3_REGION", "us-east-1"),
			S3Endpoint:       getEnv("S3_ENDPOINT", ""),
			S3PublicEndpoint: getEnv("S3_PUBLIC_ENDPOINT", getEnv("S3_ENDPOINT", "")),
			S3AccessKey:      getEnv("S3_ACCESS_KEY", ""),
			S3SecretKey:      getEnv("S3_SECRET_KEY", ""),
			S3BucketName:     getEnv("S3_BUCKET", ""),
			S3UseSSL:         getEnv("S3_USE_SSL", "true") == "true",
			LocalPath:        getEnv("LOCAL_STORAGE_DIR", "./uploads"),
			LocalBaseURL:     getEnv("LOCAL_STORAGE_URL", "http://localhost:"+port+"/uploads"),
		},
		ClickCounter: ClickCounterConfig{
			RatePerSecond:  parseFloat(getEnv("CLICK_RATE_PER_SEC", "5"), 5),
			Burst:          parseInt(getEnv("CLICK_BURST", "20"), 20),
			TrustedProxies: parseList(getEnv("TRUSTED_PROXIES", "")),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if cfg.Env == "production" && cfg.JWT.Secret == defaultJWTSecret {
		return cfg, errors.New("JWT_SECRET is required in production")
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}

func parseInt(value string, defaultValue int) int {
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	return defaultValue
}

func parseFloat(value string, defaultValue float64) float64 {
	if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
		return f
	}
	return defaultValue
}

func parseList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
