package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultClientFetchLimit is the page size used to load every client in one request.
	// The API has no "fetch all" endpoint, so the admin asks for an upper bound instead.
	DefaultClientFetchLimit = 1000
	// MaxClientFetchLimit mirrors the upper bound accepted by GET /api/clients
	MaxClientFetchLimit = 1000
)

type Config struct {
	ServerPort  string
	DBPath      string
	Environment string
	// Logging
	LogLevel  string
	LogFormat string // console or json
	// Admin -> API
	APIBaseURL       string
	APIKey           string
	APITimeout       time.Duration
	ClientFetchLimit int
	// Other
	AllowedOrigins   []string
	AppURL           string
	TursoDatabaseURL string
	TursoAuthToken   string
	// Invoice exports
	ExportDir string
	// Cloudflare R2 Storage
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using system environment variables")
	}

	environment := getEnv("ENVIRONMENT", "development")
	serverPort := getEnv("SERVER_PORT", "8080")

	logLevel := "debug"
	logFormat := "console"
	if environment == "production" {
		logLevel = "info"
		logFormat = "json"
	}

	return &Config{
		ServerPort:        serverPort,
		DBPath:            getEnv("DB_PATH", "db/app.db"),
		Environment:       environment,
		LogLevel:          getEnv("LOG_LEVEL", logLevel),
		LogFormat:         getEnv("LOG_FORMAT", logFormat),
		APIBaseURL:        strings.TrimSuffix(getEnv("API_BASE_URL", "http://localhost:"+serverPort+"/api"), "/"),
		APIKey:            getEnv("API_KEY", ""),
		APITimeout:        getEnvDuration("API_TIMEOUT", 30*time.Second),
		ClientFetchLimit:  clampFetchLimit(getEnvInt("CLIENT_FETCH_LIMIT", DefaultClientFetchLimit)),
		AllowedOrigins:    strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		AppURL:            getEnv("APP_URL", "http://localhost:"+serverPort),
		TursoDatabaseURL:  getEnv("TURSO_DATABASE_URL", ""),
		TursoAuthToken:    getEnv("TURSO_AUTH_TOKEN", ""),
		ExportDir:         getEnv("EXPORT_DIR", "static/exports"),
		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:       getEnv("R2_PUBLIC_URL", ""),
	}
}

// IsProduction reports whether the app runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Debug().Str("key", key).Str("default", defaultValue).Msg("Using default config value")
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Msg("Invalid integer, using default")
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Msg("Invalid duration, using default")
		return defaultValue
	}
	return d
}

func clampFetchLimit(limit int) int {
	if limit <= 0 {
		return DefaultClientFetchLimit
	}
	if limit > MaxClientFetchLimit {
		return MaxClientFetchLimit
	}
	return limit
}
