package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env      string // "development", "production", etc.
	LogLevel string // debug, info, warn, error

	// Server
	ServerAddr string

	// Store connection string. The scheme picks the backend:
	// postgres://, mongodb://, mongodb+srv:// or memory://.
	DatabaseURL string

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string

	// CORS
	FrontendURL string // Comma-separated allowed origins, "*" for any

	// Optional YAML file with seed keywords
	ConfigFile string

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "Keyword Alerts"
	SiteTagline string // env: SITE_TAGLINE, default: "Track alert keywords per channel"
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present; variables
// already set in the environment win.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	return &Config{
		Env:         getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		ServerAddr:  getEnv("SERVER_ADDR", ":"+getEnv("PORT", "3001")),
		DatabaseURL: getEnv("DATABASE_URL", getEnv("MONGO_URI", "postgres://localhost:5432/keywatch?sslmode=disable")),
		TLSEnabled:  getEnv("TLS_ENABLED", "") != "",
		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),
		FrontendURL: getEnv("FRONTEND_URL", "*"),
		ConfigFile:  getEnv("CONFIG_FILE", "config.yaml"),

		SiteTitle:   getEnv("SITE_TITLE", "Keyword Alerts"),
		SiteTagline: getEnv("SITE_TAGLINE", "Track alert keywords per channel"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// AllowedOrigins splits FrontendURL into the CORS origin list.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.FrontendURL, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SlogLevel maps LogLevel onto a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
