package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		UI
		Covers
		Redis
		Sessions
		CSRF
		Logging
		Metrics
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path        string
		BusyTimeout time.Duration
		LogLevel    string // silent, error, warn, info
	}
	UI struct {
		TemplatesPath string // Empty means use the embedded templates
		StaticPath    string
	}
	Covers struct {
		Providers         []string // Lookup order, e.g. "google,openlibrary"
		GoogleBooksURL    string
		GoogleBooksAPIKey string
		OpenLibraryURL    string
		LookupTimeout     time.Duration
		RequestsPerSecond float64
		CacheDir          string // Directory for downloaded cover images
	}
	Redis struct {
		URL      string // host:port, empty disables the cover URL cache
		Password string
		DB       int
		TTL      time.Duration
	}
	Sessions struct {
		Enabled       bool
		Lifetime      time.Duration
		SecureCookies bool
	}
	CSRF struct {
		Secret string // Empty disables CSRF protection
	}
	Logging struct {
		Level string
	}
	Metrics struct {
		Enabled bool
	}
)

// loadDotEnv reads .env files into the process environment. Missing files are fine.
func loadDotEnv() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// splitList parses a comma-separated setting, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func NewConfig() *Config {
	loadDotEnv()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 5000)
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_busy_timeout", "5s")
	v.SetDefault("database_log_level", "warn")
	v.SetDefault("templates_path", "")
	v.SetDefault("static_path", "")

	// Cover lookup defaults
	v.SetDefault("cover_providers", "google")
	v.SetDefault("google_books_url", DefaultGoogleBooksURL)
	v.SetDefault("google_books_api_key", "")
	v.SetDefault("openlibrary_url", DefaultOpenLibraryURL)
	v.SetDefault("cover_lookup_timeout", "10s")
	v.SetDefault("cover_requests_per_second", 1.0)
	v.SetDefault("cover_cache_dir", "./data/covers")

	// Redis cover URL cache (disabled unless REDIS_URL is set)
	v.SetDefault("redis_url", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_ttl", "168h")

	v.SetDefault("sessions_enabled", true)
	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("secure_cookies", false) // Set to true when served over HTTPS
	v.SetDefault("csrf_secret", "")

	v.SetDefault("log_level", "info")
	v.SetDefault("metrics_enabled", true)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:        v.GetString("DATABASE_PATH"),
			BusyTimeout: v.GetDuration("DATABASE_BUSY_TIMEOUT"),
			LogLevel:    v.GetString("DATABASE_LOG_LEVEL"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
		Covers: Covers{
			Providers:         splitList(v.GetString("COVER_PROVIDERS")),
			GoogleBooksURL:    v.GetString("GOOGLE_BOOKS_URL"),
			GoogleBooksAPIKey: v.GetString("GOOGLE_BOOKS_API_KEY"),
			OpenLibraryURL:    v.GetString("OPENLIBRARY_URL"),
			LookupTimeout:     v.GetDuration("COVER_LOOKUP_TIMEOUT"),
			RequestsPerSecond: v.GetFloat64("COVER_REQUESTS_PER_SECOND"),
			CacheDir:          v.GetString("COVER_CACHE_DIR"),
		},
		Redis: Redis{
			URL:      v.GetString("REDIS_URL"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      v.GetDuration("REDIS_TTL"),
		},
		Sessions: Sessions{
			Enabled:       v.GetBool("SESSIONS_ENABLED"),
			Lifetime:      v.GetDuration("SESSION_LIFETIME"),
			SecureCookies: v.GetBool("SECURE_COOKIES"),
		},
		CSRF: CSRF{
			Secret: v.GetString("CSRF_SECRET"),
		},
		Logging: Logging{
			Level: v.GetString("LOG_LEVEL"),
		},
		Metrics: Metrics{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}
}
