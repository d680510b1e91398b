package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DatabaseDriver string

const (
	DriverSQLite   DatabaseDriver = "sqlite"   // Local file database (default)
	DriverPostgres DatabaseDriver = "postgres" // External PostgreSQL server
)

type (
	Config struct {
		HTTP
		Global
		Log
		Database
		UI
		Auth
		Covers
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Log struct {
		Level  string // logrus level name: debug, info, warn, error
		Format string // "text" or "json"
	}
	Database struct {
		Driver DatabaseDriver
		Path   string // SQLite file path
		DSN    string // PostgreSQL DSN, composed from PG_* when empty
	}
	UI struct {
		StaticPath string
	}
	Auth struct {
		SessionSecret   string
		SessionLifetime time.Duration
		BcryptCost      int
		SecureCookies   bool // Set to false for local dev without HTTPS
		CSRFEnabled     bool

		// Rate limiting configuration
		MaxLoginAttempts int           // Max failed attempts before lockout (default: 5)
		RateLimitWindow  time.Duration // Time window for counting attempts (default: 15m)
		LockoutDuration  time.Duration // How long to lock out (default: 30m)
	}
	Covers struct {
		BaseURL        string        // OpenLibrary API root
		ImageBaseURL   string        // Cover image host
		PlaceholderURL string        // Shown when no cover could be found
		MaxConcurrency int           // Lookups in flight per page render
		LookupTimeout  time.Duration // Per-lookup deadline
		MaxWait        time.Duration // Deadline for the whole listing
	}
)

// postgresDSN prefers DATABASE_DSN and otherwise composes one from the PG_* variables.
func postgresDSN(v *viper.Viper) string {
	if dsn := v.GetString("DATABASE_DSN"); dsn != "" {
		return dsn
	}
	if v.GetString("PG_HOST") == "" {
		return ""
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		v.GetString("PG_HOST"),
		v.GetInt("PG_PORT"),
		v.GetString("PG_USER"),
		v.GetString("PG_PASSWORD"),
		v.GetString("PG_DATABASE"),
	)
}

// LoadDotEnv loads variables from the given .env files into the process environment.
// Missing files are ignored; variables already set in the environment win.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 3000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("database_driver", string(DriverSQLite))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("pg_port", 5432)
	v.SetDefault("static_path", "./public")

	// Auth defaults
	v.SetDefault("auth_session_secret", "")       // Auto-generated if empty
	v.SetDefault("auth_session_lifetime", "24h")  // 24 hours
	v.SetDefault("auth_bcrypt_cost", 10)          // bcrypt cost factor
	v.SetDefault("auth_secure_cookies", true)     // HTTPS-only cookies
	v.SetDefault("auth_csrf_enabled", true)       // Reject forms without a CSRF token
	v.SetDefault("auth_max_login_attempts", 5)    // Max failed attempts
	v.SetDefault("auth_rate_limit_window", "15m") // Window for counting attempts
	v.SetDefault("auth_lockout_duration", "30m")  // Lockout duration

	// Cover lookup defaults
	v.SetDefault("covers_base_url", DefaultOpenLibraryURL)
	v.SetDefault("covers_image_base_url", DefaultCoversURL)
	v.SetDefault("covers_placeholder_url", DefaultPlaceholderCover)
	v.SetDefault("covers_max_concurrency", 4)
	v.SetDefault("covers_lookup_timeout", "3s")
	v.SetDefault("covers_max_wait", "5s")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Database: Database{
			Driver: DatabaseDriver(v.GetString("DATABASE_DRIVER")),
			Path:   v.GetString("DATABASE_PATH"),
			DSN:    postgresDSN(v),
		},
		UI: UI{
			StaticPath: v.GetString("STATIC_PATH"),
		},
		Auth: Auth{
			SessionSecret:    v.GetString("AUTH_SESSION_SECRET"),
			SessionLifetime:  v.GetDuration("AUTH_SESSION_LIFETIME"),
			BcryptCost:       v.GetInt("AUTH_BCRYPT_COST"),
			SecureCookies:    v.GetBool("AUTH_SECURE_COOKIES"),
			CSRFEnabled:      v.GetBool("AUTH_CSRF_ENABLED"),
			MaxLoginAttempts: v.GetInt("AUTH_MAX_LOGIN_ATTEMPTS"),
			RateLimitWindow:  v.GetDuration("AUTH_RATE_LIMIT_WINDOW"),
			LockoutDuration:  v.GetDuration("AUTH_LOCKOUT_DURATION"),
		},
		Covers: Covers{
			BaseURL:        v.GetString("COVERS_BASE_URL"),
			ImageBaseURL:   v.GetString("COVERS_IMAGE_BASE_URL"),
			PlaceholderURL: v.GetString("COVERS_PLACEHOLDER_URL"),
			MaxConcurrency: v.GetInt("COVERS_MAX_CONCURRENCY"),
			LookupTimeout:  v.GetDuration("COVERS_LOOKUP_TIMEOUT"),
			MaxWait:        v.GetDuration("COVERS_MAX_WAIT"),
		},
	}
}
