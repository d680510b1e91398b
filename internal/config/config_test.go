package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(3000), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionLifetime)
	assert.True(t, cfg.Auth.CSRFEnabled)
	assert.Equal(t, DefaultOpenLibraryURL, cfg.Covers.BaseURL)
	assert.Equal(t, 4, cfg.Covers.MaxConcurrency)
	assert.Equal(t, 3*time.Second, cfg.Covers.LookupTimeout)
	assert.Equal(t, 5*time.Second, cfg.Covers.MaxWait)
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("AUTH_BCRYPT_COST", "12")
	t.Setenv("COVERS_MAX_WAIT", "750ms")
	t.Setenv("AUTH_SECURE_COOKIES", "false")

	cfg := NewConfig()

	assert.Equal(t, int32(8080), cfg.HTTP.Port)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, 750*time.Millisecond, cfg.Covers.MaxWait)
	assert.False(t, cfg.Auth.SecureCookies)
}

func TestNewConfig_PostgresDSN(t *testing.T) {
	t.Run("composed from PG variables", func(t *testing.T) {
		t.Setenv("DATABASE_DRIVER", "postgres")
		t.Setenv("PG_HOST", "db.internal")
		t.Setenv("PG_USER", "journal")
		t.Setenv("PG_PASSWORD", "secret")
		t.Setenv("PG_DATABASE", "books")

		cfg := NewConfig()

		assert.Equal(t, DriverPostgres, cfg.Database.Driver)
		assert.Equal(t, "host=db.internal port=5432 user=journal password=secret dbname=books sslmode=disable", cfg.Database.DSN)
	})

	t.Run("explicit DSN wins", func(t *testing.T) {
		t.Setenv("PG_HOST", "ignored")
		t.Setenv("DATABASE_DSN", "postgres://u:p@localhost/books")

		cfg := NewConfig()

		assert.Equal(t, "postgres://u:p@localhost/books", cfg.Database.DSN)
	})

	t.Run("empty without PG_HOST", func(t *testing.T) {
		cfg := NewConfig()
		assert.Empty(t, cfg.Database.DSN)
	})
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BOOKJOURNAL_TEST_VALUE=from-dotenv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("BOOKJOURNAL_TEST_VALUE") })

	LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, "from-dotenv", os.Getenv("BOOKJOURNAL_TEST_VALUE"))
}
