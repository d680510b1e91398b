package auth

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/mrlokans/bookjournal/internal/config"
	"github.com/mrlokans/bookjournal/internal/database"
	"github.com/mrlokans/bookjournal/internal/database/users"
)

func setupTestDatabase(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.NewDatabase(config.Database{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "auth.db"),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testAuthConfig() config.Auth {
	return config.Auth{
		SessionLifetime:  24 * time.Hour,
		BcryptCost:       10,
		SecureCookies:    false,
		MaxLoginAttempts: 5,
		RateLimitWindow:  15 * time.Minute,
		LockoutDuration:  30 * time.Minute,
	}
}

func newUserRepository(db *database.Database) *users.Repository {
	return users.NewRepository(db.DB)
}

// sessionCookie extracts the session cookie from the recorded Set-Cookie headers.
func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	resp := http.Response{Header: http.Header{"Set-Cookie": rr.Header().Values("Set-Cookie")}}
	for _, c := range resp.Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	return nil
}
