package entrypoint

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookjournal/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Database: config.Database{
			Driver: config.DriverSQLite,
			Path:   filepath.Join(t.TempDir(), "app.db"),
		},
		Auth: config.Auth{
			SessionSecret:   "test-secret",
			SessionLifetime: time.Hour,
			BcryptCost:      config.MinBcryptCost,
			CSRFEnabled:     true,
		},
		Covers: config.Covers{
			BaseURL:        "http://127.0.0.1:1",
			ImageBaseURL:   config.DefaultCoversURL,
			PlaceholderURL: config.DefaultPlaceholderCover,
		},
	}
}

func TestNewApp(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router, cleanup, err := NewApp(testConfig(t), "test")
	require.NoError(t, err)
	t.Cleanup(cleanup)

	t.Run("health reports the database", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"version": "test"`)
	})

	t.Run("books page is protected", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books", nil))

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login?next=/books", w.Header().Get("Location"))
	})

	t.Run("forms require a CSRF token", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/delete", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("cover host is allowed by the CSP", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		csp := w.Header().Get("Content-Security-Policy")
		assert.Contains(t, csp, config.DefaultCoversURL)
		assert.Contains(t, csp, "https://archive.org")
		assert.Contains(t, csp, "https://*.archive.org")
	})
}

func TestNewApp_Cleanup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router, cleanup, err := NewApp(testConfig(t), "test")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		cleanup()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("cleanup did not return")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestNewApp_InvalidDatabase(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database = config.Database{Driver: config.DriverPostgres}

	_, _, err := NewApp(cfg, "test")

	assert.ErrorContains(t, err, "failed to initialize database")
}
