package auth

import (
	"database/sql"
	"fmt"
	"net/http"
	"sync"

	"github.com/alexedwards/scs/postgresstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/mrlokans/bookjournal/internal/config"
)

// SessionKeyUserID is the only value kept in a session; everything else
// about the user is re-read from the database per request.
const SessionKeyUserID = "user_id"

const sqliteSessionsSchema = `CREATE TABLE IF NOT EXISTS sessions (
	token TEXT PRIMARY KEY,
	data BLOB NOT NULL,
	expiry REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`

const postgresSessionsSchema = `CREATE TABLE IF NOT EXISTS sessions (
	token TEXT PRIMARY KEY,
	data BYTEA NOT NULL,
	expiry TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions (expiry);`

// SessionManager wraps scs.SessionManager with application-specific methods.
type SessionManager struct {
	*scs.SessionManager
	stopCleanup func()
	closeOnce   sync.Once
}

// NewSessionManager creates a configured session manager backed by the
// sessions table of the application database.
// The sqlDB parameter should be the underlying *sql.DB from GORM.
func NewSessionManager(sqlDB *sql.DB, driver config.DatabaseDriver, cfg config.Auth) (*SessionManager, error) {
	sm := scs.New()
	var stopCleanup func()

	switch driver {
	case config.DriverPostgres:
		if _, err := sqlDB.Exec(postgresSessionsSchema); err != nil {
			return nil, fmt.Errorf("failed to create sessions table: %w", err)
		}
		store := postgresstore.New(sqlDB)
		sm.Store = store
		stopCleanup = store.StopCleanup
	default:
		if _, err := sqlDB.Exec(sqliteSessionsSchema); err != nil {
			return nil, fmt.Errorf("failed to create sessions table: %w", err)
		}
		store := sqlite3store.New(sqlDB)
		sm.Store = store
		stopCleanup = store.StopCleanup
	}

	sm.Lifetime = cfg.SessionLifetime
	sm.IdleTimeout = cfg.SessionLifetime / 2

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode // Lax so the post-login redirect carries the cookie
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm, stopCleanup: stopCleanup}, nil
}

// CreateSession starts an authenticated session for the user id.
// Call after the password has been verified or the account created.
func (sm *SessionManager) CreateSession(r *http.Request, userID uint) error {
	// Renew token to prevent session fixation
	if err := sm.RenewToken(r.Context()); err != nil {
		return err
	}

	// Store user ID as int to match GetInt() retrieval
	sm.Put(r.Context(), SessionKeyUserID, int(userID))

	return nil
}

// DestroySession removes all session data and invalidates the session.
func (sm *SessionManager) DestroySession(r *http.Request) error {
	return sm.Destroy(r.Context())
}

// GetUserID retrieves the user ID from the session.
// Returns 0 if not authenticated.
func (sm *SessionManager) GetUserID(r *http.Request) uint {
	return uint(sm.GetInt(r.Context(), SessionKeyUserID))
}

// Close stops the store's background deletion of expired sessions.
// Call it before closing the database. Later calls do nothing.
func (sm *SessionManager) Close() {
	sm.closeOnce.Do(func() {
		if sm.stopCleanup != nil {
			sm.stopCleanup()
		}
	})
}
