package http

import (
	"github.com/mrlokans/bookjournal/internal/auth"
	"github.com/mrlokans/bookjournal/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database
	Books    BookStore
	Covers   CoverResolver

	// Authentication
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	SessionManager *auth.SessionManager
	RateLimiter    *auth.RateLimiter // nil disables login throttling

	// CSRF protection, disabled when empty
	CSRFSecret    []byte
	SecureCookies bool

	// Static assets served under /static
	StaticPath string

	// Image hosts allowed by the content security policy
	CoverImageOrigins []string

	// Application info
	Version string
}
