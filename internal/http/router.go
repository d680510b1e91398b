package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookjournal/internal/auth"
	"github.com/mrlokans/bookjournal/internal/logging"
)

// hstsMaxAge is one year, in seconds.
const hstsMaxAge = 31536000

// NewRouter creates and configures the HTTP router with all endpoints.
// AuthService, AuthMiddleware and SessionManager are required.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(logging.RequestLogger(logging.Log))
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware(cfg.CoverImageOrigins...))
	if cfg.SecureCookies {
		router.Use(auth.StrictTransportSecurityMiddleware(hstsMaxAge))
	}

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Session runs after CSRF so session context isn't overwritten by CSRF's request replacement
	router.Use(cfg.SessionManager.SessionLoadSave())
	router.Use(cfg.AuthMiddleware.Handler())

	router.SetHTMLTemplate(loadTemplates())

	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	health := NewHealthController(cfg.Database, cfg.Books, cfg.Version)
	uiController := NewUIController(cfg.Books, cfg.Covers)
	booksController := NewBooksController(cfg.Books)
	requireAuth := cfg.AuthMiddleware.RequireAuth()

	// Health endpoints
	router.GET("/health", health.Status)

	// Login, registration and logout
	auth.NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.RateLimiter).RegisterRoutes(router)

	// Journal pages
	router.GET("/", uiController.HomePage)
	router.GET("/books", requireAuth, uiController.BooksPage)
	router.GET("/create", uiController.CreatePage)
	router.POST("/notes", uiController.NotesPage)
	router.POST("/edit", uiController.EditPage)

	// Journal forms
	router.POST("/create", booksController.Create)
	router.POST("/submit", booksController.Submit)
	router.POST("/delete", booksController.Delete)

	// Books API
	router.GET("/api/books", requireAuth, booksController.GetAllBooks)

	return router
}
