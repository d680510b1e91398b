package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookjournal/internal/auth"
	"github.com/mrlokans/bookjournal/internal/config"
	"github.com/mrlokans/bookjournal/internal/covers"
	"github.com/mrlokans/bookjournal/internal/database"
	"github.com/mrlokans/bookjournal/internal/database/books"
	"github.com/mrlokans/bookjournal/internal/database/users"
	http_controllers "github.com/mrlokans/bookjournal/internal/http"
	"github.com/mrlokans/bookjournal/internal/logging"
)

// Serve runs the HTTP server until SIGINT or SIGTERM, then drains
// in-flight requests for up to the configured shutdown timeout.
func Serve(router *gin.Engine, cfg *config.Config) error {
	log := logging.Log
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// kill (no param) sends syscall.SIGTERM, kill -2 is syscall.SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case sig := <-quit:
		log.WithField("signal", sig.String()).Infof("Shutting down server, waiting up to %v", timeout)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info("Server exiting")
	return nil
}

// NewApp wires the database, auth, cover lookups and router from configuration.
// The returned cleanup closes everything NewApp opened.
func NewApp(cfg *config.Config, version string) (*gin.Engine, func(), error) {
	log := logging.Log

	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	sqlDB, err := db.SQLDB()
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to get SQL DB for sessions: %w", err)
	}

	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Database.Driver, cfg.Auth)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to initialize session manager: %w", err)
	}

	authService := auth.NewService(users.NewRepository(db.DB), cfg.Auth)
	authMiddleware := auth.NewMiddleware(authService, sessionManager)
	rateLimiter := auth.NewRateLimiter(auth.RateLimitConfigFromAuth(cfg.Auth))

	var csrfSecret []byte
	if cfg.Auth.CSRFEnabled {
		csrfSecret, err = auth.CSRFKey(cfg.Auth.SessionSecret)
		if err != nil {
			rateLimiter.Stop()
			sessionManager.Close()
			db.Close()
			return nil, nil, fmt.Errorf("failed to derive CSRF key: %w", err)
		}
	} else {
		log.Warn("CSRF protection is disabled")
	}

	if !cfg.Auth.SecureCookies {
		log.Warn("Session cookies are not marked Secure; only use this without HTTPS in development")
	}

	if hasUsers, err := authService.HasUsers(); err == nil && !hasUsers {
		log.Info("No users found. Visit /register or run 'bookjournal create-user' to create an account.")
	}

	resolver := covers.NewResolver(covers.NewClient(cfg.Covers), cfg.Covers)

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:          db,
		Books:             books.NewRepository(db.DB),
		Covers:            resolver,
		AuthService:       authService,
		AuthMiddleware:    authMiddleware,
		SessionManager:    sessionManager,
		RateLimiter:       rateLimiter,
		CSRFSecret:        csrfSecret,
		SecureCookies:     cfg.Auth.SecureCookies,
		StaticPath:        cfg.UI.StaticPath,
		CoverImageOrigins: covers.ImageOrigins(cfg.Covers.ImageBaseURL),
		Version:           version,
	})

	cleanup := func() {
		rateLimiter.Stop()
		sessionManager.Close()
		if err := db.Close(); err != nil {
			log.WithError(err).Error("Error closing database")
		}
	}

	return router, cleanup, nil
}

// Run starts the application and blocks until it is shut down.
func Run(cfg *config.Config, version string) error {
	logging.Log.WithField("version", version).Info("Starting Book Journal")

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router, cleanup, err := NewApp(cfg, version)
	if err != nil {
		return err
	}
	defer cleanup()

	return Serve(router, cfg)
}
