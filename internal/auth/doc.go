// Package auth provides registration, login and session handling.
//
// Passwords are hashed with bcrypt. Sessions are stored server-side with
// scs in the application database and hold only the user id; the user is
// re-read on every request by Middleware.Handler.
//
// # Configuration
//
//	AUTH_SESSION_SECRET=<random string>  # CSRF key material, random if empty
//	AUTH_SESSION_LIFETIME=24h            # Session duration
//	AUTH_BCRYPT_COST=10                  # bcrypt cost factor, minimum 10
//	AUTH_SECURE_COOKIES=true             # HTTPS-only cookies
//	AUTH_CSRF_ENABLED=true
//	AUTH_MAX_LOGIN_ATTEMPTS=5
//
// # Usage
//
//	authService := auth.NewService(users.NewRepository(db.DB), cfg.Auth)
//	authMiddleware := auth.NewMiddleware(authService, sessionManager)
//	router.Use(sessionManager.SessionLoadSave(), authMiddleware.Handler())
//	router.GET("/books", authMiddleware.RequireAuth(), listBooks)
//
// Extract the user in handlers:
//
//	user := auth.GetUser(c) // nil for anonymous requests
package auth
