package auth

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookjournal/internal/logging"
)

// Template names rendered by the controller. They are parsed by the HTTP
// router together with the rest of the site templates.
const (
	loginTemplate    = "login.html"
	registerTemplate = "register.html"
	errorTemplate    = "error.html"
)

// afterLoginPath is where users land after logging in or registering.
const afterLoginPath = "/books"

// isLocalPath validates that a redirect path is local to prevent open redirect attacks.
func isLocalPath(path string) bool {
	if path == "" {
		return false
	}

	if !strings.HasPrefix(path, "/") {
		return false
	}

	// Reject protocol-relative URLs (//evil.com)
	if strings.HasPrefix(path, "//") {
		return false
	}

	if strings.Contains(path, "://") {
		return false
	}

	// Reject paths with backslashes (potential bypass attempts)
	if strings.Contains(path, "\\") {
		return false
	}

	return true
}

// sanitizeRedirectPath returns a safe redirect path, defaulting to "/" if invalid.
func sanitizeRedirectPath(path string) string {
	if isLocalPath(path) {
		return path
	}
	return "/"
}

// AuthController handles login, registration and logout.
type AuthController struct {
	service        *Service
	sessionManager *SessionManager
	rateLimiter    *RateLimiter
}

// NewAuthController creates a new authentication controller.
// rateLimiter may be nil to disable login throttling.
func NewAuthController(service *Service, sessionManager *SessionManager, rateLimiter *RateLimiter) *AuthController {
	return &AuthController{
		service:        service,
		sessionManager: sessionManager,
		rateLimiter:    rateLimiter,
	}
}

// RegisterRoutes registers authentication routes on the router.
func (ac *AuthController) RegisterRoutes(router gin.IRoutes) {
	router.GET("/login", ac.LoginPage)
	if ac.rateLimiter != nil {
		router.POST("/login", ac.rateLimiter.RateLimitMiddleware(), ac.Login)
	} else {
		router.POST("/login", ac.Login)
	}
	router.GET("/register", ac.RegisterPage)
	router.POST("/register", ac.Register)
	router.POST("/logout", ac.Logout)
	router.GET("/logout", ac.Logout) // Support GET for simple logout links
}

// LoginPage renders the login form.
func (ac *AuthController) LoginPage(c *gin.Context) {
	if IsAuthenticated(c) {
		c.Redirect(http.StatusFound, afterLoginPath)
		return
	}

	c.HTML(http.StatusOK, loginTemplate, gin.H{
		"Title":     "Login",
		"Next":      sanitizeRedirectPath(c.Query("next")),
		"CSRFToken": GetCSRFToken(c),
		"Error":     c.Query("error"),
	})
}

// Login handles the login form submission. Every failure sends the browser
// back to the login page with the same message.
func (ac *AuthController) Login(c *gin.Context) {
	email := c.PostForm("username")
	password := c.PostForm("password")
	clientIP := c.ClientIP()
	log := logging.FromContext(c)

	user, err := ac.service.Authenticate(email, password)
	if err != nil {
		if ac.rateLimiter != nil {
			if locked, _ := ac.rateLimiter.RecordFailure(clientIP, email); locked {
				log.WithField("client_ip", clientIP).Warn("Login locked out after repeated failures")
			}
		}
		if !errors.Is(err, ErrUserNotFound) && !errors.Is(err, ErrInvalidCredentials) {
			log.WithError(err).Error("Login failed")
		}
		redirectWithError(c, "/login", LoginFailedMessage)
		return
	}

	if ac.rateLimiter != nil {
		ac.rateLimiter.RecordSuccess(clientIP, email)
	}

	if err := ac.sessionManager.CreateSession(c.Request, user.ID); err != nil {
		log.WithError(err).Error("Failed to create session")
		redirectWithError(c, "/login", LoginFailedMessage)
		return
	}

	target := afterLoginPath
	if next := c.PostForm("next"); isLocalPath(next) && next != "/" {
		target = next
	}
	c.Redirect(http.StatusFound, target)
}

// RegisterPage renders the registration form.
func (ac *AuthController) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, registerTemplate, gin.H{
		"Title":     "Register",
		"CSRFToken": GetCSRFToken(c),
		"Error":     c.Query("error"),
	})
}

// Register creates an account and logs the new user in.
// An already registered email is sent to the login page.
func (ac *AuthController) Register(c *gin.Context) {
	email := c.PostForm("username")
	password := c.PostForm("password")
	log := logging.FromContext(c)

	user, err := ac.service.Register(email, password)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserExists):
			redirectWithError(c, "/login", "An account with this email already exists. Please log in.")
		case errors.Is(err, ErrEmailRequired),
			errors.Is(err, ErrEmailInvalid),
			errors.Is(err, ErrPasswordRequired),
			errors.Is(err, ErrPasswordTooLong):
			redirectWithError(c, "/register", registrationMessage(err))
		default:
			log.WithError(err).Error("Registration failed")
			c.HTML(http.StatusInternalServerError, errorTemplate, gin.H{
				"Title":   "Error",
				"Status":  http.StatusInternalServerError,
				"Message": "Registration failed. Please try again later.",
			})
		}
		return
	}

	log.WithField("user_id", user.ID).Info("User registered")

	if err := ac.sessionManager.CreateSession(c.Request, user.ID); err != nil {
		log.WithError(err).Error("Failed to create session")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	c.Redirect(http.StatusFound, afterLoginPath)
}

// Logout destroys the session and redirects to login.
func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.sessionManager.DestroySession(c.Request); err != nil {
		logging.FromContext(c).WithError(err).Warn("Failed to destroy session")
	}
	c.Redirect(http.StatusFound, "/login")
}

func registrationMessage(err error) string {
	switch {
	case errors.Is(err, ErrEmailRequired):
		return "Email is required"
	case errors.Is(err, ErrEmailInvalid):
		return "Invalid email format"
	case errors.Is(err, ErrPasswordRequired):
		return "Password is required"
	case errors.Is(err, ErrPasswordTooLong):
		return "Password exceeds maximum length of 72 bytes"
	}
	return "Registration failed"
}

func redirectWithError(c *gin.Context, path, message string) {
	c.Redirect(http.StatusFound, path+"?error="+url.QueryEscape(message))
}
