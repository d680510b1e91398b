package auth

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookjournal/internal/config"
	"github.com/mrlokans/bookjournal/internal/database"
	"github.com/mrlokans/bookjournal/internal/entities"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupMiddleware(t *testing.T) (*gin.Engine, *Service, *database.Database) {
	t.Helper()

	db := setupTestDatabase(t)
	sqlDB, err := db.SQLDB()
	if err != nil {
		t.Fatalf("failed to get SQL DB: %v", err)
	}

	cfg := testAuthConfig()
	sm, err := NewSessionManager(sqlDB, config.DriverSQLite, cfg)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}
	t.Cleanup(sm.Close)
	service := NewService(newUserRepository(db), cfg)
	middleware := NewMiddleware(service, sm)

	router := gin.New()
	router.Use(sm.SessionLoadSave(), middleware.Handler())

	router.GET("/session/:id", func(c *gin.Context) {
		id, _ := strconv.Atoi(c.Param("id"))
		if err := sm.CreateSession(c.Request, uint(id)); err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
	router.GET("/public", func(c *gin.Context) {
		c.String(http.StatusOK, "authenticated=%t", IsAuthenticated(c))
	})
	router.GET("/protected", middleware.RequireAuth(), func(c *gin.Context) {
		user := GetUser(c)
		c.String(http.StatusOK, user.Email)
	})

	return router, service, db
}

// loginCookie establishes a session for userID and returns its cookie.
func loginCookie(t *testing.T, router *gin.Engine, userID uint) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/session/"+strconv.Itoa(int(userID)), nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	cookie := sessionCookie(rr)
	if cookie == nil {
		t.Fatal("no session cookie set")
	}
	return cookie
}

func TestMiddleware_PublicPathWithoutSession(t *testing.T) {
	router, _, _ := setupMiddleware(t)

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}
	if rr.Body.String() != "authenticated=false" {
		t.Errorf("unexpected body %q", rr.Body.String())
	}
}

func TestMiddleware_ProtectedPath_RedirectsToLogin(t *testing.T) {
	router, _, _ := setupMiddleware(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Errorf("Expected redirect (302), got %d", rr.Code)
	}

	location := rr.Header().Get("Location")
	if location != "/login?next=/protected" {
		t.Errorf("Expected redirect to /login?next=/protected, got %s", location)
	}
}

func TestMiddleware_JSONClient_Returns401(t *testing.T) {
	router, _, _ := setupMiddleware(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Accept", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for JSON client, got %d", rr.Code)
	}
}

func TestMiddleware_SessionUser(t *testing.T) {
	router, service, _ := setupMiddleware(t)

	user, err := service.Register("reader@example.com", "password12345")
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	cookie := loginCookie(t, router, user.ID)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200 with session, got %d", rr.Code)
	}
	if rr.Body.String() != "reader@example.com" {
		t.Errorf("Expected user email in body, got %q", rr.Body.String())
	}
}

func TestMiddleware_StaleSessionIsAnonymous(t *testing.T) {
	router, service, db := setupMiddleware(t)

	user, err := service.Register("gone@example.com", "password12345")
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	cookie := loginCookie(t, router, user.ID)

	if err := db.DB.Delete(&entities.User{}, user.ID).Error; err != nil {
		t.Fatalf("failed to delete user: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Errorf("Expected redirect for vanished user, got %d", rr.Code)
	}
}
