package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookjournal/internal/database"
	"github.com/mrlokans/bookjournal/internal/logging"
)

const healthPingTimeout = 2 * time.Second

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
	Books   *int64            `json:"books,omitempty"`
}

type HealthController struct {
	db      *database.Database
	books   BookStore
	version string
}

// NewHealthController reports the database ping and, when books is set,
// the number of books in the catalog.
func NewHealthController(db *database.Database, books BookStore, version string) *HealthController {
	return &HealthController{
		db:      db,
		books:   books,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			logging.FromContext(c).WithError(err).Warn("Health check: database ping failed")
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	if h.books != nil && status == "healthy" {
		count, err := h.books.CountBooks()
		if err != nil {
			logging.FromContext(c).WithError(err).Warn("Health check: counting books failed")
			checks["catalog"] = "error: " + err.Error()
			health.Status = "unhealthy"
		} else {
			checks["catalog"] = "ok"
			health.Books = &count
		}
	}

	statusCode := http.StatusOK
	if health.Status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
