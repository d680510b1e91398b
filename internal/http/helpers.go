package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookjournal/internal/auth"
	"github.com/mrlokans/bookjournal/internal/logging"
)

// ErrorResponse is the error body returned to JSON clients.
type ErrorResponse struct {
	Error string `json:"error"`
}

// pageData merges the per-request values every layout needs into data.
func pageData(c *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["User"] = auth.GetUser(c)
	data["CSRFToken"] = auth.GetCSRFToken(c)
	return data
}

// renderError renders the error page, or a JSON body for JSON clients.
func renderError(c *gin.Context, status int, message string) {
	if wantsJSON(c) {
		c.JSON(status, ErrorResponse{Error: message})
		return
	}
	c.HTML(status, "error.html", pageData(c, gin.H{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": message,
	}))
}

// respondNotFound renders a 404 page for a missing resource.
func respondNotFound(c *gin.Context, resource string) {
	renderError(c, http.StatusNotFound, resource+" not found")
}

// respondInternalError logs the error and renders a 500 page.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	logging.FromContext(c).WithError(err).WithField("operation", context).Error("Internal error")
	renderError(c, http.StatusInternalServerError, "Something went wrong. Please try again later.")
}

func wantsJSON(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/") ||
		strings.Contains(c.GetHeader("Accept"), "application/json")
}

// contentFields reads the description and notes of the create and edit
// forms. Indexed content[0]/content[1] fields win over a repeated content field.
func contentFields(c *gin.Context) (description, notes string) {
	description, hasDescription := c.GetPostForm("content[0]")
	notes, hasNotes := c.GetPostForm("content[1]")
	if hasDescription || hasNotes {
		return description, notes
	}

	values := c.PostFormArray("content")
	if len(values) > 0 {
		description = values[0]
	}
	if len(values) > 1 {
		notes = values[1]
	}
	return description, notes
}
