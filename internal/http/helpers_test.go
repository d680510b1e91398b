package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func formContext(form url.Values) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/create", strings.NewReader(form.Encode()))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c
}

func TestContentFields(t *testing.T) {
	tests := []struct {
		name            string
		form            url.Values
		wantDescription string
		wantNotes       string
	}{
		{
			name:            "indexed fields",
			form:            url.Values{"content[0]": {"desc"}, "content[1]": {"notes"}},
			wantDescription: "desc",
			wantNotes:       "notes",
		},
		{
			name:            "repeated field",
			form:            url.Values{"content": {"desc", "notes"}},
			wantDescription: "desc",
			wantNotes:       "notes",
		},
		{
			name:            "repeated field with description only",
			form:            url.Values{"content": {"desc"}},
			wantDescription: "desc",
		},
		{
			name:            "indexed fields win",
			form:            url.Values{"content[1]": {"indexed"}, "content": {"a", "b"}},
			wantDescription: "",
			wantNotes:       "indexed",
		},
		{
			name: "no content",
			form: url.Values{"title": {"Dune"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			description, notes := contentFields(formContext(tt.form))

			if description != tt.wantDescription {
				t.Errorf("description = %q, want %q", description, tt.wantDescription)
			}
			if notes != tt.wantNotes {
				t.Errorf("notes = %q, want %q", notes, tt.wantNotes)
			}
		})
	}
}

func TestWantsJSON(t *testing.T) {
	tests := []struct {
		path   string
		accept string
		want   bool
	}{
		{"/api/books", "", true},
		{"/notes", "application/json", true},
		{"/notes", "text/html", false},
	}

	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, tt.path, nil)
		if tt.accept != "" {
			c.Request.Header.Set("Accept", tt.accept)
		}

		assert.Equal(t, tt.want, wantsJSON(c), "%s accept=%q", tt.path, tt.accept)
	}
}

func TestRenderError_JSON(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/books", nil)

	respondNotFound(c, "Book")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Book not found"}`, w.Body.String())
}
