package http

import (
	"embed"
	"html/template"

	"github.com/mrlokans/bookjournal/internal/auth"
)

//go:embed templates/*.html
var templateFS embed.FS

// loadTemplates parses every page template, including the auth pages the
// auth controller renders by name.
func loadTemplates() *template.Template {
	funcMap := template.FuncMap{
		auth.CSRFTemplateField: auth.CSRFField,
	}
	return template.Must(template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html"))
}
