package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/tair/bookbank/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

type renderer struct {
	templates *template.Template
}

func newRenderer() *renderer {
	return &renderer{
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

func (r *renderer) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		logger.Logger.Error().Err(err).Str("template", name).Msg("Template rendering failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
