package api

import (
	"embed"
	"github.com/labstack/echo/v4"
	"html/template"
	"io"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

type renderer struct {
	templates *template.Template
}

// NewRenderer parses the page templates once at startup.
func NewRenderer() (echo.Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, err
	}
	return &renderer{templates: tmpl}, nil
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
