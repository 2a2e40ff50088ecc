package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed views/*.html
var ViewsFS embed.FS

// TemplateRenderer is the echo.Renderer for every HTML page.
type TemplateRenderer struct {
	templates *template.Template
}

func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

func NewRenderer() (*TemplateRenderer, error) {
	tmpl, err := template.New("").Funcs(funcMap()).ParseFS(ViewsFS, "views/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &TemplateRenderer{templates: tmpl}, nil
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"title": func(s string) string {
			return cases.Title(language.English).String(s)
		},
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02 15:04")
		},
		// seg escapes one path segment, slashes included
		"seg": url.PathEscape,
		"mm":  func(f float64) string { return fmt.Sprintf("%.1f", f) },
		// upload links a stored photo name; empty names render nothing
		"upload": func(name string) string {
			if name == "" {
				return ""
			}
			return "/uploads/" + name
		},
		"json": func(v any) (template.JS, error) {
			b, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return template.JS(b), nil
		},
	}
}
