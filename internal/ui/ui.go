// Package ui bundles the HTML templates and static assets of the web pages.
// Both can be overridden from disk for local development.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// FuncMap holds the helpers available to every template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"yearText": func(year *int) string {
			if year == nil {
				return ""
			}
			return fmt.Sprintf("%d", *year)
		},
		"formatTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Local().Format("2006-01-02 15:04")
		},
	}
}

// LoadTemplates parses the page templates from dir, or the embedded copies
// when dir is empty.
func LoadTemplates(dir string) (*template.Template, error) {
	tmpl := template.New("").Funcs(FuncMap())
	if dir == "" {
		return tmpl.ParseFS(templatesFS, "templates/*.html")
	}
	return tmpl.ParseGlob(filepath.Join(dir, "*.html"))
}

// StaticFS serves dir, or the embedded assets when dir is empty.
func StaticFS(dir string) http.FileSystem {
	if dir != "" {
		return http.Dir(dir)
	}
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
