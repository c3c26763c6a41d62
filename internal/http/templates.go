package http

import (
	"embed"
	"html/template"
	"path/filepath"
)

//go:embed templates/*.html
var templatesFS embed.FS

// loadTemplates parses the embedded page templates, or the *.html files
// under dir when an override directory is configured.
func loadTemplates(dir string) (*template.Template, error) {
	tmpl := template.New("")
	if dir != "" {
		return tmpl.ParseGlob(filepath.Join(dir, "*.html"))
	}
	return tmpl.ParseFS(templatesFS, "templates/*.html")
}
