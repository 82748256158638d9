// Package web holds the embedded HTML templates for the browser-facing
// pages and small helpers to render them.
package web

import (
	"embed"
	"html/template"
	"log"
	"net/http"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// ViewData is the model for the message view page.
type ViewData struct {
	ID        string
	Text      string
	CreatedAt string // already formatted for display
	QRImage   template.URL
}

// RenderHome writes the home page.
func RenderHome(w http.ResponseWriter) {
	render(w, http.StatusOK, "home.html", nil)
}

// RenderView writes the message view page.
func RenderView(w http.ResponseWriter, data ViewData) {
	render(w, http.StatusOK, "view.html", data)
}

// RenderNotFound writes the "message not found" page.
func RenderNotFound(w http.ResponseWriter) {
	render(w, http.StatusNotFound, "notfound.html", nil)
}

// RenderError writes the generic server error page.
func RenderError(w http.ResponseWriter) {
	render(w, http.StatusInternalServerError, "error.html", nil)
}

func render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("[Web] Failed to render %s: %v", name, err)
	}
}
