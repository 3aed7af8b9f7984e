// Package frontend serves the embedded browser UI: one HTML page with an
// organization filter, a refresh button, and the model table.
package frontend

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html static/*
var assets embed.FS

// Renderer renders the embedded UI templates.
type Renderer struct {
	template *template.Template
}

// NewRenderer parses the embedded templates up front so a broken build
// fails at startup rather than on the first request.
func NewRenderer() (*Renderer, error) {
	tpl, err := template.ParseFS(assets, "templates/index.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{template: tpl}, nil
}

// RenderIndex writes the main HTML page to the response writer.
func (r *Renderer) RenderIndex(w http.ResponseWriter, data any) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return r.template.ExecuteTemplate(w, "index.html", data)
}

// StaticHandler returns an http.Handler serving the embedded static assets.
func (r *Renderer) StaticHandler() http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		return http.NotFoundHandler()
	}
	return http.FileServer(http.FS(sub))
}
