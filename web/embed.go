// Package web embeds the single-page client served next to the API.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.tmpl static/*
var assets embed.FS

var page = template.Must(template.ParseFS(assets, "templates/*.tmpl"))

// PageData fills the generator form on the index page.
type PageData struct {
	Elements []string
	Kind     string
}

// Static serves the files under static/ at prefix.
func Static(prefix string) http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err) // static/ is embedded above
	}
	return http.StripPrefix(prefix, http.FileServer(http.FS(sub)))
}

// Index renders the puzzle page.
func Index(data PageData) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.ExecuteTemplate(w, "index.tmpl", data); err != nil {
			http.Error(w, template.HTMLEscapeString(err.Error()), http.StatusInternalServerError)
		}
	}
}
