package server

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/matzehuels/umlpad/pkg/draft"
	"github.com/matzehuels/umlpad/pkg/plantuml"
)

//go:embed static/index.html
var staticFS embed.FS

var indexTemplate = template.Must(template.ParseFS(staticFS, "static/index.html"))

type pageData struct {
	DefaultCode   string
	StorageKey    string
	AutosaveDelay int64 // milliseconds
	Snippets      []plantuml.Snippet
	MaxOptions    int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := indexTemplate.Execute(&buf, pageData{
		DefaultCode:   s.defaultCode,
		StorageKey:    draft.DefaultID,
		AutosaveDelay: draft.AutosaveDelay.Milliseconds(),
		Snippets:      plantuml.Snippets,
		MaxOptions:    plantuml.MaxCompletions,
	})
	if err != nil {
		s.logger.Error("render index page", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
