package server

import (
	"net/http"
	"strconv"

	"github.com/matzehuels/umlpad/pkg/plantuml"
)

type codeRequest struct {
	Code string `json:"code"`
}

type completeRequest struct {
	Code   string `json:"code"`
	Prefix string `json:"prefix"`
}

// Fixed messages for internal failures.
const (
	msgRenderFailed = "Failed to generate diagram"
	msgImageFailed  = "Failed to fetch diagram"
	msgDraftFailed  = "Failed to access draft"
)

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err, msgRenderFailed)
		return
	}

	// Whitespace-only code is rejected here as empty, not just in the page.
	res, err := s.renderer.Render(r.Context(), req.Code)
	if err != nil {
		s.writeError(w, r, err, msgRenderFailed)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err, msgImageFailed)
		return
	}

	img, err := s.renderer.Fetch(r.Context(), req.Code)
	if err != nil {
		s.writeError(w, r, err, msgImageFailed)
		return
	}

	contentType := img.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	w.Header().Set("X-Diagram-Url", img.Result.URL)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img.Data)
}

func (s *Server) handleEntities(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err, msgRenderFailed)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{
		"entities": nonNil(plantuml.ExtractEntities(req.Code)),
	})
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err, msgRenderFailed)
		return
	}
	// An empty prefix lists every entity, as when completion is opened on
	// an empty word.
	writeJSON(w, http.StatusOK, map[string][]string{
		"options": nonNil(plantuml.Complete(req.Code, req.Prefix)),
	})
}

func (s *Server) handleSnippets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]plantuml.Snippet{"snippets": plantuml.Snippets})
}

func (s *Server) handleKeywords(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"keywords": plantuml.Keywords})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
