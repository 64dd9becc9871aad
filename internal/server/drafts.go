package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/umlpad/pkg/draft"
	"github.com/matzehuels/umlpad/pkg/errors"
)

// draftResponse is a draft as returned by the API. Default is set when the
// draft does not exist and Code holds the default document.
type draftResponse struct {
	ID      string     `json:"id"`
	Code    string     `json:"code"`
	SavedAt *time.Time `json:"savedAt,omitempty"`
	Default bool       `json:"default,omitempty"`
}

func fromDraft(d *draft.Draft) draftResponse {
	savedAt := d.SavedAt
	return draftResponse{ID: d.ID, Code: d.Code, SavedAt: &savedAt}
}

func (s *Server) defaultDraft(id string) draftResponse {
	return draftResponse{ID: id, Code: s.defaultCode, Default: true}
}

func (s *Server) handleCreateDraft(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err, msgDraftFailed)
		return
	}

	d := draft.New(draft.NewID(), req.Code)
	if err := s.saveDraft(r, d); err != nil {
		s.writeError(w, r, err, msgDraftFailed)
		return
	}
	w.Header().Set("Location", "/api/drafts/"+d.ID)
	writeJSON(w, http.StatusCreated, fromDraft(d))
}

func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, err := s.drafts.Load(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, msgDraftFailed)
		return
	}
	if d == nil {
		writeJSON(w, http.StatusOK, s.defaultDraft(id))
		return
	}
	writeJSON(w, http.StatusOK, fromDraft(d))
}

func (s *Server) handlePutDraft(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err, msgDraftFailed)
		return
	}

	d := draft.New(chi.URLParam(r, "id"), req.Code)
	if err := s.saveDraft(r, d); err != nil {
		s.writeError(w, r, err, msgDraftFailed)
		return
	}
	writeJSON(w, http.StatusOK, fromDraft(d))
}

func (s *Server) handleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.drafts.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, msgDraftFailed)
		return
	}
	writeJSON(w, http.StatusOK, s.defaultDraft(id))
}

func (s *Server) saveDraft(r *http.Request, d *draft.Draft) error {
	if err := s.drafts.Save(r.Context(), d); err != nil {
		if errors.IsClientError(err) {
			return err
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "save draft %s", d.ID)
	}
	s.logger.Debug("draft saved", "id", d.ID, "bytes", len(d.Code))
	return nil
}
