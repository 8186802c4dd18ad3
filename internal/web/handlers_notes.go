package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type createNoteRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// handleCreateNote persists a note with its body encrypted at rest.
func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "NOTE003", "invalid request body")
		return
	}

	summary, err := s.service.CreateNote(r.Context(), req.Title, req.Body)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, summary)
}

// handleListNotes lists note summaries (titles only, no decryption).
func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.service.Notes(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, summaries)
}

// handleGetNote returns one note, body decrypted on demand.
func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	detail, err := s.service.Note(r.Context(), chi.URLParam(r, "noteID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, detail)
}

// handleDeleteNote removes a note permanently.
func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteNote(r.Context(), chi.URLParam(r, "noteID")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
