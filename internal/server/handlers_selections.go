package server

import (
	"net/http"

	"github.com/jonathan/career-console/internal/selection"
)

// handleListSelections returns a summary of every stored selection.
func (s *Server) handleListSelections(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.selections.List(r.Context())
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, summaries)
}

// handleCreateSelection creates a selection from the template plus a patch.
func (s *Server) handleCreateSelection(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Slug string `json:"slug"`
		selection.Patch
	}
	if err := s.decodeBody(r, &body); err != nil {
		s.failResponse(w, err)
		return
	}

	created, err := s.selections.Create(r.Context(), body.Slug, body.Patch)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, created)
}

// handleGetSelection returns one selection document.
func (s *Server) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	sel, err := s.selections.Get(r.Context(), r.PathValue("slug"))
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sel)
}

// handleUpdateSelection merges a patch over a stored selection.
func (s *Server) handleUpdateSelection(w http.ResponseWriter, r *http.Request) {
	var patch selection.Patch
	if err := s.decodeBody(r, &patch); err != nil {
		s.failResponse(w, err)
		return
	}

	updated, err := s.selections.Update(r.Context(), r.PathValue("slug"), patch)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

// handleDeleteSelection removes a selection document.
func (s *Server) handleDeleteSelection(w http.ResponseWriter, r *http.Request) {
	if err := s.selections.Delete(r.Context(), r.PathValue("slug")); err != nil {
		s.failResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
