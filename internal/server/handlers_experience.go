package server

import (
	"net/http"

	"github.com/jonathan/career-console/internal/store"
)

// handleListExperience returns all experience entries in storage order.
func (s *Server) handleListExperience(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.master.ListExperience(r.Context()))
}

// handleCreateExperience adds a new experience entry.
func (s *Server) handleCreateExperience(w http.ResponseWriter, r *http.Request) {
	var input store.ExperienceInput
	if err := s.decodeBody(r, &input); err != nil {
		s.failResponse(w, err)
		return
	}

	created, err := s.master.CreateExperience(r.Context(), input)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, created)
}

// handleUpdateExperience merges a partial update over an entry.
func (s *Server) handleUpdateExperience(w http.ResponseWriter, r *http.Request) {
	var patch store.ExperiencePatch
	if err := s.decodeBody(r, &patch); err != nil {
		s.failResponse(w, err)
		return
	}

	updated, err := s.master.UpdateExperience(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

// handleDeleteExperience removes an entry and strips its references from
// every project in the same write.
func (s *Server) handleDeleteExperience(w http.ResponseWriter, r *http.Request) {
	sweep, err := s.master.DeleteExperience(r.Context(), r.PathValue("id"))
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sweep)
}
