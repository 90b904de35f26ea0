package server

import (
	"net/http"

	"github.com/jonathan/career-console/internal/store"
)

// handleListProjects returns all projects in storage order.
func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.master.ListProjects(r.Context()))
}

// handleCreateProject adds a project after checking every cross-reference.
func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var input store.ProjectInput
	if err := s.decodeBody(r, &input); err != nil {
		s.failResponse(w, err)
		return
	}

	created, err := s.master.CreateProject(r.Context(), input)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, created)
}

// handleUpdateProject merges a partial update and re-checks references.
func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var patch store.ProjectPatch
	if err := s.decodeBody(r, &patch); err != nil {
		s.failResponse(w, err)
		return
	}

	updated, err := s.master.UpdateProject(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

// handleDeleteProject removes a project. Nothing references projects, so
// there is no cascade.
func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if _, err := s.master.DeleteProject(r.Context(), r.PathValue("id")); err != nil {
		s.failResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
