package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/career-console/internal/store"
)

// handleDraftProject proposes a project entry from free-form notes.
func (s *Server) handleDraftProject(w http.ResponseWriter, r *http.Request) {
	if s.drafter == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "drafting is not configured")
		return
	}

	var body struct {
		Notes string `json:"notes"`
	}
	if err := s.decodeBody(r, &body); err != nil {
		s.failResponse(w, err)
		return
	}
	if strings.TrimSpace(body.Notes) == "" {
		s.failResponse(w, &store.ValidationError{Field: "notes", Message: "must not be empty"})
		return
	}

	proposal, err := s.drafter.DraftProject(r.Context(), body.Notes, s.master.SkillCatalog(r.Context()))
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, proposal)
}

// handleDraftSummary proposes a summary variant for a target audience.
func (s *Server) handleDraftSummary(w http.ResponseWriter, r *http.Request) {
	if s.drafter == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "drafting is not configured")
		return
	}

	var body struct {
		Audience   string `json:"audience"`
		Background string `json:"background"`
	}
	if err := s.decodeBody(r, &body); err != nil {
		s.failResponse(w, err)
		return
	}
	if strings.TrimSpace(body.Background) == "" {
		s.failResponse(w, &store.ValidationError{Field: "background", Message: "must not be empty"})
		return
	}

	proposal, err := s.drafter.DraftSummary(r.Context(), body.Audience, body.Background)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, proposal)
}
