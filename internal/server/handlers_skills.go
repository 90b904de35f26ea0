package server

import (
	"net/http"

	"github.com/jonathan/career-console/internal/store"
)

// handleListSkills returns the catalog with per-skill usage, in catalog
// order.
func (s *Server) handleListSkills(w http.ResponseWriter, r *http.Request) {
	categories, entries := s.master.SkillsWithUsage(r.Context())

	type categoryOut struct {
		Category string                 `json:"category"`
		Skills   []store.SkillWithUsage `json:"skills"`
	}
	out := make([]categoryOut, 0, len(categories))
	for _, category := range categories {
		out = append(out, categoryOut{Category: category, Skills: entries[category]})
	}
	s.jsonResponse(w, http.StatusOK, out)
}

// handleAddSkill appends a skill to a category.
func (s *Server) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	var input store.SkillInput
	if err := s.decodeBody(r, &input); err != nil {
		s.failResponse(w, err)
		return
	}

	entry, err := s.master.AddSkill(r.Context(), input)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, entry)
}

// handleSkillUsage returns the projects referencing a skill.
func (s *Server) handleSkillUsage(w http.ResponseWriter, r *http.Request) {
	refs := s.master.SkillUsage(r.Context(), r.PathValue("id"))
	if refs == nil {
		refs = []store.ProjectRef{}
	}
	s.jsonResponse(w, http.StatusOK, refs)
}

// handleUpdateSkill changes a skill's display label.
func (s *Server) handleUpdateSkill(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Label string `json:"label"`
	}
	if err := s.decodeBody(r, &body); err != nil {
		s.failResponse(w, err)
		return
	}

	entry, err := s.master.UpdateSkill(r.Context(), r.PathValue("category"), r.PathValue("id"), body.Label)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, entry)
}

// handleDeleteSkill removes a skill and strips its references from every
// project in the same write.
func (s *Server) handleDeleteSkill(w http.ResponseWriter, r *http.Request) {
	sweep, err := s.master.DeleteSkill(r.Context(), r.PathValue("category"), r.PathValue("id"))
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sweep)
}
