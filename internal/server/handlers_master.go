package server

import (
	"net/http"

	"github.com/jonathan/career-console/internal/store"
)

// handleGetProfile returns the identity block of the master document.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	doc := s.master.Snapshot(r.Context())
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"name":    doc.Name,
		"contact": doc.Contact,
	})
}

// handleUpdateProfile merges a partial update over name and contact.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var input store.ProfileInput
	if err := s.decodeBody(r, &input); err != nil {
		s.failResponse(w, err)
		return
	}

	doc, err := s.master.UpdateProfile(r.Context(), input)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"name":    doc.Name,
		"contact": doc.Contact,
	})
}

// handleListSummaries returns every summary variant in document order.
func (s *Server) handleListSummaries(w http.ResponseWriter, r *http.Request) {
	variants := s.master.SummaryVariants(r.Context())

	out := make([]map[string]string, 0, variants.Len())
	for _, key := range variants.Keys() {
		text, _ := variants.Get(key)
		out = append(out, map[string]string{"key": key, "text": text})
	}
	s.jsonResponse(w, http.StatusOK, out)
}

// handleSetSummary inserts or replaces one summary variant.
func (s *Server) handleSetSummary(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	var body struct {
		Text string `json:"text"`
	}
	if err := s.decodeBody(r, &body); err != nil {
		s.failResponse(w, err)
		return
	}

	if err := s.master.SetSummaryVariant(r.Context(), key, body.Text); err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"key": key, "text": body.Text})
}

// handleDeleteSummary removes one summary variant.
func (s *Server) handleDeleteSummary(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if err := s.master.DeleteSummaryVariant(r.Context(), key); err != nil {
		s.failResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
