package server

import (
	"net/http"
	"os"

	"github.com/jonathan/career-console/internal/export"
	"github.com/jonathan/career-console/internal/resolve"
)

// handleResolveSelection returns the resolved view of a selection against
// the current master snapshot, without assembling a document.
func (s *Server) handleResolveSelection(w http.ResponseWriter, r *http.Request) {
	sel, err := s.selections.Get(r.Context(), r.PathValue("slug"))
	if err != nil {
		s.failResponse(w, err)
		return
	}

	vm := resolve.Resolve(s.master.Snapshot(r.Context()), sel)
	s.jsonResponse(w, http.StatusOK, vm)
}

// handlePreviewSelection renders the document and streams the HTML without
// writing an artifact.
func (s *Server) handlePreviewSelection(w http.ResponseWriter, r *http.Request) {
	sel, err := s.selections.Get(r.Context(), r.PathValue("slug"))
	if err != nil {
		s.failResponse(w, err)
		return
	}

	html, err := s.renderer.Render(s.master.Snapshot(r.Context()), sel)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(html)); err != nil {
		s.log.Error().Err(err).Msg("failed to write preview")
	}
}

// handleBuildSelection renders the document and writes the artifact.
func (s *Server) handleBuildSelection(w http.ResponseWriter, r *http.Request) {
	sel, err := s.selections.Get(r.Context(), r.PathValue("slug"))
	if err != nil {
		s.failResponse(w, err)
		return
	}

	path, err := s.renderer.WriteArtifact(s.master.Snapshot(r.Context()), sel)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"slug":  sel.Slug,
		"path":  path,
		"bytes": info.Size(),
	})
}

// handleExportSelection builds the HTML artifact and prints it to PDF.
func (s *Server) handleExportSelection(w http.ResponseWriter, r *http.Request) {
	sel, err := s.selections.Get(r.Context(), r.PathValue("slug"))
	if err != nil {
		s.failResponse(w, err)
		return
	}

	htmlPath, err := s.renderer.WriteArtifact(s.master.Snapshot(r.Context()), sel)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	pdfPath, err := export.ToPDF(r.Context(), htmlPath, s.exportTimeout, false)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"slug": sel.Slug,
		"html": htmlPath,
		"pdf":  pdfPath,
	})
}
