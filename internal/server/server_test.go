package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-console/internal/draft"
	"github.com/jonathan/career-console/internal/render"
	"github.com/jonathan/career-console/internal/selection"
	"github.com/jonathan/career-console/internal/store"
	"github.com/jonathan/career-console/internal/types"
)

const seedDocument = `{
  "name": "Jordan Avery",
  "contact": {"phone": "555-0100", "email": "jordan@example.com", "location": "Portland, OR", "links": []},
  "summary": {"default": "Engineer who ships.", "backend": "Backend engineer."},
  "experience": [
    {"id": "acme", "company": "Acme Corp", "title": "Senior Engineer", "dates": "2020-2024", "bullets": ["built things"]}
  ],
  "projects": [
    {"id": "edge-cache", "name": "Edge Cache", "year": "2023", "description_short": "A cache.", "bullets": [], "skills_used": ["go"], "linked_experience": ["acme"]}
  ],
  "skills": {"tools": [{"id": "go", "label": "Go"}]}
}`

// stubClient returns a canned JSON payload without calling any provider.
type stubClient struct {
	response string
	err      error
}

func (c *stubClient) GenerateJSON(context.Context, string) (string, error) {
	return c.response, c.err
}

func (c *stubClient) Close() error { return nil }

func newTestServer(t *testing.T, drafter *draft.Drafter) *Server {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	masterPath := filepath.Join(dir, "master.json")
	require.NoError(t, os.WriteFile(masterPath, []byte(seedDocument), 0o644))
	backend, err := store.NewFile(masterPath)
	require.NoError(t, err)
	master, err := store.OpenMaster(ctx, backend)
	require.NoError(t, err)

	selBackend, err := selection.NewDir(filepath.Join(dir, "selections"))
	require.NoError(t, err)
	selections := selection.NewStore(selBackend, master, selection.DefaultTemplate())

	renderer, err := render.NewRenderer("../../templates/base.html", filepath.Join(dir, "dist"))
	require.NoError(t, err)

	return New(Config{Port: 0}, Deps{
		Log:        zerolog.New(zerolog.NewTestWriter(t)),
		Master:     master,
		Selections: selections,
		Renderer:   renderer,
		Drafter:    drafter,
	})
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestProfileRoundTrip(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, http.MethodGet, "/profile", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decode[map[string]any](t, rec)
	assert.Equal(t, "Jordan Avery", profile["name"])

	rec = doJSON(t, s, http.MethodPut, "/profile", map[string]string{"email": "next@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/profile", nil)
	assert.Contains(t, rec.Body.String(), "next@example.com")
}

func TestSummaryEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, http.MethodPut, "/summary/platform", map[string]string{"text": "Platform engineer."})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	variants := decode[[]map[string]string](t, rec)
	require.Len(t, variants, 3)
	assert.Equal(t, "platform", variants[2]["key"])

	rec = doJSON(t, s, http.MethodDelete, "/summary/platform", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, "/summary/platform", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSkillEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, http.MethodPost, "/skills", store.SkillInput{Category: "tools", Label: "Kubernetes"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[types.SkillEntry](t, rec)
	assert.Equal(t, "kubernetes", created.ID)

	// Missing label fails struct validation.
	rec = doJSON(t, s, http.MethodPost, "/skills", store.SkillInput{Category: "tools"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/skills/go/usage", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	usage := decode[[]store.ProjectRef](t, rec)
	require.Len(t, usage, 1)
	assert.Equal(t, "edge-cache", usage[0].ProjectID)

	// Deleting the referenced skill reports the cascade.
	rec = doJSON(t, s, http.MethodDelete, "/skills/tools/go", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sweep := decode[store.ReferenceSweep](t, rec)
	assert.Equal(t, []string{"edge-cache"}, sweep.StrippedFrom)
}

func TestProjectEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, http.MethodPost, "/projects", store.ProjectInput{
		Name:       "Crawler",
		SkillsUsed: []string{"go"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Dangling reference is a 400, not a 500.
	rec = doJSON(t, s, http.MethodPost, "/projects", store.ProjectInput{
		Name:       "Broken",
		SkillsUsed: []string{"ghost"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodPut, "/projects/ghost", store.ProjectPatch{})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, "/projects/crawler", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSelectionEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, http.MethodPost, "/selections", map[string]any{
		"slug":              "acme-senior",
		"title":             "Senior Engineer",
		"selected_projects": []string{"Edge Cache"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[types.Selection](t, rec)
	// The display-name reference was normalized to the id on write.
	assert.Equal(t, []string{"edge-cache"}, created.SelectedProjects)

	rec = doJSON(t, s, http.MethodPost, "/selections", map[string]any{"slug": "acme-senior"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/selections/acme-senior", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/selections", nil)
	summaries := decode[[]types.SelectionSummary](t, rec)
	require.Len(t, summaries, 1)
	assert.Equal(t, "acme-senior", summaries[0].Slug)

	rec = doJSON(t, s, http.MethodDelete, "/selections/acme-senior", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/selections/acme-senior", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResolveAndPreviewEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, http.MethodPost, "/selections", map[string]any{
		"slug":              "acme-senior",
		"title":             "Senior Engineer",
		"selected_projects": []string{"edge-cache"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/selections/acme-senior/resolve", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	vm := decode[types.ViewModel](t, rec)
	assert.Equal(t, "Senior Engineer", vm.Title)
	assert.Equal(t, "Engineer who ships.", vm.Summary)
	require.Len(t, vm.Projects, 1)

	rec = doJSON(t, s, http.MethodGet, "/selections/acme-senior/preview", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Jordan Avery")
}

func TestBuildEndpointWritesArtifact(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, http.MethodPost, "/selections", map[string]any{"slug": "acme-senior", "title": "Senior Engineer"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/selections/acme-senior/build", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[map[string]any](t, rec)

	path, _ := result["path"].(string)
	require.NotEmpty(t, path)
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestDraftEndpoints(t *testing.T) {
	drafter := draft.NewDrafter(&stubClient{
		response: `{"name": "Edge Cache", "year": "2023", "description_short": "A cache.", "bullets": ["served traffic"], "skills_used": ["go", "not-in-catalog"]}`,
	})
	s := newTestServer(t, drafter)

	rec := doJSON(t, s, http.MethodPost, "/draft/project", map[string]string{"notes": "built a cache"})
	require.Equal(t, http.StatusOK, rec.Code)
	proposal := decode[draft.ProjectDraft](t, rec)
	assert.Equal(t, "Edge Cache", proposal.Name)
	// Skills outside the catalog were filtered out of the proposal.
	assert.Equal(t, []string{"go"}, proposal.SkillsUsed)

	rec = doJSON(t, s, http.MethodPost, "/draft/project", map[string]string{"notes": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDraftEndpoints_UnconfiguredReturns503(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, http.MethodPost, "/draft/project", map[string]string{"notes": "anything"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestDraftEndpoints_UpstreamFailureIs502(t *testing.T) {
	drafter := draft.NewDrafter(&stubClient{
		err: &draft.ExternalError{Operation: "generate", Cause: fmt.Errorf("quota exhausted")},
	})
	s := newTestServer(t, drafter)

	rec := doJSON(t, s, http.MethodPost, "/draft/summary", map[string]string{"audience": "backend", "background": "ten years"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestErrorMapping(t *testing.T) {
	s := newTestServer(t, nil)

	// Invalid JSON body.
	req := httptest.NewRequest(http.MethodPost, "/projects", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown selection resolves to 404.
	rec = doJSON(t, s, http.MethodGet, "/selections/ghost/resolve", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
