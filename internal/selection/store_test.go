package selection

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-console/internal/store"
	"github.com/jonathan/career-console/internal/types"
)

// staticCatalog satisfies Catalog with a fixed document.
type staticCatalog struct {
	doc types.MasterDocument
}

func (c staticCatalog) Snapshot(context.Context) types.MasterDocument {
	return c.doc.Clone()
}

func testCatalog() staticCatalog {
	var doc types.MasterDocument
	doc.Projects = []types.Project{
		{ID: "edge-cache", Name: "Edge Cache"},
		{ID: "crawler", Name: "Site Crawler"},
	}
	return staticCatalog{doc: doc}
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	backend, err := NewDir(dir)
	require.NoError(t, err)
	return NewStore(backend, testCatalog(), DefaultTemplate()), dir
}

func TestCreate_SeedsFromTemplate(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	sel, err := s.Create(ctx, "Acme Senior", Patch{})
	require.NoError(t, err)

	assert.Equal(t, "acme-senior", sel.Slug)
	assert.True(t, sel.ShowFreelance)
	assert.Empty(t, sel.SelectedProjects)
	assert.NotNil(t, sel.SkillsLabelMap)
}

func TestCreate_ExistingSlugIsRejected(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "acme", Patch{})
	require.NoError(t, err)

	_, err = s.Create(ctx, "acme", Patch{})
	var verr *store.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "slug", verr.Field)
}

func TestCreate_EmptySlugIsRejected(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Create(context.Background(), "", Patch{})
	var verr *store.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestCreate_NormalizesNameRefsToIDs(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	sel, err := s.Create(ctx, "acme", Patch{
		SelectedProjects: []string{"Edge Cache", "crawler", "Unknown Thing"},
	})
	require.NoError(t, err)

	// Display names become ids; ids stay; unknown references are kept as
	// written and resolve to nothing at read time.
	assert.Equal(t, []string{"edge-cache", "crawler", "Unknown Thing"}, sel.SelectedProjects)
}

func TestGet_DefaultsAbsentCollections(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	raw := `{"title": "Minimal", "show_freelance": false}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "minimal.json"), []byte(raw), 0o644))

	sel, err := s.Get(ctx, "minimal")
	require.NoError(t, err)
	assert.Equal(t, "minimal", sel.Slug)
	assert.NotNil(t, sel.SelectedProjects)
	assert.NotNil(t, sel.SkillsOrder)
	assert.NotNil(t, sel.SkillsLabelMap)
}

func TestGet_NotFound(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Get(context.Background(), "ghost")
	var nf *store.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "selection", nf.Kind)
}

func TestGet_RejectsMalformedDocument(t *testing.T) {
	s, dir := newTestStore(t)

	raw := `{"title": 42}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte(raw), 0o644))

	_, err := s.Get(context.Background(), "bad")
	assert.Error(t, err)
}

func TestUpdate_MergesPatch(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "acme", Patch{})
	require.NoError(t, err)

	title := "Platform Engineer"
	show := false
	updated, err := s.Update(ctx, "acme", Patch{
		Title:         &title,
		ShowFreelance: &show,
	})
	require.NoError(t, err)
	assert.Equal(t, "Platform Engineer", updated.Title)
	assert.False(t, updated.ShowFreelance)

	// Fields not in the patch kept their values.
	again, err := s.Get(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "Platform Engineer", again.Title)
}

func TestDelete(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "acme", Patch{})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "acme"))

	err = s.Delete(ctx, "acme")
	var nf *store.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestList_ReturnsSummariesInSlugOrder(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for _, slug := range []string{"zeta", "alpha"} {
		_, err := s.Create(ctx, slug, Patch{})
		require.NoError(t, err)
	}

	summaries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "alpha", summaries[0].Slug)
	assert.Equal(t, "zeta", summaries[1].Slug)
}

func TestSave_DoesNotPersistSlugField(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "acme", Patch{})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "acme.json"))
	require.NoError(t, err)

	var onDisk map[string]any
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.NotContains(t, onDisk, "slug")
}

func TestDirBackend_TemplateFileIsNotListed(t *testing.T) {
	dir := t.TempDir()
	backend, err := NewDir(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "template.json"), []byte(`{}`), 0o644))
	require.NoError(t, backend.SaveSelection(context.Background(), "real", []byte(`{}`)))

	slugs, err := backend.ListSlugs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"real"}, slugs)
}
