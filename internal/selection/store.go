package selection

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jonathan/career-console/internal/schemas"
	"github.com/jonathan/career-console/internal/store"
	"github.com/jonathan/career-console/internal/types"
)

// Catalog supplies the master snapshot used to normalize project
// references at write time. *store.Master satisfies it.
type Catalog interface {
	Snapshot(ctx context.Context) types.MasterDocument
}

// Store manages selection documents, one per slug. Project references are
// normalized to stable ids when a selection is written, so read paths never
// face the legacy id-versus-name ambiguity.
type Store struct {
	mu       sync.Mutex
	backend  Backend
	catalog  Catalog
	template types.Selection
}

// DefaultTemplate is the seed document for new selections.
func DefaultTemplate() types.Selection {
	return types.Selection{
		ShowFreelance:    true,
		SelectedProjects: []string{},
		SkillsOrder:      []string{},
		SkillsLabelMap:   map[string]string{},
	}
}

// NewStore creates a selection store over a backend. New selections are
// seeded from the template document.
func NewStore(backend Backend, catalog Catalog, template types.Selection) *Store {
	return &Store{backend: backend, catalog: catalog, template: template}
}

// Patch carries a partial selection update. Nil pointers and nil slices
// mean "leave unchanged".
type Patch struct {
	Title            *string           `json:"title"`
	SummaryKey       *string           `json:"summary_key"`
	ShowFreelance    *bool             `json:"show_freelance"`
	SelectedProjects []string          `json:"selected_projects"`
	SkillsOrder      []string          `json:"skills_order"`
	SkillsLabelMap   map[string]string `json:"skills_label_map"`
}

// List returns a lightweight summary of every stored selection.
func (s *Store) List(ctx context.Context) ([]types.SelectionSummary, error) {
	slugs, err := s.backend.ListSlugs(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]types.SelectionSummary, 0, len(slugs))
	for _, slug := range slugs {
		sel, err := s.Get(ctx, slug)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, types.SelectionSummary{
			Slug:             sel.Slug,
			Title:            sel.Title,
			SummaryKey:       sel.SummaryKey,
			SelectedProjects: sel.SelectedProjects,
		})
	}
	return summaries, nil
}

// Get loads one selection by slug.
func (s *Store) Get(ctx context.Context, slug string) (types.Selection, error) {
	slug = store.Slugify(slug)
	data, err := s.backend.LoadSelection(ctx, slug)
	if err != nil {
		return types.Selection{}, err
	}
	if data == nil {
		return types.Selection{}, &store.NotFoundError{Kind: "selection", ID: slug}
	}
	if err := schemas.ValidateSelection(data); err != nil {
		return types.Selection{}, fmt.Errorf("selection %s rejected: %w", slug, err)
	}

	var sel types.Selection
	if err := json.Unmarshal(data, &sel); err != nil {
		return types.Selection{}, fmt.Errorf("failed to parse selection %s: %w", slug, err)
	}
	sel.Slug = slug
	if sel.SelectedProjects == nil {
		sel.SelectedProjects = []string{}
	}
	if sel.SkillsOrder == nil {
		sel.SkillsOrder = []string{}
	}
	if sel.SkillsLabelMap == nil {
		sel.SkillsLabelMap = map[string]string{}
	}
	return sel, nil
}

// Create seeds a new selection from the template and applies the patch.
// Creating a slug that already exists is a validation failure.
func (s *Store) Create(ctx context.Context, slug string, patch Patch) (types.Selection, error) {
	if slug == "" {
		return types.Selection{}, &store.ValidationError{Field: "slug", Message: "must not be empty"}
	}
	slug = store.Slugify(slug)

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.backend.LoadSelection(ctx, slug)
	if err != nil {
		return types.Selection{}, err
	}
	if existing != nil {
		return types.Selection{}, &store.ValidationError{
			Field:   "slug",
			Message: fmt.Sprintf("selection %q already exists", slug),
		}
	}

	sel := s.template.Clone()
	sel.Slug = slug
	s.applyPatch(&sel, patch)
	s.normalizeRefs(ctx, &sel)

	if err := s.save(ctx, sel); err != nil {
		return types.Selection{}, err
	}
	return sel, nil
}

// Update merges the patch over the stored selection.
func (s *Store) Update(ctx context.Context, slug string, patch Patch) (types.Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel, err := s.Get(ctx, slug)
	if err != nil {
		return types.Selection{}, err
	}

	s.applyPatch(&sel, patch)
	s.normalizeRefs(ctx, &sel)

	if err := s.save(ctx, sel); err != nil {
		return types.Selection{}, err
	}
	return sel, nil
}

// Delete removes a selection document.
func (s *Store) Delete(ctx context.Context, slug string) error {
	slug = store.Slugify(slug)
	deleted, err := s.backend.DeleteSelection(ctx, slug)
	if err != nil {
		return err
	}
	if !deleted {
		return &store.NotFoundError{Kind: "selection", ID: slug}
	}
	return nil
}

func (s *Store) applyPatch(sel *types.Selection, patch Patch) {
	if patch.Title != nil {
		sel.Title = *patch.Title
	}
	if patch.SummaryKey != nil {
		sel.SummaryKey = *patch.SummaryKey
	}
	if patch.ShowFreelance != nil {
		sel.ShowFreelance = *patch.ShowFreelance
	}
	if patch.SelectedProjects != nil {
		sel.SelectedProjects = append([]string(nil), patch.SelectedProjects...)
	}
	if patch.SkillsOrder != nil {
		sel.SkillsOrder = append([]string(nil), patch.SkillsOrder...)
	}
	if patch.SkillsLabelMap != nil {
		sel.SkillsLabelMap = make(map[string]string, len(patch.SkillsLabelMap))
		for k, v := range patch.SkillsLabelMap {
			sel.SkillsLabelMap[k] = v
		}
	}
}

// normalizeRefs rewrites project references to stable ids: an id match
// wins, then a display-name match. References matching nothing are kept
// verbatim; they resolve to an empty slot at read time rather than failing
// the write.
func (s *Store) normalizeRefs(ctx context.Context, sel *types.Selection) {
	doc := s.catalog.Snapshot(ctx)
	normalized := make([]string, len(sel.SelectedProjects))
	for i, ref := range sel.SelectedProjects {
		switch {
		case doc.FindProject(ref) != nil:
			normalized[i] = ref
		case doc.FindProjectByName(ref) != nil:
			normalized[i] = doc.FindProjectByName(ref).ID
		default:
			normalized[i] = ref
		}
	}
	sel.SelectedProjects = normalized
}

func (s *Store) save(ctx context.Context, sel types.Selection) error {
	// The slug names the file/row; it is not duplicated inside the document.
	onDisk := sel
	onDisk.Slug = ""
	data, err := json.MarshalIndent(onDisk, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal selection %s: %w", sel.Slug, err)
	}
	return s.backend.SaveSelection(ctx, sel.Slug, data)
}
