package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/career-console/internal/schemas"
	"github.com/jonathan/career-console/internal/types"
)

// Master owns the lifecycle of every entity in the master document. All
// writes go through mutate, which applies a change to a working copy and
// persists the whole document in one backend call, so observable state moves
// atomically from one valid document to the next.
type Master struct {
	mu       sync.Mutex
	backend  Backend
	doc      types.MasterDocument
	validate *validator.Validate
}

// OpenMaster loads the document from the backend, validates its shape, and
// runs schema normalization (assigning missing ids, defaulting absent
// fields). Normalization changes are persisted before the store is returned.
func OpenMaster(ctx context.Context, backend Backend) (*Master, error) {
	m := &Master{
		backend:  backend,
		validate: validator.New(),
	}

	data, err := backend.LoadDocument(ctx)
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		if err := schemas.ValidateMaster(data); err != nil {
			return nil, fmt.Errorf("master document rejected: %w", err)
		}
		if err := json.Unmarshal(data, &m.doc); err != nil {
			return nil, fmt.Errorf("failed to parse master document: %w", err)
		}
	}

	if normalizeDocument(&m.doc) {
		if err := m.save(ctx, m.doc); err != nil {
			return nil, fmt.Errorf("failed to persist normalized document: %w", err)
		}
	}

	return m, nil
}

// Snapshot returns a deep copy of the current document. Mutating the copy
// has no effect on stored state; resolvers consume these snapshots.
func (m *Master) Snapshot(_ context.Context) types.MasterDocument {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.doc.Clone()
}

// SummaryKeys returns the summary variant keys in document order.
func (m *Master) SummaryKeys(_ context.Context) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.doc.Summary.Keys()
}

// mutate applies fn to a working copy of the document and persists the
// result. If fn or the save fails, the in-memory document and the backend
// are both left exactly as they were: no partial write is ever visible.
func (m *Master) mutate(ctx context.Context, fn func(doc *types.MasterDocument) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	working := m.doc.Clone()
	if err := fn(&working); err != nil {
		return err
	}
	if err := m.save(ctx, working); err != nil {
		return err
	}
	m.doc = working
	return nil
}

func (m *Master) save(ctx context.Context, doc types.MasterDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal master document: %w", err)
	}
	return m.backend.SaveDocument(ctx, data)
}

// checkInput runs struct-tag validation and converts the first failure into
// the store's ValidationError type.
func (m *Master) checkInput(input any) error {
	if err := m.validate.Struct(input); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &ValidationError{
				Field:   fe.Field(),
				Message: fmt.Sprintf("failed %q validation", fe.Tag()),
			}
		}
		return &ValidationError{Message: err.Error()}
	}
	return nil
}

// normalizeDocument upgrades documents written by older tooling: assigns
// missing ids, defaults absent project fields, and derives the freelance
// flag from the legacy company-name convention. Returns true if anything
// changed.
func normalizeDocument(doc *types.MasterDocument) bool {
	mutated := false

	expIDs := make(map[string]bool)
	for i := range doc.Experience {
		exp := &doc.Experience[i]
		if exp.ID == "" {
			exp.ID = EnsureUniqueID(firstNonEmpty(exp.Company, "experience"), expIDs)
			mutated = true
		}
		expIDs[exp.ID] = true
		if exp.Company == "Freelance" && !exp.Freelance {
			exp.Freelance = true
			mutated = true
		}
	}

	projectIDs := make(map[string]bool)
	for i := range doc.Projects {
		p := &doc.Projects[i]
		if p.ID == "" {
			p.ID = EnsureUniqueID(firstNonEmpty(p.Name, "project"), projectIDs)
			mutated = true
		}
		projectIDs[p.ID] = true
		if p.Bullets == nil {
			p.Bullets = []string{}
			mutated = true
		}
		if p.SkillsUsed == nil {
			p.SkillsUsed = []string{}
			mutated = true
		}
		if p.LinkedExperience == nil {
			p.LinkedExperience = []string{}
			mutated = true
		}
	}

	skillIDs := make(map[string]bool)
	for _, category := range doc.Skills.Categories() {
		entries := doc.Skills.Entries(category)
		changed := false
		for i := range entries {
			if entries[i].ID == "" {
				entries[i].ID = EnsureUniqueID(firstNonEmpty(entries[i].Label, "skill"), skillIDs)
				changed = true
			}
			skillIDs[entries[i].ID] = true
		}
		if changed {
			doc.Skills.SetEntries(category, entries)
			mutated = true
		}
	}

	return mutated
}

// takenIDs seeds an id set with the document's retired ids. Callers add
// their collection's live ids on top before generating a new one.
func takenIDs(doc *types.MasterDocument) map[string]bool {
	taken := make(map[string]bool, len(doc.RetiredIDs))
	for _, id := range doc.RetiredIDs {
		taken[id] = true
	}
	return taken
}

// retireID records a deleted id so it is never assigned again.
func retireID(doc *types.MasterDocument, id string) {
	doc.RetiredIDs = append(doc.RetiredIDs, id)
}

func firstNonEmpty(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
