package store

import (
	"context"

	"github.com/jonathan/career-console/internal/types"
)

// ProjectRef identifies a project that uses a skill.
type ProjectRef struct {
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name"`
}

// SkillWithUsage is a catalog entry paired with the projects that currently
// reference it. Usage is derived on demand, never stored, so it always
// reflects the current project collection exactly.
type SkillWithUsage struct {
	types.SkillEntry
	Usage []ProjectRef `json:"usage"`
}

// SkillCatalog returns the catalog snapshot.
func (m *Master) SkillCatalog(ctx context.Context) types.SkillCatalog {
	return m.Snapshot(ctx).Skills
}

// SkillsWithUsage returns every category's entries annotated with the
// projects using each skill, in catalog order.
func (m *Master) SkillsWithUsage(ctx context.Context) ([]string, map[string][]SkillWithUsage) {
	doc := m.Snapshot(ctx)

	usage := make(map[string][]ProjectRef)
	for _, p := range doc.Projects {
		for _, skillID := range p.SkillsUsed {
			usage[skillID] = append(usage[skillID], ProjectRef{ProjectID: p.ID, ProjectName: p.Name})
		}
	}

	categories := doc.Skills.Categories()
	out := make(map[string][]SkillWithUsage, len(categories))
	for _, category := range categories {
		entries := doc.Skills.Entries(category)
		annotated := make([]SkillWithUsage, len(entries))
		for i, entry := range entries {
			annotated[i] = SkillWithUsage{SkillEntry: entry, Usage: usage[entry.ID]}
		}
		out[category] = annotated
	}
	return categories, out
}

// SkillUsage returns the projects whose skills_used contains the given id.
func (m *Master) SkillUsage(ctx context.Context, skillID string) []ProjectRef {
	doc := m.Snapshot(ctx)
	var refs []ProjectRef
	for _, p := range doc.Projects {
		if contains(p.SkillsUsed, skillID) {
			refs = append(refs, ProjectRef{ProjectID: p.ID, ProjectName: p.Name})
		}
	}
	return refs
}

// AddSkill appends a skill to a category, creating the category if needed.
// The new id is unique across the entire catalog, not just the category.
func (m *Master) AddSkill(ctx context.Context, input SkillInput) (types.SkillEntry, error) {
	if err := m.checkInput(input); err != nil {
		return types.SkillEntry{}, err
	}

	var created types.SkillEntry
	err := m.mutate(ctx, func(doc *types.MasterDocument) error {
		existing := takenIDs(doc)
		for _, id := range doc.Skills.AllIDs() {
			existing[id] = true
		}
		created = types.SkillEntry{
			ID:    EnsureUniqueID(input.Label, existing),
			Label: input.Label,
		}
		doc.Skills.Append(input.Category, created)
		return nil
	})
	if err != nil {
		return types.SkillEntry{}, err
	}
	return created, nil
}

// UpdateSkill changes a skill's display label. The id stays fixed.
func (m *Master) UpdateSkill(ctx context.Context, category, skillID, label string) (types.SkillEntry, error) {
	if label == "" {
		return types.SkillEntry{}, &ValidationError{Field: "label", Message: "must not be empty"}
	}

	var updated types.SkillEntry
	err := m.mutate(ctx, func(doc *types.MasterDocument) error {
		if !doc.Skills.Has(category) {
			return &NotFoundError{Kind: "skill category", ID: category}
		}
		entries := doc.Skills.Entries(category)
		for i := range entries {
			if entries[i].ID == skillID {
				entries[i].Label = label
				doc.Skills.SetEntries(category, entries)
				updated = entries[i]
				return nil
			}
		}
		return &NotFoundError{Kind: "skill", ID: skillID}
	})
	if err != nil {
		return types.SkillEntry{}, err
	}
	return updated, nil
}

// DeleteSkill removes a skill and, in the same write, strips its id from
// every project's skills_used list. A failure anywhere leaves the skill and
// all project references intact.
func (m *Master) DeleteSkill(ctx context.Context, category, skillID string) (ReferenceSweep, error) {
	sweep := ReferenceSweep{Kind: "skill", ID: skillID}
	err := m.mutate(ctx, func(doc *types.MasterDocument) error {
		if !doc.Skills.Has(category) {
			return &NotFoundError{Kind: "skill category", ID: category}
		}
		entries := doc.Skills.Entries(category)
		kept := entries[:0]
		for _, entry := range entries {
			if entry.ID != skillID {
				kept = append(kept, entry)
			}
		}
		if len(kept) == len(entries) {
			return &NotFoundError{Kind: "skill", ID: skillID}
		}
		doc.Skills.SetEntries(category, kept)
		retireID(doc, skillID)

		stripSkillRefs(doc, skillID, &sweep)
		return nil
	})
	if err != nil {
		return ReferenceSweep{}, err
	}
	return sweep, nil
}
