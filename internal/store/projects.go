package store

import (
	"context"
	"fmt"

	"github.com/jonathan/career-console/internal/types"
)

// ListProjects returns all projects in storage order.
func (m *Master) ListProjects(ctx context.Context) []types.Project {
	return m.Snapshot(ctx).Projects
}

// CreateProject validates the input, checks every cross-reference against
// the current catalog, assigns a fresh unique id, and persists the updated
// collection. On any failure the stored state is unchanged.
func (m *Master) CreateProject(ctx context.Context, input ProjectInput) (types.Project, error) {
	if err := m.checkInput(input); err != nil {
		return types.Project{}, err
	}

	var created types.Project
	err := m.mutate(ctx, func(doc *types.MasterDocument) error {
		if err := checkProjectRefs(doc, input.SkillsUsed, input.LinkedExperience); err != nil {
			return err
		}

		existing := takenIDs(doc)
		for _, p := range doc.Projects {
			existing[p.ID] = true
		}

		created = types.Project{
			ID:               EnsureUniqueID(input.Name, existing),
			Name:             input.Name,
			Year:             input.Year,
			DescriptionShort: input.DescriptionShort,
			Bullets:          NormalizeBullets(input.Bullets),
			SkillsUsed:       dedupe(input.SkillsUsed),
			LinkedExperience: dedupe(input.LinkedExperience),
		}
		doc.Projects = append(doc.Projects, created)
		return nil
	})
	if err != nil {
		return types.Project{}, err
	}
	return created, nil
}

// UpdateProject merges the patch over the existing record and re-validates
// cross-references exactly as in create. The id is never renamed.
func (m *Master) UpdateProject(ctx context.Context, id string, patch ProjectPatch) (types.Project, error) {
	var updated types.Project
	err := m.mutate(ctx, func(doc *types.MasterDocument) error {
		p := doc.FindProject(id)
		if p == nil {
			return &NotFoundError{Kind: "project", ID: id}
		}

		if patch.Name != nil {
			if *patch.Name == "" {
				return &ValidationError{Field: "name", Message: "must not be empty"}
			}
			p.Name = *patch.Name
		}
		if patch.Year != nil {
			p.Year = *patch.Year
		}
		if patch.DescriptionShort != nil {
			p.DescriptionShort = *patch.DescriptionShort
		}
		if patch.Bullets != nil {
			p.Bullets = NormalizeBullets(patch.Bullets)
		}
		if patch.SkillsUsed != nil {
			p.SkillsUsed = dedupe(patch.SkillsUsed)
		}
		if patch.LinkedExperience != nil {
			p.LinkedExperience = dedupe(patch.LinkedExperience)
		}

		if err := checkProjectRefs(doc, p.SkillsUsed, p.LinkedExperience); err != nil {
			return err
		}
		updated = *p
		return nil
	})
	if err != nil {
		return types.Project{}, err
	}
	return updated, nil
}

// DeleteProject removes a project. Projects have no dependents, so there is
// no cascade; selections that still name the id simply resolve it to
// nothing.
func (m *Master) DeleteProject(ctx context.Context, id string) (ReferenceSweep, error) {
	sweep := ReferenceSweep{Kind: "project", ID: id}
	err := m.mutate(ctx, func(doc *types.MasterDocument) error {
		for i := range doc.Projects {
			if doc.Projects[i].ID == id {
				doc.Projects = append(doc.Projects[:i], doc.Projects[i+1:]...)
				retireID(doc, id)
				return nil
			}
		}
		return &NotFoundError{Kind: "project", ID: id}
	})
	if err != nil {
		return ReferenceSweep{}, err
	}
	return sweep, nil
}

// checkProjectRefs verifies that every referenced skill and experience id
// exists. It scans all ids, not just the first miss, reporting the first
// failure found so the caller gets a concrete id to fix.
func checkProjectRefs(doc *types.MasterDocument, skillsUsed, linkedExperience []string) error {
	skillIDs := make(map[string]bool)
	for _, id := range doc.Skills.AllIDs() {
		skillIDs[id] = true
	}
	for _, id := range skillsUsed {
		if !skillIDs[id] {
			return &ValidationError{
				Field:   "skills_used",
				Message: fmt.Sprintf("unknown skill id %q", id),
			}
		}
	}

	expIDs := make(map[string]bool, len(doc.Experience))
	for _, exp := range doc.Experience {
		expIDs[exp.ID] = true
	}
	for _, id := range linkedExperience {
		if !expIDs[id] {
			return &ValidationError{
				Field:   "linked_experience",
				Message: fmt.Sprintf("unknown experience id %q", id),
			}
		}
	}
	return nil
}
