package store

import (
	"context"

	"github.com/jonathan/career-console/internal/types"
)

// ListExperience returns all experience entries in storage order.
func (m *Master) ListExperience(ctx context.Context) []types.Experience {
	return m.Snapshot(ctx).Experience
}

// CreateExperience validates the input, assigns a fresh unique id, and
// appends the entry.
func (m *Master) CreateExperience(ctx context.Context, input ExperienceInput) (types.Experience, error) {
	if err := m.checkInput(input); err != nil {
		return types.Experience{}, err
	}

	var created types.Experience
	err := m.mutate(ctx, func(doc *types.MasterDocument) error {
		existing := takenIDs(doc)
		for _, exp := range doc.Experience {
			existing[exp.ID] = true
		}
		created = types.Experience{
			ID:        EnsureUniqueID(input.Company, existing),
			Company:   input.Company,
			Title:     input.Title,
			Dates:     input.Dates,
			Bullets:   NormalizeBullets(input.Bullets),
			Freelance: input.Freelance,
		}
		doc.Experience = append(doc.Experience, created)
		return nil
	})
	if err != nil {
		return types.Experience{}, err
	}
	return created, nil
}

// UpdateExperience merges the patch over the existing entry. The id is
// never renamed.
func (m *Master) UpdateExperience(ctx context.Context, id string, patch ExperiencePatch) (types.Experience, error) {
	var updated types.Experience
	err := m.mutate(ctx, func(doc *types.MasterDocument) error {
		exp := doc.FindExperience(id)
		if exp == nil {
			return &NotFoundError{Kind: "experience", ID: id}
		}

		if patch.Company != nil {
			if *patch.Company == "" {
				return &ValidationError{Field: "company", Message: "must not be empty"}
			}
			exp.Company = *patch.Company
		}
		if patch.Title != nil {
			if *patch.Title == "" {
				return &ValidationError{Field: "title", Message: "must not be empty"}
			}
			exp.Title = *patch.Title
		}
		if patch.Dates != nil {
			exp.Dates = *patch.Dates
		}
		if patch.Bullets != nil {
			exp.Bullets = NormalizeBullets(patch.Bullets)
		}
		if patch.Freelance != nil {
			exp.Freelance = *patch.Freelance
		}

		updated = *exp
		return nil
	})
	if err != nil {
		return types.Experience{}, err
	}
	return updated, nil
}

// DeleteExperience removes an entry and, in the same write, strips its id
// from every project's linked_experience list.
func (m *Master) DeleteExperience(ctx context.Context, id string) (ReferenceSweep, error) {
	sweep := ReferenceSweep{Kind: "experience", ID: id}
	err := m.mutate(ctx, func(doc *types.MasterDocument) error {
		found := false
		for i := range doc.Experience {
			if doc.Experience[i].ID == id {
				doc.Experience = append(doc.Experience[:i], doc.Experience[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return &NotFoundError{Kind: "experience", ID: id}
		}
		retireID(doc, id)

		stripExperienceRefs(doc, id, &sweep)
		return nil
	})
	if err != nil {
		return ReferenceSweep{}, err
	}
	return sweep, nil
}
