package store

import (
	"context"

	"github.com/jonathan/career-console/internal/types"
)

// SummaryVariants returns the variant map snapshot.
func (m *Master) SummaryVariants(ctx context.Context) types.SummaryVariants {
	return m.Snapshot(ctx).Summary
}

// SetSummaryVariant inserts or replaces one summary variant. A new key
// appends to the variant order; an existing key keeps its position.
func (m *Master) SetSummaryVariant(ctx context.Context, key, text string) error {
	if key == "" {
		return &ValidationError{Field: "key", Message: "must not be empty"}
	}
	if text == "" {
		return &ValidationError{Field: "text", Message: "must not be empty"}
	}
	return m.mutate(ctx, func(doc *types.MasterDocument) error {
		doc.Summary.Set(key, text)
		return nil
	})
}

// DeleteSummaryVariant removes one variant. Selections that still name the
// key fall back through the summary chain at resolve time, so there is no
// cascade.
func (m *Master) DeleteSummaryVariant(ctx context.Context, key string) error {
	return m.mutate(ctx, func(doc *types.MasterDocument) error {
		if !doc.Summary.Delete(key) {
			return &NotFoundError{Kind: "summary variant", ID: key}
		}
		return nil
	})
}

// ProfileInput updates the identity block. Nil pointers leave the current
// value in place.
type ProfileInput struct {
	Name     *string      `json:"name"`
	Phone    *string      `json:"phone"`
	Email    *string      `json:"email"`
	Location *string      `json:"location"`
	Links    []types.Link `json:"links"`
}

// UpdateProfile merges the input over the stored name and contact block.
func (m *Master) UpdateProfile(ctx context.Context, input ProfileInput) (types.MasterDocument, error) {
	err := m.mutate(ctx, func(doc *types.MasterDocument) error {
		if input.Name != nil {
			if *input.Name == "" {
				return &ValidationError{Field: "name", Message: "must not be empty"}
			}
			doc.Name = *input.Name
		}
		if input.Phone != nil {
			doc.Contact.Phone = *input.Phone
		}
		if input.Email != nil {
			doc.Contact.Email = *input.Email
		}
		if input.Location != nil {
			doc.Contact.Location = *input.Location
		}
		if input.Links != nil {
			doc.Contact.Links = append([]types.Link(nil), input.Links...)
		}
		return nil
	})
	if err != nil {
		return types.MasterDocument{}, err
	}
	return m.Snapshot(ctx), nil
}
