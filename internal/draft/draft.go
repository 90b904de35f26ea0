package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/career-console/internal/prompts"
	"github.com/jonathan/career-console/internal/types"
)

// ProjectDraft is a suggested project entry. It mirrors the create-project
// input shape so the caller can submit it unchanged.
type ProjectDraft struct {
	Name             string   `json:"name"`
	Year             string   `json:"year"`
	DescriptionShort string   `json:"description_short"`
	Bullets          []string `json:"bullets"`
	SkillsUsed       []string `json:"skills_used"`
}

// SummaryDraft is a suggested summary variant.
type SummaryDraft struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Drafter turns free-form notes into candidate catalog entries.
type Drafter struct {
	client Client
}

// NewDrafter wraps an LLM client.
func NewDrafter(client Client) *Drafter {
	return &Drafter{client: client}
}

// DraftProject proposes a project entry from notes. Skill references are
// constrained to the given catalog; anything outside it is dropped so the
// draft always passes referential checks on submit.
func (d *Drafter) DraftProject(ctx context.Context, notes string, catalog types.SkillCatalog) (ProjectDraft, error) {
	if strings.TrimSpace(notes) == "" {
		return ProjectDraft{}, fmt.Errorf("notes are empty")
	}

	prompt := prompts.Format(prompts.MustGet("drafting.json", "draft-project"), map[string]string{
		"SkillCatalog": formatCatalog(catalog),
		"Notes":        notes,
	})

	raw, err := d.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return ProjectDraft{}, err
	}

	var draft ProjectDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return ProjectDraft{}, &ExternalError{Operation: "draft project", Cause: fmt.Errorf("malformed response: %w", err)}
	}

	// The model occasionally references skills outside the catalog despite
	// the prompt constraint. Filter rather than fail.
	known := make(map[string]bool)
	for _, id := range catalog.AllIDs() {
		known[id] = true
	}
	kept := draft.SkillsUsed[:0]
	for _, id := range draft.SkillsUsed {
		if known[id] {
			kept = append(kept, id)
		}
	}
	draft.SkillsUsed = kept

	if strings.TrimSpace(draft.Name) == "" {
		return ProjectDraft{}, &ExternalError{Operation: "draft project", Cause: fmt.Errorf("response has no project name")}
	}
	return draft, nil
}

// DraftSummary proposes a summary variant for a target audience.
func (d *Drafter) DraftSummary(ctx context.Context, audience, background string) (SummaryDraft, error) {
	if strings.TrimSpace(background) == "" {
		return SummaryDraft{}, fmt.Errorf("background is empty")
	}

	prompt := prompts.Format(prompts.MustGet("drafting.json", "draft-summary"), map[string]string{
		"Audience":   audience,
		"Background": background,
	})

	raw, err := d.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return SummaryDraft{}, err
	}

	var draft SummaryDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return SummaryDraft{}, &ExternalError{Operation: "draft summary", Cause: fmt.Errorf("malformed response: %w", err)}
	}
	if strings.TrimSpace(draft.Text) == "" {
		return SummaryDraft{}, &ExternalError{Operation: "draft summary", Cause: fmt.Errorf("response has no text")}
	}
	return draft, nil
}

func formatCatalog(catalog types.SkillCatalog) string {
	var b strings.Builder
	for _, category := range catalog.Categories() {
		for _, entry := range catalog.Entries(category) {
			fmt.Fprintf(&b, "%s: %s\n", entry.ID, entry.Label)
		}
	}
	if b.Len() == 0 {
		return "(empty)\n"
	}
	return b.String()
}
