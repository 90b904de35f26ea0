package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-console/internal/types"
)

func fixtureDocument() types.MasterDocument {
	var doc types.MasterDocument
	doc.Name = "Jordan Avery"
	doc.Contact = types.Contact{Email: "jordan@example.com"}

	doc.Summary.Set("default", "Default summary.")
	doc.Summary.Set("backend", "Backend summary.")

	doc.Experience = []types.Experience{
		{ID: "acme", Company: "Acme Corp", Title: "Senior Engineer"},
		{ID: "freelance", Company: "Freelance", Title: "Consultant", Freelance: true},
		{ID: "initech", Company: "Initech", Title: "Engineer"},
	}

	doc.Projects = []types.Project{
		{ID: "edge-cache", Name: "Edge Cache"},
		{ID: "crawler", Name: "Site Crawler"},
	}

	doc.Skills.SetEntries("tools", []types.SkillEntry{{ID: "go", Label: "Go"}})
	doc.Skills.SetEntries("languages", []types.SkillEntry{{ID: "english", Label: "English"}})
	doc.Skills.SetEntries("other", []types.SkillEntry{{ID: "writing", Label: "Writing"}})

	return doc
}

func TestResolve_IsDeterministic(t *testing.T) {
	doc := fixtureDocument()
	sel := types.Selection{
		Title:            "Senior Engineer",
		SummaryKey:       "backend",
		ShowFreelance:    true,
		SelectedProjects: []string{"crawler", "edge-cache"},
		SkillsOrder:      []string{"languages"},
		SkillsLabelMap:   map[string]string{"tools": "Tooling"},
	}

	first := Resolve(doc, sel)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Resolve(doc, sel))
	}
}

func TestResolve_SummaryFallbackChain(t *testing.T) {
	doc := fixtureDocument()

	// Selected key wins.
	vm := Resolve(doc, types.Selection{SummaryKey: "backend"})
	assert.Equal(t, "Backend summary.", vm.Summary)

	// Missing key falls back to default.
	vm = Resolve(doc, types.Selection{SummaryKey: "missing"})
	assert.Equal(t, "Default summary.", vm.Summary)

	// Empty key also lands on default.
	vm = Resolve(doc, types.Selection{})
	assert.Equal(t, "Default summary.", vm.Summary)
}

func TestResolve_SummaryFallsBackToFirstVariant(t *testing.T) {
	var doc types.MasterDocument
	doc.Summary.Set("zeta", "First in document order.")
	doc.Summary.Set("alpha", "Second.")

	vm := Resolve(doc, types.Selection{SummaryKey: "missing"})
	assert.Equal(t, "First in document order.", vm.Summary)
}

func TestResolve_SummaryEmptyWhenNoVariants(t *testing.T) {
	vm := Resolve(types.MasterDocument{}, types.Selection{SummaryKey: "anything"})
	assert.Equal(t, "", vm.Summary)
}

func TestResolve_FreelanceFilter(t *testing.T) {
	doc := fixtureDocument()

	shown := Resolve(doc, types.Selection{ShowFreelance: true})
	require.Len(t, shown.Experience, 3)

	hidden := Resolve(doc, types.Selection{ShowFreelance: false})
	require.Len(t, hidden.Experience, 2)
	// Stored order is preserved for the survivors.
	assert.Equal(t, "acme", hidden.Experience[0].ID)
	assert.Equal(t, "initech", hidden.Experience[1].ID)
}

func TestResolve_ProjectsFollowSelectionOrder(t *testing.T) {
	doc := fixtureDocument()

	vm := Resolve(doc, types.Selection{
		SelectedProjects: []string{"crawler", "edge-cache"},
	})
	require.Len(t, vm.Projects, 2)
	assert.Equal(t, "crawler", vm.Projects[0].ID)
	assert.Equal(t, "edge-cache", vm.Projects[1].ID)
}

func TestResolve_ProjectNameFallbackAndSilentDrop(t *testing.T) {
	doc := fixtureDocument()

	vm := Resolve(doc, types.Selection{
		SelectedProjects: []string{"Edge Cache", "deleted-project", "crawler"},
	})
	// The name reference resolves, the dangling one vanishes without error.
	require.Len(t, vm.Projects, 2)
	assert.Equal(t, "edge-cache", vm.Projects[0].ID)
	assert.Equal(t, "crawler", vm.Projects[1].ID)
}

func TestResolve_EmptySelectionYieldsNoProjects(t *testing.T) {
	vm := Resolve(fixtureDocument(), types.Selection{})
	assert.Empty(t, vm.Projects)
}

func TestResolve_SkillsOrderedBySelectionThenCatalog(t *testing.T) {
	doc := fixtureDocument()

	vm := Resolve(doc, types.Selection{
		SkillsOrder: []string{"other", "tools"},
	})
	require.Len(t, vm.Skills, 3)
	assert.Equal(t, "other", vm.Skills[0].Category)
	assert.Equal(t, "tools", vm.Skills[1].Category)
	// Remaining categories follow in catalog order.
	assert.Equal(t, "languages", vm.Skills[2].Category)
}

func TestResolve_SkillsOrderIgnoresPhantomsAndDuplicates(t *testing.T) {
	doc := fixtureDocument()

	vm := Resolve(doc, types.Selection{
		SkillsOrder: []string{"tools", "phantom", "tools"},
	})
	require.Len(t, vm.Skills, 3)
	assert.Equal(t, "tools", vm.Skills[0].Category)
	assert.Equal(t, "languages", vm.Skills[1].Category)
	assert.Equal(t, "other", vm.Skills[2].Category)
}

func TestResolve_SkillLabelOverrides(t *testing.T) {
	doc := fixtureDocument()

	vm := Resolve(doc, types.Selection{
		SkillsLabelMap: map[string]string{"tools": "Tooling & Infrastructure"},
	})
	assert.Equal(t, "Tooling & Infrastructure", vm.Skills[0].Label)
	// Unmapped categories fall back to the raw key.
	assert.Equal(t, "languages", vm.Skills[1].Label)
}

func TestResolve_CopiesCarryNoAliases(t *testing.T) {
	doc := fixtureDocument()
	vm := Resolve(doc, types.Selection{SelectedProjects: []string{"edge-cache"}})

	vm.Projects[0].Name = "Mutated"
	assert.Equal(t, "Edge Cache", doc.Projects[0].Name)
}
