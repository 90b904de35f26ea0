// Package resolve computes the effective view of one selection against one
// master document snapshot.
package resolve

import "github.com/jonathan/career-console/internal/types"

// DefaultSummaryKey is the conventional fallback variant.
const DefaultSummaryKey = "default"

// Resolve is a pure function: the same snapshot and selection always
// produce the same ViewModel. It never fails; every missing piece degrades
// to an empty or default section.
func Resolve(doc types.MasterDocument, sel types.Selection) types.ViewModel {
	return types.ViewModel{
		Title:      sel.Title,
		Name:       doc.Name,
		Contact:    doc.Contact,
		Summary:    resolveSummary(doc.Summary, sel.SummaryKey),
		Experience: resolveExperience(doc.Experience, sel.ShowFreelance),
		Projects:   resolveProjects(doc, sel.SelectedProjects),
		Skills:     resolveSkills(doc.Skills, sel.SkillsOrder, sel.SkillsLabelMap),
	}
}

// resolveSummary walks the fallback chain: the selection's key, then
// "default", then the first variant in document order, then empty.
func resolveSummary(variants types.SummaryVariants, key string) string {
	if key != "" {
		if text, ok := variants.Get(key); ok {
			return text
		}
	}
	if text, ok := variants.Get(DefaultSummaryKey); ok {
		return text
	}
	if keys := variants.Keys(); len(keys) > 0 {
		text, _ := variants.Get(keys[0])
		return text
	}
	return ""
}

// resolveExperience keeps stored order and drops freelance entries when the
// selection hides them.
func resolveExperience(entries []types.Experience, showFreelance bool) []types.Experience {
	out := make([]types.Experience, 0, len(entries))
	for _, exp := range entries {
		if exp.Freelance && !showFreelance {
			continue
		}
		out = append(out, exp)
	}
	return out
}

// resolveProjects maps each selected reference to a project record, id match
// first, then display-name match for references written before ids existed.
// Unresolvable references are dropped silently; output order follows the
// selection, not the catalog.
func resolveProjects(doc types.MasterDocument, refs []string) []types.Project {
	out := make([]types.Project, 0, len(refs))
	for _, ref := range refs {
		if p := doc.FindProject(ref); p != nil {
			out = append(out, *p)
			continue
		}
		if p := doc.FindProjectByName(ref); p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// resolveSkills orders categories by skills_order first (first occurrence
// wins, categories absent from the catalog are dropped), then the remaining
// catalog categories in catalog order. Labels come from the override map,
// falling back to the raw category key.
func resolveSkills(catalog types.SkillCatalog, order []string, labels map[string]string) []types.SkillGroup {
	seen := make(map[string]bool)
	ordered := make([]string, 0, len(order))
	for _, category := range order {
		if seen[category] || !catalog.Has(category) {
			continue
		}
		seen[category] = true
		ordered = append(ordered, category)
	}
	for _, category := range catalog.Categories() {
		if !seen[category] {
			seen[category] = true
			ordered = append(ordered, category)
		}
	}

	groups := make([]types.SkillGroup, 0, len(ordered))
	for _, category := range ordered {
		label := category
		if override, ok := labels[category]; ok {
			label = override
		}
		groups = append(groups, types.SkillGroup{
			Category: category,
			Label:    label,
			Entries:  catalog.Entries(category),
		})
	}
	return groups
}
