// Package render composes resolution and assembly into finished documents.
package render

import (
	"strings"

	"github.com/jonathan/career-console/internal/assemble"
	"github.com/jonathan/career-console/internal/types"
)

// BuildBindings flattens a view model into the closed token set the base
// template consumes. Every token the template can reference is bound here,
// even when empty, so a render never trips a missing-binding failure on
// sparse data.
func BuildBindings(vm types.ViewModel) assemble.Binding {
	return assemble.Binding{
		"name":     vm.Name,
		"title":    vm.Title,
		"summary":  vm.Summary,
		"email":    vm.Contact.Email,
		"phone":    vm.Contact.Phone,
		"location": vm.Contact.Location,

		"links":      linkBindings(vm.Contact.Links),
		"experience": experienceBindings(vm.Experience),
		"projects":   projectBindings(vm.Projects),
		"skills":     skillBindings(vm.Skills),

		"has_experience": len(vm.Experience) > 0,
		"has_projects":   len(vm.Projects) > 0,
		"has_skills":     len(vm.Skills) > 0,
	}
}

func linkBindings(links []types.Link) []assemble.Binding {
	out := make([]assemble.Binding, 0, len(links))
	for _, link := range links {
		out = append(out, assemble.Binding{
			"label": link.Label,
			"url":   link.URL,
		})
	}
	return out
}

func experienceBindings(entries []types.Experience) []assemble.Binding {
	out := make([]assemble.Binding, 0, len(entries))
	for _, exp := range entries {
		out = append(out, assemble.Binding{
			"company": exp.Company,
			"role":    exp.Title,
			"dates":   exp.Dates,
			"bullets": bulletBindings(exp.Bullets),
		})
	}
	return out
}

func projectBindings(projects []types.Project) []assemble.Binding {
	out := make([]assemble.Binding, 0, len(projects))
	for _, p := range projects {
		out = append(out, assemble.Binding{
			"name":        p.Name,
			"year":        p.Year,
			"description": p.DescriptionShort,
			"bullets":     bulletBindings(p.Bullets),
		})
	}
	return out
}

func skillBindings(groups []types.SkillGroup) []assemble.Binding {
	out := make([]assemble.Binding, 0, len(groups))
	for _, group := range groups {
		labels := make([]string, 0, len(group.Entries))
		for _, entry := range group.Entries {
			labels = append(labels, entry.Label)
		}
		out = append(out, assemble.Binding{
			"label":   group.Label,
			"entries": strings.Join(labels, ", "),
		})
	}
	return out
}

func bulletBindings(bullets []string) []assemble.Binding {
	out := make([]assemble.Binding, 0, len(bullets))
	for _, text := range bullets {
		out = append(out, assemble.Binding{"text": text})
	}
	return out
}
