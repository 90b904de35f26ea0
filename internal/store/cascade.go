package store

import "github.com/jonathan/career-console/internal/types"

// ReferenceSweep is the record of one cascading delete: the removed entity
// plus every project that had a dangling reference stripped. The sweep and
// the deletion persist in the same document write, so the atomicity of the
// cascade is carried by the type rather than left to call ordering.
type ReferenceSweep struct {
	Kind         string   `json:"kind"`
	ID           string   `json:"deleted"`
	StrippedFrom []string `json:"stripped_from,omitempty"`
}

// stripSkillRefs removes a skill id from every project's skills_used list
// and records which projects were touched.
func stripSkillRefs(doc *types.MasterDocument, skillID string, sweep *ReferenceSweep) {
	for i := range doc.Projects {
		p := &doc.Projects[i]
		if !contains(p.SkillsUsed, skillID) {
			continue
		}
		p.SkillsUsed = remove(p.SkillsUsed, skillID)
		sweep.StrippedFrom = append(sweep.StrippedFrom, p.ID)
	}
}

// stripExperienceRefs removes an experience id from every project's
// linked_experience list and records which projects were touched.
func stripExperienceRefs(doc *types.MasterDocument, experienceID string, sweep *ReferenceSweep) {
	for i := range doc.Projects {
		p := &doc.Projects[i]
		if !contains(p.LinkedExperience, experienceID) {
			continue
		}
		p.LinkedExperience = remove(p.LinkedExperience, experienceID)
		sweep.StrippedFrom = append(sweep.StrippedFrom, p.ID)
	}
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func remove(values []string, drop string) []string {
	out := values[:0]
	for _, v := range values {
		if v != drop {
			out = append(out, v)
		}
	}
	return out
}
