package store

// SkillInput is the payload for adding a skill to the catalog.
type SkillInput struct {
	Category string `json:"category" validate:"required"`
	Label    string `json:"label" validate:"required"`
}

// ExperienceInput is the payload for creating an experience entry.
type ExperienceInput struct {
	Company   string   `json:"company" validate:"required"`
	Title     string   `json:"title" validate:"required"`
	Dates     string   `json:"dates"`
	Bullets   []string `json:"bullets"`
	Freelance bool     `json:"freelance"`
}

// ExperiencePatch carries a partial experience update. Nil pointers and nil
// slices mean "leave unchanged".
type ExperiencePatch struct {
	Company   *string  `json:"company"`
	Title     *string  `json:"title"`
	Dates     *string  `json:"dates"`
	Bullets   []string `json:"bullets"`
	Freelance *bool    `json:"freelance"`
}

// ProjectInput is the payload for creating a project. Every id in SkillsUsed
// and LinkedExperience must exist in the catalog at write time.
type ProjectInput struct {
	Name             string   `json:"name" validate:"required"`
	Year             string   `json:"year"`
	DescriptionShort string   `json:"description_short"`
	Bullets          []string `json:"bullets"`
	SkillsUsed       []string `json:"skills_used"`
	LinkedExperience []string `json:"linked_experience"`
}

// ProjectPatch carries a partial project update. Cross-references are
// re-validated whenever the reference lists are supplied.
type ProjectPatch struct {
	Name             *string  `json:"name"`
	Year             *string  `json:"year"`
	DescriptionShort *string  `json:"description_short"`
	Bullets          []string `json:"bullets"`
	SkillsUsed       []string `json:"skills_used"`
	LinkedExperience []string `json:"linked_experience"`
}
