package types

// ViewModel is the resolved, ordered, filtered intermediate representation
// consumed by the assembler. It is a pure function of one master document
// snapshot and one selection; it carries no references back into either.
type ViewModel struct {
	Title      string       `json:"title"`
	Name       string       `json:"name"`
	Contact    Contact      `json:"contact"`
	Summary    string       `json:"summary"`
	Experience []Experience `json:"experience"`
	Projects   []Project    `json:"projects"`
	Skills     []SkillGroup `json:"skills"`
}

// SkillGroup is one rendered skills category: the raw category key, the
// display label after any selection override, and the entries in catalog
// storage order.
type SkillGroup struct {
	Category string       `json:"category"`
	Label    string       `json:"label"`
	Entries  []SkillEntry `json:"entries"`
}
