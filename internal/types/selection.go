package types

// Selection describes which entities to render for one target output and in
// what order and labeling. One selection document exists per slug; it holds
// references into the master document, never copies.
type Selection struct {
	Slug             string            `json:"slug,omitempty"`
	Title            string            `json:"title"`
	SummaryKey       string            `json:"summary_key,omitempty"`
	ShowFreelance    bool              `json:"show_freelance"`
	SelectedProjects []string          `json:"selected_projects"`
	SkillsOrder      []string          `json:"skills_order"`
	SkillsLabelMap   map[string]string `json:"skills_label_map"`
}

// Clone returns a deep copy of the selection.
func (s Selection) Clone() Selection {
	out := s
	out.SelectedProjects = append([]string(nil), s.SelectedProjects...)
	out.SkillsOrder = append([]string(nil), s.SkillsOrder...)
	if s.SkillsLabelMap != nil {
		out.SkillsLabelMap = make(map[string]string, len(s.SkillsLabelMap))
		for k, v := range s.SkillsLabelMap {
			out.SkillsLabelMap[k] = v
		}
	}
	return out
}

// SelectionSummary is the lightweight listing form of a selection.
type SelectionSummary struct {
	Slug             string   `json:"slug"`
	Title            string   `json:"title"`
	SummaryKey       string   `json:"summary_key"`
	SelectedProjects []string `json:"selected_projects"`
}
