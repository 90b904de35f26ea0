package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMaster_AcceptsMinimalDocument(t *testing.T) {
	doc := `{"name": "Jordan Avery"}`
	assert.NoError(t, ValidateMaster([]byte(doc)))
}

func TestValidateMaster_AcceptsFullDocument(t *testing.T) {
	doc := `{
		"name": "Jordan Avery",
		"contact": {"phone": "555-0100", "email": "jordan@example.com", "location": "Portland, OR", "links": [{"label": "GitHub", "url": "https://github.com/jordan"}]},
		"summary": {"default": "Engineer."},
		"experience": [{"id": "acme", "company": "Acme", "title": "Engineer", "dates": "2020-2024", "bullets": ["did work"], "freelance": false}],
		"projects": [{"id": "cache", "name": "Cache", "year": "2023", "description_short": "A cache.", "bullets": [], "skills_used": ["go"], "linked_experience": ["acme"]}],
		"skills": {"tools": [{"id": "go", "label": "Go"}, "bare string entry"]}
	}`
	assert.NoError(t, ValidateMaster([]byte(doc)))
}

func TestValidateMaster_RejectsMissingName(t *testing.T) {
	err := ValidateMaster([]byte(`{}`))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.NotEmpty(t, verr.Errors)
	assert.Equal(t, "(root)", verr.Errors[0].Field)
}

func TestValidateMaster_RejectsWrongTypes(t *testing.T) {
	cases := map[string]string{
		"name as number":      `{"name": 42}`,
		"summary as array":    `{"name": "x", "summary": []}`,
		"experience as map":   `{"name": "x", "experience": {}}`,
		"year as number":      `{"name": "x", "projects": [{"name": "p", "year": 2023}]}`,
		"bullets as string":   `{"name": "x", "experience": [{"company": "c", "bullets": "one"}]}`,
		"skills entry as num": `{"name": "x", "skills": {"tools": [42]}}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			var verr *ValidationError
			assert.ErrorAs(t, ValidateMaster([]byte(doc)), &verr)
		})
	}
}

func TestValidateMaster_ErrorMessageNamesTheField(t *testing.T) {
	err := ValidateMaster([]byte(`{"name": "x", "projects": [{"name": "p", "year": 2023}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
	assert.Contains(t, err.Error(), "year")
}

func TestValidateSelection_AcceptsTypicalDocument(t *testing.T) {
	doc := `{
		"title": "Senior Engineer",
		"summary_key": "backend",
		"show_freelance": true,
		"selected_projects": ["edge-cache"],
		"skills_order": ["tools"],
		"skills_label_map": {"tools": "Tooling"}
	}`
	assert.NoError(t, ValidateSelection([]byte(doc)))
}

func TestValidateSelection_AcceptsEmptyObject(t *testing.T) {
	// Every selection field is optional; readers default absent collections.
	assert.NoError(t, ValidateSelection([]byte(`{}`)))
}

func TestValidateSelection_RejectsWrongTypes(t *testing.T) {
	cases := map[string]string{
		"title as number":        `{"title": 42}`,
		"projects as string":     `{"selected_projects": "edge-cache"}`,
		"label map as array":     `{"skills_label_map": []}`,
		"show_freelance as text": `{"show_freelance": "yes"}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			var verr *ValidationError
			assert.ErrorAs(t, ValidateSelection([]byte(doc)), &verr)
		})
	}
}
