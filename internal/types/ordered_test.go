package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryVariants_PreservesDocumentOrder(t *testing.T) {
	input := []byte(`{"zeta": "last first", "default": "middle", "alpha": "appended"}`)

	var v SummaryVariants
	require.NoError(t, json.Unmarshal(input, &v))

	assert.Equal(t, []string{"zeta", "default", "alpha"}, v.Keys())

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, string(input), string(out))

	// Round-tripped bytes keep the same key order.
	var again SummaryVariants
	require.NoError(t, json.Unmarshal(out, &again))
	assert.Equal(t, v.Keys(), again.Keys())
}

func TestSummaryVariants_SetKeepsPositionOnReplace(t *testing.T) {
	var v SummaryVariants
	v.Set("a", "1")
	v.Set("b", "2")
	v.Set("a", "updated")

	assert.Equal(t, []string{"a", "b"}, v.Keys())
	text, ok := v.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "updated", text)
}

func TestSummaryVariants_Delete(t *testing.T) {
	var v SummaryVariants
	v.Set("a", "1")
	v.Set("b", "2")

	assert.True(t, v.Delete("a"))
	assert.False(t, v.Delete("a"))
	assert.Equal(t, []string{"b"}, v.Keys())
	_, ok := v.Get("a")
	assert.False(t, ok)
}

func TestSummaryVariants_CloneIsIndependent(t *testing.T) {
	var v SummaryVariants
	v.Set("a", "1")

	clone := v.Clone()
	clone.Set("a", "changed")
	clone.Set("b", "new")

	text, _ := v.Get("a")
	assert.Equal(t, "1", text)
	assert.Equal(t, []string{"a"}, v.Keys())
}

func TestSkillCatalog_PreservesCategoryOrder(t *testing.T) {
	input := []byte(`{
		"tools": [{"id": "go", "label": "Go"}],
		"languages": [{"id": "english", "label": "English"}],
		"other": []
	}`)

	var c SkillCatalog
	require.NoError(t, json.Unmarshal(input, &c))
	assert.Equal(t, []string{"tools", "languages", "other"}, c.Categories())

	out, err := json.Marshal(c)
	require.NoError(t, err)

	var again SkillCatalog
	require.NoError(t, json.Unmarshal(out, &again))
	assert.Equal(t, c.Categories(), again.Categories())
}

func TestSkillCatalog_Find(t *testing.T) {
	var c SkillCatalog
	c.Append("tools", SkillEntry{ID: "go", Label: "Go"})
	c.Append("languages", SkillEntry{ID: "english", Label: "English"})

	category, entry, ok := c.Find("english")
	require.True(t, ok)
	assert.Equal(t, "languages", category)
	assert.Equal(t, "English", entry.Label)

	_, _, ok = c.Find("rust")
	assert.False(t, ok)
}

func TestSkillEntry_UnmarshalLegacyString(t *testing.T) {
	var c SkillCatalog
	require.NoError(t, json.Unmarshal([]byte(`{"tools": ["Go", {"id": "postgres", "label": "PostgreSQL"}]}`), &c))

	entries := c.Entries("tools")
	require.Len(t, entries, 2)
	assert.Equal(t, SkillEntry{ID: "", Label: "Go"}, entries[0])
	assert.Equal(t, SkillEntry{ID: "postgres", Label: "PostgreSQL"}, entries[1])
}

func TestMasterDocument_CloneIsDeep(t *testing.T) {
	var doc MasterDocument
	doc.Name = "Jordan"
	doc.Experience = []Experience{{ID: "acme", Bullets: []string{"built it"}}}
	doc.Projects = []Project{{ID: "cache", SkillsUsed: []string{"go"}}}
	doc.Skills.Append("tools", SkillEntry{ID: "go", Label: "Go"})

	clone := doc.Clone()
	clone.Experience[0].Bullets[0] = "changed"
	clone.Projects[0].SkillsUsed[0] = "changed"
	clone.Skills.Append("tools", SkillEntry{ID: "rust", Label: "Rust"})

	assert.Equal(t, "built it", doc.Experience[0].Bullets[0])
	assert.Equal(t, "go", doc.Projects[0].SkillsUsed[0])
	assert.Len(t, doc.Skills.Entries("tools"), 1)
}

func TestMasterDocument_Finders(t *testing.T) {
	doc := MasterDocument{
		Experience: []Experience{{ID: "acme"}},
		Projects:   []Project{{ID: "cache", Name: "Edge Cache"}},
	}

	assert.NotNil(t, doc.FindExperience("acme"))
	assert.Nil(t, doc.FindExperience("missing"))
	assert.NotNil(t, doc.FindProject("cache"))
	assert.Nil(t, doc.FindProject("Edge Cache"))
	assert.NotNil(t, doc.FindProjectByName("Edge Cache"))
	assert.Nil(t, doc.FindProjectByName("cache"))
}
