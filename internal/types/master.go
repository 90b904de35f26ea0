// Package types provides type definitions for the career data catalog and
// the documents derived from it.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// MasterDocument is the full canonical store of career facts. It is the unit
// of persistence: every write replaces the whole document atomically.
type MasterDocument struct {
	Name       string          `json:"name"`
	Contact    Contact         `json:"contact"`
	Summary    SummaryVariants `json:"summary"`
	Experience []Experience    `json:"experience"`
	Projects   []Project       `json:"projects"`
	Skills     SkillCatalog    `json:"skills"`

	// RetiredIDs lists every id that has ever been deleted, across all
	// collections. Ids are never reused: id generation treats retired ids
	// as taken, so a stale reference can never silently capture a new
	// entity that happens to share a display name with a deleted one.
	RetiredIDs []string `json:"retired_ids,omitempty"`
}

// Contact holds the static contact block rendered into every output.
type Contact struct {
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Location string `json:"location"`
	Links    []Link `json:"links"`
}

// Link is a labeled URL shown in the contact block.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Experience represents a single work history entry with stable ID
type Experience struct {
	ID        string   `json:"id"`
	Company   string   `json:"company"`
	Title     string   `json:"title"`
	Dates     string   `json:"dates"`
	Bullets   []string `json:"bullets"`
	Freelance bool     `json:"freelance,omitempty"`
}

// Project represents a portfolio project with references into the skills
// catalog and the experience collection.
type Project struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Year             string   `json:"year"`
	DescriptionShort string   `json:"description_short"`
	Bullets          []string `json:"bullets"`
	SkillsUsed       []string `json:"skills_used"`
	LinkedExperience []string `json:"linked_experience"`
}

// SkillEntry is one skill in the catalog. IDs are unique across the whole
// catalog, not just within a category.
type SkillEntry struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// UnmarshalJSON accepts either the object form or a bare string, which older
// documents used before entries carried IDs. Bare strings produce an entry
// with an empty ID; the store assigns one during schema normalization.
func (e *SkillEntry) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var label string
		if err := json.Unmarshal(trimmed, &label); err != nil {
			return err
		}
		e.ID = ""
		e.Label = strings.TrimSpace(label)
		return nil
	}

	type alias SkillEntry
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*e = SkillEntry(a)
	return nil
}

// Clone returns a deep copy of the document. Stores hand out clones so a
// caller can never mutate persisted state through a returned snapshot.
func (d MasterDocument) Clone() MasterDocument {
	out := d
	out.Contact.Links = append([]Link(nil), d.Contact.Links...)
	out.Summary = d.Summary.Clone()
	out.Skills = d.Skills.Clone()
	out.RetiredIDs = append([]string(nil), d.RetiredIDs...)

	out.Experience = make([]Experience, len(d.Experience))
	for i, exp := range d.Experience {
		exp.Bullets = append([]string(nil), exp.Bullets...)
		out.Experience[i] = exp
	}

	out.Projects = make([]Project, len(d.Projects))
	for i, p := range d.Projects {
		p.Bullets = append([]string(nil), p.Bullets...)
		p.SkillsUsed = append([]string(nil), p.SkillsUsed...)
		p.LinkedExperience = append([]string(nil), p.LinkedExperience...)
		out.Projects[i] = p
	}

	return out
}

// FindProject returns the project with the given ID, or nil.
func (d *MasterDocument) FindProject(id string) *Project {
	for i := range d.Projects {
		if d.Projects[i].ID == id {
			return &d.Projects[i]
		}
	}
	return nil
}

// FindProjectByName returns the first project with the given display name,
// or nil.
func (d *MasterDocument) FindProjectByName(name string) *Project {
	for i := range d.Projects {
		if d.Projects[i].Name == name {
			return &d.Projects[i]
		}
	}
	return nil
}

// FindExperience returns the experience entry with the given ID, or nil.
func (d *MasterDocument) FindExperience(id string) *Experience {
	for i := range d.Experience {
		if d.Experience[i].ID == id {
			return &d.Experience[i]
		}
	}
	return nil
}

// decodeOrderedObject walks a JSON object token by token so key order
// survives the round trip. visit is called once per key with the raw value.
func decodeOrderedObject(data []byte, visit func(key string, value json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("failed to decode value for %q: %w", key, err)
		}
		if err := visit(key, raw); err != nil {
			return err
		}
	}

	// Closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// encodeOrderedObject writes an object with keys in the given order.
func encodeOrderedObject(keys []string, value func(key string) any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		valJSON, err := json.Marshal(value(key))
		if err != nil {
			return nil, fmt.Errorf("failed to marshal value for %q: %w", key, err)
		}
		buf.Write(valJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
