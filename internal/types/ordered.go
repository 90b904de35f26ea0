package types

import "encoding/json"

// SummaryVariants maps variant keys to summary paragraphs while preserving
// the key order of the source document. The first key in document order is
// the last resort of the summary fallback chain, so order is part of the
// contract, which a plain map cannot provide in Go.
type SummaryVariants struct {
	order  []string
	values map[string]string
}

// NewSummaryVariants builds a variant map from ordered key/value pairs.
func NewSummaryVariants(pairs ...[2]string) SummaryVariants {
	var v SummaryVariants
	for _, p := range pairs {
		v.Set(p[0], p[1])
	}
	return v
}

// Keys returns the variant keys in document order.
func (v SummaryVariants) Keys() []string {
	return append([]string(nil), v.order...)
}

// Get returns the paragraph for a key and whether the key exists.
func (v SummaryVariants) Get(key string) (string, bool) {
	text, ok := v.values[key]
	return text, ok
}

// Set inserts or replaces a variant. New keys append to the order.
func (v *SummaryVariants) Set(key, text string) {
	if v.values == nil {
		v.values = make(map[string]string)
	}
	if _, exists := v.values[key]; !exists {
		v.order = append(v.order, key)
	}
	v.values[key] = text
}

// Delete removes a variant, reporting whether it existed.
func (v *SummaryVariants) Delete(key string) bool {
	if _, exists := v.values[key]; !exists {
		return false
	}
	delete(v.values, key)
	for i, k := range v.order {
		if k == key {
			v.order = append(v.order[:i], v.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of variants.
func (v SummaryVariants) Len() int {
	return len(v.order)
}

// Clone returns a deep copy.
func (v SummaryVariants) Clone() SummaryVariants {
	out := SummaryVariants{order: append([]string(nil), v.order...)}
	if v.values != nil {
		out.values = make(map[string]string, len(v.values))
		for k, val := range v.values {
			out.values[k] = val
		}
	}
	return out
}

// MarshalJSON writes the variants as an object in document order.
func (v SummaryVariants) MarshalJSON() ([]byte, error) {
	return encodeOrderedObject(v.order, func(key string) any {
		return v.values[key]
	})
}

// UnmarshalJSON reads an object, recording key order.
func (v *SummaryVariants) UnmarshalJSON(data []byte) error {
	*v = SummaryVariants{}
	return decodeOrderedObject(data, func(key string, raw json.RawMessage) error {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return err
		}
		v.Set(key, text)
		return nil
	})
}

// SkillCatalog maps category keys to ordered skill entries, preserving the
// category order of the source document. Category order drives the skills
// section of every rendered output.
type SkillCatalog struct {
	order   []string
	entries map[string][]SkillEntry
}

// Categories returns the category keys in document order.
func (c SkillCatalog) Categories() []string {
	return append([]string(nil), c.order...)
}

// Has reports whether the category exists.
func (c SkillCatalog) Has(category string) bool {
	_, ok := c.entries[category]
	return ok
}

// Entries returns the entries of a category in storage order.
func (c SkillCatalog) Entries(category string) []SkillEntry {
	return append([]SkillEntry(nil), c.entries[category]...)
}

// SetEntries replaces a category's entries. A new category appends to the
// category order.
func (c *SkillCatalog) SetEntries(category string, entries []SkillEntry) {
	if c.entries == nil {
		c.entries = make(map[string][]SkillEntry)
	}
	if _, exists := c.entries[category]; !exists {
		c.order = append(c.order, category)
	}
	c.entries[category] = entries
}

// Append adds an entry to the end of a category, creating the category if
// needed.
func (c *SkillCatalog) Append(category string, entry SkillEntry) {
	c.SetEntries(category, append(c.entries[category], entry))
}

// AllIDs returns every skill ID across all categories.
func (c SkillCatalog) AllIDs() []string {
	var ids []string
	for _, category := range c.order {
		for _, entry := range c.entries[category] {
			ids = append(ids, entry.ID)
		}
	}
	return ids
}

// Find returns the category and entry for a skill ID, or false.
func (c SkillCatalog) Find(id string) (string, SkillEntry, bool) {
	for _, category := range c.order {
		for _, entry := range c.entries[category] {
			if entry.ID == id {
				return category, entry, true
			}
		}
	}
	return "", SkillEntry{}, false
}

// Len returns the total number of entries across categories.
func (c SkillCatalog) Len() int {
	n := 0
	for _, entries := range c.entries {
		n += len(entries)
	}
	return n
}

// Clone returns a deep copy.
func (c SkillCatalog) Clone() SkillCatalog {
	out := SkillCatalog{order: append([]string(nil), c.order...)}
	if c.entries != nil {
		out.entries = make(map[string][]SkillEntry, len(c.entries))
		for k, entries := range c.entries {
			out.entries[k] = append([]SkillEntry(nil), entries...)
		}
	}
	return out
}

// MarshalJSON writes the catalog as an object in document order.
func (c SkillCatalog) MarshalJSON() ([]byte, error) {
	return encodeOrderedObject(c.order, func(key string) any {
		entries := c.entries[key]
		if entries == nil {
			return []SkillEntry{}
		}
		return entries
	})
}

// UnmarshalJSON reads an object, recording category order.
func (c *SkillCatalog) UnmarshalJSON(data []byte) error {
	*c = SkillCatalog{}
	return decodeOrderedObject(data, func(key string, raw json.RawMessage) error {
		var entries []SkillEntry
		if err := json.Unmarshal(raw, &entries); err != nil {
			return err
		}
		c.SetEntries(key, entries)
		return nil
	})
}
