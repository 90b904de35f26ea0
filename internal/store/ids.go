package store

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	slugStrip    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugCollapse = regexp.MustCompile(`[\s-]+`)
)

// Slugify derives a stable identifier from a display string. Empty or
// fully-stripped input falls back to a random UUID so ids are never empty.
func Slugify(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	value = slugStrip.ReplaceAllString(value, "")
	value = slugCollapse.ReplaceAllString(value, "-")
	value = strings.Trim(value, "-")
	if value == "" {
		return uuid.NewString()
	}
	return value
}

// EnsureUniqueID slugifies base and suffixes -2, -3, ... until the result is
// absent from existing. Callers build existing from live ids plus the
// document's retired ids, so an id that has ever been assigned is never
// handed out again.
func EnsureUniqueID(base string, existing map[string]bool) string {
	slug := Slugify(base)
	if !existing[slug] {
		return slug
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", slug, i)
		if !existing[candidate] {
			return candidate
		}
	}
}

// NormalizeBullets trims each bullet and drops empty lines, preserving
// order.
func NormalizeBullets(bullets []string) []string {
	out := make([]string, 0, len(bullets))
	for _, b := range bullets {
		if text := strings.TrimSpace(b); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// BulletsFromText splits free text into bullets, one per non-empty line.
func BulletsFromText(text string) []string {
	return NormalizeBullets(strings.Split(text, "\n"))
}

// dedupe drops repeated values, keeping the first occurrence of each.
func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
