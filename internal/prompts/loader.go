// Package prompts carries the drafting prompt templates, embedded at build
// time as JSON files mapping prompt keys to template text. Keeping the
// wording outside Go source lets prompts change without touching the
// drafting code.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var files embed.FS

var (
	mu     sync.Mutex
	parsed = map[string]map[string]string{}
)

// Get returns one prompt template from an embedded file. The filename is
// bare, without a path ("drafting.json").
func Get(filename, key string) (string, error) {
	templates, err := load(filename)
	if err != nil {
		return "", err
	}
	template, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("prompt %q not found in %s", key, filename)
	}
	return template, nil
}

// MustGet is Get for prompts the caller cannot proceed without. The files
// are embedded, so a missing key is a build defect, not a runtime
// condition.
func MustGet(filename, key string) string {
	template, err := Get(filename, key)
	if err != nil {
		panic(err)
	}
	return template
}

// Format substitutes {{.Key}} placeholders with values from data.
// Placeholders without a matching key are left as written.
func Format(template string, data map[string]string) string {
	for key, value := range data {
		template = strings.ReplaceAll(template, "{{."+key+"}}", value)
	}
	return template
}

// load parses an embedded prompt file, caching the result.
func load(filename string) (map[string]string, error) {
	mu.Lock()
	defer mu.Unlock()

	if templates, ok := parsed[filename]; ok {
		return templates, nil
	}

	data, err := files.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	var templates map[string]string
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	parsed[filename] = templates
	return templates, nil
}
