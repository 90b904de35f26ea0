package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/career-console/internal/assemble"
	"github.com/jonathan/career-console/internal/resolve"
	"github.com/jonathan/career-console/internal/types"
)

// Renderer turns a master snapshot and a selection into a finished HTML
// document. The template is fixed at construction; output is a pure
// function of the two inputs.
type Renderer struct {
	template string
	distDir  string
}

// NewRenderer loads the template file once. The renderer is safe for
// concurrent use.
func NewRenderer(templatePath, distDir string) (*Renderer, error) {
	data, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", templatePath, err)
	}
	return &Renderer{template: string(data), distDir: distDir}, nil
}

// Render resolves the selection against the snapshot and assembles the
// document. Identical inputs produce byte-identical output.
func (r *Renderer) Render(doc types.MasterDocument, sel types.Selection) (string, error) {
	vm := resolve.Resolve(doc, sel)
	html, err := assemble.Assemble(r.template, BuildBindings(vm))
	if err != nil {
		return "", fmt.Errorf("failed to assemble %s: %w", sel.Slug, err)
	}
	return html, nil
}

// WriteArtifact renders and persists the document under the dist
// directory, returning the artifact path.
func (r *Renderer) WriteArtifact(doc types.MasterDocument, sel types.Selection) (string, error) {
	html, err := r.Render(doc, sel)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(r.distDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create dist directory: %w", err)
	}

	path := filepath.Join(r.distDir, ArtifactName(sel.Slug))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("failed to finalize artifact: %w", err)
	}
	return path, nil
}

// ArtifactName is the conventional output filename for a slug.
func ArtifactName(slug string) string {
	return fmt.Sprintf("resume_%s.html", slug)
}
