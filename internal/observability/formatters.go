// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/career-console/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCatalog outputs a human-readable summary of the master document.
func (p *Printer) PrintCatalog(doc types.MasterDocument) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:        %s\n", doc.Name))
	sb.WriteString(fmt.Sprintf("Summaries:   %d variants\n", doc.Summary.Len()))
	sb.WriteString(fmt.Sprintf("Experience:  %d entries\n", len(doc.Experience)))
	sb.WriteString(fmt.Sprintf("Projects:    %d entries\n", len(doc.Projects)))

	sb.WriteString(fmt.Sprintf("Skills:      %d in %d categories", doc.Skills.Len(), len(doc.Skills.Categories())))

	p.printBox("MASTER CATALOG", sb.String())
}

// PrintResolved outputs what a selection resolved to before assembly.
func (p *Printer) PrintResolved(slug string, vm types.ViewModel) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Title:    %s\n", vm.Title))
	summary := vm.Summary
	if len(summary) > 50 {
		summary = summary[:47] + "..."
	}
	sb.WriteString(fmt.Sprintf("Summary:  %s\n", summary))
	sb.WriteString("\n")

	if len(vm.Experience) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(vm.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := vm.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s — %s\n", exp.Company, exp.Title))
		}
		if len(vm.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(vm.Experience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(vm.Projects) > 0 {
		sb.WriteString("Projects:\n")
		count := min(len(vm.Projects), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", vm.Projects[i].Name))
		}
		if len(vm.Projects) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(vm.Projects)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(vm.Skills) > 0 {
		sb.WriteString("Skill groups:\n")
		count := min(len(vm.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			group := vm.Skills[i]
			sb.WriteString(fmt.Sprintf("  • %s (%d)\n", group.Label, len(group.Entries)))
		}
		if len(vm.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(vm.Skills)-maxItemsToShow))
		}
	}

	p.printBox(fmt.Sprintf("RESOLVED: %s", slug), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintArtifact outputs where a build landed.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintArtifact(slug, path string, size int) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, fmt.Sprintf("✅ BUILT %s", slug))
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, fmt.Sprintf("   %s (%d bytes)", path, size))
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSweep outputs which documents a cascading delete touched.
func (p *Printer) PrintSweep(kind, id string, stripped []string) {
	var sb strings.Builder
	if len(stripped) == 0 {
		sb.WriteString("No references to strip")
	} else {
		sb.WriteString(fmt.Sprintf("Stripped from %d projects:\n", len(stripped)))
		for _, projectID := range stripped {
			sb.WriteString(fmt.Sprintf("  • %s\n", projectID))
		}
	}
	p.printBox(fmt.Sprintf("DELETED %s %s", strings.ToUpper(kind), id), strings.TrimSuffix(sb.String(), "\n"))
}
