// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/sooperboring/content-studio/internal/browse"
	"github.com/sooperboring/content-studio/internal/catalog"
	"github.com/sooperboring/content-studio/internal/record"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxTitleWidth truncates record titles inside list boxes
	maxTitleWidth = 50
)

// Printer handles formatted output
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

// PrintContentList outputs the records of one content type, one bullet per
// record with its subtitle and id.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintContentList(typ catalog.Type, items []record.Record) {
	title := "STORED " + strings.ToUpper(typ.Label)

	if len(items) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, fmt.Sprintf("No %s found.", strings.ToLower(typ.Label)))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total records: %d\n\n", len(items)))

	for i, rec := range items {
		name := browse.ItemTitle(rec)
		if len(name) > maxTitleWidth {
			name = name[:maxTitleWidth-3] + "..."
		}
		sb.WriteString(fmt.Sprintf("• %s\n", name))
		if subtitle := browse.ItemSubtitle(typ, rec); subtitle != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", subtitle))
		}
		sb.WriteString(fmt.Sprintf("  id: %s\n", rec.ID()))
		if i < len(items)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}
