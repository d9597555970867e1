// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/portfolio-generator/internal/types"
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

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens s to at most n runes, marking the cut with "...".
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// PrintRecord outputs a summary of a portfolio record.
func (p *Printer) PrintRecord(rec *types.PortfolioRecord) {
	if rec == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", rec.BasicInfo.Name))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", rec.BasicInfo.Title))
	if rec.BasicInfo.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", rec.BasicInfo.Location))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Experience: %d  Education: %d  Projects: %d\n",
		len(rec.Experience), len(rec.Education), len(rec.Projects)))

	for _, cat := range types.SkillCategories {
		skills := *rec.Skills.Bucket(cat)
		if len(skills) == 0 {
			continue
		}
		names := make([]string, 0, maxItemsToShow)
		for i := 0; i < min(len(skills), maxItemsToShow); i++ {
			names = append(names, skills[i].Name)
		}
		line := fmt.Sprintf("  %-10s %s", cat+":", strings.Join(names, ", "))
		if len(skills) > maxItemsToShow {
			line += fmt.Sprintf(" (+%d)", len(skills)-maxItemsToShow)
		}
		sb.WriteString(line + "\n")
	}

	if len(rec.Experience) > 0 {
		sb.WriteString("\nExperience:\n")
		count := min(len(rec.Experience), 3)
		for i := 0; i < count; i++ {
			e := rec.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s at %s", e.Position, e.Company))
			if e.Duration != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", e.Duration))
			}
			sb.WriteString("\n")
		}
		if len(rec.Experience) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(rec.Experience)-3))
		}
	}

	p.printBox("PORTFOLIO RECORD", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSources outputs the outcome of each data source of a generation run.
func (p *Printer) PrintSources(sources []types.SourceStatus) {
	if len(sources) == 0 {
		return
	}

	var sb strings.Builder
	for _, s := range sources {
		switch {
		case s.Skipped:
			sb.WriteString(fmt.Sprintf("○ %-9s skipped\n", s.Source))
		case s.OK:
			sb.WriteString(fmt.Sprintf("✓ %-9s ok\n", s.Source))
		default:
			sb.WriteString(fmt.Sprintf("✗ %-9s %s\n", s.Source, s.Kind))
			if s.Message != "" {
				sb.WriteString(fmt.Sprintf("    %s\n", s.Message))
			}
		}
	}

	p.printBox("DATA SOURCES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysis outputs a website design critique.
func (p *Printer) PrintAnalysis(url string, a *types.WebsiteAnalysis) {
	if a == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("URL:            %s\n", url))
	sb.WriteString(fmt.Sprintf("Design score:   %d/100\n", a.DesignScore))
	sb.WriteString(fmt.Sprintf("Gen Z appeal:   %d/100\n", a.GenZAppealScore))
	if a.Fallback {
		sb.WriteString("(estimated, the site could not be analyzed)\n")
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Colors:         %s\n", a.ColorScheme))
	sb.WriteString(fmt.Sprintf("Layout:         %s\n", a.LayoutStructure))
	sb.WriteString(fmt.Sprintf("Responsiveness: %s\n", a.Responsiveness))

	if len(a.ModernElements) > 0 {
		sb.WriteString("\nModern elements:\n")
		for _, e := range a.ModernElements {
			sb.WriteString(fmt.Sprintf("  • %s\n", e))
		}
	}
	if len(a.ImprovementAreas) > 0 {
		sb.WriteString("\nImprovements:\n")
		count := min(len(a.ImprovementAreas), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, a.ImprovementAreas[i]))
		}
		if len(a.ImprovementAreas) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(a.ImprovementAreas)-maxItemsToShow))
		}
	}

	p.printBox("WEBSITE ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProgress outputs a single progress line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProgress(step, message string) {
	fmt.Fprintf(p.out, "  → [%s] %s\n", step, message)
}
