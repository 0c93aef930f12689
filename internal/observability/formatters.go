// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/portfolio-builder/internal/extraction"
	"github.com/jonathan/portfolio-builder/internal/linkedin"
	"github.com/jonathan/portfolio-builder/internal/pipeline"
	"github.com/jonathan/portfolio-builder/internal/types"
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

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
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
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList writes up to limit items under a heading, with an overflow line.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	for _, item := range items[:min(len(items), limit)] {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

// PrintProfile outputs a human-readable summary of an extracted or merged profile.
func (p *Printer) PrintProfile(profile *types.ProfileRecord) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	if pi := profile.PersonalInfo; pi != nil {
		sb.WriteString(fmt.Sprintf("Name:     %s\n", pi.FullName))
		if pi.Title != "" {
			sb.WriteString(fmt.Sprintf("Title:    %s\n", pi.Title))
		}
		sb.WriteString(fmt.Sprintf("Email:    %s\n", pi.Email))
		sb.WriteString(fmt.Sprintf("Phone:    %s\n", pi.Phone))
		if pi.Links != nil {
			for _, link := range []string{pi.Links.LinkedIn, pi.Links.GitHub, pi.Links.Website, pi.Links.WhatsApp} {
				if link != "" {
					sb.WriteString(fmt.Sprintf("Link:     %s\n", link))
				}
			}
		}
		sb.WriteString("\n")
	}

	if profile.Summary != nil {
		sb.WriteString(fmt.Sprintf("Summary:  %s\n\n", truncate(strings.Join(strings.Fields(*profile.Summary), " "), 45)))
	}

	var jobs []string
	for _, e := range profile.Experience {
		line := strings.TrimSpace(e.Title + " @ " + e.Company)
		switch {
		case e.Current:
			line += fmt.Sprintf(" (%s - present)", e.StartDate)
		case e.StartDate != "" || e.EndDate != "":
			line += fmt.Sprintf(" (%s - %s)", e.StartDate, e.EndDate)
		}
		jobs = append(jobs, line)
	}
	writeList(&sb, "Experience", jobs, maxItemsToShow)

	var schools []string
	for _, e := range profile.Education {
		label := e.Institution
		if label == "" {
			label = strings.SplitN(e.Description, "\n", 2)[0]
		}
		schools = append(schools, label)
	}
	writeList(&sb, "Education", schools, 3)

	var skillNames []string
	for _, s := range profile.Skills {
		skillNames = append(skillNames, fmt.Sprintf("%s (%d)", s.Name, s.Level))
	}
	writeList(&sb, "Skills", skillNames, maxItemsToShow*2)

	p.printBox("PROFILE", strings.TrimSuffix(strings.TrimSuffix(sb.String(), "\n"), "\n"))
}

// PrintSections outputs the detected sections with their confidence.
func (p *Printer) PrintSections(sections []extraction.Section) {
	if len(sections) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Detected %d sections:\n\n", len(sections)))
	for i, s := range sections {
		sb.WriteString(fmt.Sprintf("%-14s %.2f  %s\n", s.Type, s.Confidence, truncate(s.Title, 30)))
		sb.WriteString(fmt.Sprintf("               %d lines", len(s.Lines)))
		if i < len(sections)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SECTIONS", sb.String())
}

// PrintParseResult outputs the outcome of a parse, including warnings.
func (p *Printer) PrintParseResult(name string, result extraction.ParseResult) {
	if !result.Success {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("File: %s\n\n", name))
		for _, e := range result.Errors {
			sb.WriteString(fmt.Sprintf("✗ %s\n", e))
		}
		p.printBox("PARSE FAILED", strings.TrimSuffix(sb.String(), "\n"))
		return
	}

	p.PrintProfile(result.Profile)
	if len(result.Warnings) > 0 {
		var sb strings.Builder
		for _, w := range result.Warnings {
			sb.WriteString(fmt.Sprintf("⚠ %s\n", w))
		}
		p.printBox("WARNINGS", strings.TrimSuffix(sb.String(), "\n"))
	}
}

// PrintMapResult outputs what the external mapper produced and what it left unmapped.
func (p *Printer) PrintMapResult(result linkedin.MapResult) {
	if !result.Success {
		p.printBox("MAPPING FAILED", strings.Join(result.Errors, "\n"))
		return
	}

	p.PrintProfile(result.Mapped)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Recommendations: %d\n", len(result.Recommendations)))
	sb.WriteString(fmt.Sprintf("Posts:           %d\n", len(result.Posts)))
	if len(result.Unmapped) > 0 {
		sb.WriteString("\nUnmapped:\n")
		for _, key := range sortedKeys(result.Unmapped) {
			sb.WriteString(fmt.Sprintf("  • %s: %v\n", key, result.Unmapped[key]))
		}
	}

	p.printBox("EXTERNAL DATA", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintImportSummary outputs per-file status and totals for a batch import.
func (p *Printer) PrintImportSummary(results []pipeline.FileResult) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	for _, r := range results {
		mark := "✓"
		if !r.Result.Success {
			mark = "✗"
		}
		sb.WriteString(fmt.Sprintf("%s %s (%dms)\n", mark, truncate(r.Path, 40), r.DurationMS))
	}

	summary := pipeline.Summarize(results)
	sb.WriteString(fmt.Sprintf("\n%d files: %d succeeded, %d failed", summary.Total, summary.Succeeded, summary.Failed))

	p.printBox("IMPORT SUMMARY", sb.String())
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}
