// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/swapnil/naukri-auto-apply/internal/types"
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

// PrintScore outputs a human-readable summary of a scored job.
func (p *Printer) PrintScore(job types.JobPosting, result types.ScoreResult) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Title:    %s\n", job.Title))
	sb.WriteString(fmt.Sprintf("Company:  %s\n", job.Company))
	sb.WriteString(fmt.Sprintf("Match:    %.1f%%\n", result.MatchPercentage))
	sb.WriteString(fmt.Sprintf("Eligible: %t\n", result.IsEligible))
	if result.Reason != "" {
		sb.WriteString(fmt.Sprintf("Reason:   %s\n", result.Reason))
	}

	if len(result.MatchedSkills) > 0 {
		sb.WriteString("\nMatched skills:\n")
		shown := result.MatchedSkills
		if len(shown) > maxItemsToShow {
			shown = shown[:maxItemsToShow]
		}
		for _, s := range shown {
			sb.WriteString(fmt.Sprintf("  • %s\n", s))
		}
		if rest := len(result.MatchedSkills) - maxItemsToShow; rest > 0 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", rest))
		}
	}

	p.printBox("SCORE", strings.TrimRight(sb.String(), "\n"))
}

// PrintBatchReport outputs the batch result summary.
func (p *Printer) PrintBatchReport(report types.BatchReport) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Run:            %s\n", report.RunID))
	sb.WriteString(fmt.Sprintf("Applied:        %d\n", len(report.Applied)))
	sb.WriteString(fmt.Sprintf("Skipped:        %d\n", len(report.Skipped)))
	sb.WriteString(fmt.Sprintf("Applied today:  %d\n", report.TotalAppliedJobsCount))
	if report.MNCSegment {
		sb.WriteString("Segment:        MNC\n")
	}

	counts := map[types.Status]int{}
	for _, rec := range report.Skipped {
		counts[rec.Status]++
	}
	if len(counts) > 0 {
		sb.WriteString("\nSkip breakdown:\n")
		for _, st := range []types.Status{types.StatusSkipped, types.StatusFailed, types.StatusAlreadyApplied} {
			if counts[st] > 0 {
				sb.WriteString(fmt.Sprintf("  %-16s %d\n", string(st)+":", counts[st]))
			}
		}
	}

	p.printBox("BATCH REPORT", strings.TrimRight(sb.String(), "\n"))
}
