package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dotcommander/compfinder/internal/cue"
	"github.com/dotcommander/compfinder/internal/scoring"
)

// MarkdownFormatter formats output as Markdown
type MarkdownFormatter struct {
	out        io.Writer
	verbose    bool
	outputFile string
}

// NewMarkdownFormatter creates a new MarkdownFormatter
func NewMarkdownFormatter(out io.Writer, verbose bool, outputFile string) *MarkdownFormatter {
	return &MarkdownFormatter{
		out:        orStdout(out),
		verbose:    verbose,
		outputFile: outputFile,
	}
}

// FormatReport renders the ranked view as a Markdown table
func (f *MarkdownFormatter) FormatReport(report *Report) error {
	var b strings.Builder
	view := report.View

	b.WriteString(fmt.Sprintf("# Comps for level %s\n\n", view.Level))
	b.WriteString(fmt.Sprintf("**Generated:** %s\n\n", time.Now().Format("2006-01-02 15:04:05")))
	if report.Source != "" {
		b.WriteString(fmt.Sprintf("**Source:** `%s`\n\n", report.Source))
	}
	if f.verbose && report.GeneratedAt != "" {
		b.WriteString(fmt.Sprintf("**Dataset generated:** %s\n\n", report.GeneratedAt))
	}
	b.WriteString(fmt.Sprintf("**Sort:** %s | **Min owned:** %d/%d\n\n", view.Mode, view.MinOwned, view.MaxOwned))
	b.WriteString(fmt.Sprintf("**Owned:** %s\n\n", joinOrDash(view.Owned, ", ")))

	shown := report.Shown()
	if len(shown) == 0 {
		b.WriteString("*No comps match the current filters.*\n\n")
	} else {
		b.WriteString("| # | Owned | Missing | Bronze | Team | Missing units | Bronze traits |\n")
		b.WriteString("|---|-------|---------|--------|------|---------------|---------------|\n")
		for i, rec := range shown {
			b.WriteString(markdownRow(i+1, rec))
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("%d results\n", view.Count))
	return writeOut(f.out, f.outputFile, []byte(b.String()))
}

func markdownRow(rank int, rec scoring.ScoreRecord) string {
	var traits []string
	if rec.Comp != nil {
		traits = rec.Comp.BronzeTraits
	}
	return fmt.Sprintf("| %d | %d/%d | %d | %d | %s | %s | %s |\n",
		rank, rec.OwnedCount, rec.TeamSize, rec.MissingCount, rec.BronzeCount,
		escapeCell(joinOrDash(rec.Team, ", ")),
		escapeCell(joinOrDash(rec.Missing, ", ")),
		escapeCell(joinOrDash(traits, ", ")))
}

// FormatCheck renders the check summary as Markdown
func (f *MarkdownFormatter) FormatCheck(summary *cue.CheckSummary) error {
	var b strings.Builder

	b.WriteString("# Dataset Check Report\n\n")
	b.WriteString(fmt.Sprintf("**Duration:** %v\n\n", time.Since(summary.StartTime).Round(time.Millisecond)))

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Count |\n")
	b.WriteString("|--------|-------|\n")
	b.WriteString(fmt.Sprintf("| Documents | %d |\n", summary.TotalFiles))
	b.WriteString(fmt.Sprintf("| Failed | %d |\n", summary.FailedFiles))
	b.WriteString(fmt.Sprintf("| Errors | %d |\n", summary.TotalErrors))
	b.WriteString(fmt.Sprintf("| Warnings | %d |\n\n", summary.TotalWarnings))

	for _, result := range summary.Results {
		if !f.verbose && len(result.Errors) == 0 && len(result.Warnings) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("### %s\n\n", strings.TrimPrefix(result.File, "./")))
		writeIssues(&b, "Errors", result.Errors)
		writeIssues(&b, "Warnings", result.Warnings)
	}

	if summary.FailedFiles == 0 {
		b.WriteString("✓ All documents passed the schema check\n")
	} else {
		b.WriteString(fmt.Sprintf("✗ %d documents failed the schema check\n", summary.FailedFiles))
	}
	return writeOut(f.out, f.outputFile, []byte(b.String()))
}

func writeIssues(b *strings.Builder, title string, issues []cue.ValidationError) {
	if len(issues) == 0 {
		return
	}
	b.WriteString(fmt.Sprintf("#### %s\n\n", title))
	for _, e := range issues {
		b.WriteString(fmt.Sprintf("- %s", e.Message))
		if e.Line > 0 {
			b.WriteString(fmt.Sprintf(" (line %d)", e.Line))
		}
		if e.Source != "" {
			b.WriteString(fmt.Sprintf(" `[%s]`", e.Source))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func joinOrDash(items []string, sep string) string {
	if len(items) == 0 {
		return "—"
	}
	return strings.Join(items, sep)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
