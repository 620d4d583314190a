package output

import (
	"bytes"
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dotcommander/compfinder/internal/cue"
	"github.com/dotcommander/compfinder/internal/scoring"
)

// consoleStyles are bound to the renderer of the formatter's writer so
// colour is only emitted to terminals
type consoleStyles struct {
	title   lipgloss.Style
	sub     lipgloss.Style
	plain   lipgloss.Style
	owned   lipgloss.Style
	missing lipgloss.Style
	warn    lipgloss.Style
	key     lipgloss.Style
}

func newConsoleStyles(w io.Writer) consoleStyles {
	r := lipgloss.NewRenderer(w)
	return consoleStyles{
		title:   r.NewStyle().Bold(true),
		sub:     r.NewStyle().Foreground(lipgloss.Color("7")),  // gray
		plain:   r.NewStyle(),
		owned:   r.NewStyle().Foreground(lipgloss.Color("10")), // green
		missing: r.NewStyle().Foreground(lipgloss.Color("9")),  // red
		warn:    r.NewStyle().Foreground(lipgloss.Color("3")),  // yellow
		key:     r.NewStyle().Width(15).Foreground(lipgloss.Color("7")),
	}
}

// ConsoleFormatter formats output for console display
type ConsoleFormatter struct {
	out        io.Writer
	outputFile string
	quiet      bool
	verbose    bool
	styles     consoleStyles
}

// NewConsoleFormatter creates a new ConsoleFormatter writing to out, or to
// outputFile when it is set
func NewConsoleFormatter(out io.Writer, quiet, verbose bool, outputFile string) *ConsoleFormatter {
	return &ConsoleFormatter{
		out:        orStdout(out),
		outputFile: outputFile,
		quiet:      quiet,
		verbose:    verbose,
	}
}

// render runs print against the destination. File output is buffered and
// rendered without colour.
func (f *ConsoleFormatter) render(draw func()) error {
	if f.outputFile == "" {
		f.styles = newConsoleStyles(f.out)
		draw()
		return nil
	}

	dest := f.out
	var buf bytes.Buffer
	f.out = &buf
	f.styles = newConsoleStyles(&buf)
	draw()
	f.out = dest
	return writeOut(dest, f.outputFile, buf.Bytes())
}

// FormatReport prints one card per ranked comp followed by the result count.
// Quiet mode drops the header and the per-card detail lines.
func (f *ConsoleFormatter) FormatReport(report *Report) error {
	return f.render(func() { f.printReport(report) })
}

func (f *ConsoleFormatter) printReport(report *Report) {
	view := report.View

	if !f.quiet {
		f.printHeader(report)
	}

	for i, rec := range report.Shown() {
		f.printCard(i+1, rec)
	}

	if view.Count == 0 && !f.quiet {
		fmt.Fprintln(f.out, f.styles.sub.Render("No comps match the current filters."))
	}

	shown := len(report.Shown())
	if shown < view.Count {
		fmt.Fprintf(f.out, "\n%d results (showing %d)\n", view.Count, shown)
	} else {
		fmt.Fprintf(f.out, "\n%d results\n", view.Count)
	}
}

func (f *ConsoleFormatter) printHeader(report *Report) {
	view := report.View
	owned := "none"
	if len(view.Owned) > 0 {
		owned = strings.Join(view.Owned, ", ")
	}
	fmt.Fprintf(f.out, "%s\n", f.styles.title.Render(fmt.Sprintf("Level %s · sort %s · min owned %d/%d", view.Level, view.Mode, view.MinOwned, view.MaxOwned)))
	fmt.Fprintf(f.out, "%s\n", f.styles.sub.Render("Owned: "+owned))
	if f.verbose {
		if report.Source != "" {
			fmt.Fprintf(f.out, "%s\n", f.styles.sub.Render("Source: "+report.Source))
		}
		if report.GeneratedAt != "" {
			fmt.Fprintf(f.out, "%s\n", f.styles.sub.Render("Generated: "+report.GeneratedAt))
		}
		if report.TopN > 0 {
			fmt.Fprintf(f.out, "%s\n", f.styles.sub.Render(fmt.Sprintf("Top %d comps per level", report.TopN)))
		}
	}
	fmt.Fprintln(f.out)
}

func (f *ConsoleFormatter) printCard(rank int, rec scoring.ScoreRecord) {
	fmt.Fprintf(f.out, "%s\n", f.styles.title.Render(fmt.Sprintf("#%d  Level %s - %d/%d owned", rank, rec.Level, rec.OwnedCount, rec.TeamSize)))
	if f.quiet {
		return
	}

	if sub := metadataLine(rec); sub != "" {
		fmt.Fprintf(f.out, "    %s\n", f.styles.sub.Render(sub))
	}
	f.printRow("Team", rec.Team, f.styles.plain)
	f.printRow("Owned", rec.Owned, f.styles.owned)
	f.printRow("Missing", rec.Missing, f.styles.missing)

	var traits []string
	if rec.Comp != nil {
		traits = rec.Comp.BronzeTraits
	}
	if len(traits) == 0 {
		traits = []string{"—"}
	}
	f.printRow(fmt.Sprintf("Bronze (%d)", rec.BronzeCount), traits, f.styles.plain)
	if f.verbose && rec.Comp != nil && len(rec.Comp.TraitCounts) > 0 {
		f.printRow("Traits", TraitCountList(rec.Comp.TraitCounts), f.styles.sub)
	}
	fmt.Fprintln(f.out)
}

func (f *ConsoleFormatter) printRow(key string, values []string, style lipgloss.Style) {
	rendered := make([]string, len(values))
	for i, v := range values {
		rendered[i] = style.Render(v)
	}
	fmt.Fprintf(f.out, "    %s%s\n", f.styles.key.Render(key), strings.Join(rendered, "  "))
}

// metadataLine joins the informational comp fields that are present
func metadataLine(rec scoring.ScoreRecord) string {
	if rec.Comp == nil {
		return ""
	}
	var parts []string
	if rec.Comp.TeamSize != nil {
		parts = append(parts, fmt.Sprintf("Team size: %d", *rec.Comp.TeamSize))
	}
	if rec.Comp.MaxCostAllowed != nil {
		parts = append(parts, fmt.Sprintf("Max cost: %g", *rec.Comp.MaxCostAllowed))
	}
	return strings.Join(parts, " • ")
}

// TraitCountList renders trait counts as "Name N", highest count first and
// ties by name
func TraitCountList(counts map[string]int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		return cmp.Or(cmp.Compare(counts[b], counts[a]), strings.Compare(a, b))
	})
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = fmt.Sprintf("%s %d", name, counts[name])
	}
	return out
}

// FormatCheck prints the documents with issues and a closing summary
func (f *ConsoleFormatter) FormatCheck(summary *cue.CheckSummary) error {
	return f.render(func() { f.printCheck(summary) })
}

func (f *ConsoleFormatter) printCheck(summary *cue.CheckSummary) {
	for _, result := range summary.Results {
		hasIssues := len(result.Errors) > 0 || len(result.Warnings) > 0
		if !hasIssues && !f.verbose {
			continue
		}
		if f.quiet && len(result.Errors) == 0 {
			continue
		}

		status := f.styles.owned.Render("✓")
		if len(result.Errors) > 0 {
			status = f.styles.missing.Render("✗")
		} else if len(result.Warnings) > 0 {
			status = f.styles.warn.Render("⚠")
		}
		fmt.Fprintf(f.out, "%s %s\n", status, result.File)

		for _, e := range result.Errors {
			f.printIssue(e, f.styles.missing, "✘")
		}
		if !f.quiet {
			for _, w := range result.Warnings {
				f.printIssue(w, f.styles.warn, "⚠")
			}
		}
	}

	if f.quiet {
		return
	}

	if summary.FailedFiles == 0 && summary.TotalWarnings == 0 {
		fmt.Fprintf(f.out, "%s\n", f.styles.owned.Bold(true).Render(fmt.Sprintf("✓ All %d documents passed", summary.TotalFiles)))
		return
	}

	duration := time.Since(summary.StartTime)
	fmt.Fprintf(f.out, "\n%d/%d passed, %d errors, %d warnings (%v)\n",
		summary.TotalFiles-summary.FailedFiles, summary.TotalFiles,
		summary.TotalErrors, summary.TotalWarnings,
		duration.Round(time.Millisecond))
}

func (f *ConsoleFormatter) printIssue(e cue.ValidationError, style lipgloss.Style, marker string) {
	if e.Line > 0 {
		fmt.Fprintf(f.out, "    %s %s:%d: %s\n", style.Render(marker), e.File, e.Line, e.Message)
		return
	}
	fmt.Fprintf(f.out, "    %s %s\n", style.Render(marker), e.Message)
}
