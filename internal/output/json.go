package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dotcommander/compfinder/internal/cue"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	out        io.Writer
	indent     bool
	outputFile string
}

// NewJSONFormatter creates a new JSONFormatter. When outputFile is set the
// document is written there instead of out.
func NewJSONFormatter(out io.Writer, indent bool, outputFile string) *JSONFormatter {
	return &JSONFormatter{
		out:        orStdout(out),
		indent:     indent,
		outputFile: outputFile,
	}
}

// JSONHeader identifies the producing tool
type JSONHeader struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// JSONReport is the document written for a ranked view
type JSONReport struct {
	Header      JSONHeader   `json:"header"`
	Source      string       `json:"source,omitempty"`
	GeneratedAt string       `json:"generated_at_utc,omitempty"`
	TopN        int          `json:"top_n,omitempty"`
	Level       string       `json:"level"`
	Sort        string       `json:"sort"`
	MinOwned    int          `json:"min_owned"`
	MaxOwned    int          `json:"max_owned"`
	Owned       []string     `json:"owned"`
	Count       int          `json:"count"`
	Results     []JSONResult `json:"results"`
}

// JSONResult is one ranked comp
type JSONResult struct {
	Rank           int            `json:"rank"`
	Index          int            `json:"index"`
	Team           []string       `json:"team"`
	Owned          []string       `json:"owned"`
	Missing        []string       `json:"missing"`
	OwnedCount     int            `json:"owned_count"`
	MissingCount   int            `json:"missing_count"`
	TeamSize       int            `json:"team_size"`
	Ratio          float64        `json:"ratio"`
	BronzeCount    int            `json:"bronze_count"`
	BronzeTraits   []string       `json:"bronze_traits"`
	DeclaredSize   *int           `json:"declared_team_size,omitempty"`
	MaxCostAllowed *float64       `json:"max_cost_allowed,omitempty"`
	TraitCounts    map[string]int `json:"trait_counts,omitempty"`
}

// JSONCheckReport is the document written for a check run
type JSONCheckReport struct {
	Header  JSONHeader        `json:"header"`
	Summary JSONCheckSummary  `json:"summary"`
	Results []cue.CheckResult `json:"results"`
}

// JSONCheckSummary holds the check totals
type JSONCheckSummary struct {
	TotalFiles    int    `json:"totalFiles"`
	FailedFiles   int    `json:"failedFiles"`
	TotalErrors   int    `json:"totalErrors"`
	TotalWarnings int    `json:"totalWarnings"`
	Duration      string `json:"duration"`
}

func newHeader() JSONHeader {
	return JSONHeader{
		Tool:      ToolName,
		Version:   ToolVersion,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// BuildJSONReport converts a report into its JSON document form
func BuildJSONReport(report *Report) JSONReport {
	view := report.View
	shown := report.Shown()

	doc := JSONReport{
		Header:      newHeader(),
		Source:      report.Source,
		GeneratedAt: report.GeneratedAt,
		TopN:        report.TopN,
		Level:       view.Level,
		Sort:        string(view.Mode),
		MinOwned:    view.MinOwned,
		MaxOwned:    view.MaxOwned,
		Owned:       nonNil(view.Owned),
		Count:       view.Count,
		Results:     make([]JSONResult, len(shown)),
	}

	for i, rec := range shown {
		res := JSONResult{
			Rank:         i + 1,
			Index:        rec.Index,
			Team:         nonNil(rec.Team),
			Owned:        nonNil(rec.Owned),
			Missing:      nonNil(rec.Missing),
			OwnedCount:   rec.OwnedCount,
			MissingCount: rec.MissingCount,
			TeamSize:     rec.TeamSize,
			Ratio:        rec.Ratio,
			BronzeCount:  rec.BronzeCount,
			BronzeTraits: []string{},
		}
		if rec.Comp != nil {
			res.BronzeTraits = nonNil(rec.Comp.BronzeTraits)
			res.DeclaredSize = rec.Comp.TeamSize
			res.MaxCostAllowed = rec.Comp.MaxCostAllowed
			res.TraitCounts = rec.Comp.TraitCounts
		}
		doc.Results[i] = res
	}
	return doc
}

// FormatReport writes the ranked view as JSON
func (f *JSONFormatter) FormatReport(report *Report) error {
	return f.write(BuildJSONReport(report))
}

// FormatCheck writes the check summary as JSON
func (f *JSONFormatter) FormatCheck(summary *cue.CheckSummary) error {
	doc := JSONCheckReport{
		Header: newHeader(),
		Summary: JSONCheckSummary{
			TotalFiles:    summary.TotalFiles,
			FailedFiles:   summary.FailedFiles,
			TotalErrors:   summary.TotalErrors,
			TotalWarnings: summary.TotalWarnings,
			Duration:      time.Since(summary.StartTime).Round(time.Millisecond).String(),
		},
		Results: summary.Results,
	}
	if doc.Results == nil {
		doc.Results = []cue.CheckResult{}
	}
	return f.write(doc)
}

func (f *JSONFormatter) write(v any) error {
	var data []byte
	var err error
	if f.indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}
	return writeOut(f.out, f.outputFile, append(data, '\n'))
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
