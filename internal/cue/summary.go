package cue

import "time"

// CheckResult is the outcome of checking one dataset document.
type CheckResult struct {
	File     string            `json:"file"`
	Success  bool              `json:"success"`
	Errors   []ValidationError `json:"errors,omitempty"`
	Warnings []ValidationError `json:"warnings,omitempty"`
}

// CheckSummary aggregates results across documents.
type CheckSummary struct {
	StartTime     time.Time     `json:"-"`
	Results       []CheckResult `json:"results"`
	TotalFiles    int           `json:"total_files"`
	FailedFiles   int           `json:"failed_files"`
	TotalErrors   int           `json:"total_errors"`
	TotalWarnings int           `json:"total_warnings"`
}

// NewCheckSummary creates an empty summary starting now.
func NewCheckSummary() *CheckSummary {
	return &CheckSummary{StartTime: time.Now(), Results: []CheckResult{}}
}

// Add records a result and updates the totals.
func (s *CheckSummary) Add(r CheckResult) {
	s.Results = append(s.Results, r)
	s.TotalFiles++
	if !r.Success {
		s.FailedFiles++
	}
	s.TotalErrors += len(r.Errors)
	s.TotalWarnings += len(r.Warnings)
}

// CheckDocument runs the schema check and the metadata diagnostics on one
// document.
func (v *Validator) CheckDocument(path string, content []byte) (CheckResult, error) {
	errs, err := v.ValidateDataset(path, content)
	if err != nil {
		return CheckResult{}, err
	}
	return CheckResult{
		File:     path,
		Success:  len(errs) == 0,
		Errors:   errs,
		Warnings: CheckMetadata(path, content),
	}, nil
}
