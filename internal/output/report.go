package output

import (
	"fmt"
	"io"
	"os"

	"github.com/dotcommander/compfinder/internal/cue"
	"github.com/dotcommander/compfinder/internal/scoring"
	"github.com/dotcommander/compfinder/internal/session"
)

// Tool identity written into report headers
const (
	ToolName    = "compfinder"
	ToolVersion = "1.0.0"
)

// Report is a rendered ranking: the session view plus where it came from.
type Report struct {
	Source      string
	GeneratedAt string
	TopN        int
	View        session.View
	Limit       int // 0 shows every record
}

// Shown returns the records to display after applying the limit.
func (r *Report) Shown() []scoring.ScoreRecord {
	if r.Limit > 0 && r.Limit < len(r.View.Records) {
		return r.View.Records[:r.Limit]
	}
	return r.View.Records
}

// Formatter renders reports and check summaries
type Formatter interface {
	FormatReport(report *Report) error
	FormatCheck(summary *cue.CheckSummary) error
}

// writeOut writes content to outputFile, or to w when no file is set
func writeOut(w io.Writer, outputFile string, content []byte) error {
	if outputFile != "" {
		if err := os.WriteFile(outputFile, content, 0644); err != nil {
			return fmt.Errorf("error writing to file %s: %w", outputFile, err)
		}
		return nil
	}
	_, err := w.Write(content)
	return err
}

func orStdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
