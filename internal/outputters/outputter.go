package outputters

import (
	"fmt"
	"io"
	"time"

	"github.com/dotcommander/compfinder/internal/config"
	"github.com/dotcommander/compfinder/internal/cue"
	"github.com/dotcommander/compfinder/internal/output"
)

// Formatter renders reports in one output format
type Formatter = output.Formatter

// FormatterFactory creates formatters by format name
type FormatterFactory interface {
	CreateFormatter(format string) (Formatter, error)
}

// DefaultFormatterFactory builds the formatters of the output package from a config
type DefaultFormatterFactory struct {
	config *config.Config
	out    io.Writer
}

// NewDefaultFormatterFactory creates a factory writing to out
func NewDefaultFormatterFactory(cfg *config.Config, out io.Writer) *DefaultFormatterFactory {
	return &DefaultFormatterFactory{config: cfg, out: out}
}

// CreateFormatter returns the formatter for format
func (f *DefaultFormatterFactory) CreateFormatter(format string) (Formatter, error) {
	switch format {
	case "console":
		return output.NewConsoleFormatter(f.out, f.config.Quiet, f.config.Verbose, f.config.Output), nil
	case "json":
		return output.NewJSONFormatter(f.out, true, f.config.Output), nil
	case "markdown":
		return output.NewMarkdownFormatter(f.out, f.config.Verbose, f.config.Output), nil
	case "xlsx":
		return output.NewXLSXFormatter(f.out, f.config.Output), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Outputter handles output formatting
type Outputter struct {
	config  *config.Config
	factory FormatterFactory
}

// NewOutputter creates a new Outputter writing to out
func NewOutputter(cfg *config.Config, out io.Writer) *Outputter {
	return NewOutputterWithFactory(cfg, NewDefaultFormatterFactory(cfg, out))
}

// NewOutputterWithFactory creates an Outputter using a custom factory
func NewOutputterWithFactory(cfg *config.Config, factory FormatterFactory) *Outputter {
	return &Outputter{config: cfg, factory: factory}
}

// FormatReport renders a ranked view in the given format
func (o *Outputter) FormatReport(report *output.Report, format string) error {
	formatter, err := o.factory.CreateFormatter(format)
	if err != nil {
		return err
	}
	if report.Limit == 0 {
		report.Limit = o.config.Limit
	}
	return formatter.FormatReport(report)
}

// FormatCheck renders a check summary in the given format
func (o *Outputter) FormatCheck(summary *cue.CheckSummary, format string) error {
	if summary.StartTime.IsZero() {
		summary.StartTime = time.Now()
	}
	formatter, err := o.factory.CreateFormatter(format)
	if err != nil {
		return err
	}
	return formatter.FormatCheck(summary)
}
