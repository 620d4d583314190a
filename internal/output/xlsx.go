package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dotcommander/compfinder/internal/cue"
	"github.com/xuri/excelize/v2"
)

// ErrCheckXLSX is returned when a check summary is requested as a workbook
var ErrCheckXLSX = errors.New("xlsx format is only available for ranked views")

var xlsxHeaders = []string{
	"Rank", "Owned", "Team Size", "Ratio", "Missing", "Bronze",
	"Team", "Owned Units", "Missing Units", "Bronze Traits", "Max Cost",
}

// XLSXFormatter writes the ranked view as an Excel workbook
type XLSXFormatter struct {
	out        io.Writer
	outputFile string
}

// NewXLSXFormatter creates a new XLSXFormatter. The workbook is saved to
// outputFile when set, otherwise streamed to out.
func NewXLSXFormatter(out io.Writer, outputFile string) *XLSXFormatter {
	return &XLSXFormatter{
		out:        orStdout(out),
		outputFile: outputFile,
	}
}

// SheetName is the worksheet holding the results of a level
func SheetName(level string) string {
	return "Level " + level
}

// FormatReport builds one sheet of ranked comps
func (f *XLSXFormatter) FormatReport(report *Report) error {
	wb, err := BuildWorkbook(report)
	if err != nil {
		return err
	}
	defer wb.Close()

	if f.outputFile != "" {
		if err := wb.SaveAs(f.outputFile); err != nil {
			return fmt.Errorf("error writing to file %s: %w", f.outputFile, err)
		}
		return nil
	}
	if err := wb.Write(f.out); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}

// FormatCheck is not supported for workbooks
func (f *XLSXFormatter) FormatCheck(*cue.CheckSummary) error {
	return ErrCheckXLSX
}

// BuildWorkbook lays out the report on a single sheet with a styled header row
func BuildWorkbook(report *Report) (*excelize.File, error) {
	wb := excelize.NewFile()
	sheet := SheetName(report.View.Level)
	if err := wb.SetSheetName("Sheet1", sheet); err != nil {
		wb.Close()
		return nil, err
	}

	for i, h := range xlsxHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		wb.SetCellValue(sheet, cell, h)
	}

	headerStyle, err := wb.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		wb.Close()
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(xlsxHeaders))
	if err := wb.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		wb.Close()
		return nil, err
	}

	for i, rec := range report.Shown() {
		row := i + 2
		var traits []string
		var maxCost any = ""
		if rec.Comp != nil {
			traits = rec.Comp.BronzeTraits
			if rec.Comp.MaxCostAllowed != nil {
				maxCost = *rec.Comp.MaxCostAllowed
			}
		}
		values := []any{
			i + 1,
			rec.OwnedCount,
			rec.TeamSize,
			rec.Ratio,
			rec.MissingCount,
			rec.BronzeCount,
			strings.Join(rec.Team, ", "),
			strings.Join(rec.Owned, ", "),
			strings.Join(rec.Missing, ", "),
			strings.Join(traits, ", "),
			maxCost,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			wb.SetCellValue(sheet, cell, v)
		}
	}

	_ = wb.SetColWidth(sheet, "A", "F", 10)
	_ = wb.SetColWidth(sheet, "G", "J", 40)
	_ = wb.SetColWidth(sheet, "K", "K", 10)
	_ = wb.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	return wb, nil
}
