package export

import (
	"fmt"
	"io"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet   = "Summary"
	breakdownSheet = "Daily Breakdown"

	// numFmtAmount is the built-in "#,##0.00" format.
	numFmtAmount = 4
)

func writeXLSX(w io.Writer, rep report.MonthlyReport, opts Options) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtAmount})
	if err != nil {
		return fmt.Errorf("failed to create amount style: %w", err)
	}

	if err := writeSheetRow(f, summarySheet, 1, toRow(summaryHeaders)); err != nil {
		return err
	}
	if err := styleRow(f, summarySheet, 1, len(summaryHeaders), headerStyle); err != nil {
		return err
	}

	for i, row := range rep.Rows {
		r := i + 2
		if err := writeSheetRow(f, summarySheet, r, summaryValues(rep.WorkingDays, row)); err != nil {
			return err
		}
		for _, col := range moneyColumns {
			cell, err := excelize.CoordinatesToCellName(col+1, r)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(summarySheet, cell, cell, amountStyle); err != nil {
				return fmt.Errorf("failed to style amount cell: %w", err)
			}
		}
	}
	if err := f.SetColWidth(summarySheet, "A", "C", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "D", "Q", 16); err != nil {
		return err
	}

	if opts.IncludeBreakdown {
		if _, err := f.NewSheet(breakdownSheet); err != nil {
			return fmt.Errorf("failed to create breakdown sheet: %w", err)
		}
		if err := writeSheetRow(f, breakdownSheet, 1, toRow(breakdownHeaders)); err != nil {
			return err
		}
		if err := styleRow(f, breakdownSheet, 1, len(breakdownHeaders), headerStyle); err != nil {
			return err
		}
		r := 2
		for _, row := range rep.Rows {
			for _, day := range row.Aggregate.DailyBreakdown {
				if err := writeSheetRow(f, breakdownSheet, r, toRow(breakdownRecord(row, day, rep.Location))); err != nil {
					return err
				}
				r++
			}
		}
		if err := f.SetColWidth(breakdownSheet, "A", "B", 24); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheetRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func styleRow(f *excelize.File, sheet string, row, cols, style int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}

func toRow(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
