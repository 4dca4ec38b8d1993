package export

import (
	"encoding/csv"
	"io"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
)

// writeCSV emits the summary table and, when requested, a blank line
// followed by the per-day breakdown table.
func writeCSV(w io.Writer, rep report.MonthlyReport, opts Options) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(summaryHeaders); err != nil {
		return err
	}
	for _, row := range rep.Rows {
		if err := cw.Write(summaryRecord(rep.WorkingDays, row)); err != nil {
			return err
		}
	}

	if opts.IncludeBreakdown {
		if err := cw.Write(nil); err != nil {
			return err
		}
		if err := cw.Write(breakdownHeaders); err != nil {
			return err
		}
		for _, row := range rep.Rows {
			for _, day := range row.Aggregate.DailyBreakdown {
				if err := cw.Write(breakdownRecord(row, day, rep.Location)); err != nil {
					return err
				}
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
