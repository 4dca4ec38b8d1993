package export

import (
	"fmt"
	"io"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type pdfColumn struct {
	title string
	width float64
	align string
	value func(report.MonthlyReportRow) string
}

func writePDF(w io.Writer, rep report.MonthlyReport) error {
	printer := message.NewPrinter(language.English)
	amount := func(d decimal.Decimal) string {
		return printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
	}
	count := func(n int) string { return printer.Sprintf("%d", n) }

	columns := []pdfColumn{
		{"Employee", 52, "L", func(r report.MonthlyReportRow) string { return r.FullName }},
		{"Present", 16, "R", func(r report.MonthlyReportRow) string { return count(r.Aggregate.PresentDays) }},
		{"Absent", 16, "R", func(r report.MonthlyReportRow) string { return count(r.Aggregate.AbsentDays) }},
		{"Leave", 14, "R", func(r report.MonthlyReportRow) string { return count(r.Aggregate.LeaveDays()) }},
		{"Holidays", 17, "R", func(r report.MonthlyReportRow) string { return count(r.Aggregate.HolidayDays) }},
		{"Hours", 18, "R", func(r report.MonthlyReportRow) string { return hours(r.Aggregate.TotalHoursWorked) }},
		{"Eff. Days", 18, "R", func(r report.MonthlyReportRow) string { return hours(r.Aggregate.EffectiveDays) }},
		{"Daily Rate", 28, "R", func(r report.MonthlyReportRow) string { return amount(r.Salary.DailyRate) }},
		{"Salary", 30, "R", func(r report.MonthlyReportRow) string { return amount(r.Salary.CalculatedSalary) }},
		{"OT Pay", 26, "R", func(r report.MonthlyReportRow) string { return amount(r.Salary.OvertimePay) }},
		{"Total", 32, "R", func(r report.MonthlyReportRow) string { return amount(r.Salary.TotalSalaryWithOvertime) }},
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(fmt.Sprintf("Monthly Salary Report %s", rep.Period.String()), true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, fmt.Sprintf("Monthly Salary Report - %s", rep.Period.String()), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Working days: %d    Generated: %s", rep.WorkingDays, rep.GeneratedAt.UTC().Format("2006-01-02 15:04 MST")), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(68, 114, 196)
		pdf.SetTextColor(255, 255, 255)
		for _, c := range columns {
			pdf.CellFormat(c.width, 7, c.title, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, marginBottom := pdf.GetMargins()
	maxY := pageHeight - marginBottom - 7

	total := decimal.Zero
	for _, row := range rep.Rows {
		if pdf.GetY() > maxY {
			pdf.AddPage()
			header()
		}
		for _, c := range columns {
			pdf.CellFormat(c.width, 6, tr(c.value(row)), "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
		total = total.Add(row.Salary.TotalSalaryWithOvertime)
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 7, "Total payroll: "+amount(total), "", 1, "R", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}
