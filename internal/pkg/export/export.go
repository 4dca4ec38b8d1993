// Package export renders a monthly salary report as CSV, XLSX or PDF.
package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-go/internal/engine"
)

// Options controls optional report sections.
type Options struct {
	IncludeBreakdown bool
}

// Write renders rep in the requested format.
func Write(w io.Writer, format report.ExportFormat, rep report.MonthlyReport, opts Options) error {
	switch format {
	case report.FormatCSV:
		return writeCSV(w, rep, opts)
	case report.FormatXLSX:
		return writeXLSX(w, rep, opts)
	case report.FormatPDF:
		return writePDF(w, rep)
	default:
		return fmt.Errorf("%w: %q", report.ErrUnsupportedFormat, format)
	}
}

func ContentType(format report.ExportFormat) string {
	switch format {
	case report.FormatCSV:
		return "text/csv; charset=utf-8"
	case report.FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case report.FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// FileName is the download name, e.g. "monthly-report-2025-01.xlsx".
func FileName(rep report.MonthlyReport, format report.ExportFormat) string {
	return fmt.Sprintf("monthly-report-%s.%s", rep.Period.String(), format)
}

var summaryHeaders = []string{
	"Employee Code",
	"Employee Name",
	"Email",
	"Working Days",
	"Present Days",
	"Absent Days",
	"Paid Leave Days",
	"Unpaid Leave Days",
	"Holidays",
	"Hours Worked",
	"Deficit Hours",
	"Effective Days",
	"Daily Rate",
	"Calculated Salary",
	"Overtime Hours",
	"Overtime Pay",
	"Total Salary",
}

// moneyColumns are the summaryHeaders indexes holding amounts.
var moneyColumns = []int{12, 13, 15, 16}

func summaryValues(workingDays int, row report.MonthlyReportRow) []interface{} {
	agg, sal := row.Aggregate, row.Salary
	return []interface{}{
		row.EmployeeCode,
		row.FullName,
		row.Email,
		workingDays,
		agg.PresentDays,
		agg.AbsentDays,
		agg.PaidLeaveDays,
		agg.UnpaidLeaveDays,
		agg.HolidayDays,
		report.RoundHours(agg.TotalHoursWorked),
		report.RoundHours(agg.DeficitHours),
		report.RoundHours(agg.EffectiveDays),
		sal.DailyRate.Round(2).InexactFloat64(),
		sal.CalculatedSalary.Round(2).InexactFloat64(),
		report.RoundHours(agg.OvertimeHours),
		sal.OvertimePay.Round(2).InexactFloat64(),
		sal.TotalSalaryWithOvertime.Round(2).InexactFloat64(),
	}
}

func summaryRecord(workingDays int, row report.MonthlyReportRow) []string {
	agg, sal := row.Aggregate, row.Salary
	return []string{
		row.EmployeeCode,
		row.FullName,
		row.Email,
		strconv.Itoa(workingDays),
		strconv.Itoa(agg.PresentDays),
		strconv.Itoa(agg.AbsentDays),
		strconv.Itoa(agg.PaidLeaveDays),
		strconv.Itoa(agg.UnpaidLeaveDays),
		strconv.Itoa(agg.HolidayDays),
		hours(agg.TotalHoursWorked),
		hours(agg.DeficitHours),
		hours(agg.EffectiveDays),
		report.Money(sal.DailyRate),
		report.Money(sal.CalculatedSalary),
		hours(agg.OvertimeHours),
		report.Money(sal.OvertimePay),
		report.Money(sal.TotalSalaryWithOvertime),
	}
}

var breakdownHeaders = []string{
	"Employee Code",
	"Employee Name",
	"Date",
	"Weekday",
	"Status",
	"Clock In",
	"Clock Out",
	"Hours",
	"Deficit Hours",
	"Overtime Hours",
	"Note",
}

func breakdownRecord(row report.MonthlyReportRow, day engine.DayResult, loc *time.Location) []string {
	note := string(day.Anomaly)
	if note == "" {
		note = day.HolidayName
	}
	return []string{
		row.EmployeeCode,
		row.FullName,
		day.Date.String(),
		day.Weekday.String(),
		string(day.Status),
		clock(day.ClockIn, loc),
		clock(day.ClockOut, loc),
		hours(day.Hours),
		hours(day.DeficitHours),
		hours(day.OvertimeHours),
		note,
	}
}

func hours(h float64) string {
	return strconv.FormatFloat(report.RoundHours(h), 'f', 2, 64)
}

func clock(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("15:04")
}
