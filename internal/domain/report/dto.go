package report

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/hris-attendance-go/internal/engine"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// MONTHLY SALARY REPORT
// ========================================

type MonthlyReportRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
	// EmployeeID limits the report to one employee when set.
	EmployeeID string `json:"employee_id,omitempty"`
}

func (r *MonthlyReportRequest) Validate() error {
	errs := validator.ValidatePeriod(r.Month, r.Year)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
	FormatPDF  ExportFormat = "pdf"
)

type ExportReportRequest struct {
	MonthlyReportRequest
	Format           ExportFormat `json:"format"`
	IncludeBreakdown bool         `json:"breakdown"`
}

func (r *ExportReportRequest) Validate() error {
	errs := validator.ValidatePeriod(r.Month, r.Year)
	switch r.Format {
	case FormatCSV, FormatXLSX, FormatPDF:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: "format must be one of csv, xlsx, pdf",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MonthlyReport is the assembled result for one period. Rows are ordered by
// employee full name.
type MonthlyReport struct {
	Period      engine.Month
	WorkingDays int
	GeneratedAt time.Time
	// Location is the company timezone punches are presented in.
	Location    *time.Location
	Rows        []MonthlyReportRow
}

// ArchiveKey is the storage key of a period's archived workbook.
func ArchiveKey(m engine.Month) string {
	return "reports/" + m.String() + "/monthly-report.xlsx"
}

func (r MonthlyReport) PeriodStart() civil.Date { return r.Period.First() }
func (r MonthlyReport) PeriodEnd() civil.Date   { return r.Period.Last() }

// MonthlyReportRow is one employee's figures. Money stays at full precision.
type MonthlyReportRow struct {
	EmployeeID    string
	EmployeeCode  string
	FullName      string
	Email         string
	MonthlySalary *decimal.Decimal
	Aggregate     engine.MonthlyAggregate
	Salary        engine.Salary
}

type MonthlyReportResponse struct {
	PeriodMonth int                        `json:"period_month"`
	PeriodYear  int                        `json:"period_year"`
	PeriodStart civil.Date                 `json:"period_start"`
	PeriodEnd   civil.Date                 `json:"period_end"`
	WorkingDays int                        `json:"working_days"`
	GeneratedAt time.Time                  `json:"generated_at"`
	Employees   []MonthlyReportRowResponse `json:"employees"`
}

type MonthlyReportRowResponse struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeCode string  `json:"employee_code"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	Salary       *string `json:"monthly_salary"`

	PresentDays     int     `json:"present_days"`
	AbsentDays      int     `json:"absent_days"`
	PaidLeaveDays   int     `json:"paid_leave_days"`
	UnpaidLeaveDays int     `json:"unpaid_leave_days"`
	LeaveDayUnits   float64 `json:"leave_day_units"`
	HolidayDays     int     `json:"holiday_days"`
	WeekendDays     int     `json:"weekend_days"`
	UpcomingDays    int     `json:"upcoming_days"`

	TotalHoursWorked float64 `json:"total_hours_worked"`
	DeficitHours     float64 `json:"deficit_hours"`
	EffectiveDays    float64 `json:"effective_days"`
	OvertimeHours    float64 `json:"overtime_hours"`

	DailyRate               string `json:"daily_rate"`
	HourlyRate              string `json:"hourly_rate"`
	OvertimeHourlyRate      string `json:"overtime_hourly_rate"`
	CalculatedSalary        string `json:"calculated_salary"`
	OvertimePay             string `json:"overtime_pay"`
	TotalSalaryWithOvertime string `json:"total_salary_with_overtime"`

	LeaveConflicts []civil.Date        `json:"leave_conflicts,omitempty"`
	Anomalies      []civil.Date        `json:"anomalies,omitempty"`
	DailyBreakdown []DayResultResponse `json:"daily_breakdown,omitempty"`
}

type DayResultResponse struct {
	Date          civil.Date       `json:"date"`
	Weekday       string           `json:"weekday"`
	Status        engine.DayStatus `json:"status"`
	HolidayName   string           `json:"holiday_name,omitempty"`
	LeaveSession  string           `json:"leave_session,omitempty"`
	ClockIn       *time.Time       `json:"clock_in,omitempty"`
	ClockOut      *time.Time       `json:"clock_out,omitempty"`
	Hours         float64          `json:"hours"`
	DeficitHours  float64          `json:"deficit_hours"`
	OvertimeHours float64          `json:"overtime_hours"`
	Anomaly       string           `json:"anomaly,omitempty"`
}

// RoundHours rounds an hour figure to two places for presentation.
func RoundHours(h float64) float64 {
	return decimal.NewFromFloat(h).Round(2).InexactFloat64()
}

// Money formats an amount with two decimal places.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func NewMonthlyReportResponse(r MonthlyReport, includeBreakdown bool) MonthlyReportResponse {
	resp := MonthlyReportResponse{
		PeriodMonth: int(r.Period.Month),
		PeriodYear:  r.Period.Year,
		PeriodStart: r.PeriodStart(),
		PeriodEnd:   r.PeriodEnd(),
		WorkingDays: r.WorkingDays,
		GeneratedAt: r.GeneratedAt,
		Employees:   make([]MonthlyReportRowResponse, 0, len(r.Rows)),
	}
	for _, row := range r.Rows {
		resp.Employees = append(resp.Employees, NewMonthlyReportRowResponse(row, includeBreakdown))
	}
	return resp
}

func NewMonthlyReportRowResponse(row MonthlyReportRow, includeBreakdown bool) MonthlyReportRowResponse {
	agg, sal := row.Aggregate, row.Salary

	resp := MonthlyReportRowResponse{
		EmployeeID:   row.EmployeeID,
		EmployeeCode: row.EmployeeCode,
		FullName:     row.FullName,
		Email:        row.Email,

		PresentDays:     agg.PresentDays,
		AbsentDays:      agg.AbsentDays,
		PaidLeaveDays:   agg.PaidLeaveDays,
		UnpaidLeaveDays: agg.UnpaidLeaveDays,
		LeaveDayUnits:   agg.LeaveDayUnits,
		HolidayDays:     agg.HolidayDays,
		WeekendDays:     agg.WeekendDays,
		UpcomingDays:    agg.UpcomingDays,

		TotalHoursWorked: RoundHours(agg.TotalHoursWorked),
		DeficitHours:     RoundHours(agg.DeficitHours),
		EffectiveDays:    RoundHours(agg.EffectiveDays),
		OvertimeHours:    RoundHours(agg.OvertimeHours),

		DailyRate:               Money(sal.DailyRate),
		HourlyRate:              Money(sal.HourlyRate),
		OvertimeHourlyRate:      Money(sal.OvertimeHourlyRate),
		CalculatedSalary:        Money(sal.CalculatedSalary),
		OvertimePay:             Money(sal.OvertimePay),
		TotalSalaryWithOvertime: Money(sal.TotalSalaryWithOvertime),

		LeaveConflicts: agg.LeaveConflicts,
		Anomalies:      agg.Anomalies,
	}
	if row.MonthlySalary != nil {
		s := Money(*row.MonthlySalary)
		resp.Salary = &s
	}
	if includeBreakdown {
		resp.DailyBreakdown = NewDayResultResponses(agg.DailyBreakdown)
	}
	return resp
}

func NewDayResultResponses(days []engine.DayResult) []DayResultResponse {
	out := make([]DayResultResponse, 0, len(days))
	for _, d := range days {
		out = append(out, DayResultResponse{
			Date:          d.Date,
			Weekday:       d.Weekday.String(),
			Status:        d.Status,
			HolidayName:   d.HolidayName,
			LeaveSession:  string(d.LeaveSession),
			ClockIn:       d.ClockIn,
			ClockOut:      d.ClockOut,
			Hours:         RoundHours(d.Hours),
			DeficitHours:  RoundHours(d.DeficitHours),
			OvertimeHours: RoundHours(d.OvertimeHours),
			Anomaly:       string(d.Anomaly),
		})
	}
	return out
}

// ========================================
// EMPLOYEE MONTHLY SUMMARY
// ========================================

type EmployeeSummaryRequest struct {
	EmployeeID string
	Month      int
	Year       int
}

func (r *EmployeeSummaryRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	errs = append(errs, validator.ValidatePeriod(r.Month, r.Year)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EmployeeSummaryResponse is the self-service view of the same aggregate used
// by the monthly report. PresentDays includes working-day holidays.
type EmployeeSummaryResponse struct {
	EmployeeID      string  `json:"employee_id"`
	PeriodMonth     int     `json:"period_month"`
	PeriodYear      int     `json:"period_year"`
	WorkingDays     int     `json:"working_days"`
	PresentDays     int     `json:"present_days"`
	AttendedDays    int     `json:"attended_days"`
	HolidayDays     int     `json:"holiday_days"`
	AbsentDays      int     `json:"absent_days"`
	PaidLeaveDays   int     `json:"paid_leave_days"`
	UnpaidLeaveDays int     `json:"unpaid_leave_days"`
	LeaveDayUnits   float64 `json:"leave_day_units"`
	UpcomingDays    int     `json:"upcoming_days"`

	TotalHoursWorked float64 `json:"total_hours_worked"`
	DeficitHours     float64 `json:"deficit_hours"`
	EffectiveDays    float64 `json:"effective_days"`
	OvertimeHours    float64 `json:"overtime_hours"`

	DailyBreakdown []DayResultResponse `json:"daily_breakdown"`
}

func NewEmployeeSummaryResponse(employeeID string, agg engine.MonthlyAggregate) EmployeeSummaryResponse {
	return EmployeeSummaryResponse{
		EmployeeID:       employeeID,
		PeriodMonth:      int(agg.Month.Month),
		PeriodYear:       agg.Month.Year,
		WorkingDays:      agg.WorkingDays,
		PresentDays:      agg.PresentDays + agg.HolidayDays,
		AttendedDays:     agg.PresentDays,
		HolidayDays:      agg.HolidayDays,
		AbsentDays:       agg.AbsentDays,
		PaidLeaveDays:    agg.PaidLeaveDays,
		UnpaidLeaveDays:  agg.UnpaidLeaveDays,
		LeaveDayUnits:    agg.LeaveDayUnits,
		UpcomingDays:     agg.UpcomingDays,
		TotalHoursWorked: RoundHours(agg.TotalHoursWorked),
		DeficitHours:     RoundHours(agg.DeficitHours),
		EffectiveDays:    RoundHours(agg.EffectiveDays),
		OvertimeHours:    RoundHours(agg.OvertimeHours),
		DailyBreakdown:   NewDayResultResponses(agg.DailyBreakdown),
	}
}
