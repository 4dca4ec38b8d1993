package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/overtime"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-go/internal/engine"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC)

func salary(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func at(d civil.Date, h, m int) *time.Time {
	t := time.Date(d.Year, d.Month, d.Day, h, m, 0, 0, time.UTC)
	return &t
}

func newTestService(t *testing.T, store *memory.Store) report.ReportService {
	t.Helper()
	return NewReportService(
		memory.NewSettingsRepository(store),
		memory.NewEmployeeRepository(store),
		memory.NewAttendanceRepository(store),
		memory.NewLeaveRequestRepository(store),
		memory.NewHolidayRepository(store),
		memory.NewOvertimeRepository(store),
		Options{Concurrency: 2, Now: func() time.Time { return fixedNow }},
	)
}

// seed builds a January 2025 data set with three employees.
func seed(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	store.PutSettings(company.Settings{
		ID:          "settings",
		WeekendDays: []string{"Saturday", "Sunday"},
		Timezone:    "UTC",
	})

	store.PutEmployee(employee.Employee{ID: "e-zed", FullName: "Zed Full", Email: "zed@example.com", MonthlySalary: salary("4600"), IsActive: true})
	store.PutEmployee(employee.Employee{ID: "e-amy", FullName: "Amy Part", Email: "amy@example.com", MonthlySalary: salary("2300"), IsActive: true})
	store.PutEmployee(employee.Employee{ID: "e-bob", FullName: "Bob NoSalary", Email: "bob@example.com", IsActive: true})
	store.PutEmployee(employee.Employee{ID: "e-old", FullName: "Old Inactive", IsActive: false})

	store.PutLeaveType(leave.LeaveType{ID: "annual", Name: "Annual", IsPaid: true, IsActive: true})
	store.PutLeaveType(leave.LeaveType{ID: "unpaid", Name: "Unpaid", IsPaid: false, IsActive: true})

	store.PutHoliday(holiday.Holiday{Date: civil.Date{Year: 2025, Month: time.January, Day: 1}, Name: "New Year"})

	// Zed works every remaining weekday 09:30 to 19:00.
	for d := (civil.Date{Year: 2025, Month: time.January, Day: 2}); d.Month == time.January; d = d.AddDays(1) {
		if wd := engine.Weekday(d); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		store.PutAttendance(attendance.Attendance{
			EmployeeID: "e-zed",
			Date:       d,
			ClockIn:    at(d, 9, 30),
			ClockOut:   at(d, 19, 0),
			Status:     attendance.StatusPresent,
		})
	}
	store.PutOvertime(overtime.Overtime{
		EmployeeID:  "e-zed",
		Date:        civil.Date{Year: 2025, Month: time.January, Day: 4},
		TimeFrom:    "09:00",
		TimeTo:      "13:00",
		HoursWorked: 4,
		Type:        overtime.TypeWeekend,
		Status:      overtime.StatusApproved,
	})
	store.PutOvertime(overtime.Overtime{
		EmployeeID:  "e-zed",
		Date:        civil.Date{Year: 2025, Month: time.January, Day: 5},
		HoursWorked: 6,
		Type:        overtime.TypeWeekend,
		Status:      overtime.StatusPending,
	})

	// Amy takes a paid week and one unpaid day, nothing else.
	store.PutLeaveRequest(leave.LeaveRequest{
		ID:          "l-amy-1",
		EmployeeID:  "e-amy",
		LeaveTypeID: "annual",
		FromDate:    civil.Date{Year: 2025, Month: time.January, Day: 6},
		ToDate:      civil.Date{Year: 2025, Month: time.January, Day: 10},
		FromSession: leave.SessionFull,
		ToSession:   leave.SessionFull,
		Status:      leave.LeaveRequestStatusApproved,
	})
	store.PutLeaveRequest(leave.LeaveRequest{
		ID:          "l-amy-2",
		EmployeeID:  "e-amy",
		LeaveTypeID: "unpaid",
		FromDate:    civil.Date{Year: 2025, Month: time.January, Day: 15},
		ToDate:      civil.Date{Year: 2025, Month: time.January, Day: 15},
		FromSession: leave.SessionFull,
		ToSession:   leave.SessionFull,
		Status:      leave.LeaveRequestStatusApproved,
	})
	store.PutLeaveRequest(leave.LeaveRequest{
		ID:          "l-amy-3",
		EmployeeID:  "e-amy",
		LeaveTypeID: "annual",
		FromDate:    civil.Date{Year: 2025, Month: time.January, Day: 20},
		ToDate:      civil.Date{Year: 2025, Month: time.January, Day: 20},
		FromSession: leave.SessionFull,
		ToSession:   leave.SessionFull,
		Status:      leave.LeaveRequestStatusPending,
	})
	return store
}

func rowFor(t *testing.T, r report.MonthlyReport, id string) report.MonthlyReportRow {
	t.Helper()
	for _, row := range r.Rows {
		if row.EmployeeID == id {
			return row
		}
	}
	t.Fatalf("no row for %s", id)
	return report.MonthlyReportRow{}
}

func TestReportService_GenerateMonthlyReport(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, seed(t))

	got, err := svc.GenerateMonthlyReport(ctx, report.MonthlyReportRequest{Month: 1, Year: 2025})
	require.NoError(t, err)

	assert.Equal(t, engine.Month{Year: 2025, Month: time.January}, got.Period)
	assert.Equal(t, 23, got.WorkingDays)
	assert.Equal(t, fixedNow, got.GeneratedAt)

	require.Len(t, got.Rows, 3)
	names := []string{got.Rows[0].FullName, got.Rows[1].FullName, got.Rows[2].FullName}
	assert.Equal(t, []string{"Amy Part", "Bob NoSalary", "Zed Full"}, names)

	t.Run("full attendance with holiday and overtime", func(t *testing.T) {
		zed := rowFor(t, got, "e-zed")
		assert.Equal(t, 22, zed.Aggregate.PresentDays)
		assert.Equal(t, 1, zed.Aggregate.HolidayDays)
		assert.Zero(t, zed.Aggregate.AbsentDays)
		assert.Equal(t, 23*engine.StandardWorkHours, zed.Aggregate.TotalHoursWorked)
		assert.Equal(t, 23.0, zed.Aggregate.EffectiveDays)
		assert.Equal(t, 4.0, zed.Aggregate.OvertimeHours)
		assert.Equal(t, "4600.00", zed.Salary.CalculatedSalary.StringFixed(2))
		// 200 / 8.5 * 1.5 * 4
		assert.Equal(t, "141.18", zed.Salary.OvertimePay.StringFixed(2))
		assert.Equal(t, "4741.18", zed.Salary.TotalSalaryWithOvertime.StringFixed(2))
	})

	t.Run("leave only employee", func(t *testing.T) {
		amy := rowFor(t, got, "e-amy")
		assert.Equal(t, 5, amy.Aggregate.PaidLeaveDays)
		assert.Equal(t, 1, amy.Aggregate.UnpaidLeaveDays)
		assert.Equal(t, 1, amy.Aggregate.HolidayDays)
		assert.Equal(t, 16, amy.Aggregate.AbsentDays)
		assert.Equal(t, 6*engine.StandardWorkHours, amy.Aggregate.TotalHoursWorked)
		assert.Equal(t, "600.00", amy.Salary.CalculatedSalary.StringFixed(2))
	})

	t.Run("missing salary yields zero money but keeps the row", func(t *testing.T) {
		bob := rowFor(t, got, "e-bob")
		assert.Nil(t, bob.MonthlySalary)
		assert.True(t, bob.Salary.TotalSalaryWithOvertime.IsZero())
		assert.Equal(t, 1, bob.Aggregate.HolidayDays)
		assert.Equal(t, 22, bob.Aggregate.AbsentDays)
	})
}

func TestReportService_GenerateMonthlyReport_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, seed(t))
	req := report.MonthlyReportRequest{Month: 1, Year: 2025}

	first, err := svc.GenerateMonthlyReport(ctx, req)
	require.NoError(t, err)
	second, err := svc.GenerateMonthlyReport(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.Rows, second.Rows)
}

func TestReportService_GenerateMonthlyReport_SingleEmployee(t *testing.T) {
	svc := newTestService(t, seed(t))

	got, err := svc.GenerateMonthlyReport(context.Background(), report.MonthlyReportRequest{Month: 1, Year: 2025, EmployeeID: "e-amy"})
	require.NoError(t, err)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "e-amy", got.Rows[0].EmployeeID)

	_, err = svc.GenerateMonthlyReport(context.Background(), report.MonthlyReportRequest{Month: 1, Year: 2025, EmployeeID: "missing"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestReportService_GenerateMonthlyReport_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid period", func(t *testing.T) {
		svc := newTestService(t, seed(t))
		_, err := svc.GenerateMonthlyReport(ctx, report.MonthlyReportRequest{Month: 13, Year: 2025})
		var verrs validator.ValidationErrors
		assert.True(t, errors.As(err, &verrs))
	})

	t.Run("missing settings", func(t *testing.T) {
		store := memory.NewStore()
		store.PutEmployee(employee.Employee{ID: "e1", FullName: "Someone", IsActive: true})
		svc := newTestService(t, store)

		_, err := svc.GenerateMonthlyReport(ctx, report.MonthlyReportRequest{Month: 1, Year: 2025})
		assert.ErrorIs(t, err, company.ErrSettingsNotFound)
	})

	t.Run("no employees", func(t *testing.T) {
		store := memory.NewStore()
		store.PutSettings(company.Settings{WeekendDays: []string{"Sunday"}})
		svc := newTestService(t, store)

		_, err := svc.GenerateMonthlyReport(ctx, report.MonthlyReportRequest{Month: 1, Year: 2025})
		assert.ErrorIs(t, err, report.ErrNoDataFound)
	})

	t.Run("repository failure aborts the report", func(t *testing.T) {
		store := seed(t)
		boom := errors.New("connection reset")
		store.FailRangeQueries(boom)
		svc := newTestService(t, store)

		_, err := svc.GenerateMonthlyReport(ctx, report.MonthlyReportRequest{Month: 1, Year: 2025})
		assert.ErrorIs(t, err, boom)
	})
}

func TestReportService_FutureDatesAreNotAbsent(t *testing.T) {
	store := seed(t)
	svc := NewReportService(
		memory.NewSettingsRepository(store),
		memory.NewEmployeeRepository(store),
		memory.NewAttendanceRepository(store),
		memory.NewLeaveRequestRepository(store),
		memory.NewHolidayRepository(store),
		memory.NewOvertimeRepository(store),
		Options{Now: func() time.Time { return time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC) }},
	)

	got, err := svc.GenerateMonthlyReport(context.Background(), report.MonthlyReportRequest{Month: 1, Year: 2025, EmployeeID: "e-bob"})
	require.NoError(t, err)

	bob := got.Rows[0].Aggregate
	assert.Equal(t, 10, bob.AbsentDays)
	assert.Equal(t, 12, bob.UpcomingDays)
}

func TestReportService_GetEmployeeSummary(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, seed(t))

	summary, err := svc.GetEmployeeSummary(ctx, report.EmployeeSummaryRequest{EmployeeID: "e-zed", Month: 1, Year: 2025})
	require.NoError(t, err)

	full, err := svc.GenerateMonthlyReport(ctx, report.MonthlyReportRequest{Month: 1, Year: 2025, EmployeeID: "e-zed"})
	require.NoError(t, err)
	agg := full.Rows[0].Aggregate

	// Summary and report come from the same aggregate.
	assert.Equal(t, agg.PresentDays+agg.HolidayDays, summary.PresentDays)
	assert.Equal(t, agg.PresentDays, summary.AttendedDays)
	assert.Equal(t, agg.AbsentDays, summary.AbsentDays)
	assert.Equal(t, report.RoundHours(agg.TotalHoursWorked), summary.TotalHoursWorked)
	assert.Len(t, summary.DailyBreakdown, 31)
	assert.Equal(t, "Wednesday", summary.DailyBreakdown[0].Weekday)
	assert.Equal(t, engine.StatusHoliday, summary.DailyBreakdown[0].Status)

	_, err = svc.GetEmployeeSummary(ctx, report.EmployeeSummaryRequest{EmployeeID: "nobody", Month: 1, Year: 2025})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
