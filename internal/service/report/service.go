package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
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
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 8

// Options tunes report generation.
type Options struct {
	// Concurrency caps how many employees are computed at once.
	Concurrency int
	// Location is used when company settings carry no timezone.
	Location *time.Location
	// Now is the wall clock, replaceable in tests.
	Now func() time.Time
}

type ReportServiceImpl struct {
	settingsRepo   company.SettingsRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRequestRepository
	holidayRepo    holiday.HolidayRepository
	overtimeRepo   overtime.OvertimeRepository
	opts           Options
}

func NewReportService(
	settingsRepo company.SettingsRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	holidayRepo holiday.HolidayRepository,
	overtimeRepo overtime.OvertimeRepository,
	opts Options,
) report.ReportService {
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &ReportServiceImpl{
		settingsRepo:   settingsRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		holidayRepo:    holidayRepo,
		overtimeRepo:   overtimeRepo,
		opts:           opts,
	}
}

// period is what every employee computation of one report shares.
type period struct {
	month    engine.Month
	policy   engine.Policy
	holidays []holiday.Holiday
	today    civil.Date
	location *time.Location
}

func (s *ReportServiceImpl) loadPeriod(ctx context.Context, year, month int) (period, error) {
	m, err := engine.NewMonth(year, month)
	if err != nil {
		return period{}, err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return period{}, fmt.Errorf("failed to load company settings: %w", err)
	}

	policy, err := engine.NewPolicy(settings.WeekendDays)
	if err != nil {
		return period{}, fmt.Errorf("invalid weekend configuration: %w", err)
	}

	holidays, err := s.holidayRepo.ListByRange(ctx, m.First(), m.Last())
	if err != nil {
		return period{}, fmt.Errorf("failed to get holidays: %w", err)
	}

	loc := settings.Location(s.opts.Location)
	return period{
		month:    m,
		policy:   policy,
		holidays: holidays,
		today:    civil.DateOf(s.opts.Now().In(loc)),
		location: loc,
	}, nil
}

// aggregate loads one employee's records for the period and runs the engine.
func (s *ReportServiceImpl) aggregate(ctx context.Context, p period, employeeID string) (engine.MonthlyAggregate, error) {
	from, to := p.month.First(), p.month.Last()

	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, employeeID, from, to)
	if err != nil {
		return engine.MonthlyAggregate{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	leaves, err := s.leaveRepo.ListApprovedByEmployeeAndRange(ctx, employeeID, from, to)
	if err != nil {
		return engine.MonthlyAggregate{}, fmt.Errorf("failed to get leave requests: %w", err)
	}

	overtimes, err := s.overtimeRepo.ListApprovedByEmployeeAndRange(ctx, employeeID, from, to)
	if err != nil {
		return engine.MonthlyAggregate{}, fmt.Errorf("failed to get overtime: %w", err)
	}

	merged := p.policy.ExpandAll(leaves)
	if len(merged.Conflicts) > 0 {
		slog.WarnContext(ctx, "overlapping approved leave",
			"employee_id", employeeID,
			"period", p.month.String(),
			"dates", merged.Conflicts,
		)
	}

	agg := engine.Aggregate(engine.AggregateInput{
		Month:      p.month,
		Policy:     p.policy,
		Attendance: records,
		Leave:      merged,
		Holidays:   p.holidays,
		Overtime:   overtimes,
		Today:      p.today,
	})
	if len(agg.Anomalies) > 0 {
		slog.WarnContext(ctx, "attendance anomalies",
			"employee_id", employeeID,
			"period", p.month.String(),
			"dates", agg.Anomalies,
		)
	}
	return agg, nil
}

func (s *ReportServiceImpl) buildRow(ctx context.Context, p period, emp employee.Employee) (report.MonthlyReportRow, error) {
	agg, err := s.aggregate(ctx, p, emp.ID)
	if err != nil {
		return report.MonthlyReportRow{}, fmt.Errorf("employee %s: %w", emp.ID, err)
	}

	salary := engine.CalculateSalary(engine.SalaryInput{
		MonthlySalary: emp.MonthlySalary,
		WorkingDays:   agg.WorkingDays,
		EffectiveDays: agg.EffectiveDays,
		OvertimeHours: agg.OvertimeEntries,
	})

	return report.MonthlyReportRow{
		EmployeeID:    emp.ID,
		EmployeeCode:  emp.EmployeeCode,
		FullName:      emp.FullName,
		Email:         emp.Email,
		MonthlySalary: emp.MonthlySalary,
		Aggregate:     agg,
		Salary:        salary,
	}, nil
}

// GenerateMonthlyReport implements report.ReportService.
func (s *ReportServiceImpl) GenerateMonthlyReport(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReport{}, err
	}

	p, err := s.loadPeriod(ctx, req.Year, req.Month)
	if err != nil {
		return report.MonthlyReport{}, err
	}

	var employees []employee.Employee
	if req.EmployeeID != "" {
		emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return report.MonthlyReport{}, err
		}
		employees = append(employees, emp)
	} else {
		employees, err = s.employeeRepo.ListActive(ctx)
		if err != nil {
			return report.MonthlyReport{}, fmt.Errorf("failed to list employees: %w", err)
		}
	}
	if len(employees) == 0 {
		return report.MonthlyReport{}, report.ErrNoDataFound
	}

	rows := make([]report.MonthlyReportRow, len(employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)
	for i, emp := range employees {
		g.Go(func() error {
			row, err := s.buildRow(gctx, p, emp)
			if err != nil {
				return err
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report.MonthlyReport{}, err
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].FullName != rows[j].FullName {
			return rows[i].FullName < rows[j].FullName
		}
		return rows[i].EmployeeID < rows[j].EmployeeID
	})

	slog.InfoContext(ctx, "monthly report generated",
		"period", p.month.String(),
		"employees", len(rows),
	)

	return report.MonthlyReport{
		Period:      p.month,
		WorkingDays: p.policy.WorkingDaysInMonth(p.month),
		GeneratedAt: s.opts.Now(),
		Location:    p.location,
		Rows:        rows,
	}, nil
}

// GetEmployeeSummary implements report.ReportService.
func (s *ReportServiceImpl) GetEmployeeSummary(ctx context.Context, req report.EmployeeSummaryRequest) (report.EmployeeSummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return report.EmployeeSummaryResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return report.EmployeeSummaryResponse{}, err
		}
		return report.EmployeeSummaryResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	p, err := s.loadPeriod(ctx, req.Year, req.Month)
	if err != nil {
		return report.EmployeeSummaryResponse{}, err
	}

	agg, err := s.aggregate(ctx, p, req.EmployeeID)
	if err != nil {
		return report.EmployeeSummaryResponse{}, err
	}
	return report.NewEmployeeSummaryResponse(req.EmployeeID, agg), nil
}
