package report

import "context"

// ReportService assembles monthly attendance and salary figures.
type ReportService interface {
	// GenerateMonthlyReport builds one row per requested employee.
	GenerateMonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReport, error)

	// GetEmployeeSummary returns one employee's monthly summary with daily breakdown.
	GetEmployeeSummary(ctx context.Context, req EmployeeSummaryRequest) (EmployeeSummaryResponse, error)
}
