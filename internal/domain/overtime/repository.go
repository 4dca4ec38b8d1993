package overtime

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
)

// OvertimeRepository - interface for overtime_requests table
type OvertimeRepository interface {
	Create(ctx context.Context, o Overtime) (Overtime, error)
	GetByID(ctx context.Context, id string) (Overtime, error)
	ExistsForEmployeeAndDate(ctx context.Context, employeeID string, date civil.Date) (bool, error)
	ListApprovedByEmployeeAndRange(ctx context.Context, employeeID string, from, to civil.Date) ([]Overtime, error)
	// UpdateStatus only moves a pending request; any other status yields
	// ErrOvertimeAlreadyProcessed.
	UpdateStatus(ctx context.Context, id string, status Status, reviewedBy string, reviewedAt time.Time, rejectionReason *string) error
}
