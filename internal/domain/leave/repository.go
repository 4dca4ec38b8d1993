package leave

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
)

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	GetByID(ctx context.Context, id string) (LeaveType, error)
	List(ctx context.Context, activeOnly bool) ([]LeaveType, error)
	Create(ctx context.Context, lt LeaveType) (LeaveType, error)
}

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	// ListApprovedByEmployeeAndRange returns approved requests intersecting
	// [from, to], with IsPaid joined from the leave type.
	ListApprovedByEmployeeAndRange(ctx context.Context, employeeID string, from, to civil.Date) ([]LeaveRequest, error)
	// HasOverlap reports whether another request in one of statuses intersects [from, to].
	HasOverlap(ctx context.Context, employeeID string, from, to civil.Date, statuses []LeaveRequestStatus, excludeID string) (bool, error)
	// UpdateStatus only moves a pending request; any other status yields
	// ErrLeaveRequestAlreadyProcessed.
	UpdateStatus(ctx context.Context, id string, status LeaveRequestStatus, reviewedBy string, reviewedAt time.Time, rejectionReason *string) error
}

// LeaveQuotaRepository - interface for leave_quotas table
type LeaveQuotaRepository interface {
	GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (LeaveQuota, error)
	ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]LeaveQuota, error)
	// Create inserts a quota, or returns the existing one for the same
	// employee, type and year untouched.
	Create(ctx context.Context, quota LeaveQuota) (LeaveQuota, error)
	// SetAllocation replaces AllocatedDays. It fails with ErrQuotaBelowCommitted
	// when days would drop below used plus pending.
	SetAllocation(ctx context.Context, quota LeaveQuota) (LeaveQuota, error)
	// AddPending reserves days, failing with ErrInsufficientQuota when fewer remain.
	AddPending(ctx context.Context, quotaID string, days float64) error
	MovePendingToUsed(ctx context.Context, quotaID string, days float64) error
	RemovePending(ctx context.Context, quotaID string, days float64) error
}
