package attendance

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
)

// AttendanceRepository - interface for attendance table
type AttendanceRepository interface {
	Create(ctx context.Context, attendance Attendance) (Attendance, error)
	// GetByEmployeeAndDate returns nil without error when no record exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date civil.Date) (*Attendance, error)
	// GetOpenByEmployee returns the latest record with a clock-in and no
	// clock-out, or nil without error.
	GetOpenByEmployee(ctx context.Context, employeeID string) (*Attendance, error)
	UpdateClockOut(ctx context.Context, id string, clockOut time.Time) error
	// ListByEmployeeAndRange returns records with from <= date <= to, ordered by date.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to civil.Date) ([]Attendance, error)
}
