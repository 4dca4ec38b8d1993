package attendance

import (
	"time"

	"cloud.google.com/go/civil"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLeave   Status = "leave"
	StatusHalfDay Status = "half_day"
)

// MaxShift is the longest clock-in to clock-out span a clock-out may close.
// A shift may run past midnight; its record keeps the clock-in date.
const MaxShift = 16 * time.Hour

// Attendance is one employee's punch record for a single calendar date.
// ClockOut stays nil while the day is in progress.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       civil.Date
	ClockIn    *time.Time
	ClockOut   *time.Time
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName *string
}

// IsPresent reports whether the record marks the employee as present with a clock-in.
func (a Attendance) IsPresent() bool {
	return a.Status == StatusPresent && a.ClockIn != nil
}

// IsComplete reports whether both punches are recorded.
func (a Attendance) IsComplete() bool {
	return a.ClockIn != nil && a.ClockOut != nil
}
