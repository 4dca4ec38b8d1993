package leave

import (
	"time"

	"cloud.google.com/go/civil"
)

// LeaveType entity
type LeaveType struct {
	ID          string
	Name        string
	Code        *string
	Description *string
	IsPaid      bool
	IsActive    bool

	// HasQuota types draw from a yearly allocation of DefaultQuota days.
	HasQuota     bool
	DefaultQuota float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

// Session marks which part of a boundary day a leave covers.
type Session string

const (
	SessionFull      Session = "full"
	SessionMorning   Session = "morning"
	SessionAfternoon Session = "afternoon"
)

func (s Session) IsValid() bool {
	switch s {
	case SessionFull, SessionMorning, SessionAfternoon:
		return true
	}
	return false
}

// LeaveRequest entity
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string

	FromDate    civil.Date
	ToDate      civil.Date
	FromSession Session
	ToSession   Session
	TotalDays   float64

	Reason          string
	Status          LeaveRequestStatus
	ReviewedBy      *string
	ReviewedAt      *time.Time
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	IsPaid        bool
	LeaveTypeName *string
	EmployeeName  *string
}

// LeaveQuota is an employee's allocation of one leave type for a calendar year.
type LeaveQuota struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	Year        int

	AllocatedDays float64
	UsedDays      float64
	PendingDays   float64

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	LeaveTypeName *string
}

// AvailableDays is what remains for new requests.
func (q LeaveQuota) AvailableDays() float64 {
	return q.AllocatedDays - q.UsedDays - q.PendingDays
}
