package overtime

import (
	"time"

	"cloud.google.com/go/civil"
)

// Type records why a date qualifies for overtime.
type Type string

const (
	TypeWeekend Type = "weekend"
	TypeHoliday Type = "holiday"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Overtime is work performed on a weekend or holiday. TimeFrom and TimeTo
// are "HH:MM" wall-clock values on Date.
type Overtime struct {
	ID              string
	EmployeeID      string
	Date            civil.Date
	TimeFrom        string
	TimeTo          string
	HoursWorked     float64
	Type            Type
	Status          Status
	Reason          string
	ReviewedBy      *string
	ReviewedAt      *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO
	EmployeeName *string
}

func (o Overtime) IsApproved() bool {
	return o.Status == StatusApproved
}
