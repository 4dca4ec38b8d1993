package overtime

import (
	"math"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type SubmitOvertimeRequest struct {
	EmployeeID string `json:"-"`
	Date       string `json:"date"`
	TimeFrom   string `json:"time_from"`
	TimeTo     string `json:"time_to"`
	Reason     string `json:"reason"`

	// Parsed by Validate
	ParsedDate civil.Date `json:"-"`
	Hours      float64    `json:"-"`
}

func (r *SubmitOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	date, ok := validator.IsValidDate(r.Date)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	from, fromOK := validator.IsValidClock(r.TimeFrom)
	if !fromOK {
		errs = append(errs, validator.ValidationError{
			Field:   "time_from",
			Message: "time_from must be in HH:MM format",
		})
	}
	to, toOK := validator.IsValidClock(r.TimeTo)
	if !toOK {
		errs = append(errs, validator.ValidationError{
			Field:   "time_to",
			Message: "time_to must be in HH:MM format",
		})
	}
	if fromOK && toOK && to <= from {
		errs = append(errs, validator.ValidationError{
			Field:   "time_to",
			Message: "time_to must be after time_from",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	r.ParsedDate = date
	// Stored as NUMERIC(5,2).
	r.Hours = math.Round((to-from).Hours()*100) / 100
	return nil
}

type ReviewOvertimeRequest struct {
	OvertimeID string `json:"-"`
	ReviewerID string `json:"-"`
	Reason     string `json:"reason,omitempty"`
}

func (r *ReviewOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.OvertimeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "overtime id is required",
		})
	}
	if validator.IsEmpty(r.ReviewerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "reviewer_id",
			Message: "reviewer_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OvertimeResponse struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employee_id"`
	EmployeeName    *string    `json:"employee_name,omitempty"`
	Date            civil.Date `json:"date"`
	TimeFrom        string     `json:"time_from"`
	TimeTo          string     `json:"time_to"`
	HoursWorked     float64    `json:"hours_worked"`
	Type            Type       `json:"type"`
	Status          Status     `json:"status"`
	Reason          string     `json:"reason"`
	ReviewedBy      *string    `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func NewOvertimeResponse(o Overtime) OvertimeResponse {
	return OvertimeResponse{
		ID:              o.ID,
		EmployeeID:      o.EmployeeID,
		EmployeeName:    o.EmployeeName,
		Date:            o.Date,
		TimeFrom:        o.TimeFrom,
		TimeTo:          o.TimeTo,
		HoursWorked:     o.HoursWorked,
		Type:            o.Type,
		Status:          o.Status,
		Reason:          o.Reason,
		ReviewedBy:      o.ReviewedBy,
		ReviewedAt:      o.ReviewedAt,
		RejectionReason: o.RejectionReason,
		CreatedAt:       o.CreatedAt,
	}
}
