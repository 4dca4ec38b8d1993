package attendance

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type ClockInRequest struct {
	EmployeeID string `json:"-"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClockOutRequest struct {
	EmployeeID string `json:"-"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListMyAttendanceRequest struct {
	EmployeeID string
	Month      int
	Year       int
}

func (r *ListMyAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	errs = append(errs, validator.ValidatePeriod(r.Month, r.Year)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employee_id"`
	Date        civil.Date `json:"date"`
	ClockIn     *time.Time `json:"clock_in,omitempty"`
	ClockOut    *time.Time `json:"clock_out,omitempty"`
	Status      Status     `json:"status"`
	HoursWorked *float64   `json:"hours_worked,omitempty"`
}

// NewAttendanceResponse maps an entity to its API shape. Hours are the raw
// span between punches; lunch handling belongs to the monthly aggregate.
func NewAttendanceResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       a.Date,
		ClockIn:    a.ClockIn,
		ClockOut:   a.ClockOut,
		Status:     a.Status,
	}
	if a.IsComplete() {
		hours := a.ClockOut.Sub(*a.ClockIn).Hours()
		resp.HoursWorked = &hours
	}
	return resp
}
