package leave

import (
	"math"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	EmployeeID  string `json:"-"`
	LeaveTypeID string `json:"leave_type_id"`
	FromDate    string `json:"from_date"`
	ToDate      string `json:"to_date"`
	FromSession string `json:"from_session"`
	ToSession   string `json:"to_session"`
	Reason      string `json:"reason"`

	// Parsed by Validate
	From civil.Date `json:"-"`
	To   civil.Date `json:"-"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	from, fromOK := validator.IsValidDate(r.FromDate)
	if !fromOK {
		errs = append(errs, validator.ValidationError{
			Field:   "from_date",
			Message: "from_date must be in YYYY-MM-DD format",
		})
	}
	to, toOK := validator.IsValidDate(r.ToDate)
	if !toOK {
		errs = append(errs, validator.ValidationError{
			Field:   "to_date",
			Message: "to_date must be in YYYY-MM-DD format",
		})
	}
	if fromOK && toOK && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "to_date",
			Message: "to_date must not be before from_date",
		})
	}

	// Sessions default to a full day when omitted
	if r.FromSession == "" {
		r.FromSession = string(SessionFull)
	}
	if r.ToSession == "" {
		r.ToSession = string(SessionFull)
	}
	if !Session(r.FromSession).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "from_session",
			Message: "from_session must be one of full, morning, afternoon",
		})
	}
	if !Session(r.ToSession).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "to_session",
			Message: "to_session must be one of full, morning, afternoon",
		})
	}

	if len(r.Reason) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	r.From, r.To = from, to
	return nil
}

type ReviewLeaveRequest struct {
	RequestID  string `json:"-"`
	ReviewerID string `json:"-"`
	Reason     string `json:"reason,omitempty"`
}

func (r *ReviewLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "leave request id is required",
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

// AllocateLeaveQuotaRequest sets an employee's yearly allocation for one leave type.
type AllocateLeaveQuotaRequest struct {
	EmployeeID    string  `json:"employee_id"`
	LeaveTypeID   string  `json:"leave_type_id"`
	Year          int     `json:"year"`
	AllocatedDays float64 `json:"allocated_days"`
}

func (r *AllocateLeaveQuotaRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}
	if r.Year < 1970 || r.Year > 9999 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 1970 and 9999",
		})
	}
	// Half days are the smallest unit a request can take.
	if r.AllocatedDays < 0 || r.AllocatedDays > 366 || math.Mod(r.AllocatedDays*2, 1) != 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "allocated_days",
			Message: "allocated_days must be a multiple of 0.5 between 0 and 366",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveTypeResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Code         *string `json:"code,omitempty"`
	Description  *string `json:"description,omitempty"`
	IsPaid       bool    `json:"is_paid"`
	IsActive     bool    `json:"is_active"`
	HasQuota     bool    `json:"has_quota"`
	DefaultQuota float64 `json:"default_quota"`
}

type LeaveRequestResponse struct {
	ID              string             `json:"id"`
	EmployeeID      string             `json:"employee_id"`
	EmployeeName    *string            `json:"employee_name,omitempty"`
	LeaveTypeID     string             `json:"leave_type_id"`
	LeaveTypeName   *string            `json:"leave_type_name,omitempty"`
	FromDate        civil.Date         `json:"from_date"`
	ToDate          civil.Date         `json:"to_date"`
	FromSession     Session            `json:"from_session"`
	ToSession       Session            `json:"to_session"`
	TotalDays       float64            `json:"total_days"`
	Reason          string             `json:"reason"`
	Status          LeaveRequestStatus `json:"status"`
	ReviewedBy      *string            `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time         `json:"reviewed_at,omitempty"`
	RejectionReason *string            `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
}

func NewLeaveTypeResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:           lt.ID,
		Name:         lt.Name,
		Code:         lt.Code,
		Description:  lt.Description,
		IsPaid:       lt.IsPaid,
		IsActive:     lt.IsActive,
		HasQuota:     lt.HasQuota,
		DefaultQuota: lt.DefaultQuota,
	}
}

func NewLeaveRequestResponse(lr LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:              lr.ID,
		EmployeeID:      lr.EmployeeID,
		EmployeeName:    lr.EmployeeName,
		LeaveTypeID:     lr.LeaveTypeID,
		LeaveTypeName:   lr.LeaveTypeName,
		FromDate:        lr.FromDate,
		ToDate:          lr.ToDate,
		FromSession:     lr.FromSession,
		ToSession:       lr.ToSession,
		TotalDays:       lr.TotalDays,
		Reason:          lr.Reason,
		Status:          lr.Status,
		ReviewedBy:      lr.ReviewedBy,
		ReviewedAt:      lr.ReviewedAt,
		RejectionReason: lr.RejectionReason,
		CreatedAt:       lr.CreatedAt,
	}
}

type LeaveQuotaResponse struct {
	LeaveTypeID   string  `json:"leave_type_id"`
	LeaveTypeName *string `json:"leave_type_name,omitempty"`
	Year          int     `json:"year"`
	AllocatedDays float64 `json:"allocated_days"`
	UsedDays      float64 `json:"used_days"`
	PendingDays   float64 `json:"pending_days"`
	AvailableDays float64 `json:"available_days"`
}

func NewLeaveQuotaResponse(q LeaveQuota) LeaveQuotaResponse {
	return LeaveQuotaResponse{
		LeaveTypeID:   q.LeaveTypeID,
		LeaveTypeName: q.LeaveTypeName,
		Year:          q.Year,
		AllocatedDays: q.AllocatedDays,
		UsedDays:      q.UsedDays,
		PendingDays:   q.PendingDays,
		AvailableDays: q.AvailableDays(),
	}
}
