package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/overtime"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-go/internal/engine"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, auth.ErrEmployeeRequired):
		Forbidden(w, "Employee ID not found in token")

	// Employee and settings errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, company.ErrSettingsNotFound):
		NotFound(w, "Company settings have not been configured")

	// Attendance errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in today")
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, "Already clocked out today")
	case errors.Is(err, attendance.ErrTooEarlyToClockIn):
		BadRequest(w, "Too early to clock in", nil)
	case errors.Is(err, attendance.ErrNotClockedIn):
		BadRequest(w, "You have not clocked in yet", nil)
	case errors.Is(err, attendance.ErrClockOutBeforeClockIn):
		BadRequest(w, "Clock-out time is before clock-in time", nil)
	case errors.Is(err, attendance.ErrShiftTooLong):
		Conflict(w, "Open attendance is older than the longest allowed shift")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Leave errors
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveTypeInactive):
		BadRequest(w, "Leave type is inactive", nil)
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "Leave request overlaps an existing request")
	case errors.Is(err, leave.ErrNoWorkingDays):
		BadRequest(w, "Leave range contains no working days", nil)
	case errors.Is(err, leave.ErrQuotaNotFound):
		NotFound(w, "Leave quota not found")
	case errors.Is(err, leave.ErrInsufficientQuota):
		BadRequest(w, "Insufficient leave quota", nil)
	case errors.Is(err, leave.ErrQuotaBelowCommitted):
		Conflict(w, "Allocation is below days already used or pending")
	case errors.Is(err, leave.ErrLeaveTypeWithoutQuota):
		BadRequest(w, "Leave type has no quota", nil)

	// Overtime errors
	case errors.Is(err, overtime.ErrOvertimeNotFound):
		NotFound(w, "Overtime request not found")
	case errors.Is(err, overtime.ErrOvertimeAlreadyProcessed):
		Conflict(w, "Overtime request already processed")
	case errors.Is(err, overtime.ErrOvertimeAlreadyExists):
		Conflict(w, "Overtime request already exists for this date")
	case errors.Is(err, overtime.ErrOvertimeOnWorkingDay):
		BadRequest(w, "Overtime can only be submitted for weekends or holidays", nil)

	// Holiday errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "A holiday already exists on this date")

	// Report errors
	case errors.Is(err, report.ErrNoDataFound):
		NotFound(w, "No data found for the specified period")
	case errors.Is(err, report.ErrUnsupportedFormat):
		BadRequest(w, "Unsupported export format", nil)
	case errors.Is(err, engine.ErrInvalidMonth):
		BadRequest(w, "Month must be between 1 and 12", nil)
	case errors.Is(err, storage.ErrObjectNotFound):
		NotFound(w, "Archived report not found")

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
