package overtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/overtime"
	"github.com/cmlabs-hris/hris-attendance-go/internal/engine"
)

type OvertimeServiceImpl struct {
	overtimeRepo overtime.OvertimeRepository
	holidayRepo  holiday.HolidayRepository
	employeeRepo employee.EmployeeRepository
	settingsRepo company.SettingsRepository
	now          func() time.Time
}

func NewOvertimeService(
	overtimeRepo overtime.OvertimeRepository,
	holidayRepo holiday.HolidayRepository,
	employeeRepo employee.EmployeeRepository,
	settingsRepo company.SettingsRepository,
) overtime.OvertimeService {
	return &OvertimeServiceImpl{
		overtimeRepo: overtimeRepo,
		holidayRepo:  holidayRepo,
		employeeRepo: employeeRepo,
		settingsRepo: settingsRepo,
		now:          time.Now,
	}
}

// SubmitOvertime implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) SubmitOvertime(ctx context.Context, req overtime.SubmitOvertimeRequest) (overtime.OvertimeResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.OvertimeResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return overtime.OvertimeResponse{}, err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return overtime.OvertimeResponse{}, fmt.Errorf("failed to load company settings: %w", err)
	}
	policy, err := engine.NewPolicy(settings.WeekendDays)
	if err != nil {
		return overtime.OvertimeResponse{}, fmt.Errorf("invalid weekend configuration: %w", err)
	}

	// Overtime is only valid on non-working days. A holiday on a weekend counts as a holiday.
	h, err := s.holidayRepo.GetByDate(ctx, req.ParsedDate)
	if err != nil {
		return overtime.OvertimeResponse{}, fmt.Errorf("failed to check holiday: %w", err)
	}
	var kind overtime.Type
	switch {
	case h != nil:
		kind = overtime.TypeHoliday
	case policy.IsWeekend(req.ParsedDate):
		kind = overtime.TypeWeekend
	default:
		return overtime.OvertimeResponse{}, overtime.ErrOvertimeOnWorkingDay
	}

	exists, err := s.overtimeRepo.ExistsForEmployeeAndDate(ctx, req.EmployeeID, req.ParsedDate)
	if err != nil {
		return overtime.OvertimeResponse{}, fmt.Errorf("failed to check existing overtime: %w", err)
	}
	if exists {
		return overtime.OvertimeResponse{}, overtime.ErrOvertimeAlreadyExists
	}

	created, err := s.overtimeRepo.Create(ctx, overtime.Overtime{
		EmployeeID:  req.EmployeeID,
		Date:        req.ParsedDate,
		TimeFrom:    req.TimeFrom,
		TimeTo:      req.TimeTo,
		HoursWorked: req.Hours,
		Type:        kind,
		Status:      overtime.StatusPending,
		Reason:      strings.TrimSpace(req.Reason),
	})
	if err != nil {
		return overtime.OvertimeResponse{}, fmt.Errorf("failed to create overtime: %w", err)
	}
	return overtime.NewOvertimeResponse(created), nil
}

// ApproveOvertime implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) ApproveOvertime(ctx context.Context, req overtime.ReviewOvertimeRequest) (overtime.OvertimeResponse, error) {
	return s.review(ctx, req, overtime.StatusApproved)
}

// RejectOvertime implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) RejectOvertime(ctx context.Context, req overtime.ReviewOvertimeRequest) (overtime.OvertimeResponse, error) {
	return s.review(ctx, req, overtime.StatusRejected)
}

func (s *OvertimeServiceImpl) review(ctx context.Context, req overtime.ReviewOvertimeRequest, status overtime.Status) (overtime.OvertimeResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.OvertimeResponse{}, err
	}

	o, err := s.overtimeRepo.GetByID(ctx, req.OvertimeID)
	if err != nil {
		if errors.Is(err, overtime.ErrOvertimeNotFound) {
			return overtime.OvertimeResponse{}, err
		}
		return overtime.OvertimeResponse{}, fmt.Errorf("failed to get overtime: %w", err)
	}
	if o.Status != overtime.StatusPending {
		return overtime.OvertimeResponse{}, overtime.ErrOvertimeAlreadyProcessed
	}

	var reason *string
	if status == overtime.StatusRejected {
		if r := strings.TrimSpace(req.Reason); r != "" {
			reason = &r
		}
	}

	reviewedAt := s.now().UTC()
	if err := s.overtimeRepo.UpdateStatus(ctx, o.ID, status, req.ReviewerID, reviewedAt, reason); err != nil {
		return overtime.OvertimeResponse{}, fmt.Errorf("failed to update overtime: %w", err)
	}

	slog.InfoContext(ctx, "overtime reviewed",
		"overtime_id", o.ID,
		"employee_id", o.EmployeeID,
		"status", status,
		"hours", o.HoursWorked,
	)

	o.Status = status
	o.ReviewedBy = &req.ReviewerID
	o.ReviewedAt = &reviewedAt
	o.RejectionReason = reason
	return overtime.NewOvertimeResponse(o), nil
}
