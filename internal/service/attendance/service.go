package attendance

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/engine"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	settingsRepo   company.SettingsRepository
	location       *time.Location
	now            func() time.Time
}

// NewAttendanceService builds the clock-in/clock-out service. loc is used when
// company settings carry no timezone.
func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	settingsRepo company.SettingsRepository,
	loc *time.Location,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		settingsRepo:   settingsRepo,
		location:       loc,
		now:            time.Now,
	}
}

// localNow returns the current instant in the company zone.
func (s *AttendanceServiceImpl) localNow(ctx context.Context) (time.Time, company.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return time.Time{}, company.Settings{}, fmt.Errorf("failed to load company settings: %w", err)
	}
	return s.now().In(settings.Location(s.location)), settings, nil
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now, settings, err := s.localNow(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	today := civil.DateOf(now)

	if markFrom, ok := validator.IsValidClock(settings.MarkFromTime); ok {
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if now.Sub(midnight) < markFrom {
			return attendance.AttendanceResponse{}, attendance.ErrTooEarlyToClockIn
		}
	}

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check existing attendance: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedIn
	}

	clockIn := now.UTC()
	created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		EmployeeID: req.EmployeeID,
		Date:       today,
		ClockIn:    &clockIn,
		Status:     attendance.StatusPresent,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return attendance.NewAttendanceResponse(created), nil
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now, _, err := s.localNow(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	// The open record may belong to an earlier date when a shift crosses midnight.
	existing, err := s.attendanceRepo.GetOpenByEmployee(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get open attendance: %w", err)
	}
	if existing == nil {
		today, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, civil.DateOf(now))
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
		}
		if today != nil && today.ClockOut != nil {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedOut
		}
		return attendance.AttendanceResponse{}, attendance.ErrNotClockedIn
	}

	clockOut := now.UTC()
	if clockOut.Before(*existing.ClockIn) {
		return attendance.AttendanceResponse{}, attendance.ErrClockOutBeforeClockIn
	}
	if clockOut.Sub(*existing.ClockIn) > attendance.MaxShift {
		return attendance.AttendanceResponse{}, attendance.ErrShiftTooLong
	}

	if err := s.attendanceRepo.UpdateClockOut(ctx, existing.ID, clockOut); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update clock out: %w", err)
	}

	existing.ClockOut = &clockOut
	return attendance.NewAttendanceResponse(*existing), nil
}

// ListMyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListMyAttendance(ctx context.Context, req attendance.ListMyAttendanceRequest) ([]attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	month, err := engine.NewMonth(req.Year, req.Month)
	if err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, req.EmployeeID, month.First(), month.Last())
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	resp := make([]attendance.AttendanceResponse, 0, len(records))
	for _, a := range records {
		resp = append(resp, attendance.NewAttendanceResponse(a))
	}
	return resp, nil
}
