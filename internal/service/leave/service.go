package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/engine"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

// activeStatuses are the statuses a new request must not overlap.
var activeStatuses = []leave.LeaveRequestStatus{
	leave.LeaveRequestStatusPending,
	leave.LeaveRequestStatusApproved,
}

type LeaveServiceImpl struct {
	leaveTypeRepo    leave.LeaveTypeRepository
	leaveRequestRepo leave.LeaveRequestRepository
	leaveQuotaRepo   leave.LeaveQuotaRepository
	employeeRepo     employee.EmployeeRepository
	settingsRepo     company.SettingsRepository
	withTx           database.TxFunc
	now              func() time.Time
}

// NewLeaveService wires the leave service. A nil withTx runs without a transaction.
func NewLeaveService(
	leaveTypeRepo leave.LeaveTypeRepository,
	leaveRequestRepo leave.LeaveRequestRepository,
	leaveQuotaRepo leave.LeaveQuotaRepository,
	employeeRepo employee.EmployeeRepository,
	settingsRepo company.SettingsRepository,
	withTx database.TxFunc,
) leave.LeaveService {
	if withTx == nil {
		withTx = database.NoTx
	}
	return &LeaveServiceImpl{
		leaveTypeRepo:    leaveTypeRepo,
		leaveRequestRepo: leaveRequestRepo,
		leaveQuotaRepo:   leaveQuotaRepo,
		employeeRepo:     employeeRepo,
		settingsRepo:     settingsRepo,
		withTx:           withTx,
		now:              time.Now,
	}
}

// ListLeaveTypes implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaveTypes(ctx context.Context) ([]leave.LeaveTypeResponse, error) {
	types, err := s.leaveTypeRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	resp := make([]leave.LeaveTypeResponse, 0, len(types))
	for _, lt := range types {
		resp = append(resp, leave.NewLeaveTypeResponse(lt))
	}
	return resp, nil
}

// CreateLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	leaveType, err := s.leaveTypeRepo.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !leaveType.IsActive {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveTypeInactive
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to load company settings: %w", err)
	}
	policy, err := engine.NewPolicy(settings.WeekendDays)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("invalid weekend configuration: %w", err)
	}

	overlaps, err := s.leaveRequestRepo.HasOverlap(ctx, emp.ID, req.From, req.To, activeStatuses, "")
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to check overlapping leave: %w", err)
	}
	if overlaps {
		return leave.LeaveRequestResponse{}, leave.ErrOverlappingLeave
	}

	request := leave.LeaveRequest{
		EmployeeID:  emp.ID,
		LeaveTypeID: leaveType.ID,
		FromDate:    req.From,
		ToDate:      req.To,
		FromSession: leave.Session(req.FromSession),
		ToSession:   leave.Session(req.ToSession),
		Reason:      strings.TrimSpace(req.Reason),
		Status:      leave.LeaveRequestStatusPending,
	}

	expansion := policy.ExpandLeave(request, leaveType.IsPaid)
	if expansion.DayCount == 0 {
		return leave.LeaveRequestResponse{}, leave.ErrNoWorkingDays
	}
	request.TotalDays = expansion.DayCount

	var created leave.LeaveRequest
	err = s.withTx(ctx, func(ctx context.Context) error {
		// Requests are charged to the quota of the year they start in.
		if leaveType.HasQuota {
			quota, err := s.ensureQuota(ctx, emp.ID, leaveType, request.FromDate.Year)
			if err != nil {
				return err
			}
			if err := s.leaveQuotaRepo.AddPending(ctx, quota.ID, request.TotalDays); err != nil {
				return err
			}
		}

		created, err = s.leaveRequestRepo.Create(ctx, request)
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	name := emp.FullName
	created.EmployeeName = &name

	return leave.NewLeaveRequestResponse(created), nil
}

// ApproveLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) ApproveLeaveRequest(ctx context.Context, req leave.ReviewLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.pending(ctx, req.RequestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	// Another request may have been approved for the same dates since submission.
	overlaps, err := s.leaveRequestRepo.HasOverlap(ctx, request.EmployeeID, request.FromDate, request.ToDate,
		[]leave.LeaveRequestStatus{leave.LeaveRequestStatusApproved}, request.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to check overlapping leave: %w", err)
	}
	if overlaps {
		return leave.LeaveRequestResponse{}, leave.ErrOverlappingLeave
	}

	return s.review(ctx, request, leave.LeaveRequestStatusApproved, req.ReviewerID, nil, s.leaveQuotaRepo.MovePendingToUsed)
}

// RejectLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) RejectLeaveRequest(ctx context.Context, req leave.ReviewLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.pending(ctx, req.RequestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var reason *string
	if r := strings.TrimSpace(req.Reason); r != "" {
		reason = &r
	}
	return s.review(ctx, request, leave.LeaveRequestStatusRejected, req.ReviewerID, reason, s.leaveQuotaRepo.RemovePending)
}

// ListMyLeaveRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMyLeaveRequests(ctx context.Context, employeeID string) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.leaveRequestRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	resp := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, lr := range requests {
		resp = append(resp, leave.NewLeaveRequestResponse(lr))
	}
	return resp, nil
}

func (s *LeaveServiceImpl) pending(ctx context.Context, id string) (leave.LeaveRequest, error) {
	request, err := s.leaveRequestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.LeaveRequest{}, err
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request by ID: %w", err)
	}
	if request.Status != leave.LeaveRequestStatusPending {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}
	return request, nil
}

// review records the decision and settles the request's pending days on its
// quota with settle, both in one transaction.
func (s *LeaveServiceImpl) review(
	ctx context.Context,
	request leave.LeaveRequest,
	status leave.LeaveRequestStatus,
	reviewerID string,
	reason *string,
	settle func(ctx context.Context, quotaID string, days float64) error,
) (leave.LeaveRequestResponse, error) {
	reviewedAt := s.now().UTC()

	err := s.withTx(ctx, func(ctx context.Context) error {
		if err := s.leaveRequestRepo.UpdateStatus(ctx, request.ID, status, reviewerID, reviewedAt, reason); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}

		leaveType, err := s.leaveTypeRepo.GetByID(ctx, request.LeaveTypeID)
		if err != nil {
			return fmt.Errorf("failed to get leave type: %w", err)
		}
		if !leaveType.HasQuota {
			return nil
		}

		quota, err := s.leaveQuotaRepo.GetByEmployeeTypeYear(ctx, request.EmployeeID, request.LeaveTypeID, request.FromDate.Year)
		if errors.Is(err, leave.ErrQuotaNotFound) {
			// Submitted before the type carried a quota, so nothing was reserved.
			slog.WarnContext(ctx, "no leave quota to settle",
				"leave_request_id", request.ID,
				"leave_type_id", request.LeaveTypeID,
				"year", request.FromDate.Year,
			)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get leave quota: %w", err)
		}
		if err := settle(ctx, quota.ID, request.TotalDays); err != nil {
			return fmt.Errorf("failed to settle leave quota: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.InfoContext(ctx, "leave request reviewed",
		"leave_request_id", request.ID,
		"employee_id", request.EmployeeID,
		"status", status,
		"reviewed_by", reviewerID,
	)

	request.Status = status
	request.ReviewedBy = &reviewerID
	request.ReviewedAt = &reviewedAt
	request.RejectionReason = reason
	return leave.NewLeaveRequestResponse(request), nil
}

// ensureQuota returns the employee's quota for year, opening it at the type's
// default allocation when none exists yet.
func (s *LeaveServiceImpl) ensureQuota(ctx context.Context, employeeID string, leaveType leave.LeaveType, year int) (leave.LeaveQuota, error) {
	quota, err := s.leaveQuotaRepo.GetByEmployeeTypeYear(ctx, employeeID, leaveType.ID, year)
	if err == nil {
		return quota, nil
	}
	if !errors.Is(err, leave.ErrQuotaNotFound) {
		return leave.LeaveQuota{}, fmt.Errorf("failed to get leave quota: %w", err)
	}

	quota, err = s.leaveQuotaRepo.Create(ctx, leave.LeaveQuota{
		EmployeeID:    employeeID,
		LeaveTypeID:   leaveType.ID,
		Year:          year,
		AllocatedDays: leaveType.DefaultQuota,
	})
	if err != nil {
		return leave.LeaveQuota{}, fmt.Errorf("failed to open leave quota: %w", err)
	}

	slog.InfoContext(ctx, "leave quota opened",
		"employee_id", employeeID,
		"leave_type", leaveType.Name,
		"year", year,
		"allocated_days", quota.AllocatedDays,
	)
	return quota, nil
}

// ListMyLeaveQuotas implements leave.LeaveService. Active quota types the
// employee has not drawn on yet are listed at their default allocation.
func (s *LeaveServiceImpl) ListMyLeaveQuotas(ctx context.Context, employeeID string, year int) ([]leave.LeaveQuotaResponse, error) {
	if year == 0 {
		year = s.now().Year()
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	quotas, err := s.leaveQuotaRepo.ListByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave quotas: %w", err)
	}
	types, err := s.leaveTypeRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	opened := make(map[string]bool, len(quotas))
	for _, q := range quotas {
		opened[q.LeaveTypeID] = true
	}
	for _, lt := range types {
		if !lt.HasQuota || opened[lt.ID] {
			continue
		}
		name := lt.Name
		quotas = append(quotas, leave.LeaveQuota{
			EmployeeID:    employeeID,
			LeaveTypeID:   lt.ID,
			Year:          year,
			AllocatedDays: lt.DefaultQuota,
			LeaveTypeName: &name,
		})
	}

	sort.Slice(quotas, func(i, j int) bool {
		return quotaName(quotas[i]) < quotaName(quotas[j])
	})

	resp := make([]leave.LeaveQuotaResponse, 0, len(quotas))
	for _, q := range quotas {
		resp = append(resp, leave.NewLeaveQuotaResponse(q))
	}
	return resp, nil
}

// AllocateLeaveQuota implements leave.LeaveService.
func (s *LeaveServiceImpl) AllocateLeaveQuota(ctx context.Context, req leave.AllocateLeaveQuotaRequest) (leave.LeaveQuotaResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveQuotaResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.LeaveQuotaResponse{}, err
	}
	leaveType, err := s.leaveTypeRepo.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.LeaveQuotaResponse{}, err
	}
	if !leaveType.HasQuota {
		return leave.LeaveQuotaResponse{}, leave.ErrLeaveTypeWithoutQuota
	}

	quota, err := s.leaveQuotaRepo.SetAllocation(ctx, leave.LeaveQuota{
		EmployeeID:    req.EmployeeID,
		LeaveTypeID:   req.LeaveTypeID,
		Year:          req.Year,
		AllocatedDays: req.AllocatedDays,
	})
	if err != nil {
		if errors.Is(err, leave.ErrQuotaBelowCommitted) {
			return leave.LeaveQuotaResponse{}, err
		}
		return leave.LeaveQuotaResponse{}, fmt.Errorf("failed to set leave quota: %w", err)
	}

	slog.InfoContext(ctx, "leave quota allocated",
		"employee_id", req.EmployeeID,
		"leave_type", leaveType.Name,
		"year", req.Year,
		"allocated_days", req.AllocatedDays,
	)

	name := leaveType.Name
	quota.LeaveTypeName = &name
	return leave.NewLeaveQuotaResponse(quota), nil
}

func quotaName(q leave.LeaveQuota) string {
	if q.LeaveTypeName == nil {
		return ""
	}
	return *q.LeaveTypeName
}
