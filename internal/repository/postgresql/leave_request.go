package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestSelect = `
	SELECT lr.id, lr.employee_id, lr.leave_type_id, lr.from_date, lr.to_date, lr.from_session, lr.to_session,
		   lr.total_days, lr.reason, lr.status, lr.reviewed_by, lr.reviewed_at, lr.rejection_reason,
		   lr.created_at, lr.updated_at, lt.is_paid, lt.name, e.full_name
	FROM leave_requests lr
	INNER JOIN leave_types lt ON lt.id = lr.leave_type_id
	INNER JOIN employees e ON e.id = lr.employee_id
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var (
		lr       leave.LeaveRequest
		from, to time.Time
	)
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.LeaveTypeID, &from, &to, &lr.FromSession, &lr.ToSession,
		&lr.TotalDays, &lr.Reason, &lr.Status, &lr.ReviewedBy, &lr.ReviewedAt, &lr.RejectionReason,
		&lr.CreatedAt, &lr.UpdatedAt, &lr.IsPaid, &lr.LeaveTypeName, &lr.EmployeeName,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	lr.FromDate = civil.DateOf(from)
	lr.ToDate = civil.DateOf(to)
	return lr, nil
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave requests: %w", err)
	}
	return requests, nil
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	if request.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return leave.LeaveRequest{}, fmt.Errorf("failed to generate leave request id: %w", err)
		}
		request.ID = id.String()
	}

	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type_id, from_date, to_date, from_session, to_session,
			total_days, reason, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.ID,
		request.EmployeeID,
		request.LeaveTypeID,
		dateArg(request.FromDate),
		dateArg(request.ToDate),
		request.FromSession,
		request.ToSession,
		request.TotalDays,
		request.Reason,
		request.Status,
	).Scan(&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return r.GetByID(ctx, request.ID)
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeaveRequest(q.QueryRow(ctx, leaveRequestSelect+` WHERE lr.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return lr, nil
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, leaveRequestSelect+`
		WHERE lr.employee_id = $1
		ORDER BY lr.from_date DESC, lr.id DESC
	`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return collectLeaveRequests(rows)
}

// ListApprovedByEmployeeAndRange implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListApprovedByEmployeeAndRange(ctx context.Context, employeeID string, from, to civil.Date) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, leaveRequestSelect+`
		WHERE lr.employee_id = $1
		  AND lr.status = $2
		  AND lr.from_date <= $4
		  AND lr.to_date >= $3
		ORDER BY lr.from_date ASC, lr.id ASC
	`, employeeID, leave.LeaveRequestStatusApproved, dateArg(from), dateArg(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave requests: %w", err)
	}
	return collectLeaveRequests(rows)
}

// HasOverlap implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) HasOverlap(ctx context.Context, employeeID string, from, to civil.Date, statuses []leave.LeaveRequestStatus, excludeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1
			  AND status = ANY($2)
			  AND from_date <= $4
			  AND to_date >= $3
			  AND ($5 = '' OR id::text <> $5)
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, names, dateArg(from), dateArg(to), excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check leave overlap: %w", err)
	}
	return exists, nil
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.LeaveRequestStatus, reviewedBy string, reviewedAt time.Time, rejectionReason *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, reviewed_by = $2, reviewed_at = $3, rejection_reason = $4, updated_at = NOW()
		WHERE id = $5 AND status = $6
	`

	tag, err := q.Exec(ctx, query, status, reviewedBy, reviewedAt, rejectionReason, id, leave.LeaveRequestStatusPending)
	if err != nil {
		// The approved-leave exclusion constraint catches a concurrent approval.
		if hasCode(err, codeExclusionViolation) {
			return leave.ErrOverlappingLeave
		}
		return fmt.Errorf("failed to update leave request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return leave.ErrLeaveRequestAlreadyProcessed
	}
	return nil
}
