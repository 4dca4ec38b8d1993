package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/overtime"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type overtimeRepositoryImpl struct {
	db *database.DB
}

func NewOvertimeRepository(db *database.DB) overtime.OvertimeRepository {
	return &overtimeRepositoryImpl{db: db}
}

const overtimeSelect = `
	SELECT o.id, o.employee_id, o.date, to_char(o.time_from, 'HH24:MI'), to_char(o.time_to, 'HH24:MI'),
		   o.hours_worked, o.type, o.status, o.reason, o.reviewed_by, o.reviewed_at, o.rejection_reason,
		   o.created_at, o.updated_at, e.full_name
	FROM overtime_requests o
	INNER JOIN employees e ON e.id = o.employee_id
`

func scanOvertime(row pgx.Row) (overtime.Overtime, error) {
	var (
		o    overtime.Overtime
		date time.Time
	)
	err := row.Scan(
		&o.ID, &o.EmployeeID, &date, &o.TimeFrom, &o.TimeTo,
		&o.HoursWorked, &o.Type, &o.Status, &o.Reason, &o.ReviewedBy, &o.ReviewedAt, &o.RejectionReason,
		&o.CreatedAt, &o.UpdatedAt, &o.EmployeeName,
	)
	if err != nil {
		return overtime.Overtime{}, err
	}
	o.Date = civil.DateOf(date)
	return o, nil
}

// Create implements overtime.OvertimeRepository.
func (r *overtimeRepositoryImpl) Create(ctx context.Context, o overtime.Overtime) (overtime.Overtime, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return overtime.Overtime{}, fmt.Errorf("failed to generate overtime id: %w", err)
	}
	o.ID = id.String()

	query := `
		INSERT INTO overtime_requests (id, employee_id, date, time_from, time_to, hours_worked, type, status, reason)
		VALUES ($1, $2, $3, $4::text::time, $5::text::time, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		o.ID, o.EmployeeID, dateArg(o.Date), o.TimeFrom, o.TimeTo, o.HoursWorked, o.Type, o.Status, o.Reason,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if hasCode(err, codeUniqueViolation) {
			return overtime.Overtime{}, overtime.ErrOvertimeAlreadyExists
		}
		return overtime.Overtime{}, fmt.Errorf("failed to create overtime: %w", err)
	}
	return o, nil
}

// GetByID implements overtime.OvertimeRepository.
func (r *overtimeRepositoryImpl) GetByID(ctx context.Context, id string) (overtime.Overtime, error) {
	q := GetQuerier(ctx, r.db)

	o, err := scanOvertime(q.QueryRow(ctx, overtimeSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return overtime.Overtime{}, overtime.ErrOvertimeNotFound
		}
		return overtime.Overtime{}, fmt.Errorf("failed to get overtime: %w", err)
	}
	return o, nil
}

// ExistsForEmployeeAndDate implements overtime.OvertimeRepository.
func (r *overtimeRepositoryImpl) ExistsForEmployeeAndDate(ctx context.Context, employeeID string, date civil.Date) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM overtime_requests
			WHERE employee_id = $1 AND date = $2 AND status <> $3
		)
	`, employeeID, dateArg(date), overtime.StatusRejected).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check existing overtime: %w", err)
	}
	return exists, nil
}

// ListApprovedByEmployeeAndRange implements overtime.OvertimeRepository.
func (r *overtimeRepositoryImpl) ListApprovedByEmployeeAndRange(ctx context.Context, employeeID string, from, to civil.Date) ([]overtime.Overtime, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, overtimeSelect+`
		WHERE o.employee_id = $1 AND o.status = $2 AND o.date BETWEEN $3 AND $4
		ORDER BY o.date ASC, o.id ASC
	`, employeeID, overtime.StatusApproved, dateArg(from), dateArg(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list approved overtime: %w", err)
	}
	defer rows.Close()

	var entries []overtime.Overtime
	for rows.Next() {
		o, err := scanOvertime(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan overtime: %w", err)
		}
		entries = append(entries, o)
	}
	return entries, rows.Err()
}

// UpdateStatus implements overtime.OvertimeRepository.
func (r *overtimeRepositoryImpl) UpdateStatus(ctx context.Context, id string, status overtime.Status, reviewedBy string, reviewedAt time.Time, rejectionReason *string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE overtime_requests
		SET status = $1, reviewed_by = $2, reviewed_at = $3, rejection_reason = $4, updated_at = NOW()
		WHERE id = $5 AND status = $6
	`, status, reviewedBy, reviewedAt, rejectionReason, id, overtime.StatusPending)
	if err != nil {
		return fmt.Errorf("failed to update overtime status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return overtime.ErrOvertimeAlreadyProcessed
	}
	return nil
}
