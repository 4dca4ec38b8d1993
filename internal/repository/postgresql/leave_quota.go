package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveQuotaRepositoryImpl struct {
	db *database.DB
}

func NewLeaveQuotaRepository(db *database.DB) leave.LeaveQuotaRepository {
	return &leaveQuotaRepositoryImpl{db: db}
}

const leaveQuotaSelect = `
	SELECT lq.id, lq.employee_id, lq.leave_type_id, lq.year,
		   lq.allocated_days, lq.used_days, lq.pending_days,
		   lq.created_at, lq.updated_at, lt.name
	FROM leave_quotas lq
	INNER JOIN leave_types lt ON lt.id = lq.leave_type_id
`

func scanLeaveQuota(row pgx.Row) (leave.LeaveQuota, error) {
	var q leave.LeaveQuota
	err := row.Scan(
		&q.ID, &q.EmployeeID, &q.LeaveTypeID, &q.Year,
		&q.AllocatedDays, &q.UsedDays, &q.PendingDays,
		&q.CreatedAt, &q.UpdatedAt, &q.LeaveTypeName,
	)
	return q, err
}

// GetByEmployeeTypeYear implements leave.LeaveQuotaRepository.
func (r *leaveQuotaRepositoryImpl) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveQuota, error) {
	q := GetQuerier(ctx, r.db)

	quota, err := scanLeaveQuota(q.QueryRow(ctx, leaveQuotaSelect+`
		WHERE lq.employee_id = $1 AND lq.leave_type_id = $2 AND lq.year = $3
	`, employeeID, leaveTypeID, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveQuota{}, leave.ErrQuotaNotFound
		}
		return leave.LeaveQuota{}, fmt.Errorf("failed to get leave quota: %w", err)
	}
	return quota, nil
}

// ListByEmployeeYear implements leave.LeaveQuotaRepository.
func (r *leaveQuotaRepositoryImpl) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveQuota, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, leaveQuotaSelect+`
		WHERE lq.employee_id = $1 AND lq.year = $2
		ORDER BY lt.name ASC
	`, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave quotas: %w", err)
	}
	defer rows.Close()

	var quotas []leave.LeaveQuota
	for rows.Next() {
		quota, err := scanLeaveQuota(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave quota: %w", err)
		}
		quotas = append(quotas, quota)
	}
	return quotas, rows.Err()
}

// Create implements leave.LeaveQuotaRepository.
func (r *leaveQuotaRepositoryImpl) Create(ctx context.Context, quota leave.LeaveQuota) (leave.LeaveQuota, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveQuota{}, fmt.Errorf("failed to generate leave quota id: %w", err)
	}

	query := `
		INSERT INTO leave_quotas (id, employee_id, leave_type_id, year, allocated_days)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, leave_type_id, year) DO NOTHING
	`
	if _, err := q.Exec(ctx, query, id.String(), quota.EmployeeID, quota.LeaveTypeID, quota.Year, quota.AllocatedDays); err != nil {
		return leave.LeaveQuota{}, fmt.Errorf("failed to create leave quota: %w", err)
	}

	return r.GetByEmployeeTypeYear(ctx, quota.EmployeeID, quota.LeaveTypeID, quota.Year)
}

// SetAllocation implements leave.LeaveQuotaRepository.
func (r *leaveQuotaRepositoryImpl) SetAllocation(ctx context.Context, quota leave.LeaveQuota) (leave.LeaveQuota, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveQuota{}, fmt.Errorf("failed to generate leave quota id: %w", err)
	}

	query := `
		INSERT INTO leave_quotas (id, employee_id, leave_type_id, year, allocated_days)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, leave_type_id, year) DO UPDATE
		SET allocated_days = EXCLUDED.allocated_days, updated_at = NOW()
		WHERE leave_quotas.used_days + leave_quotas.pending_days <= EXCLUDED.allocated_days
		RETURNING id
	`

	var quotaID string
	err = q.QueryRow(ctx, query, id.String(), quota.EmployeeID, quota.LeaveTypeID, quota.Year, quota.AllocatedDays).Scan(&quotaID)
	if err != nil {
		// The conflict row was kept because the WHERE guard failed.
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveQuota{}, leave.ErrQuotaBelowCommitted
		}
		return leave.LeaveQuota{}, fmt.Errorf("failed to set leave quota allocation: %w", err)
	}

	return r.GetByEmployeeTypeYear(ctx, quota.EmployeeID, quota.LeaveTypeID, quota.Year)
}

// AddPending implements leave.LeaveQuotaRepository.
func (r *leaveQuotaRepositoryImpl) AddPending(ctx context.Context, quotaID string, days float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_quotas
		SET pending_days = pending_days + $1, updated_at = NOW()
		WHERE id = $2
		  AND allocated_days - used_days - pending_days >= $1
	`

	tag, err := q.Exec(ctx, query, days, quotaID)
	if err != nil {
		return fmt.Errorf("failed to reserve leave quota: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrInsufficientQuota
	}
	return nil
}

// MovePendingToUsed implements leave.LeaveQuotaRepository.
func (r *leaveQuotaRepositoryImpl) MovePendingToUsed(ctx context.Context, quotaID string, days float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_quotas
		SET pending_days = GREATEST(pending_days - $1, 0),
			used_days = used_days + $1,
			updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, days, quotaID)
	if err != nil {
		return fmt.Errorf("failed to move pending leave quota: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrQuotaNotFound
	}
	return nil
}

// RemovePending implements leave.LeaveQuotaRepository.
func (r *leaveQuotaRepositoryImpl) RemovePending(ctx context.Context, quotaID string, days float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_quotas
		SET pending_days = GREATEST(pending_days - $1, 0), updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, days, quotaID)
	if err != nil {
		return fmt.Errorf("failed to release leave quota: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrQuotaNotFound
	}
	return nil
}
