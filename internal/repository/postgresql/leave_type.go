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

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

// GetByID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, description, is_paid, is_active, has_quota, default_quota, created_at, updated_at
		FROM leave_types
		WHERE id = $1
	`

	var lt leave.LeaveType
	err := q.QueryRow(ctx, query, id).Scan(
		&lt.ID, &lt.Name, &lt.Code, &lt.Description, &lt.IsPaid, &lt.IsActive, &lt.HasQuota, &lt.DefaultQuota, &lt.CreatedAt, &lt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type: %w", err)
	}
	return lt, nil
}

// List implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, description, is_paid, is_active, has_quota, default_quota, created_at, updated_at
		FROM leave_types
		WHERE ($1 = FALSE OR is_active = TRUE)
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	defer rows.Close()

	var types []leave.LeaveType
	for rows.Next() {
		var lt leave.LeaveType
		if err := rows.Scan(
			&lt.ID, &lt.Name, &lt.Code, &lt.Description, &lt.IsPaid, &lt.IsActive, &lt.HasQuota, &lt.DefaultQuota, &lt.CreatedAt, &lt.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave type: %w", err)
		}
		types = append(types, lt)
	}
	return types, rows.Err()
}

// Create implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveType{}, fmt.Errorf("failed to generate leave type id: %w", err)
	}
	lt.ID = id.String()

	query := `
		INSERT INTO leave_types (id, name, code, description, is_paid, is_active, has_quota, default_quota)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	if err := q.QueryRow(ctx, query, lt.ID, lt.Name, lt.Code, lt.Description, lt.IsPaid, lt.IsActive, lt.HasQuota, lt.DefaultQuota).Scan(
		&lt.CreatedAt, &lt.UpdatedAt,
	); err != nil {
		return leave.LeaveType{}, fmt.Errorf("failed to create leave type: %w", err)
	}
	return lt, nil
}
