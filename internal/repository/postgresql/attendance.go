package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.clock_in, a.clock_out, a.status, a.created_at, a.updated_at, e.full_name`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var (
		att  attendance.Attendance
		date time.Time
	)
	err := row.Scan(
		&att.ID, &att.EmployeeID, &date, &att.ClockIn, &att.ClockOut, &att.Status,
		&att.CreatedAt, &att.UpdatedAt, &att.EmployeeName,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	att.Date = civil.DateOf(date)
	return att, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	if newAttendance.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to generate attendance id: %w", err)
		}
		newAttendance.ID = id.String()
	}

	query := `
		INSERT INTO attendances (id, employee_id, date, clock_in, clock_out, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.ID,
		newAttendance.EmployeeID,
		dateArg(newAttendance.Date),
		newAttendance.ClockIn,
		newAttendance.ClockOut,
		newAttendance.Status,
	).Scan(&newAttendance.CreatedAt, &newAttendance.UpdatedAt)
	if err != nil {
		if hasCode(err, codeUniqueViolation) {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date civil.Date) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + attendanceColumns + `
		FROM attendances a
		INNER JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND a.date = $2
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, dateArg(date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// GetOpenByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetOpenByEmployee(ctx context.Context, employeeID string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + attendanceColumns + `
		FROM attendances a
		INNER JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND a.clock_in IS NOT NULL AND a.clock_out IS NULL
		ORDER BY a.date DESC
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open attendance: %w", err)
	}

	return &att, nil
}

// UpdateClockOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateClockOut(ctx context.Context, id string, clockOut time.Time) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET clock_out = $1, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, clockOut, id)
	if err != nil {
		return fmt.Errorf("failed to update clock out: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// ListByEmployeeAndRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to civil.Date) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + attendanceColumns + `
		FROM attendances a
		INNER JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND a.date BETWEEN $2 AND $3
		ORDER BY a.date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, dateArg(from), dateArg(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}

	return records, nil
}
