package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

func scanHoliday(row pgx.Row) (holiday.Holiday, error) {
	var (
		h    holiday.Holiday
		date time.Time
	)
	if err := row.Scan(&h.ID, &date, &h.Name, &h.CreatedAt); err != nil {
		return holiday.Holiday{}, err
	}
	h.Date = civil.DateOf(date)
	return h, nil
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return holiday.Holiday{}, fmt.Errorf("failed to generate holiday id: %w", err)
	}
	h.ID = id.String()

	query := `
		INSERT INTO holidays (id, date, name)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	if err := q.QueryRow(ctx, query, h.ID, dateArg(h.Date), h.Name).Scan(&h.CreatedAt); err != nil {
		if hasCode(err, codeUniqueViolation) {
			return holiday.Holiday{}, holiday.ErrHolidayExists
		}
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return h, nil
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}

// GetByDate implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) GetByDate(ctx context.Context, date civil.Date) (*holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	h, err := scanHoliday(q.QueryRow(ctx, `
		SELECT id, date, name, created_at
		FROM holidays
		WHERE date = $1
	`, dateArg(date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get holiday by date: %w", err)
	}
	return &h, nil
}

// ListByRange implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ListByRange(ctx context.Context, from, to civil.Date) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, date, name, created_at
		FROM holidays
		WHERE date BETWEEN $1 AND $2
		ORDER BY date ASC
	`, dateArg(from), dateArg(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}
