package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) company.SettingsRepository {
	return &settingsRepositoryImpl{db: db}
}

const settingsSelect = `
	SELECT id, weekend_days, to_char(mark_from_time, 'HH24:MI'), to_char(work_start_time, 'HH24:MI'),
		   to_char(work_end_time, 'HH24:MI'), timezone, updated_at
	FROM company_settings
	ORDER BY updated_at DESC
	LIMIT 1
`

// Get implements company.SettingsRepository.
func (r *settingsRepositoryImpl) Get(ctx context.Context) (company.Settings, error) {
	q := GetQuerier(ctx, r.db)

	var s company.Settings
	err := q.QueryRow(ctx, settingsSelect).Scan(
		&s.ID, &s.WeekendDays, &s.MarkFromTime, &s.WorkStartTime, &s.WorkEndTime, &s.Timezone, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Settings{}, company.ErrSettingsNotFound
		}
		return company.Settings{}, fmt.Errorf("failed to get company settings: %w", err)
	}
	return s, nil
}

// Upsert implements company.SettingsRepository. The table holds a single row;
// the existing row is locked and updated, or one is inserted.
func (r *settingsRepositoryImpl) Upsert(ctx context.Context, s company.Settings) (company.Settings, error) {
	weekend := s.WeekendDays
	if weekend == nil {
		weekend = []string{}
	}

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		var id string
		err := q.QueryRow(ctx, `SELECT id FROM company_settings LIMIT 1 FOR UPDATE`).Scan(&id)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			newID, err := uuid.NewV7()
			if err != nil {
				return fmt.Errorf("failed to generate settings id: %w", err)
			}
			_, err = q.Exec(ctx, `
				INSERT INTO company_settings (id, weekend_days, mark_from_time, work_start_time, work_end_time, timezone)
				VALUES ($1, $2, $3::text::time, $4::text::time, $5::text::time, $6)
			`, newID.String(), weekend, s.MarkFromTime, s.WorkStartTime, s.WorkEndTime, s.Timezone)
			if err != nil {
				return fmt.Errorf("failed to insert company settings: %w", err)
			}
		case err != nil:
			return fmt.Errorf("failed to lock company settings: %w", err)
		default:
			_, err = q.Exec(ctx, `
				UPDATE company_settings
				SET weekend_days = $1, mark_from_time = $2::text::time, work_start_time = $3::text::time,
					work_end_time = $4::text::time, timezone = $5, updated_at = NOW()
				WHERE id = $6
			`, weekend, s.MarkFromTime, s.WorkStartTime, s.WorkEndTime, s.Timezone, id)
			if err != nil {
				return fmt.Errorf("failed to update company settings: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return company.Settings{}, err
	}

	return r.Get(ctx)
}
