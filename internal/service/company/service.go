package company

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
)

type SettingsServiceImpl struct {
	settingsRepo company.SettingsRepository
}

func NewSettingsService(settingsRepo company.SettingsRepository) company.SettingsService {
	return &SettingsServiceImpl{settingsRepo: settingsRepo}
}

// GetSettings implements company.SettingsService.
func (s *SettingsServiceImpl) GetSettings(ctx context.Context) (company.SettingsResponse, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, company.ErrSettingsNotFound) {
			return company.SettingsResponse{}, err
		}
		return company.SettingsResponse{}, fmt.Errorf("failed to get company settings: %w", err)
	}
	return company.NewSettingsResponse(settings), nil
}

// UpdateSettings implements company.SettingsService.
func (s *SettingsServiceImpl) UpdateSettings(ctx context.Context, req company.UpdateSettingsRequest) (company.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return company.SettingsResponse{}, err
	}

	weekend := make([]string, 0, len(req.WeekendDays))
	for _, day := range req.WeekendDays {
		weekend = append(weekend, strings.ToLower(strings.TrimSpace(day)))
	}

	saved, err := s.settingsRepo.Upsert(ctx, company.Settings{
		WeekendDays:   weekend,
		MarkFromTime:  req.MarkFromTime,
		WorkStartTime: req.WorkStartTime,
		WorkEndTime:   req.WorkEndTime,
		Timezone:      req.Timezone,
	})
	if err != nil {
		return company.SettingsResponse{}, fmt.Errorf("failed to save company settings: %w", err)
	}

	slog.InfoContext(ctx, "company settings updated",
		"weekend_days", weekend,
		"timezone", saved.Timezone,
	)
	return company.NewSettingsResponse(saved), nil
}
