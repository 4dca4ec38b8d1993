package setup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/fixtures"
)

// SetupService seeds a fresh installation so the API is usable without
// manual inserts. Existing data is never touched.
type SetupService struct {
	settingsRepo  company.SettingsRepository
	leaveTypeRepo leave.LeaveTypeRepository
	timezone      string
}

func NewSetupService(settingsRepo company.SettingsRepository, leaveTypeRepo leave.LeaveTypeRepository, timezone string) *SetupService {
	return &SetupService{
		settingsRepo:  settingsRepo,
		leaveTypeRepo: leaveTypeRepo,
		timezone:      timezone,
	}
}

// SeedDefaults creates company settings and leave types when absent.
func (s *SetupService) SeedDefaults(ctx context.Context) error {
	_, err := s.settingsRepo.Get(ctx)
	switch {
	case errors.Is(err, company.ErrSettingsNotFound):
		if _, err := s.settingsRepo.Upsert(ctx, fixtures.DefaultSettings(s.timezone)); err != nil {
			return fmt.Errorf("failed to seed company settings: %w", err)
		}
		slog.InfoContext(ctx, "seeded default company settings", "timezone", s.timezone)
	case err != nil:
		return fmt.Errorf("failed to load company settings: %w", err)
	}

	existing, err := s.leaveTypeRepo.List(ctx, false)
	if err != nil {
		return fmt.Errorf("failed to list leave types: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, lt := range fixtures.GetDefaultLeaveTypes() {
		if _, err := s.leaveTypeRepo.Create(ctx, lt); err != nil {
			return fmt.Errorf("failed to seed leave type %s: %w", lt.Name, err)
		}
	}
	slog.InfoContext(ctx, "seeded default leave types", "count", len(fixtures.GetDefaultLeaveTypes()))
	return nil
}
