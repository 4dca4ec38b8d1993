package company

import "context"

// SettingsRepository - interface for company_settings table
type SettingsRepository interface {
	// Get returns ErrSettingsNotFound when the row has not been provisioned.
	Get(ctx context.Context) (Settings, error)
	Upsert(ctx context.Context, s Settings) (Settings, error)
}
