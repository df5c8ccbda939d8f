package driving

import "github.com/custodia-labs/chunkroute/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates a single setting from its string form.
	// Returns domain.ErrInvalidInput for unknown keys or bad values.
	Set(key, value string) error

	// Keys returns the names of all settings accepted by Set.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
