package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/chunkroute/internal/core/domain"
	"github.com/custodia-labs/chunkroute/internal/core/ports/driven"
	"github.com/custodia-labs/chunkroute/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyLegacySentinel = "planner.legacy_sentinel"
	keyWarnReachable  = "planner.warn_reachable"
	keyOutputOrder    = "output.order"
	keyWatchInterval  = "watch.min_interval_ms"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
// Missing or invalid stored values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Planner: domain.PlannerSettings{
			LegacySentinel: s.getBool(keyLegacySentinel, defaults.Planner.LegacySentinel),
			WarnReachable:  s.getCount(keyWarnReachable, defaults.Planner.WarnReachable),
		},
		Output: domain.OutputSettings{
			Order: s.getOutputOrder(defaults.Output.Order),
		},
		Watch: domain.WatchSettings{
			MinInterval: time.Duration(
				s.getCount(keyWatchInterval, int(defaults.Watch.MinInterval/time.Millisecond)),
			) * time.Millisecond,
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if !settings.Output.Order.IsValid() {
		return fmt.Errorf("%w: output order %q", domain.ErrInvalidInput, settings.Output.Order)
	}
	if settings.Planner.WarnReachable < 0 || settings.Watch.MinInterval < 0 {
		return fmt.Errorf("%w: negative limit", domain.ErrInvalidInput)
	}

	if err := s.configStore.Set(keyLegacySentinel, settings.Planner.LegacySentinel); err != nil {
		return fmt.Errorf("save legacy_sentinel: %w", err)
	}
	if err := s.configStore.Set(keyWarnReachable, settings.Planner.WarnReachable); err != nil {
		return fmt.Errorf("save warn_reachable: %w", err)
	}
	if err := s.configStore.Set(keyOutputOrder, settings.Output.Order.String()); err != nil {
		return fmt.Errorf("save output order: %w", err)
	}
	if err := s.configStore.Set(keyWatchInterval, int(settings.Watch.MinInterval/time.Millisecond)); err != nil {
		return fmt.Errorf("save watch interval: %w", err)
	}

	return nil
}

// Set updates a single setting from its string form.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	var parsed any
	switch key {
	case keyLegacySentinel:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s expects true or false, got %q", domain.ErrInvalidInput, key, value)
		}
		parsed = b
	case keyWarnReachable, keyWatchInterval:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s expects a non-negative integer, got %q", domain.ErrInvalidInput, key, value)
		}
		parsed = n
	case keyOutputOrder:
		order := domain.OutputOrder(strings.ToLower(value))
		if !order.IsValid() {
			return fmt.Errorf("%w: %s expects one of %s, got %q",
				domain.ErrInvalidInput, key, orderNames(), value)
		}
		parsed = order.String()
	default:
		return fmt.Errorf("%w: unknown setting %q (known: %s)",
			domain.ErrInvalidInput, key, strings.Join(s.Keys(), ", "))
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the names of all settings accepted by Set.
func (s *SettingsService) Keys() []string {
	return []string{keyOutputOrder, keyLegacySentinel, keyWarnReachable, keyWatchInterval}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

// getCount reads a non-negative integer. Zero is a valid stored value.
func (s *SettingsService) getCount(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetInt(key)
	if val < 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getOutputOrder(defaultVal domain.OutputOrder) domain.OutputOrder {
	order := domain.OutputOrder(s.configStore.GetString(keyOutputOrder))
	if !order.IsValid() {
		return defaultVal
	}
	return order
}

func orderNames() string {
	orders := domain.AllOutputOrders()
	names := make([]string, len(orders))
	for i, o := range orders {
		names[i] = o.String()
	}
	return strings.Join(names, ", ")
}
