package domain

import "time"

const unknownDescription = "Unknown"

// OutputOrder defines how the chunk ids of a plan are printed.
type OutputOrder string

// Available output orders.
const (
	// OutputOrderSorted prints ids in ascending lexicographic order.
	OutputOrderSorted OutputOrder = "sorted"

	// OutputOrderPath prints ids in the order they cover the image.
	OutputOrderPath OutputOrder = "path"
)

// IsValid returns true if the output order is recognised.
func (o OutputOrder) IsValid() bool {
	switch o {
	case OutputOrderSorted, OutputOrderPath:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (o OutputOrder) String() string {
	return string(o)
}

// Description returns a human-readable description of the order.
func (o OutputOrder) Description() string {
	switch o {
	case OutputOrderSorted:
		return "Sorted (lexicographic chunk ids)"
	case OutputOrderPath:
		return "Path (start chunk to end chunk)"
	default:
		return unknownDescription
	}
}

// PlannerSettings holds planning behaviour configuration.
type PlannerSettings struct {
	// LegacySentinel reproduces the original sentinel boundary: a path that
	// uses every catalogued chunk is never accepted.
	LegacySentinel bool

	// WarnReachable is the reachable chunk count above which a warning is
	// logged before the exhaustive search starts. Zero disables it.
	WarnReachable int
}

// OutputSettings holds output formatting configuration.
type OutputSettings struct {
	// Order is the default print order of plan chunk ids.
	Order OutputOrder
}

// WatchSettings holds manifest watch configuration.
type WatchSettings struct {
	// MinInterval is the shortest time between two re-plans.
	MinInterval time.Duration
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Planner holds planning settings.
	Planner PlannerSettings

	// Output holds output settings.
	Output OutputSettings

	// Watch holds watch mode settings.
	Watch WatchSettings
}

// PlanOptions returns the planning options derived from the settings.
func (s AppSettings) PlanOptions() PlanOptions {
	return PlanOptions{
		LegacySentinel: s.Planner.LegacySentinel,
		WarnReachable:  s.Planner.WarnReachable,
	}
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Planner: PlannerSettings{
			LegacySentinel: false,
			WarnReachable:  40,
		},
		Output: OutputSettings{
			Order: OutputOrderSorted,
		},
		Watch: WatchSettings{
			MinInterval: 250 * time.Millisecond,
		},
	}
}

// AllOutputOrders returns all available output orders.
func AllOutputOrders() []OutputOrder {
	return []OutputOrder{
		OutputOrderSorted,
		OutputOrderPath,
	}
}
