package mcp

import (
	"github.com/custodia-labs/chunkroute/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Plan computes plans and overlap graphs.
	Plan driving.PlanService

	// Manifest parses inline manifests and reads stored ones.
	Manifest driving.ManifestService

	// Settings supplies default planning options. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Plan == nil {
		return ErrMissingPlanService
	}
	if p.Manifest == nil {
		return ErrMissingManifestService
	}
	return nil
}
