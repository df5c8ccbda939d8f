package driving

import (
	"context"

	"github.com/custodia-labs/chunkroute/internal/core/domain"
)

// PlanService computes download plans from manifests.
type PlanService interface {
	// Plan finds the cheapest chunk sequence covering the manifest's image.
	Plan(ctx context.Context, manifest *domain.Manifest, opts domain.PlanOptions) (*domain.Plan, error)

	// Graph builds the overlap graph reachable from the manifest's start chunk.
	Graph(ctx context.Context, manifest *domain.Manifest) (*domain.OverlapGraph, error)
}
