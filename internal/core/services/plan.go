package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/chunkroute/internal/core/domain"
	"github.com/custodia-labs/chunkroute/internal/core/ports/driving"
	"github.com/custodia-labs/chunkroute/internal/logger"
	"github.com/custodia-labs/chunkroute/internal/planner"
)

// Ensure PlanService implements the interface.
var _ driving.PlanService = (*PlanService)(nil)

// PlanService runs the planner over manifests: load the catalog, build the
// overlap graph from the start chunk, then search it for the end chunk.
type PlanService struct {
	now   func() time.Time
	newID func() string
}

// NewPlanService creates a new plan service.
func NewPlanService() *PlanService {
	return &PlanService{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Plan finds the cheapest chunk sequence covering the manifest's image.
func (s *PlanService) Plan(
	ctx context.Context, manifest *domain.Manifest, opts domain.PlanOptions,
) (*domain.Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	catalog, start, end, err := s.load(manifest)
	if err != nil {
		return nil, err
	}

	graph, err := s.build(catalog, start)
	if err != nil {
		return nil, err
	}
	if opts.WarnReachable > 0 && graph.Len() > opts.WarnReachable {
		logger.Warn("%d chunks are reachable from %s (threshold %d); exhaustive search may take very long",
			graph.Len(), start, opts.WarnReachable)
	}

	logger.Section("Search")
	logger.Debug("Legacy sentinel: %t, sentinel cost: %d", opts.LegacySentinel, catalog.TotalSize())
	done := logger.Timed("search")
	result, err := planner.Search(graph, catalog, start, end, planner.Options{
		LegacySentinel: opts.LegacySentinel,
	})
	done()
	logger.Debug("Complete paths explored: %d", result.Explored)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", manifest.Name, err)
	}
	logger.Info("Best path: %v (cost %d)", result.Path, result.Cost)

	return &domain.Plan{
		ID:            s.newID(),
		Manifest:      manifest.Name,
		ImageSize:     catalog.ImageSize(),
		Path:          result.Path,
		Cost:          result.Cost,
		Reachable:     graph.Len(),
		Edges:         graph.EdgeCount(),
		PathsExplored: result.Explored,
		CreatedAt:     s.now(),
	}, nil
}

// Graph builds the overlap graph reachable from the manifest's start chunk.
func (s *PlanService) Graph(ctx context.Context, manifest *domain.Manifest) (*domain.OverlapGraph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	catalog, start, _, err := s.load(manifest)
	if err != nil {
		return nil, err
	}
	return s.build(catalog, start)
}

// load builds the catalog and resolves both endpoints before any graph work.
func (s *PlanService) load(manifest *domain.Manifest) (*domain.Catalog, string, string, error) {
	if manifest == nil {
		return nil, "", "", domain.ErrInvalidInput
	}

	logger.Section("Load")
	defer logger.Timed("load")()

	catalog, err := manifest.Catalog()
	if err != nil {
		return nil, "", "", fmt.Errorf("load %s: %w", manifest.Name, err)
	}
	logger.Debug("Manifest %q: image size %d, %d chunks", manifest.Name, catalog.ImageSize(), catalog.Len())

	start, err := catalog.StartChunk()
	if err != nil {
		return nil, "", "", fmt.Errorf("load %s: %w", manifest.Name, err)
	}
	end, err := catalog.EndChunk()
	if err != nil {
		return nil, "", "", fmt.Errorf("load %s: %w", manifest.Name, err)
	}
	logger.Debug("Start chunk: %s, end chunk: %s", start, end)

	return catalog, start, end, nil
}

func (s *PlanService) build(catalog *domain.Catalog, start string) (*domain.OverlapGraph, error) {
	logger.Section("Build Graph")
	defer logger.Timed("build graph")()

	graph, err := planner.BuildGraph(catalog, start)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}
	logger.Debug("Reachable chunks: %d, edges: %d", graph.Len(), graph.EdgeCount())
	return graph, nil
}
