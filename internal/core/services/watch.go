package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/chunkroute/internal/core/domain"
	"github.com/custodia-labs/chunkroute/internal/core/ports/driven"
	"github.com/custodia-labs/chunkroute/internal/core/ports/driving"
	"github.com/custodia-labs/chunkroute/internal/logger"
)

// Ensure WatchService implements the interface.
var _ driving.WatchService = (*WatchService)(nil)

// WatchService re-plans a manifest file from scratch whenever it changes.
// Planning failures are reported to the handler and do not stop the watch.
type WatchService struct {
	watcher   driven.FileWatcher
	manifests driving.ManifestService
	planner   driving.PlanService
}

// NewWatchService creates a new watch service.
func NewWatchService(
	watcher driven.FileWatcher,
	manifests driving.ManifestService,
	planner driving.PlanService,
) *WatchService {
	return &WatchService{
		watcher:   watcher,
		manifests: manifests,
		planner:   planner,
	}
}

// Watch plans the file once, then again after every change, until ctx is
// cancelled. Cancellation is a normal stop and returns nil.
func (s *WatchService) Watch(
	ctx context.Context, path string, opts domain.PlanOptions, handle driving.PlanHandler,
) error {
	if s.watcher == nil || s.manifests == nil || s.planner == nil {
		return domain.ErrNotImplemented
	}

	s.replan(ctx, path, opts, handle)
	err := s.watcher.Watch(ctx, path, func() error {
		s.replan(ctx, path, opts, handle)
		return ctx.Err()
	})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// replan runs one plan and reports it, unless ctx ended before or during
// the run.
func (s *WatchService) replan(ctx context.Context, path string, opts domain.PlanOptions, handle driving.PlanHandler) {
	if ctx.Err() != nil {
		return
	}
	plan, err := s.plan(ctx, path, opts)
	if ctx.Err() != nil {
		return
	}
	handle(plan, err)
}

func (s *WatchService) plan(ctx context.Context, path string, opts domain.PlanOptions) (*domain.Plan, error) {
	logger.Section("Re-plan " + path)
	manifest, err := s.manifests.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	return s.planner.Plan(ctx, manifest, opts)
}
