package driving

import (
	"context"

	"github.com/custodia-labs/chunkroute/internal/core/domain"
)

// PlanHandler receives the outcome of each re-plan in watch mode.
// Exactly one of plan and err is non-nil.
type PlanHandler func(plan *domain.Plan, err error)

// WatchService re-plans a manifest file whenever it changes.
type WatchService interface {
	// Watch plans the file once, then again after every change, until ctx
	// is cancelled. Each run reloads the whole manifest.
	Watch(ctx context.Context, path string, opts domain.PlanOptions, handle PlanHandler) error
}
