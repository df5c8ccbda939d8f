package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chunkroute/internal/adapters/driven/manifest/tsv"
	"github.com/custodia-labs/chunkroute/internal/core/domain"
)

// scriptedWatcher replaces the file contents and fires onChange once per step.
type scriptedWatcher struct {
	path  string
	steps []string
}

func (w *scriptedWatcher) Watch(_ context.Context, path string, onChange func() error) error {
	if path != w.path {
		return errors.New("unexpected path")
	}
	for _, content := range w.steps {
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			return err
		}
		if err := onChange(); err != nil {
			return err
		}
	}
	return nil
}

func TestWatchService_ReplansOnEveryChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problem.tsv")
	require.NoError(t, os.WriteFile(path, []byte(scenarioTSV), 0600))

	watcher := &scriptedWatcher{
		path: path,
		steps: []string{
			"12\nA\t0\t5\n",         // end chunk removed
			"12\nA\t0\t12\nB\t3\t5\n", // single chunk covers the image
		},
	}
	service := NewWatchService(watcher, NewManifestService(tsv.New(), nil), NewPlanService())

	type outcome struct {
		plan *domain.Plan
		err  error
	}
	var outcomes []outcome
	err := service.Watch(context.Background(), path, domain.PlanOptions{}, func(p *domain.Plan, err error) {
		outcomes = append(outcomes, outcome{p, err})
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	require.NoError(t, outcomes[0].err)
	assert.Equal(t, []string{"A", "C"}, outcomes[0].plan.Path)

	assert.Nil(t, outcomes[1].plan)
	assert.ErrorIs(t, outcomes[1].err, domain.ErrNoEndChunk)

	require.NoError(t, outcomes[2].err)
	assert.Equal(t, []string{"A"}, outcomes[2].plan.Path)
	assert.Equal(t, int64(12), outcomes[2].plan.Cost)
}

func TestWatchService_MissingFileReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "later.tsv")
	watcher := &scriptedWatcher{path: path}
	service := NewWatchService(watcher, NewManifestService(tsv.New(), nil), NewPlanService())

	var errs []error
	err := service.Watch(context.Background(), path, domain.PlanOptions{}, func(_ *domain.Plan, err error) {
		errs = append(errs, err)
	})
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], os.ErrNotExist)
}

func TestWatchService_StopsWhenCancelledDuringChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problem.tsv")
	require.NoError(t, os.WriteFile(path, []byte(scenarioTSV), 0600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The second step must never run: the first change sees a cancelled
	// context and stops the watcher.
	watcher := &scriptedWatcher{path: path, steps: []string{scenarioTSV, scenarioTSV}}
	service := NewWatchService(watcher, NewManifestService(tsv.New(), nil), NewPlanService())

	calls := 0
	err := service.Watch(ctx, path, domain.PlanOptions{}, func(*domain.Plan, error) {
		calls++
		cancel()
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWatchService_WatcherErrorReturned(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problem.tsv")
	require.NoError(t, os.WriteFile(path, []byte(scenarioTSV), 0600))

	watcher := &scriptedWatcher{path: "elsewhere.tsv"}
	service := NewWatchService(watcher, NewManifestService(tsv.New(), nil), NewPlanService())

	err := service.Watch(context.Background(), path, domain.PlanOptions{}, func(*domain.Plan, error) {})

	assert.EqualError(t, err, "unexpected path")
}

func TestWatchService_NotConfigured(t *testing.T) {
	service := NewWatchService(nil, nil, nil)

	err := service.Watch(context.Background(), "x", domain.PlanOptions{}, func(*domain.Plan, error) {})
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}
