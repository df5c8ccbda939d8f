package services

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chunkroute/internal/core/domain"
	"github.com/custodia-labs/chunkroute/internal/logger"
)

func scenarioManifest() *domain.Manifest {
	return &domain.Manifest{
		Name:      "scenario",
		ImageSize: 12,
		Chunks: []domain.Chunk{
			{ID: "A", Start: 0, Size: 5},
			{ID: "B", Start: 3, Size: 5},
			{ID: "C", Start: 2, Size: 10},
		},
	}
}

func newTestPlanService() *PlanService {
	s := NewPlanService()
	s.now = func() time.Time { return time.Date(2026, 5, 4, 3, 2, 1, 0, time.UTC) }
	s.newID = func() string { return "plan-1" }
	return s
}

func TestPlanService_Plan_Scenario(t *testing.T) {
	service := newTestPlanService()

	plan, err := service.Plan(context.Background(), scenarioManifest(), domain.PlanOptions{})
	require.NoError(t, err)

	assert.Equal(t, "plan-1", plan.ID)
	assert.Equal(t, "scenario", plan.Manifest)
	assert.Equal(t, int64(12), plan.ImageSize)
	assert.Equal(t, []string{"A", "C"}, plan.Path)
	assert.Equal(t, int64(15), plan.Cost)
	assert.Equal(t, int64(3), plan.Overhead())
	assert.Equal(t, 3, plan.Reachable)
	assert.Equal(t, 3, plan.Edges)
	assert.Equal(t, 2, plan.PathsExplored)
	assert.Equal(t, []string{"A", "C"}, plan.SortedIDs())
	assert.Equal(t, 2026, plan.CreatedAt.Year())
}

func TestPlanService_Plan_DefaultIDs(t *testing.T) {
	service := NewPlanService()

	first, err := service.Plan(context.Background(), scenarioManifest(), domain.PlanOptions{})
	require.NoError(t, err)
	second, err := service.Plan(context.Background(), scenarioManifest(), domain.PlanOptions{})
	require.NoError(t, err)

	assert.Len(t, first.ID, 36)
	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.CreatedAt.IsZero())
}

func TestPlanService_Plan_Errors(t *testing.T) {
	tests := []struct {
		name     string
		manifest *domain.Manifest
		opts     domain.PlanOptions
		wantErr  error
	}{
		{
			name:     "nil manifest",
			manifest: nil,
			wantErr:  domain.ErrInvalidInput,
		},
		{
			name:     "no start chunk",
			manifest: &domain.Manifest{Name: "m", ImageSize: 10, Chunks: []domain.Chunk{{ID: "B", Start: 1, Size: 9}}},
			wantErr:  domain.ErrNoStartChunk,
		},
		{
			name:     "no end chunk",
			manifest: &domain.Manifest{Name: "m", ImageSize: 10, Chunks: []domain.Chunk{{ID: "A", Start: 0, Size: 5}}},
			wantErr:  domain.ErrNoEndChunk,
		},
		{
			name: "ambiguous start",
			manifest: &domain.Manifest{Name: "m", ImageSize: 10, Chunks: []domain.Chunk{
				{ID: "A", Start: 0, Size: 5}, {ID: "A2", Start: 0, Size: 6}, {ID: "Z", Start: 4, Size: 6},
			}},
			wantErr: domain.ErrAmbiguousStartChunk,
		},
		{
			name:     "malformed record",
			manifest: &domain.Manifest{Name: "m", ImageSize: 10, Chunks: []domain.Chunk{{ID: "A", Start: 0, Size: 0}}},
			wantErr:  domain.ErrMalformedRecord,
		},
		{
			name: "unreachable end",
			manifest: &domain.Manifest{Name: "m", ImageSize: 10, Chunks: []domain.Chunk{
				{ID: "A", Start: 0, Size: 4}, {ID: "Z", Start: 5, Size: 5},
			}},
			wantErr: domain.ErrNoPathFound,
		},
		{
			name: "legacy sentinel rejects full path",
			manifest: &domain.Manifest{Name: "m", ImageSize: 10, Chunks: []domain.Chunk{
				{ID: "A", Start: 0, Size: 6}, {ID: "Z", Start: 4, Size: 6},
			}},
			opts:    domain.PlanOptions{LegacySentinel: true},
			wantErr: domain.ErrNoPathFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := newTestPlanService().Plan(context.Background(), tt.manifest, tt.opts)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, plan)
		})
	}
}

func TestPlanService_Plan_FullPathAcceptedByDefault(t *testing.T) {
	manifest := &domain.Manifest{Name: "m", ImageSize: 10, Chunks: []domain.Chunk{
		{ID: "A", Start: 0, Size: 6}, {ID: "Z", Start: 4, Size: 6},
	}}

	plan, err := newTestPlanService().Plan(context.Background(), manifest, domain.PlanOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "Z"}, plan.Path)
	assert.Equal(t, int64(12), plan.Cost)
}

func TestPlanService_Plan_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestPlanService().Plan(ctx, scenarioManifest(), domain.PlanOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlanService_Plan_WarnsAboveThreshold(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stderr)

	_, err := newTestPlanService().Plan(context.Background(), scenarioManifest(), domain.PlanOptions{WarnReachable: 2})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "[WARN] 3 chunks are reachable from A")

	buf.Reset()
	_, err = newTestPlanService().Plan(context.Background(), scenarioManifest(), domain.PlanOptions{WarnReachable: 3})
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "[WARN]")
}

func TestPlanService_Graph(t *testing.T) {
	graph, err := newTestPlanService().Graph(context.Background(), scenarioManifest())
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, graph.Nodes())
	assert.Equal(t, []string{"B", "C"}, graph.Neighbors("A"))
	assert.Equal(t, []string{"C"}, graph.Neighbors("B"))
	assert.Empty(t, graph.Neighbors("C"))
}

func TestPlanService_Graph_NoStart(t *testing.T) {
	manifest := &domain.Manifest{Name: "m", ImageSize: 10, Chunks: []domain.Chunk{{ID: "B", Start: 1, Size: 9}}}

	_, err := newTestPlanService().Graph(context.Background(), manifest)
	assert.ErrorIs(t, err, domain.ErrNoStartChunk)
}
