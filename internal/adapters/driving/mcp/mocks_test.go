package mcp

import (
	"context"
	"io"

	"github.com/custodia-labs/chunkroute/internal/adapters/driven/manifest/tsv"
	"github.com/custodia-labs/chunkroute/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/chunkroute/internal/core/domain"
	"github.com/custodia-labs/chunkroute/internal/core/services"
)

const scenarioTSV = "12\nA\t0\t5\nB\t3\t5\nC\t2\t10\n"

// mockPlanService is a mock implementation of driving.PlanService.
type mockPlanService struct {
	plan     *domain.Plan
	graph    *domain.OverlapGraph
	err      error
	lastOpts domain.PlanOptions
}

func (m *mockPlanService) Plan(_ context.Context, _ *domain.Manifest, opts domain.PlanOptions) (*domain.Plan, error) {
	m.lastOpts = opts
	return m.plan, m.err
}

func (m *mockPlanService) Graph(_ context.Context, _ *domain.Manifest) (*domain.OverlapGraph, error) {
	return m.graph, m.err
}

// mockManifestService is a mock implementation of driving.ManifestService.
type mockManifestService struct {
	manifest *domain.Manifest
	infos    []domain.ManifestInfo
	err      error
}

func (m *mockManifestService) Parse(_ context.Context, _ string, _ io.Reader) (*domain.Manifest, error) {
	return m.manifest, m.err
}

func (m *mockManifestService) Open(_ context.Context, _ string) (*domain.Manifest, error) {
	return m.manifest, m.err
}

func (m *mockManifestService) Import(
	_ context.Context, _ string, _ *domain.Manifest, _ bool,
) (*domain.Manifest, error) {
	return m.manifest, m.err
}

func (m *mockManifestService) Get(_ context.Context, _ string) (*domain.Manifest, error) {
	return m.manifest, m.err
}

func (m *mockManifestService) List(_ context.Context) ([]domain.ManifestInfo, error) {
	return m.infos, m.err
}

func (m *mockManifestService) Remove(_ context.Context, _ string) error {
	return m.err
}

func (m *mockManifestService) Export(_ context.Context, _ string, _ io.Writer) error {
	return m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.AppSettings
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error { return nil }

func (m *mockSettingsService) Set(_, _ string) error { return nil }

func (m *mockSettingsService) Keys() []string { return nil }

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// newRealPorts wires the real services over in-memory storage.
func newRealPorts() (*Ports, *services.ManifestService) {
	manifests := services.NewManifestService(tsv.New(), memory.NewManifestStore())
	return &Ports{
		Plan:     services.NewPlanService(),
		Manifest: manifests,
	}, manifests
}
