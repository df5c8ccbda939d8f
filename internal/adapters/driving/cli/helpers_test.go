package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chunkroute/internal/adapters/driven/manifest/tsv"
	"github.com/custodia-labs/chunkroute/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/chunkroute/internal/adapters/driven/watch"
	"github.com/custodia-labs/chunkroute/internal/core/services"
	"github.com/custodia-labs/chunkroute/internal/logger"
)

// scenarioTSV covers a 12 byte image. A→C (15 bytes) beats A→B→C (20 bytes).
const scenarioTSV = "12\nA\t0\t5\nB\t3\t5\nC\t2\t10\n"

// testOutput captures what a command writes.
type testOutput struct {
	out *bytes.Buffer
	err *bytes.Buffer
}

// setupTestServices injects services backed by in-memory stores and resets
// all command state when the test ends.
func setupTestServices(t *testing.T) *testOutput {
	t.Helper()

	origPlan, origManifest := planService, manifestService
	origSettings, origWatch := settingsService, watchService

	settingsService = services.NewSettingsService(memory.NewConfigStore())
	planService = services.NewPlanService()
	manifestService = services.NewManifestService(tsv.New(), memory.NewManifestStore())
	watchService = services.NewWatchService(watch.New(0), manifestService, planService)

	o := &testOutput{out: new(bytes.Buffer), err: new(bytes.Buffer)}
	rootCmd.SetOut(o.out)
	rootCmd.SetErr(o.err)
	rootCmd.SetIn(strings.NewReader(""))
	logger.SetOutput(o.err)

	t.Cleanup(func() {
		planService, manifestService = origPlan, origManifest
		settingsService, watchService = origSettings, origWatch

		verbose = false
		planStored, planPathOrder, planJSON, planLegacySentinel = "", false, false, false
		graphStored, graphJSON = "", false
		manifestReplace = false
		watchPathOrder, watchLegacySentinel = false, false
		versionShort = false

		for _, sub := range rootCmd.Commands() {
			sub.SetContext(nil)
		}
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	})

	return o
}

// run executes the root command with args.
func run(args ...string) error {
	return runContext(context.Background(), args...)
}

func runContext(ctx context.Context, args ...string) error {
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// writeManifest writes content to a file in a temporary directory.
func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "problem.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
