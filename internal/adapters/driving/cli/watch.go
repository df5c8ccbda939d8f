package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chunkroute/internal/core/domain"
)

var (
	watchPathOrder      bool
	watchLegacySentinel bool
)

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Re-plan a manifest file every time it changes",
	Long: `Plans FILE once, then again whenever it is written, until interrupted.
Bursts of writes are coalesced; see the watch.min_interval_ms setting.

Planning errors are reported and watching continues.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchPathOrder, "path-order", false, "print ids in path order instead of sorted")
	watchCmd.Flags().BoolVar(&watchLegacySentinel, "legacy-sentinel", false,
		"never accept a path that uses every chunk")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchService == nil || settingsService == nil {
		return errors.New("watch service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	opts := settings.PlanOptions()
	opts.LegacySentinel = opts.LegacySentinel || watchLegacySentinel

	order := settings.Output.Order
	if watchPathOrder {
		order = domain.OutputOrderPath
	}

	out := cmd.OutOrStdout()
	st := stylesFor(out)
	handle := func(plan *domain.Plan, err error) {
		stamp := st.Muted.Render(time.Now().Format("15:04:05"))
		if err != nil {
			fmt.Fprintf(out, "%s %s %v\n", stamp, st.Warning.Render("error:"), err)
			return
		}
		fmt.Fprintf(out, "%s %s\n", stamp, st.Title.Render(fmt.Sprintf("%d chunks, %d bytes", len(plan.Path), plan.Cost)))
		outputPlanIDs(cmd, plan, order)
	}

	return watchService.Watch(cmd.Context(), args[0], opts, handle)
}
