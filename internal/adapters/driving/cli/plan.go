package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chunkroute/internal/core/domain"
)

var (
	planStored         string
	planPathOrder      bool
	planJSON           bool
	planLegacySentinel bool
)

var planCmd = &cobra.Command{
	Use:   "plan [manifest|-]",
	Short: "Print the cheapest set of chunks covering the image",
	Long: `Reads a manifest and prints the ids of the chunks to download, one per
line, sorted. The chosen chunks cover the image from its first byte to its
last with the smallest total size.

The manifest defaults to problem.tsv. Use - to read standard input, or
--stored to plan a manifest kept with "chunkroute manifest import".

The search is exhaustive. Manifests with more than a few dozen densely
overlapping chunks can take a very long time.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planStored, "stored", "", "plan a stored manifest by name")
	planCmd.Flags().BoolVar(&planPathOrder, "path-order", false, "print ids in path order instead of sorted")
	planCmd.Flags().BoolVar(&planJSON, "json", false, "output the plan as JSON")
	planCmd.Flags().BoolVar(&planLegacySentinel, "legacy-sentinel", false,
		"never accept a path that uses every chunk")
	rootCmd.AddCommand(planCmd)
}

// planOutput is the JSON form of a plan.
type planOutput struct {
	ID            string    `json:"id"`
	Manifest      string    `json:"manifest"`
	IDs           []string  `json:"ids"`
	Path          []string  `json:"path"`
	Cost          int64     `json:"cost"`
	ImageSize     int64     `json:"image_size"`
	Overhead      int64     `json:"overhead"`
	Reachable     int       `json:"reachable"`
	Edges         int       `json:"edges"`
	PathsExplored int       `json:"paths_explored"`
	CreatedAt     time.Time `json:"created_at"`
}

func runPlan(cmd *cobra.Command, args []string) error {
	if planService == nil || settingsService == nil {
		return errors.New("plan service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	manifest, err := loadManifest(cmd, args, planStored)
	if err != nil {
		return err
	}

	opts := settings.PlanOptions()
	opts.LegacySentinel = opts.LegacySentinel || planLegacySentinel

	plan, err := planService.Plan(cmd.Context(), manifest, opts)
	if err != nil {
		return err
	}

	if planJSON {
		return outputPlanJSON(cmd, plan)
	}

	order := settings.Output.Order
	if planPathOrder {
		order = domain.OutputOrderPath
	}
	outputPlanIDs(cmd, plan, order)
	return nil
}

func outputPlanIDs(cmd *cobra.Command, plan *domain.Plan, order domain.OutputOrder) {
	ids := plan.SortedIDs()
	if order == domain.OutputOrderPath {
		ids = plan.Path
	}

	out := cmd.OutOrStdout()
	for _, id := range ids {
		fmt.Fprintln(out, id)
	}

	if isTerminal(out) {
		fmt.Fprintln(cmd.ErrOrStderr(), planSummary(plan, stylesFor(cmd.ErrOrStderr())))
	}
}

func outputPlanJSON(cmd *cobra.Command, plan *domain.Plan) error {
	data, err := json.MarshalIndent(planOutput{
		ID:            plan.ID,
		Manifest:      plan.Manifest,
		IDs:           plan.SortedIDs(),
		Path:          plan.Path,
		Cost:          plan.Cost,
		ImageSize:     plan.ImageSize,
		Overhead:      plan.Overhead(),
		Reachable:     plan.Reachable,
		Edges:         plan.Edges,
		PathsExplored: plan.PathsExplored,
		CreatedAt:     plan.CreatedAt,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// planSummary renders the one-line summary shown under interactive output.
func planSummary(plan *domain.Plan, st styles) string {
	return fmt.Sprintf("%s %s %s",
		st.Success.Render(fmt.Sprintf("%d chunks", len(plan.Path))),
		st.Title.Render(fmt.Sprintf("%d bytes", plan.Cost)),
		st.Muted.Render(fmt.Sprintf("(%d over image size %d, %d of %d reachable chunks, %d paths compared)",
			plan.Overhead(), plan.ImageSize, len(plan.Path), plan.Reachable, plan.PathsExplored)),
	)
}
