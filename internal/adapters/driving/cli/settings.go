package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change planner, output and watch settings.

Settings are stored in config.toml under the config directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change a single setting",
	Long: `Change a single setting.

Keys:
  planner.legacy_sentinel  true|false  never accept a path using every chunk
  planner.warn_reachable   N           warn when more chunks are reachable
  output.order             sorted|path order of printed chunk ids
  watch.min_interval_ms    N           minimum time between re-plans`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Planner]")
	cmd.Printf("  Legacy sentinel: %s\n", yesNo(settings.Planner.LegacySentinel))
	cmd.Printf("  Warn above: %d reachable chunks\n", settings.Planner.WarnReachable)
	cmd.Println()

	cmd.Println("[Output]")
	cmd.Printf("  Order: %s\n", settings.Output.Order.Description())
	cmd.Println()

	cmd.Println("[Watch]")
	cmd.Printf("  Min interval: %s\n", settings.Watch.MinInterval)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := strings.TrimSpace(args[0]), strings.TrimSpace(args[1])
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
