package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var manifestReplace bool

var manifestCmd = &cobra.Command{
	Use:     "manifest",
	Aliases: []string{"manifests"},
	Short:   "Manage stored manifests",
	Long: `Store manifests under a name so they can be planned later with
"chunkroute plan --stored NAME".`,
}

var manifestImportCmd = &cobra.Command{
	Use:   "import NAME FILE",
	Short: "Validate a manifest file and store it under NAME",
	Long: `Parses FILE, checks that it has exactly one start chunk and one end
chunk, and stores it under NAME. Use - as FILE to read standard input.`,
	Args: cobra.ExactArgs(2),
	RunE: runManifestImport,
}

var manifestListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored manifests",
	Args:  cobra.NoArgs,
	RunE:  runManifestList,
}

var manifestShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print a stored manifest in TSV form",
	Args:  cobra.ExactArgs(1),
	RunE:  runManifestShow,
}

var manifestRemoveCmd = &cobra.Command{
	Use:     "remove NAME",
	Aliases: []string{"rm"},
	Short:   "Remove a stored manifest",
	Args:    cobra.ExactArgs(1),
	RunE:    runManifestRemove,
}

func init() {
	manifestImportCmd.Flags().BoolVar(&manifestReplace, "replace", false, "overwrite an existing manifest with the same name")
	manifestCmd.AddCommand(manifestImportCmd)
	manifestCmd.AddCommand(manifestListCmd)
	manifestCmd.AddCommand(manifestShowCmd)
	manifestCmd.AddCommand(manifestRemoveCmd)
	rootCmd.AddCommand(manifestCmd)
}

func runManifestImport(cmd *cobra.Command, args []string) error {
	if manifestService == nil {
		return errors.New("manifest service not configured")
	}

	parsed, err := loadManifest(cmd, args[1:], "")
	if err != nil {
		return err
	}

	stored, err := manifestService.Import(cmd.Context(), args[0], parsed, manifestReplace)
	if err != nil {
		return fmt.Errorf("failed to import manifest: %w", err)
	}

	cmd.Printf("Imported %s: %d chunks, image size %d bytes\n",
		stored.Name, len(stored.Chunks), stored.ImageSize)
	cmd.Printf("  ID: %s\n", stored.ID)
	return nil
}

func runManifestList(cmd *cobra.Command, _ []string) error {
	if manifestService == nil {
		return errors.New("manifest service not configured")
	}

	infos, err := manifestService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list manifests: %w", err)
	}

	if len(infos) == 0 {
		cmd.Println("No manifests stored.")
		cmd.Println("Import one with: chunkroute manifest import NAME FILE")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCHUNKS\tIMAGE SIZE\tCREATED")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n",
			info.Name, info.ChunkCount, info.ImageSize, info.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func runManifestShow(cmd *cobra.Command, args []string) error {
	if manifestService == nil {
		return errors.New("manifest service not configured")
	}

	if err := manifestService.Export(cmd.Context(), args[0], cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("failed to show manifest: %w", err)
	}
	return nil
}

func runManifestRemove(cmd *cobra.Command, args []string) error {
	if manifestService == nil {
		return errors.New("manifest service not configured")
	}

	if err := manifestService.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove manifest: %w", err)
	}

	cmd.Printf("Removed manifest %s\n", args[0])
	return nil
}
