package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chunkroute/internal/core/domain"
)

// defaultManifest is read when no manifest argument is given.
const defaultManifest = "problem.tsv"

// loadManifest resolves the manifest a command works on: a stored manifest
// when stored is set, standard input for "-", otherwise a file path.
func loadManifest(cmd *cobra.Command, args []string, stored string) (*domain.Manifest, error) {
	if manifestService == nil {
		return nil, errors.New("manifest service not configured")
	}

	if stored != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("--stored cannot be combined with a manifest argument")
		}
		return manifestService.Get(cmd.Context(), stored)
	}

	path := defaultManifest
	if len(args) > 0 {
		path = args[0]
	}
	if path == "-" {
		return manifestService.Parse(cmd.Context(), "stdin", cmd.InOrStdin())
	}
	return manifestService.Open(cmd.Context(), path)
}
