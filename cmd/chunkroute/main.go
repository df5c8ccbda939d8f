// Command chunkroute plans the cheapest set of overlapping chunks that
// rebuilds an image end to end.
package main

import (
	"os"

	"github.com/custodia-labs/chunkroute/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
