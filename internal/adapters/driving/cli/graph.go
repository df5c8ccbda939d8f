package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chunkroute/internal/core/domain"
)

var (
	graphStored string
	graphJSON   bool
)

var graphCmd = &cobra.Command{
	Use:   "graph [manifest|-]",
	Short: "Print the overlap graph reachable from the start chunk",
	Long: `Prints one line per chunk reachable from the start chunk, in discovery
order, listing the chunks that may follow it:

  A -> B, C
  B -> C
  C ->

A chunk may follow another when it starts inside it and ends after it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().StringVar(&graphStored, "stored", "", "use a stored manifest by name")
	graphCmd.Flags().BoolVar(&graphJSON, "json", false, "output the graph as JSON")
	rootCmd.AddCommand(graphCmd)
}

// graphNode is the JSON form of one adjacency entry.
type graphNode struct {
	ID        string   `json:"id"`
	Neighbors []string `json:"neighbors"`
}

func runGraph(cmd *cobra.Command, args []string) error {
	if planService == nil {
		return errors.New("plan service not configured")
	}

	manifest, err := loadManifest(cmd, args, graphStored)
	if err != nil {
		return err
	}

	graph, err := planService.Graph(cmd.Context(), manifest)
	if err != nil {
		return err
	}

	if graphJSON {
		return outputGraphJSON(cmd, graph)
	}
	outputGraphText(cmd, graph)
	return nil
}

func outputGraphText(cmd *cobra.Command, graph *domain.OverlapGraph) {
	out := cmd.OutOrStdout()
	st := stylesFor(out)

	for _, id := range graph.Nodes() {
		neighbors := graph.Neighbors(id)
		line := st.Node.Render(id) + " " + st.Muted.Render("->")
		if len(neighbors) > 0 {
			line += " " + strings.Join(neighbors, ", ")
		}
		fmt.Fprintln(out, line)
	}
}

func outputGraphJSON(cmd *cobra.Command, graph *domain.OverlapGraph) error {
	nodes := make([]graphNode, 0, graph.Len())
	for _, id := range graph.Nodes() {
		neighbors := graph.Neighbors(id)
		if neighbors == nil {
			neighbors = []string{}
		}
		nodes = append(nodes, graphNode{ID: id, Neighbors: neighbors})
	}

	data, err := json.MarshalIndent(nodes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal graph: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
