package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/chunkroute/internal/core/domain"
)

// ManifestInput selects the manifest a tool works on.
type ManifestInput struct {
	Manifest string `json:"manifest,omitempty" jsonschema:"inline manifest: image size on the first line, then id<TAB>start<TAB>size lines"`
	Stored   string `json:"stored,omitempty" jsonschema:"name of a manifest imported with chunkroute manifest import"`
}

// PlanInput is the input schema for the plan_chunks tool.
type PlanInput struct {
	Manifest       string `json:"manifest,omitempty" jsonschema:"inline manifest: image size on the first line, then id<TAB>start<TAB>size lines"`
	Stored         string `json:"stored,omitempty" jsonschema:"name of a manifest imported with chunkroute manifest import"`
	LegacySentinel bool   `json:"legacy_sentinel,omitempty" jsonschema:"never accept a path that uses every chunk"`
}

// PlanOutput is the output schema for the plan_chunks tool.
type PlanOutput struct {
	IDs           []string `json:"ids" jsonschema:"chunk ids to download, sorted"`
	Path          []string `json:"path" jsonschema:"chunk ids in the order they cover the image"`
	Cost          int64    `json:"cost"`
	ImageSize     int64    `json:"image_size"`
	Overhead      int64    `json:"overhead"`
	Reachable     int      `json:"reachable"`
	Edges         int      `json:"edges"`
	PathsExplored int      `json:"paths_explored"`
}

// GraphOutput is the output schema for the chunk_graph tool.
type GraphOutput struct {
	Nodes []GraphNode `json:"nodes"`
	Edges int         `json:"edges"`
}

// GraphNode is one reachable chunk and its overlap successors.
type GraphNode struct {
	ID        string   `json:"id"`
	Neighbors []string `json:"neighbors"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "plan_chunks",
		Description: "Find the cheapest set of overlapping chunks that rebuilds an image " +
			"from its first byte to its last",
	}, s.handlePlan)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "chunk_graph",
		Description: "List the chunks reachable from the start chunk and which chunks each one can be followed by",
	}, s.handleGraph)
}

// handlePlan handles the plan_chunks tool invocation.
func (s *Server) handlePlan(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PlanInput,
) (*mcp.CallToolResult, PlanOutput, error) {
	manifest, err := s.loadManifest(ctx, ManifestInput{Manifest: input.Manifest, Stored: input.Stored})
	if err != nil {
		return nil, PlanOutput{}, err
	}

	opts := domain.DefaultAppSettings().PlanOptions()
	if s.ports.Settings != nil {
		if settings, err := s.ports.Settings.Get(); err == nil {
			opts = settings.PlanOptions()
		}
	}
	opts.LegacySentinel = opts.LegacySentinel || input.LegacySentinel

	plan, err := s.ports.Plan.Plan(ctx, manifest, opts)
	if err != nil {
		return nil, PlanOutput{}, err
	}

	return nil, PlanOutput{
		IDs:           plan.SortedIDs(),
		Path:          plan.Path,
		Cost:          plan.Cost,
		ImageSize:     plan.ImageSize,
		Overhead:      plan.Overhead(),
		Reachable:     plan.Reachable,
		Edges:         plan.Edges,
		PathsExplored: plan.PathsExplored,
	}, nil
}

// handleGraph handles the chunk_graph tool invocation.
func (s *Server) handleGraph(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ManifestInput,
) (*mcp.CallToolResult, GraphOutput, error) {
	manifest, err := s.loadManifest(ctx, input)
	if err != nil {
		return nil, GraphOutput{}, err
	}

	graph, err := s.ports.Plan.Graph(ctx, manifest)
	if err != nil {
		return nil, GraphOutput{}, err
	}

	output := GraphOutput{
		Nodes: make([]GraphNode, 0, graph.Len()),
		Edges: graph.EdgeCount(),
	}
	for _, id := range graph.Nodes() {
		neighbors := graph.Neighbors(id)
		if neighbors == nil {
			neighbors = []string{}
		}
		output.Nodes = append(output.Nodes, GraphNode{ID: id, Neighbors: neighbors})
	}
	return nil, output, nil
}

func (s *Server) loadManifest(ctx context.Context, input ManifestInput) (*domain.Manifest, error) {
	inline := strings.TrimSpace(input.Manifest) != ""
	stored := strings.TrimSpace(input.Stored) != ""
	if inline == stored {
		return nil, ErrManifestSource
	}

	if stored {
		return s.ports.Manifest.Get(ctx, strings.TrimSpace(input.Stored))
	}
	manifest, err := s.ports.Manifest.Parse(ctx, "inline", strings.NewReader(input.Manifest))
	if err != nil {
		return nil, fmt.Errorf("reading inline manifest: %w", err)
	}
	return manifest, nil
}
