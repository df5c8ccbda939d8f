package domain

// Edge is a directed overlap edge between two chunks.
type Edge struct {
	From string
	To   string
}

// OverlapGraph is the adjacency structure over chunks reachable from the
// start chunk. Neighbor lists keep the order in which edges were added,
// which is what makes tie-breaking between equal-cost paths reproducible.
//
// The graph is filled by the planner and not modified afterwards.
type OverlapGraph struct {
	adjacency  map[string][]string
	discovered map[string]bool
	nodes      []string
	edges      int
}

// NewOverlapGraph creates an empty graph.
func NewOverlapGraph() *OverlapGraph {
	return &OverlapGraph{
		adjacency:  make(map[string][]string),
		discovered: make(map[string]bool),
	}
}

// AddNode marks id as discovered. Adding a node twice is a no-op.
func (g *OverlapGraph) AddNode(id string) {
	if g.discovered[id] {
		return
	}
	g.discovered[id] = true
	g.nodes = append(g.nodes, id)
}

// AddEdge appends to to the neighbor list of from.
func (g *OverlapGraph) AddEdge(from, to string) {
	g.adjacency[from] = append(g.adjacency[from], to)
	g.edges++
}

// Has reports whether id was discovered.
func (g *OverlapGraph) Has(id string) bool {
	return g.discovered[id]
}

// Neighbors returns the outgoing neighbors of id in insertion order.
// Chunks without outgoing edges, or outside the graph, have none.
func (g *OverlapGraph) Neighbors(id string) []string {
	return g.adjacency[id]
}

// Nodes returns the discovered chunk ids in discovery order.
func (g *OverlapGraph) Nodes() []string {
	return append([]string(nil), g.nodes...)
}

// Len returns the number of discovered chunks.
func (g *OverlapGraph) Len() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *OverlapGraph) EdgeCount() int {
	return g.edges
}

// Edges returns every edge, grouped by source in discovery order.
func (g *OverlapGraph) Edges() []Edge {
	edges := make([]Edge, 0, g.edges)
	for _, from := range g.nodes {
		for _, to := range g.adjacency[from] {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	return edges
}
