package planner

import (
	"github.com/custodia-labs/chunkroute/internal/core/domain"
)

// BuildGraph discovers every chunk reachable from startID and the overlap
// edges between them. An edge u -> v is added when u's last byte falls
// strictly inside v and v extends past it.
//
// Each discovered chunk scans the whole catalog once, in load order.
// Chunks unreachable from startID are left out of the graph.
func BuildGraph(catalog *domain.Catalog, startID string) (*domain.OverlapGraph, error) {
	graph := domain.NewOverlapGraph()
	if catalog.Len() == 0 {
		return graph, nil
	}

	if _, err := catalog.Lookup(startID); err != nil {
		return nil, err
	}

	chunks := catalog.Chunks()
	graph.AddNode(startID)
	queue := []string{startID}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		from, err := catalog.Lookup(id)
		if err != nil {
			return nil, err
		}

		for _, to := range chunks {
			if !from.Overlaps(to) {
				continue
			}
			graph.AddEdge(id, to.ID)
			if !graph.Has(to.ID) {
				graph.AddNode(to.ID)
				queue = append(queue, to.ID)
			}
		}
	}

	return graph, nil
}
