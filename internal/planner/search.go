package planner

import (
	"fmt"

	"github.com/custodia-labs/chunkroute/internal/core/domain"
)

// Options tunes Search.
type Options struct {
	// LegacySentinel never accepts a path whose cost equals the sum of all
	// chunk sizes, reproducing the first implementation. By default such a
	// path is accepted when nothing cheaper has been seen.
	LegacySentinel bool
}

// Result is the cheapest path found by Search.
type Result struct {
	// Path lists chunk ids from src to dest.
	Path []string

	// Cost is the sum of chunk sizes along Path.
	Cost int64

	// Explored is the number of complete src -> dest paths compared.
	Explored int
}

// searcher holds the state of one Search call.
type searcher struct {
	graph   *domain.OverlapGraph
	catalog *domain.Catalog
	dest    string
	legacy  bool

	onPath   map[string]bool
	path     []string
	best     []string
	minCost  int64
	found    bool
	explored int
}

// Search enumerates every simple path from src to dest and returns the one
// with the smallest summed chunk size. Among equal-cost paths the first one
// discovered wins; discovery follows neighbor order in the graph.
//
// A chunk never appears twice on one path, so the search terminates on
// cyclic graphs. Returns domain.ErrNoPathFound if dest is unreachable.
func Search(graph *domain.OverlapGraph, catalog *domain.Catalog, src, dest string, opts Options) (Result, error) {
	first, err := catalog.Lookup(src)
	if err != nil {
		return Result{}, err
	}
	if _, err := catalog.Lookup(dest); err != nil {
		return Result{}, err
	}

	s := &searcher{
		graph:   graph,
		catalog: catalog,
		dest:    dest,
		legacy:  opts.LegacySentinel,
		onPath:  make(map[string]bool),
		minCost: catalog.TotalSize(),
	}

	// A single chunk covering the whole image is its own path.
	if src == dest {
		s.best = []string{src}
		s.minCost = first.Size
		s.found = true
	}

	if err := s.visit(src, 0); err != nil {
		return Result{}, err
	}

	if !s.found {
		return Result{Explored: s.explored}, fmt.Errorf("%w: %s is unreachable from %s", domain.ErrNoPathFound, dest, src)
	}

	return Result{
		Path:     s.best,
		Cost:     s.minCost,
		Explored: s.explored,
	}, nil
}

func (s *searcher) visit(id string, cost int64) error {
	chunk, err := s.catalog.Lookup(id)
	if err != nil {
		return fmt.Errorf("graph references chunk outside the catalog: %w", err)
	}

	s.onPath[id] = true
	s.path = append(s.path, id)
	cost = domain.AddSizes(cost, chunk.Size)
	defer func() {
		s.path = s.path[:len(s.path)-1]
		s.onPath[id] = false
	}()

	if id == s.dest {
		s.explored++
		s.consider(cost)
		return nil
	}

	for _, next := range s.graph.Neighbors(id) {
		if s.onPath[next] {
			continue
		}
		if err := s.visit(next, cost); err != nil {
			return err
		}
	}
	return nil
}

// consider records the current path if it is strictly cheaper than the best
// so far. A simple path never costs more than the sentinel, so outside legacy
// mode the first complete path is always recorded.
func (s *searcher) consider(cost int64) {
	better := cost < s.minCost
	if !better && !s.found && !s.legacy {
		better = cost == s.minCost
	}
	if !better {
		return
	}
	s.minCost = cost
	s.best = append([]string(nil), s.path...)
	s.found = true
}
