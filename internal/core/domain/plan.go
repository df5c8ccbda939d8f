package domain

import (
	"sort"
	"time"
)

// PlanOptions tunes a single planning run.
type PlanOptions struct {
	// LegacySentinel never accepts a path whose cost equals the sum of all
	// chunk sizes, which is how the first implementation behaved.
	LegacySentinel bool

	// WarnReachable logs a warning when more chunks than this are reachable.
	// Zero disables the warning.
	WarnReachable int
}

// Plan is the cheapest chunk sequence covering the image end to end.
type Plan struct {
	// ID identifies the planning run.
	ID string

	// Manifest is the name of the manifest the plan was computed from.
	Manifest string

	// ImageSize is the size of the full image in bytes.
	ImageSize int64

	// Path lists the chunk ids from the start chunk to the end chunk.
	Path []string

	// Cost is the sum of the chunk sizes along Path.
	// Overlapping bytes are counted once per chunk.
	Cost int64

	// Reachable is the number of chunks reachable from the start chunk.
	Reachable int

	// Edges is the number of overlap edges among reachable chunks.
	Edges int

	// PathsExplored is the number of complete paths compared.
	PathsExplored int

	// CreatedAt is when the plan was computed.
	CreatedAt time.Time
}

// SortedIDs returns the chunk ids of the plan in ascending lexicographic order.
func (p *Plan) SortedIDs() []string {
	ids := append([]string(nil), p.Path...)
	sort.Strings(ids)
	return ids
}

// Overhead returns the number of bytes downloaded beyond the image size.
func (p *Plan) Overhead() int64 {
	return p.Cost - p.ImageSize
}
