// Package domain defines the core business entities for chunkroute.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Chunk: A contiguous byte range of the transmitted image
//   - Catalog: The registry of chunks loaded from one manifest
//   - OverlapGraph: Directed overlap edges between reachable chunks
//   - Manifest: The stored form of a chunk listing
//   - Plan: The cheapest chunk sequence covering the image
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
