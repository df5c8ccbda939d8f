// Package planner implements the chunk covering algorithm.
//
// Planning runs in two steps over a loaded catalog:
//
//   - BuildGraph discovers, breadth first from the start chunk, every chunk
//     reachable through the overlap rule and records the directed edges.
//   - Search enumerates every simple path from the start chunk to the end
//     chunk depth first and keeps the one with the smallest summed size.
//
// Both steps iterate chunks in catalog load order, so the same manifest
// always yields the same plan, including which of several equal-cost paths
// is kept.
//
// # Complexity
//
// Building the graph is O(V²) in the number of reachable chunks. The search
// is exhaustive and therefore exponential: catalogs with more than a few
// dozen reachable, densely overlapping chunks are impractical. The path cost
// counts overlapped bytes once per chunk, which is not an edge-weighted
// metric, so no shortest-path shortcut is taken.
package planner
