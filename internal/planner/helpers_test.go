package planner

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chunkroute/internal/core/domain"
)

func newCatalog(t *testing.T, imageSize int64, chunks ...domain.Chunk) *domain.Catalog {
	t.Helper()
	catalog, err := domain.NewCatalog(imageSize)
	require.NoError(t, err)
	for _, ch := range chunks {
		require.NoError(t, catalog.AddChunk(ch.ID, ch.Start, ch.Size))
	}
	return catalog
}

// scenarioCatalog is the three chunk example: A=[0,4], B=[3,7], C=[2,11].
func scenarioCatalog(t *testing.T) *domain.Catalog {
	return newCatalog(t, 12,
		domain.Chunk{ID: "A", Start: 0, Size: 5},
		domain.Chunk{ID: "B", Start: 3, Size: 5},
		domain.Chunk{ID: "C", Start: 2, Size: 10},
	)
}

// randomCatalog builds a catalog with a guaranteed start and end chunk.
func randomCatalog(t *testing.T, rng *rand.Rand, n int, imageSize int64) *domain.Catalog {
	t.Helper()
	chunks := []domain.Chunk{
		{ID: "S", Start: 0, Size: 1 + rng.Int63n(imageSize/3)},
	}
	endSize := 1 + rng.Int63n(imageSize/3)
	chunks = append(chunks, domain.Chunk{ID: "E", Start: imageSize - endSize, Size: endSize})
	for i := 0; i < n; i++ {
		start := 1 + rng.Int63n(imageSize-2)
		size := 1 + rng.Int63n(imageSize-start-1)
		chunks = append(chunks, domain.Chunk{ID: string(rune('a' + i)), Start: start, Size: size})
	}
	rng.Shuffle(len(chunks), func(i, j int) { chunks[i], chunks[j] = chunks[j], chunks[i] })
	return newCatalog(t, imageSize, chunks...)
}

type enumeratedPath struct {
	ids  []string
	cost int64
}

// allSimplePaths enumerates every simple src -> dest path independently of Search.
func allSimplePaths(t *testing.T, graph *domain.OverlapGraph, catalog *domain.Catalog, src, dest string) []enumeratedPath {
	t.Helper()
	var result []enumeratedPath
	var walk func(id string, path []string, seen map[string]bool)
	walk = func(id string, path []string, seen map[string]bool) {
		path = append(path, id)
		if id == dest {
			var cost int64
			for _, p := range path {
				ch, err := catalog.Lookup(p)
				require.NoError(t, err)
				cost += ch.Size
			}
			result = append(result, enumeratedPath{ids: append([]string(nil), path...), cost: cost})
			return
		}
		seen[id] = true
		for _, next := range graph.Neighbors(id) {
			if !seen[next] {
				walk(next, path, seen)
			}
		}
		seen[id] = false
	}
	walk(src, nil, make(map[string]bool))
	return result
}
