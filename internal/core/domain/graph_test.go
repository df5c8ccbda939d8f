package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlapGraph_Empty(t *testing.T) {
	g := NewOverlapGraph()

	assert.Equal(t, 0, g.Len())
	assert.Equal(t, 0, g.EdgeCount())
	assert.Empty(t, g.Nodes())
	assert.Empty(t, g.Edges())
	assert.Nil(t, g.Neighbors("A"))
	assert.False(t, g.Has("A"))
}

func TestOverlapGraph_NodesAndEdges(t *testing.T) {
	g := NewOverlapGraph()
	g.AddNode("A")
	g.AddEdge("A", "B")
	g.AddNode("B")
	g.AddEdge("A", "C")
	g.AddNode("C")
	g.AddEdge("B", "C")
	g.AddNode("A") // already discovered

	assert.Equal(t, []string{"A", "B", "C"}, g.Nodes())
	assert.Equal(t, 3, g.Len())
	assert.Equal(t, 3, g.EdgeCount())
	assert.Equal(t, []string{"B", "C"}, g.Neighbors("A"))
	assert.Equal(t, []string{"C"}, g.Neighbors("B"))
	assert.Nil(t, g.Neighbors("C"))
	assert.True(t, g.Has("C"))

	assert.Equal(t, []Edge{
		{From: "A", To: "B"},
		{From: "A", To: "C"},
		{From: "B", To: "C"},
	}, g.Edges())
}
