package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chunkroute/internal/core/domain"
)

func TestGraphCmd_Text(t *testing.T) {
	o := setupTestServices(t)

	require.NoError(t, run("graph", writeManifest(t, scenarioTSV)))

	assert.Equal(t, "A -> B, C\nB -> C\nC ->\n", o.out.String())
}

func TestGraphCmd_OnlyReachableChunks(t *testing.T) {
	o := setupTestServices(t)
	// D lies entirely inside C and never extends past anything.
	path := writeManifest(t, scenarioTSV+"D\t6\t2\n")

	require.NoError(t, run("graph", path))

	assert.NotContains(t, o.out.String(), "D")
}

func TestGraphCmd_JSON(t *testing.T) {
	o := setupTestServices(t)

	require.NoError(t, run("graph", "--json", writeManifest(t, scenarioTSV)))

	var nodes []graphNode
	require.NoError(t, json.Unmarshal(o.out.Bytes(), &nodes))
	require.Len(t, nodes, 3)
	assert.Equal(t, graphNode{ID: "A", Neighbors: []string{"B", "C"}}, nodes[0])
	assert.Equal(t, graphNode{ID: "C", Neighbors: []string{}}, nodes[2])
}

func TestGraphCmd_NoStartChunk(t *testing.T) {
	setupTestServices(t)

	err := run("graph", writeManifest(t, "12\nA\t1\t11\n"))

	assert.ErrorIs(t, err, domain.ErrNoStartChunk)
}
