package bfs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuoZheng2002/bayesian-router/bfs"
	"github.com/LuoZheng2002/bayesian-router/core"
)

func TestBFSRejectsNilGraph(t *testing.T) {
	_, err := bfs.BFS(nil, "a")
	assert.ErrorIs(t, err, bfs.ErrGraphNil)
}

func TestBFSRejectsMissingStart(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddVertex("a"))
	_, err := bfs.BFS(g, "missing")
	assert.ErrorIs(t, err, bfs.ErrStartVertexNotFound)
}

func TestBFSFindsDepthsAlongAChain(t *testing.T) {
	g := core.NewGraph()
	_, err := g.AddEdge("a", "b", 0)
	require.NoError(t, err)
	_, err = g.AddEdge("b", "c", 0)
	require.NoError(t, err)

	result, err := bfs.BFS(g, "a")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Depth["a"])
	assert.Equal(t, 1, result.Depth["b"])
	assert.Equal(t, 2, result.Depth["c"])
	assert.Equal(t, "b", result.Parent["c"])
}

func TestBFSDoesNotReachADisconnectedVertex(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddVertex("a"))
	require.NoError(t, g.AddVertex("island"))

	result, err := bfs.BFS(g, "a")
	require.NoError(t, err)
	_, reached := result.Depth["island"]
	assert.False(t, reached)
}

func TestBFSAcceptsAWeightedGraph(t *testing.T) {
	g := core.NewGraph(core.WithWeighted())
	_, err := g.AddEdge("a", "b", 1)
	require.NoError(t, err)

	result, err := bfs.BFS(g, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Depth["b"])
}
