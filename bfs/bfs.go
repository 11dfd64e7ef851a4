package bfs

import (
	"errors"
	"fmt"

	"github.com/LuoZheng2002/bayesian-router/core"
)

// ErrGraphNil is returned if a nil graph pointer is passed to BFS.
var ErrGraphNil = errors.New("bfs: graph is nil")

// ErrStartVertexNotFound is returned when the start ID is absent from g.
var ErrStartVertexNotFound = errors.New("bfs: start vertex not found")

// BFSResult holds the hop-count distance from the start vertex to every
// vertex BFS reached, and the predecessor each was first discovered from.
type BFSResult struct {
	Depth  map[string]int
	Parent map[string]string
}

// BFS explores g breadth-first from startID and returns the distances it
// found. A vertex absent from Depth was never reached.
func BFS(g *core.Graph, startID string) (*BFSResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if !g.HasVertex(startID) {
		return nil, ErrStartVertexNotFound
	}

	res := &BFSResult{
		Depth:  map[string]int{startID: 0},
		Parent: map[string]string{},
	}
	queue := []string{startID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		neighbors, err := g.NeighborIDs(id)
		if err != nil {
			return nil, fmt.Errorf("bfs: %w", err)
		}
		for _, n := range neighbors {
			if _, seen := res.Depth[n]; seen {
				continue
			}
			res.Depth[n] = res.Depth[id] + 1
			res.Parent[n] = id
			queue = append(queue, n)
		}
	}
	return res, nil
}
