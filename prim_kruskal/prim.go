package prim_kruskal

import (
	"container/heap"

	"github.com/LuoZheng2002/bayesian-router/core"
)

// Prim computes a minimum spanning tree of graph by growing outward from
// root, repeatedly extending the tree along the cheapest edge that
// reaches an unvisited vertex.
//
// Returns ErrInvalidGraph if graph is nil or unweighted, ErrEmptyRoot if
// root == "", core.ErrVertexNotFound if root isn't in graph, and
// ErrDisconnected if fewer than len(vertices)-1 edges can be reached.
func Prim(graph *core.Graph, root string) ([]core.Edge, int64, error) {
	if graph == nil || !graph.Weighted() {
		return nil, 0, ErrInvalidGraph
	}

	vertices := graph.Vertices()
	if len(vertices) == 0 {
		return nil, 0, ErrDisconnected
	}
	if len(vertices) == 1 {
		if vertices[0] != root {
			return nil, 0, core.ErrVertexNotFound
		}
		return []core.Edge{}, 0, nil
	}
	if root == "" {
		return nil, 0, ErrEmptyRoot
	}
	if !graph.HasVertex(root) {
		return nil, 0, core.ErrVertexNotFound
	}

	visited := make(map[string]bool, len(vertices))
	mst := make([]core.Edge, 0, len(vertices)-1)
	var totalWeight int64

	pq := &edgePQ{}
	push := func(id string) error {
		nbrs, err := graph.Neighbors(id)
		if err != nil {
			return err
		}
		for _, e := range nbrs {
			if !visited[e.To] {
				heap.Push(pq, e)
			}
		}
		return nil
	}

	visited[root] = true
	if err := push(root); err != nil {
		return nil, 0, err
	}

	for pq.Len() > 0 && len(mst) < len(vertices)-1 {
		e := heap.Pop(pq).(*core.Edge)
		if visited[e.To] {
			continue
		}
		visited[e.To] = true
		mst = append(mst, *e)
		totalWeight += e.Weight
		if err := push(e.To); err != nil {
			return nil, 0, err
		}
	}

	if len(mst) < len(vertices)-1 {
		return nil, 0, ErrDisconnected
	}
	return mst, totalWeight, nil
}

// edgePQ is a container/heap min-heap of *core.Edge ordered by Weight.
type edgePQ []*core.Edge

func (pq edgePQ) Len() int            { return len(pq) }
func (pq edgePQ) Less(i, j int) bool  { return pq[i].Weight < pq[j].Weight }
func (pq edgePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *edgePQ) Push(x interface{}) { *pq = append(*pq, x.(*core.Edge)) }
func (pq *edgePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	e := old[n-1]
	*pq = old[:n-1]
	return e
}
