package prim_kruskal

import (
	"sort"

	"github.com/LuoZheng2002/bayesian-router/core"
)

// Kruskal computes a minimum spanning tree of graph by sorting every
// edge ascending by weight and union-find-ing them in, skipping any
// edge whose endpoints are already joined.
//
// Returns ErrInvalidGraph if graph is nil or unweighted, ErrDisconnected
// if fewer than len(vertices)-1 edges can be added without a cycle.
func Kruskal(graph *core.Graph) ([]core.Edge, int64, error) {
	if graph == nil || !graph.Weighted() {
		return nil, 0, ErrInvalidGraph
	}

	vertices := graph.Vertices()
	if len(vertices) == 0 {
		return nil, 0, ErrDisconnected
	}
	if len(vertices) == 1 {
		return []core.Edge{}, 0, nil
	}

	edges := make([]*core.Edge, 0, len(vertices))
	for _, e := range graph.Edges() {
		if e.From != e.To {
			edges = append(edges, e)
		}
	}
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].Weight < edges[j].Weight })

	parent := make(map[string]string, len(vertices))
	rank := make(map[string]int, len(vertices))
	for _, v := range vertices {
		parent[v] = v
	}
	var find func(string) string
	find = func(u string) string {
		for parent[u] != u {
			parent[u] = parent[parent[u]]
			u = parent[u]
		}
		return u
	}
	union := func(u, v string) {
		ru, rv := find(u), find(v)
		if ru == rv {
			return
		}
		switch {
		case rank[ru] < rank[rv]:
			parent[ru] = rv
		case rank[ru] > rank[rv]:
			parent[rv] = ru
		default:
			parent[rv] = ru
			rank[ru]++
		}
	}

	var mst []core.Edge
	var totalWeight int64
	for _, e := range edges {
		if find(e.From) == find(e.To) {
			continue
		}
		union(e.From, e.To)
		mst = append(mst, *e)
		totalWeight += e.Weight
		if len(mst) == len(vertices)-1 {
			break
		}
	}
	if len(mst) < len(vertices)-1 {
		return nil, 0, ErrDisconnected
	}
	return mst, totalWeight, nil
}
