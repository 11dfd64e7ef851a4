package core

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// ErrVertexNotFound is returned whenever an operation names a vertex ID
// that was never added to the graph.
var ErrVertexNotFound = errors.New("core: vertex not found")

// ErrEmptyVertexID is returned by AddVertex for the empty string.
var ErrEmptyVertexID = errors.New("core: vertex id must not be empty")

// Vertex is one graph node. Metadata is free-form per-vertex storage;
// gridgraph uses it to stash a cell's (x, y, value) after conversion.
type Vertex struct {
	ID       string
	Metadata map[string]interface{}
}

// Edge is one undirected link between From and To. Weight is meaningful
// only when the owning Graph was built with WithWeighted; prim_kruskal
// refuses to run MST algorithms on a graph that wasn't.
type Edge struct {
	ID     string
	From   string
	To     string
	Weight int64
}

// Graph is an adjacency-list undirected graph keyed by string vertex ID.
type Graph struct {
	weighted bool
	vertices map[string]*Vertex
	adj      map[string]map[string]*Edge
	edges    []*Edge
}

// GraphOption configures a Graph at construction time.
type GraphOption func(*Graph)

// WithWeighted marks a Graph's edges as carrying meaningful Weight
// values. Without it, AddEdge still records whatever weight is passed,
// but Kruskal and Prim treat the graph as ineligible for MST.
func WithWeighted() GraphOption {
	return func(g *Graph) { g.weighted = true }
}

// NewGraph constructs an empty Graph, applying any GraphOptions.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		vertices: make(map[string]*Vertex),
		adj:      make(map[string]map[string]*Edge),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Weighted reports whether g was constructed with WithWeighted.
func (g *Graph) Weighted() bool {
	return g.weighted
}

// AddVertex registers id if it is not already present. Adding an
// existing ID is a no-op rather than an error: proba rebuilds its
// collision graph from scratch every iteration and never checks whether
// a candidate's vertex already exists before adding it.
func (g *Graph) AddVertex(id string) error {
	if id == "" {
		return ErrEmptyVertexID
	}
	if _, ok := g.vertices[id]; ok {
		return nil
	}
	g.vertices[id] = &Vertex{ID: id, Metadata: make(map[string]interface{})}
	g.adj[id] = make(map[string]*Edge)
	return nil
}

// HasVertex reports whether id was added to the graph.
func (g *Graph) HasVertex(id string) bool {
	_, ok := g.vertices[id]
	return ok
}

// InternalVertices exposes the vertex map directly so a caller
// (gridgraph) can populate per-vertex Metadata after a bulk AddVertex
// pass without paying for a second lookup per cell.
func (g *Graph) InternalVertices() map[string]*Vertex {
	return g.vertices
}

// Vertices returns every vertex ID in sorted order, giving Kruskal and
// Prim a deterministic starting point regardless of map iteration order.
func (g *Graph) Vertices() []string {
	ids := make([]string, 0, len(g.vertices))
	for id := range g.vertices {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// AddEdge links from and to with the given weight, adding either
// endpoint that doesn't already exist. The edge is undirected: it is
// recorded in both adjacency maps, so NeighborIDs(from) reports to and
// NeighborIDs(to) reports from. A second AddEdge between the same pair
// overwrites the first instead of creating a parallel edge; nothing in
// this domain needs multigraph semantics.
func (g *Graph) AddEdge(from, to string, weight int64) (string, error) {
	if err := g.AddVertex(from); err != nil {
		return "", err
	}
	if err := g.AddVertex(to); err != nil {
		return "", err
	}
	if e, ok := g.adj[from][to]; ok {
		e.Weight = weight
		return e.ID, nil
	}
	id := "e" + strconv.Itoa(len(g.edges)+1)
	e := &Edge{ID: id, From: from, To: to, Weight: weight}
	g.edges = append(g.edges, e)
	g.adj[from][to] = e
	g.adj[to][from] = e
	return id, nil
}

// NeighborIDs returns the IDs adjacent to id, in no particular order.
func (g *Graph) NeighborIDs(id string) ([]string, error) {
	nbrs, ok := g.adj[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrVertexNotFound, id)
	}
	ids := make([]string, 0, len(nbrs))
	for n := range nbrs {
		ids = append(ids, n)
	}
	return ids, nil
}

// Neighbors returns the edges incident to id, each oriented so that To
// names id's neighbor regardless of which side of the original AddEdge
// call added it — the orientation Prim's traversal expects when it pops
// an edge and grows the tree towards Edge.To.
func (g *Graph) Neighbors(id string) ([]*Edge, error) {
	nbrs, ok := g.adj[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrVertexNotFound, id)
	}
	out := make([]*Edge, 0, len(nbrs))
	for other, e := range nbrs {
		if e.From == id {
			out = append(out, e)
		} else {
			out = append(out, &Edge{ID: e.ID, From: id, To: other, Weight: e.Weight})
		}
	}
	return out, nil
}

// Edges returns every edge exactly once, in the order AddEdge added them
// — the order Kruskal's stable sort uses to break ties between
// equal-weight edges.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, len(g.edges))
	copy(out, g.edges)
	return out
}
