package prim_kruskal

import (
	"errors"

	"github.com/LuoZheng2002/bayesian-router/core"
)

// ErrInvalidGraph indicates that MST algorithms require a weighted graph.
var ErrInvalidGraph = errors.New("prim_kruskal: MST requires a weighted graph")

// ErrEmptyRoot indicates that no start vertex was specified for Prim.
var ErrEmptyRoot = errors.New("prim_kruskal: empty root vertex")

// ErrDisconnected indicates the graph isn't fully connected, so no
// spanning tree covering every vertex exists.
var ErrDisconnected = errors.New("prim_kruskal: graph is disconnected")

// MethodKruskal and MethodPrim select which algorithm Compute runs.
const (
	MethodKruskal = "kruskal"
	MethodPrim    = "prim"
)

// MSTOptions selects an MST algorithm and, for Prim, its starting vertex.
type MSTOptions struct {
	Method string
	Root   string
}

// Option configures an MSTOptions.
type Option func(*MSTOptions)

// WithMethod sets the algorithm to run.
func WithMethod(m string) Option {
	return func(o *MSTOptions) { o.Method = m }
}

// WithRoot sets Prim's starting vertex; ignored by Kruskal.
func WithRoot(root string) Option {
	return func(o *MSTOptions) { o.Root = root }
}

// DefaultOptions selects Kruskal with no root.
func DefaultOptions() MSTOptions {
	return MSTOptions{Method: MethodKruskal}
}

// Compute dispatches to Kruskal or Prim according to opts.Method.
func Compute(graph *core.Graph, opts MSTOptions) ([]core.Edge, int64, error) {
	switch opts.Method {
	case MethodKruskal:
		return Kruskal(graph)
	case MethodPrim:
		return Prim(graph, opts.Root)
	default:
		return nil, 0, ErrInvalidGraph
	}
}
