// Package core implements a minimal undirected graph used as the shared
// adjacency substrate for two unrelated domain structures: proba's
// candidate-collision graph (vertex ID = a ProbaTraceID formatted as
// decimal, unweighted) and backtrack's pad-distance graph that feeds
// prim_kruskal's MST ordering pass (vertex ID = a pad/connection key,
// weighted by Euclidean distance). gridgraph.ToCoreGraph builds a third
// instance, one vertex per occupancy-grid cell, for bfs to walk.
//
// There is no locking: every Graph in this module is built and read from
// a single goroutine, and no multigraph, directed-edge, or self-loop
// support exists because nothing in the domain needs it.
package core
