// Package gridgraph rasterizes a rectangular grid of integer cell values
// into a core.Graph: each cell at or above LandThreshold becomes a vertex
// carrying its (x, y, value) in Metadata, and adjacent such cells (4- or
// 8-connectivity) are joined by a unit-weight edge.
//
// The routability package rasterizes one obstacle.Bundle layer into a
// GridGraph (occupied cells below LandThreshold, free cells at or above
// it), then calls ToCoreGraph to hand the result to bfs for a cheap
// connectivity pre-check ahead of the full A* search.
package gridgraph
