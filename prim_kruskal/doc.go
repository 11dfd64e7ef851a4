// Package prim_kruskal computes a minimum spanning tree over a weighted
// core.Graph, via either Kruskal's or Prim's algorithm.
//
// The backtrack package's pre-pass ordering step builds a complete graph
// over a net's source and sink pads, with edge weights equal to each
// pair's straight-line pad-to-pad distance, and runs Kruskal's algorithm
// via Compute to find which of a multi-connection net's direct
// source-sink pairs are "backbone" connections worth ordering first.
package prim_kruskal
