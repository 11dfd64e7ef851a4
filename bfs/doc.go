// Package bfs walks a core.Graph breadth-first from a start vertex and
// reports the hop-count distance to every vertex it can reach.
//
// The routability package runs it over the core.Graph produced by
// gridgraph.GridGraph.ToCoreGraph to fast-reject a connection before
// paying for a full astar.Run: if no path exists on the coarse
// occupancy grid, none exists on the fine one either. BFS only answers
// "reachable or not" — it ignores edge weights entirely, which is why it
// accepts the weighted graph gridgraph hands it without complaint.
package bfs
