// Package router is a PCB auto-router: given a board outline, a set of
// pads grouped into nets, and per-connection trace requirements, it
// produces a set of non-colliding copper traces connecting every net's
// source pad to each of its sink pads.
//
// Two solving strategies are provided over the same pcbmodel.PcbProblem
// input and pcbmodel.PcbSolution output:
//
//	backtrack/ — deterministic depth-first search: order connections by
//	             ascending unobstructed length (with an MST tie-break for
//	             multi-pad nets), then route them one at a time with astar,
//	             backing up and trying the next A* alternative on collision.
//	proba/     — belief-propagation sampler: maintain a pool of candidate
//	             traces per connection, update each candidate's posterior
//	             probability from its neighbors in a collision graph, and
//	             commit the highest-confidence candidates to fixed traces
//	             once their posteriors converge.
//
// Supporting packages:
//
//	fixedpoint/, direction/, geom/, quadtree/ — deterministic geometry and
//	                                             spatial indexing.
//	pcbmodel/                                 — the problem/solution types.
//	obstacle/                                 — per-layer collision bundles
//	                                             assembled from pads and
//	                                             already-fixed traces.
//	astar/                                    — the single-connection
//	                                             pathfinder both solvers
//	                                             route through.
//	optimize/                                 — post-process pass that
//	                                             straightens and tightens a
//	                                             raw A* path.
//	routability/                              — a coarse occupancy-grid
//	                                             pre-check that fast-rejects
//	                                             doomed connections.
//	render/, command/                         — the live snapshot slot and
//	                                             stepwise command gate a UI
//	                                             or test harness drives a
//	                                             solver through.
//	routerconfig/                             — the tunable knobs behind
//	                                             both solvers.
//
// cmd/router wires these into a CLI: read a board description, pick a
// solver, and write the resulting traces.
package router
