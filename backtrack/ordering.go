package backtrack

import (
	"fmt"
	"sort"

	"github.com/LuoZheng2002/bayesian-router/astar"
	"github.com/LuoZheng2002/bayesian-router/core"
	"github.com/LuoZheng2002/bayesian-router/fixedpoint"
	"github.com/LuoZheng2002/bayesian-router/obstacle"
	"github.com/LuoZheng2002/bayesian-router/pcbmodel"
	"github.com/LuoZheng2002/bayesian-router/prim_kruskal"
	"github.com/LuoZheng2002/bayesian-router/routererr"
	"github.com/LuoZheng2002/bayesian-router/routerconfig"
)

// connectionRef resolves a ConnectionID back to its owning net and
// Connection record, since PcbProblem nests connections inside NetInfo.
type connectionRef struct {
	netName string
	net     *pcbmodel.NetInfo
	conn    *pcbmodel.Connection
}

// collectConnections flattens every net's connections into one lookup.
func collectConnections(problem *pcbmodel.PcbProblem) map[pcbmodel.ConnectionID]connectionRef {
	out := make(map[pcbmodel.ConnectionID]connectionRef)
	for netName, net := range problem.Nets {
		for id, conn := range net.Connections {
			out[id] = connectionRef{netName: netName, net: net, conn: conn}
		}
	}
	return out
}

// otherNetsBundle builds an obstacle bundle containing only other nets'
// pads (source and every sink), exactly the obstacle set spec.md §4.5's
// pre-pass measures each connection's unobstructed length against.
func otherNetsBundle(problem *pcbmodel.PcbProblem, excludeNet string) *obstacle.Bundle {
	builder := obstacle.NewBuilder(problem.Width, problem.Height, problem.Center, problem.NumLayers)
	for netName, net := range problem.Nets {
		if netName == excludeNet {
			continue
		}
		builder.AddPad(net.SourcePad)
		for _, conn := range net.Connections {
			builder.AddPad(conn.SinkPad)
		}
	}
	return builder.Build()
}

// astarRequest builds the Request for routing ref's connection: source pad
// to sink pad, using the connection's own width/clearance (spec.md §6's
// per-connection sink_trace_width/sink_trace_clearance) and the net's via
// diameter. Via clearance is not separately modeled in the input schema;
// the connection's trace clearance doubles as its via clearance.
func astarRequest(problem *pcbmodel.PcbProblem, ref connectionRef) astar.Request {
	return astar.Request{
		Start:        ref.net.SourcePad.Position,
		End:          ref.conn.SinkPad.Position,
		StartLayers:  ref.net.SourcePad.Layer.Layers(problem.NumLayers),
		EndLayers:    ref.conn.SinkPad.Layer.Layers(problem.NumLayers),
		NumLayers:    problem.NumLayers,
		Width:        ref.conn.Width,
		Clearance:    ref.conn.Clearance,
		ViaDiameter:  ref.net.ViaDiameter,
		ViaClearance: ref.conn.Clearance,
		BoardWidth:   problem.Width,
		BoardHeight:  problem.Height,
		BoardCenter:  problem.Center,
	}
}

// order runs the ascending-unobstructed-length pre-pass and returns
// connections sorted shortest-first, with same-net connections that sit on
// their net's pad MST backbone breaking length ties (spec.md §4.5 plus the
// prim_kruskal enrichment in SPEC_FULL.md §11).
func (s *Solver) order(refs map[pcbmodel.ConnectionID]connectionRef) ([]pcbmodel.ConnectionID, error) {
	type entry struct {
		id       pcbmodel.ConnectionID
		length   float64
		backbone bool
	}
	backboneByNet := make(map[string]map[pcbmodel.ConnectionID]bool)

	var entries []entry
	for id, ref := range refs {
		bundle := otherNetsBundle(s.Problem, ref.netName)
		req := astarRequest(s.Problem, ref)
		path, err := astar.Run(req, bundle, s.astarConfig())
		if err != nil {
			switch s.Config.PreprocessFailurePolicy {
			case routerconfig.AllowExcludeOnPreprocessFailure:
				s.Logger.Warn().Uint64("connection", uint64(id)).Err(err).
					Msg("backtrack: excluding connection unroutable in preprocessing pass")
				continue
			default:
				return nil, fmt.Errorf("%w: connection %d: %v", routererr.ErrPreprocessUnroutable, id, err)
			}
		}

		backbone, ok := backboneByNet[ref.netName]
		if !ok {
			backbone = mstBackboneConnections(ref.net)
			backboneByNet[ref.netName] = backbone
		}
		entries = append(entries, entry{id: id, length: path.TotalLength, backbone: backbone[id]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].length != entries[j].length {
			return entries[i].length < entries[j].length
		}
		// Tie-break: the MST-backbone connection commits first.
		return entries[i].backbone && !entries[j].backbone
	})

	ordered := make([]pcbmodel.ConnectionID, len(entries))
	for i, e := range entries {
		ordered[i] = e.id
	}
	return ordered, nil
}

// mstBackboneConnections computes a minimum spanning tree over net's pads
// (source plus every connection's sink pad) and reports which connections'
// direct source-sink edge was selected into it. Nets with at most one
// connection (at most two pads) have no tie to break and return nil.
func mstBackboneConnections(net *pcbmodel.NetInfo) map[pcbmodel.ConnectionID]bool {
	if len(net.Connections) <= 1 {
		return nil
	}

	ids := make([]pcbmodel.ConnectionID, 0, len(net.Connections))
	for id := range net.Connections {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	const sourceVertex = "source"
	vertexOf := make(map[pcbmodel.ConnectionID]string, len(ids))
	position := map[string]fixedpoint.Vec2{sourceVertex: net.SourcePad.Position}
	for _, id := range ids {
		v := fmt.Sprintf("sink-%d", id)
		vertexOf[id] = v
		position[v] = net.Connections[id].SinkPad.Position
	}

	vertices := make([]string, 0, len(ids)+1)
	vertices = append(vertices, sourceVertex)
	for _, id := range ids {
		vertices = append(vertices, vertexOf[id])
	}

	graph := core.NewGraph(core.WithWeighted())
	for _, v := range vertices {
		_ = graph.AddVertex(v)
	}
	for i := 0; i < len(vertices); i++ {
		for j := i + 1; j < len(vertices); j++ {
			a, b := vertices[i], vertices[j]
			weight := ticksFromLength(position[a].Sub(position[b]).Length())
			_, _ = graph.AddEdge(a, b, weight)
		}
	}

	mstEdges, _, err := prim_kruskal.Compute(graph, prim_kruskal.DefaultOptions())
	if err != nil {
		return nil
	}

	backbone := make(map[pcbmodel.ConnectionID]bool)
	for _, edge := range mstEdges {
		for _, id := range ids {
			v := vertexOf[id]
			if (edge.From == sourceVertex && edge.To == v) || (edge.To == sourceVertex && edge.From == v) {
				backbone[id] = true
			}
		}
	}
	return backbone
}

// ticksFromLength scales a float64 length into an int64 weight fine enough
// to preserve ordering between pad-to-pad distances at board scale, since
// core.Graph edge weights are integers.
func ticksFromLength(length float64) int64 {
	return int64(length * 1000)
}
