package astar

import (
	"github.com/LuoZheng2002/bayesian-router/direction"
	"github.com/LuoZheng2002/bayesian-router/fixedpoint"
	"github.com/LuoZheng2002/bayesian-router/pcbmodel"
)

// pathNode is one state along the reconstructed chain, in start-to-goal
// order.
type pathNode struct {
	pos   fixedpoint.Vec2
	layer int
}

// reconstruct walks cameFrom back from goal to a root state, then collapses
// the raw per-step chain into the turning-point anchor list BuildTracePath
// expects: consecutive planar steps sharing a direction merge into one
// straight run, and a via step updates the pending anchor's end layer
// instead of adding a new point.
func (s *searcher) reconstruct(goal stateKey) (pcbmodel.TracePath, error) {
	var nodes []pathNode
	var transitions []cameFromEdge

	cur := goal
	nodes = append(nodes, pathNode{pos: fixedpoint.NewVec2(cur.X, cur.Y), layer: cur.Layer})
	for {
		edge, ok := s.cameFrom[cur]
		if !ok {
			break
		}
		transitions = append(transitions, edge)
		cur = edge.parent
		nodes = append(nodes, pathNode{pos: fixedpoint.NewVec2(cur.X, cur.Y), layer: cur.Layer})
	}
	// nodes/transitions were built goal-to-start; reverse both.
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	for i, j := 0, len(transitions)-1; i < j; i, j = i+1, j-1 {
		transitions[i], transitions[j] = transitions[j], transitions[i]
	}

	anchors := compressAnchors(nodes, transitions)
	return pcbmodel.BuildTracePath(anchors, s.req.Width, s.req.Clearance, s.req.ViaDiameter, s.req.ViaClearance)
}

func compressAnchors(nodes []pathNode, transitions []cameFromEdge) []pcbmodel.TraceAnchor {
	first := nodes[0]
	anchors := []pcbmodel.TraceAnchor{{Position: first.pos, StartLayer: first.layer, EndLayer: first.layer}}
	var lastDir *direction.Direction

	for i, tr := range transitions {
		if tr.isVia {
			anchors[len(anchors)-1].EndLayer = nodes[i+1].layer
			lastDir = nil
			continue
		}
		d := tr.dir
		if lastDir != nil && *lastDir == d {
			continue // straight continuation, defer emitting an anchor
		}
		if lastDir != nil {
			turn := nodes[i]
			anchors = append(anchors, pcbmodel.TraceAnchor{Position: turn.pos, StartLayer: turn.layer, EndLayer: turn.layer})
		}
		dd := d
		lastDir = &dd
	}

	last := nodes[len(nodes)-1]
	lastAnchor := &anchors[len(anchors)-1]
	if lastAnchor.Position.Equal(last.pos) {
		lastAnchor.EndLayer = last.layer
	} else {
		anchors = append(anchors, pcbmodel.TraceAnchor{Position: last.pos, StartLayer: last.layer, EndLayer: last.layer})
	}
	return anchors
}
