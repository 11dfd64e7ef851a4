package proba

import (
	"fmt"
	"math"

	"github.com/LuoZheng2002/bayesian-router/core"
)

func vertexID(id ProbaTraceID) string {
	return fmt.Sprintf("%d", id)
}

// rebuildCollisionGraph recomputes the undirected graph over every
// current candidate, with an edge iff the two candidates' TracePaths
// collide, spec.md §4.6's "once per iteration, recompute ... where an
// edge is added iff the two candidates' TracePaths collide".
func (m *Model) rebuildCollisionGraph() {
	graph := core.NewGraph()
	var all []*ProbaTrace
	for _, ct := range m.traces {
		for _, cand := range ct.candidates {
			all = append(all, cand)
			_ = graph.AddVertex(vertexID(cand.ID))
		}
	}
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			a, b := all[i], all[j]
			if a.ConnectionID == b.ConnectionID {
				continue // candidates for the same connection never compete via collision
			}
			if a.TracePath.CollidesWith(b.TracePath) {
				_, _ = graph.AddEdge(vertexID(a.ID), vertexID(b.ID), 0)
			}
		}
	}
	m.collide = graph
}

func (m *Model) neighborPosteriors(id ProbaTraceID, byID map[ProbaTraceID]*ProbaTrace, prior float64) []float64 {
	neighborIDs, err := m.collide.NeighborIDs(vertexID(id))
	if err != nil {
		return nil
	}
	out := make([]float64, 0, len(neighborIDs))
	for _, nid := range neighborIDs {
		var parsed uint64
		_, scanErr := fmt.Sscanf(nid, "%d", &parsed)
		if scanErr != nil {
			continue
		}
		if n, ok := byID[ProbaTraceID(parsed)]; ok {
			out = append(out, n.posteriorWithFallback(prior))
		}
	}
	return out
}

// clampMonotone prevents delta from pushing current past target, spec.md
// §4.6's "clamp_monotone prevents overshooting past the target".
func clampMonotone(current, delta, target float64) float64 {
	next := current + delta
	if delta > 0 && next > target {
		return target
	}
	if delta < 0 && next < target {
		return target
	}
	return next
}

// updatePosterior runs one belief-propagation round over every current
// candidate with simultaneous updates via a shadow buffer, implementing
// spec.md §4.6's posterior-update formula exactly.
func (m *Model) updatePosterior() {
	byID := make(map[ProbaTraceID]*ProbaTrace)
	for _, ct := range m.traces {
		for id, cand := range ct.candidates {
			byID[id] = cand
		}
	}
	if len(byID) == 0 {
		return
	}

	for _, t := range byID {
		prior := m.priorForIteration(t.Iteration)
		current := t.posteriorWithFallback(prior)

		targetPosterior := 1.0
		for _, np := range m.neighborPosteriors(t.ID, byID, prior) {
			targetPosterior *= math.Max(0, 1-np)
		}

		score := t.TracePath.Score(m.Config.HalfProbabilityRawScore)
		opportunityCost := targetPosterior / current
		unnormalized := math.Pow(score, m.Config.ScoreWeight) * math.Pow(opportunityCost, m.Config.OpportunityCostWeight)
		targetNormalized := prior * unnormalized

		delta := (targetNormalized-current)*m.Config.LinearLearningRate + sign(targetNormalized-current)*m.Config.ConstantLearningRate
		next := clampMonotone(current, delta, targetNormalized)

		t.tempPosterior = next
	}

	for _, t := range byID {
		t.posterior = t.tempPosterior
		t.hasPosterior = true
	}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
