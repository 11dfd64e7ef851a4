package proba

import (
	"sort"

	"github.com/LuoZheng2002/bayesian-router/command"
	"github.com/LuoZheng2002/bayesian-router/pcbmodel"
	"github.com/LuoZheng2002/bayesian-router/routererr"
)

// rankedCandidate is one connection's current best candidate, considered
// for promotion during a commit pass.
type rankedCandidate struct {
	connID pcbmodel.ConnectionID
	trace  *ProbaTrace
}

// postersPerIteration is how many simultaneous-update rounds run after
// each sampling pass, matching create_and_solve's `for i in 0..10`.
const postersPerIteration = 10

// Solve runs the probabilistic solver to completion: repeated
// sample/update/commit iterations until every connection has a fixed
// trace or the configured iteration budget is exhausted, in which case it
// returns routererr.ErrBudgetExceeded (spec.md §4.6).
func (m *Model) Solve() (*pcbmodel.PcbSolution, error) {
	if len(m.refs) == 0 {
		return &pcbmodel.PcbSolution{
			DeterminedTraces: map[pcbmodel.ConnectionID]pcbmodel.FixedTrace{},
			ScaleDownFactor:  m.Problem.ScaleDownFactor,
		}, nil
	}

	maxIterations := m.Config.MaxIterations
	if maxIterations <= 0 {
		maxIterations = len(m.Config.IterationToNumTraces)
		if maxIterations == 0 {
			maxIterations = 5
		}
	}

	for m.nextIteration <= maxIterations {
		if solution, done := m.allFixed(); done {
			return solution, nil
		}

		m.Logger.Debug().Int("iteration", m.nextIteration).Msg("proba: sampling new traces")
		m.sampleNewTraces()
		m.publish()
		m.Gate.WaitIfGated(command.PhaseAstarInOut)

		m.rebuildCollisionGraph()
		edges, density := m.collisionDensity()
		m.Logger.Debug().Int("edges", len(edges)).Float64("density", density).Msg("proba: collision graph rebuilt")
		for i := 0; i < postersPerIteration; i++ {
			m.updatePosterior()
			m.publish()
			m.Gate.WaitIfGated(command.PhaseUpdatePosteriorResult)
		}

		m.commitBest()
		m.publish()
		m.Gate.WaitIfGated(command.PhaseProbaModelResult)
		m.nextIteration++
	}

	if solution, done := m.allFixed(); done {
		return solution, nil
	}
	return nil, routererr.ErrBudgetExceeded
}

func (m *Model) allFixed() (*pcbmodel.PcbSolution, bool) {
	fixed := make(map[pcbmodel.ConnectionID]pcbmodel.FixedTrace, len(m.refs))
	for id, ct := range m.traces {
		if !ct.isFixed() {
			return nil, false
		}
		fixed[id] = *ct.fixed
	}
	return &pcbmodel.PcbSolution{DeterminedTraces: fixed, ScaleDownFactor: m.Problem.ScaleDownFactor}, true
}

// commitBest promotes up to NumTopRankedToTry of the globally highest-
// posterior candidates (one per connection, ranked by posterior
// descending) to fixed, skipping any that now collide with a trace fixed
// earlier in this same pass (spec.md §4.6: "try to fix the globally
// top-ranked trace ... If the top-ranked pick causes an unresolvable
// sub-problem ... the next top-k is tried").
func (m *Model) commitBest() {
	var candidates []rankedCandidate
	for connID, ct := range m.traces {
		if ct.isFixed() {
			continue
		}
		var best *ProbaTrace
		for _, t := range ct.candidates {
			if best == nil || t.posteriorWithFallback(m.priorForIteration(t.Iteration)) > best.posteriorWithFallback(m.priorForIteration(best.Iteration)) {
				best = t
			}
		}
		if best != nil {
			candidates = append(candidates, rankedCandidate{connID: connID, trace: best})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		pi := candidates[i].trace.posteriorWithFallback(m.priorForIteration(candidates[i].trace.Iteration))
		pj := candidates[j].trace.posteriorWithFallback(m.priorForIteration(candidates[j].trace.Iteration))
		return pi > pj
	})

	tried := 0
	for _, r := range candidates {
		if tried >= m.Config.NumTopRankedToTry {
			break
		}
		tried++
		if m.collidesWithFixed(r.trace) {
			continue
		}
		ref := m.refs[r.connID]
		ft := pcbmodel.FixedTrace{NetName: ref.netName, ConnectionID: r.connID, TracePath: r.trace.TracePath}
		m.traces[r.connID] = &connectionTraces{fixed: &ft}
		m.Logger.Debug().Uint64("connection", uint64(r.connID)).Msg("proba: committed candidate")
	}
}

func (m *Model) collidesWithFixed(t *ProbaTrace) bool {
	for connID, ct := range m.traces {
		if !ct.isFixed() || m.refs[connID].netName == t.NetName {
			continue
		}
		if ct.fixed.TracePath.CollidesWith(t.TracePath) {
			return true
		}
	}
	return false
}
