package proba

import (
	"fmt"
	"math/rand"
	"sync/atomic"

	"github.com/LuoZheng2002/bayesian-router/astar"
	"github.com/LuoZheng2002/bayesian-router/fixedpoint"
	"github.com/LuoZheng2002/bayesian-router/obstacle"
	"github.com/LuoZheng2002/bayesian-router/pcbmodel"
)

// traceKey builds a deterministic, comparable key for a TracePath's anchor
// sequence, the port of BTreeSet<TraceAnchors> membership testing.
func traceKey(path pcbmodel.TracePath) string {
	key := ""
	for _, a := range path.Anchors {
		key += fmt.Sprintf("(%d,%d,%d,%d)", int64(a.Position.X), int64(a.Position.Y), a.StartLayer, a.EndLayer)
	}
	return key
}

// visitedKeys collects the anchor-sequence keys of every candidate sampled
// so far across every connection, spec.md §4.6's "if the resulting anchor
// sequence is novel (not in the visited set)".
func (m *Model) visitedKeys() map[string]bool {
	visited := make(map[string]bool)
	for _, ct := range m.traces {
		for _, cand := range ct.candidates {
			visited[traceKey(cand.TracePath)] = true
		}
	}
	return visited
}

// weightedPick samples one candidate from pool proportional to its
// posterior (falling back to prior on an unseeded trace), with a residual
// "no trace chosen" probability mass, spec.md §4.6's "weighted by their
// current normalized posterior". Returns nil when nothing is chosen.
func weightedPick(pool map[ProbaTraceID]*ProbaTrace, prior, remaining float64) *ProbaTrace {
	if len(pool) == 0 {
		return nil
	}
	sum := remaining
	ids := make([]ProbaTraceID, 0, len(pool))
	for id, t := range pool {
		sum += t.posteriorWithFallback(prior)
		ids = append(ids, id)
	}
	if sum <= 0 {
		return nil
	}
	roll := rand.Float64() * sum
	var cumulative float64
	for _, id := range ids {
		cumulative += pool[id].posteriorWithFallback(prior)
		if roll < cumulative {
			return pool[id]
		}
	}
	return nil // fell into the residual "no trace chosen" mass
}

// sampleObstacleBundle builds the obstacle set for sampling one candidate
// for a connection of net excludeNet: every other net's source and sink pads, every other
// net's already-fixed traces, and one weighted-sampled candidate per other
// net's still-unfixed connection (spec.md §4.6's sampling obstacle set).
func (m *Model) sampleObstacleBundle(excludeNet string, prior, remaining float64) *obstacle.Bundle {
	builder := obstacle.NewBuilder(m.Problem.Width, m.Problem.Height, m.Problem.Center, m.Problem.NumLayers)
	for netName, net := range m.Problem.Nets {
		if netName == excludeNet {
			continue
		}
		builder.AddPad(net.SourcePad)
		for connID, conn := range net.Connections {
			builder.AddPad(conn.SinkPad)
			ct := m.traces[connID]
			if ct.isFixed() {
				builder.AddTracePath(ct.fixed.TracePath)
				continue
			}
			if picked := weightedPick(ct.candidates, prior, remaining); picked != nil {
				builder.AddTracePath(picked.TracePath)
			}
		}
	}
	return builder.Build()
}

func (m *Model) astarRequest(ref connectionRef) astar.Request {
	return astar.Request{
		Start:        ref.net.SourcePad.Position,
		End:          ref.conn.SinkPad.Position,
		StartLayers:  ref.net.SourcePad.Layer.Layers(m.Problem.NumLayers),
		EndLayers:    ref.conn.SinkPad.Layer.Layers(m.Problem.NumLayers),
		NumLayers:    m.Problem.NumLayers,
		Width:        ref.conn.Width,
		Clearance:    ref.conn.Clearance,
		ViaDiameter:  ref.net.ViaDiameter,
		ViaClearance: ref.conn.Clearance,
		BoardWidth:   m.Problem.Width,
		BoardHeight:  m.Problem.Height,
		BoardCenter:  m.Problem.Center,
	}
}

func (m *Model) astarConfig() astar.Config {
	cfg := astar.DefaultConfig()
	if m.Config.AstarStride > 0 {
		cfg.Stride = fixedpoint.FromFloat64(m.Config.AstarStride)
	}
	if m.Config.EstimateCoefficient > 0 {
		cfg.EstimateCoefficient = m.Config.EstimateCoefficient
	}
	cfg.MaxExpansions = m.Config.AstarMaxExpansions
	cfg.Logger = m.Logger
	return cfg
}

// sampleNewTraces runs the current iteration's candidate-generation pass:
// every unfixed connection is attempted up to MaxGenerationAttempts times,
// or until it reaches the iteration's target candidate count, whichever
// comes first (spec.md §4.6's "Bounded by MAX_GENERATION_ATTEMPTS").
func (m *Model) sampleNewTraces() {
	prior := m.priorForIteration(m.nextIteration)
	remaining := m.remainingForIteration(m.nextIteration)
	target := m.targetTraceCountForIteration(m.nextIteration)
	visited := m.visitedKeys()

	for connID, ref := range m.refs {
		ct := m.traces[connID]
		if ct.isFixed() {
			continue
		}
		attempts := 0
		for attempts < m.Config.MaxGenerationAttempts && len(ct.candidates) < target {
			attempts++
			bundle := m.sampleObstacleBundle(ref.netName, prior, remaining)
			req := m.astarRequest(ref)
			path, err := astar.Run(req, bundle, m.astarConfig())
			atomic.AddInt64(&m.sampleCount, 1)
			if err != nil {
				continue
			}
			key := traceKey(path)
			if visited[key] {
				continue
			}
			visited[key] = true

			score := path.Score(m.Config.HalfProbabilityRawScore)
			m.Logger.Debug().
				Uint64("connection", uint64(connID)).
				Float64("totalLength", path.TotalLength).
				Float64("score", score).
				Msg("proba: sampled candidate")

			id := m.nextTraceID()
			ct.candidates[id] = &ProbaTrace{
				NetName:      ref.netName,
				ConnectionID: connID,
				ID:           id,
				TracePath:    path,
				Iteration:    m.nextIteration,
			}
		}
	}
}
