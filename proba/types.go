// Package proba implements the probabilistic solver (spec.md §4.6): an
// alternative to backtrack.Solver that samples multiple candidate traces
// per connection across numbered iterations, maintains a posterior belief
// over which candidate will ultimately be chosen, and commits the
// highest-ranked candidates once the posteriors converge.
package proba

import (
	"sync/atomic"

	"github.com/LuoZheng2002/bayesian-router/pcbmodel"
)

// ProbaTraceID uniquely identifies one sampled candidate trace, drawn from
// a monotonic counter (naive_backtrack_algo.rs's ConnectionID generator
// style, ported here for candidates instead of connections).
type ProbaTraceID uint64

// ProbaTrace is one sampled candidate for a connection: its path, the
// iteration it was produced in, and its belief-propagation posterior
// (nil until the first update, at which point it seeds from the
// iteration's configured prior).
type ProbaTrace struct {
	NetName      string
	ConnectionID pcbmodel.ConnectionID
	ID           ProbaTraceID
	TracePath    pcbmodel.TracePath
	Iteration    int

	posterior     float64
	hasPosterior  bool
	tempPosterior float64
}

// posteriorWithFallback returns the trace's current posterior, seeding it
// with prior on first use (spec.md §4.6: "Posteriors are seeded with the
// iteration's prior on first use").
func (t *ProbaTrace) posteriorWithFallback(prior float64) float64 {
	if !t.hasPosterior {
		return prior
	}
	return t.posterior
}

// connectionTraces holds either a single already-fixed trace or the set
// of probabilistic candidates still competing for a connection, mirroring
// the original's Traces::Fixed/Traces::Probabilistic enum.
type connectionTraces struct {
	fixed      *pcbmodel.FixedTrace
	candidates map[ProbaTraceID]*ProbaTrace
}

func (t *connectionTraces) isFixed() bool { return t.fixed != nil }

// connectionRef resolves a ConnectionID back to its owning net and
// Connection record, duplicated from backtrack's identically-named helper
// since proba is built and tested independently of the backtrack package.
type connectionRef struct {
	netName string
	net     *pcbmodel.NetInfo
	conn    *pcbmodel.Connection
}

func collectConnections(problem *pcbmodel.PcbProblem) map[pcbmodel.ConnectionID]connectionRef {
	out := make(map[pcbmodel.ConnectionID]connectionRef)
	for netName, net := range problem.Nets {
		for id, conn := range net.Connections {
			out[id] = connectionRef{netName: netName, net: net, conn: conn}
		}
	}
	return out
}

// nextTraceID atomically allocates a ProbaTraceID, the port of
// trace_id_generator's `(0..).map(ProbaTraceID)` iterator.
func (m *Model) nextTraceID() ProbaTraceID {
	return ProbaTraceID(atomic.AddUint64(&m.traceIDCounter, 1))
}

// SampleCount reports how many A* invocations this model has made so far,
// spec.md §4.6's "SAMPLE_CNT is atomically incremented on every A*
// invocation for cost telemetry".
func (m *Model) SampleCount() int64 {
	return atomic.LoadInt64(&m.sampleCount)
}
