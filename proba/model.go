package proba

import (
	"github.com/rs/zerolog"

	"github.com/LuoZheng2002/bayesian-router/command"
	"github.com/LuoZheng2002/bayesian-router/core"
	"github.com/LuoZheng2002/bayesian-router/pcbmodel"
	"github.com/LuoZheng2002/bayesian-router/render"
	"github.com/LuoZheng2002/bayesian-router/routerconfig"
)

// Model is one run of the probabilistic solver: the problem it routes,
// every connection's current trace state (fixed or a candidate pool), and
// the collision graph linking colliding candidates (ProbaModel in
// original_source/router/src/proba_model.rs).
type Model struct {
	Problem *pcbmodel.PcbProblem
	Config  routerconfig.Config
	Render  *render.Slot
	Gate    *command.Gate
	Logger  zerolog.Logger

	refs    map[pcbmodel.ConnectionID]connectionRef
	traces  map[pcbmodel.ConnectionID]*connectionTraces
	collide *core.Graph // undirected, unweighted: vertex ID = ProbaTraceID formatted as decimal

	traceIDCounter uint64
	sampleCount    int64

	nextIteration int
}

// NewModel seeds a Model from a problem and a set of already-fixed traces
// (e.g. backtrack.Solver's output for the connections it could resolve
// cheaply), matching create_and_solve's connection_to_traces seeding.
func NewModel(problem *pcbmodel.PcbProblem, fixed map[pcbmodel.ConnectionID]pcbmodel.FixedTrace, cfg routerconfig.Config) *Model {
	refs := collectConnections(problem)
	traces := make(map[pcbmodel.ConnectionID]*connectionTraces, len(refs))
	for id := range refs {
		if ft, ok := fixed[id]; ok {
			f := ft
			traces[id] = &connectionTraces{fixed: &f}
		} else {
			traces[id] = &connectionTraces{candidates: make(map[ProbaTraceID]*ProbaTrace)}
		}
	}
	return &Model{
		Problem:       problem,
		Config:        cfg,
		Render:        render.NewSlot(),
		Gate:          command.NewGate(),
		Logger:        zerolog.Nop(),
		refs:          refs,
		traces:        traces,
		collide:       core.NewGraph(),
		nextIteration: 1,
	}
}

// priorForIteration and remainingForIteration look up the configured
// per-iteration tables, falling back to the last configured entry for any
// iteration beyond the table's length (matching the tables' role as a
// schedule that plateaus once exhausted rather than panicking).
func (m *Model) priorForIteration(iteration int) float64 {
	return lastOr(m.Config.IterationToPriorProbability, iteration, 0.1)
}

func (m *Model) remainingForIteration(iteration int) float64 {
	return lastOr(m.Config.NextIterationToRemainingProbability, iteration, 0.1)
}

func (m *Model) targetTraceCountForIteration(iteration int) int {
	return int(lastOr(floatize(m.Config.IterationToNumTraces), iteration, 4))
}

func lastOr(table []float64, iteration int, fallback float64) float64 {
	if len(table) == 0 {
		return fallback
	}
	idx := iteration - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(table) {
		idx = len(table) - 1
	}
	return table[idx]
}

func floatize(ints []int) []float64 {
	out := make([]float64, len(ints))
	for i, v := range ints {
		out[i] = float64(v)
	}
	return out
}
