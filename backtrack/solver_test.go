package backtrack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuoZheng2002/bayesian-router/astar"
	"github.com/LuoZheng2002/bayesian-router/fixedpoint"
	"github.com/LuoZheng2002/bayesian-router/pcbmodel"
	"github.com/LuoZheng2002/bayesian-router/routerconfig"
)

func simplePad(name string, x, y float64) pcbmodel.Pad {
	return pcbmodel.Pad{
		Name:      name,
		Position:  fixedpoint.Vec2FromFloat64(x, y),
		Shape:     pcbmodel.PadShape{Kind: pcbmodel.PadCircle, Diameter: 0.4},
		Clearance: 0.2,
		Layer:     pcbmodel.ThroughHole,
	}
}

func twoNetProblem(t *testing.T) *pcbmodel.PcbProblem {
	t.Helper()
	problem, err := pcbmodel.NewProblem(40, 40, fixedpoint.Vec2FromFloat64(0, 0), 1, 1.0)
	require.NoError(t, err)

	require.NoError(t, problem.AddNet("net-a", pcbmodel.NetInfo{
		SourcePad: simplePad("A-src", -10, 0), ViaDiameter: 0.6, Color: [4]float32{1, 0, 0, 1},
	}))
	require.NoError(t, problem.AddNet("net-b", pcbmodel.NetInfo{
		SourcePad: simplePad("B-src", -10, 5), ViaDiameter: 0.6, Color: [4]float32{0, 1, 0, 1},
	}))

	_, err = problem.AddConnection("net-a", simplePad("A-sink", 10, 0), 0.2, 0.2)
	require.NoError(t, err)
	_, err = problem.AddConnection("net-b", simplePad("B-sink", 10, 5), 0.2, 0.2)
	require.NoError(t, err)
	return problem
}

func TestSolveRoutesEveryConnectionOnOpenBoard(t *testing.T) {
	problem := twoNetProblem(t)
	solver := New(problem, routerconfig.Default())

	solution, err := solver.Solve()
	require.NoError(t, err)
	assert.Len(t, solution.DeterminedTraces, 2)
	for _, trace := range solution.DeterminedTraces {
		assert.Greater(t, trace.TracePath.TotalLength, 0.0)
	}
}

func TestSolveEmptyProblemReturnsEmptySolution(t *testing.T) {
	problem, err := pcbmodel.NewProblem(10, 10, fixedpoint.Vec2FromFloat64(0, 0), 1, 1.0)
	require.NoError(t, err)

	solver := New(problem, routerconfig.Default())
	solution, err := solver.Solve()
	require.NoError(t, err)
	assert.Empty(t, solution.DeterminedTraces)
}

func TestMstBackboneConnectionsNilForSingleConnectionNet(t *testing.T) {
	problem := twoNetProblem(t)
	net := problem.Nets["net-a"]
	assert.Nil(t, mstBackboneConnections(net))
}

func TestMstBackboneConnectionsPicksShorterStarEdge(t *testing.T) {
	problem, err := pcbmodel.NewProblem(40, 40, fixedpoint.Vec2FromFloat64(0, 0), 1, 1.0)
	require.NoError(t, err)
	require.NoError(t, problem.AddNet("star", pcbmodel.NetInfo{
		SourcePad: simplePad("S", 0, 0), ViaDiameter: 0.6, Color: [4]float32{1, 1, 0, 1},
	}))
	near, err := problem.AddConnection("star", simplePad("near", 1, 0), 0.2, 0.2)
	require.NoError(t, err)
	far, err := problem.AddConnection("star", simplePad("far", 20, 0), 0.2, 0.2)
	require.NoError(t, err)

	backbone := mstBackboneConnections(problem.Nets["star"])
	require.NotNil(t, backbone)
	assert.True(t, backbone[near])
	assert.False(t, backbone[far])
}

func TestOrderSortsAscendingByUnobstructedLength(t *testing.T) {
	problem := twoNetProblem(t)
	refs := collectConnections(problem)
	solver := New(problem, routerconfig.Default())

	ordered, err := solver.order(refs)
	require.NoError(t, err)
	require.Len(t, ordered, 2)

	var lengths []float64
	for _, id := range ordered {
		ref := refs[id]
		bundle := otherNetsBundle(problem, ref.netName)
		req := astarRequest(problem, ref)
		path, err := astar.Run(req, bundle, solver.astarConfig())
		require.NoError(t, err)
		lengths = append(lengths, path.TotalLength)
	}
	assert.LessOrEqual(t, lengths[0], lengths[1])
}
