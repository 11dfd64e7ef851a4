package proba

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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
	model := NewModel(problem, nil, routerconfig.Default())

	solution, err := model.Solve()
	require.NoError(t, err)
	assert.Len(t, solution.DeterminedTraces, 2)
}

func TestSolveEmptyProblemReturnsEmptySolution(t *testing.T) {
	problem, err := pcbmodel.NewProblem(10, 10, fixedpoint.Vec2FromFloat64(0, 0), 1, 1.0)
	require.NoError(t, err)

	model := NewModel(problem, nil, routerconfig.Default())
	solution, err := model.Solve()
	require.NoError(t, err)
	assert.Empty(t, solution.DeterminedTraces)
}

func TestSolveHonorsAlreadyFixedConnections(t *testing.T) {
	problem := twoNetProblem(t)
	refs := collectConnections(problem)

	var fixedID pcbmodel.ConnectionID
	for id := range refs {
		fixedID = id
		break
	}
	ref := refs[fixedID]
	path, err := pcbmodel.BuildTracePath(
		[]pcbmodel.TraceAnchor{
			{Position: ref.net.SourcePad.Position, StartLayer: 0, EndLayer: 0},
			{Position: ref.conn.SinkPad.Position, StartLayer: 0, EndLayer: 0},
		},
		ref.conn.Width, ref.conn.Clearance, ref.net.ViaDiameter, ref.conn.Clearance,
	)
	require.NoError(t, err)

	fixed := map[pcbmodel.ConnectionID]pcbmodel.FixedTrace{
		fixedID: {NetName: ref.netName, ConnectionID: fixedID, TracePath: path},
	}

	model := NewModel(problem, fixed, routerconfig.Default())
	assert.True(t, model.traces[fixedID].isFixed())

	solution, err := model.Solve()
	require.NoError(t, err)
	assert.Len(t, solution.DeterminedTraces, 2)
	assert.Equal(t, path.TotalLength, solution.DeterminedTraces[fixedID].TracePath.TotalLength)
}

func TestWeightedPickReturnsNilOnEmptyPool(t *testing.T) {
	assert.Nil(t, weightedPick(nil, 0.2, 0.1))
}

func TestClampMonotoneNeverOvershootsTarget(t *testing.T) {
	assert.Equal(t, 0.5, clampMonotone(0.4, 0.5, 0.5))
	assert.Equal(t, 0.2, clampMonotone(0.4, -0.5, 0.2))
}

func TestTraceKeyIsStableAcrossIdenticalAnchors(t *testing.T) {
	path := pcbmodel.TracePath{Anchors: []pcbmodel.TraceAnchor{
		{Position: fixedpoint.Vec2FromFloat64(0, 0), StartLayer: 0, EndLayer: 0},
		{Position: fixedpoint.Vec2FromFloat64(5, 0), StartLayer: 0, EndLayer: 0},
	}}
	other := pcbmodel.TracePath{Anchors: append([]pcbmodel.TraceAnchor(nil), path.Anchors...)}
	assert.Equal(t, traceKey(path), traceKey(other))
}
