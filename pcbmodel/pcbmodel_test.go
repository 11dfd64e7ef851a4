package pcbmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuoZheng2002/bayesian-router/fixedpoint"
	"github.com/LuoZheng2002/bayesian-router/routererr"
)

func TestPadCircleShapes(t *testing.T) {
	p := Pad{
		Name:     "P1",
		Position: fixedpoint.Vec2FromFloat64(1, 2),
		Shape:    PadShape{Kind: PadCircle, Diameter: 1.0},
		Clearance: 0.2,
	}
	shapes := p.Shapes()
	require.Len(t, shapes, 1)
	assert.Equal(t, 1.0, shapes[0].Circle.Diameter)

	clearance := p.ClearanceShapes()
	require.Len(t, clearance, 1)
	assert.InDelta(t, 1.4, clearance[0].Circle.Diameter, 1e-9)
}

func TestPadRoundRectShapeCount(t *testing.T) {
	p := Pad{
		Position: fixedpoint.Vec2FromFloat64(0, 0),
		Shape:    PadShape{Kind: PadRoundRect, Width: 2, Height: 1, CornerRadius: 0.2},
		Clearance: 0.1,
	}
	shapes := p.Shapes()
	assert.Len(t, shapes, 6) // 2 rects + 4 corner circles

	clearanceShapes := p.ClearanceShapes()
	assert.Len(t, clearanceShapes, 6)
	// every clearance circle must be wider than its plain counterpart
	for i := 2; i < 6; i++ {
		assert.Greater(t, clearanceShapes[i].Circle.Diameter, shapes[i].Circle.Diameter)
	}
}

func TestLayerSpecLayers(t *testing.T) {
	assert.Equal(t, []int{0}, FrontOnly.Layers(4))
	assert.Equal(t, []int{3}, BackOnly.Layers(4))
	assert.Equal(t, []int{0, 1, 2, 3}, ThroughHole.Layers(4))
}

func TestTraceSegmentCollision(t *testing.T) {
	a := TraceSegment{
		Start: fixedpoint.Vec2FromFloat64(0, 0), End: fixedpoint.Vec2FromFloat64(5, 0),
		Width: 0.2, Clearance: 0.1, Layer: 0,
	}
	b := TraceSegment{
		Start: fixedpoint.Vec2FromFloat64(2, -2), End: fixedpoint.Vec2FromFloat64(2, 2),
		Width: 0.2, Clearance: 0.1, Layer: 0,
	}
	assert.True(t, a.CollidesWith(b))

	c := TraceSegment{
		Start: fixedpoint.Vec2FromFloat64(0, 10), End: fixedpoint.Vec2FromFloat64(5, 10),
		Width: 0.2, Clearance: 0.1, Layer: 0,
	}
	assert.False(t, a.CollidesWith(c))

	d := TraceSegment{
		Start: fixedpoint.Vec2FromFloat64(0, 0), End: fixedpoint.Vec2FromFloat64(5, 0),
		Width: 0.2, Clearance: 0.1, Layer: 1,
	}
	assert.False(t, a.CollidesWith(d), "different layers never collide")
}

func TestBuildTracePathCollinear(t *testing.T) {
	anchors := []TraceAnchor{
		{Position: fixedpoint.Vec2FromFloat64(0, 0), StartLayer: 0, EndLayer: 0},
		{Position: fixedpoint.Vec2FromFloat64(3, 0), StartLayer: 0, EndLayer: 0},
	}
	path, err := BuildTracePath(anchors, 0.2, 0.1, 0.6, 0.1)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, path.TotalLength, 1e-9)
	assert.Len(t, path.Segments, 1)
	assert.Empty(t, path.Vias)
}

func TestBuildTracePathWithVia(t *testing.T) {
	anchors := []TraceAnchor{
		{Position: fixedpoint.Vec2FromFloat64(0, 0), StartLayer: 0, EndLayer: 0},
		{Position: fixedpoint.Vec2FromFloat64(1, 0), StartLayer: 0, EndLayer: 1},
		{Position: fixedpoint.Vec2FromFloat64(2, 0), StartLayer: 1, EndLayer: 1},
	}
	path, err := BuildTracePath(anchors, 0.2, 0.1, 0.6, 0.1)
	require.NoError(t, err)
	require.Len(t, path.Vias, 1)
	assert.Equal(t, 0, path.Vias[0].MinLayer)
	assert.Equal(t, 1, path.Vias[0].MaxLayer)
	assert.Len(t, path.Segments, 2)
}

func TestBuildTracePathCoincidentAnchorsRejected(t *testing.T) {
	anchors := []TraceAnchor{
		{Position: fixedpoint.Vec2FromFloat64(0, 0), StartLayer: 0, EndLayer: 0},
		{Position: fixedpoint.Vec2FromFloat64(0, 0), StartLayer: 0, EndLayer: 0},
	}
	_, err := BuildTracePath(anchors, 0.2, 0.1, 0.6, 0.1)
	require.ErrorIs(t, err, routererr.ErrInvalidInput)
}

func TestTracePathScoreBounds(t *testing.T) {
	anchors := []TraceAnchor{
		{Position: fixedpoint.Vec2FromFloat64(0, 0), StartLayer: 0, EndLayer: 0},
		{Position: fixedpoint.Vec2FromFloat64(5, 0), StartLayer: 0, EndLayer: 0},
	}
	path, err := BuildTracePath(anchors, 0.2, 0.1, 0.6, 0.1)
	require.NoError(t, err)
	score := path.Score(5.0)
	assert.InDelta(t, 0.5, score, 1e-6)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}

func TestProblemAddNetDuplicateColor(t *testing.T) {
	problem, err := NewProblem(20, 20, fixedpoint.Vec2FromFloat64(0, 0), 2, 1.0)
	require.NoError(t, err)

	require.NoError(t, problem.AddNet("A", NetInfo{Color: [4]float32{1, 0, 0, 1}}))
	err = problem.AddNet("B", NetInfo{Color: [4]float32{1, 0, 0, 1}})
	require.ErrorIs(t, err, routererr.ErrInvalidInput)
}

func TestProblemAddConnectionGeneratesUniqueIDs(t *testing.T) {
	problem, err := NewProblem(20, 20, fixedpoint.Vec2FromFloat64(0, 0), 2, 1.0)
	require.NoError(t, err)
	require.NoError(t, problem.AddNet("A", NetInfo{Color: [4]float32{1, 0, 0, 1}}))

	id1, err := problem.AddConnection("A", Pad{Name: "sink1"}, 0.2, 0.1)
	require.NoError(t, err)
	id2, err := problem.AddConnection("A", Pad{Name: "sink2"}, 0.2, 0.1)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
}

func TestSolutionIsTotal(t *testing.T) {
	problem, err := NewProblem(20, 20, fixedpoint.Vec2FromFloat64(0, 0), 2, 1.0)
	require.NoError(t, err)
	require.NoError(t, problem.AddNet("A", NetInfo{Color: [4]float32{1, 0, 0, 1}}))
	id, err := problem.AddConnection("A", Pad{Name: "sink1"}, 0.2, 0.1)
	require.NoError(t, err)

	sol := PcbSolution{DeterminedTraces: map[ConnectionID]FixedTrace{}}
	assert.False(t, sol.IsTotal(problem))

	sol.DeterminedTraces[id] = FixedTrace{NetName: "A", ConnectionID: id}
	assert.True(t, sol.IsTotal(problem))
}
