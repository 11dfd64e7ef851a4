package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuoZheng2002/bayesian-router/fixedpoint"
	"github.com/LuoZheng2002/bayesian-router/pcbmodel"
)

func noCollision(start, end fixedpoint.Vec2, width, clearance float64, layer int) bool {
	return false
}

func anchorAt(x, y float64, layer int) pcbmodel.TraceAnchor {
	return pcbmodel.TraceAnchor{Position: fixedpoint.Vec2FromFloat64(x, y), StartLayer: layer, EndLayer: layer}
}

func positions(t *testing.T, anchors []pcbmodel.TraceAnchor) [][2]float64 {
	t.Helper()
	out := make([][2]float64, len(anchors))
	for i, a := range anchors {
		x, y := a.Position.ToFloat64()
		out[i] = [2]float64{x, y}
	}
	return out
}

func TestCollinearMergeCollapsesInlineAnchors(t *testing.T) {
	anchors := []pcbmodel.TraceAnchor{
		anchorAt(0, 0, 0), anchorAt(1, 0, 0), anchorAt(2, 0, 0), anchorAt(3, 0, 0),
	}
	changed := collinearAndRightAngle(&anchors, noCollision, 0.2, 0.1)
	require.True(t, changed)
	assert.Equal(t, [][2]float64{{0, 0}, {3, 0}}, positions(t, anchors))
}

func TestRightAngleRelaxationMatchesSpecExample(t *testing.T) {
	anchors := []pcbmodel.TraceAnchor{anchorAt(0, 0, 0), anchorAt(2, 0, 0), anchorAt(2, 2, 0)}
	changed := collinearAndRightAngle(&anchors, noCollision, 0.2, 0.1)
	require.True(t, changed)
	assert.Equal(t, [][2]float64{{0, 0}, {1, 0}, {2, 1}, {2, 2}}, positions(t, anchors))

	path, err := pcbmodel.BuildTracePath(anchors, 0.2, 0.1, 0.6, 0.1)
	require.NoError(t, err)
	assert.InDelta(t, 2+1.4142135624, path.TotalLength, 1e-6)
}

func TestParallelShiftDropsRedundantJog(t *testing.T) {
	anchors := []pcbmodel.TraceAnchor{
		anchorAt(0, 0, 0), anchorAt(0, 2, 0), anchorAt(2, 2, 0), anchorAt(2, 4, 0),
	}
	changed := parallelShift(&anchors, noCollision, 0.2, 0.1)
	require.True(t, changed)
	require.Len(t, anchors, 3)
	assert.Equal(t, [][2]float64{{0, 0}, {2, 0}, {2, 4}}, positions(t, anchors))
}

func TestTightWrapCollapsesEqualLegsToDiagonal(t *testing.T) {
	anchors := []pcbmodel.TraceAnchor{
		anchorAt(0, 0, 0), anchorAt(1, 0, 0), anchorAt(2, 1, 0), anchorAt(2, 2, 0),
	}
	changed := tightWrap(&anchors, noCollision, 0.2, 0.1)
	require.True(t, changed)
	assert.Equal(t, [][2]float64{{0, 0}, {2, 2}}, positions(t, anchors))
}

func TestOptimizeStopsAtChamferWhenFullCollapseBlocked(t *testing.T) {
	blockLongSpans := func(start, end fixedpoint.Vec2, width, clearance float64, layer int) bool {
		return end.Sub(start).Length() > 2.0
	}
	anchors := []pcbmodel.TraceAnchor{anchorAt(0, 0, 0), anchorAt(2, 0, 0), anchorAt(2, 2, 0)}
	path, err := pcbmodel.BuildTracePath(anchors, 0.2, 0.1, 0.6, 0.1)
	require.NoError(t, err)

	optimized := Optimize(path, blockLongSpans, 0.2, 0.1, 0.6, 0.1)
	assert.Equal(t, [][2]float64{{0, 0}, {1, 0}, {2, 1}, {2, 2}}, positions(t, optimized.Anchors))
	assert.InDelta(t, 2+1.4142135624, optimized.TotalLength, 1e-6)
}

func TestOptimizeLeavesShortPathUnchanged(t *testing.T) {
	anchors := []pcbmodel.TraceAnchor{anchorAt(0, 0, 0), anchorAt(1, 0, 0)}
	path, err := pcbmodel.BuildTracePath(anchors, 0.2, 0.1, 0.6, 0.1)
	require.NoError(t, err)
	out := Optimize(path, noCollision, 0.2, 0.1, 0.6, 0.1)
	assert.Equal(t, path.TotalLength, out.TotalLength)
	assert.Len(t, out.Anchors, 2)
}
