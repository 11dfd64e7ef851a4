package routability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuoZheng2002/bayesian-router/fixedpoint"
	"github.com/LuoZheng2002/bayesian-router/obstacle"
	"github.com/LuoZheng2002/bayesian-router/pcbmodel"
)

func openBundle(t *testing.T, numLayers int) *obstacle.Bundle {
	t.Helper()
	return obstacle.NewBuilder(20, 20, fixedpoint.Vec2FromFloat64(0, 0), numLayers).Build()
}

func barrierPad(x float64) pcbmodel.Pad {
	return pcbmodel.Pad{
		Name:      "barrier",
		Position:  fixedpoint.Vec2FromFloat64(x, 0),
		Shape:     pcbmodel.PadShape{Kind: pcbmodel.PadCircle, Diameter: 0.6},
		Clearance: 0.1,
		Layer:     pcbmodel.ThroughHole,
	}
}

func TestConnectedOnOpenBoard(t *testing.T) {
	bundle := openBundle(t, 2)
	grid, err := Build(bundle, 0, 20, 20, fixedpoint.Vec2FromFloat64(0, 0), DefaultConfig())
	require.NoError(t, err)

	ok, err := grid.Connected(fixedpoint.Vec2FromFloat64(-8, 0), fixedpoint.Vec2FromFloat64(8, 0))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDisconnectedBehindFullWidthBarrier(t *testing.T) {
	builder := obstacle.NewBuilder(20, 20, fixedpoint.Vec2FromFloat64(0, 0), 2)
	for y := -10.0; y <= 10.0; y += 0.4 {
		pad := barrierPad(0)
		pad.Position = fixedpoint.Vec2FromFloat64(0, y)
		builder.AddPad(pad)
	}
	bundle := builder.Build()

	cfg := Config{CellSize: 0.5}
	grid, err := Build(bundle, 0, 20, 20, fixedpoint.Vec2FromFloat64(0, 0), cfg)
	require.NoError(t, err)

	ok, err := grid.Connected(fixedpoint.Vec2FromFloat64(-8, 0), fixedpoint.Vec2FromFloat64(8, 0))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConnectedRejectsOutOfRangeLayer(t *testing.T) {
	bundle := openBundle(t, 2)
	_, err := Build(bundle, 5, 20, 20, fixedpoint.Vec2FromFloat64(0, 0), DefaultConfig())
	assert.Error(t, err)
}

func TestConnectedRejectsPositionOutsideBoard(t *testing.T) {
	bundle := openBundle(t, 2)
	grid, err := Build(bundle, 0, 20, 20, fixedpoint.Vec2FromFloat64(0, 0), DefaultConfig())
	require.NoError(t, err)

	_, err = grid.Connected(fixedpoint.Vec2FromFloat64(0, 0), fixedpoint.Vec2FromFloat64(1000, 1000))
	assert.Error(t, err)
}
