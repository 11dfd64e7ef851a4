package obstacle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuoZheng2002/bayesian-router/fixedpoint"
	"github.com/LuoZheng2002/bayesian-router/geom"
	"github.com/LuoZheng2002/bayesian-router/pcbmodel"
)

func TestBuilderAddPadPopulatesLayer(t *testing.T) {
	b := NewBuilder(20, 20, fixedpoint.Vec2FromFloat64(0, 0), 2)
	pad := pcbmodel.Pad{
		Position: fixedpoint.Vec2FromFloat64(1, 1),
		Shape:    pcbmodel.PadShape{Kind: pcbmodel.PadCircle, Diameter: 1},
		Clearance: 0.2,
		Layer:    pcbmodel.FrontOnly,
	}
	b.AddPad(pad)
	bundle := b.Build()

	require.Len(t, bundle.Layers, 2)
	assert.Len(t, bundle.Layers[0].Shapes, 1)
	assert.Empty(t, bundle.Layers[1].Shapes)

	probe := geom.NewCircleShape(geom.Circle{Center: geom.Vec2{X: 1, Y: 1}, Diameter: 0.1})
	assert.True(t, bundle.Layers[0].Tree.AnyCollides(probe))
	assert.False(t, bundle.Layers[1].Tree.AnyCollides(probe))
}

func TestBuilderThroughHoleSpansAllLayers(t *testing.T) {
	b := NewBuilder(20, 20, fixedpoint.Vec2FromFloat64(0, 0), 3)
	pad := pcbmodel.Pad{
		Position: fixedpoint.Vec2FromFloat64(0, 0),
		Shape:    pcbmodel.PadShape{Kind: pcbmodel.PadCircle, Diameter: 1},
		Layer:    pcbmodel.ThroughHole,
	}
	b.AddPad(pad)
	bundle := b.Build()
	for i := 0; i < 3; i++ {
		assert.Len(t, bundle.Layers[i].Shapes, 1)
	}
}

func TestBuilderAddTracePathVia(t *testing.T) {
	b := NewBuilder(20, 20, fixedpoint.Vec2FromFloat64(0, 0), 3)
	anchors := []pcbmodel.TraceAnchor{
		{Position: fixedpoint.Vec2FromFloat64(0, 0), StartLayer: 0, EndLayer: 0},
		{Position: fixedpoint.Vec2FromFloat64(1, 0), StartLayer: 0, EndLayer: 2},
		{Position: fixedpoint.Vec2FromFloat64(2, 0), StartLayer: 2, EndLayer: 2},
	}
	path, err := pcbmodel.BuildTracePath(anchors, 0.2, 0.1, 0.6, 0.1)
	require.NoError(t, err)

	b.AddTracePath(path)
	bundle := b.Build()
	assert.NotEmpty(t, bundle.Layers[0].Shapes)
	assert.NotEmpty(t, bundle.Layers[1].Shapes, "via should populate the intermediate layer")
	assert.NotEmpty(t, bundle.Layers[2].Shapes)
}
