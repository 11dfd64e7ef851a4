package proba

import (
	"github.com/LuoZheng2002/bayesian-router/pcbmodel"
	"github.com/LuoZheng2002/bayesian-router/render"
)

// publish renders the model's current state as a Snapshot and offers it
// to the render slot: every fixed trace drawn solid, every candidate drawn
// transparent, mirroring create_and_solve's display_and_block closure.
func (m *Model) publish() {
	if m.Render == nil {
		return
	}
	var padShapes []render.ShapeRenderable
	addPad := func(pad pcbmodel.Pad, color [4]float32) {
		for _, shp := range pad.Shapes() {
			padShapes = append(padShapes, render.ShapeRenderable{Shape: shp, Color: color})
		}
	}
	for _, net := range m.Problem.Nets {
		addPad(net.SourcePad, net.Color)
		for _, conn := range net.Connections {
			addPad(conn.SinkPad, net.Color)
		}
	}

	var batches []render.RenderableBatch
	for connID, ct := range m.traces {
		color := m.refs[connID].net.Color
		if ct.isFixed() {
			batches = append(batches, traceBatch(ct.fixed.TracePath, color, render.DrawLine))
			continue
		}
		for _, cand := range ct.candidates {
			batches = append(batches, traceBatch(cand.TracePath, color, render.DrawTransparent))
		}
	}

	snap := render.Snapshot{
		Width:        m.Problem.Width,
		Height:       m.Problem.Height,
		Center:       m.Problem.Center,
		TraceBatches: batches,
		PadShapes:    padShapes,
	}
	m.Render.Publish(snap)
}

func traceBatch(path pcbmodel.TracePath, color [4]float32, mode render.DrawMode) render.RenderableBatch {
	var shapes []render.ShapeRenderable
	for _, seg := range path.Segments {
		for _, shp := range seg.Shapes() {
			shapes = append(shapes, render.ShapeRenderable{Shape: shp, Color: color})
		}
	}
	return render.RenderableBatch{Renderables: shapes, Mode: mode}
}
