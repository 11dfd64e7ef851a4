// Package pcbmodel implements the data model C4 and spec.md §3 specify:
// pads, trace segments, vias, anchors, trace paths, connections, nets, and
// the PcbProblem/PcbSolution exchanged with the external parser/writer.
package pcbmodel

import (
	"math"

	"github.com/LuoZheng2002/bayesian-router/fixedpoint"
	"github.com/LuoZheng2002/bayesian-router/geom"
)

// PadShapeKind discriminates PadShape's variant.
type PadShapeKind int

const (
	PadCircle PadShapeKind = iota
	PadRectangle
	PadRoundRect
)

// PadShape is a tagged union over the three pad footprints spec.md §3
// names: Circle(diameter), Rectangle(width,height), RoundRect(width,
// height,cornerRadius).
type PadShape struct {
	Kind         PadShapeKind
	Diameter     float64 // Circle
	Width        float64 // Rectangle, RoundRect
	Height       float64 // Rectangle, RoundRect
	CornerRadius float64 // RoundRect
}

// LayerSpec selects which layers a pad occupies.
type LayerSpec int

const (
	FrontOnly LayerSpec = iota
	BackOnly
	ThroughHole
)

// Layers expands a LayerSpec into the concrete layer indices it occupies on
// a board with numLayers layers (0 = front, numLayers-1 = back).
func (l LayerSpec) Layers(numLayers int) []int {
	switch l {
	case FrontOnly:
		return []int{0}
	case BackOnly:
		return []int{numLayers - 1}
	case ThroughHole:
		out := make([]int, numLayers)
		for i := range out {
			out[i] = i
		}
		return out
	default:
		return nil
	}
}

// Pad is a copper footprint: name, position, shape, rotation, clearance,
// and which layers it occupies. Invariant: Clearance >= 0.
type Pad struct {
	Name            string
	Position        fixedpoint.Vec2
	Shape           PadShape
	RotationDegrees float64
	Clearance       float64
	Layer           LayerSpec
}

func (p Pad) center() geom.Vec2 {
	x, y := p.Position.ToFloat64()
	return geom.Vec2{X: x, Y: y}
}

// Shapes decomposes the pad into its collision/render primitives.
// RoundRect decomposes into two axis-aligned rectangles (one spanning the
// straight vertical run, one spanning the straight horizontal run) plus
// four corner circles of diameter 2*cornerRadius, mirroring the original
// router's cgmath rotation-matrix construction.
func (p Pad) Shapes() []geom.Shape {
	c := p.center()
	switch p.Shape.Kind {
	case PadCircle:
		return []geom.Shape{geom.NewCircleShape(geom.Circle{Center: c, Diameter: p.Shape.Diameter})}
	case PadRectangle:
		return []geom.Shape{geom.NewRectangleShape(geom.Rectangle{
			Center: c, Width: p.Shape.Width, Height: p.Shape.Height, RotationDegree: p.RotationDegrees,
		})}
	case PadRoundRect:
		return p.roundRectShapes(c, 0)
	default:
		return nil
	}
}

// roundRectShapes builds the RoundRect decomposition with every primitive
// inflated individually by extraClearance (0 for the plain shape list,
// p.Clearance for the clearance shape list per the RoundRect clearance
// fidelity supplement — see SPEC_FULL.md §12 item 1).
func (p Pad) roundRectShapes(center geom.Vec2, extraClearance float64) []geom.Shape {
	w, h, r := p.Shape.Width, p.Shape.Height, p.Shape.CornerRadius
	inflate := extraClearance * 2

	vertical := geom.Rectangle{
		Center: center, Width: w - 2*r + inflate, Height: h + inflate, RotationDegree: p.RotationDegrees,
	}
	horizontal := geom.Rectangle{
		Center: center, Width: w + inflate, Height: h - 2*r + inflate, RotationDegree: p.RotationDegrees,
	}

	dy := (h/2 - r)
	dx := (w/2 - r)
	corners := rotateCorners(center, dx, dy, p.RotationDegrees)
	diameter := r*2 + inflate

	shapes := []geom.Shape{
		geom.NewRectangleShape(vertical),
		geom.NewRectangleShape(horizontal),
	}
	for _, corner := range corners {
		shapes = append(shapes, geom.NewCircleShape(geom.Circle{Center: corner, Diameter: diameter}))
	}
	return shapes
}

// rotateCorners returns the four corner-circle centers for a RoundRect pad,
// offset by (±dx, ±dy) in the pad's local frame and rotated by
// rotationDegrees about center.
func rotateCorners(center geom.Vec2, dx, dy, rotationDegrees float64) [4]geom.Vec2 {
	rad := rotationDegrees * (math.Pi / 180)
	cos, sin := math.Cos(rad), math.Sin(rad)
	offsets := [4][2]float64{{dx, dy}, {-dx, dy}, {dx, -dy}, {-dx, -dy}}
	var out [4]geom.Vec2
	for i, off := range offsets {
		rx := off[0]*cos - off[1]*sin
		ry := off[0]*sin + off[1]*cos
		out[i] = geom.Vec2{X: center.X + rx, Y: center.Y + ry}
	}
	return out
}

// ClearanceShapes decomposes the pad into its inflated-by-clearance
// primitives. RoundRect produces the same two-rectangle-plus-four-corner-
// circle decomposition as Shapes, each primitive individually inflated —
// strictly more precise than the original router's single bounding
// rectangle while remaining conservative (see SPEC_FULL.md §12 item 1's
// RoundRect clearance fidelity supplement).
func (p Pad) ClearanceShapes() []geom.Shape {
	c := p.center()
	switch p.Shape.Kind {
	case PadCircle:
		return []geom.Shape{geom.NewCircleShape(geom.Circle{
			Center: c, Diameter: p.Shape.Diameter + p.Clearance*2,
		})}
	case PadRectangle:
		return []geom.Shape{geom.NewRectangleShape(geom.Rectangle{
			Center: c, Width: p.Shape.Width + p.Clearance*2, Height: p.Shape.Height + p.Clearance*2,
			RotationDegree: p.RotationDegrees,
		})}
	case PadRoundRect:
		return p.roundRectShapes(c, p.Clearance)
	default:
		return nil
	}
}
