// Package obstacle assembles the per-layer obstacle bundle A* queries
// against: per-layer shape lists, clearance-shape lists, and their quadtree
// indices, built fresh once per solver step and shared read-only across
// sibling A* invocations within that step (spec.md §4.3, §5).
package obstacle

import (
	"github.com/LuoZheng2002/bayesian-router/fixedpoint"
	"github.com/LuoZheng2002/bayesian-router/geom"
	"github.com/LuoZheng2002/bayesian-router/pcbmodel"
	"github.com/LuoZheng2002/bayesian-router/quadtree"
)

// Layer holds one layer's obstacle shapes, clearance shapes, and their
// quadtree indices.
type Layer struct {
	Shapes          []geom.Shape
	ClearanceShapes []geom.Shape
	Tree            *quadtree.Node
	ClearanceTree   *quadtree.Node
}

// Bundle is the full per-layer obstacle set for one A* invocation. It is
// never mutated after Build returns; A* only reads it.
type Bundle struct {
	Layers []Layer // indexed by layer number, 0..numLayers-1
}

// Builder accumulates obstacle owners (pads, fixed traces, candidate
// traces) before a single Build call constructs the quadtrees. This mirrors
// the naive backtrack solver's pattern of assembling "other-net pads plus
// other-net fixed traces" fresh on every step (spec.md §4.5).
type Builder struct {
	center    geom.Vec2
	halfSize  float64
	numLayers int
	perLayer  []Layer
}

// NewBuilder starts an empty obstacle bundle builder sized to the board:
// the quadtree root covers max(width, height) centered on the board,
// exactly as spec.md §4.1 specifies.
func NewBuilder(boardWidth, boardHeight float64, center fixedpoint.Vec2, numLayers int) *Builder {
	cx, cy := center.ToFloat64()
	halfSize := maxF(boardWidth, boardHeight) / 2
	layers := make([]Layer, numLayers)
	return &Builder{
		center: geom.Vec2{X: cx, Y: cy}, halfSize: halfSize, numLayers: numLayers, perLayer: layers,
	}
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// AddPad registers a pad's shapes and clearance shapes on every layer the
// pad occupies.
func (b *Builder) AddPad(pad pcbmodel.Pad) {
	shapes := pad.Shapes()
	clearanceShapes := pad.ClearanceShapes()
	for _, layer := range pad.Layer.Layers(b.numLayers) {
		if layer < 0 || layer >= b.numLayers {
			continue
		}
		b.perLayer[layer].Shapes = append(b.perLayer[layer].Shapes, shapes...)
		b.perLayer[layer].ClearanceShapes = append(b.perLayer[layer].ClearanceShapes, clearanceShapes...)
	}
}

// AddTracePath registers a committed or candidate trace's segments and
// vias on every layer they touch.
func (b *Builder) AddTracePath(path pcbmodel.TracePath) {
	for _, seg := range path.Segments {
		if seg.Layer < 0 || seg.Layer >= b.numLayers {
			continue
		}
		b.perLayer[seg.Layer].Shapes = append(b.perLayer[seg.Layer].Shapes, seg.Shapes()...)
		b.perLayer[seg.Layer].ClearanceShapes = append(b.perLayer[seg.Layer].ClearanceShapes, seg.ClearanceShapes()...)
	}
	for _, via := range path.Vias {
		for layer := via.MinLayer; layer <= via.MaxLayer; layer++ {
			if layer < 0 || layer >= b.numLayers {
				continue
			}
			b.perLayer[layer].Shapes = append(b.perLayer[layer].Shapes, via.Shape())
			b.perLayer[layer].ClearanceShapes = append(b.perLayer[layer].ClearanceShapes, via.ClearanceShape())
		}
	}
}

// Build constructs the quadtrees for every layer and returns the immutable
// Bundle.
func (b *Builder) Build() *Bundle {
	out := &Bundle{Layers: make([]Layer, b.numLayers)}
	for i := 0; i < b.numLayers; i++ {
		shapes := b.perLayer[i].Shapes
		clearanceShapes := b.perLayer[i].ClearanceShapes

		tree := quadtree.New(b.center, b.halfSize)
		for _, s := range shapes {
			tree.Insert(quadtree.Entry{Shape: s})
		}
		clearanceTree := quadtree.New(b.center, b.halfSize)
		for _, s := range clearanceShapes {
			clearanceTree.Insert(quadtree.Entry{Shape: s})
		}
		out.Layers[i] = Layer{
			Shapes: shapes, ClearanceShapes: clearanceShapes, Tree: tree, ClearanceTree: clearanceTree,
		}
	}
	return out
}
