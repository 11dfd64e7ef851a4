package pcbmodel

import (
	"fmt"
	"math"

	"github.com/LuoZheng2002/bayesian-router/direction"
	"github.com/LuoZheng2002/bayesian-router/fixedpoint"
	"github.com/LuoZheng2002/bayesian-router/geom"
	"github.com/LuoZheng2002/bayesian-router/routererr"
)

// TraceSegment is a straight run of copper on one layer. Invariant:
// Start != End, and Start->End is a valid Direction.
type TraceSegment struct {
	Start, End fixedpoint.Vec2
	Width      float64
	Clearance  float64
	Layer      int
}

// Direction returns the compass direction from Start to End.
func (s TraceSegment) Direction() (direction.Direction, error) {
	return direction.FromPoints(s.Start, s.End)
}

func (s TraceSegment) floatEndpoints() (geom.Vec2, geom.Vec2) {
	sx, sy := s.Start.ToFloat64()
	ex, ey := s.End.ToFloat64()
	return geom.Vec2{X: sx, Y: sy}, geom.Vec2{X: ex, Y: ey}
}

func (s TraceSegment) segmentLength() float64 {
	start, end := s.floatEndpoints()
	return math.Hypot(end.X-start.X, end.Y-start.Y)
}

// Shapes decomposes the segment into two end-cap circles (diameter =
// Width) and a rectangle spanning its length, rotated to match Direction.
func (s TraceSegment) Shapes() []geom.Shape {
	start, end := s.floatEndpoints()
	angle, _ := s.Direction()
	length := s.segmentLength()
	return []geom.Shape{
		geom.NewCircleShape(geom.Circle{Center: start, Diameter: s.Width}),
		geom.NewCircleShape(geom.Circle{Center: end, Diameter: s.Width}),
		geom.NewRectangleShape(geom.Rectangle{
			Center:         geom.Vec2{X: (start.X + end.X) / 2, Y: (start.Y + end.Y) / 2},
			Width:          length,
			Height:         s.Width,
			RotationDegree: angle.ToDegreeAngle(),
		}),
	}
}

// ClearanceShapes inflates the segment's shapes by 2*Clearance on width and
// end-cap diameter.
func (s TraceSegment) ClearanceShapes() []geom.Shape {
	start, end := s.floatEndpoints()
	angle, _ := s.Direction()
	length := s.segmentLength()
	newWidth := s.Width + s.Clearance*2
	return []geom.Shape{
		geom.NewCircleShape(geom.Circle{Center: start, Diameter: newWidth}),
		geom.NewCircleShape(geom.Circle{Center: end, Diameter: newWidth}),
		geom.NewRectangleShape(geom.Rectangle{
			Center:         geom.Vec2{X: (start.X + end.X) / 2, Y: (start.Y + end.Y) / 2},
			Width:          length + s.Clearance*2,
			Height:         newWidth,
			RotationDegree: angle.ToDegreeAngle(),
		}),
	}
}

// CollidesWith reports whether two segments on the same layer collide,
// symmetrically checking self-shapes against other's clearance-shapes and
// vice versa (spec.md §4.2).
func (s TraceSegment) CollidesWith(other TraceSegment) bool {
	if s.Layer != other.Layer {
		return false
	}
	selfShapes := s.Shapes()
	selfClearance := s.ClearanceShapes()
	otherShapes := other.Shapes()
	otherClearance := other.ClearanceShapes()

	for _, a := range selfShapes {
		for _, b := range otherClearance {
			if geom.Collides(a, b) {
				return true
			}
		}
	}
	for _, a := range selfClearance {
		for _, b := range otherShapes {
			if geom.Collides(a, b) {
				return true
			}
		}
	}
	return false
}

// Via is a vertical conductor joining layers MinLayer..MaxLayer at Position.
// Invariant: MinLayer <= MaxLayer.
type Via struct {
	Position           fixedpoint.Vec2
	Diameter           float64
	Clearance          float64
	MinLayer, MaxLayer int
}

func (v Via) center() geom.Vec2 {
	x, y := v.Position.ToFloat64()
	return geom.Vec2{X: x, Y: y}
}

// Shape returns the via's collision/render disc.
func (v Via) Shape() geom.Shape {
	return geom.NewCircleShape(geom.Circle{Center: v.center(), Diameter: v.Diameter})
}

// ClearanceShape returns the via's clearance-inflated disc.
func (v Via) ClearanceShape() geom.Shape {
	return geom.NewCircleShape(geom.Circle{Center: v.center(), Diameter: v.Diameter + v.Clearance*2})
}

// TraceAnchor is a turning point of a TracePath, carrying layer metadata.
// When StartLayer != EndLayer the anchor carries a via.
type TraceAnchor struct {
	Position             fixedpoint.Vec2
	StartLayer, EndLayer int
}

// TracePath is the ordered anchor list for one routed connection, plus the
// segments/vias it induces and a cached TotalLength.
type TracePath struct {
	Anchors     []TraceAnchor
	Segments    []TraceSegment
	Vias        []Via
	TotalLength float64
}

// BuildTracePath reconstructs segments, vias, and total length from an
// anchor list, given the trace's width/clearance/via-diameter. Consecutive
// anchors must share an intermediate layer and must not be coincident.
func BuildTracePath(anchors []TraceAnchor, width, clearance, viaDiameter, viaClearance float64) (TracePath, error) {
	if len(anchors) < 1 {
		return TracePath{}, fmt.Errorf("%w: trace path needs at least one anchor", routererr.ErrInvalidInput)
	}
	var segments []TraceSegment
	var vias []Via
	var total float64

	for i := 0; i < len(anchors); i++ {
		a := anchors[i]
		if a.StartLayer != a.EndLayer {
			minL, maxL := a.StartLayer, a.EndLayer
			if minL > maxL {
				minL, maxL = maxL, minL
			}
			vias = append(vias, Via{
				Position: a.Position, Diameter: viaDiameter, Clearance: viaClearance,
				MinLayer: minL, MaxLayer: maxL,
			})
		}
		if i+1 >= len(anchors) {
			continue
		}
		b := anchors[i+1]
		if a.Position.Equal(b.Position) {
			return TracePath{}, fmt.Errorf("%w: consecutive anchors are coincident", routererr.ErrInvalidInput)
		}
		if a.EndLayer != b.StartLayer {
			return TracePath{}, fmt.Errorf("%w: anchor layer mismatch at index %d", routererr.ErrInvalidInput, i)
		}
		seg := TraceSegment{
			Start: a.Position, End: b.Position, Width: width, Clearance: clearance, Layer: a.EndLayer,
		}
		segments = append(segments, seg)
		total += seg.segmentLength()
	}

	return TracePath{Anchors: anchors, Segments: segments, Vias: vias, TotalLength: total}, nil
}

// CollidesWith reports whether any segment pair across the two TracePaths
// collides (vias are layer-local points inside pad/trace clearance
// already enforced by A*'s per-edge checks, so path-to-path collision is
// defined purely over segment pairs, matching the original router).
func (p TracePath) CollidesWith(other TracePath) bool {
	for _, a := range p.Segments {
		for _, b := range other.Segments {
			if a.CollidesWith(b) {
				return true
			}
		}
	}
	return false
}

// Score maps TotalLength to a probability in (0, 1], used by the
// probabilistic solver's posterior update: shorter traces score higher.
// halfProbabilityRawScore is the length at which Score returns exactly 0.5.
func (p TracePath) Score(halfProbabilityRawScore float64) float64 {
	k := math.Ln2 / halfProbabilityRawScore
	return math.Exp(-k * p.TotalLength)
}
