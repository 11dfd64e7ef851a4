package geom

import "fmt"

// Kind discriminates which variant a Shape carries.
type Kind int

const (
	KindCircle Kind = iota
	KindRectangle
	KindSegment
)

// Shape is a tagged union over the three collider primitives, mirroring
// the original router's PrimShape enum. Exactly one of Circle/Rectangle/
// Segment is meaningful, selected by Kind.
type Shape struct {
	Kind      Kind
	Circle    Circle
	Rectangle Rectangle
	Segment   Segment
}

// NewCircleShape wraps a Circle as a Shape.
func NewCircleShape(c Circle) Shape { return Shape{Kind: KindCircle, Circle: c} }

// NewRectangleShape wraps a Rectangle as a Shape.
func NewRectangleShape(r Rectangle) Shape { return Shape{Kind: KindRectangle, Rectangle: r} }

// NewSegmentShape wraps a Segment as a Shape.
func NewSegmentShape(s Segment) Shape { return Shape{Kind: KindSegment, Segment: s} }

// Collides dispatches to the appropriate pairwise test for a's and b's
// concrete kinds. Order does not matter: Collides(a, b) == Collides(b, a).
func Collides(a, b Shape) bool {
	switch a.Kind {
	case KindCircle:
		switch b.Kind {
		case KindCircle:
			return CirclesCollide(a.Circle, b.Circle)
		case KindRectangle:
			return CircleRectangleCollide(a.Circle, b.Rectangle)
		case KindSegment:
			return SegmentCircleCollide(b.Segment, a.Circle)
		}
	case KindRectangle:
		switch b.Kind {
		case KindCircle:
			return CircleRectangleCollide(b.Circle, a.Rectangle)
		case KindRectangle:
			return RectanglesCollide(a.Rectangle, b.Rectangle)
		case KindSegment:
			return SegmentRectangleCollide(b.Segment, a.Rectangle)
		}
	case KindSegment:
		switch b.Kind {
		case KindCircle:
			return SegmentCircleCollide(a.Segment, b.Circle)
		case KindRectangle:
			return SegmentRectangleCollide(a.Segment, b.Rectangle)
		case KindSegment:
			return SegmentsIntersect(a.Segment, b.Segment)
		}
	}
	panic(fmt.Sprintf("geom: unhandled shape kinds %v, %v", a.Kind, b.Kind))
}

// AnyCollides reports whether probe collides with any shape in obstacles.
func AnyCollides(probe Shape, obstacles []Shape) bool {
	for _, o := range obstacles {
		if Collides(probe, o) {
			return true
		}
	}
	return false
}

// BoundingBox returns the axis-aligned bounding box of a shape, used by the
// quadtree to decide which node(s) a collider belongs in.
func (s Shape) BoundingBox() Rectangle {
	switch s.Kind {
	case KindCircle:
		d := s.Circle.Diameter
		return Rectangle{Center: s.Circle.Center, Width: d, Height: d, RotationDegree: 0}
	case KindRectangle:
		if s.Rectangle.RotationDegree == 0 {
			return s.Rectangle
		}
		corners := s.Rectangle.corners()
		minX, maxX := corners[0].X, corners[0].X
		minY, maxY := corners[0].Y, corners[0].Y
		for _, c := range corners[1:] {
			if c.X < minX {
				minX = c.X
			}
			if c.X > maxX {
				maxX = c.X
			}
			if c.Y < minY {
				minY = c.Y
			}
			if c.Y > maxY {
				maxY = c.Y
			}
		}
		return Rectangle{
			Center: Vec2{X: (minX + maxX) / 2, Y: (minY + maxY) / 2},
			Width:  maxX - minX, Height: maxY - minY,
		}
	case KindSegment:
		minX := minF(s.Segment.Start.X, s.Segment.End.X)
		maxX := maxF(s.Segment.Start.X, s.Segment.End.X)
		minY := minF(s.Segment.Start.Y, s.Segment.End.Y)
		maxY := maxF(s.Segment.Start.Y, s.Segment.End.Y)
		return Rectangle{
			Center: Vec2{X: (minX + maxX) / 2, Y: (minY + maxY) / 2},
			Width:  maxX - minX, Height: maxY - minY,
		}
	}
	panic(fmt.Sprintf("geom: unhandled shape kind %v", s.Kind))
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
