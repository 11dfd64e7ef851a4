// Package geom implements the collision primitives C2 specifies: circles,
// oriented rectangles, and line segments, plus pairwise intersection tests.
// All math runs in float64 world coordinates (shapes are built from
// FixedPoint positions but the SAT/analytic tests themselves do not need
// fixed-point determinism — only the anchors that produce them do).
package geom

import "math"

// Vec2 is a plain float64 2D point, used for shape geometry once a
// fixedpoint.Vec2 anchor has been converted to world space.
type Vec2 struct {
	X, Y float64
}

// Circle is a disc collider.
type Circle struct {
	Center   Vec2
	Diameter float64
}

func (c Circle) Radius() float64 { return c.Diameter / 2 }

// Rectangle is an oriented rectangle collider, rotation in degrees
// counterclockwise from +X, matching Direction.ToDegreeAngle's convention.
type Rectangle struct {
	Center         Vec2
	Width, Height  float64
	RotationDegree float64
}

// Segment is a line collider between two endpoints.
type Segment struct {
	Start, End Vec2
}

// axes returns the rectangle's two unit face-normal axes.
func (r Rectangle) axes() [2]Vec2 {
	rad := r.RotationDegree * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	return [2]Vec2{
		{X: cos, Y: sin},
		{X: -sin, Y: cos},
	}
}

// corners returns the four corner points in world space.
func (r Rectangle) corners() [4]Vec2 {
	axes := r.axes()
	hw, hh := r.Width/2, r.Height/2
	ex := Vec2{X: axes[0].X * hw, Y: axes[0].Y * hw}
	ey := Vec2{X: axes[1].X * hh, Y: axes[1].Y * hh}
	c := r.Center
	return [4]Vec2{
		{X: c.X + ex.X + ey.X, Y: c.Y + ex.Y + ey.Y},
		{X: c.X - ex.X + ey.X, Y: c.Y - ex.Y + ey.Y},
		{X: c.X - ex.X - ey.X, Y: c.Y - ex.Y - ey.Y},
		{X: c.X + ex.X - ey.X, Y: c.Y + ex.Y - ey.Y},
	}
}

func dot(a, b Vec2) float64 { return a.X*b.X + a.Y*b.Y }

func sub(a, b Vec2) Vec2 { return Vec2{X: a.X - b.X, Y: a.Y - b.Y} }

func length(a Vec2) float64 { return math.Hypot(a.X, a.Y) }

// project returns the [min, max] projection of points onto axis.
func project(points []Vec2, axis Vec2) (float64, float64) {
	min := dot(points[0], axis)
	max := min
	for _, p := range points[1:] {
		v := dot(p, axis)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

func overlaps1D(minA, maxA, minB, maxB float64) bool {
	return minA <= maxB && minB <= maxA
}

// RectanglesCollide performs the separating-axis test between two oriented
// rectangles: if any of the (up to four distinct) face-normal axes
// separates their projected corners, there is no collision.
func RectanglesCollide(a, b Rectangle) bool {
	cornersA := a.corners()
	cornersB := b.corners()
	ptsA := cornersA[:]
	ptsB := cornersB[:]

	axesA, axesB := a.axes(), b.axes()
	axes := append(append([]Vec2{}, axesA[:]...), axesB[:]...)
	for _, axis := range axes {
		minA, maxA := project(ptsA, axis)
		minB, maxB := project(ptsB, axis)
		if !overlaps1D(minA, maxA, minB, maxB) {
			return false
		}
	}
	return true
}

// CirclesCollide is exact circle-vs-circle intersection.
func CirclesCollide(a, b Circle) bool {
	d := length(sub(a.Center, b.Center))
	return d <= a.Radius()+b.Radius()
}

// closestPointOnRectangle returns the closest point on (the boundary or
// interior of) r to p, in r's local axis-aligned frame, then maps back to
// world space.
func closestPointOnRectangle(r Rectangle, p Vec2) Vec2 {
	axes := r.axes()
	rel := sub(p, r.Center)
	lx := dot(rel, axes[0])
	ly := dot(rel, axes[1])
	hw, hh := r.Width/2, r.Height/2
	if lx > hw {
		lx = hw
	}
	if lx < -hw {
		lx = -hw
	}
	if ly > hh {
		ly = hh
	}
	if ly < -hh {
		ly = -hh
	}
	return Vec2{
		X: r.Center.X + axes[0].X*lx + axes[1].X*ly,
		Y: r.Center.Y + axes[0].Y*lx + axes[1].Y*ly,
	}
}

// CircleRectangleCollide tests a circle against a rotated rectangle by
// clamping the circle's center into the rectangle's local frame and
// comparing the distance to the clamped point against the radius.
func CircleRectangleCollide(c Circle, r Rectangle) bool {
	closest := closestPointOnRectangle(r, c.Center)
	return length(sub(c.Center, closest)) <= c.Radius()
}

// SegmentsIntersect reports whether two segments intersect, including
// touching endpoints and collinear overlap.
func SegmentsIntersect(a, b Segment) bool {
	d1 := direction3(b.Start, b.End, a.Start)
	d2 := direction3(b.Start, b.End, a.End)
	d3 := direction3(a.Start, a.End, b.Start)
	d4 := direction3(a.Start, a.End, b.End)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	if d1 == 0 && onSegment(b.Start, b.End, a.Start) {
		return true
	}
	if d2 == 0 && onSegment(b.Start, b.End, a.End) {
		return true
	}
	if d3 == 0 && onSegment(a.Start, a.End, b.Start) {
		return true
	}
	if d4 == 0 && onSegment(a.Start, a.End, b.End) {
		return true
	}
	return false
}

func direction3(a, b, c Vec2) float64 {
	return (c.X-a.X)*(b.Y-a.Y) - (c.Y-a.Y)*(b.X-a.X)
}

func onSegment(a, b, p Vec2) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}

// SegmentRectangleCollide tests a segment against a rotated rectangle: the
// segment collides if either endpoint lies inside the rectangle or the
// segment crosses any of the rectangle's four edges.
func SegmentRectangleCollide(s Segment, r Rectangle) bool {
	corners := r.corners()
	if pointInRectangle(r, s.Start) || pointInRectangle(r, s.End) {
		return true
	}
	for i := 0; i < 4; i++ {
		edge := Segment{Start: corners[i], End: corners[(i+1)%4]}
		if SegmentsIntersect(s, edge) {
			return true
		}
	}
	return false
}

func pointInRectangle(r Rectangle, p Vec2) bool {
	axes := r.axes()
	rel := sub(p, r.Center)
	lx := dot(rel, axes[0])
	ly := dot(rel, axes[1])
	return math.Abs(lx) <= r.Width/2 && math.Abs(ly) <= r.Height/2
}

// SegmentCircleCollide tests a segment against a circle via closest-point
// distance.
func SegmentCircleCollide(s Segment, c Circle) bool {
	closest := closestPointOnSegment(s, c.Center)
	return length(sub(c.Center, closest)) <= c.Radius()
}

func closestPointOnSegment(s Segment, p Vec2) Vec2 {
	ab := sub(s.End, s.Start)
	abLenSq := dot(ab, ab)
	if abLenSq == 0 {
		return s.Start
	}
	t := dot(sub(p, s.Start), ab) / abLenSq
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return Vec2{X: s.Start.X + ab.X*t, Y: s.Start.Y + ab.Y*t}
}
