package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCirclesCollide(t *testing.T) {
	a := Circle{Center: Vec2{0, 0}, Diameter: 2}
	b := Circle{Center: Vec2{1.5, 0}, Diameter: 2}
	assert.True(t, CirclesCollide(a, b))

	c := Circle{Center: Vec2{10, 0}, Diameter: 2}
	assert.False(t, CirclesCollide(a, c))
}

func TestRectanglesCollideAxisAligned(t *testing.T) {
	a := Rectangle{Center: Vec2{0, 0}, Width: 2, Height: 2}
	b := Rectangle{Center: Vec2{1.5, 0}, Width: 2, Height: 2}
	assert.True(t, RectanglesCollide(a, b))

	c := Rectangle{Center: Vec2{10, 0}, Width: 2, Height: 2}
	assert.False(t, RectanglesCollide(a, c))
}

func TestRectanglesCollideRotated(t *testing.T) {
	a := Rectangle{Center: Vec2{0, 0}, Width: 4, Height: 1, RotationDegree: 0}
	// b is a's rectangle rotated 90° (long axis now vertical) and shifted
	// up far enough that the two half-extents along y no longer overlap.
	b := Rectangle{Center: Vec2{0, 3.0}, Width: 4, Height: 1, RotationDegree: 90}
	assert.False(t, RectanglesCollide(a, b))

	c := Rectangle{Center: Vec2{0, 1.0}, Width: 4, Height: 1, RotationDegree: 90}
	assert.True(t, RectanglesCollide(a, c))
}

func TestSegmentsIntersect(t *testing.T) {
	a := Segment{Start: Vec2{0, 0}, End: Vec2{2, 2}}
	b := Segment{Start: Vec2{0, 2}, End: Vec2{2, 0}}
	assert.True(t, SegmentsIntersect(a, b))

	c := Segment{Start: Vec2{5, 5}, End: Vec2{6, 6}}
	assert.False(t, SegmentsIntersect(a, c))
}

func TestCircleRectangleCollide(t *testing.T) {
	r := Rectangle{Center: Vec2{0, 0}, Width: 2, Height: 2}
	inside := Circle{Center: Vec2{0, 0}, Diameter: 0.1}
	assert.True(t, CircleRectangleCollide(inside, r))

	far := Circle{Center: Vec2{10, 10}, Diameter: 1}
	assert.False(t, CircleRectangleCollide(far, r))
}

func TestCollidesDispatch(t *testing.T) {
	circle := NewCircleShape(Circle{Center: Vec2{0, 0}, Diameter: 2})
	rect := NewRectangleShape(Rectangle{Center: Vec2{0.5, 0}, Width: 1, Height: 1})
	seg := NewSegmentShape(Segment{Start: Vec2{-5, -5}, End: Vec2{-3, -3}})

	assert.True(t, Collides(circle, rect))
	assert.False(t, Collides(circle, seg))
	assert.True(t, AnyCollides(circle, []Shape{seg, rect}))
}

func TestBoundingBox(t *testing.T) {
	circle := NewCircleShape(Circle{Center: Vec2{1, 1}, Diameter: 4})
	bb := circle.BoundingBox()
	assert.Equal(t, 4.0, bb.Width)
	assert.Equal(t, 4.0, bb.Height)

	seg := NewSegmentShape(Segment{Start: Vec2{0, 0}, End: Vec2{3, 4}})
	bb = seg.BoundingBox()
	assert.Equal(t, 3.0, bb.Width)
	assert.Equal(t, 4.0, bb.Height)
}
