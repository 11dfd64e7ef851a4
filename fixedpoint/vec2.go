package fixedpoint

import "math"

// Vec2 is a pair of FixedPoints. A* node positions are always grid-snapped
// (spec.md §3); callers that need an unsnapped intermediate value use plain
// arithmetic and snap only the final anchor.
type Vec2 struct {
	X, Y FixedPoint
}

// NewVec2 builds a Vec2 from two FixedPoints.
func NewVec2(x, y FixedPoint) Vec2 {
	return Vec2{X: x, Y: y}
}

// Vec2FromFloat64 builds a Vec2 from float64 world coordinates.
func Vec2FromFloat64(x, y float64) Vec2 {
	return Vec2{X: FromFloat64(x), Y: FromFloat64(y)}
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X.Add(other.X), Y: v.Y.Add(other.Y)}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X.Sub(other.X), Y: v.Y.Sub(other.Y)}
}

// Scale multiplies both components by factor.
func (v Vec2) Scale(factor FixedPoint) Vec2 {
	return Vec2{X: v.X.Mul(factor), Y: v.Y.Mul(factor)}
}

// Equal reports whether v and other represent the same grid point.
func (v Vec2) Equal(other Vec2) bool {
	return v.X == other.X && v.Y == other.Y
}

// LengthSquared returns the squared Euclidean length, as a float64 since
// the square of a fixed-point value routinely exceeds int64 headroom for
// board-scale distances once combined with accumulated path lengths.
func (v Vec2) LengthSquared() float64 {
	x := v.X.ToFloat64()
	y := v.Y.ToFloat64()
	return x*x + y*y
}

// Length returns the Euclidean length.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// ToFloat64 returns the (x, y) pair as float64s.
func (v Vec2) ToFloat64() (float64, float64) {
	return v.X.ToFloat64(), v.Y.ToFloat64()
}
