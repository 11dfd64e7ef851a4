// Package direction implements the eight-way compass discretization A*
// branches over: N, NE, E, SE, S, SW, W, NW, plus the rotation and
// classification helpers the pathfinder and post-optimizer both need.
package direction

import (
	"errors"
	"fmt"

	"github.com/LuoZheng2002/bayesian-router/fixedpoint"
)

// Direction is one of the eight compass directions used as the branching
// set of A* and as the classification of any two grid-aligned points.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
	TopRight
	TopLeft
	BottomRight
	BottomLeft
)

// ErrNotAligned is returned by FromPoints when two points do not form a
// valid compass direction: neither axis-aligned nor a true 45° diagonal.
var ErrNotAligned = errors.New("direction: points are not grid-aligned")

// ordinals is the rotation-friendly ordering used by Left90/Right90/Left45/
// Right45: rotating by 45° is adding/subtracting 1 mod 8.
var ordinals = [...]Direction{Up, TopRight, Right, BottomRight, Down, BottomLeft, Left, TopLeft}

func (d Direction) toIndex() int {
	for i, o := range ordinals {
		if o == d {
			return i
		}
	}
	panic(fmt.Sprintf("direction: invalid Direction value %d", d))
}

func fromIndex(i int) Direction {
	return ordinals[((i%8)+8)%8]
}

// Opposite returns the direction rotated by 180°.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	case TopRight:
		return BottomLeft
	case TopLeft:
		return BottomRight
	case BottomRight:
		return TopLeft
	case BottomLeft:
		return TopRight
	default:
		panic(fmt.Sprintf("direction: invalid Direction value %d", d))
	}
}

// IsDiagonal reports whether d is one of the four 45°-offset directions.
func (d Direction) IsDiagonal() bool {
	switch d {
	case TopRight, TopLeft, BottomRight, BottomLeft:
		return true
	default:
		return false
	}
}

// ToDegreeAngle returns the standard math-convention angle (0° = +X,
// counterclockwise) used to orient a trace segment's rectangle collider.
func (d Direction) ToDegreeAngle() float64 {
	switch d {
	case Right:
		return 0
	case TopRight:
		return 45
	case Up:
		return 90
	case TopLeft:
		return 135
	case Left:
		return 180
	case BottomLeft:
		return 225
	case Down:
		return 270
	case BottomRight:
		return 315
	default:
		panic(fmt.Sprintf("direction: invalid Direction value %d", d))
	}
}

// Left90 rotates 90° counterclockwise.
func (d Direction) Left90() Direction { return fromIndex(d.toIndex() - 2) }

// Right90 rotates 90° clockwise.
func (d Direction) Right90() Direction { return fromIndex(d.toIndex() + 2) }

// Left45 rotates 45° counterclockwise.
func (d Direction) Left45() Direction { return fromIndex(d.toIndex() - 1) }

// Right45 rotates 45° clockwise.
func (d Direction) Right45() Direction { return fromIndex(d.toIndex() + 1) }

// All returns the eight directions in a stable, canonical order.
func All() []Direction {
	return []Direction{Up, Down, Left, Right, TopRight, TopLeft, BottomRight, BottomLeft}
}

// ToIntVec2 returns the unit step (dx, dy) for d.
func (d Direction) ToIntVec2() (int, int) {
	switch d {
	case Up:
		return 0, 1
	case Down:
		return 0, -1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case TopRight:
		return 1, 1
	case TopLeft:
		return -1, 1
	case BottomRight:
		return 1, -1
	case BottomLeft:
		return -1, -1
	default:
		panic(fmt.Sprintf("direction: invalid Direction value %d", d))
	}
}

// ToFixedVec2 returns the unit step scaled by scale, used to generate A*
// successor positions (scale = ASTAR_STRIDE) or post-optimizer displacements
// (scale = DELTA or a multiple of it).
func (d Direction) ToFixedVec2(scale fixedpoint.FixedPoint) fixedpoint.Vec2 {
	dx, dy := d.ToIntVec2()
	return fixedpoint.NewVec2(scale.Scale(int64(dx)), scale.Scale(int64(dy)))
}

// FromPoints classifies the direction from start to end. Two points form a
// valid Direction iff they are equal on one axis (pure horizontal/vertical)
// or their |Δx| = |Δy| (a true 45° diagonal); anything else is ErrNotAligned.
func FromPoints(start, end fixedpoint.Vec2) (Direction, error) {
	dx := end.X.Sub(start.X)
	dy := end.Y.Sub(start.Y)
	diff := dy.Abs().Sub(dx.Abs())

	switch {
	case dx == 0 && dy > 0 && diff > 0:
		return Up, nil
	case dx == 0 && dy < 0 && diff > 0:
		return Down, nil
	case dx > 0 && dy == 0 && diff < 0:
		return Right, nil
	case dx < 0 && dy == 0 && diff < 0:
		return Left, nil
	case dx > 0 && dy > 0 && diff == 0:
		return TopRight, nil
	case dx < 0 && dy > 0 && diff == 0:
		return TopLeft, nil
	case dx > 0 && dy < 0 && diff == 0:
		return BottomRight, nil
	case dx < 0 && dy < 0 && diff == 0:
		return BottomLeft, nil
	default:
		return 0, fmt.Errorf("%w: dx=%v dy=%v", ErrNotAligned, dx.ToFloat64(), dy.ToFloat64())
	}
}

// IsTwoPointsValidDirection reports whether start and end form a valid
// Direction, without needing to consume the classification itself.
func IsTwoPointsValidDirection(start, end fixedpoint.Vec2) bool {
	_, err := FromPoints(start, end)
	return err == nil
}
