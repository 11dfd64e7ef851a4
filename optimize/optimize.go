// Package optimize implements the anchor-rewrite passes C6 specifies:
// collinear merge, right-angle relaxation, parallel shift, and convex
// tightening, each guarded by a caller-supplied collision oracle so the
// optimizer never introduces a new obstacle conflict while shortening a
// TracePath.
package optimize

import (
	"github.com/LuoZheng2002/bayesian-router/direction"
	"github.com/LuoZheng2002/bayesian-router/fixedpoint"
	"github.com/LuoZheng2002/bayesian-router/pcbmodel"
)

// CollisionChecker reports whether a straight run from start to end on
// layer at the given width/clearance would collide with anything. The
// caller owns the obstacle set (an obstacle.Bundle, typically), keeping
// this package free of any dependency on quadtree/obstacle.
type CollisionChecker func(start, end fixedpoint.Vec2, width, clearance float64, layer int) bool

// Optimize rewrites path's anchor list in place by repeatedly applying the
// three rules below until a full pass makes no further change, then
// rebuilds the TracePath (segments, vias, and length all fall out of
// pcbmodel.BuildTracePath, so this package tracks no length bookkeeping of
// its own). Paths shorter than three anchors are returned unchanged — there
// is no window for any rule to match.
func Optimize(path pcbmodel.TracePath, check CollisionChecker, width, clearance, viaDiameter, viaClearance float64) pcbmodel.TracePath {
	if len(path.Anchors) < 3 {
		return path
	}
	optimized := append([]pcbmodel.TraceAnchor(nil), path.Anchors...)

	for {
		changed1 := collinearAndRightAngle(&optimized, check, width, clearance)
		changed2 := parallelShift(&optimized, check, width, clearance)
		changed3 := tightWrap(&optimized, check, width, clearance)
		if !changed1 && !changed2 && !changed3 {
			break
		}
	}

	rebuilt, err := pcbmodel.BuildTracePath(optimized, width, clearance, viaDiameter, viaClearance)
	if err != nil {
		// The rules above never move an anchor onto its neighbor without
		// removing one of the pair, so BuildTracePath should never reject
		// the result; fall back to the pre-optimization path defensively.
		return path
	}
	return rebuilt
}

func isRightAngle(dir1, dir2 direction.Direction) bool {
	angle := abs(dir1.ToDegreeAngle() - dir2.ToDegreeAngle())
	return angle == 90.0 || angle == 270.0
}

// isConvex reports whether dir2 bisects the turn from dir1 to dir3 at a
// right angle, the signature of a convex corner tight-wrapping can round.
func isConvex(dir1, dir2, dir3 direction.Direction) bool {
	angle1 := abs(dir1.ToDegreeAngle() - dir3.ToDegreeAngle())
	angle2 := abs(dir1.ToDegreeAngle()+dir3.ToDegreeAngle()) / 2.0
	return (angle1 == 90.0 || angle1 == 270.0) && angle2 == dir2.ToDegreeAngle()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func removeAt(s []pcbmodel.TraceAnchor, idx int) []pcbmodel.TraceAnchor {
	return append(s[:idx], s[idx+1:]...)
}

func insertAt(s []pcbmodel.TraceAnchor, idx int, v pcbmodel.TraceAnchor) []pcbmodel.TraceAnchor {
	s = append(s, pcbmodel.TraceAnchor{})
	copy(s[idx+1:], s[idx:])
	s[idx] = v
	return s
}

func maxAbsComponent(v fixedpoint.Vec2) fixedpoint.FixedPoint {
	return fixedpoint.Max(v.X.Abs(), v.Y.Abs())
}
