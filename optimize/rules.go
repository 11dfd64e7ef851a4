package optimize

import (
	"github.com/LuoZheng2002/bayesian-router/direction"
	"github.com/LuoZheng2002/bayesian-router/fixedpoint"
	"github.com/LuoZheng2002/bayesian-router/pcbmodel"
)

// collinearAndRightAngle scans every inline 3-anchor window, dropping the
// middle anchor when both legs share a direction and relaxing true right
// angles toward a 45° chamfer when the collision oracle allows it.
func collinearAndRightAngle(optimizedPtr *[]pcbmodel.TraceAnchor, check CollisionChecker, width, clearance float64) bool {
	optimized := *optimizedPtr
	defer func() { *optimizedPtr = optimized }()

	anyChange := false
	i := 0
	success := false
	for i < len(optimized)-2 {
		p1 := optimized[i].Position
		p2 := optimized[i+1].Position
		p3 := optimized[i+2].Position

		if optimized[i].EndLayer == optimized[i+1].StartLayer &&
			optimized[i+1].StartLayer == optimized[i+1].EndLayer &&
			optimized[i+1].EndLayer == optimized[i+2].StartLayer {
			myLayer := optimized[i].EndLayer
			dir1, err1 := direction.FromPoints(p1, p2)
			dir2, err2 := direction.FromPoints(p2, p3)
			if err1 == nil && err2 == nil {
				switch {
				case dir1 == dir2:
					optimized = removeAt(optimized, i+1)
					success = true
					anyChange = true
				case isRightAngle(dir1, dir2):
					if maxAbsComponent(p3.Sub(p2)) > fixedpoint.DELTA && maxAbsComponent(p1.Sub(p2)) > fixedpoint.DELTA {
						newPos1 := p2.Sub(dir1.ToFixedVec2(fixedpoint.DELTA))
						newPos2 := p2.Add(dir2.ToFixedVec2(fixedpoint.DELTA))
						if !check(newPos1, newPos2, width, clearance, myLayer) {
							switch {
							case p1.Equal(newPos1) && p3.Equal(newPos2):
								optimized = removeAt(optimized, i+1)
								i--
							case p3.Equal(newPos2):
								optimized[i+1].Position = newPos1
							case p1.Equal(newPos1):
								optimized[i+1].Position = newPos2
							default:
								optimized = insertAt(optimized, i+1, pcbmodel.TraceAnchor{
									Position: newPos1, StartLayer: myLayer, EndLayer: myLayer,
								})
								optimized[i+2].Position = newPos2
							}
							anyChange = true
						}
					} else {
						step := fixedpoint.Min(maxAbsComponent(p3.Sub(p2)), maxAbsComponent(p1.Sub(p2)))
						newPos1 := p2.Sub(dir1.ToFixedVec2(step))
						newPos2 := p2.Add(dir2.ToFixedVec2(step))
						if !check(newPos1, newPos2, width, clearance, myLayer) {
							switch {
							case p1.Equal(newPos1) && p2.Equal(newPos2):
								optimized = removeAt(optimized, i+1)
								i--
							case p1.Equal(newPos1):
								optimized[i+1].Position = newPos2
							default:
								optimized[i+1].Position = newPos1
							}
							anyChange = true
						}
					}
				}
			}
		}
		i++
		if i >= len(optimized)-2 && success {
			i = 0
			success = false
		}
	}
	return anyChange
}

// parallelShift looks for two parallel legs separated by a single
// perpendicular jog and slides the jog to one end of the run when doing so
// stays collision-free, shortening the path by one anchor.
func parallelShift(optimizedPtr *[]pcbmodel.TraceAnchor, check CollisionChecker, width, clearance float64) bool {
	optimized := *optimizedPtr
	defer func() { *optimizedPtr = optimized }()

	anyChange := false
	i := 0
	success := false
	for i < len(optimized)-3 {
		p0 := optimized[i].Position
		p1 := optimized[i+1].Position
		p2 := optimized[i+2].Position
		p3 := optimized[i+3].Position

		if optimized[i].EndLayer == optimized[i+1].StartLayer &&
			optimized[i+1].StartLayer == optimized[i+1].EndLayer &&
			optimized[i+1].EndLayer == optimized[i+2].StartLayer &&
			optimized[i+2].StartLayer == optimized[i+2].EndLayer &&
			optimized[i+2].EndLayer == optimized[i+3].StartLayer {
			myLayer := optimized[i].EndLayer

			var dir0 *direction.Direction
			if i != 0 {
				if d, err := direction.FromPoints(optimized[i-1].Position, p0); err == nil {
					dir0 = &d
				}
			}
			dir1, err1 := direction.FromPoints(p0, p1)
			dir2, err2 := direction.FromPoints(p1, p2)
			dir3, err3 := direction.FromPoints(p2, p3)
			var dir4 *direction.Direction
			if i != len(optimized)-4 {
				if d, err := direction.FromPoints(p3, optimized[i+4].Position); err == nil {
					dir4 = &d
				}
			}

			if err1 == nil && err2 == nil && err3 == nil &&
				dir1 == dir3 &&
				(dir0 == nil || !isConvex(*dir0, dir1, dir2)) &&
				(dir4 == nil || !isConvex(dir2, dir3, *dir4)) {

				newPoint1 := fixedpoint.NewVec2(p0.X.Add(p2.X).Sub(p1.X), p0.Y.Add(p2.Y).Sub(p1.Y))
				newPoint2 := fixedpoint.NewVec2(p3.X.Sub(p2.X).Add(p1.X), p3.Y.Sub(p2.Y).Add(p1.Y))

				flag1 := !check(p0, newPoint1, width, clearance, myLayer) && !check(newPoint1, p2, width, clearance, myLayer)
				flag2 := !check(p1, newPoint2, width, clearance, myLayer) && !check(newPoint2, p3, width, clearance, myLayer)

				switch {
				case flag1:
					optimized[i+1].Position = newPoint1
					optimized = removeAt(optimized, i+2)
					success = true
					anyChange = true
				case flag2:
					optimized[i+2].Position = newPoint2
					optimized = removeAt(optimized, i+1)
					success = true
					anyChange = true
				}
			}
		}
		i++
		if i >= len(optimized)-3 && success {
			i = 0
			success = false
		}
	}
	return anyChange
}

// tightWrap rounds a convex corner by sliding both adjacent legs' far
// endpoints inward in DELTA*2 steps until the corner is as tight as the
// shorter leg allows, stopping at the first step the collision oracle
// accepts (spec.md §12's symmetric slide — both legs move the same amount
// each iteration, never one arm alone).
func tightWrap(optimizedPtr *[]pcbmodel.TraceAnchor, check CollisionChecker, width, clearance float64) bool {
	optimized := *optimizedPtr
	defer func() { *optimizedPtr = optimized }()

	anyChange := false
	i := 1
	for i < len(optimized)-2 {
		p0 := optimized[i-1].Position
		p1 := optimized[i].Position
		p2 := optimized[i+1].Position
		p3 := optimized[i+2].Position

		if optimized[i-1].EndLayer == optimized[i].StartLayer &&
			optimized[i].StartLayer == optimized[i].EndLayer &&
			optimized[i].EndLayer == optimized[i+1].StartLayer &&
			optimized[i+1].StartLayer == optimized[i+1].EndLayer &&
			optimized[i+1].EndLayer == optimized[i+2].StartLayer {
			myLayer := optimized[i-1].EndLayer
			dir1, err1 := direction.FromPoints(p0, p1)
			dir2, err2 := direction.FromPoints(p1, p2)
			dir3, err3 := direction.FromPoints(p2, p3)

			if err1 == nil && err2 == nil && err3 == nil && isConvex(dir1, dir2, dir3) {
				len1 := maxAbsComponent(p1.Sub(p0))
				len3 := maxAbsComponent(p3.Sub(p2))
				maxLen := fixedpoint.Min(len1, len3)
				numSteps := maxLen.Div(fixedpoint.DELTA).Div(fixedpoint.FromInt(2)).Ceil().ToInt()

				for stepIdx := int64(0); stepIdx <= numSteps; stepIdx++ {
					step := fixedpoint.Min(fixedpoint.FromInt(stepIdx).Mul(fixedpoint.DELTA).Mul(fixedpoint.FromInt(2)), maxLen)
					if step == maxLen {
						break
					}
					newPoint1 := p1.Sub(dir1.ToFixedVec2(maxLen.Sub(step)))
					newPoint2 := p2.Add(dir3.ToFixedVec2(maxLen.Sub(step)))

					leadOK := p0.Equal(newPoint1) || !check(p0, newPoint1, width, clearance, myLayer)
					midOK := !check(newPoint1, newPoint2, width, clearance, myLayer)
					tailOK := newPoint2.Equal(p3) || !check(newPoint2, p3, width, clearance, myLayer)

					if leadOK && midOK && tailOK {
						optimized[i].Position = newPoint1
						optimized[i+1].Position = newPoint2
						if newPoint2.Equal(p3) {
							optimized = removeAt(optimized, i+2)
							i--
						}
						if newPoint1.Equal(p0) {
							// i-1 can be negative when the corner sits at the
							// very start of the path and both ends collapse
							// in the same step; fall back to dropping the
							// anchor at i itself so the duplicate still
							// merges instead of indexing out of range.
							removeIdx := i - 1
							if removeIdx < 0 {
								removeIdx = i
							}
							optimized = removeAt(optimized, removeIdx)
							i--
						}
						anyChange = true
						break
					}
				}
			}
		}
		i++
	}
	return anyChange
}
