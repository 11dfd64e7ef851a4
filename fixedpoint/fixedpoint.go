// Package fixedpoint implements deterministic fixed-point scalar and 2D
// vector arithmetic on a constant grid step DELTA.
//
// Every anchor the router places must land on the same grid regardless of
// host platform or Go version, which float64 alone cannot promise across
// builds using different FMA/vectorization paths. FixedPoint stores values
// as a scaled int64 ("ticks") so addition, subtraction, and comparison are
// exact; only Mul/Div round, and they round the same way everywhere.
package fixedpoint

import "math"

// fracBits is the number of fractional bits carried by a FixedPoint value.
// 16 bits gives ~1/65536 resolution, comfortably finer than any clearance
// or trace width a board is likely to specify.
const fracBits = 16

// scale is 2^fracBits, the number of ticks per whole unit.
const scale = 1 << fracBits

// FixedPoint is a signed fixed-point scalar stored as scaled int64 ticks.
type FixedPoint int64

// Zero is the additive identity.
const Zero FixedPoint = 0

// DELTA is the router's grid step: all A* anchors land on integer multiples
// of DELTA, and ASTAR_STRIDE (the planar step length) is itself a multiple
// of DELTA. One DELTA equals one whole unit; components needing a finer or
// coarser grid scale their own distances, not DELTA.
const DELTA FixedPoint = scale

// FromInt converts a whole number to FixedPoint exactly.
func FromInt(v int64) FixedPoint {
	return FixedPoint(v * scale)
}

// FromFloat64 converts a float64 to the nearest representable FixedPoint.
func FromFloat64(v float64) FixedPoint {
	return FixedPoint(math.Round(v * scale))
}

// ToFloat64 returns the value as a float64.
func (f FixedPoint) ToFloat64() float64 {
	return float64(f) / scale
}

// Add returns f + other.
func (f FixedPoint) Add(other FixedPoint) FixedPoint {
	return f + other
}

// Sub returns f - other.
func (f FixedPoint) Sub(other FixedPoint) FixedPoint {
	return f - other
}

// Neg returns -f.
func (f FixedPoint) Neg() FixedPoint {
	return -f
}

// Mul returns f * other, rounding to the nearest tick.
func (f FixedPoint) Mul(other FixedPoint) FixedPoint {
	product := int64(f) * int64(other)
	// product carries 2*fracBits fractional bits; rescale back to fracBits.
	return FixedPoint(divRound(product, scale))
}

// Div returns f / other, rounding to the nearest tick. Div by zero panics,
// mirroring the panic-on-invalid-construction style used for malformed
// configuration elsewhere in this router (never inside the solver's hot
// path, where all divisors are caller-validated non-zero).
func (f FixedPoint) Div(other FixedPoint) FixedPoint {
	if other == 0 {
		panic("fixedpoint: division by zero")
	}
	return FixedPoint(divRound(int64(f)*scale, int64(other)))
}

// Scale multiplies by a plain integer factor without rounding error.
func (f FixedPoint) Scale(factor int64) FixedPoint {
	return f * FixedPoint(factor)
}

// Abs returns the absolute value.
func (f FixedPoint) Abs() FixedPoint {
	if f < 0 {
		return -f
	}
	return f
}

// Max returns the larger of a and b.
func Max(a, b FixedPoint) FixedPoint {
	if a > b {
		return a
	}
	return b
}

// Min returns the smaller of a and b.
func Min(a, b FixedPoint) FixedPoint {
	if a < b {
		return a
	}
	return b
}

// Ceil rounds up to the nearest whole unit (used by the post-optimizer's
// tight-wrapping step count).
func (f FixedPoint) Ceil() FixedPoint {
	if f%scale == 0 {
		return f
	}
	if f > 0 {
		return FixedPoint((int64(f)/scale + 1) * scale)
	}
	return FixedPoint((int64(f) / scale) * scale)
}

// ToInt truncates toward zero after Ceil/Floor have already aligned the
// value to a whole unit; used for loop bounds such as the optimizer's
// num_steps.
func (f FixedPoint) ToInt() int64 {
	return int64(f) / scale
}

// SnapNearestEvenEven rounds f to the nearest even multiple of DELTA (i.e.
// the nearest multiple of 2*DELTA), the grid alignment spec.md §3 requires
// of every A* anchor so 45° diagonal steps stay grid-aligned.
func (f FixedPoint) SnapNearestEvenEven() FixedPoint {
	step := int64(DELTA) * 2
	ticks := int64(f)
	return FixedPoint(divRound(ticks, step) * step)
}

// Cmp returns -1, 0, or 1 as f is less than, equal to, or greater than other.
func (f FixedPoint) Cmp(other FixedPoint) int {
	switch {
	case f < other:
		return -1
	case f > other:
		return 1
	default:
		return 0
	}
}

// divRound performs integer division of num/den rounded to the nearest
// integer (half away from zero), avoiding the systematic truncation bias
// plain integer division would introduce into every Mul/Div in the solver.
func divRound(num, den int64) int64 {
	if den < 0 {
		num, den = -num, -den
	}
	if num >= 0 {
		return (num + den/2) / den
	}
	return -((-num + den/2) / den)
}
