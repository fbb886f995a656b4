// Package num describes the scalar types gridkit coordinates may use and
// provides the small set of arithmetic helpers shared by geom and grid.
package num

import "golang.org/x/exp/constraints"

// Scalar is the capability set every coordinate type must satisfy:
// ordered, signed arithmetic with a zero value and a truncating conversion
// to and from int64.
//
// Integer lattices (int, int32, int64, ...) and floating positions
// (float32, float64) are both supported. Fractional positions are
// truncated toward zero when they are turned into cell coordinates.
type Scalar interface {
	constraints.Signed | constraints.Float
}

// Abs returns the absolute value of v.
func Abs[T Scalar](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// Min returns the smaller of a and b.
func Min[T Scalar](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max[T Scalar](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Clamp limits v to the closed range [lo, hi].
func Clamp[T Scalar](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates between a and b by amount (0 - 1).
// The interpolation always runs from the smaller endpoint to the larger one.
func Lerp[T Scalar](a, b T, amount float64) T {
	if a == b {
		return a
	}
	lo, hi := a, b
	if a > b {
		lo, hi = b, a
	}
	return lo + FromFloat64[T](float64(hi-lo)*amount)
}

// LerpClamped is Lerp with amount clamped to [0, 1].
func LerpClamped[T Scalar](a, b T, amount float64) T {
	return Lerp(a, b, Clamp(amount, 0, 1))
}

// InverseLerp returns where v sits between a and b as a fraction.
// A degenerate range (a == b) yields 0. The result is not clamped.
func InverseLerp[T Scalar](a, b, v T) float64 {
	if a == b {
		return 0
	}
	return float64(v-a) / float64(b-a)
}

// ToInt64 truncates v toward zero.
// Values outside the int64 range are a precondition violation.
func ToInt64[T Scalar](v T) int64 {
	return int64(v)
}

// FromInt64 converts an integer cell coordinate back into T.
func FromInt64[T Scalar](v int64) T {
	return T(v)
}

// FromFloat64 converts f into T, truncating toward zero for integer types.
func FromFloat64[T Scalar](f float64) T {
	return T(f)
}
