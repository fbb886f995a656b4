package geom

import (
	"fmt"

	"github.com/hupe1980/gridkit/num"
)

// Axis identifies one of the three coordinate axes.
type Axis int

const (
	// X is the width axis.
	X Axis = iota
	// Y is the height axis.
	Y
	// Z is the depth axis.
	Z
)

// String returns the lower case axis name.
func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Vec3 is a 3D vector/point with X, Y and Z components.
type Vec3[T num.Scalar] struct {
	X T `json:"x"`
	Y T `json:"y"`
	Z T `json:"z"`
}

// V3 returns a new [Vec3] with the given components.
func V3[T num.Scalar](x, y, z T) Vec3[T] {
	return Vec3[T]{X: x, Y: y, Z: z}
}

// Splat returns a new [Vec3] with all components set to s.
func Splat[T num.Scalar](s T) Vec3[T] {
	return Vec3[T]{X: s, Y: s, Z: s}
}

// Add returns v + o.
func (v Vec3[T]) Add(o Vec3[T]) Vec3[T] {
	return Vec3[T]{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3[T]) Sub(o Vec3[T]) Vec3[T] {
	return Vec3[T]{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// AddScalar returns v with s added to every component.
func (v Vec3[T]) AddScalar(s T) Vec3[T] {
	return Vec3[T]{X: v.X + s, Y: v.Y + s, Z: v.Z + s}
}

// Map applies f to every component.
func (v Vec3[T]) Map(f func(T) T) Vec3[T] {
	return Vec3[T]{X: f(v.X), Y: f(v.Y), Z: f(v.Z)}
}

// Min returns the componentwise minimum of v and o.
func (v Vec3[T]) Min(o Vec3[T]) Vec3[T] {
	return Vec3[T]{X: num.Min(v.X, o.X), Y: num.Min(v.Y, o.Y), Z: num.Min(v.Z, o.Z)}
}

// Max returns the componentwise maximum of v and o.
func (v Vec3[T]) Max(o Vec3[T]) Vec3[T] {
	return Vec3[T]{X: num.Max(v.X, o.X), Y: num.Max(v.Y, o.Y), Z: num.Max(v.Z, o.Z)}
}

// Dim returns the component along the given axis.
func (v Vec3[T]) Dim(a Axis) T {
	switch a {
	case X:
		return v.X
	case Y:
		return v.Y
	case Z:
		return v.Z
	default:
		panic("geom: axis out of range")
	}
}

// SetDim sets the component along the given axis.
func (v *Vec3[T]) SetDim(a Axis, value T) {
	switch a {
	case X:
		v.X = value
	case Y:
		v.Y = value
	case Z:
		v.Z = value
	default:
		panic("geom: axis out of range")
	}
}

// String implements fmt.Stringer.
func (v Vec3[T]) String() string {
	return fmt.Sprintf("(%v, %v, %v)", v.X, v.Y, v.Z)
}
