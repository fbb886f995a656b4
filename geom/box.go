// Package geom provides the vector type and the axis-aligned bounding box
// collider used to describe grid domains.
package geom

import "github.com/hupe1980/gridkit/num"

// BoundingBox is an axis-aligned box defined by two corners:
// the point with minimum coordinates and the point with maximum coordinates.
//
// The corners are stored verbatim. Every derived quantity assumes
// min <= max on all axes; use IsValid to check.
type BoundingBox[T num.Scalar] struct {
	min Vec3[T]
	max Vec3[T]
}

var (
	_ Cube[int]        = BoundingBox[int]{}
	_ BoxCollider[int] = BoundingBox[int]{}
)

// NewBoundingBox returns a box with the given corners.
func NewBoundingBox[T num.Scalar](min, max Vec3[T]) BoundingBox[T] {
	return BoundingBox[T]{min: min, max: max}
}

// BoxOf returns the corners of any Cube as a BoundingBox.
func BoxOf[T num.Scalar](c Cube[T]) BoundingBox[T] {
	if b, ok := c.(BoundingBox[T]); ok {
		return b
	}
	return BoundingBox[T]{min: c.Min(), max: c.Max()}
}

// BoundsOf returns the smallest box enclosing all points.
// It returns false when points is empty.
func BoundsOf[T num.Scalar](points ...Vec3[T]) (BoundingBox[T], bool) {
	if len(points) == 0 {
		return BoundingBox[T]{}, false
	}
	b := BoundingBox[T]{min: points[0], max: points[0]}
	for _, p := range points[1:] {
		b.min = b.min.Min(p)
		b.max = b.max.Max(p)
	}
	return b, true
}

// Min returns the minimum corner.
func (b BoundingBox[T]) Min() Vec3[T] { return b.min }

// Max returns the maximum corner.
func (b BoundingBox[T]) Max() Vec3[T] { return b.max }

// Width returns the extent along X.
func (b BoundingBox[T]) Width() T { return b.max.X - b.min.X }

// Height returns the extent along Y.
func (b BoundingBox[T]) Height() T { return b.max.Y - b.min.Y }

// Depth returns the extent along Z.
func (b BoundingBox[T]) Depth() T { return b.max.Z - b.min.Z }

// Size returns the vector from the minimum corner to the maximum corner.
func (b BoundingBox[T]) Size() Vec3[T] { return b.max.Sub(b.min) }

// Center returns the center of the box (truncated for integer types).
func (b BoundingBox[T]) Center() Vec3[T] {
	return Vec3[T]{
		X: num.Lerp(b.min.X, b.max.X, 0.5),
		Y: num.Lerp(b.min.Y, b.max.Y, 0.5),
		Z: num.Lerp(b.min.Z, b.max.Z, 0.5),
	}
}

// IsValid reports whether min <= max on all axes.
func (b BoundingBox[T]) IsValid() bool {
	return b.min.X <= b.max.X && b.min.Y <= b.max.Y && b.min.Z <= b.max.Z
}

// Contains reports whether b fully encloses other on all three axes.
func (b BoundingBox[T]) Contains(other Cube[T]) bool {
	omin, omax := other.Min(), other.Max()
	return b.min.X <= omin.X && b.max.X >= omax.X &&
		b.min.Y <= omin.Y && b.max.Y >= omax.Y &&
		b.min.Z <= omin.Z && b.max.Z >= omax.Z
}

// Intersects reports whether b and other overlap on all three axes.
func (b BoundingBox[T]) Intersects(other Cube[T]) bool {
	omin, omax := other.Min(), other.Max()
	// using 6 splitting planes to rule out intersections.
	if b.min.X > omax.X || b.max.X < omin.X ||
		b.min.Y > omax.Y || b.max.Y < omin.Y ||
		b.min.Z > omax.Z || b.max.Z < omin.Z {
		return false
	}
	return true
}

// ContainsPoint reports whether p lies within [min, max] on every axis.
func (b BoundingBox[T]) ContainsPoint(p Vec3[T]) bool {
	if p.X < b.min.X || p.X > b.max.X ||
		p.Y < b.min.Y || p.Y > b.max.Y ||
		p.Z < b.min.Z || p.Z > b.max.Z {
		return false
	}
	return true
}

// LerpX interpolates across the X extent; amount is clamped to [0, 1].
func (b BoundingBox[T]) LerpX(amount float64) T {
	return num.LerpClamped(b.min.X, b.max.X, amount)
}

// LerpY interpolates across the Y extent; amount is clamped to [0, 1].
func (b BoundingBox[T]) LerpY(amount float64) T {
	return num.LerpClamped(b.min.Y, b.max.Y, amount)
}

// LerpZ interpolates across the Z extent; amount is clamped to [0, 1].
func (b BoundingBox[T]) LerpZ(amount float64) T {
	return num.LerpClamped(b.min.Z, b.max.Z, amount)
}

// Lerp interpolates across all three extents at once.
func (b BoundingBox[T]) Lerp(amount Vec3[float64]) Vec3[T] {
	return Vec3[T]{X: b.LerpX(amount.X), Y: b.LerpY(amount.Y), Z: b.LerpZ(amount.Z)}
}

// InverseLerp returns where pos sits inside the box as a per-axis fraction
// of the extent. Zero-width axes yield 0. The result is not clamped, so
// points outside the box produce values below 0 or above 1.
func (b BoundingBox[T]) InverseLerp(pos Vec3[T]) Vec3[float64] {
	return Vec3[float64]{
		X: num.InverseLerp(b.min.X, b.max.X, pos.X),
		Y: num.InverseLerp(b.min.Y, b.max.Y, pos.Y),
		Z: num.InverseLerp(b.min.Z, b.max.Z, pos.Z),
	}
}

// Union returns the smallest box enclosing both b and other.
func (b BoundingBox[T]) Union(other Cube[T]) BoundingBox[T] {
	return BoundingBox[T]{min: b.min.Min(other.Min()), max: b.max.Max(other.Max())}
}

// Expand returns b grown by amount on every side.
func (b BoundingBox[T]) Expand(amount T) BoundingBox[T] {
	return BoundingBox[T]{min: b.min.AddScalar(-amount), max: b.max.AddScalar(amount)}
}

// Translate returns b moved by offset.
func (b BoundingBox[T]) Translate(offset Vec3[T]) BoundingBox[T] {
	return BoundingBox[T]{min: b.min.Add(offset), max: b.max.Add(offset)}
}
