package geom

import "github.com/hupe1980/gridkit/num"

// Cube is anything described by a minimum and a maximum corner.
type Cube[T num.Scalar] interface {
	Min() Vec3[T]
	Max() Vec3[T]
}

// BoxCollider answers axis-aligned containment and overlap questions.
type BoxCollider[T num.Scalar] interface {
	// Contains reports whether other lies fully inside the collider.
	Contains(other Cube[T]) bool
	// Intersects reports whether other overlaps the collider on all three axes.
	Intersects(other Cube[T]) bool
	// ContainsPoint reports whether p lies inside the collider, borders included.
	ContainsPoint(p Vec3[T]) bool
}
