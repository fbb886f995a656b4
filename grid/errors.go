package grid

import (
	"errors"
	"fmt"

	"github.com/hupe1980/gridkit/geom"
	"github.com/hupe1980/gridkit/num"
)

var (
	// ErrOutOfBounds is returned when a position lies outside the grid's bounding box.
	ErrOutOfBounds = errors.New("grid: position out of bounds")

	// ErrSpaceOccupied is returned when the target cell already holds an item.
	ErrSpaceOccupied = errors.New("grid: space occupied")

	// ErrInvalidBounds is returned when a grid is built from a box whose
	// minimum corner exceeds its maximum corner on some axis.
	ErrInvalidBounds = errors.New("grid: min corner exceeds max corner")

	// ErrCapacityOverflow is returned when the addressable index range of a
	// grid cannot be represented (or allocated, for dense storage).
	ErrCapacityOverflow = errors.New("grid: capacity overflow")
)

// OutOfBoundsError reports the rejected position.
//
// It satisfies errors.Is(err, ErrOutOfBounds).
type OutOfBoundsError[T num.Scalar] struct {
	Position geom.Vec3[T]
	Bounds   geom.BoundingBox[T]
}

func (e *OutOfBoundsError[T]) Error() string {
	return fmt.Sprintf("grid: position %v is outside bounds [%v, %v]", e.Position, e.Bounds.Min(), e.Bounds.Max())
}

func (e *OutOfBoundsError[T]) Unwrap() error { return ErrOutOfBounds }

// OccupiedError reports the position that could not be placed and the
// index of the cell that already holds an item.
//
// It satisfies errors.Is(err, ErrSpaceOccupied).
type OccupiedError[T num.Scalar] struct {
	Position geom.Vec3[T]
	Index    Index
}

func (e *OccupiedError[T]) Error() string {
	return fmt.Sprintf("grid: position %v is already in the grid (index %d)", e.Position, e.Index)
}

func (e *OccupiedError[T]) Unwrap() error { return ErrSpaceOccupied }
