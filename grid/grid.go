// Package grid implements a sparse 3D spatial index that maps discrete
// positions inside a bounding box to at most one item each.
//
// Positions are hashed to a flat [Index] with an axis-size-aware row-major
// scheme; the index is the key of the occupancy store. A GridMap is not
// safe for concurrent use: wrap it behind a single lock (see the gridkit
// package) when several goroutines share one.
//
//	g, _ := grid.New[string](geom.V3(0, 0, 0), geom.V3(64, 64, 64))
//	i, err := g.Add("crate", geom.V3(2, 4, 12))
//	if errors.Is(err, grid.ErrSpaceOccupied) { ... }
//	for _, n := range g.Neighbors(geom.V3(2, 4, 12), true) { ... }
package grid

import (
	"fmt"
	"iter"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/hupe1980/gridkit/geom"
	"github.com/hupe1980/gridkit/num"
)

// Grid3D is the behaviour shared by 3D grids.
type Grid3D[I any, T num.Scalar] interface {
	geom.Cube[T]
	geom.BoxCollider[T]

	Add(item I, pos geom.Vec3[T]) (Index, error)
	Remove(index Index) bool
	Index(pos geom.Vec3[T]) (Index, bool)
	Len() int
	Item(index Index) (I, bool)
	ItemPtr(index Index) (*I, bool)
	Objects() []Object[I, T]
	Neighbors(pos geom.Vec3[T], diagonal bool) []Index
}

var _ Grid3D[int, int] = (*GridMap[int, int])(nil)

// GridMap is a hash-based 3D grid over a fixed bounding box.
type GridMap[I any, T num.Scalar] struct {
	bounds  geom.BoundingBox[T]
	width   int64
	height  int64
	depth   int64
	layout  layout
	storage Storage
	items   store[I, T]
}

// New creates an empty grid covering the box spanned by min and max
// (borders included).
func New[I any, T num.Scalar](min, max geom.Vec3[T], optFns ...Option) (*GridMap[I, T], error) {
	return FromBoundingBox[I](geom.NewBoundingBox(min, max), optFns...)
}

// FromBoundingBox creates an empty grid covering bounds.
//
// Coordinates are truncated to integer cells; callers must keep them within
// the range representable by int64.
func FromBoundingBox[I any, T num.Scalar](bounds geom.BoundingBox[T], optFns ...Option) (*GridMap[I, T], error) {
	if !bounds.IsValid() {
		return nil, fmt.Errorf("%w: min %v, max %v", ErrInvalidBounds, bounds.Min(), bounds.Max())
	}

	l, err := newLayout(bounds)
	if err != nil {
		return nil, err
	}

	o := applyOptions(optFns)

	g := &GridMap[I, T]{
		bounds:  bounds,
		width:   num.ToInt64(bounds.Width()),
		height:  num.ToInt64(bounds.Height()),
		depth:   num.ToInt64(bounds.Depth()),
		layout:  l,
		storage: o.storage,
	}

	switch o.storage {
	case StorageDense:
		if l.size > MaxDenseCells {
			return nil, fmt.Errorf("%w: %d cells exceed the dense limit of %d", ErrCapacityOverflow, l.size, MaxDenseCells)
		}
		g.items = newDenseStore[I, T](l.size)
	default:
		g.items = newSparseStore[I, T]()
	}

	return g, nil
}

// Bounds returns the bounding box the grid covers.
func (g *GridMap[I, T]) Bounds() geom.BoundingBox[T] { return g.bounds }

// Min returns the minimum corner of the grid's bounds.
func (g *GridMap[I, T]) Min() geom.Vec3[T] { return g.bounds.Min() }

// Max returns the maximum corner of the grid's bounds.
func (g *GridMap[I, T]) Max() geom.Vec3[T] { return g.bounds.Max() }

// Contains reports whether other lies fully inside the grid's bounds.
func (g *GridMap[I, T]) Contains(other geom.Cube[T]) bool { return g.bounds.Contains(other) }

// Intersects reports whether other overlaps the grid's bounds.
func (g *GridMap[I, T]) Intersects(other geom.Cube[T]) bool { return g.bounds.Intersects(other) }

// ContainsPoint reports whether p lies inside the grid's bounds.
func (g *GridMap[I, T]) ContainsPoint(p geom.Vec3[T]) bool { return g.bounds.ContainsPoint(p) }

// Dimensions returns the integer extents (width, height, depth) of the bounds.
func (g *GridMap[I, T]) Dimensions() (width, height, depth int64) {
	return g.width, g.height, g.depth
}

// Offset returns the non-negative per-axis shift applied before hashing.
func (g *GridMap[I, T]) Offset() geom.Vec3[int64] {
	return geom.V3(g.layout.offset[geom.X], g.layout.offset[geom.Y], g.layout.offset[geom.Z])
}

// Storage returns the occupancy store kind.
func (g *GridMap[I, T]) Storage() Storage { return g.storage }

// Capacity returns the number of addressable indices. Every in-bounds
// position hashes to an index below Capacity.
func (g *GridMap[I, T]) Capacity() uint64 { return g.layout.size }

// MaxIndex returns the largest valid index.
func (g *GridMap[I, T]) MaxIndex() Index { return Index(g.layout.size - 1) }

// Hash maps pos to its flat index. The mapping is only meaningful for
// positions inside the bounds; the public operations check that first.
func (g *GridMap[I, T]) Hash(pos geom.Vec3[T]) Index {
	return hash(&g.layout, pos)
}

// Cell returns the integer cell coordinate addressed by index.
func (g *GridMap[I, T]) Cell(index Index) (geom.Vec3[int64], bool) {
	if !g.IndexValid(index) {
		return geom.Vec3[int64]{}, false
	}
	c := unhash(&g.layout, index)
	return geom.V3(c[geom.X], c[geom.Y], c[geom.Z]), true
}

// IndexValid reports whether index lies in the addressable range.
func (g *GridMap[I, T]) IndexValid(index Index) bool {
	return uint64(index) < g.layout.size
}

// Occupied reports whether index is valid and currently holds an item.
func (g *GridMap[I, T]) Occupied(index Index) bool {
	if !g.IndexValid(index) {
		return false
	}
	_, ok := g.items.get(index)
	return ok
}

// Add places item at pos and returns the index of its cell.
//
// It fails with an error matching ErrOutOfBounds when pos is outside the
// bounds and with an *OccupiedError (matching ErrSpaceOccupied) when the
// cell already holds an item. The grid is unchanged on failure.
func (g *GridMap[I, T]) Add(item I, pos geom.Vec3[T]) (Index, error) {
	if !g.bounds.ContainsPoint(pos) {
		return 0, &OutOfBoundsError[T]{Position: pos, Bounds: g.bounds}
	}
	i := g.Hash(pos)
	if g.Occupied(i) {
		return 0, &OccupiedError[T]{Position: pos, Index: i}
	}
	g.items.put(i, &Object[I, T]{Position: pos, Item: item})
	return i, nil
}

// Remove deletes the item at index. It reports false, leaving the grid
// untouched, when the index is invalid or empty.
func (g *GridMap[I, T]) Remove(index Index) bool {
	if !g.IndexValid(index) {
		return false
	}
	return g.items.delete(index)
}

// Index returns the index of the occupied cell at pos. Out-of-bounds
// positions and empty cells both report false.
func (g *GridMap[I, T]) Index(pos geom.Vec3[T]) (Index, bool) {
	if !g.bounds.ContainsPoint(pos) {
		return 0, false
	}
	i := g.Hash(pos)
	if !g.Occupied(i) {
		return 0, false
	}
	return i, true
}

// Item returns the item stored at index.
func (g *GridMap[I, T]) Item(index Index) (I, bool) {
	obj, ok := g.Object(index)
	return obj.Item, ok
}

// ItemPtr returns a pointer to the item stored at index for in-place
// updates. The pointer is invalidated when the item is removed.
func (g *GridMap[I, T]) ItemPtr(index Index) (*I, bool) {
	if !g.IndexValid(index) {
		return nil, false
	}
	obj, ok := g.items.get(index)
	if !ok {
		return nil, false
	}
	return &obj.Item, true
}

// Object returns the item stored at index together with the exact
// position it was inserted at.
func (g *GridMap[I, T]) Object(index Index) (Object[I, T], bool) {
	if !g.IndexValid(index) {
		return Object[I, T]{}, false
	}
	obj, ok := g.items.get(index)
	if !ok {
		return Object[I, T]{}, false
	}
	return *obj, true
}

// Position returns the exact position the item at index was inserted at.
func (g *GridMap[I, T]) Position(index Index) (geom.Vec3[T], bool) {
	obj, ok := g.Object(index)
	return obj.Position, ok
}

// Replace swaps the item at an occupied index, keeping its position, and
// returns the previous item.
func (g *GridMap[I, T]) Replace(index Index, item I) (I, bool) {
	p, ok := g.ItemPtr(index)
	if !ok {
		var zero I
		return zero, false
	}
	old := *p
	*p = item
	return old, true
}

// Len returns the number of occupied cells.
func (g *GridMap[I, T]) Len() int {
	return g.items.len()
}

// Objects returns a fresh slice of all stored objects in ascending index
// order. Later mutations of the grid do not affect the slice.
func (g *GridMap[I, T]) Objects() []Object[I, T] {
	out := make([]Object[I, T], 0, g.items.len())
	g.items.each(func(_ Index, obj *Object[I, T]) bool {
		out = append(out, *obj)
		return true
	})
	return out
}

// Items returns a fresh slice of all stored items in ascending index order.
func (g *GridMap[I, T]) Items() []I {
	out := make([]I, 0, g.items.len())
	g.items.each(func(_ Index, obj *Object[I, T]) bool {
		out = append(out, obj.Item)
		return true
	})
	return out
}

// All iterates over occupied cells in ascending index order.
// The grid must not be mutated during iteration.
func (g *GridMap[I, T]) All() iter.Seq2[Index, Object[I, T]] {
	return func(yield func(Index, Object[I, T]) bool) {
		g.items.each(func(i Index, obj *Object[I, T]) bool {
			return yield(i, *obj)
		})
	}
}

// Occupancy returns a copy of the set of occupied indices.
func (g *GridMap[I, T]) Occupancy() *roaring64.Bitmap {
	return g.items.bitmap()
}

// Clear removes every item. The bounds and layout are kept.
func (g *GridMap[I, T]) Clear() {
	g.items.clear()
}
