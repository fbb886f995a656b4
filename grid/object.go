package grid

import (
	"strconv"

	"github.com/hupe1980/gridkit/geom"
	"github.com/hupe1980/gridkit/num"
)

// Index is the flat index a 3D position hashes to.
type Index uint64

// String implements fmt.Stringer.
func (i Index) String() string {
	return strconv.FormatUint(uint64(i), 10)
}

// Object pairs a stored item with the exact position it was inserted at,
// so the grid can report what sits at an index without reconstructing the
// position from the index.
type Object[I any, T num.Scalar] struct {
	Position geom.Vec3[T] `json:"position"`
	Item     I            `json:"item"`
}

// NewObject returns an Object holding item at position.
func NewObject[I any, T num.Scalar](position geom.Vec3[T], item I) Object[I, T] {
	return Object[I, T]{Position: position, Item: item}
}
