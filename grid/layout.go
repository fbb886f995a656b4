package grid

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/hupe1980/gridkit/geom"
	"github.com/hupe1980/gridkit/num"
)

// layout is the pure position -> index mapping of a grid.
//
// Positions are shifted by offset so that every in-bounds coordinate is
// non-negative, truncated to integer cells, and combined row-major with
// the largest axis varying slowest:
//
//	index = c[o0]*s[o1]*s[o2] + c[o1]*s[o2] + c[o2]
//
// where s is the number of cells per axis and o the axis order.
type layout struct {
	offset  [3]int64
	strides [3]uint64 // cells per axis, indexed by geom.Axis
	order   [3]geom.Axis
	weights [3]uint64 // multiplier per axis, indexed by geom.Axis
	size    uint64
}

func newLayout[T num.Scalar](box geom.BoundingBox[T]) (layout, error) {
	var l layout
	lower, upper := box.Min(), box.Max()
	for _, a := range [3]geom.Axis{geom.X, geom.Y, geom.Z} {
		lo := lower.Dim(a)
		if lo < 0 {
			// Round up so fractional minimums still shift to >= 0.
			l.offset[a] = int64(math.Ceil(float64(num.Abs(lo))))
		}
		top := num.ToInt64(upper.Dim(a) + num.FromInt64[T](l.offset[a]))
		if top < 0 || top == math.MaxInt64 {
			return layout{}, fmt.Errorf("%w: axis %v spans %d cells", ErrCapacityOverflow, a, top)
		}
		l.strides[a] = uint64(top) + 1
	}

	l.order = hashOrder(l.strides[geom.X], l.strides[geom.Y], l.strides[geom.Z])

	hi, mid := bits.Mul64(l.strides[l.order[1]], l.strides[l.order[2]])
	if hi != 0 {
		return layout{}, ErrCapacityOverflow
	}
	hi, size := bits.Mul64(mid, l.strides[l.order[0]])
	if hi != 0 {
		return layout{}, ErrCapacityOverflow
	}

	l.weights[l.order[0]] = mid
	l.weights[l.order[1]] = l.strides[l.order[2]]
	l.weights[l.order[2]] = 1
	l.size = size
	return l, nil
}

// hashOrder sorts the axes from slowest to fastest varying: the largest
// axis gets the largest weight. Ties prefer width, then depth, then height.
func hashOrder(width, height, depth uint64) [3]geom.Axis {
	switch {
	case width >= depth && width >= height:
		if height > depth {
			return [3]geom.Axis{geom.X, geom.Y, geom.Z}
		}
		return [3]geom.Axis{geom.X, geom.Z, geom.Y}
	case depth >= width && depth >= height:
		if height > width {
			return [3]geom.Axis{geom.Z, geom.Y, geom.X}
		}
		return [3]geom.Axis{geom.Z, geom.X, geom.Y}
	default:
		if width > depth {
			return [3]geom.Axis{geom.Y, geom.X, geom.Z}
		}
		return [3]geom.Axis{geom.Y, geom.Z, geom.X}
	}
}

// cell returns the shifted integer cell coordinate of pos on axis a.
func cell[T num.Scalar](l *layout, pos geom.Vec3[T], a geom.Axis) uint64 {
	return uint64(num.ToInt64(pos.Dim(a) + num.FromInt64[T](l.offset[a])))
}

func hash[T num.Scalar](l *layout, pos geom.Vec3[T]) Index {
	return Index(cell(l, pos, geom.X)*l.weights[geom.X] +
		cell(l, pos, geom.Y)*l.weights[geom.Y] +
		cell(l, pos, geom.Z)*l.weights[geom.Z])
}

// unhash inverts hash back to the cell coordinate (without the offset).
func unhash(l *layout, i Index) [3]int64 {
	var c [3]int64
	rest := uint64(i)
	for _, a := range l.order {
		c[a] = int64(rest/l.weights[a]) - l.offset[a]
		rest %= l.weights[a]
	}
	return c
}
