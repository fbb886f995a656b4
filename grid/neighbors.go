package grid

import (
	"github.com/hupe1980/gridkit/geom"
	"github.com/hupe1980/gridkit/num"
)

// faceSteps are the six axis-aligned unit offsets.
var faceSteps = [6][3]int64{
	{1, 0, 0}, {0, 1, 0}, {0, 0, 1},
	{-1, 0, 0}, {0, -1, 0}, {0, 0, -1},
}

// Neighbors returns the indices of occupied cells around pos.
//
// With diagonal set, all 26 cells of the surrounding 3x3x3 block are
// considered; otherwise only the 6 face neighbours. Candidates outside the
// bounds (so never below zero for a grid anchored at the origin) and empty
// cells are skipped, exactly as Index would report them.
func (g *GridMap[I, T]) Neighbors(pos geom.Vec3[T], diagonal bool) []Index {
	if diagonal {
		return g.diagNeighbors(pos)
	}
	return g.faceNeighbors(pos)
}

func (g *GridMap[I, T]) diagNeighbors(pos geom.Vec3[T]) []Index {
	out := make([]Index, 0, 26)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				if i, ok := g.Index(step(pos, dx, dy, dz)); ok {
					out = append(out, i)
				}
			}
		}
	}
	return out
}

func (g *GridMap[I, T]) faceNeighbors(pos geom.Vec3[T]) []Index {
	out := make([]Index, 0, 6)
	for _, s := range faceSteps {
		if i, ok := g.Index(step(pos, s[0], s[1], s[2])); ok {
			out = append(out, i)
		}
	}
	return out
}

func step[T num.Scalar](pos geom.Vec3[T], dx, dy, dz int64) geom.Vec3[T] {
	return geom.Vec3[T]{X: pos.X + T(dx), Y: pos.Y + T(dy), Z: pos.Z + T(dz)}
}
