package grid

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/hupe1980/gridkit/geom"
	"github.com/hupe1980/gridkit/num"
	"github.com/hupe1980/gridkit/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var storages = []Storage{StorageSparse, StorageDense}

func newCube[I any](t *testing.T, s Storage, lo, hi int64) *GridMap[I, int64] {
	t.Helper()
	g, err := New[I](geom.Splat(lo), geom.Splat(hi), WithStorage(s))
	require.NoError(t, err)
	return g
}

func TestGridMap_Scenario(t *testing.T) {
	for _, s := range storages {
		t.Run(s.String(), func(t *testing.T) {
			g := newCube[float64](t, s, 0, 64)

			pos := geom.V3[int64](2, 4, 12)
			i, err := g.Add(42.0, pos)
			require.NoError(t, err)

			got, ok := g.Index(pos)
			require.True(t, ok)
			assert.Equal(t, i, got)

			assert.True(t, g.Remove(i))
			_, ok = g.Index(pos)
			assert.False(t, ok)
		})
	}
}

func TestGridMap_RoundTrip(t *testing.T) {
	rng := testutil.NewRNG(4711)

	for _, s := range storages {
		t.Run(s.String(), func(t *testing.T) {
			g := newCube[int](t, s, -8, 8)
			placed := map[geom.Vec3[int64]]Index{}

			for n := 0; n < 500; n++ {
				p := testutil.Position(rng, g.Bounds())
				i, err := g.Add(n, p)
				if prev, dup := placed[p]; dup {
					require.ErrorIs(t, err, ErrSpaceOccupied)
					var oe *OccupiedError[int64]
					require.ErrorAs(t, err, &oe)
					assert.Equal(t, prev, oe.Index)
					continue
				}
				require.NoError(t, err)
				placed[p] = i

				got, ok := g.Index(p)
				require.True(t, ok)
				assert.Equal(t, i, got)

				item, ok := g.Item(i)
				require.True(t, ok)
				assert.Equal(t, n, item)
			}
			assert.Equal(t, len(placed), g.Len())
		})
	}
}

func TestGridMap_OccupancyUniqueness(t *testing.T) {
	for _, s := range storages {
		t.Run(s.String(), func(t *testing.T) {
			g := newCube[string](t, s, 0, 10)
			p := geom.V3[int64](3, 3, 3)

			i, err := g.Add("first", p)
			require.NoError(t, err)

			_, err = g.Add("second", p)
			require.ErrorIs(t, err, ErrSpaceOccupied)
			assert.Contains(t, err.Error(), "already in the grid")
			item, _ := g.Item(i)
			assert.Equal(t, "first", item)

			require.True(t, g.Remove(i))
			j, err := g.Add("second", p)
			require.NoError(t, err)
			assert.Equal(t, i, j)
			item, _ = g.Item(j)
			assert.Equal(t, "second", item)
		})
	}
}

func TestGridMap_BoundsRejection(t *testing.T) {
	g := newCube[int](t, StorageSparse, 0, 10)
	_, err := g.Add(1, geom.V3[int64](5, 5, 5))
	require.NoError(t, err)

	for _, p := range []geom.Vec3[int64]{
		geom.V3[int64](-1, 0, 0),
		geom.V3[int64](0, 11, 0),
		geom.V3[int64](0, 0, 100),
	} {
		_, err := g.Add(2, p)
		require.ErrorIs(t, err, ErrOutOfBounds)
		var be *OutOfBoundsError[int64]
		require.ErrorAs(t, err, &be)
		assert.Equal(t, p, be.Position)

		_, ok := g.Index(p)
		assert.False(t, ok)
	}
	assert.Equal(t, 1, g.Len())
}

func TestGridMap_IdempotentRemoval(t *testing.T) {
	for _, s := range storages {
		t.Run(s.String(), func(t *testing.T) {
			g := newCube[int](t, s, 0, 4)
			i, err := g.Add(7, geom.V3[int64](1, 2, 3))
			require.NoError(t, err)

			assert.True(t, g.Remove(i))
			assert.False(t, g.Remove(i))
			assert.False(t, g.Remove(g.MaxIndex()+1))
			assert.False(t, g.Remove(Index(^uint64(0))))
			assert.Equal(t, 0, g.Len())
		})
	}
}

func TestGridMap_HashCoversCapacity(t *testing.T) {
	boxes := []geom.BoundingBox[int64]{
		geom.NewBoundingBox(geom.V3[int64](0, 0, 0), geom.V3[int64](4, 4, 4)),
		geom.NewBoundingBox(geom.V3[int64](-3, 0, -1), geom.V3[int64](2, 6, 1)),
		geom.NewBoundingBox(geom.V3[int64](0, -5, 0), geom.V3[int64](1, 0, 7)),
		geom.NewBoundingBox(geom.V3[int64](2, 3, 4), geom.V3[int64](5, 4, 6)),
		geom.NewBoundingBox(geom.V3[int64](-2, -2, -2), geom.V3[int64](-1, -1, -1)),
	}

	for _, b := range boxes {
		g, err := FromBoundingBox[struct{}](b)
		require.NoError(t, err)

		seen := map[Index]geom.Vec3[int64]{}
		for x := b.Min().X; x <= b.Max().X; x++ {
			for y := b.Min().Y; y <= b.Max().Y; y++ {
				for z := b.Min().Z; z <= b.Max().Z; z++ {
					p := geom.V3(x, y, z)
					i := g.Hash(p)
					require.Less(t, uint64(i), g.Capacity(), "position %v", p)
					prev, dup := seen[i]
					require.False(t, dup, "positions %v and %v share index %d", prev, p, i)
					seen[i] = p

					c, ok := g.Cell(i)
					require.True(t, ok)
					assert.Equal(t, p, c)
				}
			}
		}
	}
}

func TestGridMap_FloatCoordinates(t *testing.T) {
	g, err := New[string](geom.V3(-2.5, 0.0, 0.0), geom.V3(2.5, 3.0, 1.0))
	require.NoError(t, err)
	assert.Equal(t, geom.V3[int64](3, 0, 0), g.Offset())

	i, err := g.Add("a", geom.V3(-2.5, 0.5, 0.25))
	require.NoError(t, err)

	// Both land in cell (0, 0, 0) once shifted by the offset.
	_, err = g.Add("b", geom.V3(-2.1, 0.9, 0.75))
	require.ErrorIs(t, err, ErrSpaceOccupied)

	pos, ok := g.Position(i)
	require.True(t, ok)
	assert.Equal(t, geom.V3(-2.5, 0.5, 0.25), pos)

	j, err := g.Add("c", geom.V3(-1.5, 0.5, 0.25))
	require.NoError(t, err)
	assert.NotEqual(t, i, j)
	assert.Contains(t, g.Neighbors(geom.V3(-2.5, 0.5, 0.25), false), j)
}

func TestGridMap_NeighborSymmetry(t *testing.T) {
	cubes := []struct {
		name   string
		lo, hi int64
	}{
		{"origin", 0, 6},
		{"negative", -4, 4},
	}

	for _, c := range cubes {
		for _, s := range storages {
			t.Run(c.name+"/"+s.String(), func(t *testing.T) {
				rng := testutil.NewRNG(42)
				g := newCube[int](t, s, c.lo, c.hi)
				for n := 0; n < 150; n++ {
					_, _ = g.Add(n, testutil.Position(rng, g.Bounds()))
				}

				for p := range g.All() {
					pos, _ := g.Position(p)
					for _, q := range g.Neighbors(pos, false) {
						qpos, _ := g.Position(q)
						assert.Contains(t, g.Neighbors(qpos, false), p)
					}
					for _, q := range g.Neighbors(pos, true) {
						qpos, _ := g.Position(q)
						assert.Contains(t, g.Neighbors(qpos, true), p)
					}
				}
			})
		}
	}
}

func TestGridMap_NeighborsAcrossOrigin(t *testing.T) {
	for _, s := range storages {
		t.Run(s.String(), func(t *testing.T) {
			g := newCube[string](t, s, -4, 4)
			origin, err := g.Add("origin", geom.V3[int64](0, 0, 0))
			require.NoError(t, err)
			west, err := g.Add("west", geom.V3[int64](-1, 0, 0))
			require.NoError(t, err)
			corner, err := g.Add("corner", geom.V3[int64](-1, -1, -1))
			require.NoError(t, err)
			edge, err := g.Add("edge", geom.V3[int64](-4, -4, -4))
			require.NoError(t, err)

			assert.ElementsMatch(t, []Index{west}, g.Neighbors(geom.V3[int64](0, 0, 0), false))
			assert.ElementsMatch(t, []Index{origin}, g.Neighbors(geom.V3[int64](-1, 0, 0), false))
			assert.ElementsMatch(t, []Index{west, corner}, g.Neighbors(geom.V3[int64](0, 0, 0), true))
			assert.ElementsMatch(t, []Index{origin, west}, g.Neighbors(geom.V3[int64](-1, -1, -1), true))

			// The minimum corner has no in-bounds candidates below it.
			assert.Empty(t, g.Neighbors(geom.V3[int64](-4, -4, -4), true))
			assert.ElementsMatch(t, []Index{edge}, g.Neighbors(geom.V3[int64](-3, -4, -4), false))
		})
	}
}

func TestGridMap_NeighborsFullBlock(t *testing.T) {
	g := newCube[int](t, StorageSparse, 0, 4)
	center := geom.V3[int64](2, 2, 2)

	var want []Index
	var wantFace []Index
	for x := int64(1); x <= 3; x++ {
		for y := int64(1); y <= 3; y++ {
			for z := int64(1); z <= 3; z++ {
				p := geom.V3(x, y, z)
				i, err := g.Add(0, p)
				require.NoError(t, err)
				if p == center {
					continue
				}
				want = append(want, i)
				d := p.Sub(center)
				if num.Abs(d.X)+num.Abs(d.Y)+num.Abs(d.Z) == 1 {
					wantFace = append(wantFace, i)
				}
			}
		}
	}

	sorted := cmpopts.SortSlices(func(a, b Index) bool { return a < b })
	diag := g.Neighbors(center, true)
	assert.Len(t, diag, 26)
	if diff := cmp.Diff(want, diag, sorted); diff != "" {
		t.Errorf("diagonal neighbors mismatch (-want +got):\n%s", diff)
	}

	face := g.Neighbors(center, false)
	assert.Len(t, face, 6)
	if diff := cmp.Diff(wantFace, face, sorted); diff != "" {
		t.Errorf("face neighbors mismatch (-want +got):\n%s", diff)
	}
}

func TestGridMap_NeighborsAtLowerBoundary(t *testing.T) {
	g := newCube[int](t, StorageSparse, 0, 2)
	for x := int64(0); x <= 2; x++ {
		for y := int64(0); y <= 2; y++ {
			for z := int64(0); z <= 2; z++ {
				_, err := g.Add(0, geom.V3(x, y, z))
				require.NoError(t, err)
			}
		}
	}

	origin := geom.V3[int64](0, 0, 0)
	assert.Len(t, g.Neighbors(origin, false), 3)
	assert.Len(t, g.Neighbors(origin, true), 7)

	top := geom.V3[int64](2, 2, 2)
	assert.Len(t, g.Neighbors(top, false), 3)
	assert.Len(t, g.Neighbors(top, true), 7)

	for _, i := range g.Neighbors(origin, true) {
		c, ok := g.Cell(i)
		require.True(t, ok)
		assert.True(t, c.X >= 0 && c.Y >= 0 && c.Z >= 0)
	}
}

func TestGridMap_NeighborsSkipEmpty(t *testing.T) {
	g := newCube[int](t, StorageSparse, 0, 8)
	_, err := g.Add(1, geom.V3[int64](4, 4, 4))
	require.NoError(t, err)

	assert.Empty(t, g.Neighbors(geom.V3[int64](4, 4, 4), true))
	assert.Len(t, g.Neighbors(geom.V3[int64](4, 4, 5), false), 1)
	assert.Len(t, g.Neighbors(geom.V3[int64](5, 5, 5), true), 1)
	assert.Empty(t, g.Neighbors(geom.V3[int64](5, 5, 5), false))
}

func TestGridMap_ItemAccessors(t *testing.T) {
	type crate struct{ Weight int }

	for _, s := range storages {
		t.Run(s.String(), func(t *testing.T) {
			g := newCube[crate](t, s, 0, 4)
			i, err := g.Add(crate{Weight: 1}, geom.V3[int64](1, 1, 1))
			require.NoError(t, err)

			p, ok := g.ItemPtr(i)
			require.True(t, ok)
			p.Weight = 5
			item, _ := g.Item(i)
			assert.Equal(t, 5, item.Weight)

			old, ok := g.Replace(i, crate{Weight: 9})
			require.True(t, ok)
			assert.Equal(t, 5, old.Weight)

			obj, ok := g.Object(i)
			require.True(t, ok)
			assert.Equal(t, NewObject(geom.V3[int64](1, 1, 1), crate{Weight: 9}), obj)

			_, ok = g.Item(i + 1)
			assert.False(t, ok)
			_, ok = g.ItemPtr(g.MaxIndex() + 1)
			assert.False(t, ok)
			_, ok = g.Replace(i+1, crate{})
			assert.False(t, ok)
		})
	}
}

func TestGridMap_ObjectsAreSnapshots(t *testing.T) {
	for _, s := range storages {
		t.Run(s.String(), func(t *testing.T) {
			g := newCube[int](t, s, 0, 3)
			a, _ := g.Add(1, geom.V3[int64](0, 0, 0))
			_, _ = g.Add(2, geom.V3[int64](3, 3, 3))

			objs := g.Objects()
			require.Len(t, objs, 2)
			assert.ElementsMatch(t, []int{1, 2}, g.Items())

			g.Remove(a)
			g.Clear()
			assert.Len(t, objs, 2)
			assert.Equal(t, 0, g.Len())
			assert.Empty(t, g.Objects())
			assert.True(t, g.Occupancy().IsEmpty())
		})
	}
}

func TestGridMap_OccupancyMatchesStore(t *testing.T) {
	for _, s := range storages {
		t.Run(s.String(), func(t *testing.T) {
			g := newCube[int](t, s, -4, 4)
			var idx []uint64
			for n, p := range []geom.Vec3[int64]{{X: -4, Y: 0, Z: 4}, {X: 1, Y: 1, Z: 1}, {X: 4, Y: -4, Z: 0}} {
				i, err := g.Add(n, p)
				require.NoError(t, err)
				idx = append(idx, uint64(i))
			}
			bm := g.Occupancy()
			assert.Equal(t, uint64(3), bm.GetCardinality())
			for _, i := range idx {
				assert.True(t, bm.Contains(i))
			}

			var prev Index
			first := true
			for i := range g.All() {
				if !first {
					assert.Greater(t, i, prev)
				}
				prev, first = i, false
			}
		})
	}
}

func TestGridMap_Construction(t *testing.T) {
	_, err := New[int](geom.V3(5, 0, 0), geom.V3(1, 1, 1))
	require.ErrorIs(t, err, ErrInvalidBounds)

	_, err = New[int](geom.Splat(int64(0)), geom.Splat(int64(1)<<40))
	require.ErrorIs(t, err, ErrCapacityOverflow)

	_, err = New[int](geom.Splat(0), geom.Splat(1024), WithDenseStorage())
	require.ErrorIs(t, err, ErrCapacityOverflow)

	g, err := New[int](geom.V3(-3, 0, 2), geom.V3(7, 2, 6))
	require.NoError(t, err)
	w, h, d := g.Dimensions()
	assert.Equal(t, []int64{10, 2, 4}, []int64{w, h, d})
	assert.Equal(t, geom.V3[int64](3, 0, 0), g.Offset())
	assert.Equal(t, uint64(11*3*7), g.Capacity())
	assert.Equal(t, Index(11*3*7-1), g.MaxIndex())
	assert.Equal(t, StorageSparse, g.Storage())

	g, err = New[int](geom.Splat(0), geom.Splat(4), WithStorage(Storage(7)))
	require.NoError(t, err)
	assert.Equal(t, StorageSparse, g.Storage())
	assert.Equal(t, "sparse", g.Storage().String())
	assert.False(t, Storage(7).Valid())
	assert.Equal(t, "unknown", Storage(7).String())

	g, err = New[int](geom.V3(-3, 0, 2), geom.V3(7, 2, 6))
	require.NoError(t, err)
	assert.True(t, g.ContainsPoint(geom.V3(-3, 1, 2)))
	assert.True(t, g.Contains(geom.NewBoundingBox(geom.V3(0, 0, 3), geom.V3(1, 1, 4))))
	assert.True(t, g.Intersects(geom.NewBoundingBox(geom.V3(7, 2, 6), geom.V3(9, 9, 9))))
	assert.Equal(t, geom.V3(-3, 0, 2), g.Min())
	assert.Equal(t, geom.V3(7, 2, 6), g.Max())
}

func TestHashOrder(t *testing.T) {
	tests := []struct {
		w, h, d uint64
		want    [3]geom.Axis
	}{
		{10, 5, 2, [3]geom.Axis{geom.X, geom.Y, geom.Z}},
		{10, 2, 5, [3]geom.Axis{geom.X, geom.Z, geom.Y}},
		{5, 2, 10, [3]geom.Axis{geom.Z, geom.X, geom.Y}},
		{2, 5, 10, [3]geom.Axis{geom.Z, geom.Y, geom.X}},
		{5, 10, 2, [3]geom.Axis{geom.Y, geom.X, geom.Z}},
		{2, 10, 5, [3]geom.Axis{geom.Y, geom.Z, geom.X}},
		{4, 4, 4, [3]geom.Axis{geom.X, geom.Z, geom.Y}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, hashOrder(tt.w, tt.h, tt.d), "w=%d h=%d d=%d", tt.w, tt.h, tt.d)
	}
}

func TestErrors(t *testing.T) {
	err := error(&OccupiedError[int]{Position: geom.V3(1, 2, 3), Index: 9})
	assert.True(t, errors.Is(err, ErrSpaceOccupied))
	assert.False(t, errors.Is(err, ErrOutOfBounds))
	assert.Equal(t, "grid: position (1, 2, 3) is already in the grid (index 9)", err.Error())

	err = &OutOfBoundsError[int]{Position: geom.V3(9, 0, 0), Bounds: geom.NewBoundingBox(geom.Splat(0), geom.Splat(1))}
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	assert.Equal(t, "grid: position (9, 0, 0) is outside bounds [(0, 0, 0), (1, 1, 1)]", err.Error())
}
