package testutil

import (
	"testing"

	"github.com/hupe1980/gridkit/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosition(t *testing.T) {
	rng := NewRNG(4711)
	box := geom.NewBoundingBox(geom.V3[int64](-4, 0, 2), geom.V3[int64](4, 3, 2))

	for _, p := range Positions(rng, box, 200) {
		assert.True(t, box.ContainsPoint(p), "position %v", p)
	}
}

func TestPositionFloat(t *testing.T) {
	rng := NewRNG(4711)
	box := geom.NewBoundingBox(geom.V3(-1.5, 0.0, 0.0), geom.V3(1.5, 0.5, 10.0))

	for _, p := range Positions(rng, box, 200) {
		assert.True(t, box.ContainsPoint(p), "position %v", p)
	}
}

func TestUniquePositions(t *testing.T) {
	rng := NewRNG(4711)
	box := geom.NewBoundingBox(geom.Splat[int64](0), geom.Splat[int64](1))

	ps := UniquePositions(rng, box, 100)
	require.LessOrEqual(t, len(ps), 8)

	seen := map[geom.Vec3[int64]]bool{}
	for _, p := range ps {
		assert.False(t, seen[p])
		seen[p] = true
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(7)
	a := rng.Int63n(1000)
	rng.Reset()
	assert.Equal(t, a, rng.Int63n(1000))
	assert.Equal(t, int64(7), rng.Seed())
}

func TestBox(t *testing.T) {
	rng := NewRNG(1)
	within := geom.NewBoundingBox(geom.Splat(-10.0), geom.Splat(10.0))
	for i := 0; i < 50; i++ {
		b := Box(rng, within)
		assert.True(t, b.IsValid())
		assert.True(t, within.Contains(b))
	}
}
