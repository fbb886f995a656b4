package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/gridkit/geom"
	"github.com/hupe1980/gridkit/num"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Int63n returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Int63n(n int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Int63n(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Bytes returns n pseudo-random bytes.
func (r *RNG) Bytes(n int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := make([]byte, n)
	_, _ = r.rand.Read(b)
	return b
}

// Scalar returns a value in [lo, hi]. Integer types draw whole numbers,
// float types draw uniformly from the half-open range.
func Scalar[T num.Scalar](r *RNG, lo, hi T) T {
	if lo >= hi {
		return lo
	}
	if isIntegral[T]() {
		span := num.ToInt64(hi) - num.ToInt64(lo) + 1
		return lo + num.FromInt64[T](r.Int63n(span))
	}
	return num.Lerp(lo, hi, r.Float64())
}

// Position returns a random position inside box.
func Position[T num.Scalar](r *RNG, box geom.BoundingBox[T]) geom.Vec3[T] {
	lo, hi := box.Min(), box.Max()
	return geom.V3(
		Scalar(r, lo.X, hi.X),
		Scalar(r, lo.Y, hi.Y),
		Scalar(r, lo.Z, hi.Z),
	)
}

// Positions returns n random positions inside box. Duplicates are possible.
func Positions[T num.Scalar](r *RNG, box geom.BoundingBox[T], n int) []geom.Vec3[T] {
	out := make([]geom.Vec3[T], n)
	for i := range out {
		out[i] = Position(r, box)
	}
	return out
}

// UniquePositions returns up to n random integer-aligned positions inside
// box without repeats. Fewer are returned when the box has fewer cells.
func UniquePositions[T num.Scalar](r *RNG, box geom.BoundingBox[T], n int) []geom.Vec3[T] {
	seen := make(map[geom.Vec3[int64]]struct{}, n)
	out := make([]geom.Vec3[T], 0, n)
	for tries := 0; len(out) < n && tries < n*32; tries++ {
		p := Position(r, box).Map(func(v T) T { return num.FromInt64[T](num.ToInt64(v)) })
		if !box.ContainsPoint(p) {
			continue
		}
		key := geom.V3(num.ToInt64(p.X), num.ToInt64(p.Y), num.ToInt64(p.Z))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Box returns a random valid box whose corners lie inside within.
func Box[T num.Scalar](r *RNG, within geom.BoundingBox[T]) geom.BoundingBox[T] {
	a, b := Position(r, within), Position(r, within)
	return geom.NewBoundingBox(a.Min(b), a.Max(b))
}

func isIntegral[T num.Scalar]() bool {
	var half T = num.FromFloat64[T](0.5)
	return half == 0
}
