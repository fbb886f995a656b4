// Package testutil provides testing utilities for gridkit.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG and helpers for generating random
// positions, boxes and meshes.
//
// # Random Positions
//
//	rng := testutil.NewRNG(seed)
//	box := geom.NewBoundingBox(geom.Splat(0), geom.Splat(64))
//	p := testutil.Position(rng, box)        // uniform inside box
//	ps := testutil.Positions(rng, box, 100) // 100 positions, duplicates possible
//	us := testutil.UniquePositions(rng, box, 100)
package testutil
