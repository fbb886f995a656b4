// Package gridkit provides a sparse 3D spatial index with snapshots to
// local disk, MinIO or S3.
//
// The core lives in subpackages: geom (vectors and bounding boxes), grid
// (the GridMap index), mesh and wavefront (triangle meshes and OBJ files),
// snapshot (the binary format) and blobstore (where snapshots go). This
// package ties them together in Space, a lock-guarded, logged and metered
// grid that saves versioned snapshots.
//
// # Quick Start
//
//	ctx := context.Background()
//	space, _ := gridkit.New[string](geom.V3(0, 0, 0), geom.V3(64, 64, 64))
//	i, err := space.Add(ctx, "crate", geom.V3(2, 4, 12))
//	if errors.Is(err, gridkit.ErrSpaceOccupied) {
//	    // the cell is taken
//	}
//	near, _ := space.Neighbors(ctx, geom.V3(2, 4, 12), true)
//
// # Snapshots
//
// Save writes <prefix>/<version>.grid and then points CURRENT at it:
//
//	store := blobstore.NewLocalStore("./data")
//	space, _ := gridkit.New[string](lo, hi, gridkit.WithBlobStore(store))
//	name, _ := space.Save(ctx)                      // grid/00000001.grid
//	space, _ = gridkit.Load[string, int](ctx, store) // newest version
//
// Cloud stores plug in the same way:
//
//	s3Store, _ := s3.New(ctx, "my-bucket", s3.WithPrefix("grids/"))
//	space, _ := gridkit.New[string](lo, hi, gridkit.WithBlobStore(s3Store))
//
// # Concurrency
//
// grid.GridMap is not synchronized. Space serializes mutations behind a
// single RWMutex; Neighbors and the other queries run in parallel.
package gridkit
