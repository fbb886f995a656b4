// Package s3 implements blobstore.BlobStore on Amazon S3.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("grids/level-1"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	space, err := gridkit.New[string](min, max, gridkit.WithBlobStore(store))
//
// S3 has no compare-and-swap, so concurrent savers of one space can race
// on the CURRENT pointer. DDBCommitStore moves that pointer into a
// DynamoDB table with conditional writes.
//
// # Features
//
//   - Range reads
//   - Multipart streaming uploads via the transfer manager
//   - CRC32C integrity checks on uploads
//   - Configurable prefix for multi-tenant isolation
package s3
