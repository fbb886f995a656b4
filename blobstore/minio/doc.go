// Package minio implements blobstore.BlobStore for MinIO and other
// S3-compatible object stores.
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	store := gridminio.NewStore(client, "grids", "level-1/")
//
// Puts are single PutObject calls; Create streams through a pipe into an
// unsized PutObject, which minio-go turns into a multipart upload sized by
// WithPartSize. Any type with the Client method set can stand in for
// *minio.Client.
package minio
