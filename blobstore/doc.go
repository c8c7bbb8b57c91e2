// Package blobstore abstracts where sample matrices are read from and where
// clustering reports are written to.
//
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, reads through a read-only mmap and
//     writes through a temp file that is synced and renamed into place
//   - MemoryStore: in-process map, for tests
//   - s3.Store: Amazon S3 (aws-sdk-go-v2)
//   - minio.Store: MinIO and other S3-compatible services
//
// # Custom Implementations
//
//	type Store interface {
//	    Open(ctx, name) (Blob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
