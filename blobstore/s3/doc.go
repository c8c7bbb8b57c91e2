// Package s3 provides an S3 implementation of the blobstore.Store interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("elbow/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	m, err := elbow.LoadMatrix(ctx, store, "expression.tsv.zst")
//
// # Features
//
//   - Multipart uploads for large reports
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
