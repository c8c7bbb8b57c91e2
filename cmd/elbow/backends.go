package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/hupe1980/elbow/blobstore"
	minioblob "github.com/hupe1980/elbow/blobstore/minio"
	s3blob "github.com/hupe1980/elbow/blobstore/s3"
	"github.com/hupe1980/elbow/catalog"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

func newStore(ctx context.Context, c StorageConfig) (blobstore.Store, error) {
	switch c.Backend {
	case "local", "":
		return blobstore.NewLocalStore(c.Root), nil
	case "s3":
		if c.Bucket == "" {
			return nil, fmt.Errorf("storage.bucket is required for the s3 backend")
		}
		opts := []s3blob.Option{s3blob.WithPrefix(c.Prefix)}
		if c.Region != "" {
			opts = append(opts, s3blob.WithRegion(c.Region))
		}
		if c.Endpoint != "" {
			opts = append(opts, s3blob.WithEndpoint(c.Endpoint))
		}
		return s3blob.New(ctx, c.Bucket, opts...)
	case "minio":
		if c.Bucket == "" || c.Endpoint == "" {
			return nil, fmt.Errorf("storage.bucket and storage.endpoint are required for the minio backend")
		}
		client, err := minio.New(c.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(c.AccessKey, c.SecretKey, ""),
			Secure: c.Secure,
			Region: c.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
		return minioblob.NewStore(client, c.Bucket, c.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.Backend)
	}
}

func newCatalog(ctx context.Context, c CatalogConfig) (catalog.Catalog, error) {
	switch c.Backend {
	case "memory", "":
		return catalog.NewMemoryCatalog(), nil
	case "dynamodb":
		var loadOpts []func(*config.LoadOptions) error
		if c.Region != "" {
			loadOpts = append(loadOpts, config.WithRegion(c.Region))
		}
		awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return catalog.NewDynamoDB(dynamodb.NewFromConfig(awsCfg), c.Table), nil
	default:
		return nil, fmt.Errorf("unknown catalog backend %q", c.Backend)
	}
}
