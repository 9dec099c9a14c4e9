package s3

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// DefaultExpiry is how long presigned download URLs stay valid.
const DefaultExpiry = 7 * 24 * time.Hour

// ObjectStorageClient uploads rendered pages to S3-compatible storage.
type ObjectStorageClient interface {
	Connect(ctx context.Context, endpoint, accessKeyID, secretAccessKey string, useSSL bool) error
	Upload(ctx context.Context, bucketName, objectName string, content io.Reader, size int64, contentType string) (string, error)
}

// ObjectStorage holds the minio client.
type ObjectStorage struct {
	Conn   *minio.Client
	region string
	expiry time.Duration
}

// NewObjectStorage creates an unconnected ObjectStorage. region is used when a
// bucket has to be created.
func NewObjectStorage(region string) *ObjectStorage {
	if region == "" {
		region = "us-east-1"
	}
	return &ObjectStorage{region: region, expiry: DefaultExpiry}
}

// Connect establishes the object storage connection and checks it by listing buckets.
func (o *ObjectStorage) Connect(ctx context.Context, endpoint, accessKeyID, secretAccessKey string, useSSL bool) error {
	conn, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create minio client: %w", err)
	}

	if _, err := conn.ListBuckets(ctx); err != nil {
		return fmt.Errorf("failed to establish minio connection: %w", err)
	}

	o.Conn = conn
	return nil
}

// Upload stores content under bucketName/objectName, creating the bucket if
// needed, and returns a presigned download URL.
func (o *ObjectStorage) Upload(ctx context.Context, bucketName, objectName string, content io.Reader, size int64, contentType string) (string, error) {
	if o.Conn == nil {
		return "", fmt.Errorf("object storage is not connected")
	}

	if err := o.Conn.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: o.region}); err != nil {
		exists, errBucketExists := o.Conn.BucketExists(ctx, bucketName)
		if !(errBucketExists == nil && exists) {
			return "", fmt.Errorf("failed to create bucket %s: %w", bucketName, err)
		}
	}

	// Overwrites the object if the same name already exists
	if _, err := o.Conn.PutObject(ctx, bucketName, objectName, content, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectName, err)
	}

	presignedURL, err := o.Conn.PresignedGetObject(ctx, bucketName, objectName, o.expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", objectName, err)
	}

	return presignedURL.String(), nil
}
