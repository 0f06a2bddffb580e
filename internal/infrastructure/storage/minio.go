package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"garagesale.backend/internal/config"
	"garagesale.backend/pkg/logger"
)

// ObjectStore abstracts the object storage used for listing photos,
// verification documents and proof-of-receipt images.
type ObjectStore interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, objectName string) error
	PresignedGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// MinIOClient implements ObjectStore on a MinIO (or S3-compatible) bucket.
type MinIOClient struct {
	client *minio.Client
	bucket string
}

// NewMinIOClient connects to the configured endpoint
func NewMinIOClient(cfg config.StorageConfig) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinIOClient{client: client, bucket: cfg.Bucket}, nil
}

// EnsureBucket creates the bucket on first boot if it does not exist
func (m *MinIOClient) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed creating bucket %s: %w", m.bucket, err)
	}
	return nil
}

// Upload stores an object with its content type
func (m *MinIOClient) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		logger.Error(ctx, "object upload failed",
			zap.String("object", objectName),
			zap.Int64("size", size),
			zap.String("bucket", m.bucket),
			zap.Error(err))
		return err
	}
	logger.Debug(ctx, "object uploaded",
		zap.String("object", objectName),
		zap.Int64("size", size),
		zap.String("bucket", m.bucket))
	return nil
}

// Delete removes an object
func (m *MinIOClient) Delete(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		logger.Error(ctx, "object delete failed",
			zap.String("object", objectName),
			zap.String("bucket", m.bucket),
			zap.Error(err))
	}
	return err
}

// PresignedGetURL returns a time-limited download URL for an object. Clients
// never read the bucket directly.
func (m *MinIOClient) PresignedGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	urlValue, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, expiry, nil)
	if err != nil {
		return "", err
	}
	return urlValue.String(), nil
}
