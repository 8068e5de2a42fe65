package storage

import (
	"context"
	"io"
	"time"
)

// Service stores user avatar images in remote object storage.
type Service interface {
	// UploadObject writes body under bucket/key and returns the
	// s3://bucket/key location.
	UploadObject(ctx context.Context, bucket, key, contentType string, body io.Reader) (string, error)
	DeleteObject(ctx context.Context, bucket, key string) error
	// GetObjectURL returns a presigned, time-limited download URL.
	GetObjectURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
}
