// Package storage writes uploaded files to the local filesystem or to an
// S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"io"
)

type Disk interface {
	// Put stores r under path, replacing any existing object.
	Put(ctx context.Context, path string, r io.Reader, contentType string) error
	Delete(ctx context.Context, path string) error
	// URL returns the public URL for path.
	URL(path string) string
}

type Config struct {
	Driver        string
	UploadDir     string
	PublicBaseURL string

	S3Bucket   string
	S3Region   string
	S3Key      string
	S3Secret   string
	S3Endpoint string
	S3URL      string
}

// New returns the disk selected by cfg.Driver ("local" or "s3").
func New(ctx context.Context, cfg Config) (Disk, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocal(cfg.UploadDir, cfg.PublicBaseURL), nil
	case "s3":
		return NewS3(ctx, cfg)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}
