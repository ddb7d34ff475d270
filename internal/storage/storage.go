package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Storage is the uniform interface over the media backends. Keys are
// opaque paths; callers never hand out a key directly, only URLs
// produced by GetURL/GetSignedURL.
type Storage interface {
	// Save stores a blob under the given key
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Get retrieves a blob by key
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the blob for the key
	Delete(ctx context.Context, key string) error

	// Exists reports whether a blob exists for the key
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns a public URL for the key
	GetURL(ctx context.Context, key string) (string, error)

	// GetSignedURL returns a time-limited retrieval URL for the key
	GetSignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// Config holds storage configuration.
type Config struct {
	Type      string // local, s3, cloudflare_r2
	BasePath  string // for local storage
	BaseURL   string // public URL base
	Bucket    string // for S3/R2
	Region    string // for S3
	AccessKey string // for S3/R2
	SecretKey string // for S3/R2
	Endpoint  string // for R2 or custom S3
	UseSSL    bool
}

// NewStorage creates a storage backend based on configuration.
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	case "cloudflare_r2":
		return NewCloudflareR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
