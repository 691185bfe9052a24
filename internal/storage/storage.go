package storage

import (
	"context"
	"fmt"
	"io"
)

// Storage - хранилище медиафайлов (замена внешнего медиахостинга)
type Storage interface {
	// Save stores an object under key
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Delete removes an object; missing objects are not an error
	Delete(ctx context.Context, key string) error

	// GetURL returns the public URL of an object
	GetURL(key string) string
}

// Config holds storage configuration
type Config struct {
	Type       string // local, s3, cloudflare_r2
	BasePath   string // local
	BaseURL    string // public URL base
	Bucket     string
	Region     string
	AccessKey  string
	SecretKey  string
	Endpoint   string // R2 or custom S3
	UseSSL     bool
	PublicRead bool
}

// NewStorage creates a storage backend based on configuration
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	case "cloudflare_r2":
		return NewCloudflareR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
