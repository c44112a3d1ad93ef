// Package storage keeps uploaded media either on local disk or in an S3 bucket.
package storage

import (
	"context"
	"io"
	"log"
	"yatube/internal/config"
)

type Storage interface {
	Save(ctx context.Context, path string, reader io.Reader, mimeType string) error
	Delete(ctx context.Context, path string) error
	// URL returns an address a browser can load path from.
	URL(path string) string
}

// New picks S3 when a bucket is configured and the media directory otherwise.
func New(cfg *config.Config) (Storage, error) {
	if cfg.S3Bucket != "" {
		log.Printf("Media storage: s3 bucket %s", cfg.S3Bucket)
		return NewS3Storage(S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PathStyle: cfg.S3PathStyle,
		})
	}
	log.Printf("Media storage: disk %s", cfg.MediaDir)
	return NewDiskStorage(cfg.MediaDir, cfg.MediaURL), nil
}
