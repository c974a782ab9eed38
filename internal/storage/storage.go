package storage

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vzahanych/photo-app/internal/config"
)

// MaxBatchSize is the largest number of keys removed in one batch request.
const MaxBatchSize = 1000

var ErrNotConfigured = errors.New("object storage not configured")

// ObjectStorage is a flat key/value blob store for uploaded images.
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	DeleteBatch(ctx context.Context, keys []string) error
	URL(key string) string
}

// New builds the object storage selected by cfg.Type.
func New(cfg config.StorageConfig) (ObjectStorage, error) {
	switch cfg.Type {
	case "s3":
		return NewS3(cfg)
	case "memory":
		return NewMemory(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Type)
	}
}

// UniqueFilename derives a collision-resistant object name from the uploaded
// file name: YYYYmmdd_HHMMSS_<hash>.<ext>. Names without an extension get jpg.
func UniqueFilename(original string, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	sum := md5.Sum([]byte(original + timestamp))
	ext := "jpg"
	if i := strings.LastIndex(original, "."); i >= 0 {
		ext = original[i+1:]
	}
	return fmt.Sprintf("%s_%s.%s", timestamp, hex.EncodeToString(sum[:])[:8], ext)
}

// ThumbnailKey returns the key of the thumbnail stored next to key. Only the
// first path separator gets the thumb_ prefix, which keeps keys written by
// earlier releases resolvable.
func ThumbnailKey(key string) string {
	return strings.Replace(key, "/", "/thumb_", 1)
}

func objectURL(cfg config.StorageConfig, key string) string {
	if cfg.PublicURL != "" {
		return strings.TrimRight(cfg.PublicURL, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", cfg.Bucket, cfg.Region, key)
}
