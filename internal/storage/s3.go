package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/vzahanych/photo-app/internal/config"
)

const defaultS3Endpoint = "s3.amazonaws.com"

// S3 stores objects in an S3-compatible bucket.
type S3 struct {
	client *minio.Client
	cfg    config.StorageConfig
}

// NewS3 builds the S3 client. Without a bucket the storage stays unconfigured
// and every call fails with ErrNotConfigured.
func NewS3(cfg config.StorageConfig) (*S3, error) {
	if cfg.Bucket == "" {
		return &S3{cfg: cfg}, nil
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultS3Endpoint
	}
	secure := !strings.HasPrefix(strings.ToLower(endpoint), "http://")

	opts := &minio.Options{
		Secure: secure,
		Region: cfg.Region,
	}
	if cfg.AccessKeyID != "" {
		opts.Creds = credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	} else {
		opts.Creds = credentials.NewEnvAWS()
	}

	client, err := minio.New(sanitizeEndpoint(endpoint), opts)
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return &S3{client: client, cfg: cfg}, nil
}

func (s *S3) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if s.client == nil {
		return ErrNotConfigured
	}
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:      contentType,
		DisableMultipart: len(data) < 5*1024*1024,
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (s *S3) Delete(ctx context.Context, key string) error {
	if s.client == nil {
		return ErrNotConfigured
	}
	return s.client.RemoveObject(ctx, s.cfg.Bucket, key, minio.RemoveObjectOptions{})
}

func (s *S3) DeleteBatch(ctx context.Context, keys []string) error {
	if s.client == nil {
		return ErrNotConfigured
	}

	objects := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		objects <- minio.ObjectInfo{Key: key}
	}
	close(objects)

	var errs []error
	for rerr := range s.client.RemoveObjects(ctx, s.cfg.Bucket, objects, minio.RemoveObjectsOptions{}) {
		errs = append(errs, fmt.Errorf("remove %s: %w", rerr.ObjectName, rerr.Err))
	}
	return errors.Join(errs...)
}

func (s *S3) URL(key string) string {
	return objectURL(s.cfg, key)
}

// sanitizeEndpoint strips the scheme and any path so minio.New accepts it.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if i := strings.Index(raw, "/"); i >= 0 {
		raw = raw[:i]
	}
	return raw
}

var _ ObjectStorage = (*S3)(nil)
