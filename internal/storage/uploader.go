package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

type UploadRecorder interface {
	RecordUpload(kind string)
}

// Upload describes a stored image and its thumbnail.
type Upload struct {
	OriginalURL  string
	ThumbnailURL *string
	StorageKey   string
	Size         int64
}

// Uploader stores images with their thumbnails and removes them again.
type Uploader struct {
	store    ObjectStorage
	clock    clockwork.Clock
	logger   *zap.Logger
	recorder UploadRecorder
}

type UploaderOption func(*Uploader)

func WithClock(c clockwork.Clock) UploaderOption {
	return func(u *Uploader) { u.clock = c }
}

func WithRecorder(r UploadRecorder) UploaderOption {
	return func(u *Uploader) { u.recorder = r }
}

func NewUploader(store ObjectStorage, logger *zap.Logger, opts ...UploaderOption) *Uploader {
	if logger == nil {
		logger = zap.NewNop()
	}
	u := &Uploader{
		store:  store,
		clock:  clockwork.NewRealClock(),
		logger: logger.With(zap.String("component", "uploader")),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// UploadImage stores data under dir with a unique name derived from filename,
// followed by its thumbnail. If no thumbnail can be produced the original bytes
// are stored in its place.
func (u *Uploader) UploadImage(ctx context.Context, dir, filename string, data []byte) (*Upload, error) {
	if u.store == nil {
		return nil, ErrNotConfigured
	}

	key := strings.TrimSuffix(dir, "/") + "/" + UniqueFilename(filename, u.clock.Now())
	contentType := mimetype.Detect(data).String()

	if err := u.store.Put(ctx, key, data, contentType); err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	thumb, err := CreateThumbnail(data)
	thumbType := "image/jpeg"
	if err != nil {
		u.logger.Warn("Thumbnail creation failed, storing original",
			zap.String("key", key), zap.Error(err))
		thumb = data
		thumbType = contentType
	}

	thumbKey := ThumbnailKey(key)
	if err := u.store.Put(ctx, thumbKey, thumb, thumbType); err != nil {
		// Leave no original behind without its thumbnail.
		return nil, errors.Join(
			fmt.Errorf("failed to upload thumbnail: %w", err),
			u.store.Delete(ctx, key),
		)
	}

	if u.recorder != nil {
		kind, _, _ := strings.Cut(dir, "/")
		u.recorder.RecordUpload(kind)
	}

	thumbURL := u.store.URL(thumbKey)
	return &Upload{
		OriginalURL:  u.store.URL(key),
		ThumbnailURL: &thumbURL,
		StorageKey:   key,
		Size:         int64(len(data)),
	}, nil
}

// Delete removes an image and its thumbnail.
func (u *Uploader) Delete(ctx context.Context, key string) error {
	if u.store == nil {
		return ErrNotConfigured
	}
	return errors.Join(
		u.store.Delete(ctx, key),
		u.store.Delete(ctx, ThumbnailKey(key)),
	)
}

// DeleteBatch removes the images and their thumbnails in chunks of MaxBatchSize.
func (u *Uploader) DeleteBatch(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	if u.store == nil {
		return ErrNotConfigured
	}

	all := make([]string, 0, 2*len(keys))
	all = append(all, keys...)
	for _, key := range keys {
		all = append(all, ThumbnailKey(key))
	}

	var errs []error
	for start := 0; start < len(all); start += MaxBatchSize {
		end := min(start+MaxBatchSize, len(all))
		if err := u.store.DeleteBatch(ctx, all[start:end]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
