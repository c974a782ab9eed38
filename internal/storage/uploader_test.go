package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzahanych/photo-app/internal/config"
	"go.uber.org/zap/zaptest"
)

type batchRecorder struct {
	*Memory
	mu      sync.Mutex
	batches [][]string
	putErr  error
	// thumbErr fails only thumbnail writes.
	thumbErr error
}

func (b *batchRecorder) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if b.putErr != nil {
		return b.putErr
	}
	if b.thumbErr != nil && strings.Contains(key, "/thumb_") {
		return b.thumbErr
	}
	return b.Memory.Put(ctx, key, data, contentType)
}

func (b *batchRecorder) DeleteBatch(ctx context.Context, keys []string) error {
	b.mu.Lock()
	b.batches = append(b.batches, append([]string(nil), keys...))
	b.mu.Unlock()
	return b.Memory.DeleteBatch(ctx, keys)
}

type uploadCounter struct {
	kinds []string
}

func (u *uploadCounter) RecordUpload(kind string) {
	u.kinds = append(u.kinds, kind)
}

func newTestUploader(t *testing.T) (*Uploader, *batchRecorder, *uploadCounter) {
	t.Helper()
	mem := &batchRecorder{Memory: NewMemory(config.StorageConfig{Bucket: "photos", Region: "us-west-1"})}
	rec := &uploadCounter{}
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.June, 21, 14, 30, 5, 0, time.UTC))
	return NewUploader(mem, zaptest.NewLogger(t), WithClock(clock), WithRecorder(rec)), mem, rec
}

func TestUploadImage(t *testing.T) {
	u, mem, rec := newTestUploader(t)
	data := encodePNG(t, 800, 800)

	up, err := u.UploadImage(context.Background(), "galleries/7", "photo.png", data)
	require.NoError(t, err)

	assert.Equal(t, "galleries/7/20240621_143005_4bfc2cc0.png", up.StorageKey)
	assert.Equal(t, "https://photos.s3.us-west-1.amazonaws.com/galleries/7/20240621_143005_4bfc2cc0.png", up.OriginalURL)
	require.NotNil(t, up.ThumbnailURL)
	assert.Equal(t, "https://photos.s3.us-west-1.amazonaws.com/galleries/thumb_7/20240621_143005_4bfc2cc0.png", *up.ThumbnailURL)
	assert.Equal(t, int64(len(data)), up.Size)

	original, ok := mem.Get(up.StorageKey)
	require.True(t, ok)
	assert.Equal(t, "image/png", original.ContentType)

	thumb, ok := mem.Get(ThumbnailKey(up.StorageKey))
	require.True(t, ok)
	assert.Equal(t, "image/jpeg", thumb.ContentType)
	assert.Equal(t, image.Point{X: 400, Y: 400}, thumbSize(t, thumb.Data))

	assert.Equal(t, []string{"galleries"}, rec.kinds)
}

func TestUploadImage_ThumbnailFitsBox(t *testing.T) {
	u, mem, _ := newTestUploader(t)

	up, err := u.UploadImage(context.Background(), "trips/4", "pano.png", encodePNG(t, 1000, 250))
	require.NoError(t, err)

	thumb, ok := mem.Get(ThumbnailKey(up.StorageKey))
	require.True(t, ok)
	assert.Equal(t, image.Point{X: 400, Y: 100}, thumbSize(t, thumb.Data))
}

func TestUploadImage_ThumbnailPutFailureRemovesOriginal(t *testing.T) {
	u, mem, rec := newTestUploader(t)
	mem.thumbErr = errors.New("boom")

	up, err := u.UploadImage(context.Background(), "galleries/1", "a.png", encodePNG(t, 16, 16))
	require.Error(t, err)
	assert.Nil(t, up)
	assert.Contains(t, err.Error(), "failed to upload thumbnail: boom")
	assert.Empty(t, mem.Keys())
	assert.Empty(t, rec.kinds)
}

func thumbSize(t *testing.T, data []byte) image.Point {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "jpeg", format)
	return image.Point{X: cfg.Width, Y: cfg.Height}
}

func TestUploadImage_ThumbnailFallback(t *testing.T) {
	u, mem, _ := newTestUploader(t)
	data := []byte("raw bytes from a camera we cannot decode")

	up, err := u.UploadImage(context.Background(), "trips/2", "IMG_0001", data)
	require.NoError(t, err)

	thumb, ok := mem.Get(ThumbnailKey(up.StorageKey))
	require.True(t, ok)
	assert.Equal(t, data, thumb.Data)
}

func TestUploadImage_StorageError(t *testing.T) {
	u, mem, rec := newTestUploader(t)
	mem.putErr = errors.New("bucket gone")

	_, err := u.UploadImage(context.Background(), "galleries/1", "a.jpg", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket gone")
	assert.Empty(t, rec.kinds)
}

func TestUploader_NoStorage(t *testing.T) {
	u := NewUploader(nil, nil)
	_, err := u.UploadImage(context.Background(), "galleries/1", "a.jpg", []byte("x"))
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.ErrorIs(t, u.Delete(context.Background(), "k"), ErrNotConfigured)
	assert.NoError(t, u.DeleteBatch(context.Background(), nil))
}

func TestUploader_Delete(t *testing.T) {
	u, mem, _ := newTestUploader(t)
	ctx := context.Background()

	up, err := u.UploadImage(ctx, "galleries/1", "a.png", encodePNG(t, 10, 10))
	require.NoError(t, err)
	require.Len(t, mem.Keys(), 2)

	require.NoError(t, u.Delete(ctx, up.StorageKey))
	assert.Empty(t, mem.Keys())
}

func TestUploader_DeleteBatchChunks(t *testing.T) {
	u, mem, _ := newTestUploader(t)
	ctx := context.Background()

	keys := make([]string, 600)
	for i := range keys {
		keys[i] = fmt.Sprintf("trips/1/%04d.jpg", i)
		require.NoError(t, mem.Memory.Put(ctx, keys[i], []byte("x"), "image/jpeg"))
		require.NoError(t, mem.Memory.Put(ctx, ThumbnailKey(keys[i]), []byte("x"), "image/jpeg"))
	}

	require.NoError(t, u.DeleteBatch(ctx, keys))
	require.Len(t, mem.batches, 2)
	assert.Len(t, mem.batches[0], MaxBatchSize)
	assert.Len(t, mem.batches[1], 200)
	assert.Equal(t, "trips/thumb_1/0599.jpg", mem.batches[1][199])
	assert.Empty(t, mem.Keys())
}
