package store

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzahanych/photo-app/internal/config"
	"go.uber.org/zap/zaptest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "photo.db"),
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func strPtr(s string) *string { return &s }

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "oracle"}, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestPing(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestNotFoundError(t *testing.T) {
	err := notFound("Gallery")
	assert.Equal(t, "Gallery not found", err.Error())
	assert.True(t, errors.Is(err, ErrNotFound))

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "Gallery", nf.Entity)
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(2024, time.June, 21)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-06-21"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-12-31"`), &parsed))
	assert.Equal(t, "2024-12-31", parsed.String())

	assert.Error(t, json.Unmarshal([]byte(`"31/12/2024"`), &parsed))
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2024-06-21 00:00:00+00:00"))
	assert.Equal(t, "2024-06-21", d.String())

	require.NoError(t, d.Scan([]byte("2023-01-02")))
	assert.Equal(t, "2023-01-02", d.String())

	loc := time.FixedZone("CEST", 2*3600)
	require.NoError(t, d.Scan(time.Date(2022, 3, 4, 23, 0, 0, 0, loc)))
	assert.Equal(t, "2022-03-04", d.String())

	assert.Error(t, d.Scan(42))
}

func TestFilmStocks_CRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	expiry := NewDate(2025, time.March, 1)
	stock := &FilmStock{Model: "Portra 400", Format: strPtr("35mm"), Quantity: 3, ExpiryDate: &expiry}
	require.NoError(t, s.CreateFilmStock(ctx, stock))
	require.NotZero(t, stock.ID)

	got, err := s.GetFilmStock(ctx, stock.ID)
	require.NoError(t, err)
	assert.Equal(t, "Portra 400", got.Model)
	require.NotNil(t, got.ExpiryDate)
	assert.Equal(t, "2025-03-01", got.ExpiryDate.String())

	qty := 1
	updated, err := s.UpdateFilmStock(ctx, stock.ID, FilmStockPatch{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Quantity)
	assert.Equal(t, "Portra 400", updated.Model)
	assert.Equal(t, "35mm", *updated.Format)

	list, err := s.ListFilmStocks(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, s.DeleteFilmStock(ctx, stock.ID))
	_, err = s.GetFilmStock(ctx, stock.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteFilmStock(ctx, stock.ID), ErrNotFound)

	_, err = s.UpdateFilmStock(ctx, 999, FilmStockPatch{Quantity: &qty})
	assert.EqualError(t, err, "Film stock not found")
}

func TestListOptions_Paging(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, s.CreateGallery(ctx, &Gallery{Name: name}))
	}

	page, err := s.ListGalleries(ctx, ListOptions{Skip: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b", page[0].Name)

	all, err := s.ListGalleries(ctx, ListOptions{Limit: -1})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGallery_PhotoLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	g := &Gallery{Name: "Iceland", Description: strPtr("Ring road")}
	require.NoError(t, s.CreateGallery(ctx, g))

	first := &Photo{OriginalURL: "https://cdn/photos/a.jpg", ThumbnailURL: strPtr("https://cdn/photos/thumb_a.jpg"), StorageKey: strPtr("photos/a.jpg")}
	second := &Photo{OriginalURL: "https://cdn/photos/b.jpg", ThumbnailURL: strPtr("https://cdn/photos/thumb_b.jpg"), StorageKey: strPtr("photos/b.jpg")}
	require.NoError(t, s.AddPhoto(ctx, g.ID, first))
	require.NoError(t, s.AddPhoto(ctx, g.ID, second))
	assert.Equal(t, 0, first.DisplayOrder)
	assert.Equal(t, 1, second.DisplayOrder)

	got, err := s.GetGallery(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.PhotoCount)
	require.NotNil(t, got.CoverImageURL)
	assert.Equal(t, "https://cdn/photos/thumb_a.jpg", *got.CoverImageURL)

	photos, err := s.ListPhotos(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, first.ID, photos[0].ID)

	cover, err := s.SetCover(ctx, g.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/photos/thumb_b.jpg", cover)

	deleted, err := s.DeletePhoto(ctx, g.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "photos/b.jpg", *deleted.StorageKey)

	got, err = s.GetGallery(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.PhotoCount)
	require.NotNil(t, got.CoverImageURL)
	assert.Equal(t, "https://cdn/photos/thumb_a.jpg", *got.CoverImageURL)

	_, err = s.DeletePhoto(ctx, g.ID, first.ID)
	require.NoError(t, err)
	got, err = s.GetGallery(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.PhotoCount)
	assert.Nil(t, got.CoverImageURL)

	_, err = s.DeletePhoto(ctx, g.ID, first.ID)
	assert.EqualError(t, err, "Photo not found")
}

func TestGallery_SetCoverFallsBackToOriginal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	g := &Gallery{Name: "Film"}
	require.NoError(t, s.CreateGallery(ctx, g))
	p := &Photo{OriginalURL: "https://cdn/photos/scan.jpg"}
	require.NoError(t, s.AddPhoto(ctx, g.ID, p))

	cover, err := s.SetCover(ctx, g.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/photos/scan.jpg", cover)

	_, err = s.SetCover(ctx, g.ID, 999)
	assert.EqualError(t, err, "Photo not found")
	_, err = s.SetCover(ctx, 999, p.ID)
	assert.EqualError(t, err, "Gallery not found")
}

func TestGallery_PhotoFromOtherGallery(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := &Gallery{Name: "a"}
	b := &Gallery{Name: "b"}
	require.NoError(t, s.CreateGallery(ctx, a))
	require.NoError(t, s.CreateGallery(ctx, b))
	p := &Photo{OriginalURL: "https://cdn/photos/x.jpg"}
	require.NoError(t, s.AddPhoto(ctx, a.ID, p))

	_, err := s.DeletePhoto(ctx, b.ID, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteGallery_ReturnsStorageKeys(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	g := &Gallery{Name: "Alps"}
	require.NoError(t, s.CreateGallery(ctx, g))
	require.NoError(t, s.AddPhoto(ctx, g.ID, &Photo{OriginalURL: "u1", StorageKey: strPtr("photos/1.jpg")}))
	require.NoError(t, s.AddPhoto(ctx, g.ID, &Photo{OriginalURL: "u2"}))

	keys, err := s.DeleteGallery(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"photos/1.jpg"}, keys)

	_, err = s.GetGallery(ctx, g.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.ListPhotos(ctx, g.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.DeleteGallery(ctx, g.ID)
	assert.EqualError(t, err, "Gallery not found")
}

func TestUpdateGallery(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	g := &Gallery{Name: "Old"}
	require.NoError(t, s.CreateGallery(ctx, g))

	updated, err := s.UpdateGallery(ctx, g.ID, GalleryPatch{Name: strPtr("New")})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	assert.Nil(t, updated.Description)
}

func TestTrips_CRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	start := NewDate(2024, time.June, 21)
	trip := &Trip{Name: "Paris", Destination: strPtr("Paris"), StartDate: &start}
	require.NoError(t, s.CreateTrip(ctx, trip))
	assert.NotNil(t, trip.Images)

	got, err := s.GetTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-21", got.StartDate.String())
	assert.Nil(t, got.EndDate)
	assert.Empty(t, got.Images)

	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"images":[]`)
	assert.Contains(t, string(data), `"start_date":"2024-06-21"`)

	end := NewDate(2024, time.June, 23)
	updated, err := s.UpdateTrip(ctx, trip.ID, TripPatch{EndDate: &end})
	require.NoError(t, err)
	require.NotNil(t, updated.EndDate)
	assert.Equal(t, "2024-06-23", updated.EndDate.String())
	assert.Equal(t, "Paris", *updated.Destination)

	trips, err := s.ListTrips(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.NotNil(t, trips[0].Images)

	_, err = s.UpdateTrip(ctx, 999, TripPatch{})
	assert.EqualError(t, err, "Trip not found")
}

func TestTripImages(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	trip := &Trip{Name: "Dolomites"}
	require.NoError(t, s.CreateTrip(ctx, trip))

	a := &TripImage{ImageURL: "https://cdn/trips/a.jpg", StorageKey: strPtr("trips/a.jpg"), Caption: strPtr("Seceda")}
	b := &TripImage{ImageURL: "https://cdn/trips/b.jpg", StorageKey: strPtr("trips/b.jpg")}
	require.NoError(t, s.AddTripImage(ctx, trip.ID, a))
	require.NoError(t, s.AddTripImage(ctx, trip.ID, b))
	assert.Equal(t, 1, b.DisplayOrder)

	got, err := s.GetTrip(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, got.Images, 2)
	assert.Equal(t, a.ID, got.Images[0].ID)
	assert.Equal(t, "Seceda", *got.Images[0].Caption)

	removed, err := s.DeleteTripImage(ctx, trip.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "trips/a.jpg", *removed.StorageKey)

	_, err = s.DeleteTripImage(ctx, trip.ID, a.ID)
	assert.EqualError(t, err, "Image not found")

	err = s.AddTripImage(ctx, 999, &TripImage{ImageURL: "x"})
	assert.EqualError(t, err, "Trip not found")

	keys, err := s.DeleteTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"trips/b.jpg"}, keys)

	_, err = s.GetTrip(ctx, trip.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
