package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

func (s *Store) ListGalleries(ctx context.Context, opts ListOptions) ([]Gallery, error) {
	opts = opts.normalize()
	galleries := []Gallery{}
	err := s.db.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Offset(opts.Skip).Limit(opts.Limit).
		Find(&galleries).Error
	return galleries, err
}

func (s *Store) GetGallery(ctx context.Context, id uint) (*Gallery, error) {
	var g Gallery
	if err := first(s.db.WithContext(ctx), &g, "Gallery", id); err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *Store) CreateGallery(ctx context.Context, g *Gallery) error {
	return s.db.WithContext(ctx).Create(g).Error
}

func (s *Store) UpdateGallery(ctx context.Context, id uint, patch GalleryPatch) (*Gallery, error) {
	g, err := s.GetGallery(ctx, id)
	if err != nil {
		return nil, err
	}
	if u := patch.updates(); len(u) > 0 {
		if err := s.db.WithContext(ctx).Model(g).Updates(u).Error; err != nil {
			return nil, err
		}
	}
	return s.GetGallery(ctx, id)
}

// DeleteGallery removes the gallery with its photos and returns the storage
// keys of the removed photos for blob cleanup.
func (s *Store) DeleteGallery(ctx context.Context, id uint) ([]string, error) {
	var keys []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var g Gallery
		if err := first(tx, &g, "Gallery", id); err != nil {
			return err
		}

		var photos []Photo
		if err := tx.Where("gallery_id = ?", id).Find(&photos).Error; err != nil {
			return err
		}
		keys = photoKeys(photos)

		if err := tx.Where("gallery_id = ?", id).Delete(&Photo{}).Error; err != nil {
			return err
		}
		return tx.Delete(&g).Error
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *Store) ListPhotos(ctx context.Context, galleryID uint) ([]Photo, error) {
	if _, err := s.GetGallery(ctx, galleryID); err != nil {
		return nil, err
	}
	photos := []Photo{}
	err := s.db.WithContext(ctx).
		Where("gallery_id = ?", galleryID).
		Order("display_order").Order("id").
		Find(&photos).Error
	return photos, err
}

// AddPhoto appends photo to the gallery. The photo goes after the existing ones,
// the photo count grows by one and the first photo becomes the cover.
func (s *Store) AddPhoto(ctx context.Context, galleryID uint, photo *Photo) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var g Gallery
		if err := first(tx, &g, "Gallery", galleryID); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&Photo{}).Where("gallery_id = ?", galleryID).Count(&count).Error; err != nil {
			return err
		}

		photo.GalleryID = galleryID
		photo.DisplayOrder = int(count)
		if err := tx.Create(photo).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{"photo_count": g.PhotoCount + 1}
		if g.CoverImageURL == nil || *g.CoverImageURL == "" {
			updates["cover_image_url"] = photo.ThumbnailURL
		}
		return tx.Model(&g).Updates(updates).Error
	})
}

// DeletePhoto removes a photo from its gallery and returns it. The photo count
// never drops below zero; deleting the cover promotes the next remaining photo.
func (s *Store) DeletePhoto(ctx context.Context, galleryID, photoID uint) (*Photo, error) {
	var photo Photo
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND gallery_id = ?", photoID, galleryID).First(&photo).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Photo")
		}
		if err != nil {
			return err
		}

		if err := tx.Delete(&photo).Error; err != nil {
			return err
		}

		var g Gallery
		if err := tx.First(&g, galleryID).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		} else if err != nil {
			return err
		}

		updates := map[string]interface{}{"photo_count": max(0, g.PhotoCount-1)}
		if sameURL(g.CoverImageURL, photo.ThumbnailURL) {
			var next Photo
			err := tx.Where("gallery_id = ?", galleryID).Order("display_order").Order("id").First(&next).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				updates["cover_image_url"] = nil
			case err != nil:
				return err
			default:
				updates["cover_image_url"] = next.ThumbnailURL
			}
		}
		return tx.Model(&g).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

// SetCover makes a photo of the gallery its cover, preferring the thumbnail URL.
func (s *Store) SetCover(ctx context.Context, galleryID, photoID uint) (string, error) {
	var cover string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var g Gallery
		if err := first(tx, &g, "Gallery", galleryID); err != nil {
			return err
		}

		var photo Photo
		err := tx.Where("id = ? AND gallery_id = ?", photoID, galleryID).First(&photo).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Photo")
		}
		if err != nil {
			return err
		}

		cover = photo.OriginalURL
		if photo.ThumbnailURL != nil && *photo.ThumbnailURL != "" {
			cover = *photo.ThumbnailURL
		}
		return tx.Model(&g).Update("cover_image_url", cover).Error
	})
	if err != nil {
		return "", err
	}
	return cover, nil
}

func sameURL(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func photoKeys(photos []Photo) []string {
	var keys []string
	for _, p := range photos {
		if p.StorageKey != nil && *p.StorageKey != "" {
			keys = append(keys, *p.StorageKey)
		}
	}
	return keys
}
