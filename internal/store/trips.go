package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

func orderedImages(db *gorm.DB) *gorm.DB {
	return db.Order("display_order").Order("id")
}

func (s *Store) ListTrips(ctx context.Context, opts ListOptions) ([]Trip, error) {
	opts = opts.normalize()
	trips := []Trip{}
	err := s.db.WithContext(ctx).
		Preload("Images", orderedImages).
		Order("created_at DESC").Order("id DESC").
		Offset(opts.Skip).Limit(opts.Limit).
		Find(&trips).Error
	if err != nil {
		return nil, err
	}
	for i := range trips {
		if trips[i].Images == nil {
			trips[i].Images = []TripImage{}
		}
	}
	return trips, nil
}

func (s *Store) GetTrip(ctx context.Context, id uint) (*Trip, error) {
	var trip Trip
	if err := first(s.db.WithContext(ctx).Preload("Images", orderedImages), &trip, "Trip", id); err != nil {
		return nil, err
	}
	if trip.Images == nil {
		trip.Images = []TripImage{}
	}
	return &trip, nil
}

func (s *Store) CreateTrip(ctx context.Context, trip *Trip) error {
	trip.Images = nil
	if err := s.db.WithContext(ctx).Create(trip).Error; err != nil {
		return err
	}
	trip.Images = []TripImage{}
	return nil
}

func (s *Store) UpdateTrip(ctx context.Context, id uint, patch TripPatch) (*Trip, error) {
	var trip Trip
	if err := first(s.db.WithContext(ctx), &trip, "Trip", id); err != nil {
		return nil, err
	}
	if u := patch.updates(); len(u) > 0 {
		if err := s.db.WithContext(ctx).Model(&trip).Updates(u).Error; err != nil {
			return nil, err
		}
	}
	return s.GetTrip(ctx, id)
}

// DeleteTrip removes the trip with its images and returns their storage keys.
func (s *Store) DeleteTrip(ctx context.Context, id uint) ([]string, error) {
	var keys []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var trip Trip
		if err := first(tx, &trip, "Trip", id); err != nil {
			return err
		}

		var images []TripImage
		if err := tx.Where("trip_id = ?", id).Find(&images).Error; err != nil {
			return err
		}
		for _, img := range images {
			if img.StorageKey != nil && *img.StorageKey != "" {
				keys = append(keys, *img.StorageKey)
			}
		}

		if err := tx.Where("trip_id = ?", id).Delete(&TripImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&trip).Error
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// AddTripImage appends an inspiration image after the trip's existing ones.
func (s *Store) AddTripImage(ctx context.Context, tripID uint, img *TripImage) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var trip Trip
		if err := first(tx, &trip, "Trip", tripID); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&TripImage{}).Where("trip_id = ?", tripID).Count(&count).Error; err != nil {
			return err
		}

		img.TripID = tripID
		img.DisplayOrder = int(count)
		return tx.Create(img).Error
	})
}

func (s *Store) DeleteTripImage(ctx context.Context, tripID, imageID uint) (*TripImage, error) {
	var img TripImage
	err := s.db.WithContext(ctx).Where("id = ? AND trip_id = ?", imageID, tripID).First(&img).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("Image")
	}
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(&img).Error; err != nil {
		return nil, err
	}
	return &img, nil
}
