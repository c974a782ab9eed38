package store

import (
	"context"
)

func (s *Store) ListFilmStocks(ctx context.Context, opts ListOptions) ([]FilmStock, error) {
	opts = opts.normalize()
	stocks := []FilmStock{}
	err := s.db.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Offset(opts.Skip).Limit(opts.Limit).
		Find(&stocks).Error
	return stocks, err
}

func (s *Store) GetFilmStock(ctx context.Context, id uint) (*FilmStock, error) {
	var stock FilmStock
	if err := first(s.db.WithContext(ctx), &stock, "Film stock", id); err != nil {
		return nil, err
	}
	return &stock, nil
}

func (s *Store) CreateFilmStock(ctx context.Context, stock *FilmStock) error {
	return s.db.WithContext(ctx).Create(stock).Error
}

func (s *Store) UpdateFilmStock(ctx context.Context, id uint, patch FilmStockPatch) (*FilmStock, error) {
	stock, err := s.GetFilmStock(ctx, id)
	if err != nil {
		return nil, err
	}
	if u := patch.updates(); len(u) > 0 {
		if err := s.db.WithContext(ctx).Model(stock).Updates(u).Error; err != nil {
			return nil, err
		}
	}
	return s.GetFilmStock(ctx, id)
}

func (s *Store) DeleteFilmStock(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&FilmStock{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("Film stock")
	}
	return nil
}
