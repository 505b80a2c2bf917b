package repository

import (
	"context"
	"errors"

	"stock-scoring/internal/model"
	"stock-scoring/pkg/utils"

	"gorm.io/gorm"
)

type WatchlistRepository interface {
	List(ctx context.Context, opts ...utils.DBOption) ([]model.WatchlistItem, error)
	FindBySymbol(ctx context.Context, symbol string, opts ...utils.DBOption) (*model.WatchlistItem, error)
	Create(ctx context.Context, item *model.WatchlistItem, opts ...utils.DBOption) error
	DeleteBySymbol(ctx context.Context, symbol string, opts ...utils.DBOption) (int64, error)
}

type watchlistRepository struct {
	db *gorm.DB
}

func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

func (r *watchlistRepository) List(ctx context.Context, opts ...utils.DBOption) ([]model.WatchlistItem, error) {
	var items []model.WatchlistItem
	if err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).Order("symbol ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindBySymbol returns nil without error when the symbol is not watched.
func (r *watchlistRepository) FindBySymbol(ctx context.Context, symbol string, opts ...utils.DBOption) (*model.WatchlistItem, error) {
	var item model.WatchlistItem
	err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).Where("symbol = ?", symbol).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *watchlistRepository) Create(ctx context.Context, item *model.WatchlistItem, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Create(item).Error
}

func (r *watchlistRepository) DeleteBySymbol(ctx context.Context, symbol string, opts ...utils.DBOption) (int64, error) {
	res := utils.ApplyOptions(r.db.WithContext(ctx), opts...).Where("symbol = ?", symbol).Delete(&model.WatchlistItem{})
	return res.RowsAffected, res.Error
}
