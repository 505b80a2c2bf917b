package repository

import (
	"context"
	"time"

	"stock-scoring/internal/model"
	"stock-scoring/pkg/utils"

	"gorm.io/gorm"
)

type AnalysisHistoryRepository interface {
	Create(ctx context.Context, history *model.AnalysisHistory, opts ...utils.DBOption) error
	CreateBulk(ctx context.Context, histories []model.AnalysisHistory, opts ...utils.DBOption) error
	GetRecent(ctx context.Context, param model.GetAnalysisHistoryParam) ([]model.AnalysisHistory, error)
	DeleteOlderThan(ctx context.Context, date time.Time, opts ...utils.DBOption) (int64, error)
}

type analysisHistoryRepository struct {
	db *gorm.DB
}

func NewAnalysisHistoryRepository(db *gorm.DB) AnalysisHistoryRepository {
	return &analysisHistoryRepository{db: db}
}

func (r *analysisHistoryRepository) Create(ctx context.Context, history *model.AnalysisHistory, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Create(history).Error
}

func (r *analysisHistoryRepository) CreateBulk(ctx context.Context, histories []model.AnalysisHistory, opts ...utils.DBOption) error {
	if len(histories) == 0 {
		return nil
	}
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).CreateInBatches(histories, 100).Error
}

// GetRecent returns the newest analyses first, optionally for a single symbol.
func (r *analysisHistoryRepository) GetRecent(ctx context.Context, param model.GetAnalysisHistoryParam) ([]model.AnalysisHistory, error) {
	var histories []model.AnalysisHistory

	opts := []utils.DBOption{utils.WithOrder("analyzed_at DESC"), utils.WithLimit(param.Limit)}
	if param.Symbol != nil {
		opts = append(opts, utils.WithWhere("symbol = ?", *param.Symbol))
	}

	if err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).Find(&histories).Error; err != nil {
		return nil, err
	}
	return histories, nil
}

func (r *analysisHistoryRepository) DeleteOlderThan(ctx context.Context, date time.Time, opts ...utils.DBOption) (int64, error) {
	res := utils.ApplyOptions(r.db.WithContext(ctx), opts...).Where("analyzed_at < ?", date).Delete(&model.AnalysisHistory{})
	return res.RowsAffected, res.Error
}
