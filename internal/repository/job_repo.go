package repository

import (
	"context"
	"errors"
	"time"

	"stock-scoring/internal/model"
	"stock-scoring/pkg/utils"

	"gorm.io/gorm"
)

type JobRepository interface {
	FindDueSchedules(ctx context.Context, now time.Time, opts ...utils.DBOption) ([]model.TaskSchedule, error)
	FindSchedulesByJobIDs(ctx context.Context, jobIDs []uint, opts ...utils.DBOption) ([]model.TaskSchedule, error)
	FindByID(ctx context.Context, id uint) (*model.Job, error)
	Get(ctx context.Context, param *model.GetJobParam, opts ...utils.DBOption) ([]model.Job, error)
	CreateTaskExecutionHistory(ctx context.Context, history *model.TaskExecutionHistory, opts ...utils.DBOption) error
	UpdateTaskExecutionHistory(ctx context.Context, history *model.TaskExecutionHistory, opts ...utils.DBOption) error
	UpdateTaskSchedule(ctx context.Context, schedule *model.TaskSchedule, opts ...utils.DBOption) error
	DeleteTaskHistoryOlderThan(ctx context.Context, date time.Time, opts ...utils.DBOption) (int64, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// FindDueSchedules returns active schedules that never ran or whose next execution is not after now.
func (r *jobRepository) FindDueSchedules(ctx context.Context, now time.Time, opts ...utils.DBOption) ([]model.TaskSchedule, error) {
	var schedules []model.TaskSchedule
	err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Where("is_active = ? AND (next_execution IS NULL OR next_execution <= ?)", true, now).
		Order("id ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

// FindSchedulesByJobIDs returns the active schedules of the given jobs, or of every job when jobIDs is empty.
func (r *jobRepository) FindSchedulesByJobIDs(ctx context.Context, jobIDs []uint, opts ...utils.DBOption) ([]model.TaskSchedule, error) {
	var schedules []model.TaskSchedule
	db := utils.ApplyOptions(r.db.WithContext(ctx), opts...).Where("is_active = ?", true)
	if len(jobIDs) > 0 {
		db = db.Where("job_id IN ?", jobIDs)
	}
	if err := db.Order("id ASC").Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *jobRepository) FindByID(ctx context.Context, id uint) (*model.Job, error) {
	var job model.Job
	if err := r.db.WithContext(ctx).First(&job, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) Get(ctx context.Context, param *model.GetJobParam, opts ...utils.DBOption) ([]model.Job, error) {
	var jobs []model.Job
	db := utils.ApplyOptions(r.db.WithContext(ctx), opts...).Model(&model.Job{})
	if param.IsActive != nil {
		db = db.Where("EXISTS (SELECT 1 FROM task_schedules ts WHERE ts.job_id = jobs.id AND ts.is_active = ?)", *param.IsActive)
	}
	if len(param.IDs) > 0 {
		db = db.Where("jobs.id IN ?", param.IDs)
	}
	if param.Limit != nil {
		db = db.Limit(*param.Limit)
	}
	if param.WithTaskHistory != nil {
		db = db.Preload("Histories", func(db *gorm.DB) *gorm.DB {
			db = db.Order("created_at DESC")
			if param.WithTaskHistory.Limit != nil {
				db = db.Limit(*param.WithTaskHistory.Limit)
			}
			return db
		})
	}

	err := db.Preload("Schedules").Order("jobs.id ASC").Find(&jobs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepository) CreateTaskExecutionHistory(ctx context.Context, history *model.TaskExecutionHistory, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Create(history).Error
}

func (r *jobRepository) UpdateTaskExecutionHistory(ctx context.Context, history *model.TaskExecutionHistory, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Updates(history).Error
}

func (r *jobRepository) UpdateTaskSchedule(ctx context.Context, schedule *model.TaskSchedule, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Model(schedule).
		Select("last_execution", "next_execution").
		Updates(schedule).Error
}

func (r *jobRepository) DeleteTaskHistoryOlderThan(ctx context.Context, date time.Time, opts ...utils.DBOption) (int64, error) {
	res := utils.ApplyOptions(r.db.WithContext(ctx), opts...).Where("created_at < ?", date).Delete(&model.TaskExecutionHistory{})
	return res.RowsAffected, res.Error
}
