package strategy

import (
	"context"
	"time"

	"stock-scoring/internal/model"
	"stock-scoring/pkg/utils"
)

// fakeJobRepoBase satisfies repository.JobRepository; tests embed it and override what they need.
type fakeJobRepoBase struct{}

func (fakeJobRepoBase) FindDueSchedules(context.Context, time.Time, ...utils.DBOption) ([]model.TaskSchedule, error) {
	return nil, nil
}

func (fakeJobRepoBase) FindSchedulesByJobIDs(context.Context, []uint, ...utils.DBOption) ([]model.TaskSchedule, error) {
	return nil, nil
}

func (fakeJobRepoBase) FindByID(context.Context, uint) (*model.Job, error) {
	return nil, nil
}

func (fakeJobRepoBase) Get(context.Context, *model.GetJobParam, ...utils.DBOption) ([]model.Job, error) {
	return nil, nil
}

func (fakeJobRepoBase) CreateTaskExecutionHistory(context.Context, *model.TaskExecutionHistory, ...utils.DBOption) error {
	return nil
}

func (fakeJobRepoBase) UpdateTaskExecutionHistory(context.Context, *model.TaskExecutionHistory, ...utils.DBOption) error {
	return nil
}

func (fakeJobRepoBase) UpdateTaskSchedule(context.Context, *model.TaskSchedule, ...utils.DBOption) error {
	return nil
}

func (fakeJobRepoBase) DeleteTaskHistoryOlderThan(context.Context, time.Time, ...utils.DBOption) (int64, error) {
	return 0, nil
}
