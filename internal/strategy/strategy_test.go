package strategy

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"stock-scoring/config"
	"stock-scoring/internal/dto"
	"stock-scoring/internal/extractor"
	"stock-scoring/internal/model"
	"stock-scoring/pkg/logger"
	"stock-scoring/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type fakeAnalyzer struct {
	mu    sync.Mutex
	calls []string
	modes []dto.AnalysisMode
}

func (f *fakeAnalyzer) Analyze(_ context.Context, symbol string, mode dto.AnalysisMode) (*dto.AnalysisResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, symbol)
	f.modes = append(f.modes, mode)
	f.mu.Unlock()

	switch symbol {
	case "BAD":
		return nil, extractor.ErrQuoteUnavailable
	case "PANIC":
		panic("unexpected nil")
	}
	return &dto.AnalysisResult{
		Symbol:         symbol,
		Recommendation: dto.Recommendation{Action: dto.SignalBuy, OverallScore: 70},
	}, nil
}

type fakeWatchlistRepo struct {
	items []model.WatchlistItem
	err   error
}

func (f *fakeWatchlistRepo) List(_ context.Context, _ ...utils.DBOption) ([]model.WatchlistItem, error) {
	return f.items, f.err
}

func (f *fakeWatchlistRepo) FindBySymbol(_ context.Context, _ string, _ ...utils.DBOption) (*model.WatchlistItem, error) {
	return nil, nil
}

func (f *fakeWatchlistRepo) Create(_ context.Context, _ *model.WatchlistItem, _ ...utils.DBOption) error {
	return nil
}

func (f *fakeWatchlistRepo) DeleteBySymbol(_ context.Context, _ string, _ ...utils.DBOption) (int64, error) {
	return 0, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Scheduler: config.Scheduler{MaxConcurrency: 2},
		History:   config.History{RetentionDays: 30},
	}
}

func TestExitCodeFor(t *testing.T) {
	assert.Equal(t, int32(JOB_EXIT_CODE_SKIPPED), exitCodeFor(0, 0))
	assert.Equal(t, int32(JOB_EXIT_CODE_SUCCESS), exitCodeFor(3, 0))
	assert.Equal(t, int32(JOB_EXIT_CODE_FAILED), exitCodeFor(0, 2))
	assert.Equal(t, int32(JOB_EXIT_CODE_PARTIAL_SUCCESS), exitCodeFor(1, 1))
}

func TestWatchlistAnalysis_Execute(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	repo := &fakeWatchlistRepo{items: []model.WatchlistItem{{Symbol: "AAPL"}, {Symbol: "BAD"}}}
	s := NewWatchlistAnalysisStrategy(testConfig(), logger.NewNop(), analyzer, repo)

	job := &model.Job{ID: 1, Payload: datatypes.JSON(`{"analysis_mode": "comprehensive", "additional_stocks": ["msft", "aapl", "PANIC"]}`)}
	res, err := s.Execute(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, int32(JOB_EXIT_CODE_PARTIAL_SUCCESS), res.ExitCode)

	var results []dto.BatchAnalysisResult
	require.NoError(t, json.Unmarshal([]byte(res.Output), &results))
	require.Len(t, results, 4)
	assert.Equal(t, "AAPL", results[0].Symbol)
	assert.Equal(t, dto.SignalBuy, results[0].Action)
	assert.Equal(t, "BAD", results[1].Symbol)
	assert.Contains(t, results[1].Error, "quote unavailable")
	assert.Equal(t, "MSFT", results[2].Symbol)
	assert.Contains(t, results[3].Error, "panic recovered")

	assert.Len(t, analyzer.calls, 4, "duplicates are analyzed once")
	for _, m := range analyzer.modes {
		assert.Equal(t, dto.ModeComprehensive, m)
	}
}

func TestWatchlistAnalysis_Skips(t *testing.T) {
	s := NewWatchlistAnalysisStrategy(testConfig(), logger.NewNop(), &fakeAnalyzer{}, &fakeWatchlistRepo{})

	res, err := s.Execute(context.Background(), &model.Job{})
	require.NoError(t, err)
	assert.Equal(t, int32(JOB_EXIT_CODE_SKIPPED), res.ExitCode)
}

func TestWatchlistAnalysis_Errors(t *testing.T) {
	s := NewWatchlistAnalysisStrategy(testConfig(), logger.NewNop(), &fakeAnalyzer{}, &fakeWatchlistRepo{err: errors.New("db down")})
	res, err := s.Execute(context.Background(), &model.Job{})
	assert.Error(t, err)
	assert.Equal(t, int32(JOB_EXIT_CODE_FAILED), res.ExitCode)

	s = NewWatchlistAnalysisStrategy(testConfig(), logger.NewNop(), &fakeAnalyzer{}, &fakeWatchlistRepo{})
	_, err = s.Execute(context.Background(), &model.Job{Payload: datatypes.JSON(`{"analysis_mode": "deep"}`)})
	assert.Error(t, err)
}

type fakeHistoryRepo struct {
	cutoff time.Time
	err    error
}

func (f *fakeHistoryRepo) Create(_ context.Context, _ *model.AnalysisHistory, _ ...utils.DBOption) error {
	return nil
}

func (f *fakeHistoryRepo) CreateBulk(_ context.Context, _ []model.AnalysisHistory, _ ...utils.DBOption) error {
	return nil
}

func (f *fakeHistoryRepo) GetRecent(_ context.Context, _ model.GetAnalysisHistoryParam) ([]model.AnalysisHistory, error) {
	return nil, nil
}

func (f *fakeHistoryRepo) DeleteOlderThan(_ context.Context, date time.Time, _ ...utils.DBOption) (int64, error) {
	f.cutoff = date
	return 4, f.err
}

type fakeJobRepo struct {
	fakeJobRepoBase
	cutoff time.Time
}

func (f *fakeJobRepo) DeleteTaskHistoryOlderThan(_ context.Context, date time.Time, _ ...utils.DBOption) (int64, error) {
	f.cutoff = date
	return 2, nil
}

func TestDataCleanUp_Execute(t *testing.T) {
	history := &fakeHistoryRepo{}
	jobs := &fakeJobRepo{}
	s := NewDataCleanUpStrategy(testConfig(), logger.NewNop(), history, jobs)

	res, err := s.Execute(context.Background(), &model.Job{Payload: datatypes.JSON(`{"retention_days": 7}`)})
	require.NoError(t, err)
	assert.Equal(t, int32(JOB_EXIT_CODE_SUCCESS), res.ExitCode)

	var results []DataCleanUpResult
	require.NoError(t, json.Unmarshal([]byte(res.Output), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "analysis_histories", results[0].Table)
	assert.Equal(t, int64(4), results[0].Total)
	assert.Equal(t, "task_execution_history", results[1].Table)

	age := utils.TimeNowMarket().Sub(history.cutoff)
	assert.InDelta(t, (7 * 24 * time.Hour).Hours(), age.Hours(), 1.5)
	assert.Equal(t, history.cutoff, jobs.cutoff)
}

func TestDataCleanUp_DefaultRetentionAndPartialFailure(t *testing.T) {
	history := &fakeHistoryRepo{err: errors.New("locked")}
	jobs := &fakeJobRepo{}
	s := NewDataCleanUpStrategy(testConfig(), logger.NewNop(), history, jobs)

	res, err := s.Execute(context.Background(), &model.Job{})
	require.NoError(t, err)
	assert.Equal(t, int32(JOB_EXIT_CODE_PARTIAL_SUCCESS), res.ExitCode)
	assert.Contains(t, res.Output, "locked")

	age := utils.TimeNowMarket().Sub(history.cutoff)
	assert.InDelta(t, (30 * 24 * time.Hour).Hours(), age.Hours(), 1.5)
}
