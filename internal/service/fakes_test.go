package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"
	"time"

	"stock-scoring/internal/dto"
	"stock-scoring/internal/model"
	"stock-scoring/pkg/utils"
)

type fakeProvider struct {
	quote        *dto.QuoteData
	quoteErr     error
	fundamentals *dto.Fundamentals
	closes       []float64
	down         bool
}

func (f *fakeProvider) GetQuote(_ context.Context, _ string) (*dto.QuoteData, error) {
	return f.quote, f.quoteErr
}

func (f *fakeProvider) GetPriceHistory(_ context.Context, symbol, period string) (*dto.PriceHistory, error) {
	if f.down {
		return nil, errors.New("provider down")
	}
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]dto.PriceBar, len(f.closes))
	for i, c := range f.closes {
		bars[i] = dto.PriceBar{Date: start.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1000}
	}
	return &dto.PriceHistory{Symbol: symbol, Period: period, Bars: bars}, nil
}

func (f *fakeProvider) GetFundamentals(_ context.Context, _ string) (*dto.Fundamentals, error) {
	if f.down {
		return nil, errors.New("provider down")
	}
	return f.fundamentals, nil
}

func (f *fakeProvider) GetOptionsChain(_ context.Context, _ string) (*dto.OptionsChain, error) {
	return nil, errors.New("no options")
}

func healthyProvider() *fakeProvider {
	closes := make([]float64, 260)
	for i := range closes {
		closes[i] = 100 + 8*math.Sin(float64(i)/6) + float64(i)*0.2
	}
	return &fakeProvider{
		quote: &dto.QuoteData{Name: "Apple Inc.", Price: closes[len(closes)-1], PreviousClose: utils.ToPointer(closes[len(closes)-2])},
		fundamentals: &dto.Fundamentals{
			LongName:                "Apple Inc.",
			CurrentPrice:            utils.ToPointer(closes[len(closes)-1]),
			TrailingPE:              utils.ToPointer(10.0),
			ReturnOnEquity:          utils.ToPointer(0.25),
			DebtToEquity:            utils.ToPointer(20.0),
			RevenueGrowth:           utils.ToPointer(0.25),
			RecommendationKey:       utils.ToPointer("buy"),
			NumberOfAnalystOpinions: utils.ToPointer(12),
		},
		closes: closes,
	}
}

type fakeHistoryRepo struct {
	mu        sync.Mutex
	histories []model.AnalysisHistory
	createErr error
}

func (f *fakeHistoryRepo) Create(_ context.Context, history *model.AnalysisHistory, _ ...utils.DBOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	history.ID = uint(len(f.histories) + 1)
	f.histories = append(f.histories, *history)
	return nil
}

func (f *fakeHistoryRepo) CreateBulk(ctx context.Context, histories []model.AnalysisHistory, opts ...utils.DBOption) error {
	for i := range histories {
		if err := f.Create(ctx, &histories[i], opts...); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeHistoryRepo) GetRecent(_ context.Context, param model.GetAnalysisHistoryParam) ([]model.AnalysisHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.AnalysisHistory{}
	for i := len(f.histories) - 1; i >= 0; i-- {
		h := f.histories[i]
		if param.Symbol != nil && h.Symbol != *param.Symbol {
			continue
		}
		out = append(out, h)
		if param.Limit > 0 && len(out) == param.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeHistoryRepo) DeleteOlderThan(_ context.Context, _ time.Time, _ ...utils.DBOption) (int64, error) {
	return 0, nil
}

type fakeWatchlistRepo struct {
	items map[string]model.WatchlistItem
}

func (f *fakeWatchlistRepo) List(_ context.Context, _ ...utils.DBOption) ([]model.WatchlistItem, error) {
	out := make([]model.WatchlistItem, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out, nil
}

func (f *fakeWatchlistRepo) FindBySymbol(_ context.Context, symbol string, _ ...utils.DBOption) (*model.WatchlistItem, error) {
	item, ok := f.items[symbol]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (f *fakeWatchlistRepo) Create(_ context.Context, item *model.WatchlistItem, _ ...utils.DBOption) error {
	if f.items == nil {
		f.items = map[string]model.WatchlistItem{}
	}
	item.ID = uint(len(f.items) + 1)
	f.items[item.Symbol] = *item
	return nil
}

func (f *fakeWatchlistRepo) DeleteBySymbol(_ context.Context, symbol string, _ ...utils.DBOption) (int64, error) {
	if _, ok := f.items[symbol]; !ok {
		return 0, nil
	}
	delete(f.items, symbol)
	return 1, nil
}

type fakeUnitOfWork struct{ runs int }

func (f *fakeUnitOfWork) Run(_ context.Context, fn func(opts ...utils.DBOption) error) error {
	f.runs++
	return fn()
}

type fakeJobRepo struct {
	mu        sync.Mutex
	jobs      map[uint]model.Job
	due       []model.TaskSchedule
	created   []model.TaskExecutionHistory
	updated   []model.TaskExecutionHistory
	schedules []model.TaskSchedule
}

func (f *fakeJobRepo) FindDueSchedules(_ context.Context, _ time.Time, _ ...utils.DBOption) ([]model.TaskSchedule, error) {
	return f.due, nil
}

func (f *fakeJobRepo) FindSchedulesByJobIDs(_ context.Context, _ []uint, _ ...utils.DBOption) ([]model.TaskSchedule, error) {
	return f.due, nil
}

func (f *fakeJobRepo) FindByID(_ context.Context, id uint) (*model.Job, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return &job, nil
}

func (f *fakeJobRepo) Get(_ context.Context, param *model.GetJobParam, _ ...utils.DBOption) ([]model.Job, error) {
	out := []model.Job{}
	for _, id := range param.IDs {
		if job, ok := f.jobs[id]; ok {
			out = append(out, job)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) CreateTaskExecutionHistory(_ context.Context, history *model.TaskExecutionHistory, _ ...utils.DBOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	history.ID = uint(len(f.created) + 1)
	f.created = append(f.created, *history)
	return nil
}

func (f *fakeJobRepo) UpdateTaskExecutionHistory(_ context.Context, history *model.TaskExecutionHistory, _ ...utils.DBOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, *history)
	return nil
}

func (f *fakeJobRepo) UpdateTaskSchedule(_ context.Context, schedule *model.TaskSchedule, _ ...utils.DBOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.schedules = append(f.schedules, *schedule)
	return nil
}

func (f *fakeJobRepo) DeleteTaskHistoryOlderThan(_ context.Context, _ time.Time, _ ...utils.DBOption) (int64, error) {
	return 0, nil
}
