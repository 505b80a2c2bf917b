package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stock-scoring/internal/dto"
	"stock-scoring/internal/extractor"
	"stock-scoring/internal/model"
	"stock-scoring/internal/service"
	"stock-scoring/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyzer struct {
	lastMode   dto.AnalysisMode
	lastSymbol string
	lastLimit  int
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, symbol string, mode dto.AnalysisMode) (*dto.AnalysisResult, error) {
	f.lastSymbol, f.lastMode = symbol, mode
	if symbol == "ZZZZ" {
		return nil, fmt.Errorf("%s: %w", symbol, extractor.ErrQuoteUnavailable)
	}
	return &dto.AnalysisResult{Symbol: symbol, Mode: mode}, nil
}

func (f *fakeAnalyzer) GetRecent(ctx context.Context, symbol string, limit int) ([]dto.RecentAnalysisResponse, error) {
	f.lastSymbol, f.lastLimit = symbol, limit
	return []dto.RecentAnalysisResponse{{Symbol: "AAPL", Action: dto.SignalBuy}}, nil
}

type fakeWatchlist struct {
	items map[string]string
}

func (f *fakeWatchlist) List(ctx context.Context) ([]dto.WatchlistItemResponse, error) {
	out := []dto.WatchlistItemResponse{}
	for s, n := range f.items {
		out = append(out, dto.WatchlistItemResponse{Symbol: s, Note: n})
	}
	return out, nil
}

func (f *fakeWatchlist) Symbols(ctx context.Context) ([]string, error) { return nil, nil }

func (f *fakeWatchlist) Add(ctx context.Context, req dto.AddWatchlistRequest) (*dto.WatchlistItemResponse, error) {
	symbol := strings.ToUpper(req.Symbol)
	if _, ok := f.items[symbol]; ok {
		return nil, service.ErrWatchlistItemExists
	}
	f.items[symbol] = req.Note
	return &dto.WatchlistItemResponse{Symbol: symbol, Note: req.Note}, nil
}

func (f *fakeWatchlist) Remove(ctx context.Context, symbol string) error {
	if _, ok := f.items[symbol]; !ok {
		return service.ErrWatchlistItemNotFound
	}
	delete(f.items, symbol)
	return nil
}

type fakeScheduler struct {
	executed bool
	ranJob   uint
}

func (f *fakeScheduler) Execute(ctx context.Context) error {
	f.executed = true
	return nil
}

func (f *fakeScheduler) GetJobSchedule(ctx context.Context, param model.GetJobParam) ([]model.Job, error) {
	return []model.Job{{ID: 1, Name: "Watchlist analysis", Type: "watchlist_analysis",
		Schedules: []model.TaskSchedule{{ID: 3, CronExpression: "0 22 * * 1-5", IsActive: true}}}}, nil
}

func (f *fakeScheduler) RunJobTask(ctx context.Context, jobID uint) error {
	if jobID != 1 {
		return service.ErrJobNotFound
	}
	f.ranJob = jobID
	return nil
}

func (f *fakeScheduler) Wait() {}

type testServer struct {
	echo      *echo.Echo
	analyzer  *fakeAnalyzer
	watchlist *fakeWatchlist
	scheduler *fakeScheduler
}

func newTestServer() *testServer {
	ts := &testServer{
		echo:      echo.New(),
		analyzer:  &fakeAnalyzer{},
		watchlist: &fakeWatchlist{items: map[string]string{"MSFT": ""}},
		scheduler: &fakeScheduler{},
	}
	svc := &service.Service{
		AnalyzerService:  ts.analyzer,
		WatchlistService: ts.watchlist,
		SchedulerService: ts.scheduler,
	}
	NewHttpAPIHandler(ts.echo, NewValidator(), svc, logger.NewNop()).SetupRoutes()
	return ts
}

func (ts *testServer) do(method, target, body string) (*httptest.ResponseRecorder, dto.BaseResponse) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	ts.echo.ServeHTTP(rec, req)

	var resp dto.BaseResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		target   string
		body     string
		wantCode int
		wantMode dto.AnalysisMode
	}{
		{name: "post default mode", method: http.MethodPost, target: "/api/v1/analyze", body: `{"symbol":"AAPL"}`, wantCode: http.StatusOK, wantMode: dto.ModeStandard},
		{name: "post comprehensive", method: http.MethodPost, target: "/api/v1/analyze", body: `{"symbol":"BBCA.JK","analysis_mode":"comprehensive"}`, wantCode: http.StatusOK, wantMode: dto.ModeComprehensive},
		{name: "post unknown mode", method: http.MethodPost, target: "/api/v1/analyze", body: `{"symbol":"AAPL","analysis_mode":"deep"}`, wantCode: http.StatusBadRequest},
		{name: "post invalid symbol", method: http.MethodPost, target: "/api/v1/analyze", body: `{"symbol":"A$PL"}`, wantCode: http.StatusBadRequest},
		{name: "post missing symbol", method: http.MethodPost, target: "/api/v1/analyze", body: `{}`, wantCode: http.StatusBadRequest},
		{name: "get with mode", method: http.MethodGet, target: "/api/v1/analyze/AAPL?mode=comprehensive", wantCode: http.StatusOK, wantMode: dto.ModeComprehensive},
		{name: "get bad mode", method: http.MethodGet, target: "/api/v1/analyze/AAPL?mode=x", wantCode: http.StatusBadRequest},
		{name: "quote unavailable", method: http.MethodGet, target: "/api/v1/analyze/ZZZZ", wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer()
			rec, resp := ts.do(tt.method, tt.target, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantCode, resp.Code)
			if tt.wantMode != "" {
				assert.Equal(t, tt.wantMode, ts.analyzer.lastMode)
			}
		})
	}
}

func TestWatchlist(t *testing.T) {
	ts := newTestServer()

	rec, _ := ts.do(http.MethodPost, "/api/v1/watchlist", `{"symbol":"aapl","note":"core"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "core", ts.watchlist.items["AAPL"])

	rec, resp := ts.do(http.MethodPost, "/api/v1/watchlist", `{"symbol":"MSFT"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, service.ErrWatchlistItemExists.Error(), resp.Message)

	rec, resp = ts.do(http.MethodGet, "/api/v1/watchlist", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp.Data, 2)

	rec, _ = ts.do(http.MethodDelete, "/api/v1/watchlist/MSFT", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = ts.do(http.MethodDelete, "/api/v1/watchlist/MSFT", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecentAnalyses(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantCode  int
		wantLimit int
	}{
		{name: "default limit", target: "/api/v1/analyses/recent", wantCode: http.StatusOK},
		{name: "explicit limit and symbol", target: "/api/v1/analyses/recent?limit=5&symbol=AAPL", wantCode: http.StatusOK, wantLimit: 5},
		{name: "zero limit", target: "/api/v1/analyses/recent?limit=0", wantCode: http.StatusBadRequest},
		{name: "limit too large", target: "/api/v1/analyses/recent?limit=500", wantCode: http.StatusBadRequest},
		{name: "bad symbol", target: "/api/v1/analyses/recent?symbol=%24%24", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer()
			rec, _ := ts.do(http.MethodGet, tt.target, "")
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, tt.wantLimit, ts.analyzer.lastLimit)
			}
		})
	}
}

func TestJobs(t *testing.T) {
	ts := newTestServer()

	rec, _ := ts.do(http.MethodPost, "/api/v1/jobs/run", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, ts.scheduler.executed)

	rec, _ = ts.do(http.MethodPost, "/api/v1/jobs/run", `{"job_id":1}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(1), ts.scheduler.ranJob)

	rec, _ = ts.do(http.MethodPost, "/api/v1/jobs/run", `{"job_id":42}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, resp := ts.do(http.MethodGet, "/api/v1/jobs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	jobs, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, jobs, 1)
}

func TestHealth(t *testing.T) {
	ts := newTestServer()
	rec, _ := ts.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestIsValidSymbol(t *testing.T) {
	for _, s := range []string{"AAPL", "brk.b", "BBCA.JK", "^GSPC", "EURUSD=X", "BRK-B"} {
		assert.True(t, IsValidSymbol(s), s)
	}
	for _, s := range []string{"", "A$PL", "TOOLONGSYMBOL1", "A B", ".AAPL"} {
		assert.False(t, IsValidSymbol(s), s)
	}
}
