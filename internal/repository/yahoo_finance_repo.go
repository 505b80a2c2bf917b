package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"stock-scoring/config"
	"stock-scoring/internal/contract"
	"stock-scoring/internal/dto"
	"stock-scoring/pkg/cache"
	"stock-scoring/pkg/common"
	"stock-scoring/pkg/httpclient"
	"stock-scoring/pkg/logger"
	"stock-scoring/pkg/ratelimit"
	"stock-scoring/pkg/utils"
)

var (
	ErrSymbolNotFound = errors.New("symbol not found")
	ErrNoOptions      = errors.New("no options listed")
)

const (
	yahooLimiterKey = "yahoo_finance"

	fundamentalModules = "price,summaryDetail,defaultKeyStatistics,financialData,assetProfile," +
		"balanceSheetHistory,cashflowStatementHistory,incomeStatementHistory"
)

var yahooHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36",
	"Accept-Language": "en-US,en;q=0.9",
	"Referer":         "https://finance.yahoo.com/",
}

// YahooFinanceRepository is the market data provider backed by the public Yahoo Finance endpoints.
type YahooFinanceRepository interface {
	contract.MarketDataProvider
	GetNews(ctx context.Context, symbol string, limit int) ([]dto.NewsHeadline, error)
}

// yahooSession is the cookie and crumb pair quoteSummary and options require.
type yahooSession struct {
	Cookie string
	Crumb  string
}

type yahooFinanceRepository struct {
	httpClient httpclient.HTTPClient
	cfg        *config.Config
	logger     *logger.Logger
	limiters   *ratelimit.LimiterStore
	cache      cache.Cache
	mu         sync.Mutex
}

// NewYahooFinanceRepository creates a new instance of yahooFinanceRepository. The cache holds the crumb session.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger, c cache.Cache) YahooFinanceRepository {
	return &yahooFinanceRepository{
		httpClient: httpclient.New(log, cfg.YahooFinance.BaseURL, cfg.YahooFinance.Timeout, "",
			httpclient.WithHeaders(yahooHeaders),
			httpclient.WithRetry(cfg.YahooFinance.RetryCount, 500*time.Millisecond),
		),
		cfg:      cfg,
		logger:   log,
		limiters: ratelimit.NewLimiterStore(ratelimit.PerMinute(cfg.YahooFinance.MaxRequestPerMinute), 1),
		cache:    c,
	}
}

func (r *yahooFinanceRepository) wait(ctx context.Context) error {
	limiter := r.limiters.GetLimiter(yahooLimiterKey)
	if limiter.Tokens() < 1 {
		r.logger.WarnContext(ctx, "Yahoo Finance API request limit reached, waiting",
			logger.IntField("max_request_per_minute", r.cfg.YahooFinance.MaxRequestPerMinute),
		)
	}
	return limiter.Wait(ctx)
}

func (r *yahooFinanceRepository) get(ctx context.Context, endpoint string, query, headers map[string]string, result interface{}) (*httpclient.BaseResponse, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	resp, err := r.httpClient.Get(ctx, endpoint, query, headers, result)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data from yahoo finance: %w", err)
	}
	return resp, nil
}

func (r *yahooFinanceRepository) GetQuote(ctx context.Context, symbol string) (*dto.QuoteData, error) {
	result, err := r.quoteSummary(ctx, symbol, "price")
	if err != nil {
		return nil, err
	}

	price := result.Price
	if price.RegularMarketPrice.Raw == nil {
		return nil, fmt.Errorf("%s: no market price: %w", symbol, ErrSymbolNotFound)
	}

	q := &dto.QuoteData{
		Symbol:        symbol,
		Name:          firstNonEmpty(price.LongName, price.ShortName),
		Price:         *price.RegularMarketPrice.Raw,
		PreviousClose: price.RegularMarketPreviousClose.Raw,
		MarketCap:     price.MarketCap.Raw,
	}
	if v := price.RegularMarketVolume.Raw; v != nil {
		q.Volume = utils.ToPointer(int64(*v))
	}
	return q, nil
}

func (r *yahooFinanceRepository) GetPriceHistory(ctx context.Context, symbol, period string) (*dto.PriceHistory, error) {
	now := utils.TimeNowMarket()
	start, ok := utils.PeriodStart(period, now)
	if !ok {
		return nil, fmt.Errorf("invalid period %q", period)
	}

	queryParams := map[string]string{
		"period1":        strconv.FormatInt(start.Unix(), 10),
		"period2":        strconv.FormatInt(now.Unix(), 10),
		"interval":       dto.Interval1Day,
		"includePrePost": "false",
		"events":         "div,split",
	}

	var chart dto.YahooChartResponse
	resp, err := r.get(ctx, "/v8/finance/chart/"+symbol, queryParams, nil, &chart)
	if err != nil {
		return nil, err
	}
	if err := r.checkStatus(ctx, symbol, resp, chart.Chart.Error); err != nil {
		return nil, err
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%s: no chart data: %w", symbol, ErrSymbolNotFound)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	loc := utils.MarketLocation()

	bars := make([]dto.PriceBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		// rows without a close are holidays or halted sessions
		closePrice := at(quote.Close, i)
		if closePrice == nil || *closePrice <= 0 {
			continue
		}
		bar := dto.PriceBar{
			Date:  time.Unix(ts, 0).In(loc),
			Open:  valueOr(at(quote.Open, i), *closePrice),
			High:  valueOr(at(quote.High, i), *closePrice),
			Low:   valueOr(at(quote.Low, i), *closePrice),
			Close: *closePrice,
		}
		if v := at(quote.Volume, i); v != nil {
			bar.Volume = *v
		}
		bars = append(bars, bar)
	}

	return &dto.PriceHistory{Symbol: symbol, Period: period, Bars: bars}, nil
}

func (r *yahooFinanceRepository) GetFundamentals(ctx context.Context, symbol string) (*dto.Fundamentals, error) {
	res, err := r.quoteSummary(ctx, symbol, fundamentalModules)
	if err != nil {
		return nil, err
	}
	return mapFundamentals(symbol, res), nil
}

func (r *yahooFinanceRepository) GetOptionsChain(ctx context.Context, symbol string) (*dto.OptionsChain, error) {
	session, err := r.session(ctx)
	if err != nil {
		return nil, err
	}

	var out dto.YahooOptionsResponse
	resp, err := r.get(ctx, "/v7/finance/options/"+symbol,
		map[string]string{"crumb": session.Crumb},
		map[string]string{"Cookie": session.Cookie},
		&out,
	)
	if err != nil {
		return nil, err
	}
	if err := r.checkStatus(ctx, symbol, resp, out.OptionChain.Error); err != nil {
		return nil, err
	}
	if len(out.OptionChain.Result) == 0 || len(out.OptionChain.Result[0].Options) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, ErrNoOptions)
	}

	nearest := out.OptionChain.Result[0].Options[0]
	return &dto.OptionsChain{
		Expiration: time.Unix(nearest.ExpirationDate, 0).In(utils.MarketLocation()),
		Calls:      mapContracts(nearest.Calls),
		Puts:       mapContracts(nearest.Puts),
	}, nil
}

// GetNews returns recent headlines from the Yahoo search endpoint.
func (r *yahooFinanceRepository) GetNews(ctx context.Context, symbol string, limit int) ([]dto.NewsHeadline, error) {
	var out dto.YahooSearchResponse
	resp, err := r.get(ctx, "/v1/finance/search", map[string]string{
		"q":           symbol,
		"quotesCount": "0",
		"newsCount":   strconv.Itoa(limit),
	}, nil, &out)
	if err != nil {
		return nil, err
	}
	if err := r.checkStatus(ctx, symbol, resp, nil); err != nil {
		return nil, err
	}

	headlines := make([]dto.NewsHeadline, 0, len(out.News))
	for _, n := range out.News {
		if n.Title == "" {
			continue
		}
		headlines = append(headlines, dto.NewsHeadline{Title: n.Title, Publisher: n.Publisher})
	}
	return headlines, nil
}

func (r *yahooFinanceRepository) quoteSummary(ctx context.Context, symbol, modules string) (*dto.YahooQuoteSummaryResult, error) {
	for attempt := 0; ; attempt++ {
		session, err := r.session(ctx)
		if err != nil {
			return nil, err
		}

		var out dto.YahooQuoteSummaryResponse
		resp, err := r.get(ctx, "/v10/finance/quoteSummary/"+symbol,
			map[string]string{"modules": modules, "crumb": session.Crumb},
			map[string]string{"Cookie": session.Cookie},
			&out,
		)
		if err != nil {
			return nil, err
		}

		// an expired crumb answers 401 once; refresh and retry
		if resp.StatusCode == http.StatusUnauthorized && attempt == 0 {
			r.cache.Delete(common.KEY_YAHOO_CRUMB)
			continue
		}
		if err := r.checkStatus(ctx, symbol, resp, out.QuoteSummary.Error); err != nil {
			return nil, err
		}
		if len(out.QuoteSummary.Result) == 0 {
			return nil, fmt.Errorf("%s: empty quote summary: %w", symbol, ErrSymbolNotFound)
		}
		return &out.QuoteSummary.Result[0], nil
	}
}

// session returns the cached cookie and crumb, fetching a new pair when none is cached.
func (r *yahooFinanceRepository) session(ctx context.Context) (yahooSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return cache.Remember(r.cache, common.KEY_YAHOO_CRUMB, r.cfg.Cache.TTL.Crumb, func() (yahooSession, error) {
		cookieResp, err := r.get(ctx, r.cfg.YahooFinance.CookieURL, nil, nil, nil)
		if err != nil {
			return yahooSession{}, err
		}

		parts := []string{}
		for _, c := range (&http.Response{Header: cookieResp.Headers}).Cookies() {
			parts = append(parts, c.Name+"="+c.Value)
		}
		cookie := strings.Join(parts, "; ")

		crumbResp, err := r.get(ctx, "/v1/test/getcrumb", nil, map[string]string{"Cookie": cookie, "Accept": "text/plain"}, nil)
		if err != nil {
			return yahooSession{}, err
		}
		crumb := strings.TrimSpace(string(crumbResp.Body))
		if !crumbResp.IsSuccess() || crumb == "" {
			return yahooSession{}, fmt.Errorf("failed to obtain yahoo crumb, status: %d", crumbResp.StatusCode)
		}

		r.logger.DebugContext(ctx, "Yahoo Finance session refreshed")
		return yahooSession{Cookie: cookie, Crumb: crumb}, nil
	})
}

func (r *yahooFinanceRepository) checkStatus(ctx context.Context, symbol string, resp *httpclient.BaseResponse, apiErr *dto.YahooError) error {
	if resp.StatusCode == http.StatusNotFound || (apiErr != nil && apiErr.Code == "Not Found") {
		return fmt.Errorf("%s: %w", symbol, ErrSymbolNotFound)
	}
	if !resp.IsSuccess() {
		r.logger.ErrorContext(ctx, "Yahoo Finance API returned Non-OK status",
			logger.StringField("symbol", symbol),
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return fmt.Errorf("yahoo finance api returned status: %d", resp.StatusCode)
	}
	if apiErr != nil {
		return fmt.Errorf("yahoo finance api error: %s: %s", apiErr.Code, apiErr.Description)
	}
	return nil
}

func mapFundamentals(symbol string, res *dto.YahooQuoteSummaryResult) *dto.Fundamentals {
	fd := res.FinancialData
	ks := res.DefaultKeyStatistics
	sd := res.SummaryDetail

	f := &dto.Fundamentals{
		Symbol:   symbol,
		LongName: firstNonEmpty(res.Price.LongName, res.Price.ShortName),
		Sector:   res.AssetProfile.Sector,
		Industry: res.AssetProfile.Industry,

		CurrentPrice:        firstNonNil(fd.CurrentPrice.Raw, res.Price.RegularMarketPrice.Raw),
		MarketCap:           firstNonNil(res.Price.MarketCap.Raw, sd.MarketCap.Raw),
		Beta:                sd.Beta.Raw,
		TrailingPE:          sd.TrailingPE.Raw,
		PEGRatio:            ks.PEGRatio.Raw,
		PriceToBook:         ks.PriceToBook.Raw,
		PriceToSales:        sd.PriceToSales.Raw,
		EnterpriseValue:     ks.EnterpriseValue.Raw,
		EnterpriseToRevenue: ks.EnterpriseToRevenue.Raw,
		EnterpriseToEbitda:  ks.EnterpriseToEbitda.Raw,
		TrailingEps:         ks.TrailingEps.Raw,
		BookValue:           ks.BookValue.Raw,
		SharesOutstanding:   ks.SharesOutstanding.Raw,

		ReturnOnEquity: fd.ReturnOnEquity.Raw,
		ReturnOnAssets: fd.ReturnOnAssets.Raw,
		ProfitMargins:  fd.ProfitMargins.Raw,
		DebtToEquity:   fd.DebtToEquity.Raw,
		CurrentRatio:   fd.CurrentRatio.Raw,
		RevenueGrowth:  fd.RevenueGrowth.Raw,
		EarningsGrowth: fd.EarningsGrowth.Raw,

		FreeCashflow:      fd.FreeCashflow.Raw,
		OperatingCashflow: fd.OperatingCashflow.Raw,
		TotalDebt:         fd.TotalDebt.Raw,
	}

	if s := res.CashflowStatementHistory.Statements; len(s) > 0 && f.OperatingCashflow == nil {
		f.OperatingCashflow = s[0].TotalCashFromOperatingActivities.Raw
	}
	if s := res.IncomeStatementHistory.Statements; len(s) > 0 {
		f.NetIncome = s[0].NetIncome.Raw
	}
	if s := res.BalanceSheetHistory.Statements; len(s) > 0 {
		f.TotalAssets = s[0].TotalAssets.Raw
		f.TotalCurrentAssets = s[0].TotalCurrentAssets.Raw
		f.TotalCurrentLiabilities = s[0].TotalCurrentLiabilities.Raw
	}

	if key := strings.TrimSpace(fd.RecommendationKey); key != "" && key != "none" {
		f.RecommendationKey = &key
	}
	if n := fd.NumberOfAnalystOpinions.Raw; n != nil {
		f.NumberOfAnalystOpinions = utils.ToPointer(int(*n))
	}
	return f
}

func mapContracts(quotes []dto.YahooOptionQuote) []dto.OptionContract {
	out := make([]dto.OptionContract, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, dto.OptionContract{
			Strike:            q.Strike,
			Volume:            valueOr(q.Volume, 0),
			ImpliedVolatility: valueOr(q.ImpliedVolatility, 0),
		})
	}
	return out
}

func at[T any](values []*T, i int) *T {
	if i >= len(values) {
		return nil
	}
	return values[i]
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func firstNonNil(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
