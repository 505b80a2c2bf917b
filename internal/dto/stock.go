package dto

import "time"

// StockQuote is the base snapshot an analysis is built on.
type StockQuote struct {
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name"`
	CurrentPrice  float64  `json:"current_price"`
	ChangePercent float64  `json:"change_percent"`
	MarketCap     *float64 `json:"market_cap,omitempty"`
	Volume        *int64   `json:"volume,omitempty"`
}

// QuoteData is what the market data provider returns for a quote request.
type QuoteData struct {
	Symbol        string
	Name          string
	Price         float64
	PreviousClose *float64
	MarketCap     *float64
	Volume        *int64
}

type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// PriceHistory is a chronologically ordered, gap-free bar series.
type PriceHistory struct {
	Symbol string     `json:"symbol"`
	Period string     `json:"period"`
	Bars   []PriceBar `json:"bars"`
}

func (h *PriceHistory) Len() int {
	if h == nil {
		return 0
	}
	return len(h.Bars)
}

func (h *PriceHistory) Closes() []float64 {
	if h == nil {
		return nil
	}
	closes := make([]float64, len(h.Bars))
	for i, b := range h.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Fundamentals holds the named provider fields the extractors read. Ratios are as the provider reports
// them: ROE/ROA/margins/growth are decimals and DebtToEquity is a percentage (150 means 1.5x).
type Fundamentals struct {
	Symbol   string
	LongName string
	Sector   string
	Industry string

	CurrentPrice        *float64
	MarketCap           *float64
	Beta                *float64
	TrailingPE          *float64
	PEGRatio            *float64
	PriceToBook         *float64
	PriceToSales        *float64
	EnterpriseValue     *float64
	EnterpriseToRevenue *float64
	EnterpriseToEbitda  *float64
	TrailingEps         *float64
	BookValue           *float64
	SharesOutstanding   *float64

	ReturnOnEquity *float64
	ReturnOnAssets *float64
	ProfitMargins  *float64
	DebtToEquity   *float64
	CurrentRatio   *float64
	RevenueGrowth  *float64
	EarningsGrowth *float64

	FreeCashflow      *float64
	OperatingCashflow *float64
	TotalDebt         *float64
	NetIncome         *float64

	TotalAssets             *float64
	TotalCurrentAssets      *float64
	TotalCurrentLiabilities *float64

	RecommendationKey       *string
	NumberOfAnalystOpinions *int
}

type OptionContract struct {
	Strike            float64 `json:"strike"`
	Volume            float64 `json:"volume"`
	ImpliedVolatility float64 `json:"implied_volatility"`
}

// OptionsChain is the chain of the nearest expiration.
type OptionsChain struct {
	Expiration time.Time        `json:"expiration"`
	Calls      []OptionContract `json:"calls"`
	Puts       []OptionContract `json:"puts"`
}
