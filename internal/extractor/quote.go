package extractor

import (
	"context"
	"fmt"
	"strings"

	"stock-scoring/internal/dto"
	"stock-scoring/pkg/utils"
)

// NormalizeSymbol trims and upper-cases a ticker.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Quote fetches the base snapshot. Any failure, or a quote without a positive price, wraps
// ErrQuoteUnavailable.
func (e *MetricExtractor) Quote(ctx context.Context, symbol string) (dto.StockQuote, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return dto.StockQuote{}, fmt.Errorf("empty symbol: %w", ErrQuoteUnavailable)
	}

	ctx, span := e.startSpan(ctx, "quote", symbol)
	defer span.End()

	q, err := e.provider.GetQuote(ctx, symbol)
	if err != nil {
		span.RecordError(err)
		return dto.StockQuote{}, fmt.Errorf("%s: %w: %v", symbol, ErrQuoteUnavailable, err)
	}
	if q == nil || q.Price <= 0 {
		return dto.StockQuote{}, fmt.Errorf("%s: no price data: %w", symbol, ErrQuoteUnavailable)
	}

	name := q.Name
	if name == "" {
		name = symbol
	}

	var change float64
	if q.PreviousClose != nil && *q.PreviousClose != 0 {
		change = (q.Price - *q.PreviousClose) / *q.PreviousClose * 100
	}

	return dto.StockQuote{
		Symbol:        symbol,
		Name:          name,
		CurrentPrice:  utils.RoundTo(q.Price, 2),
		ChangePercent: utils.RoundTo(change, 2),
		MarketCap:     q.MarketCap,
		Volume:        q.Volume,
	}, nil
}
