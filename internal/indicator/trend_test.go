package indicator

import (
	"testing"

	"stock-scoring/internal/dto"

	"github.com/stretchr/testify/assert"
)

func TestTrend(t *testing.T) {
	tests := []struct {
		name   string
		cur    float64
		sma20  float64
		sma50  float64
		sma200 *float64
		want   dto.Trend
	}{
		{name: "bullish without long average", cur: 110, sma20: 105, sma50: 100, want: dto.TrendBullish},
		{name: "bearish without long average", cur: 90, sma20: 95, sma50: 100, want: dto.TrendBearish},
		{name: "mixed", cur: 100, sma20: 105, sma50: 95, want: dto.TrendNeutral},
		{name: "strong bullish", cur: 110, sma20: 105, sma50: 100, sma200: ptr(90), want: dto.TrendStrongBullish},
		{name: "bullish under long average", cur: 110, sma20: 105, sma50: 100, sma200: ptr(120), want: dto.TrendBullish},
		{name: "strong bearish", cur: 90, sma20: 95, sma50: 100, sma200: ptr(110), want: dto.TrendStrongBearish},
		{name: "bearish above long average", cur: 90, sma20: 95, sma50: 100, sma200: ptr(80), want: dto.TrendBearish},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Trend(tt.cur, tt.sma20, tt.sma50, tt.sma200))
		})
	}
}
