package recommendation

import (
	"testing"

	"stock-scoring/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionFor_Boundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  dto.Action
	}{
		{100, dto.SignalStrongBuy},
		{80.0, dto.SignalStrongBuy},
		{79.99, dto.SignalBuy},
		{65.0, dto.SignalBuy},
		{64.99, dto.SignalHold},
		{35.0, dto.SignalHold},
		{34.99, dto.SignalSell},
		{20.0, dto.SignalSell},
		{19.99, dto.SignalStrongSell},
		{0, dto.SignalStrongSell},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ActionFor(tt.score), "score %v", tt.score)
	}
}

func TestConfidence(t *testing.T) {
	assert.Equal(t, 95.0, Confidence(60, 60, 60))
	assert.Equal(t, 20.0, Confidence(0, 100, 0))
	// population std of 50,60,70 is 8.165
	assert.Equal(t, 83.7, Confidence(50, 60, 70))

	for _, scores := range [][]float64{{0, 0, 100}, {100, 100, 100}, {10, 90, 50}, {33, 34, 35}} {
		c := Confidence(scores...)
		assert.GreaterOrEqual(t, c, 20.0)
		assert.LessOrEqual(t, c, 95.0)
	}
}

func TestRiskFor(t *testing.T) {
	assert.Equal(t, dto.RiskLow, RiskFor(95))
	assert.Equal(t, dto.RiskMedium, RiskFor(80))
	assert.Equal(t, dto.RiskMedium, RiskFor(61))
	assert.Equal(t, dto.RiskHigh, RiskFor(60))
}

func TestPriceTarget(t *testing.T) {
	target := PriceTarget(dto.SignalBuy, 100, 70)
	require.NotNil(t, target)
	assert.Equal(t, 104.0, *target)

	target = PriceTarget(dto.SignalStrongSell, 100, 10)
	require.NotNil(t, target)
	assert.Equal(t, 92.0, *target)

	assert.Nil(t, PriceTarget(dto.SignalHold, 100, 50))
	assert.Nil(t, PriceTarget(dto.SignalBuy, 0, 70))
}

func TestEngine_Recommend(t *testing.T) {
	engine := NewEngine(nil)

	tests := []struct {
		name      string
		in        Input
		action    dto.Action
		overall   float64
		risk      dto.RiskLevel
		reasoning []string
	}{
		{
			name:      "equal pillars",
			in:        Input{FundamentalScore: 60, TechnicalScore: 60, SentimentScore: 60, Trend: dto.TrendNeutral, CurrentPrice: 100},
			action:    dto.SignalHold,
			overall:   60,
			risk:      dto.RiskLow,
			reasoning: []string{},
		},
		{
			name:      "strong stock",
			in:        Input{FundamentalScore: 100, TechnicalScore: 100, SentimentScore: 75, Trend: dto.TrendStrongBullish, CurrentPrice: 200},
			action:    dto.SignalStrongBuy,
			overall:   95,
			risk:      dto.RiskMedium,
			reasoning: []string{"Strong fundamentals", "Bullish technical trend", "Positive market sentiment"},
		},
		{
			name:      "only technicals available",
			in:        Input{TechnicalScore: 25, Trend: dto.TrendBearish, CurrentPrice: 50},
			action:    dto.SignalSell,
			overall:   25,
			risk:      dto.RiskMedium,
			reasoning: []string{"Weak fundamentals", "Bearish technical trend", "Negative market sentiment"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := engine.Recommend(tt.in)
			assert.Equal(t, tt.action, rec.Action)
			assert.InDelta(t, tt.overall, rec.OverallScore, 1e-9)
			assert.Equal(t, tt.risk, rec.RiskLevel)
			assert.Equal(t, tt.reasoning, rec.Reasoning)
			assert.GreaterOrEqual(t, rec.Confidence, 20.0)
			assert.LessOrEqual(t, rec.Confidence, 95.0)
		})
	}
}

func TestEngine_Idempotent(t *testing.T) {
	engine := NewEngine(nil)
	in := Input{FundamentalScore: 72, TechnicalScore: 41, SentimentScore: 66, Trend: dto.TrendBullish, CurrentPrice: 123.45}
	assert.Equal(t, engine.Recommend(in), engine.Recommend(in))
}
