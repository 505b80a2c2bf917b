package recommendation

import (
	"gonum.org/v1/gonum/stat"

	"stock-scoring/internal/dto"
	"stock-scoring/internal/scoring"
	"stock-scoring/pkg/utils"
)

// Input carries the three pillar scores and what the engine needs besides them.
type Input struct {
	FundamentalScore float64
	TechnicalScore   float64
	SentimentScore   float64
	Trend            dto.Trend
	CurrentPrice     float64
}

type Engine struct {
	weights map[string]float64
}

// NewEngine uses the default standard weights when weights is empty.
func NewEngine(weights map[string]float64) *Engine {
	if len(weights) == 0 {
		weights = scoring.DefaultStandardWeights()
	}
	return &Engine{weights: weights}
}

// Recommend derives every field from the overall score rounded to one decimal, so the action always
// agrees with the reported score.
func (e *Engine) Recommend(in Input) dto.Recommendation {
	overall := utils.RoundTo(scoring.WeightedAverage(map[string]float64{
		scoring.KeyFundamental: in.FundamentalScore,
		scoring.KeyTechnical:   in.TechnicalScore,
		scoring.KeySentiment:   in.SentimentScore,
	}, e.weights), 1)

	action := ActionFor(overall)
	confidence := Confidence(in.FundamentalScore, in.TechnicalScore, in.SentimentScore)

	return dto.Recommendation{
		Action:       action,
		Confidence:   confidence,
		PriceTarget:  PriceTarget(action, in.CurrentPrice, overall),
		RiskLevel:    RiskFor(confidence),
		Reasoning:    Reasoning(in),
		OverallScore: overall,
	}
}

func ActionFor(score float64) dto.Action {
	switch {
	case score >= 80:
		return dto.SignalStrongBuy
	case score >= 65:
		return dto.SignalBuy
	case score >= 35:
		return dto.SignalHold
	case score >= 20:
		return dto.SignalSell
	default:
		return dto.SignalStrongSell
	}
}

// Confidence falls by two points per point of population standard deviation across the pillar
// scores, bounded to [20,95].
func Confidence(scores ...float64) float64 {
	if len(scores) == 0 {
		return 20
	}
	_, std := stat.PopMeanStdDev(scores, nil)
	return utils.RoundTo(scoring.Clamp(100-2*std, 20, 95), 1)
}

func RiskFor(confidence float64) dto.RiskLevel {
	switch {
	case confidence > 80:
		return dto.RiskLow
	case confidence > 60:
		return dto.RiskMedium
	default:
		return dto.RiskHigh
	}
}

// PriceTarget moves the price by a fifth of the score's distance from neutral, in percent. HOLD has
// no target.
func PriceTarget(action dto.Action, price, score float64) *float64 {
	if price <= 0 {
		return nil
	}
	switch {
	case action.IsBuy():
		return utils.ToPointer(utils.RoundTo(price*(1+(score-50)/500), 2))
	case action.IsSell():
		return utils.ToPointer(utils.RoundTo(price*(1-(50-score)/500), 2))
	default:
		return nil
	}
}

func Reasoning(in Input) []string {
	reasons := []string{}

	switch {
	case in.FundamentalScore >= 70:
		reasons = append(reasons, "Strong fundamentals")
	case in.FundamentalScore <= 30:
		reasons = append(reasons, "Weak fundamentals")
	}

	switch {
	case in.Trend.IsBullish():
		reasons = append(reasons, "Bullish technical trend")
	case in.Trend.IsBearish():
		reasons = append(reasons, "Bearish technical trend")
	}

	switch {
	case in.SentimentScore >= 70:
		reasons = append(reasons, "Positive market sentiment")
	case in.SentimentScore <= 30:
		reasons = append(reasons, "Negative market sentiment")
	}

	return reasons
}
