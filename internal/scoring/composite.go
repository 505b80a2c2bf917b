package scoring

import (
	"maps"
	"slices"
)

// Weight keys of the standard recommendation.
const (
	KeyFundamental = "fundamental"
	KeyTechnical   = "technical"
	KeySentiment   = "sentiment"
)

// Weight keys of the comprehensive composite.
const (
	KeyFinancialHealth = "financial_health"
	KeyValuation       = "valuation"
	KeyQuality         = "quality"
	KeyMomentum        = "momentum"
	KeyRisk            = "risk"
)

func DefaultStandardWeights() map[string]float64 {
	return map[string]float64{
		KeyFundamental: 0.5,
		KeyTechnical:   0.3,
		KeySentiment:   0.2,
	}
}

func DefaultCompositeWeights() map[string]float64 {
	return map[string]float64{
		KeyFinancialHealth: 0.20,
		KeyValuation:       0.15,
		KeyQuality:         0.10,
		KeyMomentum:        0.10,
		KeyRisk:            0.05,
	}
}

// WeightedAverage averages the scores greater than zero, renormalizing over their weights. A score of
// exactly 0 counts as missing, so a component penalized down to 0 is dropped instead of pulling the
// average down. Scores without a weight are ignored. Returns 50 when nothing is left.
func WeightedAverage(scores, weights map[string]float64) float64 {
	var sum, total float64
	for _, key := range slices.Sorted(maps.Keys(scores)) {
		score := scores[key]
		weight, ok := weights[key]
		if !ok || score <= 0 || weight <= 0 {
			continue
		}
		sum += score * weight
		total += weight
	}
	if total == 0 {
		return neutralScore
	}
	return sum / total
}
