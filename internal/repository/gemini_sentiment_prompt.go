package repository

import (
	"fmt"
	"math"
	"strings"

	"stock-scoring/internal/dto"
)

// Sentiment blending. Missing sources count as neutral.
const (
	newsWeight       = 0.7
	socialWeight     = 0.3
	neutralSentiment = 0.5
)

func promptSentiment(symbol, companyName string, headlines []dto.NewsHeadline) string {
	var sb strings.Builder

	name := symbol
	if companyName != "" {
		name = fmt.Sprintf("%s (%s)", companyName, symbol)
	}
	sb.WriteString(fmt.Sprintf("You are a financial news sentiment analyst. Rate the market sentiment for %s "+
		"from the headlines below, published over the past week.\n\n", name))

	sb.WriteString("### Headlines\n")
	for i, h := range headlines {
		if h.Publisher != "" {
			sb.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, h.Title, h.Publisher))
			continue
		}
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, h.Title))
	}

	sb.WriteString(`
### Rules
- Ignore headlines that are not about the company.
- news_score is the relevance weighted sentiment of the relevant headlines, from 0 (very negative) to 1 (very positive), 0.5 is neutral.
- social_score is your estimate of retail investor sentiment on the same scale, or null when the headlines give no signal.
- article_count is the number of relevant headlines, post_count is 0.
- key_themes lists at most 5 short themes.

### Output
Respond with JSON only:
{"news_score": 0.0, "social_score": null, "article_count": 0, "post_count": 0, "key_themes": []}
`)
	return sb.String()
}

// buildSentimentAnalysis blends news and social scores 70/30. Confidence starts at 0.5, gains up to 0.3
// for data volume and up to 0.2 for agreement between the two sources, capped at 0.95.
func buildSentimentAnalysis(resp dto.GeminiSentimentResponse) *dto.SentimentAnalysis {
	news := clampUnit(resp.NewsScore)
	social := clampUnit(resp.SocialScore)

	overall := news*newsWeight + social*socialWeight

	points := float64(resp.ArticleCount + resp.PostCount)
	confidence := 0.5 + math.Min(0.3, points/20) + 0.2*(1-math.Abs(news-social))

	out := &dto.SentimentAnalysis{
		OverallScore: overall,
		ArticleCount: resp.ArticleCount,
		PostCount:    resp.PostCount,
		Confidence:   math.Min(0.95, confidence),
		Summary:      sentimentSummary(overall, resp.ArticleCount, resp.PostCount),
	}
	if resp.NewsScore != nil {
		out.NewsScore = &news
	}
	if resp.SocialScore != nil {
		out.SocialScore = &social
	}
	return out
}

func sentimentSummary(overall float64, articles, posts int) string {
	label := "Very Negative"
	switch {
	case overall > 0.65:
		label = "Very Positive"
	case overall > 0.55:
		label = "Positive"
	case overall > 0.45:
		label = "Neutral"
	case overall > 0.35:
		label = "Negative"
	}

	summary := fmt.Sprintf("%s sentiment based on %d news articles", label, articles)
	if posts > 0 {
		summary += fmt.Sprintf(" and %d social media posts", posts)
	}
	return summary + " from the past week."
}

func clampUnit(v *float64) float64 {
	if v == nil {
		return neutralSentiment
	}
	return math.Max(0, math.Min(1, *v))
}
