package dto

// SentimentAnalysis is the sentiment provider output. Scores and confidence are in [0,1].
type SentimentAnalysis struct {
	OverallScore float64  `json:"overall_score"`
	NewsScore    *float64 `json:"news_score"`
	SocialScore  *float64 `json:"social_score"`
	ArticleCount int      `json:"article_count"`
	PostCount    int      `json:"post_count"`
	Confidence   float64  `json:"confidence"`
	Summary      string   `json:"summary"`
}

// GeminiSentimentResponse is the JSON object the model is asked to return.
type GeminiSentimentResponse struct {
	NewsScore    *float64 `json:"news_score"`
	SocialScore  *float64 `json:"social_score"`
	ArticleCount int      `json:"article_count"`
	PostCount    int      `json:"post_count"`
	KeyThemes    []string `json:"key_themes"`
}

// NewsHeadline is one headline fed into the sentiment prompt.
type NewsHeadline struct {
	Title     string `json:"title"`
	Publisher string `json:"publisher"`
}
