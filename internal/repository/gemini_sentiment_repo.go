package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"stock-scoring/config"
	"stock-scoring/internal/contract"
	"stock-scoring/internal/dto"
	"stock-scoring/pkg/logger"
	"stock-scoring/pkg/ratelimit"
)

const maxHeadlines = 20

// NewsSource supplies the headlines the sentiment prompt is built from.
type NewsSource interface {
	GetNews(ctx context.Context, symbol string, limit int) ([]dto.NewsHeadline, error)
}

// geminiSentimentRepository scores recent headlines with Gemini and implements contract.SentimentProvider.
type geminiSentimentRepository struct {
	news           NewsSource
	cfg            *config.Config
	logger         *logger.Logger
	tokenLimiter   *ratelimit.TokenLimiter
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
}

// NewGeminiSentimentRepository creates a new instance of geminiSentimentRepository.
func NewGeminiSentimentRepository(news NewsSource, cfg *config.Config, log *logger.Logger) (contract.SentimentProvider, error) {
	genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiSentimentRepository{
		news:           news,
		cfg:            cfg,
		logger:         log,
		tokenLimiter:   ratelimit.NewTokenLimiter(cfg.Gemini.MaxTokenPerMinute),
		requestLimiter: rate.NewLimiter(ratelimit.PerMinute(cfg.Gemini.MaxRequestPerMinute), 1),
		genAiClient:    genAiClient,
	}, nil
}

func (r *geminiSentimentRepository) Analyze(ctx context.Context, symbol, companyName string) (*dto.SentimentAnalysis, error) {
	headlines, err := r.news.GetNews(ctx, symbol, maxHeadlines)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch headlines: %w", err)
	}
	if len(headlines) == 0 {
		return buildSentimentAnalysis(dto.GeminiSentimentResponse{}), nil
	}

	prompt := promptSentiment(symbol, companyName, headlines)
	text, err := r.sendRequest(ctx, prompt)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to send request to gemini", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to send request to gemini: %w", err)
	}

	resp, err := parseSentimentResponse(text)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to parse response from gemini", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to parse response from gemini: %w", err)
	}
	if resp.ArticleCount == 0 {
		resp.ArticleCount = len(headlines)
	}

	return buildSentimentAnalysis(resp), nil
}

func (r *geminiSentimentRepository) sendRequest(ctx context.Context, prompt string) (string, error) {
	if r.cfg.Gemini.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Gemini.Timeout)
		defer cancel()
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	tokenResp, err := r.genAiClient.Models.CountTokens(ctx, r.cfg.Gemini.BaseModel, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to count tokens: %w", err)
	}

	r.logger.DebugContext(ctx, "Gemini token count",
		logger.IntField("total_tokens", int(tokenResp.TotalTokens)),
		logger.IntField("remaining", r.tokenLimiter.GetRemaining()),
	)
	if err := r.tokenLimiter.Wait(ctx, int(tokenResp.TotalTokens)); err != nil {
		return "", fmt.Errorf("failed to wait for token gemini limit: %w", err)
	}
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for request gemini limit: %w", err)
	}

	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.cfg.Gemini.BaseModel, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("invalid response from Gemini API: no content found")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

func parseSentimentResponse(text string) (dto.GeminiSentimentResponse, error) {
	var out dto.GeminiSentimentResponse
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.Trim(text, "`\n ")
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return out, err
	}
	return out, nil
}
