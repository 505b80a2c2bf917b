package contract

import (
	"context"

	"stock-scoring/internal/dto"
)

type Analyzer interface {
	Analyze(ctx context.Context, symbol string, mode dto.AnalysisMode) (*dto.AnalysisResult, error)
}
