package dto

import "time"

type AnalyzeRequest struct {
	Symbol       string `json:"symbol" validate:"required,max=12,symbol"`
	AnalysisMode string `json:"analysis_mode" validate:"omitempty,oneof=standard comprehensive"`
}

type AddWatchlistRequest struct {
	Symbol string `json:"symbol" validate:"required,max=12,symbol"`
	Note   string `json:"note" validate:"max=255"`
}

type WatchlistItemResponse struct {
	Symbol    string    `json:"symbol"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

type RecentAnalysisResponse struct {
	ID           uint         `json:"id"`
	Symbol       string       `json:"symbol"`
	Mode         AnalysisMode `json:"analysis_mode"`
	Action       Action       `json:"action"`
	OverallScore float64      `json:"overall_score"`
	Confidence   float64      `json:"confidence"`
	AnalyzedAt   time.Time    `json:"analyzed_at"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type RunJobRequest struct {
	JobID uint `json:"job_id"`
}

type JobScheduleResponse struct {
	ID             uint       `json:"id"`
	CronExpression string     `json:"cron_expression"`
	IsActive       bool       `json:"is_active"`
	LastExecution  *time.Time `json:"last_execution,omitempty"`
	NextExecution  *time.Time `json:"next_execution,omitempty"`
}

type JobResponse struct {
	ID          uint                  `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Type        string                `json:"type"`
	Schedules   []JobScheduleResponse `json:"schedules"`
}
