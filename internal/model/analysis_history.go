package model

import (
	"time"

	"gorm.io/datatypes"
)

// AnalysisHistory is one stored analyze call. Result keeps the full record tree as JSON.
type AnalysisHistory struct {
	ID           uint           `gorm:"primaryKey"`
	Symbol       string         `gorm:"type:varchar(12);not null;index"`
	Mode         string         `gorm:"type:varchar(20);not null"`
	Action       string         `gorm:"type:varchar(20);not null"`
	OverallScore float64        `gorm:"not null"`
	Confidence   float64        `gorm:"not null"`
	Result       datatypes.JSON `gorm:"type:jsonb;not null"`
	AnalyzedAt   time.Time      `gorm:"not null;index"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
}

func (AnalysisHistory) TableName() string {
	return "analysis_histories"
}

type GetAnalysisHistoryParam struct {
	Symbol *string
	Limit  int
}
