package model

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

type Job struct {
	ID          uint                   `gorm:"primaryKey"`
	Name        string                 `gorm:"type:varchar(255);not null"`
	Description string                 `gorm:"type:text"`
	Type        string                 `gorm:"type:varchar(50);not null"`
	Payload     datatypes.JSON         `gorm:"type:jsonb;not null"`
	Timeout     int                    `gorm:"default:300"`
	CreatedAt   time.Time              `gorm:"autoCreateTime"`
	UpdatedAt   time.Time              `gorm:"autoUpdateTime"`
	Schedules   []TaskSchedule         `gorm:"foreignKey:JobID"`
	Histories   []TaskExecutionHistory `gorm:"foreignKey:JobID"`
}

func (Job) TableName() string {
	return "jobs"
}

// DecodePayload unmarshals the job payload into dest. An empty payload leaves dest untouched.
func (j *Job) DecodePayload(dest interface{}) error {
	if len(j.Payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(j.Payload, dest); err != nil {
		return fmt.Errorf("invalid payload for job %d: %w", j.ID, err)
	}
	return nil
}

// TimeoutDuration is the per-run timeout, falling back to def when unset.
func (j *Job) TimeoutDuration(def time.Duration) time.Duration {
	if j.Timeout <= 0 {
		return def
	}
	return time.Duration(j.Timeout) * time.Second
}

type GetJobParam struct {
	IDs             []uint                        `json:"ids"`
	IsActive        *bool                         `json:"is_active"`
	Limit           *int                          `json:"limit"`
	WithTaskHistory *GetTaskExecutionHistoryParam `json:"with_task_history"`
}

type GetTaskExecutionHistoryParam struct {
	Limit *int `json:"limit"`
}
