package model

import (
	"database/sql"
	"time"
)

type TaskExecutionStatus string

const (
	StatusRunning   TaskExecutionStatus = "running"
	StatusCompleted TaskExecutionStatus = "completed"
	StatusFailed    TaskExecutionStatus = "failed"
	StatusTimeout   TaskExecutionStatus = "timeout"
)

type TaskExecutionHistory struct {
	ID           uint      `gorm:"primaryKey"`
	JobID        uint      `gorm:"not null"`
	ScheduleID   uint      `gorm:"not null"`
	StartedAt    time.Time `gorm:"not null"`
	CompletedAt  sql.NullTime
	Status       TaskExecutionStatus `gorm:"type:varchar(50);not null"`
	ExitCode     sql.NullInt32
	Output       sql.NullString `gorm:"type:text"`
	ErrorMessage sql.NullString `gorm:"type:text"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
}

func (TaskExecutionHistory) TableName() string {
	return "task_execution_history"
}

// Finish stamps the terminal state of a run. A non-nil err overrides status with failed
// unless status is already timeout.
func (h *TaskExecutionHistory) Finish(at time.Time, status TaskExecutionStatus, exitCode int32, output string, err error) {
	h.CompletedAt = sql.NullTime{Time: at, Valid: true}
	h.ExitCode = sql.NullInt32{Int32: exitCode, Valid: true}
	h.Output = sql.NullString{String: output, Valid: output != ""}
	h.Status = status
	if err != nil {
		if status != StatusTimeout {
			h.Status = StatusFailed
		}
		h.ErrorMessage = sql.NullString{String: err.Error(), Valid: true}
	}
}
