package models

import (
	"time"

	"github.com/google/uuid"
)

type RunStatus string

const (
	StatusProcessing RunStatus = "processing"
	StatusCompleted  RunStatus = "completed"
	StatusFailed     RunStatus = "failed"
)

// ScreeningRun is the metadata of one screening pass. It never holds
// candidate data: no file names, resume text or model output.
type ScreeningRun struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Status            RunStatus `gorm:"type:text;not null;default:'processing'" json:"status"`
	Model             string    `gorm:"type:text" json:"model"`
	ResumeCount       int       `gorm:"not null;default:0" json:"resume_count"`
	ProcessedCount    int       `gorm:"not null;default:0" json:"processed_count"`
	ParseFailureCount int       `gorm:"not null;default:0" json:"parse_failure_count"`
	ErrorMessage      *string   `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (ScreeningRun) TableName() string {
	return "screening_runs"
}
