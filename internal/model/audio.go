package model

import (
	"time"

	"github.com/google/uuid"
)

// ProcessingStatus is the lifecycle state of an uploaded audio asset.
// Transitions: uploaded -> processing -> completed | failed. Both terminal
// states may re-enter processing on a new process request.
type ProcessingStatus string

const (
	StatusUploaded   ProcessingStatus = "uploaded"
	StatusProcessing ProcessingStatus = "processing"
	StatusCompleted  ProcessingStatus = "completed"
	StatusFailed     ProcessingStatus = "failed"
)

// AudioAsset is an uploaded audio recording plus its processing metadata.
// TranscriptText is non-nil exactly when ProcessingStatus is completed.
type AudioAsset struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	StoragePath      string           `gorm:"not null" json:"-"`
	FileName         string           `gorm:"not null" json:"file_name"`
	FileSize         int64            `json:"file_size"`
	Duration         int              `json:"duration"` // estimated seconds, size heuristic
	TranscriptText   *string          `gorm:"type:text" json:"transcript_text,omitempty"`
	ProcessingStatus ProcessingStatus `gorm:"default:uploaded" json:"processing_status"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}
