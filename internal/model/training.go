package model

import (
	"time"

	"github.com/google/uuid"
)

// Training completion status constants
const (
	TrainingNotStarted = "not_started"
	TrainingInProgress = "in_progress"
	TrainingCompleted  = "completed"
)

// TrainingProgress tracks a profile's progress through one training
// module. Unique per (profile_id, module_id).
type TrainingProgress struct {
	ID                   uuid.UUID  `json:"id" db:"id"`
	ProfileID            uuid.UUID  `json:"profileId" db:"profile_id"`
	ModuleID             string     `json:"moduleId" db:"module_id"`
	CompletionStatus     string     `json:"completionStatus" db:"completion_status"`
	CompletionPercentage int        `json:"completionPercentage" db:"completion_percentage"`
	Score                *int       `json:"score" db:"score"`
	Attempts             int        `json:"attempts" db:"attempts"`
	Notes                *string    `json:"notes" db:"notes"`
	StartedAt            *time.Time `json:"startedAt" db:"started_at"`
	CompletedAt          *time.Time `json:"completedAt" db:"completed_at"`
	CreatedAt            time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time  `json:"updatedAt" db:"updated_at"`
}

// UpdateTrainingRequest carries a progress update for one module.
type UpdateTrainingRequest struct {
	CompletionStatus     *string `json:"completionStatus" binding:"omitempty,oneof=not_started in_progress completed"`
	CompletionPercentage *int    `json:"completionPercentage"`
	Score                *int    `json:"score"`
	Notes                *string `json:"notes"`
}
