package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rxhub/member-portal-api/internal/model"
	"github.com/rxhub/member-portal-api/internal/repository"
	apperrors "github.com/rxhub/member-portal-api/pkg/errors"
)

type trainingRepository struct {
	BaseRepository
}

func NewTrainingRepository(base BaseRepository) repository.TrainingRepository {
	return &trainingRepository{base}
}

func (r *trainingRepository) Get(ctx context.Context, profileID uuid.UUID, moduleID string) (*model.TrainingProgress, error) {
	query := `
		SELECT * FROM member_training_progress
		WHERE profile_id = $1 AND module_id = $2
	`

	var progress model.TrainingProgress
	if err := r.db.GetContext(ctx, &progress, query, profileID, moduleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("training progress", err)
		}
		return nil, fmt.Errorf("failed to get training progress: %w", err)
	}

	return &progress, nil
}

func (r *trainingRepository) Upsert(ctx context.Context, p *model.TrainingProgress) (*model.TrainingProgress, error) {
	query := `
		INSERT INTO member_training_progress (
			id, profile_id, module_id, completion_status,
			completion_percentage, score, attempts, notes,
			started_at, completed_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		ON CONFLICT (profile_id, module_id)
		DO UPDATE SET
			completion_status = EXCLUDED.completion_status,
			completion_percentage = EXCLUDED.completion_percentage,
			score = EXCLUDED.score,
			attempts = EXCLUDED.attempts,
			notes = EXCLUDED.notes,
			started_at = COALESCE(member_training_progress.started_at, EXCLUDED.started_at),
			completed_at = EXCLUDED.completed_at,
			updated_at = NOW()
		RETURNING *
	`

	var stored model.TrainingProgress
	err := r.db.GetContext(ctx, &stored, query,
		uuid.New(),
		p.ProfileID,
		p.ModuleID,
		p.CompletionStatus,
		p.CompletionPercentage,
		p.Score,
		p.Attempts,
		p.Notes,
		p.StartedAt,
		p.CompletedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert training progress: %w", err)
	}

	return &stored, nil
}

func (r *trainingRepository) ListForProfile(ctx context.Context, profileID uuid.UUID) ([]model.TrainingProgress, error) {
	query := `
		SELECT * FROM member_training_progress
		WHERE profile_id = $1
		ORDER BY updated_at DESC
	`

	var progress []model.TrainingProgress
	if err := r.db.SelectContext(ctx, &progress, query, profileID); err != nil {
		return nil, fmt.Errorf("failed to list training progress: %w", err)
	}

	return progress, nil
}
