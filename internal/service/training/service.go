// Package training implements the per-(profile, module) training
// progress lifecycle.
package training

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rxhub/member-portal-api/internal/model"
	"github.com/rxhub/member-portal-api/internal/repository"
	apperrors "github.com/rxhub/member-portal-api/pkg/errors"
	"github.com/rxhub/member-portal-api/pkg/logger"
)

type Service struct {
	training repository.TrainingRepository
	logger   *logger.Logger
}

func NewService(training repository.TrainingRepository, log *logger.Logger) *Service {
	return &Service{
		training: training,
		logger:   log.WithComponent("training"),
	}
}

// StartTrainingModule marks the module in progress, stamping a start
// time. Restarting an already started module keeps the original start
// time and bumps the attempt count.
func (s *Service) StartTrainingModule(ctx context.Context, profileID uuid.UUID, moduleID string) (*model.TrainingProgress, error) {
	existing, err := s.getExisting(ctx, profileID, moduleID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	progress := &model.TrainingProgress{
		ProfileID:        profileID,
		ModuleID:         moduleID,
		CompletionStatus: model.TrainingInProgress,
		Attempts:         1,
		StartedAt:        &now,
	}
	if existing != nil {
		progress.CompletionPercentage = existing.CompletionPercentage
		progress.Score = existing.Score
		progress.Notes = existing.Notes
		progress.Attempts = existing.Attempts + 1
		progress.StartedAt = existing.StartedAt
		progress.CompletedAt = existing.CompletedAt
	}

	stored, err := s.training.Upsert(ctx, progress)
	if err != nil {
		s.logger.Error(err, "failed to start training module", "module_id", moduleID)
		return nil, err
	}
	return stored, nil
}

// UpdateTrainingProgress applies a progress update. The completion
// percentage is always clamped to [0,100], and a completed status
// always stamps a completion time.
func (s *Service) UpdateTrainingProgress(ctx context.Context, profileID uuid.UUID, moduleID string, req *model.UpdateTrainingRequest) (*model.TrainingProgress, error) {
	existing, err := s.getExisting(ctx, profileID, moduleID)
	if err != nil {
		return nil, err
	}

	progress := &model.TrainingProgress{
		ProfileID:        profileID,
		ModuleID:         moduleID,
		CompletionStatus: model.TrainingNotStarted,
	}
	if existing != nil {
		*progress = *existing
	}

	if req.CompletionPercentage != nil {
		progress.CompletionPercentage = clampPercentage(*req.CompletionPercentage)
	}
	if req.Score != nil {
		progress.Score = req.Score
	}
	if req.Notes != nil {
		progress.Notes = req.Notes
	}
	if req.CompletionStatus != nil {
		progress.CompletionStatus = *req.CompletionStatus
	}
	if progress.CompletionStatus == model.TrainingCompleted && progress.CompletedAt == nil {
		now := time.Now()
		progress.CompletedAt = &now
	}

	stored, err := s.training.Upsert(ctx, progress)
	if err != nil {
		s.logger.Error(err, "failed to update training progress", "module_id", moduleID)
		return nil, err
	}
	return stored, nil
}

// CompleteTrainingModule marks the module completed at 100%, stamping
// the completion time.
func (s *Service) CompleteTrainingModule(ctx context.Context, profileID uuid.UUID, moduleID string, score *int) (*model.TrainingProgress, error) {
	status := model.TrainingCompleted
	pct := 100
	return s.UpdateTrainingProgress(ctx, profileID, moduleID, &model.UpdateTrainingRequest{
		CompletionStatus:     &status,
		CompletionPercentage: &pct,
		Score:                score,
	})
}

// GetModuleProgress returns the progress row for the module, or nil
// when none exists yet. Only a genuine storage error is returned as
// an error.
func (s *Service) GetModuleProgress(ctx context.Context, profileID uuid.UUID, moduleID string) (*model.TrainingProgress, error) {
	return s.getExisting(ctx, profileID, moduleID)
}

// ListProgress returns every progress row for the profile.
func (s *Service) ListProgress(ctx context.Context, profileID uuid.UUID) ([]model.TrainingProgress, error) {
	return s.training.ListForProfile(ctx, profileID)
}

func (s *Service) getExisting(ctx context.Context, profileID uuid.UUID, moduleID string) (*model.TrainingProgress, error) {
	progress, err := s.training.Get(ctx, profileID, moduleID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return progress, nil
}

func clampPercentage(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
