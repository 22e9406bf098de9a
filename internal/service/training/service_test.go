package training

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rxhub/member-portal-api/internal/model"
	apperrors "github.com/rxhub/member-portal-api/pkg/errors"
	"github.com/rxhub/member-portal-api/pkg/logger"
)

type fakeTraining struct {
	rows   map[string]*model.TrainingProgress
	getErr error
}

func newFakeTraining() *fakeTraining {
	return &fakeTraining{rows: make(map[string]*model.TrainingProgress)}
}

func key(profileID uuid.UUID, moduleID string) string {
	return profileID.String() + "/" + moduleID
}

func (r *fakeTraining) Get(ctx context.Context, profileID uuid.UUID, moduleID string) (*model.TrainingProgress, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	row, ok := r.rows[key(profileID, moduleID)]
	if !ok {
		return nil, apperrors.NotFound("training progress", nil)
	}
	copied := *row
	return &copied, nil
}

func (r *fakeTraining) Upsert(ctx context.Context, progress *model.TrainingProgress) (*model.TrainingProgress, error) {
	copied := *progress
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	r.rows[key(progress.ProfileID, progress.ModuleID)] = &copied
	result := copied
	return &result, nil
}

func (r *fakeTraining) ListForProfile(ctx context.Context, profileID uuid.UUID) ([]model.TrainingProgress, error) {
	var out []model.TrainingProgress
	for _, row := range r.rows {
		if row.ProfileID == profileID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func TestStartTrainingModule(t *testing.T) {
	repo := newFakeTraining()
	svc := NewService(repo, logger.Nop())
	profileID := uuid.New()

	progress, err := svc.StartTrainingModule(context.Background(), profileID, "usp-797-basics")
	require.NoError(t, err)

	assert.Equal(t, model.TrainingInProgress, progress.CompletionStatus)
	assert.Equal(t, 1, progress.Attempts)
	require.NotNil(t, progress.StartedAt)
}

func TestRestartKeepsStartTimeAndBumpsAttempts(t *testing.T) {
	repo := newFakeTraining()
	svc := NewService(repo, logger.Nop())
	profileID := uuid.New()

	first, err := svc.StartTrainingModule(context.Background(), profileID, "usp-797-basics")
	require.NoError(t, err)

	second, err := svc.StartTrainingModule(context.Background(), profileID, "usp-797-basics")
	require.NoError(t, err)

	assert.Equal(t, 2, second.Attempts)
	require.NotNil(t, second.StartedAt)
	assert.Equal(t, first.StartedAt.Unix(), second.StartedAt.Unix())
}

func TestUpdateClampsPercentage(t *testing.T) {
	repo := newFakeTraining()
	svc := NewService(repo, logger.Nop())
	profileID := uuid.New()

	over := 150
	progress, err := svc.UpdateTrainingProgress(context.Background(), profileID, "m1", &model.UpdateTrainingRequest{
		CompletionPercentage: &over,
	})
	require.NoError(t, err)
	assert.Equal(t, 100, progress.CompletionPercentage)

	under := -10
	progress, err = svc.UpdateTrainingProgress(context.Background(), profileID, "m1", &model.UpdateTrainingRequest{
		CompletionPercentage: &under,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, progress.CompletionPercentage)
}

func TestCompletedStatusStampsCompletionTime(t *testing.T) {
	repo := newFakeTraining()
	svc := NewService(repo, logger.Nop())
	profileID := uuid.New()

	status := model.TrainingCompleted
	progress, err := svc.UpdateTrainingProgress(context.Background(), profileID, "m1", &model.UpdateTrainingRequest{
		CompletionStatus: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, model.TrainingCompleted, progress.CompletionStatus)
	require.NotNil(t, progress.CompletedAt)
}

func TestCompleteTrainingModule(t *testing.T) {
	repo := newFakeTraining()
	svc := NewService(repo, logger.Nop())
	profileID := uuid.New()

	_, err := svc.StartTrainingModule(context.Background(), profileID, "m1")
	require.NoError(t, err)

	score := 92
	progress, err := svc.CompleteTrainingModule(context.Background(), profileID, "m1", &score)
	require.NoError(t, err)

	assert.Equal(t, model.TrainingCompleted, progress.CompletionStatus)
	assert.Equal(t, 100, progress.CompletionPercentage)
	require.NotNil(t, progress.Score)
	assert.Equal(t, 92, *progress.Score)
	require.NotNil(t, progress.CompletedAt)
	assert.Equal(t, 1, progress.Attempts)
}

func TestGetModuleProgressAbsentRow(t *testing.T) {
	svc := NewService(newFakeTraining(), logger.Nop())

	progress, err := svc.GetModuleProgress(context.Background(), uuid.New(), "never-started")
	require.NoError(t, err)
	assert.Nil(t, progress)
}

func TestGetModuleProgressStorageError(t *testing.T) {
	repo := newFakeTraining()
	repo.getErr = errors.New("db down")
	svc := NewService(repo, logger.Nop())

	_, err := svc.GetModuleProgress(context.Background(), uuid.New(), "m1")
	assert.Error(t, err)
}

func TestUpdatePreservesUntouchedFields(t *testing.T) {
	repo := newFakeTraining()
	svc := NewService(repo, logger.Nop())
	profileID := uuid.New()

	notes := "covered chapters 1-3"
	_, err := svc.UpdateTrainingProgress(context.Background(), profileID, "m1", &model.UpdateTrainingRequest{
		Notes: &notes,
	})
	require.NoError(t, err)

	pct := 40
	progress, err := svc.UpdateTrainingProgress(context.Background(), profileID, "m1", &model.UpdateTrainingRequest{
		CompletionPercentage: &pct,
	})
	require.NoError(t, err)

	assert.Equal(t, 40, progress.CompletionPercentage)
	require.NotNil(t, progress.Notes)
	assert.Equal(t, notes, *progress.Notes)
}
