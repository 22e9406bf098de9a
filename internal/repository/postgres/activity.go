package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rxhub/member-portal-api/internal/model"
	"github.com/rxhub/member-portal-api/internal/repository"
)

type activityRepository struct {
	BaseRepository
}

func NewActivityRepository(base BaseRepository) repository.ActivityRepository {
	return &activityRepository{base}
}

func (r *activityRepository) Upsert(ctx context.Context, profileID, resourceID uuid.UUID) error {
	query := `
		INSERT INTO recent_activity (id, profile_id, resource_id, accessed_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (profile_id, resource_id)
		DO UPDATE SET accessed_at = EXCLUDED.accessed_at
	`

	if _, err := r.db.ExecContext(ctx, query, uuid.New(), profileID, resourceID, time.Now()); err != nil {
		return fmt.Errorf("failed to upsert activity: %w", err)
	}

	return nil
}

func (r *activityRepository) ListRecent(ctx context.Context, profileID uuid.UUID, limit int) ([]model.ActivityItem, error) {
	query := `
		SELECT a.resource_id, f.name, f.path, f.url, a.accessed_at
		FROM recent_activity a
		JOIN storage_files_catalog f ON f.id = a.resource_id
		WHERE a.profile_id = $1
		ORDER BY a.accessed_at DESC
		LIMIT $2
	`

	var items []model.ActivityItem
	if err := r.db.SelectContext(ctx, &items, query, profileID, limit); err != nil {
		return nil, fmt.Errorf("failed to list recent activity: %w", err)
	}

	return items, nil
}
