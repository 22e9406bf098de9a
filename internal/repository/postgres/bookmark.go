package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rxhub/member-portal-api/internal/model"
	"github.com/rxhub/member-portal-api/internal/repository"
	apperrors "github.com/rxhub/member-portal-api/pkg/errors"
)

type bookmarkRepository struct {
	BaseRepository
}

func NewBookmarkRepository(base BaseRepository) repository.BookmarkRepository {
	return &bookmarkRepository{base}
}

func (r *bookmarkRepository) ListResourceIDs(ctx context.Context, profileID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT resource_id FROM bookmarks
		WHERE profile_id = $1
	`

	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, query, profileID); err != nil {
		return nil, fmt.Errorf("failed to list bookmark resource ids: %w", err)
	}

	return ids, nil
}

func (r *bookmarkRepository) ListResources(ctx context.Context, profileID uuid.UUID) ([]model.BookmarkedResource, error) {
	query := `
		SELECT b.resource_id, f.name, f.path, f.url, f.mime_type,
			   f.size_bytes, b.created_at AS bookmarked_at
		FROM bookmarks b
		JOIN storage_files_catalog f ON f.id = b.resource_id
		WHERE b.profile_id = $1
		ORDER BY b.created_at DESC
	`

	var resources []model.BookmarkedResource
	if err := r.db.SelectContext(ctx, &resources, query, profileID); err != nil {
		return nil, fmt.Errorf("failed to list bookmarked resources: %w", err)
	}

	return resources, nil
}

func (r *bookmarkRepository) Insert(ctx context.Context, profileID, resourceID uuid.UUID) error {
	query := `
		INSERT INTO bookmarks (id, profile_id, resource_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (profile_id, resource_id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, uuid.New(), profileID, resourceID, time.Now()); err != nil {
		return fmt.Errorf("failed to insert bookmark: %w", err)
	}

	return nil
}

func (r *bookmarkRepository) Delete(ctx context.Context, profileID, resourceID uuid.UUID) error {
	query := `
		DELETE FROM bookmarks
		WHERE profile_id = $1 AND resource_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, profileID, resourceID)
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("bookmark", nil)
	}

	return nil
}

func (r *bookmarkRepository) Exists(ctx context.Context, profileID, resourceID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookmarks
			WHERE profile_id = $1 AND resource_id = $2
		)
	`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, profileID, resourceID); err != nil {
		return false, fmt.Errorf("failed to check bookmark: %w", err)
	}

	return exists, nil
}
