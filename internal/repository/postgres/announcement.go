package postgres

import (
	"context"
	"fmt"

	"github.com/rxhub/member-portal-api/internal/model"
	"github.com/rxhub/member-portal-api/internal/repository"
)

type announcementRepository struct {
	BaseRepository
}

func NewAnnouncementRepository(base BaseRepository) repository.AnnouncementRepository {
	return &announcementRepository{base}
}

func (r *announcementRepository) ListRecent(ctx context.Context, limit int) ([]model.Announcement, error) {
	query := `
		SELECT * FROM announcements
		WHERE is_active = true
		ORDER BY published_at DESC
		LIMIT $1
	`

	var announcements []model.Announcement
	if err := r.db.SelectContext(ctx, &announcements, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}

	return announcements, nil
}
