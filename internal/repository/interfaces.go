package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/rxhub/member-portal-api/internal/model"
)

type AccountRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Account, error)
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	// UpdateColumns applies a partial column update scoped to the
	// account id and returns the updated row.
	UpdateColumns(ctx context.Context, id uuid.UUID, cols map[string]interface{}) (*model.Account, error)
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *model.MemberProfile) error
	Get(ctx context.Context, id uuid.UUID) (*model.MemberProfile, error)
	// ListActive returns the account's active profiles ordered by
	// creation time ascending.
	ListActive(ctx context.Context, accountID uuid.UUID) ([]*model.MemberProfile, error)
	Update(ctx context.Context, profile *model.MemberProfile) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BookmarkRepository interface {
	ListResourceIDs(ctx context.Context, profileID uuid.UUID) ([]uuid.UUID, error)
	ListResources(ctx context.Context, profileID uuid.UUID) ([]model.BookmarkedResource, error)
	Insert(ctx context.Context, profileID, resourceID uuid.UUID) error
	Delete(ctx context.Context, profileID, resourceID uuid.UUID) error
	Exists(ctx context.Context, profileID, resourceID uuid.UUID) (bool, error)
}

type ActivityRepository interface {
	// Upsert inserts an access record or refreshes its timestamp when
	// the (profile, resource) pair already exists.
	Upsert(ctx context.Context, profileID, resourceID uuid.UUID) error
	ListRecent(ctx context.Context, profileID uuid.UUID, limit int) ([]model.ActivityItem, error)
}

type AnnouncementRepository interface {
	ListRecent(ctx context.Context, limit int) ([]model.Announcement, error)
}

type TrainingRepository interface {
	Get(ctx context.Context, profileID uuid.UUID, moduleID string) (*model.TrainingProgress, error)
	Upsert(ctx context.Context, progress *model.TrainingProgress) (*model.TrainingProgress, error)
	ListForProfile(ctx context.Context, profileID uuid.UUID) ([]model.TrainingProgress, error)
}

type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]model.ProgramCategory, error)
	GetByPath(ctx context.Context, path string) (*model.CatalogFile, error)
	Get(ctx context.Context, id uuid.UUID) (*model.CatalogFile, error)
}
