package model

import (
	"time"

	"github.com/google/uuid"
)

// Bookmark is a saved reference from a profile to a catalog resource.
// (profile_id, resource_id) is unique; there is no update, only
// insert and delete.
type Bookmark struct {
	ID         uuid.UUID `json:"id" db:"id"`
	ProfileID  uuid.UUID `json:"profileId" db:"profile_id"`
	ResourceID uuid.UUID `json:"resourceId" db:"resource_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// BookmarkedResource is a bookmark joined with its catalog metadata,
// shaped for display.
type BookmarkedResource struct {
	ResourceID   uuid.UUID `json:"resourceId" db:"resource_id"`
	Name         string    `json:"name" db:"name"`
	Path         string    `json:"path" db:"path"`
	URL          string    `json:"url" db:"url"`
	MimeType     *string   `json:"mimeType" db:"mime_type"`
	SizeBytes    *int64    `json:"sizeBytes" db:"size_bytes"`
	BookmarkedAt time.Time `json:"bookmarkedAt" db:"bookmarked_at"`
}
