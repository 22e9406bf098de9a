package model

import (
	"time"

	"github.com/google/uuid"
)

// RecentActivity records a profile's access to a catalog resource.
// Unique per (profile_id, resource_id): repeat access refreshes the
// timestamp instead of inserting a duplicate row.
type RecentActivity struct {
	ID         uuid.UUID `json:"id" db:"id"`
	ProfileID  uuid.UUID `json:"profileId" db:"profile_id"`
	ResourceID uuid.UUID `json:"resourceId" db:"resource_id"`
	AccessedAt time.Time `json:"accessedAt" db:"accessed_at"`
}

// ActivityItem is an activity row joined with catalog metadata for the
// dashboard recent-activity widget.
type ActivityItem struct {
	ResourceID uuid.UUID `json:"resourceId" db:"resource_id"`
	Name       string    `json:"name" db:"name"`
	Path       string    `json:"path" db:"path"`
	URL        string    `json:"url" db:"url"`
	AccessedAt time.Time `json:"accessedAt" db:"accessed_at"`
}
