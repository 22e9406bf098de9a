package model

import (
	"time"

	"github.com/google/uuid"
)

// Announcement is an account-independent broadcast record. Read-only
// from this service's perspective.
type Announcement struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Body        string    `json:"body" db:"body"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	PublishedAt time.Time `json:"publishedAt" db:"published_at"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
