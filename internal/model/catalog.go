package model

import (
	"time"

	"github.com/google/uuid"
)

// CatalogFile is one row of the storage file catalog: a downloadable
// or streamable resource exposed to members. The catalog is maintained
// by an external ingestion job; this service only reads it.
type CatalogFile struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Path      string    `json:"path" db:"path"`
	Name      string    `json:"name" db:"name"`
	URL       string    `json:"url" db:"url"`
	Category  string    `json:"category" db:"category"`
	MimeType  *string   `json:"mimeType" db:"mime_type"`
	SizeBytes *int64    `json:"sizeBytes" db:"size_bytes"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ProgramCategory is an aggregated catalog category used by the
// dashboard program list.
type ProgramCategory struct {
	Slug  string `json:"slug" db:"category"`
	Count int    `json:"count" db:"count"`
}

// DashboardProgram decorates a program category with its display icon.
type DashboardProgram struct {
	Slug          string `json:"slug"`
	Icon          string `json:"icon"`
	ResourceCount int    `json:"resourceCount"`
}
