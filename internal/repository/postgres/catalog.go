package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rxhub/member-portal-api/internal/model"
	"github.com/rxhub/member-portal-api/internal/repository"
	apperrors "github.com/rxhub/member-portal-api/pkg/errors"
)

type catalogRepository struct {
	BaseRepository
}

func NewCatalogRepository(base BaseRepository) repository.CatalogRepository {
	return &catalogRepository{base}
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]model.ProgramCategory, error) {
	query := `
		SELECT category, COUNT(*) AS count
		FROM storage_files_catalog
		GROUP BY category
		ORDER BY category
	`

	var categories []model.ProgramCategory
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("failed to list catalog categories: %w", err)
	}

	return categories, nil
}

func (r *catalogRepository) GetByPath(ctx context.Context, path string) (*model.CatalogFile, error) {
	query := `
		SELECT * FROM storage_files_catalog
		WHERE path = $1
	`

	var file model.CatalogFile
	if err := r.db.GetContext(ctx, &file, query, path); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("catalog file", err)
		}
		return nil, fmt.Errorf("failed to get catalog file by path: %w", err)
	}

	return &file, nil
}

func (r *catalogRepository) Get(ctx context.Context, id uuid.UUID) (*model.CatalogFile, error) {
	query := `
		SELECT * FROM storage_files_catalog
		WHERE id = $1
	`

	var file model.CatalogFile
	if err := r.db.GetContext(ctx, &file, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("catalog file", err)
		}
		return nil, fmt.Errorf("failed to get catalog file: %w", err)
	}

	return &file, nil
}
