// Package dashboard provides the stateless per-profile dashboard
// queries. Each function is independently callable and independently
// failable; GetDashboard fans them out in parallel and leaves the
// partial-failure decision to the caller.
package dashboard

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rxhub/member-portal-api/internal/model"
	"github.com/rxhub/member-portal-api/internal/repository"
	apperrors "github.com/rxhub/member-portal-api/pkg/errors"
	"github.com/rxhub/member-portal-api/pkg/logger"
)

const (
	recentActivityLimit = 10
	announcementLimit   = 5
	defaultIcon         = "folder"
)

// programIcons maps program slugs to display icon identifiers.
var programIcons = map[string]string{
	"clinical-resources": "stethoscope",
	"compliance":         "shield-check",
	"immunizations":      "syringe",
	"medication-therapy": "pill",
	"patient-counseling": "messages-square",
	"point-of-care":      "test-tube",
	"training":           "graduation-cap",
	"usp-797":            "flask-conical",
	"usp-800":            "biohazard",
}

type Service struct {
	catalog       repository.CatalogRepository
	activity      repository.ActivityRepository
	announcements repository.AnnouncementRepository
	bookmarks     repository.BookmarkRepository
	logger        *logger.Logger
}

func NewService(
	catalog repository.CatalogRepository,
	activity repository.ActivityRepository,
	announcements repository.AnnouncementRepository,
	bookmarks repository.BookmarkRepository,
	log *logger.Logger,
) *Service {
	return &Service{
		catalog:       catalog,
		activity:      activity,
		announcements: announcements,
		bookmarks:     bookmarks,
		logger:        log.WithComponent("dashboard"),
	}
}

// GetDashboardPrograms lists catalog program categories decorated with
// display icons. Unmapped slugs get the default icon.
func (s *Service) GetDashboardPrograms(ctx context.Context) ([]model.DashboardProgram, error) {
	categories, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	programs := make([]model.DashboardProgram, 0, len(categories))
	for _, c := range categories {
		icon, ok := programIcons[c.Slug]
		if !ok {
			icon = defaultIcon
		}
		programs = append(programs, model.DashboardProgram{
			Slug:          c.Slug,
			Icon:          icon,
			ResourceCount: c.Count,
		})
	}
	return programs, nil
}

// GetRecentActivity returns the profile's most recent access records,
// newest first.
func (s *Service) GetRecentActivity(ctx context.Context, profileID uuid.UUID) ([]model.ActivityItem, error) {
	return s.activity.ListRecent(ctx, profileID, recentActivityLimit)
}

// GetAnnouncements returns the latest active announcements.
func (s *Service) GetAnnouncements(ctx context.Context) ([]model.Announcement, error) {
	return s.announcements.ListRecent(ctx, announcementLimit)
}

// GetBookmarkedResources returns the profile's bookmarks joined with
// catalog metadata, display-ready.
func (s *Service) GetBookmarkedResources(ctx context.Context, profileID uuid.UUID) ([]model.BookmarkedResource, error) {
	return s.bookmarks.ListResources(ctx, profileID)
}

// TrackResourceAccess upserts an access record for the resource at
// the given catalog path. A write failure is logged and returned,
// never swallowed: the caller decides whether to retry or ignore.
func (s *Service) TrackResourceAccess(ctx context.Context, profileID uuid.UUID, path string) error {
	file, err := s.catalog.GetByPath(ctx, path)
	if err != nil {
		s.logger.Error(err, "failed to resolve resource for activity tracking", "path", path)
		return err
	}

	if err := s.activity.Upsert(ctx, profileID, file.ID); err != nil {
		s.logger.Error(err, "failed to track resource access", "path", path)
		return err
	}
	return nil
}

// AddBookmark bookmarks the resource at the given catalog path. An
// unresolvable path is an error on the write path.
func (s *Service) AddBookmark(ctx context.Context, profileID uuid.UUID, path string) error {
	file, err := s.catalog.GetByPath(ctx, path)
	if err != nil {
		return err
	}
	if err := s.bookmarks.Insert(ctx, profileID, file.ID); err != nil {
		s.logger.Error(err, "failed to add bookmark", "path", path)
		return err
	}
	return nil
}

// RemoveBookmark removes the bookmark for the resource at the given
// catalog path. An unresolvable path is an error on the write path.
func (s *Service) RemoveBookmark(ctx context.Context, profileID uuid.UUID, path string) error {
	file, err := s.catalog.GetByPath(ctx, path)
	if err != nil {
		return err
	}
	if err := s.bookmarks.Delete(ctx, profileID, file.ID); err != nil {
		s.logger.Error(err, "failed to remove bookmark", "path", path)
		return err
	}
	return nil
}

// IsBookmarked reports whether the profile has bookmarked the
// resource at the given path. A path missing from the catalog reads
// as "not bookmarked": membership checks fail open so a stale link
// never blocks the UI.
func (s *Service) IsBookmarked(ctx context.Context, profileID uuid.UUID, path string) (bool, error) {
	file, err := s.catalog.GetByPath(ctx, path)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return s.bookmarks.Exists(ctx, profileID, file.ID)
}

// GetDashboard fetches the four dashboard sections in parallel. The
// sections race independently: a failed section leaves its slice nil
// and is named in Errors, everything else still comes back.
func (s *Service) GetDashboard(ctx context.Context, profileID uuid.UUID) (*model.DashboardData, error) {
	var (
		data model.DashboardData
		mu   sync.Mutex
	)

	fail := func(section string, err error) {
		s.logger.Error(err, "dashboard section failed", "section", section)
		mu.Lock()
		data.Errors = append(data.Errors, section)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		programs, err := s.GetDashboardPrograms(gctx)
		if err != nil {
			fail("programs", err)
			return nil
		}
		data.Programs = programs
		return nil
	})
	g.Go(func() error {
		activity, err := s.GetRecentActivity(gctx, profileID)
		if err != nil {
			fail("recentActivity", err)
			return nil
		}
		data.Activity = activity
		return nil
	})
	g.Go(func() error {
		announcements, err := s.GetAnnouncements(gctx)
		if err != nil {
			fail("announcements", err)
			return nil
		}
		data.Announcements = announcements
		return nil
	})
	g.Go(func() error {
		bookmarks, err := s.GetBookmarkedResources(gctx, profileID)
		if err != nil {
			fail("bookmarks", err)
			return nil
		}
		data.Bookmarks = bookmarks
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}
