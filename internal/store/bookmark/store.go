// Package bookmark holds the bookmark membership store: a local set
// mirroring the active profile's bookmarked resource ids.
package bookmark

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/rxhub/member-portal-api/internal/repository"
	apperrors "github.com/rxhub/member-portal-api/pkg/errors"
	"github.com/rxhub/member-portal-api/pkg/event"
)

type Store struct {
	bookmarks repository.BookmarkRepository

	mu  sync.Mutex
	set map[uuid.UUID]struct{}
}

func NewStore(bookmarks repository.BookmarkRepository, bus *event.Bus) *Store {
	s := &Store{
		bookmarks: bookmarks,
		set:       make(map[uuid.UUID]struct{}),
	}
	if bus != nil {
		bus.Subscribe(event.TopicSessionCleared, func(ctx context.Context, payload interface{}) {
			s.ClearBookmarks()
		})
	}
	return s
}

// LoadBookmarks replaces the local set wholesale with the profile's
// bookmarks. Callers must reload after switching profiles.
func (s *Store) LoadBookmarks(ctx context.Context, profileID uuid.UUID) error {
	ids, err := s.bookmarks.ListResourceIDs(ctx, profileID)
	if err != nil {
		return err
	}

	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	s.mu.Lock()
	s.set = set
	s.mu.Unlock()
	return nil
}

// IsBookmarked is a pure local membership test; it never hits the
// database.
func (s *Store) IsBookmarked(resourceID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.set[resourceID]
	return ok
}

// ToggleBookmark issues the opposite remote operation for the current
// membership and mutates the local set only after the remote call
// succeeds. A failed write leaves the set exactly as it was, so the
// membership test never claims a toggle that did not persist.
// Returns the new membership state.
func (s *Store) ToggleBookmark(ctx context.Context, profileID, resourceID uuid.UUID) (bool, error) {
	s.mu.Lock()
	_, present := s.set[resourceID]
	s.mu.Unlock()

	if present {
		if err := s.bookmarks.Delete(ctx, profileID, resourceID); err != nil && !apperrors.IsNotFound(err) {
			return true, err
		}
		s.mu.Lock()
		delete(s.set, resourceID)
		s.mu.Unlock()
		return false, nil
	}

	if err := s.bookmarks.Insert(ctx, profileID, resourceID); err != nil {
		return false, err
	}
	s.mu.Lock()
	s.set[resourceID] = struct{}{}
	s.mu.Unlock()
	return true, nil
}

// ClearBookmarks resets to an empty set, on logout or before loading
// another profile's bookmarks.
func (s *Store) ClearBookmarks() {
	s.mu.Lock()
	s.set = make(map[uuid.UUID]struct{})
	s.mu.Unlock()
}
