// Package profile holds the profile state store: which team member is
// acting in the session, plus the roster of selectable profiles.
package profile

import (
	"context"
	"sync"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/rxhub/member-portal-api/internal/model"
	"github.com/rxhub/member-portal-api/internal/repository"
	apperrors "github.com/rxhub/member-portal-api/pkg/errors"
	"github.com/rxhub/member-portal-api/pkg/event"
	"github.com/rxhub/member-portal-api/pkg/logger"
)

// currentProfileCacheKey stores the full serialized profile, not just
// its id, so a restart within the session restores the selection
// without a round-trip.
const currentProfileCacheKey = "portal:current_profile"

type Store struct {
	profiles repository.ProfileRepository
	cache    *gocache.Cache
	logger   *logger.Logger

	mu      sync.Mutex
	current *model.MemberProfile
	roster  []*model.MemberProfile
}

// NewStore builds the store, restores any cached selection and
// subscribes to the auth store's session events.
func NewStore(profiles repository.ProfileRepository, cache *gocache.Cache, bus *event.Bus, log *logger.Logger) *Store {
	s := &Store{
		profiles: profiles,
		cache:    cache,
		logger:   log.WithComponent("profile_store"),
	}

	if v, ok := cache.Get(currentProfileCacheKey); ok {
		if p, ok := v.(*model.MemberProfile); ok {
			s.current = p
		}
	}

	if bus != nil {
		bus.Subscribe(event.TopicAccountResolved, func(ctx context.Context, payload interface{}) {
			account, ok := payload.(*model.Account)
			if !ok {
				return
			}
			if err := s.LoadProfilesAndSetDefault(ctx, account.ID); err != nil {
				s.logger.Error(err, "failed to load profiles for account",
					"account_id", account.ID.String())
			}
		})
		bus.Subscribe(event.TopicSessionCleared, func(ctx context.Context, payload interface{}) {
			s.ClearProfile()
		})
	}

	return s
}

// LoadProfilesAndSetDefault replaces the roster with the account's
// active profiles (creation order) and ensures the current selection
// is valid: no selection, or a selection missing from the fresh list,
// falls back to the first profile.
func (s *Store) LoadProfilesAndSetDefault(ctx context.Context, accountID uuid.UUID) error {
	roster, err := s.profiles.ListActive(ctx, accountID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.roster = roster

	if s.current != nil {
		for _, p := range roster {
			if p.ID == s.current.ID {
				// Refresh the selection with the fetched copy.
				s.setCurrentLocked(p)
				return nil
			}
		}
	}

	if len(roster) > 0 {
		s.setCurrentLocked(roster[0])
	} else {
		s.clearCurrentLocked()
	}
	return nil
}

// SetCurrentProfile selects a profile and persists the full object in
// the session-scoped cache.
func (s *Store) SetCurrentProfile(p *model.MemberProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCurrentLocked(p)
}

// ClearProfile drops the selection, the roster and the cached copy.
// Called on logout.
func (s *Store) ClearProfile() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roster = nil
	s.clearCurrentLocked()
}

// RefreshCurrentProfile re-fetches just the selected profile, used
// after an edit. No-op when nothing is selected; a deleted profile
// invalidates the selection.
func (s *Store) RefreshCurrentProfile(ctx context.Context) error {
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()

	if current == nil {
		return nil
	}

	fresh, err := s.profiles.Get(ctx, current.ID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.mu.Lock()
			s.clearCurrentLocked()
			s.mu.Unlock()
			return nil
		}
		return err
	}

	s.mu.Lock()
	if s.current != nil && s.current.ID == fresh.ID {
		s.setCurrentLocked(fresh)
		for i, p := range s.roster {
			if p.ID == fresh.ID {
				s.roster[i] = fresh
			}
		}
	}
	s.mu.Unlock()
	return nil
}

// CurrentProfile returns the selected profile, or nil.
func (s *Store) CurrentProfile() *model.MemberProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Profiles returns the loaded roster.
func (s *Store) Profiles() []*model.MemberProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	roster := make([]*model.MemberProfile, len(s.roster))
	copy(roster, s.roster)
	return roster
}

func (s *Store) setCurrentLocked(p *model.MemberProfile) {
	s.current = p
	s.cache.Set(currentProfileCacheKey, p, gocache.DefaultExpiration)
}

func (s *Store) clearCurrentLocked() {
	s.current = nil
	s.cache.Delete(currentProfileCacheKey)
}
