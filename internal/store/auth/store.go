// Package auth holds the session state store: the single source of
// truth for who is signed in and the hydrated account row. It reacts
// to the provider's auth-change notifications instead of polling.
package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/rxhub/member-portal-api/internal/model"
	"github.com/rxhub/member-portal-api/internal/provider"
	"github.com/rxhub/member-portal-api/internal/repository"
	apperrors "github.com/rxhub/member-portal-api/pkg/errors"
	"github.com/rxhub/member-portal-api/pkg/event"
	"github.com/rxhub/member-portal-api/pkg/logger"
)

// ErrNoAuthenticatedUser is returned by account mutations attempted
// without a resolved user.
var ErrNoAuthenticatedUser = errors.New("no authenticated user")

// Store is the auth state store. Both CheckSession and the
// auth-change handler can mutate it, so every state application is
// guarded by a monotonic generation: a fetch started for an older
// event never overwrites the result of a newer one.
type Store struct {
	provider provider.Provider
	accounts repository.AccountRepository
	bus      *event.Bus
	logger   *logger.Logger

	mu            sync.Mutex
	gen           uint64
	session       *model.Session
	user          *model.AuthUser
	account       *model.Account
	authenticated bool
	initialized   bool
}

// NewStore wires the store and registers the auth-change handler,
// exactly once, with the provider.
func NewStore(p provider.Provider, accounts repository.AccountRepository, bus *event.Bus, log *logger.Logger) *Store {
	s := &Store{
		provider: p,
		accounts: accounts,
		bus:      bus,
		logger:   log.WithComponent("auth_store"),
	}
	p.OnAuthStateChange(s.handleAuthChange)
	return s
}

// CheckSession queries the provider for an existing session at
// startup. With no session it only marks initialization complete; a
// live session hydrates through the same path the change handler
// uses, so there is no duplicate fetch.
func (s *Store) CheckSession(ctx context.Context) error {
	sess, err := s.provider.GetSession(ctx)
	if err != nil {
		s.mu.Lock()
		s.initialized = true
		s.mu.Unlock()
		return err
	}

	if sess == nil {
		s.mu.Lock()
		s.initialized = true
		s.mu.Unlock()
		return nil
	}

	s.applySession(ctx, sess)
	return nil
}

// Login delegates credential verification to the provider. Success
// produces a change notification which hydrates state; failure
// surfaces the provider's error unchanged.
func (s *Store) Login(ctx context.Context, email, password string) (*model.Session, error) {
	return s.provider.SignInWithPassword(ctx, email, password)
}

// Logout signs out through the provider; the resulting change
// notification clears state.
func (s *Store) Logout(ctx context.Context) error {
	return s.provider.SignOut(ctx)
}

// UpdateAccount applies a partial account update scoped to the
// current user and replaces the in-memory account with the stored
// row. Fields left nil in the request are never written.
func (s *Store) UpdateAccount(ctx context.Context, req *model.UpdateAccountRequest) (*model.Account, error) {
	s.mu.Lock()
	user := s.user
	s.mu.Unlock()

	if user == nil {
		return nil, apperrors.Unauthorized(ErrNoAuthenticatedUser)
	}

	account, err := s.accounts.UpdateColumns(ctx, user.ID, req.Columns())
	if err != nil {
		s.logger.Error(err, "failed to update account")
		return nil, err
	}

	s.mu.Lock()
	if s.user != nil && s.user.ID == user.ID {
		s.account = account
	}
	s.mu.Unlock()

	return account, nil
}

func (s *Store) Session() *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *Store) Account() *model.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.account
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

func (s *Store) IsInitialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// handleAuthChange is the process-wide change-notification handler,
// registered once at construction.
func (s *Store) handleAuthChange(_ provider.AuthChangeEvent, sess *model.Session) {
	ctx := context.Background()
	if sess == nil {
		s.resetLoggedOut(ctx, s.bumpGen())
		return
	}
	s.applySession(ctx, sess)
}

// applySession fetches the account row for the session's user and, if
// no newer event has arrived meanwhile, installs the state and
// announces the resolved account. The announce happens after the
// account is installed: profile loading depends on a confirmed
// account id.
func (s *Store) applySession(ctx context.Context, sess *model.Session) {
	gen := s.bumpGen()

	account, err := s.accounts.Get(ctx, sess.User.ID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			// A valid auth session with no matching business row is an
			// orphaned identity. Force a remote sign-out and end up
			// fully logged out.
			s.logger.Warn("session user has no account row, forcing sign-out",
				"user_id", sess.User.ID.String())
			if signOutErr := s.provider.SignOut(ctx); signOutErr != nil {
				s.logger.Error(signOutErr, "forced sign-out failed")
			}
			s.resetLoggedOut(ctx, s.bumpGen())
			return
		}

		s.logger.Error(err, "failed to fetch account for session")
		s.mu.Lock()
		if gen == s.gen {
			s.initialized = true
		}
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	if gen != s.gen {
		// A newer event superseded this fetch; drop the result.
		s.mu.Unlock()
		return
	}
	user := sess.User
	s.session = sess
	s.user = &user
	s.account = account
	s.authenticated = true
	s.initialized = true
	s.mu.Unlock()

	s.bus.Publish(ctx, event.TopicAccountResolved, account)
}

func (s *Store) resetLoggedOut(ctx context.Context, gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.session = nil
	s.user = nil
	s.account = nil
	s.authenticated = false
	s.initialized = true
	s.mu.Unlock()

	s.bus.Publish(ctx, event.TopicSessionCleared, nil)
}

func (s *Store) bumpGen() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}
