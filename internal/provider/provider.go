// Package provider implements the session-based authentication
// contract the portal stores are built against: password sign-in,
// sign-out, session retrieval and auth-state-change notifications.
package provider

import (
	"context"
	"errors"

	"github.com/rxhub/member-portal-api/internal/model"
)

// AuthChangeEvent identifies what changed in a notification.
type AuthChangeEvent string

const (
	EventSignedIn  AuthChangeEvent = "SIGNED_IN"
	EventSignedOut AuthChangeEvent = "SIGNED_OUT"
)

// AuthChangeHandler receives every session change. The session is nil
// for sign-out events.
type AuthChangeHandler func(event AuthChangeEvent, session *model.Session)

var (
	// ErrInvalidCredentials is surfaced to callers unchanged; the UI
	// decides how to present it.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNoSession means no live session exists.
	ErrNoSession = errors.New("no active session")
)

// Provider is the authentication provider contract.
type Provider interface {
	// GetSession returns the current session, or (nil, nil) when
	// nobody is signed in.
	GetSession(ctx context.Context) (*model.Session, error)
	// SignInWithPassword verifies credentials and establishes a
	// session, notifying registered handlers.
	SignInWithPassword(ctx context.Context, email, password string) (*model.Session, error)
	// SignOut revokes the current session and notifies handlers.
	SignOut(ctx context.Context) error
	// GetUser returns the current session's user.
	GetUser(ctx context.Context) (*model.AuthUser, error)
	// VerifyToken validates a presented session token independently of
	// the provider's current session. Used by the HTTP auth middleware.
	VerifyToken(ctx context.Context, token string) (*model.Session, error)
	// OnAuthStateChange registers a handler invoked on every session
	// change. Handlers run synchronously in registration order.
	OnAuthStateChange(handler AuthChangeHandler)
}
