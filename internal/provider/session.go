package provider

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/rxhub/member-portal-api/internal/model"
	"github.com/rxhub/member-portal-api/internal/repository"
	"github.com/rxhub/member-portal-api/pkg/logger"
)

const sessionKeyPrefix = "portal:session:"

// Config holds session provider settings.
type Config struct {
	Secret string
	TTL    time.Duration
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// SessionProvider implements Provider with bcrypt credential checks,
// signed session tokens and a Redis record per live session so
// sign-out revokes the token immediately.
type SessionProvider struct {
	accounts repository.AccountRepository
	rdb      *redis.Client
	cfg      Config
	logger   *logger.Logger

	mu       sync.Mutex
	current  *model.Session
	handlers []AuthChangeHandler
}

func NewSessionProvider(accounts repository.AccountRepository, rdb *redis.Client, cfg Config, logger *logger.Logger) *SessionProvider {
	return &SessionProvider{
		accounts: accounts,
		rdb:      rdb,
		cfg:      cfg,
		logger:   logger.WithComponent("session_provider"),
	}
}

func (p *SessionProvider) OnAuthStateChange(handler AuthChangeHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers = append(p.handlers, handler)
}

func (p *SessionProvider) GetSession(ctx context.Context) (*model.Session, error) {
	p.mu.Lock()
	sess := p.current
	p.mu.Unlock()

	if sess == nil {
		return nil, nil
	}

	// The Redis record is the source of truth: a revoked or expired
	// session must not be reported as live.
	live, err := p.sessionLive(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	if !live {
		p.mu.Lock()
		if p.current != nil && p.current.ID == sess.ID {
			p.current = nil
		}
		p.mu.Unlock()
		return nil, nil
	}

	return sess, nil
}

func (p *SessionProvider) SignInWithPassword(ctx context.Context, email, password string) (*model.Session, error) {
	account, err := p.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	sess, err := p.createSession(ctx, account)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.current = sess
	p.mu.Unlock()

	p.notify(EventSignedIn, sess)
	return sess, nil
}

func (p *SessionProvider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	sess := p.current
	p.current = nil
	p.mu.Unlock()

	if sess == nil {
		return nil
	}

	if err := p.rdb.Del(ctx, sessionKeyPrefix+sess.ID.String()).Err(); err != nil {
		p.logger.Error(err, "failed to revoke session record")
	}

	p.notify(EventSignedOut, nil)
	return nil
}

func (p *SessionProvider) GetUser(ctx context.Context) (*model.AuthUser, error) {
	sess, err := p.GetSession(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNoSession
	}

	user := sess.User
	return &user, nil
}

func (p *SessionProvider) VerifyToken(ctx context.Context, token string) (*model.Session, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(p.cfg.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid session claims")
	}

	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session id in token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid user id in token")
	}

	live, err := p.sessionLive(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !live {
		return nil, ErrNoSession
	}

	return &model.Session{
		ID:        sessionID,
		Token:     token,
		User:      model.AuthUser{ID: userID, Email: claims.Email},
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (p *SessionProvider) createSession(ctx context.Context, account *model.Account) (*model.Session, error) {
	sessionID := uuid.New()
	expiresAt := time.Now().Add(p.cfg.TTL)

	claims := sessionClaims{
		SessionID: sessionID.String(),
		Email:     account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(p.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	key := sessionKeyPrefix + sessionID.String()
	if err := p.rdb.Set(ctx, key, account.ID.String(), p.cfg.TTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to store session record: %w", err)
	}

	return &model.Session{
		ID:        sessionID,
		Token:     token,
		User:      model.AuthUser{ID: account.ID, Email: account.Email},
		ExpiresAt: expiresAt,
	}, nil
}

func (p *SessionProvider) sessionLive(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	n, err := p.rdb.Exists(ctx, sessionKeyPrefix+sessionID.String()).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session record: %w", err)
	}
	return n > 0, nil
}

// notify dispatches outside the provider lock so handlers can call
// back into the provider (a missing account row forces a SignOut from
// inside the handler).
func (p *SessionProvider) notify(event AuthChangeEvent, sess *model.Session) {
	p.mu.Lock()
	handlers := make([]AuthChangeHandler, len(p.handlers))
	copy(handlers, p.handlers)
	p.mu.Unlock()

	for _, h := range handlers {
		h(event, sess)
	}
}
