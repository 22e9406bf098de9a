package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/rxhub/member-portal-api/internal/model"
	"github.com/rxhub/member-portal-api/internal/provider"
)

type stubProvider struct {
	session *model.Session
}

func (p *stubProvider) GetSession(ctx context.Context) (*model.Session, error) { return nil, nil }

func (p *stubProvider) SignInWithPassword(ctx context.Context, email, password string) (*model.Session, error) {
	return nil, provider.ErrInvalidCredentials
}

func (p *stubProvider) SignOut(ctx context.Context) error { return nil }

func (p *stubProvider) GetUser(ctx context.Context) (*model.AuthUser, error) {
	return nil, provider.ErrNoSession
}

func (p *stubProvider) VerifyToken(ctx context.Context, token string) (*model.Session, error) {
	if p.session == nil || p.session.Token != token {
		return nil, errors.New("invalid token")
	}
	return p.session, nil
}

func (p *stubProvider) OnAuthStateChange(h provider.AuthChangeHandler) {}

func runAuth(t *testing.T, p provider.Provider, header string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		c.Request.Header.Set("Authorization", header)
	}

	NewAuthMiddleware(p).Authenticate()(c)
	return w, c
}

func TestAuthenticateMissingHeader(t *testing.T) {
	w, c := runAuth(t, &stubProvider{}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	w, c := runAuth(t, &stubProvider{}, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
}

func TestAuthenticateInvalidToken(t *testing.T) {
	w, c := runAuth(t, &stubProvider{}, "Bearer bogus")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
}

func TestAuthenticateSetsIdentity(t *testing.T) {
	accountID := uuid.New()
	p := &stubProvider{session: &model.Session{
		ID:    uuid.New(),
		Token: "good-token",
		User:  model.AuthUser{ID: accountID, Email: "pic@rxhub.test"},
	}}

	w, c := runAuth(t, p, "Bearer good-token")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, c.IsAborted())
	assert.Equal(t, accountID.String(), c.GetString(ContextAccountID))
	assert.Equal(t, "pic@rxhub.test", c.GetString(ContextEmail))
}
