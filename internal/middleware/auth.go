package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rxhub/member-portal-api/internal/handler"
	"github.com/rxhub/member-portal-api/internal/provider"
)

// Context keys set by Authenticate.
const (
	ContextAccountID = "account_id"
	ContextEmail     = "account_email"
)

type AuthMiddleware struct {
	provider provider.Provider
}

func NewAuthMiddleware(p provider.Provider) *AuthMiddleware {
	return &AuthMiddleware{provider: p}
}

// Authenticate verifies the bearer session token and sets the account
// identity in the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid authorization format"))
			c.Abort()
			return
		}

		sess, err := m.provider.VerifyToken(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid session"))
			c.Abort()
			return
		}

		c.Set(ContextAccountID, sess.User.ID.String())
		c.Set(ContextEmail, sess.User.Email)
		c.Next()
	}
}
