package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rxhub/member-portal-api/internal/handler"
	"github.com/rxhub/member-portal-api/internal/model"
	"github.com/rxhub/member-portal-api/internal/provider"
	authstore "github.com/rxhub/member-portal-api/internal/store/auth"
)

type Handler struct {
	store *authstore.Store
}

func NewHandler(store *authstore.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/session", h.GetSession)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	sess, err := h.store.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, provider.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(model.LoginResponse{
		Session: sess,
		Account: h.store.Account(),
	}))
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.store.Logout(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": "signed out"}))
}

func (h *Handler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"session":         h.store.Session(),
		"account":         h.store.Account(),
		"isAuthenticated": h.store.IsAuthenticated(),
		"isInitialized":   h.store.IsInitialized(),
	}))
}
