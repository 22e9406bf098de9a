package account

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rxhub/member-portal-api/internal/handler"
	"github.com/rxhub/member-portal-api/internal/model"
	authstore "github.com/rxhub/member-portal-api/internal/store/auth"
	apperrors "github.com/rxhub/member-portal-api/pkg/errors"
)

type Handler struct {
	store *authstore.Store
}

func NewHandler(store *authstore.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	account := r.Group("/account")
	{
		account.GET("", h.GetAccount)
		account.PATCH("", h.UpdateAccount)
	}
}

func (h *Handler) GetAccount(c *gin.Context) {
	account := h.store.Account()
	if account == nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("no authenticated user"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(account))
}

func (h *Handler) UpdateAccount(c *gin.Context) {
	var req model.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	account, err := h.store.UpdateAccount(c.Request.Context(), &req)
	if err != nil {
		switch apperrors.CodeOf(err) {
		case apperrors.ErrUnauthorized:
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse(err.Error()))
		case apperrors.ErrNotFound:
			c.JSON(http.StatusNotFound, handler.NewErrorResponse(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(account))
}
