package profile

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rxhub/member-portal-api/internal/handler"
	"github.com/rxhub/member-portal-api/internal/middleware"
	"github.com/rxhub/member-portal-api/internal/model"
	profileservice "github.com/rxhub/member-portal-api/internal/service/profile"
	profilestore "github.com/rxhub/member-portal-api/internal/store/profile"
	apperrors "github.com/rxhub/member-portal-api/pkg/errors"
)

type Handler struct {
	service *profileservice.Service
	store   *profilestore.Store
}

func NewHandler(service *profileservice.Service, store *profilestore.Store) *Handler {
	return &Handler{service: service, store: store}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	profiles := r.Group("/profiles")
	{
		profiles.GET("", h.ListProfiles)
		profiles.POST("", h.CreateProfile)
		profiles.GET("/current", h.GetCurrentProfile)
		profiles.PUT("/current", h.SetCurrentProfile)
		profiles.POST("/current/refresh", h.RefreshCurrentProfile)
		profiles.PUT("/:id", h.UpdateProfile)
		profiles.POST("/:id/deactivate", h.DeactivateProfile)
		profiles.DELETE("/:id", h.DeleteProfile)
	}
}

func (h *Handler) ListProfiles(c *gin.Context) {
	accountID, ok := requireAccountID(c)
	if !ok {
		return
	}

	profiles, err := h.service.ListProfiles(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(profiles))
}

func (h *Handler) CreateProfile(c *gin.Context) {
	accountID, ok := requireAccountID(c)
	if !ok {
		return
	}

	var req model.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	profile, err := h.service.CreateProfile(c.Request.Context(), accountID, &req)
	if err != nil {
		if apperrors.CodeOf(err) == apperrors.ErrBadRequest {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	// Keep the roster in sync with the new member.
	if err := h.store.LoadProfilesAndSetDefault(c.Request.Context(), accountID); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(profile))
}

func (h *Handler) GetCurrentProfile(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"currentProfile": h.store.CurrentProfile(),
		"profiles":       h.store.Profiles(),
	}))
}

type setCurrentRequest struct {
	ProfileID string `json:"profileId" binding:"required,uuid"`
}

func (h *Handler) SetCurrentProfile(c *gin.Context) {
	accountID, ok := requireAccountID(c)
	if !ok {
		return
	}

	var req setCurrentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	profileID, err := uuid.Parse(req.ProfileID)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid profile ID"))
		return
	}

	profile, ok := h.ownedProfile(c, accountID, profileID)
	if !ok {
		return
	}

	h.store.SetCurrentProfile(profile)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(profile))
}

func (h *Handler) RefreshCurrentProfile(c *gin.Context) {
	if err := h.store.RefreshCurrentProfile(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.store.CurrentProfile()))
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	accountID, ok := requireAccountID(c)
	if !ok {
		return
	}

	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid profile ID"))
		return
	}

	if _, ok := h.ownedProfile(c, accountID, profileID); !ok {
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), profileID, &req)
	if err != nil {
		switch apperrors.CodeOf(err) {
		case apperrors.ErrBadRequest:
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		case apperrors.ErrNotFound:
			c.JSON(http.StatusNotFound, handler.NewErrorResponse(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		}
		return
	}

	// An edit of the selected profile must be visible immediately.
	if err := h.store.RefreshCurrentProfile(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(profile))
}

func (h *Handler) DeactivateProfile(c *gin.Context) {
	h.removeProfile(c, h.service.DeactivateProfile)
}

func (h *Handler) DeleteProfile(c *gin.Context) {
	h.removeProfile(c, h.service.DeleteProfile)
}

func (h *Handler) removeProfile(c *gin.Context, remove func(ctx context.Context, id uuid.UUID) error) {
	accountID, ok := requireAccountID(c)
	if !ok {
		return
	}

	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid profile ID"))
		return
	}

	if _, ok := h.ownedProfile(c, accountID, profileID); !ok {
		return
	}

	if err := remove(c.Request.Context(), profileID); err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	// Reload so a removed current profile falls back to a default.
	if err := h.store.LoadProfilesAndSetDefault(c.Request.Context(), accountID); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": "profile removed"}))
}

// ownedProfile fetches the profile and rejects ids that belong to a
// different account.
func (h *Handler) ownedProfile(c *gin.Context, accountID, profileID uuid.UUID) (*model.MemberProfile, bool) {
	profile, err := h.service.GetProfile(c.Request.Context(), profileID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse(err.Error()))
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return nil, false
	}
	if profile.AccountID != accountID {
		c.JSON(http.StatusForbidden, handler.NewErrorResponse("profile does not belong to this account"))
		return nil, false
	}
	return profile, true
}

func requireAccountID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(middleware.ContextAccountID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid account ID"))
		return uuid.Nil, false
	}
	return id, true
}
