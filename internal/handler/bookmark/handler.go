package bookmark

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rxhub/member-portal-api/internal/handler"
	"github.com/rxhub/member-portal-api/internal/model"
	dashboardservice "github.com/rxhub/member-portal-api/internal/service/dashboard"
	bookmarkstore "github.com/rxhub/member-portal-api/internal/store/bookmark"
	profilestore "github.com/rxhub/member-portal-api/internal/store/profile"
	apperrors "github.com/rxhub/member-portal-api/pkg/errors"
)

type Handler struct {
	store     *bookmarkstore.Store
	profiles  *profilestore.Store
	dashboard *dashboardservice.Service
}

func NewHandler(store *bookmarkstore.Store, profiles *profilestore.Store, dashboard *dashboardservice.Service) *Handler {
	return &Handler{store: store, profiles: profiles, dashboard: dashboard}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	bookmarks := r.Group("/bookmarks")
	{
		bookmarks.GET("", h.ListBookmarks)
		bookmarks.POST("/sync", h.SyncBookmarks)
		bookmarks.POST("/toggle", h.ToggleBookmark)
		bookmarks.GET("/status", h.BookmarkStatus)
		bookmarks.POST("", h.AddBookmark)
		bookmarks.DELETE("", h.RemoveBookmark)
	}
}

func (h *Handler) ListBookmarks(c *gin.Context) {
	profile, ok := h.currentProfile(c)
	if !ok {
		return
	}

	resources, err := h.dashboard.GetBookmarkedResources(c.Request.Context(), profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(resources))
}

// SyncBookmarks reloads the local membership set from the database for
// the current profile. Call it after switching profiles.
func (h *Handler) SyncBookmarks(c *gin.Context) {
	profile, ok := h.currentProfile(c)
	if !ok {
		return
	}

	if err := h.store.LoadBookmarks(c.Request.Context(), profile.ID); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": "bookmarks loaded"}))
}

type toggleRequest struct {
	ResourceID string `json:"resourceId" binding:"required,uuid"`
}

func (h *Handler) ToggleBookmark(c *gin.Context) {
	profile, ok := h.currentProfile(c)
	if !ok {
		return
	}

	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	resourceID, err := uuid.Parse(req.ResourceID)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid resource ID"))
		return
	}

	bookmarked, err := h.store.ToggleBookmark(c.Request.Context(), profile.ID, resourceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"bookmarked": bookmarked}))
}

// BookmarkStatus answers a membership check either by resource id
// (local set, no database hit) or by catalog path.
func (h *Handler) BookmarkStatus(c *gin.Context) {
	if raw := c.Query("resourceId"); raw != "" {
		resourceID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid resource ID"))
			return
		}
		c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"bookmarked": h.store.IsBookmarked(resourceID)}))
		return
	}

	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("resourceId or path is required"))
		return
	}

	profile, ok := h.currentProfile(c)
	if !ok {
		return
	}

	bookmarked, err := h.dashboard.IsBookmarked(c.Request.Context(), profile.ID, path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"bookmarked": bookmarked}))
}

type pathRequest struct {
	Path string `json:"path" binding:"required"`
}

func (h *Handler) AddBookmark(c *gin.Context) {
	profile, ok := h.currentProfile(c)
	if !ok {
		return
	}

	var req pathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.dashboard.AddBookmark(c.Request.Context(), profile.ID, req.Path); err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(gin.H{"message": "bookmark added"}))
}

func (h *Handler) RemoveBookmark(c *gin.Context) {
	profile, ok := h.currentProfile(c)
	if !ok {
		return
	}

	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("path is required"))
		return
	}

	if err := h.dashboard.RemoveBookmark(c.Request.Context(), profile.ID, path); err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": "bookmark removed"}))
}

func (h *Handler) currentProfile(c *gin.Context) (*model.MemberProfile, bool) {
	profile := h.profiles.CurrentProfile()
	if profile == nil {
		c.JSON(http.StatusConflict, handler.NewErrorResponse("no profile selected"))
		return nil, false
	}
	return profile, true
}
