package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rxhub/member-portal-api/internal/handler"
	"github.com/rxhub/member-portal-api/internal/model"
	dashboardservice "github.com/rxhub/member-portal-api/internal/service/dashboard"
	profilestore "github.com/rxhub/member-portal-api/internal/store/profile"
)

type Handler struct {
	service  *dashboardservice.Service
	profiles *profilestore.Store
}

func NewHandler(service *dashboardservice.Service, profiles *profilestore.Store) *Handler {
	return &Handler{service: service, profiles: profiles}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	dashboard := r.Group("/dashboard")
	{
		dashboard.GET("", h.GetDashboard)
		dashboard.GET("/programs", h.GetPrograms)
		dashboard.GET("/announcements", h.GetAnnouncements)
		dashboard.GET("/activity", h.GetRecentActivity)
		dashboard.POST("/activity", h.TrackResourceAccess)
	}
}

// GetDashboard assembles all sections for the current profile. Failed
// sections come back empty and named in the errors list; the response
// is still 200 so one broken query never blanks the whole page.
func (h *Handler) GetDashboard(c *gin.Context) {
	profile, ok := h.currentProfile(c)
	if !ok {
		return
	}

	data, err := h.service.GetDashboard(c.Request.Context(), profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(data))
}

func (h *Handler) GetPrograms(c *gin.Context) {
	programs, err := h.service.GetDashboardPrograms(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(programs))
}

func (h *Handler) GetAnnouncements(c *gin.Context) {
	announcements, err := h.service.GetAnnouncements(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(announcements))
}

func (h *Handler) GetRecentActivity(c *gin.Context) {
	profile, ok := h.currentProfile(c)
	if !ok {
		return
	}

	activity, err := h.service.GetRecentActivity(c.Request.Context(), profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(activity))
}

type trackRequest struct {
	Path string `json:"path" binding:"required"`
}

func (h *Handler) TrackResourceAccess(c *gin.Context) {
	profile, ok := h.currentProfile(c)
	if !ok {
		return
	}

	var req trackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.TrackResourceAccess(c.Request.Context(), profile.ID, req.Path); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": "access recorded"}))
}

func (h *Handler) currentProfile(c *gin.Context) (*model.MemberProfile, bool) {
	profile := h.profiles.CurrentProfile()
	if profile == nil {
		c.JSON(http.StatusConflict, handler.NewErrorResponse("no profile selected"))
		return nil, false
	}
	return profile, true
}
