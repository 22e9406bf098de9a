package training

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rxhub/member-portal-api/internal/handler"
	"github.com/rxhub/member-portal-api/internal/model"
	trainingservice "github.com/rxhub/member-portal-api/internal/service/training"
	profilestore "github.com/rxhub/member-portal-api/internal/store/profile"
)

type Handler struct {
	service  *trainingservice.Service
	profiles *profilestore.Store
}

func NewHandler(service *trainingservice.Service, profiles *profilestore.Store) *Handler {
	return &Handler{service: service, profiles: profiles}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	training := r.Group("/training")
	{
		training.GET("", h.ListProgress)
		training.GET("/:moduleId", h.GetModuleProgress)
		training.POST("/:moduleId/start", h.StartModule)
		training.PUT("/:moduleId", h.UpdateProgress)
		training.POST("/:moduleId/complete", h.CompleteModule)
	}
}

func (h *Handler) ListProgress(c *gin.Context) {
	profile, ok := h.currentProfile(c)
	if !ok {
		return
	}

	progress, err := h.service.ListProgress(c.Request.Context(), profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(progress))
}

// GetModuleProgress answers with data null when the profile has no
// record for the module yet, which is not an error.
func (h *Handler) GetModuleProgress(c *gin.Context) {
	profile, ok := h.currentProfile(c)
	if !ok {
		return
	}

	progress, err := h.service.GetModuleProgress(c.Request.Context(), profile.ID, c.Param("moduleId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(progress))
}

func (h *Handler) StartModule(c *gin.Context) {
	profile, ok := h.currentProfile(c)
	if !ok {
		return
	}

	progress, err := h.service.StartTrainingModule(c.Request.Context(), profile.ID, c.Param("moduleId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(progress))
}

func (h *Handler) UpdateProgress(c *gin.Context) {
	profile, ok := h.currentProfile(c)
	if !ok {
		return
	}

	var req model.UpdateTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	progress, err := h.service.UpdateTrainingProgress(c.Request.Context(), profile.ID, c.Param("moduleId"), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(progress))
}

type completeRequest struct {
	Score *int `json:"score"`
}

func (h *Handler) CompleteModule(c *gin.Context) {
	profile, ok := h.currentProfile(c)
	if !ok {
		return
	}

	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	progress, err := h.service.CompleteTrainingModule(c.Request.Context(), profile.ID, c.Param("moduleId"), req.Score)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(progress))
}

func (h *Handler) currentProfile(c *gin.Context) (*model.MemberProfile, bool) {
	profile := h.profiles.CurrentProfile()
	if profile == nil {
		c.JSON(http.StatusConflict, handler.NewErrorResponse("no profile selected"))
		return nil, false
	}
	return profile, true
}
