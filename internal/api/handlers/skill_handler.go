package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/muhtegaralfikri/intern-log-system/internal/api/middleware"
	"github.com/muhtegaralfikri/intern-log-system/internal/service/skills"
	"github.com/muhtegaralfikri/intern-log-system/pkg/logger"
)

// SkillHandler handles skill catalog and progress requests.
type SkillHandler struct {
	service *skills.Service
	log     *logger.Logger
}

// NewSkillHandler creates a new skill handler.
func NewSkillHandler(service *skills.Service, log *logger.Logger) *SkillHandler {
	return &SkillHandler{service: service, log: log}
}

// ListSkills returns the skill catalog.
// GET /api/v1/skills.
func (h *SkillHandler) ListSkills(c *gin.Context) {
	items, err := h.service.ListSkills(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list skills")
		errorResponse(c, http.StatusInternalServerError, "failed to list skills")
		return
	}

	c.JSON(http.StatusOK, gin.H{"skills": items})
}

type createSkillRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
}

// CreateSkill adds a skill to the catalog.
// POST /api/v1/admin/skills.
func (h *SkillHandler) CreateSkill(c *gin.Context) {
	var req createSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	skill, err := h.service.CreateSkill(c.Request.Context(), req.Name, req.Category)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"skill": skill})
}

type addHoursRequest struct {
	Hours int `json:"hours" binding:"required,gt=0"`
}

// AddHours accrues practice hours on a skill for the caller.
// POST /api/v1/skills/:id/hours.
func (h *SkillHandler) AddHours(c *gin.Context) {
	skillID, err := parseIDParam(c, "id")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	var req addHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	userSkill, err := h.service.AddHours(c.Request.Context(), middleware.UserID(c), skillID, req.Hours)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_skill": userSkill})
}

// GetProgress returns the caller's per-skill progress.
// GET /api/v1/skills/progress.
func (h *SkillHandler) GetProgress(c *gin.Context) {
	progress, err := h.service.GetProgress(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load skill progress")
		errorResponse(c, http.StatusInternalServerError, "failed to load skill progress")
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

// GetAnalytics returns the caller's skill analytics (category totals, radar).
// GET /api/v1/skills/analytics.
func (h *SkillHandler) GetAnalytics(c *gin.Context) {
	analytics, err := h.service.GetAnalytics(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build skill analytics")
		errorResponse(c, http.StatusInternalServerError, "failed to build skill analytics")
		return
	}

	c.JSON(http.StatusOK, gin.H{"analytics": analytics})
}
