package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/muhtegaralfikri/intern-log-system/internal/api/middleware"
	"github.com/muhtegaralfikri/intern-log-system/internal/models"
	"github.com/muhtegaralfikri/intern-log-system/internal/service/mood"
	"github.com/muhtegaralfikri/intern-log-system/pkg/logger"
)

// MoodHandler handles daily mood tracking requests.
type MoodHandler struct {
	service *mood.Service
	log     *logger.Logger
}

// NewMoodHandler creates a new mood handler.
func NewMoodHandler(service *mood.Service, log *logger.Logger) *MoodHandler {
	return &MoodHandler{service: service, log: log}
}

type recordMoodRequest struct {
	Mood   string `json:"mood" binding:"required"`
	Energy int    `json:"energy" binding:"required"`
	Notes  string `json:"notes"`
}

// Record stores today's mood entry for the caller, replacing any earlier one.
// POST /api/v1/mood.
func (h *MoodHandler) Record(c *gin.Context) {
	var req recordMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.service.Record(c.Request.Context(), middleware.UserID(c), mood.RecordInput{
		Mood:   models.Mood(req.Mood),
		Energy: req.Energy,
		Notes:  req.Notes,
	})
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// Today returns the caller's mood entry for today, if any.
// GET /api/v1/mood/today.
func (h *MoodHandler) Today(c *gin.Context) {
	entry, err := h.service.Today(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load today's mood")
		errorResponse(c, http.StatusInternalServerError, "failed to load mood")
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// List returns the caller's mood history, newest first.
// GET /api/v1/mood?page=1&limit=20.
func (h *MoodHandler) List(c *gin.Context) {
	page, limit, err := parsePagination(c)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	entries, total, err := h.service.List(c.Request.Context(), middleware.UserID(c), page, limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list mood entries")
		errorResponse(c, http.StatusInternalServerError, "failed to list mood entries")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// GetAnalytics returns the caller's mood trend and productivity correlation.
// GET /api/v1/mood/analytics?days=30.
func (h *MoodHandler) GetAnalytics(c *gin.Context) {
	days := 30
	if daysStr := c.Query("days"); daysStr != "" {
		d, err := strconv.Atoi(daysStr)
		if err != nil || d < 1 || d > 365 {
			errorResponse(c, http.StatusBadRequest, "invalid days parameter")
			return
		}
		days = d
	}

	analytics, err := h.service.GetAnalytics(c.Request.Context(), middleware.UserID(c), days)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build mood analytics")
		errorResponse(c, http.StatusInternalServerError, "failed to build mood analytics")
		return
	}

	c.JSON(http.StatusOK, gin.H{"analytics": analytics})
}
