package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/muhtegaralfikri/intern-log-system/internal/api/middleware"
	"github.com/muhtegaralfikri/intern-log-system/internal/service/activities"
	"github.com/muhtegaralfikri/intern-log-system/pkg/logger"
)

// ActivityHandler handles daily activity log requests.
type ActivityHandler struct {
	service *activities.Service
	log     *logger.Logger
}

// NewActivityHandler creates a new activity handler.
func NewActivityHandler(service *activities.Service, log *logger.Logger) *ActivityHandler {
	return &ActivityHandler{service: service, log: log}
}

type createActivityRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Duration    int    `json:"duration" binding:"required,gt=0"`
	Date        string `json:"date"`
}

// Create logs a new activity for the caller.
// POST /api/v1/activities.
func (h *ActivityHandler) Create(c *gin.Context) {
	var req createActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		date = parsed
	}

	activity, err := h.service.Create(c.Request.Context(), middleware.UserID(c), activities.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Duration:    req.Duration,
		Date:        date,
	})
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"activity": activity})
}

// List returns the caller's activities, newest first.
// GET /api/v1/activities?page=1&limit=20.
func (h *ActivityHandler) List(c *gin.Context) {
	page, limit, err := parsePagination(c)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	items, total, err := h.service.List(c.Request.Context(), middleware.UserID(c), page, limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list activities")
		errorResponse(c, http.StatusInternalServerError, "failed to list activities")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activities": items,
		"total":      total,
		"page":       page,
		"limit":      limit,
	})
}

// Get returns one of the caller's activities.
// GET /api/v1/activities/:id.
func (h *ActivityHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	activity, err := h.service.Get(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, activities.ErrNotFound) {
			errorResponse(c, http.StatusNotFound, "activity not found")
			return
		}
		h.log.Error().Err(err).Uint("activity_id", id).Msg("Failed to get activity")
		errorResponse(c, http.StatusInternalServerError, "failed to get activity")
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": activity})
}

// Delete removes one of the caller's activities.
// DELETE /api/v1/activities/:id.
func (h *ActivityHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		if errors.Is(err, activities.ErrNotFound) {
			errorResponse(c, http.StatusNotFound, "activity not found")
			return
		}
		h.log.Error().Err(err).Uint("activity_id", id).Msg("Failed to delete activity")
		errorResponse(c, http.StatusInternalServerError, "failed to delete activity")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "activity deleted"})
}
