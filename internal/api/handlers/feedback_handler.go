package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/muhtegaralfikri/intern-log-system/internal/api/middleware"
	"github.com/muhtegaralfikri/intern-log-system/internal/service/feedback"
	"github.com/muhtegaralfikri/intern-log-system/pkg/logger"
)

// FeedbackHandler handles activity-feedback requests.
type FeedbackHandler struct {
	service *feedback.Service
	log     *logger.Logger
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(service *feedback.Service, log *logger.Logger) *FeedbackHandler {
	return &FeedbackHandler{service: service, log: log}
}

type createFeedbackRequest struct {
	ActivityID uint   `json:"activity_id" binding:"required"`
	ReceiverID uint   `json:"receiver_id"`
	Rating     *int   `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment    string `json:"comment" binding:"required"`
}

// Create leaves feedback on an activity.
// POST /api/v1/feedback.
func (h *FeedbackHandler) Create(c *gin.Context) {
	var req createFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.service.Create(c.Request.Context(), middleware.UserID(c), feedback.CreateInput{
		ActivityID: req.ActivityID,
		ReceiverID: req.ReceiverID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		if errors.Is(err, feedback.ErrActivityNotFound) {
			errorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"feedback": entry})
}

// GetReceived returns feedback addressed to the caller.
// GET /api/v1/feedback/received?page=1&limit=20.
func (h *FeedbackHandler) GetReceived(c *gin.Context) {
	page, limit, err := parsePagination(c)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	entries, total, err := h.service.GetReceived(c.Request.Context(), middleware.UserID(c), page, limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list received feedback")
		errorResponse(c, http.StatusInternalServerError, "failed to list feedback")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"feedback": entries,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// GetGiven returns feedback written by the caller.
// GET /api/v1/feedback/given?page=1&limit=20.
func (h *FeedbackHandler) GetGiven(c *gin.Context) {
	page, limit, err := parsePagination(c)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	entries, total, err := h.service.GetGiven(c.Request.Context(), middleware.UserID(c), page, limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list given feedback")
		errorResponse(c, http.StatusInternalServerError, "failed to list feedback")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"feedback": entries,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// GetStats returns the caller's feedback statistics.
// GET /api/v1/feedback/stats.
func (h *FeedbackHandler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build feedback stats")
		errorResponse(c, http.StatusInternalServerError, "failed to build statistics")
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GetByActivity returns all feedback on one activity.
// GET /api/v1/feedback/activity/:id.
func (h *FeedbackHandler) GetByActivity(c *gin.Context) {
	activityID, err := parseIDParam(c, "id")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.service.GetByActivity(c.Request.Context(), activityID)
	if err != nil {
		h.log.Error().Err(err).Uint("activity_id", activityID).Msg("Failed to list activity feedback")
		errorResponse(c, http.StatusInternalServerError, "failed to list feedback")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"feedback": entries,
		"count":    len(entries),
	})
}

// Delete removes feedback the caller has given.
// DELETE /api/v1/feedback/:id.
func (h *FeedbackHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		switch {
		case errors.Is(err, feedback.ErrNotFound):
			errorResponse(c, http.StatusNotFound, err.Error())
		case errors.Is(err, feedback.ErrNotGiver):
			errorResponse(c, http.StatusForbidden, err.Error())
		default:
			h.log.Error().Err(err).Uint("feedback_id", id).Msg("Failed to delete feedback")
			errorResponse(c, http.StatusInternalServerError, "failed to delete feedback")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
