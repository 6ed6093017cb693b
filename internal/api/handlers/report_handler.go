package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/muhtegaralfikri/intern-log-system/internal/api/middleware"
	"github.com/muhtegaralfikri/intern-log-system/internal/models"
	"github.com/muhtegaralfikri/intern-log-system/internal/service/reports"
	"github.com/muhtegaralfikri/intern-log-system/pkg/logger"
)

// ReportHandler handles report submission, listing, and review.
type ReportHandler struct {
	service *reports.Service
	log     *logger.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service *reports.Service, log *logger.Logger) *ReportHandler {
	return &ReportHandler{service: service, log: log}
}

type createReportRequest struct {
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content"`
	Type        string `json:"type" binding:"required,oneof=WEEKLY MONTHLY FINAL"`
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
	WithSummary bool   `json:"with_summary"`
}

// Create submits a new report for the caller, optionally with an AI-assisted
// summary of the period's activities.
// POST /api/v1/reports.
func (h *ReportHandler) Create(c *gin.Context) {
	var req createReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	start, err := parseDate(req.PeriodStart)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	end, err := parseDate(req.PeriodEnd)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.service.Create(c.Request.Context(), middleware.UserID(c), reports.CreateInput{
		Title:       req.Title,
		Content:     req.Content,
		Type:        models.ReportType(req.Type),
		PeriodStart: start,
		PeriodEnd:   end,
		WithSummary: req.WithSummary,
	})
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"report": report})
}

// List returns the caller's reports, newest first.
// GET /api/v1/reports?page=1&limit=20.
func (h *ReportHandler) List(c *gin.Context) {
	page, limit, err := parsePagination(c)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	items, total, err := h.service.List(c.Request.Context(), middleware.UserID(c), page, limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list reports")
		errorResponse(c, http.StatusInternalServerError, "failed to list reports")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reports": items,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// Get returns one of the caller's reports.
// GET /api/v1/reports/:id.
func (h *ReportHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.service.Get(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, reports.ErrNotFound) {
			errorResponse(c, http.StatusNotFound, "report not found")
			return
		}
		h.log.Error().Err(err).Uint("report_id", id).Msg("Failed to get report")
		errorResponse(c, http.StatusInternalServerError, "failed to get report")
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// parseApprovedFilter reads the optional approved query parameter.
func parseApprovedFilter(c *gin.Context) (*bool, error) {
	switch c.Query("approved") {
	case "":
		return nil, nil
	case "true":
		v := true
		return &v, nil
	case "false":
		v := false
		return &v, nil
	default:
		return nil, errors.New("invalid approved parameter, expected true or false")
	}
}

// ListForSupervisor returns reports submitted by the caller's interns.
// GET /api/v1/supervisor/reports?approved=false.
func (h *ReportHandler) ListForSupervisor(c *gin.Context) {
	approved, err := parseApprovedFilter(c)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.service.ListForSupervisor(c.Request.Context(), middleware.UserID(c), approved)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list supervised reports")
		errorResponse(c, http.StatusInternalServerError, "failed to list reports")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": items})
}

// ListAll returns all reports across the system.
// GET /api/v1/admin/reports?approved=true&page=1&limit=20.
func (h *ReportHandler) ListAll(c *gin.Context) {
	approved, err := parseApprovedFilter(c)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	page, limit, err := parsePagination(c)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	items, total, err := h.service.ListAll(c.Request.Context(), approved, page, limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list all reports")
		errorResponse(c, http.StatusInternalServerError, "failed to list reports")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reports": items,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

type reviewReportRequest struct {
	Approved *bool  `json:"approved" binding:"required"`
	Note     string `json:"note"`
}

// Review approves or rejects a report with an optional note.
// POST /api/v1/supervisor/reports/:id/review.
func (h *ReportHandler) Review(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	var req reviewReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.service.Review(c.Request.Context(), id, *req.Approved, req.Note)
	if err != nil {
		if errors.Is(err, reports.ErrNotFound) {
			errorResponse(c, http.StatusNotFound, "report not found")
			return
		}
		h.log.Error().Err(err).Uint("report_id", id).Msg("Failed to review report")
		errorResponse(c, http.StatusInternalServerError, "failed to review report")
		return
	}

	h.log.Info().
		Uint("report_id", id).
		Bool("approved", *req.Approved).
		Msg("Report reviewed")

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// SuggestTasks returns AI-assisted task suggestions for the caller.
// GET /api/v1/ai/suggestions.
func (h *ReportHandler) SuggestTasks(c *gin.Context) {
	suggestions, err := h.service.SuggestTasks(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build task suggestions")
		errorResponse(c, http.StatusInternalServerError, "failed to build suggestions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// DailyPrompts returns journaling prompts for today.
// GET /api/v1/ai/prompts.
func (h *ReportHandler) DailyPrompts(c *gin.Context) {
	prompts := h.service.DailyPrompts(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"prompts": prompts})
}

// ReflectionQuestions returns reflection questions based on the caller's
// recent work.
// GET /api/v1/ai/reflection.
func (h *ReportHandler) ReflectionQuestions(c *gin.Context) {
	questions, err := h.service.ReflectionQuestions(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build reflection questions")
		errorResponse(c, http.StatusInternalServerError, "failed to build reflection questions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions})
}
