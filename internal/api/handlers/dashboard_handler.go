package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/muhtegaralfikri/intern-log-system/internal/api/middleware"
	"github.com/muhtegaralfikri/intern-log-system/internal/models"
	"github.com/muhtegaralfikri/intern-log-system/internal/service/stats"
	"github.com/muhtegaralfikri/intern-log-system/pkg/logger"
)

// DashboardHandler handles role-specific dashboard requests.
type DashboardHandler struct {
	service *stats.Service
	log     *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service *stats.Service, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{service: service, log: log}
}

// GetInternDashboard returns the caller's personal dashboard.
// GET /api/v1/dashboard.
func (h *DashboardHandler) GetInternDashboard(c *gin.Context) {
	dashboard, err := h.service.GetInternDashboard(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build intern dashboard")
		errorResponse(c, http.StatusInternalServerError, "failed to build dashboard")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dashboard":    dashboard,
		"generated_at": time.Now().UTC(),
	})
}

// GetSupervisorStats returns aggregate statistics over the caller's interns.
// GET /api/v1/supervisor/stats.
func (h *DashboardHandler) GetSupervisorStats(c *gin.Context) {
	supervisorStats, err := h.service.GetSupervisorStats(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build supervisor stats")
		errorResponse(c, http.StatusInternalServerError, "failed to build statistics")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":        supervisorStats,
		"generated_at": time.Now().UTC(),
	})
}

// GetInterns lists the interns assigned to the calling supervisor.
// GET /api/v1/supervisor/interns.
func (h *DashboardHandler) GetInterns(c *gin.Context) {
	interns, err := h.service.ListInterns(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list interns")
		errorResponse(c, http.StatusInternalServerError, "failed to list interns")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"interns": interns,
		"count":   len(interns),
	})
}

// GetInternDetail returns a single intern's dashboard for their supervisor.
// GET /api/v1/supervisor/interns/:id.
func (h *DashboardHandler) GetInternDetail(c *gin.Context) {
	internID, err := parseIDParam(c, "id")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid intern ID")
		return
	}

	dashboard, err := h.service.GetInternDetail(c.Request.Context(), middleware.UserID(c), internID)
	if err != nil {
		if errors.Is(err, stats.ErrNotSupervised) || errors.Is(err, gorm.ErrRecordNotFound) {
			errorResponse(c, http.StatusNotFound, "intern not found")
			return
		}
		h.log.Error().Err(err).Uint("intern_id", internID).Msg("Failed to build intern detail")
		errorResponse(c, http.StatusInternalServerError, "failed to build dashboard")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dashboard":    dashboard,
		"generated_at": time.Now().UTC(),
	})
}

// ListUsers returns a page of users, optionally filtered by role.
// GET /api/v1/admin/users?role=INTERN&page=1&limit=20.
func (h *DashboardHandler) ListUsers(c *gin.Context) {
	page, limit, err := parsePagination(c)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	role := models.Role(c.Query("role"))
	switch role {
	case "", models.RoleIntern, models.RoleSupervisor, models.RoleAdmin:
	default:
		errorResponse(c, http.StatusBadRequest, "invalid role filter")
		return
	}

	users, total, err := h.service.ListUsers(c.Request.Context(), role, nil, page, limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list users")
		errorResponse(c, http.StatusInternalServerError, "failed to list users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GetAdminStats returns system-wide statistics.
// GET /api/v1/admin/stats.
func (h *DashboardHandler) GetAdminStats(c *gin.Context) {
	adminStats, err := h.service.GetAdminStats(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build admin stats")
		errorResponse(c, http.StatusInternalServerError, "failed to build statistics")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":        adminStats,
		"generated_at": time.Now().UTC(),
	})
}
