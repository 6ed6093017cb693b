package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/muhtegaralfikri/intern-log-system/internal/api/middleware"
	"github.com/muhtegaralfikri/intern-log-system/internal/models"
	"github.com/muhtegaralfikri/intern-log-system/internal/service/badges"
	"github.com/muhtegaralfikri/intern-log-system/internal/service/leaderboard"
	"github.com/muhtegaralfikri/intern-log-system/pkg/logger"
)

// BadgeService interface for badge operations.
type BadgeService interface {
	GetUserBadges(ctx context.Context, userID uint) ([]models.UserBadge, error)
	GetBadgeCatalog(ctx context.Context) ([]models.Badge, error)
	GetBadgeByID(ctx context.Context, badgeID uint) (*models.Badge, error)
	GetBadgeHoldersCount(ctx context.Context, badgeID uint) (int64, error)
	EvaluateUserBadges(ctx context.Context, userID uint) ([]models.Badge, error)
	CreateBadge(ctx context.Context, badge *models.Badge) error
	UpdateBadge(ctx context.Context, badge *models.Badge) error
	DeleteBadge(ctx context.Context, badgeID uint) error
}

// LeaderboardService interface for leaderboard operations.
type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, period string, limit int) ([]leaderboard.Entry, error)
	GetSupervisorLeaderboard(ctx context.Context, supervisorID uint, period string, limit int) ([]leaderboard.Entry, error)
}

// GamificationHandler handles badge and leaderboard API requests.
type GamificationHandler struct {
	badgeService       BadgeService
	leaderboardService LeaderboardService
	log                *logger.Logger
}

// NewGamificationHandler creates a new gamification handler.
func NewGamificationHandler(badgeService *badges.Service, leaderboardService *leaderboard.Service, log *logger.Logger) *GamificationHandler {
	return &GamificationHandler{
		badgeService:       badgeService,
		leaderboardService: leaderboardService,
		log:                log,
	}
}

// NewGamificationHandlerWithInterfaces creates a new gamification handler with interface dependencies (useful for testing).
func NewGamificationHandlerWithInterfaces(badgeService BadgeService, leaderboardService LeaderboardService, log *logger.Logger) *GamificationHandler {
	return &GamificationHandler{
		badgeService:       badgeService,
		leaderboardService: leaderboardService,
		log:                log,
	}
}

// GetBadgeCatalog returns all available badges.
// GET /api/v1/badges.
func (h *GamificationHandler) GetBadgeCatalog(c *gin.Context) {
	catalogBadges, err := h.badgeService.GetBadgeCatalog(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get badge catalog")
		errorResponse(c, http.StatusInternalServerError, "Failed to retrieve badge catalog")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"badges":       catalogBadges,
		"total_badges": len(catalogBadges),
		"generated_at": time.Now().UTC(),
	})
}

// GetBadgeByID returns details for a specific badge, with its holder count.
// GET /api/v1/badges/:id.
func (h *GamificationHandler) GetBadgeByID(c *gin.Context) {
	badgeID, err := parseIDParam(c, "id")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	badge, err := h.badgeService.GetBadgeByID(c.Request.Context(), badgeID)
	if err != nil {
		h.log.Error().Err(err).Uint("badge_id", badgeID).Msg("Failed to get badge details")
		errorResponse(c, http.StatusNotFound, "Badge not found")
		return
	}

	holders, err := h.badgeService.GetBadgeHoldersCount(c.Request.Context(), badgeID)
	if err != nil {
		h.log.Error().Err(err).Uint("badge_id", badgeID).Msg("Failed to count badge holders")
		errorResponse(c, http.StatusInternalServerError, "Failed to retrieve badge holders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"badge":        badge,
		"holders":      holders,
		"generated_at": time.Now().UTC(),
	})
}

// GetMyBadges returns badges earned by the caller.
// GET /api/v1/badges/me.
func (h *GamificationHandler) GetMyBadges(c *gin.Context) {
	userID := middleware.UserID(c)

	userBadges, err := h.badgeService.GetUserBadges(c.Request.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Uint("user_id", userID).Msg("Failed to get user badges")
		errorResponse(c, http.StatusInternalServerError, "Failed to retrieve user badges")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":      userID,
		"badges":       userBadges,
		"total_badges": len(userBadges),
		"generated_at": time.Now().UTC(),
	})
}

// EvaluateMyBadges runs badge evaluation for the caller and returns newly
// earned badges.
// POST /api/v1/badges/evaluate.
func (h *GamificationHandler) EvaluateMyBadges(c *gin.Context) {
	userID := middleware.UserID(c)

	earned, err := h.badgeService.EvaluateUserBadges(c.Request.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Uint("user_id", userID).Msg("Failed to evaluate badges")
		errorResponse(c, http.StatusInternalServerError, "Failed to evaluate badges")
		return
	}

	h.log.Info().
		Uint("user_id", userID).
		Int("newly_earned", len(earned)).
		Msg("Evaluated user badges")

	c.JSON(http.StatusOK, gin.H{
		"newly_earned": earned,
		"generated_at": time.Now().UTC(),
	})
}

type badgeRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
	Condition   json.RawMessage `json:"condition" binding:"required"`
}

// CreateBadge adds a badge to the catalog.
// POST /api/v1/admin/badges.
func (h *GamificationHandler) CreateBadge(c *gin.Context) {
	var req badgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	badge := &models.Badge{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Condition:   req.Condition,
	}
	if err := h.badgeService.CreateBadge(c.Request.Context(), badge); err != nil {
		h.log.Error().Err(err).Str("badge_name", req.Name).Msg("Failed to create badge")
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"badge": badge})
}

// UpdateBadge replaces a badge's definition.
// PUT /api/v1/admin/badges/:id.
func (h *GamificationHandler) UpdateBadge(c *gin.Context) {
	badgeID, err := parseIDParam(c, "id")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	var req badgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	badge := &models.Badge{
		ID:          badgeID,
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Condition:   req.Condition,
	}
	if err := h.badgeService.UpdateBadge(c.Request.Context(), badge); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			errorResponse(c, http.StatusNotFound, "Badge not found")
			return
		}
		h.log.Error().Err(err).Uint("badge_id", badgeID).Msg("Failed to update badge")
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"badge": badge})
}

// DeleteBadge removes a badge from the catalog.
// DELETE /api/v1/admin/badges/:id.
func (h *GamificationHandler) DeleteBadge(c *gin.Context) {
	badgeID, err := parseIDParam(c, "id")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.badgeService.DeleteBadge(c.Request.Context(), badgeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			errorResponse(c, http.StatusNotFound, "Badge not found")
			return
		}
		h.log.Error().Err(err).Uint("badge_id", badgeID).Msg("Failed to delete badge")
		errorResponse(c, http.StatusInternalServerError, "Failed to delete badge")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": badgeID})
}

// GetLeaderboard returns the intern leaderboard.
// GET /api/v1/leaderboard?period=week&limit=10.
func (h *GamificationHandler) GetLeaderboard(c *gin.Context) {
	period := c.DefaultQuery("period", "all_time")
	limit, err := parseLimit(c, 10)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := validatePeriod(period); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.leaderboardService.GetLeaderboard(c.Request.Context(), period, limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get leaderboard")
		errorResponse(c, http.StatusInternalServerError, "Failed to retrieve leaderboard")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leaderboard":   entries,
		"period":        period,
		"total_entries": len(entries),
		"generated_at":  time.Now().UTC(),
	})
}

// GetTeamLeaderboard returns the leaderboard scoped to the calling
// supervisor's interns.
// GET /api/v1/supervisor/leaderboard?period=week&limit=10.
func (h *GamificationHandler) GetTeamLeaderboard(c *gin.Context) {
	period := c.DefaultQuery("period", "all_time")
	limit, err := parseLimit(c, 10)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := validatePeriod(period); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	supervisorID := middleware.UserID(c)
	entries, err := h.leaderboardService.GetSupervisorLeaderboard(c.Request.Context(), supervisorID, period, limit)
	if err != nil {
		h.log.Error().Err(err).Uint("supervisor_id", supervisorID).Msg("Failed to get team leaderboard")
		errorResponse(c, http.StatusInternalServerError, "Failed to retrieve team leaderboard")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leaderboard":   entries,
		"period":        period,
		"total_entries": len(entries),
		"generated_at":  time.Now().UTC(),
	})
}

// validatePeriod validates the period parameter.
func validatePeriod(period string) error {
	validPeriods := map[string]bool{
		"day":      true,
		"week":     true,
		"month":    true,
		"all_time": true,
	}

	if !validPeriods[period] {
		return fmt.Errorf("invalid period: %s (valid: day, week, month, all_time)", period)
	}
	return nil
}
