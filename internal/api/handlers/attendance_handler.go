package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/muhtegaralfikri/intern-log-system/internal/api/middleware"
	"github.com/muhtegaralfikri/intern-log-system/internal/models"
	"github.com/muhtegaralfikri/intern-log-system/internal/service/attendance"
	"github.com/muhtegaralfikri/intern-log-system/pkg/logger"
)

// AttendanceHandler handles check-in, check-out, and attendance queries.
type AttendanceHandler struct {
	service *attendance.Service
	log     *logger.Logger
}

// NewAttendanceHandler creates a new attendance handler.
func NewAttendanceHandler(service *attendance.Service, log *logger.Logger) *AttendanceHandler {
	return &AttendanceHandler{service: service, log: log}
}

type checkInRequest struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
	Address   string  `json:"address"`
	Photo     string  `json:"photo"`
	Notes     string  `json:"notes"`
}

// CheckIn records the caller's morning check-in.
// POST /api/v1/attendance/check-in.
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.service.CheckIn(c.Request.Context(), middleware.UserID(c), attendance.CheckInInput{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Address:   req.Address,
		Photo:     req.Photo,
		Notes:     req.Notes,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			errorResponse(c, http.StatusConflict, "already checked in today")
			return
		}
		h.log.Error().Err(err).Msg("Check-in failed")
		errorResponse(c, http.StatusInternalServerError, "failed to check in")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"attendance": record})
}

// CheckOut records the caller's check-out.
// POST /api/v1/attendance/check-out.
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.service.CheckOut(c.Request.Context(), middleware.UserID(c), attendance.CheckOutInput{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Address:   req.Address,
		Photo:     req.Photo,
		Notes:     req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrNotCheckedIn):
			errorResponse(c, http.StatusConflict, "not checked in today")
		case errors.Is(err, attendance.ErrAlreadyCheckedOut):
			errorResponse(c, http.StatusConflict, "already checked out today")
		default:
			h.log.Error().Err(err).Msg("Check-out failed")
			errorResponse(c, http.StatusInternalServerError, "failed to check out")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"attendance": record})
}

// Today returns the caller's attendance record for today, if any.
// GET /api/v1/attendance/today.
func (h *AttendanceHandler) Today(c *gin.Context) {
	record, err := h.service.Today(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load today's attendance")
		errorResponse(c, http.StatusInternalServerError, "failed to load attendance")
		return
	}

	c.JSON(http.StatusOK, gin.H{"attendance": record})
}

// History returns the caller's attendance records, newest first.
// GET /api/v1/attendance/history?page=1&limit=20.
func (h *AttendanceHandler) History(c *gin.Context) {
	page, limit, err := parsePagination(c)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	records, total, err := h.service.History(c.Request.Context(), middleware.UserID(c), page, limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load attendance history")
		errorResponse(c, http.StatusInternalServerError, "failed to load attendance history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// MonthlySummary returns the caller's attendance totals for one month.
// GET /api/v1/attendance/summary?year=2025&month=3.
func (h *AttendanceHandler) MonthlySummary(c *gin.Context) {
	now := time.Now()
	year := now.Year()
	month := int(now.Month())

	if yearStr := c.Query("year"); yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil || y < 2000 || y > 2100 {
			errorResponse(c, http.StatusBadRequest, "invalid year parameter")
			return
		}
		year = y
	}
	if monthStr := c.Query("month"); monthStr != "" {
		m, err := strconv.Atoi(monthStr)
		if err != nil || m < 1 || m > 12 {
			errorResponse(c, http.StatusBadRequest, "invalid month parameter")
			return
		}
		month = m
	}

	summary, err := h.service.GetMonthlySummary(c.Request.Context(), middleware.UserID(c), year, month)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build monthly summary")
		errorResponse(c, http.StatusInternalServerError, "failed to build monthly summary")
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// ListOffices returns all office locations.
// GET /api/v1/admin/offices.
func (h *AttendanceHandler) ListOffices(c *gin.Context) {
	offices, err := h.service.ListOffices(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list offices")
		errorResponse(c, http.StatusInternalServerError, "failed to list offices")
		return
	}

	c.JSON(http.StatusOK, gin.H{"offices": offices})
}

type officeRequest struct {
	Name      string  `json:"name" binding:"required"`
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
	Radius    float64 `json:"radius" binding:"required,gt=0"`
	IsActive  *bool   `json:"is_active"`
}

// CreateOffice adds an office location.
// POST /api/v1/admin/offices.
func (h *AttendanceHandler) CreateOffice(c *gin.Context) {
	var req officeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	office := &models.OfficeLocation{
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Radius:    req.Radius,
		IsActive:  active,
	}
	if err := h.service.CreateOffice(c.Request.Context(), office); err != nil {
		h.log.Error().Err(err).Msg("Failed to create office")
		errorResponse(c, http.StatusInternalServerError, "failed to create office")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"office": office})
}

// UpdateOffice updates an office location.
// PUT /api/v1/admin/offices/:id.
func (h *AttendanceHandler) UpdateOffice(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	var req officeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	office := &models.OfficeLocation{
		ID:        id,
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Radius:    req.Radius,
		IsActive:  active,
	}
	if err := h.service.UpdateOffice(c.Request.Context(), office); err != nil {
		h.log.Error().Err(err).Uint("office_id", id).Msg("Failed to update office")
		errorResponse(c, http.StatusInternalServerError, "failed to update office")
		return
	}

	c.JSON(http.StatusOK, gin.H{"office": office})
}

// DeleteOffice removes an office location.
// DELETE /api/v1/admin/offices/:id.
func (h *AttendanceHandler) DeleteOffice(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.DeleteOffice(c.Request.Context(), id); err != nil {
		h.log.Error().Err(err).Uint("office_id", id).Msg("Failed to delete office")
		errorResponse(c, http.StatusInternalServerError, "failed to delete office")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "office deleted"})
}
