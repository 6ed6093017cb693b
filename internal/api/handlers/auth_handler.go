package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/muhtegaralfikri/intern-log-system/internal/api/middleware"
	"github.com/muhtegaralfikri/intern-log-system/internal/models"
	"github.com/muhtegaralfikri/intern-log-system/internal/service/auth"
	"github.com/muhtegaralfikri/intern-log-system/pkg/logger"
)

// AuthHandler handles registration, login, and profile requests.
type AuthHandler struct {
	service *auth.Service
	log     *logger.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service *auth.Service, log *logger.Logger) *AuthHandler {
	return &AuthHandler{service: service, log: log}
}

type registerRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Role         string `json:"role"`
	Department   string `json:"department"`
	SupervisorID *uint  `json:"supervisor_id"`
}

// Register creates a new account.
// POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.service.Register(c.Request.Context(), auth.RegisterInput{
		Email:        req.Email,
		Password:     req.Password,
		Name:         req.Name,
		Role:         models.Role(req.Role),
		Department:   req.Department,
		SupervisorID: req.SupervisorID,
	})
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			errorResponse(c, http.StatusConflict, "email already registered")
			return
		}
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.log.Info().
		Uint("user_id", user.ID).
		Str("role", string(user.Role)).
		Msg("User registered")

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges credentials for a bearer token.
// POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	token, user, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			errorResponse(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.log.Error().Err(err).Msg("Login failed")
		errorResponse(c, http.StatusInternalServerError, "failed to log in")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// GetProfile returns the caller's profile.
// GET /api/v1/auth/profile.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.service.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			errorResponse(c, http.StatusNotFound, "user not found")
			return
		}
		h.log.Error().Err(err).Msg("Failed to load profile")
		errorResponse(c, http.StatusInternalServerError, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

type updateProfileRequest struct {
	Name       string `json:"name"`
	Department string `json:"department"`
	AvatarURL  string `json:"avatar_url"`
}

// UpdateProfile updates the caller's profile fields.
// PUT /api/v1/auth/profile.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), middleware.UserID(c), req.Name, req.Department, req.AvatarURL)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to update profile")
		errorResponse(c, http.StatusInternalServerError, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// ChangePassword rotates the caller's password.
// POST /api/v1/auth/change-password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	err := h.service.ChangePassword(c.Request.Context(), middleware.UserID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			errorResponse(c, http.StatusUnauthorized, "current password is incorrect")
			return
		}
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
