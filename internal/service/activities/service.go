// Package activities provides the daily activity log service.
package activities

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	prommetrics "github.com/muhtegaralfikri/intern-log-system/internal/metrics"
	"github.com/muhtegaralfikri/intern-log-system/internal/models"
	"github.com/muhtegaralfikri/intern-log-system/internal/repository"
	"github.com/muhtegaralfikri/intern-log-system/pkg/logger"
)

// ErrNotFound is returned when an activity does not exist or belongs to
// another user.
var ErrNotFound = errors.New("activity not found")

// ActivityRepository interface for activity persistence.
type ActivityRepository interface {
	Create(activity *models.Activity) error
	GetByIDAndUser(id, userID uint) (*models.Activity, error)
	List(userID uint, page, limit int) ([]models.Activity, int64, error)
	Delete(id, userID uint) error
	GetByUserAndRange(userID uint, start, end time.Time) ([]models.Activity, error)
	Recent(userID uint, limit int) ([]models.Activity, error)
}

// CreateInput carries the fields of a new activity.
type CreateInput struct {
	Title       string
	Description string
	Category    string
	Duration    int // minutes
	Date        time.Time
}

// Service handles activity logging.
type Service struct {
	repo ActivityRepository
	log  *logger.Logger
}

// NewService creates a new activity service.
func NewService(repo *repository.ActivityRepository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// NewServiceWithInterfaces creates a new activity service with interface dependencies (useful for testing).
func NewServiceWithInterfaces(repo ActivityRepository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create logs a new activity for the user.
func (s *Service) Create(ctx context.Context, userID uint, input CreateInput) (*models.Activity, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if input.Duration <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}

	activity := &models.Activity{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Duration:    input.Duration,
		Date:        input.Date,
	}
	if err := s.repo.Create(activity); err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	prommetrics.RecordActivityLogged(activity.Category)

	s.log.Debug().
		Uint("user_id", userID).
		Str("category", activity.Category).
		Int("duration", activity.Duration).
		Msg("Activity logged")

	return activity, nil
}

// List returns the user's activities, newest first.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) List(ctx context.Context, userID uint, page, limit int) ([]models.Activity, int64, error) {
	return s.repo.List(userID, page, limit)
}

// Get returns one of the user's activities.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) Get(ctx context.Context, id, userID uint) (*models.Activity, error) {
	activity, err := s.repo.GetByIDAndUser(id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return activity, nil
}

// Delete removes one of the user's activities. Deleting an activity owned
// by someone else is a not-found, not a forbidden, so activity IDs are not
// probeable.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) Delete(ctx context.Context, id, userID uint) error {
	if _, err := s.repo.GetByIDAndUser(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.Delete(id, userID)
}

// GetByRange returns the user's activities in [start, end).
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) GetByRange(ctx context.Context, userID uint, start, end time.Time) ([]models.Activity, error) {
	return s.repo.GetByUserAndRange(userID, start, end)
}

// Recent returns the user's most recent activities.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) Recent(ctx context.Context, userID uint, limit int) ([]models.Activity, error) {
	return s.repo.Recent(userID, limit)
}
