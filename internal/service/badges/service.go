// Package badges provides badge evaluation and management services.
package badges

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	prommetrics "github.com/muhtegaralfikri/intern-log-system/internal/metrics"
	"github.com/muhtegaralfikri/intern-log-system/internal/models"
	"github.com/muhtegaralfikri/intern-log-system/internal/repository"
	"github.com/muhtegaralfikri/intern-log-system/pkg/logger"
)

// BadgeRepository interface for badge operations.
type BadgeRepository interface {
	GetAll() ([]models.Badge, error)
	GetByID(id uint) (*models.Badge, error)
	Create(badge *models.Badge) error
	Update(badge *models.Badge) error
	Delete(id uint) error
	HasUserEarnedBadge(userID, badgeID uint) (bool, error)
	AwardBadge(userID, badgeID uint) error
	GetUserBadges(userID uint) ([]models.UserBadge, error)
	GetBadgeHoldersCount(badgeID uint) (int64, error)
}

// ActivityRepository interface for activity facts used by conditions.
type ActivityRepository interface {
	RecentDates(userID uint, limit int) ([]time.Time, error)
	MinutesLoggedSince(userID uint, since time.Time) (int, error)
	CountByUser(userID uint) (int64, error)
}

// AttendanceRepository interface for attendance facts used by conditions.
type AttendanceRepository interface {
	LatestCheckIn(userID uint) (*models.AttendanceRecord, error)
}

// UserRepository interface for user operations.
type UserRepository interface {
	ListInterns(supervisorID *uint) ([]models.User, error)
}

// Service handles badge evaluation and awarding.
type Service struct {
	badgeRepo      BadgeRepository
	activityRepo   ActivityRepository
	attendanceRepo AttendanceRepository
	userRepo       UserRepository
	loc            *time.Location
	log            *logger.Logger
}

// NewService creates a new badge service. The location is used to interpret
// check-in times for morning conditions.
func NewService(
	badgeRepo *repository.BadgeRepository,
	activityRepo *repository.ActivityRepository,
	attendanceRepo *repository.AttendanceRepository,
	userRepo *repository.UserRepository,
	loc *time.Location,
	log *logger.Logger,
) *Service {
	return &Service{
		badgeRepo:      badgeRepo,
		activityRepo:   activityRepo,
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		loc:            loc,
		log:            log,
	}
}

// NewServiceWithInterfaces creates a new badge service with interface dependencies (useful for testing).
func NewServiceWithInterfaces(
	badgeRepo BadgeRepository,
	activityRepo ActivityRepository,
	attendanceRepo AttendanceRepository,
	userRepo UserRepository,
	loc *time.Location,
	log *logger.Logger,
) *Service {
	return &Service{
		badgeRepo:      badgeRepo,
		activityRepo:   activityRepo,
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		loc:            loc,
		log:            log,
	}
}

// EvaluateAllBadges evaluates all badges for all interns.
// This is typically run as a scheduled job.
// Returns the number of badges awarded.
func (s *Service) EvaluateAllBadges(ctx context.Context) (int, error) {
	s.log.Info().Msg("Starting badge evaluation for all interns")
	start := time.Now()

	badges, err := s.badgeRepo.GetAll()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to get badges")
		return 0, fmt.Errorf("failed to get badges: %w", err)
	}

	interns, err := s.userRepo.ListInterns(nil)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to get interns")
		return 0, fmt.Errorf("failed to get interns: %w", err)
	}

	awardsCount := 0

	for _, badge := range badges {
		for _, user := range interns {
			hasEarned, err := s.badgeRepo.HasUserEarnedBadge(user.ID, badge.ID)
			if err != nil {
				s.log.Error().
					Err(err).
					Uint("user_id", user.ID).
					Uint("badge_id", badge.ID).
					Msg("Failed to check if user has badge")
				continue
			}

			if hasEarned {
				continue
			}

			qualifies, err := s.EvaluateBadge(ctx, &badge, user.ID)
			if err != nil {
				s.log.Error().
					Err(err).
					Uint("user_id", user.ID).
					Str("badge", badge.Name).
					Msg("Failed to evaluate badge")
				continue
			}

			if qualifies {
				if err := s.AwardBadge(ctx, user.ID, &badge); err != nil {
					s.log.Error().
						Err(err).
						Uint("user_id", user.ID).
						Str("badge", badge.Name).
						Msg("Failed to award badge")
					continue
				}

				awardsCount++
				s.log.Info().
					Uint("user_id", user.ID).
					Str("name", user.Name).
					Str("badge", badge.Name).
					Msg("Badge awarded")
			}
		}
	}

	s.log.Info().
		Int("badges_evaluated", len(badges)).
		Int("interns_evaluated", len(interns)).
		Int("badges_awarded", awardsCount).
		Dur("duration", time.Since(start)).
		Msg("Badge evaluation complete")

	return awardsCount, nil
}

// EvaluateUserBadges evaluates all badges for a specific user and returns newly earned badges.
func (s *Service) EvaluateUserBadges(ctx context.Context, userID uint) ([]models.Badge, error) {
	s.log.Debug().Uint("user_id", userID).Msg("Evaluating badges for user")

	badges, err := s.badgeRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get badges: %w", err)
	}

	var newlyEarned []models.Badge

	for _, badge := range badges {
		hasEarned, err := s.badgeRepo.HasUserEarnedBadge(userID, badge.ID)
		if err != nil {
			s.log.Error().
				Err(err).
				Uint("user_id", userID).
				Uint("badge_id", badge.ID).
				Msg("Failed to check if user has badge")
			continue
		}

		if hasEarned {
			continue
		}

		qualifies, err := s.EvaluateBadge(ctx, &badge, userID)
		if err != nil {
			s.log.Error().
				Err(err).
				Uint("user_id", userID).
				Str("badge", badge.Name).
				Msg("Failed to evaluate badge")
			continue
		}

		if qualifies {
			if err := s.AwardBadge(ctx, userID, &badge); err != nil {
				s.log.Error().
					Err(err).
					Uint("user_id", userID).
					Str("badge", badge.Name).
					Msg("Failed to award badge")
				continue
			}

			newlyEarned = append(newlyEarned, badge)
		}
	}

	return newlyEarned, nil
}

// EvaluateBadge evaluates if a user qualifies for a specific badge.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) EvaluateBadge(ctx context.Context, badge *models.Badge, userID uint) (bool, error) {
	condition := models.DecodeCondition(badge.Condition)
	return s.checkCondition(condition, userID)
}

// AwardBadge awards a badge to a user.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) AwardBadge(ctx context.Context, userID uint, badge *models.Badge) error {
	if err := s.badgeRepo.AwardBadge(userID, badge.ID); err != nil {
		return err
	}

	prommetrics.RecordBadgeAwarded(badge.Name)

	count, _ := s.badgeRepo.GetBadgeHoldersCount(badge.ID)
	prommetrics.SetActiveBadgeHolders(badge.Name, int(count))

	return nil
}

// GetUserBadges retrieves all badges earned by a user.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) GetUserBadges(ctx context.Context, userID uint) ([]models.UserBadge, error) {
	return s.badgeRepo.GetUserBadges(userID)
}

// GetBadgeCatalog retrieves all available badges.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) GetBadgeCatalog(ctx context.Context) ([]models.Badge, error) {
	return s.badgeRepo.GetAll()
}

// GetBadgeByID retrieves a badge by its ID.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) GetBadgeByID(ctx context.Context, badgeID uint) (*models.Badge, error) {
	return s.badgeRepo.GetByID(badgeID)
}

// GetBadgeHoldersCount retrieves the count of users who have earned a badge.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) GetBadgeHoldersCount(ctx context.Context, badgeID uint) (int64, error) {
	return s.badgeRepo.GetBadgeHoldersCount(badgeID)
}

// CreateBadge adds a badge to the catalog. The condition must decode to a
// known or unknown kind; malformed JSON is rejected up front.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) CreateBadge(ctx context.Context, badge *models.Badge) error {
	if err := validateBadge(badge); err != nil {
		return err
	}
	return s.badgeRepo.Create(badge)
}

// UpdateBadge updates a catalog badge.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) UpdateBadge(ctx context.Context, badge *models.Badge) error {
	if err := validateBadge(badge); err != nil {
		return err
	}
	if _, err := s.badgeRepo.GetByID(badge.ID); err != nil {
		return err
	}
	return s.badgeRepo.Update(badge)
}

// validateBadge checks catalog fields. Unknown condition kinds are allowed
// (they evaluate to false), but the descriptor itself must be valid JSON.
func validateBadge(badge *models.Badge) error {
	if badge.Name == "" {
		return fmt.Errorf("badge name is required")
	}
	if len(badge.Condition) == 0 || !json.Valid(badge.Condition) {
		return fmt.Errorf("badge condition must be a valid JSON descriptor")
	}
	return nil
}

// DeleteBadge removes a badge from the catalog.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) DeleteBadge(ctx context.Context, badgeID uint) error {
	if _, err := s.badgeRepo.GetByID(badgeID); err != nil {
		return err
	}
	return s.badgeRepo.Delete(badgeID)
}
