// Package leaderboard provides intern ranking services.
package leaderboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/muhtegaralfikri/intern-log-system/internal/models"
	"github.com/muhtegaralfikri/intern-log-system/internal/repository"
	"github.com/muhtegaralfikri/intern-log-system/pkg/logger"
)

// ActivityRepository interface for activity aggregates.
type ActivityRepository interface {
	TotalsByUserSince(since time.Time) (map[uint]repository.ActivityTotals, error)
}

// BadgeRepository interface for badge counts.
type BadgeRepository interface {
	GetUserBadgeCount(userID uint) (int64, error)
}

// UserRepository interface for user operations.
type UserRepository interface {
	ListInterns(supervisorID *uint) ([]models.User, error)
}

// Entry represents a single entry in a leaderboard.
type Entry struct {
	UserID        uint   `json:"user_id"`
	Name          string `json:"name"`
	Department    string `json:"department"`
	Minutes       int64  `json:"minutes"`
	ActivityCount int64  `json:"activity_count"`
	BadgeCount    int64  `json:"badge_count"`
	Rank          int    `json:"rank"`
}

// Service handles leaderboard generation.
type Service struct {
	activityRepo ActivityRepository
	badgeRepo    BadgeRepository
	userRepo     UserRepository
	log          *logger.Logger
}

// NewService creates a new leaderboard service with concrete repository types.
func NewService(
	activityRepo *repository.ActivityRepository,
	badgeRepo *repository.BadgeRepository,
	userRepo *repository.UserRepository,
	log *logger.Logger,
) *Service {
	return &Service{
		activityRepo: activityRepo,
		badgeRepo:    badgeRepo,
		userRepo:     userRepo,
		log:          log,
	}
}

// NewServiceWithInterfaces creates a new leaderboard service with interface dependencies (useful for testing).
func NewServiceWithInterfaces(
	activityRepo ActivityRepository,
	badgeRepo BadgeRepository,
	userRepo UserRepository,
	log *logger.Logger,
) *Service {
	return &Service{
		activityRepo: activityRepo,
		badgeRepo:    badgeRepo,
		userRepo:     userRepo,
		log:          log,
	}
}

// GetLeaderboard ranks all interns by activity minutes over a period.
func (s *Service) GetLeaderboard(ctx context.Context, period string, limit int) ([]Entry, error) {
	return s.getLeaderboard(ctx, nil, period, limit)
}

// GetSupervisorLeaderboard ranks one supervisor's interns.
func (s *Service) GetSupervisorLeaderboard(ctx context.Context, supervisorID uint, period string, limit int) ([]Entry, error) {
	return s.getLeaderboard(ctx, &supervisorID, period, limit)
}

//nolint:revive,unparam // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) getLeaderboard(ctx context.Context, supervisorID *uint, period string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	interns, err := s.userRepo.ListInterns(supervisorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interns: %w", err)
	}

	since := periodStart(period)
	totalsByUser, err := s.activityRepo.TotalsByUserSince(since)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate activity totals: %w", err)
	}

	entries := make([]Entry, 0, len(interns))
	for _, intern := range interns {
		totals := totalsByUser[intern.ID]
		entry := Entry{
			UserID:        intern.ID,
			Name:          intern.Name,
			Department:    intern.Department,
			Minutes:       totals.Minutes,
			ActivityCount: totals.Count,
		}

		badges, err := s.badgeRepo.GetUserBadgeCount(intern.ID)
		if err != nil {
			s.log.Error().Err(err).Uint("user_id", intern.ID).Msg("Failed to count badges")
			continue
		}
		entry.BadgeCount = badges

		entries = append(entries, entry)
	}

	// Sort by minutes, then badges, then name for a stable order.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Minutes != entries[j].Minutes {
			return entries[i].Minutes > entries[j].Minutes
		}
		if entries[i].BadgeCount != entries[j].BadgeCount {
			return entries[i].BadgeCount > entries[j].BadgeCount
		}
		return entries[i].Name < entries[j].Name
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries, nil
}

// periodStart maps a period name onto its lookback start.
func periodStart(period string) time.Time {
	now := time.Now()
	switch period {
	case "day":
		return now.Add(-24 * time.Hour)
	case "week":
		return now.Add(-7 * 24 * time.Hour)
	case "month":
		return now.Add(-30 * 24 * time.Hour)
	case "all_time", "":
		return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	}
}
