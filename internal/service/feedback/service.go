// Package feedback provides activity-feedback services: ratings and
// comments left on an intern's logged activities.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gorm.io/gorm"

	"github.com/muhtegaralfikri/intern-log-system/internal/models"
	"github.com/muhtegaralfikri/intern-log-system/internal/repository"
	"github.com/muhtegaralfikri/intern-log-system/pkg/logger"
)

// Sentinel errors surfaced to the API layer.
var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrNotFound         = errors.New("feedback not found")
	ErrNotGiver         = errors.New("only the giver can delete their feedback")
)

// FeedbackRepository interface for feedback persistence.
type FeedbackRepository interface {
	Create(feedback *models.Feedback) error
	GetByID(id uint) (*models.Feedback, error)
	ListReceived(userID uint, page, limit int) ([]models.Feedback, int64, error)
	ListGiven(userID uint, page, limit int) ([]models.Feedback, int64, error)
	ListByActivity(activityID uint) ([]models.Feedback, error)
	Delete(id uint) error
	CountGiven(userID uint) (int64, error)
	ReceivedRatings(userID uint) ([]models.Feedback, error)
}

// ActivityRepository interface for activity lookups.
type ActivityRepository interface {
	GetByID(id uint) (*models.Activity, error)
}

// CreateInput carries the fields of a new feedback entry.
type CreateInput struct {
	ActivityID uint
	ReceiverID uint
	Rating     *int // optional, 1..5
	Comment    string
}

// Stats aggregates the feedback a user has received and given.
type Stats struct {
	TotalReceived      int64          `json:"total_received"`
	TotalGiven         int64          `json:"total_given"`
	AvgRating          float64        `json:"avg_rating"`
	RatingDistribution []RatingBucket `json:"rating_distribution"`
}

// RatingBucket counts received feedback holding one rating value.
type RatingBucket struct {
	Rating int   `json:"rating"`
	Count  int64 `json:"count"`
}

// Service handles activity feedback.
type Service struct {
	repo         FeedbackRepository
	activityRepo ActivityRepository
	log          *logger.Logger
}

// NewService creates a new feedback service.
func NewService(repo *repository.FeedbackRepository, activityRepo *repository.ActivityRepository, log *logger.Logger) *Service {
	return &Service{repo: repo, activityRepo: activityRepo, log: log}
}

// NewServiceWithInterfaces creates a new feedback service with interface dependencies (useful for testing).
func NewServiceWithInterfaces(repo FeedbackRepository, activityRepo ActivityRepository, log *logger.Logger) *Service {
	return &Service{repo: repo, activityRepo: activityRepo, log: log}
}

// Create records feedback on an activity. The activity must exist; the
// receiver defaults to the activity's owner when none is given.
func (s *Service) Create(ctx context.Context, giverID uint, input CreateInput) (*models.Feedback, error) {
	if input.Comment == "" {
		return nil, fmt.Errorf("comment is required")
	}
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}

	activity, err := s.activityRepo.GetByID(input.ActivityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}

	receiverID := input.ReceiverID
	if receiverID == 0 {
		receiverID = activity.UserID
	}

	entry := &models.Feedback{
		ActivityID: input.ActivityID,
		GiverID:    giverID,
		ReceiverID: receiverID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}
	if err := s.repo.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	s.log.Debug().
		Uint("giver_id", giverID).
		Uint("receiver_id", receiverID).
		Uint("activity_id", input.ActivityID).
		Msg("Feedback recorded")

	return entry, nil
}

// GetReceived returns feedback addressed to the user, newest first.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) GetReceived(ctx context.Context, userID uint, page, limit int) ([]models.Feedback, int64, error) {
	entries, total, err := s.repo.ListReceived(userID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list received feedback: %w", err)
	}
	return entries, total, nil
}

// GetGiven returns feedback written by the user, newest first.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) GetGiven(ctx context.Context, userID uint, page, limit int) ([]models.Feedback, int64, error) {
	entries, total, err := s.repo.ListGiven(userID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list given feedback: %w", err)
	}
	return entries, total, nil
}

// GetByActivity returns all feedback on one activity.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) GetByActivity(ctx context.Context, activityID uint) ([]models.Feedback, error) {
	entries, err := s.repo.ListByActivity(activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity feedback: %w", err)
	}
	return entries, nil
}

// Delete removes a feedback entry. Only its giver may delete it.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) Delete(ctx context.Context, id, userID uint) error {
	entry, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load feedback: %w", err)
	}
	if entry.GiverID != userID {
		return ErrNotGiver
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete feedback: %w", err)
	}
	return nil
}

// GetStats aggregates a user's feedback: totals, average rating over
// rated entries (one decimal), and the 1..5 rating distribution.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) GetStats(ctx context.Context, userID uint) (*Stats, error) {
	received, err := s.repo.ReceivedRatings(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load received feedback: %w", err)
	}
	given, err := s.repo.CountGiven(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count given feedback: %w", err)
	}

	stats := &Stats{
		TotalReceived:      int64(len(received)),
		TotalGiven:         given,
		RatingDistribution: make([]RatingBucket, 5),
	}
	for i := range stats.RatingDistribution {
		stats.RatingDistribution[i].Rating = i + 1
	}

	var sum, rated int
	for _, entry := range received {
		if entry.Rating == nil {
			continue
		}
		rated++
		sum += *entry.Rating
		if *entry.Rating >= 1 && *entry.Rating <= 5 {
			stats.RatingDistribution[*entry.Rating-1].Count++
		}
	}
	if rated > 0 {
		stats.AvgRating = math.Round(float64(sum)/float64(rated)*10) / 10
	}

	return stats, nil
}
