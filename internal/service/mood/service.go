// Package mood provides daily mood tracking and wellbeing analytics.
package mood

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/muhtegaralfikri/intern-log-system/internal/models"
	"github.com/muhtegaralfikri/intern-log-system/internal/repository"
	"github.com/muhtegaralfikri/intern-log-system/pkg/logger"
)

// MoodRepository interface for mood persistence.
type MoodRepository interface {
	Create(entry *models.MoodEntry) error
	Update(entry *models.MoodEntry) error
	GetByUserAndDate(userID uint, date time.Time) (*models.MoodEntry, error)
	List(userID uint, page, limit int) ([]models.MoodEntry, int64, error)
	GetByUserSince(userID uint, since time.Time) ([]models.MoodEntry, error)
}

// ActivityRepository interface for correlating mood with logged work.
type ActivityRepository interface {
	GetByUserAndRange(userID uint, start, end time.Time) ([]models.Activity, error)
}

// RecordInput carries one day's mood submission.
type RecordInput struct {
	Mood   models.Mood
	Energy int // 1..10
	Notes  string
}

// TrendPoint is one day of the mood trend line.
type TrendPoint struct {
	Date   time.Time `json:"date"`
	Mood   int       `json:"mood"`
	Energy int       `json:"energy"`
}

// ProductivityPoint pairs a day's mood with its logged activity minutes.
type ProductivityPoint struct {
	Date         time.Time   `json:"date"`
	Mood         models.Mood `json:"mood"`
	Energy       int         `json:"energy"`
	Productivity int         `json:"productivity"` // minutes logged that day
}

// Analytics summarizes a user's mood over a lookback window.
type Analytics struct {
	TotalEntries            int                 `json:"total_entries"`
	AvgMood                 float64             `json:"avg_mood"`
	AvgEnergy               float64             `json:"avg_energy"`
	MoodDistribution        map[models.Mood]int `json:"mood_distribution"`
	Trend                   []TrendPoint        `json:"trend"`
	ProductivityCorrelation []ProductivityPoint `json:"productivity_correlation"`
}

// Service handles mood entries.
type Service struct {
	repo         MoodRepository
	activityRepo ActivityRepository
	loc          *time.Location
	log          *logger.Logger
}

// NewService creates a new mood service.
func NewService(repo *repository.MoodRepository, activityRepo *repository.ActivityRepository, loc *time.Location, log *logger.Logger) *Service {
	return &Service{repo: repo, activityRepo: activityRepo, loc: loc, log: log}
}

// NewServiceWithInterfaces creates a new mood service with interface dependencies (useful for testing).
func NewServiceWithInterfaces(repo MoodRepository, activityRepo ActivityRepository, loc *time.Location, log *logger.Logger) *Service {
	return &Service{repo: repo, activityRepo: activityRepo, loc: loc, log: log}
}

func (s *Service) today() time.Time {
	now := time.Now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
}

// Record saves today's mood. A second submission on the same day replaces
// the first, so interns can revise their entry during the day.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) Record(ctx context.Context, userID uint, input RecordInput) (*models.MoodEntry, error) {
	if input.Mood.Score() == 0 {
		return nil, fmt.Errorf("invalid mood %q", input.Mood)
	}
	if input.Energy < 1 || input.Energy > 10 {
		return nil, fmt.Errorf("energy must be between 1 and 10")
	}

	date := s.today()
	existing, err := s.repo.GetByUserAndDate(userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to look up today's mood: %w", err)
	}

	if existing != nil {
		existing.Mood = input.Mood
		existing.Energy = input.Energy
		existing.Notes = input.Notes
		if err := s.repo.Update(existing); err != nil {
			return nil, fmt.Errorf("failed to update mood: %w", err)
		}
		return existing, nil
	}

	entry := &models.MoodEntry{
		UserID: userID,
		Date:   date,
		Mood:   input.Mood,
		Energy: input.Energy,
		Notes:  input.Notes,
	}
	if err := s.repo.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to save mood: %w", err)
	}
	return entry, nil
}

// Today returns today's mood entry, or nil when none exists.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) Today(ctx context.Context, userID uint) (*models.MoodEntry, error) {
	return s.repo.GetByUserAndDate(userID, s.today())
}

// List returns the user's mood entries, newest first.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) List(ctx context.Context, userID uint, page, limit int) ([]models.MoodEntry, int64, error) {
	return s.repo.List(userID, page, limit)
}

// GetAnalytics summarizes the user's mood over the last `days` days and
// correlates it with logged activity minutes.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) GetAnalytics(ctx context.Context, userID uint, days int) (*Analytics, error) {
	if days <= 0 {
		days = 30
	}
	since := s.today().AddDate(0, 0, -days)

	entries, err := s.repo.GetByUserSince(userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load mood entries: %w", err)
	}

	analytics := &Analytics{
		TotalEntries:     len(entries),
		MoodDistribution: make(map[models.Mood]int),
	}

	moodSum, energySum := 0, 0
	for _, e := range entries {
		analytics.MoodDistribution[e.Mood]++
		moodSum += e.Mood.Score()
		energySum += e.Energy
		analytics.Trend = append(analytics.Trend, TrendPoint{
			Date:   e.Date,
			Mood:   e.Mood.Score(),
			Energy: e.Energy,
		})
	}
	if len(entries) > 0 {
		analytics.AvgMood = round1(float64(moodSum) / float64(len(entries)))
		analytics.AvgEnergy = round1(float64(energySum) / float64(len(entries)))
	}

	activities, err := s.activityRepo.GetByUserAndRange(userID, since, s.today().AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}

	minutesByDay := make(map[string]int)
	for _, a := range activities {
		minutesByDay[a.Date.Format("2006-01-02")] += a.Duration
	}
	for _, e := range entries {
		analytics.ProductivityCorrelation = append(analytics.ProductivityCorrelation, ProductivityPoint{
			Date:         e.Date,
			Mood:         e.Mood,
			Energy:       e.Energy,
			Productivity: minutesByDay[e.Date.Format("2006-01-02")],
		})
	}

	return analytics, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
