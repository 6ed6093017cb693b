// Package reports provides periodic report generation with optional
// AI-assisted narratives, and the supervisor review flow.
package reports

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

// ErrNotFound is returned when a report does not exist or is not visible
// to the caller.
var ErrNotFound = errors.New("report not found")

// ReportRepository interface for report persistence.
type ReportRepository interface {
	Create(report *models.Report) error
	Update(report *models.Report) error
	GetByID(id uint) (*models.Report, error)
	GetByIDAndUser(id, userID uint) (*models.Report, error)
	List(userID uint, page, limit int) ([]models.Report, int64, error)
	ListAll(approved *bool, page, limit int) ([]models.Report, int64, error)
	ListBySupervisor(supervisorID uint, approved *bool) ([]models.Report, error)
}

// ActivityRepository interface for the activities a report covers.
type ActivityRepository interface {
	GetByUserAndRange(userID uint, start, end time.Time) ([]models.Activity, error)
	Recent(userID uint, limit int) ([]models.Activity, error)
}

// SkillRepository interface for AI task suggestions.
type SkillRepository interface {
	GetUserSkills(userID uint) ([]models.UserSkill, error)
}

// AIClient interface for generated narratives. All methods fall back to
// local text when the API is unavailable, so they never error.
type AIClient interface {
	Enabled() bool
	SummarizeActivities(ctx context.Context, activities []models.Activity) string
	GenerateWeeklyReport(ctx context.Context, activities []models.Activity, start, end time.Time) string
	SuggestTasks(ctx context.Context, skills []models.UserSkill, recent []models.Activity) []string
	DailyPrompts(ctx context.Context) []string
	ReflectionQuestions(ctx context.Context, activities []models.Activity) []string
}

// CreateInput carries the fields of a new report.
type CreateInput struct {
	Title       string
	Content     string
	Type        models.ReportType
	PeriodStart time.Time
	PeriodEnd   time.Time
	WithSummary bool // generate an AI summary of the period's activities
}

// Service handles reports.
type Service struct {
	repo         ReportRepository
	activityRepo ActivityRepository
	skillRepo    SkillRepository
	ai           AIClient
	log          *logger.Logger
}

// NewService creates a new report service.
func NewService(
	repo *repository.ReportRepository,
	activityRepo *repository.ActivityRepository,
	skillRepo *repository.SkillRepository,
	ai AIClient,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:         repo,
		activityRepo: activityRepo,
		skillRepo:    skillRepo,
		ai:           ai,
		log:          log,
	}
}

// NewServiceWithInterfaces creates a new report service with interface dependencies (useful for testing).
func NewServiceWithInterfaces(
	repo ReportRepository,
	activityRepo ActivityRepository,
	skillRepo SkillRepository,
	ai AIClient,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:         repo,
		activityRepo: activityRepo,
		skillRepo:    skillRepo,
		ai:           ai,
		log:          log,
	}
}

// Create saves a report. With WithSummary set, the period's activities are
// summarized into the report's AISummary field; the summary text comes
// from the generative API when enabled, or a locally computed fallback.
func (s *Service) Create(ctx context.Context, userID uint, input CreateInput) (*models.Report, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if input.PeriodEnd.Before(input.PeriodStart) {
		return nil, fmt.Errorf("period end before period start")
	}

	report := &models.Report{
		UserID:      userID,
		Title:       input.Title,
		Content:     input.Content,
		Type:        input.Type,
		PeriodStart: input.PeriodStart,
		PeriodEnd:   input.PeriodEnd,
	}

	aiUsed := false
	if input.WithSummary {
		activities, err := s.activityRepo.GetByUserAndRange(userID, input.PeriodStart, input.PeriodEnd.AddDate(0, 0, 1))
		if err != nil {
			return nil, fmt.Errorf("failed to load activities: %w", err)
		}

		if input.Type == models.ReportWeekly {
			report.AISummary = s.ai.GenerateWeeklyReport(ctx, activities, input.PeriodStart, input.PeriodEnd)
		} else {
			report.AISummary = s.ai.SummarizeActivities(ctx, activities)
		}
		aiUsed = s.ai.Enabled()
	}

	if err := s.repo.Create(report); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	prommetrics.RecordReportGenerated(string(report.Type), aiUsed)

	s.log.Info().
		Uint("user_id", userID).
		Str("type", string(report.Type)).
		Bool("ai_summary", input.WithSummary).
		Msg("Report created")

	return report, nil
}

// List returns the user's reports, newest first.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) List(ctx context.Context, userID uint, page, limit int) ([]models.Report, int64, error) {
	return s.repo.List(userID, page, limit)
}

// Get returns one of the user's reports.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) Get(ctx context.Context, id, userID uint) (*models.Report, error) {
	report, err := s.repo.GetByIDAndUser(id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

// ListForSupervisor returns reports written by the supervisor's interns,
// optionally filtered by approval state.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) ListForSupervisor(ctx context.Context, supervisorID uint, approved *bool) ([]models.Report, error) {
	return s.repo.ListBySupervisor(supervisorID, approved)
}

// ListAll returns every report, optionally filtered by approval state.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) ListAll(ctx context.Context, approved *bool, page, limit int) ([]models.Report, int64, error) {
	return s.repo.ListAll(approved, page, limit)
}

// Review records a supervisor's approval decision and note.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) Review(ctx context.Context, reportID uint, approved bool, note string) (*models.Report, error) {
	report, err := s.repo.GetByID(reportID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	report.IsApproved = approved
	report.ReviewNote = note
	if err := s.repo.Update(report); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	s.log.Info().
		Uint("report_id", reportID).
		Bool("approved", approved).
		Msg("Report reviewed")

	return report, nil
}

// SuggestTasks returns AI-assisted task suggestions based on the user's
// skills and recent activities.
func (s *Service) SuggestTasks(ctx context.Context, userID uint) ([]string, error) {
	skills, err := s.skillRepo.GetUserSkills(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load skills: %w", err)
	}
	recent, err := s.activityRepo.Recent(userID, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent activities: %w", err)
	}
	return s.ai.SuggestTasks(ctx, skills, recent), nil
}

// DailyPrompts returns reflection questions to guide the day's logging.
func (s *Service) DailyPrompts(ctx context.Context) []string {
	return s.ai.DailyPrompts(ctx)
}

// ReflectionQuestions returns weekly reflection questions based on the
// user's last week of activities.
func (s *Service) ReflectionQuestions(ctx context.Context, userID uint) ([]string, error) {
	since := time.Now().AddDate(0, 0, -7)
	activities, err := s.activityRepo.GetByUserAndRange(userID, since, time.Now().AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}
	return s.ai.ReflectionQuestions(ctx, activities), nil
}
