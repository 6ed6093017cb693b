// Package scheduler provides daily cron jobs for badge evaluation and absent marking.
package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/muhtegaralfikri/intern-log-system/internal/config"
	prommetrics "github.com/muhtegaralfikri/intern-log-system/internal/metrics"
	"github.com/muhtegaralfikri/intern-log-system/pkg/logger"
)

// BadgeEvaluator runs badge condition checks across all interns.
type BadgeEvaluator interface {
	EvaluateAllBadges(ctx context.Context) (int, error)
}

// AbsenteeMarker records absent attendance for interns who never checked in.
type AbsenteeMarker interface {
	MarkAbsentees(ctx context.Context, date time.Time) (int, error)
}

// Service handles daily job scheduling.
type Service struct {
	config       *config.Config
	badgeService BadgeEvaluator
	attendance   AbsenteeMarker
	log          *logger.Logger
	cron         *cron.Cron
	location     *time.Location
}

// NewService creates a new scheduler service.
func NewService(
	cfg *config.Config,
	badgeService BadgeEvaluator,
	attendance AbsenteeMarker,
	log *logger.Logger,
) *Service {
	return &Service{
		config:       cfg,
		badgeService: badgeService,
		attendance:   attendance,
		log:          log,
	}
}

// Start initializes and starts the cron scheduler.
func (s *Service) Start() error {
	if !s.config.Scheduler.Enabled {
		s.log.Info().Msg("Scheduler is disabled in configuration")
		return nil
	}

	location, err := s.config.Scheduler.GetLocation()
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", s.config.Scheduler.Timezone, err)
	}
	s.location = location

	s.cron = cron.New(cron.WithLocation(location))

	// Register badge evaluation job if configured
	if s.config.Scheduler.BadgeEvaluationTime != "" && s.badgeService != nil {
		expr, err := buildCronExpression(s.config.Scheduler.BadgeEvaluationTime, s.config.Scheduler.SkipWeekends)
		if err != nil {
			return fmt.Errorf("failed to build badge evaluation schedule: %w", err)
		}

		_, err = s.cron.AddFunc(expr, func() {
			s.runBadgeEvaluation(context.Background())
		})
		if err != nil {
			return fmt.Errorf("failed to register badge evaluation job: %w", err)
		}

		s.log.Info().
			Str("schedule", expr).
			Msg("Badge evaluation job registered")
	}

	// Register absent marking job if configured
	if s.config.Scheduler.AbsentMarkingTime != "" && s.attendance != nil {
		expr, err := buildCronExpression(s.config.Scheduler.AbsentMarkingTime, s.config.Scheduler.SkipWeekends)
		if err != nil {
			return fmt.Errorf("failed to build absent marking schedule: %w", err)
		}

		_, err = s.cron.AddFunc(expr, func() {
			s.runAbsentMarking(context.Background())
		})
		if err != nil {
			return fmt.Errorf("failed to register absent marking job: %w", err)
		}

		s.log.Info().
			Str("schedule", expr).
			Msg("Absent marking job registered")
	}

	s.cron.Start()

	entries := s.cron.Entries()
	nextRun := ""
	if len(entries) > 0 {
		nextRun = entries[0].Next.Format(time.RFC3339)
	}

	s.log.Info().
		Str("timezone", s.config.Scheduler.Timezone).
		Bool("skip_weekends", s.config.Scheduler.SkipWeekends).
		Int("jobs", len(entries)).
		Str("next_run", nextRun).
		Msg("Scheduler started successfully")

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Service) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.log.Info().Msg("Scheduler stopped")
	}
}

// buildCronExpression generates a cron expression from a "HH:MM" time string.
func buildCronExpression(timeStr string, skipWeekends bool) (string, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time format %q, expected HH:MM", timeStr)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour %q", parts[0])
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute %q", parts[1])
	}

	// Format: "minute hour day month weekday"
	if skipWeekends {
		// Monday-Friday only (1-5)
		return fmt.Sprintf("%d %d * * 1-5", minute, hour), nil
	}

	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}

// runBadgeEvaluation executes the daily badge evaluation job.
func (s *Service) runBadgeEvaluation(ctx context.Context) {
	start := time.Now()

	defer func() {
		prommetrics.ObserveSchedulerJobDuration("badge_evaluation", time.Since(start).Seconds())
		prommetrics.SetSchedulerLastRun()
	}()

	s.log.Info().Msg("Running badge evaluation job")

	awardsCount, err := s.badgeService.EvaluateAllBadges(ctx)
	if err != nil {
		s.log.Error().
			Err(err).
			Dur("duration", time.Since(start)).
			Msg("Badge evaluation job failed")
		prommetrics.RecordSchedulerJobRun("badge_evaluation", "error")
		return
	}

	prommetrics.RecordSchedulerJobRun("badge_evaluation", "success")

	s.log.Info().
		Int("badges_awarded", awardsCount).
		Dur("duration", time.Since(start)).
		Msg("Badge evaluation job completed successfully")
}

// runAbsentMarking executes the daily absent marking job.
func (s *Service) runAbsentMarking(ctx context.Context) {
	start := time.Now()

	defer func() {
		prommetrics.ObserveSchedulerJobDuration("absent_marking", time.Since(start).Seconds())
		prommetrics.SetSchedulerLastRun()
	}()

	s.log.Info().Msg("Running absent marking job")

	marked, err := s.attendance.MarkAbsentees(ctx, time.Now().In(s.location))
	if err != nil {
		s.log.Error().
			Err(err).
			Dur("duration", time.Since(start)).
			Msg("Absent marking job failed")
		prommetrics.RecordSchedulerJobRun("absent_marking", "error")
		return
	}

	prommetrics.RecordSchedulerJobRun("absent_marking", "success")

	s.log.Info().
		Int("marked_absent", marked).
		Dur("duration", time.Since(start)).
		Msg("Absent marking job completed successfully")
}
