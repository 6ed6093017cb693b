// Command server runs the intern log system HTTP API, scheduler, and
// metrics endpoint.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muhtegaralfikri/intern-log-system/internal/ai"
	"github.com/muhtegaralfikri/intern-log-system/internal/api"
	"github.com/muhtegaralfikri/intern-log-system/internal/api/handlers"
	"github.com/muhtegaralfikri/intern-log-system/internal/cache"
	"github.com/muhtegaralfikri/intern-log-system/internal/config"
	"github.com/muhtegaralfikri/intern-log-system/internal/repository"
	"github.com/muhtegaralfikri/intern-log-system/internal/seed"
	"github.com/muhtegaralfikri/intern-log-system/internal/service/activities"
	"github.com/muhtegaralfikri/intern-log-system/internal/service/attendance"
	"github.com/muhtegaralfikri/intern-log-system/internal/service/auth"
	"github.com/muhtegaralfikri/intern-log-system/internal/service/badges"
	"github.com/muhtegaralfikri/intern-log-system/internal/service/feedback"
	"github.com/muhtegaralfikri/intern-log-system/internal/service/leaderboard"
	"github.com/muhtegaralfikri/intern-log-system/internal/service/mood"
	"github.com/muhtegaralfikri/intern-log-system/internal/service/reports"
	"github.com/muhtegaralfikri/intern-log-system/internal/service/scheduler"
	"github.com/muhtegaralfikri/intern-log-system/internal/service/skills"
	"github.com/muhtegaralfikri/intern-log-system/internal/service/stats"
	"github.com/muhtegaralfikri/intern-log-system/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("Server exited with error")
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	// Database
	db, err := repository.NewDB(&cfg.Database.Postgres, log)
	if err != nil {
		return err
	}

	if err := repository.RunMigrations(&cfg.Database.Postgres, log); err != nil {
		return err
	}

	// Cache
	redisCache, err := cache.NewRedisCache(&cfg.Database.Redis, log)
	if err != nil {
		return err
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	officeRepo := repository.NewOfficeRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	moodRepo := repository.NewMoodRepository(db)
	reportRepo := repository.NewReportRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	loc, err := cfg.Attendance.GetLocation()
	if err != nil {
		return fmt.Errorf("invalid attendance timezone: %w", err)
	}

	// Seed reference data
	if cfg.Seed.Enabled {
		seeder := seed.NewSeeder(badgeRepo, officeRepo, log)
		if err := seeder.Run(cfg.Seed.File); err != nil {
			return fmt.Errorf("failed to apply seed catalog: %w", err)
		}
	}

	// Services
	authService := auth.NewService(userRepo, &cfg.Auth, log)
	attendanceService, err := attendance.NewService(attendanceRepo, officeRepo, userRepo, redisCache, &cfg.Attendance, loc, log)
	if err != nil {
		return err
	}
	activityService := activities.NewService(activityRepo, log)
	badgeService := badges.NewService(badgeRepo, activityRepo, attendanceRepo, userRepo, loc, log)
	skillService := skills.NewService(skillRepo, log)
	moodService := mood.NewService(moodRepo, activityRepo, loc, log)
	aiClient := ai.NewClient(&cfg.AI, log)
	reportService := reports.NewService(reportRepo, activityRepo, skillRepo, aiClient, log)
	feedbackService := feedback.NewService(feedbackRepo, activityRepo, log)
	statsService := stats.NewService(userRepo, activityRepo, attendanceRepo, reportRepo, badgeRepo, skillRepo, redisCache, loc, log)
	leaderboardService := leaderboard.NewService(activityRepo, badgeRepo, userRepo, log)

	// Scheduler
	sched := scheduler.NewService(cfg, badgeService, attendanceService, log)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	// Router
	router := api.NewRouter(cfg, api.Handlers{
		Auth:         handlers.NewAuthHandler(authService, log),
		Attendance:   handlers.NewAttendanceHandler(attendanceService, log),
		Activity:     handlers.NewActivityHandler(activityService, log),
		Gamification: handlers.NewGamificationHandler(badgeService, leaderboardService, log),
		Skill:        handlers.NewSkillHandler(skillService, log),
		Mood:         handlers.NewMoodHandler(moodService, log),
		Report:       handlers.NewReportHandler(reportService, log),
		Feedback:     handlers.NewFeedbackHandler(feedbackService, log),
		Dashboard:    handlers.NewDashboardHandler(statsService, log),
	}, authService, log)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info().Msg("Server stopped")
	return nil
}
