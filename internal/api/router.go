// Package api assembles the gin router from handlers and middleware.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/muhtegaralfikri/intern-log-system/internal/api/handlers"
	"github.com/muhtegaralfikri/intern-log-system/internal/api/middleware"
	"github.com/muhtegaralfikri/intern-log-system/internal/config"
	"github.com/muhtegaralfikri/intern-log-system/internal/models"
	"github.com/muhtegaralfikri/intern-log-system/pkg/logger"
)

// Handlers bundles the handler set the router mounts.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Attendance   *handlers.AttendanceHandler
	Activity     *handlers.ActivityHandler
	Gamification *handlers.GamificationHandler
	Skill        *handlers.SkillHandler
	Mood         *handlers.MoodHandler
	Report       *handlers.ReportHandler
	Feedback     *handlers.FeedbackHandler
	Dashboard    *handlers.DashboardHandler
}

// NewRouter builds the HTTP router with all routes and role gates.
func NewRouter(cfg *config.Config, h Handlers, tokens middleware.TokenParser, log *logger.Logger) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", handlers.Health)
	if cfg.Metrics.Enabled {
		path := cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(promhttp.Handler()))
	}

	api := r.Group("/api/v1")

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	// Authenticated routes, any role
	authed := api.Group("", middleware.AuthRequired(tokens))
	{
		authed.GET("/auth/profile", h.Auth.GetProfile)
		authed.PUT("/auth/profile", h.Auth.UpdateProfile)
		authed.POST("/auth/change-password", h.Auth.ChangePassword)

		authed.GET("/badges", h.Gamification.GetBadgeCatalog)
		authed.GET("/badges/me", h.Gamification.GetMyBadges)
		authed.GET("/badges/:id", h.Gamification.GetBadgeByID)
		authed.GET("/leaderboard", h.Gamification.GetLeaderboard)

		authed.GET("/skills", h.Skill.ListSkills)

		authed.POST("/feedback", h.Feedback.Create)
		authed.GET("/feedback/received", h.Feedback.GetReceived)
		authed.GET("/feedback/given", h.Feedback.GetGiven)
		authed.GET("/feedback/stats", h.Feedback.GetStats)
		authed.GET("/feedback/activity/:id", h.Feedback.GetByActivity)
		authed.DELETE("/feedback/:id", h.Feedback.Delete)
	}

	// Intern routes
	intern := authed.Group("", middleware.RequireRole(models.RoleIntern))
	{
		intern.POST("/attendance/check-in", h.Attendance.CheckIn)
		intern.POST("/attendance/check-out", h.Attendance.CheckOut)
		intern.GET("/attendance/today", h.Attendance.Today)
		intern.GET("/attendance/history", h.Attendance.History)
		intern.GET("/attendance/summary", h.Attendance.MonthlySummary)

		intern.POST("/activities", h.Activity.Create)
		intern.GET("/activities", h.Activity.List)
		intern.GET("/activities/:id", h.Activity.Get)
		intern.DELETE("/activities/:id", h.Activity.Delete)

		intern.POST("/badges/evaluate", h.Gamification.EvaluateMyBadges)

		intern.POST("/skills/:id/hours", h.Skill.AddHours)
		intern.GET("/skills/progress", h.Skill.GetProgress)
		intern.GET("/skills/analytics", h.Skill.GetAnalytics)

		intern.POST("/mood", h.Mood.Record)
		intern.GET("/mood", h.Mood.List)
		intern.GET("/mood/today", h.Mood.Today)
		intern.GET("/mood/analytics", h.Mood.GetAnalytics)

		intern.POST("/reports", h.Report.Create)
		intern.GET("/reports", h.Report.List)
		intern.GET("/reports/:id", h.Report.Get)

		intern.GET("/ai/suggestions", h.Report.SuggestTasks)
		intern.GET("/ai/prompts", h.Report.DailyPrompts)
		intern.GET("/ai/reflection", h.Report.ReflectionQuestions)

		intern.GET("/dashboard", h.Dashboard.GetInternDashboard)
	}

	// Supervisor routes
	supervisor := authed.Group("/supervisor", middleware.RequireRole(models.RoleSupervisor, models.RoleAdmin))
	{
		supervisor.GET("/stats", h.Dashboard.GetSupervisorStats)
		supervisor.GET("/reports", h.Report.ListForSupervisor)
		supervisor.POST("/reports/:id/review", h.Report.Review)
		supervisor.GET("/leaderboard", h.Gamification.GetTeamLeaderboard)
		supervisor.GET("/interns", h.Dashboard.GetInterns)
		supervisor.GET("/interns/:id", h.Dashboard.GetInternDetail)
	}

	// Admin routes
	admin := authed.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/stats", h.Dashboard.GetAdminStats)
		admin.GET("/users", h.Dashboard.ListUsers)
		admin.GET("/reports", h.Report.ListAll)

		admin.POST("/badges", h.Gamification.CreateBadge)
		admin.PUT("/badges/:id", h.Gamification.UpdateBadge)
		admin.DELETE("/badges/:id", h.Gamification.DeleteBadge)

		admin.GET("/offices", h.Attendance.ListOffices)
		admin.POST("/offices", h.Attendance.CreateOffice)
		admin.PUT("/offices/:id", h.Attendance.UpdateOffice)
		admin.DELETE("/offices/:id", h.Attendance.DeleteOffice)

		admin.POST("/skills", h.Skill.CreateSkill)
	}

	log.Info().
		Str("environment", cfg.Server.Environment).
		Bool("metrics", cfg.Metrics.Enabled).
		Msg("Router configured")

	return r
}
