// Package stats builds role-scoped dashboard summaries.
package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/muhtegaralfikri/intern-log-system/internal/cache"
	"github.com/muhtegaralfikri/intern-log-system/internal/models"
	"github.com/muhtegaralfikri/intern-log-system/internal/repository"
	"github.com/muhtegaralfikri/intern-log-system/pkg/logger"
)

const (
	adminStatsCacheKey = "stats:admin"
	adminStatsCacheTTL = time.Minute
)

// ErrNotSupervised is returned when a supervisor asks about an intern who
// is not assigned to them.
var ErrNotSupervised = errors.New("intern is not assigned to this supervisor")

// UserRepository interface for user counts and lookups.
type UserRepository interface {
	Count() (int64, error)
	CountByRole(role models.Role) (int64, error)
	ListInterns(supervisorID *uint) ([]models.User, error)
	List(role models.Role, supervisorID *uint, page, limit int) ([]models.User, int64, error)
	GetByID(id uint) (*models.User, error)
}

// ActivityRepository interface for activity aggregates.
type ActivityRepository interface {
	Count() (int64, error)
	CountSince(since time.Time) (int64, error)
	CountByUser(userID uint) (int64, error)
	CountBySupervisor(supervisorID uint) (int64, error)
	TotalsByCategory() ([]repository.CategoryTotal, error)
	TopUsersByCount(limit int) ([]repository.UserActivityCount, error)
	Recent(userID uint, limit int) ([]models.Activity, error)
	RecentBySupervisor(supervisorID uint, limit int) ([]models.Activity, error)
}

// AttendanceRepository interface for attendance aggregates.
type AttendanceRepository interface {
	CountByUser(userID uint) (int64, error)
	CountForDate(date time.Time) (int64, error)
	CountBySupervisor(supervisorID uint) (int64, error)
	Recent(userID uint, limit int) ([]models.AttendanceRecord, error)
}

// ReportRepository interface for report counts.
type ReportRepository interface {
	Count(approved *bool) (int64, error)
	CountByUser(userID uint) (int64, error)
	CountPendingBySupervisor(supervisorID uint) (int64, error)
}

// BadgeRepository interface for badge counts.
type BadgeRepository interface {
	GetUserBadgeCount(userID uint) (int64, error)
}

// SkillRepository interface for per-intern top skills.
type SkillRepository interface {
	TopUserSkills(userID uint, limit int) ([]models.UserSkill, error)
}

// AdminStats is the admin dashboard payload.
type AdminStats struct {
	Users struct {
		Total       int64 `json:"total"`
		Interns     int64 `json:"interns"`
		Supervisors int64 `json:"supervisors"`
		Admins      int64 `json:"admins"`
	} `json:"users"`
	Activities struct {
		Total      int64                      `json:"total"`
		Monthly    int64                      `json:"monthly"`
		Weekly     int64                      `json:"weekly"`
		ByCategory []repository.CategoryTotal `json:"by_category"`
	} `json:"activities"`
	Reports struct {
		Total    int64 `json:"total"`
		Pending  int64 `json:"pending"`
		Approved int64 `json:"approved"`
	} `json:"reports"`
	Attendance struct {
		Today int64 `json:"today"`
	} `json:"attendance"`
	TopInterns []repository.UserActivityCount `json:"top_interns"`
}

// SupervisorStats is the supervisor dashboard payload.
type SupervisorStats struct {
	TotalInterns     int64             `json:"total_interns"`
	TotalActivities  int64             `json:"total_activities"`
	TotalAttendances int64             `json:"total_attendances"`
	PendingReports   int64             `json:"pending_reports"`
	RecentActivities []models.Activity `json:"recent_activities"`
}

// InternDashboard is the intern's own dashboard payload.
type InternDashboard struct {
	ActivityCount    int64                     `json:"activity_count"`
	AttendanceCount  int64                     `json:"attendance_count"`
	ReportCount      int64                     `json:"report_count"`
	BadgeCount       int64                     `json:"badge_count"`
	TopSkills        []models.UserSkill        `json:"top_skills"`
	RecentActivities []models.Activity         `json:"recent_activities"`
	RecentAttendance []models.AttendanceRecord `json:"recent_attendance"`
}

// Service builds dashboard summaries.
type Service struct {
	userRepo       UserRepository
	activityRepo   ActivityRepository
	attendanceRepo AttendanceRepository
	reportRepo     ReportRepository
	badgeRepo      BadgeRepository
	skillRepo      SkillRepository
	cache          cache.Cache
	loc            *time.Location
	log            *logger.Logger
}

// NewService creates a new stats service.
func NewService(
	userRepo *repository.UserRepository,
	activityRepo *repository.ActivityRepository,
	attendanceRepo *repository.AttendanceRepository,
	reportRepo *repository.ReportRepository,
	badgeRepo *repository.BadgeRepository,
	skillRepo *repository.SkillRepository,
	c cache.Cache,
	loc *time.Location,
	log *logger.Logger,
) *Service {
	return &Service{
		userRepo:       userRepo,
		activityRepo:   activityRepo,
		attendanceRepo: attendanceRepo,
		reportRepo:     reportRepo,
		badgeRepo:      badgeRepo,
		skillRepo:      skillRepo,
		cache:          c,
		loc:            loc,
		log:            log,
	}
}

// NewServiceWithInterfaces creates a new stats service with interface dependencies (useful for testing).
func NewServiceWithInterfaces(
	userRepo UserRepository,
	activityRepo ActivityRepository,
	attendanceRepo AttendanceRepository,
	reportRepo ReportRepository,
	badgeRepo BadgeRepository,
	skillRepo SkillRepository,
	c cache.Cache,
	loc *time.Location,
	log *logger.Logger,
) *Service {
	return &Service{
		userRepo:       userRepo,
		activityRepo:   activityRepo,
		attendanceRepo: attendanceRepo,
		reportRepo:     reportRepo,
		badgeRepo:      badgeRepo,
		skillRepo:      skillRepo,
		cache:          c,
		loc:            loc,
		log:            log,
	}
}

func (s *Service) today() time.Time {
	now := time.Now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
}

// GetAdminStats aggregates system-wide numbers for the admin dashboard,
// cached for a minute since every count hits the database.
func (s *Service) GetAdminStats(ctx context.Context) (*AdminStats, error) {
	var cached AdminStats
	if err := cache.GetJSON(ctx, s.cache, adminStatsCacheKey, &cached); err == nil {
		return &cached, nil
	}

	stats := &AdminStats{}

	var err error
	if stats.Users.Total, err = s.userRepo.Count(); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.Users.Interns, err = s.userRepo.CountByRole(models.RoleIntern); err != nil {
		return nil, fmt.Errorf("failed to count interns: %w", err)
	}
	if stats.Users.Supervisors, err = s.userRepo.CountByRole(models.RoleSupervisor); err != nil {
		return nil, fmt.Errorf("failed to count supervisors: %w", err)
	}
	stats.Users.Admins = stats.Users.Total - stats.Users.Interns - stats.Users.Supervisors

	now := time.Now().In(s.loc)
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
	startOfWeek := s.today().AddDate(0, 0, -int(now.Weekday()))

	if stats.Activities.Total, err = s.activityRepo.Count(); err != nil {
		return nil, fmt.Errorf("failed to count activities: %w", err)
	}
	if stats.Activities.Monthly, err = s.activityRepo.CountSince(startOfMonth); err != nil {
		return nil, fmt.Errorf("failed to count monthly activities: %w", err)
	}
	if stats.Activities.Weekly, err = s.activityRepo.CountSince(startOfWeek); err != nil {
		return nil, fmt.Errorf("failed to count weekly activities: %w", err)
	}
	if stats.Activities.ByCategory, err = s.activityRepo.TotalsByCategory(); err != nil {
		return nil, fmt.Errorf("failed to aggregate categories: %w", err)
	}

	if stats.Reports.Total, err = s.reportRepo.Count(nil); err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}
	pending := false
	if stats.Reports.Pending, err = s.reportRepo.Count(&pending); err != nil {
		return nil, fmt.Errorf("failed to count pending reports: %w", err)
	}
	stats.Reports.Approved = stats.Reports.Total - stats.Reports.Pending

	if stats.Attendance.Today, err = s.attendanceRepo.CountForDate(s.today()); err != nil {
		return nil, fmt.Errorf("failed to count today's attendance: %w", err)
	}

	if stats.TopInterns, err = s.activityRepo.TopUsersByCount(5); err != nil {
		return nil, fmt.Errorf("failed to load top interns: %w", err)
	}

	if err := cache.SetJSON(ctx, s.cache, adminStatsCacheKey, stats, adminStatsCacheTTL); err != nil {
		s.log.Warn().Err(err).Msg("Failed to cache admin stats")
	}

	return stats, nil
}

// GetSupervisorStats aggregates a supervisor's interns for their dashboard.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) GetSupervisorStats(ctx context.Context, supervisorID uint) (*SupervisorStats, error) {
	stats := &SupervisorStats{}

	interns, err := s.userRepo.ListInterns(&supervisorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interns: %w", err)
	}
	stats.TotalInterns = int64(len(interns))

	if stats.TotalActivities, err = s.activityRepo.CountBySupervisor(supervisorID); err != nil {
		return nil, fmt.Errorf("failed to count activities: %w", err)
	}
	if stats.TotalAttendances, err = s.attendanceRepo.CountBySupervisor(supervisorID); err != nil {
		return nil, fmt.Errorf("failed to count attendances: %w", err)
	}
	if stats.PendingReports, err = s.reportRepo.CountPendingBySupervisor(supervisorID); err != nil {
		return nil, fmt.Errorf("failed to count pending reports: %w", err)
	}
	if stats.RecentActivities, err = s.activityRepo.RecentBySupervisor(supervisorID, 10); err != nil {
		return nil, fmt.Errorf("failed to load recent activities: %w", err)
	}

	return stats, nil
}

// GetInternDashboard aggregates an intern's own numbers.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) GetInternDashboard(ctx context.Context, userID uint) (*InternDashboard, error) {
	dashboard := &InternDashboard{}

	var err error
	if dashboard.ActivityCount, err = s.activityRepo.CountByUser(userID); err != nil {
		return nil, fmt.Errorf("failed to count activities: %w", err)
	}
	if dashboard.AttendanceCount, err = s.attendanceRepo.CountByUser(userID); err != nil {
		return nil, fmt.Errorf("failed to count attendance: %w", err)
	}
	if dashboard.ReportCount, err = s.reportRepo.CountByUser(userID); err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}
	if dashboard.BadgeCount, err = s.badgeRepo.GetUserBadgeCount(userID); err != nil {
		return nil, fmt.Errorf("failed to count badges: %w", err)
	}
	if dashboard.TopSkills, err = s.skillRepo.TopUserSkills(userID, 5); err != nil {
		return nil, fmt.Errorf("failed to load top skills: %w", err)
	}
	if dashboard.RecentActivities, err = s.activityRepo.Recent(userID, 10); err != nil {
		return nil, fmt.Errorf("failed to load recent activities: %w", err)
	}
	if dashboard.RecentAttendance, err = s.attendanceRepo.Recent(userID, 7); err != nil {
		return nil, fmt.Errorf("failed to load recent attendance: %w", err)
	}

	return dashboard, nil
}

// ListInterns returns the interns assigned to a supervisor.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) ListInterns(ctx context.Context, supervisorID uint) ([]models.User, error) {
	interns, err := s.userRepo.ListInterns(&supervisorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interns: %w", err)
	}
	return interns, nil
}

// GetInternDetail returns an intern's dashboard for a supervisor, verifying
// that the intern is actually assigned to them.
func (s *Service) GetInternDetail(ctx context.Context, supervisorID, internID uint) (*InternDashboard, error) {
	intern, err := s.userRepo.GetByID(internID)
	if err != nil {
		return nil, fmt.Errorf("failed to load intern: %w", err)
	}
	if intern.Role != models.RoleIntern || intern.SupervisorID == nil || *intern.SupervisorID != supervisorID {
		return nil, ErrNotSupervised
	}
	return s.GetInternDashboard(ctx, internID)
}

// ListUsers returns a page of users, optionally filtered by role and
// supervisor assignment.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) ListUsers(ctx context.Context, role models.Role, supervisorID *uint, page, limit int) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(role, supervisorID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}
