package stats

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/muhtegaralfikri/intern-log-system/internal/cache"
	"github.com/muhtegaralfikri/intern-log-system/internal/models"
	"github.com/muhtegaralfikri/intern-log-system/internal/repository"
	"github.com/muhtegaralfikri/intern-log-system/pkg/logger"
)

// Mock repositories for testing
type mockUserRepo struct {
	users map[uint]*models.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*models.User)}
}

func (m *mockUserRepo) Count() (int64, error) {
	return int64(len(m.users)), nil
}

func (m *mockUserRepo) CountByRole(role models.Role) (int64, error) {
	var count int64
	for _, u := range m.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

func (m *mockUserRepo) List(role models.Role, supervisorID *uint, page, limit int) ([]models.User, int64, error) {
	var matched []models.User
	for _, u := range m.users {
		if role != "" && u.Role != role {
			continue
		}
		if supervisorID != nil && (u.SupervisorID == nil || *u.SupervisorID != *supervisorID) {
			continue
		}
		matched = append(matched, *u)
	}
	total := int64(len(matched))
	if limit > 0 {
		start := (page - 1) * limit
		if start > len(matched) {
			start = len(matched)
		}
		end := start + limit
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}
	return matched, total, nil
}

func (m *mockUserRepo) ListInterns(supervisorID *uint) ([]models.User, error) {
	users, _, err := m.List(models.RoleIntern, supervisorID, 0, 0)
	return users, err
}

func (m *mockUserRepo) GetByID(id uint) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type mockActivityRepo struct {
	total         int64
	countCalls    int
	byUser        map[uint]int64
	bySupervisor  map[uint]int64
	recent        map[uint][]models.Activity
	recentBySuper map[uint][]models.Activity
}

func newMockActivityRepo() *mockActivityRepo {
	return &mockActivityRepo{
		byUser:        make(map[uint]int64),
		bySupervisor:  make(map[uint]int64),
		recent:        make(map[uint][]models.Activity),
		recentBySuper: make(map[uint][]models.Activity),
	}
}

func (m *mockActivityRepo) Count() (int64, error) {
	m.countCalls++
	return m.total, nil
}

func (m *mockActivityRepo) CountSince(_ time.Time) (int64, error) {
	return m.total, nil
}

func (m *mockActivityRepo) CountByUser(userID uint) (int64, error) {
	return m.byUser[userID], nil
}

func (m *mockActivityRepo) CountBySupervisor(supervisorID uint) (int64, error) {
	return m.bySupervisor[supervisorID], nil
}

func (m *mockActivityRepo) TotalsByCategory() ([]repository.CategoryTotal, error) {
	return []repository.CategoryTotal{}, nil
}

func (m *mockActivityRepo) TopUsersByCount(_ int) ([]repository.UserActivityCount, error) {
	return []repository.UserActivityCount{}, nil
}

func (m *mockActivityRepo) Recent(userID uint, limit int) ([]models.Activity, error) {
	activities := m.recent[userID]
	if limit > 0 && len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}

func (m *mockActivityRepo) RecentBySupervisor(supervisorID uint, limit int) ([]models.Activity, error) {
	activities := m.recentBySuper[supervisorID]
	if limit > 0 && len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}

type mockAttendanceRepo struct {
	byUser       map[uint]int64
	bySupervisor map[uint]int64
	today        int64
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{
		byUser:       make(map[uint]int64),
		bySupervisor: make(map[uint]int64),
	}
}

func (m *mockAttendanceRepo) CountByUser(userID uint) (int64, error) {
	return m.byUser[userID], nil
}

func (m *mockAttendanceRepo) CountForDate(_ time.Time) (int64, error) {
	return m.today, nil
}

func (m *mockAttendanceRepo) CountBySupervisor(supervisorID uint) (int64, error) {
	return m.bySupervisor[supervisorID], nil
}

func (m *mockAttendanceRepo) Recent(_ uint, _ int) ([]models.AttendanceRecord, error) {
	return []models.AttendanceRecord{}, nil
}

type mockReportRepo struct {
	total        int64
	pending      int64
	byUser       map[uint]int64
	bySupervisor map[uint]int64
}

func newMockReportRepo() *mockReportRepo {
	return &mockReportRepo{
		byUser:       make(map[uint]int64),
		bySupervisor: make(map[uint]int64),
	}
}

func (m *mockReportRepo) Count(approved *bool) (int64, error) {
	if approved != nil && !*approved {
		return m.pending, nil
	}
	return m.total, nil
}

func (m *mockReportRepo) CountByUser(userID uint) (int64, error) {
	return m.byUser[userID], nil
}

func (m *mockReportRepo) CountPendingBySupervisor(supervisorID uint) (int64, error) {
	return m.bySupervisor[supervisorID], nil
}

type mockBadgeRepo struct {
	byUser map[uint]int64
}

func (m *mockBadgeRepo) GetUserBadgeCount(userID uint) (int64, error) {
	return m.byUser[userID], nil
}

type mockSkillRepo struct {
	byUser map[uint][]models.UserSkill
}

func (m *mockSkillRepo) TopUserSkills(userID uint, limit int) ([]models.UserSkill, error) {
	skills := m.byUser[userID]
	if limit > 0 && len(skills) > limit {
		skills = skills[:limit]
	}
	return skills, nil
}

type testEnv struct {
	service    *Service
	users      *mockUserRepo
	activities *mockActivityRepo
	attendance *mockAttendanceRepo
	reports    *mockReportRepo
}

func setupService(t *testing.T) *testEnv {
	t.Helper()

	log := logger.New("error", "console", "stdout")
	mr := miniredis.RunT(t)
	c := cache.NewRedisCacheFromAddr(mr.Addr(), log)

	env := &testEnv{
		users:      newMockUserRepo(),
		activities: newMockActivityRepo(),
		attendance: newMockAttendanceRepo(),
		reports:    newMockReportRepo(),
	}
	env.service = NewServiceWithInterfaces(
		env.users,
		env.activities,
		env.attendance,
		env.reports,
		&mockBadgeRepo{byUser: make(map[uint]int64)},
		&mockSkillRepo{byUser: make(map[uint][]models.UserSkill)},
		c,
		time.UTC,
		log,
	)
	return env
}

func supervised(id, supervisorID uint) *models.User {
	return &models.User{ID: id, Role: models.RoleIntern, SupervisorID: &supervisorID}
}

func TestGetAdminStatsCached(t *testing.T) {
	env := setupService(t)
	env.users.users[1] = &models.User{ID: 1, Role: models.RoleAdmin}
	env.activities.total = 12
	env.reports.total = 4
	env.reports.pending = 1

	stats, err := env.service.GetAdminStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.Activities.Total)
	assert.Equal(t, int64(3), stats.Reports.Approved)

	// Second call should be served from the cache.
	_, err = env.service.GetAdminStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, env.activities.countCalls)
}

func TestGetSupervisorStats(t *testing.T) {
	env := setupService(t)
	env.users.users[1] = supervised(1, 10)
	env.users.users[2] = supervised(2, 10)
	env.users.users[3] = supervised(3, 99)
	env.activities.bySupervisor[10] = 7
	env.attendance.bySupervisor[10] = 5
	env.reports.bySupervisor[10] = 2

	stats, err := env.service.GetSupervisorStats(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalInterns)
	assert.Equal(t, int64(7), stats.TotalActivities)
	assert.Equal(t, int64(5), stats.TotalAttendances)
	assert.Equal(t, int64(2), stats.PendingReports)
}

func TestGetInternDashboard(t *testing.T) {
	env := setupService(t)
	env.activities.byUser[7] = 9
	env.attendance.byUser[7] = 20
	env.reports.byUser[7] = 3

	dashboard, err := env.service.GetInternDashboard(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(9), dashboard.ActivityCount)
	assert.Equal(t, int64(20), dashboard.AttendanceCount)
	assert.Equal(t, int64(3), dashboard.ReportCount)
}

func TestGetInternDetail(t *testing.T) {
	env := setupService(t)
	env.users.users[7] = supervised(7, 10)
	env.activities.byUser[7] = 4

	dashboard, err := env.service.GetInternDetail(context.Background(), 10, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(4), dashboard.ActivityCount)
}

func TestGetInternDetailNotSupervised(t *testing.T) {
	env := setupService(t)
	env.users.users[7] = supervised(7, 10)
	env.users.users[8] = &models.User{ID: 8, Role: models.RoleSupervisor}

	_, err := env.service.GetInternDetail(context.Background(), 99, 7)
	assert.ErrorIs(t, err, ErrNotSupervised)

	// A supervisor account is never served as an intern, even with a match.
	_, err = env.service.GetInternDetail(context.Background(), 10, 8)
	assert.ErrorIs(t, err, ErrNotSupervised)

	_, err = env.service.GetInternDetail(context.Background(), 10, 404)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListUsers(t *testing.T) {
	env := setupService(t)
	env.users.users[1] = supervised(1, 10)
	env.users.users[2] = supervised(2, 10)
	env.users.users[3] = &models.User{ID: 3, Role: models.RoleAdmin}

	users, total, err := env.service.ListUsers(context.Background(), models.RoleIntern, nil, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, users, 2)

	users, total, err = env.service.ListUsers(context.Background(), "", nil, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, users, 2)
}
