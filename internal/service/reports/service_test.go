package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/muhtegaralfikri/intern-log-system/internal/models"
	"github.com/muhtegaralfikri/intern-log-system/pkg/logger"
)

type mockReportRepository struct {
	reports map[uint]*models.Report
	nextID  uint
}

func newMockReportRepository() *mockReportRepository {
	return &mockReportRepository{reports: make(map[uint]*models.Report), nextID: 1}
}

func (m *mockReportRepository) Create(report *models.Report) error {
	report.ID = m.nextID
	m.nextID++
	m.reports[report.ID] = report
	return nil
}

func (m *mockReportRepository) Update(report *models.Report) error {
	m.reports[report.ID] = report
	return nil
}

func (m *mockReportRepository) GetByID(id uint) (*models.Report, error) {
	if r, ok := m.reports[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReportRepository) GetByIDAndUser(id, userID uint) (*models.Report, error) {
	if r, ok := m.reports[id]; ok && r.UserID == userID {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReportRepository) List(userID uint, page, limit int) ([]models.Report, int64, error) {
	var result []models.Report
	for _, r := range m.reports {
		if r.UserID == userID {
			result = append(result, *r)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockReportRepository) ListAll(approved *bool, page, limit int) ([]models.Report, int64, error) {
	var result []models.Report
	for _, r := range m.reports {
		if approved == nil || r.IsApproved == *approved {
			result = append(result, *r)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockReportRepository) ListBySupervisor(supervisorID uint, approved *bool) ([]models.Report, error) {
	reports, _, err := m.ListAll(approved, 1, 100)
	return reports, err
}

type mockActivityRepository struct {
	activities []models.Activity
}

func (m *mockActivityRepository) GetByUserAndRange(userID uint, start, end time.Time) ([]models.Activity, error) {
	var result []models.Activity
	for _, a := range m.activities {
		if a.UserID == userID && !a.Date.Before(start) && a.Date.Before(end) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *mockActivityRepository) Recent(userID uint, limit int) ([]models.Activity, error) {
	if len(m.activities) > limit {
		return m.activities[:limit], nil
	}
	return m.activities, nil
}

type mockSkillRepository struct {
	skills []models.UserSkill
}

func (m *mockSkillRepository) GetUserSkills(userID uint) ([]models.UserSkill, error) {
	return m.skills, nil
}

// fakeAI records which narrative method was invoked.
type fakeAI struct {
	enabled    bool
	lastMethod string
}

func (f *fakeAI) Enabled() bool { return f.enabled }

func (f *fakeAI) SummarizeActivities(ctx context.Context, activities []models.Activity) string {
	f.lastMethod = "summarize"
	return "summary text"
}

func (f *fakeAI) GenerateWeeklyReport(ctx context.Context, activities []models.Activity, start, end time.Time) string {
	f.lastMethod = "weekly"
	return "weekly report text"
}

func (f *fakeAI) SuggestTasks(ctx context.Context, skills []models.UserSkill, recent []models.Activity) []string {
	return []string{"task one", "task two"}
}

func (f *fakeAI) DailyPrompts(ctx context.Context) []string {
	return []string{"prompt"}
}

func (f *fakeAI) ReflectionQuestions(ctx context.Context, activities []models.Activity) []string {
	return []string{"question"}
}

func setupReportService() (*Service, *mockReportRepository, *mockActivityRepository, *fakeAI) {
	repo := newMockReportRepository()
	activityRepo := &mockActivityRepository{}
	skillRepo := &mockSkillRepository{}
	ai := &fakeAI{}
	log := logger.New("error", "text", "stdout")
	return NewServiceWithInterfaces(repo, activityRepo, skillRepo, ai, log), repo, activityRepo, ai
}

func period() (time.Time, time.Time) {
	return time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
}

func TestCreate_PlainReport(t *testing.T) {
	service, repo, _, ai := setupReportService()
	start, end := period()

	report, err := service.Create(context.Background(), 1, CreateInput{
		Title:       "Week 1",
		Content:     "wrote code",
		Type:        models.ReportWeekly,
		PeriodStart: start,
		PeriodEnd:   end,
	})

	require.NoError(t, err)
	assert.Empty(t, report.AISummary)
	assert.Empty(t, ai.lastMethod, "AI must not be called without WithSummary")
	assert.Len(t, repo.reports, 1)
}

func TestCreate_WeeklyUsesWeeklyNarrative(t *testing.T) {
	service, _, _, ai := setupReportService()
	start, end := period()

	report, err := service.Create(context.Background(), 1, CreateInput{
		Title:       "Week 1",
		Type:        models.ReportWeekly,
		PeriodStart: start,
		PeriodEnd:   end,
		WithSummary: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "weekly report text", report.AISummary)
	assert.Equal(t, "weekly", ai.lastMethod)
}

func TestCreate_MonthlyUsesSummary(t *testing.T) {
	service, _, _, ai := setupReportService()
	start, end := period()

	report, err := service.Create(context.Background(), 1, CreateInput{
		Title:       "March",
		Type:        models.ReportMonthly,
		PeriodStart: start,
		PeriodEnd:   end,
		WithSummary: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "summary text", report.AISummary)
	assert.Equal(t, "summarize", ai.lastMethod)
}

func TestCreate_Validation(t *testing.T) {
	service, _, _, _ := setupReportService()
	start, end := period()

	_, err := service.Create(context.Background(), 1, CreateInput{
		Type: models.ReportWeekly, PeriodStart: start, PeriodEnd: end,
	})
	assert.Error(t, err, "missing title must be rejected")

	_, err = service.Create(context.Background(), 1, CreateInput{
		Title: "x", Type: models.ReportWeekly, PeriodStart: end, PeriodEnd: start,
	})
	assert.Error(t, err, "inverted period must be rejected")
}

func TestGet_OwnerScoped(t *testing.T) {
	service, repo, _, _ := setupReportService()
	start, end := period()
	require.NoError(t, repo.Create(&models.Report{UserID: 1, Title: "r", PeriodStart: start, PeriodEnd: end}))

	_, err := service.Get(context.Background(), 1, 1)
	require.NoError(t, err)

	_, err = service.Get(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReview(t *testing.T) {
	service, repo, _, _ := setupReportService()
	start, end := period()
	require.NoError(t, repo.Create(&models.Report{UserID: 1, Title: "r", PeriodStart: start, PeriodEnd: end}))

	report, err := service.Review(context.Background(), 1, true, "solid work")
	require.NoError(t, err)
	assert.True(t, report.IsApproved)
	assert.Equal(t, "solid work", report.ReviewNote)

	_, err = service.Review(context.Background(), 42, true, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSuggestTasks(t *testing.T) {
	service, _, _, _ := setupReportService()

	suggestions, err := service.SuggestTasks(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"task one", "task two"}, suggestions)
}
