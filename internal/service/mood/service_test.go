package mood

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhtegaralfikri/intern-log-system/internal/models"
	"github.com/muhtegaralfikri/intern-log-system/pkg/logger"
)

type mockMoodRepository struct {
	entries []*models.MoodEntry
	nextID  uint
}

func (m *mockMoodRepository) Create(entry *models.MoodEntry) error {
	m.nextID++
	entry.ID = m.nextID
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockMoodRepository) Update(entry *models.MoodEntry) error {
	for i, e := range m.entries {
		if e.ID == entry.ID {
			m.entries[i] = entry
		}
	}
	return nil
}

func (m *mockMoodRepository) GetByUserAndDate(userID uint, date time.Time) (*models.MoodEntry, error) {
	for _, e := range m.entries {
		if e.UserID == userID && e.Date.Equal(date) {
			return e, nil
		}
	}
	return nil, nil
}

func (m *mockMoodRepository) List(userID uint, page, limit int) ([]models.MoodEntry, int64, error) {
	var result []models.MoodEntry
	for _, e := range m.entries {
		if e.UserID == userID {
			result = append(result, *e)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockMoodRepository) GetByUserSince(userID uint, since time.Time) ([]models.MoodEntry, error) {
	var result []models.MoodEntry
	for _, e := range m.entries {
		if e.UserID == userID && !e.Date.Before(since) {
			result = append(result, *e)
		}
	}
	return result, nil
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

func setupMoodService() (*Service, *mockMoodRepository, *mockActivityRepository) {
	repo := &mockMoodRepository{}
	activityRepo := &mockActivityRepository{}
	log := logger.New("error", "text", "stdout")
	return NewServiceWithInterfaces(repo, activityRepo, time.UTC, log), repo, activityRepo
}

func TestRecord_NewEntry(t *testing.T) {
	service, repo, _ := setupMoodService()

	entry, err := service.Record(context.Background(), 1, RecordInput{
		Mood:   models.MoodGood,
		Energy: 7,
		Notes:  "productive day",
	})

	require.NoError(t, err)
	assert.Equal(t, models.MoodGood, entry.Mood)
	assert.Len(t, repo.entries, 1)
}

func TestRecord_SameDayReplaces(t *testing.T) {
	service, repo, _ := setupMoodService()

	_, err := service.Record(context.Background(), 1, RecordInput{Mood: models.MoodBad, Energy: 3})
	require.NoError(t, err)

	entry, err := service.Record(context.Background(), 1, RecordInput{Mood: models.MoodVeryGood, Energy: 9})
	require.NoError(t, err)

	assert.Len(t, repo.entries, 1, "same-day submission must replace, not duplicate")
	assert.Equal(t, models.MoodVeryGood, entry.Mood)
	assert.Equal(t, 9, entry.Energy)
}

func TestRecord_Validation(t *testing.T) {
	service, _, _ := setupMoodService()

	_, err := service.Record(context.Background(), 1, RecordInput{Mood: "ECSTATIC", Energy: 5})
	assert.Error(t, err, "unknown mood must be rejected")

	_, err = service.Record(context.Background(), 1, RecordInput{Mood: models.MoodGood, Energy: 0})
	assert.Error(t, err, "energy below range must be rejected")

	_, err = service.Record(context.Background(), 1, RecordInput{Mood: models.MoodGood, Energy: 11})
	assert.Error(t, err, "energy above range must be rejected")
}

func TestToday_NoEntry(t *testing.T) {
	service, _, _ := setupMoodService()

	entry, err := service.Today(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestGetAnalytics(t *testing.T) {
	service, repo, activityRepo := setupMoodService()

	today := service.today()
	yesterday := today.AddDate(0, 0, -1)

	repo.entries = []*models.MoodEntry{
		{ID: 1, UserID: 1, Date: yesterday, Mood: models.MoodGood, Energy: 8},
		{ID: 2, UserID: 1, Date: today, Mood: models.MoodNeutral, Energy: 4},
	}
	activityRepo.activities = []models.Activity{
		{UserID: 1, Date: yesterday, Duration: 300},
		{UserID: 1, Date: yesterday, Duration: 60},
		{UserID: 1, Date: today, Duration: 120},
	}

	analytics, err := service.GetAnalytics(context.Background(), 1, 30)
	require.NoError(t, err)

	assert.Equal(t, 2, analytics.TotalEntries)
	// (4 + 3) / 2 = 3.5
	assert.InDelta(t, 3.5, analytics.AvgMood, 0.001)
	// (8 + 4) / 2 = 6.0
	assert.InDelta(t, 6.0, analytics.AvgEnergy, 0.001)
	assert.Equal(t, 1, analytics.MoodDistribution[models.MoodGood])
	assert.Equal(t, 1, analytics.MoodDistribution[models.MoodNeutral])

	require.Len(t, analytics.ProductivityCorrelation, 2)
	assert.Equal(t, 360, analytics.ProductivityCorrelation[0].Productivity)
	assert.Equal(t, 120, analytics.ProductivityCorrelation[1].Productivity)
}

func TestGetAnalytics_Empty(t *testing.T) {
	service, _, _ := setupMoodService()

	analytics, err := service.GetAnalytics(context.Background(), 1, 30)
	require.NoError(t, err)

	assert.Equal(t, 0, analytics.TotalEntries)
	assert.Zero(t, analytics.AvgMood)
	assert.Zero(t, analytics.AvgEnergy)
}
