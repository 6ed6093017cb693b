package feedback

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/muhtegaralfikri/intern-log-system/internal/models"
	"github.com/muhtegaralfikri/intern-log-system/pkg/logger"
)

type mockFeedbackRepository struct {
	entries []models.Feedback
	nextID  uint
}

func newMockFeedbackRepository() *mockFeedbackRepository {
	return &mockFeedbackRepository{nextID: 1}
}

func (m *mockFeedbackRepository) Create(feedback *models.Feedback) error {
	feedback.ID = m.nextID
	feedback.CreatedAt = time.Now()
	m.nextID++
	m.entries = append(m.entries, *feedback)
	return nil
}

func (m *mockFeedbackRepository) GetByID(id uint) (*models.Feedback, error) {
	for i := range m.entries {
		if m.entries[i].ID == id {
			return &m.entries[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFeedbackRepository) filter(match func(models.Feedback) bool) []models.Feedback {
	var out []models.Feedback
	for _, e := range m.entries {
		if match(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func paginate(entries []models.Feedback, page, limit int) ([]models.Feedback, int64) {
	total := int64(len(entries))
	start := (page - 1) * limit
	if start >= len(entries) {
		return nil, total
	}
	end := start + limit
	if end > len(entries) {
		end = len(entries)
	}
	return entries[start:end], total
}

func (m *mockFeedbackRepository) ListReceived(userID uint, page, limit int) ([]models.Feedback, int64, error) {
	entries, total := paginate(m.filter(func(e models.Feedback) bool { return e.ReceiverID == userID }), page, limit)
	return entries, total, nil
}

func (m *mockFeedbackRepository) ListGiven(userID uint, page, limit int) ([]models.Feedback, int64, error) {
	entries, total := paginate(m.filter(func(e models.Feedback) bool { return e.GiverID == userID }), page, limit)
	return entries, total, nil
}

func (m *mockFeedbackRepository) ListByActivity(activityID uint) ([]models.Feedback, error) {
	return m.filter(func(e models.Feedback) bool { return e.ActivityID == activityID }), nil
}

func (m *mockFeedbackRepository) Delete(id uint) error {
	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockFeedbackRepository) CountGiven(userID uint) (int64, error) {
	return int64(len(m.filter(func(e models.Feedback) bool { return e.GiverID == userID }))), nil
}

func (m *mockFeedbackRepository) ReceivedRatings(userID uint) ([]models.Feedback, error) {
	return m.filter(func(e models.Feedback) bool { return e.ReceiverID == userID }), nil
}

type mockActivityRepository struct {
	activities map[uint]*models.Activity
}

func (m *mockActivityRepository) GetByID(id uint) (*models.Activity, error) {
	if a, ok := m.activities[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func setupService() (*Service, *mockFeedbackRepository, *mockActivityRepository) {
	repo := newMockFeedbackRepository()
	activityRepo := &mockActivityRepository{activities: map[uint]*models.Activity{}}
	log := logger.New("error", "text", "stdout")
	return NewServiceWithInterfaces(repo, activityRepo, log), repo, activityRepo
}

func rating(v int) *int { return &v }

func TestCreate(t *testing.T) {
	service, repo, activityRepo := setupService()
	activityRepo.activities[1] = &models.Activity{ID: 1, UserID: 7, Title: "API design"}

	entry, err := service.Create(context.Background(), 2, CreateInput{
		ActivityID: 1,
		ReceiverID: 7,
		Rating:     rating(5),
		Comment:    "Great work on this task!",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(2), entry.GiverID)
	assert.Equal(t, uint(7), entry.ReceiverID)
	assert.Len(t, repo.entries, 1)
}

func TestCreateDefaultsReceiverToActivityOwner(t *testing.T) {
	service, _, activityRepo := setupService()
	activityRepo.activities[1] = &models.Activity{ID: 1, UserID: 7}

	entry, err := service.Create(context.Background(), 2, CreateInput{
		ActivityID: 1,
		Comment:    "Nice.",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), entry.ReceiverID)
}

func TestCreateValidation(t *testing.T) {
	service, _, activityRepo := setupService()
	activityRepo.activities[1] = &models.Activity{ID: 1, UserID: 7}

	_, err := service.Create(context.Background(), 2, CreateInput{ActivityID: 1})
	assert.Error(t, err, "empty comment must be rejected")

	_, err = service.Create(context.Background(), 2, CreateInput{
		ActivityID: 1, Comment: "x", Rating: rating(6),
	})
	assert.Error(t, err, "rating above 5 must be rejected")

	_, err = service.Create(context.Background(), 2, CreateInput{
		ActivityID: 99, Comment: "x",
	})
	assert.ErrorIs(t, err, ErrActivityNotFound)
}

func TestDeleteOnlyByGiver(t *testing.T) {
	service, repo, activityRepo := setupService()
	activityRepo.activities[1] = &models.Activity{ID: 1, UserID: 7}

	entry, err := service.Create(context.Background(), 2, CreateInput{
		ActivityID: 1, Comment: "Solid.",
	})
	require.NoError(t, err)

	err = service.Delete(context.Background(), entry.ID, 7)
	assert.ErrorIs(t, err, ErrNotGiver)
	assert.Len(t, repo.entries, 1)

	require.NoError(t, service.Delete(context.Background(), entry.ID, 2))
	assert.Empty(t, repo.entries)

	err = service.Delete(context.Background(), entry.ID, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetStats(t *testing.T) {
	service, repo, _ := setupService()

	// Two rated entries and one comment-only entry for user 7.
	repo.entries = []models.Feedback{
		{ID: 1, ReceiverID: 7, GiverID: 2, Rating: rating(5)},
		{ID: 2, ReceiverID: 7, GiverID: 3, Rating: rating(4)},
		{ID: 3, ReceiverID: 7, GiverID: 2},
		{ID: 4, ReceiverID: 9, GiverID: 7, Rating: rating(1)},
	}

	stats, err := service.GetStats(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalReceived)
	assert.Equal(t, int64(1), stats.TotalGiven)
	assert.InDelta(t, 4.5, stats.AvgRating, 0.001)

	require.Len(t, stats.RatingDistribution, 5)
	assert.Equal(t, int64(1), stats.RatingDistribution[4].Count, "one rating of 5")
	assert.Equal(t, int64(1), stats.RatingDistribution[3].Count, "one rating of 4")
	assert.Equal(t, int64(0), stats.RatingDistribution[0].Count)
}

func TestGetStatsNoFeedback(t *testing.T) {
	service, _, _ := setupService()

	stats, err := service.GetStats(context.Background(), 7)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalReceived)
	assert.Zero(t, stats.AvgRating)
}

func TestGetReceivedPagination(t *testing.T) {
	service, repo, _ := setupService()
	for i := 0; i < 5; i++ {
		repo.entries = append(repo.entries, models.Feedback{
			ID:         uint(i + 1),
			ReceiverID: 7,
			GiverID:    2,
			CreatedAt:  time.Now().Add(time.Duration(i) * time.Minute),
		})
	}

	entries, total, err := service.GetReceived(context.Background(), 7, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, entries, 2)
	assert.Equal(t, uint(5), entries[0].ID, "newest first")

	entries, _, err = service.GetReceived(context.Background(), 7, 3, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
