package activities

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

type mockActivityRepository struct {
	activities []models.Activity
	nextID     uint
}

func newMockActivityRepository() *mockActivityRepository {
	return &mockActivityRepository{nextID: 1}
}

func (m *mockActivityRepository) Create(activity *models.Activity) error {
	activity.ID = m.nextID
	m.nextID++
	m.activities = append(m.activities, *activity)
	return nil
}

func (m *mockActivityRepository) GetByIDAndUser(id, userID uint) (*models.Activity, error) {
	for i := range m.activities {
		if m.activities[i].ID == id && m.activities[i].UserID == userID {
			return &m.activities[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockActivityRepository) List(userID uint, page, limit int) ([]models.Activity, int64, error) {
	var owned []models.Activity
	for _, a := range m.activities {
		if a.UserID == userID {
			owned = append(owned, a)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].Date.After(owned[j].Date) })

	total := int64(len(owned))
	start := (page - 1) * limit
	if start >= len(owned) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[start:end], total, nil
}

func (m *mockActivityRepository) Delete(id, userID uint) error {
	for i := range m.activities {
		if m.activities[i].ID == id && m.activities[i].UserID == userID {
			m.activities = append(m.activities[:i], m.activities[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockActivityRepository) GetByUserAndRange(userID uint, start, end time.Time) ([]models.Activity, error) {
	var out []models.Activity
	for _, a := range m.activities {
		if a.UserID == userID && !a.Date.Before(start) && a.Date.Before(end) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockActivityRepository) Recent(userID uint, limit int) ([]models.Activity, error) {
	owned, _, err := m.List(userID, 1, limit)
	return owned, err
}

func setupService() (*Service, *mockActivityRepository) {
	repo := newMockActivityRepository()
	log := logger.New("error", "console", "stdout")
	return NewServiceWithInterfaces(repo, log), repo
}

func TestCreate(t *testing.T) {
	svc, repo := setupService()
	ctx := context.Background()

	activity, err := svc.Create(ctx, 1, CreateInput{
		Title:    "Implemented login endpoint",
		Category: "backend",
		Duration: 120,
		Date:     time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.NotZero(t, activity.ID)
	assert.Equal(t, uint(1), activity.UserID)
	assert.Len(t, repo.activities, 1)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := setupService()
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, CreateInput{Category: "backend", Duration: 60})
	assert.Error(t, err, "missing title should be rejected")

	_, err = svc.Create(ctx, 1, CreateInput{Title: "Standup", Duration: 0})
	assert.Error(t, err, "zero duration should be rejected")

	_, err = svc.Create(ctx, 1, CreateInput{Title: "Standup", Duration: -15})
	assert.Error(t, err, "negative duration should be rejected")
}

func TestGetScopedToOwner(t *testing.T) {
	svc, _ := setupService()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreateInput{Title: "Code review", Duration: 30, Date: time.Now()})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Code review", got.Title)

	_, err = svc.Get(ctx, created.ID, 2)
	assert.ErrorIs(t, err, ErrNotFound, "another user's activity should look missing")

	_, err = svc.Get(ctx, 999, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, repo := setupService()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreateInput{Title: "Write docs", Duration: 45, Date: time.Now()})
	require.NoError(t, err)

	err = svc.Delete(ctx, created.ID, 2)
	assert.ErrorIs(t, err, ErrNotFound, "delete must be owner-scoped")
	assert.Len(t, repo.activities, 1)

	require.NoError(t, svc.Delete(ctx, created.ID, 1))
	assert.Empty(t, repo.activities)

	err = svc.Delete(ctx, created.ID, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPagination(t *testing.T) {
	svc, _ := setupService()
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, 1, CreateInput{
			Title:    "Daily work",
			Duration: 60,
			Date:     base.AddDate(0, 0, i),
		})
		require.NoError(t, err)
	}

	page1, total, err := svc.List(ctx, 1, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page1, 2)
	assert.True(t, page1[0].Date.After(page1[1].Date), "newest first")

	page3, _, err := svc.List(ctx, 1, 3, 2)
	require.NoError(t, err)
	assert.Len(t, page3, 1)
}

func TestGetByRange(t *testing.T) {
	svc, _ := setupService()
	ctx := context.Background()

	for _, day := range []int{1, 10, 20} {
		_, err := svc.Create(ctx, 1, CreateInput{
			Title:    "Sprint work",
			Duration: 90,
			Date:     time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}

	start := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	got, err := svc.GetByRange(ctx, 1, start, end)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 10, got[0].Date.Day())
}
