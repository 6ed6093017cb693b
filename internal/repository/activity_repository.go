package repository

import (
	"time"

	"github.com/muhtegaralfikri/intern-log-system/internal/models"
)

// ActivityRepository handles activity-log database operations.
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new activity repository.
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create creates a new activity.
func (r *ActivityRepository) Create(activity *models.Activity) error {
	return r.db.Create(activity).Error
}

// GetByID retrieves an activity regardless of owner.
func (r *ActivityRepository) GetByID(id uint) (*models.Activity, error) {
	var activity models.Activity
	if err := r.db.First(&activity, id).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

// GetByIDAndUser retrieves an activity owned by the given user.
func (r *ActivityRepository) GetByIDAndUser(id, userID uint) (*models.Activity, error) {
	var activity models.Activity
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&activity).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

// List retrieves a user's activities, newest first, paginated.
func (r *ActivityRepository) List(userID uint, page, limit int) ([]models.Activity, int64, error) {
	var total int64
	if err := r.db.Model(&models.Activity{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}

	var activities []models.Activity
	err := r.db.
		Where("user_id = ?", userID).
		Order("date DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&activities).Error
	return activities, total, err
}

// Delete removes an activity owned by the given user.
func (r *ActivityRepository) Delete(id, userID uint) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Activity{}).Error
}

// RecentDates retrieves the dates of a user's most recent activities,
// newest first. Duplicate calendar days are preserved.
func (r *ActivityRepository) RecentDates(userID uint, limit int) ([]time.Time, error) {
	var dates []time.Time
	err := r.db.Model(&models.Activity{}).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Pluck("date", &dates).Error
	return dates, err
}

// MinutesLoggedSince sums a user's activity duration from the given
// instant onward.
func (r *ActivityRepository) MinutesLoggedSince(userID uint, since time.Time) (int, error) {
	var total *int
	err := r.db.Model(&models.Activity{}).
		Where("user_id = ? AND date >= ?", userID, since).
		Select("SUM(duration)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// CountByUser returns a user's lifetime activity count.
func (r *ActivityRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Activity{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// GetByUserAndRange retrieves a user's activities inside [start, end],
// oldest first.
func (r *ActivityRepository) GetByUserAndRange(userID uint, start, end time.Time) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date ASC").
		Find(&activities).Error
	return activities, err
}

// Recent retrieves a user's most recent activities, newest first.
func (r *ActivityRepository) Recent(userID uint, limit int) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}

// RecentBySupervisor retrieves the latest activities across one
// supervisor's interns, with users preloaded.
func (r *ActivityRepository) RecentBySupervisor(supervisorID uint, limit int) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.
		Joins("JOIN users ON users.id = activities.user_id").
		Where("users.supervisor_id = ?", supervisorID).
		Preload("User").
		Order("activities.date DESC").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}

// Count returns the total number of activities.
func (r *ActivityRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Activity{}).Count(&count).Error
	return count, err
}

// CountSince returns the number of activities dated at or after the
// given instant.
func (r *ActivityRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Activity{}).
		Where("date >= ?", since).
		Count(&count).Error
	return count, err
}

// CountBySupervisor returns the number of activities across one
// supervisor's interns.
func (r *ActivityRepository) CountBySupervisor(supervisorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Activity{}).
		Joins("JOIN users ON users.id = activities.user_id").
		Where("users.supervisor_id = ?", supervisorID).
		Count(&count).Error
	return count, err
}

// CategoryTotal aggregates activity count and minutes per category.
type CategoryTotal struct {
	Category     string `json:"category"`
	Count        int64  `json:"count"`
	TotalMinutes int64  `json:"total_minutes"`
}

// TotalsByCategory aggregates all activities by category.
func (r *ActivityRepository) TotalsByCategory() ([]CategoryTotal, error) {
	var totals []CategoryTotal
	err := r.db.Model(&models.Activity{}).
		Select("category, COUNT(id) AS count, COALESCE(SUM(duration), 0) AS total_minutes").
		Group("category").
		Order("count DESC").
		Scan(&totals).Error
	return totals, err
}

// UserActivityCount pairs a user with their activity count.
type UserActivityCount struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Count  int64  `json:"count"`
}

// TopUsersByCount returns the users with the most activities.
func (r *ActivityRepository) TopUsersByCount(limit int) ([]UserActivityCount, error) {
	var top []UserActivityCount
	err := r.db.Model(&models.Activity{}).
		Select("activities.user_id, users.name, COUNT(activities.id) AS count").
		Joins("JOIN users ON users.id = activities.user_id").
		Group("activities.user_id, users.name").
		Order("count DESC").
		Limit(limit).
		Scan(&top).Error
	return top, err
}

// ActivityTotals aggregates one user's activity count and minutes over a
// window.
type ActivityTotals struct {
	Count   int64
	Minutes int64
}

// TotalsByUserSince aggregates per-user activity count and minutes from the
// given instant onward.
func (r *ActivityRepository) TotalsByUserSince(since time.Time) (map[uint]ActivityTotals, error) {
	type row struct {
		UserID  uint
		Count   int64
		Minutes int64
	}
	var rows []row
	err := r.db.Model(&models.Activity{}).
		Select("user_id, COUNT(*) AS count, COALESCE(SUM(duration), 0) AS minutes").
		Where("date >= ?", since).
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[uint]ActivityTotals, len(rows))
	for _, r := range rows {
		totals[r.UserID] = ActivityTotals{Count: r.Count, Minutes: r.Minutes}
	}
	return totals, nil
}
