package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/muhtegaralfikri/intern-log-system/internal/models"
)

// MoodRepository handles mood-entry database operations.
type MoodRepository struct {
	db *DB
}

// NewMoodRepository creates a new mood repository.
func NewMoodRepository(db *DB) *MoodRepository {
	return &MoodRepository{db: db}
}

// Create creates a new mood entry.
func (r *MoodRepository) Create(entry *models.MoodEntry) error {
	return r.db.Create(entry).Error
}

// Update updates an existing mood entry.
func (r *MoodRepository) Update(entry *models.MoodEntry) error {
	return r.db.Save(entry).Error
}

// GetByUserAndDate retrieves the entry for one user on one day, or nil
// when none exists.
func (r *MoodRepository) GetByUserAndDate(userID uint, date time.Time) (*models.MoodEntry, error) {
	var entry models.MoodEntry
	err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// List retrieves a user's mood entries, newest first, paginated.
func (r *MoodRepository) List(userID uint, page, limit int) ([]models.MoodEntry, int64, error) {
	var total int64
	if err := r.db.Model(&models.MoodEntry{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}

	var entries []models.MoodEntry
	err := r.db.
		Where("user_id = ?", userID).
		Order("date DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&entries).Error
	return entries, total, err
}

// GetByUserSince retrieves a user's entries dated at or after the given
// instant, oldest first.
func (r *MoodRepository) GetByUserSince(userID uint, since time.Time) ([]models.MoodEntry, error) {
	var entries []models.MoodEntry
	err := r.db.
		Where("user_id = ? AND date >= ?", userID, since).
		Order("date ASC").
		Find(&entries).Error
	return entries, err
}
