package repository

import (
	"github.com/muhtegaralfikri/intern-log-system/internal/models"
)

// FeedbackRepository handles activity-feedback database operations.
type FeedbackRepository struct {
	db *DB
}

// NewFeedbackRepository creates a new feedback repository.
func NewFeedbackRepository(db *DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create creates a new feedback entry.
func (r *FeedbackRepository) Create(feedback *models.Feedback) error {
	return r.db.Create(feedback).Error
}

// GetByID retrieves a feedback entry.
func (r *FeedbackRepository) GetByID(id uint) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := r.db.First(&feedback, id).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}

// ListReceived retrieves feedback addressed to a user with giver and
// activity preloaded, newest first, paginated.
func (r *FeedbackRepository) ListReceived(userID uint, page, limit int) ([]models.Feedback, int64, error) {
	return r.list("receiver_id", userID, page, limit, "Giver", "Activity")
}

// ListGiven retrieves feedback written by a user with receiver and
// activity preloaded, newest first, paginated.
func (r *FeedbackRepository) ListGiven(userID uint, page, limit int) ([]models.Feedback, int64, error) {
	return r.list("giver_id", userID, page, limit, "Receiver", "Activity")
}

func (r *FeedbackRepository) list(column string, userID uint, page, limit int, preloads ...string) ([]models.Feedback, int64, error) {
	var total int64
	if err := r.db.Model(&models.Feedback{}).
		Where(column+" = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}

	query := r.db.Where(column+" = ?", userID)
	for _, preload := range preloads {
		query = query.Preload(preload)
	}

	var entries []models.Feedback
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&entries).Error
	return entries, total, err
}

// ListByActivity retrieves all feedback on one activity with the giver
// preloaded, newest first.
func (r *FeedbackRepository) ListByActivity(activityID uint) ([]models.Feedback, error) {
	var entries []models.Feedback
	err := r.db.
		Where("activity_id = ?", activityID).
		Preload("Giver").
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

// Delete removes a feedback entry.
func (r *FeedbackRepository) Delete(id uint) error {
	return r.db.Delete(&models.Feedback{}, id).Error
}

// CountGiven returns the number of feedback entries a user has written.
func (r *FeedbackRepository) CountGiven(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Feedback{}).
		Where("giver_id = ?", userID).
		Count(&count).Error
	return count, err
}

// ReceivedRatings returns all feedback addressed to a user, for
// rating aggregation.
func (r *FeedbackRepository) ReceivedRatings(userID uint) ([]models.Feedback, error) {
	var entries []models.Feedback
	err := r.db.
		Where("receiver_id = ?", userID).
		Find(&entries).Error
	return entries, err
}
