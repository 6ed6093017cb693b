package repository

import (
	"time"

	"gorm.io/gorm/clause"

	"github.com/muhtegaralfikri/intern-log-system/internal/models"
)

// BadgeRepository handles badge-related database operations.
type BadgeRepository struct {
	db *DB
}

// NewBadgeRepository creates a new badge repository.
func NewBadgeRepository(db *DB) *BadgeRepository {
	return &BadgeRepository{db: db}
}

// Create creates a new badge in the database.
func (r *BadgeRepository) Create(badge *models.Badge) error {
	return r.db.Create(badge).Error
}

// GetByID retrieves a badge by its ID.
func (r *BadgeRepository) GetByID(id uint) (*models.Badge, error) {
	var badge models.Badge
	if err := r.db.First(&badge, id).Error; err != nil {
		return nil, err
	}
	return &badge, nil
}

// GetByName retrieves a badge by its name.
func (r *BadgeRepository) GetByName(name string) (*models.Badge, error) {
	var badge models.Badge
	if err := r.db.Where("name = ?", name).First(&badge).Error; err != nil {
		return nil, err
	}
	return &badge, nil
}

// GetAll retrieves all badges from the database.
func (r *BadgeRepository) GetAll() ([]models.Badge, error) {
	var badges []models.Badge
	err := r.db.Order("created_at ASC").Find(&badges).Error
	return badges, err
}

// Update updates an existing badge in the database.
func (r *BadgeRepository) Update(badge *models.Badge) error {
	return r.db.Save(badge).Error
}

// Delete deletes a badge by its ID.
func (r *BadgeRepository) Delete(id uint) error {
	return r.db.Delete(&models.Badge{}, id).Error
}

// AwardBadge awards a badge to a user. Awarding a badge the user
// already holds is a no-op: the insert rides on the (user, badge)
// uniqueness constraint, so concurrent evaluations cannot double-award
// or surface a spurious error.
func (r *BadgeRepository) AwardBadge(userID, badgeID uint) error {
	userBadge := &models.UserBadge{
		UserID:   userID,
		BadgeID:  badgeID,
		EarnedAt: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(userBadge).Error
}

// HasUserEarnedBadge checks if a user has earned a specific badge.
func (r *BadgeRepository) HasUserEarnedBadge(userID, badgeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.UserBadge{}).
		Where("user_id = ? AND badge_id = ?", userID, badgeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetUserBadges retrieves all badges earned by a user with badge
// details preloaded, newest first.
func (r *BadgeRepository) GetUserBadges(userID uint) ([]models.UserBadge, error) {
	var userBadges []models.UserBadge
	err := r.db.
		Where("user_id = ?", userID).
		Preload("Badge").
		Order("earned_at DESC").
		Find(&userBadges).Error
	return userBadges, err
}

// GetUserBadgeCount returns the total number of badges a user has earned.
func (r *BadgeRepository) GetUserBadgeCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.UserBadge{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// GetBadgeHoldersCount returns the number of users who have earned a
// specific badge.
func (r *BadgeRepository) GetBadgeHoldersCount(badgeID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.UserBadge{}).
		Where("badge_id = ?", badgeID).
		Count(&count).Error
	return count, err
}

// Upsert creates the badge or refreshes an existing one matched by name.
// Used by the seeder.
func (r *BadgeRepository) Upsert(badge *models.Badge) error {
	var existing models.Badge
	err := r.db.Where("name = ?", badge.Name).First(&existing).Error
	if err != nil {
		return r.db.Create(badge).Error
	}

	existing.Description = badge.Description
	existing.Icon = badge.Icon
	existing.Condition = badge.Condition
	return r.db.Save(&existing).Error
}
