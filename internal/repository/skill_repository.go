package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/muhtegaralfikri/intern-log-system/internal/models"
)

// SkillRepository handles skill catalog and per-user progress operations.
type SkillRepository struct {
	db *DB
}

// NewSkillRepository creates a new skill repository.
func NewSkillRepository(db *DB) *SkillRepository {
	return &SkillRepository{db: db}
}

// Create creates a new skill.
func (r *SkillRepository) Create(skill *models.Skill) error {
	return r.db.Create(skill).Error
}

// GetByID retrieves a skill by its ID.
func (r *SkillRepository) GetByID(id uint) (*models.Skill, error) {
	var skill models.Skill
	if err := r.db.First(&skill, id).Error; err != nil {
		return nil, err
	}
	return &skill, nil
}

// GetAll retrieves the skill catalog ordered by name.
func (r *SkillRepository) GetAll() ([]models.Skill, error) {
	var skills []models.Skill
	err := r.db.Order("name ASC").Find(&skills).Error
	return skills, err
}

// GetUserSkill retrieves one user's progress for a skill, or nil when
// they have none yet.
func (r *SkillRepository) GetUserSkill(userID, skillID uint) (*models.UserSkill, error) {
	var us models.UserSkill
	err := r.db.Where("user_id = ? AND skill_id = ?", userID, skillID).First(&us).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &us, nil
}

// GetUserSkills retrieves a user's skill progress with skills
// preloaded, highest level first.
func (r *SkillRepository) GetUserSkills(userID uint) ([]models.UserSkill, error) {
	var userSkills []models.UserSkill
	err := r.db.
		Where("user_id = ?", userID).
		Preload("Skill").
		Order("level DESC").
		Find(&userSkills).Error
	return userSkills, err
}

// TopUserSkills retrieves a user's skills with the most hours.
func (r *SkillRepository) TopUserSkills(userID uint, limit int) ([]models.UserSkill, error) {
	var userSkills []models.UserSkill
	err := r.db.
		Where("user_id = ?", userID).
		Preload("Skill").
		Order("hours DESC").
		Limit(limit).
		Find(&userSkills).Error
	return userSkills, err
}

// SaveUserSkill creates or updates a user's progress row.
func (r *SkillRepository) SaveUserSkill(us *models.UserSkill) error {
	return r.db.Save(us).Error
}
