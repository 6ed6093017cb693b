package models

import (
	"time"
)

// Skill is a catalog entry interns accrue hours against.
type Skill struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;size:100" json:"name"`
	Category  string    `gorm:"not null;size:100" json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Skill model.
func (Skill) TableName() string {
	return "skills"
}

// MaxSkillLevel caps per-skill progression.
const MaxSkillLevel = 100

// SkillLevelForHours maps accumulated hours to a level: one level per
// ten hours, capped at MaxSkillLevel.
func SkillLevelForHours(hours int) int {
	level := hours / 10
	if level > MaxSkillLevel {
		return MaxSkillLevel
	}
	return level
}

// UserSkill tracks one user's progress in one skill.
type UserSkill struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_skill" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	SkillID   uint      `gorm:"not null;uniqueIndex:idx_user_skill" json:"skill_id"`
	Skill     Skill     `gorm:"foreignKey:SkillID" json:"skill,omitempty"`
	Hours     int       `gorm:"not null;default:0" json:"hours"`
	Level     int       `gorm:"not null;default:0" json:"level"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for UserSkill model.
func (UserSkill) TableName() string {
	return "user_skills"
}
