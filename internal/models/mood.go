package models

import (
	"time"
)

// Mood is a self-reported wellbeing level.
type Mood string

// Mood levels, worst to best.
const (
	MoodVeryBad  Mood = "VERY_BAD"
	MoodBad      Mood = "BAD"
	MoodNeutral  Mood = "NEUTRAL"
	MoodGood     Mood = "GOOD"
	MoodVeryGood Mood = "VERY_GOOD"
)

// Score maps a mood to a 1..5 numeric value for averaging; unknown moods
// score zero.
func (m Mood) Score() int {
	switch m {
	case MoodVeryBad:
		return 1
	case MoodBad:
		return 2
	case MoodNeutral:
		return 3
	case MoodGood:
		return 4
	case MoodVeryGood:
		return 5
	default:
		return 0
	}
}

// MoodEntry is one user's mood for one day. Unique per (user, date).
type MoodEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_mood_user_date" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Date      time.Time `gorm:"not null;uniqueIndex:idx_mood_user_date" json:"date"`
	Mood      Mood      `gorm:"not null;size:20" json:"mood"`
	Energy    int       `gorm:"not null" json:"energy"` // 1..10
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for MoodEntry model.
func (MoodEntry) TableName() string {
	return "mood_entries"
}
