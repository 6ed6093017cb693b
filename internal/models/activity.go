package models

import (
	"time"
)

// Activity is one logged unit of internship work.
type Activity struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Title       string    `gorm:"not null;size:255" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"not null;size:100;index" json:"category"`
	Duration    int       `gorm:"not null" json:"duration"` // minutes
	Date        time.Time `gorm:"not null;index" json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for Activity model.
func (Activity) TableName() string {
	return "activities"
}
