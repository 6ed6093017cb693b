package models

import (
	"time"
)

// Feedback is a supervisor's note on one logged activity: an optional
// 1..5 rating plus a comment, from a giver to the activity's intern.
type Feedback struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ActivityID uint      `gorm:"not null;index" json:"activity_id"`
	Activity   Activity  `gorm:"foreignKey:ActivityID" json:"activity,omitempty"`
	GiverID    uint      `gorm:"not null;index" json:"giver_id"`
	Giver      User      `gorm:"foreignKey:GiverID" json:"giver,omitempty"`
	ReceiverID uint      `gorm:"not null;index" json:"receiver_id"`
	Receiver   User      `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
	Rating     *int      `json:"rating,omitempty"`
	Comment    string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for Feedback model.
func (Feedback) TableName() string {
	return "feedback"
}
