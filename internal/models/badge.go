package models

import (
	"encoding/json"
	"time"
)

// Badge represents a gamification reward that interns can earn.
type Badge struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"uniqueIndex;not null;size:100" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Icon        string          `gorm:"size:50" json:"icon"`
	Condition   json.RawMessage `gorm:"type:jsonb" json:"condition"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName specifies the table name for Badge model.
func (Badge) TableName() string {
	return "badges"
}

// ConditionKind tags a badge condition variant.
type ConditionKind string

// Known condition kinds. Anything else decodes to KindUnknown, which
// never evaluates true.
const (
	KindStreak         ConditionKind = "streak"
	KindEarlyBird      ConditionKind = "early_bird"
	KindProductiveWeek ConditionKind = "productive_week"
	KindTaskMaster     ConditionKind = "task_master"
	KindUnknown        ConditionKind = "unknown"
)

// BadgeCondition is the decoded form of a badge's condition descriptor.
// Only the field matching the kind is meaningful.
type BadgeCondition struct {
	Kind  ConditionKind `json:"kind"`
	Days  int           `json:"days,omitempty"`  // streak
	Hours int           `json:"hours,omitempty"` // productive_week
	Count int           `json:"count,omitempty"` // task_master
}

// DecodeCondition parses a raw condition descriptor into its tagged form.
// Unknown or malformed descriptors become KindUnknown rather than errors;
// missing thresholds fall back to the catalog defaults.
func DecodeCondition(raw json.RawMessage) BadgeCondition {
	var c BadgeCondition
	if err := json.Unmarshal(raw, &c); err != nil {
		return BadgeCondition{Kind: KindUnknown}
	}

	switch c.Kind {
	case KindStreak:
		if c.Days <= 0 {
			c.Days = 7
		}
	case KindEarlyBird:
		// no threshold
	case KindProductiveWeek:
		if c.Hours <= 0 {
			c.Hours = 40
		}
	case KindTaskMaster:
		if c.Count <= 0 {
			c.Count = 50
		}
	default:
		return BadgeCondition{Kind: KindUnknown}
	}

	return c
}

// Encode serializes the condition back to its wire form.
func (c BadgeCondition) Encode() json.RawMessage {
	raw, _ := json.Marshal(c)
	return raw
}

// UserBadge records a badge earned by a user. Unique per (user, badge):
// a badge is awarded at most once.
type UserBadge struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_user_badge" json:"user_id"`
	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	BadgeID  uint      `gorm:"not null;uniqueIndex:idx_user_badge" json:"badge_id"`
	Badge    Badge     `gorm:"foreignKey:BadgeID" json:"badge,omitempty"`
	EarnedAt time.Time `gorm:"not null" json:"earned_at"`
}

// TableName specifies the table name for UserBadge model.
func (UserBadge) TableName() string {
	return "user_badges"
}
