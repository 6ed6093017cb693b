package models

import (
	"time"
)

// ReportType classifies a generated report.
type ReportType string

// Report types.
const (
	ReportWeekly  ReportType = "WEEKLY"
	ReportMonthly ReportType = "MONTHLY"
	ReportFinal   ReportType = "FINAL"
)

// Report is a periodic internship report, optionally carrying an
// AI-generated summary of the period's activities.
type Report struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	User        User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Title       string     `gorm:"not null;size:255" json:"title"`
	Content     string     `gorm:"type:text" json:"content"`
	Type        ReportType `gorm:"not null;size:20" json:"type"`
	PeriodStart time.Time  `gorm:"not null" json:"period_start"`
	PeriodEnd   time.Time  `gorm:"not null" json:"period_end"`
	AISummary   string     `gorm:"type:text" json:"ai_summary"`
	IsApproved  bool       `gorm:"not null;default:false" json:"is_approved"`
	ReviewNote  string     `gorm:"type:text" json:"review_note"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName specifies the table name for Report model.
func (Report) TableName() string {
	return "reports"
}
