package models

import (
	"time"
)

// AttendanceStatus classifies a day of attendance.
type AttendanceStatus string

// Attendance statuses.
const (
	StatusPresent AttendanceStatus = "PRESENT"
	StatusLate    AttendanceStatus = "LATE"
	StatusAbsent  AttendanceStatus = "ABSENT"
	StatusLeave   AttendanceStatus = "LEAVE"
)

// AttendanceRecord holds one user's attendance for one calendar day.
// At most one record exists per (user, date); check-out, when set, is
// never earlier than check-in.
type AttendanceRecord struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	UserID uint      `gorm:"not null;uniqueIndex:idx_attendance_user_date" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Date   time.Time `gorm:"not null;uniqueIndex:idx_attendance_user_date" json:"date"`

	CheckIn        *time.Time `json:"check_in"`
	CheckInLat     *float64   `json:"check_in_lat"`
	CheckInLng     *float64   `json:"check_in_lng"`
	CheckInAddress string     `gorm:"size:512" json:"check_in_address"`
	CheckInPhoto   string     `gorm:"size:512" json:"check_in_photo"`

	CheckOut        *time.Time `json:"check_out"`
	CheckOutLat     *float64   `json:"check_out_lat"`
	CheckOutLng     *float64   `json:"check_out_lng"`
	CheckOutAddress string     `gorm:"size:512" json:"check_out_address"`
	CheckOutPhoto   string     `gorm:"size:512" json:"check_out_photo"`

	IsInRadius bool             `gorm:"not null;default:false" json:"is_in_radius"`
	Status     AttendanceStatus `gorm:"not null;size:20;default:'ABSENT'" json:"status"`
	Notes      string           `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for AttendanceRecord model.
func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// WorkDuration returns the time between check-in and check-out, or zero
// when either is missing.
func (a *AttendanceRecord) WorkDuration() time.Duration {
	if a.CheckIn == nil || a.CheckOut == nil {
		return 0
	}
	return a.CheckOut.Sub(*a.CheckIn)
}
