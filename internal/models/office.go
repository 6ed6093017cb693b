package models

import (
	"time"
)

// OfficeLocation is the circular geofence a check-in must fall inside.
// Reference data managed by administrators.
type OfficeLocation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:100" json:"name"`
	Latitude  float64   `gorm:"not null" json:"latitude"`
	Longitude float64   `gorm:"not null" json:"longitude"`
	Radius    float64   `gorm:"not null" json:"radius"` // meters
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for OfficeLocation model.
func (OfficeLocation) TableName() string {
	return "office_locations"
}
