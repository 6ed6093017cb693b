// Package models defines domain models for the intern log system.
package models

import (
	"time"
)

// Role identifies what a user is allowed to do.
type Role string

// User roles.
const (
	RoleIntern     Role = "INTERN"
	RoleSupervisor Role = "SUPERVISOR"
	RoleAdmin      Role = "ADMIN"
)

// User represents an account in the system. Interns carry a reference to
// their supervisor; supervisors and admins do not.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	PasswordHash string    `gorm:"not null;size:255" json:"-"`
	Name         string    `gorm:"not null;size:255" json:"name"`
	Role         Role      `gorm:"not null;size:20;default:'INTERN'" json:"role"`
	Department   string    `gorm:"size:100" json:"department"`
	AvatarURL    string    `gorm:"size:512" json:"avatar_url"`
	SupervisorID *uint     `gorm:"index" json:"supervisor_id,omitempty"`
	Supervisor   *User     `gorm:"foreignKey:SupervisorID" json:"supervisor,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for User model.
func (User) TableName() string {
	return "users"
}

// IsIntern reports whether the user holds the intern role.
func (u *User) IsIntern() bool {
	return u.Role == RoleIntern
}
