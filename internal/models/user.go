package models

import (
	"time"

	"gorm.io/datatypes"
)

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
)

// Numeric role ids as stored in the users schema.
const (
	RoleIDAdmin   uint = 1
	RoleIDTeacher uint = 2
	RoleIDStudent uint = 3
)

type UserStatus string

const (
	StatusActive    UserStatus = "active"
	StatusSuspended UserStatus = "suspended"
	StatusInactive  UserStatus = "inactive"
)

// RoleForID maps a stored role id to its API-level role name.
func RoleForID(roleID uint) UserRole {
	switch roleID {
	case RoleIDAdmin:
		return RoleAdmin
	case RoleIDTeacher:
		return RoleTeacher
	case RoleIDStudent:
		return RoleStudent
	default:
		return ""
	}
}

type Role struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null;size:50"`
}

func (Role) TableName() string {
	return "role"
}

// User is the owning record in the users schema. The profiles schema only
// sees the denormalized UserReference copy written at creation time.
type User struct {
	ID       uint       `json:"id" gorm:"primaryKey"`
	Name     string     `json:"name" gorm:"not null;size:100"`
	Email    string     `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password string     `json:"-" gorm:"not null;size:255"`
	Phone    *string    `json:"phone" gorm:"size:20"`
	Age      *int       `json:"age"`
	RoleID   uint       `json:"role_id" gorm:"not null;index"`
	Status   UserStatus `json:"status" gorm:"default:active;size:20;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Role Role `json:"role" gorm:"foreignKey:RoleID"`
}

func (User) TableName() string {
	return "users"
}

// SyncOutbox records a pending reference-sync event alongside the owning
// write, in the same transaction. Rows are published after commit; the
// synchronization stays one-way and best-effort.
type SyncOutbox struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	EventType   string         `json:"event_type" gorm:"not null;size:100;index"`
	Payload     datatypes.JSON `json:"payload" gorm:"type:jsonb"`
	PublishedAt *time.Time     `json:"published_at" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
}

func (SyncOutbox) TableName() string {
	return "sync_outbox"
}
