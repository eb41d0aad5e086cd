package events

import (
	"time"

	"github.com/SIS-2025/academic-records-service/internal/models"
)

// EventType represents different types of reference sync events
type EventType string

const (
	// User events
	EventUserCreated EventType = "user.created"
	EventUserUpdated EventType = "user.updated"
	EventUserDeleted EventType = "user.deleted"

	// Subject events
	EventSubjectCreated EventType = "subject.created"
	EventSubjectUpdated EventType = "subject.updated"
	EventSubjectDeleted EventType = "subject.deleted"

	// Career events
	EventCareerCreated EventType = "career.created"
	EventCareerUpdated EventType = "career.updated"
	EventCareerDeleted EventType = "career.deleted"
)

// SyncEvent is the base event structure for all reference sync events.
// Owner schemas publish these after commit; consumers replay them into
// their local reference tables.
type SyncEvent struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Data      interface{} `json:"data"`
}

// User sync event payloads

type UserSyncEvent struct {
	UserID uint              `json:"user_id"`
	Name   string            `json:"name"`
	Email  string            `json:"email"`
	RoleID uint              `json:"role_id"`
	Status models.UserStatus `json:"status"`
}

// Subject sync event payloads

type SubjectSyncEvent struct {
	SubjectID   uint   `json:"subject_id"`
	Name        string `json:"name"`
	CareerID    uint   `json:"career_id"`
	CicleNumber int    `json:"cicle_number"`
}

// Career sync event payloads

type CareerSyncEvent struct {
	CareerID    uint   `json:"career_id"`
	Name        string `json:"name"`
	TotalCicles int    `json:"total_cicles"`
}
