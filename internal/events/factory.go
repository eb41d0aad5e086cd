package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	eventSource  = "academic-records-service"
	eventVersion = "1.0"
)

// NewSyncEvent builds a sync event envelope around a payload.
func NewSyncEvent(eventType EventType, data interface{}) *SyncEvent {
	return &SyncEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}
