package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSyncEvent(t *testing.T) {
	payload := UserSyncEvent{UserID: 7, Name: "Ana", Email: "ana@example.com", RoleID: 3}
	event := NewSyncEvent(EventUserCreated, payload)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, EventUserCreated, event.Type)
	assert.Equal(t, "academic-records-service", event.Source)
	assert.Equal(t, "1.0", event.Version)
	assert.False(t, event.Timestamp.IsZero())
	assert.Equal(t, payload, event.Data)
}

func TestMockEventPublisher(t *testing.T) {
	publisher := NewMockEventPublisher(nil)
	ctx := context.Background()

	err := publisher.PublishSyncEvent(ctx, NewSyncEvent(EventSubjectCreated, SubjectSyncEvent{
		SubjectID:   1,
		Name:        "Programación I",
		CareerID:    1,
		CicleNumber: 1,
	}))
	require.NoError(t, err)

	err = publisher.PublishSyncEvent(ctx, NewSyncEvent(EventSubjectDeleted, SubjectSyncEvent{SubjectID: 1}))
	require.NoError(t, err)

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 2)
	assert.Equal(t, EventSubjectCreated, published[0].Type)
	assert.Equal(t, EventSubjectDeleted, published[1].Type)

	publisher.ClearEvents()
	assert.Empty(t, publisher.GetPublishedEvents())
}
