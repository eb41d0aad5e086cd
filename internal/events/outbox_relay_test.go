package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/SIS-2025/academic-records-service/internal/models"
)

// outboxStore implements the outbox slice of UserRepository backed by a
// slice, which is all the relay touches.
type outboxStore struct {
	entries []*models.SyncOutbox
}

func (s *outboxStore) Create(ctx context.Context, user *models.User) error { return nil }
func (s *outboxStore) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return nil, errors.New("not implemented")
}
func (s *outboxStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, errors.New("not implemented")
}
func (s *outboxStore) Update(ctx context.Context, user *models.User) error { return nil }
func (s *outboxStore) Delete(ctx context.Context, id uint) error           { return nil }
func (s *outboxStore) ExistsByEmail(ctx context.Context, email string, excludeID *uint) (bool, error) {
	return false, nil
}

func (s *outboxStore) AppendOutbox(ctx context.Context, entry *models.SyncOutbox) error {
	entry.ID = uint(len(s.entries) + 1)
	s.entries = append(s.entries, entry)
	return nil
}

func (s *outboxStore) PendingOutbox(ctx context.Context, limit int) ([]*models.SyncOutbox, error) {
	var pending []*models.SyncOutbox
	for _, e := range s.entries {
		if e.PublishedAt == nil {
			pending = append(pending, e)
		}
		if limit > 0 && len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (s *outboxStore) MarkOutboxPublished(ctx context.Context, ids []uint) error {
	now := time.Now()
	for _, e := range s.entries {
		for _, id := range ids {
			if e.ID == id {
				e.PublishedAt = &now
			}
		}
	}
	return nil
}

func TestOutboxRelay_DrainOnce(t *testing.T) {
	store := &outboxStore{}
	ctx := context.Background()

	require.NoError(t, store.AppendOutbox(ctx, &models.SyncOutbox{
		EventType: string(EventUserCreated),
		Payload:   datatypes.JSON(`{"user_id":7,"name":"Ana"}`),
	}))
	require.NoError(t, store.AppendOutbox(ctx, &models.SyncOutbox{
		EventType: string(EventUserUpdated),
		Payload:   datatypes.JSON(`{"user_id":7,"name":"Ana María"}`),
	}))

	publisher := NewMockEventPublisher(nil)
	relay := NewOutboxRelay(store, publisher, nil, OutboxRelayConfig{})

	require.NoError(t, relay.DrainOnce(ctx))

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 2)
	assert.Equal(t, EventUserCreated, published[0].Type)
	assert.Equal(t, EventUserUpdated, published[1].Type)

	pending, err := store.PendingOutbox(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, pending)

	// A second pass has nothing to publish.
	require.NoError(t, relay.DrainOnce(ctx))
	assert.Len(t, publisher.GetPublishedEvents(), 2)
}

func TestOutboxRelay_SkipsMalformedPayload(t *testing.T) {
	store := &outboxStore{}
	ctx := context.Background()

	require.NoError(t, store.AppendOutbox(ctx, &models.SyncOutbox{
		EventType: string(EventUserCreated),
		Payload:   datatypes.JSON(`{not json`),
	}))
	require.NoError(t, store.AppendOutbox(ctx, &models.SyncOutbox{
		EventType: string(EventUserCreated),
		Payload:   datatypes.JSON(`{"user_id":8}`),
	}))

	publisher := NewMockEventPublisher(nil)
	relay := NewOutboxRelay(store, publisher, nil, OutboxRelayConfig{})

	require.NoError(t, relay.DrainOnce(ctx))

	// Only the valid entry is published; both are marked so the bad row
	// does not stall the queue.
	assert.Len(t, publisher.GetPublishedEvents(), 1)
	pending, err := store.PendingOutbox(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestOutboxRelay_StopsBatchOnPublishError(t *testing.T) {
	store := &outboxStore{}
	ctx := context.Background()

	require.NoError(t, store.AppendOutbox(ctx, &models.SyncOutbox{
		EventType: string(EventUserCreated),
		Payload:   datatypes.JSON(`{"user_id":9}`),
	}))

	relay := NewOutboxRelay(store, failingPublisher{}, nil, OutboxRelayConfig{})
	require.NoError(t, relay.DrainOnce(ctx))

	// Entry stays pending for the next pass.
	pending, err := store.PendingOutbox(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

type failingPublisher struct{}

func (failingPublisher) PublishSyncEvent(ctx context.Context, event *SyncEvent) error {
	return errors.New("broker unavailable")
}

func (failingPublisher) Close() error { return nil }
