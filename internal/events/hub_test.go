package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/decomontenegro/truelabel-sub001/internal/domain"
	"github.com/decomontenegro/truelabel-sub001/internal/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()

	hub := NewHub(HubConfig{ClientBufferSize: 10}, zap.NewNop().Sugar())
	hub.Start(context.Background())
	t.Cleanup(hub.Stop)
	return hub
}

func receive(t *testing.T, ch <-chan domain.QueueEvent) domain.QueueEvent {
	t.Helper()

	select {
	case e, ok := <-ch:
		require.True(t, ok, "channel closed")
		return e
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
	return domain.QueueEvent{}
}

func TestHub_PreservesOrder(t *testing.T) {
	hub := newTestHub(t)

	ch, cleanup, err := hub.Subscribe(context.Background(), nil)
	require.NoError(t, err)
	defer cleanup()

	types := []string{domain.EventQueueCreated, domain.EventQueueAssigned, domain.EventQueueStatusChanged}
	for _, typ := range types {
		require.NoError(t, hub.Notify(context.Background(), domain.QueueEvent{EventType: typ, QueueID: "q1"}))
	}

	for _, typ := range types {
		assert.Equal(t, typ, receive(t, ch).EventType)
	}
}

func TestHub_RoleScopedDelivery(t *testing.T) {
	hub := newTestHub(t)
	ctx := context.Background()

	admin, cleanupAdmin, err := hub.Subscribe(ctx, ScopeFor(domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}))
	require.NoError(t, err)
	defer cleanupAdmin()

	brand, cleanupBrand, err := hub.Subscribe(ctx, ScopeFor(domain.Actor{ID: "brand-1", Role: domain.RoleBrand}))
	require.NoError(t, err)
	defer cleanupBrand()

	require.NoError(t, hub.Notify(ctx, domain.QueueEvent{EventType: domain.EventQueueCreated, QueueID: "other", RequestedByID: "brand-2"}))
	require.NoError(t, hub.Notify(ctx, domain.QueueEvent{EventType: domain.EventQueueCreated, QueueID: "mine", RequestedByID: "brand-1"}))

	assert.Equal(t, "other", receive(t, admin).QueueID)
	assert.Equal(t, "mine", receive(t, admin).QueueID)
	assert.Equal(t, "mine", receive(t, brand).QueueID, "brand only sees its own entries")
}

func TestHub_NotifyWhenStopped(t *testing.T) {
	hub := NewHub(HubConfig{}, zap.NewNop().Sugar())

	err := hub.Notify(context.Background(), domain.QueueEvent{EventType: domain.EventQueueCreated})
	assert.ErrorIs(t, err, ErrHubNotRunning)
}

func TestHub_MaxClients(t *testing.T) {
	hub := NewHub(HubConfig{MaxClients: 1}, zap.NewNop().Sugar())
	hub.Start(context.Background())
	defer hub.Stop()

	_, cleanup, err := hub.Subscribe(context.Background(), nil)
	require.NoError(t, err)
	defer cleanup()

	_, _, err = hub.Subscribe(context.Background(), nil)
	assert.ErrorIs(t, err, ErrTooManyClients)
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	hub := newTestHub(t)

	ch, cleanup, err := hub.Subscribe(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, hub.ClientCount())

	cleanup()
	assert.Equal(t, 0, hub.ClientCount())

	_, ok := <-ch
	assert.False(t, ok)
}

func TestBrokerRelay_PublishesJSON(t *testing.T) {
	broker := queue.NewMemoryBroker()
	relay := NewBrokerRelay(broker)

	event := domain.QueueEvent{EventType: domain.EventQueueAssigned, QueueID: "q1", AssignedToID: "r1"}
	require.NoError(t, relay.Notify(context.Background(), event))

	pending := broker.Pending(queue.QueueValidationEvents)
	require.Len(t, pending, 1)

	var got domain.QueueEvent
	require.NoError(t, json.Unmarshal(pending[0], &got))
	assert.Equal(t, "r1", got.AssignedToID)
}

type failingNotifier struct{}

func (failingNotifier) Notify(context.Context, domain.QueueEvent) error {
	return errors.New("boom")
}

func TestMulti_JoinsErrors(t *testing.T) {
	hub := newTestHub(t)
	ch, cleanup, err := hub.Subscribe(context.Background(), nil)
	require.NoError(t, err)
	defer cleanup()

	m := Multi{failingNotifier{}, hub, Discard{}}
	err = m.Notify(context.Background(), domain.QueueEvent{EventType: domain.EventQueueCreated})
	assert.EqualError(t, err, "boom")
	assert.Equal(t, domain.EventQueueCreated, receive(t, ch).EventType, "later notifiers still run")
}
