package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/decomontenegro/truelabel-sub001/internal/domain"
	"github.com/decomontenegro/truelabel-sub001/internal/queue"
)

// BrokerRelay forwards events to the validation-events broker queue for
// consumers outside this process.
type BrokerRelay struct {
	broker    queue.Broker
	queueName string
	// serializes publishes so per-entry order survives the broker hop
	mu sync.Mutex
}

func NewBrokerRelay(broker queue.Broker) *BrokerRelay {
	return &BrokerRelay{broker: broker, queueName: queue.QueueValidationEvents}
}

func (r *BrokerRelay) Notify(ctx context.Context, event domain.QueueEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.broker.Publish(ctx, r.queueName, body); err != nil {
		return fmt.Errorf("failed to relay %s: %w", event.EventType, err)
	}
	return nil
}

// Multi delivers to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, event domain.QueueEvent) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops every event.
type Discard struct{}

func (Discard) Notify(context.Context, domain.QueueEvent) error { return nil }
