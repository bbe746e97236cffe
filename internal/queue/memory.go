package queue

import (
	"context"
	"errors"
	"sync"
)

// ErrBrokerClosed is returned when publishing to a closed MemoryBroker.
var ErrBrokerClosed = errors.New("broker closed")

// MemoryBroker delivers messages to in-process subscribers. Used when no
// RabbitMQ URL is configured and in tests. Messages published to a queue with
// no subscriber are buffered until one subscribes.
type MemoryBroker struct {
	mu       sync.Mutex
	handlers map[string][]MessageHandler
	pending  map[string][][]byte
	closed   bool
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{
		handlers: make(map[string][]MessageHandler),
		pending:  make(map[string][][]byte),
	}
}

func (b *MemoryBroker) Publish(ctx context.Context, queueName string, message []byte) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrBrokerClosed
	}
	handlers := b.handlers[queueName]
	if len(handlers) == 0 {
		msg := make([]byte, len(message))
		copy(msg, message)
		b.pending[queueName] = append(b.pending[queueName], msg)
		b.mu.Unlock()
		return nil
	}
	b.mu.Unlock()

	for _, h := range handlers {
		_ = h(ctx, message)
	}
	return nil
}

func (b *MemoryBroker) Subscribe(ctx context.Context, queueName string, handler MessageHandler) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrBrokerClosed
	}
	b.handlers[queueName] = append(b.handlers[queueName], handler)
	backlog := b.pending[queueName]
	delete(b.pending, queueName)
	b.mu.Unlock()

	for _, msg := range backlog {
		_ = handler(ctx, msg)
	}
	return nil
}

// Pending returns the buffered messages for a queue without subscribers.
func (b *MemoryBroker) Pending(queueName string) [][]byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([][]byte, len(b.pending[queueName]))
	copy(out, b.pending[queueName])
	return out
}

func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.handlers = make(map[string][]MessageHandler)
	return nil
}
