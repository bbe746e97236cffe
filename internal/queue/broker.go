package queue

import (
	"context"
)

type Broker interface {
	Publish(ctx context.Context, queueName string, message []byte) error
	Subscribe(ctx context.Context, queueName string, handler MessageHandler) error
	Close() error
}

type MessageHandler func(ctx context.Context, message []byte) error

const (
	QueueValidationEvents    = "validation-events"
	QueueAutoAssignment      = "validation-auto-assign"
	QueueValidationEventsDLQ = "validation-events-dlq"
	QueueAutoAssignmentDLQ   = "validation-auto-assign-dlq"
)

// DeclaredQueues are created on connect.
var DeclaredQueues = []string{
	QueueValidationEvents,
	QueueAutoAssignment,
	QueueValidationEventsDLQ,
	QueueAutoAssignmentDLQ,
}
