package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/decomontenegro/truelabel-sub001/internal/domain"
	"github.com/decomontenegro/truelabel-sub001/internal/queue"
	"github.com/decomontenegro/truelabel-sub001/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AutoAssignmentWorker consumes auto-assignment requests published when an
// entry is created.
type AutoAssignmentWorker struct {
	queueService *service.ValidationQueueService
	broker       queue.Broker
	logger       *zap.SugaredLogger
	ctx          context.Context
	cancel       context.CancelFunc
}

func NewAutoAssignmentWorker(
	queueService *service.ValidationQueueService,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *AutoAssignmentWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &AutoAssignmentWorker{
		queueService: queueService,
		broker:       broker,
		logger:       logger,
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (w *AutoAssignmentWorker) Start() error {
	w.logger.Info("starting auto-assignment worker")

	return w.broker.Subscribe(w.ctx, queue.QueueAutoAssignment, w.handleMessage)
}

func (w *AutoAssignmentWorker) Stop() {
	w.logger.Info("stopping auto-assignment worker")
	w.cancel()
}

// handleMessage returns an error only for failures worth redelivering.
// Malformed requests and entries that no longer exist are dropped.
func (w *AutoAssignmentWorker) handleMessage(ctx context.Context, message []byte) error {
	var msg domain.AutoAssignmentMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		w.logger.Errorw("failed to unmarshal message", "error", err)
		return nil
	}

	queueID, err := primitive.ObjectIDFromHex(msg.QueueID)
	if err != nil {
		w.logger.Errorw("invalid queue ID", "queue_id", msg.QueueID, "error", err)
		return nil
	}

	w.logger.Infow("processing auto-assignment request", "queue_id", msg.QueueID, "strategy", msg.Strategy)

	entry, err := w.queueService.TryAutoAssignment(ctx, queueID, msg.Strategy)
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrValidation):
		w.logger.Warnw("dropping auto-assignment request", "queue_id", msg.QueueID, "error", err)
		return nil
	case err != nil:
		w.logger.Errorw("failed to auto-assign", "queue_id", msg.QueueID, "error", err)
		return fmt.Errorf("auto-assignment for %s: %w", msg.QueueID, err)
	case entry == nil:
		w.logger.Infow("entry left for manual assignment", "queue_id", msg.QueueID)
	default:
		w.logger.Infow("entry auto-assigned", "queue_id", msg.QueueID, "assigned_to_id", *entry.AssignedToID)
	}

	return nil
}
