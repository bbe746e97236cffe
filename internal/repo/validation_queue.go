package repo

import (
	"context"
	"time"

	"github.com/decomontenegro/truelabel-sub001/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValidationQueueRepository stores queue entries. Assign and Transition are
// conditional writes: when the stored entry no longer matches the expected
// state they return domain.ErrConcurrentModification and change nothing.
type ValidationQueueRepository interface {
	Create(ctx context.Context, entry *domain.QueueEntry) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.QueueEntry, error)
	List(ctx context.Context, filter domain.QueueFilter) ([]domain.QueueEntry, int64, error)
	Assign(ctx context.Context, id primitive.ObjectID, expected domain.QueueStatus, assignedToID string, at time.Time) error
	Transition(ctx context.Context, id primitive.ObjectID, change domain.StatusChange) error
	ActiveWorkloads(ctx context.Context, reviewerIDs []string) (map[string]int64, error)
	Snapshot(ctx context.Context, now time.Time, since *time.Time) (domain.QueueSnapshot, error)
}
