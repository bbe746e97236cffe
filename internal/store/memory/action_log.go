package memory

import (
	"context"
	"sync"
	"time"

	"github.com/decomontenegro/truelabel-sub001/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QueueActionLogRepository struct {
	mu   sync.RWMutex
	logs []domain.QueueActionLog
}

func NewQueueActionLogRepository() *QueueActionLogRepository {
	return &QueueActionLogRepository{}
}

func (r *QueueActionLogRepository) Create(_ context.Context, entry *domain.QueueActionLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	r.logs = append(r.logs, *entry)
	return nil
}

func (r *QueueActionLogRepository) GetByQueueID(_ context.Context, queueID primitive.ObjectID, limit int) ([]domain.QueueActionLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.QueueActionLog{}
	for _, l := range r.logs {
		if l.QueueID == queueID {
			out = append(out, l)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}

	return out, nil
}
