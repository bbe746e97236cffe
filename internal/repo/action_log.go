package repo

import (
	"context"

	"github.com/decomontenegro/truelabel-sub001/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QueueActionLogRepository interface {
	Create(ctx context.Context, entry *domain.QueueActionLog) error
	GetByQueueID(ctx context.Context, queueID primitive.ObjectID, limit int) ([]domain.QueueActionLog, error)
}
