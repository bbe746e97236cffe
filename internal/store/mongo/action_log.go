package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/decomontenegro/truelabel-sub001/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type QueueActionLogRepository struct {
	collection *mongo.Collection
}

func NewQueueActionLogRepository(db *mongo.Database) *QueueActionLogRepository {
	return &QueueActionLogRepository{
		collection: db.Collection(collectionQueueHistory),
	}
}

func (r *QueueActionLogRepository) Create(ctx context.Context, entry *domain.QueueActionLog) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("%w: failed to create queue action log: %v", domain.ErrDependency, err)
	}

	return nil
}

func (r *QueueActionLogRepository) GetByQueueID(ctx context.Context, queueID primitive.ObjectID, limit int) ([]domain.QueueActionLog, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"queue_id": queueID}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get queue action logs: %v", domain.ErrDependency, err)
	}
	defer cursor.Close(ctx)

	logs := []domain.QueueActionLog{}
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("%w: failed to decode queue action logs: %v", domain.ErrDependency, err)
	}

	return logs, nil
}
