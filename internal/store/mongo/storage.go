package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	collectionValidationQueue = "validation_queue"
	collectionQueueHistory    = "validation_queue_history"
	collectionUsers           = "users"
	collectionProducts        = "products"
	collectionCounters        = "counters"
)

type Storage struct {
	client   *mongo.Client
	database *mongo.Database
	config   Config
}

type Config struct {
	URI         string
	Database    string
	Timeout     time.Duration
	MaxPoolSize uint64
	MinPoolSize uint64
}

func New(cfg Config) (*Storage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	if cfg.MaxPoolSize == 0 {
		cfg.MaxPoolSize = 100
	}
	if cfg.MinPoolSize == 0 {
		cfg.MinPoolSize = 10
	}

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	database := client.Database(cfg.Database)

	return &Storage{
		client:   client,
		database: database,
		config:   cfg,
	}, nil
}

func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Storage) Database() *mongo.Database {
	return s.database
}

func (s *Storage) CreateIndexes(ctx context.Context) error {
	// validation_queue: list filters, workload counts and the overdue scan
	queueIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "assigned_to_id", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "requested_by_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "category", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "due_date", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "priority_rank", Value: -1}, {Key: "created_at", Value: -1}},
		},
	}
	if _, err := s.database.Collection(collectionValidationQueue).Indexes().CreateMany(ctx, queueIndexes); err != nil {
		return fmt.Errorf("failed to create %s indexes: %w", collectionValidationQueue, err)
	}

	historyIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "queue_id", Value: 1}, {Key: "timestamp", Value: 1}},
		},
	}
	if _, err := s.database.Collection(collectionQueueHistory).Indexes().CreateMany(ctx, historyIndexes); err != nil {
		return fmt.Errorf("failed to create %s indexes: %w", collectionQueueHistory, err)
	}

	userIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "role", Value: 1}},
		},
	}
	if _, err := s.database.Collection(collectionUsers).Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create %s indexes: %w", collectionUsers, err)
	}

	return nil
}
