package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/decomontenegro/truelabel-sub001/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ValidationQueueRepository struct {
	collection *mongo.Collection
}

func NewValidationQueueRepository(db *mongo.Database) *ValidationQueueRepository {
	return &ValidationQueueRepository{
		collection: db.Collection(collectionValidationQueue),
	}
}

func (r *ValidationQueueRepository) Create(ctx context.Context, entry *domain.QueueEntry) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = entry.CreatedAt
	}

	_, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("%w: failed to create queue entry: %v", domain.ErrDependency, err)
	}

	return nil
}

func (r *ValidationQueueRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.QueueEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var entry domain.QueueEntry
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: queue entry %s", domain.ErrNotFound, id.Hex())
		}
		return nil, fmt.Errorf("%w: failed to get queue entry: %v", domain.ErrDependency, err)
	}

	return &entry, nil
}

func buildFilter(f domain.QueueFilter) bson.M {
	filter := bson.M{}
	if f.Status != nil {
		filter["status"] = *f.Status
	}
	if f.AssignedToID != "" {
		filter["assigned_to_id"] = f.AssignedToID
	}
	if f.RequestedByID != "" {
		filter["requested_by_id"] = f.RequestedByID
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Priority != nil {
		filter["priority"] = *f.Priority
	}
	return filter
}

func (r *ValidationQueueRepository) List(ctx context.Context, f domain.QueueFilter) ([]domain.QueueEntry, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := buildFilter(f)

	direction := -1
	if f.SortOrder == domain.SortAsc {
		direction = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: f.SortField(), Value: direction}, {Key: "_id", Value: direction}}).
		SetSkip(int64(f.Skip())).
		SetLimit(int64(f.Limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: failed to list queue entries: %v", domain.ErrDependency, err)
	}
	defer cursor.Close(ctx)

	entries := []domain.QueueEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, 0, fmt.Errorf("%w: failed to decode queue entries: %v", domain.ErrDependency, err)
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: failed to count queue entries: %v", domain.ErrDependency, err)
	}

	return entries, total, nil
}

func (r *ValidationQueueRepository) Assign(ctx context.Context, id primitive.ObjectID, expected domain.QueueStatus, assignedToID string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// matches only while nobody else has assigned or moved the entry
	filter := bson.M{
		"_id":            id,
		"status":         expected,
		"assigned_to_id": nil,
	}
	update := bson.M{
		"$set": bson.M{
			"assigned_to_id": assignedToID,
			"assigned_at":    at,
			"updated_at":     at,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("%w: failed to assign queue entry: %v", domain.ErrDependency, err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: queue entry %s changed before assignment", domain.ErrConcurrentModification, id.Hex())
	}

	return nil
}

func (r *ValidationQueueRepository) Transition(ctx context.Context, id primitive.ObjectID, change domain.StatusChange) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{
		"status":     change.To,
		"updated_at": change.At,
	}
	if change.StartedAt != nil {
		set["started_at"] = *change.StartedAt
	}
	if change.CompletedAt != nil {
		set["completed_at"] = *change.CompletedAt
	}
	if change.ActualDuration != nil {
		set["actual_duration"] = *change.ActualDuration
	}

	filter := bson.M{"_id": id, "status": change.From}
	if change.From == domain.StatusPending && change.To == domain.StatusInProgress {
		filter["assigned_to_id"] = bson.M{"$ne": nil}
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("%w: failed to update queue entry status: %v", domain.ErrDependency, err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: queue entry %s is no longer %s", domain.ErrConcurrentModification, id.Hex(), change.From)
	}

	return nil
}

func (r *ValidationQueueRepository) ActiveWorkloads(ctx context.Context, reviewerIDs []string) (map[string]int64, error) {
	if len(reviewerIDs) == 0 {
		return map[string]int64{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"assigned_to_id": bson.M{"$in": reviewerIDs},
			"status":         bson.M{"$in": domain.NonTerminalStatuses},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$assigned_to_id",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to aggregate workloads: %v", domain.ErrDependency, err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ReviewerID string `bson:"_id"`
		Count      int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("%w: failed to decode workloads: %v", domain.ErrDependency, err)
	}

	workloads := make(map[string]int64, len(reviewerIDs))
	for _, id := range reviewerIDs {
		workloads[id] = 0
	}
	for _, row := range rows {
		workloads[row.ReviewerID] = row.Count
	}

	return workloads, nil
}

type snapshotResult struct {
	Statuses []struct {
		Key struct {
			Status   domain.QueueStatus `bson:"status"`
			Assigned bool               `bson:"assigned"`
		} `bson:"_id"`
		Count int64 `bson:"count"`
	} `bson:"statuses"`
	Overdue []struct {
		Count int64 `bson:"count"`
	} `bson:"overdue"`
	Durations []struct {
		Sum   float64 `bson:"sum"`
		Count int64   `bson:"count"`
	} `bson:"durations"`
}

// Snapshot runs a single $facet aggregation so every count comes from the
// same read.
func (r *ValidationQueueRepository) Snapshot(ctx context.Context, now time.Time, since *time.Time) (domain.QueueSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	durationMatch := bson.M{
		"status":          domain.StatusCompleted,
		"actual_duration": bson.M{"$ne": nil},
	}
	if since != nil {
		durationMatch["completed_at"] = bson.M{"$gte": *since}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$facet", Value: bson.M{
			"statuses": bson.A{
				bson.M{"$group": bson.M{
					"_id": bson.M{
						"status": "$status",
						"assigned": bson.M{"$gt": bson.A{
							bson.M{"$ifNull": bson.A{"$assigned_to_id", ""}}, "",
						}},
					},
					"count": bson.M{"$sum": 1},
				}},
			},
			"overdue": bson.A{
				bson.M{"$match": bson.M{
					"status":   bson.M{"$in": domain.NonTerminalStatuses},
					"due_date": bson.M{"$lt": now},
				}},
				bson.M{"$count": "count"},
			},
			"durations": bson.A{
				bson.M{"$match": durationMatch},
				bson.M{"$group": bson.M{
					"_id":   nil,
					"sum":   bson.M{"$sum": "$actual_duration"},
					"count": bson.M{"$sum": 1},
				}},
			},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return domain.QueueSnapshot{}, fmt.Errorf("%w: failed to aggregate queue metrics: %v", domain.ErrDependency, err)
	}
	defer cursor.Close(ctx)

	var results []snapshotResult
	if err := cursor.All(ctx, &results); err != nil {
		return domain.QueueSnapshot{}, fmt.Errorf("%w: failed to decode queue metrics: %v", domain.ErrDependency, err)
	}

	var snap domain.QueueSnapshot
	if len(results) == 0 {
		return snap, nil
	}

	res := results[0]
	for _, row := range res.Statuses {
		switch row.Key.Status {
		case domain.StatusPending:
			if row.Key.Assigned {
				snap.PendingAssigned += row.Count
			} else {
				snap.PendingUnassigned += row.Count
			}
		case domain.StatusInProgress:
			snap.InProgress += row.Count
		case domain.StatusCompleted:
			snap.Completed += row.Count
		case domain.StatusFailed:
			snap.Failed += row.Count
		}
	}
	if len(res.Overdue) > 0 {
		snap.Overdue = res.Overdue[0].Count
	}
	if len(res.Durations) > 0 {
		snap.DurationSum = res.Durations[0].Sum
		snap.DurationCount = res.Durations[0].Count
	}

	return snap, nil
}
