package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/decomontenegro/truelabel-sub001/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// rotationCounter is the counters document that hands out rotation
// sequence numbers.
const rotationCounter = "reviewer_rotation"

type ReviewerRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

func NewReviewerRepository(db *mongo.Database) *ReviewerRepository {
	return &ReviewerRepository{
		collection: db.Collection(collectionUsers),
		counters:   db.Collection(collectionCounters),
	}
}

func (r *ReviewerRepository) GetByID(ctx context.Context, id string) (*domain.Reviewer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var reviewer domain.Reviewer
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&reviewer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: failed to get user: %v", domain.ErrDependency, err)
	}

	return &reviewer, nil
}

func (r *ReviewerRepository) ListByRoles(ctx context.Context, roles []domain.Role) ([]domain.Reviewer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"role": bson.M{"$in": roles}}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list reviewers: %v", domain.ErrDependency, err)
	}
	defer cursor.Close(ctx)

	reviewers := []domain.Reviewer{}
	if err := cursor.All(ctx, &reviewers); err != nil {
		return nil, fmt.Errorf("%w: failed to decode reviewers: %v", domain.ErrDependency, err)
	}

	return reviewers, nil
}

// nextRotationSeq atomically increments the shared counter, so every
// orchestrator instance draws from the same strictly increasing sequence.
func (r *ReviewerRepository) nextRotationSeq(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx, bson.M{"_id": rotationCounter}, bson.M{"$inc": bson.M{"seq": 1}}, opts).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to draw rotation sequence: %v", domain.ErrDependency, err)
	}

	return counter.Seq, nil
}

// rotationFilter matches a reviewer whose sequence is seq. Documents that
// were never rotated have no rotation_seq field.
func rotationFilter(id string, seq int64) bson.M {
	if seq == 0 {
		return bson.M{"_id": id, "rotation_seq": bson.M{"$in": bson.A{0, nil}}}
	}
	return bson.M{"_id": id, "rotation_seq": seq}
}

func (r *ReviewerRepository) ClaimRotation(ctx context.Context, id string, expected int64, at time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	seq, err := r.nextRotationSeq(ctx)
	if err != nil {
		return 0, err
	}

	update := bson.M{"$set": bson.M{"rotation_seq": seq, "last_assigned_at": at}}
	result, err := r.collection.UpdateOne(ctx, rotationFilter(id, expected), update)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to claim reviewer rotation: %v", domain.ErrDependency, err)
	}

	if result.MatchedCount == 0 {
		return 0, fmt.Errorf("%w: reviewer %s was assigned concurrently", domain.ErrConcurrentModification, id)
	}

	return seq, nil
}

func (r *ReviewerRepository) ReleaseRotation(ctx context.Context, id string, claimed int64, previous domain.Reviewer) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"rotation_seq": previous.RotationSeq}
	update := bson.M{"$set": set}
	if previous.LastAssignedAt != nil {
		set["last_assigned_at"] = *previous.LastAssignedAt
	} else {
		update["$unset"] = bson.M{"last_assigned_at": ""}
	}

	result, err := r.collection.UpdateOne(ctx, rotationFilter(id, claimed), update)
	if err != nil {
		return fmt.Errorf("%w: failed to release reviewer rotation: %v", domain.ErrDependency, err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: reviewer %s rotated again", domain.ErrConcurrentModification, id)
	}

	return nil
}

func (r *ReviewerRepository) TouchRotation(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	seq, err := r.nextRotationSeq(ctx)
	if err != nil {
		return err
	}

	update := bson.M{"$max": bson.M{"rotation_seq": seq, "last_assigned_at": at}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("%w: failed to update reviewer rotation: %v", domain.ErrDependency, err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
	}

	return nil
}

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection(collectionProducts),
	}
}

func (r *ProductRepository) Exists(ctx context.Context, productID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": productID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("%w: failed to look up product: %v", domain.ErrDependency, err)
	}

	return count > 0, nil
}
