package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/decomontenegro/truelabel-sub001/internal/domain"
)

type ReviewerRepository struct {
	mu        sync.RWMutex
	reviewers map[string]domain.Reviewer
	seq       int64
}

func NewReviewerRepository(reviewers ...domain.Reviewer) *ReviewerRepository {
	r := &ReviewerRepository{reviewers: make(map[string]domain.Reviewer)}
	for _, rv := range reviewers {
		r.reviewers[rv.ID] = rv
		if rv.RotationSeq > r.seq {
			r.seq = rv.RotationSeq
		}
	}
	return r
}

// Put inserts or replaces a user record.
func (r *ReviewerRepository) Put(reviewer domain.Reviewer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviewers[reviewer.ID] = reviewer
	if reviewer.RotationSeq > r.seq {
		r.seq = reviewer.RotationSeq
	}
}

func (r *ReviewerRepository) GetByID(_ context.Context, id string) (*domain.Reviewer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rv, ok := r.reviewers[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
	}
	return &rv, nil
}

func (r *ReviewerRepository) ListByRoles(_ context.Context, roles []domain.Role) ([]domain.Reviewer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[domain.Role]bool, len(roles))
	for _, role := range roles {
		wanted[role] = true
	}

	out := []domain.Reviewer{}
	for _, rv := range r.reviewers {
		if wanted[rv.Role] {
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *ReviewerRepository) ClaimRotation(_ context.Context, id string, expected int64, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rv, ok := r.reviewers[id]
	if !ok {
		return 0, fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
	}
	if rv.RotationSeq != expected {
		return 0, fmt.Errorf("%w: reviewer %s was assigned concurrently", domain.ErrConcurrentModification, id)
	}

	r.seq++
	claimed := at
	rv.RotationSeq = r.seq
	rv.LastAssignedAt = &claimed
	r.reviewers[id] = rv

	return rv.RotationSeq, nil
}

func (r *ReviewerRepository) ReleaseRotation(_ context.Context, id string, claimed int64, previous domain.Reviewer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rv, ok := r.reviewers[id]
	if !ok {
		return fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
	}
	if rv.RotationSeq != claimed {
		return fmt.Errorf("%w: reviewer %s rotated again", domain.ErrConcurrentModification, id)
	}

	rv.RotationSeq = previous.RotationSeq
	rv.LastAssignedAt = previous.LastAssignedAt
	r.reviewers[id] = rv

	return nil
}

func (r *ReviewerRepository) TouchRotation(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rv, ok := r.reviewers[id]
	if !ok {
		return fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
	}

	r.seq++
	rv.RotationSeq = r.seq
	if rv.LastAssignedAt == nil || at.After(*rv.LastAssignedAt) {
		touched := at
		rv.LastAssignedAt = &touched
	}
	r.reviewers[id] = rv

	return nil
}

type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]struct{}
}

func NewProductRepository(productIDs ...string) *ProductRepository {
	r := &ProductRepository{products: make(map[string]struct{})}
	for _, id := range productIDs {
		r.products[id] = struct{}{}
	}
	return r
}

func (r *ProductRepository) Add(productID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[productID] = struct{}{}
}

func (r *ProductRepository) Exists(_ context.Context, productID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.products[productID]
	return ok, nil
}
