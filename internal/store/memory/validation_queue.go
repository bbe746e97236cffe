// Package memory is an in-process implementation of the repo interfaces. It
// backs local development (STORE_DRIVER=memory) and the service tests, and
// applies the same conditional-write rules as the MongoDB store.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/decomontenegro/truelabel-sub001/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ValidationQueueRepository struct {
	mu      sync.RWMutex
	entries map[primitive.ObjectID]domain.QueueEntry
}

func NewValidationQueueRepository() *ValidationQueueRepository {
	return &ValidationQueueRepository{
		entries: make(map[primitive.ObjectID]domain.QueueEntry),
	}
}

func clone(e domain.QueueEntry) domain.QueueEntry {
	if e.Metadata != nil {
		md := make(map[string]any, len(e.Metadata))
		for k, v := range e.Metadata {
			md[k] = v
		}
		e.Metadata = md
	}
	return e
}

func (r *ValidationQueueRepository) Create(_ context.Context, entry *domain.QueueEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = entry.CreatedAt
	}
	if _, exists := r.entries[entry.ID]; exists {
		return fmt.Errorf("%w: duplicate queue entry %s", domain.ErrDependency, entry.ID.Hex())
	}

	r.entries[entry.ID] = clone(*entry)
	return nil
}

func (r *ValidationQueueRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.QueueEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: queue entry %s", domain.ErrNotFound, id.Hex())
	}

	out := clone(e)
	return &out, nil
}

func (r *ValidationQueueRepository) List(_ context.Context, f domain.QueueFilter) ([]domain.QueueEntry, int64, error) {
	r.mu.RLock()
	matched := make([]domain.QueueEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if f.Matches(&e) {
			matched = append(matched, clone(e))
		}
	}
	r.mu.RUnlock()

	desc := f.SortOrder != domain.SortAsc
	sort.SliceStable(matched, func(i, j int) bool {
		c := compareField(&matched[i], &matched[j], f.SortField())
		if c == 0 {
			c = strings.Compare(matched[i].ID.Hex(), matched[j].ID.Hex())
		}
		if desc {
			return c > 0
		}
		return c < 0
	})

	total := int64(len(matched))
	start := f.Skip()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + f.Limit
	if end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], total, nil
}

func compareTime(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Compare(*b)
}

func compareField(a, b *domain.QueueEntry, field string) int {
	switch field {
	case "due_date":
		return a.DueDate.Compare(b.DueDate)
	case "priority_rank":
		return a.Priority.Rank() - b.Priority.Rank()
	case "status":
		return strings.Compare(string(a.Status), string(b.Status))
	case "assigned_at":
		return compareTime(a.AssignedAt, b.AssignedAt)
	case "completed_at":
		return compareTime(a.CompletedAt, b.CompletedAt)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func (r *ValidationQueueRepository) Assign(_ context.Context, id primitive.ObjectID, expected domain.QueueStatus, assignedToID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return fmt.Errorf("%w: queue entry %s", domain.ErrNotFound, id.Hex())
	}
	if e.Status != expected || e.IsAssigned() {
		return fmt.Errorf("%w: queue entry %s changed before assignment", domain.ErrConcurrentModification, id.Hex())
	}

	assignee := assignedToID
	assignedAt := at
	e.AssignedToID = &assignee
	e.AssignedAt = &assignedAt
	e.UpdatedAt = at
	r.entries[id] = e

	return nil
}

func (r *ValidationQueueRepository) Transition(_ context.Context, id primitive.ObjectID, change domain.StatusChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return fmt.Errorf("%w: queue entry %s", domain.ErrNotFound, id.Hex())
	}
	if e.Status != change.From {
		return fmt.Errorf("%w: queue entry %s is no longer %s", domain.ErrConcurrentModification, id.Hex(), change.From)
	}
	if change.From == domain.StatusPending && change.To == domain.StatusInProgress && !e.IsAssigned() {
		return fmt.Errorf("%w: queue entry %s lost its assignee", domain.ErrConcurrentModification, id.Hex())
	}

	e.Apply(change)
	r.entries[id] = e

	return nil
}

func (r *ValidationQueueRepository) ActiveWorkloads(_ context.Context, reviewerIDs []string) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	workloads := make(map[string]int64, len(reviewerIDs))
	for _, id := range reviewerIDs {
		workloads[id] = 0
	}
	for _, e := range r.entries {
		if !e.IsAssigned() || e.Status.IsTerminal() {
			continue
		}
		if _, tracked := workloads[*e.AssignedToID]; tracked {
			workloads[*e.AssignedToID]++
		}
	}

	return workloads, nil
}

func (r *ValidationQueueRepository) Snapshot(_ context.Context, now time.Time, since *time.Time) (domain.QueueSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var snap domain.QueueSnapshot
	for _, e := range r.entries {
		switch e.Status {
		case domain.StatusPending:
			if e.IsAssigned() {
				snap.PendingAssigned++
			} else {
				snap.PendingUnassigned++
			}
		case domain.StatusInProgress:
			snap.InProgress++
		case domain.StatusCompleted:
			snap.Completed++
			if e.ActualDuration != nil && (since == nil || (e.CompletedAt != nil && !e.CompletedAt.Before(*since))) {
				snap.DurationSum += *e.ActualDuration
				snap.DurationCount++
			}
		case domain.StatusFailed:
			snap.Failed++
		}

		if !e.Status.IsTerminal() && e.DueDate.Before(now) {
			snap.Overdue++
		}
	}

	return snap, nil
}
