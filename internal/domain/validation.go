package domain

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QueueStatus string

const (
	StatusPending    QueueStatus = "PENDING"
	StatusInProgress QueueStatus = "IN_PROGRESS"
	StatusCompleted  QueueStatus = "COMPLETED"
	StatusFailed     QueueStatus = "FAILED"
)

// ParseQueueStatus rejects anything outside the closed status set.
func ParseQueueStatus(s string) (QueueStatus, error) {
	switch st := QueueStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusPending, StatusInProgress, StatusCompleted, StatusFailed:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
	}
}

func (s QueueStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// NonTerminalStatuses is the set of statuses that still count as active work.
var NonTerminalStatuses = []QueueStatus{StatusPending, StatusInProgress}

type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityNormal Priority = "NORMAL"
	PriorityLow    Priority = "LOW"
)

// ParsePriority maps an empty value to NORMAL.
func ParsePriority(s string) (Priority, error) {
	if strings.TrimSpace(s) == "" {
		return PriorityNormal, nil
	}
	switch p := Priority(strings.ToUpper(strings.TrimSpace(s))); p {
	case PriorityHigh, PriorityMedium, PriorityNormal, PriorityLow:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown priority %q", ErrValidation, s)
	}
}

// Rank orders priorities by urgency, HIGH highest. Unknown values rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 4
	case PriorityMedium:
		return 3
	case PriorityNormal:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

type QueueEntry struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID         string             `bson:"product_id" json:"productId"`
	RequestedByID     string             `bson:"requested_by_id" json:"requestedById"`
	AssignedToID      *string            `bson:"assigned_to_id" json:"assignedToId,omitempty"`
	Category          string             `bson:"category" json:"category"`
	Priority          Priority           `bson:"priority" json:"priority"`
	PriorityRank      int                `bson:"priority_rank" json:"-"`
	Status            QueueStatus        `bson:"status" json:"status"`
	EstimatedDuration *float64           `bson:"estimated_duration,omitempty" json:"estimatedDuration,omitempty"`
	ActualDuration    *float64           `bson:"actual_duration,omitempty" json:"actualDuration,omitempty"`
	Notes             string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Metadata          map[string]any     `bson:"metadata,omitempty" json:"metadata,omitempty"`
	DueDate           time.Time          `bson:"due_date" json:"dueDate"`
	CreatedAt         time.Time          `bson:"created_at" json:"createdAt"`
	AssignedAt        *time.Time         `bson:"assigned_at,omitempty" json:"assignedAt,omitempty"`
	StartedAt         *time.Time         `bson:"started_at,omitempty" json:"startedAt,omitempty"`
	CompletedAt       *time.Time         `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updatedAt"`
}

func (e *QueueEntry) IsAssigned() bool {
	return e.AssignedToID != nil && *e.AssignedToID != ""
}

func (e *QueueEntry) IsAssignedTo(userID string) bool {
	return e.IsAssigned() && *e.AssignedToID == userID
}

// transitions lists every legal edge; anything absent is rejected.
var transitions = map[QueueStatus][]QueueStatus{
	StatusPending:    {StatusInProgress, StatusFailed},
	StatusInProgress: {StatusCompleted, StatusFailed},
	StatusCompleted:  nil,
	StatusFailed:     nil,
}

// CanTransition checks the transition table and the per-edge preconditions
// against the current state of e.
func (e *QueueEntry) CanTransition(to QueueStatus) error {
	allowed, known := transitions[e.Status]
	if !known {
		return fmt.Errorf("%w: entry has unknown status %q", ErrInvalidTransition, e.Status)
	}
	if e.Status.IsTerminal() {
		return fmt.Errorf("%w: entry is already %s", ErrInvalidTransition, e.Status)
	}

	ok := false
	for _, s := range allowed {
		if s == to {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("%w: %s -> %s is not allowed", ErrInvalidTransition, e.Status, to)
	}

	if e.Status == StatusPending && to == StatusInProgress && !e.IsAssigned() {
		return fmt.Errorf("%w: entry must be assigned before it can start", ErrInvalidTransition)
	}

	return nil
}

// StatusChange is the conditional write produced by a legal transition. The
// store applies it only if the entry is still in From.
type StatusChange struct {
	From           QueueStatus
	To             QueueStatus
	At             time.Time
	StartedAt      *time.Time
	CompletedAt    *time.Time
	ActualDuration *float64
}

// PlanTransition validates the move and computes the timestamps it sets.
func (e *QueueEntry) PlanTransition(to QueueStatus, now time.Time) (StatusChange, error) {
	if err := e.CanTransition(to); err != nil {
		return StatusChange{}, err
	}

	change := StatusChange{From: e.Status, To: to, At: now}

	switch to {
	case StatusInProgress:
		started := now
		change.StartedAt = &started
	case StatusCompleted, StatusFailed:
		completed := now
		change.CompletedAt = &completed
		if e.StartedAt != nil {
			hours := now.Sub(*e.StartedAt).Hours()
			change.ActualDuration = &hours
		}
	}

	return change, nil
}

// Apply mirrors a committed StatusChange onto the in-memory copy.
func (e *QueueEntry) Apply(change StatusChange) {
	e.Status = change.To
	e.UpdatedAt = change.At
	if change.StartedAt != nil {
		e.StartedAt = change.StartedAt
	}
	if change.CompletedAt != nil {
		e.CompletedAt = change.CompletedAt
	}
	if change.ActualDuration != nil {
		e.ActualDuration = change.ActualDuration
	}
}
