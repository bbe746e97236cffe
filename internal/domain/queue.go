package domain

import (
	"fmt"
	"time"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100

	SortAsc  = "asc"
	SortDesc = "desc"
)

// sortFields maps the accepted sortBy keys to stored field names.
var sortFields = map[string]string{
	"createdAt":   "created_at",
	"dueDate":     "due_date",
	"priority":    "priority_rank",
	"status":      "status",
	"assignedAt":  "assigned_at",
	"completedAt": "completed_at",
}

type QueueFilter struct {
	Status        *QueueStatus
	AssignedToID  string
	RequestedByID string
	Category      string
	Priority      *Priority
	Page          int
	Limit         int
	SortBy        string
	SortOrder     string
}

// Normalize fills defaults and rejects unknown sort keys.
func (f *QueueFilter) Normalize() error {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.SortBy == "" {
		f.SortBy = "createdAt"
	}
	if _, ok := sortFields[f.SortBy]; !ok {
		return fmt.Errorf("%w: cannot sort by %q", ErrValidation, f.SortBy)
	}
	switch f.SortOrder {
	case "":
		f.SortOrder = SortDesc
	case SortAsc, SortDesc:
	default:
		return fmt.Errorf("%w: sortOrder must be asc or desc", ErrValidation)
	}
	return nil
}

// SortField returns the stored field name for SortBy.
func (f QueueFilter) SortField() string {
	return sortFields[f.SortBy]
}

func (f QueueFilter) Skip() int {
	return (f.Page - 1) * f.Limit
}

// Matches evaluates the filter predicate against a single entry.
func (f QueueFilter) Matches(e *QueueEntry) bool {
	if f.Status != nil && e.Status != *f.Status {
		return false
	}
	if f.AssignedToID != "" && !e.IsAssignedTo(f.AssignedToID) {
		return false
	}
	if f.RequestedByID != "" && e.RequestedByID != f.RequestedByID {
		return false
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.Priority != nil && e.Priority != *f.Priority {
		return false
	}
	return true
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

func NewPagination(page, limit int, total int64) Pagination {
	pages := int64(0)
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

type QueuePage struct {
	Entries    []QueueEntry `json:"entries"`
	Pagination Pagination   `json:"pagination"`
}

// QueueSnapshot is the raw aggregate a store returns for metrics. It is
// computed from one read so the derived totals are consistent.
type QueueSnapshot struct {
	PendingUnassigned int64
	PendingAssigned   int64
	InProgress        int64
	Completed         int64
	Failed            int64
	Overdue           int64
	DurationSum       float64
	DurationCount     int64
}

type QueueMetrics struct {
	TotalPending      int64     `json:"totalPending"`
	TotalAssigned     int64     `json:"totalAssigned"`
	TotalInProgress   int64     `json:"totalInProgress"`
	TotalCompleted    int64     `json:"totalCompleted"`
	TotalFailed       int64     `json:"totalFailed"`
	TotalActive       int64     `json:"totalActive"`
	AvgProcessingTime float64   `json:"avgProcessingTime"`
	OverdueCount      int64     `json:"overdueCount"`
	GeneratedAt       time.Time `json:"generatedAt"`
}
