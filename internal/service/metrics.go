package service

import (
	"context"
	"fmt"
	"time"

	"github.com/decomontenegro/truelabel-sub001/internal/domain"
)

// MetricsCache holds a recently computed metrics snapshot. Get returns nil
// on a miss.
type MetricsCache interface {
	Get(ctx context.Context) (*domain.QueueMetrics, error)
	Set(ctx context.Context, m domain.QueueMetrics) error
}

// GetQueueMetrics aggregates queue counters from one store snapshot. since,
// when set, restricts the average processing time to entries completed after
// it.
func (s *ValidationQueueService) GetQueueMetrics(ctx context.Context, actor domain.Actor, since *time.Time) (*domain.QueueMetrics, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins can read queue metrics", domain.ErrForbidden)
	}

	useCache := s.cache != nil && since == nil
	if useCache {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warnw("failed to read metrics cache", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	now := s.now()
	snap, err := s.queueRepo.Snapshot(ctx, now, since)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate queue metrics: %w", err)
	}

	m := computeMetrics(snap, now)

	if useCache {
		if err := s.cache.Set(ctx, m); err != nil {
			s.logger.Warnw("failed to cache metrics", "error", err)
		}
	}

	return &m, nil
}

func computeMetrics(snap domain.QueueSnapshot, now time.Time) domain.QueueMetrics {
	var avg float64
	if snap.DurationCount > 0 {
		avg = snap.DurationSum / float64(snap.DurationCount)
	}

	return domain.QueueMetrics{
		TotalPending:      snap.PendingUnassigned,
		TotalAssigned:     snap.PendingAssigned,
		TotalInProgress:   snap.InProgress,
		TotalCompleted:    snap.Completed,
		TotalFailed:       snap.Failed,
		TotalActive:       snap.PendingUnassigned + snap.PendingAssigned + snap.InProgress,
		AvgProcessingTime: avg,
		OverdueCount:      snap.Overdue,
		GeneratedAt:       now,
	}
}
