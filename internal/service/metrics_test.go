package service

import (
	"context"
	"testing"
	"time"

	"github.com/decomontenegro/truelabel-sub001/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapCache struct {
	stored *domain.QueueMetrics
	gets   int
}

func (c *mapCache) Get(context.Context) (*domain.QueueMetrics, error) {
	c.gets++
	return c.stored, nil
}

func (c *mapCache) Set(_ context.Context, m domain.QueueMetrics) error {
	c.stored = &m
	return nil
}

func TestGetQueueMetrics(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	// unassigned, due at T0+24h
	f.create(t, CreateQueueEntryInput{Priority: "HIGH"})

	assigned := f.create(t, CreateQueueEntryInput{Priority: "LOW"})
	_, err := f.svc.AssignValidation(ctx, admin, assigned.ID, "r1")
	require.NoError(t, err)

	started := f.create(t, CreateQueueEntryInput{Priority: "HIGH"})
	_, err = f.svc.AssignValidation(ctx, admin, started.ID, "r2")
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, admin, started.ID, domain.StatusInProgress, "")
	require.NoError(t, err)

	done := f.create(t, CreateQueueEntryInput{Priority: "HIGH"})
	_, err = f.svc.AssignValidation(ctx, admin, done.ID, "r3")
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, admin, done.ID, domain.StatusInProgress, "")
	require.NoError(t, err)
	f.clock.Advance(2 * time.Hour)
	_, err = f.svc.UpdateStatus(ctx, admin, done.ID, domain.StatusCompleted, "")
	require.NoError(t, err)

	cancelled := f.create(t, CreateQueueEntryInput{Priority: "HIGH"})
	_, err = f.svc.CancelQueueEntry(ctx, brand, cancelled.ID, "")
	require.NoError(t, err)

	// HIGH entries are past due, LOW is not; terminal entries never count
	f.clock.Set(t0.Add(30 * time.Hour))

	m, err := f.svc.GetQueueMetrics(ctx, admin, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(1), m.TotalPending)
	assert.Equal(t, int64(1), m.TotalAssigned)
	assert.Equal(t, int64(1), m.TotalInProgress)
	assert.Equal(t, int64(1), m.TotalCompleted)
	assert.Equal(t, int64(1), m.TotalFailed)
	assert.Equal(t, m.TotalPending+m.TotalAssigned+m.TotalInProgress, m.TotalActive)
	assert.InDelta(t, 2.0, m.AvgProcessingTime, 1e-9)
	assert.Equal(t, int64(2), m.OverdueCount)
	assert.Equal(t, t0.Add(30*time.Hour), m.GeneratedAt)
}

func TestGetQueueMetrics_SinceWindow(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	complete := func(d time.Duration) {
		e := f.create(t, CreateQueueEntryInput{})
		_, err := f.svc.AssignValidation(ctx, admin, e.ID, "r1")
		require.NoError(t, err)
		_, err = f.svc.UpdateStatus(ctx, admin, e.ID, domain.StatusInProgress, "")
		require.NoError(t, err)
		f.clock.Advance(d)
		_, err = f.svc.UpdateStatus(ctx, admin, e.ID, domain.StatusCompleted, "")
		require.NoError(t, err)
	}

	complete(1 * time.Hour)
	cutoff := f.clock.Now().Add(time.Minute)
	complete(3 * time.Hour)

	all, err := f.svc.GetQueueMetrics(ctx, admin, nil)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, all.AvgProcessingTime, 1e-9)

	windowed, err := f.svc.GetQueueMetrics(ctx, admin, &cutoff)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, windowed.AvgProcessingTime, 1e-9)
	assert.Equal(t, int64(2), windowed.TotalCompleted, "counts are not windowed")
}

func TestGetQueueMetrics_Empty(t *testing.T) {
	f := newFixture(t, Config{})

	m, err := f.svc.GetQueueMetrics(context.Background(), admin, nil)
	require.NoError(t, err)
	assert.Zero(t, m.TotalActive)
	assert.Zero(t, m.AvgProcessingTime)

	_, err = f.svc.GetQueueMetrics(context.Background(), brand, nil)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGetQueueMetrics_Cache(t *testing.T) {
	f := newFixture(t, Config{})
	cache := &mapCache{}
	f.svc.WithMetricsCache(cache)
	ctx := context.Background()

	first, err := f.svc.GetQueueMetrics(ctx, admin, nil)
	require.NoError(t, err)
	require.NotNil(t, cache.stored)

	f.create(t, CreateQueueEntryInput{})

	cached, err := f.svc.GetQueueMetrics(ctx, admin, nil)
	require.NoError(t, err)
	assert.Equal(t, first.TotalPending, cached.TotalPending, "served from cache within TTL")

	since := t0
	fresh, err := f.svc.GetQueueMetrics(ctx, admin, &since)
	require.NoError(t, err)
	assert.Equal(t, int64(1), fresh.TotalPending, "windowed requests bypass the cache")
	assert.Equal(t, 2, cache.gets)
}
