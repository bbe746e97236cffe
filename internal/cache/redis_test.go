package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/decomontenegro/truelabel-sub001/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_RequiresAddress(t *testing.T) {
	client, err := NewClient(Config{})
	assert.ErrorIs(t, err, ErrEmptyAddress)
	assert.Nil(t, client)
}

func TestMetricsCache(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(Config{Address: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	c := NewMetricsCache(client, 10*time.Second)
	ctx := context.Background()

	got, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "miss")

	want := domain.QueueMetrics{TotalPending: 2, TotalActive: 3, AvgProcessingTime: 1.5}
	require.NoError(t, c.Set(ctx, want))

	got, err = c.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.TotalActive, got.TotalActive)
	assert.Equal(t, want.AvgProcessingTime, got.AvgProcessingTime)

	mr.FastForward(11 * time.Second)
	got, err = c.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "expired")
}
