package memory

import (
	"context"
	"testing"
	"time"

	"github.com/decomontenegro/truelabel-sub001/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewerRepository_ClaimRotationSameInstant(t *testing.T) {
	repo := NewReviewerRepository(
		domain.Reviewer{ID: "r1", Role: domain.RoleAdmin},
		domain.Reviewer{ID: "r2", Role: domain.RoleAdmin},
		domain.Reviewer{ID: "r3", Role: domain.RoleAdmin},
	)
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	var last int64
	for _, id := range []string{"r1", "r2", "r3"} {
		seq, err := repo.ClaimRotation(ctx, id, 0, now)
		require.NoError(t, err)
		assert.Greater(t, seq, last, "sequence grows even when the clock does not")
		last = seq
	}

	_, err := repo.ClaimRotation(ctx, "r1", 0, now)
	assert.ErrorIs(t, err, domain.ErrConcurrentModification)

	_, err = repo.ClaimRotation(ctx, "ghost", 0, now)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReviewerRepository_ReleaseRotation(t *testing.T) {
	earlier := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	previous := domain.Reviewer{ID: "r1", Role: domain.RoleAdmin, RotationSeq: 4, LastAssignedAt: &earlier}
	repo := NewReviewerRepository(previous)
	ctx := context.Background()
	now := earlier.Add(time.Hour)

	seq, err := repo.ClaimRotation(ctx, "r1", 4, now)
	require.NoError(t, err)
	assert.Equal(t, int64(5), seq, "continues after the seeded sequence")

	require.NoError(t, repo.ReleaseRotation(ctx, "r1", seq, previous))

	rv, err := repo.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), rv.RotationSeq)
	assert.Equal(t, earlier, *rv.LastAssignedAt)

	// a release after someone else moved the pointer is refused
	seq, err = repo.ClaimRotation(ctx, "r1", 4, now)
	require.NoError(t, err)
	require.NoError(t, repo.TouchRotation(ctx, "r1", now))
	assert.ErrorIs(t, repo.ReleaseRotation(ctx, "r1", seq, previous), domain.ErrConcurrentModification)
}

func TestReviewerRepository_TouchRotation(t *testing.T) {
	repo := NewReviewerRepository(
		domain.Reviewer{ID: "r1", Role: domain.RoleAdmin},
		domain.Reviewer{ID: "r2", Role: domain.RoleAdmin},
	)
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.TouchRotation(ctx, "r2", now))
	require.NoError(t, repo.TouchRotation(ctx, "r1", now.Add(-time.Hour)))

	r1, _ := repo.GetByID(ctx, "r1")
	r2, _ := repo.GetByID(ctx, "r2")
	assert.Greater(t, r1.RotationSeq, r2.RotationSeq, "order follows calls, not timestamps")

	assert.ErrorIs(t, repo.TouchRotation(ctx, "ghost", now), domain.ErrNotFound)
}
