package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/decomontenegro/truelabel-sub001/internal/assignment"
	"github.com/decomontenegro/truelabel-sub001/internal/domain"
	"github.com/decomontenegro/truelabel-sub001/internal/telemetry"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TryAutoAssignment picks a reviewer for a pending, unassigned entry with the
// named strategy and commits the assignment as the system actor. It returns
// nil without error when the entry is no longer eligible or no reviewer
// qualifies, leaving the entry for manual assignment.
func (s *ValidationQueueService) TryAutoAssignment(ctx context.Context, id primitive.ObjectID, strategyName string) (*domain.QueueEntry, error) {
	strategy, err := assignment.Parse(strategyName)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= s.cfg.MaxAutoAssignAttempts; attempt++ {
		entry, err := s.autoAssignOnce(ctx, id, strategy)
		if errors.Is(err, domain.ErrConcurrentModification) {
			s.logger.Infow("auto-assignment lost a race, retrying",
				"queue_id", id.Hex(),
				"strategy", strategy.Name(),
				"attempt", attempt,
			)
			continue
		}
		s.observeAutoAssignment(strategy.Name(), entry, err)
		return entry, err
	}

	err = fmt.Errorf("%w: auto-assignment for %s gave up after %d attempts",
		domain.ErrConcurrentModification, id.Hex(), s.cfg.MaxAutoAssignAttempts)
	s.observeAutoAssignment(strategy.Name(), nil, err)
	return nil, err
}

func (s *ValidationQueueService) autoAssignOnce(ctx context.Context, id primitive.ObjectID, strategy assignment.Strategy) (*domain.QueueEntry, error) {
	entry, err := s.queueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get queue entry: %w", err)
	}
	if entry.Status != domain.StatusPending || entry.IsAssigned() {
		return nil, nil
	}

	reviewers, err := s.reviewerRepo.ListByRoles(ctx, s.cfg.ReviewerRoles)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviewers: %w", err)
	}
	if len(reviewers) == 0 {
		s.logger.Warnw("no reviewers available for auto-assignment", "queue_id", id.Hex())
		return nil, nil
	}

	ids := make([]string, 0, len(reviewers))
	byID := make(map[string]domain.Reviewer, len(reviewers))
	for _, r := range reviewers {
		ids = append(ids, r.ID)
		byID[r.ID] = r
	}

	workloads, err := s.queueRepo.ActiveWorkloads(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to compute workloads: %w", err)
	}

	reviewerID, ok := strategy.Select(assignment.NewCandidates(reviewers, workloads), *entry)
	if !ok {
		s.logger.Infow("no reviewer qualified for auto-assignment",
			"queue_id", id.Hex(),
			"strategy", strategy.Name(),
			"category", entry.Category,
		)
		return nil, nil
	}

	now := s.now()
	previous := byID[reviewerID]
	seq, err := s.reviewerRepo.ClaimRotation(ctx, reviewerID, previous.RotationSeq, now)
	if err != nil {
		return nil, fmt.Errorf("failed to claim reviewer %s: %w", reviewerID, err)
	}

	meta := map[string]string{"strategy": strategy.Name()}
	if err := s.commitAssignment(ctx, entry, reviewerID, domain.SystemActorID, now, meta); err != nil {
		// the reviewer got nothing, so hand the rotation slot back
		s.releaseRotation(ctx, reviewerID, seq, previous)

		// someone else assigned the entry between our read and write
		if errors.Is(err, domain.ErrInvalidTransition) {
			return nil, nil
		}
		return nil, err
	}

	return entry, nil
}

func (s *ValidationQueueService) releaseRotation(ctx context.Context, reviewerID string, claimed int64, previous domain.Reviewer) {
	if err := s.reviewerRepo.ReleaseRotation(ctx, reviewerID, claimed, previous); err != nil {
		s.logger.Warnw("failed to release reviewer rotation",
			"reviewer_id", reviewerID,
			"claimed_seq", claimed,
			"error", err,
		)
		s.sideEffectFailed("rotation_release")
	}
}

func (s *ValidationQueueService) observeAutoAssignment(strategy string, entry *domain.QueueEntry, err error) {
	if s.telemetry == nil {
		return
	}
	outcome := telemetry.Outcome(err)
	if err == nil && entry == nil {
		outcome = telemetry.OutcomeSkipped
	}
	s.telemetry.AutoAssignments.WithLabelValues(strategy, outcome).Inc()
}
