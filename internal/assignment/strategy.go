// Package assignment chooses a reviewer for a queue entry from an eligible
// pool. Strategies are pure: they read the pool and the entry and never touch
// the store, so the caller decides how the choice is committed.
package assignment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/decomontenegro/truelabel-sub001/internal/domain"
)

const (
	NameRoundRobin       = "ROUND_ROBIN"
	NameExpertiseBased   = "EXPERTISE_BASED"
	NameWorkloadBalanced = "WORKLOAD_BALANCED"
)

// Candidate is one reviewer in the pool as seen by a strategy. RotationSeq
// orders past assignments: higher was later, zero means never.
type Candidate struct {
	ReviewerID  string
	Expertise   []string
	ActiveCount int64
	RotationSeq int64
}

func (c Candidate) HasExpertise(category string) bool {
	for _, e := range c.Expertise {
		if e == category {
			return true
		}
	}
	return false
}

// Strategy returns the chosen reviewer id, or false when nobody qualifies.
type Strategy interface {
	Name() string
	Select(pool []Candidate, entry domain.QueueEntry) (string, bool)
}

// Parse maps a strategy key to its implementation.
func Parse(name string) (Strategy, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case NameRoundRobin:
		return RoundRobin{}, nil
	case NameExpertiseBased, "":
		return ExpertiseBased{}, nil
	case NameWorkloadBalanced:
		return WorkloadBalanced{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown assignment strategy %q", domain.ErrValidation, name)
	}
}

// NewCandidates joins reviewers with their active workload counts.
func NewCandidates(reviewers []domain.Reviewer, workloads map[string]int64) []Candidate {
	pool := make([]Candidate, 0, len(reviewers))
	for _, r := range reviewers {
		pool = append(pool, Candidate{
			ReviewerID:  r.ID,
			Expertise:   r.Expertise,
			ActiveCount: workloads[r.ID],
			RotationSeq: r.RotationSeq,
		})
	}
	return pool
}

func sortedByID(pool []Candidate) []Candidate {
	out := make([]Candidate, len(pool))
	copy(out, pool)
	sort.Slice(out, func(i, j int) bool { return out[i].ReviewerID < out[j].ReviewerID })
	return out
}

// RoundRobin orders the pool by id and picks the reviewer after the one
// assigned most recently, wrapping around.
type RoundRobin struct{}

func (RoundRobin) Name() string { return NameRoundRobin }

func (RoundRobin) Select(pool []Candidate, _ domain.QueueEntry) (string, bool) {
	if len(pool) == 0 {
		return "", false
	}

	ordered := sortedByID(pool)

	last := -1
	var lastSeq int64
	for i, c := range ordered {
		if c.RotationSeq > lastSeq {
			last = i
			lastSeq = c.RotationSeq
		}
	}

	next := (last + 1) % len(ordered)
	return ordered[next].ReviewerID, true
}

// ExpertiseBased restricts the pool to reviewers declaring the entry's
// category, then rotates within them. There is no fallback to unqualified
// reviewers.
type ExpertiseBased struct{}

func (ExpertiseBased) Name() string { return NameExpertiseBased }

func (ExpertiseBased) Select(pool []Candidate, entry domain.QueueEntry) (string, bool) {
	qualified := make([]Candidate, 0, len(pool))
	for _, c := range pool {
		if c.HasExpertise(entry.Category) {
			qualified = append(qualified, c)
		}
	}
	if len(qualified) == 0 {
		return "", false
	}
	return RoundRobin{}.Select(qualified, entry)
}

// WorkloadBalanced picks the reviewer with the fewest active assignments.
// Ties go to whoever has waited longest since their last assignment.
type WorkloadBalanced struct{}

func (WorkloadBalanced) Name() string { return NameWorkloadBalanced }

func (WorkloadBalanced) Select(pool []Candidate, _ domain.QueueEntry) (string, bool) {
	if len(pool) == 0 {
		return "", false
	}

	ordered := sortedByID(pool)
	best := ordered[0]
	for _, c := range ordered[1:] {
		if lessLoaded(c, best) {
			best = c
		}
	}

	return best.ReviewerID, true
}

func lessLoaded(a, b Candidate) bool {
	if a.ActiveCount != b.ActiveCount {
		return a.ActiveCount < b.ActiveCount
	}
	return a.RotationSeq < b.RotationSeq
}
