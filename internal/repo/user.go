package repo

import (
	"context"
	"time"

	"github.com/decomontenegro/truelabel-sub001/internal/domain"
)

type ReviewerRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Reviewer, error)
	ListByRoles(ctx context.Context, roles []domain.Role) ([]domain.Reviewer, error)
	// ClaimRotation moves the reviewer to the head of the rotation only if its
	// sequence still equals expected, and returns the new sequence.
	ClaimRotation(ctx context.Context, id string, expected int64, at time.Time) (int64, error)
	// ReleaseRotation puts back previous if claimed is still current.
	ReleaseRotation(ctx context.Context, id string, claimed int64, previous domain.Reviewer) error
	TouchRotation(ctx context.Context, id string, at time.Time) error
}

type ProductRepository interface {
	Exists(ctx context.Context, productID string) (bool, error)
}
