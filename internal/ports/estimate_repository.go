package ports

import (
	"context"
	"intersection-estimator-service/internal/domain"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by EstimateRepository.Get for unknown ids.
var ErrNotFound = errors.New("estimate not found")

// Port: a boundary for recording and retrieving intersection estimates.
type EstimateRepository interface {
	// Persist a newly computed estimate.
	Save(ctx context.Context, e *domain.Estimate) error
	// Retrieve a single estimate by id.
	Get(ctx context.Context, estimateID string) (*domain.Estimate, error)
	// Return up to limit estimates, newest first.
	List(ctx context.Context, limit int) ([]*domain.Estimate, error)
}
