package repositories

import (
	"context"
	"intersection-estimator-service/internal/domain"
	"intersection-estimator-service/internal/ports"
	"slices"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// MemoryEstimateRepository keeps estimates in process memory.
// It is used by tests and when the server runs without a database.
type MemoryEstimateRepository struct {
	mu sync.RWMutex
	m  map[string]*domain.Estimate
}

func NewMemoryEstimateRepository() *MemoryEstimateRepository {
	return &MemoryEstimateRepository{m: make(map[string]*domain.Estimate)}
}

func (r *MemoryEstimateRepository) Save(ctx context.Context, e *domain.Estimate) error {
	if e == nil || e.EstimateID == "" {
		return errors.New("save estimate: estimate id must not be empty")
	}

	cp := cloneEstimate(e)
	r.mu.Lock()
	r.m[e.EstimateID] = cp
	r.mu.Unlock()
	return nil
}

func (r *MemoryEstimateRepository) Get(ctx context.Context, estimateID string) (*domain.Estimate, error) {
	r.mu.RLock()
	e, ok := r.m[estimateID]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ports.ErrNotFound, "get estimate %q", estimateID)
	}

	return cloneEstimate(e), nil
}

func (r *MemoryEstimateRepository) List(ctx context.Context, limit int) ([]*domain.Estimate, error) {
	if limit <= 0 {
		return []*domain.Estimate{}, nil
	}

	r.mu.RLock()
	out := make([]*domain.Estimate, 0, len(r.m))
	for _, e := range r.m {
		out = append(out, cloneEstimate(e))
	}
	r.mu.RUnlock()

	// Same order as the SQL repositories: newest first, then by id.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].EstimateID < out[j].EstimateID
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// cloneEstimate copies e including its component slices, so callers never
// share backing arrays with the stored estimate.
func cloneEstimate(e *domain.Estimate) *domain.Estimate {
	cp := *e
	cp.SegmentA = cloneSegment(e.SegmentA)
	cp.SegmentB = cloneSegment(e.SegmentB)
	cp.Point = slices.Clone(e.Point)
	return &cp
}

func cloneSegment(s domain.LineSegment[[]float64]) domain.LineSegment[[]float64] {
	return domain.NewLineSegment(slices.Clone(s.P0), slices.Clone(s.P1))
}
