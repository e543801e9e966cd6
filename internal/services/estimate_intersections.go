package services

import (
	"context"
	"intersection-estimator-service/internal/domain"
	"intersection-estimator-service/internal/platform/obs"
	"intersection-estimator-service/internal/ports"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidInput marks segment pairs the estimator refuses to evaluate.
var ErrInvalidInput = errors.New("invalid input")

// Supported dimensions; bounded by the WKT layouts used for storage.
const (
	MinDimension = 2
	MaxDimension = 4
)

// Two segments given as raw component vectors.
type SegmentPair struct {
	SegmentA domain.LineSegment[[]float64]
	SegmentB domain.LineSegment[[]float64]
}

// Build a SegmentPair from four endpoints (p00, p01) and (p10, p11).
func NewSegmentPair(p00, p01, p10, p11 []float64) SegmentPair {
	return SegmentPair{
		SegmentA: domain.NewLineSegment(p00, p01),
		SegmentB: domain.NewLineSegment(p10, p11),
	}
}

func (p SegmentPair) endpoints() [4][]float64 {
	return [4][]float64{p.SegmentA.P0, p.SegmentA.P1, p.SegmentB.P0, p.SegmentB.P1}
}

// Evaluator runs the central endpoint intersector over the endpoints
// a.p0, a.p1, b.p0, b.p1 of one validated dimension and returns the
// components of the chosen endpoint.
type Evaluator func(pts [4][]float64) []float64

// EvaluatorFor binds an Evaluator to a concrete coordinate type.
func EvaluatorFor[C domain.Coordinate[C]](create domain.CoordinateFactory[C]) Evaluator {
	return func(pts [4][]float64) []float64 {
		c := GetIntersection(create, create(pts[0]), create(pts[1]), create(pts[2]), create(pts[3]))
		return domain.Components(c)
	}
}

// Estimator validates segment pairs, runs the central endpoint intersector
// and records the results.
//
// Repo may be nil, in which case estimates are returned but not stored.
// ByDimension overrides Evaluate for the dimensions it lists.
type Estimator struct {
	Repo        ports.EstimateRepository
	Evaluate    Evaluator
	ByDimension map[int]Evaluator
	Now         func() time.Time
	NewID       func() string
}

func NewEstimator(repo ports.EstimateRepository, evaluate Evaluator) *Estimator {
	return &Estimator{
		Repo:     repo,
		Evaluate: evaluate,
		Now:      func() time.Time { return time.Now().UTC() },
		NewID:    func() string { return uuid.NewString() },
	}
}

func (e *Estimator) evaluatorFor(dim int) Evaluator {
	if ev, ok := e.ByDimension[dim]; ok && ev != nil {
		return ev
	}
	return e.Evaluate
}

// Estimate the intersection of one segment pair.
func (e *Estimator) Estimate(ctx context.Context, pair SegmentPair) (_ *domain.Estimate, err error) {
	defer obs.Time(ctx, "estimate.Estimate")(&err)

	dim, err := validatePair(pair)
	if err != nil {
		return nil, errors.Wrap(err, "estimate")
	}

	evaluate := e.evaluatorFor(dim)
	if evaluate == nil {
		return nil, errors.Errorf("estimate: no evaluator for dimension %d", dim)
	}
	point := evaluate(pair.endpoints())

	ref, ok := locateEndpoint(pair, point)
	if !ok {
		// The intersector always picks an input endpoint; an injected evaluator may not.
		return nil, errors.Errorf("estimate: result %v is not an input endpoint", point)
	}

	est := &domain.Estimate{
		EstimateID: e.NewID(),
		Dimension:  dim,
		SegmentA:   copySegment(pair.SegmentA),
		SegmentB:   copySegment(pair.SegmentB),
		Point:      point,
		Endpoint:   ref,
		CreatedAt:  e.Now(),
	}

	if e.Repo != nil {
		if err := e.Repo.Save(ctx, est); err != nil {
			return nil, errors.Wrapf(err, "estimate: save %s", est.EstimateID)
		}
	}

	obs.Logger(ctx).
		WithField("estimate_id", est.EstimateID).
		WithField("endpoint", ref.String()).
		Debug("estimated intersection")

	return est, nil
}

// EstimateBatch estimates every pair with at most parallelism concurrent
// evaluations. Results keep the input order. The first failure cancels the
// remaining work and is returned.
func (e *Estimator) EstimateBatch(ctx context.Context, pairs []SegmentPair, parallelism int) ([]*domain.Estimate, error) {
	if parallelism < 1 {
		parallelism = 1
	}

	out := make([]*domain.Estimate, len(pairs))
	if len(pairs) == 0 {
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, pair := range pairs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			est, err := e.Estimate(gctx, pair)
			if err != nil {
				return errors.Wrapf(err, "estimate batch: pair #%d", i+1)
			}
			out[i] = est
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// validatePair returns the common dimension of all four endpoints.
func validatePair(pair SegmentPair) (int, error) {
	pts := pair.endpoints()

	dim := len(pts[0])
	if dim < MinDimension || dim > MaxDimension {
		return 0, errors.Wrapf(ErrInvalidInput, "dimension %d outside [%d, %d]", dim, MinDimension, MaxDimension)
	}

	for i, p := range pts {
		if len(p) != dim {
			return 0, errors.Wrapf(ErrInvalidInput, "endpoint %s has dimension %d, want %d", refAt(i), len(p), dim)
		}
		for j, v := range p {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, errors.Wrapf(ErrInvalidInput, "endpoint %s component %d is not finite", refAt(i), j)
			}
		}
	}

	return dim, nil
}

// locateEndpoint reports the first endpoint, in a.p0, a.p1, b.p0, b.p1 order,
// equal to point.
func locateEndpoint(pair SegmentPair, point []float64) (domain.EndpointRef, bool) {
	for i, p := range pair.endpoints() {
		if slices.Equal(p, point) {
			return refAt(i), true
		}
	}
	return domain.EndpointRef{}, false
}

func refAt(i int) domain.EndpointRef {
	return domain.EndpointRef{Segment: i / 2, Index: i % 2}
}

func copySegment(s domain.LineSegment[[]float64]) domain.LineSegment[[]float64] {
	return domain.NewLineSegment(
		append([]float64(nil), s.P0...),
		append([]float64(nil), s.P1...),
	)
}
