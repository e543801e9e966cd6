package repositories

import (
	"intersection-estimator-service/internal/adapters/coords"
	"intersection-estimator-service/internal/domain"
	"time"

	"github.com/pkg/errors"
)

// estimateRow is the storage form of an estimate: geometries as WKT,
// timestamps as unix nanoseconds.
type estimateRow struct {
	id        string
	dimension int
	segmentA  string
	segmentB  string
	point     string
	endpoint  string
	createdAt int64
}

func toRow(e *domain.Estimate) (estimateRow, error) {
	if e == nil {
		return estimateRow{}, errors.New("encode estimate: estimate is nil")
	}
	if e.EstimateID == "" {
		return estimateRow{}, errors.New("encode estimate: estimate id must not be empty")
	}

	a, err := coords.SegmentWKT(e.SegmentA)
	if err != nil {
		return estimateRow{}, errors.Wrapf(err, "encode estimate %s: segment a", e.EstimateID)
	}
	b, err := coords.SegmentWKT(e.SegmentB)
	if err != nil {
		return estimateRow{}, errors.Wrapf(err, "encode estimate %s: segment b", e.EstimateID)
	}
	p, err := coords.PointWKT(e.Point)
	if err != nil {
		return estimateRow{}, errors.Wrapf(err, "encode estimate %s: point", e.EstimateID)
	}

	return estimateRow{
		id:        e.EstimateID,
		dimension: e.Dimension,
		segmentA:  a,
		segmentB:  b,
		point:     p,
		endpoint:  e.Endpoint.String(),
		createdAt: e.CreatedAt.UnixNano(),
	}, nil
}

func (r estimateRow) toEstimate() (*domain.Estimate, error) {
	a, err := coords.ParseSegmentWKT(r.segmentA)
	if err != nil {
		return nil, errors.Wrapf(err, "decode estimate %s: segment a", r.id)
	}
	b, err := coords.ParseSegmentWKT(r.segmentB)
	if err != nil {
		return nil, errors.Wrapf(err, "decode estimate %s: segment b", r.id)
	}
	p, err := coords.ParsePointWKT(r.point)
	if err != nil {
		return nil, errors.Wrapf(err, "decode estimate %s: point", r.id)
	}
	ref, err := domain.ParseEndpointRef(r.endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "decode estimate %s", r.id)
	}

	return &domain.Estimate{
		EstimateID: r.id,
		Dimension:  r.dimension,
		SegmentA:   a,
		SegmentB:   b,
		Point:      p,
		Endpoint:   ref,
		CreatedAt:  time.Unix(0, r.createdAt).UTC(),
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEstimate(s rowScanner) (*domain.Estimate, error) {
	var r estimateRow
	if err := s.Scan(&r.id, &r.dimension, &r.segmentA, &r.segmentB, &r.point, &r.endpoint, &r.createdAt); err != nil {
		return nil, err
	}
	return r.toEstimate()
}

const estimateColumns = `estimate_id, dimension, segment_a, segment_b, point, endpoint, created_at`
